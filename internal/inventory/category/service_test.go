package category

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/emmeril/assets/internal/storage"
	"github.com/emmeril/assets/pkg/apperrors"
	"github.com/emmeril/assets/pkg/models"
)

func newTestService(t *testing.T) (*CategoryService, *storage.Store[models.Asset]) {
	t.Helper()
	dir := t.TempDir()
	catStore := storage.New(filepath.Join(dir, "categories.json"), models.Category.IsValid, zap.NewNop())
	assetStore := storage.New(filepath.Join(dir, "assets.json"), models.Asset.IsValid, zap.NewNop())
	svc := NewCategoryService(catStore, assetStore, zap.NewNop())
	return svc, assetStore
}

func TestCreateRejectsBlankName(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Create("   ")

	var verr *apperrors.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []string{"name"}, verr.Fields)
}

func TestCreateRejectsCaseInsensitiveDuplicate(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.Create("Laptop")
	require.NoError(t, err)

	_, err = svc.Create("LAPTOP")

	var conflict *apperrors.ConflictError
	require.True(t, errors.As(err, &conflict))
}

func TestUpdateDuplicateCheckExcludesSelf(t *testing.T) {
	svc, _ := newTestService(t)
	created, err := svc.Create("Laptop")
	require.NoError(t, err)

	// Renaming to a different casing of its own name is allowed.
	renamed, err := svc.Update(created.ID, "laptop")
	require.NoError(t, err)
	assert.Equal(t, "laptop", renamed.Name)

	time.Sleep(2 * time.Millisecond) // ids are unix millis
	other, err := svc.Create("Monitor")
	require.NoError(t, err)

	_, err = svc.Update(other.ID, "Laptop")
	var conflict *apperrors.ConflictError
	require.True(t, errors.As(err, &conflict))
}

func TestUpdateUnknownIDFails(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Update(42, "Monitor")

	var nf *apperrors.NotFoundError
	require.True(t, errors.As(err, &nf))
}

func TestDeleteReferencedCategoryFails(t *testing.T) {
	svc, assetStore := newTestService(t)
	created, err := svc.Create("Monitor")
	require.NoError(t, err)
	require.NoError(t, assetStore.Save([]models.Asset{{
		ID:            1,
		Code:          "MON-0001",
		CategoryName:  "Monitor",
		Description:   "Dell 24 inch",
		SerialNumber:  "SN-1",
		Division:      "IT",
		OwnerUsername: "budi",
		Brand:         "Dell",
		PurchaseDate:  "2024-01-15",
		Quantity:      1,
		Price:         1500000,
	}}))

	err = svc.Delete(created.ID)

	var conflict *apperrors.ConflictError
	require.True(t, errors.As(err, &conflict))
}

func TestDeleteUnreferencedCategoryRemovesExactlyOne(t *testing.T) {
	svc, _ := newTestService(t)
	first, err := svc.Create("Monitor")
	require.NoError(t, err)
	time.Sleep(2 * time.Millisecond)
	second, err := svc.Create("Printer")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(first.ID))

	list, err := svc.List()
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, second.ID, list[0].ID)
}

func TestDeleteUnknownIDFails(t *testing.T) {
	svc, _ := newTestService(t)

	err := svc.Delete(42)

	var nf *apperrors.NotFoundError
	require.True(t, errors.As(err, &nf))
}

func TestGetReturnsStoredCategory(t *testing.T) {
	svc, _ := newTestService(t)
	created, err := svc.Create("Monitor")
	require.NoError(t, err)

	found, err := svc.Get(created.ID)

	require.NoError(t, err)
	assert.Equal(t, "Monitor", found.Name)
}
