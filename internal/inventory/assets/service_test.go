package assets

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

func newTestService(t *testing.T) (*AssetService, *storage.Store[models.Asset]) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "assets.json")
	store := storage.New(path, models.Asset.IsValid, zap.NewNop())
	svc := NewAssetService(store, zap.NewNop())
	return svc, store
}

func monitorRequest() models.AssetRequest {
	return models.AssetRequest{
		CategoryName:  "Monitor",
		Description:   "Dell 24 inch",
		SerialNumber:  "SN-100",
		Division:      "IT",
		OwnerUsername: "budi",
		Brand:         "Dell",
		PurchaseDate:  "2024-01-15",
		Quantity:      "1",
		Price:         "1500000",
	}
}

func laptopRequest() models.AssetRequest {
	req := monitorRequest()
	req.CategoryName = "Laptop"
	req.Processor = "i7-12700"
	req.RAM = "16GB"
	req.Storage = "512GB SSD"
	req.OperatingSystem = "Windows 11"
	return req
}

func TestNeedsSpecFields(t *testing.T) {
	tests := []struct {
		category string
		expected bool
	}{
		{"Laptop", true},
		{"laptop", true},
		{"KOMPUTER", true},
		{"Komputer", true},
		{"Monitor", false},
		{"Printer", false},
	}

	for _, tt := range tests {
		t.Run(tt.category, func(t *testing.T) {
			assert.Equal(t, tt.expected, NeedsSpecFields(tt.category))
		})
	}
}

func TestGenerateCode(t *testing.T) {
	tests := []struct {
		name     string
		existing []models.Asset
		category string
		expected string
	}{
		{
			name:     "empty list starts at one",
			existing: nil,
			category: "Printer",
			expected: "PRI-0001",
		},
		{
			name: "continues after highest trailing number",
			existing: []models.Asset{
				{Code: "LAP-0001"},
				{Code: "LAP-0003"},
			},
			category: "Laptop",
			expected: "LAP-0004",
		},
		{
			name: "ignores other prefixes",
			existing: []models.Asset{
				{Code: "MON-0009"},
			},
			category: "Laptop",
			expected: "LAP-0001",
		},
		{
			name: "code without trailing digits counts as zero",
			existing: []models.Asset{
				{Code: "LAP-X"},
			},
			category: "Laptop",
			expected: "LAP-0001",
		},
		{
			name:     "short category name is not padded",
			existing: nil,
			category: "TV",
			expected: "TV-0001",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, GenerateCode(tt.existing, tt.category))
		})
	}
}

func TestGenerateCodeIsDeterministic(t *testing.T) {
	existing := []models.Asset{{Code: "LAP-0007"}, {Code: "LAP-0002"}}

	first := GenerateCode(existing, "Laptop")
	second := GenerateCode(existing, "Laptop")

	assert.Equal(t, first, second)
	assert.Equal(t, "LAP-0008", first)
}

func TestCreateGeneratesCodeAndID(t *testing.T) {
	svc, _ := newTestService(t)
	svc.now = func() time.Time { return time.UnixMilli(1700000000000) }

	asset, err := svc.Create(monitorRequest(), "")

	require.NoError(t, err)
	assert.Equal(t, int64(1700000000000), asset.ID)
	assert.Equal(t, "MON-0001", asset.Code)
	assert.Equal(t, 1, asset.Quantity)
	assert.Equal(t, float64(1500000), asset.Price)
}

func TestCreateKeepsCallerSuppliedCode(t *testing.T) {
	svc, _ := newTestService(t)

	asset, err := svc.Create(func() models.AssetRequest {
		req := monitorRequest()
		req.Code = "CUSTOM-77"
		return req
	}(), "")

	require.NoError(t, err)
	assert.Equal(t, "CUSTOM-77", asset.Code)
}

func TestCreateAggregatesMissingFields(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Create(models.AssetRequest{CategoryName: "Monitor"}, "")

	var verr *apperrors.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.ElementsMatch(t, []string{
		"description", "serialNumber", "quantity", "price",
		"purchaseDate", "division", "ownerUsername", "brand",
	}, verr.Fields)
}

func TestCreateKomputerRequiresSpecFields(t *testing.T) {
	svc, _ := newTestService(t)
	req := monitorRequest()
	req.CategoryName = "Komputer"
	req.RAM = "8GB"
	req.Storage = "256GB"
	req.OperatingSystem = "Windows 10"

	_, err := svc.Create(req, "")

	var verr *apperrors.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []string{"processor"}, verr.Fields)
	assert.Contains(t, verr.Error(), "Komputer")
}

func TestCreateMonitorOmitsSpecFields(t *testing.T) {
	svc, store := newTestService(t)
	req := monitorRequest()
	req.Processor = "should be ignored"

	asset, err := svc.Create(req, "")

	require.NoError(t, err)
	assert.Nil(t, asset.Processor)
	assert.Nil(t, asset.RAM)
	assert.Nil(t, asset.Storage)
	assert.Nil(t, asset.OperatingSystem)

	stored, err := store.Load()
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Nil(t, stored[0].Processor)
}

func TestCreateLaptopStoresSpecFields(t *testing.T) {
	svc, _ := newTestService(t)

	asset, err := svc.Create(laptopRequest(), "")

	require.NoError(t, err)
	require.NotNil(t, asset.Processor)
	assert.Equal(t, "i7-12700", *asset.Processor)
	require.NotNil(t, asset.OperatingSystem)
	assert.Equal(t, "Windows 11", *asset.OperatingSystem)
}

func TestCreateRejectsInvalidNumbers(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*models.AssetRequest)
		expected string
	}{
		{"zero quantity", func(r *models.AssetRequest) { r.Quantity = "0" }, "quantity"},
		{"non-numeric quantity", func(r *models.AssetRequest) { r.Quantity = "many" }, "quantity"},
		{"negative price", func(r *models.AssetRequest) { r.Price = "-5" }, "price"},
		{"non-numeric price", func(r *models.AssetRequest) { r.Price = "cheap" }, "price"},
		{"malformed date", func(r *models.AssetRequest) { r.PurchaseDate = "15-01-2024" }, "purchaseDate"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newTestService(t)
			req := monitorRequest()
			tt.mutate(&req)

			_, err := svc.Create(req, "")

			var verr *apperrors.ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Contains(t, verr.Fields, tt.expected)
		})
	}
}

func TestCreateSequenceAdvances(t *testing.T) {
	svc, _ := newTestService(t)

	first, err := svc.Create(monitorRequest(), "")
	require.NoError(t, err)
	second, err := svc.Create(monitorRequest(), "")
	require.NoError(t, err)

	assert.Equal(t, "MON-0001", first.Code)
	assert.Equal(t, "MON-0002", second.Code)
}

func TestUpdatePreservesPhotoUnlessReplaced(t *testing.T) {
	svc, _ := newTestService(t)
	created, err := svc.Create(monitorRequest(), "1700000000000.jpg")
	require.NoError(t, err)

	kept, err := svc.Update(created.ID, monitorRequest(), "")
	require.NoError(t, err)
	assert.Equal(t, "1700000000000.jpg", kept.PhotoFilename)

	replaced, err := svc.Update(created.ID, monitorRequest(), "1700000000999.png")
	require.NoError(t, err)
	assert.Equal(t, "1700000000999.png", replaced.PhotoFilename)
}

func TestUpdatePreservesCodeUnlessSupplied(t *testing.T) {
	svc, _ := newTestService(t)
	created, err := svc.Create(monitorRequest(), "")
	require.NoError(t, err)

	kept, err := svc.Update(created.ID, monitorRequest(), "")
	require.NoError(t, err)
	assert.Equal(t, created.Code, kept.Code)

	req := monitorRequest()
	req.Code = "MON-9999"
	changed, err := svc.Update(created.ID, req, "")
	require.NoError(t, err)
	assert.Equal(t, "MON-9999", changed.Code)
}

func TestUpdateDropsSpecFieldsOnCategoryChange(t *testing.T) {
	svc, _ := newTestService(t)
	created, err := svc.Create(laptopRequest(), "")
	require.NoError(t, err)

	updated, err := svc.Update(created.ID, monitorRequest(), "")

	require.NoError(t, err)
	assert.Nil(t, updated.Processor)
	assert.Nil(t, updated.RAM)
}

func TestUpdateUnknownIDFails(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Update(42, monitorRequest(), "")

	var nf *apperrors.NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, int64(42), nf.ID)
}

func TestDeleteRemovesExactlyOne(t *testing.T) {
	svc, store := newTestService(t)
	first, err := svc.Create(monitorRequest(), "")
	require.NoError(t, err)
	time.Sleep(2 * time.Millisecond) // ids are unix millis
	second, err := svc.Create(monitorRequest(), "")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(first.ID))

	remaining, err := store.Load()
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, second.ID, remaining[0].ID)
}

func TestDeleteUnknownIDLeavesListUnchanged(t *testing.T) {
	svc, store := newTestService(t)
	created, err := svc.Create(monitorRequest(), "")
	require.NoError(t, err)

	err = svc.Delete(created.ID + 1)

	var nf *apperrors.NotFoundError
	require.True(t, errors.As(err, &nf))

	remaining, err := store.Load()
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, created.ID, remaining[0].ID)
}

func TestGetReturnsStoredAsset(t *testing.T) {
	svc, _ := newTestService(t)
	created, err := svc.Create(monitorRequest(), "")
	require.NoError(t, err)

	found, err := svc.Get(created.ID)

	require.NoError(t, err)
	assert.Equal(t, created.Code, found.Code)
}
