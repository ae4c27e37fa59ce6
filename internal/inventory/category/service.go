package category

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/emmeril/assets/internal/storage"
	"github.com/emmeril/assets/pkg/apperrors"
	"github.com/emmeril/assets/pkg/models"
)

// CategoryService owns category CRUD. Duplicate names are rejected
// case-insensitively and checked fail-fast rather than aggregated.
// Assets reference categories by name, so a rename does not cascade to the
// assets that still carry the old name; delete is guarded by an exact-match
// scan of the asset list instead.
type CategoryService struct {
	store  *storage.Store[models.Category]
	assets *storage.Store[models.Asset]
	log    *zap.Logger
	now    func() time.Time
}

func NewCategoryService(store *storage.Store[models.Category], assets *storage.Store[models.Asset], log *zap.Logger) *CategoryService {
	return &CategoryService{
		store:  store,
		assets: assets,
		log:    log,
		now:    time.Now,
	}
}

// List returns every stored category.
func (s *CategoryService) List() ([]models.Category, error) {
	return s.store.Load()
}

// Get returns the category with the given id.
func (s *CategoryService) Get(id int64) (*models.Category, error) {
	list, err := s.store.Load()
	if err != nil {
		return nil, err
	}
	for i := range list {
		if list[i].ID == id {
			return &list[i], nil
		}
	}
	return nil, &apperrors.NotFoundError{Resource: "category", ID: id}
}

// Create adds a category with a timestamp id. Blank names are rejected, and
// a name already taken in any letter case is a conflict.
func (s *CategoryService) Create(name string) (*models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.NewValidationError("name is required", "name")
	}

	list, err := s.store.Load()
	if err != nil {
		return nil, err
	}
	if duplicate(list, name, 0) {
		return nil, &apperrors.ConflictError{Message: fmt.Sprintf("category %q already exists", name)}
	}

	cat := models.Category{ID: s.now().UnixMilli(), Name: name}
	list = append(list, cat)
	if err := s.store.Save(list); err != nil {
		return nil, err
	}

	s.log.Info("category created", zap.Int64("id", cat.ID), zap.String("name", cat.Name))
	return &cat, nil
}

// Update renames the category with the given id, keeping the duplicate check
// but excluding the record being renamed.
func (s *CategoryService) Update(id int64, name string) (*models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.NewValidationError("name is required", "name")
	}

	list, err := s.store.Load()
	if err != nil {
		return nil, err
	}

	index := -1
	for i := range list {
		if list[i].ID == id {
			index = i
			break
		}
	}
	if index == -1 {
		return nil, &apperrors.NotFoundError{Resource: "category", ID: id}
	}
	if duplicate(list, name, id) {
		return nil, &apperrors.ConflictError{Message: fmt.Sprintf("category %q already exists", name)}
	}

	list[index].Name = name
	if err := s.store.Save(list); err != nil {
		return nil, err
	}

	s.log.Info("category renamed", zap.Int64("id", id), zap.String("name", name))
	return &list[index], nil
}

// Delete removes the category unless any asset still references its name.
func (s *CategoryService) Delete(id int64) error {
	list, err := s.store.Load()
	if err != nil {
		return err
	}

	index := -1
	for i := range list {
		if list[i].ID == id {
			index = i
			break
		}
	}
	if index == -1 {
		return &apperrors.NotFoundError{Resource: "category", ID: id}
	}

	assetList, err := s.assets.Load()
	if err != nil {
		return err
	}
	for _, asset := range assetList {
		if asset.CategoryName == list[index].Name {
			return &apperrors.ConflictError{
				Message: fmt.Sprintf("category %q is still referenced by assets", list[index].Name),
			}
		}
	}

	name := list[index].Name
	list = append(list[:index], list[index+1:]...)
	if err := s.store.Save(list); err != nil {
		return err
	}

	s.log.Info("category deleted", zap.Int64("id", id), zap.String("name", name))
	return nil
}

func duplicate(list []models.Category, name string, excludeID int64) bool {
	for _, cat := range list {
		if cat.ID != excludeID && strings.EqualFold(cat.Name, name) {
			return true
		}
	}
	return false
}
