package assets

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/emmeril/assets/internal/storage"
	"github.com/emmeril/assets/pkg/apperrors"
	"github.com/emmeril/assets/pkg/models"
)

// specCategories are the category names whose assets must carry hardware
// specification fields. Fixed policy, compared case-insensitively.
var specCategories = map[string]bool{
	"laptop":   true,
	"komputer": true,
}

var trailingDigits = regexp.MustCompile(`\d+$`)

var datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// AssetService owns the asset schema rules: conditional required fields,
// numeric coercion and asset code derivation. Every operation reloads the
// full list from the store and persists it back whole.
type AssetService struct {
	store *storage.Store[models.Asset]
	log   *zap.Logger
	now   func() time.Time
}

func NewAssetService(store *storage.Store[models.Asset], log *zap.Logger) *AssetService {
	return &AssetService{
		store: store,
		log:   log,
		now:   time.Now,
	}
}

// NeedsSpecFields reports whether assets in the category require the
// processor, ram, storage and operatingSystem fields.
func NeedsSpecFields(categoryName string) bool {
	return specCategories[strings.ToLower(categoryName)]
}

// GenerateCode derives the next asset code for a category: the first three
// characters of the name upper-cased (the whole name when shorter), a dash,
// and the highest trailing number among existing codes with that prefix plus
// one, zero-padded to four digits. Recomputed from the live list on every
// call so deletions and imports shift the numbering naturally.
func GenerateCode(existing []models.Asset, categoryName string) string {
	prefix := categoryName
	if len(prefix) > 3 {
		prefix = prefix[:3]
	}
	prefix = strings.ToUpper(prefix)

	last := 0
	for _, asset := range existing {
		if !strings.HasPrefix(asset.Code, prefix) {
			continue
		}
		if match := trailingDigits.FindString(asset.Code); match != "" {
			if n, err := strconv.Atoi(match); err == nil && n > last {
				last = n
			}
		}
	}

	return fmt.Sprintf("%s-%04d", prefix, last+1)
}

// List returns every stored asset. Filtering and pagination are presentation
// concerns handled by the HTTP layer.
func (s *AssetService) List() ([]models.Asset, error) {
	return s.store.Load()
}

// Get returns the asset with the given id.
func (s *AssetService) Get(id int64) (*models.Asset, error) {
	list, err := s.store.Load()
	if err != nil {
		return nil, err
	}
	for i := range list {
		if list[i].ID == id {
			return &list[i], nil
		}
	}
	return nil, &apperrors.NotFoundError{Resource: "asset", ID: id}
}

// Create validates the request, derives code and id, and persists the new
// asset. photoFilename is the stored name of an uploaded photo, or blank.
func (s *AssetService) Create(req models.AssetRequest, photoFilename string) (*models.Asset, error) {
	quantity, price, err := s.validate(req)
	if err != nil {
		return nil, err
	}

	list, err := s.store.Load()
	if err != nil {
		return nil, err
	}

	code := strings.TrimSpace(req.Code)
	if code == "" {
		code = GenerateCode(list, req.CategoryName)
	}

	asset := s.buildAsset(s.now().UnixMilli(), code, req, quantity, price, photoFilename)
	list = append(list, asset)

	if err := s.store.Save(list); err != nil {
		return nil, err
	}

	s.log.Info("asset created",
		zap.Int64("id", asset.ID),
		zap.String("code", asset.Code),
		zap.String("category", asset.CategoryName),
	)
	return &asset, nil
}

// Update replaces every field of the asset with the given id. The code is
// preserved unless the caller supplies a new one, and the photo is preserved
// unless a new upload arrived. There are no sparse patch semantics: every
// required field must be resupplied.
func (s *AssetService) Update(id int64, req models.AssetRequest, photoFilename string) (*models.Asset, error) {
	quantity, price, err := s.validate(req)
	if err != nil {
		return nil, err
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
		return nil, &apperrors.NotFoundError{Resource: "asset", ID: id}
	}
	previous := list[index]

	code := strings.TrimSpace(req.Code)
	if code == "" {
		code = previous.Code
	}
	if photoFilename == "" {
		photoFilename = previous.PhotoFilename
	}

	asset := s.buildAsset(id, code, req, quantity, price, photoFilename)
	list[index] = asset

	if err := s.store.Save(list); err != nil {
		return nil, err
	}

	s.log.Info("asset updated", zap.Int64("id", id), zap.String("code", asset.Code))
	return &asset, nil
}

// Delete removes the asset with the given id and persists the list.
func (s *AssetService) Delete(id int64) error {
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
		return &apperrors.NotFoundError{Resource: "asset", ID: id}
	}

	list = append(list[:index], list[index+1:]...)
	if err := s.store.Save(list); err != nil {
		return err
	}

	s.log.Info("asset deleted", zap.Int64("id", id))
	return nil
}

// Replace overwrites the whole stored list, used by spreadsheet import.
func (s *AssetService) Replace(list []models.Asset) error {
	if err := s.store.Save(list); err != nil {
		return err
	}
	s.log.Info("asset list replaced", zap.Int("count", len(list)))
	return nil
}

// validate checks every required field, the conditional specification fields
// and the numeric bounds, aggregating all violations into one error.
func (s *AssetService) validate(req models.AssetRequest) (int, float64, error) {
	var missing []string
	requireField := func(name, value string) {
		if strings.TrimSpace(value) == "" {
			missing = append(missing, name)
		}
	}

	requireField("categoryName", req.CategoryName)
	requireField("description", req.Description)
	requireField("serialNumber", req.SerialNumber)
	requireField("quantity", req.Quantity)
	requireField("price", req.Price)
	requireField("purchaseDate", req.PurchaseDate)
	requireField("division", req.Division)
	requireField("ownerUsername", req.OwnerUsername)
	requireField("brand", req.Brand)

	needsSpec := NeedsSpecFields(req.CategoryName)
	if needsSpec {
		requireField("processor", req.Processor)
		requireField("ram", req.RAM)
		requireField("storage", req.Storage)
		requireField("operatingSystem", req.OperatingSystem)
	}

	if len(missing) > 0 {
		message := "all required fields must be filled"
		if needsSpec {
			message = fmt.Sprintf("all required fields must be filled for category %q", req.CategoryName)
		}
		return 0, 0, apperrors.NewValidationError(message, missing...)
	}

	var invalid []string
	quantity, err := strconv.Atoi(strings.TrimSpace(req.Quantity))
	if err != nil || quantity < 1 {
		invalid = append(invalid, "quantity")
	}
	price, err := strconv.ParseFloat(strings.TrimSpace(req.Price), 64)
	if err != nil || price < 0 {
		invalid = append(invalid, "price")
	}
	if !datePattern.MatchString(strings.TrimSpace(req.PurchaseDate)) {
		invalid = append(invalid, "purchaseDate")
	}
	if len(invalid) > 0 {
		return 0, 0, apperrors.NewValidationError("invalid field values", invalid...)
	}

	return quantity, price, nil
}

// buildAsset assembles the stored record. The specification fields are set
// only for categories that require them; other categories omit them entirely
// rather than storing empty strings.
func (s *AssetService) buildAsset(id int64, code string, req models.AssetRequest, quantity int, price float64, photoFilename string) models.Asset {
	asset := models.Asset{
		ID:            id,
		Code:          code,
		CategoryName:  req.CategoryName,
		Description:   req.Description,
		SerialNumber:  req.SerialNumber,
		Division:      req.Division,
		OwnerUsername: req.OwnerUsername,
		Brand:         req.Brand,
		PurchaseDate:  strings.TrimSpace(req.PurchaseDate),
		Quantity:      quantity,
		Price:         price,
		PhotoFilename: photoFilename,
	}

	if NeedsSpecFields(req.CategoryName) {
		processor := req.Processor
		ram := req.RAM
		disk := req.Storage
		osName := req.OperatingSystem
		asset.Processor = &processor
		asset.RAM = &ram
		asset.Storage = &disk
		asset.OperatingSystem = &osName
	}

	return asset
}
