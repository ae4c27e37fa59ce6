package assets

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/emmeril/assets/internal/spreadsheet"
	"github.com/emmeril/assets/internal/uploads"
	"github.com/emmeril/assets/pkg/apperrors"
	"github.com/emmeril/assets/pkg/models"
)

// barcodeImageURL is the external renderer the printed labels point at,
// keyed by the asset code.
const barcodeImageURL = "https://barcode.tec-it.com/barcode.ashx?code=Code128&data=%s"

type AssetHandler struct {
	service *AssetService
	photos  *uploads.Storage
	log     *zap.Logger
}

func NewAssetHandler(service *AssetService, photos *uploads.Storage, log *zap.Logger) *AssetHandler {
	return &AssetHandler{
		service: service,
		photos:  photos,
		log:     log,
	}
}

func (h *AssetHandler) RegisterRoutes(router *gin.Engine, auth gin.HandlerFunc) {
	protected := router.Group("", auth)
	{
		protected.GET("/assets", h.ListAssets)
		protected.POST("/assets", h.CreateAsset)
		protected.GET("/assets/export", h.ExportAssets)
		protected.POST("/assets/import", h.ImportAssets)
		protected.GET("/assets/:id", h.GetAsset)
		protected.PUT("/assets/:id", h.UpdateAsset)
		protected.DELETE("/assets/:id", h.DeleteAsset)
		protected.GET("/assets/:id/label", h.GetAssetLabel)
	}
}

// ListAssets returns the stored assets, optionally filtered by exact
// category name and sliced by offset/limit. Filtering and pagination live
// here in the presentation layer; the service always works on the full list.
func (h *AssetHandler) ListAssets(c *gin.Context) {
	list, err := h.service.List()
	if err != nil {
		h.respondError(c, err)
		return
	}

	if category := c.Query("category"); category != "" {
		filtered := make([]models.Asset, 0, len(list))
		for _, asset := range list {
			if asset.CategoryName == category {
				filtered = append(filtered, asset)
			}
		}
		list = filtered
	}

	total := len(list)
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if offset < 0 {
		offset = 0
	}
	if offset > total {
		offset = total
	}
	list = list[offset:]
	if limitParam := c.Query("limit"); limitParam != "" {
		if limit, err := strconv.Atoi(limitParam); err == nil && limit >= 0 && limit < len(list) {
			list = list[:limit]
		}
	}

	c.JSON(http.StatusOK, gin.H{"assets": list, "total": total})
}

func (h *AssetHandler) GetAsset(c *gin.Context) {
	id, ok := h.assetID(c)
	if !ok {
		return
	}

	asset, err := h.service.Get(id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"asset": asset})
}

func (h *AssetHandler) CreateAsset(c *gin.Context) {
	var req models.AssetRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	photoFilename, ok := h.savePhoto(c)
	if !ok {
		return
	}

	asset, err := h.service.Create(req, photoFilename)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Asset added successfully", "asset": asset})
}

func (h *AssetHandler) UpdateAsset(c *gin.Context) {
	id, ok := h.assetID(c)
	if !ok {
		return
	}

	var req models.AssetRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	photoFilename, ok := h.savePhoto(c)
	if !ok {
		return
	}

	asset, err := h.service.Update(id, req, photoFilename)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Asset updated successfully", "asset": asset})
}

func (h *AssetHandler) DeleteAsset(c *gin.Context) {
	id, ok := h.assetID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(id); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Asset deleted successfully"})
}

// GetAssetLabel returns the data a printed barcode label needs. Rendering is
// delegated to an external image service keyed by the asset code.
func (h *AssetHandler) GetAssetLabel(c *gin.Context) {
	id, ok := h.assetID(c)
	if !ok {
		return
	}

	asset, err := h.service.Get(id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":          asset.ID,
		"code":        asset.Code,
		"description": asset.Description,
		"category":    asset.CategoryName,
		"barcodeUrl":  fmt.Sprintf(barcodeImageURL, url.QueryEscape(asset.Code)),
	})
}

func (h *AssetHandler) ExportAssets(c *gin.Context) {
	list, err := h.service.List()
	if err != nil {
		h.respondError(c, err)
		return
	}

	buf, err := spreadsheet.WriteAssets(list)
	if err != nil {
		h.log.Error("failed to build export workbook", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to export assets"})
		return
	}

	c.Header("Content-Disposition", `attachment; filename=assets.xlsx`)
	c.Data(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		buf.Bytes(),
	)
}

// ImportAssets replaces the whole stored list with the uploaded workbook's
// rows, matching the export format.
func (h *AssetHandler) ImportAssets(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File is missing"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unable to read uploaded file", "details": err.Error()})
		return
	}
	defer file.Close()

	list, err := spreadsheet.ReadAssets(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid workbook", "details": err.Error()})
		return
	}

	if err := h.service.Replace(list); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Assets imported successfully", "count": len(list)})
}

func (h *AssetHandler) assetID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid asset id"})
		return 0, false
	}
	return id, true
}

// savePhoto stores the optional multipart photo and returns its stored name,
// or blank when no file was uploaded.
func (h *AssetHandler) savePhoto(c *gin.Context) (string, bool) {
	fileHeader, err := c.FormFile("photo")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return "", true
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid photo upload", "details": err.Error()})
		return "", false
	}

	name, err := h.photos.SavePhoto(c, fileHeader)
	if err != nil {
		h.log.Error("failed to store photo", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store photo"})
		return "", false
	}
	return name, true
}

func (h *AssetHandler) respondError(c *gin.Context, err error) {
	var verr *apperrors.ValidationError
	if errors.As(err, &verr) {
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Message, "fields": verr.Fields})
		return
	}
	var nf *apperrors.NotFoundError
	if errors.As(err, &nf) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Asset not found"})
		return
	}

	h.log.Error("asset storage failure", zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
}
