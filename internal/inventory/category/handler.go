package category

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/emmeril/assets/pkg/apperrors"
	"github.com/emmeril/assets/pkg/models"
)

type CategoryHandler struct {
	service *CategoryService
	log     *zap.Logger
}

func NewCategoryHandler(service *CategoryService, log *zap.Logger) *CategoryHandler {
	return &CategoryHandler{
		service: service,
		log:     log,
	}
}

func (h *CategoryHandler) RegisterRoutes(router *gin.Engine, auth gin.HandlerFunc) {
	protected := router.Group("", auth)
	{
		protected.GET("/categories", h.ListCategories)
		protected.POST("/categories", h.CreateCategory)
		protected.GET("/categories/:id", h.GetCategory)
		protected.PUT("/categories/:id", h.UpdateCategory)
		protected.DELETE("/categories/:id", h.DeleteCategory)
	}
}

func (h *CategoryHandler) ListCategories(c *gin.Context) {
	list, err := h.service.List()
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"categories": list})
}

func (h *CategoryHandler) GetCategory(c *gin.Context) {
	id, ok := h.categoryID(c)
	if !ok {
		return
	}

	cat, err := h.service.Get(id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"category": cat})
}

func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var req models.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	cat, err := h.service.Create(req.Name)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Category added successfully", "category": cat})
}

func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	id, ok := h.categoryID(c)
	if !ok {
		return
	}

	var req models.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	cat, err := h.service.Update(id, req.Name)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Category updated successfully", "category": cat})
}

func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	id, ok := h.categoryID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(id); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Category deleted successfully"})
}

func (h *CategoryHandler) categoryID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category id"})
		return 0, false
	}
	return id, true
}

func (h *CategoryHandler) respondError(c *gin.Context, err error) {
	var verr *apperrors.ValidationError
	if errors.As(err, &verr) {
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Message, "fields": verr.Fields})
		return
	}
	var nf *apperrors.NotFoundError
	if errors.As(err, &nf) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
		return
	}
	var conflict *apperrors.ConflictError
	if errors.As(err, &conflict) {
		c.JSON(http.StatusConflict, gin.H{"error": conflict.Message})
		return
	}

	h.log.Error("category storage failure", zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
}
