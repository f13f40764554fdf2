package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jmcastellanos/doctrack-api/internal/database"
	apierrors "github.com/jmcastellanos/doctrack-api/internal/errors"
	"github.com/jmcastellanos/doctrack-api/internal/models"
	"github.com/jmcastellanos/doctrack-api/internal/utils"
)

// CatalogHandler exposes CRUD for the lookup entities: areas, positions and
// document types.
type CatalogHandler struct{}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler() *CatalogHandler {
	return &CatalogHandler{}
}

// Areas

func (h *CatalogHandler) ListAreas(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	query := database.GetDB().Model(&models.Area{})
	if name := c.Query("name"); name != "" {
		query = query.Where("name LIKE ?", "%"+name+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		apierrors.InternalError(c, "Failed to count areas")
		return
	}

	var areas []models.Area
	if err := query.Order("name ASC").Scopes(database.Paginate(params)).Find(&areas).Error; err != nil {
		apierrors.InternalError(c, "Failed to fetch areas")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"areas": areas,
		"pagination": utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}

func (h *CatalogHandler) CreateArea(c *gin.Context) {
	type CreateAreaRequest struct {
		Name        string `json:"name" binding:"required"`
		Description string `json:"description"`
	}

	var req CreateAreaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	area := models.Area{
		Name:        req.Name,
		Description: req.Description,
	}

	if err := database.GetDB().Create(&area).Error; err != nil {
		apierrors.Conflict(c, "Area already exists")
		return
	}

	c.JSON(http.StatusCreated, area)
}

func (h *CatalogHandler) UpdateArea(c *gin.Context) {
	id, ok := parseCatalogID(c)
	if !ok {
		return
	}

	var area models.Area
	if err := database.GetDB().First(&area, id).Error; err != nil {
		apierrors.NotFound(c, "Area not found")
		return
	}

	type UpdateAreaRequest struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
	}

	var req UpdateAreaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if req.Name != nil {
		area.Name = *req.Name
	}
	if req.Description != nil {
		area.Description = *req.Description
	}

	if err := database.GetDB().Save(&area).Error; err != nil {
		apierrors.InternalError(c, "Failed to update area")
		return
	}

	c.JSON(http.StatusOK, area)
}

func (h *CatalogHandler) DeleteArea(c *gin.Context) {
	id, ok := parseCatalogID(c)
	if !ok {
		return
	}

	if err := database.GetDB().Delete(&models.Area{}, id).Error; err != nil {
		apierrors.InternalError(c, "Failed to delete area")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Area deleted successfully"})
}

// Positions

func (h *CatalogHandler) ListPositions(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	query := database.GetDB().Model(&models.Position{})
	if areaIDStr := c.Query("area_id"); areaIDStr != "" {
		areaID, err := strconv.ParseUint(areaIDStr, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid area_id")
			return
		}
		query = query.Where("area_id = ?", areaID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		apierrors.InternalError(c, "Failed to count positions")
		return
	}

	var positions []models.Position
	if err := query.Order("name ASC").Scopes(database.Paginate(params)).Preload("Area").Find(&positions).Error; err != nil {
		apierrors.InternalError(c, "Failed to fetch positions")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"positions": positions,
		"pagination": utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}

func (h *CatalogHandler) CreatePosition(c *gin.Context) {
	type CreatePositionRequest struct {
		Name   string  `json:"name" binding:"required"`
		AreaID *uint64 `json:"area_id"`
	}

	var req CreatePositionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	position := models.Position{
		Name:   req.Name,
		AreaID: req.AreaID,
	}

	if err := database.GetDB().Create(&position).Error; err != nil {
		apierrors.InternalError(c, "Failed to create position")
		return
	}

	c.JSON(http.StatusCreated, position)
}

func (h *CatalogHandler) UpdatePosition(c *gin.Context) {
	id, ok := parseCatalogID(c)
	if !ok {
		return
	}

	var position models.Position
	if err := database.GetDB().First(&position, id).Error; err != nil {
		apierrors.NotFound(c, "Position not found")
		return
	}

	type UpdatePositionRequest struct {
		Name   *string `json:"name"`
		AreaID *uint64 `json:"area_id"`
	}

	var req UpdatePositionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if req.Name != nil {
		position.Name = *req.Name
	}
	if req.AreaID != nil {
		position.AreaID = req.AreaID
	}

	if err := database.GetDB().Save(&position).Error; err != nil {
		apierrors.InternalError(c, "Failed to update position")
		return
	}

	c.JSON(http.StatusOK, position)
}

func (h *CatalogHandler) DeletePosition(c *gin.Context) {
	id, ok := parseCatalogID(c)
	if !ok {
		return
	}

	if err := database.GetDB().Delete(&models.Position{}, id).Error; err != nil {
		apierrors.InternalError(c, "Failed to delete position")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Position deleted successfully"})
}

// Document types

func (h *CatalogHandler) ListDocumentTypes(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	query := database.GetDB().Model(&models.DocumentType{})
	if name := c.Query("name"); name != "" {
		query = query.Where("name LIKE ?", "%"+name+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		apierrors.InternalError(c, "Failed to count document types")
		return
	}

	var types []models.DocumentType
	if err := query.Order("name ASC").Scopes(database.Paginate(params)).Find(&types).Error; err != nil {
		apierrors.InternalError(c, "Failed to fetch document types")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"document_types": types,
		"pagination": utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}

func (h *CatalogHandler) CreateDocumentType(c *gin.Context) {
	type CreateDocumentTypeRequest struct {
		Name        string `json:"name" binding:"required"`
		Description string `json:"description"`
	}

	var req CreateDocumentTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	docType := models.DocumentType{
		Name:        req.Name,
		Description: req.Description,
	}

	if err := database.GetDB().Create(&docType).Error; err != nil {
		apierrors.Conflict(c, "Document type already exists")
		return
	}

	c.JSON(http.StatusCreated, docType)
}

func (h *CatalogHandler) UpdateDocumentType(c *gin.Context) {
	id, ok := parseCatalogID(c)
	if !ok {
		return
	}

	var docType models.DocumentType
	if err := database.GetDB().First(&docType, id).Error; err != nil {
		apierrors.NotFound(c, "Document type not found")
		return
	}

	type UpdateDocumentTypeRequest struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
	}

	var req UpdateDocumentTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if req.Name != nil {
		docType.Name = *req.Name
	}
	if req.Description != nil {
		docType.Description = *req.Description
	}

	if err := database.GetDB().Save(&docType).Error; err != nil {
		apierrors.InternalError(c, "Failed to update document type")
		return
	}

	c.JSON(http.StatusOK, docType)
}

func (h *CatalogHandler) DeleteDocumentType(c *gin.Context) {
	id, ok := parseCatalogID(c)
	if !ok {
		return
	}

	if err := database.GetDB().Delete(&models.DocumentType{}, id).Error; err != nil {
		apierrors.InternalError(c, "Failed to delete document type")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Document type deleted successfully"})
}

func parseCatalogID(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid ID")
		return 0, false
	}
	return id, true
}
