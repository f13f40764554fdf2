package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jmcastellanos/doctrack-api/internal/database"
	apierrors "github.com/jmcastellanos/doctrack-api/internal/errors"
	"github.com/jmcastellanos/doctrack-api/internal/middleware"
	"github.com/jmcastellanos/doctrack-api/internal/models"
	"github.com/jmcastellanos/doctrack-api/internal/utils"
)

// CaseHandler exposes case CRUD. Case status is owned by the completion
// cascade and is not settable through these endpoints.
type CaseHandler struct{}

// NewCaseHandler creates a new CaseHandler.
func NewCaseHandler() *CaseHandler {
	return &CaseHandler{}
}

// ListCases returns cases matching the query filters.
func (h *CaseHandler) ListCases(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	query := database.GetDB().Model(&models.Case{})

	if statusStr := c.Query("status"); statusStr != "" {
		status := models.CaseStatus(statusStr)
		if status != models.CaseStatusOpen && status != models.CaseStatusClosed {
			apierrors.BadRequest(c, "Invalid status filter")
			return
		}
		query = query.Where("status = ?", status)
	}
	if subject := c.Query("subject"); subject != "" {
		query = query.Where("subject LIKE ?", "%"+subject+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		apierrors.InternalError(c, "Failed to count cases")
		return
	}

	var cases []models.Case
	if err := query.
		Order("created_at DESC").
		Scopes(database.Paginate(params)).
		Preload("Creator").
		Find(&cases).Error; err != nil {
		apierrors.InternalError(c, "Failed to fetch cases")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"cases": cases,
		"pagination": utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}

// GetCase returns a case with its documents.
func (h *CaseHandler) GetCase(c *gin.Context) {
	caseID, ok := parseCaseID(c)
	if !ok {
		return
	}

	var cs models.Case
	if err := database.GetDB().
		Preload("Creator").
		Preload("Documents").
		First(&cs, caseID).Error; err != nil {
		apierrors.NotFound(c, "Case not found")
		return
	}

	c.JSON(http.StatusOK, cs)
}

// CreateCase opens a new case with a generated file number.
func (h *CaseHandler) CreateCase(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	type CreateCaseRequest struct {
		Subject string `json:"subject" binding:"required"`
	}

	var req CreateCaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	code, err := utils.GenerateCaseCode()
	if err != nil {
		apierrors.InternalError(c, "Failed to generate case code")
		return
	}

	cs := models.Case{
		Code:      code,
		Subject:   req.Subject,
		Status:    models.CaseStatusOpen,
		CreatorID: userID,
	}

	if err := database.GetDB().Create(&cs).Error; err != nil {
		apierrors.InternalError(c, "Failed to create case")
		return
	}

	c.JSON(http.StatusCreated, cs)
}

// UpdateCase updates a case's subject. Status is deliberately not bindable.
func (h *CaseHandler) UpdateCase(c *gin.Context) {
	caseID, ok := parseCaseID(c)
	if !ok {
		return
	}

	var cs models.Case
	if err := database.GetDB().First(&cs, caseID).Error; err != nil {
		apierrors.NotFound(c, "Case not found")
		return
	}

	type UpdateCaseRequest struct {
		Subject *string `json:"subject"`
	}

	var req UpdateCaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if req.Subject != nil {
		if *req.Subject == "" {
			apierrors.BadRequest(c, "Subject cannot be empty")
			return
		}
		cs.Subject = *req.Subject
	}

	if err := database.GetDB().Save(&cs).Error; err != nil {
		apierrors.InternalError(c, "Failed to update case")
		return
	}

	c.JSON(http.StatusOK, cs)
}

// DeleteCase soft deletes a case.
func (h *CaseHandler) DeleteCase(c *gin.Context) {
	caseID, ok := parseCaseID(c)
	if !ok {
		return
	}

	var cs models.Case
	if err := database.GetDB().First(&cs, caseID).Error; err != nil {
		apierrors.NotFound(c, "Case not found")
		return
	}

	if err := database.GetDB().Delete(&cs).Error; err != nil {
		apierrors.InternalError(c, "Failed to delete case")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Case deleted successfully",
	})
}

func parseCaseID(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid case ID")
		return 0, false
	}
	return id, true
}
