package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jmcastellanos/doctrack-api/internal/dto"
	apierrors "github.com/jmcastellanos/doctrack-api/internal/errors"
	"github.com/jmcastellanos/doctrack-api/internal/middleware"
	"github.com/jmcastellanos/doctrack-api/internal/models"
	"github.com/jmcastellanos/doctrack-api/internal/services"
	"github.com/jmcastellanos/doctrack-api/internal/utils"
)

// DocumentHandler exposes document CRUD and the optional AI summarizer.
type DocumentHandler struct {
	documentService *services.DocumentService
	aiService       *services.AIService
}

// NewDocumentHandler creates a new DocumentHandler.
func NewDocumentHandler(documentService *services.DocumentService, aiService *services.AIService) *DocumentHandler {
	return &DocumentHandler{
		documentService: documentService,
		aiService:       aiService,
	}
}

// ListDocuments returns documents matching the query filters.
func (h *DocumentHandler) ListDocuments(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	input := services.ListDocumentsInput{
		Subject:  c.Query("subject"),
		Page:     params.Page,
		PageSize: params.Limit,
	}

	if statusStr := c.Query("status"); statusStr != "" {
		status := models.DocumentStatus(statusStr)
		if status != models.DocumentStatusInProgress && status != models.DocumentStatusFinished {
			apierrors.BadRequest(c, "Invalid status filter")
			return
		}
		input.Status = &status
	}
	if caseIDStr := c.Query("case_id"); caseIDStr != "" {
		caseID, err := strconv.ParseUint(caseIDStr, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid case_id")
			return
		}
		input.CaseID = &caseID
	}
	if typeIDStr := c.Query("document_type_id"); typeIDStr != "" {
		typeID, err := strconv.ParseUint(typeIDStr, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid document_type_id")
			return
		}
		input.DocumentTypeID = &typeID
	}

	docs, total, err := h.documentService.ListDocuments(input)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch documents")
		return
	}

	items := make([]dto.DocumentDTO, len(docs))
	for i, doc := range docs {
		items[i] = dto.ToDocumentDTO(doc)
	}

	c.JSON(http.StatusOK, gin.H{
		"documents": items,
		"pagination": utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}

// GetDocument returns a document with its relations.
func (h *DocumentHandler) GetDocument(c *gin.Context) {
	doc, ok := middleware.GetDocument(c)
	if !ok {
		apierrors.InternalError(c, "Document not found in context")
		return
	}

	full, err := h.documentService.GetDocument(doc.ID)
	if err != nil {
		respondDocumentError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToDocumentDTO(*full))
}

// CreateDocument registers a new document.
func (h *DocumentHandler) CreateDocument(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	type CreateDocumentRequest struct {
		Subject        string  `json:"subject" binding:"required"`
		Body           string  `json:"body"`
		DocumentTypeID uint64  `json:"document_type_id" binding:"required"`
		OriginAreaID   *uint64 `json:"origin_area_id"`
		CaseID         *uint64 `json:"case_id"`
	}

	var req CreateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	doc, err := h.documentService.CreateDocument(services.CreateDocumentInput{
		Subject:        req.Subject,
		Body:           req.Body,
		DocumentTypeID: req.DocumentTypeID,
		OriginAreaID:   req.OriginAreaID,
		CaseID:         req.CaseID,
		CreatorID:      userID,
	})
	if err != nil {
		respondDocumentError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToDocumentDTO(*doc))
}

// UpdateDocument updates a document's editable fields. The status field is
// not accepted here; FINISHED is only reachable through the completion gate.
func (h *DocumentHandler) UpdateDocument(c *gin.Context) {
	doc, ok := middleware.GetDocument(c)
	if !ok {
		apierrors.InternalError(c, "Document not found in context")
		return
	}

	type UpdateDocumentRequest struct {
		Subject        *string `json:"subject"`
		Body           *string `json:"body"`
		DocumentTypeID *uint64 `json:"document_type_id"`
		OriginAreaID   *uint64 `json:"origin_area_id"`
		CaseID         *uint64 `json:"case_id"`
	}

	var req UpdateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	updated, err := h.documentService.UpdateDocument(doc.ID, services.UpdateDocumentInput{
		Subject:        req.Subject,
		Body:           req.Body,
		DocumentTypeID: req.DocumentTypeID,
		OriginAreaID:   req.OriginAreaID,
		CaseID:         req.CaseID,
	})
	if err != nil {
		respondDocumentError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToDocumentDTO(*updated))
}

// DeleteDocument deletes a document and its assignments.
func (h *DocumentHandler) DeleteDocument(c *gin.Context) {
	doc, ok := middleware.GetDocument(c)
	if !ok {
		apierrors.InternalError(c, "Document not found in context")
		return
	}

	if err := h.documentService.DeleteDocument(doc.ID); err != nil {
		respondDocumentError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Document deleted successfully",
	})
}

// SummarizeDocument produces an AI abstract of the document body.
func (h *DocumentHandler) SummarizeDocument(c *gin.Context) {
	if h.aiService == nil {
		apierrors.ServiceUnavailable(c, "AI service is not configured")
		return
	}

	doc, ok := middleware.GetDocument(c)
	if !ok {
		apierrors.InternalError(c, "Document not found in context")
		return
	}

	summary, err := h.aiService.SummarizeDocument(c.Request.Context(), doc.Subject, doc.Body)
	if err != nil {
		apierrors.InternalError(c, "Failed to summarize document")
		return
	}

	c.JSON(http.StatusOK, summary)
}

func respondDocumentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrDocumentNotFound):
		apierrors.NotFound(c, "Document not found")
	case errors.Is(err, services.ErrSubjectRequired):
		apierrors.BadRequest(c, "Subject is required")
	default:
		apierrors.InternalError(c, "")
	}
}
