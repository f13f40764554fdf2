package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jmcastellanos/doctrack-api/internal/dto"
	"github.com/jmcastellanos/doctrack-api/internal/duedate"
	apierrors "github.com/jmcastellanos/doctrack-api/internal/errors"
	"github.com/jmcastellanos/doctrack-api/internal/middleware"
	"github.com/jmcastellanos/doctrack-api/internal/services"
)

// AssignmentHandler exposes the assignment deadline and extension workflow.
type AssignmentHandler struct {
	assignmentService *services.AssignmentService
}

// NewAssignmentHandler creates a new AssignmentHandler.
func NewAssignmentHandler(assignmentService *services.AssignmentService) *AssignmentHandler {
	return &AssignmentHandler{
		assignmentService: assignmentService,
	}
}

// CreateAssignment delegates the document to a user with a response deadline.
func (h *AssignmentHandler) CreateAssignment(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	doc, ok := middleware.GetDocument(c)
	if !ok {
		apierrors.InternalError(c, "Document not found in context")
		return
	}

	type CreateAssignmentRequest struct {
		AssigneeID           uint64 `json:"assignee_id" binding:"required"`
		ResponseDeadlineDays int    `json:"response_deadline_days"`
		Notes                string `json:"notes"`
		DayPolicy            string `json:"day_policy"`
	}

	var req CreateAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	assignment, err := h.assignmentService.CreateAssignment(services.CreateAssignmentInput{
		DocumentID:           doc.ID,
		AssigneeID:           req.AssigneeID,
		CreatorID:            userID,
		ResponseDeadlineDays: req.ResponseDeadlineDays,
		Notes:                req.Notes,
		DayPolicy:            duedate.Policy(req.DayPolicy),
	})
	if err != nil {
		respondAssignmentError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToAssignmentDTO(*assignment))
}

// ListDocumentAssignments lists the document's assignments.
func (h *AssignmentHandler) ListDocumentAssignments(c *gin.Context) {
	doc, ok := middleware.GetDocument(c)
	if !ok {
		apierrors.InternalError(c, "Document not found in context")
		return
	}

	assignments, err := h.assignmentService.ListByDocument(doc.ID)
	if err != nil {
		apierrors.InternalError(c, "Failed to list assignments")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"assignments": dto.ToAssignmentDTOs(assignments),
	})
}

// PendingCount returns how many assignments of the document still represent
// outstanding work.
func (h *AssignmentHandler) PendingCount(c *gin.Context) {
	doc, ok := middleware.GetDocument(c)
	if !ok {
		apierrors.InternalError(c, "Document not found in context")
		return
	}

	count, err := h.assignmentService.CountPendingAssignments(doc.ID)
	if err != nil {
		apierrors.InternalError(c, "Failed to count assignments")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"document_id":   doc.ID,
		"pending_count": count,
	})
}

// RequestExtension records a pending extension request on an assignment.
func (h *AssignmentHandler) RequestExtension(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	assignmentID, ok := parseAssignmentID(c)
	if !ok {
		return
	}

	type RequestExtensionRequest struct {
		RequestedDays int `json:"requested_days"`
	}

	var req RequestExtensionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	assignment, err := h.assignmentService.RequestExtension(assignmentID, req.RequestedDays, userID)
	if err != nil {
		respondAssignmentError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToAssignmentDTO(*assignment))
}

// ApproveExtension grants an extension; the approved day count may differ
// from the one requested.
func (h *AssignmentHandler) ApproveExtension(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	assignmentID, ok := parseAssignmentID(c)
	if !ok {
		return
	}

	type ApproveExtensionRequest struct {
		ApprovedDays int `json:"approved_days"`
	}

	var req ApproveExtensionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	assignment, err := h.assignmentService.ApproveExtension(assignmentID, req.ApprovedDays, userID)
	if err != nil {
		respondAssignmentError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToAssignmentDTO(*assignment))
}

// Respond records a response on an assignment and reports whether the
// completion gate finished the document and closed its case.
func (h *AssignmentHandler) Respond(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	assignmentID, ok := parseAssignmentID(c)
	if !ok {
		return
	}

	result, err := h.assignmentService.RecordResponse(assignmentID, userID)
	if err != nil {
		respondAssignmentError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"assignment":        dto.ToAssignmentDTO(*result.Assignment),
		"document_finished": result.DocumentFinished,
		"case_closed":       result.CaseClosed,
	})
}

// ListPendingExtensions lists assignments whose extension has been requested
// but not yet approved.
func (h *AssignmentHandler) ListPendingExtensions(c *gin.Context) {
	assignments, err := h.assignmentService.ListPendingExtensions()
	if err != nil {
		apierrors.InternalError(c, "Failed to list pending extensions")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"assignments": dto.ToAssignmentDTOs(assignments),
	})
}

func parseAssignmentID(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid assignment ID")
		return 0, false
	}
	return id, true
}

func respondAssignmentError(c *gin.Context, err error) {
	var cascadeErr *services.CompletionCascadeError

	switch {
	case errors.Is(err, services.ErrInvalidDuration):
		apierrors.InvalidDuration(c, "")
	case errors.Is(err, services.ErrInvalidDayPolicy):
		apierrors.BadRequest(c, "Unknown day-count policy")
	case errors.Is(err, services.ErrAssignmentNotFound):
		apierrors.NotFound(c, "Assignment not found")
	case errors.Is(err, services.ErrDocumentNotFound):
		apierrors.NotFound(c, "Document not found")
	case errors.Is(err, services.ErrAssignmentClosed):
		apierrors.Conflict(c, "Assignment is already closed")
	case errors.As(err, &cascadeErr):
		apierrors.CascadeFailure(c, "")
	default:
		apierrors.InternalError(c, "")
	}
}
