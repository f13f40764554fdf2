package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/jmcastellanos/doctrack-api/internal/duedate"
	"github.com/jmcastellanos/doctrack-api/internal/models"
	"github.com/jmcastellanos/doctrack-api/internal/repository"
)

var (
	ErrInvalidDuration    = errors.New("day count must be a positive integer")
	ErrInvalidDayPolicy   = errors.New("unknown day-count policy")
	ErrAssignmentNotFound = errors.New("assignment not found")
	ErrDocumentNotFound   = errors.New("document not found")
	ErrAssignmentClosed   = errors.New("assignment is already closed")
)

// CompletionCascadeError reports a failed write inside the completion
// cascade. RollbackErr is non-nil when the compensating rollback itself
// failed and the store needs manual reconciliation.
type CompletionCascadeError struct {
	Step        string
	Err         error
	RollbackErr error
}

func (e *CompletionCascadeError) Error() string {
	if e.RollbackErr != nil {
		return fmt.Sprintf("completion cascade failed at %s (rollback also failed): %v", e.Step, e.Err)
	}
	return fmt.Sprintf("completion cascade failed at %s: %v", e.Step, e.Err)
}

func (e *CompletionCascadeError) Unwrap() error {
	return e.Err
}

// AssignmentService handles the assignment deadline and extension workflow
type AssignmentService struct {
	assignmentRepo repository.AssignmentRepository
	documentRepo   repository.DocumentRepository
	caseRepo       repository.CaseRepository

	// now is swapped out in tests
	now func() time.Time
}

// NewAssignmentService creates a new AssignmentService
func NewAssignmentService(
	assignmentRepo repository.AssignmentRepository,
	documentRepo repository.DocumentRepository,
	caseRepo repository.CaseRepository,
) *AssignmentService {
	return &AssignmentService{
		assignmentRepo: assignmentRepo,
		documentRepo:   documentRepo,
		caseRepo:       caseRepo,
		now:            time.Now,
	}
}

// CreateAssignmentInput represents input for delegating a document
type CreateAssignmentInput struct {
	DocumentID           uint64
	AssigneeID           uint64
	CreatorID            uint64
	ResponseDeadlineDays int
	Notes                string
	DayPolicy            duedate.Policy
}

// CreateAssignment delegates a document to a user. The due date is computed
// from the current instant under the selected day-count policy, and the
// policy is persisted so extension approvals reuse it.
func (s *AssignmentService) CreateAssignment(input CreateAssignmentInput) (*models.Assignment, error) {
	if input.ResponseDeadlineDays <= 0 {
		return nil, ErrInvalidDuration
	}

	policy := input.DayPolicy
	if policy == "" {
		policy = duedate.PolicyBusinessDays
	}
	if !policy.Valid() {
		return nil, ErrInvalidDayPolicy
	}

	if _, err := s.documentRepo.FindByID(input.DocumentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDocumentNotFound
		}
		return nil, fmt.Errorf("failed to find document: %w", err)
	}

	assignedAt := s.now()
	assignment := &models.Assignment{
		DocumentID:           input.DocumentID,
		AssigneeID:           input.AssigneeID,
		CreatorID:            input.CreatorID,
		AssignedAt:           assignedAt,
		ResponseDeadlineDays: input.ResponseDeadlineDays,
		DayPolicy:            policy,
		DueAt:                duedate.Add(policy, assignedAt, input.ResponseDeadlineDays),
		Notes:                input.Notes,
		Active:               true,
	}

	if err := s.assignmentRepo.Create(assignment); err != nil {
		return nil, fmt.Errorf("failed to create assignment: %w", err)
	}

	return assignment, nil
}

// RequestExtension records a pending extension request. The due date is not
// touched; only an approval changes the effective deadline.
func (s *AssignmentService) RequestExtension(assignmentID uint64, requestedDays int, actorID uint64) (*models.Assignment, error) {
	if requestedDays <= 0 {
		return nil, ErrInvalidDuration
	}

	assignment, err := s.findAssignment(assignmentID)
	if err != nil {
		return nil, err
	}

	requestedAt := s.now()
	assignment.ExtensionRequestedAt = &requestedAt
	assignment.ExtensionRequestedDays = &requestedDays
	assignment.ModifierID = &actorID

	if err := s.assignmentRepo.Update(assignment); err != nil {
		return nil, fmt.Errorf("failed to record extension request: %w", err)
	}

	return assignment, nil
}

// ApproveExtension grants an extension of approvedDays, which may differ
// from the count originally requested. The new deadline stacks onto the
// effective due date under the assignment's persisted policy; it does not
// restart from the assignment date. ExtensionRequestedAt is kept as the
// audit trail of the request.
func (s *AssignmentService) ApproveExtension(assignmentID uint64, approvedDays int, actorID uint64) (*models.Assignment, error) {
	if approvedDays <= 0 {
		return nil, ErrInvalidDuration
	}

	assignment, err := s.findAssignment(assignmentID)
	if err != nil {
		return nil, err
	}

	newDueAt := duedate.Add(assignment.DayPolicy, assignment.EffectiveDueAt(), approvedDays)
	assignment.ExtensionDueAt = &newDueAt
	assignment.ExtensionRequestedDays = &approvedDays
	assignment.ModifierID = &actorID

	if err := s.assignmentRepo.Update(assignment); err != nil {
		return nil, fmt.Errorf("failed to approve extension: %w", err)
	}

	return assignment, nil
}

// CompletionResult reports the outcome of recording a response
type CompletionResult struct {
	Assignment       *models.Assignment
	DocumentFinished bool
	CaseClosed       bool
}

// RecordResponse closes an assignment and runs the completion gate: when no
// active assignments remain on the document, the document is marked finished
// and its parent case closed. The three writes are performed as a
// compensating sequence; each forward step registers its inverse, and on
// failure the inverses run in reverse order before the error is surfaced.
func (s *AssignmentService) RecordResponse(assignmentID uint64, actorID uint64) (*CompletionResult, error) {
	assignment, err := s.findAssignment(assignmentID)
	if err != nil {
		return nil, err
	}
	if !assignment.Active {
		return nil, ErrAssignmentClosed
	}

	var rollback []func() error

	respondedAt := s.now()
	assignment.RespondedAt = &respondedAt
	assignment.Active = false
	assignment.ModifierID = &actorID

	if err := s.assignmentRepo.Update(assignment); err != nil {
		return nil, fmt.Errorf("failed to close assignment: %w", err)
	}
	rollback = append(rollback, func() error {
		assignment.RespondedAt = nil
		assignment.Active = true
		return s.assignmentRepo.Update(assignment)
	})

	pending, err := s.assignmentRepo.CountActiveByDocument(assignment.DocumentID)
	if err != nil {
		return nil, s.failCascade("pending count", err, rollback)
	}

	result := &CompletionResult{Assignment: assignment}
	if pending > 0 {
		return result, nil
	}

	doc, err := s.documentRepo.FindByID(assignment.DocumentID)
	if err != nil {
		return nil, s.failCascade("document lookup", err, rollback)
	}

	previousStatus := doc.Status
	if err := s.documentRepo.UpdateStatus(doc.ID, models.DocumentStatusFinished); err != nil {
		return nil, s.failCascade("document status", err, rollback)
	}
	rollback = append(rollback, func() error {
		return s.documentRepo.UpdateStatus(doc.ID, previousStatus)
	})
	result.DocumentFinished = true

	if doc.CaseID != nil {
		if err := s.caseRepo.UpdateStatus(*doc.CaseID, models.CaseStatusClosed); err != nil {
			return nil, s.failCascade("case status", err, rollback)
		}
		result.CaseClosed = true
	}

	return result, nil
}

// CountPendingAssignments counts the assignments of a document that still
// represent outstanding work
func (s *AssignmentService) CountPendingAssignments(documentID uint64) (int64, error) {
	return s.assignmentRepo.CountActiveByDocument(documentID)
}

// ListPendingExtensions lists assignments with a requested but not yet
// approved extension
func (s *AssignmentService) ListPendingExtensions() ([]models.Assignment, error) {
	return s.assignmentRepo.ListPendingExtensions()
}

// ListByDocument lists a document's assignments
func (s *AssignmentService) ListByDocument(documentID uint64) ([]models.Assignment, error) {
	return s.assignmentRepo.ListByDocument(documentID)
}

func (s *AssignmentService) findAssignment(id uint64) (*models.Assignment, error) {
	assignment, err := s.assignmentRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAssignmentNotFound
		}
		return nil, fmt.Errorf("failed to find assignment: %w", err)
	}
	return assignment, nil
}

// failCascade drains the rollback stack in reverse order and wraps the
// triggering error. A rollback failure leaves the store inconsistent and is
// logged for manual reconciliation.
func (s *AssignmentService) failCascade(step string, cause error, rollback []func() error) error {
	cascadeErr := &CompletionCascadeError{Step: step, Err: cause}

	for i := len(rollback) - 1; i >= 0; i-- {
		if err := rollback[i](); err != nil {
			cascadeErr.RollbackErr = err
			logrus.WithError(err).WithField("step", step).
				Error("completion cascade rollback failed; manual reconciliation required")
		}
	}

	return cascadeErr
}
