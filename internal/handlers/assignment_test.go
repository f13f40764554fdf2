package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/jmcastellanos/doctrack-api/internal/constants"
	"github.com/jmcastellanos/doctrack-api/internal/database"
	"github.com/jmcastellanos/doctrack-api/internal/models"
	"github.com/jmcastellanos/doctrack-api/internal/repository"
	"github.com/jmcastellanos/doctrack-api/internal/services"
)

// AssignmentHandlerTestSuite defines the test suite for AssignmentHandler
type AssignmentHandlerTestSuite struct {
	suite.Suite
	db      *gorm.DB
	handler *AssignmentHandler
	seq     int
}

// SetupTest runs before each test
func (suite *AssignmentHandlerTestSuite) SetupTest() {
	var err error

	// Create in-memory SQLite database
	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(
		&models.User{},
		&models.Area{},
		&models.Position{},
		&models.DocumentType{},
		&models.Case{},
		&models.Document{},
		&models.Assignment{},
	)
	suite.Require().NoError(err)

	// Set the test DB as the default database
	database.SetDB(suite.db)

	assignmentService := services.NewAssignmentService(
		repository.NewAssignmentRepository(suite.db),
		repository.NewDocumentRepository(suite.db),
		repository.NewCaseRepository(suite.db),
	)
	suite.handler = NewAssignmentHandler(assignmentService)

	gin.SetMode(gin.TestMode)
}

// TearDownTest runs after each test
func (suite *AssignmentHandlerTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *AssignmentHandlerTestSuite) nextSeq() int {
	suite.seq++
	return suite.seq
}

// Helper functions to create test data

func (suite *AssignmentHandlerTestSuite) createTestUser(username string) *models.User {
	user := &models.User{
		Username:     username,
		PasswordHash: "hashedpassword",
	}
	suite.db.Create(user)
	return user
}

func (suite *AssignmentHandlerTestSuite) createTestCase(creatorID uint64) *models.Case {
	cs := &models.Case{
		Code:      fmt.Sprintf("CASE-2025-%04d", suite.nextSeq()),
		Subject:   "Test Case",
		Status:    models.CaseStatusOpen,
		CreatorID: creatorID,
	}
	suite.db.Create(cs)
	return cs
}

func (suite *AssignmentHandlerTestSuite) createTestDocument(creatorID uint64, caseID *uint64) *models.Document {
	docType := &models.DocumentType{Name: fmt.Sprintf("Memo %04d", suite.nextSeq())}
	suite.db.Create(docType)

	doc := &models.Document{
		TrackingCode:   fmt.Sprintf("TRK-%04d", suite.nextSeq()),
		Subject:        "Test Document",
		Status:         models.DocumentStatusInProgress,
		DocumentTypeID: docType.ID,
		CaseID:         caseID,
		CreatorID:      creatorID,
	}
	suite.db.Create(doc)
	return doc
}

// Helper function to create authenticated context
func (suite *AssignmentHandlerTestSuite) createAuthContext(method, url string, body []byte, userID uint64) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, url, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, url, nil)
	}

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Set(constants.ContextKeyUserID, userID)

	return c, w
}

// Helper function to set document context (simulates RequireDocumentAccess middleware)
func (suite *AssignmentHandlerTestSuite) setDocumentContext(c *gin.Context, doc models.Document) {
	c.Set(constants.ContextKeyDocument, doc)
}

func (suite *AssignmentHandlerTestSuite) setAssignmentParam(c *gin.Context, id uint64) {
	c.Params = gin.Params{{Key: "id", Value: fmt.Sprintf("%d", id)}}
}

// TestCreateAssignment_Success tests delegating a document
func (suite *AssignmentHandlerTestSuite) TestCreateAssignment_Success() {
	user := suite.createTestUser("creator")
	assignee := suite.createTestUser("assignee")
	doc := suite.createTestDocument(user.ID, nil)

	body, _ := json.Marshal(map[string]interface{}{
		"assignee_id":            assignee.ID,
		"response_deadline_days": 5,
		"notes":                  "please respond",
		"day_policy":             "BUSINESS",
	})

	c, w := suite.createAuthContext("POST", fmt.Sprintf("/api/documents/%d/assignments", doc.ID), body, user.ID)
	suite.setDocumentContext(c, *doc)

	suite.handler.CreateAssignment(c)

	assert.Equal(suite.T(), http.StatusCreated, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), float64(doc.ID), response["document_id"])
	assert.Equal(suite.T(), true, response["active"])
	assert.Equal(suite.T(), "BUSINESS", response["day_policy"])
	assert.NotEmpty(suite.T(), response["due_at"])
	assert.Equal(suite.T(), response["due_at"], response["effective_due_at"])
}

// TestCreateAssignment_InvalidDuration tests rejection of non-positive day counts
func (suite *AssignmentHandlerTestSuite) TestCreateAssignment_InvalidDuration() {
	user := suite.createTestUser("creator")
	doc := suite.createTestDocument(user.ID, nil)

	for _, days := range []int{0, -2} {
		body, _ := json.Marshal(map[string]interface{}{
			"assignee_id":            user.ID,
			"response_deadline_days": days,
		})

		c, w := suite.createAuthContext("POST", fmt.Sprintf("/api/documents/%d/assignments", doc.ID), body, user.ID)
		suite.setDocumentContext(c, *doc)

		suite.handler.CreateAssignment(c)

		assert.Equal(suite.T(), http.StatusBadRequest, w.Code)

		var response map[string]interface{}
		err := json.Unmarshal(w.Body.Bytes(), &response)
		assert.NoError(suite.T(), err)
		assert.Equal(suite.T(), "INVALID_DURATION", response["code"])
	}

	var count int64
	suite.db.Model(&models.Assignment{}).Count(&count)
	assert.Equal(suite.T(), int64(0), count)
}

// TestExtensionWorkflow tests the request/approve protocol end to end
func (suite *AssignmentHandlerTestSuite) TestExtensionWorkflow() {
	user := suite.createTestUser("creator")
	doc := suite.createTestDocument(user.ID, nil)

	// Create the assignment
	body, _ := json.Marshal(map[string]interface{}{
		"assignee_id":            user.ID,
		"response_deadline_days": 5,
	})
	c, w := suite.createAuthContext("POST", "/api/documents/1/assignments", body, user.ID)
	suite.setDocumentContext(c, *doc)
	suite.handler.CreateAssignment(c)
	suite.Require().Equal(http.StatusCreated, w.Code)

	var created map[string]interface{}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &created))
	assignmentID := uint64(created["id"].(float64))
	originalDueAt := created["due_at"]

	// Request an extension
	body, _ = json.Marshal(map[string]interface{}{"requested_days": 3})
	c, w = suite.createAuthContext("POST", "/api/assignments/1/request-extension", body, user.ID)
	suite.setAssignmentParam(c, assignmentID)
	suite.handler.RequestExtension(c)
	suite.Require().Equal(http.StatusOK, w.Code)

	var requested map[string]interface{}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &requested))
	assert.Equal(suite.T(), originalDueAt, requested["due_at"])
	assert.NotEmpty(suite.T(), requested["extension_requested_at"])
	assert.Nil(suite.T(), requested["extension_due_at"])

	// The assignment shows up in the pending-extension listing
	c, w = suite.createAuthContext("GET", "/api/assignments/pending-extensions", nil, user.ID)
	suite.handler.ListPendingExtensions(c)
	suite.Require().Equal(http.StatusOK, w.Code)

	var pending map[string]interface{}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &pending))
	assert.Len(suite.T(), pending["assignments"], 1)

	// Approve with a different day count than requested
	body, _ = json.Marshal(map[string]interface{}{"approved_days": 2})
	c, w = suite.createAuthContext("POST", "/api/assignments/1/approve-extension", body, user.ID)
	suite.setAssignmentParam(c, assignmentID)
	suite.handler.ApproveExtension(c)
	suite.Require().Equal(http.StatusOK, w.Code)

	var approved map[string]interface{}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &approved))
	assert.Equal(suite.T(), originalDueAt, approved["due_at"])
	assert.NotEmpty(suite.T(), approved["extension_due_at"])
	assert.Equal(suite.T(), approved["extension_due_at"], approved["effective_due_at"])
	assert.Equal(suite.T(), float64(2), approved["extension_requested_days"])

	// Approval removes it from the pending listing
	c, w = suite.createAuthContext("GET", "/api/assignments/pending-extensions", nil, user.ID)
	suite.handler.ListPendingExtensions(c)
	suite.Require().Equal(http.StatusOK, w.Code)

	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &pending))
	assert.Len(suite.T(), pending["assignments"], 0)
}

// TestRequestExtension_NotFound tests the missing-assignment case
func (suite *AssignmentHandlerTestSuite) TestRequestExtension_NotFound() {
	user := suite.createTestUser("creator")

	body, _ := json.Marshal(map[string]interface{}{"requested_days": 3})
	c, w := suite.createAuthContext("POST", "/api/assignments/999/request-extension", body, user.ID)
	suite.setAssignmentParam(c, 999)

	suite.handler.RequestExtension(c)

	assert.Equal(suite.T(), http.StatusNotFound, w.Code)

	var response map[string]interface{}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(suite.T(), "NOT_FOUND", response["code"])
}

// TestRespond_CompletionCascade walks the two-assignment completion scenario
func (suite *AssignmentHandlerTestSuite) TestRespond_CompletionCascade() {
	user := suite.createTestUser("creator")
	cs := suite.createTestCase(user.ID)
	doc := suite.createTestDocument(user.ID, &cs.ID)

	var assignmentIDs []uint64
	for i := 0; i < 2; i++ {
		body, _ := json.Marshal(map[string]interface{}{
			"assignee_id":            user.ID,
			"response_deadline_days": 5,
		})
		c, w := suite.createAuthContext("POST", "/api/documents/1/assignments", body, user.ID)
		suite.setDocumentContext(c, *doc)
		suite.handler.CreateAssignment(c)
		suite.Require().Equal(http.StatusCreated, w.Code)

		var created map[string]interface{}
		suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &created))
		assignmentIDs = append(assignmentIDs, uint64(created["id"].(float64)))
	}

	// Pending count starts at two
	c, w := suite.createAuthContext("GET", "/api/documents/1/assignments/pending-count", nil, user.ID)
	suite.setDocumentContext(c, *doc)
	suite.handler.PendingCount(c)
	suite.Require().Equal(http.StatusOK, w.Code)

	var countResp map[string]interface{}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &countResp))
	assert.Equal(suite.T(), float64(2), countResp["pending_count"])

	// First response leaves the document open
	c, w = suite.createAuthContext("POST", "/api/assignments/1/respond", nil, user.ID)
	suite.setAssignmentParam(c, assignmentIDs[0])
	suite.handler.Respond(c)
	suite.Require().Equal(http.StatusOK, w.Code)

	var result map[string]interface{}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(suite.T(), false, result["document_finished"])
	assert.Equal(suite.T(), false, result["case_closed"])

	// Second response finishes the document and closes the case
	c, w = suite.createAuthContext("POST", "/api/assignments/2/respond", nil, user.ID)
	suite.setAssignmentParam(c, assignmentIDs[1])
	suite.handler.Respond(c)
	suite.Require().Equal(http.StatusOK, w.Code)

	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(suite.T(), true, result["document_finished"])
	assert.Equal(suite.T(), true, result["case_closed"])

	var freshDoc models.Document
	suite.db.First(&freshDoc, doc.ID)
	assert.Equal(suite.T(), models.DocumentStatusFinished, freshDoc.Status)

	var freshCase models.Case
	suite.db.First(&freshCase, cs.ID)
	assert.Equal(suite.T(), models.CaseStatusClosed, freshCase.Status)
}

// TestRespond_AlreadyClosed tests the double-response conflict
func (suite *AssignmentHandlerTestSuite) TestRespond_AlreadyClosed() {
	user := suite.createTestUser("creator")
	doc := suite.createTestDocument(user.ID, nil)

	body, _ := json.Marshal(map[string]interface{}{
		"assignee_id":            user.ID,
		"response_deadline_days": 5,
	})
	c, w := suite.createAuthContext("POST", "/api/documents/1/assignments", body, user.ID)
	suite.setDocumentContext(c, *doc)
	suite.handler.CreateAssignment(c)
	suite.Require().Equal(http.StatusCreated, w.Code)

	var created map[string]interface{}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &created))
	assignmentID := uint64(created["id"].(float64))

	c, w = suite.createAuthContext("POST", "/api/assignments/1/respond", nil, user.ID)
	suite.setAssignmentParam(c, assignmentID)
	suite.handler.Respond(c)
	suite.Require().Equal(http.StatusOK, w.Code)

	c, w = suite.createAuthContext("POST", "/api/assignments/1/respond", nil, user.ID)
	suite.setAssignmentParam(c, assignmentID)
	suite.handler.Respond(c)
	assert.Equal(suite.T(), http.StatusConflict, w.Code)
}

func TestAssignmentHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(AssignmentHandlerTestSuite))
}
