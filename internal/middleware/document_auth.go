package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jmcastellanos/doctrack-api/internal/constants"
	"github.com/jmcastellanos/doctrack-api/internal/database"
	apierrors "github.com/jmcastellanos/doctrack-api/internal/errors"
	"github.com/jmcastellanos/doctrack-api/internal/models"
)

// RequireDocumentAccess loads the document referenced by the :id parameter
// into the context, rejecting the request when it does not exist
func RequireDocumentAccess() gin.HandlerFunc {
	return func(c *gin.Context) {
		documentIDStr := c.Param("id")
		documentID, err := strconv.ParseUint(documentIDStr, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid document ID")
			c.Abort()
			return
		}

		if _, exists := GetUserID(c); !exists {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		var doc models.Document
		if err := database.GetDB().
			Preload("DocumentType").
			Preload("Creator").
			First(&doc, documentID).Error; err != nil {
			apierrors.NotFound(c, "Document not found")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyDocument, doc)
		c.Next()
	}
}

// GetDocument retrieves the document loaded by RequireDocumentAccess
func GetDocument(c *gin.Context) (models.Document, bool) {
	value, exists := c.Get(constants.ContextKeyDocument)
	if !exists {
		return models.Document{}, false
	}

	doc, ok := value.(models.Document)
	return doc, ok
}
