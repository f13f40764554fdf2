package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// GenerateCaseCode generates a case file number in the format CASE-YYYY-XXXXXX
func GenerateCaseCode() (string, error) {
	bytes := make([]byte, 3)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}

	return fmt.Sprintf("CASE-%d-%s", time.Now().Year(), hex.EncodeToString(bytes)), nil
}

// GenerateTrackingCode generates the opaque code handed out for following up
// on a document
func GenerateTrackingCode() string {
	return uuid.NewString()
}
