// utils/validator.go - Input validation
package utils

import (
	"mime/multipart"
	"regexp"
	"strings"
)

// MaxResumeSize is the resume upload cap (10MB).
const MaxResumeSize = 10 * 1024 * 1024

var allowedResumeTypes = map[string]bool{
	"application/pdf":    true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
}

// ValidateEmail checks if email is valid
func ValidateEmail(email string) bool {
	emailRegex := regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	return emailRegex.MatchString(email)
}

// ValidatePassword checks password strength
func ValidatePassword(password string) (bool, string) {
	if len(password) < 8 {
		return false, "Password must be at least 8 characters"
	}

	return true, ""
}

// ValidateResumeFile checks type and size of an uploaded resume.
// Only PDF, DOC and DOCX up to 10MB are accepted.
func ValidateResumeFile(header *multipart.FileHeader) (bool, string) {
	if header.Size > MaxResumeSize {
		return false, "Resume file exceeds the 10MB limit"
	}

	contentType := strings.ToLower(strings.TrimSpace(header.Header.Get("Content-Type")))
	if idx := strings.Index(contentType, ";"); idx >= 0 {
		contentType = strings.TrimSpace(contentType[:idx])
	}
	if !allowedResumeTypes[contentType] {
		return false, "Resume must be a PDF, DOC or DOCX file"
	}

	return true, ""
}

// SanitizeInput removes potentially harmful characters
func SanitizeInput(input string) string {
	// Remove leading/trailing spaces
	input = strings.TrimSpace(input)

	// Remove null bytes
	input = strings.ReplaceAll(input, "\x00", "")

	return input
}
