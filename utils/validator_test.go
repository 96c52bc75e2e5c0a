package utils

import (
	"mime/multipart"
	"net/textproto"
	"testing"
)

func resumeHeader(contentType string, size int64) *multipart.FileHeader {
	header := make(textproto.MIMEHeader)
	header.Set("Content-Type", contentType)
	return &multipart.FileHeader{
		Filename: "resume.pdf",
		Header:   header,
		Size:     size,
	}
}

func TestValidateEmail(t *testing.T) {
	valid := []string{"user@example.com", "first.last+tag@school.edu"}
	for _, email := range valid {
		if !ValidateEmail(email) {
			t.Errorf("expected %s to be valid", email)
		}
	}
	invalid := []string{"", "not-an-email", "user@", "@example.com"}
	for _, email := range invalid {
		if ValidateEmail(email) {
			t.Errorf("expected %s to be invalid", email)
		}
	}
}

func TestValidateResumeFileAcceptsKnownTypes(t *testing.T) {
	for _, contentType := range []string{
		"application/pdf",
		"application/msword",
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		"application/pdf; charset=binary",
		"  Application/PDF  ",
	} {
		ok, reason := ValidateResumeFile(resumeHeader(contentType, 1024))
		if !ok {
			t.Errorf("expected %q to be accepted, got: %s", contentType, reason)
		}
	}
}

func TestValidateResumeFileRejectsOtherTypes(t *testing.T) {
	ok, _ := ValidateResumeFile(resumeHeader("image/png", 1024))
	if ok {
		t.Error("expected image/png to be rejected")
	}
}

func TestValidateResumeFileRejectsOversize(t *testing.T) {
	ok, reason := ValidateResumeFile(resumeHeader("application/pdf", MaxResumeSize+1))
	if ok {
		t.Error("expected oversize file to be rejected")
	}
	if reason == "" {
		t.Error("expected a reason for the rejection")
	}
}

func TestSanitizeInput(t *testing.T) {
	if got := SanitizeInput("  hello\x00world  "); got != "helloworld" {
		t.Errorf("unexpected sanitized value: %q", got)
	}
}
