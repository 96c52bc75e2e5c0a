package controllers

import (
	"net/http"
	"path"
	"strings"

	"github.com/gin-gonic/gin"
)

// DownloadResume serves a resume blob to the holder of a valid signed token.
// This route is the target of the temporary URLs minted by the resume URL
// endpoint and is deliberately outside the auth middleware: the token is
// the authorization.
func DownloadResume(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "token query parameter is required"})
		return
	}

	storage := getResumeStorage()
	blobPath, err := storage.VerifySignedToken(token)
	if err != nil {
		renderError(c, err)
		return
	}

	data, err := storage.Download(c.Request.Context(), blobPath)
	if err != nil {
		renderError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+path.Base(blobPath)+`"`)
	c.Data(http.StatusOK, resumeContentType(blobPath), data)
}

func resumeContentType(blobPath string) string {
	switch strings.ToLower(path.Ext(blobPath)) {
	case ".pdf":
		return "application/pdf"
	case ".doc":
		return "application/msword"
	case ".docx":
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	default:
		return "application/octet-stream"
	}
}
