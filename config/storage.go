package config

import (
	"os"
	"strconv"
	"time"
)

// Resume blob storage settings. The base URL selects the afs backend scheme,
// e.g. file:///var/data/resumes, mem://localhost/resumes or s3://bucket/resumes.
func StorageBaseURL() string {
	if base := os.Getenv("STORAGE_BASE_URL"); base != "" {
		return base
	}
	return "file://localhost/./uploads/resumes"
}

// StorageSecret signs temporary resume URLs. Falls back to JWT_SECRET so a
// single-secret deployment keeps working.
func StorageSecret() []byte {
	if secret := os.Getenv("STORAGE_SIGNING_SECRET"); secret != "" {
		return []byte(secret)
	}
	return []byte(os.Getenv("JWT_SECRET"))
}

// BlobTimeout bounds every call against the blob store.
func BlobTimeout() time.Duration {
	seconds, _ := strconv.Atoi(os.Getenv("BLOB_TIMEOUT_SECONDS"))
	if seconds <= 0 {
		seconds = 30
	}
	return time.Duration(seconds) * time.Second
}

// PublicBaseURL is the externally reachable root used when building signed
// resume download links.
func PublicBaseURL() string {
	if base := os.Getenv("PUBLIC_BASE_URL"); base != "" {
		return base
	}
	port := os.Getenv("SERVER_PORT")
	if port == "" {
		port = "8080"
	}
	return "http://localhost:" + port
}
