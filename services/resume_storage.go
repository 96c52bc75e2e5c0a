package services

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"
	"time"

	"hackathon-portal-api/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/viant/afs"
	"github.com/viant/afs/file"
	afsurl "github.com/viant/afs/url"
)

// TemporaryURL is a signed, short-lived link to a stored resume.
type TemporaryURL struct {
	URL              string    `json:"resumeUrl"`
	ExpiresAt        time.Time `json:"expiresAt"`
	ExpiresInMinutes int       `json:"expiresInMinutes"`
}

// ResumeStorage stores resume blobs behind an afs backend (file, mem or s3
// depending on the configured base URL) and mints signed download links.
// The relational row only ever references a path returned by Upload.
type ResumeStorage struct {
	fs            afs.Service
	baseURL       string
	signingSecret []byte
	publicBaseURL string
	timeout       time.Duration
}

func NewResumeStorage() *ResumeStorage {
	return &ResumeStorage{
		fs:            afs.New(),
		baseURL:       config.StorageBaseURL(),
		signingSecret: config.StorageSecret(),
		publicBaseURL: config.PublicBaseURL(),
		timeout:       config.BlobTimeout(),
	}
}

// NewResumeStorageWith builds a storage against an explicit backend, used by
// tests with a mem:// base URL.
func NewResumeStorageWith(fs afs.Service, baseURL string, secret []byte, publicBaseURL string, timeout time.Duration) *ResumeStorage {
	return &ResumeStorage{
		fs:            fs,
		baseURL:       baseURL,
		signingSecret: secret,
		publicBaseURL: publicBaseURL,
		timeout:       timeout,
	}
}

// Upload streams the file into the blob store and returns the blob path the
// caller should persist. Blobs are namespaced by year so yearly cleanup stays
// a prefix operation.
func (s *ResumeStorage) Upload(ctx context.Context, originalName, contentType string, reader io.Reader) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	ext := strings.ToLower(path.Ext(originalName))
	blobPath := fmt.Sprintf("%d/%s%s", time.Now().Year(), uuid.NewString(), ext)

	if err := s.fs.Upload(ctx, afsurl.Join(s.baseURL, blobPath), file.DefaultFileOsMode, reader); err != nil {
		return "", DependencyFailure("failed to upload resume to blob store", err)
	}
	return blobPath, nil
}

// Delete removes a blob. Callers decide whether a failure is fatal; the
// compensation paths treat it as advisory.
func (s *ResumeStorage) Delete(ctx context.Context, blobPath string) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.fs.Delete(ctx, afsurl.Join(s.baseURL, blobPath)); err != nil {
		return DependencyFailure("failed to delete resume from blob store", err)
	}
	return nil
}

// Download returns the blob content, used by the signed download route.
func (s *ResumeStorage) Download(ctx context.Context, blobPath string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	exists, err := s.fs.Exists(ctx, afsurl.Join(s.baseURL, blobPath))
	if err != nil {
		return nil, DependencyFailure("failed to check resume blob", err)
	}
	if !exists {
		return nil, NotFoundError("Resume file not found")
	}

	data, err := s.fs.DownloadWithURL(ctx, afsurl.Join(s.baseURL, blobPath))
	if err != nil {
		return nil, DependencyFailure("failed to download resume from blob store", err)
	}
	return data, nil
}

// SignTemporaryURL mints a read-only link that expires after ttl. Signing is
// pure and never touches the backend.
func (s *ResumeStorage) SignTemporaryURL(blobPath string, ttl time.Duration) (*TemporaryURL, error) {
	now := time.Now()
	expiresAt := now.Add(ttl)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   blobPath,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	})
	signed, err := token.SignedString(s.signingSecret)
	if err != nil {
		return nil, DependencyFailure("failed to sign resume URL", err)
	}

	return &TemporaryURL{
		URL:              fmt.Sprintf("%s/api/v1/files/resume?token=%s", s.publicBaseURL, url.QueryEscape(signed)),
		ExpiresAt:        expiresAt,
		ExpiresInMinutes: int(ttl / time.Minute),
	}, nil
}

// VerifySignedToken validates a download token and returns the blob path it
// grants access to.
func (s *ResumeStorage) VerifySignedToken(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return s.signingSecret, nil
	})
	if err != nil || !token.Valid {
		return "", ForbiddenError("Invalid or expired resume link")
	}
	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", ForbiddenError("Invalid resume link")
	}
	return claims.Subject, nil
}
