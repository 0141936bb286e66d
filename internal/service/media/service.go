package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"

	"e-county-api/internal/config"
)

const maxPhotoSize = 10 << 20 // 10 MiB

var (
	ErrFileTooLarge    = errors.New("photo must be 10MB or smaller")
	ErrUnsupportedType = errors.New("only JPEG, PNG and WebP images are accepted")
)

var allowedTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

type Service interface {
	UploadPhoto(ctx context.Context, fileName string, fileSize int64, mimeType string, reader io.Reader) (string, error)
	DeletePhoto(ctx context.Context, photoURL string) error
}

type service struct {
	minioClient *minio.Client
	cfg         *config.Config
}

func NewService(minioClient *minio.Client, cfg *config.Config) Service {
	return &service{minioClient: minioClient, cfg: cfg}
}

// UploadPhoto stores an issue photo and returns its public URL. Objects
// are keyed by upload month plus a fresh UUID so names never collide.
func (s *service) UploadPhoto(ctx context.Context, fileName string, fileSize int64, mimeType string, reader io.Reader) (string, error) {
	if fileSize > maxPhotoSize {
		return "", ErrFileTooLarge
	}
	ext, ok := allowedTypes[mimeType]
	if !ok {
		return "", ErrUnsupportedType
	}

	storagePath := fmt.Sprintf("issues/%s/%s%s", time.Now().Format("2006/01"), uuid.New().String(), ext)

	_, err := s.minioClient.PutObject(ctx, s.cfg.MinIOBucket, storagePath, reader, fileSize, minio.PutObjectOptions{
		ContentType: mimeType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload photo: %w", err)
	}

	return s.publicURL(storagePath), nil
}

// DeletePhoto removes a previously uploaded photo given its public URL.
// URLs pointing outside our bucket are ignored.
func (s *service) DeletePhoto(ctx context.Context, photoURL string) error {
	parsed, err := url.Parse(photoURL)
	if err != nil {
		return err
	}
	prefix := "/" + s.cfg.MinIOBucket + "/"
	if !strings.HasPrefix(parsed.Path, prefix) {
		return nil
	}
	storagePath := path.Clean(strings.TrimPrefix(parsed.Path, prefix))
	return s.minioClient.RemoveObject(ctx, s.cfg.MinIOBucket, storagePath, minio.RemoveObjectOptions{})
}

func (s *service) publicURL(storagePath string) string {
	scheme := "http"
	if s.cfg.MinIOPublicUseSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, s.cfg.MinIOPublicEndpoint, s.cfg.MinIOBucket, storagePath)
}
