// Package media handles image uploads for articles, UMKM, destinations and writers.
package media

import (
	"context"
	"fmt"
	"path"

	"github.com/google/uuid"
	"github.com/laiyolobaru/backend/internal/domain/shared"
	"go.uber.org/zap"
)

var (
	ErrUnsupportedImage = shared.NewDomainError("UNSUPPORTED_IMAGE", "File harus berupa gambar JPEG atau PNG")
	ErrFileTooLarge     = shared.NewDomainError("FILE_TOO_LARGE", "Ukuran file melebihi batas maksimum")
	ErrImageTooLarge    = shared.NewDomainError("IMAGE_TOO_LARGE", "Resolusi gambar melebihi batas maksimum")
	ErrEmptyFile        = shared.NewDomainError("EMPTY_FILE", "File tidak boleh kosong")
	ErrInvalidFolder    = shared.NewDomainError("INVALID_FOLDER", "Folder unggahan tidak valid")
)

// Folder groups uploads by the resource they belong to
type Folder string

const (
	FolderArticles Folder = "articles"
	FolderUMKM     Folder = "umkm"
	FolderTravels  Folder = "travels"
	FolderWriters  Folder = "writers"
)

// IsValid reports whether f is a known folder
func (f Folder) IsValid() bool {
	switch f {
	case FolderArticles, FolderUMKM, FolderTravels, FolderWriters:
		return true
	}
	return false
}

// ObjectStorage defines the object storage operations used by uploads.
// It is implemented by the infrastructure layer (S3, in-memory).
type ObjectStorage interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) error
	DeleteObject(ctx context.Context, key string) error
	ObjectExists(ctx context.Context, key string) (bool, error)
	// PublicURL returns the browser-facing URL of key
	PublicURL(key string) string
}

// ProcessedImage is an image ready to be stored
type ProcessedImage struct {
	Data        []byte
	ContentType string
	Extension   string
	Width       int
	Height      int
	Resized     bool
}

// ImageProcessor validates and normalizes uploaded images
type ImageProcessor interface {
	Process(data []byte, maxWidth int) (*ProcessedImage, error)
}

// Metrics records upload outcomes
type Metrics interface {
	RecordUpload(ctx context.Context, folder string, success bool)
}

// Config holds upload limits
type Config struct {
	MaxUploadSize int64
	MaxImageWidth int
}

// Service stores uploaded images
type Service struct {
	storage   ObjectStorage
	processor ImageProcessor
	config    Config
	metrics   Metrics
	logger    *zap.Logger
}

// NewService creates a media service. metrics may be nil.
func NewService(storage ObjectStorage, processor ImageProcessor, config Config, metrics Metrics, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		storage:   storage,
		processor: processor,
		config:    config,
		metrics:   metrics,
		logger:    logger,
	}
}

// MaxUploadSize returns the configured upload limit in bytes
func (s *Service) MaxUploadSize() int64 {
	return s.config.MaxUploadSize
}

// Upload validates, resizes and stores an image under {folder}/{uuid}.{ext}
func (s *Service) Upload(ctx context.Context, input UploadInput) (*UploadResult, error) {
	result, err := s.upload(ctx, input)
	if s.metrics != nil {
		s.metrics.RecordUpload(ctx, string(input.Folder), err == nil)
	}
	return result, err
}

func (s *Service) upload(ctx context.Context, input UploadInput) (*UploadResult, error) {
	if !input.Folder.IsValid() {
		return nil, ErrInvalidFolder
	}
	if len(input.Data) == 0 {
		return nil, ErrEmptyFile
	}
	if s.config.MaxUploadSize > 0 && int64(len(input.Data)) > s.config.MaxUploadSize {
		return nil, ErrFileTooLarge
	}

	img, err := s.processor.Process(input.Data, s.config.MaxImageWidth)
	if err != nil {
		return nil, err
	}

	key := path.Join(string(input.Folder), uuid.New().String()+"."+img.Extension)
	if err := s.storage.Upload(ctx, key, img.Data, img.ContentType); err != nil {
		s.logger.Error("Failed to store uploaded image",
			zap.String("key", key),
			zap.Error(err))
		return nil, fmt.Errorf("store %s: %w", key, err)
	}

	s.logger.Info("Image uploaded",
		zap.String("key", key),
		zap.String("original_name", input.Filename),
		zap.Int("original_size", len(input.Data)),
		zap.Int("stored_size", len(img.Data)),
		zap.Bool("resized", img.Resized))

	return &UploadResult{
		URL:         s.storage.PublicURL(key),
		Key:         key,
		ContentType: img.ContentType,
		Size:        int64(len(img.Data)),
		Width:       img.Width,
		Height:      img.Height,
	}, nil
}
