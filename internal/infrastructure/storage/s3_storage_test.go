package storage

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/aws/smithy-go"
	"github.com/laiyolobaru/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func minioConfig() *config.StorageConfig {
	return &config.StorageConfig{
		Bucket:          "desa-media",
		AccessKeyID:     "test-key",
		SecretAccessKey: "test-secret",
		Region:          "ap-southeast-3",
		Endpoint:        "http://localhost:9000",
		UsePathStyle:    true,
	}
}

func TestNewS3ObjectStorage_Validation(t *testing.T) {
	_, err := NewS3ObjectStorage(nil)
	assert.ErrorContains(t, err, "configuration is required")

	t.Run("every missing field is reported", func(t *testing.T) {
		_, err := NewS3ObjectStorage(&config.StorageConfig{})
		require.Error(t, err)
		assert.ErrorContains(t, err, "storage bucket is required")
		assert.ErrorContains(t, err, "storage access key is required")
		assert.ErrorContains(t, err, "storage secret key is required")
	})

	t.Run("unsupported scheme", func(t *testing.T) {
		cfg := minioConfig()
		cfg.Endpoint = "ftp://minio:9000"
		_, err := NewS3ObjectStorage(cfg)
		assert.ErrorContains(t, err, "scheme")
	})

	s, err := NewS3ObjectStorage(minioConfig(), WithLogger(zaptest.NewLogger(t)))
	require.NoError(t, err)
	assert.Equal(t, "desa-media", s.GetBucket())
}

func TestNormalizeEndpoint(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"minio:9000", "https://minio:9000"},
		{"http://localhost:9000/", "http://localhost:9000"},
		{"https://s3.example.test", "https://s3.example.test"},
	}
	for _, tt := range tests {
		got, err := normalizeEndpoint(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestS3ObjectStorage_PublicURL(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*config.StorageConfig)
		key    string
		want   string
	}{
		{
			name:   "configured public base url",
			modify: func(c *config.StorageConfig) { c.PublicBaseURL = "https://media.laiyolobaru.desa.id/" },
			key:    "articles/a.jpg",
			want:   "https://media.laiyolobaru.desa.id/articles/a.jpg",
		},
		{
			name:   "path style endpoint",
			modify: func(*config.StorageConfig) {},
			key:    "/umkm/b.png",
			want:   "http://localhost:9000/desa-media/umkm/b.png",
		},
		{
			name: "virtual hosted endpoint",
			modify: func(c *config.StorageConfig) {
				c.UsePathStyle = false
				c.Endpoint = "https://s3.example.test"
			},
			key:  "umkm/b.png",
			want: "https://desa-media.s3.example.test/umkm/b.png",
		},
		{
			name: "aws default",
			modify: func(c *config.StorageConfig) {
				c.Endpoint = ""
				c.UsePathStyle = false
			},
			key:  "x.jpg",
			want: "https://desa-media.s3.ap-southeast-3.amazonaws.com/x.jpg",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := minioConfig()
			tt.modify(cfg)
			s, err := NewS3ObjectStorage(cfg)
			require.NoError(t, err)
			assert.Equal(t, tt.want, s.PublicURL(tt.key))
		})
	}
}

func TestIsMissing(t *testing.T) {
	apiErr := func(code string) error {
		return fmt.Errorf("operation error S3: HeadObject: %w", &smithy.GenericAPIError{Code: code})
	}
	assert.True(t, isMissing(apiErr("NotFound")))
	assert.True(t, isMissing(apiErr("NoSuchKey")))
	assert.True(t, isMissing(apiErr("NoSuchBucket")))
	assert.False(t, isMissing(apiErr("AccessDenied")))
	assert.False(t, isMissing(errors.New("NotFound")))
}

func TestS3ObjectStorage_EmptyKey(t *testing.T) {
	s, err := NewS3ObjectStorage(minioConfig())
	require.NoError(t, err)
	ctx := context.Background()

	assert.ErrorIs(t, s.Upload(ctx, "", []byte("x"), "image/png"), ErrEmptyKey)
	assert.ErrorIs(t, s.DeleteObject(ctx, ""), ErrEmptyKey)
	exists, err := s.ObjectExists(ctx, "")
	assert.ErrorIs(t, err, ErrEmptyKey)
	assert.False(t, exists)
}
