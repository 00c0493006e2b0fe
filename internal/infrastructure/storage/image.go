package storage

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	"github.com/disintegration/imaging"
	mediaapp "github.com/laiyolobaru/backend/internal/application/media"
)

const (
	jpegQuality = 85
	// maxPixels bounds the decoded bitmap at roughly 160 MB of NRGBA
	maxPixels = 40_000_000
)

// ImageResizer decodes uploaded images, downsizes wide ones and re-encodes them.
// Re-encoding also drops EXIF metadata such as GPS coordinates.
type ImageResizer struct{}

// NewImageResizer creates an ImageResizer
func NewImageResizer() *ImageResizer {
	return &ImageResizer{}
}

// Ensure ImageResizer implements ImageProcessor
var _ mediaapp.ImageProcessor = (*ImageResizer)(nil)

// Process fits the image into maxWidth pixels, keeping the aspect ratio.
// Only JPEG and PNG are accepted.
func (r *ImageResizer) Process(data []byte, maxWidth int) (*mediaapp.ProcessedImage, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, mediaapp.ErrUnsupportedImage
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, mediaapp.ErrUnsupportedImage
	}
	if int64(cfg.Width)*int64(cfg.Height) > maxPixels {
		return nil, mediaapp.ErrImageTooLarge
	}

	var (
		outFormat   imaging.Format
		contentType string
		ext         string
		encodeOpts  []imaging.EncodeOption
	)
	switch format {
	case "jpeg":
		outFormat, contentType, ext = imaging.JPEG, "image/jpeg", "jpg"
		encodeOpts = append(encodeOpts, imaging.JPEGQuality(jpegQuality))
	case "png":
		outFormat, contentType, ext = imaging.PNG, "image/png", "png"
		encodeOpts = append(encodeOpts, imaging.PNGCompressionLevel(png.DefaultCompression))
	default:
		return nil, mediaapp.ErrUnsupportedImage
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, mediaapp.ErrUnsupportedImage
	}

	resized := false
	if maxWidth > 0 && img.Bounds().Dx() > maxWidth {
		img = imaging.Resize(img, maxWidth, 0, imaging.Lanczos)
		resized = true
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, outFormat, encodeOpts...); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}

	return &mediaapp.ProcessedImage{
		Data:        buf.Bytes(),
		ContentType: contentType,
		Extension:   ext,
		Width:       img.Bounds().Dx(),
		Height:      img.Bounds().Dy(),
		Resized:     resized,
	}, nil
}
