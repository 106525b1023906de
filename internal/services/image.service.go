package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"io/fs"
	"net/http"
	"os"
	"path"
	"path/filepath"

	"musiclabel/internal/types"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
)

const (
	MaxImageBytes = 5 * 1024 * 1024
	// A compressed file under MaxImageBytes can still describe a huge canvas,
	// so the header is checked before decoding.
	MaxImagePixels = 40_000_000
	WebPQuality    = 85

	UploadsURLPrefix = "/uploads"
)

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

type ImageVariant struct {
	Name   string
	Width  int
	Height int
}

// ImagePreset names the variants produced for one kind of entity image and
// the variant used as the entity's primary URL.
type ImagePreset struct {
	Namespace string
	Primary   string
	Variants  []ImageVariant
}

var (
	ArtistImagePreset = ImagePreset{
		Namespace: "artists",
		Primary:   "profile",
		Variants: []ImageVariant{
			{Name: "thumbnail", Width: 400, Height: 400},
			{Name: "profile", Width: 800, Height: 800},
			{Name: "featured", Width: 1200, Height: 1200},
		},
	}

	ReleaseCoverPreset = ImagePreset{
		Namespace: "releases",
		Primary:   "medium",
		Variants: []ImageVariant{
			{Name: "small", Width: 300, Height: 300},
			{Name: "medium", Width: 600, Height: 600},
			{Name: "large", Width: 1200, Height: 1200},
		},
	}
)

type ProcessedImage struct {
	PrimaryURL string
	Sizes      map[string]string
}

type ImageService struct {
	uploadDir string
	maxPixels int
	log       logger.Logger
}

func NewImageService(uploadDir string) *ImageService {
	return &ImageService{
		uploadDir: uploadDir,
		maxPixels: MaxImagePixels,
		log:       logger.New("ImageService"),
	}
}

func variantFileName(id int, variant string) string {
	return fmt.Sprintf("%d_%s.webp", id, variant)
}

// PublicPath is the URL path a variant is served under.
func PublicPath(preset ImagePreset, id int, variant string) string {
	return path.Join(UploadsURLPrefix, preset.Namespace, variantFileName(id, variant))
}

func (s *ImageService) filePath(preset ImagePreset, id int, variant string) string {
	return filepath.Join(s.uploadDir, preset.Namespace, variantFileName(id, variant))
}

func imageValidationError(message string) *types.AppError {
	return types.NewValidationError(
		"Validation failed: image: "+message,
		map[string]string{"image": message},
	)
}

// DetectImageType sniffs the MIME type of data and rejects anything that is
// empty, larger than MaxImageBytes or not jpeg, png or webp.
func DetectImageType(data []byte) (string, error) {
	if len(data) == 0 {
		return "", imageValidationError("file is required")
	}
	if len(data) > MaxImageBytes {
		return "", imageValidationError("file must be 5MB or smaller")
	}

	contentType := http.DetectContentType(data)
	if !allowedImageTypes[contentType] {
		return "", imageValidationError("only JPEG, PNG and WebP images are allowed")
	}

	return contentType, nil
}

// checkDimensions reads only the image header.
func (s *ImageService) checkDimensions(data []byte) error {
	config, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return imageValidationError("file could not be decoded")
	}
	if config.Width <= 0 || config.Height <= 0 ||
		int64(config.Width)*int64(config.Height) > int64(s.maxPixels) {
		return imageValidationError(fmt.Sprintf(
			"image dimensions %dx%d exceed the %d pixel limit",
			config.Width, config.Height, s.maxPixels,
		))
	}
	return nil
}

func decodeImage(data []byte, contentType string) (image.Image, error) {
	if contentType == "image/webp" {
		return webp.Decode(bytes.NewReader(data))
	}
	return imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
}

// Process writes every variant of preset for id and returns their public
// paths. Variants already written are removed if a later one fails.
func (s *ImageService) Process(
	ctx context.Context,
	preset ImagePreset,
	id int,
	data []byte,
) (ProcessedImage, error) {
	log := s.log.TraceFromContext(ctx).Function("Process")

	contentType, err := DetectImageType(data)
	if err != nil {
		return ProcessedImage{}, err
	}

	if err := s.checkDimensions(data); err != nil {
		log.Warn("rejected image dimensions", "contentType", contentType, "error", err)
		return ProcessedImage{}, err
	}

	src, err := decodeImage(data, contentType)
	if err != nil {
		log.Warn("failed to decode image", "contentType", contentType, "error", err)
		return ProcessedImage{}, imageValidationError("file could not be decoded")
	}

	dir := filepath.Join(s.uploadDir, preset.Namespace)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return ProcessedImage{}, log.Err("failed to create upload directory", err, "dir", dir)
	}

	sizes := make(map[string]string, len(preset.Variants))
	for _, variant := range preset.Variants {
		if err := s.writeVariant(src, preset, id, variant); err != nil {
			if cleanupErr := s.Delete(ctx, preset, id); cleanupErr != nil {
				log.Warn("failed to clean up partial variants", "id", id, "error", cleanupErr)
			}
			return ProcessedImage{}, log.Err("failed to write image variant", err, "id", id, "variant", variant.Name)
		}
		sizes[variant.Name] = PublicPath(preset, id, variant.Name)
	}

	log.Info("Processed image", "namespace", preset.Namespace, "id", id, "variants", len(sizes))

	return ProcessedImage{
		PrimaryURL: sizes[preset.Primary],
		Sizes:      sizes,
	}, nil
}

func (s *ImageService) writeVariant(src image.Image, preset ImagePreset, id int, variant ImageVariant) error {
	resized := imaging.Fill(src, variant.Width, variant.Height, imaging.Center, imaging.Lanczos)

	var buf bytes.Buffer
	if err := webp.Encode(&buf, resized, &webp.Options{Quality: WebPQuality}); err != nil {
		return err
	}

	return os.WriteFile(s.filePath(preset, id, variant.Name), buf.Bytes(), 0o644)
}

// Delete removes every variant file of preset for id. Missing files are
// ignored; other failures are returned together after all removals ran.
func (s *ImageService) Delete(ctx context.Context, preset ImagePreset, id int) error {
	log := s.log.TraceFromContext(ctx).Function("Delete")

	var errs []error
	for _, variant := range preset.Variants {
		target := s.filePath(preset, id, variant.Name)
		if err := os.Remove(target); err != nil && !errors.Is(err, fs.ErrNotExist) {
			errs = append(errs, err)
		}
	}

	if err := errors.Join(errs...); err != nil {
		return log.Err("failed to delete image variants", err, "namespace", preset.Namespace, "id", id)
	}

	return nil
}
