package service

import (
	"context"
	"encoding/base64"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"

	"github.com/pageza/recipe-feeds/backend/internal/logging"
	"github.com/pageza/recipe-feeds/backend/internal/models"
	"github.com/pageza/recipe-feeds/backend/internal/types"
)

// MaxImageBytes bounds a decoded inline image.
const MaxImageBytes = 5 << 20

// Presigner issues time-limited URLs for stored objects.
type Presigner interface {
	GeneratePresignedURL(ctx context.Context, objectKey string, expiration time.Duration) (string, error)
}

// ImageNormalizer converts between stored recipe images and the string
// form used on the wire: a presigned URL for images kept in object storage,
// or a base64 data URI for images stored inline.
type ImageNormalizer struct {
	presigner Presigner
	expiry    time.Duration
}

// NewImageNormalizer creates an ImageNormalizer. presigner may be nil, in
// which case object-stored images are omitted from responses.
func NewImageNormalizer(presigner Presigner, expiry time.Duration) *ImageNormalizer {
	if expiry <= 0 {
		expiry = time.Hour
	}
	return &ImageNormalizer{presigner: presigner, expiry: expiry}
}

// ImageString returns the wire form of r's image, or "" when it has none.
func (n *ImageNormalizer) ImageString(ctx context.Context, r *models.Recipe) string {
	if r.ImageKey != "" && n != nil && n.presigner != nil {
		url, err := n.presigner.GeneratePresignedURL(ctx, r.ImageKey, n.expiry)
		if err == nil {
			return url
		}
		logging.Warn().Err(err).Str("recipe_id", r.ID.String()).Msg("presign recipe image")
	}
	if len(r.Image) > 0 {
		return EncodeDataURI(r.Image)
	}
	return ""
}

// Present converts a stored recipe to its wire form.
func (n *ImageNormalizer) Present(ctx context.Context, r *models.Recipe) types.Recipe {
	return types.Recipe{
		ID:           r.ID,
		Title:        r.Title,
		Image:        n.ImageString(ctx, r),
		ChefName:     r.ChefName,
		UserID:       r.UserID,
		Visibility:   r.Visibility,
		Description:  r.Description,
		Quantities:   nonNil(r.Quantities),
		Ingredients:  nonNil(r.Ingredients),
		Steps:        nonNil(r.Steps),
		Diet:         nonNil(r.Diet),
		Categories:   nonNil(r.Categories),
		CuisineTypes: nonNil(r.CuisineTypes),
		Allergens:    nonNil(r.Allergens),
		CreatedAt:    r.CreatedAt,
	}
}

// PresentAll converts a page of stored recipes.
func (n *ImageNormalizer) PresentAll(ctx context.Context, rs []models.Recipe) []types.Recipe {
	out := make([]types.Recipe, 0, len(rs))
	for i := range rs {
		out = append(out, n.Present(ctx, &rs[i]))
	}
	return out
}

// EncodeDataURI renders image bytes as a data URI with a sniffed MIME type.
func EncodeDataURI(data []byte) string {
	mime := mimetype.Detect(data).String()
	if i := strings.IndexByte(mime, ';'); i >= 0 {
		mime = mime[:i]
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// DecodeImage accepts a data URI or bare standard base64 and returns the
// image bytes. Empty input yields nil. Non-image payloads are rejected.
func DecodeImage(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	if strings.HasPrefix(s, "data:") {
		comma := strings.IndexByte(s, ',')
		if comma < 0 || !strings.HasSuffix(s[:comma], ";base64") {
			return nil, invalid("image must be a base64 data URI")
		}
		s = s[comma+1:]
	}

	data, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, invalid("image is not valid base64: %v", err)
	}
	if len(data) > MaxImageBytes {
		return nil, invalid("image exceeds %d bytes", MaxImageBytes)
	}
	if !strings.HasPrefix(mimetype.Detect(data).String(), "image/") {
		return nil, invalid("image payload is not an image")
	}
	return data, nil
}

func nonNil(s models.StringList) []string {
	if s == nil {
		return []string{}
	}
	return []string(s)
}

