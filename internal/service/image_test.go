package service

import (
	"context"
	"encoding/base64"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pageza/recipe-feeds/backend/internal/models"
)

type mockPresigner struct {
	mock.Mock
}

func (m *mockPresigner) GeneratePresignedURL(ctx context.Context, key string, expiration time.Duration) (string, error) {
	args := m.Called(ctx, key, expiration)
	return args.String(0), args.Error(1)
}

func TestEncodeDataURI(t *testing.T) {
	uri := EncodeDataURI(pngHeader)
	assert.Equal(t, "data:image/png;base64,"+base64.StdEncoding.EncodeToString(pngHeader), uri)
}

func TestDecodeImage(t *testing.T) {
	encoded := base64.StdEncoding.EncodeToString(pngHeader)

	fromURI, err := DecodeImage("data:image/png;base64," + encoded)
	require.NoError(t, err)
	assert.Equal(t, pngHeader, fromURI)

	bare, err := DecodeImage(encoded)
	require.NoError(t, err)
	assert.Equal(t, pngHeader, bare)

	empty, err := DecodeImage("  ")
	require.NoError(t, err)
	assert.Nil(t, empty)

	for _, bad := range []string{
		"data:image/png," + encoded,
		"%%%not base64%%%",
		base64.StdEncoding.EncodeToString([]byte("hello world")),
	} {
		_, err := DecodeImage(bad)
		assert.ErrorIs(t, err, ErrValidation, bad)
	}
}

func TestImageStringPrefersPresignedKey(t *testing.T) {
	presigner := new(mockPresigner)
	presigner.On("GeneratePresignedURL", mock.Anything, "recipes/1.png", 15*time.Minute).
		Return("https://bucket.example/recipes/1.png?sig", nil)
	n := NewImageNormalizer(presigner, 15*time.Minute)

	r := &models.Recipe{ImageKey: "recipes/1.png", Image: pngHeader}
	assert.Equal(t, "https://bucket.example/recipes/1.png?sig", n.ImageString(context.Background(), r))
	presigner.AssertExpectations(t)
}

func TestImageStringFallsBackToInline(t *testing.T) {
	presigner := new(mockPresigner)
	presigner.On("GeneratePresignedURL", mock.Anything, "broken", time.Hour).Return("", errors.New("no credentials"))
	n := NewImageNormalizer(presigner, 0)

	assert.Equal(t, EncodeDataURI(pngHeader), n.ImageString(context.Background(), &models.Recipe{ImageKey: "broken", Image: pngHeader}))
	assert.Equal(t, "", n.ImageString(context.Background(), &models.Recipe{}))
}
