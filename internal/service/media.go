package service

import (
	"context"
	"crypto-storefront/internal/client"
	"fmt"
	"io"
	"strings"
)

const MaxUploadSize = 20 << 20

type MediaService interface {
	Upload(ctx context.Context, contentType string, size int64, file io.Reader) (string, error)
}

type mediaServiceImpl struct {
	mediaClient client.MediaClient
}

func NewMediaService(mediaClient client.MediaClient) MediaService {
	return &mediaServiceImpl{
		mediaClient: mediaClient,
	}
}

// Upload accepts images and videos up to MaxUploadSize.
func (s *mediaServiceImpl) Upload(ctx context.Context, contentType string, size int64, file io.Reader) (string, error) {
	if !strings.HasPrefix(contentType, "image/") && !strings.HasPrefix(contentType, "video/") {
		return "", fmt.Errorf("%w: unsupported media type %q", ErrInvalidInput, contentType)
	}
	if size > MaxUploadSize {
		return "", fmt.Errorf("%w: file exceeds %d MB", ErrInvalidInput, MaxUploadSize>>20)
	}

	url, err := s.mediaClient.Upload(ctx, file)
	if err != nil {
		return "", fmt.Errorf("upload media: %w", err)
	}
	return url, nil
}
