package client

import (
	"context"
	"crypto-storefront/internal/config"
	"errors"
	"fmt"
	"io"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

var ErrMediaDisabled = errors.New("media uploads are not configured")

// MediaClient stores product images, QR codes and hero media.
type MediaClient interface {
	Upload(ctx context.Context, file io.Reader) (string, error)
}

type cloudinaryClientImpl struct {
	cld    *cloudinary.Cloudinary
	folder string
}

// NewMediaClient returns a client that answers ErrMediaDisabled when no
// Cloudinary URL is configured.
func NewMediaClient(cfg *config.Cloudinary) (MediaClient, error) {
	if cfg.URL == "" {
		return disabledMediaClient{}, nil
	}
	cld, err := cloudinary.NewFromURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("cloudinary init: %w", err)
	}
	return &cloudinaryClientImpl{cld: cld, folder: cfg.Folder}, nil
}

func (c *cloudinaryClientImpl) Upload(ctx context.Context, file io.Reader) (string, error) {
	res, err := c.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		Folder: c.folder,
	})
	if err != nil {
		return "", fmt.Errorf("cloudinary upload: %w", err)
	}
	if res.Error.Message != "" {
		return "", fmt.Errorf("cloudinary upload: %s", res.Error.Message)
	}
	return res.SecureURL, nil
}

type disabledMediaClient struct{}

func (disabledMediaClient) Upload(ctx context.Context, file io.Reader) (string, error) {
	return "", ErrMediaDisabled
}
