// Copyright 2025 The PRD Agent Authors
// SPDX-License-Identifier: Apache-2.0

package upload

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
)

// CloudinaryAdapter uploads documents to Cloudinary as raw resources.
type CloudinaryAdapter struct {
	cld    *cloudinary.Cloudinary
	logger *slog.Logger
}

var _ Adapter = (*CloudinaryAdapter)(nil)

// NewCloudinaryAdapter creates an adapter from a CLOUDINARY_URL-style
// connection string.
func NewCloudinaryAdapter(cloudinaryURL string, logger *slog.Logger) (*CloudinaryAdapter, error) {
	if cloudinaryURL == "" {
		return nil, fmt.Errorf("cloudinary URL is required")
	}

	cld, err := cloudinary.NewFromURL(cloudinaryURL)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cloudinary client: %w", err)
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &CloudinaryAdapter{
		cld:    cld,
		logger: logger,
	}, nil
}

// Upload sends the document bytes to Cloudinary and returns the secure URL.
// The payload is streamed from memory, so no local staging file ever exists.
func (a *CloudinaryAdapter) Upload(ctx context.Context, data []byte) (string, error) {
	publicID := "prd_" + uuid.NewString()

	resp, err := a.cld.Upload.Upload(ctx, bytes.NewReader(data), uploader.UploadParams{
		PublicID:     publicID,
		ResourceType: "raw",
		Format:       "pdf",
	})
	if err != nil {
		return "", err
	}
	if resp.Error.Message != "" {
		return "", errors.New(resp.Error.Message)
	}
	if resp.SecureURL == "" {
		return "", fmt.Errorf("cloudinary returned no secure URL for %s", publicID)
	}

	a.logger.Info("document uploaded",
		"public_id", publicID,
		"bytes", len(data))
	return resp.SecureURL, nil
}
