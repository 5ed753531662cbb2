package mediaservice

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

var ErrUploadFailed = errors.New("media upload failed")

// uploadFolder namespaces every asset on the media host.
const uploadFolder = "blog"

func NewUploadService(cloudName, apiKey, apiSecret string) (*UploadService, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, err
	}

	return &UploadService{cld: cld, folder: uploadFolder}, nil
}

// UploadImage streams the file to the media host and returns the publicly
// addressable URL. The payload is passed through as-is; the host enforces any
// file type or size limits. Failures are not retried.
func (s *UploadService) UploadImage(ctx context.Context, file io.Reader) (string, error) {
	res, err := s.cld.Upload.Upload(ctx, file, uploader.UploadParams{Folder: s.folder})
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrUploadFailed, err)
	}

	// API-level rejections surface on the result rather than as an error
	if res.Error.Message != "" {
		return "", fmt.Errorf("%w: %s", ErrUploadFailed, res.Error.Message)
	}

	return res.SecureURL, nil
}
