package mediaservice

import (
	"context"
	"io"

	"github.com/cloudinary/cloudinary-go/v2"
)

// Uploader forwards a binary file to the external media host and returns its
// public URL.
type Uploader interface {
	UploadImage(ctx context.Context, file io.Reader) (string, error)
}

type UploadService struct {
	cld    *cloudinary.Cloudinary
	folder string
}
