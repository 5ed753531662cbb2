package mediaservice

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"
)

type MockUploader struct {
	mock.Mock
}

func (m *MockUploader) UploadImage(ctx context.Context, file io.Reader) (string, error) {
	args := m.Called(ctx, file)
	return args.String(0), args.Error(1)
}
