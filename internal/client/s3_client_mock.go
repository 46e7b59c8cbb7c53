package client

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// MockS3Client implements ObjectStorage for tests without AWS credentials
type MockS3Client struct {
	Bucket string
	Region string

	// Uploaded simulates objects present in the bucket
	Uploaded map[string]bool

	GenerateAvatarUploadURLFunc func(ctx context.Context, userID uuid.UUID, fileName, contentType string) (string, string, error)
	ObjectExistsFunc            func(ctx context.Context, key string) (bool, error)
	DeleteFileFunc              func(ctx context.Context, key string) error
}

// NewMockS3Client creates a new mock S3 client for testing
func NewMockS3Client() *MockS3Client {
	return &MockS3Client{
		Bucket:   "test-bucket",
		Region:   "ap-northeast-2",
		Uploaded: map[string]bool{},
	}
}

func (m *MockS3Client) GenerateAvatarUploadURL(ctx context.Context, userID uuid.UUID, fileName, contentType string) (string, string, error) {
	if m.GenerateAvatarUploadURLFunc != nil {
		return m.GenerateAvatarUploadURLFunc(ctx, userID, fileName, contentType)
	}
	key, err := GenerateAvatarKey(userID, fileName)
	if err != nil {
		return "", "", err
	}
	url := fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s?X-Amz-Algorithm=AWS4-HMAC-SHA256&X-Amz-Signature=mocksignature", m.Bucket, m.Region, key)
	return url, key, nil
}

func (m *MockS3Client) ObjectExists(ctx context.Context, key string) (bool, error) {
	if m.ObjectExistsFunc != nil {
		return m.ObjectExistsFunc(ctx, key)
	}
	return m.Uploaded[key], nil
}

func (m *MockS3Client) DeleteFile(ctx context.Context, key string) error {
	if m.DeleteFileFunc != nil {
		return m.DeleteFileFunc(ctx, key)
	}
	delete(m.Uploaded, key)
	return nil
}

func (m *MockS3Client) GetFileURL(key string) string {
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", m.Bucket, m.Region, key)
}

var _ ObjectStorage = (*MockS3Client)(nil)
var _ ObjectStorage = (*S3Client)(nil)
