package services

import (
	"fmt"
	"mime/multipart"
	"time"
)

// MockS3Service is an in-memory S3Interface for tests
type MockS3Service struct {
	Uploaded   map[string][]byte
	FailUpload bool
}

// NewMockS3Service creates a mock with empty storage
func NewMockS3Service() *MockS3Service {
	return &MockS3Service{Uploaded: make(map[string][]byte)}
}

// UploadDocument records the upload and returns a deterministic-looking key
func (m *MockS3Service) UploadDocument(fileHeader *multipart.FileHeader) (string, error) {
	if m.FailUpload {
		return "", fmt.Errorf("mock upload failure")
	}
	key := fmt.Sprintf("ktp/%d_%s", time.Now().Unix(), fileHeader.Filename)
	m.Uploaded[key] = nil
	return key, nil
}

// GetPresignedURL returns a fake URL for the key
func (m *MockS3Service) GetPresignedURL(s3Key string) (string, error) {
	return "https://mock-bucket.s3.amazonaws.com/" + s3Key + "?signed=true", nil
}

// DeleteDocument removes the key from the mock storage
func (m *MockS3Service) DeleteDocument(s3Key string) error {
	delete(m.Uploaded, s3Key)
	return nil
}
