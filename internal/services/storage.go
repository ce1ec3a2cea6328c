package services

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

var resumeExtensions = map[string]string{
	MIMETypePDF:  ".pdf",
	MIMETypeDOCX: ".docx",
}

type StorageService interface {
	SaveFile(data []byte, mimeType, prefix string) (string, string, error)
	GetFilePath(filename string) string
	DeleteFile(filename string) error
	EnsureUploadDir() error
}

type storageService struct {
	uploadPath string
}

func NewStorageService(uploadPath string) StorageService {
	return &storageService{
		uploadPath: uploadPath,
	}
}

func (s *storageService) EnsureUploadDir() error {
	if err := os.MkdirAll(s.uploadPath, 0755); err != nil {
		return fmt.Errorf("failed to create upload directory: %w", err)
	}

	return nil
}

// SaveFile writes data under a generated unique name and returns that name
// and the full path.
func (s *storageService) SaveFile(data []byte, mimeType, prefix string) (string, string, error) {
	ext, ok := resumeExtensions[mimeType]
	if !ok {
		return "", "", fmt.Errorf("invalid file type: %s", mimeType)
	}

	uniqueFilename := fmt.Sprintf("%s_%s%s", prefix, uuid.New().String(), ext)
	filePath := filepath.Join(s.uploadPath, uniqueFilename)

	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return "", "", fmt.Errorf("failed to save file: %w", err)
	}

	return uniqueFilename, filePath, nil
}

func (s *storageService) GetFilePath(filename string) string {
	return filepath.Join(s.uploadPath, filepath.Base(filename))
}

func (s *storageService) DeleteFile(filename string) error {
	filePath := s.GetFilePath(filename)
	if err := os.Remove(filePath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}
