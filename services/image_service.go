package services

import (
	"fmt"
	"mime/multipart"

	"github.com/farmly/farm-market-api/utils"
)

// ImageService handles image upload, retrieval, and deletion for farm avatars
// and product photos
type ImageService interface {
	// UploadImage validates and uploads an image file, returns the storage key
	UploadImage(fileHeader *multipart.FileHeader, keyPrefix string) (string, error)

	// GetImageURL generates a URL for accessing an uploaded image
	GetImageURL(imageKey string) (string, error)

	// DeleteImage removes an image from storage
	DeleteImage(imageKey string) error
}

// S3ImageService implements ImageService using AWS S3 for storage
type S3ImageService struct {
	s3Service S3Interface
}

// LocalImageService implements ImageService on the local filesystem. It is
// the development fallback when no S3 bucket is configured; files are served
// by the uploads endpoint.
type LocalImageService struct {
	uploadDir string
}

var imageServiceInstance ImageService

// InitImageService initializes the image service with S3 backend
func InitImageService(s3Service S3Interface) ImageService {
	imageServiceInstance = &S3ImageService{
		s3Service: s3Service,
	}
	return imageServiceInstance
}

// InitLocalImageService initializes the image service with the filesystem
// backend. The serving endpoint reads from utils.UploadDir, so it is kept in
// step with the write directory here.
func InitLocalImageService(uploadDir string) ImageService {
	utils.UploadDir = uploadDir
	imageServiceInstance = &LocalImageService{
		uploadDir: uploadDir,
	}
	return imageServiceInstance
}

// GetImageService returns the initialized image service instance
func GetImageService() ImageService {
	return imageServiceInstance
}

// SetImageService sets the image service instance (primarily for testing)
func SetImageService(service ImageService) {
	imageServiceInstance = service
}

// UploadImage validates and uploads an image file to S3
func (s *S3ImageService) UploadImage(fileHeader *multipart.FileHeader, keyPrefix string) (string, error) {
	// Validate the image file
	if err := utils.ValidateImageFile(fileHeader); err != nil {
		return "", err
	}

	key, err := s.s3Service.UploadFile(fileHeader, keyPrefix)
	if err != nil {
		return "", fmt.Errorf("failed to upload image: %w", err)
	}

	return key, nil
}

// GetImageURL generates a presigned URL for the stored image
func (s *S3ImageService) GetImageURL(imageKey string) (string, error) {
	return s.s3Service.GetPresignedURL(imageKey)
}

// DeleteImage removes the image from S3
func (s *S3ImageService) DeleteImage(imageKey string) error {
	return s.s3Service.DeleteFile(imageKey)
}

// UploadImage validates and saves an image file locally. The key prefix is
// ignored; local files share one uploads directory.
func (s *LocalImageService) UploadImage(fileHeader *multipart.FileHeader, keyPrefix string) (string, error) {
	if err := utils.ValidateImageFile(fileHeader); err != nil {
		return "", err
	}

	filename, err := utils.SaveUploadedFile(fileHeader, s.uploadDir)
	if err != nil {
		return "", fmt.Errorf("failed to save image: %w", err)
	}

	return filename, nil
}

// GetImageURL returns the local serving path for the stored image
func (s *LocalImageService) GetImageURL(imageKey string) (string, error) {
	return utils.GetImageURL(imageKey), nil
}

// DeleteImage is a no-op for local storage; stale files are cleaned up out of
// band.
func (s *LocalImageService) DeleteImage(imageKey string) error {
	return nil
}
