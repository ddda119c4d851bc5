package handlers

import (
	"github.com/mindspace-app/mindspace-backend/internal/config"
	"github.com/mindspace-app/mindspace-backend/internal/services"
)

var cloudinaryService *services.CloudinaryService

// InitCloudinaryService wires the upload backend for profile pictures.
// When credentials are missing the service stays nil and uploads return a
// 500 instead of failing at startup.
func InitCloudinaryService(cfg *config.Config) error {
	service, err := services.NewCloudinaryService(
		cfg.CloudinaryName,
		cfg.CloudinaryAPIKey,
		cfg.CloudinaryAPISecret,
	)
	if err != nil {
		return err
	}
	cloudinaryService = service
	return nil
}
