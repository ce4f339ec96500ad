package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
)

const (
	DefaultThumbnailsSubDir = "thumbnails"
)

const (
	defaultThumbnailQueueSize  = 100
	defaultNumThumbnailWorkers = 2
	defaultThumbnailMaxSize    = 300
	defaultCameraDeviceID      = 0
)

type Config struct {
	// database path
	DatabasePath string

	// media storage configuration
	MediaStoragePath string // primary root for generated assets (photo previews)
	ThumbnailsPath   string // full-calculated path for thumbnails

	// thumbnail generation settings
	ThumbnailMaxSize int

	// worker settings
	ThumbnailQueueSize  int
	NumThumbnailWorkers int

	// webcam device index handed to the capture controller
	CameraDeviceID int
}

func getEnvOrDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvIntOrDefault(envVar string, defaultVal int) int {
	valStr := os.Getenv(envVar)
	if valStr == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(valStr)
	if err != nil || val <= 0 {
		log.Printf("Warning: Invalid %s '%s'. Using default %d. Error: %v", envVar, valStr, defaultVal, err)
		return defaultVal
	}
	return val
}

func LoadConfig() (Config, error) {
	dbPath := getEnvOrDefault("DATABASE_PATH", "photoclass.db")

	mediaStorage := getEnvOrDefault("MEDIA_STORAGE_PATH", filepath.Join(".", "media_storage"))
	absMediaStorage, err := filepath.Abs(mediaStorage)
	if err != nil {
		return Config{}, fmt.Errorf("failed to get absolute path for media storage '%s': %w", mediaStorage, err)
	}

	thumbSubDir := getEnvOrDefault("THUMBNAILS_SUBDIR", DefaultThumbnailsSubDir)
	absThumbnailsPath := filepath.Join(absMediaStorage, thumbSubDir)

	thumbMaxSize := getEnvIntOrDefault("THUMBNAIL_MAX_SIZE", defaultThumbnailMaxSize)

	queueSize := getEnvIntOrDefault("THUMBNAIL_QUEUE_SIZE", defaultThumbnailQueueSize)
	numWorkers := getEnvIntOrDefault("NUM_THUMBNAIL_WORKERS", defaultNumThumbnailWorkers)

	cameraDeviceID := defaultCameraDeviceID
	if v := os.Getenv("CAMERA_DEVICE_ID"); v != "" {
		id, convErr := strconv.Atoi(v)
		if convErr != nil || id < 0 {
			log.Printf("Warning: Invalid CAMERA_DEVICE_ID '%s'. Using default %d.", v, defaultCameraDeviceID)
		} else {
			cameraDeviceID = id
		}
	}

	cfg := Config{
		DatabasePath:        dbPath,
		MediaStoragePath:    absMediaStorage,
		ThumbnailsPath:      absThumbnailsPath,
		ThumbnailMaxSize:    thumbMaxSize,
		ThumbnailQueueSize:  queueSize,
		NumThumbnailWorkers: numWorkers,
		CameraDeviceID:      cameraDeviceID,
	}

	return cfg, nil
}
