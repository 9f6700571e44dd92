package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
)

// AppConfig holds process-wide settings: the token signing secret, token
// lifetime, listen port and the image storage location. Constructed once at
// startup and passed by reference, never a hidden global.
type AppConfig struct {
	JWTSecret          string
	JWTExpirationHours int64
	ServerPort         string
	UploadsDir         string
}

// LoadAppConfig loads application configuration from environment variables
func LoadAppConfig() (*AppConfig, error) {
	jwtSecret := os.Getenv("JWT_SECRET_KEY")
	if jwtSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET_KEY not set in environment")
	}

	jwtExpHours := int64(24)
	if v := os.Getenv("JWT_EXPIRATION_HOURS"); v != "" {
		parsed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			log.Printf("Invalid JWT_EXPIRATION_HOURS, defaulting to 24: %v", err)
		} else {
			jwtExpHours = parsed
		}
	}

	serverPort := os.Getenv("SERVER_PORT")
	if serverPort == "" {
		serverPort = "8080" // Default port
	}

	uploadsDir := os.Getenv("UPLOADS_DIR")
	if uploadsDir == "" {
		uploadsDir = "uploads" // Default uploads directory
	}

	return &AppConfig{
		JWTSecret:          jwtSecret,
		JWTExpirationHours: jwtExpHours,
		ServerPort:         serverPort,
		UploadsDir:         uploadsDir,
	}, nil
}
