package utils

import (
	"log"
	"os"

	"gopkg.in/yaml.v2"
)

type Config struct {
	// Server configuration
	AppPort string `yaml:"APP_PORT"`

	// Persistence locations
	DataFolder string `yaml:"CDX_WEB_SCAN_FOLDER"`
	DBFileName string `yaml:"CDX_WEB_SCAN_DB_FILE_NAME"`
	LogFile    string `yaml:"CDX_WEB_SCAN_LOG_FILE"`

	// Log viewer
	LogLinesToShow string `yaml:"LOG_LINES_TO_SHOW"`

	// Intake API (both optional; a blank URL disables /batch/submit)
	IntakeAPIURL   string `yaml:"INTAKE_API_URL"`
	IntakeAPIToken string `yaml:"INTAKE_API_TOKEN"`
}

var config Config

// LoadConfig reads config.yaml when present. Every key falls back to the
// environment in GetConfig, so a yaml-less deployment configured purely via
// env vars works too.
func LoadConfig() {
	file, err := os.ReadFile("config.yaml")
	if err != nil {
		log.Printf("No config.yaml, using environment only: %s\n", err)
		return
	}

	if err := yaml.Unmarshal(file, &config); err != nil {
		log.Printf("Error parsing YAML file: %s\n", err)
		return
	}
}

func GetConfig(key string) string {
	value := ""
	switch key {
	case "APP_PORT":
		value = config.AppPort
	case "CDX_WEB_SCAN_FOLDER":
		value = config.DataFolder
	case "CDX_WEB_SCAN_DB_FILE_NAME":
		value = config.DBFileName
	case "CDX_WEB_SCAN_LOG_FILE":
		value = config.LogFile
	case "LOG_LINES_TO_SHOW":
		value = config.LogLinesToShow
	case "INTAKE_API_URL":
		value = config.IntakeAPIURL
	case "INTAKE_API_TOKEN":
		value = config.IntakeAPIToken
	}
	if value == "" {
		value = os.Getenv(key)
	}
	return value
}

// GetConfigDefault is GetConfig with a fallback for optional keys.
func GetConfigDefault(key, fallback string) string {
	if value := GetConfig(key); value != "" {
		return value
	}
	return fallback
}
