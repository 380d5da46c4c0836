package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// LoadEnv loads variables from a .env file when one exists. A missing file is
// fine, the process then relies on the real environment.
func LoadEnv() {
	if _, err := os.Stat(".env"); os.IsNotExist(err) {
		log.Println(".env file not found, using system environment variables")
		return
	}

	if err := godotenv.Load(); err != nil {
		log.Fatal("Error loading .env file")
	}
	log.Println("Environment variables loaded")
}

// GetEnv returns the value of key, or fallback when the key is unset.
func GetEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
