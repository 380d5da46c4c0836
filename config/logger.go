package config

import (
	"os"

	"github.com/gofiber/fiber/v2/middleware/logger"
)

// NewLoggerConfig returns the request logger configuration for the Fiber app.
// Example line: [10:30:00] 200 - GET /students/ (12ms)
func NewLoggerConfig() logger.Config {
	return logger.Config{
		Format:     "[${time}] ${status} - ${method} ${path} (${latency})\n",
		TimeFormat: "15:04:05",
		Output:     os.Stdout,
	}
}
