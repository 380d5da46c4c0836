package helper

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"uas_backend/app/repository"
)

// Error codes carried in the envelope's error field.
const (
	CodeInvalidID       = "INVALID_ID"
	CodeNotFound        = "NOT_FOUND"
	CodeDuplicateEmail  = "DUPLICATE_EMAIL"
	CodeDuplicateNIM    = "DUPLICATE_NIM"
	CodeNoData          = "NO_DATA"
	CodeVersionRequired = "VERSION_REQUIRED"
	CodeVersionConflict = "VERSION_CONFLICT"
	CodeValidation      = "VALIDATION_ERROR"
	CodeInternal        = "INTERNAL_ERROR"
)

// Response is the envelope every endpoint answers with.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
	Error   interface{} `json:"error"`
}

func Success(c *fiber.Ctx, message string, data interface{}) error {
	return c.Status(fiber.StatusOK).JSON(Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func Created(c *fiber.Ctx, message string, data interface{}) error {
	return c.Status(fiber.StatusCreated).JSON(Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func Error(c *fiber.Ctx, status int, message, code string) error {
	resp := Response{
		Success: false,
		Message: message,
	}
	if code != "" {
		resp.Error = code
	}
	return c.Status(status).JSON(resp)
}

// ErrorCode maps a repository failure to its wire code. duplicateCode names
// the entity-specific unique key (DUPLICATE_EMAIL or DUPLICATE_NIM).
func ErrorCode(err error, duplicateCode string) string {
	switch {
	case errors.Is(err, repository.ErrInvalidID):
		return CodeInvalidID
	case errors.Is(err, repository.ErrNotFound):
		return CodeNotFound
	case errors.Is(err, repository.ErrDuplicateKey):
		return duplicateCode
	case errors.Is(err, repository.ErrNoData):
		return CodeNoData
	case errors.Is(err, repository.ErrVersionRequired):
		return CodeVersionRequired
	case errors.Is(err, repository.ErrVersionConflict):
		return CodeVersionConflict
	default:
		return CodeInternal
	}
}
