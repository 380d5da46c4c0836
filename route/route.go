package route

import (
	"context"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"

	"uas_backend/app/model"
	"uas_backend/app/repository"
	"uas_backend/app/service"
	"uas_backend/app/utils"
	mongodb "uas_backend/database/mongo"
	"uas_backend/helper"
	"uas_backend/middleware"
)

const (
	defaultLimit = 10
	maxLimit     = 100
)

// SetupRoutes wires repositories, services and middleware and registers every
// endpoint on the app.
func SetupRoutes(app *fiber.App, db *mongodb.Mongo) {
	// =========================
	// Versioned record stores
	// =========================
	userRepo := repository.NewVersionedRepository[model.User](db.Collection("users"))
	studentRepo := repository.NewVersionedRepository[model.Student](db.Collection("students"))

	// Unique keys are the store's job: partial indexes scoped to non-deleted
	// records, so a deleted record's key can be reused.
	ctx := context.Background()
	if err := userRepo.EnsureUniqueIndex(ctx, "email"); err != nil {
		log.Fatal("users email index: ", err)
	}
	if err := studentRepo.EnsureUniqueIndex(ctx, "nim"); err != nil {
		log.Fatal("students nim index: ", err)
	}

	// =========================
	// Services
	// =========================
	userService := service.NewUserService(userRepo)
	studentService := service.NewStudentService(studentRepo)

	authGate := middleware.JWTMiddleware()

	// =========================
	// Register routes
	// =========================
	UserRoutes(app.Group("/users"), userService, authGate)
	StudentRoutes(app.Group("/students"), studentService, authGate)
	healthRoutes(app, db)
}

func healthRoutes(app *fiber.App, db *mongodb.Mongo) {
	app.Get("/", func(c *fiber.Ctx) error {
		return helper.Success(c, "University Backend API is running!", nil)
	})

	app.Get("/health", func(c *fiber.Ctx) error {
		database := "connected"
		if err := db.Ping(c.Context()); err != nil {
			database = "disconnected"
		}
		return c.JSON(fiber.Map{
			"status":   "healthy",
			"database": database,
		})
	})
}

// validateBody runs the payload's validate tags.
func validateBody(payload interface{}) error {
	return utils.ValidateStruct(payload)
}

// pagination clamps skip/limit query parameters to policy: skip >= 0,
// 1 <= limit <= 100.
func pagination(c *fiber.Ctx) (skip, limit int64) {
	skip = int64(c.QueryInt("skip", 0))
	if skip < 0 {
		skip = 0
	}
	limit = int64(c.QueryInt("limit", defaultLimit))
	if limit < 1 {
		limit = 1
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return skip, limit
}

// writeRepoError translates a record store failure for the read/update/delete
// endpoints: 409 on a version conflict, 404 on everything the client can fix,
// 500 otherwise. label names the entity in messages ("user" or "student").
func writeRepoError(c *fiber.Ctx, err error, label, duplicateCode string) error {
	title := strings.ToUpper(label[:1]) + label[1:]
	code := helper.ErrorCode(err, duplicateCode)
	switch code {
	case helper.CodeVersionConflict:
		return helper.Error(c, fiber.StatusConflict, "Update failed due to version conflict", code)
	case helper.CodeInvalidID:
		return helper.Error(c, fiber.StatusNotFound, "Invalid "+label+" ID format", code)
	case helper.CodeNotFound:
		return helper.Error(c, fiber.StatusNotFound, title+" not found", code)
	case helper.CodeNoData:
		return helper.Error(c, fiber.StatusNotFound, "No data provided to update", code)
	case helper.CodeVersionRequired:
		return helper.Error(c, fiber.StatusNotFound, "Version number is required for updates", code)
	case duplicateCode:
		return helper.Error(c, fiber.StatusBadRequest, title+" with this unique key already exists", code)
	default:
		return helper.Error(c, fiber.StatusInternalServerError, "Unexpected persistence failure", code)
	}
}
