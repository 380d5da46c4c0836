package route

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"uas_backend/app/model"
	"uas_backend/app/repository"
	"uas_backend/app/service"
	"uas_backend/helper"
	"uas_backend/middleware"
)

// StudentRoutes registers the student endpoints. Every route requires a valid
// bearer token.
func StudentRoutes(students fiber.Router, svc service.StudentService, authGate fiber.Handler) {
	students.Use(authGate)

	students.Post("/create", func(c *fiber.Ctx) error {
		var req model.StudentCreate
		if err := c.BodyParser(&req); err != nil {
			return helper.Error(c, fiber.StatusBadRequest, "Invalid request body", helper.CodeValidation)
		}
		if err := validateBody(&req); err != nil {
			return helper.Error(c, fiber.StatusBadRequest, err.Error(), helper.CodeValidation)
		}

		createdBy, _ := c.Locals(middleware.LocalUserID).(string)
		result, err := svc.Create(c.Context(), req, createdBy)
		if err != nil {
			if errors.Is(err, repository.ErrDuplicateKey) {
				return helper.Error(c, fiber.StatusBadRequest, "Student with this NIM already exists", helper.CodeDuplicateNIM)
			}
			return helper.Error(c, fiber.StatusInternalServerError, "Failed to create student", helper.CodeInternal)
		}
		return helper.Created(c, "Student created successfully", result)
	})

	students.Get("/:id", func(c *fiber.Ctx) error {
		result, err := svc.GetByID(c.Context(), c.Params("id"))
		if err != nil {
			return writeRepoError(c, err, "student", helper.CodeDuplicateNIM)
		}
		return helper.Success(c, "Student found", result)
	})

	students.Get("/", func(c *fiber.Ctx) error {
		skip, limit := pagination(c)

		filter := model.StudentFilter{StudyProgram: c.Query("study_program")}
		if raw := c.Query("semester"); raw != "" {
			if semester, err := strconv.Atoi(raw); err == nil {
				filter.Semester = &semester
			}
		}

		result, err := svc.List(c.Context(), skip, limit, filter)
		if err != nil {
			return writeRepoError(c, err, "student", helper.CodeDuplicateNIM)
		}
		return helper.Success(c, "Students retrieved successfully", result)
	})

	students.Put("/:id", func(c *fiber.Ctx) error {
		var req model.StudentUpdate
		if err := c.BodyParser(&req); err != nil {
			return helper.Error(c, fiber.StatusBadRequest, "Invalid request body", helper.CodeValidation)
		}
		if err := validateBody(&req); err != nil {
			return helper.Error(c, fiber.StatusBadRequest, err.Error(), helper.CodeValidation)
		}

		result, err := svc.Update(c.Context(), c.Params("id"), req)
		if err != nil {
			return writeRepoError(c, err, "student", helper.CodeDuplicateNIM)
		}
		return helper.Success(c, "Student updated successfully", result)
	})

	students.Delete("/:id", func(c *fiber.Ctx) error {
		if err := svc.Delete(c.Context(), c.Params("id")); err != nil {
			return writeRepoError(c, err, "student", helper.CodeDuplicateNIM)
		}
		return helper.Success(c, "Student deleted successfully", nil)
	})
}
