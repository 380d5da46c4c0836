package route

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"uas_backend/app/model"
	"uas_backend/app/repository"
	"uas_backend/app/service"
	"uas_backend/helper"
)

// UserRoutes registers the user endpoints. Registration and login are public;
// everything else sits behind the auth gate.
func UserRoutes(users fiber.Router, svc service.UserService, authGate fiber.Handler) {
	users.Post("/register", func(c *fiber.Ctx) error {
		var req model.UserRegister
		if err := c.BodyParser(&req); err != nil {
			return helper.Error(c, fiber.StatusBadRequest, "Invalid request body", helper.CodeValidation)
		}
		if err := validateBody(&req); err != nil {
			return helper.Error(c, fiber.StatusBadRequest, err.Error(), helper.CodeValidation)
		}

		result, err := svc.Register(c.Context(), req)
		if err != nil {
			if errors.Is(err, repository.ErrDuplicateKey) {
				return helper.Error(c, fiber.StatusBadRequest, "User with this email already exists", helper.CodeDuplicateEmail)
			}
			return helper.Error(c, fiber.StatusInternalServerError, "Failed to create user", helper.CodeInternal)
		}
		return helper.Created(c, "User created successfully", result)
	})

	users.Post("/login", func(c *fiber.Ctx) error {
		var req model.UserLogin
		if err := c.BodyParser(&req); err != nil {
			return helper.Error(c, fiber.StatusBadRequest, "Invalid request body", helper.CodeValidation)
		}
		if err := validateBody(&req); err != nil {
			return helper.Error(c, fiber.StatusBadRequest, err.Error(), helper.CodeValidation)
		}

		result, err := svc.Login(c.Context(), req)
		if err != nil {
			if errors.Is(err, service.ErrInvalidCredentials) {
				c.Set(fiber.HeaderWWWAuthenticate, "Bearer")
				return helper.Error(c, fiber.StatusUnauthorized, "Invalid credentials", "")
			}
			return helper.Error(c, fiber.StatusInternalServerError, "Login failed", helper.CodeInternal)
		}
		return helper.Success(c, "Login successful", result)
	})

	users.Get("/:id", authGate, func(c *fiber.Ctx) error {
		result, err := svc.GetByID(c.Context(), c.Params("id"))
		if err != nil {
			return writeRepoError(c, err, "user", helper.CodeDuplicateEmail)
		}
		return helper.Success(c, "User found", result)
	})

	users.Get("/", authGate, func(c *fiber.Ctx) error {
		skip, limit := pagination(c)
		result, err := svc.List(c.Context(), skip, limit)
		if err != nil {
			return writeRepoError(c, err, "user", helper.CodeDuplicateEmail)
		}
		return helper.Success(c, "Users retrieved successfully", result)
	})

	users.Put("/:id", authGate, func(c *fiber.Ctx) error {
		var req model.UserUpdate
		if err := c.BodyParser(&req); err != nil {
			return helper.Error(c, fiber.StatusBadRequest, "Invalid request body", helper.CodeValidation)
		}
		if err := validateBody(&req); err != nil {
			return helper.Error(c, fiber.StatusBadRequest, err.Error(), helper.CodeValidation)
		}

		result, err := svc.Update(c.Context(), c.Params("id"), req)
		if err != nil {
			return writeRepoError(c, err, "user", helper.CodeDuplicateEmail)
		}
		return helper.Success(c, "User updated successfully", result)
	})

	users.Delete("/:id", authGate, func(c *fiber.Ctx) error {
		if err := svc.Delete(c.Context(), c.Params("id")); err != nil {
			return writeRepoError(c, err, "user", helper.CodeDuplicateEmail)
		}
		return helper.Success(c, "User deleted successfully", nil)
	})
}
