package handlers

import (
	"ecommerce/internal/models"
	"ecommerce/internal/services"
	"ecommerce/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles HTTP requests for users and authentication.
type AuthHandler struct {
	authService *services.AuthService
	log         *logger.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService, log *logger.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		log:         log.Component("auth_handler"),
	}
}

// RegisterRoutes registers the user routes. Listing users is admin only.
func (h *AuthHandler) RegisterRoutes(router fiber.Router, g Guards) {
	userRoutes := router.Group("/users")
	userRoutes.Post("/register", h.HandleRegister)
	userRoutes.Post("/login", h.HandleLogin)
	userRoutes.Get("/", guarded(g.Admin, h.HandleGetUsers)...)
	userRoutes.Get("/:id", guarded(g.Admin, h.HandleGetUser)...)
}

// HandleRegister handles new user registration.
func (h *AuthHandler) HandleRegister(c *fiber.Ctx) error {
	var req models.CreateUserDto
	if err := c.BodyParser(&req); err != nil {
		return badBody(c, err)
	}
	if err := models.Validate.Struct(req); err != nil {
		return validationFailed(c, err)
	}

	user, err := h.authService.RegisterUser(c.UserContext(), req)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "User registered successfully",
		"user":    user,
	})
}

// HandleLogin handles user login and issues a JWT token.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var req models.UserLoginDto
	if err := c.BodyParser(&req); err != nil {
		return badBody(c, err)
	}
	if err := models.Validate.Struct(req); err != nil {
		return validationFailed(c, err)
	}

	resp, err := h.authService.LoginUser(c.UserContext(), req)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(fiber.Map{
		"message":    "Login successful",
		"token":      resp.Token,
		"expires_at": resp.ExpiresAt,
		"user":       resp.User,
	})
}

// HandleGetUsers lists every user.
func (h *AuthHandler) HandleGetUsers(c *fiber.Ctx) error {
	users, err := h.authService.GetUsers(c.UserContext())
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(users)
}

// HandleGetUser retrieves a single user by id.
func (h *AuthHandler) HandleGetUser(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c, "user id")
	}
	user, err := h.authService.GetUser(c.UserContext(), id)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(user)
}
