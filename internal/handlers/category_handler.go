package handlers

import (
	"ecommerce/internal/models"
	"ecommerce/internal/services"
	"ecommerce/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

// CategoryHandler handles HTTP requests for categories.
type CategoryHandler struct {
	service *services.CategoryService
	log     *logger.Logger
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(service *services.CategoryService, log *logger.Logger) *CategoryHandler {
	return &CategoryHandler{
		service: service,
		log:     log.Component("category_handler"),
	}
}

// RegisterRoutes registers the category routes. Reads are public.
func (h *CategoryHandler) RegisterRoutes(router fiber.Router, g Guards) {
	categoryRoutes := router.Group("/categories")
	categoryRoutes.Get("/", h.HandleGetCategories)
	categoryRoutes.Get("/:id", h.HandleGetCategory)
	categoryRoutes.Post("/", guarded(g.Admin, h.HandleCreateCategory)...)
	categoryRoutes.Patch("/:id", guarded(g.Admin, h.HandleUpdateCategory)...)
	categoryRoutes.Delete("/:id", guarded(g.Admin, h.HandleDeleteCategory)...)
}

// HandleGetCategories lists categories ordered by id.
func (h *CategoryHandler) HandleGetCategories(c *fiber.Ctx) error {
	categories, err := h.service.GetCategories(c.UserContext())
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(categories)
}

// HandleGetCategory retrieves a single category by id.
func (h *CategoryHandler) HandleGetCategory(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c, "category id")
	}
	category, err := h.service.GetCategory(c.UserContext(), id)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(category)
}

// HandleCreateCategory creates a category.
func (h *CategoryHandler) HandleCreateCategory(c *fiber.Ctx) error {
	var req models.CreateCategoryDto
	if err := c.BodyParser(&req); err != nil {
		return badBody(c, err)
	}
	if err := models.Validate.Struct(req); err != nil {
		return validationFailed(c, err)
	}

	category, err := h.service.CreateCategory(c.UserContext(), req)
	if err != nil {
		return writeError(c, h.log, err)
	}
	c.Location("/api/v1/categories/" + uintToString(category.ID))
	return c.Status(fiber.StatusCreated).JSON(category)
}

// HandleUpdateCategory renames a category.
func (h *CategoryHandler) HandleUpdateCategory(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c, "category id")
	}
	var req models.CreateCategoryDto
	if err := c.BodyParser(&req); err != nil {
		return badBody(c, err)
	}
	if err := models.Validate.Struct(req); err != nil {
		return validationFailed(c, err)
	}

	category, err := h.service.UpdateCategory(c.UserContext(), id, req)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(category)
}

// HandleDeleteCategory deletes a category that no product references.
func (h *CategoryHandler) HandleDeleteCategory(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c, "category id")
	}
	if err := h.service.DeleteCategory(c.UserContext(), id); err != nil {
		return writeError(c, h.log, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
