package handlers

import (
	"net/url"
	"strconv"

	"ecommerce/internal/middleware"
	"ecommerce/internal/models"
	"ecommerce/internal/services"
	"ecommerce/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

// ProductHandler handles HTTP requests for products.
type ProductHandler struct {
	service *services.ProductService
	log     *logger.Logger
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService, log *logger.Logger) *ProductHandler {
	return &ProductHandler{
		service: service,
		log:     log.Component("product_handler"),
	}
}

// RegisterRoutes registers the product routes. Reads are public, buying needs
// any signed-in user and the catalog mutations need an admin.
func (h *ProductHandler) RegisterRoutes(router fiber.Router, g Guards) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleGetProducts)
	productRoutes.Get("/category/:categoryId", h.HandleGetProductsForCategory)
	productRoutes.Get("/search/:term", h.HandleSearchProducts)
	productRoutes.Get("/:id", h.HandleGetProduct)
	productRoutes.Patch("/buy/:name/:quantity", guarded(g.User, h.HandleBuyProduct)...)
	productRoutes.Post("/", guarded(g.Admin, h.HandleCreateProduct)...)
	productRoutes.Put("/:id", guarded(g.Admin, h.HandleUpdateProduct)...)
	productRoutes.Delete("/:id", guarded(g.Admin, h.HandleDeleteProduct)...)
}

// HandleGetProducts retrieves all products.
func (h *ProductHandler) HandleGetProducts(c *fiber.Ctx) error {
	products, err := h.service.GetProducts(c.UserContext())
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(products)
}

// HandleGetProduct retrieves a single product by id.
func (h *ProductHandler) HandleGetProduct(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c, "product id")
	}
	product, err := h.service.GetProduct(c.UserContext(), id)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(product)
}

// HandleGetProductsForCategory lists the products of one category.
func (h *ProductHandler) HandleGetProductsForCategory(c *fiber.Ctx) error {
	id, ok := paramID(c, "categoryId")
	if !ok {
		return invalidID(c, "category id")
	}
	products, err := h.service.GetProductsForCategory(c.UserContext(), id)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(products)
}

// HandleSearchProducts searches name and description.
func (h *ProductHandler) HandleSearchProducts(c *fiber.Ctx) error {
	term, err := url.PathUnescape(c.Params("term"))
	if err != nil {
		return invalidID(c, "search term")
	}
	products, err := h.service.SearchProducts(c.UserContext(), term)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(products)
}

// HandleCreateProduct creates a product.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	var req models.ProductDto
	if err := c.BodyParser(&req); err != nil {
		return badBody(c, err)
	}
	if err := models.Validate.Struct(req); err != nil {
		return validationFailed(c, err)
	}

	product, err := h.service.CreateProduct(c.UserContext(), req)
	if err != nil {
		return writeError(c, h.log, err)
	}
	c.Location("/api/v1/products/" + uintToString(product.ProductID))
	return c.Status(fiber.StatusCreated).JSON(product)
}

// HandleUpdateProduct replaces a product.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c, "product id")
	}
	var req models.ProductDto
	if err := c.BodyParser(&req); err != nil {
		return badBody(c, err)
	}
	if err := models.Validate.Struct(req); err != nil {
		return validationFailed(c, err)
	}

	if _, err := h.service.UpdateProduct(c.UserContext(), id, req); err != nil {
		return writeError(c, h.log, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleDeleteProduct deletes a product.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c, "product id")
	}
	if err := h.service.DeleteProduct(c.UserContext(), id); err != nil {
		return writeError(c, h.log, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleBuyProduct takes :quantity units of :name from stock.
func (h *ProductHandler) HandleBuyProduct(c *fiber.Ctx) error {
	quantity, err := strconv.Atoi(c.Params("quantity"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "quantity must be an integer",
		})
	}

	name, err := url.PathUnescape(c.Params("name"))
	if err != nil {
		return invalidID(c, "product name")
	}
	msg, err := h.service.BuyProduct(c.UserContext(), name, quantity, middleware.UserID(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(fiber.Map{
		"message": msg,
	})
}
