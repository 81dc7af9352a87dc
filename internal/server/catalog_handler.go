package server

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/service"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type CatalogService interface {
	Create(ctx context.Context, in service.ProductInput, image *service.ImageUpload) (domain.Product, error)
	Get(ctx context.Context, id uuid.UUID) (domain.Product, error)
	List(ctx context.Context) ([]domain.Product, error)
	ListFlashSale(ctx context.Context) ([]domain.Product, error)
	Update(ctx context.Context, id uuid.UUID, in service.ProductInput, image *service.ImageUpload) (domain.Product, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type catalogHandler struct {
	catalog CatalogService
	cart    CartService
	logger  *zap.Logger
}

// GET /home lists flash-sale products, plus the cart when logged in.
func (h *catalogHandler) home(c *gin.Context) {
	products, err := h.catalog.ListFlashSale(c.Request.Context())
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	payload := gin.H{"items": toProductResponses(products)}

	if actor, ok := actorFrom(c); ok {
		view, err := h.cart.ViewCart(c.Request.Context(), actor)
		if err != nil {
			writeError(c, h.logger, err)
			return
		}
		payload["cart"] = toCartViewResponse(view).Lines
	}

	c.JSON(http.StatusOK, payload)
}

// GET/POST /admin/add-shop-items
func (h *catalogHandler) addShopItems(c *gin.Context) {
	if c.Request.Method == http.MethodGet {
		c.JSON(http.StatusOK, gin.H{"page": "add-shop-items"})
		return
	}

	input, err := productInputFromForm(c)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	image, err := imageFromForm(c)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	created, err := h.catalog.Create(c.Request.Context(), input, image)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"notice": fmt.Sprintf("%s product added successfully!", created.Name),
		"item":   toProductResponse(created),
	})
}

// GET /admin/shop-items
func (h *catalogHandler) shopItems(c *gin.Context) {
	products, err := h.catalog.List(c.Request.Context())
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": toProductResponses(products)})
}

// GET/POST /admin/update-item/:id
func (h *catalogHandler) updateItem(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		renderNotFound(c)
		return
	}

	if c.Request.Method == http.MethodGet {
		product, err := h.catalog.Get(c.Request.Context(), id)
		if err != nil {
			writeError(c, h.logger, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"item": toProductResponse(product)})
		return
	}

	input, err := productInputFromForm(c)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	image, err := imageFromForm(c)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	if _, err := h.catalog.Update(c.Request.Context(), id, input, image); err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.Redirect(http.StatusFound, "/admin/shop-items")
}

// GET/POST /admin/delete-item/:id
func (h *catalogHandler) deleteItem(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		renderNotFound(c)
		return
	}

	if err := h.catalog.Delete(c.Request.Context(), id); err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.Redirect(http.StatusFound, "/admin/shop-items")
}

func productInputFromForm(c *gin.Context) (service.ProductInput, error) {
	currentPrice, err := decimal.NewFromString(c.PostForm("current_price"))
	if err != nil {
		return service.ProductInput{}, fmt.Errorf("current_price: %w", domain.ErrInvalidArgument)
	}

	previousPrice, err := decimal.NewFromString(c.PostForm("previous_price"))
	if err != nil {
		return service.ProductInput{}, fmt.Errorf("previous_price: %w", domain.ErrInvalidArgument)
	}

	inStock, err := strconv.Atoi(c.PostForm("in_stock"))
	if err != nil {
		return service.ProductInput{}, fmt.Errorf("in_stock: %w", domain.ErrInvalidArgument)
	}

	return service.ProductInput{
		Name:          c.PostForm("product_name"),
		Description:   c.PostForm("description"),
		CurrentPrice:  currentPrice,
		PreviousPrice: previousPrice,
		InStock:       inStock,
		FlashSale:     c.PostForm("flash_sale") == "on" || c.PostForm("flash_sale") == "true",
	}, nil
}

// imageFromForm returns nil when no file was attached; the services decide
// whether that is acceptable.
func imageFromForm(c *gin.Context) (*service.ImageUpload, error) {
	fileHeader, err := c.FormFile("product_picture")
	if err != nil {
		return nil, nil
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, fmt.Errorf("fileHeader.Open: %w", err)
	}

	return &service.ImageUpload{Filename: fileHeader.Filename, Reader: file}, nil
}
