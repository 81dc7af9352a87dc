package server

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/nikolayk812/storefront/internal/auth"
	"github.com/nikolayk812/storefront/internal/domain"
	"go.uber.org/zap"
)

type AccountService interface {
	Signup(ctx context.Context, username, email, password string) (domain.Customer, error)
	Login(ctx context.Context, email, password string) (domain.Customer, error)
	ChangePassword(ctx context.Context, actor domain.Actor, customerID uuid.UUID, current, newPassword string) error
	Profile(ctx context.Context, customerID uuid.UUID) (domain.Customer, error)
	ListCustomers(ctx context.Context) ([]domain.Customer, error)
}

type authHandler struct {
	accounts AccountService
	sessions *auth.Sessions
	maxAge   int
	logger   *zap.Logger
}

// GET/POST /auth/login
func (h *authHandler) login(c *gin.Context) {
	if c.Request.Method == http.MethodGet {
		c.JSON(http.StatusOK, gin.H{"page": "login"})
		return
	}

	customer, err := h.accounts.Login(c.Request.Context(), c.PostForm("email"), c.PostForm("password"))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	token, err := h.sessions.Issue(domain.Actor{CustomerID: customer.ID, Role: customer.Role})
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.SetCookie(sessionCookie, token, h.maxAge, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{
		"notice": "Login successful!",
		"user":   toCustomerResponse(customer),
	})
}

// GET/POST /auth/Signup
func (h *authHandler) signup(c *gin.Context) {
	if c.Request.Method == http.MethodGet {
		c.JSON(http.StatusOK, gin.H{"page": "signup"})
		return
	}

	password := c.PostForm("password")
	if password != c.PostForm("confirm_password") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Passwords do not match!"})
		return
	}

	customer, err := h.accounts.Signup(c.Request.Context(),
		c.PostForm("username"), c.PostForm("email"), password)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"notice": "Account created successfully! You can now log in.",
		"user":   toCustomerResponse(customer),
	})
}

// GET/POST /auth/logout
func (h *authHandler) logout(c *gin.Context) {
	c.SetCookie(sessionCookie, "", -1, "/", "", false, true)
	c.Redirect(http.StatusFound, "/home")
}

// GET /auth/profile/:id
func (h *authHandler) profile(c *gin.Context) {
	customerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		renderNotFound(c)
		return
	}

	customer, err := h.accounts.Profile(c.Request.Context(), customerID)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"customer": toCustomerResponse(customer)})
}

// GET/POST /auth/change_password/:id
func (h *authHandler) changePassword(c *gin.Context) {
	actor, _ := actorFrom(c)

	customerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		renderNotFound(c)
		return
	}

	if c.Request.Method == http.MethodGet {
		c.JSON(http.StatusOK, gin.H{"page": "change_password"})
		return
	}

	newPassword := c.PostForm("new_password")
	if newPassword != c.PostForm("confirm_new_password") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "New passwords do not match!"})
		return
	}

	err = h.accounts.ChangePassword(c.Request.Context(), actor, customerID,
		c.PostForm("current_password"), newPassword)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"notice": "Password changed successfully!"})
}

// GET /admin/customers
func (h *authHandler) listCustomers(c *gin.Context) {
	customers, err := h.accounts.ListCustomers(c.Request.Context())
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	out := make([]customerResponse, 0, len(customers))
	for _, customer := range customers {
		out = append(out, toCustomerResponse(customer))
	}

	c.JSON(http.StatusOK, gin.H{"customers": out})
}
