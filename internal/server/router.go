package server

import (
	"github.com/gin-gonic/gin"
	"github.com/nikolayk812/storefront/internal/auth"
	"go.uber.org/zap"
)

type Services struct {
	Accounts AccountService
	Cart     CartService
	Checkout CheckoutService
	Catalog  CatalogService
	Orders   OrderService
}

type Options struct {
	Sessions     *auth.Sessions
	CookieMaxAge int
	MediaDir     string
}

// NewRouter wires the full HTTP surface. Route paths mirror the storefront
// page structure, including the capitalized /auth/Signup.
func NewRouter(logger *zap.Logger, svcs Services, opts Options) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.NoRoute(renderNotFound)

	authH := &authHandler{accounts: svcs.Accounts, sessions: opts.Sessions, maxAge: opts.CookieMaxAge, logger: logger}
	cartH := &cartHandler{cart: svcs.Cart, logger: logger}
	checkoutH := &checkoutHandler{checkout: svcs.Checkout, logger: logger}
	catalogH := &catalogHandler{catalog: svcs.Catalog, cart: svcs.Cart, logger: logger}
	orderH := &orderHandler{orders: svcs.Orders, logger: logger}

	if opts.MediaDir != "" {
		r.Static("/media", opts.MediaDir)
	}

	// Public pages; home shows the visitor's cart when a session is present.
	public := r.Group("", OptionalSession(opts.Sessions))
	public.GET("/", catalogH.home)
	public.GET("/home", catalogH.home)
	public.GET("/auth/login", authH.login)
	public.POST("/auth/login", authH.login)
	public.GET("/auth/Signup", authH.signup)
	public.POST("/auth/Signup", authH.signup)

	// Customer pages.
	session := r.Group("", RequireSession(opts.Sessions))
	session.GET("/add-to-cart/:id", cartH.addToCart)
	session.GET("/cart", cartH.viewCart)
	session.GET("/pluscart", cartH.plusCart)
	session.GET("/minuscart", cartH.minusCart)
	session.GET("/removecart/:id", cartH.removeCart)
	session.POST("/create-checkout-session", checkoutH.createCheckoutSession)
	session.GET("/payment-success", checkoutH.paymentSuccess)
	session.GET("/orders", orderH.listOrders)
	session.GET("/auth/logout", authH.logout)
	session.POST("/auth/logout", authH.logout)
	session.GET("/auth/profile/:id", authH.profile)
	session.GET("/auth/change_password/:id", authH.changePassword)
	session.POST("/auth/change_password/:id", authH.changePassword)

	// Admin pages; failures render the generic 404.
	admin := session.Group("/admin", RequireAdmin())
	admin.GET("/add-shop-items", catalogH.addShopItems)
	admin.POST("/add-shop-items", catalogH.addShopItems)
	admin.GET("/shop-items", catalogH.shopItems)
	admin.GET("/update-item/:id", catalogH.updateItem)
	admin.POST("/update-item/:id", catalogH.updateItem)
	admin.GET("/delete-item/:id", catalogH.deleteItem)
	admin.POST("/delete-item/:id", catalogH.deleteItem)
	admin.GET("/view_orders", orderH.listAllOrders)
	admin.GET("/update_order/:id", orderH.updateOrder)
	admin.POST("/update_order/:id", orderH.updateOrder)
	admin.GET("/customers", authH.listCustomers)

	return r
}
