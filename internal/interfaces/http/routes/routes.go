// internal/interfaces/http/routes/routes.go
package routes

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront/internal/config"
	"github.com/your-org/storefront/internal/domain/analytics"
	"github.com/your-org/storefront/internal/domain/cart"
	"github.com/your-org/storefront/internal/domain/catalog"
	"github.com/your-org/storefront/internal/domain/customer"
	"github.com/your-org/storefront/internal/domain/order"
	"github.com/your-org/storefront/internal/domain/payment"
	"github.com/your-org/storefront/internal/domain/wishlist"
	redisstore "github.com/your-org/storefront/internal/infrastructure/database/redis"
	"github.com/your-org/storefront/internal/interfaces/http/handlers"
	"github.com/your-org/storefront/internal/interfaces/http/middleware"
	"github.com/your-org/storefront/internal/pkg/auth"
	"github.com/your-org/storefront/internal/pkg/email"
	"github.com/your-org/storefront/internal/pkg/pdf"
	"gorm.io/gorm"
)

// Dependencies are the collaborators the routes are built from. Redis, Images, Intents and
// Mailer are optional.
type Dependencies struct {
	Config  *config.Config
	DB      *gorm.DB
	Redis   *redis.Client
	Logger  logrus.FieldLogger
	Flash   *catalog.FlashCatalog
	Images  catalog.ImageStore
	Intents payment.IntentCreator
	Mailer  *email.EmailService
}

// Services groups the domain services wired for one server
type Services struct {
	Customers *customer.Service
	Catalog   *catalog.Service
	Cart      *cart.Service
	Wishlist  *wishlist.Service
	Orders    *order.Service
	Payments  *payment.Service
	Analytics *analytics.Service
	Sessions  auth.SessionRegistry
}

// NewServices builds the domain services from deps
func NewServices(deps *Dependencies) *Services {
	log := deps.Logger
	flash := deps.Flash
	if flash == nil {
		flash = catalog.DefaultFlashCatalog()
	}

	var mailer customer.WelcomeMailer
	if deps.Mailer != nil {
		mailer = deps.Mailer
	}
	customerService := customer.NewService(deps.DB, auth.NewPasswordManager(deps.Config), mailer, log.WithField("service", "customer"))

	catalogService := catalog.NewService(deps.DB, flash, deps.Images, log.WithField("service", "catalog"))
	cartService := cart.NewService(deps.DB, catalogService, log.WithField("service", "cart"))

	var sessions auth.SessionRegistry = auth.NewMemoryRegistry()
	if deps.Redis != nil {
		sessions = redisstore.NewSessionRegistry(deps.Redis)
	}

	return &Services{
		Customers: customerService,
		Catalog:   catalogService,
		Cart:      cartService,
		Wishlist:  wishlist.NewService(deps.DB, catalogService),
		Orders:    order.NewService(deps.DB, log.WithField("service", "order"), statusNotifier(customerService, deps.Mailer)),
		Payments:  payment.NewService(cartService, deps.Intents, deps.Config, log.WithField("service", "payment")),
		Analytics: analytics.NewService(deps.DB),
		Sessions:  sessions,
	}
}

// statusNotifier emails the order owner about a status change
func statusNotifier(customers *customer.Service, mailer *email.EmailService) order.StatusNotifier {
	if mailer == nil {
		return nil
	}
	return func(ctx context.Context, o *order.Order, comment string) error {
		owner, err := customers.GetByID(o.CustomerID)
		if err != nil {
			return err
		}
		return mailer.SendOrderStatusUpdateEmail(ctx, owner.Email, owner.Username, o.ID, string(o.Status), comment)
	}
}

// SetupRoutes registers every storefront route on r
func SetupRoutes(r gin.IRouter, deps *Dependencies, svc *Services) {
	cfg := deps.Config
	log := deps.Logger

	jwtManager := auth.NewJWTManager(cfg)
	cookies := auth.NewCookieStore(cfg)
	authenticator := middleware.NewAuthenticator(svc.Sessions, cookies, jwtManager, svc.Customers, log)

	authHandler := handlers.NewAuthHandler(svc.Customers, svc.Sessions, cookies, jwtManager, cfg, log)
	catalogHandler := handlers.NewCatalogHandler(svc.Catalog, svc.Wishlist, log)
	reviewHandler := handlers.NewReviewHandler(svc.Catalog, log)
	wishlistHandler := handlers.NewWishlistHandler(svc.Wishlist, log)
	cartHandler := handlers.NewCartHandler(svc.Cart, log)
	paymentHandler := handlers.NewPaymentHandler(svc.Payments, log)
	orderHandler := handlers.NewOrderHandler(svc.Orders, log)
	analyticsHandler := handlers.NewAnalyticsHandler(svc.Analytics, log)
	invoiceHandler := handlers.NewInvoiceHandler(svc.Orders, svc.Customers, pdf.NewService(cfg), log)

	// Public
	r.GET("/", authHandler.LoginPage)
	r.POST("/", authHandler.Login)
	r.GET("/signup/", authHandler.SignupPage)
	r.POST("/signup/", authHandler.Signup)
	r.POST("/fake-upi", paymentHandler.FakeUPI)
	r.POST("/fake-gpay", paymentHandler.FakeGPay)

	protected := r.Group("")
	protected.Use(authenticator.RequireAuth())
	{
		protected.GET("/logout", authHandler.Logout)
		protected.GET("/profile", authHandler.GetProfile)

		// Catalog
		protected.GET("/amazon/", catalogHandler.Storefront)
		protected.GET("/product/:id", catalogHandler.ProductDetail)
		protected.POST("/product/:id/review", reviewHandler.CreateReview)
		protected.GET("/search", catalogHandler.Search)

		// Wishlist
		protected.GET("/wishlist", wishlistHandler.GetWishlist)
		protected.POST("/wishlist/toggle/:id", wishlistHandler.Toggle)
		protected.GET("/add_to_wishlist/:id", wishlistHandler.AddToWishlist)
		protected.GET("/remove_wishlist/:id", wishlistHandler.RemoveFromWishlist)

		// Cart
		protected.GET("/cart/", cartHandler.GetCart)
		protected.GET("/add_to_cart/:id", cartHandler.AddToCart)
		protected.GET("/increase_qty/:id", cartHandler.IncreaseQuantity)
		protected.GET("/decrease_qty/:id", cartHandler.DecreaseQuantity)
		protected.POST("/updatecart/:id", cartHandler.UpdateCartItem)
		protected.POST("/remove/:id", cartHandler.RemoveFromCart)

		// Payment
		protected.GET("/payment", paymentHandler.PaymentPage)
		protected.POST("/payment", paymentHandler.PaymentPage)
		protected.POST("/create-card-intent", paymentHandler.CreateCardIntent)

		// Orders
		protected.GET("/success", orderHandler.Checkout)
		protected.GET("/myorders", orderHandler.GetUserOrders)
		protected.GET("/orders", orderHandler.GetUserOrders)
		protected.GET("/orders/:id", orderHandler.GetOrder)
		protected.GET("/orders/:id/invoice", invoiceHandler.GenerateInvoice)
	}

	admin := protected.Group("")
	admin.Use(middleware.AdminMiddleware())
	{
		admin.GET("/shopitems/", catalogHandler.ListItems)
		admin.POST("/shopitems/", catalogHandler.CreateItem)
		admin.GET("/admin_orders", orderHandler.GetAllOrders)
		admin.POST("/update_order_status/:id", orderHandler.UpdateOrderStatus)
		admin.GET("/admin_stats", analyticsHandler.GetDashboardStats)
	}
}
