package app

import (
	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"

	"loadboard/internal/auth"
	"loadboard/internal/domain"
	"loadboard/internal/handler"
	"loadboard/internal/middleware"
)

// RouterDeps contains all dependencies needed for the router.
type RouterDeps struct {
	AuthHandler        *handler.AuthHandler
	LoadHandler        *handler.LoadHandler
	BidHandler         *handler.BidHandler
	BenefitHandler     *handler.BenefitHandler
	TransactionHandler *handler.TransactionHandler
	AdminHandler       *handler.AdminHandler
	TokenManager       *auth.TokenManager
	RedisClient        *redis.Client
	NewRelicApp        *newrelic.Application
	AllowedOrigins     []string
}

// NewRouter creates a new Gin router with all routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()

	// Global middleware.
	router.Use(gin.Recovery())
	router.Use(gin.Logger())
	router.Use(middleware.CORS(deps.AllowedOrigins))

	if deps.NewRelicApp != nil {
		router.Use(nrgin.Middleware(deps.NewRelicApp))
	}

	router.Use(middleware.Idempotency(deps.RedisClient))

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	authed := middleware.Auth(deps.TokenManager)

	api := router.Group("/api")
	{
		// Auth routes.
		authRoutes := api.Group("/auth")
		{
			authRoutes.POST("/register", deps.AuthHandler.Register)
			authRoutes.POST("/login", deps.AuthHandler.Login)
			authRoutes.GET("/me", authed, deps.AuthHandler.Me)
		}

		// Load routes.
		loads := api.Group("/loads", authed)
		{
			loads.POST("", middleware.RequireRole(domain.RoleShipper, domain.RoleAdmin, domain.RoleSuperAdmin), deps.LoadHandler.CreateLoad)
			loads.GET("", deps.LoadHandler.ListLoads)
			loads.GET("/nearby", middleware.RequireRole(domain.RoleTrucker), deps.LoadHandler.Nearby)
			loads.GET("/:id", deps.LoadHandler.GetLoad)
			loads.GET("/:id/bids", deps.LoadHandler.ListBids)
			loads.PATCH("/:id/status", deps.LoadHandler.UpdateStatus)
			loads.POST("/:id/deliver", middleware.RequireRole(domain.RoleTrucker), deps.LoadHandler.Deliver)
			loads.POST("/:id/location", middleware.RequireRole(domain.RoleTrucker), deps.LoadHandler.UpdateLocation)
			loads.POST("/:id/alerts", deps.LoadHandler.AddAlert)
		}

		// Bid routes.
		bids := api.Group("/bids", authed)
		{
			bids.POST("", middleware.RequireRole(domain.RoleTrucker), deps.BidHandler.CreateBid)
			bids.GET("", middleware.RequireRole(domain.RoleTrucker), deps.BidHandler.ListMyBids)
			bids.GET("/:id", deps.BidHandler.GetBid)
			bids.POST("/:id/accept", deps.BidHandler.AcceptBid)
			bids.POST("/:id/reject", deps.BidHandler.RejectBid)
		}

		// Benefit routes.
		benefits := api.Group("/benefits", authed)
		{
			benefits.GET("", deps.BenefitHandler.ListBenefits)
			benefits.GET("/eligible", middleware.RequireRole(domain.RoleTrucker), deps.BenefitHandler.ListEligibleBenefits)
			benefits.GET("/:id", deps.BenefitHandler.GetBenefit)
			benefits.POST("", middleware.RequireAdmin(), deps.BenefitHandler.CreateBenefit)
			benefits.PUT("/:id", middleware.RequireAdmin(), deps.BenefitHandler.UpdateBenefit)
			benefits.DELETE("/:id", middleware.RequireAdmin(), deps.BenefitHandler.DeleteBenefit)
		}

		// Transaction routes.
		transactions := api.Group("/transactions", authed)
		{
			transactions.POST("", deps.TransactionHandler.CreateTransaction)
			transactions.GET("", deps.TransactionHandler.ListMyTransactions)
			transactions.GET("/load/:loadId", deps.TransactionHandler.ListForLoad)
			transactions.GET("/:id", deps.TransactionHandler.GetTransaction)
		}

		// Admin routes.
		admin := api.Group("/admin", authed, middleware.RequireAdmin())
		{
			admin.GET("/dashboard", deps.AdminHandler.Dashboard)
			admin.GET("/stats", middleware.RequireRole(domain.RoleSuperAdmin), deps.AdminHandler.SystemStats)
			admin.GET("/shippers", deps.AdminHandler.ListShippers)
			admin.GET("/truckers", deps.AdminHandler.ListTruckers)
			admin.POST("/users", deps.AdminHandler.CreateUser)
			admin.GET("/users/:id", deps.AdminHandler.GetUser)
			admin.PATCH("/users/:id", deps.AdminHandler.UpdateUser)
			admin.GET("/loads", deps.AdminHandler.ListLoads)
			admin.GET("/bids", deps.AdminHandler.ListBids)
			admin.GET("/transactions", deps.AdminHandler.ListTransactions)
			admin.PATCH("/transactions/:id/status", deps.AdminHandler.UpdateTransactionStatus)
		}
	}

	return router
}
