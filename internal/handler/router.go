package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"rental-booking/internal/domain/user"
	"rental-booking/internal/handler/api"
	"rental-booking/internal/handler/middleware"
	"rental-booking/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

func NewRouter(
	engine *gin.Engine,
	cfg config.Config,
	logger *middleware.Logger,
	bookingHandler *api.BookingHandler,
	webhookHandler *api.WebhookHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	setupMiddleware(engine, cfg, logger)
	setupRoutes(engine, bookingHandler, webhookHandler, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, logger *middleware.Logger) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery(logger.GetSlogLogger()))
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(logger.LoggingMiddleware())
	engine.Use(middleware.ErrorHandler(logger.GetSlogLogger()))
}

func setupRoutes(
	engine *gin.Engine,
	bookingHandler *api.BookingHandler,
	webhookHandler *api.WebhookHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	engine.GET("/health", healthCheck)
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	{
		bookings := apiGroup.Group("/bookings")
		bookings.Use(authMiddleware.RequireAuth())
		{
			addRoutes(bookings, []route{
				{
					Method: http.MethodPost, Path: "", Handler: bookingHandler.Create,
					Mw: []gin.HandlerFunc{authMiddleware.RequireRole(user.RoleTenant)},
				},
				{Method: http.MethodGet, Path: "", Handler: bookingHandler.ListMine},
				{
					Method: http.MethodGet, Path: "/pending", Handler: bookingHandler.ListPending,
					Mw: []gin.HandlerFunc{authMiddleware.RequireRole(user.RoleAdmin, user.RoleOwner)},
				},
				{Method: http.MethodGet, Path: "/:id", Handler: bookingHandler.Get},
				{
					Method: http.MethodPut, Path: "/:id/approve/admin", Handler: bookingHandler.ApproveAdmin,
					Mw: []gin.HandlerFunc{authMiddleware.RequireRole(user.RoleAdmin)},
				},
				{
					Method: http.MethodPut, Path: "/:id/approve/owner", Handler: bookingHandler.ApproveOwner,
					Mw: []gin.HandlerFunc{authMiddleware.RequireRole(user.RoleOwner, user.RoleAdmin)},
				},
				{
					Method: http.MethodPut, Path: "/:id/reject", Handler: bookingHandler.Reject,
					Mw: []gin.HandlerFunc{authMiddleware.RequireRole(user.RoleAdmin, user.RoleOwner)},
				},
			})
		}

		// Authenticated by the processor signature, not a bearer token.
		webhooks := apiGroup.Group("/webhooks")
		addRoutes(webhooks, []route{
			{Method: http.MethodPost, Path: "/stripe", Handler: webhookHandler.Stripe},
		})
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
