package http

import (
	"html/template"

	"github.com/glosscard/glosscard-backend/internal/delivery/http/handler"
	"github.com/glosscard/glosscard-backend/internal/delivery/http/middleware"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Router struct {
	uploadHandler    *handler.UploadHandler
	profileHandler   *handler.ProfileHandler
	paymentHandler   *handler.PaymentHandler
	eventHandler     *handler.EventHandler
	dashboardHandler *handler.DashboardHandler
	pageHandler      *handler.PageHandler
	healthHandler    *handler.HealthHandler
	templates        *template.Template
	uploadsDir       string
	log              *zap.Logger
}

func NewRouter(
	uploadHandler *handler.UploadHandler,
	profileHandler *handler.ProfileHandler,
	paymentHandler *handler.PaymentHandler,
	eventHandler *handler.EventHandler,
	dashboardHandler *handler.DashboardHandler,
	pageHandler *handler.PageHandler,
	healthHandler *handler.HealthHandler,
	templates *template.Template,
	uploadsDir string,
	log *zap.Logger,
) *Router {
	return &Router{
		uploadHandler:    uploadHandler,
		profileHandler:   profileHandler,
		paymentHandler:   paymentHandler,
		eventHandler:     eventHandler,
		dashboardHandler: dashboardHandler,
		pageHandler:      pageHandler,
		healthHandler:    healthHandler,
		templates:        templates,
		uploadsDir:       uploadsDir,
		log:              log,
	}
}

func (r *Router) Setup() *gin.Engine {
	router := gin.New()
	router.Use(middleware.RequestLogger(r.log), middleware.Recovery(r.log))
	router.SetHTMLTemplate(r.templates)

	// Health check (supports both GET and HEAD)
	router.GET("/health", r.healthHandler.Health)
	router.HEAD("/health", r.healthHandler.Health)

	// Uploaded images are served from disk only for local storage.
	if r.uploadsDir != "" {
		router.Static("/uploads", r.uploadsDir)
	}

	api := router.Group("/api")
	{
		api.POST("/upload", r.uploadHandler.Upload)
		api.GET("/placeholder/:width/:height", r.pageHandler.Placeholder)
	}

	v1 := api.Group("/v1")
	{
		profiles := v1.Group("/profiles")
		{
			profiles.POST("", r.profileHandler.CreateProfile)
			profiles.POST("/bio-suggestions", r.profileHandler.GenerateBio)
			profiles.GET("/:id", r.profileHandler.GetProfile)
			profiles.PUT("/:id", r.profileHandler.SaveProfile)
			profiles.GET("/:id/qrcode", r.profileHandler.GetQRCode)
		}

		payments := v1.Group("/payments")
		{
			payments.GET("/:id", r.paymentHandler.GetPayment)
			payments.PUT("/:id", r.paymentHandler.SavePayment)
		}

		v1.POST("/events", r.eventHandler.LogEvent)
		v1.GET("/dashboard", r.dashboardHandler.GetDashboard)
		v1.GET("/talents", r.dashboardHandler.ListTalents)
	}

	// Pages
	router.GET("/", r.pageHandler.Home)
	router.GET("/card/:id", r.pageHandler.Card)
	router.GET("/payments/:id", r.pageHandler.Payment)
	router.GET("/create-card", r.pageHandler.CreateCardForm)
	router.POST("/create-card", r.pageHandler.SubmitCardForm)
	router.GET("/dashboard", r.pageHandler.Dashboard)
	router.GET("/discover", r.pageHandler.Discover)
	router.GET("/login", r.pageHandler.Login)
	router.GET("/signup", r.pageHandler.Signup)

	return router
}
