package ginserver

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	gin "github.com/gin-gonic/gin"

	"hotelier/internal/infra/config"
	"hotelier/internal/infra/obs"
)

type ReservationHTTP interface {
	Book(c *gin.Context)
	ConfirmPayment(c *gin.Context)
	CheckIn(c *gin.Context)
	CheckOut(c *gin.Context)
	ModifyDates(c *gin.Context)
	Cancel(c *gin.Context)
	CancellationQuote(c *gin.Context)
	Get(c *gin.Context)
}

type RoomHTTP interface {
	Register(c *gin.Context)
	ChangeRate(c *gin.Context)
	MarkReady(c *gin.Context)
	SearchAvailable(c *gin.Context)
}

type GuestHTTP interface {
	Register(c *gin.Context)
	Get(c *gin.Context)
}

type Handlers struct {
	Reservation ReservationHTTP
	Room        RoomHTTP
	Guest       GuestHTTP
}

func NewServer(cfg config.Config, obsMW obs.Middleware, health obs.HealthHandlers, h Handlers) *http.Server {
	mode := configureGinMode(cfg.Env)
	if obsMW.Logger != nil {
		obsMW.Logger.Info("gin initialized", "mode", mode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(obsMW.RequestID())
	router.Use(obsMW.LoggerMiddleware())
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization", "Idempotency-Key"},
		ExposeHeaders: []string{
			"Content-Length",
			"Content-Type",
			"X-Request-ID",
		},
		MaxAge: 12 * time.Hour,
	}))

	router.GET("/livez", health.Livez)
	router.GET("/readyz", health.Readyz)

	api := router.Group("/api/v1")
	if h.Reservation != nil {
		api.POST("/reservations", h.Reservation.Book)
		api.GET("/reservations/:id", h.Reservation.Get)
		api.POST("/reservations/:id/confirm", h.Reservation.ConfirmPayment)
		api.POST("/reservations/:id/check-in", h.Reservation.CheckIn)
		api.POST("/reservations/:id/check-out", h.Reservation.CheckOut)
		api.PATCH("/reservations/:id/dates", h.Reservation.ModifyDates)
		api.POST("/reservations/:id/cancel", h.Reservation.Cancel)
		api.GET("/reservations/:id/cancellation-quote", h.Reservation.CancellationQuote)
	}
	if h.Room != nil {
		api.GET("/rooms/available", h.Room.SearchAvailable)
		adminGroup := api.Group("/admin/rooms")
		adminGroup.POST("", h.Room.Register)
		adminGroup.PATCH("/:number/rate", h.Room.ChangeRate)
		adminGroup.POST("/:number/ready", h.Room.MarkReady)
	}
	if h.Guest != nil {
		api.POST("/guests", h.Guest.Register)
		api.GET("/guests/:id", h.Guest.Get)
	}

	return &http.Server{Addr: cfg.HTTPAddr, Handler: router}
}

func configureGinMode(env string) string {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "debug":
		gin.SetMode(gin.DebugMode)
		return gin.DebugMode
	case "test", "testing":
		gin.SetMode(gin.TestMode)
		return gin.TestMode
	default:
		gin.SetMode(gin.ReleaseMode)
		return gin.ReleaseMode
	}
}
