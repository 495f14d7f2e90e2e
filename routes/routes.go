package routes

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"poshchat/controllers"
	"poshchat/middlewares"
)

// Deps is everything the router needs. Registry may be nil to disable /metrics.
type Deps struct {
	Chat         *controllers.ChatController
	Logger       *slog.Logger
	Registry     *prometheus.Registry
	MaxBodyBytes int64
}

func SetupRouter(d Deps) *gin.Engine {
	if d.Logger == nil {
		d.Logger = slog.Default()
	}

	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(middlewares.RequestID())
	r.Use(middlewares.Logger(d.Logger))
	r.Use(middlewares.CORS())
	if d.Registry != nil {
		r.Use(middlewares.NewHTTPMetrics(d.Registry).Handler())
	}

	r.GET("/", controllers.Index)
	r.GET("/healthz", controllers.Health)

	api := r.Group("/api")
	if d.MaxBodyBytes > 0 {
		api.Use(middlewares.BodyLimit(d.MaxBodyBytes))
	}
	api.POST("/chat", d.Chat.HandleChat)

	if d.Registry != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(d.Registry, promhttp.HandlerOpts{})))
	}

	return r
}
