package router

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dc25/photoview/internal/http/handlers"
	"github.com/dc25/photoview/internal/http/middleware"
	"github.com/dc25/photoview/internal/hub"
	"github.com/dc25/photoview/internal/viewer"
)

func New(logger *slog.Logger, manager *viewer.Manager, h *hub.Hub) *gin.Engine {
	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(middleware.Logging(logger))

	sessionHandler := handlers.NewSessionHandler(logger, manager, h)

	r.POST("/sessions", sessionHandler.Create)
	r.GET("/sessions/:id", sessionHandler.Show)
	r.POST("/sessions/:id/next", sessionHandler.Next)
	r.POST("/sessions/:id/prev", sessionHandler.Previous)
	r.DELETE("/sessions/:id", sessionHandler.Delete)
	r.GET("/sessions/:id/ws", sessionHandler.Attach)

	r.NoRoute(func(c *gin.Context) {
		c.String(http.StatusNotFound, "not found")
	})

	return r
}
