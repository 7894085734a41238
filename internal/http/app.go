package http

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	apperrors "support-relay-backend/internal/common/errors"
	"support-relay-backend/internal/common/middleware"
	ticketsvc "support-relay-backend/internal/features/ticket/service"
)

// NewApp builds the HTTP surface: the liveness endpoints plus a read-only
// ticket probe for operators. The bot itself does not depend on it.
func NewApp(origin string, debug bool, tickets ticketsvc.TicketService) *gin.Engine {
	if !debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(middleware.Logger(), gin.Recovery())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{origin}
	corsConfig.AllowMethods = []string{"GET", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Content-Type", "Accept"}
	router.Use(cors.New(corsConfig))

	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "hello")
	})
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api/v1")
	api.GET("/tickets/:id", getTicketHandler(tickets))

	return router
}

func getTicketHandler(tickets ticketsvc.TicketService) gin.HandlerFunc {
	return func(c *gin.Context) {
		ticket, err := tickets.Find(c.Request.Context(), c.Param("id"))
		if err != nil {
			if appErr, ok := apperrors.AsAppError(err); ok && appErr.IsNotFound() {
				c.JSON(http.StatusNotFound, gin.H{"error": appErr.Code})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": apperrors.ErrCodeInternal})
			return
		}
		c.JSON(http.StatusOK, ticket)
	}
}
