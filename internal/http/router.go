// README: HTTP router registration.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"carpool/internal/http/handlers"
	"carpool/internal/http/middleware"
)

func NewRouter(
	matchingService handlers.RecommendationService,
	routeService handlers.RouteService,
	log *zap.Logger,
) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logging(log), middleware.Recovery(log))

	api := r.Group("/api")

	recHandler := handlers.NewRecommendationHandler(matchingService)
	api.GET("/commuters/:id/recommendations", recHandler.Sidebar)
	api.GET("/commuters/:id/map", recHandler.Map)

	routeHandler := handlers.NewRouteHandler(routeService)
	api.GET("/commuters/:id/pair-route/:other", routeHandler.Pair)
	api.GET("/groups/:id/route", routeHandler.Group)

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}
