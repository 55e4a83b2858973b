// README: API gateway; holds the module services the HTTP routes delegate to.
package http

import (
	"net/http"

	"go.uber.org/zap"

	"carpool/internal/http/handlers"
)

type ServerDeps struct {
	Matching handlers.RecommendationService
	Route    handlers.RouteService
	Logger   *zap.Logger
}

type Server struct {
	matching handlers.RecommendationService
	route    handlers.RouteService
	log      *zap.Logger
}

func NewServer(deps ServerDeps) *Server {
	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{
		matching: deps.Matching,
		route:    deps.Route,
		log:      log,
	}
}

func (s *Server) Routes() http.Handler {
	return NewRouter(s.matching, s.route, s.log)
}
