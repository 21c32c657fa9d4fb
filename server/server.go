package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	zlog "github.com/rs/zerolog/log"

	"github.com/dripapps/canva-connect/auth"
	"github.com/dripapps/canva-connect/authstate"
	"github.com/dripapps/canva-connect/designs"
	"github.com/dripapps/canva-connect/internal/config"
)

type Server struct {
	env       string // Environment (e.g., "DEV", "production")
	mux       *http.ServeMux
	routes    []string
	config    config.Config
	auth      *auth.AuthorizationService
	catalog   *designs.Catalog
	authState authstate.Repo
}

func New(cfg config.Config, authService *auth.AuthorizationService, catalog *designs.Catalog, authState authstate.Repo) *Server {
	s := &Server{
		mux:       http.NewServeMux(),
		config:    cfg,
		auth:      authService,
		catalog:   catalog,
		authState: authState,
	}
	s.env = cfg.GetEnv()

	s.initRoutes()
	s.logRoutes()

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	s.mux.Handle(pattern, handler)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

// StartAuthStateCleanup evicts abandoned pending authorizations on a timer
// until ctx is cancelled. Without it the state map grows for the process
// lifetime.
func (s *Server) StartAuthStateCleanup(ctx context.Context) {
	maxAge := s.config.GetAuthStateTTL()
	ticker := time.NewTicker(time.Minute)

	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if removed := s.authState.Cleanup(maxAge); removed > 0 {
					zlog.Info().Int("removed", removed).Msg("Evicted expired pending authorizations")
				}
			}
		}
	}()
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return // Skip logging in non-development environments
	}
	for _, route := range s.routes {
		parts := strings.SplitN(route, " ", 2)

		if len(parts) > 1 {
			logRoute(parts[0], parts[1])
		} else {
			logRoute("", parts[0])
		}
	}
}

func logRoute(method, path string) {
	var displayMethod string
	paddedMethod := fmt.Sprintf(" %-7s", method)
	if color, ok := methodColors[method]; ok {
		displayMethod = color + paddedMethod + ResetColor
	} else {
		displayMethod = Gray + paddedMethod + ResetColor
	}
	log.Printf("[%-19s] %s\n", displayMethod, path)
}
