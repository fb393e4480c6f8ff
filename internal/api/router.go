package api

import (
	"fmt"
	"log"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"
	"gorm.io/gorm"

	_ "github.com/modelia/ai-studio-server/docs"

	"github.com/modelia/ai-studio-server/internal/api/handlers"
	"github.com/modelia/ai-studio-server/internal/api/middleware"
	"github.com/modelia/ai-studio-server/internal/auth"
	"github.com/modelia/ai-studio-server/internal/config"
	"github.com/modelia/ai-studio-server/internal/storage"
	"github.com/rs/cors"
)

// Server holds the wired dependencies behind the HTTP surface.
type Server struct {
	Config config.Config
	DB     *gorm.DB
	Store  storage.Store
	Tokens *auth.TokenManager

	// UpstreamRand overrides the generation pipeline's outage draw in tests.
	UpstreamRand func() float64
}

func New(cfg config.Config, db *gorm.DB, store storage.Store, tokens *auth.TokenManager) *Server {
	return &Server{Config: cfg, DB: db, Store: store, Tokens: tokens}
}

func (s *Server) Routes() http.Handler {
	authHandler := &handlers.Auth{DB: s.DB, Tokens: s.Tokens}
	generateHandler := &handlers.Generate{DB: s.DB, Store: s.Store, Tokens: s.Tokens, Rand: s.UpstreamRand}
	historyHandler := &handlers.History{DB: s.DB}
	uploadsHandler := &handlers.Uploads{Store: s.Store}

	mainMux := http.NewServeMux()
	c := cors.New(s.Config.CorsConfig)

	// ---------- PUBLIC ROUTES ----------
	mainMux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "OK")
	})

	mainMux.HandleFunc("/docs/", httpSwagger.WrapHandler)

	authMux := http.NewServeMux()
	authMux.HandleFunc("/register", authHandler.Register)
	authMux.HandleFunc("/login", authHandler.Login)

	mainMux.Handle("/auth/",
		http.StripPrefix("/auth", authMux),
	)

	// Artifact downloads are public; names are confined to the upload root.
	mainMux.HandleFunc("/api/uploads/{file}", uploadsHandler.Serve)

	// ---------- PROTECTED ROUTES ----------
	// /api/generate is registered outside the Auth middleware: the handler
	// draws the simulated outage first and authenticates itself afterwards.
	mainMux.HandleFunc("/api/generate", generateHandler.Create)

	mainMux.Handle("/api/generations",
		middleware.Auth(s.Tokens)(http.HandlerFunc(historyHandler.List)),
	)

	log.Println("Router initialized")
	handler := c.Handler(mainMux)
	handler = middleware.Logger(handler)
	return handler
}
