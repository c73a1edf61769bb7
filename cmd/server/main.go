package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/modaria/modaria/backend-go/internal/asset"
	"github.com/modaria/modaria/backend-go/internal/auth"
	"github.com/modaria/modaria/backend-go/internal/color"
	"github.com/modaria/modaria/backend-go/internal/config"
	"github.com/modaria/modaria/backend-go/internal/db"
	"github.com/modaria/modaria/backend-go/internal/design"
	"github.com/modaria/modaria/backend-go/internal/export"
	mw "github.com/modaria/modaria/backend-go/internal/middleware"
	"github.com/modaria/modaria/backend-go/internal/planner"
	"github.com/modaria/modaria/backend-go/internal/render"
	"github.com/modaria/modaria/backend-go/internal/session"
	"github.com/modaria/modaria/backend-go/internal/template"
)

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})))

	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	queries := db.New(pool)

	authService := auth.NewService(queries, cfg.JWTSecret)
	authHandler := auth.NewHandler(authService)

	designService := design.NewService(queries)
	designHandler := design.NewHandler(designService)

	plannerClient := planner.NewClient(cfg.PlannerURL, cfg.PlannerAPIKey)
	renderClient := render.NewClient(cfg.RenderURL, cfg.RenderAPIKey)
	renderHandler := render.NewHandler(renderClient)

	// Document loader for the studio hub
	docLoader := func(designID string) ([]byte, error) {
		d, err := queries.GetDesign(context.Background(), designID)
		if err != nil {
			return nil, err
		}
		return d.Document, nil
	}

	// Document saver for the studio hub
	docSaver := func(designID string, doc []byte) error {
		return queries.SaveDesignDocument(context.Background(), designID, json.RawMessage(doc))
	}

	hub := session.NewHub(docLoader, docSaver, plannerClient)
	go hub.Run()

	assetHandler := asset.NewHandler(cfg.AssetDir)
	exportHandler := export.NewHandler()

	r := mux.NewRouter()

	// Global middleware
	r.Use(mw.Recovery)
	r.Use(mw.Logger)
	r.Use(mw.CORS)

	// Auth routes (public)
	r.HandleFunc("/auth/register", authHandler.Register).Methods("POST")
	r.HandleFunc("/auth/login", authHandler.Login).Methods("POST")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// Catalog routes (public)
	r.HandleFunc("/templates", template.ListHandler).Methods("GET")
	r.HandleFunc("/templates/{templateId}", template.GetHandler).Methods("GET")
	r.HandleFunc("/palettes", color.PalettesHandler).Methods("GET")
	r.HandleFunc("/colors/harmonies", color.HarmoniesHandler).Methods("GET")

	// Asset endpoints (public, used by the sketch playground too)
	r.HandleFunc("/assets/upload", assetHandler.Upload).Methods("POST", "OPTIONS")
	r.PathPrefix("/assets/").Handler(assetHandler.Serve()).Methods("GET")

	// Export endpoints (public, a scene document in is an SVG out)
	r.HandleFunc("/export/svg", exportHandler.ExportSVG).Methods("POST", "OPTIONS")
	r.HandleFunc("/export/raster", exportHandler.ExportRaster).Methods("POST", "OPTIONS")
	r.HandleFunc("/export/dataurl", exportHandler.ExportDataURL).Methods("POST", "OPTIONS")

	// Protected API routes
	api := r.PathPrefix("/api").Subrouter()
	api.Use(authService.AuthMiddleware)

	api.HandleFunc("/me", authHandler.Me).Methods("GET")
	api.HandleFunc("/designs", designHandler.List).Methods("GET")
	api.HandleFunc("/designs", designHandler.Create).Methods("POST")
	api.HandleFunc("/designs/{designId}", designHandler.Get).Methods("GET")
	api.HandleFunc("/designs/{designId}", designHandler.Update).Methods("PUT")
	api.HandleFunc("/designs/{designId}/name", designHandler.Rename).Methods("PATCH")
	api.HandleFunc("/designs/{designId}", designHandler.Delete).Methods("DELETE")
	api.HandleFunc("/render", renderHandler.Generate).Methods("POST")

	// WebSocket endpoint
	r.HandleFunc("/ws/design/{designId}", func(w http.ResponseWriter, r *http.Request) {
		handleWebSocket(w, r, hub, authService, designService, strings.Split(cfg.AllowedOrigins, ","))
	})

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down server")

		// Stop hub first to save all open designs
		slog.Info("saving open designs...")
		hub.Stop()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		srv.Shutdown(shutdownCtx)
	}()

	slog.Info("server starting", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}

func handleWebSocket(w http.ResponseWriter, r *http.Request, hub *session.Hub, authSvc *auth.Service, designSvc *design.Service, origins []string) {
	designID := mux.Vars(r)["designId"]

	// Browsers cannot set headers on websocket upgrades, so the token rides
	// the query string here
	token := auth.TokenFromRequest(r)
	if token == "" {
		http.Error(w, "missing token", http.StatusUnauthorized)
		return
	}

	userID, err := authSvc.ValidateToken(token)
	if err != nil {
		http.Error(w, "invalid token", http.StatusUnauthorized)
		return
	}

	// Ownership check before the upgrade
	if _, err := designSvc.Get(r.Context(), designID, userID); err != nil {
		http.Error(w, "design not found", http.StatusForbidden)
		return
	}

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: origins,
	})
	if err != nil {
		slog.Error("websocket accept", "error", err)
		return
	}

	clientID := uuid.New().String()
	client := session.NewClient(hub, conn, userID, designID, clientID)

	hub.Register(client)

	ctx := r.Context()
	go client.WritePump(ctx)
	client.ReadPump(ctx)
}
