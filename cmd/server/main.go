package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/PRINCE-ai19/AppDoCongNghe-sub000/internal/api"
	"github.com/PRINCE-ai19/AppDoCongNghe-sub000/internal/config"
	"github.com/PRINCE-ai19/AppDoCongNghe-sub000/internal/handlers"
	"github.com/PRINCE-ai19/AppDoCongNghe-sub000/internal/session"
	"github.com/gorilla/csrf"
)

func main() {
	// Debug level until the configured level is known
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})))

	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()})))

	// 2. Backend client
	client := api.NewClient(cfg.BackendURL, cfg.RequestTimeout)
	slog.Info("Using backend", "url", cfg.BackendURL, "timeout", cfg.RequestTimeout)

	// 3. Session Setup
	sessions := session.New(cfg.SessionKey, session.Options{
		Domain: cfg.CookieDomain,
		Secure: cfg.CookieSecure,
	})

	// 4. Init Templates
	templates := handlers.NewTemplateCache()
	if err := templates.Load(cfg.TemplateDir); err != nil {
		slog.Error("Failed to load templates", "error", err)
		os.Exit(1)
	}

	// 5. Setup Handlers
	router := handlers.Router{
		Base: handlers.Base{
			API:       client,
			Sessions:  sessions,
			Templates: templates,
		},
		StaticDir:     cfg.StaticDir,
		ImageMaxWidth: cfg.ImageMaxWidth,
		AuthLimit:     2 * time.Second,
		ContactLimit:  time.Minute,
	}
	mux := router.Handler()

	// 6. Middleware Setup
	CSRF := csrf.Protect(
		cfg.CSRFKey,
		csrf.Secure(cfg.CookieSecure),
		csrf.Path("/"),
		csrf.TrustedOrigins([]string{"localhost:" + cfg.Port, "127.0.0.1:" + cfg.Port, "localhost", "127.0.0.1"}),
	)

	// Chain: Logger -> Security Headers -> CSRF -> Session -> Mux
	handler := handlers.LoggingMiddleware(
		handlers.SecurityHeadersMiddleware(
			CSRF(sessions.Middleware(mux)),
		),
	)

	// 7. Start Server with Graceful Shutdown
	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("Server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to listen and serve", "error", err)
			os.Exit(1)
		}
	}()

	<-stop

	slog.Info("Shutting down server gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		slog.Error("Server shutdown failed", "error", err)
		os.Exit(1)
	}

	slog.Info("Server exited gracefully.")
}
