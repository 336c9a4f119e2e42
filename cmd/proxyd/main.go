package main

import (
	"context"
	"flag"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/wearewright/zmail-proxy/internal/auth/token"
	"github.com/wearewright/zmail-proxy/internal/auth/zmail"
	"github.com/wearewright/zmail-proxy/internal/config"
	"github.com/wearewright/zmail-proxy/internal/db"
	"github.com/wearewright/zmail-proxy/internal/logging"
	"github.com/wearewright/zmail-proxy/internal/mail"
	"github.com/wearewright/zmail-proxy/internal/proxy/handlers"
	"github.com/wearewright/zmail-proxy/internal/proxy/middleware"
	"github.com/wearewright/zmail-proxy/internal/seed"
	"github.com/wearewright/zmail-proxy/internal/version"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	database, err := db.Init(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	store := db.NewStore(database)

	authClient := zmail.NewHTTPClient(cfg)
	tokenManager := token.NewManager(store, authClient)
	mailService := mail.NewService(cfg, tokenManager)

	// Populate test data when enabled (one-shot, before serving).
	if cfg.Seed.Enabled {
		seed.Run(context.Background(), mailService, cfg.Seed.Mailbox, cfg.Seed.ToEmail)
	}

	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(logging.RequestID)

	// OAuth flow
	r.Get("/oauth/login", handlers.LoginHandler(authClient))
	r.Get("/oauth/callback", handlers.CallbackHandler(tokenManager))

	// Mail operations
	r.Route("/mail/{mailbox}", func(r chi.Router) {
		r.Get("/profile", handlers.MailboxProfileHandler(mailService))
		r.With(middleware.RequireBodyFields("toEmail")).Post("/messages", handlers.CreateMessageHandler(mailService))
		r.With(middleware.RequireBodyFields("toEmail")).Post("/messages/send", handlers.SendMessageHandler(mailService))
		r.With(middleware.RequireBodyFields("toEmail")).Post("/messages/trash", handlers.TrashMessageHandler(mailService))
		r.With(middleware.RequireBodyFields("toEmail")).Post("/messages/draft", handlers.DraftMessageHandler(mailService))
		r.With(middleware.RequireBodyFields("labelName")).Post("/labels", handlers.CreateLabelHandler(mailService))
	})

	// Stored accounts (tokens masked)
	r.Get("/api/accounts", handlers.AccountsHandler(store))

	log.Printf("🚀 zmail-proxy %s starting on http://%s", version.Version, cfg.Addr())
	if err := http.ListenAndServe(cfg.Addr(), r); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
