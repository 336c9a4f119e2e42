// Command seed populates a mailbox with generated test data without running
// the proxy server. The target mailbox must already have a credential record
// from a completed OAuth bootstrap.
package main

import (
	"context"
	"flag"
	"log"

	"github.com/wearewright/zmail-proxy/internal/auth/token"
	"github.com/wearewright/zmail-proxy/internal/auth/zmail"
	"github.com/wearewright/zmail-proxy/internal/config"
	"github.com/wearewright/zmail-proxy/internal/db"
	"github.com/wearewright/zmail-proxy/internal/mail"
	"github.com/wearewright/zmail-proxy/internal/seed"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to YAML config file")
	mailbox := flag.String("mailbox", "", "mailbox alias to seed (defaults to seed.mailbox from config)")
	toEmail := flag.String("to", "", "recipient address (defaults to seed.to_email from config)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	if *mailbox == "" {
		*mailbox = cfg.Seed.Mailbox
	}
	if *toEmail == "" {
		*toEmail = cfg.Seed.ToEmail
	}
	if *mailbox == "" || *toEmail == "" {
		log.Fatal("mailbox and recipient are required (flags or seed config)")
	}

	database, err := db.Init(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	store := db.NewStore(database)

	tokenManager := token.NewManager(store, zmail.NewHTTPClient(cfg))
	mailService := mail.NewService(cfg, tokenManager)

	seed.Run(context.Background(), mailService, *mailbox, *toEmail)
}
