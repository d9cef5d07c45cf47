// cmd/notify-test/main.go sends one WhatsApp message through the configured
// provider to check the messaging credentials.
package main

import (
	"context"
	"log"
	"os"

	"github.com/your-org/boutique-store/internal/config"
	"github.com/your-org/boutique-store/internal/pkg/logger"
	"github.com/your-org/boutique-store/internal/pkg/messaging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	to := cfg.Messaging.MerchantAddress
	if len(os.Args) > 1 {
		to = os.Args[1]
	}

	sender, err := messaging.NewService(cfg.Messaging, logger.New(cfg.Logging))
	if err != nil {
		log.Fatalf("Failed to configure messaging: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Messaging.Timeout)
	defer cancel()

	msg := &messaging.Message{
		To:   to,
		Body: "Test message from " + cfg.Store.Name + ". WhatsApp notifications are working!",
	}
	if err := sender.Send(ctx, msg); err != nil {
		log.Fatal("Send failed:", err)
	}

	log.Printf("✅ Message sent to %s via %s", to, sender.Provider())
}
