// internal/pkg/messaging/service.go
package messaging

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"

	"github.com/your-org/boutique-store/internal/config"
)

var ErrInvalidMessage = errors.New("message requires a recipient and a body")

// Service handles all outbound messaging
type Service struct {
	config config.MessagingConfig
	client *resty.Client
	logger *logrus.Logger
}

// NewService creates a new messaging service
func NewService(cfg config.MessagingConfig, logger *logrus.Logger) (*Service, error) {
	switch cfg.Provider {
	case "twilio":
		if cfg.TwilioAccountSID == "" || cfg.TwilioAuthToken == "" {
			return nil, fmt.Errorf("twilio credentials not configured")
		}
	case "log":
	default:
		return nil, fmt.Errorf("unsupported messaging provider: %s", cfg.Provider)
	}

	client := resty.New().
		SetTimeout(cfg.Timeout).
		SetBaseURL(strings.TrimRight(cfg.TwilioBaseURL, "/")).
		SetBasicAuth(cfg.TwilioAccountSID, cfg.TwilioAuthToken).
		SetHeader("Accept", "application/json")

	return &Service{
		config: cfg,
		client: client,
		logger: logger,
	}, nil
}

// Provider returns the configured provider name
func (s *Service) Provider() string {
	return s.config.Provider
}

// Send sends a message using the configured provider
func (s *Service) Send(ctx context.Context, msg *Message) error {
	if msg == nil || strings.TrimSpace(msg.To) == "" || msg.Body == "" {
		return ErrInvalidMessage
	}

	switch s.config.Provider {
	case "twilio":
		return s.sendTwilio(ctx, msg)
	case "log":
		return s.sendLog(msg)
	default:
		return fmt.Errorf("unsupported messaging provider: %s", s.config.Provider)
	}
}

// sendLog writes the message to the log instead of delivering it
func (s *Service) sendLog(msg *Message) error {
	s.logger.WithFields(logrus.Fields{
		"to":   msg.To,
		"type": msg.Type,
	}).Infof("message (log provider):\n%s", msg.Body)
	return nil
}
