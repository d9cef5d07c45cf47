// internal/domain/notification/dispatcher.go
package notification

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/your-org/boutique-store/internal/config"
	"github.com/your-org/boutique-store/internal/domain/order"
	"github.com/your-org/boutique-store/internal/pkg/messaging"
)

// Dispatcher sends the WhatsApp messages that go out when an order is
// confirmed. Delivery is best effort: each send has its own timeout and a
// failure is logged, never returned.
type Dispatcher struct {
	sender   messaging.Sender
	config   config.MessagingConfig
	currency string
	logger   *logrus.Logger
}

// NewDispatcher creates a new notification dispatcher
func NewDispatcher(sender messaging.Sender, cfg config.MessagingConfig, currency string, logger *logrus.Logger) *Dispatcher {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &Dispatcher{
		sender:   sender,
		config:   cfg,
		currency: currency,
		logger:   logger,
	}
}

// CustomerAddress derives the messaging address from a customer phone.
// Phones that already carry a "+" keep their own country code.
func (d *Dispatcher) CustomerAddress(phone string) string {
	phone = strings.TrimSpace(phone)
	if strings.HasPrefix(phone, "+") {
		return d.config.ChannelPrefix + phone
	}
	return d.config.ChannelPrefix + d.config.CustomerCountryCode + phone
}

// CustomerMessage is the text sent to the customer
func CustomerMessage(o *order.Order, currency string) string {
	return fmt.Sprintf("Your order #%d is confirmed.\nAmount: %s", o.ID, order.FormatAmount(currency, o.TotalAmount))
}

// MerchantMessage is the text sent to the merchant
func MerchantMessage(o *order.Order, currency string) string {
	return fmt.Sprintf("NEW ORDER CONFIRMED\nName: %s\nPhone: %s\nAddress: %s\nAmount: %s",
		o.CustomerName, o.CustomerPhone, o.Address, order.FormatAmount(currency, o.TotalAmount))
}

// OrderConfirmed sends the customer and merchant messages and returns how
// many were delivered.
func (d *Dispatcher) OrderConfirmed(ctx context.Context, o *order.Order) int {
	messages := []*messaging.Message{
		{
			To:   d.CustomerAddress(o.CustomerPhone),
			Body: CustomerMessage(o, d.currency),
			Type: messaging.MessageTypeOrderConfirmedCustomer,
		},
		{
			To:   d.config.MerchantAddress,
			Body: MerchantMessage(o, d.currency),
			Type: messaging.MessageTypeOrderConfirmedMerchant,
		},
	}

	sent := 0
	for _, msg := range messages {
		if err := d.send(ctx, msg); err != nil {
			d.logger.WithError(err).WithFields(logrus.Fields{
				"order_id": o.ID,
				"to":       msg.To,
				"type":     msg.Type,
			}).Error("failed to send order confirmation")
			continue
		}
		sent++
	}
	return sent
}

func (d *Dispatcher) send(ctx context.Context, msg *messaging.Message) error {
	ctx, cancel := context.WithTimeout(ctx, d.config.Timeout)
	defer cancel()
	return d.sender.Send(ctx, msg)
}
