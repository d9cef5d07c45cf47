// internal/pkg/messaging/types.go
package messaging

import "context"

// MessageType represents the kind of message being sent
type MessageType string

const (
	MessageTypeOrderConfirmedCustomer MessageType = "order_confirmed_customer"
	MessageTypeOrderConfirmedMerchant MessageType = "order_confirmed_merchant"
)

// Message represents an outbound text message. To is a provider address,
// e.g. "whatsapp:+919876543210".
type Message struct {
	To   string      `json:"to"`
	Body string      `json:"body"`
	Type MessageType `json:"type"`
}

// Sender delivers messages
type Sender interface {
	Send(ctx context.Context, msg *Message) error
}

// TwilioResponse is the subset of Twilio's message resource we read
type TwilioResponse struct {
	SID          string `json:"sid"`
	Status       string `json:"status"`
	ErrorCode    *int   `json:"error_code"`
	ErrorMessage string `json:"error_message"`
}

// TwilioError is Twilio's error payload
type TwilioError struct {
	Code     int    `json:"code"`
	Message  string `json:"message"`
	MoreInfo string `json:"more_info"`
	Status   int    `json:"status"`
}
