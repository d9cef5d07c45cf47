// internal/pkg/messaging/twilio.go
package messaging

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sirupsen/logrus"
)

// sendTwilio posts a message to Twilio's Messages API
func (s *Service) sendTwilio(ctx context.Context, msg *Message) error {
	var result TwilioResponse
	var apiErr TwilioError

	resp, err := s.client.R().
		SetContext(ctx).
		SetPathParam("accountSid", s.config.TwilioAccountSID).
		SetFormData(map[string]string{
			"From": s.config.FromAddress,
			"To":   msg.To,
			"Body": msg.Body,
		}).
		SetResult(&result).
		SetError(&apiErr).
		Post("/2010-04-01/Accounts/{accountSid}/Messages.json")
	if err != nil {
		return fmt.Errorf("failed to send twilio message: %w", err)
	}

	if resp.IsError() {
		if apiErr.Message == "" {
			_ = json.Unmarshal(resp.Body(), &apiErr)
		}
		return fmt.Errorf("twilio API error: status %d, code %d: %s", resp.StatusCode(), apiErr.Code, apiErr.Message)
	}

	s.logger.WithFields(logrus.Fields{
		"to":     msg.To,
		"type":   msg.Type,
		"sid":    result.SID,
		"status": result.Status,
	}).Info("twilio message accepted")

	return nil
}
