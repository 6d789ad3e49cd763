package notifications

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"

	"github.com/InSantoshMahto/login-system/domain"
)

// TwilioServiceImpl implements domain.NotificationService. Phone-number
// recipients get the code over Twilio SMS; email recipients are rendered
// and logged until an email provider is wired in.
type TwilioServiceImpl struct {
	client     *twilio.RestClient
	fromNumber string
	logger     zerolog.Logger
}

// NewTwilioService creates a new Twilio-backed notification service
func NewTwilioService(accountSID, authToken, fromNumber string, logger zerolog.Logger) domain.NotificationService {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})

	return &TwilioServiceImpl{
		client:     client,
		fromNumber: fromNumber,
		logger:     logger,
	}
}

// SendOneTimeCode implements domain.NotificationService
func (t *TwilioServiceImpl) SendOneTimeCode(ctx context.Context, brand, domainName, recipientName, recipientAddress, message, code string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	body := fmt.Sprintf("%s (%s)\nHi %s, %s\nYour one-time code is: %s", brand, domainName, recipientName, message, code)

	if strings.HasPrefix(recipientAddress, "+") && t.fromNumber != "" {
		params := &twilioApi.CreateMessageParams{}
		params.SetTo(recipientAddress)
		params.SetFrom(t.fromNumber)
		params.SetBody(body)

		if _, err := t.client.Api.CreateMessage(params); err != nil {
			return fmt.Errorf("failed to send SMS: %w", err)
		}
		return nil
	}

	// Email channel: render and log until a provider is configured
	t.logger.Info().
		Str("to", recipientAddress).
		Str("brand", brand).
		Str("domain", domainName).
		Msg("one-time code email rendered")

	return nil
}
