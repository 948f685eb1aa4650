package services

import (
	"context"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"go.uber.org/zap"
)

// messageCreator is the part of the Twilio REST API the gateway uses
type messageCreator interface {
	CreateMessage(params *twilioApi.CreateMessageParams) (*twilioApi.ApiV2010Message, error)
}

// TwilioSmsGateway sends text messages through the Twilio Messages API
type TwilioSmsGateway struct {
	api    messageCreator
	from   string
	logger *zap.Logger
}

// NewTwilioSmsGateway creates a gateway. Without credentials the gateway
// is disabled and SendTo only logs.
func NewTwilioSmsGateway(accountSID, authToken, from string, logger *zap.Logger) *TwilioSmsGateway {
	if logger == nil {
		logger = zap.NewNop()
	}
	gw := &TwilioSmsGateway{from: from, logger: logger}
	if accountSID != "" && authToken != "" {
		client := twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSID,
			Password: authToken,
		})
		gw.api = client.Api
	}
	return gw
}

// SendTo sends message to phoneNumber. twilio-go's CreateMessage takes no
// context, so ctx is only checked before the request goes out; an in-flight
// send is bounded by the client's HTTP timeout instead.
func (g *TwilioSmsGateway) SendTo(ctx context.Context, phoneNumber, message string) error {
	if g.api == nil {
		g.logger.Debug("sms skipped (gateway disabled)", zap.String("to", phoneNumber))
		return nil
	}
	if err := ctx.Err(); err != nil {
		g.logger.Warn("sms not sent", zap.String("to", phoneNumber), zap.Error(err))
		return err
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(phoneNumber)
	params.SetFrom(g.from)
	params.SetBody(message)

	resp, err := g.api.CreateMessage(params)
	if err != nil {
		g.logger.Warn("sms send failed", zap.String("to", phoneNumber), zap.Error(err))
		return err
	}

	sid := ""
	if resp != nil && resp.Sid != nil {
		sid = *resp.Sid
	}
	g.logger.Info("sms sent", zap.String("to", phoneNumber), zap.String("sid", sid))
	return nil
}
