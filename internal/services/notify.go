package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/horizonit/backend/internal/models"
	"github.com/horizonit/backend/pkg/logger"
)

// AWSSESLeadNotifier emails the business inbox when a new lead arrives.
type AWSSESLeadNotifier struct {
	sesClient   *ses.Client
	fromAddress string
	toAddress   string
	logger      *slog.Logger
}

func NewAWSSESLeadNotifier(region, fromAddress, toAddress string, log *slog.Logger) (*AWSSESLeadNotifier, error) {
	cfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &AWSSESLeadNotifier{
		sesClient:   ses.NewFromConfig(cfg),
		fromAddress: fromAddress,
		toAddress:   toAddress,
		logger:      log,
	}, nil
}

// NotifyNewLead sends a plain-text summary of the lead to the business inbox.
func (n *AWSSESLeadNotifier) NotifyNewLead(ctx context.Context, lead *models.Lead) error {
	subject := fmt.Sprintf("Nouvelle demande de contact : %s", lead.Name)

	textBody := fmt.Sprintf(`Nouvelle demande de contact reçue.

Nom : %s
Email : %s
Service : %s

Message :
%s

Lead #%d, reçu le %s.
`, lead.Name, lead.Email, lead.Service, lead.Message, lead.ID, lead.CreatedAt.Format("02/01/2006 15:04"))

	input := &ses.SendEmailInput{
		Source: aws.String(n.fromAddress),
		Destination: &types.Destination{
			ToAddresses: []string{n.toAddress},
		},
		Message: &types.Message{
			Subject: &types.Content{
				Data: aws.String(subject),
			},
			Body: &types.Body{
				Text: &types.Content{
					Data: aws.String(textBody),
				},
			},
		},
	}

	result, err := n.sesClient.SendEmail(ctx, input)
	if err != nil {
		n.logger.Error("failed to send lead notification via SES",
			slog.Int64("lead_id", lead.ID),
			slog.String("email", logger.SanitizedEmail(lead.Email)),
			slog.Any("error", err))
		return fmt.Errorf("failed to send email: %w", err)
	}

	n.logger.Info("lead notification sent",
		slog.Int64("lead_id", lead.ID),
		slog.String("message_id", *result.MessageId))

	return nil
}
