package notifier

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"agrimart/internal/domain"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

type sesAPI interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

// SESConfig configures the SES notifier. Static credentials are used when
// both keys are set, otherwise the default AWS credential chain.
type SESConfig struct {
	Region          string
	Sender          string
	AccessKeyID     string
	SecretAccessKey string
	CurrencySymbol  string
}

// SES sends order confirmation e-mails through Amazon SES.
type SES struct {
	client   sesAPI
	sender   string
	currency string
	logger   *log.Logger
}

func NewSES(ctx context.Context, cfg SESConfig, logger *log.Logger) (*SES, error) {
	if cfg.Sender == "" {
		return nil, errors.New("ses sender address not configured")
	}
	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.Region)}
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return newSES(ses.NewFromConfig(awsCfg), cfg.Sender, cfg.CurrencySymbol, logger), nil
}

func newSES(client sesAPI, sender, currency string, logger *log.Logger) *SES {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &SES{client: client, sender: sender, currency: currency, logger: logger}
}

func (s *SES) OrderPlaced(ctx context.Context, order domain.Order) error {
	if order.CustomerEmail == "" {
		return errors.New("recipient email address is empty")
	}
	body, err := htmlBody(order, s.currency)
	if err != nil {
		return err
	}
	input := &ses.SendEmailInput{
		Source: aws.String(s.sender),
		Destination: &types.Destination{
			ToAddresses: []string{order.CustomerEmail},
		},
		Message: &types.Message{
			Subject: &types.Content{Charset: aws.String("UTF-8"), Data: aws.String(subject(order))},
			Body: &types.Body{
				Html: &types.Content{Charset: aws.String("UTF-8"), Data: aws.String(body)},
				Text: &types.Content{Charset: aws.String("UTF-8"), Data: aws.String(textBody(order, s.currency))},
			},
		},
	}
	if _, err := s.client.SendEmail(ctx, input); err != nil {
		return fmt.Errorf("send confirmation for order %s: %w", order.ID, err)
	}
	s.logger.Printf("notifier: confirmation sent order=%s to=%s", order.ID, order.CustomerEmail)
	return nil
}
