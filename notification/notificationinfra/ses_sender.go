package notificationinfra

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

// SESEmailSender implements notification.EmailSender on Amazon SES.
type SESEmailSender struct {
	client *ses.Client
	from   string
}

// NewSESEmailSender creates an SES-backed email sender.
func NewSESEmailSender(client *ses.Client, from string) *SESEmailSender {
	return &SESEmailSender{
		client: client,
		from:   from,
	}
}

// Send delivers one message to all recipients in a single SES call.
func (s *SESEmailSender) Send(ctx context.Context, recipients []string, subject, body string) error {
	if len(recipients) == 0 {
		return nil
	}

	_, err := s.client.SendEmail(ctx, &ses.SendEmailInput{
		Source: aws.String(s.from),
		Destination: &types.Destination{
			ToAddresses: recipients,
		},
		Message: &types.Message{
			Subject: &types.Content{
				Data:    aws.String(subject),
				Charset: aws.String("UTF-8"),
			},
			Body: &types.Body{
				Text: &types.Content{
					Data:    aws.String(body),
					Charset: aws.String("UTF-8"),
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("send email via ses: %w", err)
	}

	return nil
}
