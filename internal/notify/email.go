// Package notify sends the payout announcement email to a cycle recipient.
package notify

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
)

// EmailClient is the subset of the SES v2 client used here, kept as an
// interface so tests can substitute a mock.
type EmailClient interface {
	SendEmail(ctx context.Context, input *sesv2.SendEmailInput, opts ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error)
}

// NewSESClient initializes the AWS SES client.
func NewSESClient(region string) (*sesv2.Client, error) {
	cfg, err := config.LoadDefaultConfig(context.TODO(), config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("unable to load SDK config: %v", err)
	}
	return sesv2.NewFromConfig(cfg), nil
}

// Announcer emails the designated recipient when a new cycle opens.
type Announcer struct {
	Client EmailClient
	Sender string
}

// AnnounceRecipient tells the recipient member that the pooled amount of the
// new cycle is theirs.
func (a *Announcer) AnnounceRecipient(ctx context.Context, to, groupName string, cycleNumber int, amount float64) error {
	subject := fmt.Sprintf("You are the recipient for cycle %d of %s", cycleNumber, groupName)
	body := fmt.Sprintf(
		"A new contribution cycle has started in %s.\n\n"+
			"You have been designated the recipient for cycle %d. Each member "+
			"contributes %.2f this cycle; the pooled amount goes to you once "+
			"contributions are verified.\n",
		groupName, cycleNumber, amount)

	input := &sesv2.SendEmailInput{
		FromEmailAddress: &a.Sender,
		Destination: &types.Destination{
			ToAddresses: []string{to},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: &subject},
				Body: &types.Body{
					Text: &types.Content{Data: &body},
				},
			},
		},
	}

	if _, err := a.Client.SendEmail(ctx, input); err != nil {
		return fmt.Errorf("error sending recipient announcement: %w", err)
	}
	return nil
}
