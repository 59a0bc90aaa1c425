package notifier

import (
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/sns"
	"github.com/aws/aws-sdk-go/service/sns/snsiface"
)

// Default topic names used when the operator does not override the
// routing convention. The environment tag on the triggering group
// selects between them.
const (
	DefaultLabTopic        = "lab-slack-alerts"
	DefaultProductionTopic = "production-slack-alerts"
)

// SNSProvider sends notifications to an SNS topic which is expected to
// forward them to the operator chat channel.
type SNSProvider struct {
	config map[string]string
	svc    snsiface.SNSAPI
}

// Name returns the name of the notification endpoint in a lowercase,
// human readable format.
func (p *SNSProvider) Name() string {
	return "sns"
}

// NewSNSProvider creates the SNS notification provider.
func NewSNSProvider(c map[string]string) (Notifier, error) {

	sess := session.Must(session.NewSession())

	p := &SNSProvider{
		config: c,
		svc:    sns.New(sess, aws.NewConfig().WithRegion(c["Region"])),
	}

	return p, nil
}

// SendNotification publishes the failover message to the topic selected
// by the environment of the triggering group. Topics are addressed by
// name within the account and region the original event came from.
func (p *SNSProvider) SendNotification(message FailoverMessage) error {

	topic := p.config["ProductionTopic"]
	if topic == "" {
		topic = DefaultProductionTopic
	}
	if message.Environment == "lab" {
		topic = p.config["LabTopic"]
		if topic == "" {
			topic = DefaultLabTopic
		}
	}

	// Topics live in the account and region the triggering event came
	// from, not necessarily where the agent runs.
	arn := fmt.Sprintf("arn:aws:sns:%s:%s:%s",
		message.Region, message.Account, topic)

	subject := fmt.Sprintf("[%s] capacity failover: %s",
		message.ClusterIdentifier, message.GroupName)

	params := &sns.PublishInput{
		TopicArn: aws.String(arn),
		Subject:  aws.String(subject),
		Message:  aws.String(formatMessage(message)),
		MessageAttributes: map[string]*sns.MessageAttributeValue{
			"channel": {
				DataType:    aws.String("String"),
				StringValue: aws.String(message.SlackChannel),
			},
			"alert_uid": {
				DataType:    aws.String("String"),
				StringValue: aws.String(message.AlertUID),
			},
		},
	}

	if _, err := p.svc.Publish(params); err != nil {
		return err
	}

	return nil
}

// formatMessage renders the chat message body shared by the SNS and
// slack backends.
func formatMessage(m FailoverMessage) string {
	body := fmt.Sprintf("%s: group %s in %s (original type %s)",
		m.Reason, m.GroupName, m.AvailabilityZone, m.OriginalType)

	if m.NewType != "" {
		body = fmt.Sprintf("%s, new type %s", body, m.NewType)
	}

	return fmt.Sprintf("%s [alert %s]", body, m.AlertUID)
}
