package testutil

import (
	"github.com/mark-bixler/aws-warm-pool-mixed-instance-types/notifier"
)

// RecordingNotifier captures every notification sent through it so
// tests can assert on alert content and ordering.
type RecordingNotifier struct {
	Messages []notifier.FailoverMessage
	Err      error
}

func (n *RecordingNotifier) Name() string {
	return "recording"
}

func (n *RecordingNotifier) SendNotification(message notifier.FailoverMessage) error {
	n.Messages = append(n.Messages, message)
	return n.Err
}
