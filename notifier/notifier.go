package notifier

import (
	"fmt"
)

// FailoverMessage is the notifier struct that contains all relevant
// notification information to provide to operators.
type FailoverMessage struct {
	AlertUID          string
	ClusterIdentifier string
	GroupName         string
	Environment       string
	Account           string
	Region            string
	AvailabilityZone  string
	OriginalType      string
	NewType           string
	SlackChannel      string
	Reason            string
}

// Notifier is the interface to the notifier functions. All notifiers
// are expected to implement this set of functions. Delivery is
// fire-and-forget; callers log returned errors and never block on them.
type Notifier interface {
	Name() string
	SendNotification(message FailoverMessage) error
}

// NewProvider is the factory entrance to the notification backends.
func NewProvider(t string, c map[string]string) (Notifier, error) {

	var n Notifier
	var err error

	switch t {
	case "sns":
		n, err = NewSNSProvider(c)
	case "slack":
		n, err = NewSlackProvider(c)
	default:
		err = fmt.Errorf("the notifications provider %s is not supported", t)
	}
	return n, err
}
