package structs

import (
	"github.com/mark-bixler/aws-warm-pool-mixed-instance-types/notifier"
)

// Config is the main configuration struct used to configure the
// capacity failover application.
type Config struct {
	// Region represents the AWS region the autoscaling groups reside in.
	// If empty, the agent attempts to determine the region dynamically
	// from instance metadata.
	Region string `mapstructure:"aws_region"`

	// LogLevel is the level at which the application should log from.
	LogLevel string `mapstructure:"log_level"`

	// BindAddress is the address the agent HTTP API listens on.
	BindAddress string `mapstructure:"bind_address"`

	// HTTPPort is the port the agent HTTP API listens on.
	HTTPPort string `mapstructure:"http_port"`

	// Provider is the name of the compute fleet provider to use. The
	// only builtin provider is "aws".
	Provider string `mapstructure:"provider"`

	// Failover is the configuration struct that controls the capacity
	// failover behaviour.
	Failover *Failover `mapstructure:"failover"`

	// Telemetry is the configuration struct that controls the telemetry
	// settings.
	Telemetry *Telemetry `mapstructure:"telemetry"`

	// Notification is the configuration struct that controls alert
	// routing.
	Notification *Notification `mapstructure:"notification"`

	// Fleet provides a client to interact with the compute fleet
	// control plane.
	Fleet ComputeFleet

	// Notifiers is where the initialized notification backends are
	// stored so they can be used on the fly when required.
	Notifiers []notifier.Notifier
}

// Failover is the configuration struct for the capacity failover
// activities.
type Failover struct {
	// ScalingProcess is the name of the autoscaling process that is
	// suspended while a failover is in flight. This should stay at the
	// default of Launch unless the control plane renames it.
	ScalingProcess string `mapstructure:"scaling_process"`

	// ReservationPlatform is the instance platform used when creating
	// temporary capacity reservations during probing.
	ReservationPlatform string `mapstructure:"reservation_platform"`
}

// Telemetry is the struct that controls the telemetry configuration. If
// a value is present then telemetry is enabled. Currently statsd is only
// supported for sending telemetry.
type Telemetry struct {
	// StatsdAddress specifies the address of a statsd server to forward
	// metrics to and should include the port.
	StatsdAddress string `mapstructure:"statsd_address"`
}

// Notification is the control struct for failover notifications.
type Notification struct {
	// Provider is the notification backend to use, either "sns" or
	// "slack".
	Provider string `mapstructure:"provider"`

	// ClusterIdentifier is a friendly name which is used when sending
	// notifications for easy human identification.
	ClusterIdentifier string `mapstructure:"cluster_identifier"`

	// LabTopic is the SNS topic name alerts are routed to for groups
	// tagged with a non-production environment.
	LabTopic string `mapstructure:"lab_topic"`

	// ProductionTopic is the SNS topic name alerts are routed to for
	// groups tagged with a production environment.
	ProductionTopic string `mapstructure:"production_topic"`

	// SlackWebhookURL is the incoming webhook URL used by the slack
	// notification backend.
	SlackWebhookURL string `mapstructure:"slack_webhook_url"`
}

// Merge merges two configurations.
func (c *Config) Merge(b *Config) *Config {
	config := *c

	if b.Region != "" {
		config.Region = b.Region
	}

	if b.LogLevel != "" {
		config.LogLevel = b.LogLevel
	}

	if b.BindAddress != "" {
		config.BindAddress = b.BindAddress
	}

	if b.HTTPPort != "" {
		config.HTTPPort = b.HTTPPort
	}

	if b.Provider != "" {
		config.Provider = b.Provider
	}

	// Apply the Failover config
	if config.Failover == nil && b.Failover != nil {
		failover := *b.Failover
		config.Failover = &failover
	} else if b.Failover != nil {
		config.Failover = config.Failover.Merge(b.Failover)
	}

	// Apply the Telemetry config
	if config.Telemetry == nil && b.Telemetry != nil {
		telemetry := *b.Telemetry
		config.Telemetry = &telemetry
	} else if b.Telemetry != nil {
		config.Telemetry = config.Telemetry.Merge(b.Telemetry)
	}

	// Apply the Notification config
	if config.Notification == nil && b.Notification != nil {
		notification := *b.Notification
		config.Notification = &notification
	} else if b.Notification != nil {
		config.Notification = config.Notification.Merge(b.Notification)
	}

	return &config
}

// Merge is used to merge two Failover configurations together.
func (f *Failover) Merge(b *Failover) *Failover {
	config := *f

	if b.ScalingProcess != "" {
		config.ScalingProcess = b.ScalingProcess
	}

	if b.ReservationPlatform != "" {
		config.ReservationPlatform = b.ReservationPlatform
	}

	return &config
}

// Merge is used to merge two Telemetry configurations together.
func (t *Telemetry) Merge(b *Telemetry) *Telemetry {
	config := *t

	if b.StatsdAddress != "" {
		config.StatsdAddress = b.StatsdAddress
	}

	return &config
}

// Merge is used to merge two Notification configurations together.
func (n *Notification) Merge(b *Notification) *Notification {
	config := *n

	if b.Provider != "" {
		config.Provider = b.Provider
	}

	if b.ClusterIdentifier != "" {
		config.ClusterIdentifier = b.ClusterIdentifier
	}

	if b.LabTopic != "" {
		config.LabTopic = b.LabTopic
	}

	if b.ProductionTopic != "" {
		config.ProductionTopic = b.ProductionTopic
	}

	if b.SlackWebhookURL != "" {
		config.SlackWebhookURL = b.SlackWebhookURL
	}

	return &config
}
