package base

import (
	"fmt"

	"github.com/mark-bixler/aws-warm-pool-mixed-instance-types/cloud"
	cloudaws "github.com/mark-bixler/aws-warm-pool-mixed-instance-types/cloud/aws"
	"github.com/mark-bixler/aws-warm-pool-mixed-instance-types/failover/structs"
	"github.com/mark-bixler/aws-warm-pool-mixed-instance-types/logging"
	"github.com/mark-bixler/aws-warm-pool-mixed-instance-types/notifier"
)

// Default bind address and port for the agent HTTP API.
const (
	DefaultBindAddr = "127.0.0.1"
	DefaultHTTPPort = "8700"
)

// DefaultConfig returns a default configuration struct with sane
// defaults.
func DefaultConfig() *structs.Config {
	return &structs.Config{
		BindAddress: DefaultBindAddr,
		HTTPPort:    DefaultHTTPPort,
		LogLevel:    "INFO",
		Provider:    "aws",

		Failover: &structs.Failover{
			ScalingProcess:      cloudaws.DefaultScalingProcess,
			ReservationPlatform: cloudaws.DefaultReservationPlatform,
		},
		Telemetry: &structs.Telemetry{},
		Notification: &structs.Notification{
			Provider:          "sns",
			ClusterIdentifier: "capacity-failover",
			LabTopic:          notifier.DefaultLabTopic,
			ProductionTopic:   notifier.DefaultProductionTopic,
		},
	}
}

// InitializeClients sets up the compute fleet client and the
// notification backends on the merged configuration. If no region was
// configured, the AWS region is determined dynamically from instance
// metadata.
func InitializeClients(config *structs.Config) error {

	if config.Region == "" {
		region, err := cloudaws.DescribeRegion()
		if err != nil {
			return fmt.Errorf("no aws_region configured and the region could "+
				"not be determined dynamically: %v", err)
		}
		config.Region = region
		logging.Debug("command/base: dynamically determined the AWS region "+
			"to be %v", region)
	}

	fleet, err := cloud.NewFleetProvider(config)
	if err != nil {
		return err
	}
	config.Fleet = fleet

	n, err := notifier.NewProvider(config.Notification.Provider,
		notifierConfig(config))
	if err != nil {
		return err
	}
	config.Notifiers = append(config.Notifiers, n)

	return nil
}

// notifierConfig flattens the notification configuration into the
// key/value map consumed by the notifier factory.
func notifierConfig(config *structs.Config) map[string]string {
	return map[string]string{
		"Region":          config.Region,
		"LabTopic":        config.Notification.LabTopic,
		"ProductionTopic": config.Notification.ProductionTopic,
		"WebhookURL":      config.Notification.SlackWebhookURL,
	}
}
