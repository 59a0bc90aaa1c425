package agent

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	metrics "github.com/armon/go-metrics"
	"github.com/mark-bixler/aws-warm-pool-mixed-instance-types/command"
	"github.com/mark-bixler/aws-warm-pool-mixed-instance-types/command/base"
	"github.com/mark-bixler/aws-warm-pool-mixed-instance-types/failover"
	"github.com/mark-bixler/aws-warm-pool-mixed-instance-types/failover/structs"
	"github.com/mark-bixler/aws-warm-pool-mixed-instance-types/logging"
	"github.com/mark-bixler/aws-warm-pool-mixed-instance-types/version"
)

// Command is the agent command structure used to track passed args as
// well as the CLI meta.
type Command struct {
	command.Meta
	args []string
}

// Run triggers a run of the capacity failover agent by setting up and
// parsing the configuration and then starting the HTTP API.
func (c *Command) Run(args []string) int {

	c.args = args
	conf := c.parseFlags()
	if conf == nil {
		return 1
	}

	// Set the logging level for the logger.
	logging.SetLevel(conf.LogLevel)

	// Initialize telemetry if this was configured by the user.
	if conf.Telemetry.StatsdAddress != "" {
		sink, statsErr := metrics.NewStatsdSink(conf.Telemetry.StatsdAddress)
		if statsErr != nil {
			c.UI.Error(fmt.Sprintf("unable to setup telemetry correctly: %v", statsErr))
			return 1
		}
		metrics.NewGlobal(metrics.DefaultConfig("icefailover"), sink)
	}

	srv, err := c.setupAgent(conf)
	if err != nil {
		c.UI.Error(err.Error())
		return 1
	}

	logging.Info("command/agent: running version %v", version.Get())

	signalCh := make(chan os.Signal, 1)
	signal.Notify(signalCh,
		syscall.SIGHUP,
		syscall.SIGINT,
		syscall.SIGTERM,
		syscall.SIGQUIT,
	)

	for {
		select {
		case s := <-signalCh:
			switch s {
			case syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT:
				srv.Shutdown()
				return 0

			case syscall.SIGHUP:
				srv.Shutdown()

				// Reload the configuration in order to make proper use of
				// SIGHUP.
				conf := c.parseFlags()
				if conf == nil {
					return 1
				}
				logging.SetLevel(conf.LogLevel)

				srv, err = c.setupAgent(conf)
				if err != nil {
					c.UI.Error(err.Error())
					return 1
				}
			}
		}
	}
}

// setupAgent initializes the external clients, the orchestrator and the
// HTTP API server from a merged configuration.
func (c *Command) setupAgent(conf *structs.Config) (*HTTPServer, error) {
	if err := base.InitializeClients(conf); err != nil {
		return nil, err
	}

	orchestrator, err := failover.NewOrchestrator(conf)
	if err != nil {
		return nil, err
	}

	return NewHTTPServer(orchestrator, conf)
}

func (c *Command) parseFlags() *structs.Config {

	var configPath string

	// An empty new config is setup here to allow us to fill this with
	// any passed cli flags for later merging.
	cliConfig := &structs.Config{
		Failover:     &structs.Failover{},
		Telemetry:    &structs.Telemetry{},
		Notification: &structs.Notification{},
	}

	flags := c.Meta.FlagSet("agent", command.FlagSetNone)
	flags.Usage = func() { c.UI.Error(c.Help()) }

	flags.StringVar(&configPath, "config", "", "")

	// Top level configuration flags
	flags.StringVar(&cliConfig.Region, "aws-region", "", "")
	flags.StringVar(&cliConfig.LogLevel, "log-level", "", "")
	flags.StringVar(&cliConfig.BindAddress, "bind-address", "", "")
	flags.StringVar(&cliConfig.HTTPPort, "http-port", "", "")

	// Failover configuration flags
	flags.StringVar(&cliConfig.Failover.ScalingProcess, "scaling-process", "", "")
	flags.StringVar(&cliConfig.Failover.ReservationPlatform, "reservation-platform", "", "")

	// Telemetry configuration flags
	flags.StringVar(&cliConfig.Telemetry.StatsdAddress, "statsd-address", "", "")

	if err := flags.Parse(c.args); err != nil {
		return nil
	}

	// Load the default configuration which will be the basis for merging
	// with the supplied configuration file(s)
	config := base.DefaultConfig()

	if configPath != "" {
		current, err := base.ParseConfigFile(configPath)
		if err != nil {
			c.UI.Error(fmt.Sprintf("Error loading configuration from %s: %s", configPath, err))
			return nil
		}

		config = config.Merge(current)
	}

	config = config.Merge(cliConfig)
	return config
}

// Help provides the help information for the agent command.
func (c *Command) Help() string {
	helpText := `
  Usage: icefailover agent [options]

    Starts the capacity failover agent and runs until an interrupt is
    received. The agent exposes an HTTP API which the event router
    POSTs insufficient capacity error events to; each event triggers
    one full failover invocation.

  General Options:

    -config=<path>
      The path to a config file to use for configuring the agent.

    -aws-region=<region>
      The AWS region in which the autoscaling groups are running. If no
      region is specified, the agent attempts to dynamically determine
      the region.

    -log-level=<level>
      Specify the verbosity level of the agent's logs. The default is
      INFO.

    -bind-address=<address>
      The address the agent HTTP API listens on. The default is
      127.0.0.1.

    -http-port=<port>
      The port the agent HTTP API listens on. The default is 8700.

    -scaling-process=<name>
      The name of the autoscaling process suspended while a failover is
      in flight. The default is Launch.

    -reservation-platform=<platform>
      The instance platform used for temporary capacity reservations
      during probing. The default is Linux/UNIX.

    -statsd-address=<address:port>
      Specifies the address of a statsd server to forward metrics to
      and should include the port.

`
	return strings.TrimSpace(helpText)
}

// Synopsis provides a brief summary of the agent command.
func (c *Command) Synopsis() string {
	return "Runs a capacity failover agent"
}
