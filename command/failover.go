package command

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/mark-bixler/aws-warm-pool-mixed-instance-types/command/base"
	"github.com/mark-bixler/aws-warm-pool-mixed-instance-types/failover"
	"github.com/mark-bixler/aws-warm-pool-mixed-instance-types/failover/structs"
	"github.com/mark-bixler/aws-warm-pool-mixed-instance-types/logging"
)

// FailoverCommand is a command implementation that runs a single
// capacity failover invocation from an event document, without a
// running agent.
type FailoverCommand struct {
	Meta
	args []string
}

// Run reads an event document and drives one full orchestration against
// it.
func (c *FailoverCommand) Run(args []string) int {

	c.args = args

	var configPath, eventPath string

	cliConfig := &structs.Config{
		Failover:     &structs.Failover{},
		Telemetry:    &structs.Telemetry{},
		Notification: &structs.Notification{},
	}

	flags := c.Meta.FlagSet("failover", FlagSetNone)
	flags.Usage = func() { c.UI.Error(c.Help()) }

	flags.StringVar(&configPath, "config", "", "")
	flags.StringVar(&eventPath, "event", "", "")
	flags.StringVar(&cliConfig.Region, "aws-region", "", "")
	flags.StringVar(&cliConfig.LogLevel, "log-level", "", "")

	if err := flags.Parse(c.args); err != nil {
		return 1
	}

	if eventPath == "" {
		c.UI.Error("an event document must be supplied with -event")
		return 1
	}

	config := base.DefaultConfig()

	if configPath != "" {
		current, err := base.ParseConfigFile(configPath)
		if err != nil {
			c.UI.Error(fmt.Sprintf("Error loading configuration from %s: %s", configPath, err))
			return 1
		}
		config = config.Merge(current)
	}

	config = config.Merge(cliConfig)
	logging.SetLevel(config.LogLevel)

	event, err := readEvent(eventPath)
	if err != nil {
		c.UI.Error(fmt.Sprintf("Error reading event from %s: %s", eventPath, err))
		return 1
	}

	if err := base.InitializeClients(config); err != nil {
		c.UI.Error(err.Error())
		return 1
	}

	orchestrator, err := failover.NewOrchestrator(config)
	if err != nil {
		c.UI.Error(err.Error())
		return 1
	}

	response, err := orchestrator.HandleEvent(event)
	if err != nil {
		c.UI.Error(err.Error())
		return 1
	}

	c.UI.Output(fmt.Sprintf("%v: %s", response.Status, response.Message))
	return 0
}

// readEvent parses the event document at the given path.
func readEvent(path string) (*structs.IceEvent, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var event structs.IceEvent
	if err := json.Unmarshal(raw, &event); err != nil {
		return nil, err
	}

	return &event, nil
}

// Help provides the help information for the failover command.
func (c *FailoverCommand) Help() string {
	helpText := `
Usage: icefailover failover [options]

  Runs a single capacity failover invocation for the supplied
  insufficient capacity error event, without requiring a running
  agent. The launch process of the affected group is suspended, the
  candidate instance types are probed for capacity in the failing
  zone and, when one is available, the launch template and warm pool
  are redirected to it before launches are resumed.

  General Options:

    -event=<path>
      The path to the JSON event document to process. Required.

    -config=<path>
      The path to a config file to use for configuring the invocation.

    -aws-region=<region>
      The AWS region in which the autoscaling group is running. If no
      region is specified, the region is determined dynamically.

    -log-level=<level>
      Specify the verbosity level of the logs. The default is INFO.

`
	return strings.TrimSpace(helpText)
}

// Synopsis provides a brief summary of the failover command.
func (c *FailoverCommand) Synopsis() string {
	return "Runs a single capacity failover invocation"
}
