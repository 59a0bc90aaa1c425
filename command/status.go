package command

import (
	"fmt"
	"strings"

	"github.com/mark-bixler/aws-warm-pool-mixed-instance-types/api"
)

// StatusCommand is a command implementation that queries the status of
// a running agent.
type StatusCommand struct {
	Meta
	args []string
}

// Run queries the agent status endpoint and renders the result.
func (c *StatusCommand) Run(args []string) int {

	c.args = args

	flags := c.Meta.FlagSet("status", FlagSetClient)
	flags.Usage = func() { c.UI.Error(c.Help()) }

	if err := flags.Parse(c.args); err != nil {
		return 1
	}

	client, err := api.NewClient(&api.Config{Address: c.Meta.FlagAddress})
	if err != nil {
		c.UI.Error(err.Error())
		return 1
	}

	status, err := client.Status()
	if err != nil {
		c.UI.Error(fmt.Sprintf("Error querying agent status: %s", err))
		return 1
	}

	c.UI.Output(fmt.Sprintf("Version:   %s", status.Version))
	c.UI.Output(fmt.Sprintf("Uptime:    %s", status.Uptime))
	c.UI.Output(fmt.Sprintf("Provider:  %s", status.Provider))
	c.UI.Output(fmt.Sprintf("Notifiers: %s", strings.Join(status.Notifiers, ",")))
	return 0
}

// Help provides the help information for the status command.
func (c *StatusCommand) Help() string {
	helpText := `
Usage: icefailover status [options]

  Queries the status of a running agent.

  General Options:

    -address=<url>
      The address of the running agent. The default is
      http://127.0.0.1:8700.

`
	return strings.TrimSpace(helpText)
}

// Synopsis provides a brief summary of the status command.
func (c *StatusCommand) Synopsis() string {
	return "Queries the status of a running agent"
}
