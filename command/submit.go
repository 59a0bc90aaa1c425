package command

import (
	"fmt"
	"strings"

	"github.com/mark-bixler/aws-warm-pool-mixed-instance-types/api"
)

// SubmitCommand is a command implementation that posts an event
// document to a running agent.
type SubmitCommand struct {
	Meta
	args []string
}

// Run submits the event document to the agent API.
func (c *SubmitCommand) Run(args []string) int {

	c.args = args

	var eventPath string

	flags := c.Meta.FlagSet("submit", FlagSetClient)
	flags.Usage = func() { c.UI.Error(c.Help()) }
	flags.StringVar(&eventPath, "event", "", "")

	if err := flags.Parse(c.args); err != nil {
		return 1
	}

	if eventPath == "" {
		c.UI.Error("an event document must be supplied with -event")
		return 1
	}

	event, err := readEvent(eventPath)
	if err != nil {
		c.UI.Error(fmt.Sprintf("Error reading event from %s: %s", eventPath, err))
		return 1
	}

	client, err := api.NewClient(&api.Config{Address: c.Meta.FlagAddress})
	if err != nil {
		c.UI.Error(err.Error())
		return 1
	}

	response, err := client.SubmitEvent(event)
	if err != nil {
		c.UI.Error(fmt.Sprintf("Error submitting event: %s", err))
		return 1
	}

	c.UI.Output(fmt.Sprintf("%v: %s", response.Status, response.Message))
	return 0
}

// Help provides the help information for the submit command.
func (c *SubmitCommand) Help() string {
	helpText := `
Usage: icefailover submit [options]

  Posts an insufficient capacity error event document to a running
  agent, which processes it as one failover invocation.

  General Options:

    -event=<path>
      The path to the JSON event document to submit. Required.

    -address=<url>
      The address of the running agent. The default is
      http://127.0.0.1:8700.

`
	return strings.TrimSpace(helpText)
}

// Synopsis provides a brief summary of the submit command.
func (c *SubmitCommand) Synopsis() string {
	return "Submits an event to a running agent"
}
