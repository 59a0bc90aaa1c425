package command

import (
	"fmt"
	"os"
	"strings"
)

const (
	// DefaultConfigInitName is the default name we use when initializing
	// the example config file
	DefaultConfigInitName = "icefailover.hcl"

	// DefaultEventInitName is the default name we use when initializing
	// the example event document
	DefaultEventInitName = "example-event.json"
)

type InitCommand struct {
	Meta
}

// Help provides the help information for the init command.
func (c *InitCommand) Help() string {
	helpText := `
Usage: icefailover init

  Creates an example agent configuration file and an example
  insufficient capacity error event document that can be used as a
  starting point to customize further.
`
	return strings.TrimSpace(helpText)
}

// Synopsis provides a brief summary of the init command.
func (c *InitCommand) Synopsis() string {
	return "Create example configuration and event documents"
}

// Run triggers the init command to write the example files out to the
// current directory.
func (c *InitCommand) Run(args []string) int {

	// The command should be used with 0 extra flags.
	if len(args) != 0 {
		c.UI.Error(c.Help())
		return 1
	}

	files := map[string]string{
		DefaultConfigInitName: defaultConfigDocument,
		DefaultEventInitName:  defaultEventDocument,
	}

	for name, content := range files {
		// Check if the file already exists.
		_, err := os.Stat(name)
		if err != nil && !os.IsNotExist(err) {
			c.UI.Error(fmt.Sprintf("Failed to stat '%s': %v", name, err))
			return 1
		}
		if !os.IsNotExist(err) {
			c.UI.Error(fmt.Sprintf("File '%s' already exists", name))
			return 1
		}

		if err := os.WriteFile(name, []byte(content), 0660); err != nil {
			c.UI.Error(fmt.Sprintf("Failed to write '%s': %v", name, err))
			return 1
		}

		c.UI.Output(fmt.Sprintf("Example file written to %s", name))
	}

	return 0
}

var defaultConfigDocument = strings.TrimSpace(`
aws_region = "us-east-1"
log_level  = "INFO"

failover {
  scaling_process      = "Launch"
  reservation_platform = "Linux/UNIX"
}

telemetry {
  statsd_address = "127.0.0.1:8125"
}

notification {
  provider           = "sns"
  cluster_identifier = "my-cluster"
  lab_topic          = "lab-slack-alerts"
  production_topic   = "production-slack-alerts"
}
`) + "\n"

var defaultEventDocument = strings.TrimSpace(`
{
  "originalEvent": {
    "account": "123456789012",
    "region": "us-east-1",
    "detail": {
      "requestParameters": {
        "availabilityZone": "us-east-1a",
        "launchTemplate": {
          "launchTemplateId": "lt-0123456789abcdef0",
          "version": "3"
        },
        "tagSpecificationSet": {
          "items": [
            {
              "tags": [
                {"key": "aws:autoscaling:groupName", "value": "my-group"},
                {"key": "t_env", "value": "lab"}
              ]
            }
          ]
        }
      }
    }
  },
  "mixedTypes": ["m5.large", "m5.xlarge", "m4.large"],
  "slackChannel": "#capacity-alerts"
}
`) + "\n"
