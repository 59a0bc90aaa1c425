package command

import (
	"fmt"

	"github.com/mitchellh/cli"
)

// VersionCommand is a Command implementation that prints the version.
type VersionCommand struct {
	Version           string
	VersionPrerelease string
	UI                cli.Ui
}

// Help provides the help information for the version command.
func (c *VersionCommand) Help() string {
	return ""
}

// Run prints the version number.
func (c *VersionCommand) Run(_ []string) int {
	version := c.Version
	if c.VersionPrerelease != "" {
		version = fmt.Sprintf("%s-%s", version, c.VersionPrerelease)
	}

	c.UI.Output(fmt.Sprintf("icefailover v%s", version))
	return 0
}

// Synopsis provides a brief summary of the version command.
func (c *VersionCommand) Synopsis() string {
	return "Prints the version"
}
