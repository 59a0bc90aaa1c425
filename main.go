package main

import (
	"fmt"
	"os"

	"github.com/mark-bixler/aws-warm-pool-mixed-instance-types/version"
	"github.com/mitchellh/cli"
)

func main() {
	os.Exit(Run(os.Args[1:]))
}

// Run sets up the CLI and dispatches to the requested command.
func Run(args []string) int {
	c := cli.NewCLI("icefailover", version.Get())
	c.Args = args
	c.Commands = Commands(nil)

	exitCode, err := c.Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error executing CLI: %s\n", err.Error())
		return 1
	}

	return exitCode
}
