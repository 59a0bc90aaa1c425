package command

import (
	"flag"

	"github.com/mitchellh/cli"
)

// FlagSetFlags is an enum to define what flags are present in the
// default FlagSet returned by Meta.FlagSet.
type FlagSetFlags uint

const (
	// FlagSetNone omits the common flags.
	FlagSetNone FlagSetFlags = 0

	// FlagSetClient includes the flags shared by commands that talk to a
	// running agent.
	FlagSetClient FlagSetFlags = 1 << iota

	// FlagSetDefault is the default set of flags.
	FlagSetDefault = FlagSetClient
)

// Meta contains the meta-options and functionality that nearly every
// command inherits.
type Meta struct {
	UI cli.Ui

	// FlagAddress is the address of the running agent, populated when
	// the client flag set is requested.
	FlagAddress string
}

// FlagSet returns a FlagSet with the common flags that every command
// implements.
func (m *Meta) FlagSet(n string, fs FlagSetFlags) *flag.FlagSet {
	f := flag.NewFlagSet(n, flag.ContinueOnError)

	if fs&FlagSetClient != 0 {
		f.StringVar(&m.FlagAddress, "address", "", "")
	}

	return f
}
