package cloud

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/mark-bixler/aws-warm-pool-mixed-instance-types/cloud/aws"
	"github.com/mark-bixler/aws-warm-pool-mixed-instance-types/failover/structs"
	"github.com/mark-bixler/aws-warm-pool-mixed-instance-types/logging"
)

// BuiltinFleetProviders tracks the available compute fleet providers.
// The provider name is the name used in the application configuration.
var BuiltinFleetProviders = map[string]FleetProviderFactory{
	"aws": aws.NewFleetProvider,
}

// FleetProviderFactory is a factory method type for instantiating a new
// instance of a compute fleet provider.
type FleetProviderFactory func(config *structs.Config) (structs.ComputeFleet, error)

// NewFleetProvider is the entry point method for processing the fleet
// provider configuration, finding the correct factory method and
// setting up the compute fleet client.
func NewFleetProvider(config *structs.Config) (structs.ComputeFleet, error) {
	providerFactory, ok := BuiltinFleetProviders[config.Provider]
	if !ok {
		// Build a list of all supported fleet providers.
		providers := reflect.ValueOf(BuiltinFleetProviders).MapKeys()
		availableProviders := make([]string, len(providers))

		for i := 0; i < len(providers); i++ {
			availableProviders[i] = providers[i].String()
		}

		return nil, fmt.Errorf("unknown fleet provider %v, must be one of: %v",
			config.Provider, strings.Join(availableProviders, ","))
	}

	fleet, err := providerFactory(config)
	if err != nil {
		return nil, fmt.Errorf("an error occurred while setting up fleet "+
			"provider %v: %v", config.Provider, err)
	}

	logging.Debug("cloud/fleet_provider: initialized fleet provider %v in "+
		"region %v", config.Provider, config.Region)

	return fleet, nil
}
