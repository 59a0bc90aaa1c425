package testutil

import (
	"github.com/mark-bixler/aws-warm-pool-mixed-instance-types/failover/structs"
)

// MakeIceEvent builds a well-formed insufficient capacity error event
// for the given group identity, zone and candidate list.
func MakeIceEvent(group, environment, zone string, candidates []string) *structs.IceEvent {
	return &structs.IceEvent{
		OriginalEvent: structs.OriginalEvent{
			Account: "123456789012",
			Region:  "us-east-1",
			Detail: structs.EventDetail{
				RequestParameters: structs.RequestParameters{
					AvailabilityZone: zone,
					LaunchTemplate: structs.LaunchTemplateRef{
						LaunchTemplateID: "lt-0123456789abcdef0",
						Version:          "3",
					},
					TagSpecificationSet: structs.TagSpecificationSet{
						Items: []structs.TagSpecification{
							{
								Tags: []structs.Tag{
									{Key: "Name", Value: group},
									{Key: structs.TagGroupName, Value: group},
									{Key: structs.TagEnvironment, Value: environment},
								},
							},
						},
					},
				},
			},
		},
		MixedTypes:   candidates,
		SlackChannel: "#capacity-alerts",
	}
}
