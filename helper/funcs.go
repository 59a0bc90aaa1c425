package helper

import (
	"github.com/mark-bixler/aws-warm-pool-mixed-instance-types/failover/structs"
	"github.com/mitchellh/hashstructure"
)

// EventFingerprint computes a stable hash over an inbound event so that
// duplicate deliveries of the same insufficient capacity error can be
// spotted in the logs across invocations.
func EventFingerprint(event *structs.IceEvent) (uint64, error) {
	return hashstructure.Hash(event, nil)
}

// ContainsString reports whether list contains the exact string s.
func ContainsString(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
