package failover

import (
	"time"

	metrics "github.com/armon/go-metrics"
	"github.com/mark-bixler/aws-warm-pool-mixed-instance-types/failover/structs"
	"github.com/mark-bixler/aws-warm-pool-mixed-instance-types/logging"
)

// CapacityProber determines the first instance type in a candidate list
// with available capacity in a zone. Capacity is tested by creating a
// minimal temporary capacity reservation and immediately releasing it;
// a type is only reported available when both the reserve and the
// release succeed.
type CapacityProber struct {
	fleet structs.ComputeFleet
}

// NewCapacityProber sets up a capacity prober backed by the given
// compute fleet client.
func NewCapacityProber(fleet structs.ComputeFleet) *CapacityProber {
	return &CapacityProber{fleet: fleet}
}

// Probe iterates the candidate types in priority order and returns the
// first with confirmed capacity in the zone. Reservation failures are
// the expected outer case and advance probing to the next candidate. A
// reservation that was created but could not be released halts probing:
// a dangling reservation must never be masked by a success result or by
// stacking further reservations behind it.
func (p *CapacityProber) Probe(candidates []string, zone string) structs.CapacityProbeResult {
	defer metrics.MeasureSince([]string{"failover", "probe"}, time.Now())

	for _, candidate := range candidates {
		reservationID, err := p.fleet.CreateCapacityReservation(candidate, zone)
		if err != nil {
			logging.Info("core/prober: no capacity for instance type %v in zone "+
				"%v, trying the next candidate: %v", candidate, zone, err)
			metrics.IncrCounter([]string{"failover", "probe", "unavailable"}, 1)
			continue
		}

		if err := p.fleet.CancelCapacityReservation(reservationID); err != nil {
			logging.Error("core/prober: failed to release temporary capacity "+
				"reservation %v for instance type %v in zone %v, halting the "+
				"probe; the reservation may require manual cleanup: %v",
				reservationID, candidate, zone, err)
			metrics.IncrCounter([]string{"failover", "probe", "release_failed"}, 1)
			return structs.CapacityProbeResult{}
		}

		logging.Info("core/prober: confirmed capacity for instance type %v in "+
			"zone %v", candidate, zone)
		return structs.CapacityProbeResult{Found: true, InstanceType: candidate}
	}

	logging.Info("core/prober: exhausted all %v candidate instance types for "+
		"zone %v without finding capacity", len(candidates), zone)
	return structs.CapacityProbeResult{}
}
