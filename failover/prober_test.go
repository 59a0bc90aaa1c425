package failover

import (
	"fmt"
	"testing"

	"github.com/mark-bixler/aws-warm-pool-mixed-instance-types/testutil"
)

func TestProber_FirstAvailableCandidateWins(t *testing.T) {
	fleet := testutil.NewFakeFleet()
	fleet.ReserveErrs["m5.large"] = fmt.Errorf("insufficient capacity")

	prober := NewCapacityProber(fleet)
	result := prober.Probe([]string{"m5.large", "m5.xlarge", "m4.large"}, "us-east-1a")

	if !result.Found {
		t.Fatal("expected the probe to find capacity")
	}
	if result.InstanceType != "m5.xlarge" {
		t.Fatalf("expected m5.xlarge to be found, got %v", result.InstanceType)
	}

	// Probing short-circuits on the first confirmed candidate; m4.large
	// must never be tried.
	if len(fleet.ReserveAttempts) != 2 {
		t.Fatalf("expected 2 reservation attempts, got %v", fleet.ReserveAttempts)
	}
	if fleet.ReserveAttempts[1] != "m5.xlarge" {
		t.Fatalf("expected the second attempt to be m5.xlarge, got %v",
			fleet.ReserveAttempts[1])
	}
}

func TestProber_ReservationIsReleased(t *testing.T) {
	fleet := testutil.NewFakeFleet()

	prober := NewCapacityProber(fleet)
	result := prober.Probe([]string{"m5.large"}, "us-east-1a")

	if !result.Found {
		t.Fatal("expected the probe to find capacity")
	}
	if len(fleet.CancelAttempts) != 1 || fleet.CancelAttempts[0] != "cr-m5.large" {
		t.Fatalf("expected the temporary reservation to be released, got %v",
			fleet.CancelAttempts)
	}
}

func TestProber_AllCandidatesExhausted(t *testing.T) {
	fleet := testutil.NewFakeFleet()
	fleet.ReserveErrs["m5.large"] = fmt.Errorf("insufficient capacity")
	fleet.ReserveErrs["m5.xlarge"] = fmt.Errorf("insufficient capacity")

	prober := NewCapacityProber(fleet)
	result := prober.Probe([]string{"m5.large", "m5.xlarge"}, "us-east-1a")

	if result.Found {
		t.Fatalf("expected the probe to find nothing, got %v", result.InstanceType)
	}
	if len(fleet.ReserveAttempts) != 2 {
		t.Fatalf("expected every candidate to be tried, got %v", fleet.ReserveAttempts)
	}
}

func TestProber_ReleaseFailureIsNotSuccess(t *testing.T) {
	fleet := testutil.NewFakeFleet()
	fleet.CancelErrs["cr-m5.large"] = fmt.Errorf("request timed out")

	prober := NewCapacityProber(fleet)
	result := prober.Probe([]string{"m5.large", "m5.xlarge"}, "us-east-1a")

	if result.Found {
		t.Fatal("a candidate whose reservation could not be released must not be reported available")
	}

	// The probe halts rather than advancing while a reservation may be
	// dangling.
	if len(fleet.ReserveAttempts) != 1 {
		t.Fatalf("expected probing to halt after the release failure, got %v",
			fleet.ReserveAttempts)
	}
}

func TestProber_EmptyCandidateList(t *testing.T) {
	fleet := testutil.NewFakeFleet()

	prober := NewCapacityProber(fleet)
	if result := prober.Probe(nil, "us-east-1a"); result.Found {
		t.Fatal("expected an empty candidate list to find nothing")
	}
	if len(fleet.ReserveAttempts) != 0 {
		t.Fatalf("expected no reservation attempts, got %v", fleet.ReserveAttempts)
	}
}
