package failover

import (
	"fmt"
	"testing"

	"github.com/mark-bixler/aws-warm-pool-mixed-instance-types/failover/structs"
	"github.com/mark-bixler/aws-warm-pool-mixed-instance-types/testutil"
)

var testTemplateRef = structs.LaunchTemplateRef{
	LaunchTemplateID: "lt-0123456789abcdef0",
	Version:          "3",
}

func TestExecutor_ApplyFailover(t *testing.T) {
	fleet := testutil.NewFakeFleet()
	fleet.WarmPool = []structs.WarmPoolInstance{
		{InstanceID: "i-01", LifecycleState: structs.LifecycleWarmedStopped},
		{InstanceID: "i-02", LifecycleState: "Warmed:Running"},
		{InstanceID: "i-03", LifecycleState: structs.LifecycleWarmedStopped},
	}

	executor := NewFailoverExecutor(fleet)
	executor.ApplyFailover(testTemplateRef, "m5.xlarge", "g1")

	if len(fleet.CreatedVersions) != 1 || fleet.CreatedVersions[0] != "m5.xlarge" {
		t.Fatalf("expected one new template version for m5.xlarge, got %v",
			fleet.CreatedVersions)
	}
	if fleet.DefaultSets != 1 {
		t.Fatalf("expected the default version to move exactly once, got %v",
			fleet.DefaultSets)
	}

	// Only the stopped instances may be re-typed; the running instance
	// must be untouched.
	if len(fleet.Modified) != 2 {
		t.Fatalf("expected 2 warm pool instances to be modified, got %v",
			fleet.Modified)
	}
	for _, id := range []string{"i-01", "i-03"} {
		if fleet.Modified[id] != "m5.xlarge" {
			t.Fatalf("expected instance %v to be modified to m5.xlarge, got %v",
				id, fleet.Modified[id])
		}
	}
	if _, ok := fleet.Modified["i-02"]; ok {
		t.Fatal("the running warm pool instance must not be modified")
	}
}

func TestExecutor_VersionCreateFailureLeavesDefault(t *testing.T) {
	fleet := testutil.NewFakeFleet()
	fleet.CreateVerErr = fmt.Errorf("template quota exceeded")

	executor := NewFailoverExecutor(fleet)
	executor.ApplyFailover(testTemplateRef, "m5.xlarge", "g1")

	if fleet.DefaultSets != 0 {
		t.Fatal("the default version must not move when version creation failed")
	}
}

func TestExecutor_DefaultSetFailureKeepsVersion(t *testing.T) {
	fleet := testutil.NewFakeFleet()
	fleet.SetDefaultErr = fmt.Errorf("request timed out")
	fleet.WarmPool = []structs.WarmPoolInstance{
		{InstanceID: "i-01", LifecycleState: structs.LifecycleWarmedStopped},
	}

	executor := NewFailoverExecutor(fleet)
	executor.ApplyFailover(testTemplateRef, "m5.xlarge", "g1")

	// The new version stays in place for operators to promote by hand,
	// and warm pool propagation still runs.
	if len(fleet.CreatedVersions) != 1 {
		t.Fatalf("expected the new version to be kept, got %v", fleet.CreatedVersions)
	}
	if fleet.Modified["i-01"] != "m5.xlarge" {
		t.Fatal("warm pool propagation must proceed after a default version failure")
	}
}

func TestExecutor_WarmPoolFailureIsolation(t *testing.T) {
	fleet := testutil.NewFakeFleet()
	fleet.WarmPool = []structs.WarmPoolInstance{
		{InstanceID: "i-01", LifecycleState: structs.LifecycleWarmedStopped},
		{InstanceID: "i-02", LifecycleState: structs.LifecycleWarmedStopped},
		{InstanceID: "i-03", LifecycleState: structs.LifecycleWarmedStopped},
	}
	fleet.ModifyErrs["i-02"] = fmt.Errorf("incorrect instance state")

	executor := NewFailoverExecutor(fleet)
	executor.ApplyFailover(testTemplateRef, "m5.xlarge", "g1")

	// One failing instance does not abort the remaining instances.
	if len(fleet.Modified) != 2 {
		t.Fatalf("expected the 2 healthy instances to be modified, got %v",
			fleet.Modified)
	}
	if _, ok := fleet.Modified["i-03"]; !ok {
		t.Fatal("the instance after the failing one must still be processed")
	}
}

func TestExecutor_WarmPoolListFailure(t *testing.T) {
	fleet := testutil.NewFakeFleet()
	fleet.DescribePoolErr = fmt.Errorf("throttled")

	executor := NewFailoverExecutor(fleet)
	executor.ApplyFailover(testTemplateRef, "m5.xlarge", "g1")

	if len(fleet.Modified) != 0 {
		t.Fatalf("expected no modifications when the pool cannot be listed, got %v",
			fleet.Modified)
	}
	if fleet.DefaultSets != 1 {
		t.Fatal("the template update must not be affected by a warm pool listing failure")
	}
}
