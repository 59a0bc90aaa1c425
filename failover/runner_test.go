package failover

import (
	"fmt"
	"strings"
	"testing"

	"github.com/mark-bixler/aws-warm-pool-mixed-instance-types/failover/structs"
	"github.com/mark-bixler/aws-warm-pool-mixed-instance-types/notifier"
	"github.com/mark-bixler/aws-warm-pool-mixed-instance-types/testutil"
)

func makeOrchestrator(t *testing.T, fleet *testutil.FakeFleet) (*Orchestrator, *testutil.RecordingNotifier) {
	recorder := &testutil.RecordingNotifier{}

	config := &structs.Config{
		Fleet: fleet,
		Notification: &structs.Notification{
			ClusterIdentifier: "test-cluster",
		},
		Notifiers: []notifier.Notifier{recorder},
	}

	orchestrator, err := NewOrchestrator(config)
	if err != nil {
		t.Fatalf("expected NewOrchestrator error to be nil, got %v", err)
	}

	return orchestrator, recorder
}

func TestRunner_FailoverToAvailableType(t *testing.T) {
	fleet := testutil.NewFakeFleet()
	fleet.OriginalType = "m5.2xlarge"
	fleet.ReserveErrs["m5.large"] = fmt.Errorf("insufficient capacity")
	fleet.WarmPool = []structs.WarmPoolInstance{
		{InstanceID: "i-01", LifecycleState: structs.LifecycleWarmedStopped},
	}

	orchestrator, recorder := makeOrchestrator(t, fleet)
	event := testutil.MakeIceEvent("g1", "lab", "us-east-1a",
		[]string{"m5.large", "m5.xlarge"})

	response, err := orchestrator.HandleEvent(event)
	if err != nil {
		t.Fatalf("expected HandleEvent error to be nil, got %v", err)
	}

	if response.Status != 200 {
		t.Fatalf("expected status 200, got %v", response.Status)
	}
	if !strings.Contains(response.Message, "m5.xlarge") {
		t.Fatalf("expected the response to name the new type, got %q", response.Message)
	}

	if fleet.SuspendCalls != 1 {
		t.Fatalf("expected the launch process to be suspended once, got %v",
			fleet.SuspendCalls)
	}
	if fleet.ResumeCalls != 1 {
		t.Fatalf("expected the launch process to be resumed once, got %v",
			fleet.ResumeCalls)
	}
	if fleet.DefaultSets != 1 {
		t.Fatalf("expected the template default to change exactly once, got %v",
			fleet.DefaultSets)
	}
	if fleet.Modified["i-01"] != "m5.xlarge" {
		t.Fatal("expected the warm pool instance to be re-typed")
	}

	if len(recorder.Messages) != 2 {
		t.Fatalf("expected an initial and a switched alert, got %v",
			len(recorder.Messages))
	}
	initial := recorder.Messages[0]
	if initial.OriginalType != "m5.2xlarge" || initial.AvailabilityZone != "us-east-1a" {
		t.Fatalf("expected the initial alert to carry the original type and zone, got %+v",
			initial)
	}
	switched := recorder.Messages[1]
	if switched.NewType != "m5.xlarge" {
		t.Fatalf("expected the switched alert to name m5.xlarge, got %+v", switched)
	}
	if switched.GroupName != "g1" || switched.Environment != "lab" {
		t.Fatalf("expected the alert to carry the group identity, got %+v", switched)
	}
	if switched.AlertUID == "" || switched.AlertUID != initial.AlertUID {
		t.Fatal("expected both alerts to share one non-empty alert UID")
	}
}

func TestRunner_AllCandidatesExhausted(t *testing.T) {
	fleet := testutil.NewFakeFleet()
	fleet.OriginalType = "m5.2xlarge"
	fleet.ReserveErrs["m5.large"] = fmt.Errorf("insufficient capacity")
	fleet.ReserveErrs["m5.xlarge"] = fmt.Errorf("insufficient capacity")

	orchestrator, recorder := makeOrchestrator(t, fleet)
	event := testutil.MakeIceEvent("g1", "lab", "us-east-1a",
		[]string{"m5.large", "m5.xlarge"})

	response, err := orchestrator.HandleEvent(event)
	if err != nil {
		t.Fatalf("expected HandleEvent error to be nil, got %v", err)
	}
	if response.Status != 200 {
		t.Fatalf("expected status 200 even with no capacity found, got %v",
			response.Status)
	}

	if fleet.SuspendCalls != 1 || fleet.ResumeCalls != 1 {
		t.Fatalf("expected one suspend and one resume, got %v/%v",
			fleet.SuspendCalls, fleet.ResumeCalls)
	}

	// The template and warm pool stay untouched.
	if len(fleet.CreatedVersions) != 0 || fleet.DefaultSets != 0 {
		t.Fatal("expected the launch template to be left unchanged")
	}
	if len(fleet.Modified) != 0 {
		t.Fatal("expected the warm pool to be left unchanged")
	}

	if len(recorder.Messages) != 2 {
		t.Fatalf("expected an initial and an exhausted alert, got %v",
			len(recorder.Messages))
	}
	if !strings.Contains(recorder.Messages[1].Reason, "exhausted") {
		t.Fatalf("expected an exhausted alert, got %q", recorder.Messages[1].Reason)
	}
}

func TestRunner_MissingTagAbortsBeforeSuspension(t *testing.T) {
	fleet := testutil.NewFakeFleet()

	orchestrator, recorder := makeOrchestrator(t, fleet)
	event := testutil.MakeIceEvent("g1", "lab", "us-east-1a", []string{"m5.large"})
	event.OriginalEvent.Detail.RequestParameters.TagSpecificationSet =
		structs.TagSpecificationSet{}

	if _, err := orchestrator.HandleEvent(event); err == nil {
		t.Fatal("expected a missing required tag to fail the invocation")
	}

	if fleet.SuspendCalls != 0 {
		t.Fatal("input errors must abort before the launch process is suspended")
	}
	if len(recorder.Messages) != 0 {
		t.Fatal("expected no alerts for an invocation that failed input validation")
	}
}

func TestRunner_ResumeDespiteUpdateFailures(t *testing.T) {
	fleet := testutil.NewFakeFleet()
	fleet.OriginalType = "m5.2xlarge"
	fleet.CreateVerErr = fmt.Errorf("template quota exceeded")
	fleet.DescribePoolErr = fmt.Errorf("throttled")

	orchestrator, _ := makeOrchestrator(t, fleet)
	event := testutil.MakeIceEvent("g1", "production", "us-east-1a",
		[]string{"m5.large"})

	response, err := orchestrator.HandleEvent(event)
	if err != nil {
		t.Fatalf("update failures must not fail the invocation, got %v", err)
	}
	if response.Status != 200 {
		t.Fatalf("expected status 200, got %v", response.Status)
	}
	if fleet.ResumeCalls != 1 {
		t.Fatal("the launch process must be resumed even when the update path failed")
	}
}

func TestRunner_SuspendFailureDoesNotAbort(t *testing.T) {
	fleet := testutil.NewFakeFleet()
	fleet.OriginalType = "m5.2xlarge"
	fleet.SuspendErr = fmt.Errorf("access denied")

	orchestrator, _ := makeOrchestrator(t, fleet)
	event := testutil.MakeIceEvent("g1", "lab", "us-east-1a", []string{"m5.large"})

	response, err := orchestrator.HandleEvent(event)
	if err != nil {
		t.Fatalf("a failed suspension must not fail the invocation, got %v", err)
	}
	if response.Status != 200 {
		t.Fatalf("expected status 200, got %v", response.Status)
	}
	if fleet.ResumeCalls != 1 {
		t.Fatal("resume is still attempted after a failed suspension")
	}
}

func TestRunner_NotificationFailureIsAbsorbed(t *testing.T) {
	fleet := testutil.NewFakeFleet()
	fleet.OriginalType = "m5.2xlarge"

	orchestrator, recorder := makeOrchestrator(t, fleet)
	recorder.Err = fmt.Errorf("webhook unreachable")

	event := testutil.MakeIceEvent("g1", "lab", "us-east-1a", []string{"m5.large"})

	response, err := orchestrator.HandleEvent(event)
	if err != nil {
		t.Fatalf("alerting failures must not fail the invocation, got %v", err)
	}
	if response.Status != 200 {
		t.Fatalf("expected status 200, got %v", response.Status)
	}
	if fleet.ResumeCalls != 1 {
		t.Fatal("the launch process must be resumed despite alerting failures")
	}
}

func TestRunner_OriginalTypeReadFailureDegradesAlert(t *testing.T) {
	fleet := testutil.NewFakeFleet()
	fleet.DescribeRefErr = fmt.Errorf("template not found")

	orchestrator, recorder := makeOrchestrator(t, fleet)
	event := testutil.MakeIceEvent("g1", "lab", "us-east-1a", []string{"m5.large"})

	if _, err := orchestrator.HandleEvent(event); err != nil {
		t.Fatalf("a failed original type read must not fail the invocation, got %v", err)
	}
	if recorder.Messages[0].OriginalType != "unknown" {
		t.Fatalf("expected the alert to report an unknown original type, got %q",
			recorder.Messages[0].OriginalType)
	}
}

func TestRunner_Idempotence(t *testing.T) {
	event := testutil.MakeIceEvent("g1", "lab", "us-east-1a",
		[]string{"m5.large"})

	var firstMessage string
	for i := 0; i < 2; i++ {
		fleet := testutil.NewFakeFleet()
		// Second run models a fleet already switched: the template
		// default already points at the candidate type.
		fleet.OriginalType = "m5.large"

		orchestrator, recorder := makeOrchestrator(t, fleet)
		response, err := orchestrator.HandleEvent(event)
		if err != nil {
			t.Fatalf("expected HandleEvent error to be nil on run %v, got %v", i, err)
		}

		if i == 0 {
			firstMessage = response.Message
			continue
		}

		// Re-running the identical event produces the same outcome: a
		// fresh no-op-equivalent version rather than an error.
		if response.Message != firstMessage {
			t.Fatalf("expected identical outcomes, got %q then %q",
				firstMessage, response.Message)
		}
		if len(recorder.Messages) != 2 {
			t.Fatalf("expected the same alert sequence on the re-run, got %v",
				len(recorder.Messages))
		}
	}
}
