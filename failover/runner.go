package failover

import (
	"fmt"
	"time"

	metrics "github.com/armon/go-metrics"
	"github.com/google/uuid"
	"github.com/mark-bixler/aws-warm-pool-mixed-instance-types/failover/structs"
	"github.com/mark-bixler/aws-warm-pool-mixed-instance-types/helper"
	"github.com/mark-bixler/aws-warm-pool-mixed-instance-types/logging"
	"github.com/mark-bixler/aws-warm-pool-mixed-instance-types/notifier"
)

// Alert reasons reported to operators at each step of an invocation.
const (
	reasonProbing   = "insufficient capacity detected, probing alternative instance types"
	reasonSwitched  = "capacity failover complete, group switched to a new instance type"
	reasonExhausted = "all candidate instance types exhausted, resuming with the original type"
)

// unknownType is reported in alerts when the original instance type
// could not be read from the launch template.
const unknownType = "unknown"

// Orchestrator runs one capacity failover invocation per inbound
// insufficient capacity error event. It holds no state between
// invocations; every invocation is independent and idempotent for a
// given event.
type Orchestrator struct {
	config   *structs.Config
	fleet    structs.ComputeFleet
	prober   *CapacityProber
	executor *FailoverExecutor
}

// NewOrchestrator sets up the orchestrator from the merged
// configuration.
func NewOrchestrator(config *structs.Config) (*Orchestrator, error) {
	if config.Fleet == nil {
		return nil, fmt.Errorf("core/runner: no compute fleet client is configured")
	}

	if config.Notification == nil {
		config.Notification = &structs.Notification{}
	}

	return &Orchestrator{
		config:   config,
		fleet:    config.Fleet,
		prober:   NewCapacityProber(config.Fleet),
		executor: NewFailoverExecutor(config.Fleet),
	}, nil
}

// HandleEvent runs the full failover sequence for one event: resolve
// identity, suspend launches, probe for an available type, apply or
// skip the failover, and resume launches. Once the launch process has
// been suspended it is resumed on every exit path; every failure past
// input validation is logged and absorbed rather than propagated.
func (o *Orchestrator) HandleEvent(event *structs.IceEvent) (*structs.Response, error) {
	defer metrics.MeasureSince([]string{"failover", "invocation"}, time.Now())

	tags := event.Tags()

	group, err := ResolveTag(tags, structs.TagGroupName)
	if err != nil {
		metrics.IncrCounter([]string{"failover", "invocation", "invalid"}, 1)
		return nil, fmt.Errorf("core/runner: unable to identify the autoscaling "+
			"group from the event tags: %v", err)
	}

	environment, err := ResolveTag(tags, structs.TagEnvironment)
	if err != nil {
		metrics.IncrCounter([]string{"failover", "invocation", "invalid"}, 1)
		return nil, fmt.Errorf("core/runner: unable to identify the environment "+
			"of group %v from the event tags: %v", group, err)
	}

	if fingerprint, err := helper.EventFingerprint(event); err == nil {
		logging.Info("core/runner: handling insufficient capacity event %016x "+
			"for group %v in zone %v", fingerprint, group, event.AvailabilityZone())
	}

	message := notifier.FailoverMessage{
		AlertUID:          uuid.New().String(),
		ClusterIdentifier: o.config.Notification.ClusterIdentifier,
		GroupName:         group,
		Environment:       environment,
		Account:           event.OriginalEvent.Account,
		Region:            event.OriginalEvent.Region,
		AvailabilityZone:  event.AvailabilityZone(),
		SlackChannel:      event.SlackChannel,
	}

	// The original type is read before launches are suspended so the
	// initial alert can name the type that failed. Failing to read it
	// only degrades the alert text.
	message.OriginalType = unknownType
	if originalType, err := o.fleet.DescribeLaunchTemplateVersion(event.LaunchTemplate()); err != nil {
		logging.Warning("core/runner: unable to read the original instance type "+
			"from launch template %v version %v: %v",
			event.LaunchTemplate().LaunchTemplateID,
			event.LaunchTemplate().Version, err)
	} else {
		message.OriginalType = originalType
	}

	// Suspending the launch process stops the control plane racing new
	// launch attempts against the in-flight type change. Probing itself
	// launches nothing, so a failed suspension is logged and the
	// invocation continues rather than aborting.
	if err := o.fleet.SuspendLaunch(group); err != nil {
		logging.Error("core/runner: unable to suspend the launch process on "+
			"group %v: %v", group, err)
		metrics.IncrCounter([]string{"failover", "invocation", "suspend_failed"}, 1)
	} else {
		logging.Info("core/runner: suspended the launch process on group %v", group)
	}

	defer func() {
		if err := o.fleet.ResumeLaunch(group); err != nil {
			logging.Error("core/runner: unable to resume the launch process on "+
				"group %v, operator intervention is required: %v", group, err)
			metrics.IncrCounter([]string{"failover", "invocation", "resume_failed"}, 1)
			return
		}
		logging.Info("core/runner: resumed the launch process on group %v", group)
	}()

	message.Reason = reasonProbing
	o.notify(message)

	result := o.prober.Probe(event.MixedTypes, event.AvailabilityZone())

	if !result.Found {
		metrics.IncrCounter([]string{"failover", "invocation", "exhausted"}, 1)
		message.Reason = reasonExhausted
		o.notify(message)

		return &structs.Response{
			Status: 200,
			Message: fmt.Sprintf("no alternative instance type available for "+
				"group %s in zone %s", group, event.AvailabilityZone()),
		}, nil
	}

	o.executor.ApplyFailover(event.LaunchTemplate(), result.InstanceType, group)

	metrics.IncrCounter([]string{"failover", "invocation", "switched"}, 1)
	message.Reason = reasonSwitched
	message.NewType = result.InstanceType
	o.notify(message)

	return &structs.Response{
		Status: 200,
		Message: fmt.Sprintf("group %s switched to instance type %s in zone %s",
			group, result.InstanceType, event.AvailabilityZone()),
	}, nil
}

// notify sends the message through every configured notification
// backend. Alerting is best-effort and never interrupts the state
// machine.
func (o *Orchestrator) notify(message notifier.FailoverMessage) {
	for _, n := range o.config.Notifiers {
		if err := n.SendNotification(message); err != nil {
			logging.Error("core/runner: unable to send a notification through "+
				"the %v backend for group %v: %v", n.Name(), message.GroupName, err)
		}
	}
}
