package failover

import (
	"time"

	metrics "github.com/armon/go-metrics"
	multierror "github.com/hashicorp/go-multierror"
	"github.com/mark-bixler/aws-warm-pool-mixed-instance-types/failover/structs"
	"github.com/mark-bixler/aws-warm-pool-mixed-instance-types/logging"
)

// FailoverExecutor redirects an autoscaling group to a new instance
// type: future launches through a new default launch template version,
// and the pre-provisioned standby capacity through the warm pool. The
// two sub-steps are independent and neither rolls the other back;
// failures are logged and never propagated to the orchestrator.
type FailoverExecutor struct {
	fleet structs.ComputeFleet
}

// NewFailoverExecutor sets up a failover executor backed by the given
// compute fleet client.
func NewFailoverExecutor(fleet structs.ComputeFleet) *FailoverExecutor {
	return &FailoverExecutor{fleet: fleet}
}

// ApplyFailover updates the launch template and then propagates the new
// type across the group's warm pool.
func (e *FailoverExecutor) ApplyFailover(ref structs.LaunchTemplateRef,
	newType, group string) {

	defer metrics.MeasureSince([]string{"failover", "apply"}, time.Now())

	e.updateLaunchTemplate(ref, newType, group)
	e.propagateWarmPool(group, newType)
}

// updateLaunchTemplate creates a new launch template version whose only
// override is the instance type and repoints the template default to
// it. The default is only moved once the new version exists; if the
// default move fails the new version is left in place for operators to
// promote by hand.
func (e *FailoverExecutor) updateLaunchTemplate(ref structs.LaunchTemplateRef,
	newType, group string) {

	newVersion, err := e.fleet.CreateLaunchTemplateVersion(ref, newType)
	if err != nil {
		logging.Error("core/executor: unable to create a new version of launch "+
			"template %v for group %v with instance type %v: %v",
			ref.LaunchTemplateID, group, newType, err)
		metrics.IncrCounter([]string{"failover", "template", "create_failed"}, 1)
		return
	}

	logging.Info("core/executor: created version %v of launch template %v "+
		"with instance type %v", newVersion, ref.LaunchTemplateID, newType)

	if err := e.fleet.SetDefaultLaunchTemplateVersion(ref.LaunchTemplateID,
		newVersion); err != nil {
		logging.Error("core/executor: created version %v of launch template %v "+
			"but failed to make it the default version: %v", newVersion,
			ref.LaunchTemplateID, err)
		metrics.IncrCounter([]string{"failover", "template", "default_failed"}, 1)
		return
	}

	logging.Info("core/executor: launch template %v default version is now %v",
		ref.LaunchTemplateID, newVersion)
}

// propagateWarmPool re-types every warm pool instance of the group that
// is in the Warmed:Stopped lifecycle state. Each instance is handled
// independently; one failure does not stop the remaining instances from
// being processed.
func (e *FailoverExecutor) propagateWarmPool(group, newType string) {

	instances, err := e.fleet.DescribeWarmPoolInstances(group)
	if err != nil {
		logging.Error("core/executor: unable to list warm pool instances for "+
			"group %v: %v", group, err)
		return
	}

	var mErr *multierror.Error
	modified := 0

	for _, instance := range instances {
		if !instance.Mutable() {
			logging.Debug("core/executor: skipping warm pool instance %v in "+
				"lifecycle state %v", instance.InstanceID, instance.LifecycleState)
			continue
		}

		if err := e.fleet.ModifyInstanceType(instance.InstanceID, newType); err != nil {
			mErr = multierror.Append(mErr, err)
			metrics.IncrCounter([]string{"failover", "warmpool", "modify_failed"}, 1)
			continue
		}
		modified++
	}

	if mErr != nil {
		logging.Error("core/executor: failed to modify %v of the warm pool "+
			"instances of group %v to instance type %v: %v",
			len(mErr.Errors), group, newType, mErr)
	}

	logging.Info("core/executor: modified %v warm pool instances of group %v "+
		"to instance type %v", modified, group, newType)
}
