package structs

// LifecycleWarmedStopped is the warm pool lifecycle state in which an
// instance is safe to re-type. Instances in any other state, running
// ones in particular, must not have their type modified.
const LifecycleWarmedStopped = "Warmed:Stopped"

// LaunchTemplateRef identifies a single launch template version.
// Versions are immutable once published; an update always creates a new
// version and then repoints the template's default version.
type LaunchTemplateRef struct {
	LaunchTemplateID string `json:"launchTemplateId"`
	Version          string `json:"version"`
}

// WarmPoolInstance is a pre-provisioned standby instance associated
// with an autoscaling group.
type WarmPoolInstance struct {
	InstanceID     string
	LifecycleState string
}

// Mutable reports whether the instance is in a state where its instance
// type may be changed.
func (i WarmPoolInstance) Mutable() bool {
	return i.LifecycleState == LifecycleWarmedStopped
}

// CapacityProbeResult is the binary outcome of a capacity probe. When
// Found is true, InstanceType names the first candidate with confirmed
// zonal capacity.
type CapacityProbeResult struct {
	Found        bool
	InstanceType string
}

// Response is the uniform acknowledgment returned to the triggering
// caller at the end of an invocation.
type Response struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

// ComputeFleet provides a standardized interface to the compute and
// scaling control plane. Implementations are expected to be thin
// plumbing with no retry or policy logic; the orchestration layer owns
// failure semantics.
type ComputeFleet interface {
	// SuspendLaunch suspends the launch scaling process on the named
	// group.
	SuspendLaunch(group string) error

	// ResumeLaunch resumes the launch scaling process on the named
	// group.
	ResumeLaunch(group string) error

	// DescribeLaunchTemplateVersion returns the instance type configured
	// on the referenced launch template version.
	DescribeLaunchTemplateVersion(ref LaunchTemplateRef) (string, error)

	// CreateLaunchTemplateVersion creates a new launch template version
	// sourced from the referenced version with the instance type as its
	// only override, returning the new version number.
	CreateLaunchTemplateVersion(ref LaunchTemplateRef, instanceType string) (string, error)

	// SetDefaultLaunchTemplateVersion repoints the template's default
	// version.
	SetDefaultLaunchTemplateVersion(templateID, version string) error

	// DescribeWarmPoolInstances lists the warm pool instances of the
	// named group.
	DescribeWarmPoolInstances(group string) ([]WarmPoolInstance, error)

	// ModifyInstanceType changes the instance type attribute of a
	// stopped instance.
	ModifyInstanceType(instanceID, instanceType string) error

	// CreateCapacityReservation creates a single-instance capacity
	// reservation for the type in the zone, returning the reservation
	// ID.
	CreateCapacityReservation(instanceType, zone string) (string, error)

	// CancelCapacityReservation releases a capacity reservation.
	CancelCapacityReservation(reservationID string) error
}
