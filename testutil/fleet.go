package testutil

import (
	"fmt"

	"github.com/mark-bixler/aws-warm-pool-mixed-instance-types/failover/structs"
)

// FakeFleet is an in-memory ComputeFleet implementation with scriptable
// failures and full call recording, shared by the core and agent tests.
type FakeFleet struct {
	// Scripted state and failures.
	OriginalType    string
	WarmPool        []structs.WarmPoolInstance
	SuspendErr      error
	ResumeErr       error
	DescribeRefErr  error
	CreateVerErr    error
	SetDefaultErr   error
	DescribePoolErr error
	ModifyErrs      map[string]error
	ReserveErrs     map[string]error
	CancelErrs      map[string]error

	// Recorded activity.
	SuspendCalls    int
	ResumeCalls     int
	ReserveAttempts []string
	CancelAttempts  []string
	CreatedVersions []string
	DefaultVersion  string
	DefaultSets     int
	Modified        map[string]string

	nextVersion int
}

// NewFakeFleet returns a fake fleet with empty scripted state.
func NewFakeFleet() *FakeFleet {
	return &FakeFleet{
		ModifyErrs:  make(map[string]error),
		ReserveErrs: make(map[string]error),
		CancelErrs:  make(map[string]error),
		Modified:    make(map[string]string),
		nextVersion: 10,
	}
}

func (f *FakeFleet) SuspendLaunch(group string) error {
	f.SuspendCalls++
	return f.SuspendErr
}

func (f *FakeFleet) ResumeLaunch(group string) error {
	f.ResumeCalls++
	return f.ResumeErr
}

func (f *FakeFleet) DescribeLaunchTemplateVersion(ref structs.LaunchTemplateRef) (string, error) {
	if f.DescribeRefErr != nil {
		return "", f.DescribeRefErr
	}
	return f.OriginalType, nil
}

func (f *FakeFleet) CreateLaunchTemplateVersion(ref structs.LaunchTemplateRef,
	instanceType string) (string, error) {

	if f.CreateVerErr != nil {
		return "", f.CreateVerErr
	}
	f.CreatedVersions = append(f.CreatedVersions, instanceType)
	f.nextVersion++
	return fmt.Sprintf("%d", f.nextVersion), nil
}

func (f *FakeFleet) SetDefaultLaunchTemplateVersion(templateID, version string) error {
	if f.SetDefaultErr != nil {
		return f.SetDefaultErr
	}
	f.DefaultVersion = version
	f.DefaultSets++
	return nil
}

func (f *FakeFleet) DescribeWarmPoolInstances(group string) ([]structs.WarmPoolInstance, error) {
	if f.DescribePoolErr != nil {
		return nil, f.DescribePoolErr
	}
	return f.WarmPool, nil
}

func (f *FakeFleet) ModifyInstanceType(instanceID, instanceType string) error {
	if err := f.ModifyErrs[instanceID]; err != nil {
		return err
	}
	f.Modified[instanceID] = instanceType
	return nil
}

// CreateCapacityReservation encodes the instance type into the
// reservation ID so CancelErrs can be scripted per type.
func (f *FakeFleet) CreateCapacityReservation(instanceType, zone string) (string, error) {
	f.ReserveAttempts = append(f.ReserveAttempts, instanceType)
	if err := f.ReserveErrs[instanceType]; err != nil {
		return "", err
	}
	return "cr-" + instanceType, nil
}

func (f *FakeFleet) CancelCapacityReservation(reservationID string) error {
	f.CancelAttempts = append(f.CancelAttempts, reservationID)
	if err := f.CancelErrs[reservationID]; err != nil {
		return err
	}
	return nil
}
