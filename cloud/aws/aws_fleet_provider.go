package aws

import (
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/autoscaling"
	"github.com/aws/aws-sdk-go/service/ec2"
	"github.com/mark-bixler/aws-warm-pool-mixed-instance-types/failover/structs"
	"github.com/mark-bixler/aws-warm-pool-mixed-instance-types/logging"
)

// Defaults applied when the failover configuration block leaves the
// control plane specifics unset.
const (
	DefaultScalingProcess      = "Launch"
	DefaultReservationPlatform = "Linux/UNIX"
)

// AwsFleetProvider implements the ComputeFleet interface against the
// AWS autoscaling and EC2 APIs. The provider is thin plumbing: one API
// call per method, no retries, errors returned raw so the orchestration
// layer can apply its own per-step policy.
type AwsFleetProvider struct {
	AsgService *autoscaling.AutoScaling
	Ec2Service *ec2.EC2

	scalingProcess      string
	reservationPlatform string
}

// NewFleetProvider is a factory function that generates a new instance
// of the AwsFleetProvider.
func NewFleetProvider(config *structs.Config) (structs.ComputeFleet, error) {
	if config.Region == "" {
		return nil, fmt.Errorf("aws_region is required for the aws fleet provider")
	}

	provider := &AwsFleetProvider{
		AsgService:          newAwsAsgService(config.Region),
		Ec2Service:          newAwsEc2Service(config.Region),
		scalingProcess:      DefaultScalingProcess,
		reservationPlatform: DefaultReservationPlatform,
	}

	if config.Failover != nil {
		if config.Failover.ScalingProcess != "" {
			provider.scalingProcess = config.Failover.ScalingProcess
		}
		if config.Failover.ReservationPlatform != "" {
			provider.reservationPlatform = config.Failover.ReservationPlatform
		}
	}

	return provider, nil
}

// SuspendLaunch suspends the launch scaling process on the named group.
func (p *AwsFleetProvider) SuspendLaunch(group string) error {
	params := &autoscaling.ScalingProcessQuery{
		AutoScalingGroupName: aws.String(group),
		ScalingProcesses:     []*string{aws.String(p.scalingProcess)},
	}

	_, err := p.AsgService.SuspendProcesses(params)
	return err
}

// ResumeLaunch resumes the launch scaling process on the named group.
func (p *AwsFleetProvider) ResumeLaunch(group string) error {
	params := &autoscaling.ScalingProcessQuery{
		AutoScalingGroupName: aws.String(group),
		ScalingProcesses:     []*string{aws.String(p.scalingProcess)},
	}

	_, err := p.AsgService.ResumeProcesses(params)
	return err
}

// DescribeLaunchTemplateVersion returns the instance type configured on
// the referenced launch template version.
func (p *AwsFleetProvider) DescribeLaunchTemplateVersion(ref structs.LaunchTemplateRef) (string, error) {
	params := &ec2.DescribeLaunchTemplateVersionsInput{
		LaunchTemplateId: aws.String(ref.LaunchTemplateID),
		Versions:         []*string{aws.String(ref.Version)},
	}

	resp, err := p.Ec2Service.DescribeLaunchTemplateVersions(params)
	if err != nil {
		return "", err
	}

	if len(resp.LaunchTemplateVersions) == 0 ||
		resp.LaunchTemplateVersions[0].LaunchTemplateData == nil {
		return "", fmt.Errorf("launch template %v version %v was not found",
			ref.LaunchTemplateID, ref.Version)
	}

	return aws.StringValue(
		resp.LaunchTemplateVersions[0].LaunchTemplateData.InstanceType), nil
}

// CreateLaunchTemplateVersion creates a new launch template version
// sourced from the referenced version with the instance type as its
// only override. All other launch parameters are inherited from the
// source version.
func (p *AwsFleetProvider) CreateLaunchTemplateVersion(ref structs.LaunchTemplateRef,
	instanceType string) (string, error) {

	params := &ec2.CreateLaunchTemplateVersionInput{
		LaunchTemplateId: aws.String(ref.LaunchTemplateID),
		SourceVersion:    aws.String(ref.Version),
		VersionDescription: aws.String(fmt.Sprintf(
			"capacity failover to %s", instanceType)),
		LaunchTemplateData: &ec2.RequestLaunchTemplateData{
			InstanceType: aws.String(instanceType),
		},
	}

	resp, err := p.Ec2Service.CreateLaunchTemplateVersion(params)
	if err != nil {
		return "", err
	}

	if resp.LaunchTemplateVersion == nil || resp.LaunchTemplateVersion.VersionNumber == nil {
		return "", fmt.Errorf("launch template %v version creation returned no "+
			"version number", ref.LaunchTemplateID)
	}

	return fmt.Sprintf("%d", aws.Int64Value(resp.LaunchTemplateVersion.VersionNumber)), nil
}

// SetDefaultLaunchTemplateVersion repoints the template's default
// version.
func (p *AwsFleetProvider) SetDefaultLaunchTemplateVersion(templateID, version string) error {
	params := &ec2.ModifyLaunchTemplateInput{
		LaunchTemplateId: aws.String(templateID),
		DefaultVersion:   aws.String(version),
	}

	_, err := p.Ec2Service.ModifyLaunchTemplate(params)
	return err
}

// DescribeWarmPoolInstances lists the warm pool instances of the named
// group, following pagination until the pool is fully enumerated.
func (p *AwsFleetProvider) DescribeWarmPoolInstances(group string) ([]structs.WarmPoolInstance, error) {
	var instances []structs.WarmPoolInstance
	var token *string

	for {
		params := &autoscaling.DescribeWarmPoolInput{
			AutoScalingGroupName: aws.String(group),
			NextToken:            token,
		}

		resp, err := p.AsgService.DescribeWarmPool(params)
		if err != nil {
			return nil, err
		}

		for _, instance := range resp.Instances {
			instances = append(instances, structs.WarmPoolInstance{
				InstanceID:     aws.StringValue(instance.InstanceId),
				LifecycleState: aws.StringValue(instance.LifecycleState),
			})
		}

		if resp.NextToken == nil {
			break
		}
		token = resp.NextToken
	}

	logging.Debug("cloud/aws: group %v has %v warm pool instances", group,
		len(instances))

	return instances, nil
}

// ModifyInstanceType changes the instance type attribute of a stopped
// instance.
func (p *AwsFleetProvider) ModifyInstanceType(instanceID, instanceType string) error {
	params := &ec2.ModifyInstanceAttributeInput{
		InstanceId: aws.String(instanceID),
		InstanceType: &ec2.AttributeValue{
			Value: aws.String(instanceType),
		},
	}

	_, err := p.Ec2Service.ModifyInstanceAttribute(params)
	return err
}

// CreateCapacityReservation creates a minimal open capacity reservation
// for the type in the zone. Callers are expected to cancel the
// reservation immediately; it exists only to test that the zone can
// satisfy a launch of this type.
func (p *AwsFleetProvider) CreateCapacityReservation(instanceType, zone string) (string, error) {
	params := &ec2.CreateCapacityReservationInput{
		InstanceType:     aws.String(instanceType),
		InstancePlatform: aws.String(p.reservationPlatform),
		AvailabilityZone: aws.String(zone),
		InstanceCount:    aws.Int64(1),
		EndDateType:      aws.String(ec2.EndDateTypeUnlimited),
	}

	resp, err := p.Ec2Service.CreateCapacityReservation(params)
	if err != nil {
		return "", err
	}

	if resp.CapacityReservation == nil || resp.CapacityReservation.CapacityReservationId == nil {
		return "", fmt.Errorf("capacity reservation creation for %v in %v "+
			"returned no reservation id", instanceType, zone)
	}

	return aws.StringValue(resp.CapacityReservation.CapacityReservationId), nil
}

// CancelCapacityReservation releases a capacity reservation.
func (p *AwsFleetProvider) CancelCapacityReservation(reservationID string) error {
	params := &ec2.CancelCapacityReservationInput{
		CapacityReservationId: aws.String(reservationID),
	}

	_, err := p.Ec2Service.CancelCapacityReservation(params)
	return err
}
