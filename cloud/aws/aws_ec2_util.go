package aws

import (
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/ec2metadata"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/autoscaling"
	"github.com/aws/aws-sdk-go/service/ec2"
)

// newAwsAsgService returns a session object for the AWS autoscaling
// service.
func newAwsAsgService(region string) *autoscaling.AutoScaling {
	sess := session.Must(session.NewSession())
	return autoscaling.New(sess, &aws.Config{Region: aws.String(region)})
}

// newAwsEc2Service returns a session object for the AWS EC2 service.
func newAwsEc2Service(region string) *ec2.EC2 {
	sess := session.Must(session.NewSession())
	return ec2.New(sess, &aws.Config{Region: aws.String(region)})
}

// DescribeRegion queries the instance metadata endpoint to discover the
// AWS region the process is running in. Used when the configuration
// does not name a region explicitly.
func DescribeRegion() (string, error) {
	sess := session.Must(session.NewSession())
	svc := ec2metadata.New(sess)

	doc, err := svc.GetInstanceIdentityDocument()
	if err != nil {
		return "", err
	}

	return doc.Region, nil
}
