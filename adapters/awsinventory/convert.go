package awsinventory

import (
	"myinventory/domain"
	"myinventory/helpers"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
)

// toInstanceRecord converts an EC2 instance. Missing or empty fields become absent.
func toInstanceRecord(in types.Instance) domain.InstanceRecord {
	out := domain.InstanceRecord{
		ID:       aws.ToString(in.InstanceId),
		Type:     helpers.NonEmptyPtr(string(in.InstanceType)),
		PublicIP: helpers.NonEmptyPtr(aws.ToString(in.PublicIpAddress)),
	}
	for _, tag := range in.Tags {
		if aws.ToString(tag.Key) == "Name" {
			out.Name = helpers.NonEmptyPtr(aws.ToString(tag.Value))
		}
	}
	if in.State != nil {
		out.State = helpers.NonEmptyPtr(string(in.State.Name))
	}
	if in.Placement != nil {
		out.AZ = helpers.NonEmptyPtr(aws.ToString(in.Placement.AvailabilityZone))
	}
	for _, ni := range in.NetworkInterfaces {
		if ip := aws.ToString(ni.PrivateIpAddress); ip != "" {
			out.PrivateIPs = append(out.PrivateIPs, ip)
		}
	}
	return out
}

func toInstanceStatus(in types.InstanceStatus) domain.InstanceStatus {
	out := domain.InstanceStatus{ID: aws.ToString(in.InstanceId)}
	if in.InstanceState != nil {
		out.State = helpers.NonEmptyPtr(string(in.InstanceState.Name))
	}
	return out
}
