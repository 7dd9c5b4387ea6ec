// Package awsinventory reads instance inventory from AWS: records and statuses from EC2,
// change events from CloudTrail.
package awsinventory

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"myinventory/domain"
	"myinventory/helpers"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/cloudtrail"
	cttypes "github.com/aws/aws-sdk-go-v2/service/cloudtrail/types"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
)

// ec2EventSource limits change events to EC2; other services never change instance order or membership.
const ec2EventSource = "ec2.amazonaws.com"

// EC2API is the subset of the EC2 client used by Inventory.
type EC2API interface {
	ec2.DescribeInstancesAPIClient
	ec2.DescribeInstanceStatusAPIClient
	DescribeRegions(ctx context.Context, params *ec2.DescribeRegionsInput, optFns ...func(*ec2.Options)) (*ec2.DescribeRegionsOutput, error)
}

// CloudTrailAPI is the subset of the CloudTrail client used by Inventory.
type CloudTrailAPI interface {
	LookupEvents(ctx context.Context, params *cloudtrail.LookupEventsInput, optFns ...func(*cloudtrail.Options)) (*cloudtrail.LookupEventsOutput, error)
}

// Clients creates the per-region API clients.
type Clients struct {
	EC2        func(region string) EC2API
	CloudTrail func(region string) CloudTrailAPI
}

// Inventory is the AWS inventory source. Clients are created once per region and reused.
//
// Implements interfaces.InventorySource and interfaces.RegionLister.
type Inventory struct {
	clients       Clients
	defaultRegion string

	mu          sync.Mutex
	ec2ByRegion map[string]EC2API
	ctByRegion  map[string]CloudTrailAPI
}

// LoadClients builds client factories from the default AWS credential chain.
func LoadClients(ctx context.Context, defaultRegion string) (Clients, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(defaultRegion))
	if err != nil {
		return Clients{}, fmt.Errorf("can't load aws config, err: %w", err)
	}
	return Clients{
		EC2: func(region string) EC2API {
			return ec2.NewFromConfig(cfg, func(o *ec2.Options) { o.Region = region })
		},
		CloudTrail: func(region string) CloudTrailAPI {
			return cloudtrail.NewFromConfig(cfg, func(o *cloudtrail.Options) { o.Region = region })
		},
	}, nil
}

// NewInventory creates the AWS inventory. defaultRegion is queried for the region list.
func NewInventory(clients Clients, defaultRegion string) *Inventory {
	helpers.NilPanic(clients.EC2, "awsinventory.inventory.go: EC2 client factory is required")
	helpers.NilPanic(clients.CloudTrail, "awsinventory.inventory.go: CloudTrail client factory is required")
	return &Inventory{
		clients:       clients,
		defaultRegion: helpers.StrPanic(defaultRegion, "awsinventory.inventory.go: defaultRegion is required"),
		ec2ByRegion:   make(map[string]EC2API),
		ctByRegion:    make(map[string]CloudTrailAPI),
	}
}

func (i *Inventory) ec2Client(region string) EC2API {
	i.mu.Lock()
	defer i.mu.Unlock()
	c, ok := i.ec2ByRegion[region]
	if !ok {
		c = i.clients.EC2(region)
		i.ec2ByRegion[region] = c
	}
	return c
}

func (i *Inventory) cloudTrailClient(region string) CloudTrailAPI {
	i.mu.Lock()
	defer i.mu.Unlock()
	c, ok := i.ctByRegion[region]
	if !ok {
		c = i.clients.CloudTrail(region)
		i.ctByRegion[region] = c
	}
	return c
}

// ListInstances returns every instance of region in DescribeInstances order.
func (i *Inventory) ListInstances(ctx context.Context, region string) ([]domain.InstanceRecord, error) {
	var out []domain.InstanceRecord
	p := ec2.NewDescribeInstancesPaginator(i.ec2Client(region), &ec2.DescribeInstancesInput{})
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("ec2 describe instances error, err: %w", err)
		}
		for _, reservation := range page.Reservations {
			for _, instance := range reservation.Instances {
				out = append(out, toInstanceRecord(instance))
			}
		}
	}
	return out, nil
}

// ListStatuses returns the state of every instance of region, including stopped ones.
func (i *Inventory) ListStatuses(ctx context.Context, region string) ([]domain.InstanceStatus, error) {
	var out []domain.InstanceStatus
	p := ec2.NewDescribeInstanceStatusPaginator(i.ec2Client(region), &ec2.DescribeInstanceStatusInput{
		IncludeAllInstances: aws.Bool(true),
	})
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("ec2 describe instance status error, err: %w", err)
		}
		for _, s := range page.InstanceStatuses {
			out = append(out, toInstanceStatus(s))
		}
	}
	return out, nil
}

// HasChangeEventsSince reports whether CloudTrail recorded any EC2 event in region after since.
func (i *Inventory) HasChangeEventsSince(ctx context.Context, region string, since time.Time) (bool, error) {
	resp, err := i.cloudTrailClient(region).LookupEvents(ctx, &cloudtrail.LookupEventsInput{
		StartTime: aws.Time(since),
		LookupAttributes: []cttypes.LookupAttribute{{
			AttributeKey:   cttypes.LookupAttributeKeyEventSource,
			AttributeValue: aws.String(ec2EventSource),
		}},
		MaxResults: aws.Int32(1),
	})
	if err != nil {
		return false, fmt.Errorf("cloudtrail lookup events error, err: %w", err)
	}
	return len(resp.Events) > 0, nil
}

// ListRegions returns the regions enabled for the account, sorted.
func (i *Inventory) ListRegions(ctx context.Context) ([]string, error) {
	resp, err := i.ec2Client(i.defaultRegion).DescribeRegions(ctx, &ec2.DescribeRegionsInput{})
	if err != nil {
		return nil, fmt.Errorf("ec2 describe regions error, err: %w", err)
	}
	out := make([]string, 0, len(resp.Regions))
	for _, r := range resp.Regions {
		if name := aws.ToString(r.RegionName); name != "" {
			out = append(out, name)
		}
	}
	slices.Sort(out)
	return out, nil
}
