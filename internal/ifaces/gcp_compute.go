package ifaces

import (
	"context"

	"cloud.google.com/go/compute/apiv1/computepb"
)

// GCPInstances is an interface for the GCP Compute instance client. The
// mutating operations block until the underlying zonal operation is done.
//
//go:generate mockery --output ./ --name GCPInstances --filename mock_gcp_instances.go --outpkg ifaces --structname MockGCPInstances
type GCPInstances interface {
	GetInstance(ctx context.Context, project, zone, name string) (*computepb.Instance, error)
	StopInstance(ctx context.Context, project, zone, name string) error
	StartInstance(ctx context.Context, project, zone, name string) error
	SetMachineType(ctx context.Context, project, zone, name, machineType string) error
}
