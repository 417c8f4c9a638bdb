package internal

import (
	"context"
	"errors"
	"fmt"
	"path"

	compute "cloud.google.com/go/compute/apiv1"
	"cloud.google.com/go/compute/apiv1/computepb"
	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"github.com/vertiscale/vertiscalr/internal/ifaces"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/api/googleapi"
	"google.golang.org/protobuf/proto"
)

// GCPController resizes GCP Compute Engine instances. Machine types can
// only change while the instance is terminated, so a flavor change is a
// stop, a SetMachineType call and a start, each a zonal operation waited
// to completion by the client wrapper.
type GCPController struct {
	// Clients.
	Instances ifaces.GCPInstances

	// Configuration.
	Project string
	Zone    string

	Tracer trace.Tracer
}

// gcpInstancesClient wraps the GCP Compute Instances SDK client. The
// mutating calls wait on the returned zonal operation so callers see a
// synchronous API.
type gcpInstancesClient struct {
	client *compute.InstancesClient
}

func (c *gcpInstancesClient) GetInstance(ctx context.Context, project, zone, name string) (*computepb.Instance, error) {
	req := &computepb.GetInstanceRequest{
		Project:  project,
		Zone:     zone,
		Instance: name,
	}
	return c.client.Get(ctx, req)
}

func (c *gcpInstancesClient) StopInstance(ctx context.Context, project, zone, name string) error {
	req := &computepb.StopInstanceRequest{
		Project:  project,
		Zone:     zone,
		Instance: name,
	}
	op, err := c.client.Stop(ctx, req)
	if err != nil {
		return err
	}
	return op.Wait(ctx)
}

func (c *gcpInstancesClient) StartInstance(ctx context.Context, project, zone, name string) error {
	req := &computepb.StartInstanceRequest{
		Project:  project,
		Zone:     zone,
		Instance: name,
	}
	op, err := c.client.Start(ctx, req)
	if err != nil {
		return err
	}
	return op.Wait(ctx)
}

func (c *gcpInstancesClient) SetMachineType(ctx context.Context, project, zone, name, machineType string) error {
	req := &computepb.SetMachineTypeInstanceRequest{
		Project:  project,
		Zone:     zone,
		Instance: name,
		InstancesSetMachineTypeRequestResource: &computepb.InstancesSetMachineTypeRequest{
			MachineType: proto.String(machineType),
		},
	}
	op, err := c.client.SetMachineType(ctx, req)
	if err != nil {
		return err
	}
	return op.Wait(ctx)
}

// NewGCPController creates a new GCP controller instance. When the alert
// token is configured through a secret name rather than a literal value,
// it is resolved from Secret Manager here.
func NewGCPController(ctx context.Context, cfg *RuntimeConfig) (*GCPController, error) {
	if cfg.AlertToken == "" && cfg.AlertTokenSecretName != "" {
		// The Secret Manager client is only needed during initialization.
		smClient, err := secretmanager.NewClient(ctx)
		if err != nil {
			return nil, fmt.Errorf("could not create GCP Secret Manager client: %w", err)
		}
		defer smClient.Close()

		var secrets ifaces.GCPSecrets = smClient

		cfg.AlertToken, err = resolveAlertTokenSecretManager(ctx, secrets, cfg.AlertTokenSecretName)
		if err != nil {
			return nil, err
		}
	}

	instancesSDKClient, err := compute.NewInstancesRESTClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not create GCP Instances client: %w", err)
	}

	return &GCPController{
		Instances: &gcpInstancesClient{client: instancesSDKClient},
		Project:   cfg.GCPProject,
		Zone:      cfg.GCPZone,
		Tracer:    otel.Tracer("github.com/vertiscale/vertiscalr/internal/controller"),
	}, nil
}

// GetFlavor returns the instance's current machine type name. The API
// reports machine types as full resource URLs, so only the last path
// segment is kept.
func (c *GCPController) GetFlavor(ctx context.Context, vmID string) (flavor string, err error) {
	ctx, span := c.Tracer.Start(ctx, "gcp.instances.getFlavor")
	defer span.End()

	span.SetAttributes(attribute.String("instance_name", vmID))

	instance, err := c.Instances.GetInstance(ctx, c.Project, c.Zone, vmID)
	if err != nil {
		return "", classifyGCPError(fmt.Errorf("could not get GCP instance details: %w", err))
	}

	if instance.MachineType == nil {
		return "", fmt.Errorf("could not find machine type for instance %s", vmID)
	}

	return path.Base(*instance.MachineType), nil
}

// RequestResize stops the instance, sets the new machine type and starts
// it again. A nil return means all three zonal operations completed.
func (c *GCPController) RequestResize(ctx context.Context, vmID, flavor string) (err error) {
	ctx, span := c.Tracer.Start(ctx, "gcp.instances.requestResize")
	defer span.End()

	span.SetAttributes(
		attribute.String("instance_name", vmID),
		attribute.String("target_flavor", flavor),
	)

	if err = c.Instances.StopInstance(ctx, c.Project, c.Zone, vmID); err != nil {
		return classifyGCPError(fmt.Errorf("could not stop GCP instance: %w", err))
	}

	machineType := fmt.Sprintf("zones/%s/machineTypes/%s", c.Zone, flavor)

	if err = c.Instances.SetMachineType(ctx, c.Project, c.Zone, vmID, machineType); err != nil {
		return classifyGCPError(fmt.Errorf("could not set GCP machine type: %w", err))
	}

	if err = c.Instances.StartInstance(ctx, c.Project, c.Zone, vmID); err != nil {
		return classifyGCPError(fmt.Errorf("could not start GCP instance: %w", err))
	}

	return nil
}

// ResizeStatus reports whether the instance is running on the target
// machine type.
func (c *GCPController) ResizeStatus(ctx context.Context, vmID, flavor string) (state ResizeState, err error) {
	ctx, span := c.Tracer.Start(ctx, "gcp.instances.resizeStatus")
	defer span.End()

	span.SetAttributes(attribute.String("instance_name", vmID))

	instance, err := c.Instances.GetInstance(ctx, c.Project, c.Zone, vmID)
	if err != nil {
		return "", classifyGCPError(fmt.Errorf("could not get GCP instance details: %w", err))
	}

	typeMatches := instance.MachineType != nil && path.Base(*instance.MachineType) == flavor

	status := instance.GetStatus()

	switch {
	case status == "RUNNING" && typeMatches:
		return ResizeStateCompleted, nil
	case status == "RUNNING":
		// Came back up still on the old machine type.
		return ResizeStateFailed, nil
	default:
		// STOPPING, TERMINATED, STAGING, PROVISIONING and friends are all
		// points along the stop/modify/start path.
		return ResizeStatePending, nil
	}
}

// classifyGCPError sorts a Compute API failure into the retryable and
// non-retryable buckets.
func classifyGCPError(err error) error {
	var apiErr *googleapi.Error
	if !errors.As(err, &apiErr) {
		return &TransientError{Err: err}
	}

	switch {
	case apiErr.Code == 429 || apiErr.Code >= 500:
		return &TransientError{Err: err}
	case apiErr.Code >= 400:
		return &RejectedError{Reason: apiErr.Message, Err: err}
	default:
		return &TransientError{Err: err}
	}
}
