package internal

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/smithy-go"
	"github.com/vertiscale/vertiscalr/internal/ifaces"
	"go.opentelemetry.io/contrib/instrumentation/github.com/aws/aws-sdk-go-v2/otelaws"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// awsStopWaitTime bounds how long RequestResize waits for the instance to
// reach the stopped state before changing its type.
const awsStopWaitTime = 5 * time.Minute

// AWSController resizes EC2 instances. EC2 has no in-place resize, so a
// flavor change is a stop, an instance-type modification, and a start.
type AWSController struct {
	// Clients.
	EC2 ifaces.EC2

	Tracer trace.Tracer
}

// NewAWSController creates a new AWS controller instance. When the alert
// token is configured through a secret name rather than a literal value,
// it is resolved from SSM Parameter Store here.
func NewAWSController(ctx context.Context, cfg *RuntimeConfig) (*AWSController, error) {
	awsConfig, err := config.LoadDefaultConfig(ctx, config.WithRegion(cfg.AWSRegion))
	if err != nil {
		return nil, fmt.Errorf("could not load AWS configuration: %w", err)
	}

	otelaws.AppendMiddlewares(&awsConfig.APIOptions)

	if cfg.AlertToken == "" && cfg.AlertTokenSecretName != "" {
		var ssmClient ifaces.SSM = ssm.NewFromConfig(awsConfig)

		cfg.AlertToken, err = resolveAlertTokenSSM(ctx, ssmClient, cfg.AlertTokenSecretName)
		if err != nil {
			return nil, err
		}
	}

	return &AWSController{
		EC2:    ec2.NewFromConfig(awsConfig),
		Tracer: otel.Tracer("github.com/vertiscale/vertiscalr/internal/controller"),
	}, nil
}

// GetFlavor returns the instance's current instance type.
func (c *AWSController) GetFlavor(ctx context.Context, vmID string) (flavor string, err error) {
	ctx, span := c.Tracer.Start(ctx, "aws.ec2.getFlavor")
	defer span.End()

	span.SetAttributes(attribute.String("instance_id", vmID))

	instance, err := c.describeInstance(ctx, vmID)
	if err != nil {
		return "", err
	}

	return string(instance.InstanceType), nil
}

// RequestResize stops the instance, changes its type and starts it again.
// It returns once the start call is accepted; convergence is observed
// through ResizeStatus.
func (c *AWSController) RequestResize(ctx context.Context, vmID, flavor string) (err error) {
	ctx, span := c.Tracer.Start(ctx, "aws.ec2.requestResize")
	defer span.End()

	span.SetAttributes(
		attribute.String("instance_id", vmID),
		attribute.String("target_flavor", flavor),
	)

	_, err = c.EC2.StopInstances(ctx, &ec2.StopInstancesInput{
		InstanceIds: []string{vmID},
	})

	if err != nil {
		return classifyAWSError(fmt.Errorf("could not stop instance: %w", err))
	}

	waiter := ec2.NewInstanceStoppedWaiter(c.EC2)
	err = waiter.Wait(ctx, &ec2.DescribeInstancesInput{
		InstanceIds: []string{vmID},
	}, awsStopWaitTime)

	if err != nil {
		return &TransientError{Err: fmt.Errorf("could not wait for instance to stop: %w", err)}
	}

	_, err = c.EC2.ModifyInstanceAttribute(ctx, &ec2.ModifyInstanceAttributeInput{
		InstanceId:   aws.String(vmID),
		InstanceType: &types.AttributeValue{Value: aws.String(flavor)},
	})

	if err != nil {
		return classifyAWSError(fmt.Errorf("could not modify instance type: %w", err))
	}

	_, err = c.EC2.StartInstances(ctx, &ec2.StartInstancesInput{
		InstanceIds: []string{vmID},
	})

	if err != nil {
		return classifyAWSError(fmt.Errorf("could not start instance: %w", err))
	}

	return nil
}

// ResizeStatus reports whether the instance has come back up with the
// target type. A running instance still on the old type means the
// modification did not stick.
func (c *AWSController) ResizeStatus(ctx context.Context, vmID, flavor string) (state ResizeState, err error) {
	ctx, span := c.Tracer.Start(ctx, "aws.ec2.resizeStatus")
	defer span.End()

	span.SetAttributes(attribute.String("instance_id", vmID))

	instance, err := c.describeInstance(ctx, vmID)
	if err != nil {
		return "", err
	}

	var instanceState types.InstanceStateName
	if instance.State != nil {
		instanceState = instance.State.Name
	}

	if string(instance.InstanceType) != flavor {
		if instanceState == types.InstanceStateNameRunning {
			return ResizeStateFailed, nil
		}

		return ResizeStatePending, nil
	}

	switch instanceState {
	case types.InstanceStateNameRunning:
		return ResizeStateCompleted, nil
	case types.InstanceStateNameTerminated, types.InstanceStateNameShuttingDown:
		return ResizeStateFailed, nil
	default:
		return ResizeStatePending, nil
	}
}

func (c *AWSController) describeInstance(ctx context.Context, vmID string) (*types.Instance, error) {
	output, err := c.EC2.DescribeInstances(ctx, &ec2.DescribeInstancesInput{
		InstanceIds: []string{vmID},
	})

	if err != nil {
		return nil, classifyAWSError(fmt.Errorf("could not describe instance: %w", err))
	}

	for _, reservation := range output.Reservations {
		for _, instance := range reservation.Instances {
			if aws.ToString(instance.InstanceId) == vmID {
				found := instance
				return &found, nil
			}
		}
	}

	return nil, &RejectedError{Reason: fmt.Sprintf("instance %s not found", vmID)}
}

// classifyAWSError sorts an EC2 API failure into the retryable and
// non-retryable buckets. Client faults are the caller's problem and never
// retried, with the exception of throttling.
func classifyAWSError(err error) error {
	var apiErr smithy.APIError
	if !errors.As(err, &apiErr) {
		// Not an API response at all, most likely a network failure.
		return &TransientError{Err: err}
	}

	switch apiErr.ErrorCode() {
	case "Throttling", "ThrottlingException", "RequestLimitExceeded":
		return &TransientError{Err: err}
	}

	if apiErr.ErrorFault() == smithy.FaultClient {
		return &RejectedError{Reason: apiErr.ErrorCode(), Err: err}
	}

	return &TransientError{Err: err}
}
