package internal

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/compute/armcompute/v6"
	"github.com/Azure/azure-sdk-for-go/sdk/security/keyvault/azsecrets"
	"github.com/vertiscale/vertiscalr/internal/ifaces"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// AzureController resizes Azure virtual machines. Azure resizes in place:
// a single VM update with a new hardware profile, polled to completion by
// the SDK.
type AzureController struct {
	// Clients.
	Compute  ifaces.AzureCompute
	KeyVault ifaces.AzureKeyVault

	// Configuration.
	AzureResourceGroupName string

	Tracer trace.Tracer
}

// azureComputeClient wraps the Azure Compute SDK client to implement the AzureCompute interface.
type azureComputeClient struct {
	vmClient *armcompute.VirtualMachinesClient
}

func (c *azureComputeClient) GetVirtualMachine(ctx context.Context, resourceGroupName string, vmName string) (*armcompute.VirtualMachine, error) {
	resp, err := c.vmClient.Get(ctx, resourceGroupName, vmName, nil)
	if err != nil {
		return nil, err
	}
	return &resp.VirtualMachine, nil
}

func (c *azureComputeClient) UpdateVMSize(ctx context.Context, resourceGroupName string, vmName string, size string) error {
	vmSize := armcompute.VirtualMachineSizeTypes(size)

	poller, err := c.vmClient.BeginUpdate(ctx, resourceGroupName, vmName, armcompute.VirtualMachineUpdate{
		Properties: &armcompute.VirtualMachineProperties{
			HardwareProfile: &armcompute.HardwareProfile{
				VMSize: &vmSize,
			},
		},
	}, nil)
	if err != nil {
		return err
	}

	_, err = poller.PollUntilDone(ctx, nil)
	return err
}

// azureKeyVaultClient wraps the Azure Key Vault SDK client to implement the AzureKeyVault interface.
type azureKeyVaultClient struct {
	client *azsecrets.Client
}

func (c *azureKeyVaultClient) GetSecret(ctx context.Context, secretName string) (azsecrets.GetSecretResponse, error) {
	return c.client.GetSecret(ctx, secretName, "", nil)
}

// NewAzureController creates a new Azure controller instance. When the
// alert token is configured through a secret name rather than a literal
// value, it is resolved from Key Vault here.
func NewAzureController(ctx context.Context, cfg *RuntimeConfig) (*AzureController, error) {
	cred, err := azidentity.NewDefaultAzureCredential(nil)
	if err != nil {
		return nil, fmt.Errorf("could not create Azure credential: %w", err)
	}

	vmClient, err := armcompute.NewVirtualMachinesClient(cfg.AzureSubscriptionID, cred, nil)
	if err != nil {
		return nil, fmt.Errorf("could not create Azure VM client: %w", err)
	}

	ctrl := &AzureController{
		Compute:                &azureComputeClient{vmClient: vmClient},
		AzureResourceGroupName: cfg.AzureResourceGroup,
		Tracer:                 otel.Tracer("github.com/vertiscale/vertiscalr/internal/controller"),
	}

	if cfg.AlertToken == "" && cfg.AlertTokenSecretName != "" {
		if cfg.AzureKeyVaultName == "" {
			return nil, errors.New("AZURE_KEY_VAULT_NAME must be set when ALERT_TOKEN_SECRET_NAME is used")
		}

		vaultURL := fmt.Sprintf("https://%s.vault.azure.net", cfg.AzureKeyVaultName)

		kvClient, err := azsecrets.NewClient(vaultURL, cred, nil)
		if err != nil {
			return nil, fmt.Errorf("could not create Azure Key Vault client: %w", err)
		}

		ctrl.KeyVault = &azureKeyVaultClient{client: kvClient}

		cfg.AlertToken, err = resolveAlertTokenKeyVault(ctx, ctrl.KeyVault, cfg.AlertTokenSecretName)
		if err != nil {
			return nil, err
		}
	}

	return ctrl, nil
}

// GetFlavor returns the VM's current size name.
func (c *AzureController) GetFlavor(ctx context.Context, vmID string) (flavor string, err error) {
	ctx, span := c.Tracer.Start(ctx, "azure.vm.getFlavor")
	defer span.End()

	span.SetAttributes(attribute.String("vm_name", vmID))

	vm, err := c.Compute.GetVirtualMachine(ctx, c.AzureResourceGroupName, vmID)
	if err != nil {
		return "", classifyAzureError(fmt.Errorf("could not get Azure VM details: %w", err))
	}

	if vm.Properties == nil || vm.Properties.HardwareProfile == nil || vm.Properties.HardwareProfile.VMSize == nil {
		return "", fmt.Errorf("could not find hardware profile for Azure VM %s", vmID)
	}

	return string(*vm.Properties.HardwareProfile.VMSize), nil
}

// RequestResize updates the VM's hardware profile to the target size. The
// SDK poller blocks until the management operation finishes, so a nil
// return means Azure has accepted and applied the update.
func (c *AzureController) RequestResize(ctx context.Context, vmID, flavor string) (err error) {
	ctx, span := c.Tracer.Start(ctx, "azure.vm.requestResize")
	defer span.End()

	span.SetAttributes(
		attribute.String("vm_name", vmID),
		attribute.String("target_flavor", flavor),
	)

	err = c.Compute.UpdateVMSize(ctx, c.AzureResourceGroupName, vmID, flavor)
	if err != nil {
		return classifyAzureError(fmt.Errorf("could not update Azure VM size: %w", err))
	}

	return nil
}

// ResizeStatus reports whether the VM has converged on the target size.
func (c *AzureController) ResizeStatus(ctx context.Context, vmID, flavor string) (state ResizeState, err error) {
	ctx, span := c.Tracer.Start(ctx, "azure.vm.resizeStatus")
	defer span.End()

	span.SetAttributes(attribute.String("vm_name", vmID))

	vm, err := c.Compute.GetVirtualMachine(ctx, c.AzureResourceGroupName, vmID)
	if err != nil {
		return "", classifyAzureError(fmt.Errorf("could not get Azure VM details: %w", err))
	}

	provisioningState := ""
	if vm.Properties != nil && vm.Properties.ProvisioningState != nil {
		provisioningState = *vm.Properties.ProvisioningState
	}

	sizeMatches := vm.Properties != nil &&
		vm.Properties.HardwareProfile != nil &&
		vm.Properties.HardwareProfile.VMSize != nil &&
		string(*vm.Properties.HardwareProfile.VMSize) == flavor

	switch {
	case strings.EqualFold(provisioningState, "Succeeded") && sizeMatches:
		return ResizeStateCompleted, nil
	case strings.EqualFold(provisioningState, "Failed"):
		return ResizeStateFailed, nil
	case strings.EqualFold(provisioningState, "Succeeded"):
		// The management plane settled without picking up the new size.
		return ResizeStateFailed, nil
	default:
		return ResizeStatePending, nil
	}
}

// classifyAzureError sorts an ARM API failure into the retryable and
// non-retryable buckets.
func classifyAzureError(err error) error {
	var respErr *azcore.ResponseError
	if !errors.As(err, &respErr) {
		return &TransientError{Err: err}
	}

	switch {
	case respErr.StatusCode == 429 || respErr.StatusCode >= 500:
		return &TransientError{Err: err}
	case respErr.StatusCode >= 400:
		return &RejectedError{Reason: respErr.ErrorCode, Err: err}
	default:
		return &TransientError{Err: err}
	}
}
