package internal

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/vertiscale/vertiscalr/internal/ifaces"
)

// resolveAlertTokenSSM fetches the shared alert secret from SSM Parameter
// Store.
func resolveAlertTokenSSM(ctx context.Context, client ifaces.SSM, name string) (string, error) {
	output, err := client.GetParameter(ctx, &ssm.GetParameterInput{
		Name:           aws.String(name),
		WithDecryption: aws.Bool(true),
	})

	if err != nil {
		return "", fmt.Errorf("could not get alert token secret from SSM: %w", err)
	} else if output.Parameter == nil {
		return "", errors.New("could not find alert token secret in SSM")
	} else if output.Parameter.Value == nil {
		return "", errors.New("could not find alert token secret value in SSM")
	}

	return *output.Parameter.Value, nil
}

// resolveAlertTokenKeyVault fetches the shared alert secret from Azure Key
// Vault.
func resolveAlertTokenKeyVault(ctx context.Context, client ifaces.AzureKeyVault, name string) (string, error) {
	secret, err := client.GetSecret(ctx, name)
	if err != nil {
		return "", fmt.Errorf("could not get alert token secret from Key Vault: %w", err)
	}

	if secret.Value == nil {
		return "", errors.New("could not find alert token secret value in Key Vault")
	}

	return *secret.Value, nil
}

// resolveAlertTokenSecretManager fetches the shared alert secret from GCP
// Secret Manager.
func resolveAlertTokenSecretManager(ctx context.Context, client ifaces.GCPSecrets, name string) (string, error) {
	secret, err := client.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{
		Name: name,
	})
	if err != nil {
		return "", fmt.Errorf("could not get alert token secret from Secret Manager: %w", err)
	}

	if secret.Payload == nil || secret.Payload.Data == nil {
		return "", errors.New("could not find alert token secret value in Secret Manager")
	}

	return string(secret.Payload.Data), nil
}
