package ifaces

import (
	"context"

	secretmanagerpb "cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
	"github.com/googleapis/gax-go/v2"
)

//go:generate mockery --output ./ --name GCPSecrets --filename mock_gcp_secrets.go --outpkg ifaces --structname MockGCPSecrets
type GCPSecrets interface {
	AccessSecretVersion(ctx context.Context, req *secretmanagerpb.AccessSecretVersionRequest, opts ...gax.CallOption) (*secretmanagerpb.AccessSecretVersionResponse, error)
}
