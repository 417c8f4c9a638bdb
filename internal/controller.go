package internal

import "context"

// ResizeState is the observed progress of a resize on the cloud side.
type ResizeState string

const (
	ResizeStatePending   ResizeState = "pending"
	ResizeStateCompleted ResizeState = "completed"
	ResizeStateFailed    ResizeState = "failed"
)

// VMController is the three-operation contract the core needs from a
// cloud platform: read a VM's current flavor, ask for a resize, and poll
// the resize's progress. The core depends on nothing else about the
// platform; each implementation translates its SDK's failures into
// *RejectedError or *TransientError so the retry layer can classify them
// without knowing the wire format.
//
//go:generate mockery --output ./ --name VMController --filename mock_controller_test.go --outpkg internal_test
type VMController interface {
	// GetFlavor returns the VM's current flavor name.
	GetFlavor(ctx context.Context, vmID string) (string, error)

	// RequestResize drives the platform's native resize mechanism. It may
	// block for the duration of the platform operation; the caller bounds
	// it with the context.
	RequestResize(ctx context.Context, vmID, flavor string) error

	// ResizeStatus reports whether the VM has converged on the target
	// flavor after a RequestResize.
	ResizeStatus(ctx context.Context, vmID, flavor string) (ResizeState, error)
}
