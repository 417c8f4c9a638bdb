package internal_test

import (
	"errors"
	"testing"

	"cloud.google.com/go/compute/apiv1/computepb"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/googleapi"

	"github.com/vertiscale/vertiscalr/internal"
	"github.com/vertiscale/vertiscalr/internal/ifaces"
)

const (
	gcpProject = "test-project"
	gcpZone    = "europe-west1-b"
)

func setupGCPController() (*internal.GCPController, *ifaces.MockGCPInstances) {
	mockInstances := &ifaces.MockGCPInstances{}

	controller := &internal.GCPController{
		Instances: mockInstances,
		Project:   gcpProject,
		Zone:      gcpZone,
		Tracer:    noopTracer(),
	}

	return controller, mockInstances
}

func gcpInstance(machineType, status string) *computepb.Instance {
	return &computepb.Instance{
		MachineType: nullable("https://www.googleapis.com/compute/v1/projects/test-project/zones/europe-west1-b/machineTypes/" + machineType),
		Status:      nullable(status),
	}
}

func TestGCPGetFlavor_StripsMachineTypeURL(t *testing.T) {
	sut, mockInstances := setupGCPController()

	mockInstances.On("GetInstance", mock.Anything, gcpProject, gcpZone, "vm-1").
		Return(gcpInstance("e2-standard-2", "RUNNING"), nil)

	flavor, err := sut.GetFlavor(t.Context(), "vm-1")

	require.NoError(t, err)
	require.Equal(t, "e2-standard-2", flavor)
}

func TestGCPGetFlavor_NoMachineType_ReturnsError(t *testing.T) {
	sut, mockInstances := setupGCPController()

	mockInstances.On("GetInstance", mock.Anything, gcpProject, gcpZone, "vm-1").
		Return(&computepb.Instance{}, nil)

	_, err := sut.GetFlavor(t.Context(), "vm-1")

	require.ErrorContains(t, err, "could not find machine type")
}

func TestGCPRequestResize_StopSetStart(t *testing.T) {
	sut, mockInstances := setupGCPController()

	mockInstances.On("StopInstance", mock.Anything, gcpProject, gcpZone, "vm-1").Return(nil)
	mockInstances.On("SetMachineType", mock.Anything, gcpProject, gcpZone, "vm-1",
		"zones/europe-west1-b/machineTypes/e2-standard-4").Return(nil)
	mockInstances.On("StartInstance", mock.Anything, gcpProject, gcpZone, "vm-1").Return(nil)

	require.NoError(t, sut.RequestResize(t.Context(), "vm-1", "e2-standard-4"))
	mockInstances.AssertExpectations(t)
}

func TestGCPRequestResize_StopFails_NothingElseRuns(t *testing.T) {
	sut, mockInstances := setupGCPController()

	mockInstances.On("StopInstance", mock.Anything, gcpProject, gcpZone, "vm-1").
		Return(errors.New("bacon"))

	err := sut.RequestResize(t.Context(), "vm-1", "e2-standard-4")

	require.ErrorContains(t, err, "could not stop GCP instance")
	mockInstances.AssertNotCalled(t, "SetMachineType", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestGCPRequestResize_Forbidden_Rejected(t *testing.T) {
	sut, mockInstances := setupGCPController()

	mockInstances.On("StopInstance", mock.Anything, gcpProject, gcpZone, "vm-1").
		Return(&googleapi.Error{Code: 403, Message: "forbidden"})

	err := sut.RequestResize(t.Context(), "vm-1", "e2-standard-4")

	var rejected *internal.RejectedError
	require.ErrorAs(t, err, &rejected)
	require.Equal(t, "forbidden", rejected.Reason)
}

func TestGCPRequestResize_ServerError_Transient(t *testing.T) {
	sut, mockInstances := setupGCPController()

	mockInstances.On("StopInstance", mock.Anything, gcpProject, gcpZone, "vm-1").
		Return(&googleapi.Error{Code: 503})

	err := sut.RequestResize(t.Context(), "vm-1", "e2-standard-4")

	require.True(t, internal.IsTransient(err))
}

func TestGCPResizeStatus_RunningOnTarget_Completed(t *testing.T) {
	sut, mockInstances := setupGCPController()

	mockInstances.On("GetInstance", mock.Anything, gcpProject, gcpZone, "vm-1").
		Return(gcpInstance("e2-standard-4", "RUNNING"), nil)

	state, err := sut.ResizeStatus(t.Context(), "vm-1", "e2-standard-4")

	require.NoError(t, err)
	require.Equal(t, internal.ResizeStateCompleted, state)
}

func TestGCPResizeStatus_RunningOnOldType_Failed(t *testing.T) {
	sut, mockInstances := setupGCPController()

	mockInstances.On("GetInstance", mock.Anything, gcpProject, gcpZone, "vm-1").
		Return(gcpInstance("e2-standard-2", "RUNNING"), nil)

	state, err := sut.ResizeStatus(t.Context(), "vm-1", "e2-standard-4")

	require.NoError(t, err)
	require.Equal(t, internal.ResizeStateFailed, state)
}

func TestGCPResizeStatus_Terminated_Pending(t *testing.T) {
	sut, mockInstances := setupGCPController()

	mockInstances.On("GetInstance", mock.Anything, gcpProject, gcpZone, "vm-1").
		Return(gcpInstance("e2-standard-4", "TERMINATED"), nil)

	state, err := sut.ResizeStatus(t.Context(), "vm-1", "e2-standard-4")

	require.NoError(t, err)
	require.Equal(t, internal.ResizeStatePending, state)
}
