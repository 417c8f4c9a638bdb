package internal

import (
	"context"
	"sync"
	"time"
)

// SimController is an in-memory VMController for local development and
// tests. Resizes take a configurable amount of wall-clock time to
// converge, so the polling path behaves like it does against a real
// cloud.
type SimController struct {
	mu      sync.Mutex
	flavors map[string]string
	resizes map[string]simResize

	// DefaultFlavor is assigned to VMs seen for the first time.
	DefaultFlavor string

	// Latency is how long a resize stays pending before completing.
	Latency time.Duration

	// RequestErr, when set, is returned by the next RequestResize call
	// and then cleared. Used to exercise the retry path.
	RequestErr error

	now func() time.Time
}

type simResize struct {
	flavor  string
	readyAt time.Time
}

func NewSimController(defaultFlavor string, latency time.Duration) *SimController {
	return &SimController{
		flavors:       make(map[string]string),
		resizes:       make(map[string]simResize),
		DefaultFlavor: defaultFlavor,
		Latency:       latency,
		now:           time.Now,
	}
}

// SetFlavor seeds a VM at a specific flavor.
func (c *SimController) SetFlavor(vmID, flavor string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.flavors[vmID] = flavor
}

func (c *SimController) GetFlavor(_ context.Context, vmID string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if flavor, ok := c.flavors[vmID]; ok {
		return flavor, nil
	}

	c.flavors[vmID] = c.DefaultFlavor

	return c.DefaultFlavor, nil
}

func (c *SimController) RequestResize(_ context.Context, vmID, flavor string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.RequestErr; err != nil {
		c.RequestErr = nil
		return err
	}

	c.resizes[vmID] = simResize{
		flavor:  flavor,
		readyAt: c.now().Add(c.Latency),
	}

	return nil
}

func (c *SimController) ResizeStatus(_ context.Context, vmID, flavor string) (ResizeState, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	resize, ok := c.resizes[vmID]
	if !ok || resize.flavor != flavor {
		if c.flavors[vmID] == flavor {
			return ResizeStateCompleted, nil
		}

		return ResizeStateFailed, nil
	}

	if c.now().Before(resize.readyAt) {
		return ResizeStatePending, nil
	}

	c.flavors[vmID] = resize.flavor
	delete(c.resizes, vmID)

	return ResizeStateCompleted, nil
}
