package internal

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"
)

// Sample is one metric reading kept in a VM's bounded history.
type Sample struct {
	Timestamp time.Time `json:"timestamp"`
	CPUPct    float64   `json:"cpuPct"`
	RAMPct    float64   `json:"ramPct"`
}

// ResourceRecord is the authoritative per-VM state. It is owned by the
// ResourceStore and only ever mutated through the store's operations;
// everything handed out is a copy.
type ResourceRecord struct {
	VMID           string    `json:"vmId"`
	CurrentRank    int       `json:"currentRank"`
	LastTransition time.Time `json:"lastTransition"`
	InFlight       bool      `json:"inFlight"`
	LeaseAcquired  time.Time `json:"leaseAcquired"`
	CooldownUntil  time.Time `json:"cooldownUntil"`
	History        []Sample  `json:"history"`
}

// ResourceStore maps VM IDs to their records. Operations on the same VM
// are serialized by a per-record lock; operations on different VMs do not
// block each other beyond the brief map lookup.
type ResourceStore struct {
	historyWindow int

	mu      sync.RWMutex
	records map[string]*storeEntry
}

type storeEntry struct {
	mu     sync.Mutex
	record ResourceRecord
}

func NewResourceStore(historyWindow int) *ResourceStore {
	return &ResourceStore{
		historyWindow: historyWindow,
		records:       make(map[string]*storeEntry),
	}
}

// entry returns the entry for the VM, creating it at the given rank on
// first sight. The bool reports whether the entry already existed.
func (s *ResourceStore) entry(vmID string, initialRank int) (*storeEntry, bool) {
	s.mu.RLock()
	e, ok := s.records[vmID]
	s.mu.RUnlock()

	if ok {
		return e, true
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok = s.records[vmID]; ok {
		return e, true
	}

	e = &storeEntry{record: ResourceRecord{VMID: vmID, CurrentRank: initialRank}}
	s.records[vmID] = e

	return e, false
}

// Has reports whether a record exists for the VM.
func (s *ResourceStore) Has(vmID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.records[vmID]

	return ok
}

// Create registers a VM at the given rank. It reports false when the VM is
// already known, in which case the existing record is left untouched.
func (s *ResourceStore) Create(vmID string, rank int) bool {
	_, existed := s.entry(vmID, rank)
	return !existed
}

// Get returns a copy of the VM's record.
func (s *ResourceStore) Get(vmID string) (ResourceRecord, bool) {
	s.mu.RLock()
	e, ok := s.records[vmID]
	s.mu.RUnlock()

	if !ok {
		return ResourceRecord{}, false
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	return cloneRecord(e.record), true
}

// Records returns copies of all records, for observers.
func (s *ResourceStore) Records() []ResourceRecord {
	s.mu.RLock()
	entries := make([]*storeEntry, 0, len(s.records))
	for _, e := range s.records {
		entries = append(entries, e)
	}
	s.mu.RUnlock()

	out := make([]ResourceRecord, 0, len(entries))
	for _, e := range entries {
		e.mu.Lock()
		out = append(out, cloneRecord(e.record))
		e.mu.Unlock()
	}

	return out
}

// RecordSample appends the sample to the VM's history, dropping the oldest
// entries beyond the window. The VM is created at rank 0 if unseen;
// callers that can resolve the real flavor should Create the record first.
func (s *ResourceStore) RecordSample(vmID string, sample Sample) {
	e, _ := s.entry(vmID, 0)

	e.mu.Lock()
	defer e.mu.Unlock()

	e.record.History = append(e.record.History, sample)
	if excess := len(e.record.History) - s.historyWindow; excess > 0 {
		e.record.History = e.record.History[excess:]
	}
}

// TryBeginAction atomically acquires the VM's resize lease. It fails with
// ErrActionInFlight when another action holds it. This is the only way to
// obtain permission to drive a resize for the VM.
func (s *ResourceStore) TryBeginAction(vmID string, now time.Time) error {
	s.mu.RLock()
	e, ok := s.records[vmID]
	s.mu.RUnlock()

	if !ok {
		return fmt.Errorf("unknown VM %q", vmID)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.record.InFlight {
		return ErrActionInFlight
	}

	e.record.InFlight = true
	e.record.LeaseAcquired = now

	return nil
}

// AbandonAction releases the VM's lease without recording an outcome.
// Used when the holder decides, before driving anything, that no action
// should run after all.
func (s *ResourceStore) AbandonAction(vmID string) {
	s.mu.RLock()
	e, ok := s.records[vmID]
	s.mu.RUnlock()

	if !ok {
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.record.InFlight = false
	e.record.LeaseAcquired = time.Time{}
}

// CompleteAction releases the VM's lease, moves the rank on success and
// starts the cooldown. Failed actions start a cooldown too, so a
// persistently failing API is not hammered on every alert.
func (s *ResourceStore) CompleteAction(vmID string, success bool, newRank int, now time.Time, cooldown time.Duration) {
	s.mu.RLock()
	e, ok := s.records[vmID]
	s.mu.RUnlock()

	if !ok {
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.record.InFlight = false
	e.record.LeaseAcquired = time.Time{}
	e.record.LastTransition = now
	e.record.CooldownUntil = now.Add(cooldown)

	if success {
		e.record.CurrentRank = newRank
	}
}

// ReapExpiredLeases forcibly releases leases older than maxAge and returns
// the affected VM IDs. It is the safety net for an execution that died
// without completing its action.
func (s *ResourceStore) ReapExpiredLeases(now time.Time, maxAge time.Duration) []string {
	s.mu.RLock()
	entries := make([]*storeEntry, 0, len(s.records))
	for _, e := range s.records {
		entries = append(entries, e)
	}
	s.mu.RUnlock()

	var reaped []string

	for _, e := range entries {
		e.mu.Lock()
		if e.record.InFlight && now.Sub(e.record.LeaseAcquired) > maxAge {
			e.record.InFlight = false
			e.record.LeaseAcquired = time.Time{}
			reaped = append(reaped, e.record.VMID)
		}
		e.mu.Unlock()
	}

	return reaped
}

// SaveToFile snapshots all records as a vmId -> record JSON mapping.
func (s *ResourceStore) SaveToFile(path string) error {
	records := s.Records()

	snapshot := make(map[string]ResourceRecord, len(records))
	for _, record := range records {
		snapshot[record.VMID] = record
	}

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("could not marshal state snapshot: %w", err)
	}

	return os.WriteFile(path, data, 0o644)
}

// LoadFromFile restores a snapshot written by SaveToFile. A missing file
// is not an error. Leases are not restored: whatever was in flight when
// the snapshot was taken died with that process.
func (s *ResourceStore) LoadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}

		return fmt.Errorf("could not read state snapshot: %w", err)
	}

	snapshot := make(map[string]ResourceRecord)
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return fmt.Errorf("could not unmarshal state snapshot: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for vmID, record := range snapshot {
		record.VMID = vmID
		record.InFlight = false
		record.LeaseAcquired = time.Time{}
		s.records[vmID] = &storeEntry{record: record}
	}

	return nil
}

func cloneRecord(r ResourceRecord) ResourceRecord {
	out := r
	out.History = make([]Sample, len(r.History))
	copy(out.History, r.History)

	return out
}
