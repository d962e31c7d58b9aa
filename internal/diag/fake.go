package diag

// FakeStore is an in-memory test double with the same persistence contract
// as the hardware scratch registers: the record survives a simulated
// watchdog reset and is zeroed by a simulated clean reset.
type FakeStore struct {
	// Record is the current stored value.
	Record FaultRecord

	// Writes contains every record passed to Write, in order.
	Writes []FaultRecord

	// ReadError, if set, will be returned by Read.
	ReadError error

	// WriteError, if set, will be returned by Write.
	WriteError error
}

// NewFakeStore creates an empty FakeStore.
func NewFakeStore() *FakeStore {
	return &FakeStore{}
}

// Read returns the current record.
func (f *FakeStore) Read() (FaultRecord, error) {
	if f.ReadError != nil {
		return FaultRecord{}, f.ReadError
	}
	return f.Record, nil
}

// Write stores the record and logs it for assertions.
func (f *FakeStore) Write(rec FaultRecord) error {
	if f.WriteError != nil {
		return f.WriteError
	}
	f.Record = rec
	f.Writes = append(f.Writes, rec)
	return nil
}

// SimulateReset applies the reset-survival contract: a watchdog reset keeps
// the record, any other reset zeroes it. The write log is cleared either way
// (a new boot starts with a fresh log).
func (f *FakeStore) SimulateReset(watchdog bool) {
	if !watchdog {
		f.Record = FaultRecord{}
	}
	f.Writes = nil
}
