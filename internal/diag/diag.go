// Package diag provides the fault diagnostics store: a tiny record that
// survives a watchdog-triggered reset so the next boot can explain why the
// previous run died. On original hardware this lives in the watchdog scratch
// registers; here it is abstracted so tests can substitute an in-memory
// stand-in with the same persistence contract.
package diag

// Code identifies the fault that preceded a watchdog reset.
type Code uint32

const (
	// CodeNone means no fault was recorded.
	CodeNone Code = 0
	// CodeManualFault is the deliberately induced lock-up (fault button).
	CodeManualFault Code = 0x01
	// CodeTemp22Fault is the lock-up on the unsupported 22C command.
	CodeTemp22Fault Code = 0x02
)

// String returns the log label for the fault code.
func (c Code) String() string {
	switch c {
	case CodeNone:
		return "NONE"
	case CodeManualFault:
		return "MANUAL"
	case CodeTemp22Fault:
		return "TEMP22"
	default:
		return "UNKNOWN"
	}
}

// FaultRecord is the reset-surviving diagnostic pair. ResetCount and Code are
// written together, immediately before a fault branch is entered, and read
// once at the following boot.
type FaultRecord struct {
	ResetCount uint32 `json:"reset_count"`
	Code       Code   `json:"fault_code"`
}

// Store reads and writes the fault record. The backing storage must survive a
// watchdog-caused reset; the caller zeroes it on any other boot cause.
type Store interface {
	Read() (FaultRecord, error)
	Write(FaultRecord) error
}
