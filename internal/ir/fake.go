package ir

// FakeSender records transmitted commands for test assertions.
type FakeSender struct {
	// Sent contains every command passed to Send, in order.
	Sent []Command

	// SendError, if set, will be returned by Send (the command is still
	// recorded, matching a transmission that failed mid-flight).
	SendError error

	// Closed tracks if Close was called.
	Closed bool
}

// NewFakeSender creates an empty FakeSender.
func NewFakeSender() *FakeSender {
	return &FakeSender{}
}

// Send records the command.
func (f *FakeSender) Send(cmd Command) error {
	f.Sent = append(f.Sent, cmd)
	return f.SendError
}

// Close marks the sender as closed.
func (f *FakeSender) Close() error {
	f.Closed = true
	return nil
}

// Reset clears recorded commands.
func (f *FakeSender) Reset() {
	f.Sent = nil
	f.SendError = nil
	f.Closed = false
}
