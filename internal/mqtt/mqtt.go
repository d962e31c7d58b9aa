// Package mqtt provides MQTT publishing with abstraction for testing.
package mqtt

import (
	"encoding/json"
	"time"

	"github.com/sweeney/aircon-watchdog/internal/logic"
)

// Topic is the MQTT topic for appliance state events.
const Topic = "hvac/aircon/controller/events"

// TopicSystem is the MQTT topic for system lifecycle events.
const TopicSystem = "hvac/aircon/controller/system"

// Publisher publishes events to MQTT.
type Publisher interface {
	// Publish sends a state-change event to the broker.
	// Returns error if publishing fails (should not crash the process).
	Publish(event StateEvent) error

	// PublishSystem sends a system lifecycle event to the broker.
	PublishSystem(event SystemEvent) error

	// Close disconnects from the broker.
	Close() error
}

// ConnectionStatus reports whether the MQTT connection is active.
type ConnectionStatus interface {
	IsConnected() bool
}

// StateEvent represents an applied appliance transition.
type StateEvent struct {
	Timestamp time.Time
	State     logic.State
	Command   string // the IR command that carried the transition
}

// SystemEvent represents a system lifecycle event.
type SystemEvent struct {
	Timestamp time.Time
	Event     string // e.g., "BOOT", "FAULT", "SHUTDOWN"
	Reason    string // e.g., "SIGTERM" (shutdown), fault label (fault)
	Boot      *BootInfo
	Fault     *FaultInfo
	Retained  bool // Whether the message should be retained by the broker
}

// BootInfo carries the boot diagnostics report.
type BootInfo struct {
	WatchdogReset bool   `json:"watchdog_reset"`
	ResetCount    uint32 `json:"reset_count"`
	FaultCode     string `json:"fault_code"`
	WindowMs      int64  `json:"window_ms"`
}

// FaultInfo carries the record written on entering a terminal fault branch.
type FaultInfo struct {
	FaultCode  string `json:"fault_code"`
	ResetCount uint32 `json:"reset_count"`
	Label      string `json:"label"`
}

// Payload represents the MQTT message payload structure for state events.
type Payload struct {
	Aircon AirconPayload `json:"aircon"`
}

// AirconPayload contains the state event details.
type AirconPayload struct {
	Timestamp string `json:"timestamp"`
	State     string `json:"state"`
	Command   string `json:"command"`
}

// FormatPayload creates the JSON payload for a state event.
func FormatPayload(event StateEvent) ([]byte, error) {
	payload := Payload{
		Aircon: AirconPayload{
			Timestamp: event.Timestamp.UTC().Format(time.RFC3339),
			State:     event.State.String(),
			Command:   event.Command,
		},
	}
	return json.Marshal(payload)
}

// SystemPayload represents the MQTT message payload for system events.
type SystemPayload struct {
	System SystemPayloadInner `json:"system"`
}

// SystemPayloadInner contains the system event details.
type SystemPayloadInner struct {
	Timestamp string     `json:"timestamp"`
	Event     string     `json:"event"`
	Reason    string     `json:"reason,omitempty"`
	Boot      *BootInfo  `json:"boot,omitempty"`
	Fault     *FaultInfo `json:"fault,omitempty"`
}

// FormatSystemPayload creates the JSON payload for a system event.
func FormatSystemPayload(event SystemEvent) ([]byte, error) {
	payload := SystemPayload{
		System: SystemPayloadInner{
			Timestamp: event.Timestamp.UTC().Format(time.RFC3339),
			Event:     event.Event,
			Reason:    event.Reason,
			Boot:      event.Boot,
			Fault:     event.Fault,
		},
	}
	return json.Marshal(payload)
}
