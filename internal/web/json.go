package web

import (
	"encoding/json"
	"time"

	"github.com/sweeney/aircon-watchdog/internal/status"
)

// StatusJSON is the JSON representation of the daemon status.
type StatusJSON struct {
	Status StatusInner `json:"status"`
}

// StatusInner contains the status details.
type StatusInner struct {
	State         string       `json:"state"`
	Pending       bool         `json:"ir_pending"`
	Halted        bool         `json:"halted"`
	FaultLabel    string       `json:"fault_label,omitempty"`
	UptimeSeconds int64        `json:"uptime_seconds"`
	StartTime     string       `json:"start_time"`
	Timestamp     string       `json:"timestamp"`
	Watchdog      WatchdogJSON `json:"watchdog"`
	MQTT          MQTTStatus   `json:"mqtt"`
	Counts        CountsJSON   `json:"counters"`
	Config        ConfigJSON   `json:"config"`
}

// WatchdogJSON reports liveness timer state and the persisted fault record.
type WatchdogJSON struct {
	Armed         bool   `json:"armed"`
	LastResetWDT  bool   `json:"last_reset_watchdog"`
	ResetCount    uint32 `json:"reset_count"`
	FaultCode     string `json:"fault_code"`
	WindowMs      int64  `json:"window_ms"`
	FeedsThisBoot int    `json:"feeds"`
}

// MQTTStatus reports MQTT connection state.
type MQTTStatus struct {
	Connected bool   `json:"connected"`
	Broker    string `json:"broker"`
}

// CountsJSON is the JSON representation of command counters.
type CountsJSON struct {
	Applied  int `json:"applied"`
	Rejected int `json:"rejected"`
	Faults   int `json:"faults"`
}

// ConfigJSON is the JSON representation of daemon config.
type ConfigJSON struct {
	WindowMs   int64  `json:"window_ms"`
	DebounceMs int64  `json:"debounce_ms"`
	PollMs     int64  `json:"poll_ms"`
	SettleMs   int64  `json:"settle_ms"`
	Broker     string `json:"broker"`
	HTTPAddr   string `json:"http_addr"`
	LircRemote string `json:"lirc_remote"`
}

func formatJSON(snap status.Snapshot) []byte {
	sj := StatusJSON{
		Status: StatusInner{
			State:         snap.State.String(),
			Pending:       snap.Pending,
			Halted:        snap.Halted,
			FaultLabel:    snap.FaultLabel,
			UptimeSeconds: int64(snap.Uptime().Truncate(time.Second).Seconds()),
			StartTime:     snap.StartTime.UTC().Format(time.RFC3339),
			Timestamp:     snap.Now.UTC().Format(time.RFC3339),
			Watchdog: WatchdogJSON{
				Armed:         snap.Armed,
				LastResetWDT:  snap.WatchdogReset,
				ResetCount:    snap.Fault.ResetCount,
				FaultCode:     snap.Fault.Code.String(),
				WindowMs:      snap.Config.WindowMs,
				FeedsThisBoot: snap.Counters.Feeds,
			},
			MQTT: MQTTStatus{Connected: snap.MQTTConnected, Broker: snap.Config.Broker},
			Counts: CountsJSON{
				Applied:  snap.Counters.Applied,
				Rejected: snap.Counters.Rejected,
				Faults:   snap.Counters.Faults,
			},
			Config: ConfigJSON{
				WindowMs:   snap.Config.WindowMs,
				DebounceMs: snap.Config.DebounceMs,
				PollMs:     snap.Config.PollMs,
				SettleMs:   snap.Config.SettleMs,
				Broker:     snap.Config.Broker,
				HTTPAddr:   snap.Config.HTTPAddr,
				LircRemote: snap.Config.LircRemote,
			},
		},
	}

	data, _ := json.MarshalIndent(sj, "", "  ")
	return data
}
