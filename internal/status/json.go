package status

import (
	"encoding/json"
	"time"
)

// Signal quality labels reported over JSON.
const (
	SignalGood    = "GOOD"
	SignalLeadOff = "LEAD_OFF"
	SignalUnknown = "UNKNOWN"
)

// StatusJSON is the top-level JSON envelope for status output.
type StatusJSON struct {
	Status StatusInner `json:"status"`
}

// StatusInner contains the status details.
type StatusInner struct {
	Event         string       `json:"event,omitempty"`
	Reason        string       `json:"reason,omitempty"`
	Signal        string       `json:"signal"`
	LastValue     int16        `json:"last_value"`
	Indicator     string       `json:"indicator"`
	Ready         bool         `json:"ready"`
	UptimeSeconds int64        `json:"uptime_seconds"`
	StartTime     string       `json:"start_time"`
	Timestamp     string       `json:"timestamp"`
	MQTT          MQTTStatus   `json:"mqtt"`
	Counts        CountsJSON   `json:"tick_counts"`
	Network       *NetworkJSON `json:"network,omitempty"`
	Config        ConfigJSON   `json:"config"`
}

// MQTTStatus reports MQTT connection state.
type MQTTStatus struct {
	Connected bool   `json:"connected"`
	Broker    string `json:"broker"`
}

// CountsJSON is the JSON representation of tick counts.
type CountsJSON struct {
	Ticks     uint64 `json:"ticks"`
	NoContact uint64 `json:"no_contact_ticks"`
}

// NetworkJSON is the JSON representation of network info.
type NetworkJSON struct {
	Type       string `json:"type"`
	IP         string `json:"ip"`
	Status     string `json:"status"`
	Gateway    string `json:"gateway"`
	WifiStatus string `json:"wifi_status"`
	SSID       string `json:"ssid"`
}

// ConfigJSON is the JSON representation of daemon config.
type ConfigJSON struct {
	PeriodMs    int64  `json:"period_ms"`
	HeartbeatMs int64  `json:"heartbeat_ms"`
	Broker      string `json:"broker"`
	HTTPAddr    string `json:"http_addr"`
	PinLED      int    `json:"pin_led"`
	PinLOPlus   int    `json:"pin_lo_plus"`
	PinLOMinus  int    `json:"pin_lo_minus"`
	ADCChannel  int    `json:"adc_channel"`
}

// SignalString maps a snapshot to its signal quality label.
// UNKNOWN is reported until the first tick completes.
func SignalString(snap Snapshot) string {
	if !snap.HasSample {
		return SignalUnknown
	}
	if snap.Contact {
		return SignalGood
	}
	return SignalLeadOff
}

func buildInner(snap Snapshot) StatusInner {
	indicator := "OFF"
	if snap.IndicatorOn {
		indicator = "ON"
	}

	return StatusInner{
		Signal:        SignalString(snap),
		LastValue:     snap.LastValue,
		Indicator:     indicator,
		Ready:         snap.HasSample,
		UptimeSeconds: int64(snap.Uptime().Truncate(time.Second).Seconds()),
		StartTime:     snap.StartTime.UTC().Format(time.RFC3339),
		Timestamp:     snap.Now.UTC().Format(time.RFC3339),
		MQTT:          MQTTStatus{Connected: snap.MQTTConnected, Broker: snap.Config.Broker},
		Counts: CountsJSON{
			Ticks:     snap.Counts.Ticks,
			NoContact: snap.Counts.NoContact,
		},
		Config: ConfigJSON{
			PeriodMs:    snap.Config.PeriodMs,
			HeartbeatMs: snap.Config.HeartbeatMs,
			Broker:      snap.Config.Broker,
			HTTPAddr:    snap.Config.HTTPAddr,
			PinLED:      snap.Config.PinLED,
			PinLOPlus:   snap.Config.PinLOPlus,
			PinLOMinus:  snap.Config.PinLOMinus,
			ADCChannel:  snap.Config.ADCChannel,
		},
	}
}

func buildNetwork(snap Snapshot, inner *StatusInner) {
	if snap.Network != nil {
		inner.Network = &NetworkJSON{
			Type:       snap.Network.Type,
			IP:         snap.Network.IP,
			Status:     snap.Network.Status,
			Gateway:    snap.Network.Gateway,
			WifiStatus: snap.Network.WifiStatus,
			SSID:       snap.Network.SSID,
		}
	}
}

// FormatJSON returns the JSON status for the web endpoint (no event/reason).
func FormatJSON(snap Snapshot) []byte {
	inner := buildInner(snap)
	buildNetwork(snap, &inner)

	data, _ := json.MarshalIndent(StatusJSON{Status: inner}, "", "  ")
	return data
}

// FormatStatusEvent returns the JSON status for an MQTT system event.
func FormatStatusEvent(snap Snapshot, event, reason string) []byte {
	inner := buildInner(snap)
	inner.Event = event
	inner.Reason = reason
	buildNetwork(snap, &inner)

	data, _ := json.Marshal(StatusJSON{Status: inner})
	return data
}
