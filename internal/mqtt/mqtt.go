// Package mqtt provides MQTT publishing with abstraction for testing.
package mqtt

import (
	"encoding/json"
	"time"

	"github.com/RouterInfoMan/ecg-pm/internal/sampler"
)

// TopicSamples is the MQTT topic carrying one message per tick.
const TopicSamples = "ecg/sampler/samples"

// TopicSystem is the MQTT topic for system lifecycle events.
const TopicSystem = "ecg/sampler/system"

// Publisher publishes the sample stream to MQTT.
type Publisher interface {
	// Publish sends one sample record to the broker.
	// Returns error if publishing fails (should not crash the process).
	Publish(rec sampler.Record) error

	// PublishSystem sends a system lifecycle event to the broker.
	PublishSystem(event SystemEvent) error

	// Close disconnects from the broker.
	Close() error
}

// ConnectionStatus reports whether the MQTT connection is active.
type ConnectionStatus interface {
	IsConnected() bool
}

// SystemEvent represents a system lifecycle event (e.g., startup, shutdown, heartbeat).
type SystemEvent struct {
	Timestamp  time.Time
	Event      string // e.g., "STARTUP", "SHUTDOWN", "HEARTBEAT"
	Reason     string // e.g., "SIGTERM", "SIGINT" (shutdown only)
	RawPayload []byte // Pre-formatted JSON payload; if set, FormatSystemPayload returns it directly
	Retained   bool   // Whether the message should be retained by the broker
}

// Payload represents the MQTT message payload structure.
type Payload struct {
	Sample SamplePayload `json:"sample"`
}

// SamplePayload contains one sample. Timestamps are omitted: at 250 Hz
// sample timing is implicit in the cadence, and per-message clock reads
// would dominate the payload.
type SamplePayload struct {
	Value   int16 `json:"value"`
	Contact bool  `json:"contact"`
}

// FormatPayload creates the JSON payload for a sample record.
func FormatPayload(rec sampler.Record) ([]byte, error) {
	payload := Payload{
		Sample: SamplePayload{
			Value:   rec.Value,
			Contact: rec.Contact,
		},
	}
	return json.Marshal(payload)
}

// SystemPayload represents the MQTT message payload for system events.
// Used for simple events that don't carry a full status snapshot.
type SystemPayload struct {
	System SystemPayloadInner `json:"system"`
}

// SystemPayloadInner contains the system event details.
type SystemPayloadInner struct {
	Timestamp string `json:"timestamp"`
	Event     string `json:"event"`
	Reason    string `json:"reason,omitempty"`
}

// FormatSystemPayload creates the JSON payload for a system event.
// If event.RawPayload is set, it is returned directly (used for full status snapshots).
func FormatSystemPayload(event SystemEvent) ([]byte, error) {
	if event.RawPayload != nil {
		return event.RawPayload, nil
	}

	payload := SystemPayload{
		System: SystemPayloadInner{
			Timestamp: event.Timestamp.UTC().Format(time.RFC3339),
			Event:     event.Event,
			Reason:    event.Reason,
		},
	}
	return json.Marshal(payload)
}
