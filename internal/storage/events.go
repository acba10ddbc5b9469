package storage

import "time"

// EventWriter is the interface for writing compute events.
// Write() must NEVER block the caller.
type EventWriter interface {
	Write(event *ComputeEvent)
	Close()
}

// ComputeEvent represents a single dispatcher invocation to be persisted.
type ComputeEvent struct {
	RequestID  string
	ClientID   string
	Timestamp  time.Time
	Slug       string
	EngineID   string
	InputsJSON string
	ResultKind string // "fields", "text", "error", "note"
	Error      string
	Primary    string
	LatencyMs  float32
	Source     string
}
