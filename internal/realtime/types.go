package realtime

import "encoding/json"

// Message is the wire frame in both directions.
type Message struct {
	Type      string          `json:"type"`
	Data      json.RawMessage `json:"data"`
	Timestamp string          `json:"timestamp"`
}

// Listener event names. Wire frame types map onto these; anything the client
// does not recognize is dispatched under its literal wire type.
const (
	EventServiceUpdate   = "serviceUpdate"
	EventWorkspaceUpdate = "workspaceUpdate"
	EventAuthResponse    = "authResponse"
	EventError           = "error"
	EventConnection      = "connection"
)

// Inbound wire frame types.
const (
	frameServiceUpdate   = "service_update"
	frameWorkspaceUpdate = "workspace_update"
	frameAuthResponse    = "auth_response"
	frameError           = "error"
	frameHeartbeat       = "heartbeat"
)

type ServiceUpdate struct {
	ServiceID    string   `json:"service_id"`
	ServiceName  string   `json:"service_name"`
	Status       string   `json:"status"`
	ResponseTime *float64 `json:"response_time,omitempty"`
	ErrorMessage string   `json:"error_message,omitempty"`
	Timestamp    string   `json:"timestamp"`
}

const (
	StatusHealthy   = "healthy"
	StatusUnhealthy = "unhealthy"
	StatusUnknown   = "unknown"
)

type WorkspaceUpdate struct {
	WorkspaceID string          `json:"workspace_id"`
	Action      string          `json:"action"`
	Data        json.RawMessage `json:"data,omitempty"`
	UserID      string          `json:"user_id,omitempty"`
	Timestamp   string          `json:"timestamp"`
}

const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// ConnectionChange is delivered to listeners of EventConnection.
type ConnectionChange struct {
	Status string
	Code   int
	Err    error
}

const (
	ConnStatusConnected    = "connected"
	ConnStatusDisconnected = "disconnected"
	ConnStatusError        = "error"
)

type authPayload struct {
	Token string `json:"token"`
}

type channelsPayload struct {
	Channels []string `json:"channels"`
}
