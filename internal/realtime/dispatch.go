package realtime

import (
	"encoding/json"
	"reflect"

	"estation-client/internal/logging"
)

// Callback receives dispatched payloads. Known kinds deliver typed values
// (ServiceUpdate, WorkspaceUpdate, ConnectionChange); everything else
// delivers the raw json.RawMessage from the frame.
type Callback func(payload any)

// On registers cb for an event kind. Registration has set semantics keyed
// by the callback's function identity: adding the same function twice is
// idempotent and it will be invoked once per dispatch.
func (c *Client) On(event string, cb Callback) {
	if cb == nil {
		return
	}
	c.addListener(event, callbackKey(cb), cb)
}

// Off removes a callback previously registered with On.
func (c *Client) Off(event string, cb Callback) {
	if cb == nil {
		return
	}
	c.removeListener(event, callbackKey(cb))
}

// OnServiceUpdate registers a typed listener for service health pushes.
func (c *Client) OnServiceUpdate(fn func(ServiceUpdate)) {
	if fn == nil {
		return
	}
	c.addListener(EventServiceUpdate, callbackKey(fn), func(payload any) {
		if update, ok := payload.(ServiceUpdate); ok {
			fn(update)
		}
	})
}

func (c *Client) OffServiceUpdate(fn func(ServiceUpdate)) {
	if fn == nil {
		return
	}
	c.removeListener(EventServiceUpdate, callbackKey(fn))
}

// OnWorkspaceUpdate registers a typed listener for workspace mutations made
// by other users.
func (c *Client) OnWorkspaceUpdate(fn func(WorkspaceUpdate)) {
	if fn == nil {
		return
	}
	c.addListener(EventWorkspaceUpdate, callbackKey(fn), func(payload any) {
		if update, ok := payload.(WorkspaceUpdate); ok {
			fn(update)
		}
	})
}

func (c *Client) OffWorkspaceUpdate(fn func(WorkspaceUpdate)) {
	if fn == nil {
		return
	}
	c.removeListener(EventWorkspaceUpdate, callbackKey(fn))
}

// OnConnectionChange registers a typed listener for connection lifecycle
// events.
func (c *Client) OnConnectionChange(fn func(ConnectionChange)) {
	if fn == nil {
		return
	}
	c.addListener(EventConnection, callbackKey(fn), func(payload any) {
		if change, ok := payload.(ConnectionChange); ok {
			fn(change)
		}
	})
}

func (c *Client) OffConnectionChange(fn func(ConnectionChange)) {
	if fn == nil {
		return
	}
	c.removeListener(EventConnection, callbackKey(fn))
}

// callbackKey identifies a callback by its function entry point. Distinct
// closures created from the same source line share a key; registrations
// are deduplicated accordingly.
func callbackKey(fn any) uintptr {
	return reflect.ValueOf(fn).Pointer()
}

func (c *Client) addListener(event string, key uintptr, cb Callback) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.destroyed {
		return
	}
	set := c.listeners[event]
	if set == nil {
		set = map[uintptr]Callback{}
		c.listeners[event] = set
	}
	set[key] = cb
}

func (c *Client) removeListener(event string, key uintptr) {
	c.mu.Lock()
	defer c.mu.Unlock()
	set := c.listeners[event]
	if set == nil {
		return
	}
	delete(set, key)
	if len(set) == 0 {
		delete(c.listeners, event)
	}
}

// emit notifies every listener registered for event. A panicking listener
// is logged and does not suppress delivery to the others.
func (c *Client) emit(event string, payload any) {
	c.mu.Lock()
	set := c.listeners[event]
	callbacks := make([]Callback, 0, len(set))
	for _, cb := range set {
		callbacks = append(callbacks, cb)
	}
	c.mu.Unlock()

	for _, cb := range callbacks {
		c.invoke(event, cb, payload)
	}
}

func (c *Client) invoke(event string, cb Callback, payload any) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("realtime listener panicked",
				logging.Field("event", event),
				logging.Field("panic", r),
			)
		}
	}()
	cb(payload)
}

// handleFrame decodes one inbound frame and dispatches it. Malformed frames
// are logged and dropped; they never break the connection.
func (c *Client) handleFrame(gen int, data []byte) {
	c.mu.Lock()
	stale := c.destroyed || c.gen != gen
	c.mu.Unlock()
	if stale {
		return
	}

	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		c.logger.Warn("dropping malformed realtime frame", logging.Field("error", err))
		return
	}

	switch msg.Type {
	case frameServiceUpdate:
		var update ServiceUpdate
		if err := json.Unmarshal(msg.Data, &update); err != nil {
			c.logger.Warn("dropping malformed service update", logging.Field("error", err))
			return
		}
		c.emit(EventServiceUpdate, update)
	case frameWorkspaceUpdate:
		var update WorkspaceUpdate
		if err := json.Unmarshal(msg.Data, &update); err != nil {
			c.logger.Warn("dropping malformed workspace update", logging.Field("error", err))
			return
		}
		c.emit(EventWorkspaceUpdate, update)
	case frameAuthResponse:
		c.emit(EventAuthResponse, msg.Data)
	case frameError:
		c.emit(EventError, msg.Data)
	case frameHeartbeat:
		// Liveness probe, transparent to consumers.
		c.Send("heartbeat_response", struct{}{})
	default:
		// Forward-compatible passthrough keyed by the literal frame type.
		c.emit(msg.Type, msg.Data)
	}
}
