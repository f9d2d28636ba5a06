// Package realtime maintains the live connection to the eStation push
// endpoint: authenticate and subscribe on every (re)connection, fan inbound
// frames out to listeners by kind, and reconnect with a bounded linear ramp
// after unexpected loss.
package realtime

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"estation-client/internal/config"
	"estation-client/internal/logging"
	"estation-client/internal/session"
)

const (
	defaultReconnectInterval    = 5 * time.Second
	defaultMaxReconnectInterval = 30 * time.Second
	defaultMaxReconnectAttempts = 10
	closeWriteTimeout           = 5 * time.Second
)

// DefaultChannels are subscribed immediately after every successful
// connection.
var DefaultChannels = []string{"services", "workspaces"}

type Config struct {
	URL        string
	SessionKey string
	// Channels overrides DefaultChannels when non-nil.
	Channels []string
	// ReconnectInterval scales the linear reconnect ramp; attempt n waits
	// min(n×interval, MaxReconnectInterval).
	ReconnectInterval    time.Duration
	MaxReconnectInterval time.Duration
	// MaxReconnectAttempts bounds automatic reconnects; a manual Connect()
	// resumes after exhaustion.
	MaxReconnectAttempts int
	Dialer               *websocket.Dialer
	Logger               *logging.Logger
}

type Client struct {
	cfg      Config
	sessions session.Store
	logger   *logging.Logger

	mu                sync.Mutex
	conn              *websocket.Conn
	state             State
	destroyed         bool
	reconnectAttempts int
	reconnectTimer    *time.Timer
	// gen invalidates dial results and read loops that outlive their
	// connection (a Destroy or a newer Connect).
	gen int

	listeners map[string]map[uintptr]Callback

	writeMu sync.Mutex
}

func New(cfg Config, sessions session.Store) *Client {
	if sessions == nil {
		panic("realtime.New: session store must not be nil")
	}
	if cfg.URL == "" {
		cfg.URL = config.DefaultWSURL
	}
	if cfg.SessionKey == "" {
		cfg.SessionKey = config.DefaultSessionKey
	}
	if cfg.ReconnectInterval <= 0 {
		cfg.ReconnectInterval = defaultReconnectInterval
	}
	if cfg.MaxReconnectInterval <= 0 {
		cfg.MaxReconnectInterval = defaultMaxReconnectInterval
	}
	if cfg.MaxReconnectAttempts <= 0 {
		cfg.MaxReconnectAttempts = defaultMaxReconnectAttempts
	}
	if cfg.Channels == nil {
		cfg.Channels = DefaultChannels
	}
	if cfg.Dialer == nil {
		cfg.Dialer = websocket.DefaultDialer
	}
	return &Client{
		cfg:       cfg,
		sessions:  sessions,
		logger:    cfg.Logger,
		state:     StateDisconnected,
		listeners: map[string]map[uintptr]Callback{},
	}
}

// FromSettings builds a client from validated configuration.
func FromSettings(settings config.Settings, sessions session.Store, logger *logging.Logger) *Client {
	return New(Config{
		URL:        settings.WSURL,
		SessionKey: settings.SessionKey,
		Logger:     logger,
	}, sessions)
}

// Connect starts a connection attempt and returns immediately. It is a
// no-op while already connecting or connected, and after Destroy.
func (c *Client) Connect() {
	c.mu.Lock()
	if c.destroyed || c.state == StateConnecting || c.state == StateConnected {
		c.mu.Unlock()
		return
	}
	c.state = StateConnecting
	c.gen++
	gen := c.gen
	c.mu.Unlock()

	c.logger.Debug("connecting to realtime endpoint", logging.Field("url", c.cfg.URL))
	go c.dial(gen)
}

func (c *Client) dial(gen int) {
	conn, resp, err := c.cfg.Dialer.Dial(c.cfg.URL, nil)
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}

	c.mu.Lock()
	if c.destroyed || c.gen != gen {
		c.mu.Unlock()
		if conn != nil {
			conn.Close()
		}
		return
	}

	if err != nil {
		c.state = StateDisconnected
		c.scheduleReconnectLocked()
		c.mu.Unlock()
		c.logger.Warn("realtime connection failed", logging.Field("error", err))
		c.emit(EventConnection, ConnectionChange{Status: ConnStatusError, Err: err})
		return
	}

	c.conn = conn
	c.state = StateConnected
	c.reconnectAttempts = 0
	c.mu.Unlock()

	c.logger.Info("realtime connection established", logging.Field("url", c.cfg.URL))
	c.emit(EventConnection, ConnectionChange{Status: ConnStatusConnected})

	// Authenticate first so the subscribe lands on an authorized session. A
	// credential deleted between read and use is tolerated; the server's
	// auth_response carries the rejection.
	if token, ok := c.sessions.Get(c.cfg.SessionKey); ok && token != "" {
		c.Send("auth", authPayload{Token: token})
	}
	c.Send("subscribe", channelsPayload{Channels: c.cfg.Channels})

	go c.readLoop(conn, gen)
}

func (c *Client) readLoop(conn *websocket.Conn, gen int) {
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			c.handleClose(gen, err)
			return
		}
		c.handleFrame(gen, data)
	}
}

func (c *Client) handleClose(gen int, err error) {
	code := websocket.CloseAbnormalClosure
	if closeErr, ok := err.(*websocket.CloseError); ok {
		code = closeErr.Code
	}

	c.mu.Lock()
	if c.destroyed || c.gen != gen {
		c.mu.Unlock()
		return
	}
	c.conn = nil
	c.state = StateDisconnected
	if code != websocket.CloseNormalClosure {
		c.scheduleReconnectLocked()
	}
	c.mu.Unlock()

	c.logger.Debug("realtime connection closed",
		logging.Field("code", code),
		logging.Field("error", err),
	)
	c.emit(EventConnection, ConnectionChange{Status: ConnStatusDisconnected, Code: code, Err: err})
}

// scheduleReconnectLocked arms the reconnect timer. Caller holds c.mu.
func (c *Client) scheduleReconnectLocked() {
	if c.reconnectAttempts >= c.cfg.MaxReconnectAttempts {
		c.logger.Warn("realtime reconnect attempts exhausted",
			logging.Field("attempts", c.reconnectAttempts),
		)
		return
	}
	c.reconnectAttempts++
	delay := reconnectDelay(c.cfg.ReconnectInterval, c.cfg.MaxReconnectInterval, c.reconnectAttempts)
	c.logger.Debug("scheduling realtime reconnect",
		logging.Field("attempt", c.reconnectAttempts),
		logging.Field("delay", delay.String()),
	)
	c.reconnectTimer = time.AfterFunc(delay, c.Connect)
}

// reconnectDelay is the linear ramp capped at maxDelay: base, 2×base, ...
func reconnectDelay(base, maxDelay time.Duration, attempt int) time.Duration {
	delay := time.Duration(attempt) * base
	if delay > maxDelay {
		return maxDelay
	}
	return delay
}

// Send wraps data in a wire frame and transmits it. Outside the connected
// state it is a logged no-op: nothing is queued and nothing fails.
func (c *Client) Send(kind string, data any) {
	c.mu.Lock()
	conn := c.conn
	connected := c.state == StateConnected && conn != nil
	c.mu.Unlock()

	if !connected {
		c.logger.Warn("dropping realtime message, connection not open", logging.Field("type", kind))
		return
	}

	payload, err := json.Marshal(data)
	if err != nil {
		c.logger.Warn("failed to encode realtime message",
			logging.Field("type", kind),
			logging.Field("error", err),
		)
		return
	}
	frame, err := json.Marshal(Message{
		Type:      kind,
		Data:      payload,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		c.logger.Warn("failed to encode realtime frame", logging.Field("error", err))
		return
	}

	c.writeMu.Lock()
	err = conn.WriteMessage(websocket.TextMessage, frame)
	c.writeMu.Unlock()
	if err != nil {
		c.logger.Warn("realtime send failed",
			logging.Field("type", kind),
			logging.Field("error", err),
		)
	}
}

// Subscribe asks the server to start pushing updates for channels.
func (c *Client) Subscribe(channels []string) {
	c.Send("subscribe", channelsPayload{Channels: channels})
}

// Unsubscribe asks the server to stop pushing updates for channels.
func (c *Client) Unsubscribe(channels []string) {
	c.Send("unsubscribe", channelsPayload{Channels: channels})
}

func (c *Client) IsConnected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state == StateConnected
}

func (c *Client) ConnectionState() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Destroy tears the client down: pending reconnects are cancelled, the
// transport is closed with the graceful code, and all listeners are
// dropped. No events fire afterwards; the instance cannot be reused.
func (c *Client) Destroy() {
	c.mu.Lock()
	if c.destroyed {
		c.mu.Unlock()
		return
	}
	c.destroyed = true
	c.state = StateClosing
	c.gen++
	if c.reconnectTimer != nil {
		c.reconnectTimer.Stop()
		c.reconnectTimer = nil
	}
	conn := c.conn
	c.conn = nil
	c.listeners = nil
	c.state = StateDisconnected
	c.mu.Unlock()

	if conn != nil {
		deadline := time.Now().Add(closeWriteTimeout)
		message := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "client destroyed")
		if err := conn.WriteControl(websocket.CloseMessage, message, deadline); err != nil {
			c.logger.Debug("realtime close frame not sent", logging.Field("error", err))
		}
		conn.Close()
	}
	c.logger.Debug("realtime client destroyed")
}
