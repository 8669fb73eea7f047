package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// Send/receive timing configuration and message size limits.
const (
	writeWait    = 10 * time.Second
	pongWait     = 60 * time.Second
	pingPeriod   = (pongWait * 9) / 10
	maxMsgSize   = 1 << 12 // 4 KB
	tickInterval = 1 * time.Second
)

// Envelope used for WebSocket messages.
type wsEnvelope struct {
	Type  string      `json:"type"`
	Data  interface{} `json:"data,omitempty"`
	Error string      `json:"error,omitempty"`
}

// timerCommand is what the client sends: start, pause or reset.
type timerCommand struct {
	Type string `json:"type"`
}

// timerTick is pushed every second while the timer runs. Elapsed is
// formatted "MM:SS" so the client can drop it straight into the
// draft's brew_time on resume.
type timerTick struct {
	Elapsed   string `json:"elapsed"`
	ElapsedMS int64  `json:"elapsed_ms"`
	Running   bool   `json:"running"`
}

// Upgrader for HTTP -> WebSocket.
var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true }, // TODO: restrict origins for production
}

// wsTimer runs a server-driven brew timer on one connection. The timer
// is per-connection state only; losing the socket loses nothing the
// client cannot rebuild from its own clock.
func (h *Handler) wsTimer(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		if h.log != nil {
			h.log.Errorw("ws_upgrade_failed", "err", err)
		}
		return
	}
	defer func() { _ = conn.Close() }()

	// Configure read limits and pong handler to extend read deadline.
	conn.SetReadLimit(maxMsgSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	// Reader goroutine: parses commands and detects disconnects. quit
	// unblocks the reader if the writer loop exits first.
	commands := make(chan string)
	done := make(chan struct{})
	quit := make(chan struct{})
	defer close(quit)
	go h.readTimerCommands(conn, commands, done, quit)

	ticker := time.NewTicker(tickInterval)
	ping := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		ping.Stop()
	}()

	var (
		running   bool
		elapsed   time.Duration
		lastStart time.Time
	)
	current := func() time.Duration {
		if running {
			return elapsed + time.Since(lastStart)
		}
		return elapsed
	}
	send := func() error {
		d := current()
		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		return conn.WriteJSON(wsEnvelope{Type: "tick", Data: timerTick{
			Elapsed:   formatElapsed(d),
			ElapsedMS: d.Milliseconds(),
			Running:   running,
		}})
	}

	// Send the initial zero state immediately.
	if err := send(); err != nil {
		if h.log != nil {
			h.log.Infow("ws_write_failed_initial", "err", err)
		}
		return
	}

	for {
		select {
		case <-done:
			return
		case <-c.Request.Context().Done():
			return
		case cmd := <-commands:
			switch cmd {
			case "start":
				if !running {
					running = true
					lastStart = time.Now()
				}
			case "pause":
				if running {
					elapsed += time.Since(lastStart)
					running = false
				}
			case "reset":
				running = false
				elapsed = 0
			default:
				_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
				_ = conn.WriteJSON(wsEnvelope{Type: "error", Error: "unknown command: " + cmd})
				continue
			}
			if err := send(); err != nil {
				return
			}
		case <-ping.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				if h.log != nil {
					h.log.Infow("ws_ping_failed", "err", err)
				}
				return
			}
		case <-ticker.C:
			if !running {
				continue
			}
			if err := send(); err != nil {
				if h.log != nil {
					h.log.Infow("ws_write_failed", "err", err)
				}
				return
			}
		}
	}
}

// readTimerCommands drains incoming messages, forwarding valid command
// types and closing done on disconnect.
func (h *Handler) readTimerCommands(conn *websocket.Conn, commands chan<- string, done chan<- struct{}, quit <-chan struct{}) {
	defer close(done)
	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if h.log != nil {
				h.log.Infow("ws_read_closed", "err", err)
			}
			return
		}
		var cmd timerCommand
		if err := json.Unmarshal(msg, &cmd); err != nil || cmd.Type == "" {
			continue
		}
		select {
		case commands <- cmd.Type:
		case <-quit:
			return
		}
	}
}

// formatElapsed renders a duration as "MM:SS", capping at 99:59.
func formatElapsed(d time.Duration) string {
	total := int(d / time.Second)
	if total > 99*60+59 {
		total = 99*60 + 59
	}
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}
