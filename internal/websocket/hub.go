package websocket

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

const (
	queueSize   = 64
	clientQueue = 256

	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Dashboards are served from other origins during development.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Message is the frame pushed to every connected dashboard.
type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
	At    time.Time   `json:"at"`
}

type subscriber struct {
	conn *websocket.Conn
	out  chan []byte
}

// Hub fans published events out to connected dashboards. One goroutine
// (Run) owns delivery; Publish only enqueues.
type Hub struct {
	log *logrus.Logger

	queue chan []byte
	join  chan *subscriber
	leave chan *subscriber

	mu   sync.RWMutex
	subs map[*subscriber]struct{}
}

func NewHub(log *logrus.Logger) *Hub {
	return &Hub{
		log:   log,
		queue: make(chan []byte, queueSize),
		join:  make(chan *subscriber),
		leave: make(chan *subscriber),
		subs:  make(map[*subscriber]struct{}),
	}
}

// Publish encodes an event and queues it for delivery. It never blocks:
// when the queue is full the event is dropped and a warning logged.
func (h *Hub) Publish(event string, payload interface{}) {
	frame, err := json.Marshal(Message{Event: event, Data: payload, At: time.Now().UTC()})
	if err != nil {
		h.log.WithError(err).WithField("event", event).Warn("failed to encode websocket event")
		return
	}
	select {
	case h.queue <- frame:
	default:
		h.log.WithField("event", event).Warn("websocket queue full, event dropped")
	}
}

// Subscribers reports how many dashboards are connected.
func (h *Hub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

func (h *Hub) Run() {
	for {
		select {
		case s := <-h.join:
			h.mu.Lock()
			h.subs[s] = struct{}{}
			h.mu.Unlock()
			h.log.WithField("subscribers", h.Subscribers()).Debug("dashboard connected")
		case s := <-h.leave:
			h.drop(s)
		case frame := <-h.queue:
			h.deliver(frame)
		}
	}
}

func (h *Hub) drop(s *subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.subs[s]; ok {
		delete(h.subs, s)
		close(s.out)
	}
}

// deliver hands frame to every subscriber; one whose buffer is full is
// disconnected rather than allowed to stall the others.
func (h *Hub) deliver(frame []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for s := range h.subs {
		select {
		case s.out <- frame:
		default:
			delete(h.subs, s)
			close(s.out)
			h.log.Warn("slow dashboard disconnected")
		}
	}
}

func (s *subscriber) writeLoop() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = s.conn.Close()
	}()
	for {
		select {
		case frame, ok := <-s.out:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = s.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := s.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				return
			}
		case <-ticker.C:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readLoop discards inbound frames and detects when the peer goes away.
func (s *subscriber) readLoop(h *Hub) {
	defer func() {
		h.leave <- s
		_ = s.conn.Close()
	}()
	_ = s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := s.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				h.log.WithError(err).Warn("websocket read failed")
			}
			return
		}
	}
}

// ServeWs upgrades the request and subscribes the connection to the hub.
func ServeWs(hub *Hub, c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		hub.log.WithError(err).Warn("websocket upgrade failed")
		return
	}
	s := &subscriber{conn: conn, out: make(chan []byte, clientQueue)}
	hub.join <- s

	go s.writeLoop()
	go s.readLoop(hub)
}
