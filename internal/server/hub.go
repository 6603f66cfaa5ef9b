package server

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"sysmon_pro/internal/collector"
	_const "sysmon_pro/internal/const"
	"sysmon_pro/internal/logger"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  _const.ReadBufferSize,
	WriteBufferSize: _const.WriteBufferSize,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Hub broadcasts periodic snapshots to every connected websocket client.
// Collections only run while at least one client is connected, so idle
// deployments never pay the CPU settle wait.
type Hub struct {
	logger    *logger.Logger
	collector *collector.Collector

	mutex    sync.Mutex
	clients  map[*streamClient]struct{}
	interval time.Duration

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

type streamClient struct {
	conn *websocket.Conn
	send chan []byte
}

// NewHub creates a stopped hub.
func NewHub(log *logger.Logger, col *collector.Collector, interval time.Duration) *Hub {
	ctx, cancel := context.WithCancel(context.Background())
	return &Hub{
		logger:    log,
		collector: col,
		clients:   make(map[*streamClient]struct{}),
		interval:  interval,
		ctx:       ctx,
		cancel:    cancel,
	}
}

// Start launches the broadcast loop.
func (h *Hub) Start() {
	h.wg.Add(1)
	go h.broadcastLoop()
}

// Stop terminates the loop and closes every client connection.
func (h *Hub) Stop() {
	h.cancel()
	h.wg.Wait()

	h.mutex.Lock()
	defer h.mutex.Unlock()
	for client := range h.clients {
		close(client.send)
		client.conn.Close()
	}
	h.clients = make(map[*streamClient]struct{})
}

// SetInterval updates the broadcast interval; takes effect on the next tick.
func (h *Hub) SetInterval(interval time.Duration) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	h.interval = interval
}

// Serve upgrades the request and registers the client. Authentication has
// already happened in the HTTP layer.
func (h *Hub) Serve(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("WebSocket upgrade failed: %v", err)
		return
	}

	client := &streamClient{
		conn: conn,
		send: make(chan []byte, 4),
	}

	h.mutex.Lock()
	h.clients[client] = struct{}{}
	count := len(h.clients)
	h.mutex.Unlock()
	h.logger.Info("Stream client connected from %s (%d active)", r.RemoteAddr, count)

	go h.writePump(client)
	go h.readPump(client)
}

func (h *Hub) broadcastLoop() {
	defer h.wg.Done()

	for {
		h.mutex.Lock()
		interval := h.interval
		h.mutex.Unlock()

		select {
		case <-h.ctx.Done():
			return
		case <-time.After(interval):
		}

		h.mutex.Lock()
		count := len(h.clients)
		h.mutex.Unlock()
		if count == 0 {
			continue
		}

		snapshot, err := h.collector.Collect(h.ctx)
		if err != nil {
			h.logger.Error("Stream collection failed: %v", err)
			continue
		}

		data, err := json.Marshal(snapshot)
		if err != nil {
			h.logger.Error("Failed to encode snapshot: %v", err)
			continue
		}

		h.mutex.Lock()
		for client := range h.clients {
			select {
			case client.send <- data:
			default:
				// 客户端消费过慢，丢帧而不是阻塞广播
			}
		}
		h.mutex.Unlock()
	}
}

func (h *Hub) writePump(client *streamClient) {
	ticker := time.NewTicker(_const.PingInterval)
	defer ticker.Stop()

	for {
		select {
		case data, ok := <-client.send:
			if !ok {
				return
			}
			client.conn.SetWriteDeadline(time.Now().Add(_const.WriteWait))
			if err := client.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				h.drop(client)
				return
			}
		case <-ticker.C:
			client.conn.SetWriteDeadline(time.Now().Add(_const.WriteWait))
			if err := client.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				h.drop(client)
				return
			}
		}
	}
}

func (h *Hub) readPump(client *streamClient) {
	client.conn.SetReadDeadline(time.Now().Add(_const.PongWait))
	client.conn.SetPongHandler(func(string) error {
		client.conn.SetReadDeadline(time.Now().Add(_const.PongWait))
		return nil
	})

	for {
		if _, _, err := client.conn.ReadMessage(); err != nil {
			h.drop(client)
			return
		}
	}
}

func (h *Hub) drop(client *streamClient) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	if _, ok := h.clients[client]; !ok {
		return
	}
	delete(h.clients, client)
	close(client.send)
	client.conn.Close()
	h.logger.Info("Stream client disconnected (%d active)", len(h.clients))
}
