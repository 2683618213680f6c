package server

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rxtech-lab/argo-strategy-lab/internal/logger"
	"github.com/rxtech-lab/argo-strategy-lab/internal/marketdata"
	"github.com/rxtech-lab/argo-strategy-lab/internal/metrics"
	"github.com/rxtech-lab/argo-strategy-lab/internal/types"
	"go.uber.org/zap"
)

const (
	clientBuffer = 16
	pingInterval = 30 * time.Second
	readTimeout  = 60 * time.Second
	writeTimeout = 10 * time.Second
)

// TickerMessage is the envelope pushed to websocket clients.
type TickerMessage struct {
	Type    string         `json:"type"`
	Tickers []types.Ticker `json:"tickers"`
	Time    time.Time      `json:"ts"`
}

type tickerClient struct {
	conn *websocket.Conn
	send chan []byte
}

// TickerHub polls a ticker feed and fans each snapshot out to websocket
// clients. New clients receive the latest snapshot on connect. Slow clients
// miss updates instead of blocking the hub.
type TickerHub struct {
	feed      marketdata.TickerFeed
	symbols   []string
	interval  time.Duration
	collector *metrics.Collector
	logger    *logger.Logger
	upgrader  websocket.Upgrader

	mu      sync.RWMutex
	clients map[*tickerClient]struct{}
	latest  []byte
	closed  bool
	now     func() time.Time
}

func NewTickerHub(feed marketdata.TickerFeed, symbols []string, interval time.Duration, collector *metrics.Collector, log *logger.Logger) *TickerHub {
	if len(symbols) == 0 {
		symbols = marketdata.DefaultTickerSymbols
	}

	if interval <= 0 {
		interval = 5 * time.Second
	}

	if log == nil {
		log = logger.NewNopLogger()
	}

	return &TickerHub{
		feed:      feed,
		symbols:   symbols,
		interval:  interval,
		collector: collector,
		logger:    log,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		clients: make(map[*tickerClient]struct{}),
		now:     time.Now,
	}
}

// Run polls until ctx is cancelled, then disconnects every client. The hub
// refuses new clients afterwards.
func (h *TickerHub) Run(ctx context.Context) {
	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	h.Poll(ctx)

	for {
		select {
		case <-ctx.Done():
			h.closeAll()

			return
		case <-ticker.C:
			h.Poll(ctx)
		}
	}
}

// Poll fetches one snapshot and broadcasts it. Feed failures are logged and
// the previous snapshot is kept.
func (h *TickerHub) Poll(ctx context.Context) {
	tickers, err := h.feed.Tickers(ctx, h.symbols)
	if err != nil {
		h.logger.Warn("Failed to fetch tickers", zap.Error(err))

		return
	}

	payload, err := json.Marshal(TickerMessage{Type: "tickers", Tickers: tickers, Time: h.now().UTC()})
	if err != nil {
		h.logger.Error("Failed to encode tickers", zap.Error(err))

		return
	}

	h.mu.Lock()
	h.latest = payload

	for client := range h.clients {
		select {
		case client.send <- payload:
		default:
		}
	}

	count := len(h.clients)
	h.mu.Unlock()

	h.collector.ObserveBroadcast(count)
}

// ClientCount returns the number of connected clients.
func (h *TickerHub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.clients)
}

// Closed reports whether Run has stopped and the hub no longer accepts clients.
func (h *TickerHub) Closed() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return h.closed
}

// ServeHTTP upgrades the request and streams snapshots until the peer leaves.
func (h *TickerHub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.Closed() {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "ticker stream is closed"})

		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("Websocket upgrade failed", zap.Error(err))

		return
	}

	client := &tickerClient{conn: conn, send: make(chan []byte, clientBuffer)}

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "ticker stream is closed"),
			time.Now().Add(writeTimeout))
		conn.Close()

		return
	}

	h.clients[client] = struct{}{}
	if h.latest != nil {
		client.send <- h.latest
	}
	count := len(h.clients)
	h.mu.Unlock()

	h.logger.Debug("Ticker client connected", zap.Int("clients", count))

	go h.writePump(client)
	h.readPump(client)
}

func (h *TickerHub) remove(client *tickerClient) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		close(client.send)
	}
}

func (h *TickerHub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.closed = true

	for client := range h.clients {
		delete(h.clients, client)
		close(client.send)
	}
}

func (h *TickerHub) writePump(client *tickerClient) {
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		client.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-client.send:
			client.conn.SetWriteDeadline(time.Now().Add(writeTimeout))

			if !ok {
				client.conn.WriteMessage(websocket.CloseMessage, []byte{})

				return
			}

			if err := client.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			client.conn.SetWriteDeadline(time.Now().Add(writeTimeout))

			if err := client.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump discards client messages and detects disconnects.
func (h *TickerHub) readPump(client *tickerClient) {
	defer func() {
		h.remove(client)
		h.logger.Debug("Ticker client disconnected")
	}()

	client.conn.SetReadLimit(512)
	client.conn.SetReadDeadline(time.Now().Add(readTimeout))
	client.conn.SetPongHandler(func(string) error {
		client.conn.SetReadDeadline(time.Now().Add(readTimeout))

		return nil
	})

	for {
		if _, _, err := client.conn.ReadMessage(); err != nil {
			return
		}
	}
}
