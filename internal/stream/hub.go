// Package stream fans dashboard updates out to the websocket connections of
// open dashboard pages.
package stream

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/guttosm/coinpulse/internal/logger"
)

// DefaultBuffer is the number of undelivered messages kept per client.
const DefaultBuffer = 4

var (
	// ErrNotStarted is returned by Subscribe before Start.
	ErrNotStarted = errors.New("hub not started")
	// ErrStopped is returned by Subscribe after the hub stopped.
	ErrStopped = errors.New("hub stopped")
)

// Client is one subscription. Messages arrive on C until the client is
// unsubscribed or the hub stops, then C is closed.
type Client struct {
	id uint64
	ch chan []byte
}

// C returns the delivery channel.
func (c *Client) C() <-chan []byte { return c.ch }

// Hub is an actor: one goroutine owns the client set and all changes reach it
// through channels.
type Hub struct {
	buffer   int
	audience *Audience
	clients map[uint64]*Client
	subCh   chan *Client
	unsubCh chan *Client
	pubCh   chan []byte
	done    chan struct{}
	started atomic.Bool
	count   atomic.Int64
	nextID  atomic.Uint64
}

// NewHub returns a stopped hub; buffer < 1 selects DefaultBuffer. When
// audience is not nil every subscription joins it and leaves it again on
// unsubscribe or shutdown.
func NewHub(buffer int, audience *Audience) *Hub {
	if buffer < 1 {
		buffer = DefaultBuffer
	}
	return &Hub{
		buffer:   buffer,
		audience: audience,
		clients: make(map[uint64]*Client),
		subCh:   make(chan *Client),
		unsubCh: make(chan *Client),
		pubCh:   make(chan []byte),
		done:    make(chan struct{}),
	}
}

// Start runs the hub until ctx is done.
func (h *Hub) Start(ctx context.Context) error {
	if !h.started.CompareAndSwap(false, true) {
		return errors.New("hub already started")
	}
	go h.run(ctx)
	return nil
}

// Subscribe registers a new client.
func (h *Hub) Subscribe() (*Client, error) {
	if !h.started.Load() {
		return nil, ErrNotStarted
	}
	c := &Client{id: h.nextID.Add(1), ch: make(chan []byte, h.buffer)}
	select {
	case h.subCh <- c:
		return c, nil
	case <-h.done:
		return nil, ErrStopped
	}
}

// Unsubscribe removes c and closes its channel. Unknown clients are ignored.
func (h *Hub) Unsubscribe(c *Client) {
	select {
	case h.unsubCh <- c:
	case <-h.done:
	}
}

// Publish delivers msg to every client. Slow clients lose their oldest
// buffered message instead of blocking the hub.
func (h *Hub) Publish(msg []byte) {
	if !h.started.Load() {
		return
	}
	select {
	case h.pubCh <- msg:
	case <-h.done:
	}
}

// Count returns the number of subscribed clients.
func (h *Hub) Count() int { return int(h.count.Load()) }

func (h *Hub) run(ctx context.Context) {
	log := logger.Component("stream")
	defer func() {
		h.count.Store(0)
		close(h.done)
		for id, c := range h.clients {
			close(c.ch)
			delete(h.clients, id)
			h.leave()
		}
		log.Info().Msg("hub stopped")
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case c := <-h.subCh:
			h.clients[c.id] = c
			h.count.Store(int64(len(h.clients)))
			if h.audience != nil {
				h.audience.Join()
			}
		case c := <-h.unsubCh:
			if _, ok := h.clients[c.id]; ok {
				delete(h.clients, c.id)
				close(c.ch)
				h.count.Store(int64(len(h.clients)))
				h.leave()
			}
		case msg := <-h.pubCh:
			for _, c := range h.clients {
				select {
				case c.ch <- msg:
				default:
					log.Debug().Uint64("client", c.id).Msg("client too slow, dropping oldest update")
					select {
					case <-c.ch:
					default:
					}
					select {
					case c.ch <- msg:
					default:
					}
				}
			}
		}
	}
}

func (h *Hub) leave() {
	if h.audience != nil {
		h.audience.Leave()
	}
}
