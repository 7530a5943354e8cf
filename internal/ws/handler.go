// Package ws routes websocket traffic: it enforces the handshake-first
// ordering policy, authenticates every message against the registry, and
// dispatches table commands to the hub and table actors.
package ws

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/donovanclay/texas-holdem/internal/hub"
	"github.com/donovanclay/texas-holdem/internal/protocol"
	"github.com/donovanclay/texas-holdem/internal/registry"
	"github.com/donovanclay/texas-holdem/internal/table"
)

const writeTimeout = 3 * time.Second

type Router struct {
	hub              *hub.Hub
	reg              *registry.Registry
	handshakeTimeout time.Duration
	log              *zap.Logger
}

func NewRouter(h *hub.Hub, reg *registry.Registry, handshakeTimeout time.Duration, log *zap.Logger) *Router {
	return &Router{hub: h, reg: reg, handshakeTimeout: handshakeTimeout, log: log.Named("ws")}
}

// conn holds per-connection routing state. All fields are owned by the
// reader goroutine; outbound traffic funnels through out.
type conn struct {
	rt       *Router
	ws       *websocket.Conn
	ctx      context.Context
	cancel   context.CancelFunc
	out      chan protocol.ServerMessage
	clientID uuid.UUID
	joined   map[uuid.UUID]*table.Table
}

func (rt *Router) Handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ws, err := websocket.Accept(w, r, nil)
		if err != nil {
			return
		}
		defer ws.Close(websocket.StatusNormalClosure, "bye")

		ctx, cancel := context.WithCancel(r.Context())
		defer cancel()

		c := &conn{
			rt:     rt,
			ws:     ws,
			ctx:    ctx,
			cancel: cancel,
			out:    make(chan protocol.ServerMessage, 16),
			joined: make(map[uuid.UUID]*table.Table),
		}

		go c.writeLoop()
		c.serve()
	}
}

// writeLoop is the sole writer on the socket.
func (c *conn) writeLoop() {
	for {
		select {
		case <-c.ctx.Done():
			return
		case msg := <-c.out:
			payload, err := protocol.Encode(msg)
			if err != nil {
				c.rt.log.Error("encode outbound message", zap.Error(err))
				continue
			}
			ctx, cancel := context.WithTimeout(c.ctx, writeTimeout)
			err = c.ws.Write(ctx, websocket.MessageText, payload)
			cancel()
			if err != nil {
				c.cancel()
				return
			}
		}
	}
}

// writeNow writes a message synchronously, bypassing the outbound queue.
// Only safe while nothing has been queued on out.
func (c *conn) writeNow(msg protocol.ServerMessage) {
	payload, err := protocol.Encode(msg)
	if err != nil {
		return
	}
	ctx, cancel := context.WithTimeout(c.ctx, writeTimeout)
	defer cancel()
	_ = c.ws.Write(ctx, websocket.MessageText, payload)
}

// send queues an outbound message without ever blocking past shutdown.
func (c *conn) send(msg protocol.ServerMessage) {
	select {
	case c.out <- msg:
	case <-c.ctx.Done():
	}
}

func (c *conn) serve() {
	defer c.teardown()

	if !c.handshake() {
		return
	}

	for {
		_, data, err := c.ws.Read(c.ctx)
		if err != nil {
			return
		}

		m, err := protocol.Parse(data)
		if err != nil {
			c.send(protocol.Error(protocol.CodeBadMessage, err.Error()))
			continue
		}
		c.dispatch(m)
	}
}

// handshake enforces the ordering policy: the connection's first message
// must be a Handshake, delivered before the idle timeout.
func (c *conn) handshake() bool {
	ctx, cancel := context.WithTimeout(c.ctx, c.rt.handshakeTimeout)
	_, data, err := c.ws.Read(ctx)
	cancel()
	if err != nil {
		return false
	}

	m, err := protocol.Parse(data)
	if err != nil || m.Type != protocol.TypeHandshake {
		// Written directly: teardown follows immediately and must not
		// race the async writer, which has nothing queued before
		// authentication.
		c.writeNow(protocol.Error(protocol.CodeUnauthenticated, "first message must be Handshake"))
		return false
	}

	id, err := c.rt.reg.Handshake()
	if err != nil {
		c.rt.log.Error("handshake", zap.Error(err))
		return false
	}
	c.clientID = id
	c.rt.log.Debug("client connected", zap.String("client_id", id.String()))
	c.send(protocol.HandshakeOk(id))
	return true
}

func (c *conn) dispatch(m protocol.ClientMessage) {
	if m.Type == protocol.TypeHandshake {
		c.send(protocol.Error(protocol.CodeBadMessage, "already authenticated"))
		return
	}

	// Every post-handshake message must carry the id issued to this
	// connection; anything else is rejected without touching state.
	if m.ClientID != c.clientID || !c.rt.reg.IsKnown(m.ClientID) {
		c.send(protocol.Error(protocol.CodeUnauthenticated, "unknown client id"))
		return
	}

	switch m.Type {
	case protocol.TypeStartNewTable:
		c.handleStartNewTable()
	case protocol.TypeQueryTables:
		c.handleQueryTables()
	case protocol.TypeJoinTable:
		c.handleJoinTable(m.TableID)
	case protocol.TypeStartGame:
		c.handleStartGame(m.TableID)
	}
}

func (c *conn) handleStartNewTable() {
	events := make(chan table.Event, 8)
	reply := make(chan *table.Table, 1)
	c.rt.hub.Inbox() <- hub.Create{Leader: c.clientID, Outbox: events, Reply: reply}
	tbl := <-reply

	c.joined[tbl.ID()] = tbl
	go c.pumpEvents(events)
	c.send(protocol.StartNewTableOk(tbl.ID()))
}

func (c *conn) handleQueryTables() {
	reply := make(chan []table.Info, 1)
	c.rt.hub.Inbox() <- hub.List{Reply: reply}
	infos := <-reply

	entries := make([]protocol.TableEntry, 0, len(infos))
	for _, info := range infos {
		entries = append(entries, protocol.TableEntry{TableID: info.ID, MemberCount: info.Members})
	}
	c.send(protocol.TablesInfo(entries))
}

func (c *conn) handleJoinTable(tableID uuid.UUID) {
	tbl := c.lookup(tableID)
	if tbl == nil {
		c.send(protocol.Error(protocol.CodeTableNotFound, "no such table"))
		return
	}

	events := make(chan table.Event, 8)
	reply := make(chan error, 1)
	tbl.Inbox() <- table.Join{ClientID: c.clientID, Outbox: events, Reply: reply}
	if err := <-reply; err != nil {
		c.send(errorFor(err))
		return
	}

	c.joined[tbl.ID()] = tbl
	go c.pumpEvents(events)
	c.send(protocol.JoinTableOk(c.clientID, tbl.ID()))
}

func (c *conn) handleStartGame(tableID uuid.UUID) {
	tbl := c.lookup(tableID)
	if tbl == nil {
		c.send(protocol.Error(protocol.CodeTableNotFound, "no such table"))
		return
	}

	reply := make(chan error, 1)
	tbl.Inbox() <- table.Start{ClientID: c.clientID, Reply: reply}
	if err := <-reply; err != nil {
		c.send(errorFor(err))
		return
	}
	// Success is announced by the GameStarted broadcast, queued by the
	// table actor before the reply above was sent.
}

func (c *conn) lookup(tableID uuid.UUID) *table.Table {
	reply := make(chan *table.Table, 1)
	c.rt.hub.Inbox() <- hub.Get{ID: tableID, Reply: reply}
	return <-reply
}

// pumpEvents forwards one table's broadcasts to the connection writer.
// The table actor closes the channel when the member is dropped.
func (c *conn) pumpEvents(events <-chan table.Event) {
	for {
		select {
		case <-c.ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			switch ev.Type {
			case table.EventGameStarted:
				c.send(protocol.GameStarted(ev.TableID))
			}
		}
	}
}

func (c *conn) teardown() {
	c.cancel()
	for _, tbl := range c.joined {
		// Bounded send: a busy inbox gets a grace period, but a table
		// already torn down by the hub no longer drains its inbox and
		// must not wedge the disconnect path.
		t := time.NewTimer(writeTimeout)
		select {
		case tbl.Inbox() <- table.Leave{ClientID: c.clientID}:
		case <-t.C:
		}
		t.Stop()
	}
	if c.clientID != uuid.Nil {
		c.rt.reg.Release(c.clientID)
		c.rt.log.Debug("client disconnected", zap.String("client_id", c.clientID.String()))
	}
}

// errorFor maps table errors onto wire error codes.
func errorFor(err error) protocol.ServerMessage {
	switch {
	case errors.Is(err, table.ErrNotJoinable):
		return protocol.Error(protocol.CodeTableNotJoinable, err.Error())
	case errors.Is(err, table.ErrFull):
		return protocol.Error(protocol.CodeTableFull, err.Error())
	case errors.Is(err, table.ErrNotLeader):
		return protocol.Error(protocol.CodeNotLeader, err.Error())
	case errors.Is(err, table.ErrAlreadyStarted):
		return protocol.Error(protocol.CodeAlreadyStarted, err.Error())
	default:
		return protocol.Error(protocol.CodeBadMessage, err.Error())
	}
}
