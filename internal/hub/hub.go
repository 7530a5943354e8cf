// Package hub owns the process-wide table set. A single actor goroutine
// serializes creation and removal; listings read per-table snapshots and
// never wait on a table's own inbox.
package hub

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/donovanclay/texas-holdem/internal/table"
)

type HubMsg interface{ isHubMsg() }

// Create mints a fresh table in Open state led by Leader.
type Create struct {
	Leader uuid.UUID
	Outbox chan table.Event
	Reply  chan *table.Table
}

// Get looks a table up by id.
type Get struct {
	ID    uuid.UUID
	Reply chan *table.Table // May be nil
}

// List replies with a point-in-time view of every open table.
type List struct {
	Reply chan []table.Info
}

// Remove drops a table from the set.
type Remove struct {
	ID uuid.UUID
}

type ShutdownHub struct{}

func (Create) isHubMsg()      {}
func (Get) isHubMsg()         {}
func (List) isHubMsg()        {}
func (Remove) isHubMsg()      {}
func (ShutdownHub) isHubMsg() {}

type Hub struct {
	inbox    chan HubMsg
	tables   map[uuid.UUID]*table.Table
	ctx      context.Context
	cancel   context.CancelFunc
	log      *zap.Logger
	tableLog *zap.Logger
}

func NewHub(parent context.Context, log *zap.Logger) *Hub {
	ctx, cancel := context.WithCancel(parent)
	h := &Hub{
		inbox:    make(chan HubMsg, 64),
		tables:   make(map[uuid.UUID]*table.Table),
		ctx:      ctx,
		cancel:   cancel,
		log:      log.Named("hub"),
		tableLog: log.Named("table"),
	}
	go h.loop()
	return h
}

func (h *Hub) Inbox() chan<- HubMsg { return h.inbox }

func (h *Hub) loop() {
	for {
		select {
		case <-h.ctx.Done():
			h.shutdown()
			return

		case m := <-h.inbox:
			switch msg := m.(type) {
			case Create:
				id := h.freshID()
				tbl := table.New(h.ctx, id, msg.Leader, msg.Outbox, h.tableLog)
				h.tables[id] = tbl
				h.log.Info("table created",
					zap.String("table_id", id.String()),
					zap.String("leader_id", msg.Leader.String()))
				msg.Reply <- tbl

			case Get:
				msg.Reply <- h.tables[msg.ID]

			case List:
				infos := make([]table.Info, 0, len(h.tables))
				for _, tbl := range h.tables {
					if info := tbl.Snapshot(); info.State == table.Open {
						infos = append(infos, info)
					}
				}
				msg.Reply <- infos

			case Remove:
				if tbl := h.tables[msg.ID]; tbl != nil {
					tbl.Inbox() <- table.Shutdown{}
					delete(h.tables, msg.ID)
				}

			case ShutdownHub:
				h.shutdown()
				return
			}
		}
	}
}

// freshID re-rolls on the (vanishing) chance a random id is already taken.
func (h *Hub) freshID() uuid.UUID {
	for {
		id := uuid.New()
		if _, taken := h.tables[id]; !taken {
			return id
		}
	}
}

func (h *Hub) shutdown() {
	for id, tbl := range h.tables {
		tbl.Inbox() <- table.Shutdown{}
		delete(h.tables, id)
	}
	h.cancel()
}
