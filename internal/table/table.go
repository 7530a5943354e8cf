// Package table owns the authoritative per-table state: membership,
// leadership and the Open/Started/Closed lifecycle. Each table is a single
// goroutine draining an ordered inbox, so join and start operations on the
// same table are serialized while different tables never contend.
package table

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MaxMembers bounds a single table.
const MaxMembers = 10

type State string

const (
	Open    State = "open"
	Started State = "started"
	Closed  State = "closed"
)

var (
	ErrNotJoinable    = errors.New("table is not accepting members")
	ErrFull           = errors.New("table is full")
	ErrNotLeader      = errors.New("only the table leader can start the game")
	ErrAlreadyStarted = errors.New("game already started")
	ErrNotStarted     = errors.New("game not started")
)

// EventType tags an outbound event pushed to member connections.
type EventType string

const EventGameStarted EventType = "GameStarted"

// Event is delivered to every member's outbox on a state transition.
type Event struct {
	Type    EventType
	TableID uuid.UUID
}

type Msg interface{ isTableMsg() }

// Join adds a client and registers its event outbox.
type Join struct {
	ClientID uuid.UUID
	Outbox   chan Event
	Reply    chan error
}

func (Join) isTableMsg() {}

// Leave drops a member. Leaving never fails.
type Leave struct{ ClientID uuid.UUID }

func (Leave) isTableMsg() {}

// Start transitions Open to Started; leader only.
type Start struct {
	ClientID uuid.UUID
	Reply    chan error
}

func (Start) isTableMsg() {}

// Conclude transitions Started to Closed when the game ends.
type Conclude struct{ Reply chan error }

func (Conclude) isTableMsg() {}

// GetInfo reflects internal state without data races.
type GetInfo struct{ Reply chan Info }

func (GetInfo) isTableMsg() {}

type Shutdown struct{}

func (Shutdown) isTableMsg() {}

// Info is a point-in-time view of a table.
type Info struct {
	ID      uuid.UUID
	Leader  uuid.UUID
	State   State
	Members int
}

type Table struct {
	id      uuid.UUID
	leader  uuid.UUID
	state   State
	members map[uuid.UUID]chan Event

	inbox    chan Msg
	snapshot atomic.Pointer[Info]
	ctx      context.Context
	cancel   context.CancelFunc
	log      *zap.Logger
}

// New spawns a table actor in Open state with the creator as leader and
// sole member. The creator's outbox receives broadcasts like any other
// member's.
func New(parent context.Context, id, leader uuid.UUID, leaderOutbox chan Event, log *zap.Logger) *Table {
	ctx, cancel := context.WithCancel(parent)

	t := &Table{
		id:      id,
		leader:  leader,
		state:   Open,
		members: map[uuid.UUID]chan Event{leader: leaderOutbox},
		inbox:   make(chan Msg, 64),
		ctx:     ctx,
		cancel:  cancel,
		log:     log.With(zap.String("table_id", id.String())),
	}
	t.refreshSnapshot()

	go t.loop()
	return t
}

func (t *Table) ID() uuid.UUID { return t.id }

// Inbox exposes the actor's message queue.
func (t *Table) Inbox() chan<- Msg { return t.inbox }

// Snapshot returns the latest published view without touching the inbox,
// so listings never block the actor and the actor never blocks listings.
func (t *Table) Snapshot() Info { return *t.snapshot.Load() }

func (t *Table) refreshSnapshot() {
	info := Info{ID: t.id, Leader: t.leader, State: t.state, Members: len(t.members)}
	t.snapshot.Store(&info)
}

func (t *Table) loop() {
	for {
		select {
		case <-t.ctx.Done():
			t.shutdown()
			return

		case m := <-t.inbox:
			switch msg := m.(type) {
			case Join:
				msg.Reply <- t.handleJoin(msg)

			case Leave:
				delete(t.members, msg.ClientID)
				t.refreshSnapshot()

			case Start:
				msg.Reply <- t.handleStart(msg)

			case Conclude:
				msg.Reply <- t.handleConclude()

			case GetInfo:
				msg.Reply <- Info{ID: t.id, Leader: t.leader, State: t.state, Members: len(t.members)}

			case Shutdown:
				t.shutdown()
				return
			}
		}
	}
}

func (t *Table) handleJoin(msg Join) error {
	if t.state != Open {
		return ErrNotJoinable
	}
	if _, member := t.members[msg.ClientID]; !member && len(t.members) >= MaxMembers {
		return ErrFull
	}
	t.members[msg.ClientID] = msg.Outbox
	t.refreshSnapshot()
	t.log.Debug("client joined", zap.String("client_id", msg.ClientID.String()), zap.Int("members", len(t.members)))
	return nil
}

// handleStart applies the transition and queues the broadcast before the
// reply is sent, so no caller can observe Started ahead of the broadcast.
func (t *Table) handleStart(msg Start) error {
	switch t.state {
	case Started, Closed:
		return ErrAlreadyStarted
	}
	if msg.ClientID != t.leader {
		return ErrNotLeader
	}

	t.state = Started
	t.refreshSnapshot()
	t.broadcast(Event{Type: EventGameStarted, TableID: t.id})
	t.log.Info("game started", zap.Int("members", len(t.members)))
	return nil
}

func (t *Table) handleConclude() error {
	if t.state != Started {
		return ErrNotStarted
	}
	t.state = Closed
	t.refreshSnapshot()
	t.log.Info("game concluded")
	return nil
}

func (t *Table) broadcast(ev Event) {
	for id, ch := range t.members {
		select {
		case ch <- ev:
			// ok
		default:
			// Member is slow/full - drop them.
			close(ch)
			delete(t.members, id)
		}
	}
	t.refreshSnapshot()
}

func (t *Table) shutdown() {
	for id, ch := range t.members {
		close(ch)
		delete(t.members, id)
	}
	t.refreshSnapshot()
	t.cancel()
}
