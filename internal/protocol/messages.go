// Package protocol defines the wire schema: internally tagged JSON
// messages with a "type" field, identifiers serialized as canonical UUID
// strings and opaque to clients.
package protocol

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

type Type string

const (
	TypeHandshake       Type = "Handshake"
	TypeHandshakeOk     Type = "HandshakeOk"
	TypeStartNewTable   Type = "StartNewTable"
	TypeStartNewTableOk Type = "StartNewTableOk"
	TypeQueryTables     Type = "QueryTables"
	TypeTablesInfo      Type = "TablesInfo"
	TypeJoinTable       Type = "JoinTable"
	TypeJoinTableOk     Type = "JoinTableOk"
	TypeStartGame       Type = "StartGame"
	TypeGameStarted     Type = "GameStarted"
	TypeError           Type = "Error"
)

// Error codes carried by Error messages.
const (
	CodeUnauthenticated  = "unauthenticated"
	CodeTableNotFound    = "table_not_found"
	CodeTableNotJoinable = "table_not_joinable"
	CodeTableFull        = "table_full"
	CodeNotLeader        = "not_leader"
	CodeAlreadyStarted   = "already_started"
	CodeBadMessage       = "bad_message"
)

// ClientMessage is any inbound message. Fields beyond Type are present
// only where the message type requires them.
type ClientMessage struct {
	Type     Type      `json:"type"`
	ClientID uuid.UUID `json:"client_id"`
	TableID  uuid.UUID `json:"table_id"`
}

// Parse decodes and validates an inbound message: the type must be one a
// client may send, and its required identifier fields must be present.
func Parse(data []byte) (ClientMessage, error) {
	var m ClientMessage
	if err := json.Unmarshal(data, &m); err != nil {
		return ClientMessage{}, fmt.Errorf("bad json: %w", err)
	}

	switch m.Type {
	case TypeHandshake:
		return m, nil
	case TypeStartNewTable, TypeQueryTables:
		if m.ClientID == uuid.Nil {
			return ClientMessage{}, fmt.Errorf("%s: missing client_id", m.Type)
		}
		return m, nil
	case TypeJoinTable, TypeStartGame:
		if m.ClientID == uuid.Nil {
			return ClientMessage{}, fmt.Errorf("%s: missing client_id", m.Type)
		}
		if m.TableID == uuid.Nil {
			return ClientMessage{}, fmt.Errorf("%s: missing table_id", m.Type)
		}
		return m, nil
	default:
		return ClientMessage{}, fmt.Errorf("unknown message type %q", m.Type)
	}
}

// TableEntry is one row of a TablesInfo listing.
type TableEntry struct {
	TableID     uuid.UUID `json:"table_id"`
	MemberCount int       `json:"member_count"`
}

// ServerMessage is any outbound message.
type ServerMessage struct {
	Type     Type         `json:"type"`
	ClientID *uuid.UUID   `json:"client_id,omitempty"`
	TableID  *uuid.UUID   `json:"table_id,omitempty"`
	Tables   []TableEntry `json:"tables,omitempty"`
	Code     string       `json:"code,omitempty"`
	Message  string       `json:"message,omitempty"`
}

func HandshakeOk(clientID uuid.UUID) ServerMessage {
	return ServerMessage{Type: TypeHandshakeOk, ClientID: &clientID}
}

func StartNewTableOk(tableID uuid.UUID) ServerMessage {
	return ServerMessage{Type: TypeStartNewTableOk, TableID: &tableID}
}

// TablesInfo lists open tables. An empty listing omits the tables field;
// clients treat absence as an empty list.
func TablesInfo(tables []TableEntry) ServerMessage {
	return ServerMessage{Type: TypeTablesInfo, Tables: tables}
}

func JoinTableOk(clientID, tableID uuid.UUID) ServerMessage {
	return ServerMessage{Type: TypeJoinTableOk, ClientID: &clientID, TableID: &tableID}
}

func GameStarted(tableID uuid.UUID) ServerMessage {
	return ServerMessage{Type: TypeGameStarted, TableID: &tableID}
}

func Error(code, message string) ServerMessage {
	return ServerMessage{Type: TypeError, Code: code, Message: message}
}

// Encode marshals an outbound message to its wire form.
func Encode(m ServerMessage) ([]byte, error) {
	return json.Marshal(m)
}
