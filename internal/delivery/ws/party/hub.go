package ws_party

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/humanbelnik/movieparty/internal/model"
	usecase_session "github.com/humanbelnik/movieparty/internal/usecase/session"
)

const (
	EventSessionUpdate      = "SESSION_UPDATE"
	EventParticipantsUpdate = "PARTICIPANTS_UPDATE"

	sendBuffer = 64
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
)

type Event struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

type ParticipantsPayload struct {
	ParticipantsCount int `json:"participants_count"`
}

// Client is one websocket connection of a participant. A participant may hold
// several, e.g. two browser tabs.
type Client struct {
	Conn          *websocket.Conn
	Send          chan []byte
	PartyID       model.PartyID
	ParticipantID model.ParticipantID

	release func()
}

func NewClient(conn *websocket.Conn, partyID model.PartyID, participantID model.ParticipantID, release func()) *Client {
	if release == nil {
		release = func() {}
	}
	return &Client{
		Conn:          conn,
		Send:          make(chan []byte, sendBuffer),
		PartyID:       partyID,
		ParticipantID: participantID,
		release:       release,
	}
}

type Hub struct {
	mu sync.RWMutex

	// clients of every party with at least one open connection
	parties map[model.PartyID]map[*Client]bool

	logger *slog.Logger
}

type Option func(*Hub)

func WithLogger(logger *slog.Logger) Option {
	return func(h *Hub) {
		h.logger = logger
	}
}

func NewHub(opts ...Option) *Hub {
	h := &Hub{
		parties: make(map[model.PartyID]map[*Client]bool),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *Hub) RegisterClient(client *Client) {
	h.mu.Lock()
	if _, ok := h.parties[client.PartyID]; !ok {
		h.parties[client.PartyID] = make(map[*Client]bool)
	}
	h.parties[client.PartyID][client] = true
	h.mu.Unlock()

	h.logger.Info("client registered",
		"party_id", client.PartyID,
		"participant_id", client.ParticipantID)
}

// RemoveClient forgets the client and closes its Send channel. Repeated calls are no-ops.
func (h *Hub) RemoveClient(client *Client) {
	h.mu.Lock()
	clients, ok := h.parties[client.PartyID]
	if !ok || !clients[client] {
		h.mu.Unlock()
		return
	}
	delete(clients, client)
	if len(clients) == 0 {
		delete(h.parties, client.PartyID)
	}
	close(client.Send)
	h.mu.Unlock()

	h.logger.Info("client unregistered",
		"party_id", client.PartyID,
		"participant_id", client.ParticipantID)

	h.BroadcastParticipants(client.PartyID)
}

// Participants is the number of distinct participants connected to the party.
func (h *Hub) Participants(partyID model.PartyID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	seen := make(map[model.ParticipantID]struct{})
	for client := range h.parties[partyID] {
		seen[client.ParticipantID] = struct{}{}
	}
	return len(seen)
}

func (h *Hub) BroadcastParticipants(partyID model.PartyID) {
	h.sendTo(partyID, func(*Client) bool { return true }, Event{
		Type:    EventParticipantsUpdate,
		Payload: ParticipantsPayload{ParticipantsCount: h.Participants(partyID)},
	})
}

// SendView pushes a session snapshot to every connection of its participant.
// It is the registry's change listener.
func (h *Hub) SendView(view usecase_session.View) {
	h.sendTo(view.PartyID, func(c *Client) bool {
		return c.ParticipantID == view.ParticipantID
	}, Event{
		Type:    EventSessionUpdate,
		Payload: view,
	})
}

func (h *Hub) sendTo(partyID model.PartyID, match func(*Client) bool, event Event) {
	message, err := json.Marshal(event)
	if err != nil {
		h.logger.Error("failed to encode event", "type", event.Type, "error", err)
		return
	}

	var slow []*Client
	h.mu.RLock()
	for client := range h.parties[partyID] {
		if !match(client) {
			continue
		}
		select {
		case client.Send <- message:
		default:
			slow = append(slow, client)
		}
	}
	h.mu.RUnlock()

	for _, client := range slow {
		h.logger.Warn("dropping slow client", "party_id", partyID, "participant_id", client.ParticipantID)
		h.RemoveClient(client)
	}
}

// StartClientReading drains the connection until it fails, then unregisters the client.
func (h *Hub) StartClientReading(client *Client) {
	defer func() {
		h.RemoveClient(client)
		client.Conn.Close()
		client.release()
	}()

	client.Conn.SetReadLimit(512)
	_ = client.Conn.SetReadDeadline(time.Now().Add(pongWait))
	client.Conn.SetPongHandler(func(string) error {
		return client.Conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := client.Conn.ReadMessage(); err != nil {
			break
		}
	}
}

func (h *Hub) StartClientWriting(client *Client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		client.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-client.Send:
			_ = client.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = client.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := client.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			_ = client.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := client.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
