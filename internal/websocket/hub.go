package websocket

import "github.com/rs/zerolog/log"

type userMessage struct {
	userID int64
	data   []byte
}

// Hub maintains the set of active clients and delivers messages to them. All
// map access happens on the Run goroutine, fed through channels.
type Hub struct {
	// Registered clients.
	clients map[*Client]bool

	// Register requests from the clients.
	Register chan *Client

	// Unregister requests from clients.
	Unregister chan *Client

	// Messages addressed to a single user's clients.
	broadcast chan userMessage

	// A map of user IDs to the set of clients logged in as that user.
	subscriptions map[int64]map[*Client]bool
}

// NewHub creates a new Hub.
func NewHub() *Hub {
	return &Hub{
		Register:      make(chan *Client),
		Unregister:    make(chan *Client),
		broadcast:     make(chan userMessage),
		clients:       make(map[*Client]bool),
		subscriptions: make(map[int64]map[*Client]bool),
	}
}

// Run starts the Hub's message processing loop.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.clients[client] = true
			h.addSubscription(client)
			log.Info().Int("total_clients", len(h.clients)).Msg("Client connected")
		case client := <-h.Unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
				h.removeSubscription(client)
				log.Info().Int("total_clients", len(h.clients)).Msg("Client disconnected")
			}
		case msg := <-h.broadcast:
			for client := range h.subscriptions[msg.userID] {
				select {
				case client.Send <- msg.data:
				default:
					close(client.Send)
					delete(h.clients, client)
					delete(h.subscriptions[msg.userID], client)
				}
			}
		}
	}
}

// BroadcastTo sends a message to every client logged in as the given user.
func (h *Hub) BroadcastTo(userID int64, message []byte) {
	h.broadcast <- userMessage{userID: userID, data: message}
}

func (h *Hub) addSubscription(client *Client) {
	if h.subscriptions[client.UserID] == nil {
		h.subscriptions[client.UserID] = make(map[*Client]bool)
	}
	h.subscriptions[client.UserID][client] = true
}

func (h *Hub) removeSubscription(client *Client) {
	if subs, ok := h.subscriptions[client.UserID]; ok {
		delete(subs, client)
		if len(subs) == 0 {
			delete(h.subscriptions, client.UserID)
		}
	}
}
