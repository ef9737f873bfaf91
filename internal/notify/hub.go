package notify

import (
	"log"
	"net/http"
	"strconv"
	"sync"

	"github.com/gorilla/websocket"

	"pharma-backend/internal/models"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

type client struct {
	conn       *websocket.Conn
	supplierID int // 0 means all suppliers
}

// Hub pushes newly created notifications to connected supplier
// dashboards. Clients connect with ?supplier_id=N to filter; without it
// they receive every notification.
type Hub struct {
	clients    map[*client]bool
	clientsMux sync.Mutex
	broadcast  chan *models.Notification
}

func NewHub() *Hub {
	return &Hub{
		clients:   make(map[*client]bool),
		broadcast: make(chan *models.Notification, 16),
	}
}

// Run drains the broadcast channel. Call it in a goroutine at startup.
func (h *Hub) Run() {
	for n := range h.broadcast {
		h.clientsMux.Lock()
		for c := range h.clients {
			if c.supplierID != 0 && (n.SupplierID == nil || *n.SupplierID != c.supplierID) {
				continue
			}
			if err := c.conn.WriteJSON(n); err != nil {
				c.conn.Close()
				delete(h.clients, c)
			}
		}
		h.clientsMux.Unlock()
	}
}

// Publish queues a notification for delivery. Never blocks request
// handling: if the channel is full the event is dropped, suppliers
// still see it in the list endpoints.
func (h *Hub) Publish(n *models.Notification) {
	select {
	case h.broadcast <- n:
	default:
		log.Printf("[Notify] broadcast buffer full, dropped notification %d", n.ID)
	}
}

func (h *Hub) HandleWS(w http.ResponseWriter, r *http.Request) {
	supplierID, _ := strconv.Atoi(r.URL.Query().Get("supplier_id"))

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("[Notify] WebSocket upgrade error:", err)
		return
	}
	defer conn.Close()

	c := &client{conn: conn, supplierID: supplierID}
	h.clientsMux.Lock()
	h.clients[c] = true
	h.clientsMux.Unlock()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			h.clientsMux.Lock()
			delete(h.clients, c)
			h.clientsMux.Unlock()
			break
		}
	}
}
