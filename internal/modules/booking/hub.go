package booking

import (
	"sync"
	"time"

	"sibiria/internal/domain"

	"github.com/gorilla/websocket"
)

// Hub fans booking events out to every connected admin socket.
type Hub struct {
	mutex       sync.RWMutex
	nextID      int64
	connections map[int64]*websocket.Conn
}

func NewHub() *Hub {
	return &Hub{
		connections: make(map[int64]*websocket.Conn),
	}
}

type bookingEvent struct {
	Event     string    `json:"event"`
	BookingID int64     `json:"booking_id"`
	RoomID    int64     `json:"room_id"`
	CheckIn   time.Time `json:"check_in"`
	CheckOut  time.Time `json:"check_out"`
	Status    string    `json:"status"`
}

func (h *Hub) Register(conn *websocket.Conn) int64 {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	h.nextID++
	h.connections[h.nextID] = conn
	return h.nextID
}

func (h *Hub) Unregister(id int64) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if conn, exists := h.connections[id]; exists && conn != nil {
		_ = conn.Close()
		delete(h.connections, id)
	}
}

// BookingCreated broadcasts to every socket; writes that fail drop the
// connection.
func (h *Hub) BookingCreated(b *domain.Booking) {
	event := bookingEvent{
		Event:     "booking.created",
		BookingID: b.ID,
		RoomID:    b.RoomID,
		CheckIn:   b.CheckIn,
		CheckOut:  b.CheckOut,
		Status:    string(b.Status),
	}

	h.mutex.Lock()
	defer h.mutex.Unlock()
	for id, conn := range h.connections {
		if conn == nil {
			delete(h.connections, id)
			continue
		}
		if err := conn.WriteJSON(event); err != nil {
			_ = conn.Close()
			delete(h.connections, id)
		}
	}
}

func (h *Hub) ConnectionCount() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	return len(h.connections)
}

func (h *Hub) Close() {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	for id, conn := range h.connections {
		if conn != nil {
			_ = conn.Close()
		}
		delete(h.connections, id)
	}
}
