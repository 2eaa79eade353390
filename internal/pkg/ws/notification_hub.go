package ws

import (
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

type listener struct {
	id   string
	conn *websocket.Conn
}

// NotificationHub fans events out to every websocket listening on a topic.
// Listeners are tracked by a generated id rather than the remote address,
// which is not unique behind a proxy.
type NotificationHub struct {
	registrationMutex sync.Mutex
	listeners         map[string][]listener
}

func NewNotificationHub() *NotificationHub {
	return &NotificationHub{
		listeners: make(map[string][]listener),
	}
}

func (hub *NotificationHub) RegisterListener(topic string, conn *websocket.Conn) string {
	hub.registrationMutex.Lock()
	defer hub.registrationMutex.Unlock()

	id := uuid.NewString()
	hub.listeners[topic] = append(hub.listeners[topic], listener{id: id, conn: conn})
	return id
}

func (hub *NotificationHub) UnregisterListener(topic string, listenerId string) {
	hub.registrationMutex.Lock()
	defer hub.registrationMutex.Unlock()

	remaining := hub.listeners[topic][:0]
	for _, l := range hub.listeners[topic] {
		if l.id != listenerId {
			remaining = append(remaining, l)
		}
	}

	if len(remaining) == 0 {
		delete(hub.listeners, topic)
		return
	}
	hub.listeners[topic] = remaining
}

func (hub *NotificationHub) Publish(topic string, event any) {
	hub.registrationMutex.Lock()
	defer hub.registrationMutex.Unlock()

	for _, l := range hub.listeners[topic] {
		_ = l.conn.WriteJSON(event)
	}
}
