/*
Package notify pushes status changes to connected frontends. It wraps the
pure recompute with a change channel at the boundary; the core itself never
pushes anything.
*/
package notify

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sasha-s/go-deadlock"

	"bountyninja/bountyninja"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = pongWait / 2
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// StatusChange is what subscribers receive whenever a task's derived status
// differs from the last derivation.
type StatusChange struct {
	TaskAddress string `json:"task_address"`
	Status      string `json:"status"`
	At          int64  `json:"at"`
}

type Broadcaster struct {
	mutex   *deadlock.Mutex
	clients map[*websocket.Conn]struct{}
	last    map[string]string
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{
		mutex:   &deadlock.Mutex{},
		clients: make(map[*websocket.Conn]struct{}),
		last:    make(map[string]string),
	}
}

// Handler upgrades an HTTP request into a status subscription.
func (b *Broadcaster) Handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			bountyninja.LogCLI(err.Error(), 2)
			return
		}
		b.mutex.Lock()
		b.clients[conn] = struct{}{}
		b.mutex.Unlock()
		go b.keepAlive(conn)
	}
}

func (b *Broadcaster) keepAlive(conn *websocket.Conn) {
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	ticker := time.NewTicker(pingPeriod)
	done := make(chan struct{})
	defer func() {
		close(done)
		ticker.Stop()
		b.drop(conn)
	}()
	go func() {
		for {
			select {
			case <-ticker.C:
				conn.SetWriteDeadline(time.Now().Add(writeWait))
				if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
					return
				}
			case <-done:
				return
			}
		}
	}()
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (b *Broadcaster) drop(conn *websocket.Conn) {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	delete(b.clients, conn)
	conn.Close()
}

// Publish fans a status change out to every subscriber, but only when the
// status actually changed since the last publication for that task.
func (b *Broadcaster) Publish(taskAddress, status string) {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	if b.last[taskAddress] == status {
		return
	}
	b.last[taskAddress] = status
	change := StatusChange{TaskAddress: taskAddress, Status: status, At: time.Now().Unix()}
	for conn := range b.clients {
		conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteJSON(change); err != nil {
			delete(b.clients, conn)
			conn.Close()
		}
	}
}
