// This file is part of Gophertas.
//
// Gophertas is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Gophertas is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Gophertas.  If not, see <https://www.gnu.org/licenses/>.

package studio

import (
	"context"
	"errors"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/jetsetilly/gophertas/curated"
	"github.com/jetsetilly/gophertas/logger"
	"github.com/jetsetilly/gophertas/notifications"
	"github.com/jetsetilly/gophertas/playback"
)

// BridgeError is the sentinel pattern for errors returned by the Bridge.
const BridgeError = "studio: %v"

// Path of the websocket endpoint.
const Path = "/studio"

// number of messages queued for a client before the client is dropped
const clientBuffer = 64

const writeTimeout = 5 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type client struct {
	conn *websocket.Conn
	send chan string
}

// Bridge between the playback engine and studio clients. Implements the
// playback.Observer and notifications.Notify interfaces.
type Bridge struct {
	addr string

	crit    sync.Mutex
	clients map[*client]bool
	last    string

	onCommand func(Command)

	srv *http.Server
	ln  net.Listener
}

// NewBridge is the preferred method of initialisation for the Bridge type.
// The Bridge does not listen on the address until Start() is called.
func NewBridge(addr string) *Bridge {
	return &Bridge{
		addr:    addr,
		clients: make(map[*client]bool),
	}
}

// OnCommand sets the function that receives commands from clients. The
// function is called from the goroutine serving the client.
func (b *Bridge) OnCommand(f func(Command)) {
	b.crit.Lock()
	defer b.crit.Unlock()
	b.onCommand = f
}

// Handler returns the http.Handler serving the websocket endpoint.
func (b *Bridge) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(Path, b.serve)
	return mux
}

// Start listening for clients. The bridge is closed when the context is
// cancelled.
func (b *Bridge) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", b.addr)
	if err != nil {
		return curated.Errorf(BridgeError, err)
	}

	b.crit.Lock()
	b.ln = ln
	b.srv = &http.Server{Handler: b.Handler(), ReadHeaderTimeout: 10 * time.Second}
	srv := b.srv
	b.crit.Unlock()

	go func() {
		err := srv.Serve(ln)
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log(logger.Allow, "studio", curated.Errorf(BridgeError, err))
		}
	}()

	go func() {
		<-ctx.Done()
		_ = b.Close()
	}()

	logger.Logf(logger.Allow, "studio", "listening on %s", ln.Addr())

	return nil
}

// Addr returns the address the bridge is listening on. Returns the address
// given to NewBridge() if Start() has not been called.
func (b *Bridge) Addr() string {
	b.crit.Lock()
	defer b.crit.Unlock()
	if b.ln != nil {
		return b.ln.Addr().String()
	}
	return b.addr
}

// Close the server and disconnect all clients.
func (b *Bridge) Close() error {
	b.crit.Lock()
	srv := b.srv
	b.srv = nil
	for c := range b.clients {
		b.drop(c)
	}
	b.crit.Unlock()

	if srv == nil {
		return nil
	}
	if err := srv.Close(); err != nil {
		return curated.Errorf(BridgeError, err)
	}
	return nil
}

// Clients returns the number of connected clients.
func (b *Bridge) Clients() int {
	b.crit.Lock()
	defer b.crit.Unlock()
	return len(b.clients)
}

// Publish implements the playback.Observer interface.
func (b *Bridge) Publish(s playback.Summary) {
	msg := EncodeSummary(s)

	b.crit.Lock()
	defer b.crit.Unlock()
	b.last = msg
	b.broadcast(msg)
}

// Notify implements the notifications.Notify interface.
func (b *Bridge) Notify(notice notifications.Notice, detail string) error {
	b.crit.Lock()
	defer b.crit.Unlock()
	b.broadcast(encodeToast(notice, detail))
	return nil
}

// broadcast never blocks. clients that can not accept the message are
// dropped. must be called with the critical section held
func (b *Bridge) broadcast(msg string) {
	for c := range b.clients {
		select {
		case c.send <- msg:
		default:
			logger.Log(logger.Allow, "studio", "dropping slow client")
			b.drop(c)
		}
	}
}

// must be called with the critical section held
func (b *Bridge) drop(c *client) {
	if b.clients[c] {
		delete(b.clients, c)
		close(c.send)
	}
}

func (b *Bridge) serve(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Log(logger.Allow, "studio", curated.Errorf(BridgeError, err))
		return
	}

	c := &client{
		conn: conn,
		send: make(chan string, clientBuffer),
	}

	b.crit.Lock()
	b.clients[c] = true
	if b.last != "" {
		c.send <- b.last
	}
	b.crit.Unlock()

	go c.write()

	defer func() {
		b.crit.Lock()
		b.drop(c)
		b.crit.Unlock()
	}()

	for {
		mt, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		if mt != websocket.TextMessage {
			continue
		}

		cmd, err := DecodeCommand(string(data))
		if err != nil {
			logger.Log(logger.Allow, "studio", err)
			continue
		}

		b.crit.Lock()
		f := b.onCommand
		b.crit.Unlock()
		if f != nil {
			f(cmd)
		}
	}
}

// write messages to the client until the send channel is closed
func (c *client) write() {
	defer c.conn.Close()
	for msg := range c.send {
		_ = c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := c.conn.WriteMessage(websocket.TextMessage, []byte(msg)); err != nil {
			return
		}
	}
	_ = c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}
