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

package studio_test

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/jetsetilly/gophertas/hotkeys"
	"github.com/jetsetilly/gophertas/notifications"
	"github.com/jetsetilly/gophertas/playback"
	"github.com/jetsetilly/gophertas/studio"
	"github.com/jetsetilly/gophertas/test"
	"github.com/tidwall/gjson"
)

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	wsURL := "ws" + strings.TrimPrefix(url, "http") + studio.Path
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial failed: %v (resp=%v)", err, resp)
	}
	return conn
}

func read(t *testing.T, conn *websocket.Conn) string {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	_, msg, err := conn.ReadMessage()
	test.DemandSuccess(t, err)
	return string(msg)
}

func TestBridge(t *testing.T) {
	b := studio.NewBridge("")

	commands := make(chan studio.Command, 1)
	b.OnCommand(func(cmd studio.Command) {
		commands <- cmd
	})

	srv := httptest.NewServer(b.Handler())
	defer srv.Close()
	defer b.Close()

	// new clients receive the latest summary
	b.Publish(playback.Summary{CurrentFrame: 1})
	conn := dial(t, srv.URL)
	defer conn.Close()

	msg := read(t, conn)
	test.ExpectEquality(t, gjson.Get(msg, "type").String(), "summary")
	test.ExpectEquality(t, gjson.Get(msg, "currentFrame").Int(), int64(1))
	test.ExpectEquality(t, b.Clients(), 1)

	b.Publish(playback.Summary{CurrentFrame: 2})
	msg = read(t, conn)
	test.ExpectEquality(t, gjson.Get(msg, "currentFrame").Int(), int64(2))

	test.ExpectSuccess(t, b.Notify(notifications.NotifyBreakpointReached, "10"))
	msg = read(t, conn)
	test.ExpectEquality(t, gjson.Get(msg, "type").String(), "toast")
	test.ExpectEquality(t, gjson.Get(msg, "notice").String(), string(notifications.NotifyBreakpointReached))
	test.ExpectEquality(t, gjson.Get(msg, "detail").String(), "10")

	// bad commands are ignored and the connection remains open
	err := conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"teleport"}`))
	test.DemandSuccess(t, err)
	err = conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"hotkey","id":"PauseResume"}`))
	test.DemandSuccess(t, err)

	select {
	case cmd := <-commands:
		test.ExpectEquality(t, cmd.Type, studio.CommandHotkey)
		test.ExpectEquality(t, cmd.Hotkey, hotkeys.PauseResume)
	case <-time.After(5 * time.Second):
		t.Fatalf("command not received")
	}
}

func TestSlowClient(t *testing.T) {
	b := studio.NewBridge("")
	srv := httptest.NewServer(b.Handler())
	defer srv.Close()
	defer b.Close()

	conn := dial(t, srv.URL)
	defer conn.Close()

	// wait for the client to be registered
	for i := 0; b.Clients() == 0; i++ {
		if i > 500 {
			t.Fatalf("client not registered")
		}
		time.Sleep(10 * time.Millisecond)
	}

	// the client never reads. publishing must not block and the client is
	// eventually dropped
	status := strings.Repeat("x", 64*1024)
	done := make(chan bool)
	go func() {
		for i := 0; i < 10000 && b.Clients() > 0; i++ {
			b.Publish(playback.Summary{CurrentFrame: i, Status: status})
		}
		done <- true
	}()

	select {
	case <-done:
	case <-time.After(30 * time.Second):
		t.Fatalf("publish blocked")
	}
	test.ExpectEquality(t, b.Clients(), 0)
}
