package api

import (
	"log/slog"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"prompt-editor/editor"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

type wsMessage struct {
	Type  string        `json:"type"`
	State *editor.State `json:"state,omitempty"`
}

func (h *handler) handleWS(w http.ResponseWriter, r *http.Request) {
	ws, ok := h.workspaceFor(w, r)
	if !ok {
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	// gorilla/websocket forbids concurrent writes.
	var writeMu sync.Mutex
	writeMsg := func(msg wsMessage) error {
		writeMu.Lock()
		defer writeMu.Unlock()
		return conn.WriteJSON(msg)
	}

	outChan := make(chan editor.State, 16)
	kick := ws.SetClient(outChan)
	defer ws.ClearClient(outChan)

	st := ws.Editor().State()
	if err := writeMsg(wsMessage{Type: "state", State: &st}); err != nil {
		return
	}

	// Pump state changes to the client until ClearClient closes outChan.
	go func() {
		for st := range outChan {
			if err := writeMsg(wsMessage{Type: "state", State: &st}); err != nil {
				return
			}
		}
	}()

	// Close the connection when the workspace ends or this client is
	// displaced, so ReadJSON below unblocks.
	connDone := make(chan struct{})
	go func() {
		select {
		case <-ws.Done():
			writeMsg(wsMessage{Type: "closed"}) //nolint:errcheck
			conn.Close()
		case <-kick:
			// Displaced by a newer connection: no "closed", the workspace lives on.
			conn.Close()
		case <-connDone:
		}
	}()
	defer close(connDone)

	for {
		var msg wsMessage
		if err := conn.ReadJSON(&msg); err != nil {
			return
		}
		switch msg.Type {
		case "ping":
			// Keeps the workspace from expiring while the page is open.
			h.manager.Get(ws.ID)
			if err := writeMsg(wsMessage{Type: "pong"}); err != nil {
				return
			}
		case "state":
			st := ws.Editor().State()
			if err := writeMsg(wsMessage{Type: "state", State: &st}); err != nil {
				return
			}
		}
	}
}
