package ws

import (
	"encoding/json"
	"net/http"

	"github.com/MackZumarraga/zodiax-game/internal/constants"
	"github.com/MackZumarraga/zodiax-game/internal/logging"
	"github.com/MackZumarraga/zodiax-game/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

// Handler upgrades websocket connections and pumps inbound events into the
// session manager.
type Handler struct {
	manager *session.Manager
}

func NewHandler(manager *session.Manager) *Handler {
	return &Handler{manager: manager}
}

// Serve is the gin handler for the websocket endpoint.
func (h *Handler) Serve(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logging.Error("websocket upgrade failed", err, nil)
		return
	}
	cl := newClient(conn)
	h.manager.Register(cl)
	logging.Info("client connected", logging.Fields{constants.LogFieldClientID: cl.ID()})

	go h.readLoop(cl)
}

type selectCharacterMsg struct {
	Character string `json:"character"`
}

type playerActionMsg struct {
	RoomID string `json:"roomId"`
	Action string `json:"action"`
}

// readLoop processes inbound messages until the connection drops. Each
// message's handler runs to completion before the next read, so one
// connection never interleaves its own events.
func (h *Handler) readLoop(cl *client) {
	defer func() {
		h.manager.Disconnect(cl)
		cl.close()
		logging.Info("client disconnected", logging.Fields{constants.LogFieldClientID: cl.ID()})
	}()

	for {
		var msg struct {
			Type string          `json:"type"`
			Data json.RawMessage `json:"data"`
		}
		if err := cl.conn.ReadJSON(&msg); err != nil {
			return
		}

		switch msg.Type {
		case constants.EventSelectCharacter:
			var data selectCharacterMsg
			if err := json.Unmarshal(msg.Data, &data); err != nil {
				_ = cl.Send(constants.EventError, gin.H{"reason": "malformed selectCharacter payload"})
				continue
			}
			// Errors already produced a client-facing event; log only.
			if err := h.manager.SelectCharacter(cl, data.Character); err != nil {
				logging.Info("selectCharacter rejected", logging.Fields{constants.LogFieldClientID: cl.ID(), "reason": err.Error()})
			}
		case constants.EventPlayerAction:
			var data playerActionMsg
			if err := json.Unmarshal(msg.Data, &data); err != nil {
				_ = cl.Send(constants.EventError, gin.H{"reason": "malformed playerAction payload"})
				continue
			}
			if err := h.manager.SubmitAction(cl, data.RoomID, data.Action); err != nil {
				logging.Info("playerAction rejected", logging.Fields{constants.LogFieldClientID: cl.ID(), "reason": err.Error()})
			}
		case constants.EventRequestCharacters:
			h.manager.SendAvailableCharacters(cl)
		default:
			_ = cl.Send(constants.EventError, gin.H{"reason": "unknown message type: " + msg.Type})
		}
	}
}
