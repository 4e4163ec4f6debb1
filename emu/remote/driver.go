package remote

import (
	"github.com/gorilla/websocket"

	"plu/emu"
	"plu/emu/log"
)

// A wsdriver reads the requests of a remote host.
type wsdriver struct {
	emu Sender
	ws  *websocket.Conn
}

func newWsDriver(e Sender, ws *websocket.Conn) *wsdriver {
	return &wsdriver{emu: e, ws: ws}
}

func (d *wsdriver) drive() error {
	log.ModRemote.DebugZ("remote connection initiated").End()

	// Let the host know the current processor state.
	d.emu.Send(emu.FetchProcessor{})

	for {
		// Wait for next request from the remote host.
		_, buf, err := d.ws.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}
			return err
		}

		log.ModRemote.DebugZ("received message from remote").
			String("data", string(buf)).
			End()

		cmds, err := decodeRequest(buf)
		if err != nil {
			log.ModRemote.WarnZ("invalid remote request").
				String("data", string(buf)).
				Error("err", err).
				End()
			continue
		}

		for _, cmd := range cmds {
			d.emu.Send(cmd)
		}
	}
}
