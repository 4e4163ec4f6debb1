// Package remote bridges the emulator to remote hosts over websocket.
package remote

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"

	"github.com/go-faster/jx"
	"github.com/gorilla/websocket"

	"plu/emu"
	"plu/emu/log"
)

// A Sender accepts commands for the emulator, *emu.Emulator is one.
type Sender interface {
	Send(emu.Command)
}

// clientBuffer is the number of messages queued for a slow client before
// they get dropped.
const clientBuffer = 1024

// Server accepts remote hosts on /ws. Requests are forwarded to the emulator
// as commands and events are broadcast to all connected hosts.
type Server struct {
	emu Sender

	mu      sync.Mutex
	clients map[*client]struct{}
}

type client struct {
	ws   *websocket.Conn
	send chan []byte
}

func NewServer(e Sender) *Server {
	return &Server{
		emu:     e,
		clients: make(map[*client]struct{}),
	}
}

// Handler returns the http handler of the remote server.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebsocket)
	return mux
}

// ListenAndServe serves remote hosts on addr until ctx is done.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("remote: %w", err)
	}

	server := http.Server{Handler: s.Handler()}
	stop := context.AfterFunc(ctx, func() {
		server.Close()
		s.closeAll()
	})
	defer stop()

	log.ModRemote.InfoZ("Remote server listening").String("addr", ln.Addr().String()).End()
	if err := server.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("remote: %w", err)
	}
	return nil
}

// Broadcast sends ev to all connected hosts. It never blocks, ev is dropped
// for the hosts not keeping up.
func (s *Server) Broadcast(ev emu.Event) {
	var e jx.Encoder
	if !encodeEvent(&e, ev) {
		return
	}
	msg := e.Bytes()

	s.mu.Lock()
	defer s.mu.Unlock()

	for c := range s.clients {
		select {
		case c.send <- msg:
		default:
			log.ModRemote.DebugZ("event dropped").String("addr", c.ws.RemoteAddr().String()).End()
		}
	}
}

func (s *Server) handleWebsocket(w http.ResponseWriter, r *http.Request) {
	var upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
	}
	upgrader.CheckOrigin = func(r *http.Request) bool { return true }

	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.ModRemote.ErrorZ("failed to perform websocket handshake").Error("err", err).End()
		return
	}
	defer ws.Close()

	log.ModRemote.DebugZ("websocket handshake success").String("addr", ws.RemoteAddr().String()).End()

	c := &client{ws: ws, send: make(chan []byte, clientBuffer)}
	s.add(c)
	defer s.remove(c)
	go c.writeLoop()

	if err := newWsDriver(s.emu, ws).drive(); err != nil {
		log.ModRemote.ErrorZ("connection to remote host ended").Error("err", err).End()
	}
}

func (s *Server) add(c *client) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clients[c] = struct{}{}
}

func (s *Server) remove(c *client) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.clients[c]; ok {
		delete(s.clients, c)
		close(c.send)
	}
}

// closeAll closes the connections of all hosts.
func (s *Server) closeAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for c := range s.clients {
		c.ws.Close()
	}
}

// writeLoop is the only writer of the websocket connection.
func (c *client) writeLoop() {
	for msg := range c.send {
		if err := c.ws.WriteMessage(websocket.TextMessage, msg); err != nil {
			log.ModRemote.DebugZ("write failed").Error("err", err).End()
		}
	}
}
