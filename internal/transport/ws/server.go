package ws

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/cwrk-planet/club-service/internal/domain"

	"github.com/gorilla/websocket"
)

type ChatSvc interface {
	Append(ctx context.Context, name, text string) (*domain.Message, error)
	History(ctx context.Context) ([]domain.Message, error)
}

type Server struct {
	upgrader websocket.Upgrader
	hub      *Hub
	chatSvc  ChatSvc

	pingEvery time.Duration
}

func NewServer(hub *Hub, chat ChatSvc) *Server {
	return &Server{
		hub:     hub,
		chatSvc: chat,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		pingEvery: 15 * time.Second,
	}
}

// WS endpoint: GET /ws
func (s *Server) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("ws upgrade failed", "err", err)
		return
	}

	c := newWsConn(conn)
	s.hub.Add(c)

	// Реплей истории только этому соединению, до живого трафика.
	// Ошибка чтения истории не критична: соединение живёт дальше.
	if err := s.replayHistory(r.Context(), c); err != nil {
		slog.Warn("ws history replay failed", "err", err)
	}

	go s.writeLoop(r.Context(), c)
	s.readLoop(r.Context(), c)

	// Разрыв без exituser считается уходом, если имя было привязано.
	s.hub.Depart(c, "")
	s.hub.Remove(c)

	if err := c.Close(); err != nil {
		slog.Debug("ws close failed", "err", err)
	}
}

func (s *Server) replayHistory(ctx context.Context, c *wsConn) error {
	history, err := s.chatSvc.History(ctx)
	if err != nil {
		return err
	}
	for _, m := range history {
		if err := c.Send(chatMessage(m.Name, m.Text)); err != nil {
			return err
		}
	}
	return nil
}

func (s *Server) readLoop(ctx context.Context, c *wsConn) {
	defer func() { _ = c.Close() }()

	c.conn.SetReadLimit(1 << 20)
	c.conn.SetReadDeadline(time.Now().Add(2 * s.pingEvery))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(2 * s.pingEvery))
		return nil
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			break
		}
		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			continue
		}

		switch msg.Type {
		case TypeNewUser:
			var username string
			if decode(msg.Payload, &username) == nil {
				s.hub.Register(c, username, true)
			}
		case TypeUserLogin:
			var username string
			if decode(msg.Payload, &username) == nil {
				s.hub.Register(c, username, false)
			}
		case TypeExitUser:
			var username string
			if decode(msg.Payload, &username) == nil {
				s.hub.Depart(c, username)
			}
		case TypeChat:
			var p ChatPayload
			if decode(msg.Payload, &p) == nil {
				s.handleChat(ctx, c, p)
			}
		default:
			// ignore
		}
	}
}

// handleChat: persist best-effort, рассылка идёт даже если запись в
// хранилище не удалась. Отправитель своё сообщение обратно не получает.
func (s *Server) handleChat(ctx context.Context, c *wsConn, p ChatPayload) {
	username := p.Username
	if username == "" {
		username = "Anon"
	}

	if _, err := s.chatSvc.Append(ctx, username, p.Text); err != nil {
		slog.Warn("ws chat save failed", "user", username, "err", err)
	}

	s.hub.BroadcastExcept(chatMessage(username, p.Text), c)
}

func (s *Server) writeLoop(ctx context.Context, c *wsConn) {
	ticker := time.NewTicker(s.pingEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			_ = c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(5*time.Second))
		case <-ctx.Done():
			return
		case <-c.closed:
			return
		}
	}
}

// --- helpers ---

func decode(payload interface{}, dst interface{}) error {
	b, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	return json.Unmarshal(b, dst)
}

type wsConn struct {
	conn   *websocket.Conn
	sendMu chan struct{}
	closed chan struct{}
}

func newWsConn(c *websocket.Conn) *wsConn {
	return &wsConn{
		conn:   c,
		sendMu: make(chan struct{}, 1),
		closed: make(chan struct{}),
	}
}

func (c *wsConn) Send(msg Message) error {
	c.sendMu <- struct{}{}
	defer func() { <-c.sendMu }()
	c.conn.SetWriteDeadline(time.Now().Add(5 * time.Second))

	return c.conn.WriteJSON(msg)
}

func (c *wsConn) Close() error {
	select {
	case <-c.closed:
	default:
		close(c.closed)
	}

	return c.conn.Close()
}
