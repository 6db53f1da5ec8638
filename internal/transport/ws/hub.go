package ws

import (
	"fmt"
	"sort"
	"sync"
)

type Conn interface {
	Send(msg Message) error
	Close() error
}

// session — состояние одного соединения: привязанное имя и одноразовый
// флаг выхода, чтобы нотис об уходе не дублировался.
type session struct {
	username string
	exited   bool
}

// Hub владеет реестром соединений и presence-сетом. Имена не
// дедуплицируются по соединениям: несколько соединений под одним именем
// сворачиваются в одну запись presence.
type Hub struct {
	mu     sync.RWMutex
	conns  map[Conn]*session
	online map[string]struct{}
}

func NewHub() *Hub {
	return &Hub{
		conns:  make(map[Conn]*session),
		online: make(map[string]struct{}),
	}
}

func (h *Hub) Add(c Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.conns[c] = &session{}
}

func (h *Hub) Remove(c Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	delete(h.conns, c)
}

// Register привязывает имя к соединению и добавляет его в presence.
// announce — join-нотис всем, кроме самого соединения (newuser);
// снапшот presence уходит всем, включая инициатора. Повторная
// регистрация того же имени идемпотентна.
func (h *Hub) Register(c Conn, username string, announce bool) {
	if username == "" {
		return
	}

	h.mu.Lock()
	s, ok := h.conns[c]
	if !ok {
		h.mu.Unlock()
		return
	}
	s.username = username
	h.online[username] = struct{}{}
	h.mu.Unlock()

	if announce {
		h.BroadcastExcept(updateMessage(fmt.Sprintf("%s join the club", username)), c)
	}
	h.Broadcast(onlineStatusMessage(h.Online()))
}

// Depart снимает присутствие соединения: нотис об уходе максимум один
// раз на соединение, повторный вызов — no-op. Пустое имя (разрыв без
// регистрации) ничего не рассылает.
func (h *Hub) Depart(c Conn, username string) {
	h.mu.Lock()
	s, ok := h.conns[c]
	if !ok || s.exited {
		h.mu.Unlock()
		return
	}
	s.exited = true
	if username == "" {
		username = s.username
	}
	if username == "" {
		h.mu.Unlock()
		return
	}
	delete(h.online, username)
	h.mu.Unlock()

	h.BroadcastExcept(updateMessage(fmt.Sprintf("%s left the club", username)), c)
	h.Broadcast(onlineStatusMessage(h.Online()))
}

// Online — детерминированный снапшот presence (по алфавиту).
func (h *Hub) Online() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()

	out := make([]string, 0, len(h.online))
	for name := range h.online {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func (h *Hub) Broadcast(msg Message) {
	h.BroadcastExcept(msg, nil)
}

// BroadcastExcept — доставка без подтверждений: ошибка отправки одному
// соединению не трогает остальных.
func (h *Hub) BroadcastExcept(msg Message, origin Conn) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for c := range h.conns {
		if c == origin {
			continue
		}
		_ = c.Send(msg) // best-effort
	}
}

// Notify — системный нотис всем соединениям; им пользуются
// HTTP-обработчики модерации.
func (h *Hub) Notify(text string) {
	h.Broadcast(updateMessage(text))
}
