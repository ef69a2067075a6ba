package websocket

import (
	"log"
	"sync"
)

// Hub хранит активные соединения и раздает события по пользователям.
// Один пользователь может держать несколько соединений (телефон и планшет).
type Hub struct {
	mu sync.RWMutex

	// Соединения, сгруппированные по ID пользователя
	clients map[uint]map[*Client]struct{}

	register   chan *Client
	unregister chan *Client
	stop       chan struct{}
}

// NewHub создает новый хаб
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[uint]map[*Client]struct{}),
		register:   make(chan *Client, 16),
		unregister: make(chan *Client, 16),
		stop:       make(chan struct{}),
	}
}

// Run обрабатывает регистрацию и отключение клиентов
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			conns, ok := h.clients[client.UserID]
			if !ok {
				conns = make(map[*Client]struct{})
				h.clients[client.UserID] = conns
			}
			conns[client] = struct{}{}
			h.mu.Unlock()
			log.Printf("[Hub] Клиент подключен: userID=%d, connID=%s", client.UserID, client.ConnectionID)

		case client := <-h.unregister:
			h.mu.Lock()
			if conns, ok := h.clients[client.UserID]; ok {
				if _, exists := conns[client]; exists {
					delete(conns, client)
					close(client.send)
					if len(conns) == 0 {
						delete(h.clients, client.UserID)
					}
				}
			}
			h.mu.Unlock()
			log.Printf("[Hub] Клиент отключен: userID=%d, connID=%s", client.UserID, client.ConnectionID)

		case <-h.stop:
			h.mu.Lock()
			for _, conns := range h.clients {
				for client := range conns {
					close(client.send)
				}
			}
			h.clients = make(map[uint]map[*Client]struct{})
			h.mu.Unlock()
			return
		}
	}
}

// Stop закрывает все соединения и останавливает хаб
func (h *Hub) Stop() {
	close(h.stop)
}

// SendToUser отправляет событие во все соединения пользователя.
// Соединение с переполненным буфером пропускается, чтобы не блокировать рассылку.
func (h *Hub) SendToUser(userID uint, event Event) {
	payload, err := event.Marshal()
	if err != nil {
		log.Printf("[Hub] Ошибка сериализации события %q: %v", event.Type, err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.clients[userID] {
		select {
		case client.send <- payload:
		default:
			log.Printf("[Hub] Буфер отправки переполнен: userID=%d, connID=%s", userID, client.ConnectionID)
		}
	}
}

// ConnectionCount возвращает число активных соединений
func (h *Hub) ConnectionCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	total := 0
	for _, conns := range h.clients {
		total += len(conns)
	}
	return total
}
