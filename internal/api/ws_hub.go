package api

import (
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// wsClient - одно WebSocket подключение наблюдателя (планшет кухни,
// терминал официанта, панель менеджера)
type wsClient struct {
	id   uuid.UUID
	conn *websocket.Conn
	send chan []byte // Персональная очередь исходящих сообщений
}

// Hub управляет WebSocket соединениями наблюдателей и рассылает им события.
// Рассылка никогда не блокируется на медленном клиенте: у каждого клиента
// своя ограниченная очередь, при переполнении событие пропускается
// (клиент догонит состояние через request_refresh)
type Hub struct {
	clients   map[uuid.UUID]*wsClient
	broadcast chan []byte
	mutex     sync.RWMutex
}

// NewHub создает новый хаб
func NewHub() *Hub {
	return &Hub{
		clients:   make(map[uuid.UUID]*wsClient),
		broadcast: make(chan []byte, 256), // Буферизованный канал для производительности
	}
}

// Run запускает цикл рассылки сообщений по очередям клиентов
func (h *Hub) Run() {
	for msg := range h.broadcast {
		h.mutex.RLock()
		for _, client := range h.clients {
			select {
			case client.send <- msg:
			default:
				// Очередь клиента переполнена - пропускаем сообщение
			}
		}
		h.mutex.RUnlock()
	}
}

// AddClient регистрирует нового клиента и запускает его writer
func (h *Hub) AddClient(conn *websocket.Conn) *wsClient {
	client := &wsClient{
		id:   uuid.New(),
		conn: conn,
		send: make(chan []byte, 64),
	}

	h.mutex.Lock()
	h.clients[client.id] = client
	h.mutex.Unlock()

	go h.writePump(client)
	return client
}

// writePump пишет сообщения из очереди клиента в соединение
func (h *Hub) writePump(client *wsClient) {
	for msg := range client.send {
		if err := client.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			h.RemoveClient(client)
			// Дочитываем очередь до закрытия, чтобы не застряли отправители
			for range client.send {
			}
			return
		}
	}
}

// RemoveClient удаляет клиента и закрывает его соединение.
// Очередь закрывается строго после удаления из map: рассылка держит RLock,
// поэтому запись в закрытый канал невозможна
func (h *Hub) RemoveClient(client *wsClient) {
	h.mutex.Lock()
	if _, ok := h.clients[client.id]; ok {
		delete(h.clients, client.id)
		close(client.send)
		client.conn.Close()
	}
	h.mutex.Unlock()
}

// SendTo отправляет сообщение одному клиенту (приветствие, orders_refresh)
func (h *Hub) SendTo(client *wsClient, msg []byte) {
	if msg == nil {
		return
	}
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	if _, ok := h.clients[client.id]; !ok {
		return
	}
	select {
	case client.send <- msg:
	default:
	}
}

// BroadcastMessage отправляет сообщение всем подключенным клиентам
func (h *Hub) BroadcastMessage(message []byte) {
	if message == nil {
		return
	}
	select {
	case h.broadcast <- message:
	default:
		// Если канал переполнен, пропускаем сообщение (не блокируем)
	}
}

// GetClientsCount возвращает количество подключенных клиентов
func (h *Hub) GetClientsCount() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.clients)
}
