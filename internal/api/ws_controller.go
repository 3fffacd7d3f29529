package api

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"restaurant/server/internal/models"
	"restaurant/server/internal/services"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// Разрешаем подключения с любого origin (для разработки)
		// В продакшене лучше проверять конкретные домены
		return true
	},
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// WSController обслуживает WebSocket подключения наблюдателей
type WSController struct {
	hub    *Hub
	orders *services.OrderService
}

// NewWSController создает новый WebSocket контроллер
func NewWSController(hub *Hub, orders *services.OrderService) *WSController {
	return &WSController{
		hub:    hub,
		orders: orders,
	}
}

// clientMessage - входящее сообщение от наблюдателя
type clientMessage struct {
	Type string `json:"type"`
}

// ServeWS обрабатывает WebSocket подключение наблюдателя
func (wc *WSController) ServeWS(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("⚠️ Ошибка обновления WebSocket соединения: %v", err)
		return
	}

	client := wc.hub.AddClient(conn)
	log.Printf("📱 Наблюдатель подключен. Всего подключений: %d", wc.hub.GetClientsCount())

	defer func() {
		wc.hub.RemoveClient(client)
		log.Printf("📱 Наблюдатель отключен. Осталось подключений: %d", wc.hub.GetClientsCount())
	}()

	// Только приветствие, без дампа состояния:
	// полный список клиент запрашивает сам через request_refresh
	wc.hub.SendTo(client, EventEnvelope(EventConnected, map[string]interface{}{
		"message": "Connected to restaurant server",
	}))

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("⚠️ WebSocket ошибка: %v", err)
			}
			break
		}

		var msg clientMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			continue // Нераспознанные сообщения молча игнорируем
		}

		if msg.Type == "request_refresh" {
			wc.sendRefresh(client)
		}
	}
}

// sendRefresh отправляет полный список заказов одному клиенту
func (wc *WSController) sendRefresh(client *wsClient) {
	orders, err := wc.orders.ListOrders()
	if err != nil {
		log.Printf("⚠️ request_refresh: ошибка загрузки заказов: %v", err)
		return
	}
	if orders == nil {
		orders = []models.Order{}
	}

	wc.hub.SendTo(client, EventEnvelope(EventOrdersRefresh, orders))
}
