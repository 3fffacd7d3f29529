package api

import (
	"encoding/json"
	"log"
	"time"

	"github.com/google/uuid"

	"restaurant/server/internal/models"
	"restaurant/server/internal/services"
	"restaurant/server/internal/utils"
)

// OrderEventsChannel - Redis Pub/Sub канал для ретрансляции событий
// заказов между экземплярами сервера
const OrderEventsChannel = "orders:events"

// OrderNotifier - точка фан-аута событий заказов: локальный хаб,
// Redis relay для других экземпляров и (опционально) Kafka.
// Redis и Kafka могут быть nil - тогда работаем только локально
type OrderNotifier struct {
	hub        *Hub
	redisUtil  *utils.RedisClient
	stream     *services.EventStream
	instanceID string // Чтобы не ретранслировать собственные события
}

// NewOrderNotifier создает новый notifier
func NewOrderNotifier(hub *Hub, redisUtil *utils.RedisClient, stream *services.EventStream) *OrderNotifier {
	return &OrderNotifier{
		hub:        hub,
		redisUtil:  redisUtil,
		stream:     stream,
		instanceID: uuid.New().String(),
	}
}

// OrderCreated рассылает событие о новом заказе
func (n *OrderNotifier) OrderCreated(order *models.Order) {
	n.publish(EventOrderCreated, order)
	n.bumpCounters()
}

// OrderUpdated рассылает событие о смене статуса заказа
func (n *OrderNotifier) OrderUpdated(order *models.Order, oldStatus, newStatus string) {
	n.publish(EventOrderUpdated, map[string]interface{}{
		"order":     order,
		"oldStatus": oldStatus,
		"newStatus": newStatus,
	})
}

// OrderDeleted рассылает событие об удалении заказа
func (n *OrderNotifier) OrderDeleted(orderID uint) {
	n.publish(EventOrderDeleted, map[string]interface{}{
		"orderId": orderID,
	})
}

// relayMessage - обертка события для Redis Pub/Sub
type relayMessage struct {
	Instance string          `json:"instance"`
	Payload  json.RawMessage `json:"payload"`
}

func (n *OrderNotifier) publish(eventType string, data interface{}) {
	payload := EventEnvelope(eventType, data)
	if payload == nil {
		return
	}

	// Локальные наблюдатели получают событие сразу
	n.hub.BroadcastMessage(payload)

	// Наблюдатели на других экземплярах - через Redis Pub/Sub
	if n.redisUtil != nil {
		relay, err := json.Marshal(relayMessage{
			Instance: n.instanceID,
			Payload:  payload,
		})
		if err == nil {
			if err := n.redisUtil.Publish(OrderEventsChannel, string(relay)); err != nil {
				log.Printf("⚠️ Ошибка публикации события %s в Redis: %v", eventType, err)
			}
		}
	}

	// Внешние потребители - через Kafka (fire-and-forget)
	n.stream.Publish(eventType, data)
}

// StartRelay запускает подписку на канал событий: события чужих
// экземпляров ретранслируются в локальный хаб
func (n *OrderNotifier) StartRelay() {
	if n.redisUtil == nil {
		return
	}

	go func() {
		ch, closeFn := n.redisUtil.Subscribe(OrderEventsChannel)
		defer func() {
			if err := closeFn(); err != nil {
				log.Printf("⚠️ Ошибка закрытия Pub/Sub: %v", err)
			}
		}()

		log.Printf("👂 Слушаем канал Redis: %s", OrderEventsChannel)

		for msg := range ch {
			n.handleRelayMessage(msg.Payload)
		}
	}()
}

// handleRelayMessage ретранслирует событие чужого экземпляра в локальный
// хаб; собственные события пропускаются - они уже разосланы локально
func (n *OrderNotifier) handleRelayMessage(raw string) {
	var relay relayMessage
	if err := json.Unmarshal([]byte(raw), &relay); err != nil {
		log.Printf("⚠️ Relay: не удалось распарсить сообщение: %v", err)
		return
	}
	if relay.Instance == n.instanceID {
		return
	}
	n.hub.BroadcastMessage(relay.Payload)
}

// bumpCounters обновляет дневные счетчики заказов в Redis одним Pipeline
func (n *OrderNotifier) bumpCounters() {
	if n.redisUtil == nil {
		return
	}

	pipe := n.redisUtil.Pipeline()
	ctx := n.redisUtil.Context()
	todayKey := "orders:today:" + time.Now().UTC().Format("2006-01-02")

	pipe.Incr(ctx, "orders:total")
	pipe.Incr(ctx, todayKey)
	pipe.Expire(ctx, todayKey, 48*time.Hour)

	if _, err := pipe.Exec(ctx); err != nil {
		log.Printf("⚠️ Pipeline error при обновлении счетчиков заказов: %v", err)
	}
}
