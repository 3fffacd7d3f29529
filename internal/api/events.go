package api

import (
	"encoding/json"
	"log"
	"time"
)

// Типы событий реального времени, которые слышат наблюдатели
const (
	EventConnected     = "connected"
	EventOrdersRefresh = "orders_refresh"
	EventOrderCreated  = "order_created"
	EventOrderUpdated  = "order_updated"
	EventOrderDeleted  = "order_deleted"
)

// EventEnvelope упаковывает событие в общий конверт {type, data, timestamp}
func EventEnvelope(eventType string, data interface{}) []byte {
	update := map[string]interface{}{
		"type":      eventType,
		"data":      data,
		"timestamp": time.Now().Unix(),
	}

	jsonData, err := json.Marshal(update)
	if err != nil {
		log.Printf("⚠️ Ошибка маршалинга события %s: %v", eventType, err)
		return nil
	}

	return jsonData
}
