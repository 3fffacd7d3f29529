package services

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"log"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/sasl/plain"
)

// OrderEventsTopic - топик, в который пишутся все события заказов
const OrderEventsTopic = "restaurant.order-events"

// EventStream публикует события заказов в Kafka для внешних потребителей.
// Fire-and-forget: ошибки логируются и никогда не влияют на сам заказ
type EventStream struct {
	writer *kafka.Writer
}

// NewEventStream создает producer для потока событий заказов.
// username/password включают SASL/PLAIN + TLS (нужно для Aiven)
func NewEventStream(brokers, username, password, caCert string) *EventStream {
	brokerList := ParseKafkaBrokers(brokers)
	if len(brokerList) == 0 {
		return nil
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokerList...),
		Topic:        OrderEventsTopic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireOne,
		Async:        true, // Не блокируем обработку заказа ради Kafka
		Transport:    createKafkaTransport(username, password, caCert),
	}

	log.Printf("📡 Kafka поток событий включен: topic=%s, brokers=%v", OrderEventsTopic, brokerList)
	return &EventStream{writer: writer}
}

// Publish отправляет событие заказа в Kafka
func (es *EventStream) Publish(eventType string, data interface{}) {
	if es == nil || es.writer == nil {
		return
	}

	payload, err := json.Marshal(map[string]interface{}{
		"type":      eventType,
		"data":      data,
		"timestamp": time.Now().Unix(),
	})
	if err != nil {
		log.Printf("⚠️ Kafka: ошибка маршалинга события %s: %v", eventType, err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := es.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(eventType),
		Value: payload,
	}); err != nil {
		log.Printf("⚠️ Kafka: ошибка публикации события %s: %v", eventType, err)
	}
}

// Close закрывает producer
func (es *EventStream) Close() error {
	if es == nil || es.writer == nil {
		return nil
	}
	return es.writer.Close()
}

// createKafkaTransport настраивает транспорт с SASL/PLAIN и TLS (для Aiven)
func createKafkaTransport(username, password, caCert string) *kafka.Transport {
	transport := &kafka.Transport{
		DialTimeout: 10 * time.Second,
	}

	if username != "" && password != "" {
		transport.SASL = plain.Mechanism{
			Username: username,
			Password: password,
		}
		log.Printf("🔐 Kafka: SASL/PLAIN аутентификация включена (username: %s)", username)
	}

	if caCert != "" {
		tlsConfig := &tls.Config{}
		caCertPool := x509.NewCertPool()
		if ok := caCertPool.AppendCertsFromPEM([]byte(caCert)); ok {
			tlsConfig.RootCAs = caCertPool
			log.Printf("🔒 Kafka: TLS с CA сертификатом включен")
		} else {
			log.Printf("⚠️ Kafka: не удалось распарсить CA сертификат, используем системные сертификаты")
		}
		transport.TLS = tlsConfig
	} else if transport.SASL != nil {
		// SASL без явного CA - TLS с системными сертификатами
		transport.TLS = &tls.Config{}
		log.Printf("🔒 Kafka: TLS включен (системные сертификаты)")
	}

	return transport
}

// ParseKafkaBrokers парсит строку с брокерами (может быть через запятую)
func ParseKafkaBrokers(brokers string) []string {
	if brokers == "" {
		return []string{}
	}
	brokerList := strings.Split(strings.ReplaceAll(brokers, " ", ""), ",")
	var result []string
	for _, broker := range brokerList {
		if broker != "" {
			result = append(result, broker)
		}
	}
	return result
}
