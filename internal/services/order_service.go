package services

import (
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"gorm.io/datatypes"

	"restaurant/server/internal/models"
)

// OrderStore - операции хранилища, которые нужны сервису заказов
type OrderStore interface {
	ListOrders() ([]models.Order, error)
	GetOrder(id uint) (*models.Order, error)
	InsertOrder(order *models.Order) error
	UpdateStatus(id uint, status string) (*models.Order, error)
	DeleteOrder(id uint) error
}

// Notifier рассылает события заказов всем подключенным наблюдателям.
// Вызывается ПОСЛЕ коммита: наблюдатель никогда не увидит событие
// про данные, которые не сохранились
type Notifier interface {
	OrderCreated(order *models.Order)
	OrderUpdated(order *models.Order, oldStatus, newStatus string)
	OrderDeleted(orderID uint)
}

// OrderService - бизнес-логика заказов: валидация, жизненный цикл,
// рассылка событий
type OrderService struct {
	store    OrderStore
	notifier Notifier
}

// NewOrderService создает новый сервис заказов
func NewOrderService(store OrderStore, notifier Notifier) *OrderService {
	return &OrderService{
		store:    store,
		notifier: notifier,
	}
}

// NewOrderItem - позиция нового заказа, как ее присылает клиент.
// Пищевая ценность приходит вместе с позицией и фиксируется как снимок
type NewOrderItem struct {
	ID         int     `json:"id"`
	MenuItemID int     `json:"menuItemId"`
	Name       string  `json:"name"`
	Category   string  `json:"category"`
	Price      float64 `json:"price"`
	Quantity   int     `json:"quantity"`
	Notes      string  `json:"notes"`
	Calories   int     `json:"calories"`
	Protein    float64 `json:"protein"`
	Carbs      float64 `json:"carbs"`
	Fat        float64 `json:"fat"`
	Sugar      float64 `json:"sugar"`
}

// CreateOrderRequest - тело запроса на создание заказа
type CreateOrderRequest struct {
	Table            string                 `json:"table"`
	Waiter           string                 `json:"waiter"`
	Items            []NewOrderItem         `json:"items"`
	CustomerInfo     map[string]interface{} `json:"customerInfo"`
	HealthConditions map[string]interface{} `json:"healthConditions"`
}

// CreateOrder атомарно создает заказ со всеми позициями.
// Статус всегда pending, официант по умолчанию - случайный "Waiter N"
func (s *OrderService) CreateOrder(req CreateOrderRequest) (*models.Order, error) {
	if strings.TrimSpace(req.Table) == "" {
		return nil, ErrEmptyTable
	}
	if len(req.Items) == 0 {
		return nil, ErrNoItems
	}

	waiter := req.Waiter
	if waiter == "" {
		waiter = fmt.Sprintf("Waiter %d", rand.Intn(5)+1)
	}

	items := make([]models.OrderItem, len(req.Items))
	for i, item := range req.Items {
		quantity := item.Quantity
		if quantity <= 0 {
			quantity = 1
		}
		// menuItemId может прийти и как menuItemId, и как id позиции меню
		menuItemID := item.MenuItemID
		if menuItemID == 0 {
			menuItemID = item.ID
		}
		items[i] = models.OrderItem{
			MenuItemID: menuItemID,
			Name:       item.Name,
			Category:   item.Category,
			Price:      item.Price,
			Quantity:   quantity,
			Notes:      item.Notes,
			Calories:   item.Calories,
			Protein:    item.Protein,
			Carbs:      item.Carbs,
			Fat:        item.Fat,
			Sugar:      item.Sugar,
		}
	}

	order := &models.Order{
		Table:            req.Table,
		Status:           models.StatusPending,
		Waiter:           waiter,
		Timestamp:        time.Now().UTC(),
		CustomerInfo:     datatypes.JSONMap(req.CustomerInfo),
		HealthConditions: datatypes.JSONMap(req.HealthConditions),
		Items:            items,
	}

	if err := s.store.InsertOrder(order); err != nil {
		return nil, err
	}

	log.Printf("🧾 Заказ #%d создан: столик %s, позиций %d", order.ID, order.Table, len(order.Items))
	s.notifier.OrderCreated(order)

	return order, nil
}

// SetStatus переводит заказ в новый статус.
// Проверяется только принадлежность статуса enum: откат назад по цепочке
// не запрещен (менеджер может вернуть ошибочно закрытый заказ)
func (s *OrderService) SetStatus(orderID uint, newStatus string) (*models.Order, error) {
	if !models.IsValidStatus(newStatus) {
		return nil, ErrInvalidStatus
	}

	current, err := s.store.GetOrder(orderID)
	if err != nil {
		return nil, err
	}
	oldStatus := current.Status

	updated, err := s.store.UpdateStatus(orderID, newStatus)
	if err != nil {
		return nil, err
	}

	log.Printf("🔄 Заказ #%d: статус %s -> %s", orderID, oldStatus, newStatus)
	s.notifier.OrderUpdated(updated, oldStatus, newStatus)

	return updated, nil
}

// DeleteOrder удаляет заказ вместе со всеми позициями
func (s *OrderService) DeleteOrder(orderID uint) error {
	if err := s.store.DeleteOrder(orderID); err != nil {
		return err
	}

	log.Printf("🗑️ Заказ #%d удален", orderID)
	s.notifier.OrderDeleted(orderID)

	return nil
}

// ListOrders возвращает все заказы, новые первыми
func (s *OrderService) ListOrders() ([]models.Order, error) {
	return s.store.ListOrders()
}

// GetOrder возвращает один заказ с позициями
func (s *OrderService) GetOrder(orderID uint) (*models.Order, error) {
	return s.store.GetOrder(orderID)
}

// OrderStats - счетчики заказов по статусам
type OrderStats struct {
	Total     int `json:"total"`
	Pending   int `json:"pending"`
	Preparing int `json:"preparing"`
	Ready     int `json:"ready"`
	Completed int `json:"completed"`
}

// HealthStats - счетчики заказов по отметкам здоровья
type HealthStats struct {
	Diabetes      int `json:"diabetes"`
	Cholesterol   int `json:"cholesterol"`
	BloodPressure int `json:"bloodPressure"`
	SugarFree     int `json:"sugarFree"`
}

// Stats - агрегированная статистика для панели менеджера
type Stats struct {
	OrderStats  OrderStats  `json:"orderStats"`
	HealthStats HealthStats `json:"healthStats"`
}

// ComputeStats считает статистику одним проходом по заказам.
// Чистое чтение, ничего не мутирует
func (s *OrderService) ComputeStats() (*Stats, error) {
	orders, err := s.store.ListOrders()
	if err != nil {
		return nil, err
	}

	stats := &Stats{}
	stats.OrderStats.Total = len(orders)

	for _, order := range orders {
		switch order.Status {
		case models.StatusPending:
			stats.OrderStats.Pending++
		case models.StatusPreparing:
			stats.OrderStats.Preparing++
		case models.StatusReady:
			stats.OrderStats.Ready++
		case models.StatusCompleted:
			stats.OrderStats.Completed++
		}

		if len(order.HealthConditions) == 0 {
			continue
		}
		if isTruthy(order.HealthConditions["diabetes"]) {
			stats.HealthStats.Diabetes++
		}
		if isTruthy(order.HealthConditions["cholesterol"]) {
			stats.HealthStats.Cholesterol++
		}
		if isTruthy(order.HealthConditions["bloodPressure"]) {
			stats.HealthStats.BloodPressure++
		}
		if isTruthy(order.HealthConditions["sugarFree"]) {
			stats.HealthStats.SugarFree++
		}
	}

	return stats, nil
}

// isTruthy - флаги приходят из свободного JSON, клиент может прислать
// true, 1 или "yes", поэтому проверяем по смыслу, а не по типу
func isTruthy(v interface{}) bool {
	switch val := v.(type) {
	case bool:
		return val
	case float64:
		return val != 0
	case int:
		return val != 0
	case string:
		return val != ""
	default:
		return false
	}
}
