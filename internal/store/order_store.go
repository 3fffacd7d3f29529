package store

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"restaurant/server/internal/models"
)

// ErrOrderNotFound возвращается, когда заказ с указанным id отсутствует
var ErrOrderNotFound = errors.New("order not found")

// OrderStore - тонкий слой хранения агрегатов заказ + позиции.
// Никаких вторичных индексов и кэшей: каждая операция - прямой запрос
type OrderStore struct {
	db *gorm.DB
}

// NewOrderStore создает новое хранилище заказов
func NewOrderStore(db *gorm.DB) *OrderStore {
	return &OrderStore{db: db}
}

// ListOrders возвращает все заказы с позициями, новые первыми
func (s *OrderStore) ListOrders() ([]models.Order, error) {
	var orders []models.Order
	err := s.db.
		Preload("Items").
		Order("timestamp DESC, id DESC").
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("ошибка загрузки заказов: %w", err)
	}
	return orders, nil
}

// GetOrder возвращает один заказ с позициями
func (s *OrderStore) GetOrder(id uint) (*models.Order, error) {
	var order models.Order
	err := s.db.Preload("Items").First(&order, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка загрузки заказа %d: %w", id, err)
	}
	return &order, nil
}

// InsertOrder атомарно сохраняет заказ вместе со всеми позициями.
// Либо записывается все, либо ничего (одна транзакция)
func (s *OrderStore) InsertOrder(order *models.Order) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		// GORM создает заказ и каскадом все его позиции, проставляя id
		return tx.Create(order).Error
	})
	if err != nil {
		return fmt.Errorf("ошибка сохранения заказа: %w", err)
	}
	return nil
}

// UpdateStatus обновляет только поле status и возвращает обновленный заказ
func (s *OrderStore) UpdateStatus(id uint, status string) (*models.Order, error) {
	res := s.db.Model(&models.Order{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return nil, fmt.Errorf("ошибка обновления статуса заказа %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrOrderNotFound
	}
	return s.GetOrder(id)
}

// DeleteOrder удаляет заказ вместе со всеми его позициями
// (позиция не может пережить свой заказ)
func (s *OrderStore) DeleteOrder(id uint) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Select("Items").Delete(&models.Order{ID: id})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrOrderNotFound
		}
		return nil
	})
	if errors.Is(err, ErrOrderNotFound) {
		return ErrOrderNotFound
	}
	if err != nil {
		return fmt.Errorf("ошибка удаления заказа %d: %w", id, err)
	}
	return nil
}
