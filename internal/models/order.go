package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Статусы жизненного цикла заказа
// Линейная цепочка: pending -> preparing -> ready -> completed
const (
	StatusPending   = "pending"
	StatusPreparing = "preparing"
	StatusReady     = "ready"
	StatusCompleted = "completed"
)

// OrderStatuses - все допустимые статусы заказа (в порядке жизненного цикла)
var OrderStatuses = []string{StatusPending, StatusPreparing, StatusReady, StatusCompleted}

// IsValidStatus проверяет, что статус входит в допустимый набор
func IsValidStatus(status string) bool {
	for _, s := range OrderStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// Order - заказ (агрегат: заказ + его позиции создаются и удаляются вместе)
type Order struct {
	ID     uint   `gorm:"primaryKey"`
	Table  string `gorm:"column:table_name;size:50;not null"` // Номер/имя столика
	Status string `gorm:"size:20;default:pending;index"`
	Waiter string `gorm:"size:100"`
	// Момент создания заказа, неизменяемый (UTC)
	Timestamp time.Time `gorm:"not null"`

	// Произвольные атрибуты клиента, хранятся как JSON и не интерпретируются
	CustomerInfo datatypes.JSONMap `gorm:"column:customer_info"`
	// Флаги здоровья (diabetes, cholesterol, bloodPressure, sugarFree),
	// используются только для агрегированной статистики
	HealthConditions datatypes.JSONMap `gorm:"column:health_conditions"`

	// Позиции заказа, удаляются каскадом вместе с заказом
	Items []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// OrderItem - позиция заказа. Пищевая ценность копируется из меню
// в момент создания, чтобы правки меню не меняли исторические заказы
type OrderItem struct {
	ID         uint    `gorm:"primaryKey" json:"id"`
	OrderID    uint    `gorm:"column:order_id;not null;index" json:"-"`
	MenuItemID int     `gorm:"column:menu_item_id;not null" json:"menuItemId"`
	Name       string  `gorm:"size:200;not null" json:"name"`
	Category   string  `gorm:"size:100" json:"category"`
	Price      float64 `gorm:"default:0" json:"price"`
	Quantity   int     `gorm:"default:1" json:"quantity"`
	Notes      string  `gorm:"type:text" json:"notes"`

	// Снимок пищевой ценности на момент заказа
	Calories int     `gorm:"default:0" json:"calories"`
	Protein  float64 `gorm:"default:0" json:"protein"`
	Carbs    float64 `gorm:"default:0" json:"carbs"`
	Fat      float64 `gorm:"default:0" json:"fat"`
	Sugar    float64 `gorm:"default:0" json:"sugar"`
}

// TableName для правильных имен таблиц
func (Order) TableName() string {
	return "orders"
}

func (OrderItem) TableName() string {
	return "order_items"
}

// MarshalJSON сериализует заказ в формат, который ожидает фронтенд:
// camelCase ключи, время создания как "HH:MM:SS", items всегда массив
func (o Order) MarshalJSON() ([]byte, error) {
	items := o.Items
	if items == nil {
		items = []OrderItem{}
	}

	var timestamp interface{}
	if !o.Timestamp.IsZero() {
		timestamp = o.Timestamp.Format("15:04:05")
	}

	return json.Marshal(map[string]interface{}{
		"id":               o.ID,
		"table":            o.Table,
		"status":           o.Status,
		"waiter":           o.Waiter,
		"timestamp":        timestamp,
		"customerInfo":     o.CustomerInfo,
		"healthConditions": o.HealthConditions,
		"items":            items,
	})
}

// AutoMigrate создает таблицы orders и order_items в БД
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Order{},
		&OrderItem{},
	)
}
