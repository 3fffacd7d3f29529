package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"restaurant/server/internal/models"
)

// newTestStore поднимает хранилище на in-memory SQLite: транзакции,
// каскады и RowsAffected работают так же, как на боевой БД
func newTestStore(t *testing.T) *OrderStore {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// У каждого соединения была бы своя :memory: база
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, models.AutoMigrate(db))
	return NewOrderStore(db)
}

func testOrder(table string, ts time.Time, items ...models.OrderItem) *models.Order {
	return &models.Order{
		Table:     table,
		Status:    models.StatusPending,
		Waiter:    "Waiter 1",
		Timestamp: ts,
		Items:     items,
	}
}

func TestInsertOrderCascade(t *testing.T) {
	st := newTestStore(t)

	order := testOrder("5", time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		models.OrderItem{MenuItemID: 1, Name: "Classic Burger", Price: 12.99, Quantity: 2},
		models.OrderItem{MenuItemID: 7, Name: "Espresso", Price: 3.49, Quantity: 1},
	)
	order.CustomerInfo = datatypes.JSONMap{"name": "Anna"}
	order.HealthConditions = datatypes.JSONMap{"diabetes": true}

	require.NoError(t, st.InsertOrder(order))
	require.NotZero(t, order.ID)

	// Позиции созданы каскадом и привязаны к заказу
	loaded, err := st.GetOrder(order.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Items, 2)
	names := make([]string, 0, len(loaded.Items))
	for _, item := range loaded.Items {
		assert.Equal(t, order.ID, item.OrderID)
		names = append(names, item.Name)
	}
	assert.ElementsMatch(t, []string{"Classic Burger", "Espresso"}, names)
	assert.Equal(t, "5", loaded.Table)
	assert.Equal(t, "Anna", loaded.CustomerInfo["name"])
	assert.Equal(t, true, loaded.HealthConditions["diabetes"])
}

func TestGetOrderNotFound(t *testing.T) {
	st := newTestStore(t)

	_, err := st.GetOrder(42)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestListOrdersNewestFirst(t *testing.T) {
	st := newTestStore(t)

	t1 := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	t2 := time.Date(2025, 6, 1, 11, 0, 0, 0, time.UTC)

	early := testOrder("1", t1, models.OrderItem{MenuItemID: 1, Name: "Tomato Soup"})
	require.NoError(t, st.InsertOrder(early))
	lateA := testOrder("2", t2, models.OrderItem{MenuItemID: 2, Name: "Margherita Pizza"})
	require.NoError(t, st.InsertOrder(lateA))
	lateB := testOrder("3", t2, models.OrderItem{MenuItemID: 3, Name: "Tiramisu"})
	require.NoError(t, st.InsertOrder(lateB))

	orders, err := st.ListOrders()
	require.NoError(t, err)
	require.Len(t, orders, 3)

	// Новые первыми; при равном времени - больший id первым
	assert.Equal(t, lateB.ID, orders[0].ID)
	assert.Equal(t, lateA.ID, orders[1].ID)
	assert.Equal(t, early.ID, orders[2].ID)

	// Позиции подгружены для каждого заказа
	for _, order := range orders {
		assert.Len(t, order.Items, 1)
	}
}

func TestUpdateStatusStore(t *testing.T) {
	st := newTestStore(t)

	order := testOrder("4", time.Now().UTC(),
		models.OrderItem{MenuItemID: 4, Name: "Caesar Salad"})
	require.NoError(t, st.InsertOrder(order))

	updated, err := st.UpdateStatus(order.ID, models.StatusPreparing)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPreparing, updated.Status)
	// Обновленный заказ возвращается целиком, с позициями
	assert.Len(t, updated.Items, 1)

	// Остальные поля не тронуты
	assert.Equal(t, "4", updated.Table)
	assert.Equal(t, "Waiter 1", updated.Waiter)
}

func TestUpdateStatusStoreNotFound(t *testing.T) {
	st := newTestStore(t)

	_, err := st.UpdateStatus(99, models.StatusReady)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestDeleteOrderCascade(t *testing.T) {
	st := newTestStore(t)

	order := testOrder("6", time.Now().UTC(),
		models.OrderItem{MenuItemID: 5, Name: "Grilled Salmon"},
		models.OrderItem{MenuItemID: 8, Name: "Fresh Orange Juice"},
	)
	require.NoError(t, st.InsertOrder(order))
	keep := testOrder("7", time.Now().UTC(),
		models.OrderItem{MenuItemID: 6, Name: "Gelato"})
	require.NoError(t, st.InsertOrder(keep))

	require.NoError(t, st.DeleteOrder(order.ID))

	_, err := st.GetOrder(order.ID)
	assert.ErrorIs(t, err, ErrOrderNotFound)

	// Позиции удаленного заказа не пережили его
	var count int64
	require.NoError(t, st.db.Model(&models.OrderItem{}).
		Where("order_id = ?", order.ID).Count(&count).Error)
	assert.Zero(t, count)

	// Чужой заказ и его позиции не задеты
	left, err := st.GetOrder(keep.ID)
	require.NoError(t, err)
	assert.Len(t, left.Items, 1)
}

func TestDeleteOrderStoreNotFound(t *testing.T) {
	st := newTestStore(t)

	err := st.DeleteOrder(123)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}
