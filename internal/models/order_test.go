package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestOrderMarshalJSON(t *testing.T) {
	order := Order{
		ID:        7,
		Table:     "5",
		Status:    StatusPending,
		Waiter:    "Waiter 3",
		Timestamp: time.Date(2024, 6, 1, 14, 30, 5, 0, time.UTC),
		CustomerInfo: datatypes.JSONMap{
			"name": "Ivan",
		},
		Items: []OrderItem{
			{ID: 1, OrderID: 7, MenuItemID: 1, Name: "Classic Burger", Category: "Main", Price: 12, Quantity: 2, Calories: 650, Protein: 35, Carbs: 45, Fat: 38, Sugar: 8},
		},
	}

	raw, err := json.Marshal(order)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &decoded))

	// Ключи camelCase, время как HH:MM:SS
	assert.Equal(t, float64(7), decoded["id"])
	assert.Equal(t, "5", decoded["table"])
	assert.Equal(t, "pending", decoded["status"])
	assert.Equal(t, "Waiter 3", decoded["waiter"])
	assert.Equal(t, "14:30:05", decoded["timestamp"])
	assert.Equal(t, map[string]interface{}{"name": "Ivan"}, decoded["customerInfo"])
	assert.Nil(t, decoded["healthConditions"])

	items, ok := decoded["items"].([]interface{})
	require.True(t, ok)
	require.Len(t, items, 1)

	item := items[0].(map[string]interface{})
	assert.Equal(t, float64(1), item["menuItemId"])
	assert.Equal(t, "Classic Burger", item["name"])
	assert.Equal(t, float64(12), item["price"])
	assert.Equal(t, float64(2), item["quantity"])
	assert.Equal(t, float64(650), item["calories"])
	// order_id - внутренняя колонка, наружу не отдается
	assert.NotContains(t, item, "order_id")
}

func TestOrderMarshalJSONEmptyItems(t *testing.T) {
	order := Order{ID: 1, Table: "2", Status: StatusPending}

	raw, err := json.Marshal(order)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &decoded))

	// items всегда массив, даже если позиции не загружены
	items, ok := decoded["items"].([]interface{})
	require.True(t, ok)
	assert.Empty(t, items)
}

func TestIsValidStatus(t *testing.T) {
	for _, status := range OrderStatuses {
		assert.True(t, IsValidStatus(status), status)
	}

	assert.False(t, IsValidStatus("cancelled"))
	assert.False(t, IsValidStatus("PENDING"))
	assert.False(t, IsValidStatus(""))
}
