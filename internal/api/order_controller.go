package api

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"restaurant/server/internal/models"
	"restaurant/server/internal/services"
	"restaurant/server/internal/store"
)

// OrderController - REST обработчики заказов
type OrderController struct {
	orders *services.OrderService
}

// NewOrderController создает новый контроллер заказов
func NewOrderController(orders *services.OrderService) *OrderController {
	return &OrderController{orders: orders}
}

// GetOrders возвращает все заказы, новые первыми
// GET /api/orders
func (oc *OrderController) GetOrders(c *gin.Context) {
	orders, err := oc.orders.ListOrders()
	if err != nil {
		log.Printf("❌ Ошибка загрузки заказов: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load orders"})
		return
	}
	if orders == nil {
		orders = []models.Order{}
	}
	c.JSON(http.StatusOK, orders)
}

// CreateOrder создает новый заказ
// POST /api/orders
func (oc *OrderController) CreateOrder(c *gin.Context) {
	var req services.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, err := oc.orders.CreateOrder(req)
	if err != nil {
		if errors.Is(err, services.ErrEmptyTable) || errors.Is(err, services.ErrNoItems) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		log.Printf("❌ Ошибка создания заказа: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create order"})
		return
	}

	c.JSON(http.StatusCreated, order)
}

// UpdateOrderStatus меняет статус заказа
// PUT /api/orders/:id/status
func (oc *OrderController) UpdateOrderStatus(c *gin.Context) {
	orderID, ok := parseOrderID(c)
	if !ok {
		return
	}

	var body struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
		return
	}

	order, err := oc.orders.SetStatus(orderID, body.Status)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidStatus):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
		case errors.Is(err, store.ErrOrderNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		default:
			log.Printf("❌ Ошибка обновления статуса заказа %d: %v", orderID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update order"})
		}
		return
	}

	c.JSON(http.StatusOK, order)
}

// DeleteOrder удаляет заказ вместе с позициями
// DELETE /api/orders/:id
func (oc *OrderController) DeleteOrder(c *gin.Context) {
	orderID, ok := parseOrderID(c)
	if !ok {
		return
	}

	if err := oc.orders.DeleteOrder(orderID); err != nil {
		if errors.Is(err, store.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		log.Printf("❌ Ошибка удаления заказа %d: %v", orderID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete order"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Order deleted", "orderId": orderID})
}

// GetStats возвращает агрегированную статистику для панели менеджера
// GET /api/stats
func (oc *OrderController) GetStats(c *gin.Context) {
	stats, err := oc.orders.ComputeStats()
	if err != nil {
		log.Printf("❌ Ошибка расчета статистики: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute stats"})
		return
	}
	c.JSON(http.StatusOK, stats)
}

// parseOrderID разбирает :id из пути. Нечисловой id означает,
// что такого заказа не существует
func parseOrderID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return 0, false
	}
	return uint(id), true
}
