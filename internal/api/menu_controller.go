package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"restaurant/server/internal/models"
)

// MenuController отдает статичное меню ресторана
type MenuController struct{}

// NewMenuController создает новый контроллер меню
func NewMenuController() *MenuController {
	return &MenuController{}
}

// GetMenu возвращает все позиции меню
// GET /api/menu
func (mc *MenuController) GetMenu(c *gin.Context) {
	c.JSON(http.StatusOK, models.MenuItems())
}
