package server

import (
	"app/internal/handler"

	"github.com/labstack/echo/v4"
)

func RegisterRoutes(e *echo.Echo, orderH *handler.OrderHandler, paymentH *handler.PaymentHandler, stockH *handler.StockHandler) {
	orderH.RegisterRoutes(e)
	paymentH.RegisterRoutes(e)
	stockH.RegisterRoutes(e)
}
