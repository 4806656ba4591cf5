package handler

import (
	"net/http"

	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

type StockHandler struct {
	uc *usecase.StockUsecase
}

func NewStockHandler(uc *usecase.StockUsecase) *StockHandler {
	return &StockHandler{uc: uc}
}

func (h *StockHandler) RegisterRoutes(e *echo.Echo) {
	e.POST("/stock/restock", h.restock)
}

type RestockRequest struct {
	SkuID    int64  `json:"sku_id"`
	Quantity int64  `json:"quantity"`
	Reason   string `json:"reason"`
}

// 返金では在庫を戻さないので、戻すときはここから明示的に行う
func (h *StockHandler) restock(c echo.Context) error {
	var req RestockRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Success: false, Message: "invalid body"})
	}
	if req.SkuID == 0 {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Success: false, Message: "missing sku_id"})
	}

	if err := h.uc.Restock(c.Request().Context(), req.SkuID, req.Quantity, req.Reason); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{"success": true})
}
