package handler

import (
	"net/http"
	"time"

	"app/internal/usecase"
	"app/internal/validator"

	"github.com/labstack/echo/v4"
)

type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type ValidationErrorResponse struct {
	Success          bool                   `json:"success"`
	ValidationErrors []validator.FieldError `json:"validationErrors"`
}

func writeError(c echo.Context, err error) error {
	if err == nil {
		return nil
	}
	if ve, ok := usecase.AsValidationErrors(err); ok {
		// ユーザーが直せる問題。errorログにはしない
		return c.JSON(http.StatusBadRequest, ValidationErrorResponse{
			Success:          false,
			ValidationErrors: ve.Errors,
		})
	}
	if he, ok := usecase.AsHTTPError(err); ok {
		return c.JSON(he.Status, ErrorResponse{Success: false, Message: he.Message})
	}

	// 想定外。詳細はログだけに残してクライアントには出さない
	c.Logger().Errorf("unexpected error: %v", err)
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Success: false, Message: "internal error"})
}

type OrderHandler struct {
	uc        *usecase.OrderUsecase
	lifecycle *usecase.LifecycleUsecase
}

func NewOrderHandler(uc *usecase.OrderUsecase, lifecycle *usecase.LifecycleUsecase) *OrderHandler {
	return &OrderHandler{uc: uc, lifecycle: lifecycle}
}

func (h *OrderHandler) RegisterRoutes(e *echo.Echo) {
	e.POST("/order", h.create)
	e.GET("/order/:order_id", h.detail)
	e.GET("/order/:order_id/status", h.status)
	e.GET("/orders", h.list)
	e.POST("/order/:order_id/cancel", h.cancel)
	e.POST("/order/:order_id/complete", h.complete)
}

type CustomerPayload struct {
	Email         string `json:"email"`
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	StreetAddress string `json:"street_address"`
	ZipCode       string `json:"zip_code"`
	City          string `json:"city"`
}

type CartItemPayload struct {
	ProductNo int64 `json:"product_no"`
	SkuID     int64 `json:"sku_id"`
	Quantity  int64 `json:"quantity"`
	Price     int64 `json:"price"`
}

type OrderCreateRequest struct {
	Customer  CustomerPayload   `json:"customer"`
	Cart      []CartItemPayload `json:"cart"`
	StartTime *time.Time        `json:"start_time,omitempty"`
	EndTime   *time.Time        `json:"end_time,omitempty"`
}

type OrderCreateResponse struct {
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	OrderID    string `json:"order_id"`
	CustomerNo int64  `json:"customer_no"`
}

func (h *OrderHandler) create(c echo.Context) error {
	var req OrderCreateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Success: false, Message: "invalid body"})
	}

	cart := make([]usecase.CartItemInput, 0, len(req.Cart))
	for _, item := range req.Cart {
		cart = append(cart, usecase.CartItemInput{
			ProductNo: item.ProductNo,
			SkuID:     item.SkuID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
	}

	out, err := h.uc.SubmitOrder(c.Request().Context(), usecase.SubmitOrderInput{
		Customer: validator.CustomerInput{
			Email:         req.Customer.Email,
			FirstName:     req.Customer.FirstName,
			LastName:      req.Customer.LastName,
			StreetAddress: req.Customer.StreetAddress,
			ZipCode:       req.Customer.ZipCode,
			City:          req.Customer.City,
		},
		Cart:      cart,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, OrderCreateResponse{
		Success:    true,
		Message:    "successfully created order",
		OrderID:    out.OrderID,
		CustomerNo: out.CustomerNo,
	})
}

func (h *OrderHandler) detail(c echo.Context) error {
	orderID := c.Param("order_id")

	out, err := h.uc.GetOrderDetail(c.Request().Context(), orderID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"order":   out,
	})
}

type OrderStatusResponse struct {
	Success bool   `json:"success"`
	OrderID string `json:"order_id"`
	Status  string `json:"status"`
}

func (h *OrderHandler) status(c echo.Context) error {
	orderID := c.Param("order_id")

	out, err := h.uc.GetOrderStatus(c.Request().Context(), orderID)
	if err != nil {
		return writeError(c, err)
	}
	if !out.Found {
		// ポーリングされる前提なので404はエラーではなく「まだ無い」
		return c.JSON(http.StatusNotFound, ErrorResponse{Success: false, Message: "order not found"})
	}

	return c.JSON(http.StatusOK, OrderStatusResponse{
		Success: true,
		OrderID: out.OrderID,
		Status:  string(out.Status),
	})
}

type TransitionResponse struct {
	Success bool   `json:"success"`
	OrderID string `json:"order_id"`
	Result  string `json:"result"`
}

func (h *OrderHandler) cancel(c echo.Context) error {
	orderID := c.Param("order_id")

	res, err := h.lifecycle.Cancel(c.Request().Context(), orderID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, TransitionResponse{
		Success: res == usecase.TransitionApplied,
		OrderID: orderID,
		Result:  string(res),
	})
}

func (h *OrderHandler) complete(c echo.Context) error {
	orderID := c.Param("order_id")

	res, err := h.lifecycle.Complete(c.Request().Context(), orderID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, TransitionResponse{
		Success: res == usecase.TransitionApplied,
		OrderID: orderID,
		Result:  string(res),
	})
}

func (h *OrderHandler) list(c echo.Context) error {
	out, err := h.uc.ListOrders(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"orders":  out,
	})
}
