package handler

import (
	"io"
	"net/http"

	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

type PaymentHandler struct {
	payments *usecase.PaymentUsecase
	webhook  *usecase.WebhookUsecase
}

func NewPaymentHandler(payments *usecase.PaymentUsecase, webhook *usecase.WebhookUsecase) *PaymentHandler {
	return &PaymentHandler{payments: payments, webhook: webhook}
}

func (h *PaymentHandler) RegisterRoutes(e *echo.Echo) {
	e.POST("/payment/stripe", h.create)
	e.POST("/webhook/stripe", h.webhookEvent)
}

type PaymentCreateRequest struct {
	OrderID    string `json:"order_id"`
	CustomerNo int64  `json:"customer_no"`
}

type PaymentCreateResponse struct {
	Success      bool   `json:"success"`
	ClientSecret string `json:"clientSecret"`
}

func (h *PaymentHandler) create(c echo.Context) error {
	var req PaymentCreateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Success: false, Message: "invalid body"})
	}
	if req.OrderID == "" || req.CustomerNo == 0 {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Success: false,
			Message: "missing order_id and/or customer_no",
		})
	}

	out, err := h.payments.CreatePayment(c.Request().Context(), req.OrderID, req.CustomerNo)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, PaymentCreateResponse{
		Success:      true,
		ClientSecret: out.ClientSecret,
	})
}

// ゲートウェイには受理した時点で必ず200 "ok" を返す。
// 内部の失敗はログと内部リトライの問題で、再送ストームの燃料にしない
func (h *PaymentHandler) webhookEvent(c echo.Context) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		c.Logger().Errorf("webhook: failed to read body: %v", err)
		return c.String(http.StatusOK, "ok")
	}

	if err := h.webhook.HandleEvent(c.Request().Context(), body); err != nil {
		c.Logger().Errorf("webhook: processing failed: %v", err)
	}

	return c.String(http.StatusOK, "ok")
}
