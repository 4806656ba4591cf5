package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"
	"app/internal/validator"
)

// IDGenerator は注文IDの採番（本番はuuid）
type IDGenerator interface {
	NewID() string
}

// StatusCache はポーリング用のステータスキャッシュ。失敗しても無視できる前提
type StatusCache interface {
	GetStatus(ctx context.Context, orderID string) (model.OrderStatus, bool)
	SetStatus(ctx context.Context, orderID string, status model.OrderStatus)
}

type OrderUsecase struct {
	tx    repo.TransactionManager
	cache StatusCache
	idGen IDGenerator
}

func NewOrderUsecase(tx repo.TransactionManager, cache StatusCache, idGen IDGenerator) *OrderUsecase {
	return &OrderUsecase{tx: tx, cache: cache, idGen: idGen}
}

type CartItemInput struct {
	ProductNo int64
	SkuID     int64
	Quantity  int64
	// クライアントが見ていた価格。スナップショットには使わずSKUの現在価格を採る
	Price int64
}

type SubmitOrderInput struct {
	Customer  validator.CustomerInput
	Cart      []CartItemInput
	StartTime *time.Time
	EndTime   *time.Time
}

type SubmitOrderOutput struct {
	OrderID    string `json:"order_id"`
	CustomerNo int64  `json:"customer_no"`
}

// SubmitOrder は全件検証→OKなら Customer / Order(INITIATED) / LineItem をまとめて作る。
// 在庫はここでは減らさない（確定時にまとめて減らす）。
func (u *OrderUsecase) SubmitOrder(ctx context.Context, in SubmitOrderInput) (SubmitOrderOutput, error) {
	// フォーム項目の検証は全部集める
	fieldErrs := validator.ValidateCustomer(in.Customer)

	if len(in.Cart) == 0 {
		fieldErrs = append(fieldErrs, validator.FieldError{
			Field:   "cart",
			Message: "cart is empty",
		})
	}
	for i, item := range in.Cart {
		if item.Quantity <= 0 {
			fieldErrs = append(fieldErrs, validator.FieldError{
				Field:   fmt.Sprintf("lineitem-%d", i),
				Message: "quantity must be positive",
			})
		}
	}

	var out SubmitOrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		// 商品の存在と在庫をカート全件ぶんチェック（ここもエラーは集める）
		items := make([]model.OrderItem, 0, len(in.Cart))
		for i, item := range in.Cart {
			sku, err := r.Skus().FindBySkuID(ctx, item.SkuID)
			if errors.Is(err, repo.ErrNotFound) {
				fieldErrs = append(fieldErrs, validator.FieldError{
					Field:   fmt.Sprintf("lineitem-%d", i),
					Message: "product not found",
				})
				continue
			}
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}

			if item.Quantity > sku.Stock {
				fieldErrs = append(fieldErrs, validator.FieldError{
					Field:   fmt.Sprintf("lineitem-%d", i),
					Message: fmt.Sprintf("only %d left in stock", sku.Stock),
				})
				continue
			}

			// 価格スナップショットはSKUの現在価格
			items = append(items, model.OrderItem{
				ProductNo:    sku.ProductNo,
				ProductSkuNo: sku.SkuID,
				Price:        sku.Price,
				Quantity:     item.Quantity,
			})
		}

		// ひとつでも問題があれば何も書かない
		if len(fieldErrs) > 0 {
			return &ValidationErrors{Errors: fieldErrs}
		}

		customerNo, err := r.Customers().Create(ctx, model.Customer{
			Email:         in.Customer.Email,
			FirstName:     in.Customer.FirstName,
			LastName:      in.Customer.LastName,
			StreetAddress: in.Customer.StreetAddress,
			ZipCode:       in.Customer.ZipCode,
			City:          in.Customer.City,
		})
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		orderID := u.idGen.NewID()
		now := time.Now()
		if err := r.Orders().Create(ctx, model.Order{
			OrderID:    orderID,
			CustomerNo: customerNo,
			Status:     model.OrderStatusInitiated,
			StartTime:  in.StartTime,
			EndTime:    in.EndTime,
			Created:    now,
			Updated:    now,
		}); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if err := r.OrderItems().CreateBulk(ctx, orderID, items); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		out = SubmitOrderOutput{OrderID: orderID, CustomerNo: customerNo}
		return nil
	})

	if err != nil {
		return SubmitOrderOutput{}, err
	}

	u.cache.SetStatus(ctx, out.OrderID, model.OrderStatusInitiated)
	return out, nil
}

type OrderStatusOutput struct {
	OrderID string            `json:"order_id"`
	Status  model.OrderStatus `json:"status"`
	Found   bool              `json:"-"`
}

// GetOrderStatus はポーリング前提なので、見つからなくてもエラーにしない
func (u *OrderUsecase) GetOrderStatus(ctx context.Context, orderID string) (OrderStatusOutput, error) {
	if status, ok := u.cache.GetStatus(ctx, orderID); ok {
		return OrderStatusOutput{OrderID: orderID, Status: status, Found: true}, nil
	}

	var out OrderStatusOutput
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		status, found, err := r.Orders().GetStatus(ctx, orderID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		out = OrderStatusOutput{OrderID: orderID, Status: status, Found: found}
		return nil
	})
	if err != nil {
		return OrderStatusOutput{}, err
	}

	if out.Found {
		u.cache.SetStatus(ctx, orderID, out.Status)
	}
	return out, nil
}

type LineItemOutput struct {
	ProductNo int64 `json:"product_no"`
	SkuID     int64 `json:"sku_id"`
	Price     int64 `json:"price"`
	Quantity  int64 `json:"quantity"`
}

type PaymentOutput struct {
	Type                string    `json:"type"`
	StripeTransactionID string    `json:"stripe_transaction_id"`
	StripeStatus        string    `json:"stripe_status"`
	Amount              int64     `json:"amount"`
	AmountReceived      int64     `json:"amount_received"`
	AmountCaptured      int64     `json:"amount_captured"`
	AmountRefunded      int64     `json:"amount_refunded"`
	Created             time.Time `json:"created"`
	Updated             time.Time `json:"updated"`
}

type OrderDetailOutput struct {
	OrderID   string            `json:"order_id"`
	Status    model.OrderStatus `json:"status"`
	Created   time.Time         `json:"created"`
	Updated   time.Time         `json:"updated"`
	StartTime *time.Time        `json:"start_time,omitempty"`
	EndTime   *time.Time        `json:"end_time,omitempty"`
	Customer  model.Customer    `json:"customer"`
	LineItems []LineItemOutput  `json:"lineItems"`
	Payment   *PaymentOutput    `json:"payment,omitempty"`
}

func (u *OrderUsecase) GetOrderDetail(ctx context.Context, orderID string) (OrderDetailOutput, error) {
	var out OrderDetailOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "order not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		customer, err := r.Customers().FindByNo(ctx, o.CustomerNo)
		if err != nil && !errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		items, err := r.OrderItems().ListByOrderID(ctx, orderID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		outItems := make([]LineItemOutput, 0, len(items))
		for _, it := range items {
			outItems = append(outItems, LineItemOutput{
				ProductNo: it.ProductNo,
				SkuID:     it.ProductSkuNo,
				Price:     it.Price,
				Quantity:  it.Quantity,
			})
		}

		out = OrderDetailOutput{
			OrderID:   o.OrderID,
			Status:    o.Status,
			Created:   o.Created,
			Updated:   o.Updated,
			StartTime: o.StartTime,
			EndTime:   o.EndTime,
			Customer:  customer,
			LineItems: outItems,
		}

		// 支払いはまだ無いこともある
		p, err := r.Payments().FindByOrderID(ctx, orderID)
		if errors.Is(err, repo.ErrNotFound) {
			return nil
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		out.Payment = &PaymentOutput{
			Type:                "stripe",
			StripeTransactionID: p.StripeTransactionID,
			StripeStatus:        p.StripeStatus,
			Amount:              p.Amount,
			AmountReceived:      p.AmountReceived,
			AmountCaptured:      p.AmountCaptured,
			AmountRefunded:      p.AmountRefunded,
			Created:             p.Created,
			Updated:             p.Updated,
		}
		return nil
	})

	if err != nil {
		return OrderDetailOutput{}, err
	}
	return out, nil
}

func (u *OrderUsecase) ListOrders(ctx context.Context) ([]repo.OrderSummary, error) {
	var out []repo.OrderSummary

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		items, err := r.Orders().ListAll(ctx)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		out = items
		return nil
	})

	if err != nil {
		return []repo.OrderSummary{}, err
	}
	return out, nil
}
