package stripe

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"app/internal/usecase"

	stripego "github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

// Client は usecase.PaymentGateway のStripe実装。
// ネットワーク越しの唯一の口なので、HTTPクライアントにタイムアウトを必ず入れる
type Client struct {
	api *client.API
}

func New(secretKey string, timeout time.Duration) *Client {
	backend := stripego.GetBackendWithConfig(stripego.APIBackend, &stripego.BackendConfig{
		HTTPClient: &http.Client{Timeout: timeout},
	})

	api := &client.API{}
	api.Init(secretKey, &stripego.Backends{API: backend})
	return &Client{api: api}
}

func (c *Client) CreatePaymentIntent(ctx context.Context, in usecase.GatewayIntentInput) (usecase.GatewayIntent, error) {
	name := in.Customer.FirstName + " " + in.Customer.LastName
	address := &stripego.AddressParams{
		City:       stripego.String(in.Customer.City),
		Line1:      stripego.String(in.Customer.StreetAddress),
		PostalCode: stripego.String(in.Customer.ZipCode),
	}

	cust, err := c.api.Customers.New(&stripego.CustomerParams{
		Params:  stripego.Params{Context: ctx},
		Email:   stripego.String(in.Customer.Email),
		Name:    stripego.String(name),
		Address: address,
	})
	if err != nil {
		return usecase.GatewayIntent{}, gatewayError(err)
	}

	params := &stripego.PaymentIntentParams{
		Params:   stripego.Params{Context: ctx},
		Customer: stripego.String(cust.ID),
		// NOKはゼロ小数点通貨ではないのでøreで送る
		Amount:   stripego.Int64(in.Total * 100),
		Currency: stripego.String(string(stripego.CurrencyNOK)),
		Shipping: &stripego.ShippingDetailsParams{
			Name:    stripego.String(name),
			Address: address,
		},
	}
	params.AddMetadata("order_id", in.OrderID)

	pi, err := c.api.PaymentIntents.New(params)
	if err != nil {
		return usecase.GatewayIntent{}, gatewayError(err)
	}

	raw, _ := json.Marshal(pi)
	return usecase.GatewayIntent{
		TransactionID: pi.ID,
		ClientSecret:  pi.ClientSecret,
		Status:        string(pi.Status),
		Amount:        pi.Amount,
		Raw:           string(raw),
	}, nil
}

// ゲートウェイのエラーは status code を持っていればそれを使い、
// 詳細はクライアントに漏らさない
func gatewayError(err error) error {
	var serr *stripego.Error
	if errors.As(err, &serr) && serr.HTTPStatusCode > 0 {
		return usecase.NewHTTPError(serr.HTTPStatusCode, "payment gateway error")
	}
	return usecase.NewHTTPError(http.StatusBadGateway, "payment gateway unreachable")
}
