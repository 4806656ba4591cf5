package repository

import (
	"context"

	"app/internal/domain/model"
)

type CustomerRepository interface {
	Create(ctx context.Context, customer model.Customer) (int64, error)
	FindByNo(ctx context.Context, customerNo int64) (model.Customer, error)
}
