package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

type CustomerGormRepository struct {
	db *gorm.DB
}

func NewCustomerGormRepository(db *gorm.DB) *CustomerGormRepository {
	return &CustomerGormRepository{db: db}
}

func (r *CustomerGormRepository) Create(ctx context.Context, customer model.Customer) (int64, error) {
	if err := r.db.WithContext(ctx).Create(&customer).Error; err != nil {
		return 0, err
	}
	return customer.CustomerNo, nil
}

func (r *CustomerGormRepository) FindByNo(ctx context.Context, customerNo int64) (model.Customer, error) {
	var c model.Customer
	err := r.db.WithContext(ctx).Where("customer_no = ?", customerNo).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Customer{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Customer{}, err
	}
	return c, nil
}
