package repository

import (
	"context"
	"errors"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OrderGormRepository struct {
	db *gorm.DB
}

func NewOrderGormRepository(db *gorm.DB) *OrderGormRepository {
	return &OrderGormRepository{db: db}
}

func (r *OrderGormRepository) Create(ctx context.Context, order model.Order) error {
	if err := r.db.WithContext(ctx).Create(&order).Error; err != nil {
		return err
	}
	return nil
}

func (r *OrderGormRepository) FindByID(ctx context.Context, orderID string) (model.Order, error) {
	var o model.Order
	err := r.db.WithContext(ctx).Where("order_id = ?", orderID).First(&o).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Order{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Order{}, err
	}
	return o, nil
}

// SELECT ... FOR UPDATE で行ロック。confirmの直列化用（トランザクション内でだけ呼ぶ）
func (r *OrderGormRepository) FindByIDForUpdate(ctx context.Context, orderID string) (model.Order, error) {
	var o model.Order
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("order_id = ?", orderID).
		First(&o).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Order{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Order{}, err
	}
	return o, nil
}

func (r *OrderGormRepository) GetStatus(ctx context.Context, orderID string) (model.OrderStatus, bool, error) {
	var o model.Order
	err := r.db.WithContext(ctx).
		Select("status").
		Where("order_id = ?", orderID).
		First(&o).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return o.Status, true, nil
}

// 遷移元statusをWHEREに含めることで、並行する遷移が二重に適用されない
func (r *OrderGormRepository) UpdateStatus(ctx context.Context, orderID string, from, to model.OrderStatus) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("order_id = ? AND status = ?", orderID, from).
		Updates(map[string]interface{}{
			"status":  to,
			"updated": time.Now(),
		})

	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *OrderGormRepository) UpdateStatusClosingWindow(ctx context.Context, orderID string, from, to model.OrderStatus, endTime time.Time) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("order_id = ? AND status = ?", orderID, from).
		Updates(map[string]interface{}{
			"status":   to,
			"end_time": endTime,
			"updated":  time.Now(),
		})

	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// 同じ商品に載っていて、INITIATED/COMPLETED/CANCELLED以外で、
// 時間枠がまだ終わっていない注文を引く
func (r *OrderGormRepository) FindConflicting(ctx context.Context, productNo int64, excludeOrderID string, now time.Time) ([]model.Order, error) {
	var orders []model.Order
	err := r.db.WithContext(ctx).
		Model(&model.Order{}).
		Distinct("orders.*").
		Joins("INNER JOIN orders_lineitem ON orders_lineitem.order_id = orders.order_id").
		Where("orders_lineitem.product_no = ?", productNo).
		Where("orders.order_id <> ?", excludeOrderID).
		Where("orders.status NOT IN ?", []model.OrderStatus{
			model.OrderStatusInitiated,
			model.OrderStatusCompleted,
			model.OrderStatusCancelled,
		}).
		Where("orders.end_time > ?", now).
		Find(&orders).Error
	if err != nil {
		return []model.Order{}, err
	}
	return orders, nil
}

func (r *OrderGormRepository) ListExpiredTimeBoxed(ctx context.Context, now time.Time) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&model.Order{}).
		Where("status = ?", model.OrderStatusInitiated).
		Where("start_time IS NOT NULL AND end_time IS NOT NULL").
		Where("end_time <= ?", now).
		Pluck("order_id", &ids).Error
	if err != nil {
		return []string{}, err
	}
	return ids, nil
}

func (r *OrderGormRepository) ListAll(ctx context.Context) ([]repo.OrderSummary, error) {
	var items []repo.OrderSummary
	err := r.db.WithContext(ctx).Raw(`
		SELECT orders.order_id, orders.created, orders.status,
		       customer.first_name, customer.last_name, customer.email,
		       COALESCE(lines.order_sum, 0) AS order_sum
		FROM orders
		INNER JOIN customer ON customer.customer_no = orders.customer_no
		LEFT JOIN (
			SELECT order_id, SUM(quantity * price) AS order_sum
			FROM orders_lineitem
			GROUP BY order_id
		) AS lines ON orders.order_id = lines.order_id
		ORDER BY orders.updated DESC`).
		Scan(&items).Error
	if err != nil {
		return []repo.OrderSummary{}, err
	}
	return items, nil
}
