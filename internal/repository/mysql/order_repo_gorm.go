package mysql

import (
	"context"
	"errors"
	"fmt"

	"order-processor/internal/domain"
	"order-processor/internal/logger"
	"order-processor/internal/repository"

	mysqldriver "github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

const errDuplicateEntry = 1062

type orderRepo struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) repository.OrderRepository {
	return &orderRepo{db: db}
}

func (r *orderRepo) Create(ctx context.Context, order *domain.Order) error {
	result := r.db.WithContext(ctx).Create(order)
	if result.Error != nil {
		if isDuplicateKey(result.Error) {
			return repository.ErrOrderExists
		}
		logger.Warn("mysql: create order failed", "orderId", order.OrderID, "err", result.Error)
		return fmt.Errorf("mysql: create order %s: %w", order.OrderID, result.Error)
	}

	if result.RowsAffected != 1 {
		return errors.New("mysql: order insert affected no rows")
	}
	return nil
}

func (r *orderRepo) List(ctx context.Context) ([]domain.Order, error) {
	var out []domain.Order
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&out).Error; err != nil {
		logger.Warn("mysql: list orders failed", "err", err)
		return nil, fmt.Errorf("mysql: list orders: %w", err)
	}
	return out, nil
}

// The dialector translates 1062 only when the gorm.Config has TranslateError
// set, so the raw driver error is checked as well.
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var myErr *mysqldriver.MySQLError
	return errors.As(err, &myErr) && myErr.Number == errDuplicateEntry
}
