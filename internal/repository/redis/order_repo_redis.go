package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"order-processor/internal/domain"
	"order-processor/internal/repository"

	"github.com/redis/go-redis/v9"
)

// OrderRepository keeps each order as a JSON string under its own key and
// a sorted set of ids scored by creation time for listing.
type OrderRepository struct {
	client *redis.Client
	prefix string
}

var _ repository.OrderRepository = (*OrderRepository)(nil)

func NewOrderRepository(client *redis.Client, prefix string) *OrderRepository {
	if prefix == "" {
		prefix = "orders"
	}
	return &OrderRepository{client: client, prefix: prefix}
}

func (r *OrderRepository) orderKey(id string) string {
	return fmt.Sprintf("%s:order:%s", r.prefix, id)
}

func (r *OrderRepository) indexKey() string {
	return r.prefix + ":index"
}

// createScript writes the index entry and the document in one step. ZADD
// runs first: SET on a free key cannot fail, so a failed script leaves no
// document behind.
var createScript = redis.NewScript(`
if redis.call('EXISTS', KEYS[1]) == 1 then
	return 0
end
redis.call('ZADD', KEYS[2], ARGV[2], ARGV[3])
redis.call('SET', KEYS[1], ARGV[1])
return 1
`)

func (r *OrderRepository) Create(ctx context.Context, order *domain.Order) error {
	data, err := json.Marshal(order)
	if err != nil {
		return fmt.Errorf("redis: marshal order: %w", err)
	}

	created, err := createScript.Run(ctx, r.client,
		[]string{r.orderKey(order.OrderID), r.indexKey()},
		string(data), order.CreatedAt.UnixMilli(), order.OrderID,
	).Int()
	if err != nil {
		return fmt.Errorf("redis: create order %s: %w", order.OrderID, err)
	}
	if created == 0 {
		return repository.ErrOrderExists
	}
	return nil
}

// List returns orders newest first. Index entries whose document is
// missing are skipped.
func (r *OrderRepository) List(ctx context.Context) ([]domain.Order, error) {
	ids, err := r.client.ZRevRange(ctx, r.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("redis: read index: %w", err)
	}
	if len(ids) == 0 {
		return []domain.Order{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = r.orderKey(id)
	}

	vals, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("redis: mget: %w", err)
	}
	return decodeOrders(vals)
}

func decodeOrders(vals []interface{}) ([]domain.Order, error) {
	out := make([]domain.Order, 0, len(vals))
	for _, v := range vals {
		s, ok := v.(string)
		if !ok {
			continue
		}
		var o domain.Order
		if err := json.Unmarshal([]byte(s), &o); err != nil {
			return nil, fmt.Errorf("redis: decode order: %w", err)
		}
		out = append(out, o)
	}
	return out, nil
}
