package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"order-processor/internal/domain"
	"order-processor/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOrder(id string) *domain.Order {
	return domain.NewOrder(id, domain.Customer{Name: "Test User", Email: "test@example.com"}, 1, time.Now())
}

func TestOrderRepository_CreateAndList(t *testing.T) {
	repo := NewOrderRepository()
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newOrder("ORD-1")))
	require.NoError(t, repo.Create(ctx, newOrder("ORD-2")))

	orders, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, "ORD-1", orders[0].OrderID)
	assert.Equal(t, "ORD-2", orders[1].OrderID)
	assert.Equal(t, 2, repo.Len())
}

func TestOrderRepository_CreateRejectsExistingID(t *testing.T) {
	repo := NewOrderRepository()
	ctx := context.Background()

	first := newOrder("ORD-1")
	require.NoError(t, repo.Create(ctx, first))

	dup := newOrder("ORD-1")
	dup.Customer.Name = "Someone Else"
	err := repo.Create(ctx, dup)
	assert.ErrorIs(t, err, repository.ErrOrderExists)

	orders, _ := repo.List(ctx)
	require.Len(t, orders, 1)
	assert.Equal(t, "Test User", orders[0].Customer.Name)
}

func TestOrderRepository_ListReturnsCopy(t *testing.T) {
	repo := NewOrderRepository()
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, newOrder("ORD-1")))

	orders, _ := repo.List(ctx)
	orders[0].Status = "Shipped"

	again, _ := repo.List(ctx)
	assert.Equal(t, domain.StatusPending, again[0].Status)
}

func TestOrderRepository_ConcurrentCreate(t *testing.T) {
	repo := NewOrderRepository()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			assert.NoError(t, repo.Create(ctx, newOrder(fmt.Sprintf("ORD-%d", n))))
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 50, repo.Len())
}
