// Package firestore stores orders as documents keyed by order id in a
// Cloud Firestore collection.
package firestore

import (
	"context"
	"errors"
	"fmt"

	"order-processor/internal/domain"
	"order-processor/internal/repository"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const DefaultCollection = "orders"

type Config struct {
	// ProjectID may be empty, in which case it is detected from the
	// environment (credentials file or metadata server).
	ProjectID  string
	Collection string
}

type OrderRepository struct {
	client     *firestore.Client
	collection string
}

var _ repository.OrderRepository = (*OrderRepository)(nil)

// NewOrderRepository uses Application Default Credentials.
func NewOrderRepository(ctx context.Context, cfg Config) (*OrderRepository, error) {
	projectID := cfg.ProjectID
	if projectID == "" {
		projectID = firestore.DetectProjectID
	}

	client, err := firestore.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to create firestore client: %w", err)
	}

	collection := cfg.Collection
	if collection == "" {
		collection = DefaultCollection
	}

	return &OrderRepository{client: client, collection: collection}, nil
}

func (r *OrderRepository) Create(ctx context.Context, order *domain.Order) error {
	_, err := r.client.Collection(r.collection).Doc(order.OrderID).Create(ctx, order)
	if err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return repository.ErrOrderExists
		}
		return fmt.Errorf("firestore create %s: %w", order.OrderID, err)
	}
	return nil
}

// List returns every order, newest first.
func (r *OrderRepository) List(ctx context.Context) ([]domain.Order, error) {
	return r.list(ctx, 0)
}

// ListRecent returns at most limit orders, newest first.
func (r *OrderRepository) ListRecent(ctx context.Context, limit int) ([]domain.Order, error) {
	return r.list(ctx, limit)
}

func (r *OrderRepository) list(ctx context.Context, limit int) ([]domain.Order, error) {
	q := r.client.Collection(r.collection).OrderBy("createdAt", firestore.Desc)
	if limit > 0 {
		q = q.Limit(limit)
	}

	iter := q.Documents(ctx)
	defer iter.Stop()

	var out []domain.Order
	for {
		snap, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("firestore list: %w", err)
		}

		var o domain.Order
		if err := snap.DataTo(&o); err != nil {
			return nil, fmt.Errorf("firestore decode %s: %w", snap.Ref.ID, err)
		}
		out = append(out, o)
	}
	return out, nil
}

// Get and Delete exist for the store diagnostic only; the order flow never
// reads back or removes an order.
func (r *OrderRepository) Get(ctx context.Context, orderID string) (*domain.Order, error) {
	snap, err := r.client.Collection(r.collection).Doc(orderID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, repository.ErrOrderNotFound
		}
		return nil, fmt.Errorf("firestore get %s: %w", orderID, err)
	}

	var o domain.Order
	if err := snap.DataTo(&o); err != nil {
		return nil, fmt.Errorf("firestore decode %s: %w", orderID, err)
	}
	return &o, nil
}

func (r *OrderRepository) Delete(ctx context.Context, orderID string) error {
	if _, err := r.client.Collection(r.collection).Doc(orderID).Delete(ctx); err != nil {
		return fmt.Errorf("firestore delete %s: %w", orderID, err)
	}
	return nil
}

func (r *OrderRepository) Close() error {
	return r.client.Close()
}
