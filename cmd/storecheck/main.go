package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"time"

	"order-processor/internal/config"
	"order-processor/internal/domain"
	firestorerepo "order-processor/internal/repository/firestore"
)

const recentLimit = 5

type store interface {
	Create(ctx context.Context, order *domain.Order) error
	Get(ctx context.Context, orderID string) (*domain.Order, error)
	ListRecent(ctx context.Context, limit int) ([]domain.Order, error)
	Delete(ctx context.Context, orderID string) error
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	repo, err := firestorerepo.NewOrderRepository(ctx, firestorerepo.Config{
		ProjectID:  cfg.FirestoreProject,
		Collection: cfg.FirestoreCollection,
	})
	if err != nil {
		fail(os.Stderr, err)
		os.Exit(1)
	}
	defer repo.Close()

	if err := check(ctx, repo, os.Stdout, time.Now()); err != nil {
		fail(os.Stderr, err)
		repo.Close()
		os.Exit(1)
	}
}

func testOrder(now time.Time) *domain.Order {
	id := "TEST-" + strconv.FormatInt(now.UnixMilli(), 10)
	return domain.NewOrder(id, domain.Customer{
		Name:    "Test User",
		Email:   "test@example.com",
		Phone:   "+995 555 123 456",
		Address: "Test Address, Tbilisi, Georgia",
	}, 1, now)
}

// check writes a throwaway order, reads it back, lists the newest orders and
// removes the throwaway again. The throwaway is removed even if a later step
// fails.
func check(ctx context.Context, s store, out io.Writer, now time.Time) (err error) {
	order := testOrder(now)

	if err := s.Create(ctx, order); err != nil {
		return fmt.Errorf("create test order: %w", err)
	}
	fmt.Fprintf(out, "created test order %s\n", order.OrderID)

	defer func() {
		if derr := s.Delete(ctx, order.OrderID); derr != nil {
			err = errors.Join(err, fmt.Errorf("delete test order: %w", derr))
			return
		}
		fmt.Fprintln(out, "deleted test order")
		if err == nil {
			fmt.Fprintln(out, "firestore is working")
		}
	}()

	got, err := s.Get(ctx, order.OrderID)
	if err != nil {
		return fmt.Errorf("read test order: %w", err)
	}
	data, err := json.MarshalIndent(got, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "read test order:\n%s\n", data)

	recent, err := s.ListRecent(ctx, recentLimit)
	if err != nil {
		return fmt.Errorf("list orders: %w", err)
	}
	fmt.Fprintf(out, "found %d order(s)\n", len(recent))
	for _, o := range recent {
		fmt.Fprintf(out, "  - %s  %s  %s  %s\n", o.OrderID, o.Customer.Name, o.Status, o.CreatedAt.Format(time.RFC3339))
	}
	return nil
}

func fail(w io.Writer, err error) {
	fmt.Fprintf(w, "firestore check failed: %v\n", err)
	fmt.Fprintln(w, "check that:")
	fmt.Fprintln(w, "  a Firestore database exists in the project")
	fmt.Fprintln(w, "  application default credentials are set (gcloud auth application-default login)")
	fmt.Fprintln(w, "  GOOGLE_CLOUD_PROJECT names the project, or gcloud config has one")
	fmt.Fprintln(w, "  the Firestore API is enabled (gcloud services enable firestore.googleapis.com)")
}
