package store

import (
	"context"
	"strings"
	"testing"
	"time"
)

func TestTransactionStoreListDefaultSort(t *testing.T) {
	ctx := context.Background()
	store := NewTransactionStore(stubDB{
		selectFn: func(_ context.Context, _ any, query string, args ...any) error {
			if !strings.Contains(query, "ORDER BY t.transaction_date DESC") {
				t.Fatalf("expected default sort, got: %s", query)
			}
			if !strings.Contains(query, "t.active = TRUE") {
				t.Fatalf("expected active filter, got: %s", query)
			}
			if len(args) != 3 || args[0] != 1 || args[1] != 20 || args[2] != 0 {
				t.Fatalf("unexpected args: %#v", args)
			}
			return nil
		},
	})
	_, err := store.ListByUser(ctx, 1, TransactionFilter{Limit: 20, Offset: 0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestTransactionStoreListAppliesFilters(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 31, 23, 59, 59, 0, time.UTC)
	store := NewTransactionStore(stubDB{
		selectFn: func(_ context.Context, _ any, query string, args ...any) error {
			for _, fragment := range []string{
				"t.account_id = $2",
				"t.category_id = $3",
				"t.transaction_date >= $4",
				"t.transaction_date <= $5",
				"t.description ILIKE $6",
				"ORDER BY t.amount ASC",
				"LIMIT $7 OFFSET $8",
			} {
				if !strings.Contains(query, fragment) {
					t.Fatalf("expected %q in query: %s", fragment, query)
				}
			}
			if args[5] != "%rent%" {
				t.Fatalf("unexpected search arg: %#v", args[5])
			}
			return nil
		},
	})
	_, err := store.ListByUser(ctx, 1, TransactionFilter{
		AccountID:  intPtr(10),
		CategoryID: intPtr(4),
		StartDate:  &start,
		EndDate:    &end,
		Search:     "rent",
		Sort:       "amount:asc",
		Limit:      50,
		Offset:     50,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestTransactionStoreSortIsNeverInterpolated(t *testing.T) {
	ctx := context.Background()
	store := NewTransactionStore(stubDB{
		selectFn: func(_ context.Context, _ any, query string, _ ...any) error {
			if strings.Contains(query, "DROP") {
				t.Fatalf("sort value leaked into SQL: %s", query)
			}
			if !strings.Contains(query, "ORDER BY t.transaction_date DESC") {
				t.Fatalf("unknown sort must fall back to default: %s", query)
			}
			return nil
		},
	})
	_, err := store.ListByUser(ctx, 1, TransactionFilter{Sort: "amount;DROP TABLE transactions", Limit: 20})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestTransactionStoreCountSharesFilter(t *testing.T) {
	ctx := context.Background()
	store := NewTransactionStore(stubDB{
		getFn: func(_ context.Context, dest any, query string, args ...any) error {
			if !strings.Contains(query, "SELECT COUNT(*)") || !strings.Contains(query, "t.account_id = $2") {
				t.Fatalf("unexpected query: %s", query)
			}
			if strings.Contains(query, "LIMIT") {
				t.Fatalf("count must not be paginated: %s", query)
			}
			*dest.(*int) = 42
			return nil
		},
	})
	count, err := store.CountByUser(ctx, 1, TransactionFilter{AccountID: intPtr(10)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 42 {
		t.Fatalf("expected 42, got %d", count)
	}
}
