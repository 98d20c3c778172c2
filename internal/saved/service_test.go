package saved

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/brandiaga/storefront-backend/internal/cart"
)

func testItem(productID, color string, quantity int) cart.Item {
	return cart.Item{
		ProductID: productID,
		Name:      "Test Product " + productID,
		Price:     decimal.NewFromFloat(12.50),
		Quantity:  quantity,
		Color:     color,
	}
}

func newTestServices(t *testing.T) (Service, cart.Service) {
	t.Helper()
	carts, err := cart.NewService(cart.NewMemoryStore(), nil, nil)
	if err != nil {
		t.Fatalf("cart.NewService: %v", err)
	}
	svc, err := NewService(cart.NewMemoryStore(), carts, nil, nil)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc, carts
}

func TestNewServiceValidatesDeps(t *testing.T) {
	carts, _ := cart.NewService(cart.NewMemoryStore(), nil, nil)
	if _, err := NewService(nil, carts, nil, nil); err == nil {
		t.Fatal("expected error for nil store")
	}
	if _, err := NewService(cart.NewMemoryStore(), nil, nil, nil); err == nil {
		t.Fatal("expected error for nil cart service")
	}
}

func TestSaveForLaterResetsQuantityToOne(t *testing.T) {
	svc, carts := newTestServices(t)
	ctx := context.Background()

	if _, err := carts.Add(ctx, "shopper-1", testItem("p1", "red", 4)); err != nil {
		t.Fatalf("cart add: %v", err)
	}

	items, err := svc.SaveForLater(ctx, "shopper-1", "p1", "red")
	if err != nil {
		t.Fatalf("save for later: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 saved row, got %d", len(items))
	}
	if items[0].Quantity != 1 {
		t.Fatalf("expected quantity reset to 1, got %d", items[0].Quantity)
	}

	inCart, err := carts.Get(ctx, "shopper-1")
	if err != nil {
		t.Fatalf("cart get: %v", err)
	}
	if len(inCart) != 0 {
		t.Fatalf("expected cart row removed, got %+v", inCart)
	}
}

func TestSaveForLaterRequiresCartRow(t *testing.T) {
	svc, _ := newTestServices(t)

	if _, err := svc.SaveForLater(context.Background(), "shopper-1", "missing", ""); err == nil {
		t.Fatal("expected error for item not in cart")
	}
}

func TestSaveForLaterExistingSavedRowWins(t *testing.T) {
	svc, carts := newTestServices(t)
	ctx := context.Background()

	if _, err := carts.Add(ctx, "shopper-1", testItem("p1", "red", 2)); err != nil {
		t.Fatalf("cart add: %v", err)
	}
	if _, err := svc.SaveForLater(ctx, "shopper-1", "p1", "red"); err != nil {
		t.Fatalf("first save: %v", err)
	}
	if _, err := carts.Add(ctx, "shopper-1", testItem("p1", "red", 3)); err != nil {
		t.Fatalf("cart re-add: %v", err)
	}
	items, err := svc.SaveForLater(ctx, "shopper-1", "p1", "red")
	if err != nil {
		t.Fatalf("second save: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected single saved row, got %+v", items)
	}
}

func TestMoveToCartAddsWithQuantityOne(t *testing.T) {
	svc, carts := newTestServices(t)
	ctx := context.Background()

	if _, err := carts.Add(ctx, "shopper-1", testItem("p1", "red", 5)); err != nil {
		t.Fatalf("cart add: %v", err)
	}
	if _, err := svc.SaveForLater(ctx, "shopper-1", "p1", "red"); err != nil {
		t.Fatalf("save for later: %v", err)
	}

	items, err := svc.MoveToCart(ctx, "shopper-1", 0)
	if err != nil {
		t.Fatalf("move to cart: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected empty saved list, got %+v", items)
	}

	inCart, err := carts.Get(ctx, "shopper-1")
	if err != nil {
		t.Fatalf("cart get: %v", err)
	}
	if len(inCart) != 1 || inCart[0].Quantity != 1 {
		t.Fatalf("expected one cart row with quantity 1, got %+v", inCart)
	}
}

func TestMoveToCartMergesWithExistingRow(t *testing.T) {
	svc, carts := newTestServices(t)
	ctx := context.Background()

	if _, err := carts.Add(ctx, "shopper-1", testItem("p1", "red", 2)); err != nil {
		t.Fatalf("cart add: %v", err)
	}
	if _, err := svc.SaveForLater(ctx, "shopper-1", "p1", "red"); err != nil {
		t.Fatalf("save for later: %v", err)
	}
	if _, err := carts.Add(ctx, "shopper-1", testItem("p1", "red", 2)); err != nil {
		t.Fatalf("cart re-add: %v", err)
	}

	if _, err := svc.MoveToCart(ctx, "shopper-1", 0); err != nil {
		t.Fatalf("move to cart: %v", err)
	}

	inCart, err := carts.Get(ctx, "shopper-1")
	if err != nil {
		t.Fatalf("cart get: %v", err)
	}
	if len(inCart) != 1 || inCart[0].Quantity != 3 {
		t.Fatalf("expected merged quantity 3, got %+v", inCart)
	}
}

func TestMoveToCartRejectsBadIndex(t *testing.T) {
	svc, _ := newTestServices(t)
	ctx := context.Background()

	for _, idx := range []int{-1, 0, 5} {
		if _, err := svc.MoveToCart(ctx, "shopper-1", idx); err == nil {
			t.Fatalf("expected error for index %d on empty list", idx)
		}
	}
}

func TestRemoveDropsRowAtIndex(t *testing.T) {
	svc, carts := newTestServices(t)
	ctx := context.Background()

	for _, id := range []string{"p1", "p2"} {
		if _, err := carts.Add(ctx, "shopper-1", testItem(id, "", 1)); err != nil {
			t.Fatalf("cart add %s: %v", id, err)
		}
		if _, err := svc.SaveForLater(ctx, "shopper-1", id, ""); err != nil {
			t.Fatalf("save %s: %v", id, err)
		}
	}

	items, err := svc.Remove(ctx, "shopper-1", 0)
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if len(items) != 1 || items[0].ProductID != "p2" {
		t.Fatalf("expected only p2 left, got %+v", items)
	}
}

func TestSavedListSurvivesReload(t *testing.T) {
	store := cart.NewMemoryStore()
	carts, _ := cart.NewService(cart.NewMemoryStore(), nil, nil)
	svc, err := NewService(store, carts, nil, nil)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	ctx := context.Background()

	if _, err := carts.Add(ctx, "shopper-1", testItem("p1", "red", 2)); err != nil {
		t.Fatalf("cart add: %v", err)
	}
	if _, err := svc.SaveForLater(ctx, "shopper-1", "p1", "red"); err != nil {
		t.Fatalf("save for later: %v", err)
	}

	// A fresh service over the same store sees the saved row.
	reloaded, err := NewService(store, carts, nil, nil)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	items, err := reloaded.List(ctx, "shopper-1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 1 || items[0].ProductID != "p1" {
		t.Fatalf("expected persisted saved row, got %+v", items)
	}
}
