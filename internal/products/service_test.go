package products

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/brandiaga/storefront-backend/pkg/db/models"
	pkgerrors "github.com/brandiaga/storefront-backend/pkg/errors"
)

type stubRepo struct {
	products map[uuid.UUID]*models.Product
	listErr  error
}

func newStubRepo() *stubRepo {
	return &stubRepo{products: map[uuid.UUID]*models.Product{}}
}

func (s *stubRepo) FindByID(_ context.Context, id uuid.UUID) (*models.Product, error) {
	product, ok := s.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *product
	return &clone, nil
}

func (s *stubRepo) Create(_ context.Context, product *models.Product) (*models.Product, error) {
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	clone := *product
	s.products[product.ID] = &clone
	return product, nil
}

func (s *stubRepo) Update(_ context.Context, product *models.Product) (*models.Product, error) {
	clone := *product
	s.products[product.ID] = &clone
	return product, nil
}

func (s *stubRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(s.products, id)
	return nil
}

func (s *stubRepo) List(_ context.Context, _ listQuery) (*ListResult, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	summaries := make([]ProductSummary, 0, len(s.products))
	for _, product := range s.products {
		summaries = append(summaries, toSummary(*product))
	}
	return &ListResult{Products: summaries}, nil
}

func seedStub(repo *stubRepo, active bool, colors []string) *models.Product {
	product := &models.Product{
		ID:       uuid.New(),
		Name:     "Stub Product",
		Price:    decimal.RequireFromString("10.00"),
		Images:   []string{"https://cdn.example.com/stub.jpg"},
		Colors:   colors,
		IsPrime:  true,
		IsActive: active,
	}
	repo.products[product.ID] = product
	return product
}

func TestNewServiceRequiresRepo(t *testing.T) {
	if _, err := NewService(nil); err == nil {
		t.Fatal("expected error for nil repository")
	}
}

func TestSnapshotFreezesProductFields(t *testing.T) {
	repo := newStubRepo()
	product := seedStub(repo, true, []string{"red"})
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	item, err := svc.Snapshot(context.Background(), product.ID, "red", 2)
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if item.ProductID != product.ID.String() {
		t.Fatalf("expected product id %s, got %s", product.ID, item.ProductID)
	}
	if item.Name != product.Name || item.Image != product.Images[0] {
		t.Fatalf("snapshot did not copy fields: %+v", item)
	}
	if !item.Price.Equal(product.Price) {
		t.Fatalf("expected price %s, got %s", product.Price, item.Price)
	}
	if item.Quantity != 2 || item.Color != "red" || !item.IsPrime {
		t.Fatalf("unexpected snapshot: %+v", item)
	}
}

func TestSnapshotRejectsUnknownColor(t *testing.T) {
	repo := newStubRepo()
	product := seedStub(repo, true, []string{"red"})
	svc, _ := NewService(repo)

	_, err := svc.Snapshot(context.Background(), product.ID, "green", 1)
	if err == nil {
		t.Fatal("expected error for unknown color")
	}
	if appErr := pkgerrors.As(err); appErr == nil || appErr.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation code, got %v", err)
	}
}

func TestSnapshotAnyColorWhenNoVariants(t *testing.T) {
	repo := newStubRepo()
	product := seedStub(repo, true, nil)
	svc, _ := NewService(repo)

	if _, err := svc.Snapshot(context.Background(), product.ID, "anything", 1); err != nil {
		t.Fatalf("expected any color accepted, got %v", err)
	}
}

func TestSnapshotHidesInactiveProducts(t *testing.T) {
	repo := newStubRepo()
	product := seedStub(repo, false, nil)
	svc, _ := NewService(repo)

	_, err := svc.Snapshot(context.Background(), product.ID, "", 1)
	if err == nil {
		t.Fatal("expected error for inactive product")
	}
	if appErr := pkgerrors.As(err); appErr == nil || appErr.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found code, got %v", err)
	}
}

func TestGetProductNotFound(t *testing.T) {
	svc, _ := NewService(newStubRepo())

	_, err := svc.GetProduct(context.Background(), uuid.New())
	if err == nil {
		t.Fatal("expected error")
	}
	if appErr := pkgerrors.As(err); appErr == nil || appErr.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found code, got %v", err)
	}
}

func TestCreateProductValidation(t *testing.T) {
	svc, _ := NewService(newStubRepo())
	ctx := context.Background()

	if _, err := svc.CreateProduct(ctx, CreateProductInput{Name: "  "}); err == nil {
		t.Fatal("expected error for blank name")
	}
	if _, err := svc.CreateProduct(ctx, CreateProductInput{
		Name:  "Thing",
		Price: decimal.RequireFromString("-1"),
	}); err == nil {
		t.Fatal("expected error for negative price")
	}
}

func TestUpdateProductAppliesPartialInput(t *testing.T) {
	repo := newStubRepo()
	product := seedStub(repo, true, []string{"red"})
	svc, _ := NewService(repo)

	name := "Renamed"
	active := false
	detail, err := svc.UpdateProduct(context.Background(), product.ID, UpdateProductInput{
		Name:     &name,
		IsActive: &active,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if detail.Name != "Renamed" || detail.IsActive {
		t.Fatalf("partial update not applied: %+v", detail)
	}
	// Untouched fields survive.
	if !detail.Price.Equal(product.Price) || detail.Colors[0] != "red" {
		t.Fatalf("update clobbered untouched fields: %+v", detail)
	}
}

func TestDeleteProductNotFound(t *testing.T) {
	svc, _ := NewService(newStubRepo())

	if err := svc.DeleteProduct(context.Background(), uuid.New()); err == nil {
		t.Fatal("expected error for missing product")
	}
}
