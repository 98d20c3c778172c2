package outbox

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/brandiaga/storefront-backend/pkg/db/models"
	"github.com/brandiaga/storefront-backend/pkg/enums"
)

type captureInserter struct {
	rows []models.OutboxEvent
	err  error
}

func (c *captureInserter) Insert(tx *gorm.DB, event models.OutboxEvent) error {
	if c.err != nil {
		return c.err
	}
	c.rows = append(c.rows, event)
	return nil
}

func TestEmitRequiresTransaction(t *testing.T) {
	svc := NewService(&captureInserter{}, nil)
	err := svc.Emit(context.Background(), nil, DomainEvent{})
	if err == nil {
		t.Fatal("expected error without transaction")
	}
}

func TestEmitBuildsEnvelope(t *testing.T) {
	capture := &captureInserter{}
	svc := NewService(capture, nil)
	orderID := uuid.New()

	err := svc.Emit(context.Background(), &gorm.DB{}, DomainEvent{
		EventType:     enums.OutboxEventOrderCreated,
		AggregateType: enums.OutboxAggregateOrder,
		AggregateID:   orderID,
		ShopperID:     "shopper-7",
		Data:          map[string]any{"total": "42.50"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(capture.rows) != 1 {
		t.Fatalf("expected one row, got %d", len(capture.rows))
	}
	row := capture.rows[0]
	if row.EventType != enums.OutboxEventOrderCreated {
		t.Fatalf("unexpected event type: %s", row.EventType)
	}
	if row.AggregateID != orderID {
		t.Fatalf("unexpected aggregate id: %s", row.AggregateID)
	}

	var envelope PayloadEnvelope
	if err := json.Unmarshal(row.Payload, &envelope); err != nil {
		t.Fatalf("invalid envelope: %v", err)
	}
	if envelope.Version != 1 {
		t.Fatalf("expected default version 1, got %d", envelope.Version)
	}
	if envelope.ShopperID != "shopper-7" {
		t.Fatalf("unexpected shopper id: %s", envelope.ShopperID)
	}
	if envelope.EventID == "" || envelope.OccurredAt.IsZero() {
		t.Fatal("expected event id and timestamp to be set")
	}
}
