package events

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestNewBaseEvent(t *testing.T) {
	aggregateID := "assessment-123"

	before := time.Now().UTC()
	event := NewBaseEvent("farmscore.assessment.completed", aggregateID, "CreditAssessment")
	after := time.Now().UTC()

	if _, err := uuid.Parse(event.EventID()); err != nil {
		t.Errorf("expected UUID event ID, got %q", event.EventID())
	}

	if event.EventType() != "farmscore.assessment.completed" {
		t.Errorf("expected event type %q, got %q", "farmscore.assessment.completed", event.EventType())
	}

	if event.AggregateID() != aggregateID {
		t.Errorf("expected aggregate ID %v, got %v", aggregateID, event.AggregateID())
	}

	if event.AggregateType() != "CreditAssessment" {
		t.Errorf("expected aggregate type %q, got %q", "CreditAssessment", event.AggregateType())
	}

	if event.OccurredAt().Before(before) || event.OccurredAt().After(after) {
		t.Errorf("expected occurredAt between %v and %v, got %v", before, after, event.OccurredAt())
	}
}

func TestBaseEventImplementsDomainEvent(t *testing.T) {
	var _ DomainEvent = BaseEvent{}
}

func TestEmbeddedBaseEventSerialisesEnvelope(t *testing.T) {
	type scored struct {
		BaseEvent
		Score float64 `json:"score"`
	}

	evt := scored{BaseEvent: NewBaseEvent("scored", "agg-1", "Assessment"), Score: 43.18}
	payload, err := json.Marshal(evt)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var parsed map[string]any
	if err := json.Unmarshal(payload, &parsed); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	for _, key := range []string{"event_id", "event_type", "aggregate_id", "aggregate_type", "occurred_at", "score"} {
		if _, ok := parsed[key]; !ok {
			t.Errorf("expected key %q in payload %s", key, payload)
		}
	}
	if len(evt.EventID()) != len(uuid.NewString()) {
		t.Errorf("unexpected event ID %q", evt.EventID())
	}
}

func TestEventIDsAreUnique(t *testing.T) {
	a := NewBaseEvent("t", "agg", "A")
	b := NewBaseEvent("t", "agg", "A")
	if a.EventID() == b.EventID() {
		t.Error("expected distinct event IDs")
	}
}
