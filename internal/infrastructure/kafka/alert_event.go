package kafka

import (
	"encoding/json"
	"fmt"

	"github.com/esgpulse/supplier-compliance-service/internal/domain"
)

// EncodeAlertEvents turns events into messages keyed by supplier id.
func EncodeAlertEvents(events []domain.AlertEvent) ([]domain.Message, error) {
	msgs := make([]domain.Message, 0, len(events))
	for _, ev := range events {
		v, err := json.Marshal(ev)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal %s event for supplier %s: %w", ev.Kind, ev.SupplierID, err)
		}
		msgs = append(msgs, domain.Message{Key: []byte(ev.SupplierID), Value: v})
	}
	return msgs, nil
}
