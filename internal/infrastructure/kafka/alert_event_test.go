package kafka

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/esgpulse/supplier-compliance-service/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeAlertEvents(t *testing.T) {
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	events := []domain.AlertEvent{
		{Kind: domain.EventAlertCreated, RunID: "run-1", CompanyID: "c1", SupplierID: "s1", AlertType: "documento", AlertCategory: "critico", ReferenceName: "Licença Ambiental", OccurredAt: at},
		{Kind: domain.EventSupplierInactivated, RunID: "run-1", CompanyID: "c1", SupplierID: "s2", Reason: "4 falhas de fornecimento nos últimos 365 dias", OccurredAt: at},
	}

	msgs, err := EncodeAlertEvents(events)
	require.NoError(t, err)
	require.Len(t, msgs, 2)

	assert.Equal(t, []byte("s1"), msgs[0].Key)
	assert.Equal(t, []byte("s2"), msgs[1].Key)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(msgs[1].Value, &decoded))
	assert.Equal(t, "supplier_inactivated", decoded["kind"])
	assert.NotContains(t, decoded, "alert_type")
}

func TestNoopPublisher(t *testing.T) {
	var p domain.PublisherPort = NoopPublisher{}
	require.NoError(t, p.Publish(context.Background(), domain.Message{Key: []byte("k")}))
}
