package auditlog

import (
	"context"
	"sync"
	"testing"

	"storefront-events/internal/domain/audit"

	"github.com/google/uuid"
)

func TestMemorySink_ConcurrentAppend(t *testing.T) {
	sink := NewMemorySink()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = sink.Append(ctx, audit.Record{PartitionKey: audit.PartitionStockAudit, RowKey: uuid.New()})
		}()
	}
	wg.Wait()

	if sink.Len() != 50 {
		t.Fatalf("len = %d, want 50", sink.Len())
	}
}

func TestMemorySink_RecordsIsACopy(t *testing.T) {
	sink := NewMemorySink()
	_ = sink.Append(context.Background(), audit.Record{EntityID: "P1"})

	recs := sink.Records()
	recs[0].EntityID = "changed"

	if sink.Records()[0].EntityID != "P1" {
		t.Fatal("Records must not expose internal storage")
	}
}

func TestMemorySink_RejectsCancelledContext(t *testing.T) {
	sink := NewMemorySink()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := sink.Append(ctx, audit.Record{}); err == nil {
		t.Fatal("expected error for cancelled context")
	}
	if sink.Len() != 0 {
		t.Fatal("record should not be stored")
	}
}
