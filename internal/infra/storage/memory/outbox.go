package memory

import (
	"context"
	"sync"

	appoutbox "hotelier/internal/app/outbox"
)

// Outbox keeps event records in memory until a sink drains them.
type Outbox struct {
	mu      sync.Mutex
	records []appoutbox.EventRecord
	sink    func(ctx context.Context, records []appoutbox.EventRecord) error
}

// NewOutbox builds an outbox. The sink receives the pending batch on Flush;
// a nil sink simply discards.
func NewOutbox(sink func(ctx context.Context, records []appoutbox.EventRecord) error) *Outbox {
	return &Outbox{sink: sink}
}

func (o *Outbox) Add(ctx context.Context, record appoutbox.EventRecord) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.records = append(o.records, record)
	return nil
}

func (o *Outbox) Flush(ctx context.Context) error {
	o.mu.Lock()
	pending := o.records
	o.records = nil
	o.mu.Unlock()
	if o.sink == nil || len(pending) == 0 {
		return nil
	}
	return o.sink(ctx, pending)
}

// Pending returns a snapshot of undelivered records.
func (o *Outbox) Pending() []appoutbox.EventRecord {
	o.mu.Lock()
	defer o.mu.Unlock()
	snapshot := make([]appoutbox.EventRecord, len(o.records))
	copy(snapshot, o.records)
	return snapshot
}

var _ appoutbox.Outbox = (*Outbox)(nil)
