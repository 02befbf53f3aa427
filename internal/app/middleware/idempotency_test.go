package middleware

import (
	"context"
	"errors"
	"testing"

	"hotelier/internal/app/commands"
)

type echoCommand struct {
	Value string
	IdemV string
}

type echoResult struct {
	Value string `json:"value"`
}

func (c echoCommand) Key() string            { return "test.echo" }
func (c echoCommand) IdempotencyKey() string { return c.IdemV }
func (c echoCommand) ResultPrototype() any   { return &echoResult{} }

type mapStore struct {
	items map[string]IdempotencyRecord
}

func newMapStore() *mapStore {
	return &mapStore{items: make(map[string]IdempotencyRecord)}
}

func (s *mapStore) Get(ctx context.Context, key string) (IdempotencyRecord, bool, error) {
	rec, ok := s.items[key]
	return rec, ok, nil
}

func (s *mapStore) Save(ctx context.Context, rec IdempotencyRecord) error {
	s.items[rec.Key] = rec
	return nil
}

type countingBus struct {
	calls int
	err   error
}

func (b *countingBus) Dispatch(ctx context.Context, cmd commands.Command) (any, error) {
	b.calls++
	if b.err != nil {
		return nil, b.err
	}
	echo := cmd.(echoCommand)
	return &echoResult{Value: echo.Value}, nil
}

func TestIdempotencyReplaysCachedResult(t *testing.T) {
	inner := &countingBus{}
	bus := ChainCommands(inner, Idempotency(newMapStore(), nil))

	cmd := echoCommand{Value: "first", IdemV: "key-1"}
	first, err := bus.Dispatch(context.Background(), cmd)
	if err != nil {
		t.Fatal(err)
	}
	// Same key replays the original outcome even if the payload differs.
	second, err := bus.Dispatch(context.Background(), echoCommand{Value: "second", IdemV: "key-1"})
	if err != nil {
		t.Fatal(err)
	}
	if inner.calls != 1 {
		t.Errorf("handler ran %d times, want 1", inner.calls)
	}
	if first.(*echoResult).Value != "first" || second.(*echoResult).Value != "first" {
		t.Errorf("results = %v, %v", first, second)
	}
}

func TestIdempotencyPassesThroughWithoutKey(t *testing.T) {
	inner := &countingBus{}
	bus := ChainCommands(inner, Idempotency(newMapStore(), nil))
	for i := 0; i < 3; i++ {
		if _, err := bus.Dispatch(context.Background(), echoCommand{Value: "x"}); err != nil {
			t.Fatal(err)
		}
	}
	if inner.calls != 3 {
		t.Errorf("handler ran %d times, want 3", inner.calls)
	}
}

func TestIdempotencyCachesFailures(t *testing.T) {
	inner := &countingBus{err: errors.New("room unavailable")}
	bus := ChainCommands(inner, Idempotency(newMapStore(), nil))

	if _, err := bus.Dispatch(context.Background(), echoCommand{IdemV: "key-1"}); err == nil {
		t.Fatal("expected error")
	}
	inner.err = nil
	if _, err := bus.Dispatch(context.Background(), echoCommand{IdemV: "key-1"}); err == nil {
		t.Error("replayed attempt should return the recorded failure")
	}
	if inner.calls != 1 {
		t.Errorf("handler ran %d times, want 1", inner.calls)
	}
}
