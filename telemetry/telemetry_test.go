package telemetry

import (
	"sync"
	"testing"
	"time"
)

type capturePublisher struct {
	mu     sync.Mutex
	events []Event
}

func (p *capturePublisher) Publish(ev Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
	return nil
}

func (p *capturePublisher) all() []Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]Event(nil), p.events...)
}

type blockedPublisher struct {
	gate    chan struct{}
	capture capturePublisher
}

func (p *blockedPublisher) Publish(ev Event) error {
	<-p.gate
	return p.capture.Publish(ev)
}

func TestQueueDeliversEvents(t *testing.T) {
	pub := &capturePublisher{}
	q := NewQueue(pub, 16)

	q.Emit(EventViewGenre, map[string]interface{}{"genre_id": "g1"})
	q.Emit(EventPlaySong, nil)
	q.Close()

	got := pub.all()
	if len(got) != 2 {
		t.Fatalf("delivered %d events, want 2", len(got))
	}
	if got[0].Name != EventViewGenre || got[1].Name != EventPlaySong {
		t.Errorf("unexpected event order: %q, %q", got[0].Name, got[1].Name)
	}
	if got[0].Params["genre_id"] != "g1" {
		t.Errorf("params not carried: %+v", got[0].Params)
	}
	if got[0].At.IsZero() {
		t.Error("event timestamp not set")
	}
}

func TestQueueDropsWhenFull(t *testing.T) {
	pub := &blockedPublisher{gate: make(chan struct{})}
	q := NewQueue(pub, 4)

	// With the sink blocked, every Emit must return immediately and the
	// overflow must be dropped, never queued.
	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			q.Emit(EventPageView, nil)
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Emit blocked on a full queue")
	}

	close(pub.gate)
	q.Close()

	if got := len(pub.capture.all()); got > 5 {
		t.Errorf("delivered %d events, want at most queue size + in flight (5)", got)
	} else if got == 0 {
		t.Error("expected at least one event delivered")
	}
}

func TestNoopPublisher(t *testing.T) {
	if err := (Noop{}).Publish(Event{Name: EventLogin}); err != nil {
		t.Errorf("Noop.Publish returned %v", err)
	}
}

func TestQueueCloseIsIdempotent(t *testing.T) {
	q := NewQueue(&capturePublisher{}, 4)
	q.Close()
	q.Close()
}
