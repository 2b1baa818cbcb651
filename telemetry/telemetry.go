// Package telemetry is the fire-and-forget event sink. Events are pushed
// onto a bounded queue and drained to a publisher from a single goroutine;
// a full queue drops the event rather than block the request that emitted
// it. When no sink is configured the queue drains into Noop.
package telemetry

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/nats-io/nats.go"
)

// Event names mirror the ones the web client logged.
const (
	EventPageView = "page_view"

	EventLogin  = "login"
	EventSignUp = "sign_up"
	EventLogout = "logout"

	EventPlaySong   = "play_song"
	EventPauseSong  = "pause_song"
	EventViewArtist = "view_artist"
	EventViewGenre  = "view_genre"

	EventCreateGenre  = "create_genre"
	EventUpdateGenre  = "update_genre"
	EventDeleteGenre  = "delete_genre"
	EventCreateArtist = "create_artist"
	EventUpdateArtist = "update_artist"
	EventDeleteArtist = "delete_artist"
	EventCreateSong   = "create_song"
	EventUpdateSong   = "update_song"
	EventDeleteSong   = "delete_song"
)

type Event struct {
	Name   string                 `json:"name"`
	Params map[string]interface{} `json:"params,omitempty"`
	At     time.Time              `json:"at"`
}

type Publisher interface {
	Publish(ev Event) error
}

// Noop is the sink used when telemetry is disabled. Events are skipped,
// not queued.
type Noop struct{}

func (Noop) Publish(Event) error { return nil }

// NATSPublisher ships each event as a JSON message on
// melodia.events.<name>. Publishes are not flushed or acknowledged.
type NATSPublisher struct {
	conn *nats.Conn
}

func NewNATSPublisher(url string) (*NATSPublisher, error) {
	nc, err := nats.Connect(url)
	if err != nil {
		return nil, err
	}
	return &NATSPublisher{conn: nc}, nil
}

func (p *NATSPublisher) Publish(ev Event) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return p.conn.Publish("melodia.events."+ev.Name, data)
}

func (p *NATSPublisher) Close() {
	p.conn.Close()
}

type Queue struct {
	events chan Event
	pub    Publisher
	done   chan struct{}
	once   sync.Once
}

func NewQueue(pub Publisher, size int) *Queue {
	q := &Queue{
		events: make(chan Event, size),
		pub:    pub,
		done:   make(chan struct{}),
	}
	go q.drain()
	return q
}

func (q *Queue) drain() {
	defer close(q.done)
	for ev := range q.events {
		if err := q.pub.Publish(ev); err != nil {
			log.Warn("telemetry publish failed", "event", ev.Name, "err", err)
		}
	}
}

// Emit enqueues an event without blocking. If the queue is full the event
// is dropped.
func (q *Queue) Emit(name string, params map[string]interface{}) {
	ev := Event{Name: name, Params: params, At: time.Now()}
	select {
	case q.events <- ev:
	default:
	}
}

// Close stops accepting events and waits for the queue to flush.
func (q *Queue) Close() {
	q.once.Do(func() {
		close(q.events)
	})
	<-q.done
}

var defaultQueue = NewQueue(Noop{}, 256)

// Init swaps the process-wide sink. Called once from main.
func Init(pub Publisher, size int) {
	old := defaultQueue
	defaultQueue = NewQueue(pub, size)
	old.Close()
}

// Emit publishes on the process-wide queue.
func Emit(name string, params map[string]interface{}) {
	defaultQueue.Emit(name, params)
}

// Shutdown flushes the process-wide queue.
func Shutdown() {
	defaultQueue.Close()
}
