package services

import (
	"io"
	"log"
	"testing"
	"time"

	"github.com/smidy/ChickenFight-sub000/actor"
	"github.com/smidy/ChickenFight-sub000/messages"
)

const waitTimeout = 2 * time.Second

func quietLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

// probe is an actor that records everything it receives
type probe struct {
	pid *actor.PID
	ch  chan any
}

func newProbe(t *testing.T, name string) *probe {
	t.Helper()
	p := &probe{ch: make(chan any, 1024)}
	p.pid = actor.Spawn(name, nil, actor.ActorFunc(func(ctx *actor.Context, msg actor.Message) {
		switch msg.(type) {
		case actor.Started, actor.Stopping:
			return
		}
		p.ch <- msg
	}))
	t.Cleanup(p.pid.Stop)
	return p
}

// recorder is a ClientSink that records outbound wire messages
type recorder struct {
	ch chan any
}

func newRecorder() *recorder {
	return &recorder{ch: make(chan any, 1024)}
}

func (r *recorder) SendMessage(msg messages.Message) error {
	r.ch <- msg
	return nil
}

// next waits for the next message of type T, skipping anything else
func next[T any](t *testing.T, ch <-chan any) T {
	t.Helper()
	deadline := time.After(waitTimeout)
	for {
		select {
		case msg := <-ch:
			if v, ok := msg.(T); ok {
				return v
			}
		case <-deadline:
			var zero T
			t.Fatalf("timed out waiting for %T", zero)
			return zero
		}
	}
}

// nextNotify waits for the next Notify carrying a T
func nextNotify[T messages.Message](t *testing.T, ch <-chan any) T {
	t.Helper()
	deadline := time.After(waitTimeout)
	for {
		select {
		case msg := <-ch:
			if n, ok := msg.(Notify); ok {
				if v, ok := n.Message.(T); ok {
					return v
				}
			}
		case <-deadline:
			var zero T
			t.Fatalf("timed out waiting for notification %T", zero)
			return zero
		}
	}
}

// none asserts that no message of type T arrives within d
func none[T any](t *testing.T, ch <-chan any, d time.Duration) {
	t.Helper()
	deadline := time.After(d)
	for {
		select {
		case msg := <-ch:
			if _, ok := msg.(T); ok {
				t.Fatalf("unexpected %T: %+v", msg, msg)
			}
		case <-deadline:
			return
		}
	}
}
