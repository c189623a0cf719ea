package actor

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type ping struct {
	n       int
	replyTo *PID
}

type pong struct{ n int }

func TestSpawn_ProcessesInOrder(t *testing.T) {
	got := make(chan int, 100)
	pid := Spawn("counter", nil, ActorFunc(func(ctx *Context, msg Message) {
		if n, ok := msg.(int); ok {
			got <- n
		}
	}))

	for i := 0; i < 100; i++ {
		pid.Send(i)
	}
	for i := 0; i < 100; i++ {
		select {
		case n := <-got:
			require.Equal(t, i, n)
		case <-time.After(time.Second):
			t.Fatalf("timed out waiting for message %d", i)
		}
	}
	pid.Stop()
	<-pid.Done()
}

func TestSpawn_LifecycleMessages(t *testing.T) {
	seen := make(chan Message, 4)
	pid := Spawn("life", nil, ActorFunc(func(ctx *Context, msg Message) {
		seen <- msg
		if msg == "bye" {
			ctx.Stop()
		}
	}))
	pid.Send("bye")
	pid.Send("ignored")
	<-pid.Done()

	require.Len(t, seen, 3)
	assert.IsType(t, Started{}, <-seen)
	assert.Equal(t, "bye", <-seen)
	assert.IsType(t, Stopping{}, <-seen)

	// sends after stop are dropped silently
	pid.Send("late")
}

func TestAsk(t *testing.T) {
	echo := Spawn("echo", nil, ActorFunc(func(ctx *Context, msg Message) {
		if p, ok := msg.(ping); ok {
			p.replyTo.Send(pong{n: p.n * 2})
		}
	}))
	defer echo.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	reply, err := Ask(ctx, echo, func(replyTo *PID) Message { return ping{n: 21, replyTo: replyTo} })
	require.NoError(t, err)
	assert.Equal(t, pong{n: 42}, reply)
}

func TestAsk_Timeout(t *testing.T) {
	silent := Spawn("silent", nil, ActorFunc(func(ctx *Context, msg Message) {}))
	defer silent.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := Ask(ctx, silent, func(replyTo *PID) Message { return "hello" })
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	_, err = Ask(context.Background(), nil, func(replyTo *PID) Message { return "hello" })
	assert.ErrorIs(t, err, ErrStopped)
}

func TestSendAfter(t *testing.T) {
	got := make(chan Message, 1)
	pid := Spawn("timer", nil, ActorFunc(func(ctx *Context, msg Message) {
		if s, ok := msg.(string); ok {
			got <- s
		}
	}))
	defer pid.Stop()

	SendAfter(pid, 5*time.Millisecond, "tick")
	select {
	case msg := <-got:
		assert.Equal(t, "tick", msg)
	case <-time.After(time.Second):
		t.Fatal("timer never fired")
	}
}
