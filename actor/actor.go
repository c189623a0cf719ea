// Package actor runs each actor on its own goroutine with a private FIFO mailbox.
// Anything an actor owns is touched only from inside its Receive.
package actor

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrStopped is returned by Ask when the target actor is gone
var ErrStopped = errors.New("actor stopped")

// Message is anything sent to an actor
type Message interface{}

// Started is the first message every actor receives
type Started struct{}

// Stopping is the last message an actor receives before its goroutine exits
type Stopping struct{}

// Actor processes one message at a time
type Actor interface {
	Receive(ctx *Context, msg Message)
}

// ActorFunc adapts a function to Actor
type ActorFunc func(ctx *Context, msg Message)

// Receive calls fn
func (fn ActorFunc) Receive(ctx *Context, msg Message) { fn(ctx, msg) }

// PID is the handle other actors use to reach an actor
type PID struct {
	id   string
	mbox *mailbox
	done chan struct{}
}

// ID returns the actor's name
func (p *PID) ID() string {
	if p == nil {
		return ""
	}
	return p.id
}

// Send enqueues msg. Sending to a stopped actor or a nil PID drops the message.
func (p *PID) Send(msg Message) {
	if p == nil {
		return
	}
	p.mbox.push(msg)
}

// Stop asks the actor to finish after the messages already queued
func (p *PID) Stop() {
	if p == nil {
		return
	}
	p.mbox.push(stopSignal{})
}

// Done is closed once the actor's goroutine has exited
func (p *PID) Done() <-chan struct{} {
	return p.done
}

type stopSignal struct{}

// Context is handed to Receive
type Context struct {
	self    *PID
	parent  *PID
	stopped bool
}

// Self returns the running actor's PID
func (c *Context) Self() *PID { return c.self }

// Parent returns the PID given at spawn time, possibly nil
func (c *Context) Parent() *PID { return c.parent }

// Stop ends the actor after the current message
func (c *Context) Stop() { c.stopped = true }

// Spawn starts an actor on its own goroutine
func Spawn(id string, parent *PID, a Actor) *PID {
	pid := &PID{id: id, mbox: newMailbox(), done: make(chan struct{})}
	ctx := &Context{self: pid, parent: parent}
	go run(ctx, a)
	return pid
}

func run(ctx *Context, a Actor) {
	pid := ctx.self
	defer close(pid.done)
	defer pid.mbox.close()

	a.Receive(ctx, Started{})
	for !ctx.stopped {
		msg, ok := pid.mbox.pop()
		if !ok {
			break
		}
		if _, stop := msg.(stopSignal); stop {
			break
		}
		a.Receive(ctx, msg)
	}
	a.Receive(ctx, Stopping{})
}

// SendAfter delivers msg to pid once d has elapsed unless the returned timer is stopped
func SendAfter(pid *PID, d time.Duration, msg Message) *time.Timer {
	return time.AfterFunc(d, func() { pid.Send(msg) })
}

// Ask sends the message built by build to target and waits for the first message
// delivered to the temporary reply PID, or for ctx to end.
func Ask(ctx context.Context, target *PID, build func(replyTo *PID) Message) (Message, error) {
	if target == nil {
		return nil, ErrStopped
	}
	reply := make(chan Message, 1)
	var once sync.Once
	future := Spawn("future/"+target.id, nil, ActorFunc(func(c *Context, msg Message) {
		switch msg.(type) {
		case Started, Stopping:
			return
		}
		once.Do(func() { reply <- msg })
		c.Stop()
	}))
	defer future.Stop()

	target.Send(build(future))
	select {
	case msg := <-reply:
		return msg, nil
	case <-target.done:
		select {
		case msg := <-reply:
			return msg, nil
		default:
			return nil, ErrStopped
		}
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
