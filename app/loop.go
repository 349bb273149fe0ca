// SPDX-License-Identifier: Unlicense OR MIT

package app

import (
	"okno.org/io/event"
	"okno.org/io/key"
	"okno.org/io/pointer"
)

// maxNestedDepth bounds reentrant RunNested calls. Deeper nesting
// indicates a dispatch cycle; the call returns without draining.
const maxNestedDepth = 64

type queued struct {
	target NativeID
	ev     event.Event
}

// eventQueue is the environment's pending event FIFO. Events posted
// during dispatch, including from inside handlers, append here and
// run after the current event completes.
type eventQueue struct {
	events []queued
}

func (q *eventQueue) push(target NativeID, ev event.Event) {
	q.events = append(q.events, queued{target: target, ev: ev})
}

func (q *eventQueue) pop() (queued, bool) {
	if len(q.events) == 0 {
		return queued{}, false
	}
	ev := q.events[0]
	q.events = q.events[1:]
	return ev, true
}

// A Quit ends a nested dispatch loop. Handlers hold a pointer to the
// Quit of the loop they want to end and call Set.
type Quit struct {
	done bool
}

// Set marks the loop for termination. The loop exits after the
// current event's dispatch returns.
func (q *Quit) Set() {
	q.done = true
}

// Done reports whether Set has been called.
func (q *Quit) Done() bool {
	return q.done
}

// Post implements Sink. Events are queued in arrival order and
// dispatched by Pump or RunNested.
func (e *Env) Post(id NativeID, ev event.Event) {
	e.queue.push(id, ev)
}

// Pump dispatches queued events until the queue drains. Events
// posted by handlers during the pump are dispatched too.
func (e *Env) Pump() {
	var q Quit
	e.RunNested(&q)
}

// RunNested dispatches queued events until quit is set or the queue
// drains. It may be called from inside an event handler; the nested
// loop keeps consuming the same queue, preserving arrival order
// across nesting levels.
func (e *Env) RunNested(quit *Quit) {
	if e.depth >= maxNestedDepth {
		e.log.Warn("nested dispatch depth exceeded", "depth", e.depth)
		return
	}
	e.depth++
	defer func() { e.depth-- }()
	for !quit.done {
		next, ok := e.queue.pop()
		if !ok {
			return
		}
		e.route(next)
	}
}

// route delivers one queued event. Events for destroyed or foreign
// windows are dropped.
func (e *Env) route(q queued) {
	w := e.windowFor(q.target)
	if w == nil {
		return
	}
	switch ev := q.ev.(type) {
	case pointer.Event:
		e.dispatchPointer(w, ev)
	case key.Event:
		e.dispatchKey(w, ev)
	}
}
