// SPDX-License-Identifier: Unlicense OR MIT

// Package event contains the marker types shared by every event
// package. Concrete events are defined in io/pointer and io/key.
package event

// Event is the marker interface for events delivered to views and
// queued on an environment's dispatch loop.
type Event interface {
	ImplementsEvent()
}
