// Package clock provides the time source, local calendar-day keys, and
// cancellable periodic/one-shot scheduling used by every dayplan service.
//
// Production code injects Real(); tests inject Fake() and drive time with
// Advance, which fires scheduled callbacks synchronously in deadline order.
package clock
