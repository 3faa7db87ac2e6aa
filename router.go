package guard

import (
	"context"
	"errors"
	"fmt"

	"github.com/goccy/go-json"
)

// ErrNoRoute is returned by Process when no route's guard matched.
var ErrNoRoute = errors.New("no route matched message")

// ErrMissingPayload is reported through an *UnmarshalError when a route's
// payload path is absent from the message.
var ErrMissingPayload = errors.New("payload path not found")

// validatable is the interface for payload validation.
// Compatible with github.com/go-ozzo/ozzo-validation/v4.
type validatable interface {
	Validate() error
}

// Handler processes a routed payload.
type Handler[T any] interface {
	Handle(ctx context.Context, payload T) error
}

// HandlerFunc is a function adapter for Handler.
type HandlerFunc[T any] func(ctx context.Context, payload T) error

// Handle implements Handler.
func (f HandlerFunc[T]) Handle(ctx context.Context, payload T) error {
	return f(ctx, payload)
}

// Router delivers JSON messages to typed handlers. Each route is guarded
// by a guard checked against the parsed message, so routing keys, envelope
// formats and versions are all expressed as shapes:
//
//	r := guard.NewRouter(guard.WithLogger(logger))
//
//	guard.Register(r, guard.Shape{
//	    "source":      "my.app",
//	    "detail-type": "UserCreated",
//	}, "detail", &UserCreatedHandler{db: db})
//
//	err := r.Process(ctx, rawMessageBytes)
//
// Router is safe for concurrent use after configuration. Do not call
// Register after calling Process.
type Router struct {
	routes *AsyncStatement[Document]
}

// NewRouter creates a Router. Options install hooks that observe every
// routing decision; handler failures reach the OnError hooks.
func NewRouter(opts ...Option) *Router {
	return &Router{routes: PrepareWhenAsync[Document](opts...)}
}

// Register adds a route. When g matches a message, the value at path (a
// gjson path, or "" for the whole message) is unmarshaled into T,
// validated if T implements Validate() error, and passed to h.
//
// Routes are tried in registration order. g may use async predicates; they
// receive the message as a Document.
//
// This is a package-level function (not a method) due to Go generics
// limitations: methods cannot have type parameters independent of the
// receiver.
func Register[T any](r *Router, g any, path string, h Handler[T]) {
	r.routes.Is(g, func(ctx context.Context, msg Document) error {
		data, err := decodePayload[T](msg, path)
		if err != nil {
			return err
		}
		return h.Handle(ctx, data)
	})
}

// RegisterFunc is a convenience function for registering a handler function.
//
//	guard.RegisterFunc(r, guard.Shape{"type": "ping"}, "", func(ctx context.Context, p Ping) error {
//	    return nil
//	})
func RegisterFunc[T any](r *Router, g any, path string, fn func(ctx context.Context, payload T) error) {
	Register(r, g, path, HandlerFunc[T](fn))
}

// Process parses raw and delivers it to the first route whose guard
// matches. It returns ErrNoRoute when nothing matched, ErrInvalidJSON for
// unparsable input, and otherwise whatever the decoding step or the
// handler returned.
func (r *Router) Process(ctx context.Context, raw []byte) error {
	msg, err := ParseJSON(raw)
	if err != nil {
		return err
	}
	matched, err := r.routes.LazyOn(ctx, msg)
	if err != nil {
		return err
	}
	if !matched {
		return ErrNoRoute
	}
	return nil
}

// Broadcast delivers raw to every route whose guard matches. Guards and
// handlers run concurrently; Broadcast returns once all of them have
// finished, with the first error encountered.
func (r *Router) Broadcast(ctx context.Context, raw []byte) error {
	msg, err := ParseJSON(raw)
	if err != nil {
		return err
	}
	matched, err := r.routes.ConcurrentOn(ctx, msg)
	if err != nil {
		return err
	}
	if !matched {
		return ErrNoRoute
	}
	return nil
}

func decodePayload[T any](msg Document, path string) (T, error) {
	var data T
	payload := msg
	if path != "" {
		sub, ok := msg.Sub(path)
		if !ok {
			return data, &UnmarshalError{Path: path, Err: ErrMissingPayload}
		}
		payload = sub
	}

	if err := json.Unmarshal([]byte(payload.Raw()), &data); err != nil {
		return data, &UnmarshalError{Path: path, Err: err}
	}

	if v, ok := any(data).(validatable); ok {
		if err := v.Validate(); err != nil {
			return data, &ValidationError{Err: err}
		}
	} else if v, ok := any(&data).(validatable); ok {
		if err := v.Validate(); err != nil {
			return data, &ValidationError{Err: err}
		}
	}
	return data, nil
}

// UnmarshalError reports a payload that could not be decoded into the
// handler's type.
type UnmarshalError struct {
	Path string
	Err  error
}

func (e *UnmarshalError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("unmarshal payload: %v", e.Err)
	}
	return fmt.Sprintf("unmarshal payload at %q: %v", e.Path, e.Err)
}

func (e *UnmarshalError) Unwrap() error { return e.Err }

// ValidationError wraps the error returned by a payload's Validate method.
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string { return "validate payload: " + e.Err.Error() }
func (e *ValidationError) Unwrap() error { return e.Err }
