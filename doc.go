// Package guard provides runtime pattern matching and guard evaluation.
//
// A guard is a declarative description of what a value should look like.
// Guards are built from ordinary Go values: literals match by equality,
// functions act as predicates, maps describe partial object shapes and
// slices list alternatives. The same guard drives validation, value
// selection and side-effect dispatch.
//
// # Quick Start
//
// Describe the values you care about and pick an outcome:
//
//	label := guard.Match[string](order).
//	    With(guard.Shape{"status": "cancelled"}, "nothing to do").
//	    With(guard.Shape{"status": "paid", "total": p.Number.Gt(100)}, "ship with insurance").
//	    With(guard.Shape{"status": []string{"paid", "authorized"}}, "ship").
//	    Otherwise("wait for payment")
//
// Or run side effects for every guard that matches:
//
//	guard.When(event).
//	    Is(guard.Shape{"type": "signup"}, sendWelcome).
//	    Is(p.Object, audit).
//	    Exhaustive()
//
// # Guards
//
// From converts any value into a Guard:
//
//   - Matcher values and func(any) bool are predicates
//   - AsyncMatcher values and func(context.Context, any) (bool, error) are async predicates
//   - *Pending is an already-started asynchronous result
//   - Shape and other string-keyed maps become partial shapes
//   - slices and arrays are alternations (any element may match)
//   - everything else is a literal compared by equality
//
// Literal equality is strict: the dynamic types must agree, so "1" does
// not match 1. Numbers are the exception and compare by value across
// numeric types, so the literal 2 matches a JSON 2 decoded as float64. A
// guard that is the subject itself always matches.
//
// Shapes are partial. Every key in the shape must be satisfied by the
// subject's value for that key, and keys the shape does not mention are
// ignored. Objects are string-keyed maps, structs (fields are addressed by
// their json tag, and embedded struct fields are promoted), Documents holding a JSON object, and anything that
// implements Fields. A missing key is reported to nested guards as
// Undefined, which only optional guards accept.
//
// # Validation
//
// Validate and ValidateAsync turn a guard into a reusable check.
// ValidateStrict additionally rejects objects with keys the shape does not
// declare. AssertValid returns an error describing the rejected value:
//
//	requireUser := guard.AssertValid(guard.Shape{"id": p.String.UUID})
//	if err := requireUser(u); err != nil {
//	    return err
//	}
//
// # Dispatch Modes
//
// Match returns the outcome of the first guard that matches. When runs
// actions: Lazy stops at the first match, Exhaustive runs every match in
// declaration order. Both have Prepare variants that are built once and
// applied to many values.
//
// MatchAsync and WhenAsync accept async predicates and pending values.
// Branches are evaluated in declaration order, one at a time. Concurrent
// evaluates every branch at once; the result is still the first match in
// declaration order, and it returns after every branch has settled.
//
// Without an async context, async predicates and pending values never
// match. Use the async dispatchers when a guard depends on I/O.
//
// # Predicates
//
// Package p holds ready-made predicates grouped by the type they inspect:
//
//	guard.Shape{
//	    "email":    p.String.Includes("@"),
//	    "age":      p.Number.Between(18, 130),
//	    "tags":     p.Array.Of(p.String),
//	    "nickname": p.Optional.String,
//	    "deleted":  p.Not.Nullish,
//	}
//
// p.Not and p.Optional mirror the whole namespace with negated and
// optional variants.
//
// # Router
//
// Router delivers raw JSON messages to typed handlers, choosing the route
// with a guard evaluated against the parsed Document:
//
//	r := guard.NewRouter(guard.WithLogger(logger))
//
//	guard.Register(r, guard.Shape{
//	    "source":      "my.app",
//	    "detail-type": "UserCreated",
//	}, "detail", &UserCreatedHandler{})
//
//	err := r.Process(ctx, rawMessageBytes)
//
// The router automatically:
//   - Unmarshals the payload at the route's path to the handler's type
//   - Validates the payload if it implements Validate() error
//   - Calls the handler with the typed payload
//
// Broadcast delivers a message to every matching route concurrently.
//
// # Hooks
//
// Hooks provide observability without coupling to specific logging or
// metrics systems. Every dispatcher accepts options:
//
//	guard.Match[string](v,
//	    guard.WithOnMatch(func(mode guard.Mode, branch int, _ any) {
//	        metrics.Incr("guard.match", "mode:"+string(mode))
//	    }),
//	    guard.WithLogger(logger),
//	)
//
// Available hooks:
//   - WithOnMatch: Called for every branch whose outcome or action is taken
//   - WithOnNoMatch: Called when nothing matched
//   - WithOnError: Called when a predicate, outcome or action fails
//   - WithLogger: Logs all of the above through log/slog
//
// Multiple hooks of the same type are called in order.
package guard
