// Package remote executes session-authenticated calls against the backend and classifies
// every result into a closed, feature-specific error taxonomy.
package remote

// Kind is the constraint satisfied by every feature error taxonomy.
// Members are comparable tags; Error returns a stable snake_case name.
type Kind interface {
	comparable
	error
}

// Outcome is the result of a remote operation: exactly one of a success carrying
// an optional payload or a failure carrying a taxonomy member.
// The zero value is a success without payload.
type Outcome[T any, E Kind] struct {
	data   *T
	err    E
	failed bool
}

// Success returns a successful outcome. data may be nil.
func Success[T any, E Kind](data *T) Outcome[T, E] {
	return Outcome[T, E]{data: data}
}

// Failure returns a failed outcome of the given kind.
func Failure[T any, E Kind](kind E) Outcome[T, E] {
	return Outcome[T, E]{err: kind, failed: true}
}

// IsSuccess reports whether the outcome is a success.
func (o Outcome[T, E]) IsSuccess() bool {
	return !o.failed
}

// Data returns the payload of a success, nil for failures.
func (o Outcome[T, E]) Data() *T {
	return o.data
}

// Err returns the failure kind and true, or the zero kind and false for successes.
func (o Outcome[T, E]) Err() (E, bool) {
	return o.err, o.failed
}

// Result converts the outcome to the conventional (value, error) pair.
func (o Outcome[T, E]) Result() (*T, error) {
	if o.failed {
		return nil, o.err
	}

	return o.data, nil
}

// String renders the outcome for logs.
func (o Outcome[T, E]) String() string {
	if o.failed {
		return "failure(" + o.err.Error() + ")"
	}

	if o.data == nil {
		return "success(empty)"
	}

	return "success"
}
