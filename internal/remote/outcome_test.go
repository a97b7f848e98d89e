package remote_test

import (
	"errors"
	"math"
	"testing"

	"github.com/AyoPrez/sobuu-sub000/internal/remote"
)

type testError int

const (
	errUnknown testError = iota
	errInvalidSession
	errUnauthorized
	errProcessing
	errTimeout
	errBlank
	errRange
	errBoth
	errNeither
	errEmail
)

func (e testError) Error() string {
	switch e {
	case errInvalidSession:
		return "invalid_session_token"
	case errUnauthorized:
		return "unauthorized"
	case errProcessing:
		return "processing_query"
	case errTimeout:
		return "timeout"
	case errBlank:
		return "blank"
	case errRange:
		return "range"
	case errBoth:
		return "both"
	case errNeither:
		return "neither"
	case errEmail:
		return "email"
	case errUnknown:
		fallthrough
	default:
		return "unknown"
	}
}

type payload struct {
	Title string `json:"title"`
}

func TestOutcome(t *testing.T) {
	t.Parallel()

	var zero remote.Outcome[payload, testError]
	if !zero.IsSuccess() || zero.Data() != nil {
		t.Errorf("zero value = %v, want success without payload", zero)
	}

	data := &payload{Title: "Dune"}

	ok := remote.Success[payload, testError](data)
	if !ok.IsSuccess() {
		t.Fatal("Success().IsSuccess() = false")
	}

	if ok.Data() != data {
		t.Error("Success().Data() does not preserve payload identity")
	}

	if _, failed := ok.Err(); failed {
		t.Error("Success().Err() reports failure")
	}

	got, err := ok.Result()
	if err != nil || got != data {
		t.Errorf("Success().Result() = %v, %v", got, err)
	}

	failed := remote.Failure[payload](errTimeout)
	if failed.IsSuccess() {
		t.Fatal("Failure().IsSuccess() = true")
	}

	if kind, isFailure := failed.Err(); !isFailure || kind != errTimeout {
		t.Errorf("Failure().Err() = %v, %v", kind, isFailure)
	}

	if _, err := failed.Result(); !errors.Is(err, errTimeout) {
		t.Errorf("Failure().Result() error = %v, want %v", err, errTimeout)
	}

	if failed.String() != "failure(timeout)" {
		t.Errorf("String() = %q", failed.String())
	}
}

func TestChecks(t *testing.T) {
	t.Parallel()

	page := func(v int) *int { return &v }
	pct := func(v float64) *float64 { return &v }

	tests := []struct {
		name   string
		checks []remote.Check[testError]
		want   testError
		wantOK bool
	}{
		{name: "no checks", wantOK: true},
		{
			name:   "not blank passes",
			checks: []remote.Check[testError]{remote.NotBlank(errBlank, "alice", "secret")},
			wantOK: true,
		},
		{
			name:   "whitespace is blank",
			checks: []remote.Check[testError]{remote.NotBlank(errBlank, "alice", "  ")},
			want:   errBlank,
		},
		{
			name:   "contains",
			checks: []remote.Check[testError]{remote.Contains(errEmail, "alice.example.com", "@")},
			want:   errEmail,
		},
		{
			name:   "at least rejects negative",
			checks: []remote.Check[testError]{remote.AtLeast(errRange, page(-1), 0)},
			want:   errRange,
		},
		{
			name:   "at least skips nil",
			checks: []remote.Check[testError]{remote.AtLeast[int](errRange, nil, 0)},
			wantOK: true,
		},
		{
			name:   "between accepts bounds",
			checks: []remote.Check[testError]{remote.Between(errRange, pct(0), 0, 100), remote.Between(errRange, pct(100), 0, 100)},
			wantOK: true,
		},
		{
			name:   "between rejects above",
			checks: []remote.Check[testError]{remote.Between(errRange, pct(100.5), 0, 100)},
			want:   errRange,
		},
		{
			name:   "between rejects NaN",
			checks: []remote.Check[testError]{remote.Between(errRange, pct(math.NaN()), 0, 100)},
			want:   errRange,
		},
		{
			name:   "between rejects infinity",
			checks: []remote.Check[testError]{remote.Between(errRange, pct(math.Inf(-1)), 0, 100)},
			want:   errRange,
		},
		{
			name:   "at least rejects NaN",
			checks: []remote.Check[testError]{remote.AtLeast(errRange, pct(math.NaN()), 0)},
			want:   errRange,
		},
		{
			name:   "at least rejects infinity",
			checks: []remote.Check[testError]{remote.AtLeast(errRange, pct(math.Inf(1)), 0)},
			want:   errRange,
		},
		{
			name:   "position rejects NaN percentage",
			checks: remote.Position(errBoth, errNeither, errRange, errRange, nil, pct(math.NaN())),
			want:   errRange,
		},
		{
			name:   "exactly one with both",
			checks: []remote.Check[testError]{remote.ExactlyOne(errBoth, errNeither, true, true)},
			want:   errBoth,
		},
		{
			name:   "exactly one with neither",
			checks: []remote.Check[testError]{remote.ExactlyOne(errBoth, errNeither, false, false)},
			want:   errNeither,
		},
		{
			name:   "not both",
			checks: []remote.Check[testError]{remote.NotBoth(errBoth, true, true)},
			want:   errBoth,
		},
		{
			name: "first violation wins",
			checks: []remote.Check[testError]{
				remote.NotBlank(errBlank, "b1"),
				remote.ExactlyOne(errBoth, errNeither, true, true),
				remote.NotBlank(errBlank, ""),
			},
			want: errBoth,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := remote.First(tt.checks...)
			if ok != tt.wantOK {
				t.Fatalf("First() ok = %v, want %v", ok, tt.wantOK)
			}

			if !ok && got != tt.want {
				t.Errorf("First() = %v, want %v", got, tt.want)
			}
		})
	}
}
