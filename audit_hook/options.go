package audithook

import (
	"log/slog"
	"time"
)

// Option configures an Extension.
type Option func(*Extension)

// WithLogger sets the logger for the extension.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Extension) {
		e.logger = logger
	}
}

// WithActor stamps every hook event with the given actor, usually the
// counter or user the ledger runs for.
func WithActor(actor string) Option {
	return func(e *Extension) {
		e.actor = actor
	}
}

// WithClock overrides the event timestamp source.
func WithClock(clock func() time.Time) Option {
	return func(e *Extension) {
		e.clock = clock
	}
}

// WithEnabledActions restricts auditing to the listed actions.
// Without it every action is audited.
func WithEnabledActions(actions ...string) Option {
	return func(e *Extension) {
		e.filter.only = set(actions)
	}
}

// WithDisabledActions skips the listed actions.
func WithDisabledActions(actions ...string) Option {
	return func(e *Extension) {
		if e.filter.skip == nil {
			e.filter.skip = make(map[string]bool)
		}
		for _, a := range actions {
			e.filter.skip[a] = true
		}
	}
}

// WithCategories restricts auditing to events of the listed categories,
// e.g. CategoryLending and CategoryCustody for a compliance trail.
func WithCategories(categories ...string) Option {
	return func(e *Extension) {
		e.filter.categories = set(categories)
	}
}

// filter decides which events reach the recorder. Empty sets match all.
type filter struct {
	only       map[string]bool
	skip       map[string]bool
	categories map[string]bool
}

func (f filter) allows(action, category string) bool {
	if f.skip[action] {
		return false
	}
	if f.only != nil && !f.only[action] {
		return false
	}
	if f.categories != nil && !f.categories[category] {
		return false
	}
	return true
}

func set(values []string) map[string]bool {
	m := make(map[string]bool, len(values))
	for _, v := range values {
		m[v] = true
	}
	return m
}
