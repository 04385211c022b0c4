package bullion

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	audithook "github.com/xraph/bullion/audit_hook"
	"github.com/xraph/bullion/goldloan"
	"github.com/xraph/bullion/id"
	"github.com/xraph/bullion/plugin"
	"github.com/xraph/bullion/rates"
	"github.com/xraph/bullion/store"
	"github.com/xraph/bullion/types"
)

// DefaultActor is recorded in the activity log when no actor is configured.
const DefaultActor = "Admin"

// Ledger is the reconciliation engine. Every business action is one method;
// each runs to completion against a private copy of the books and is
// committed only when every step succeeds.
type Ledger struct {
	mu      sync.RWMutex
	store   store.Store
	plugins *plugin.Registry
	logger  *slog.Logger

	// Collaborators
	rates    rates.Provider
	recorder audithook.Recorder
	journal  *audithook.Journal

	// Configuration
	actor              string
	ltvCeiling         decimal.Decimal
	postLoanRepayments bool
	activityLimit      int
	skipMigrate        bool
	clock              func() time.Time

	started bool
	books   *books
}

// New creates a new Ledger instance.
func New(s store.Store, opts ...Option) *Ledger {
	l := &Ledger{
		store:      s,
		plugins:    plugin.NewRegistry(),
		logger:     slog.Default(),
		rates:      rates.NewBoard(rates.Default()),
		actor:      DefaultActor,
		ltvCeiling: goldloan.DefaultLTVCeiling,
		clock:      func() time.Time { return time.Now().UTC() },
		books:      &books{},
	}

	for _, opt := range opts {
		opt(l)
	}
	l.journal = audithook.NewJournal(l.activityLimit)

	return l
}

// Option configures a Ledger instance.
type Option func(*Ledger)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Ledger) {
		l.logger = logger
		l.plugins.WithLogger(logger)
	}
}

// WithPlugin registers a plugin.
func WithPlugin(p plugin.Plugin) Option {
	return func(l *Ledger) {
		_ = l.plugins.Register(p) //nolint:errcheck // best-effort plugin registration during init
	}
}

// WithRates sets the rate provider. A provider that also implements
// rates.Updater can be changed through UpdateRates.
func WithRates(p rates.Provider) Option {
	return func(l *Ledger) {
		l.rates = p
	}
}

// WithRecorder forwards every activity log entry to r after commit.
func WithRecorder(r audithook.Recorder) Option {
	return func(l *Ledger) {
		l.recorder = r
	}
}

// WithActor sets the name recorded against activity log entries.
func WithActor(actor string) Option {
	return func(l *Ledger) {
		l.actor = actor
	}
}

// WithLTVCeiling sets the advisory loan-to-value ceiling, e.g. 0.75.
func WithLTVCeiling(ceiling decimal.Decimal) Option {
	return func(l *Ledger) {
		l.ltvCeiling = ceiling
	}
}

// WithLoanRepaymentPosting makes loan payments post a Credit transaction.
// Off by default: only disbursals reach the cash ledger.
func WithLoanRepaymentPosting(enabled bool) Option {
	return func(l *Ledger) {
		l.postLoanRepayments = enabled
	}
}

// WithActivityLimit bounds the number of retained activity log entries.
func WithActivityLimit(n int) Option {
	return func(l *Ledger) {
		l.activityLimit = n
	}
}

// WithoutMigrate makes Start load the books without migrating the store,
// for schemas managed outside the ledger.
func WithoutMigrate() Option {
	return func(l *Ledger) {
		l.skipMigrate = true
	}
}

// WithClock sets the time source used for timestamps.
func WithClock(clock func() time.Time) Option {
	return func(l *Ledger) {
		l.clock = clock
	}
}

// Plugins returns the plugin registry.
func (l *Ledger) Plugins() *plugin.Registry { return l.plugins }

// Start migrates the store, loads every collection and initializes plugins.
func (l *Ledger) Start(ctx context.Context) error {
	if l.store == nil {
		return ErrNoStore
	}

	b, err := l.open(ctx)
	if err != nil {
		return err
	}

	// Initialize plugins
	l.plugins.EmitInit(ctx, l)

	l.logger.Info("bullion started",
		"migrated", !l.skipMigrate,
		"transactions", len(b.transactions),
		"loans", len(b.loans.Loans),
		"karigars", len(b.custody.Karigars),
		"employees", len(b.payroll.Employees),
		"diamond_packets", len(b.diamonds.Packets),
	)

	return nil
}

func (l *Ledger) open(ctx context.Context) (*books, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.started {
		return nil, ErrAlreadyStarted
	}

	// Migrate database
	if !l.skipMigrate {
		if err := l.store.Migrate(ctx); err != nil {
			return nil, err
		}
	}

	b, err := loadBooks(ctx, l.store, l.journal)
	if err != nil {
		return nil, err
	}
	l.books = b
	l.started = true
	return b, nil
}

// Stop shuts down the Ledger.
func (l *Ledger) Stop() error {
	l.mu.Lock()
	l.started = false
	l.mu.Unlock()

	ctx := context.Background()
	l.plugins.EmitShutdown(ctx)

	if l.store == nil {
		return nil
	}
	return l.store.Close()
}

// ──────────────────────────────────────────────────
// Action plumbing
// ──────────────────────────────────────────────────

// action is the unit of work for one business call.
type action struct {
	name     string
	l        *Ledger
	draft    *books
	dirty    map[store.Collection]bool
	flags    []types.Flag
	activity []audithook.AuditEvent
	after    []func(context.Context)
}

func (a *action) touch(cs ...store.Collection) {
	for _, c := range cs {
		a.dirty[c] = true
	}
}

func (a *action) flag(kind types.FlagKind, resource, resourceID, format string, args ...any) {
	a.flags = append(a.flags, types.Flag{
		Kind:       kind,
		Resource:   resource,
		ResourceID: resourceID,
		Message:    fmt.Sprintf(format, args...),
	})
}

// log queues an activity log entry.
func (a *action) log(module, name, format string, args ...any) {
	a.activity = append(a.activity, audithook.AuditEvent{
		ID:          id.NewActivityID(),
		Timestamp:   a.l.clock(),
		Module:      module,
		Action:      name,
		Description: fmt.Sprintf(format, args...),
		Actor:       a.l.actor,
		Outcome:     audithook.OutcomeSuccess,
		Severity:    audithook.SeverityInfo,
	})
}

// emit queues a plugin notification to run after commit.
func (a *action) emit(fn func(context.Context)) {
	a.after = append(a.after, fn)
}

// run executes fn against a draft of the books. On success the draft is
// committed and the changed collections are written behind while the lock
// is still held, so the store sees commits in order. Plugins, the external
// recorder and flag logging run after the lock is released.
func (l *Ledger) run(ctx context.Context, name string, fn func(a *action) error) ([]types.Flag, error) {
	a, err := l.commit(ctx, name, fn)
	if err != nil {
		l.logger.Debug("bullion: action rejected", "action", name, "error", err)
		return nil, err
	}

	l.publish(ctx, a)
	l.logger.Debug("bullion: action committed", "action", name, "flags", len(a.flags))
	return a.flags, nil
}

func (l *Ledger) commit(ctx context.Context, name string, fn func(a *action) error) (*action, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.started {
		return nil, ErrNotStarted
	}

	a := &action{
		name:  name,
		l:     l,
		draft: l.books.clone(),
		dirty: make(map[store.Collection]bool),
	}
	if err := a.apply(fn); err != nil {
		return nil, err
	}

	l.books = a.draft
	for i := range a.activity {
		_ = l.journal.Record(ctx, &a.activity[i]) //nolint:errcheck // journal never fails
	}
	if len(a.activity) > 0 {
		a.touch(store.Activity)
	}
	l.persist(ctx, a)
	return a, nil
}

// apply runs fn and turns a panic into ErrActionPanic. The draft of a
// panicking action is never committed.
func (a *action) apply(fn func(a *action) error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			a.l.logger.Error("bullion: action panicked", "action", a.name, "panic", r)
			err = fmt.Errorf("%w: %s: %v", ErrActionPanic, a.name, r)
		}
	}()
	return fn(a)
}

// persist saves every touched collection. Failures are logged and never
// undo the committed action.
func (l *Ledger) persist(ctx context.Context, a *action) {
	for _, c := range store.All() {
		if !a.dirty[c] {
			continue
		}
		var (
			payload []byte
			err     error
		)
		if c == store.Activity {
			payload, err = json.Marshal(l.journal.Entries())
		} else {
			payload, err = a.draft.encode(c)
		}
		if err == nil {
			err = l.store.Save(ctx, c, payload)
		}
		if err != nil {
			l.logger.Error("bullion: write-behind failed",
				"action", a.name,
				"collection", c,
				"error", err,
			)
		}
	}
}

func (l *Ledger) publish(ctx context.Context, a *action) {
	if l.recorder != nil {
		for i := range a.activity {
			if err := l.recorder.Record(ctx, &a.activity[i]); err != nil {
				l.logger.Warn("bullion: activity recorder failed",
					"action", a.name,
					"error", err,
				)
			}
		}
	}

	for _, f := range a.flags {
		l.logger.Warn("bullion: flag raised",
			"action", a.name,
			"kind", f.Kind,
			"resource", f.Resource,
			"resource_id", f.ResourceID,
			"message", f.Message,
		)
		l.plugins.EmitFlagRaised(ctx, f)
	}

	for _, fn := range a.after {
		fn(ctx)
	}
}

// view runs fn under the read lock.
func (l *Ledger) view(fn func(b *books)) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	fn(l.books)
}

// Activity returns the activity log, newest first.
func (l *Ledger) Activity() []audithook.AuditEvent {
	return l.journal.Entries()
}
