package store

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/YugandharPise/SME-HR/internal/shared/apperror"
	storeerrors "github.com/YugandharPise/SME-HR/internal/store/errors"

	"go.uber.org/zap"
)

const DefaultCommitTimeout = 5 * time.Second

// Mutator edits a private draft of the current snapshot. Returning an error
// discards the draft; nothing is persisted or published.
type Mutator func(draft *Snapshot) error

//go:generate mockgen -source=store.go -destination=mock/store_mock.go -package=mock
type Store interface {
	// Load returns a private copy of the latest committed snapshot.
	Load(ctx context.Context) (*Snapshot, error)
	// Commit runs fn against a draft, persists the result and publishes it.
	// Commits never interleave.
	Commit(ctx context.Context, fn Mutator) (*Snapshot, error)
}

type Option func(*committer)

func WithCommitTimeout(d time.Duration) Option {
	return func(c *committer) {
		if d > 0 {
			c.timeout = d
		}
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(c *committer) {
		if l != nil {
			c.logger = l.Named("store")
		}
	}
}

// WithSeedPassword sets the password of the default accounts created on first use.
func WithSeedPassword(pw string) Option {
	return func(c *committer) {
		if pw != "" {
			c.seedPassword = pw
		}
	}
}

type committer struct {
	persister    Persister
	current      atomic.Pointer[Snapshot]
	sem          chan struct{}
	timeout      time.Duration
	seedPassword string
	logger       *zap.Logger
}

// Open loads the persisted snapshot, seeding and persisting the default data
// set when nothing has been stored yet.
func Open(ctx context.Context, persister Persister, opts ...Option) (Store, error) {
	c := &committer{
		persister:    persister,
		sem:          make(chan struct{}, 1),
		timeout:      DefaultCommitTimeout,
		seedPassword: DefaultSeedPassword,
		logger:       zap.L().Named("store"),
	}
	for _, opt := range opts {
		opt(c)
	}

	snap, err := persister.Read(ctx)
	switch {
	case errors.Is(err, ErrNoSnapshot):
		snap, err = Seed(c.seedPassword)
		if err != nil {
			return nil, fmt.Errorf("seed snapshot: %w", err)
		}
		if err := persister.Write(ctx, snap); err != nil {
			return nil, apperror.Persistence(fmt.Errorf("persist seed snapshot: %w", err))
		}
		c.logger.Info("store seeded with default accounts",
			zap.Int("users", len(snap.Users)),
			zap.Int("employees", len(snap.Employees)),
		)
	case err != nil:
		return nil, apperror.Persistence(fmt.Errorf("read snapshot: %w", err))
	}

	c.current.Store(snap)
	c.logger.Info("store opened", zap.Int64("version", snap.Version))
	return c, nil
}

func (c *committer) Load(ctx context.Context) (*Snapshot, error) {
	return c.current.Load().Clone(), nil
}

func (c *committer) Commit(ctx context.Context, fn Mutator) (*Snapshot, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	select {
	case c.sem <- struct{}{}:
	case <-ctx.Done():
		c.logger.Warn("commit slot wait timed out", zap.Duration("timeout", c.timeout))
		return nil, storeerrors.ErrCommitTimeout
	}
	defer func() { <-c.sem }()

	draft := c.current.Load().Clone()
	if err := fn(draft); err != nil {
		return nil, err
	}
	draft.Version++

	if err := c.persister.Write(ctx, draft); err != nil {
		c.logger.Error("persist snapshot failed",
			zap.Int64("version", draft.Version),
			zap.Error(err),
		)
		return nil, apperror.Persistence(fmt.Errorf("persist snapshot v%d: %w", draft.Version, err))
	}

	// The mutator may still hold pointers into draft; publish a copy.
	c.current.Store(draft.Clone())
	return draft, nil
}

type readOnly struct {
	persister Persister
}

// ReadOnly serves a fresh snapshot from the persister on every Load and
// refuses commits. Used by processes that do not own the store.
func ReadOnly(persister Persister) Store {
	return &readOnly{persister: persister}
}

func (r *readOnly) Load(ctx context.Context) (*Snapshot, error) {
	snap, err := r.persister.Read(ctx)
	if err != nil {
		return nil, apperror.Persistence(fmt.Errorf("read snapshot: %w", err))
	}
	return snap, nil
}

func (r *readOnly) Commit(ctx context.Context, fn Mutator) (*Snapshot, error) {
	return nil, storeerrors.ErrReadOnly
}
