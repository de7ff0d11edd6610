package internal

import (
	"context"
	"time"
)

// UnitOfWork runs fn so that every repository call made with the passed
// context commits or rolls back together.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// NoopUnitOfWork calls fn directly. Used where no transaction is available.
type NoopUnitOfWork struct{}

func (NoopUnitOfWork) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// StartOfDay truncates t to midnight UTC.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
