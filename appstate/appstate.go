// Package appstate holds the app configuration and the connection pool
// to the database, shared across all the endpoint handlers.
//
// Each API method that needs to connect to the database should receive
// the *AppState as argument. It also has facility methods to handle
// transactions (see AppState.GetTx, AppState.CommitTx,
// AppState.RollbackTx and AppState.RunTx), and the New method to
// initialize the structure, like the connection pool with the DB.
package appstate

import (
	"context"
	"errors"

	pgxzero "github.com/jackc/pgx-zerolog"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/tracelog"
	"github.com/rs/zerolog"

	"github.com/mrsarm/echo-contrib-rest/config"
	"github.com/mrsarm/echo-contrib-rest/errs"
)

// PoolNotInitializedCode is the error code carried by the validation
// error returned by GetTx when the state was built with NewWithoutPool.
const PoolNotInitializedCode = "pool_not_initialized"

// AppState holds the app configuration and the connection pool to the
// database. It is safe to share across concurrent requests: the
// configuration is read-only and each transaction returned by GetTx is
// exclusively owned by the request that acquired it.
type AppState struct {
	Config *config.Config

	// pool is nil when the state was created with NewWithoutPool, in
	// which case connections are opened per call with GetConn.
	pool *pgxpool.Pool
	log  *zerolog.Logger
}

// New receives the configuration and initializes the app state with a
// connection pool to the database. Normally used once at startup time
// when configuring the HTTP server.
//
// The pool connects lazily: New validates the configuration and sizes
// the pool (max/min connections, idle timeout, optional ping before
// each acquire) but does not reach the database until the first
// acquisition. When the logger is at debug level, every query is logged
// through zerolog.
func New(ctx context.Context, cfg *config.Config, logger *zerolog.Logger) (*AppState, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DB.URL)
	if err != nil {
		return nil, errs.DB(err)
	}
	poolCfg.MaxConns = cfg.DB.MaxConnections
	poolCfg.MinConns = cfg.DB.MinConnections
	poolCfg.MaxConnIdleTime = cfg.DB.IdleTimeoutDuration()
	if cfg.DB.TestBeforeAcquire {
		poolCfg.BeforeAcquire = func(ctx context.Context, conn *pgx.Conn) bool {
			return conn.Ping(ctx) == nil
		}
	}
	if logger.GetLevel() <= zerolog.DebugLevel {
		poolCfg.ConnConfig.Tracer = &tracelog.TraceLog{
			Logger:   pgxzero.NewLogger(*logger),
			LogLevel: tracelog.LogLevelDebug,
		}
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, errs.DB(err)
	}
	// The connection is lazy, so this doesn't mean the database is reachable.
	logger.Debug().Msg("connection configuration to the database looks good")

	return &AppState{Config: cfg, pool: pool, log: logger}, nil
}

// NewWithoutPool initializes the app state without a connection pool:
// every call to GetConn opens a brand-new connection, and GetTx fails
// fast with a validation error.
func NewWithoutPool(cfg *config.Config, logger *zerolog.Logger) *AppState {
	return &AppState{Config: cfg, log: logger}
}

// Pool exposes the underlying pool, nil when the state was created with
// NewWithoutPool.
func (app *AppState) Pool() *pgxpool.Pool {
	return app.pool
}

// GetTx borrows a connection from the pool, bounded by the configured
// acquire timeout, and starts a transaction on it. Once used, CommitTx
// should be called to finish and release the transaction, or RollbackTx
// to release it rolling back the changes. Deferring RollbackTx right
// after GetTx guarantees the transaction never outlives the request:
//
//	tx, err := app.GetTx(ctx)
//	if err != nil {
//	    return err
//	}
//	defer app.RollbackTx(ctx, tx) // no-op once committed
//	// ... use tx ...
//	return app.CommitTx(ctx, tx)
//
// When the state was created with NewWithoutPool, GetTx fails with a
// validation error carrying PoolNotInitializedCode instead of blocking
// or panicking.
func (app *AppState) GetTx(ctx context.Context) (pgx.Tx, error) {
	if app.pool == nil {
		return nil, errs.Validation(PoolNotInitializedCode,
			"the database pool was not initialized")
	}
	ctx, cancel := context.WithTimeout(ctx, app.Config.DB.AcquireTimeoutDuration())
	defer cancel()
	tx, err := app.pool.Begin(ctx)
	if err != nil {
		return nil, errs.DB(err)
	}
	return tx, nil
}

// CommitTx commits the transaction passed, consuming it: the handle is
// released and must not be used anymore. See GetTx.
func (app *AppState) CommitTx(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Commit(ctx); err != nil {
		return errs.DB(err)
	}
	return nil
}

// RollbackTx rolls back the transaction passed, consuming it. Calling it
// on a transaction already committed or rolled back is a no-op, so it is
// safe to defer right after GetTx. See GetTx.
func (app *AppState) RollbackTx(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return errs.DB(err)
	}
	return nil
}

// RunTx runs fn inside a transaction acquired from the pool: the
// transaction is committed when fn returns nil, and rolled back when fn
// returns an error or panics. Errors from fn are passed through
// unchanged; begin/commit failures are mapped to database errors.
func (app *AppState) RunTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := app.GetTx(ctx)
	if err != nil {
		return err
	}
	// RollbackTx is a no-op once the transaction was committed.
	defer app.RollbackTx(ctx, tx)
	if err := fn(tx); err != nil {
		return err
	}
	return app.CommitTx(ctx, tx)
}

// GetConn opens a brand-new connection to the database, outside of the
// pool. The caller is responsible for starting transactions on it and
// for closing it. Works in both pooled and unpooled modes.
func (app *AppState) GetConn(ctx context.Context) (*pgx.Conn, error) {
	conn, err := pgx.Connect(ctx, app.Config.DB.URL)
	if err != nil {
		return nil, errs.DB(err)
	}
	return conn, nil
}

// Close releases the connection pool if there is one. Normally deferred
// at startup time, after New.
func (app *AppState) Close() {
	if app.pool != nil {
		app.log.Info().Msg("closing database connection pool")
		app.pool.Close()
	}
}
