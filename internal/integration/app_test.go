package integration_test

import (
	"context"
	"log/slog"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/payment-gateway/internal/app"
)

// TestApp bundles the application under test with a direct database pool for
// assertions on persisted state.
type TestApp struct {
	App *app.Application
	DB  *pgxpool.Pool
}

func newTestApp(cfg app.Config) (*TestApp, error) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	application, err := app.New(cfg, logger)
	if err != nil {
		return nil, err
	}

	db, err := pgxpool.New(context.Background(), cfg.DB.DSN)
	if err != nil {
		application.Close()
		return nil, err
	}

	return &TestApp{
		App: application,
		DB:  db,
	}, nil
}

func (a *TestApp) Close() {
	a.DB.Close()
	a.App.Close()
}
