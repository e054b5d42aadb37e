// Package commands implements CLI command handlers for svnstat.
package commands

import (
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/svnstat/svnstat/internal/config"
	"github.com/svnstat/svnstat/internal/models"
	"github.com/svnstat/svnstat/internal/store"
	"github.com/svnstat/svnstat/internal/svn"
)

func newLogger(verbose bool) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	if verbose {
		logger.SetLevel(logrus.DebugLevel)
	} else {
		logger.SetLevel(logrus.WarnLevel)
	}
	return logger
}

// newStore picks the backend from configuration: Postgres when a connection
// string is set, JSON files otherwise. The returned func releases the backend.
func newStore(cfg *config.Config) (store.Store, func(), error) {
	if cfg.DBConnectionString != "" {
		pg, err := store.NewPostgresStore(cfg.DBConnectionString)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		if err := pg.Migrate(); err != nil {
			pg.Close()
			return nil, nil, fmt.Errorf("failed to run migrations: %w", err)
		}
		return pg, func() { pg.Close() }, nil
	}

	fs, err := store.NewFileStore(cfg.DataDir)
	if err != nil {
		return nil, nil, err
	}
	return fs, func() {}, nil
}

func newService(cfg *config.Config, logger *logrus.Logger) (*svn.Service, func(), error) {
	st, cleanup, err := newStore(cfg)
	if err != nil {
		return nil, nil, err
	}

	var clientOpts []svn.ClientOption
	if cfg.SVNBinary != "" {
		clientOpts = append(clientOpts, svn.WithBinary(cfg.SVNBinary))
	}
	if cfg.SVNUsername != "" || cfg.SVNPassword != "" {
		clientOpts = append(clientOpts, svn.WithCredentials(cfg.SVNUsername, cfg.SVNPassword))
	}

	client := svn.NewClient(logger, clientOpts...)
	return svn.NewService(client, st, logger), cleanup, nil
}

func resolveRepo(flagValue string, cfg *config.Config) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if cfg.DefaultRepo != "" {
		return cfg.DefaultRepo, nil
	}
	return "", fmt.Errorf("no repository given: use --repo or set DEFAULT_REPO")
}

// resolveRange builds the reporting range override from the shared range
// flags; nil means "use the persisted range".
func resolveRange(last int, from, to string, now time.Time) (*models.DateRange, error) {
	if last > 0 {
		rng := models.LastDays(last, now)
		return &rng, nil
	}
	if from == "" && to == "" {
		return nil, nil
	}
	if from == "" || to == "" {
		return nil, fmt.Errorf("--from and --to must be supplied together")
	}

	start, err := time.ParseInLocation("2006-01-02", from, time.Local)
	if err != nil {
		return nil, fmt.Errorf("invalid --from date (use YYYY-MM-DD): %w", err)
	}
	end, err := time.ParseInLocation("2006-01-02", to, time.Local)
	if err != nil {
		return nil, fmt.Errorf("invalid --to date (use YYYY-MM-DD): %w", err)
	}
	if start.After(end) {
		return nil, fmt.Errorf("--from must not be after --to")
	}

	return &models.DateRange{Start: start, End: end}, nil
}
