package cli

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/studykit/pairwise/internal/config"
	"github.com/studykit/pairwise/internal/reconcile"
	"github.com/studykit/pairwise/internal/session"
	"github.com/studykit/pairwise/internal/store"
)

// runtime bundles everything a subcommand needs. Close releases the
// judgment log.
type runtime struct {
	study  *config.Study
	engine *session.Engine
	store  *store.Store
	logger *zap.Logger
}

func (r *runtime) Close() {
	if r.store != nil {
		r.store.Close()
	}
	if r.logger != nil {
		_ = r.logger.Sync()
	}
}

// setup loads the study configuration, reconciles the datasets into
// the canonical item list, opens the judgment log, and builds the
// engine. Any failure here is fatal for the invocation.
func setup(opts *RootOptions) (*runtime, error) {
	logger, err := newLogger(opts)
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}

	study, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, err
	}

	baseline, err := config.LoadDataset(study.BaselinePath)
	if err != nil {
		return nil, err
	}
	advice, err := config.LoadDataset(study.AdvicePath)
	if err != nil {
		return nil, err
	}

	items := reconcile.Reconcile(baseline, advice, reconcile.Options{
		MaxItems: study.MaxItems,
		Subjects: study.Subjects,
	})
	logger.Debug("datasets reconciled",
		zap.Int("baseline_entries", len(baseline)),
		zap.Int("advice_entries", len(advice)),
		zap.Int("items", len(items)))

	st, err := store.Open(study.LogPath)
	if err != nil {
		return nil, fmt.Errorf("open judgment log: %w", err)
	}

	engine, err := session.New(items, st, logger)
	if err != nil {
		st.Close()
		return nil, err
	}

	return &runtime{study: study, engine: engine, store: st, logger: logger}, nil
}
