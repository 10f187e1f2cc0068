// Package session orchestrates one participant's evaluation sequence.
//
// The Engine is the composition root of the core: it memoizes the
// immutable canonical item list, derives assignments on demand, reads
// progress back from the judgment log, and appends completed
// judgments. It holds no per-participant state — the rendering layer
// passes an explicit Session value into every call, so the engine is
// safe to use concurrently for different participants.
package session

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/studykit/pairwise/internal/assign"
	"github.com/studykit/pairwise/internal/config"
	"github.com/studykit/pairwise/internal/judgment"
	"github.com/studykit/pairwise/internal/progress"
	"github.com/studykit/pairwise/internal/reconcile"
)

// Log is the append-only judgment sink and its read-back view.
// Implemented by the SQLite store.
type Log interface {
	Append(ctx context.Context, rec judgment.Record) error
	ReadAll(ctx context.Context) ([]map[string]any, error)
}

// Session is the explicit per-participant context value passed into
// every engine call. It replaces ad-hoc mutable UI state.
type Session struct {
	// Token identifies this serving session for diagnostics.
	Token string

	// ParticipantID is the canonicalized participant identity.
	ParticipantID string

	// Profile holds the survey-profile answers for this session,
	// either freshly collected or restored from the log.
	Profile judgment.Profile
}

// Engine evaluates assignment, progress, and recording against one
// immutable canonical item list.
type Engine struct {
	items  []reconcile.Item
	log    Log
	logger *zap.Logger
	tokens TokenGenerator
	now    func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithTokenGenerator replaces the UUIDv7 session token source.
func WithTokenGenerator(g TokenGenerator) Option {
	return func(e *Engine) { e.tokens = g }
}

// WithClock replaces the timestamp source for recorded judgments.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// New builds an engine over the canonical item list. An empty list is
// a fatal configuration error: it means the datasets did not
// reconcile.
func New(items []reconcile.Item, log Log, logger *zap.Logger, opts ...Option) (*Engine, error) {
	if len(items) == 0 {
		return nil, config.NewNoSubjectsError()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	e := &Engine{
		items:  items,
		log:    log,
		logger: logger,
		tokens: UUIDv7Generator{},
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Items returns the canonical item list in pre-shuffle order.
func (e *Engine) Items() []reconcile.Item {
	return e.items
}

// Item returns the canonical item at idx.
func (e *Engine) Item(idx int) (reconcile.Item, error) {
	if idx < 0 || idx >= len(e.items) {
		return reconcile.Item{}, fmt.Errorf("session: item index %d out of range [0, %d)", idx, len(e.items))
	}
	return e.items[idx], nil
}

// NewSession opens a session for a participant, restoring the survey
// profile from the log when earlier judgments carry one.
func (e *Engine) NewSession(ctx context.Context, participantID string) (Session, error) {
	id, err := assign.CanonicalParticipantID(participantID)
	if err != nil {
		return Session{}, err
	}
	sess := Session{
		Token:         e.tokens.Generate(),
		ParticipantID: id,
	}
	sess.Profile = e.Progress(ctx, id).Profile
	return sess, nil
}

// Assignment derives the participant's presentation order and side
// flips. Pure function of the participant id and item count; identical
// on every call.
func (e *Engine) Assignment(participantID string) (assign.Assignment, error) {
	return assign.For(participantID, len(e.items))
}

// Progress reads the participant's completion state from the log. A
// read failure degrades to zero progress: restarting a sequence is an
// acceptable failure mode, corrupting a session is not.
func (e *Engine) Progress(ctx context.Context, participantID string) progress.Progress {
	rows, err := e.log.ReadAll(ctx)
	if err != nil {
		e.logger.Warn("judgment log read failed; treating participant as having zero progress",
			zap.String("participant_id", participantID), zap.Error(err))
		return progress.Progress{Completed: map[int]struct{}{}}
	}
	return progress.FromRows(rows, participantID, e.logger)
}

// NextItem resolves the first unanswered item in the session's
// presentation order. done=true means the participant has judged every
// item.
func (e *Engine) NextItem(ctx context.Context, sess Session) (idx int, done bool, err error) {
	a, err := e.Assignment(sess.ParticipantID)
	if err != nil {
		return 0, false, err
	}
	p := e.Progress(ctx, sess.ParticipantID)
	next, ok := progress.Next(a.Order, p.Completed)
	if !ok {
		return 0, true, nil
	}
	return next, false, nil
}

// Record normalizes and appends one completed judgment. The verdicts
// arrive in the presented frame (negative favors slot A as the
// participant saw it); Record undoes the item's side flip so the log
// always holds canonical-frame values.
func (e *Engine) Record(ctx context.Context, sess Session, itemIndex int, presented map[judgment.Criterion]judgment.Verdict, comment string) error {
	item, err := e.Item(itemIndex)
	if err != nil {
		return err
	}
	flip := assign.SideFlip(sess.ParticipantID, itemIndex)

	verdicts := make(map[judgment.Criterion]judgment.Verdict, len(presented))
	for c, v := range presented {
		verdicts[c] = judgment.Normalize(v, flip)
	}

	rec := judgment.Record{
		Timestamp:        e.now(),
		ParticipantID:    sess.ParticipantID,
		ItemIndex:        item.Index,
		SubjectID:        item.SubjectID,
		SideFlip:         flip,
		BaselineGrade:    item.BaselineGrade,
		StudentGrade:     item.StudentGrade,
		BaselineResponse: item.Baseline,
		AdviceTitle:      item.AdviceTitle,
		AdviceBody:       item.AdviceBody,
		Profile:          sess.Profile,
		Verdicts:         verdicts,
		Comment:          comment,
	}
	if err := e.log.Append(ctx, rec); err != nil {
		return fmt.Errorf("record judgment: %w", err)
	}
	e.logger.Info("judgment recorded",
		zap.String("session", sess.Token),
		zap.String("participant_id", sess.ParticipantID),
		zap.Int("item_index", item.Index),
		zap.String("subject_id", item.SubjectID),
		zap.Bool("side_flip", flip))
	return nil
}
