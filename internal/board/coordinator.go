package board

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "taskboard/internal/board"

// MoveRequest is a resolved drop target: which task, which column, where.
type MoveRequest struct {
	TaskID   string
	ColumnID string
	Index    int
	// Actor is the authenticated caller, if any. Only used for logging.
	Actor string
}

// Move is an admitted move with its source and clamped destination.
type Move struct {
	TaskID     string
	FromColumn string
	FromIndex  int
	ToColumn   string
	ToIndex    int
}

func (m Move) CrossColumn() bool {
	return m.FromColumn != m.ToColumn
}

type Outcome int

const (
	Applied Outcome = iota + 1
	Rejected
)

func (o Outcome) String() string {
	switch o {
	case Applied:
		return "applied"
	case Rejected:
		return "rejected"
	}
	return "unknown"
}

// MoveResult is either Applied with the new snapshot or Rejected with a
// reason. A rejected move never touched the board.
type MoveResult struct {
	Outcome  Outcome
	Reason   error
	Warning  string
	Snapshot *Snapshot
	Move     *Move
}

func (r MoveResult) Applied() bool {
	return r.Outcome == Applied
}

// Store persists a move. ApplyMove must be all-or-nothing; the board is
// only updated after it returns nil.
type Store interface {
	ApplyMove(ctx context.Context, m Move) error
}

// Observer is notified about move outcomes.
type Observer interface {
	MoveApplied(m Move, s Snapshot)
	MoveRejected(reason error)
}

type Option func(*Coordinator)

func WithPolicy(p CapacityPolicy) Option {
	return func(c *Coordinator) {
		if p != nil {
			c.policy = p
		}
	}
}

func WithStore(s Store) Option {
	return func(c *Coordinator) { c.store = s }
}

func WithObserver(o Observer) Option {
	return func(c *Coordinator) { c.observer = o }
}

func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(c *Coordinator) {
		if tp != nil {
			c.tracer = tp.Tracer(tracerName)
		}
	}
}

func WithLogger(l *logrus.Entry) Option {
	return func(c *Coordinator) {
		if l != nil {
			c.log = l
		}
	}
}

// Coordinator is the single writer of a Board. Moves are serialized on the
// board's lock: validation, persistence and the in-memory update all happen
// while it is held.
type Coordinator struct {
	board    *Board
	policy   CapacityPolicy
	store    Store
	observer Observer
	log      *logrus.Entry
	tracer   trace.Tracer
}

func NewCoordinator(b *Board, opts ...Option) *Coordinator {
	c := &Coordinator{
		board:  b,
		policy: HardLimit{},
		log:    logrus.NewEntry(logrus.StandardLogger()),
		tracer: otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Snapshot returns a snapshot of the coordinated board.
func (c *Coordinator) Snapshot() Snapshot {
	return c.board.Snapshot()
}

// RequestMove moves a task to index req.Index of column req.ColumnID.
//
// Unknown task or column and full destination columns come back as a
// Rejected result with a nil error. The error is only set when the move
// could not be attempted (cancelled context) or the store failed; the
// board is unchanged in both cases.
func (c *Coordinator) RequestMove(ctx context.Context, req MoveRequest) (MoveResult, error) {
	ctx, span := c.tracer.Start(ctx, "board.RequestMove", trace.WithAttributes(
		attribute.String("task.id", req.TaskID),
		attribute.String("column.id", req.ColumnID),
		attribute.Int("target.index", req.Index),
	))
	defer span.End()

	if err := ctx.Err(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return MoveResult{}, err
	}

	log := c.log.WithFields(logrus.Fields{
		"task_id":   req.TaskID,
		"column_id": req.ColumnID,
		"index":     req.Index,
	})
	if req.Actor != "" {
		log = log.WithField("actor", req.Actor)
	}

	b := c.board
	b.mu.Lock()
	defer b.mu.Unlock()

	from, fromIdx, ok := b.locate(req.TaskID)
	if !ok {
		if from != nil {
			panic(InvariantViolation{Detail: fmt.Sprintf("task %q indexed under %q but missing from its order", req.TaskID, from.id)})
		}
		return c.reject(span, log, ErrTaskNotFound), nil
	}
	dest, ok := b.byID[req.ColumnID]
	if !ok {
		return c.reject(span, log, ErrColumnNotFound), nil
	}

	cross := from != dest
	move := Move{
		TaskID:     req.TaskID,
		FromColumn: from.id,
		FromIndex:  fromIdx,
		ToColumn:   dest.id,
		ToIndex:    clampIndex(req.Index, len(dest.order), cross),
	}
	span.SetAttributes(
		attribute.String("from.column", move.FromColumn),
		attribute.Int("to.index", move.ToIndex),
	)

	var warning string
	if cross {
		verdict := c.policy.Evaluate(ColumnState{
			ID:          dest.id,
			Count:       len(dest.order),
			Capacity:    copyInt(dest.capacity),
			CrossColumn: true,
		})
		switch verdict {
		case Block:
			return c.reject(span, log, ErrCapacityExceeded), nil
		case Warn:
			warning = capacityWarning(dest)
			log.WithField("warning", warning).Warn("WIP limit exceeded")
		}
	}

	if !cross && move.ToIndex == move.FromIndex {
		snap := b.snapshotLocked()
		span.SetAttributes(attribute.Bool("move.noop", true))
		return MoveResult{Outcome: Applied, Snapshot: &snap, Move: &move}, nil
	}

	if c.store != nil {
		if err := c.store.ApplyMove(ctx, move); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "store failed")
			log.WithError(err).Error("failed to persist move")
			return MoveResult{}, fmt.Errorf("persist move of task %q: %w", move.TaskID, err)
		}
	}

	b.apply(move)
	if err := b.verify(); err != nil {
		panic(InvariantViolation{Detail: fmt.Sprintf("after moving %q: %v", move.TaskID, err)})
	}

	snap := b.snapshotLocked()
	if c.observer != nil {
		c.observer.MoveApplied(move, snap)
	}
	log.WithFields(logrus.Fields{
		"from":    move.FromColumn,
		"to":      move.ToColumn,
		"to_idx":  move.ToIndex,
		"version": snap.Version,
	}).Info("task moved")

	return MoveResult{
		Outcome:  Applied,
		Warning:  warning,
		Snapshot: &snap,
		Move:     &move,
	}, nil
}

func (c *Coordinator) reject(span trace.Span, log *logrus.Entry, reason error) MoveResult {
	span.SetAttributes(attribute.String("move.rejected", reason.Error()))
	if c.observer != nil {
		c.observer.MoveRejected(reason)
	}
	log.WithField("reason", reason.Error()).Info("move rejected")
	return MoveResult{Outcome: Rejected, Reason: reason}
}

// apply relocates the task. The caller holds the write lock and has
// validated m against the current state.
func (b *Board) apply(m Move) {
	from := b.byID[m.FromColumn]
	to := b.byID[m.ToColumn]

	rest := make([]string, 0, len(from.order))
	rest = append(rest, from.order[:m.FromIndex]...)
	rest = append(rest, from.order[m.FromIndex+1:]...)

	if from == to {
		to.order = insertAt(rest, m.ToIndex, m.TaskID)
	} else {
		from.order = rest
		to.order = insertAt(to.order, m.ToIndex, m.TaskID)
	}
	b.index[m.TaskID] = to.id
	b.version++
}

// clampIndex keeps the target inside the destination order. For a reorder
// the task is removed first, so the last valid slot is n-1.
func clampIndex(i, n int, cross bool) int {
	hi := n
	if !cross {
		hi = n - 1
	}
	if i > hi {
		i = hi
	}
	if i < 0 {
		i = 0
	}
	return i
}

func insertAt(s []string, i int, id string) []string {
	out := make([]string, 0, len(s)+1)
	out = append(out, s[:i]...)
	out = append(out, id)
	return append(out, s[i:]...)
}

func capacityWarning(c *column) string {
	if c.capacity == nil {
		return fmt.Sprintf("column %q is over its WIP limit", c.id)
	}
	return fmt.Sprintf("column %q is over its WIP limit (%d/%d)", c.id, len(c.order)+1, *c.capacity)
}

// FindColumnOf reports which column of the coordinated board holds the task.
func (c *Coordinator) FindColumnOf(taskID string) (string, bool) {
	return c.board.FindColumnOf(taskID)
}
