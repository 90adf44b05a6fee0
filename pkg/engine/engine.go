// Package engine runs the sort stage of a query: it applies ordering
// directives to rows, owns the random source used by shuffle, and reports
// logs and metrics for every sort.
package engine

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/grafana/sortorder/pkg/engine/executor"
	"github.com/grafana/sortorder/pkg/order"
)

// ErrTooManyRows is returned when a sort receives more rows than the
// configured limit.
var ErrTooManyRows = errors.New("too many rows to sort")

// SortKey is a sort key whose directive may be left unset, in which case the
// engine's default order applies.
type SortKey struct {
	Key   executor.KeyFunc
	Order *order.Order
}

// By returns a SortKey using the directive o.
func By(key executor.KeyFunc, o order.Order) SortKey {
	return SortKey{Key: key, Order: &o}
}

// ByDefault returns a SortKey using the engine's default order.
func ByDefault(key executor.KeyFunc) SortKey {
	return SortKey{Key: key}
}

// Params holds parameters for constructing a new [Engine].
type Params struct {
	Logger     log.Logger            // Logger for optional log messages.
	Registerer prometheus.Registerer // Registerer for optional metrics.

	Config Config // Config for the Engine.
}

// validate validates p and applies defaults.
func (p *Params) validate() error {
	if p.Logger == nil {
		p.Logger = log.NewNopLogger()
	}
	if p.Registerer == nil {
		p.Registerer = prometheus.NewRegistry()
	}
	return p.Config.Validate()
}

// Engine sorts rows according to ordering directives. An Engine is safe for
// concurrent use.
type Engine struct {
	logger  log.Logger
	metrics *metrics
	cfg     Config

	rndMtx sync.Mutex
	rnd    *rand.Rand
}

// New creates a new Engine.
func New(params Params) (*Engine, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}

	seed := params.Config.ShuffleSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	e := &Engine{
		logger:  params.Logger,
		metrics: newMetrics(),
		cfg:     params.Config,
		rnd:     rand.New(rand.NewSource(seed)),
	}
	if err := e.metrics.register(params.Registerer); err != nil {
		return nil, err
	}
	return e, nil
}

// Shuffle implements [executor.Shuffler] over the engine's random source.
func (e *Engine) Shuffle(n int, swap func(i, j int)) {
	e.rndMtx.Lock()
	defer e.rndMtx.Unlock()
	e.rnd.Shuffle(n, swap)
}

// Sort sorts rows in place by keys. Without keys, rows are sorted by their
// own value using the default order.
func (e *Engine) Sort(ctx context.Context, rows []any, keys ...SortKey) error {
	resolved := e.resolve(keys)
	start := time.Now()

	err := e.checkRows(rows)
	if err == nil {
		err = executor.Sort(ctx, rows, resolved, e)
	}

	e.report("sort", resolved, len(rows), start, err)
	return err
}

// TopK returns the first k rows that [Engine.Sort] would produce, without
// modifying rows.
func (e *Engine) TopK(ctx context.Context, rows []any, k int, keys ...SortKey) ([]any, error) {
	resolved := e.resolve(keys)
	start := time.Now()

	var out []any
	err := e.checkRows(rows)
	if err == nil {
		out, err = executor.TopK(ctx, rows, k, resolved, e)
	}

	e.report("topk", resolved, len(rows), start, err, "k", k)
	return out, err
}

func (e *Engine) checkRows(rows []any) error {
	if e.cfg.MaxRows > 0 && len(rows) > e.cfg.MaxRows {
		return errors.Wrapf(ErrTooManyRows, "got %d rows, limit is %d", len(rows), e.cfg.MaxRows)
	}
	return nil
}

func (e *Engine) resolve(keys []SortKey) []executor.SortKey {
	if len(keys) == 0 {
		return []executor.SortKey{{Key: executor.Identity, Order: e.cfg.DefaultOrder}}
	}

	resolved := make([]executor.SortKey, len(keys))
	for i, k := range keys {
		o := e.cfg.DefaultOrder
		if k.Order != nil {
			o = *k.Order
		}
		resolved[i] = executor.SortKey{Key: k.Key, Order: o}
	}
	return resolved
}

func (e *Engine) report(op string, keys []executor.SortKey, rows int, start time.Time, err error, extra ...any) {
	duration := time.Since(start)
	directive := keys[0].Order.String()

	logger := log.With(e.logger, "op", op, "directive", directive, "keys", len(keys), "rows", rows, "duration", duration)
	logger = log.With(logger, extra...)

	if err != nil {
		e.metrics.observe(directive, statusFailure, rows, duration.Seconds())
		level.Warn(logger).Log("msg", "sort failed", "err", err)
		return
	}
	e.metrics.observe(directive, statusSuccess, rows, duration.Seconds())
	level.Debug(logger).Log("msg", "sort finished")
}
