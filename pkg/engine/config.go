package engine

import (
	"flag"

	"github.com/pkg/errors"

	"github.com/grafana/sortorder/pkg/order"
)

// Config configures the sort stage.
type Config struct {
	// DefaultOrder is applied to sort keys that do not carry a directive of
	// their own.
	DefaultOrder order.Order `yaml:"default_order"`

	// ShuffleSeed seeds the random source used for shuffle directives. Zero
	// seeds from the current time.
	ShuffleSeed int64 `yaml:"shuffle_seed"`

	// MaxRows limits the number of rows a single sort accepts. Zero means no
	// limit.
	MaxRows int `yaml:"max_rows"`
}

// RegisterFlags registers the sort stage flags.
func (cfg *Config) RegisterFlags(f *flag.FlagSet) {
	cfg.RegisterFlagsWithPrefix("sort.", f)
}

// RegisterFlagsWithPrefix registers the sort stage flags with a prefix.
func (cfg *Config) RegisterFlagsWithPrefix(prefix string, f *flag.FlagSet) {
	cfg.DefaultOrder = order.Asc
	f.Var(&cfg.DefaultOrder, prefix+"default-order", "Directive for sort keys without an explicit one. Supported values: asc, desc, shuffle.")
	f.Int64Var(&cfg.ShuffleSeed, prefix+"shuffle-seed", 0, "Seed of the random source used by the shuffle directive. 0 seeds from the current time.")
	f.IntVar(&cfg.MaxRows, prefix+"max-rows", 0, "Maximum number of rows accepted by a single sort. 0 to disable.")
}

// Validate validates the sort stage settings.
func (cfg *Config) Validate() error {
	if !cfg.DefaultOrder.Valid() {
		return errors.Wrapf(order.ErrUnknownOrder, "invalid default order %s", cfg.DefaultOrder)
	}
	if cfg.MaxRows < 0 {
		return errors.Errorf("invalid max rows %d: must not be negative", cfg.MaxRows)
	}
	return nil
}
