package main

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kingpin/v2"
	"github.com/go-kit/log/level"
	dslog "github.com/grafana/dskit/log"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/grafana/sortorder/pkg/engine"
	"github.com/grafana/sortorder/pkg/engine/executor"
	"github.com/grafana/sortorder/pkg/order"
	"github.com/grafana/sortorder/pkg/util/flagext"
	util_log "github.com/grafana/sortorder/pkg/util/log"
)

// json decodes numbers as json.Number so they are compared exactly, and
// writes map keys in sorted order.
var json = jsoniter.Config{
	UseNumber:              true,
	SortMapKeys:            true,
	EscapeHTML:             false,
	ValidateJsonRawMessage: true,
}.Froze()

// Config is the configuration file format.
type Config struct {
	Sort engine.Config `yaml:"sort"`
}

type options struct {
	configFiles flagext.ConfigFiles
	order       string
	by          []string
	limit       int
	seed        int64
	input       string
	logLevel    dslog.Level
}

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "sortorder: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	var opts options

	app := kingpin.New("sortorder", "Sort JSON documents with ordering directives.")
	app.Writer(stderr)
	app.Flag("config.file", "YAML configuration file. Repeatable; later files override earlier ones.").SetValue(&opts.configFiles)
	app.Flag("order", "Directive applied to sort keys without one: asc, desc or shuffle. Overrides the configuration file.").StringVar(&opts.order)
	app.Flag("by", "Dot-separated field path to sort by, optionally suffixed with :asc, :desc or :shuffle. Repeatable; earlier keys take precedence.").StringsVar(&opts.by)
	app.Flag("limit", "Only output the first N documents. 0 outputs all.").Default("0").IntVar(&opts.limit)
	app.Flag("seed", "Seed for the shuffle directive. Overrides the configuration file.").Int64Var(&opts.seed)
	app.Flag("log.level", "Only log messages with the given severity or above. Valid levels: [debug, info, warn, error]").Default("info").SetValue(&opts.logLevel)
	app.Arg("file", "Input file holding a JSON array or newline-delimited JSON documents. Reads stdin when omitted.").StringVar(&opts.input)

	if _, err := app.Parse(args); err != nil {
		return err
	}

	logger := util_log.NewLogger(stderr, opts.logLevel)

	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	keys, err := parseKeys(opts.by)
	if err != nil {
		return err
	}

	e, err := engine.New(engine.Params{
		Logger:     logger,
		Registerer: prometheus.NewRegistry(),
		Config:     cfg.Sort,
	})
	if err != nil {
		return err
	}

	in := stdin
	if opts.input != "" {
		f, err := os.Open(opts.input)
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}

	rows, err := readDocuments(in)
	if err != nil {
		return err
	}
	level.Debug(logger).Log("msg", "read documents", "count", len(rows))

	if opts.limit > 0 {
		rows, err = e.TopK(ctx, rows, opts.limit, keys...)
	} else {
		err = e.Sort(ctx, rows, keys...)
	}
	if err != nil {
		return err
	}

	return writeDocuments(stdout, rows)
}

// loadConfig builds the engine configuration from defaults, the optional
// configuration files and the command line, in increasing precedence.
func loadConfig(opts options) (Config, error) {
	var cfg Config
	cfg.Sort.DefaultOrder = order.Asc

	if err := opts.configFiles.Load(&cfg); err != nil {
		return cfg, err
	}

	if opts.order != "" {
		o, err := order.Parse(opts.order)
		if err != nil {
			return cfg, err
		}
		cfg.Sort.DefaultOrder = o
	}
	if opts.seed != 0 {
		cfg.Sort.ShuffleSeed = opts.seed
	}

	return cfg, cfg.Sort.Validate()
}

// parseKeys parses --by values of the form path[:directive].
func parseKeys(args []string) ([]engine.SortKey, error) {
	keys := make([]engine.SortKey, 0, len(args))
	for _, arg := range args {
		path, dir, hasDir := strings.Cut(arg, ":")
		if path == "" {
			return nil, errors.Errorf("invalid sort key %q: empty field path", arg)
		}
		field := executor.Field(strings.Split(path, ".")...)

		if !hasDir {
			keys = append(keys, engine.ByDefault(field))
			continue
		}
		o, err := order.Parse(dir)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid sort key %q", arg)
		}
		keys = append(keys, engine.By(field, o))
	}
	return keys, nil
}

// readDocuments reads a JSON array of documents, or a stream of whitespace
// separated documents.
func readDocuments(r io.Reader) ([]any, error) {
	buf, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	trimmed := bytes.TrimSpace(buf)
	if len(trimmed) == 0 {
		return []any{}, nil
	}
	if trimmed[0] == '[' {
		var rows []any
		if err := json.Unmarshal(trimmed, &rows); err != nil {
			return nil, errors.Wrap(err, "decoding JSON array")
		}
		return rows, nil
	}

	var rows []any
	dec := json.NewDecoder(bytes.NewReader(trimmed))
	for dec.More() {
		var row any
		if err := dec.Decode(&row); err != nil {
			return nil, errors.Wrapf(err, "decoding document %d", len(rows)+1)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func writeDocuments(w io.Writer, rows []any) error {
	bw := bufio.NewWriter(w)
	for _, row := range rows {
		buf, err := json.Marshal(row)
		if err != nil {
			return err
		}
		bw.Write(buf)
		bw.WriteByte('\n')
	}
	return bw.Flush()
}
