package batch

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"datforge/core/catalog"
	"datforge/core/hashes"
	"datforge/core/item"
	"datforge/core/logger"
	"datforge/core/utils"
	"datforge/feature/dialect"
)

// Digests is what the external hasher reports for one file.
type Digests struct {
	Size   int64
	Hashes map[hashes.Kind]string
}

// HashProvider computes digests over file bytes. The catalog core never
// hashes raw content itself.
type HashProvider interface {
	Digests(ctx context.Context, path string) (Digests, error)
}

// FileEnumerator yields file paths under a root, relative to it.
type FileEnumerator interface {
	Enumerate(ctx context.Context, root string) ([]string, error)
}

// Sink accepts a finished catalog for serialization.
type Sink interface {
	Flush(ctx context.Context, c *catalog.Catalog) error
}

// Result reports one input file's outcome.
type Result struct {
	Path   string
	Format dialect.Format
	Items  int
	Err    error
}

// Report is the outcome of a whole run.
type Report struct {
	RunID   string
	Results []Result
	Merged  *catalog.Catalog
}

// Err aggregates the per-file failures, or nil when every file parsed.
func (r *Report) Err() error {
	var errs []error
	for _, res := range r.Results {
		if res.Err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", res.Path, res.Err))
		}
	}
	return multierr.Combine(errs...)
}

// Config tunes a batch service.
type Config struct {
	// Workers caps the number of files parsed at once. Zero means one
	// worker per file.
	Workers int
	// Catalog sets the bucketing options for the merged catalog.
	Catalog catalog.Options
	// Dialect is the base per-parse options; Source is stamped per file.
	Dialect dialect.Options
}

// Service parses batches of DAT files into one merged catalog.
type Service struct {
	cfg Config
	log *zap.Logger
}

// NewService returns a batch service logging through the given logger.
func NewService(cfg Config, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{cfg: cfg, log: log}
}

// Run parses every input on its own worker, merges the per-file
// catalogs in input order, and hands the merged catalog to the sink
// when one is set. Files that fail to open or parse are reported in the
// Results and skipped from the merge.
func (s *Service) Run(ctx context.Context, inputs []string, sink Sink) (*Report, error) {
	runID := uuid.NewString()
	log := logger.WithRun(s.log, runID)
	log.Info("batch run starting", zap.Int("inputs", len(inputs)))

	results := make([]Result, len(inputs))
	parts := make([]*catalog.Catalog, len(inputs))

	g, gctx := errgroup.WithContext(ctx)
	if s.cfg.Workers > 0 {
		g.SetLimit(s.cfg.Workers)
	}
	for i, in := range inputs {
		i, in := i, in
		g.Go(func() error {
			c := catalog.New(s.cfg.Catalog)
			res := s.parseFile(gctx, in, i, c)
			results[i] = res
			if res.Err == nil {
				parts[i] = c
			} else {
				log.Warn("input failed",
					zap.String("path", in),
					zap.Error(res.Err))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	merged := catalog.New(s.cfg.Catalog)
	for _, part := range parts {
		if part == nil {
			continue
		}
		merged.Header.Merge(part.Header)
		part.Each(func(_ string, it item.Item) {
			merged.Insert(it)
		})
	}

	report := &Report{RunID: runID, Results: results, Merged: merged}
	log.Info("batch run finished",
		zap.Int("items", merged.Len()),
		zap.Int("machines", merged.MachineCount()))

	if sink != nil {
		if err := sink.Flush(ctx, merged); err != nil {
			return report, fmt.Errorf("flush merged catalog: %w", err)
		}
	}
	return report, nil
}

func (s *Service) parseFile(ctx context.Context, path string, index int, c *catalog.Catalog) Result {
	res := Result{Path: path}

	f, err := os.Open(path)
	if err != nil {
		res.Err = fmt.Errorf("open input: %w", err)
		return res
	}
	defer f.Close()

	br := bufio.NewReader(f)
	sample, err := br.Peek(512)
	if err != nil && err != io.EOF {
		res.Err = fmt.Errorf("read input: %w", err)
		return res
	}
	format, err := dialect.Detect(sample)
	if err != nil {
		res.Err = err
		return res
	}
	res.Format = format

	opts := s.cfg.Dialect
	opts.Logger = s.log
	opts.Source = item.Source{Index: index, Name: path}
	p, err := dialect.NewParser(format, opts)
	if err != nil {
		res.Err = err
		return res
	}
	res.Items, res.Err = p.Parse(ctx, br, c)
	return res
}

// Scan builds a catalog from a directory tree through the external
// collaborators: one Rom per enumerated file, digests from the hash
// provider, machine named after the file's top directory segment. Files
// the provider cannot digest are skipped and their errors aggregated.
func (s *Service) Scan(ctx context.Context, root string, enum FileEnumerator, hp HashProvider) (*catalog.Catalog, error) {
	paths, err := enum.Enumerate(ctx, root)
	if err != nil {
		return nil, fmt.Errorf("enumerate %s: %w", root, err)
	}

	c := catalog.New(s.cfg.Catalog)
	c.Header.Name = filepath.Base(root)
	c.Header.Description = filepath.Base(root)

	var errs error
	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return c, err
		}
		d, err := hp.Digests(ctx, filepath.Join(root, p))
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", p, err))
			continue
		}

		rel := filepath.ToSlash(p)
		machine := filepath.Base(root)
		if dir := path.Dir(rel); dir != "." {
			machine = strings.SplitN(dir, "/", 2)[0]
		}

		rom := item.NewRom(path.Base(rel))
		rom.Size = d.Size
		if d.Size < 0 {
			rom.Size = utils.SizeUnknown
		}
		for k, v := range d.Hashes {
			rom.SetHash(k, v)
		}
		rom.SetMachine(&item.Machine{Name: machine})
		rom.SetSource(s.cfg.Dialect.Source)
		c.Insert(rom)
	}
	return c, errs
}
