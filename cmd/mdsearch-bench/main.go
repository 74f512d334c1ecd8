// Command mdsearch-bench runs correctness and timing sweeps over every
// index structure, either on a dataset file or on randomly generated
// points.
package main

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/kelseyhightower/envconfig"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/stat"

	"github.com/DonaldWhyte/mdsearch/core"
	"github.com/DonaldWhyte/mdsearch/dataset"
	"github.com/DonaldWhyte/mdsearch/index"
	"github.com/DonaldWhyte/mdsearch/index/bithash"
	"github.com/DonaldWhyte/mdsearch/index/bucketkd"
	"github.com/DonaldWhyte/mdsearch/index/kdtree"
	"github.com/DonaldWhyte/mdsearch/index/multigrid"
	"github.com/DonaldWhyte/mdsearch/index/pyramid"
	"github.com/DonaldWhyte/mdsearch/timing"
)

// Config is read from the environment.
type Config struct {
	// NumPoints is the size of the generated dataset. Ignored when a
	// dataset file is given.
	NumPoints int `envconfig:"MDSEARCH_NUM_POINTS" default:"100000"`

	// NumDimensions is the dimensionality of generated points.
	NumDimensions int `envconfig:"MDSEARCH_NUM_DIMENSIONS" default:"10"`

	// Seed for the point generator; 0 derives a seed from the clock.
	Seed int64 `envconfig:"MDSEARCH_SEED" default:"0"`

	// DatasetFile optionally names a dataset text file (.zst, .gz and
	// .lz4 are decompressed transparently).
	DatasetFile string `envconfig:"MDSEARCH_DATASET_FILE"`

	// MaxExecutionTime bounds each timed operation sweep, in seconds.
	MaxExecutionTime float64 `envconfig:"MDSEARCH_MAX_EXECUTION_TIME" default:"1800"`

	// OpsBetweenChecks is the number of operations between checks of
	// the execution time bound.
	OpsBetweenChecks int `envconfig:"MDSEARCH_OPS_BETWEEN_CHECKS" default:"300"`
}

func main() {
	logger := zap.Must(zap.NewProduction())
	defer logger.Sync() // nolint errcheck

	if err := run(logger.Sugar()); err != nil {
		logger.Sugar().Fatalw("bench failed", "error", err)
	}
}

func run(logger *zap.SugaredLogger) error {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return fmt.Errorf("error loading environment variables: %w", err)
	}
	if cfg.OpsBetweenChecks < 1 {
		cfg.OpsBetweenChecks = 1
	}

	ds, err := buildDataset(logger, cfg)
	if err != nil {
		return err
	}
	if ds.Len() == 0 {
		return fmt.Errorf("dataset is empty")
	}

	boundary := ds.ComputeBoundary()
	logger.Infow("dataset ready",
		"points", ds.Len(),
		"dimensions", ds.Dims(),
		"boundary", boundary.String(),
	)

	points := ds.Points()
	for _, s := range structuresUnderTest(boundary) {
		if ok := testStructure(logger, s.name, s.makeIndex(), points); !ok {
			logger.Errorw("correctness tests failed", "structure", s.name)
		}
	}

	var results []opResult
	for _, s := range structuresUnderTest(boundary) {
		results = append(results, timeStructure(logger, cfg, s.name, s.makeIndex(), points)...)
	}
	return report(results)
}

func buildDataset(logger *zap.SugaredLogger, cfg Config) (*dataset.Dataset[float32], error) {
	if cfg.DatasetFile != "" {
		logger.Infow("loading dataset", "file", cfg.DatasetFile)
		return dataset.LoadFile[float32](cfg.DatasetFile)
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	logger.Infow("generating dataset",
		"points", cfg.NumPoints,
		"dimensions", cfg.NumDimensions,
		"seed", seed,
	)

	ds := dataset.New[float32](cfg.NumDimensions)
	rng := dataset.NewRNG(seed)
	ds.Load(dataset.RandomPoints[float32](rng, cfg.NumPoints, cfg.NumDimensions, 0, 1))
	return ds, nil
}

type structureUnderTest struct {
	name      string
	makeIndex func() index.Index[float32]
}

func structuresUnderTest(boundary core.Boundary[float32]) []structureUnderTest {
	return []structureUnderTest{
		{"kd-tree", func() index.Index[float32] { return kdtree.New[float32]() }},
		{"bucket-kd-tree", func() index.Index[float32] { return bucketkd.New[float32]() }},
		{"multigrid", func() index.Index[float32] { return multigrid.New(boundary) }},
		{"bithash", func() index.Index[float32] { return bithash.New[float32]() }},
		{"pyramid-tree", func() index.Index[float32] { return pyramid.New(boundary) }},
	}
}

// testStructure runs the correctness sweeps: an empty structure answers
// no query, every inserted point is found, and every removal empties
// its slot. The dataset may contain duplicates, so insert results are
// not checked.
func testStructure(logger *zap.SugaredLogger, name string, s index.Index[float32], points []core.Point[float32]) bool {
	logger.Infow("testing structure", "structure", name)

	for i, p := range points {
		if s.Query(p) {
			logger.Errorw("false positive query on empty structure",
				"structure", name, "point", p.String(), "index", i)
			return false
		}
	}
	for _, p := range points {
		s.Insert(p)
	}
	for i, p := range points {
		if !s.Query(p) {
			logger.Errorw("failed query",
				"structure", name, "point", p.String(), "index", i)
			return false
		}
	}
	for i, p := range points {
		if !s.Remove(p) {
			// Duplicate points were stored once and removed on their
			// first occurrence.
			if s.Query(p) {
				logger.Errorw("failed removal",
					"structure", name, "point", p.String(), "index", i)
				return false
			}
			continue
		}
		if s.Query(p) {
			logger.Errorw("removal left point behind",
				"structure", name, "point", p.String(), "index", i)
			return false
		}
	}

	logger.Infow("structure passed", "structure", name)
	return true
}

type opResult struct {
	structure string
	op        string
	latencies []float64
	total     float64
	executed  int
}

// timeStructure times insert, query and remove sweeps over the dataset,
// aborting an operation sweep once it exceeds the configured bound.
func timeStructure(logger *zap.SugaredLogger, cfg Config, name string, s index.Index[float32], points []core.Point[float32]) []opResult {
	logger.Infow("timing structure", "structure", name)

	ops := []struct {
		op string
		fn func(p core.Point[float32]) bool
	}{
		{"insert", s.Insert},
		{"query", s.Query},
		{"remove", s.Remove},
	}

	results := make([]opResult, 0, len(ops))
	for _, o := range ops {
		r := opResult{
			structure: name,
			op:        o.op,
			latencies: make([]float64, 0, len(points)),
		}
		start := timing.Now()
		for i, p := range points {
			opStart := timing.Now()
			o.fn(p)
			r.latencies = append(r.latencies, timing.Now()-opStart)
			r.executed++

			if i%cfg.OpsBetweenChecks == 0 && timing.Now()-start > cfg.MaxExecutionTime {
				logger.Warnw("aborted operation sweep",
					"structure", name, "op", o.op, "executed", r.executed)
				break
			}
		}
		r.total = timing.Now() - start
		logger.Infow("operation sweep finished",
			"structure", name, "op", o.op,
			"executed", r.executed, "seconds", r.total)
		results = append(results, r)
	}
	return results
}

// report prints latency summaries for every operation sweep.
func report(results []opResult) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "STRUCTURE\tOP\tOPS\tTOTAL(s)\tMEAN(µs)\tSTDDEV(µs)\tP50(µs)\tP99(µs)")

	for _, r := range results {
		if len(r.latencies) == 0 {
			continue
		}
		mean, std := stat.MeanStdDev(r.latencies, nil)
		sorted := append([]float64(nil), r.latencies...)
		sort.Float64s(sorted)
		p50 := stat.Quantile(0.5, stat.Empirical, sorted, nil)
		p99 := stat.Quantile(0.99, stat.Empirical, sorted, nil)

		fmt.Fprintf(w, "%s\t%s\t%d\t%.3f\t%.3f\t%.3f\t%.3f\t%.3f\n",
			r.structure, r.op, r.executed, r.total,
			mean*1e6, std*1e6, p50*1e6, p99*1e6)
	}
	return w.Flush()
}
