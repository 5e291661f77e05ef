// servs/s_fp/fp_serv/service.go
package fp_serv

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rskv-p/fpmine/constant"
	"github.com/rskv-p/fpmine/pkg/x_bus"
	"github.com/rskv-p/fpmine/pkg/x_cfg"
	"github.com/rskv-p/fpmine/pkg/x_data"
	"github.com/rskv-p/fpmine/pkg/x_db"
	"github.com/rskv-p/fpmine/pkg/x_fptree"
	"github.com/rskv-p/fpmine/pkg/x_log"
	recoverpkg "github.com/rskv-p/fpmine/recover"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nuid"
	"github.com/rs/zerolog"
)

//---------------------
// Job & Summary
//---------------------

// Job describes one mining run. Transactions win over File, File wins over
// Dataset.
type Job struct {
	RunID        string
	Dataset      string
	File         string
	Attributes   []string
	Transactions []x_fptree.Transaction
	MinSupport   int

	Tree    bool          // render the tree before mining
	Collect bool          // keep itemsets in the summary
	Store   bool          // persist the run when a store is attached
	Publish bool          // stream itemsets when a bus is attached
	Sink    x_fptree.Sink // extra sink, e.g. a websocket stream
}

// RunSummary is the outcome of Service.Run.
type RunSummary struct {
	RunID        string
	Dataset      string
	MinSupport   int
	Transactions int
	Result       x_fptree.Result
	Elapsed      time.Duration
	Tree         string
	Itemsets     []x_fptree.Itemset
	Stored       bool
	Subject      string
}

//---------------------
// Service
//---------------------

// Service runs mining jobs against the dataset catalog and the attached
// store and bus.
type Service struct {
	cfg     *x_cfg.Config
	catalog *x_data.Catalog
	store   *x_db.Store
	nc      *nats.Conn
	log     zerolog.Logger

	mu      sync.RWMutex
	metrics map[string]int64
	probes  []HealthProbe
}

// Option customises a Service.
type Option func(*Service)

// WithStore persists runs in s.
func WithStore(s *x_db.Store) Option {
	return func(svc *Service) { svc.store = s }
}

// WithBus publishes itemsets over nc.
func WithBus(nc *nats.Conn) Option {
	return func(svc *Service) { svc.nc = nc }
}

// New builds a service from cfg.
func New(cfg *x_cfg.Config, opts ...Option) (*Service, error) {
	if cfg == nil {
		cfg = x_cfg.Default()
	}
	catalog, err := x_data.NewCatalog(cfg.Datasets...)
	if err != nil {
		return nil, err
	}
	svc := &Service{
		cfg:     cfg,
		catalog: catalog,
		log:     x_log.New("fp_serv"),
		metrics: make(map[string]int64),
	}
	for _, o := range opts {
		o(svc)
	}
	return svc, nil
}

// Config returns the service configuration.
func (s *Service) Config() *x_cfg.Config { return s.cfg }

// Catalog returns the dataset catalog.
func (s *Service) Catalog() *x_data.Catalog { return s.catalog }

// Store returns the run store, or nil.
func (s *Service) Store() *x_db.Store { return s.store }

// Datasets lists the catalog.
func (s *Service) Datasets() []x_data.Dataset { return s.catalog.List() }

// NewRunID returns a fresh run identifier.
func NewRunID() string {
	return strings.ToLower(nuid.Next())
}

//---------------------
// Run
//---------------------

// Run loads the job input, builds the FP-tree, mines it into the
// configured sinks and records the outcome.
func (s *Service) Run(ctx context.Context, job Job) (*RunSummary, error) {
	if job.MinSupport < 1 {
		return nil, fmt.Errorf("%w: %d", constant.ErrInvalidSupport, job.MinSupport)
	}

	name, txs, err := s.load(job)
	if err != nil {
		return nil, err
	}

	sum := &RunSummary{
		RunID:        job.RunID,
		Dataset:      name,
		MinSupport:   job.MinSupport,
		Transactions: len(txs),
	}
	if sum.RunID == "" {
		sum.RunID = NewRunID()
	}
	log := s.log.With().Str("run", sum.RunID).Str("dataset", name).Logger()

	var (
		sinks     x_fptree.MultiSink
		collector *x_fptree.Collector
		batch     *x_db.Batch
		pub       *x_bus.Publisher
	)
	if job.Collect {
		collector = &x_fptree.Collector{}
		sinks = append(sinks, collector)
	}
	if job.Publish && s.nc != nil {
		pub, err = x_bus.NewPublisher(s.nc, s.cfg.Nats.Subject, sum.RunID)
		if err != nil {
			return nil, err
		}
		sinks = append(sinks, pub)
		sum.Subject = pub.Subject()
	}
	// the run row is created last so a failed setup never leaves it running
	if job.Store && s.store != nil {
		run := &x_db.Run{
			ID:           sum.RunID,
			Dataset:      name,
			MinSupport:   job.MinSupport,
			Transactions: len(txs),
		}
		if err := s.store.CreateRun(ctx, run); err != nil {
			if pub != nil {
				_ = pub.Fail(err)
			}
			return nil, err
		}
		batch = s.store.NewBatch(ctx, sum.RunID)
		sinks = append(sinks, batch)
		sum.Stored = true
	}
	if job.Sink != nil {
		sinks = append(sinks, recoverpkg.Sink("job", job.Sink))
	}

	s.IncMetric(MetricRunsStarted)
	log.Info().Int("transactions", len(txs)).Int("support", job.MinSupport).Msg("mining started")

	start := time.Now()
	tree := x_fptree.Build(txs, job.MinSupport)
	defer tree.Release()

	if job.Tree {
		var b strings.Builder
		tree.Dump(&b, x_data.CleanItem)
		sum.Tree = b.String()
	}

	var res x_fptree.Result
	mine := recoverpkg.WrapRecover("fp_serv", "mine", func(ctx context.Context) error {
		var err error
		res, err = x_fptree.Mine(ctx, tree, job.MinSupport, sinks)
		return err
	})
	mineErr := mine(ctx)
	sum.Result = res
	sum.Elapsed = time.Since(start)
	if collector != nil {
		sum.Itemsets = collector.Itemsets
	}

	if batch != nil && mineErr == nil {
		mineErr = batch.Flush()
	}
	s.finish(ctx, sum, batch, pub, mineErr)
	s.record(sum, mineErr)

	if mineErr != nil {
		log.Error().Err(mineErr).Uint64("itemsets", res.Itemsets).Msg("mining failed")
		return sum, mineErr
	}
	log.Info().
		Uint64("itemsets", res.Itemsets).
		Int("max_length", res.MaxLength).
		Int("conditional_trees", res.ConditionalTrees).
		Dur("elapsed", sum.Elapsed).
		Msg("mining finished")
	return sum, nil
}

// Load resolves the job input into its display name and transactions
// without mining.
func (s *Service) Load(job Job) (string, []x_fptree.Transaction, error) {
	return s.load(job)
}

// load resolves the job input.
func (s *Service) load(job Job) (string, []x_fptree.Transaction, error) {
	switch {
	case len(job.Transactions) > 0:
		name := job.Dataset
		if name == "" {
			name = "inline"
		}
		return name, job.Transactions, nil
	case job.File != "":
		txs, err := x_data.ReadFile(job.File, job.Attributes)
		if err != nil {
			return "", nil, err
		}
		if len(txs) == 0 {
			return "", nil, fmt.Errorf("%w: %s", constant.ErrEmptyDataset, job.File)
		}
		return job.File, txs, nil
	case job.Dataset != "":
		d, err := s.catalog.Lookup(job.Dataset)
		if err != nil {
			return "", nil, err
		}
		txs, err := x_data.Load(s.cfg.DataDir, d)
		if err != nil {
			return "", nil, err
		}
		return d.Name, txs, nil
	default:
		return "", nil, constant.ErrNoInput
	}
}

// finish records the outcome in the store and on the bus. Failures here
// are logged; the mining result stands.
func (s *Service) finish(ctx context.Context, sum *RunSummary, batch *x_db.Batch, pub *x_bus.Publisher, mineErr error) {
	if batch != nil {
		// a cancelled request context must not prevent the final status write
		fctx := context.WithoutCancel(ctx)
		if err := s.store.FinishRun(fctx, sum.RunID, sum.Result, sum.Elapsed, mineErr); err != nil {
			s.log.Error().Err(err).Str("run", sum.RunID).Msg("failed to record run")
		}
	}
	if pub != nil {
		var err error
		if mineErr != nil {
			err = pub.Fail(mineErr)
		} else {
			err = pub.Done()
		}
		if err != nil {
			s.log.Error().Err(err).Str("run", sum.RunID).Msg("failed to publish run end")
		}
	}
}

//---------------------
// Stored runs
//---------------------

// Runs lists stored runs, latest first.
func (s *Service) Runs(ctx context.Context, limit int) ([]x_db.Run, error) {
	if s.store == nil {
		return nil, constant.ErrStoreDisabled
	}
	return s.store.ListRuns(ctx, limit)
}

// GetRun loads one stored run.
func (s *Service) GetRun(ctx context.Context, id string) (*x_db.Run, error) {
	if s.store == nil {
		return nil, constant.ErrStoreDisabled
	}
	return s.store.GetRun(ctx, id)
}

// RunItemsets loads the itemsets of a stored run.
func (s *Service) RunItemsets(ctx context.Context, id string, minSize int) ([]x_db.ItemsetRow, error) {
	if s.store == nil {
		return nil, constant.ErrStoreDisabled
	}
	return s.store.RunItemsets(ctx, id, minSize)
}

// IsClientError reports whether err stems from bad input.
func IsClientError(err error) bool {
	for _, e := range []error{
		constant.ErrBadRequest,
		constant.ErrInvalidSupport,
		constant.ErrNoInput,
		constant.ErrUnknownDataset,
		constant.ErrEmptyDataset,
	} {
		if errors.Is(err, e) {
			return true
		}
	}
	return false
}
