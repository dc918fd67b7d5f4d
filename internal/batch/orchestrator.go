package batch

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"fieldlens/internal/logging"
	"fieldlens/internal/vision"
)

// Classifier is the remote-model surface the orchestrator needs. The
// concrete implementation is *vision.Client; tests substitute fakes.
type Classifier interface {
	CheckDamage(ctx context.Context, imageURI string) (vision.DamageVerdict, error)
	ReviewGroup(ctx context.Context, imageURIs []string) (vision.Verdict, error)
}

// Summary tallies a finished run.
type Summary struct {
	Discovered int
	Skipped    int
	Processed  int
	Issues     int
	Failed     int
}

// Orchestrator dispatches classification work under a bounded worker pool.
type Orchestrator struct {
	classifier    Classifier
	logger        *slog.Logger
	workers       int
	maxImageBytes int64
}

// Options tune a new Orchestrator.
type Options struct {
	// Workers caps concurrent in-flight remote calls. Defaults to 5.
	Workers int
	// MaxImageBytes caps the raw size of submitted photos. Zero applies
	// the media package default.
	MaxImageBytes int64
}

// New constructs an orchestrator around classifier.
func New(classifier Classifier, logger *slog.Logger, opts Options) *Orchestrator {
	workers := opts.Workers
	if workers <= 0 {
		workers = 5
	}
	return &Orchestrator{
		classifier:    classifier,
		logger:        logging.NewComponentLogger(logger, "batch"),
		workers:       workers,
		maxImageBytes: opts.MaxImageBytes,
	}
}

// runLogger derives a logger carrying a fresh run ID.
func (o *Orchestrator) runLogger(pipeline string) *slog.Logger {
	return o.logger.With(
		logging.String("pipeline", pipeline),
		logging.String("run_id", uuid.NewString()),
	)
}

// runPool feeds units to a fixed pool of workers and blocks until every
// unit reached a terminal state. Worker count never exceeds o.workers, so
// at most that many remote calls are in flight.
func runPool[T any](ctx context.Context, workers int, units []T, handle func(context.Context, T)) {
	queue := make(chan T)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for unit := range queue {
				handle(ctx, unit)
			}
		}()
	}
	for _, unit := range units {
		select {
		case <-ctx.Done():
			close(queue)
			wg.Wait()
			return
		case queue <- unit:
		}
	}
	close(queue)
	wg.Wait()
}

// tally accumulates summary counters from concurrent workers.
type tally struct {
	mu      sync.Mutex
	summary Summary
}

func (t *tally) add(mutate func(*Summary)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	mutate(&t.summary)
}

func (t *tally) snapshot() Summary {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.summary
}
