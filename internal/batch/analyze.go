package batch

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"fieldlens/internal/logging"
	"fieldlens/internal/media"
	"fieldlens/internal/naming"
	"fieldlens/internal/results"
)

// AnalyzeSpec configures an issue-analysis run.
type AnalyzeSpec struct {
	SourceDirs []string
	Store      *results.Store
}

// RunAnalyze groups photos of the same subject, submits each group to the
// model, and appends one record per group to the store. Groups already
// recorded are skipped, so a rerun only pays for new subjects.
func (o *Orchestrator) RunAnalyze(ctx context.Context, spec AnalyzeSpec) (Summary, error) {
	logger := o.runLogger("analyze")

	existing, err := spec.Store.Load()
	if err != nil {
		if !errors.Is(err, results.ErrCorrupt) {
			return Summary{}, err
		}
		// Preserve the damaged file for inspection and start over rather
		// than refusing to run.
		quarantined, qerr := spec.Store.QuarantineCorrupt()
		if qerr != nil {
			return Summary{}, qerr
		}
		logger.Warn("results file was unreadable, quarantined and starting fresh",
			logging.String("quarantined_as", quarantined),
			logging.Error(err),
		)
		existing = nil
	}
	known := results.GroupKeys(existing)

	images, err := media.Discover(spec.SourceDirs)
	if err != nil {
		return Summary{}, err
	}
	groups := media.GroupImages(images)
	logger.Info("scan complete",
		logging.Int("photos", len(images)),
		logging.Int("groups", len(groups)),
		logging.Int("recorded", len(existing)),
	)

	counts := &tally{}
	counts.add(func(s *Summary) { s.Discovered = len(groups) })

	pending := make([]media.PhotoGroup, 0, len(groups))
	for _, group := range groups {
		if _, ok := known[group.Key]; ok {
			logger.Debug("skipping group", logging.String("group", group.Label))
			counts.add(func(s *Summary) { s.Skipped++ })
			continue
		}
		pending = append(pending, group)
	}

	runPool(ctx, o.workers, pending, func(ctx context.Context, group media.PhotoGroup) {
		o.analyzeGroup(ctx, logger, spec.Store, group, counts)
	})

	summary := counts.snapshot()
	logger.Info("analysis run finished",
		logging.Int("processed", summary.Processed),
		logging.Int("issues", summary.Issues),
		logging.Int("skipped", summary.Skipped),
		logging.Int("failed", summary.Failed),
	)
	return summary, nil
}

func (o *Orchestrator) analyzeGroup(ctx context.Context, logger *slog.Logger, store *results.Store, group media.PhotoGroup, counts *tally) {
	uris := make([]string, 0, len(group.Images))
	for _, img := range group.Images {
		uri, err := media.EncodeDataURI(img.Path, o.maxImageBytes)
		if err != nil {
			logger.Error("encode failed, group dropped for this run",
				logging.String("group", group.Label),
				logging.String("file", img.Filename),
				logging.Error(err),
			)
			counts.add(func(s *Summary) { s.Failed++ })
			return
		}
		uris = append(uris, uri)
	}

	verdict, err := o.classifier.ReviewGroup(ctx, uris)
	if err != nil {
		logger.Error("classification failed, group dropped for this run",
			logging.String("group", group.Label),
			logging.Error(err),
		)
		counts.add(func(s *Summary) { s.Failed++ })
		return
	}

	lead := group.Images[0]
	record := results.Record{
		Folder:     lead.Folder,
		Filename:   lead.Filename,
		GroupName:  group.Label,
		PhotoPaths: group.Paths(),
		Analysis: results.Analysis{
			HasIssues:       verdict.HasIssues,
			Description:     verdict.Description,
			Severity:        verdict.Severity,
			ChangesOverTime: verdict.ChangesOverTime,
		},
		TaskDerived: naming.DisplayTitle(group.Label),
		AnalyzedAt:  time.Now().UTC(),
	}
	if err := store.Append(record); err != nil {
		logger.Error("store append failed",
			logging.String("group", group.Label),
			logging.Error(err),
		)
		counts.add(func(s *Summary) { s.Failed++ })
		return
	}

	if verdict.HasIssues {
		logger.Info("issues found",
			logging.String("group", group.Label),
			logging.String("severity", verdict.Severity),
		)
	} else {
		logger.Info("no issues", logging.String("group", group.Label))
	}

	counts.add(func(s *Summary) {
		s.Processed++
		if verdict.HasIssues {
			s.Issues++
		}
	})
}
