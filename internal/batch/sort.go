package batch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"fieldlens/internal/fileutil"
	"fieldlens/internal/logging"
	"fieldlens/internal/media"
)

// SortSpec configures a damage-sorting run.
type SortSpec struct {
	SourceDirs []string
	DamagedDir string
	CleanDir   string
}

// RunSort classifies every photo under the source folders as damaged or
// clean and copies it into the matching destination. Photos whose filename
// already exists in either destination are skipped, which makes an
// interrupted run resumable at file granularity. Sources are only read.
func (o *Orchestrator) RunSort(ctx context.Context, spec SortSpec) (Summary, error) {
	logger := o.runLogger("sort")

	for _, dir := range []string{spec.DamagedDir, spec.CleanDir} {
		if err := fileutil.EnsureDir(dir); err != nil {
			return Summary{}, fmt.Errorf("create destination %q: %w", dir, err)
		}
	}

	images, err := media.Discover(spec.SourceDirs)
	if err != nil {
		return Summary{}, err
	}
	logger.Info("scan complete",
		logging.Int("photos", len(images)),
		logging.Int("folders", len(spec.SourceDirs)),
	)

	counts := &tally{}
	counts.add(func(s *Summary) { s.Discovered = len(images) })

	// The skip check keys on filename only: a photo already present in
	// either destination is never re-submitted. Same-named files from
	// different source folders are indistinguishable here.
	pending := make([]media.SourceImage, 0, len(images))
	for _, img := range images {
		if dest, ok := o.alreadySorted(spec, img.Filename); ok {
			logger.Debug("skipping photo",
				logging.String("file", img.Filename),
				logging.String("already_in", dest),
			)
			counts.add(func(s *Summary) { s.Skipped++ })
			continue
		}
		pending = append(pending, img)
	}

	runPool(ctx, o.workers, pending, func(ctx context.Context, img media.SourceImage) {
		o.sortOne(ctx, logger, spec, img, counts)
	})

	summary := counts.snapshot()
	logger.Info("sort run finished",
		logging.Int("processed", summary.Processed),
		logging.Int("damaged", summary.Issues),
		logging.Int("skipped", summary.Skipped),
		logging.Int("failed", summary.Failed),
	)
	return summary, nil
}

func (o *Orchestrator) alreadySorted(spec SortSpec, filename string) (string, bool) {
	if fileutil.Exists(filepath.Join(spec.DamagedDir, filename)) {
		return spec.DamagedDir, true
	}
	if fileutil.Exists(filepath.Join(spec.CleanDir, filename)) {
		return spec.CleanDir, true
	}
	return "", false
}

func (o *Orchestrator) sortOne(ctx context.Context, logger *slog.Logger, spec SortSpec, img media.SourceImage, counts *tally) {
	uri, err := media.EncodeDataURI(img.Path, o.maxImageBytes)
	if err != nil {
		logger.Error("encode failed, unit dropped for this run",
			logging.String("file", img.Filename),
			logging.Error(err),
		)
		counts.add(func(s *Summary) { s.Failed++ })
		return
	}

	verdict, err := o.classifier.CheckDamage(ctx, uri)
	if err != nil {
		logger.Error("classification failed, unit dropped for this run",
			logging.String("file", img.Filename),
			logging.Error(err),
		)
		counts.add(func(s *Summary) { s.Failed++ })
		return
	}

	destDir := spec.CleanDir
	if verdict.HasDamage {
		destDir = spec.DamagedDir
		logger.Info("damage detected",
			logging.String("file", img.Filename),
			logging.String("folder", img.Folder),
			logging.String("reason", verdict.Reason),
		)
	} else {
		logger.Info("clean", logging.String("file", img.Filename))
	}

	if err := fileutil.CopyFilePreserving(img.Path, filepath.Join(destDir, img.Filename)); err != nil {
		logger.Error("copy failed",
			logging.String("file", img.Filename),
			logging.String("destination", destDir),
			logging.Error(err),
		)
		counts.add(func(s *Summary) { s.Failed++ })
		return
	}

	counts.add(func(s *Summary) {
		s.Processed++
		if verdict.HasDamage {
			s.Issues++
		}
	})
}
