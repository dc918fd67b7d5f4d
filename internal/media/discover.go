package media

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"fieldlens/internal/naming"
)

// Discover walks each source directory recursively and returns every
// supported photo in lexical walk order. Missing directories are skipped so
// a configured folder that has not been synced yet does not fail the run.
func Discover(sourceDirs []string) ([]SourceImage, error) {
	var images []SourceImage
	for _, dir := range sourceDirs {
		if _, err := os.Stat(dir); errors.Is(err, fs.ErrNotExist) {
			continue
		}
		err := filepath.WalkDir(dir, func(path string, entry fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if entry.IsDir() || !IsImagePath(path) {
				return nil
			}
			absolute, err := filepath.Abs(path)
			if err != nil {
				return err
			}
			images = append(images, SourceImage{
				Path:     absolute,
				Folder:   filepath.Base(filepath.Dir(absolute)),
				Filename: entry.Name(),
				MIMEType: MIMEType(path),
			})
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", dir, err)
		}
	}
	return images, nil
}

// PhotoGroup is a set of photos sharing a normalized base name across
// capture dates and folders. One verdict from the vision model applies to
// every member.
type PhotoGroup struct {
	// Key is the lowercase normalized name shared by all members.
	Key string
	// Label is the case-preserved normalized name of the first member.
	Label string
	// Images holds the members in discovery order.
	Images []SourceImage
}

// GroupImages collects images into PhotoGroups keyed by their normalized
// filename. Groups are returned in first-seen order and members keep their
// discovery order, so repeat runs produce identical grouping.
func GroupImages(images []SourceImage) []PhotoGroup {
	index := make(map[string]int, len(images))
	var groups []PhotoGroup
	for _, img := range images {
		key, label := naming.Normalize(img.Filename)
		pos, ok := index[key]
		if !ok {
			index[key] = len(groups)
			groups = append(groups, PhotoGroup{Key: key, Label: label})
			pos = len(groups) - 1
		}
		groups[pos].Images = append(groups[pos].Images, img)
	}
	return groups
}

// Paths returns the member file paths in discovery order.
func (g PhotoGroup) Paths() []string {
	paths := make([]string, len(g.Images))
	for i, img := range g.Images {
		paths[i] = img.Path
	}
	return paths
}
