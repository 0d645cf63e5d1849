// Package docs loads ingestion input from the filesystem. Markdown files are
// reduced to plain text before embedding so formatting syntax does not leak
// into the vector space; other files are ingested verbatim.
package docs

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/finsight-ai/finsight/internal/ingest"
)

// Loader reads documents from files and directories.
type Loader struct {
	logger *slog.Logger
}

// NewLoader creates a Loader.
func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{logger: logger}
}

// Load reads every given path, descending into directories, and returns the
// documents in walk order. Unreadable files are logged and skipped, not
// fatal.
func (l *Loader) Load(paths []string) ([]ingest.Document, error) {
	var documents []ingest.Document
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", path, err)
		}
		if info.IsDir() {
			docs, err := l.loadDir(path)
			if err != nil {
				return nil, err
			}
			documents = append(documents, docs...)
			continue
		}
		if doc, ok := l.loadFile(path); ok {
			documents = append(documents, doc)
		}
	}
	return documents, nil
}

func (l *Loader) loadDir(root string) ([]ingest.Document, error) {
	var documents []ingest.Document
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if strings.HasPrefix(d.Name(), ".") && path != root {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") {
			return nil
		}
		if doc, ok := l.loadFile(path); ok {
			documents = append(documents, doc)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}
	return documents, nil
}

// loadFile reads a single file into a document. Markdown content is
// flattened to plain text; the document name is always the file path.
func (l *Loader) loadFile(path string) (ingest.Document, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		l.logger.Warn("skipping unreadable file", "path", path, "error", err)
		return ingest.Document{}, false
	}

	content := string(data)
	if isMarkdown(path) {
		title, text := flattenMarkdown(data)
		content = text
		l.logger.Info("loaded markdown document", "path", path, "title", title)
	} else {
		l.logger.Info("loaded document", "path", path, "bytes", len(data))
	}

	return ingest.Document{Name: path, Content: content}, true
}

func isMarkdown(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".md" || ext == ".markdown"
}
