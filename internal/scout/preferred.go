package scout

import (
	"fmt"
	"os"
	"strings"
)

// PreferredList manages the curated URL file: one URL per line, blank lines
// ignored. The file is re-read on every orchestration run so external edits
// take effect without a restart.
type PreferredList struct {
	path string
}

// NewPreferredList creates a list backed by the file at path. The file need
// not exist yet.
func NewPreferredList(path string) *PreferredList {
	return &PreferredList{path: path}
}

// URLs returns the curated URLs in file order. A missing file is an empty
// list, not an error.
func (p *PreferredList) URLs() ([]string, error) {
	data, err := os.ReadFile(p.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read preferred urls: %w", err)
	}

	var urls []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			urls = append(urls, line)
		}
	}
	return urls, nil
}

// Add appends a URL to the file, creating it if necessary.
func (p *PreferredList) Add(url string) error {
	url = strings.TrimSpace(url)
	if url == "" {
		return fmt.Errorf("empty url")
	}

	f, err := os.OpenFile(p.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open preferred urls: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(url + "\n"); err != nil {
		return fmt.Errorf("append preferred url: %w", err)
	}
	return nil
}
