package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

const (
	statusFound       = "found"
	statusNoMatch     = "no_match"
	statusMissingASIN = "missing_asin"
	statusError       = "error"
)

// progressEntry records the outcome for one model so reruns can resume.
type progressEntry struct {
	ModelNumber string `json:"model_number"`
	Brand       string `json:"brand"`
	Status      string `json:"status"`
	UpdatedAt   string `json:"updated_at"`
	ASIN        string `json:"asin,omitempty"`
	Title       string `json:"title,omitempty"`
	DetailURL   string `json:"detail_url,omitempty"`
	Message     string `json:"message,omitempty"`
}

type progressFile struct {
	Models    map[string]progressEntry `json:"models"`
	UpdatedAt string                   `json:"updated_at,omitempty"`
}

// loadProgress reads an earlier run's progress. Missing or corrupt files
// start a fresh run rather than failing.
func loadProgress(path string) *progressFile {
	fresh := &progressFile{Models: map[string]progressEntry{}}
	data, err := os.ReadFile(path)
	if err != nil {
		return fresh
	}
	var loaded progressFile
	if err := json.Unmarshal(data, &loaded); err != nil {
		return fresh
	}
	if loaded.Models == nil {
		loaded.Models = map[string]progressEntry{}
	}
	return &loaded
}

// save writes the progress file atomically via a temp file rename.
func (p *progressFile) save(path string) error {
	p.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// shouldSkip reports whether a model already has a progress entry. With
// retryErrors, errored models run again.
func (p *progressFile) shouldSkip(modelID int64, retryErrors bool) bool {
	entry, ok := p.Models[strconv.FormatInt(modelID, 10)]
	if !ok {
		return false
	}
	if retryErrors && entry.Status == statusError {
		return false
	}
	return true
}

func (p *progressFile) update(modelID int64, entry progressEntry) {
	entry.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
	p.Models[strconv.FormatInt(modelID, 10)] = entry
}
