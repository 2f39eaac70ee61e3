// Package watch uploads files dropped into a folder.
//
// A Watcher sweeps the folder once, then follows fsnotify events. Each file
// is uploaded once per content: the sha256 of the bytes is checked against
// the upload journal before anything is sent.
package watch

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"

	"github.com/custodia-labs/docdesk-cli/internal/core/domain"
	"github.com/custodia-labs/docdesk-cli/internal/core/ports/driven"
	"github.com/custodia-labs/docdesk-cli/internal/logger"
)

// DefaultSettle is how long a file must stay quiet before it is uploaded.
const DefaultSettle = 500 * time.Millisecond

var (
	// ErrNoDirectory is returned when the watched path is missing or not a folder.
	ErrNoDirectory = errors.New("watch path is not a directory")

	// ErrMissingUploader is returned when no uploader is configured.
	ErrMissingUploader = errors.New("uploader is required")

	// ErrMissingJournal is returned when no upload journal is configured.
	ErrMissingJournal = errors.New("upload journal is required")
)

// Uploader sends one document. driving.DocumentService satisfies it.
type Uploader interface {
	Upload(ctx context.Context, req domain.UploadRequest) (*domain.Document, error)
}

// Config describes the folder and the metadata every upload carries.
type Config struct {
	Dir        string
	Type       domain.DocumentType
	Department string
	Priority   domain.Priority

	// Settle is the quiet period after the last write event. Zero means
	// DefaultSettle.
	Settle time.Duration
}

// Watcher uploads new and changed files from a folder.
type Watcher struct {
	cfg      Config
	uploader Uploader
	journal  driven.UploadJournal
	now      func() time.Time

	mu      sync.Mutex
	pending map[string]time.Time
}

// New validates cfg and returns a Watcher.
func New(cfg Config, uploader Uploader, journal driven.UploadJournal) (*Watcher, error) {
	if uploader == nil {
		return nil, ErrMissingUploader
	}
	if journal == nil {
		return nil, ErrMissingJournal
	}
	info, err := os.Stat(cfg.Dir)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%s: %w", cfg.Dir, ErrNoDirectory)
	}
	if !cfg.Type.IsValid() {
		return nil, fmt.Errorf("document type %q: %w", cfg.Type, domain.ErrInvalidInput)
	}
	if strings.TrimSpace(cfg.Department) == "" {
		return nil, fmt.Errorf("department is required: %w", domain.ErrInvalidInput)
	}
	if cfg.Priority != "" && !cfg.Priority.IsValid() {
		return nil, fmt.Errorf("priority %q: %w", cfg.Priority, domain.ErrInvalidInput)
	}
	if cfg.Settle <= 0 {
		cfg.Settle = DefaultSettle
	}

	return &Watcher{
		cfg:      cfg,
		uploader: uploader,
		journal:  journal,
		now:      time.Now,
		pending:  make(map[string]time.Time),
	}, nil
}

// Scan uploads every eligible file already in the folder and returns the
// journal entries written.
func (w *Watcher) Scan(ctx context.Context) ([]domain.UploadRecord, error) {
	entries, err := os.ReadDir(w.cfg.Dir)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", w.cfg.Dir, err)
	}

	var records []domain.UploadRecord
	for _, e := range entries {
		if e.IsDir() || isHidden(e.Name()) {
			continue
		}
		rec, uploaded, err := w.Process(ctx, filepath.Join(w.cfg.Dir, e.Name()))
		if err != nil {
			return records, err
		}
		if uploaded {
			records = append(records, rec)
		}
	}
	return records, nil
}

// Run scans the folder and then uploads files as they settle until ctx is
// cancelled. onRecord, if set, is called for every journal entry.
func (w *Watcher) Run(ctx context.Context, onRecord func(domain.UploadRecord)) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer fw.Close()

	if err := fw.Add(w.cfg.Dir); err != nil {
		return fmt.Errorf("watching %s: %w", w.cfg.Dir, err)
	}
	logger.Info("Watching %s", w.cfg.Dir)

	records, err := w.Scan(ctx)
	for _, rec := range records {
		notify(onRecord, rec)
	}
	if err != nil {
		return err
	}

	ticker := time.NewTicker(w.cfg.Settle / 2)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if path, ok := w.handleEvent(ev); ok {
				w.mark(path)
			}

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watcher error: %v", err)

		case <-ticker.C:
			for _, path := range w.settled() {
				rec, uploaded, err := w.Process(ctx, path)
				if err != nil {
					return err
				}
				if uploaded {
					notify(onRecord, rec)
				}
			}
		}
	}
}

// handleEvent returns the path to upload for ev, if any. Removals, renames
// and permission changes are ignored.
func (w *Watcher) handleEvent(ev fsnotify.Event) (string, bool) {
	if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) {
		return "", false
	}
	if isHidden(filepath.Base(ev.Name)) {
		return "", false
	}
	info, err := os.Stat(ev.Name)
	if err != nil || info.IsDir() {
		return "", false
	}
	return ev.Name, true
}

func (w *Watcher) mark(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.pending[path] = w.now()
}

// settled removes and returns the pending paths that have been quiet for
// the settle period.
func (w *Watcher) settled() []string {
	w.mu.Lock()
	defer w.mu.Unlock()

	cutoff := w.now().Add(-w.cfg.Settle)
	var out []string
	for path, last := range w.pending {
		if !last.After(cutoff) {
			out = append(out, path)
			delete(w.pending, path)
		}
	}
	sort.Strings(out)
	return out
}

// Process uploads the file at path unless its content was uploaded before.
// It reports whether a journal entry was written. Upload failures are
// journalled, not returned; only journal failures are.
func (w *Watcher) Process(ctx context.Context, path string) (domain.UploadRecord, bool, error) {
	rec := domain.UploadRecord{
		ID:         uuid.NewString(),
		Path:       path,
		UploadedAt: w.now(),
	}

	content, err := readFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			// Gone before it settled.
			return rec, false, nil
		}
		rec.Error = err.Error()
		return rec, true, w.record(ctx, rec)
	}

	sum := sha256.Sum256(content)
	rec.Checksum = hex.EncodeToString(sum[:])

	done, err := w.journal.HasUploaded(ctx, rec.Checksum)
	if err != nil {
		return rec, false, fmt.Errorf("checking upload journal: %w", err)
	}
	if done {
		logger.Debug("Skipping %s: already uploaded", path)
		return rec, false, nil
	}

	name := filepath.Base(path)
	title, summary := describe(name, content)
	doc, err := w.uploader.Upload(ctx, domain.UploadRequest{
		FileName:   name,
		Content:    content,
		Title:      title,
		Summary:    summary,
		Type:       w.cfg.Type,
		Department: w.cfg.Department,
		Priority:   w.cfg.Priority,
	})
	if err != nil {
		logger.Warn("Uploading %s failed: %v", path, err)
		rec.Error = err.Error()
	} else {
		logger.Info("Uploaded %s as document %s", path, doc.ID)
		rec.DocumentID = doc.ID
	}
	return rec, true, w.record(ctx, rec)
}

func (w *Watcher) record(ctx context.Context, rec domain.UploadRecord) error {
	if err := w.journal.Record(ctx, rec); err != nil {
		return fmt.Errorf("recording upload of %s: %w", rec.Path, err)
	}
	return nil
}

func readFile(path string) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.Size() > domain.MaxUploadSize {
		return nil, fmt.Errorf("%s is larger than the %d byte upload limit", filepath.Base(path), domain.MaxUploadSize)
	}
	return os.ReadFile(path)
}

func isHidden(name string) bool {
	return strings.HasPrefix(name, ".") || strings.HasSuffix(name, "~")
}

func notify(fn func(domain.UploadRecord), rec domain.UploadRecord) {
	if fn != nil {
		fn(rec)
	}
}
