package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ObjectStorage persists media objects and maps public URLs back to keys.
type ObjectStorage interface {
	Save(ctx context.Context, name string, r io.Reader) (string, error)
	Delete(ctx context.Context, key string) error
	KeyForURL(url string) (string, bool)
}

// DurationProber reads the playable duration of a local media file.
type DurationProber interface {
	Duration(ctx context.Context, path string) (float64, error)
}

// Asset describes an object hosted on the media store.
type Asset struct {
	URL      string
	Duration float64
}

// ErrStorageUnavailable indicates the ingestor has no object storage configured.
var ErrStorageUnavailable = errors.New("media storage unavailable")

// IngestorConfig controls the retirement worker pool.
type IngestorConfig struct {
	QueueSize int
	Workers   int
}

// Ingestor moves uploaded temp files into object storage and retires replaced
// objects in the background. The local temp file is always removed, on success
// and on failure; remote retirement is best-effort and never blocks callers.
type Ingestor struct {
	storage ObjectStorage
	prober  DurationProber
	logger  *slog.Logger

	mu          sync.Mutex
	closed      bool
	retirements chan string
	wg          sync.WaitGroup
	once        sync.Once
}

// NewIngestor constructs an Ingestor with a background retirement pool.
func NewIngestor(storage ObjectStorage, prober DurationProber, cfg IngestorConfig, logger *slog.Logger) *Ingestor {
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 64
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if logger == nil {
		logger = slog.Default()
	}

	ing := &Ingestor{
		storage:     storage,
		prober:      prober,
		logger:      logger,
		retirements: make(chan string, cfg.QueueSize),
	}

	ing.wg.Add(cfg.Workers)
	for i := 0; i < cfg.Workers; i++ {
		go ing.worker()
	}

	return ing
}

// Ingest uploads the local file to object storage under a fresh key with the
// provided prefix and original filename extension, optionally probing its
// duration first. The temp file is removed before Ingest returns regardless of
// outcome.
func (i *Ingestor) Ingest(ctx context.Context, localPath, keyPrefix string, probeDuration bool) (Asset, error) {
	defer func() {
		if err := os.Remove(localPath); err != nil && !errors.Is(err, os.ErrNotExist) {
			i.logger.Warn("remove temp upload", "path", localPath, "error", err)
		}
	}()

	if i.storage == nil {
		return Asset{}, ErrStorageUnavailable
	}

	var duration float64
	if probeDuration && i.prober != nil {
		d, err := i.prober.Duration(ctx, localPath)
		if err != nil {
			return Asset{}, fmt.Errorf("probe duration: %w", err)
		}
		duration = d
	}

	f, err := os.Open(localPath)
	if err != nil {
		return Asset{}, fmt.Errorf("open temp upload: %w", err)
	}
	defer f.Close()

	key := path.Join(keyPrefix, uuid.NewString()+path.Ext(localPath))
	url, err := i.storage.Save(ctx, key, f)
	if err != nil {
		return Asset{}, fmt.Errorf("store media object: %w", err)
	}

	return Asset{URL: url, Duration: duration}, nil
}

// Retire schedules best-effort deletion of the remote object behind url.
// Unknown or empty URLs are ignored; a full queue drops the retirement with a
// log line rather than blocking the caller.
func (i *Ingestor) Retire(url string) {
	if url == "" || i.storage == nil {
		return
	}

	i.mu.Lock()
	defer i.mu.Unlock()

	if i.closed {
		i.logger.Warn("ingestor shut down, dropping retirement", "url", url)
		return
	}

	select {
	case i.retirements <- url:
	default:
		i.logger.Warn("retirement queue full, dropping", "url", url)
	}
}

// Shutdown waits for the retirement pool to drain outstanding work. Retire
// calls arriving afterwards are dropped, never a send on the closed queue.
func (i *Ingestor) Shutdown(ctx context.Context) error {
	i.once.Do(func() {
		i.mu.Lock()
		i.closed = true
		close(i.retirements)
		i.mu.Unlock()
	})

	done := make(chan struct{})
	go func() {
		i.wg.Wait()
		close(done)
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-done:
		return nil
	}
}

func (i *Ingestor) worker() {
	defer i.wg.Done()

	for url := range i.retirements {
		i.retire(url)
	}
}

func (i *Ingestor) retire(url string) {
	key, ok := i.storage.KeyForURL(url)
	if !ok {
		i.logger.Warn("cannot derive storage key, skipping retirement", "url", url)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := i.storage.Delete(ctx, key); err != nil {
		i.logger.Error("retire media object", "key", key, "error", err)
	}
}
