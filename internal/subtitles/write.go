package subtitles

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"

	"shorts/internal/fileutil"
	"shorts/internal/services"
)

// LockFileName is created in the output directory while WriteFiles runs.
const LockFileName = ".shorts.lock"

const lockRetryDelay = 50 * time.Millisecond

// WriteFiles creates outDir, takes an exclusive lock on it, and writes each
// file atomically. It returns the written paths in input order.
func WriteFiles(ctx context.Context, outDir string, files []File) ([]string, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, services.Wrap(services.ErrIO, "subtitles", "write", fmt.Sprintf("create %s", outDir), err)
	}

	lock := flock.New(filepath.Join(outDir, LockFileName))
	ok, err := lock.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		return nil, services.Wrap(services.ErrIO, "subtitles", "write", "acquire output lock", err)
	}
	if !ok {
		return nil, services.Wrap(services.ErrIO, "subtitles", "write", "output directory is locked by another export", nil)
	}
	defer func() {
		_ = lock.Unlock()
	}()

	paths := make([]string, 0, len(files))
	for _, file := range files {
		target := filepath.Join(outDir, file.Name)
		if err := fileutil.WriteFileAtomic(target, []byte(file.Content), 0o644); err != nil {
			return paths, services.Wrap(services.ErrIO, "subtitles", "write", fmt.Sprintf("write %s", target), err)
		}
		paths = append(paths, target)
	}
	return paths, nil
}
