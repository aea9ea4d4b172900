package runner

import (
	"context"
	"fmt"
	"runtime"
	"strings"
	"sync"

	"github.com/yaklabco/rstexpand/internal/logging"
	"github.com/yaklabco/rstexpand/pkg/config"
	"github.com/yaklabco/rstexpand/pkg/expand"
	"github.com/yaklabco/rstexpand/pkg/fsutil"
	"github.com/yaklabco/rstexpand/pkg/langdetect"
	"github.com/yaklabco/rstexpand/pkg/rst"
)

// Runner orchestrates expansion across many documents with a bounded
// worker pool.
type Runner struct {
	engine *expand.Engine
}

// New creates a Runner backed by the given expansion engine.
func New(engine *expand.Engine) *Runner {
	return &Runner{engine: engine}
}

// Run discovers files per opts and expands each of them. Results are
// ordered by path regardless of worker scheduling.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	log := logging.FromContext(ctx)

	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("discover files: %w", err)
	}

	result := &Result{Stats: newStats()}
	result.Stats.FilesDiscovered = len(files)

	if len(files) == 0 {
		return result, nil
	}

	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	if jobs > len(files) {
		jobs = len(files)
	}

	log.Debug("processing files",
		logging.FieldFiles, len(files),
		logging.FieldJobs, jobs,
	)

	workCh := make(chan string)
	outcomes := make(map[string]FileOutcome, len(files))

	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)

	for range jobs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range workCh {
				outcome := r.processFile(ctx, path, cfg)
				mu.Lock()
				outcomes[path] = outcome
				mu.Unlock()
			}
		}()
	}

feed:
	for _, path := range files {
		select {
		case <-ctx.Done():
			break feed
		case workCh <- path:
		}
	}
	close(workCh)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("run cancelled: %w", err)
	}

	// Accumulate in discovery order so output and stats are stable.
	for _, path := range files {
		result.accumulate(outcomes[path])
	}
	return result, nil
}

// processFile reads, gates, expands, and optionally rewrites one file.
func (r *Runner) processFile(ctx context.Context, path string, cfg *config.Config) FileOutcome {
	outcome := FileOutcome{Path: path}

	content, info, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		outcome.Error = fmt.Errorf("read %s: %w", path, err)
		return outcome
	}

	// Ambiguous extensions (.txt and anything user-added) are gated on
	// content; .rst and .rest short-circuit inside IsRST.
	if !langdetect.IsRST(path, content) {
		outcome.Skipped = true
		return outcome
	}

	buf := rst.FromText(string(content))
	res, err := r.engine.Expand(ctx, buf)
	outcome.Result = res
	if err != nil {
		outcome.Error = fmt.Errorf("expand %s: %w", path, err)
		return outcome
	}

	if cfg.ShowIndex {
		outcome.Symbols = expand.BuildIndex(rst.NewBuffer(res.Lines))
	}

	if cfg.Write {
		expanded := expandedText(res.Lines)
		mode := fsutil.DefaultFileMode
		if info != nil {
			mode = info.Mode
		}
		written, err := fsutil.WriteAtomicIfChanged(ctx, path, []byte(expanded), mode)
		if err != nil {
			outcome.Error = fmt.Errorf("write %s: %w", path, err)
			return outcome
		}
		outcome.Written = written
	}

	return outcome
}

// expandedText joins expanded lines back into file content with a
// trailing newline.
func expandedText(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}
