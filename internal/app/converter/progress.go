package converter

import (
	"io"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
)

// Pipeline stages, in order. Each completed stage advances the bar by one.
var stageNames = []string{"extract", "transcribe", "normalize", "export"}

type ProgressConfig struct {
	Enabled bool
	Writer  io.Writer
}

type ProgressManager struct {
	container *mpb.Progress
	enabled   bool
	mu        sync.Mutex
	waitOnce  sync.Once
}

type ProgressBar struct {
	bar     *mpb.Bar
	stage   atomic.Value
	enabled bool
}

func NewProgressManager(config ProgressConfig) *ProgressManager {
	if !config.Enabled {
		return &ProgressManager{enabled: false}
	}

	writer := config.Writer
	if writer == nil {
		writer = os.Stderr
	}

	container := mpb.New(
		mpb.WithOutput(writer),
		mpb.WithRefreshRate(120*time.Millisecond),
		mpb.WithAutoRefresh(),
	)

	return &ProgressManager{
		container: container,
		enabled:   true,
	}
}

// CreateBar adds a stage bar for one run
func (pm *ProgressManager) CreateBar(description string) *ProgressBar {
	if pm == nil || !pm.enabled || pm.container == nil {
		return &ProgressBar{enabled: false}
	}

	pm.mu.Lock()
	defer pm.mu.Unlock()

	pb := &ProgressBar{enabled: true}
	pb.stage.Store(stageNames[0])

	pb.bar = pm.container.AddBar(int64(len(stageNames)),
		mpb.PrependDecorators(
			decor.Name(description+" ", decor.WC{W: len(description) + 1, C: decor.DindentRight}),
			decor.Any(func(decor.Statistics) string { return pb.stage.Load().(string) }, decor.WCSyncSpaceR),
		),
		mpb.AppendDecorators(
			decor.OnAbort(
				decor.OnComplete(decor.Elapsed(decor.ET_STYLE_GO, decor.WCSyncWidth), " ✓ "),
				" ✗ ",
			),
		),
	)

	return pb
}

// Advance marks the current stage done and names the next one
func (pb *ProgressBar) Advance(next string) {
	if pb.enabled && pb.bar != nil {
		pb.stage.Store(next)
		pb.bar.Increment()
	}
}

func (pb *ProgressBar) Complete() {
	if pb.enabled && pb.bar != nil {
		pb.stage.Store("done")
		pb.bar.SetTotal(pb.bar.Current(), true)
	}
}

// Abort stops the bar in place, leaving the failed stage visible
func (pb *ProgressBar) Abort() {
	if pb.enabled && pb.bar != nil {
		pb.bar.Abort(false)
	}
}

// Wait blocks until every bar has rendered its final state. Later calls are
// no-ops.
func (pm *ProgressManager) Wait() {
	if pm != nil && pm.enabled && pm.container != nil {
		pm.waitOnce.Do(pm.container.Wait)
	}
}

func IsTTY(writer io.Writer) bool {
	if writer == nil {
		return false
	}

	if file, ok := writer.(*os.File); ok {
		return isatty.IsTerminal(file.Fd()) || isatty.IsCygwinTerminal(file.Fd())
	}
	return false
}

func ShouldShowProgress(forced bool) bool {
	if forced {
		return true
	}

	return IsTTY(os.Stderr)
}
