package nowplaying

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/bnema/slack-now-playing/internal/domain"
	"github.com/bnema/slack-now-playing/internal/ports"
)

// Reporter echoes every pushed status to a terminal.
type Reporter struct {
	out io.Writer
	now func() time.Time
	mu  sync.Mutex
}

var _ ports.StatusReporter = (*Reporter)(nil)

func NewReporter(out io.Writer, now func() time.Time) *Reporter {
	if now == nil {
		now = time.Now
	}
	return &Reporter{out: out, now: now}
}

func (r *Reporter) Report(snapshot *domain.PlaybackSnapshot, status string) {
	if r == nil || r.out == nil {
		return
	}

	line, err := Render(snapshot, status, RenderOptions{Now: r.now()})
	if err != nil {
		line = status
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	_, _ = fmt.Fprintln(r.out, line)
}
