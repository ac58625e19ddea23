package progress

import (
	"context"
	"io"
	"sync"
	"sync/atomic"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
)

// MPBReporter affiche une barre par tâche dans le terminal (CLI)
type MPBReporter struct {
	container *mpb.Progress
	mu        sync.Mutex
	bars      map[string]*taskBar
}

type taskBar struct {
	bar     *mpb.Bar
	message *atomic.Value
}

func NewMPBReporter(out io.Writer) *MPBReporter {
	return &MPBReporter{
		container: mpb.New(mpb.WithWidth(50), mpb.WithOutput(out)),
		bars:      make(map[string]*taskBar),
	}
}

func (r *MPBReporter) Report(_ context.Context, ev Event) error {
	tb := r.barFor(ev.TaskID)
	tb.message.Store(ev.Message)

	switch ev.Status {
	case StatusCompleted:
		tb.bar.SetCurrent(MilestoneDone)
	case StatusError:
		tb.message.Store(ev.Message + ": " + ev.Error)
		tb.bar.Abort(false)
	default:
		tb.bar.SetCurrent(int64(ev.Progress))
	}
	return nil
}

// Wait attend la fin de toutes les barres
func (r *MPBReporter) Wait() {
	r.container.Wait()
}

func (r *MPBReporter) barFor(taskID string) *taskBar {
	r.mu.Lock()
	defer r.mu.Unlock()

	if tb, ok := r.bars[taskID]; ok {
		return tb
	}

	message := &atomic.Value{}
	message.Store("")
	bar := r.container.AddBar(MilestoneDone,
		mpb.PrependDecorators(
			decor.Name(taskID, decor.WCSyncSpaceR),
			decor.Percentage(decor.WCSyncSpace),
		),
		mpb.AppendDecorators(
			decor.Any(func(decor.Statistics) string {
				return message.Load().(string)
			}),
		),
	)
	tb := &taskBar{bar: bar, message: message}
	r.bars[taskID] = tb
	return tb
}
