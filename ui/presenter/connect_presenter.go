package presenter

import (
	"log/slog"
	"strings"
	"time"

	"github.com/soocke/minimap-caller-go/domain/connect"
	"github.com/soocke/minimap-caller-go/source"
)

// BuildFunc constructs a frame source; source.Build matches it.
type BuildFunc func(mode, sourceText string, logger *slog.Logger) (source.FrameSource, error)

// ConnectView is the UI surface for the connect flow.
type ConnectView interface {
	ApplyConnectControls(c connect.Controls)
	SetSourceStatus(text string)
	ShowBanner(text string)
	ClearBanner()
}

// ConnectPresenter owns the asynchronous connect flow: preflight checks,
// a worker goroutine running the source factory, a deadline, and user
// cancellation. All view updates are marshalled back to the UI thread via
// Post; completions are screened through the connect machine so a worker that
// finishes after cancel or timeout is ignored.
type ConnectPresenter struct {
	Machine *connect.Machine
	Build   BuildFunc
	Timeout time.Duration
	View    ConnectView
	Logger  *slog.Logger

	// Post runs fn on the UI thread. After runs fn on the UI thread once d
	// has elapsed. Both are required.
	Post  func(fn func())
	After func(d time.Duration, fn func())

	// OnConnected receives the freshly built source on the UI thread.
	OnConnected func(src source.FrameSource)
}

// Connect starts an attempt for the given mode and source text. A preflight
// report with a blocking failure stops the attempt before any work starts.
func (p *ConnectPresenter) Connect(mode, sourceText string) {
	if p == nil || p.Machine == nil || p.Build == nil || p.View == nil {
		return
	}
	if p.Machine.Connecting() {
		return
	}

	report := source.CollectReport(mode, sourceText)
	if report.HasBlockingError() {
		p.View.ShowBanner(strings.Join(report.Hints(), "; "))
		p.View.SetSourceStatus("preflight failed")
		return
	}
	p.View.ClearBanner()

	id := p.Machine.StartAttempt()
	p.View.SetSourceStatus("connecting...")
	p.applyControls()

	go func() {
		src, err := p.Build(mode, sourceText, p.Logger)
		p.Post(func() { p.onDone(id, src, err) })
	}()

	if p.After != nil && p.Timeout > 0 {
		p.After(p.Timeout, func() { p.onTimeout(id) })
	}
}

// Cancel aborts the in-flight attempt, if any.
func (p *ConnectPresenter) Cancel() {
	if p == nil || p.Machine == nil {
		return
	}
	if _, ok := p.Machine.Cancel(); !ok {
		return
	}
	p.View.SetSourceStatus("connect cancelled")
	p.applyControls()
}

// Disconnect drops an established connection.
func (p *ConnectPresenter) Disconnect() {
	if p == nil || p.Machine == nil {
		return
	}
	p.Machine.Disconnect()
	p.View.SetSourceStatus("disconnected")
	p.applyControls()
}

func (p *ConnectPresenter) onDone(id uint64, src source.FrameSource, err error) {
	if err != nil {
		if !p.Machine.Fail(id, err.Error()) {
			return // stale: cancelled, timed out, or superseded
		}
		p.View.ShowBanner("connect failed: " + err.Error())
		p.View.SetSourceStatus("connect failed")
		p.applyControls()
		return
	}
	if !p.Machine.Succeed(id) {
		// Stale success: the source was built but nobody wants it anymore.
		if src != nil {
			if cerr := src.Close(); cerr != nil && p.Logger != nil {
				p.Logger.Warn("closing stale source", "error", cerr)
			}
		}
		return
	}
	p.View.SetSourceStatus("connected")
	p.View.ClearBanner()
	p.applyControls()
	if p.OnConnected != nil {
		p.OnConnected(src)
	}
}

func (p *ConnectPresenter) onTimeout(id uint64) {
	if !p.Machine.Timeout(id) {
		return
	}
	p.View.ShowBanner("connect timed out")
	p.View.SetSourceStatus("connect timed out")
	p.applyControls()
}

func (p *ConnectPresenter) applyControls() {
	c := connect.BuildControls(p.Machine.Connecting(), p.Machine.Current() == connect.StateConnected)
	p.View.ApplyConnectControls(c)
}
