package presenter

import (
	"errors"
	"image"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/soocke/minimap-caller-go/domain/connect"
	"github.com/soocke/minimap-caller-go/source"

	"log/slog"
)

// fakeConnectView is mutex-guarded because Post callbacks run on the worker
// goroutine in these tests.
type fakeConnectView struct {
	mu       sync.Mutex
	controls []connect.Controls
	statuses []string
	banners  []string
	cleared  int
}

func (v *fakeConnectView) ApplyConnectControls(c connect.Controls) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.controls = append(v.controls, c)
}

func (v *fakeConnectView) SetSourceStatus(text string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.statuses = append(v.statuses, text)
}

func (v *fakeConnectView) ShowBanner(text string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.banners = append(v.banners, text)
}

func (v *fakeConnectView) ClearBanner() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.cleared++
}

func (v *fakeConnectView) hasStatus(want string) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	for _, s := range v.statuses {
		if s == want {
			return true
		}
	}
	return false
}

func (v *fakeConnectView) lastBanner() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	if len(v.banners) == 0 {
		return ""
	}
	return v.banners[len(v.banners)-1]
}

func (v *fakeConnectView) bannerCount() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.banners)
}

func (v *fakeConnectView) lastControls() (connect.Controls, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if len(v.controls) == 0 {
		return connect.Controls{}, false
	}
	return v.controls[len(v.controls)-1], true
}

type stubSource struct {
	mu     sync.Mutex
	closed bool
}

func (s *stubSource) Read() (*image.RGBA, error) { return nil, nil }

func (s *stubSource) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

func (s *stubSource) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// syncRunner runs Post callbacks immediately and collects After callbacks so
// tests control when the deadline fires.
type syncRunner struct {
	deadlines []func()
}

func (r *syncRunner) post(fn func()) { fn() }
func (r *syncRunner) after(_ time.Duration, fn func()) {
	r.deadlines = append(r.deadlines, fn)
}

func newConnectPresenter(view *fakeConnectView, build BuildFunc, r *syncRunner) *ConnectPresenter {
	return &ConnectPresenter{
		Machine: connect.NewMachine(nil),
		Build:   build,
		Timeout: time.Second,
		View:    view,
		Post:    r.post,
		After:   r.after,
	}
}

func waitStatus(t *testing.T, view *fakeConnectView, want string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if view.hasStatus(want) {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("status %q never arrived", want)
}

func TestConnectPresenterSuccess(t *testing.T) {
	view := &fakeConnectView{}
	r := &syncRunner{}
	src := &stubSource{}
	connectedCh := make(chan source.FrameSource, 1)
	p := newConnectPresenter(view, func(mode, text string, _ *slog.Logger) (source.FrameSource, error) {
		return src, nil
	}, r)
	p.OnConnected = func(s source.FrameSource) { connectedCh <- s }

	p.Connect(source.ModeMock, "map.png")

	select {
	case got := <-connectedCh:
		if got != source.FrameSource(src) {
			t.Fatal("OnConnected did not receive the built source")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("OnConnected never fired")
	}
	waitStatus(t, view, "connected")
	if p.Machine.Current() != connect.StateConnected {
		t.Fatalf("state = %v", p.Machine.Current())
	}

	// Deadline firing after success must be ignored.
	for _, fn := range r.deadlines {
		fn()
	}
	if p.Machine.Current() != connect.StateConnected {
		t.Fatal("late timeout flipped the state")
	}
	last, ok := view.lastControls()
	if !ok || last.ConnectButtonText != "Reconnect source" {
		t.Fatalf("controls = %+v, %v", last, ok)
	}
}

func TestConnectPresenterFailureShowsBanner(t *testing.T) {
	view := &fakeConnectView{}
	r := &syncRunner{}
	p := newConnectPresenter(view, func(string, string, *slog.Logger) (source.FrameSource, error) {
		return nil, errors.New("stream refused")
	}, r)

	p.Connect(source.ModeStream, "rtsp://localhost:8554/minimap")
	waitStatus(t, view, "connect failed")

	if !strings.Contains(view.lastBanner(), "stream refused") {
		t.Fatalf("banner = %q", view.lastBanner())
	}
	if p.Machine.Current() != connect.StateDisconnected {
		t.Fatalf("state = %v", p.Machine.Current())
	}
}

func TestConnectPresenterPreflightBlocks(t *testing.T) {
	view := &fakeConnectView{}
	r := &syncRunner{}
	built := false
	p := newConnectPresenter(view, func(string, string, *slog.Logger) (source.FrameSource, error) {
		built = true
		return &stubSource{}, nil
	}, r)

	p.Connect("webcam", "0")

	if built {
		t.Fatal("factory must not run when preflight blocks")
	}
	if view.bannerCount() == 0 {
		t.Fatal("blocking preflight should show a banner")
	}
	if p.Machine.Current() != connect.StateDisconnected {
		t.Fatalf("state = %v", p.Machine.Current())
	}
}

func TestConnectPresenterTimeoutDiscardsLateSource(t *testing.T) {
	view := &fakeConnectView{}
	r := &syncRunner{}
	src := &stubSource{}
	release := make(chan struct{})
	p := newConnectPresenter(view, func(string, string, *slog.Logger) (source.FrameSource, error) {
		<-release
		return src, nil
	}, r)
	var connected bool
	p.OnConnected = func(source.FrameSource) { connected = true }

	p.Connect(source.ModeStream, "rtsp://localhost:8554/minimap")
	if len(r.deadlines) != 1 {
		t.Fatalf("deadlines = %d", len(r.deadlines))
	}
	r.deadlines[0]()
	waitStatus(t, view, "connect timed out")

	// Worker finishes after the timeout: its source must be closed, not used.
	close(release)
	deadline := time.Now().Add(2 * time.Second)
	for !src.isClosed() && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if !src.isClosed() {
		t.Fatal("late source was not closed")
	}
	if connected {
		t.Fatal("late source must not connect")
	}
	if p.Machine.Current() != connect.StateDisconnected {
		t.Fatalf("state = %v", p.Machine.Current())
	}
}

func TestConnectPresenterCancel(t *testing.T) {
	view := &fakeConnectView{}
	r := &syncRunner{}
	release := make(chan struct{})
	defer close(release)
	p := newConnectPresenter(view, func(string, string, *slog.Logger) (source.FrameSource, error) {
		<-release
		return nil, errors.New("never delivered")
	}, r)

	p.Connect(source.ModeStream, "rtsp://localhost:8554/minimap")
	p.Cancel()
	waitStatus(t, view, "connect cancelled")
	if p.Machine.Connecting() {
		t.Fatal("cancel left the machine connecting")
	}
}

func TestConnectPresenterIgnoresDoubleConnect(t *testing.T) {
	view := &fakeConnectView{}
	r := &syncRunner{}
	var mu sync.Mutex
	builds := 0
	release := make(chan struct{})
	defer close(release)
	p := newConnectPresenter(view, func(string, string, *slog.Logger) (source.FrameSource, error) {
		mu.Lock()
		builds++
		mu.Unlock()
		<-release
		return nil, errors.New("unused")
	}, r)

	p.Connect(source.ModeStream, "rtsp://localhost:8554/minimap")
	p.Connect(source.ModeStream, "rtsp://localhost:8554/minimap")

	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		mu.Lock()
		n := builds
		mu.Unlock()
		if n > 0 {
			break
		}
		time.Sleep(5 * time.Millisecond)
	}
	mu.Lock()
	defer mu.Unlock()
	if builds != 1 {
		t.Fatalf("builds = %d, second connect should be ignored while in flight", builds)
	}
}
