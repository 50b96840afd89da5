package source

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/tinyzimmer/go-gst/gst"
)

// ProbeResult reports whether a stream URL answered the handshake and what
// we learned about it.
type ProbeResult struct {
	URL     string
	OK      bool
	Detail  string
	Elapsed time.Duration
}

func (r ProbeResult) String() string {
	state := "unreachable"
	if r.OK {
		state = "ok"
	}
	return fmt.Sprintf("probe %s: %s (%s, %s)", r.URL, state, r.Detail, r.Elapsed.Round(time.Millisecond))
}

// ProbeStream checks that url accepts a connection and negotiates caps,
// without pulling frames. It runs a paused pipeline in a goroutine and
// returns as soon as the pipeline answers, the stream errors, or ctx expires;
// the probe never outlives the context by more than pipeline teardown.
func ProbeStream(ctx context.Context, url string, logger *slog.Logger) ProbeResult {
	if logger == nil {
		logger = slog.Default()
	}
	start := time.Now()
	res := ProbeResult{URL: url}

	if strings.TrimSpace(url) == "" {
		res.Detail = "empty url"
		res.Elapsed = time.Since(start)
		return res
	}

	type outcome struct {
		ok     bool
		detail string
	}
	out := make(chan outcome, 1)

	go func() {
		gst.Init(nil)
		desc := fmt.Sprintf("rtspsrc location=%s protocols=4 ! fakesink", url)
		pipeline, err := gst.NewPipelineFromString(desc)
		if err != nil {
			out <- outcome{false, fmt.Sprintf("pipeline: %v", err)}
			return
		}
		defer pipeline.SetState(gst.StateNull)

		// PAUSED is enough for the handshake and caps negotiation.
		if err := pipeline.SetState(gst.StatePaused); err != nil {
			out <- outcome{false, fmt.Sprintf("pause: %v", err)}
			return
		}

		bus := pipeline.GetPipelineBus()
		for {
			if ctx.Err() != nil {
				return
			}
			msg := bus.TimedPop(100 * time.Millisecond)
			if msg == nil {
				continue
			}
			switch msg.Type() {
			case gst.MessageError:
				gerr := msg.ParseError()
				out <- outcome{false, gerr.Error()}
				return
			case gst.MessageEOS:
				out <- outcome{false, "stream ended during probe"}
				return
			case gst.MessageAsyncDone:
				out <- outcome{true, "handshake complete"}
				return
			}
		}
	}()

	select {
	case o := <-out:
		res.OK = o.ok
		res.Detail = o.detail
	case <-ctx.Done():
		res.Detail = "probe timed out"
	}
	res.Elapsed = time.Since(start)
	logger.Info("stream probe finished", "url", url, "ok", res.OK, "detail", res.Detail, "elapsed", res.Elapsed)
	return res
}
