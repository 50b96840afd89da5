package source

import (
	"fmt"
	"image"
	"log/slog"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/tinyzimmer/go-gst/gst"
	"github.com/tinyzimmer/go-gst/gst/app"
)

const streamFrameBuffer = 4

// streamFrame carries one decoded RGBA frame out of the GStreamer callback.
type streamFrame struct {
	seq     uint64
	width   int
	height  int
	data    []byte
	traceID string
}

// StreamStats is a snapshot of the stream source counters.
type StreamStats struct {
	Frames  uint64
	Dropped uint64
	Bytes   uint64
}

// StreamSource reads minimap frames from a network video stream via
// GStreamer. The pipeline decodes to RGBA and hands frames to an appsink;
// frames arriving faster than Read consumes them are dropped, never queued
// unbounded.
type StreamSource struct {
	url      string
	pipeline *gst.Pipeline
	frames   chan streamFrame
	done     chan struct{}
	logger   *slog.Logger

	frameCount   atomic.Uint64
	droppedCount atomic.Uint64
	bytesRead    atomic.Uint64
	closed       atomic.Bool
}

// NewStreamSource connects to the stream at url (for example an rtsp:// URI)
// and starts the decode pipeline. The returned source is ready for Read once
// the pipeline reaches PLAYING; Read blocks until the first frame arrives.
func NewStreamSource(url string, logger *slog.Logger) (*StreamSource, error) {
	if logger == nil {
		logger = slog.Default()
	}
	gst.Init(nil)

	pipeline, err := gst.NewPipeline("")
	if err != nil {
		return nil, fmt.Errorf("%w: create pipeline: %v", ErrConnect, err)
	}

	rtspsrc, err := gst.NewElement("rtspsrc")
	if err != nil {
		return nil, fmt.Errorf("%w: rtspsrc: %v", ErrConnect, err)
	}
	rtspsrc.SetProperty("location", url)
	rtspsrc.SetProperty("protocols", 4) // TCP only
	rtspsrc.SetProperty("latency", 200)

	depay, err := gst.NewElement("rtph264depay")
	if err != nil {
		return nil, fmt.Errorf("%w: rtph264depay: %v", ErrConnect, err)
	}
	decoder, err := gst.NewElement("avdec_h264")
	if err != nil {
		return nil, fmt.Errorf("%w: avdec_h264: %v", ErrConnect, err)
	}
	converter, err := gst.NewElement("videoconvert")
	if err != nil {
		return nil, fmt.Errorf("%w: videoconvert: %v", ErrConnect, err)
	}
	capsfilter, err := gst.NewElement("capsfilter")
	if err != nil {
		return nil, fmt.Errorf("%w: capsfilter: %v", ErrConnect, err)
	}
	capsfilter.SetProperty("caps", gst.NewCapsFromString("video/x-raw,format=RGBA"))

	appsink, err := app.NewAppSink()
	if err != nil {
		return nil, fmt.Errorf("%w: appsink: %v", ErrConnect, err)
	}
	appsink.SetProperty("sync", false)
	appsink.SetProperty("max-buffers", 1)
	appsink.SetProperty("drop", true)

	pipeline.AddMany(rtspsrc, depay, decoder, converter, capsfilter, appsink.Element)
	if err := gst.ElementLinkMany(depay, decoder, converter, capsfilter, appsink.Element); err != nil {
		return nil, fmt.Errorf("%w: link pipeline: %v", ErrConnect, err)
	}

	s := &StreamSource{
		url:      url,
		pipeline: pipeline,
		frames:   make(chan streamFrame, streamFrameBuffer),
		done:     make(chan struct{}),
		logger:   logger,
	}

	appsink.SetCallbacks(&app.SinkCallbacks{
		NewSampleFunc: s.onNewSample,
	})

	// rtspsrc pads are dynamic; link to the depayloader once they appear.
	rtspsrc.Connect("pad-added", func(self *gst.Element, srcPad *gst.Pad) {
		sinkPad := depay.GetStaticPad("sink")
		if sinkPad == nil || sinkPad.IsLinked() {
			return
		}
		if ret := srcPad.Link(sinkPad); ret != gst.PadLinkOK {
			s.logger.Warn("stream pad link failed", "url", s.url, "pad", srcPad.GetName(), "result", ret)
		}
	})

	if err := pipeline.SetState(gst.StatePlaying); err != nil {
		pipeline.SetState(gst.StateNull)
		return nil, fmt.Errorf("%w: start pipeline: %v", ErrConnect, err)
	}

	s.logger.Info("stream source started", "url", url)
	return s, nil
}

func (s *StreamSource) onNewSample(sink *app.Sink) gst.FlowReturn {
	if s.closed.Load() {
		return gst.FlowEOS
	}
	sample := sink.PullSample()
	if sample == nil {
		return gst.FlowOK
	}
	buffer := sample.GetBuffer()
	if buffer == nil {
		return gst.FlowOK
	}

	width, height := sampleDims(sample)
	mapInfo := buffer.Map(gst.MapRead)
	data := mapInfo.Bytes()
	if len(data) == 0 || width <= 0 || height <= 0 {
		buffer.Unmap()
		return gst.FlowOK
	}
	pix := make([]byte, len(data))
	copy(pix, data)
	buffer.Unmap()

	seq := s.frameCount.Add(1)
	s.bytesRead.Add(uint64(len(pix)))

	frame := streamFrame{
		seq:     seq,
		width:   width,
		height:  height,
		data:    pix,
		traceID: uuid.New().String(),
	}

	select {
	case s.frames <- frame:
	case <-s.done:
		return gst.FlowEOS
	default:
		s.droppedCount.Add(1)
		s.logger.Debug("stream frame dropped, reader behind", "seq", seq, "trace_id", frame.traceID)
	}
	return gst.FlowOK
}

func sampleDims(sample *gst.Sample) (int, int) {
	caps := sample.GetCaps()
	if caps == nil {
		return 0, 0
	}
	st := caps.GetStructureAt(0)
	if st == nil {
		return 0, 0
	}
	w, err := st.GetValue("width")
	if err != nil {
		return 0, 0
	}
	h, err := st.GetValue("height")
	if err != nil {
		return 0, 0
	}
	wi, ok := w.(int)
	if !ok {
		return 0, 0
	}
	hi, ok := h.(int)
	if !ok {
		return 0, 0
	}
	return wi, hi
}

// Read blocks until the next frame arrives or the source is closed. Returns
// (nil, nil) once closed.
func (s *StreamSource) Read() (*image.RGBA, error) {
	var f streamFrame
	select {
	case f = <-s.frames:
	case <-s.done:
		return nil, nil
	}
	img := image.NewRGBA(image.Rect(0, 0, f.width, f.height))
	rowBytes := f.width * 4
	if len(f.data) < rowBytes*f.height {
		return nil, fmt.Errorf("%w: short frame %d bytes for %dx%d", ErrRead, len(f.data), f.width, f.height)
	}
	// The pipeline may pad rows; copy row by row against the buffer stride.
	stride := len(f.data) / f.height
	for y := 0; y < f.height; y++ {
		copy(img.Pix[y*img.Stride:y*img.Stride+rowBytes], f.data[y*stride:y*stride+rowBytes])
	}
	return img, nil
}

// Stats returns the running frame counters.
func (s *StreamSource) Stats() StreamStats {
	return StreamStats{
		Frames:  s.frameCount.Load(),
		Dropped: s.droppedCount.Load(),
		Bytes:   s.bytesRead.Load(),
	}
}

// Close stops the pipeline and unblocks any pending Read. Safe to call more
// than once.
func (s *StreamSource) Close() error {
	if !s.closed.CompareAndSwap(false, true) {
		return nil
	}
	var err error
	if s.pipeline != nil {
		err = s.pipeline.SetState(gst.StateNull)
	}
	close(s.done)
	s.logger.Info("stream source closed", "url", s.url,
		"frames", s.frameCount.Load(), "dropped", s.droppedCount.Load())
	if err != nil {
		return fmt.Errorf("stop pipeline: %w", err)
	}
	return nil
}
