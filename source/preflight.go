package source

import (
	"fmt"
	"net/url"
	"os"
	"strings"
)

// Item is one preflight check result. Blocking items stop a connect attempt
// when they fail; non-blocking items only surface hints.
type Item struct {
	Key      string
	Label    string
	OK       bool
	Detail   string
	Blocking bool
}

// Report is the preflight summary for a mode and source text pair.
type Report struct {
	Mode       string
	SourceText string
	Items      []Item
}

// Hints returns the detail of every failed item, for banner and help text.
func (r Report) Hints() []string {
	var hints []string
	for _, it := range r.Items {
		if !it.OK {
			hints = append(hints, it.Detail)
		}
	}
	return hints
}

// HasBlockingError reports whether any failed item blocks connecting.
func (r Report) HasBlockingError() bool {
	for _, it := range r.Items {
		if !it.OK && it.Blocking {
			return true
		}
	}
	return false
}

// fileExists is a test seam.
var fileExists = func(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// CollectReport runs the cheap pre-connect checks for the given mode and
// source text. It never touches the network; stream reachability is the
// probe's job.
func CollectReport(mode, sourceText string) Report {
	mode = strings.ToLower(strings.TrimSpace(mode))
	source := strings.TrimSpace(sourceText)
	report := Report{Mode: mode, SourceText: source}

	modeOK := mode == ModeMock || mode == ModeScreen || mode == ModeStream
	detail := "mode is supported"
	if !modeOK {
		shown := mode
		if shown == "" {
			shown = "-"
		}
		detail = fmt.Sprintf("unknown mode: %s (supported: mock/screen/stream)", shown)
	}
	report.Items = append(report.Items, Item{
		Key: "mode_valid", Label: "Mode", OK: modeOK, Detail: detail, Blocking: true,
	})
	if !modeOK {
		return report
	}

	hasSource := source != ""
	sourceDetail := map[string]string{
		ModeMock:   "image path is set",
		ModeScreen: "screen region is set",
		ModeStream: "stream URL is set",
	}[mode]
	if !hasSource {
		sourceDetail = map[string]string{
			ModeMock:   "image path is empty",
			ModeScreen: "screen region is empty (example: 100,200,320x240)",
			ModeStream: "stream URL is empty (example: rtsp://localhost:8554/minimap)",
		}[mode]
	}
	report.Items = append(report.Items, Item{
		Key: "source_present", Label: "Source", OK: hasSource, Detail: sourceDetail, Blocking: true,
	})

	switch mode {
	case ModeMock:
		if hasSource {
			exists := fileExists(source)
			detail := "image path is readable"
			if !exists {
				detail = fmt.Sprintf("image not found: %s", source)
			}
			report.Items = append(report.Items, Item{
				Key: "mock_path_exists", Label: "Image file", OK: exists, Detail: detail, Blocking: true,
			})
		}
	case ModeScreen:
		if hasSource {
			_, err := ParseRegionSpec(source)
			detail := "region parses as x,y,WxH"
			if err != nil {
				detail = err.Error()
			}
			report.Items = append(report.Items, Item{
				Key: "screen_region_valid", Label: "Screen region", OK: err == nil, Detail: detail, Blocking: true,
			})
		}
	case ModeStream:
		if hasSource {
			ok, detail := checkStreamURL(source)
			report.Items = append(report.Items, Item{
				Key: "stream_url_format", Label: "Stream URL", OK: ok, Detail: detail, Blocking: false,
			})
		}
	}

	return report
}

func checkStreamURL(raw string) (bool, string) {
	u, err := url.Parse(raw)
	if err != nil {
		return false, fmt.Sprintf("URL does not parse: %v", err)
	}
	if u.Scheme == "" {
		return false, "URL has no scheme (example: rtsp://host:8554/minimap)"
	}
	if u.Host == "" {
		return false, "URL has no host"
	}
	if !strings.EqualFold(u.Scheme, "rtsp") {
		return false, fmt.Sprintf("scheme %q is untested, rtsp:// is the supported transport", u.Scheme)
	}
	return true, fmt.Sprintf("will connect to %s", u.Host)
}
