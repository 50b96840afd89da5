package view

import (
	"image"
	"log/slog"
	"time"

	"github.com/soocke/minimap-caller-go/config"
	"github.com/soocke/minimap-caller-go/domain/connect"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// RootCallbacks bundles the user-action handlers the app wires into the
// layout.
type RootCallbacks struct {
	Source  SourcePanelCallbacks
	Region  RegionPanelCallbacks
	Preview PreviewCallbacks
	Config  ConfigApplied
	OnExit  func()
}

// RootView composes the top-level application layout and wires UI callbacks.
// It owns high-level subviews but exposes minimal exported fields for presenters.
type RootView struct {
	cfg     *config.Config
	cfgPath string
	logger  *slog.Logger

	// Subviews
	Session     SessionStats
	Banner      Banner
	SourcePnl   SourcePanel
	RegionPnl   RegionPanel
	ConfigPanel ConfigPanel
	Preview     Preview

	// Widgets
	ZoneLabel *LabelWidget
}

func NewRootView(cfg *config.Config, cfgPath string, logger *slog.Logger) *RootView {
	return &RootView{cfg: cfg, cfgPath: cfgPath, logger: logger}
}

// Build constructs the layout top to bottom: session stats and zone label,
// warning banner, source controls, region editor, config fields, preview.
func (rv *RootView) Build(cb RootCallbacks) {
	if rv == nil {
		return
	}
	rv.Session = NewSessionStats(0, 0)
	rv.ZoneLabel = Label(Txt("detection off"), Borderwidth(1), Relief("ridge"))
	Grid(rv.ZoneLabel, Row(0), Column(2), Sticky("we"), Padx("0.4m"), Pady("0.3m"))

	btnFrame := Frame()
	Grid(btnFrame, Row(0), Column(4), Sticky("ne"), Padx("0.3m"), Pady("0.3m"))
	exitBtn := Button(Txt("Exit"), Command(cb.OnExit))
	Grid(exitBtn, In(btnFrame), Row(0), Column(0), Sticky("we"), Padx("0.2m"), Pady("0.2m"))

	rv.Banner = NewBanner(1)

	rv.SourcePnl = NewSourcePanel(rv.logger, cb.Source)
	row := rv.SourcePnl.Build(2)

	rv.RegionPnl = NewRegionPanel(rv.logger, cb.Region)
	row = rv.RegionPnl.Build(row)

	rv.ConfigPanel = NewConfigPanel(rv.cfg, rv.cfgPath, rv.logger, cb.Config)
	row = rv.ConfigPanel.Build(row)

	rv.Preview = NewPreview(row, cb.Preview)
}

// --- FramePresenter view contract ---

func (rv *RootView) UpdatePreview(img image.Image) {
	if rv != nil && rv.Preview != nil {
		rv.Preview.UpdatePreview(img)
	}
}

func (rv *RootView) SetZoneLabel(text string) {
	if rv != nil && rv.ZoneLabel != nil {
		rv.ZoneLabel.Configure(Txt(text))
	}
}

func (rv *RootView) SetSourceStatus(text string) {
	if rv != nil && rv.SourcePnl != nil {
		rv.SourcePnl.SetSourceStatus(text)
	}
}

// --- ConnectPresenter view contract ---

func (rv *RootView) ApplyConnectControls(c connect.Controls) {
	if rv != nil && rv.SourcePnl != nil {
		rv.SourcePnl.ApplyConnectControls(c)
	}
}

func (rv *RootView) ShowBanner(text string) {
	if rv != nil && rv.Banner != nil {
		rv.Banner.Show(text)
	}
}

func (rv *RootView) ClearBanner() {
	if rv != nil && rv.Banner != nil {
		rv.Banner.Clear()
	}
}

// --- SessionPresenter view contract ---

func (rv *RootView) SetSession(session, total time.Duration) {
	if rv != nil && rv.Session != nil {
		rv.Session.SetSession(session, total)
	}
}

// --- Region zoom ---

// UpdateZoom shows a magnified crop of the selected region next to the frame.
func (rv *RootView) UpdateZoom(img image.Image) {
	if rv != nil && rv.Preview != nil {
		rv.Preview.UpdateZoom(img)
	}
}

// PreviewReset clears the preview back to its placeholder images.
func (rv *RootView) PreviewReset() {
	if rv != nil && rv.Preview != nil {
		rv.Preview.Reset()
	}
}

// SetConfigEditable toggles config panel editability.
func (rv *RootView) SetConfigEditable(enabled bool) {
	if rv != nil && rv.ConfigPanel != nil {
		rv.ConfigPanel.SetEditable(enabled)
	}
}
