package app

import (
	"fmt"
	"image"
	"log/slog"
	"os"
	"strings"
	"time"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"

	"github.com/soocke/minimap-caller-go/config"
	"github.com/soocke/minimap-caller-go/domain/announce"
	"github.com/soocke/minimap-caller-go/domain/callout"
	"github.com/soocke/minimap-caller-go/domain/connect"
	"github.com/soocke/minimap-caller-go/source"
	"github.com/soocke/minimap-caller-go/store"
	"github.com/soocke/minimap-caller-go/tts"
	"github.com/soocke/minimap-caller-go/ui/images"
	"github.com/soocke/minimap-caller-go/ui/model"
	"github.com/soocke/minimap-caller-go/ui/presenter"
	"github.com/soocke/minimap-caller-go/ui/theme"
	"github.com/soocke/minimap-caller-go/ui/view"
)

type app struct {
	c       *Container
	cfg     *config.Config
	cfgPath string
	logger  *slog.Logger

	settings store.Settings
	speaker  tts.Speaker
	picker   view.RegionPicker

	src          source.FrameSource
	activeRegion int // index into the regions model, -1 for none
	afterID      string
}

// NewApp builds the GUI application: stores, models, presenters and the
// root window. Start() runs the Tk event loop until exit.
func NewApp(title string, width, height int, cfg *config.Config, cfgPath, mapsDir, settingsPath string, logger *slog.Logger) (*app, error) {
	c, err := BuildContainer(cfg, cfgPath, mapsDir, settingsPath, logger)
	if err != nil {
		return nil, err
	}
	a := &app{c: c, cfg: cfg, cfgPath: cfgPath, logger: logger, activeRegion: -1}

	App.WmTitle(title)
	WmProtocol(App, "WM_DELETE_WINDOW", a.exitHandler)
	WmGeometry(App, fmt.Sprintf("%dx%d+100+100", width, height))
	return a, nil
}

func (a *app) Start() {
	theme.InitStyles()
	if a.cfg.Debug {
		startPlatformDebug(a.logger)
	}

	a.settings = a.loadSettings()
	a.speaker = a.buildSpeaker(a.settings.TTSBackend)

	a.picker = view.NewRegionPicker(a.logger, a.onRegionPicked)
	a.c.RootView.Build(view.RootCallbacks{
		Source: view.SourcePanelCallbacks{
			OnConnect:      a.onConnect,
			OnCancel:       func() { a.c.Connector.Cancel() },
			OnModeChanged:  a.onModeChanged,
			OnTTSChanged:   a.onTTSChanged,
			OnToggleDetect: a.onToggleDetect,
			OnPickRegion:   func() { a.picker.OpenOrFocus() },
		},
		Region: view.RegionPanelCallbacks{
			OnAddRegion:      a.onAddRegion,
			OnDeleteSelected: a.onDeleteRegion,
			OnClearRegions:   a.onClearRegions,
			OnRegionSelected: a.onRegionSelected,
			OnNewMap:         a.onNewMap,
			OnLoadMap:        a.onLoadMap,
			OnSaveMap:        a.onSaveMap,
		},
		Preview: view.PreviewCallbacks{
			OnPress:   a.onPreviewPress,
			OnDrag:    a.onPreviewDrag,
			OnRelease: a.onPreviewRelease,
		},
		Config: a.onConfigApplied,
		OnExit: a.exitHandler,
	})

	a.wirePresenters()
	a.restoreSettings()
	a.loadMap(a.settings.MapName)

	// Reconnect the last-used source; detection stays off so this is
	// preview-only until the user starts callouts.
	if strings.TrimSpace(a.settings.Source) != "" {
		a.c.Connector.Connect(a.settings.SourceMode, a.settings.Source)
	}

	a.scheduleTick()
	App.Wait()
}

// wirePresenters connects the models and domain services to the view through
// the presenter layer. All callbacks run on the Tk event loop thread.
func (a *app) wirePresenters() {
	rv := a.c.RootView

	a.c.Frame = &presenter.FramePresenter{
		Detect:       a.c.Detect,
		Marker:       a.c.Marker,
		Detector:     a.c.Detector,
		Mapper:       liveMapper{regions: a.c.Regions},
		Announce:     a.buildAnnouncer(),
		Regions:      a.c.Regions,
		View:         rv,
		Config:       a.cfg,
		Logger:       a.logger,
		OnSourceLost: a.onSourceLost,
		ActiveRegion: a.activeRegionName,
		Draft:        a.c.Drag.Rect,
	}

	a.c.Connector = &presenter.ConnectPresenter{
		Machine: a.c.Machine,
		Build:   source.Build,
		Timeout: time.Duration(config.ConnectTimeoutMS(config.EnvMap(os.Environ()))) * time.Millisecond,
		View:    rv,
		Logger:  a.logger,
		Post:    func(fn func()) { TclAfter(0, fn) },
		After:   func(d time.Duration, fn func()) { TclAfter(d, fn) },
		OnConnected: func(src source.FrameSource) {
			a.closeSource()
			a.src = src
			a.c.Frame.SetSource(src)
		},
	}

	// Freeze the tuning form while a connect attempt is in flight.
	a.c.Machine.AddListener(func(_, next connect.State) {
		rv.SetConfigEditable(next != connect.StateConnecting)
	})

	a.c.SessionP = presenter.NewSessionPresenter(a.c.Session, a.c.Frame, rv)
	a.c.Loop = presenter.NewLoop(a.c.Frame, a.c.SessionP, func() {
		a.refreshZoom()
		a.scheduleTick()
	})
}

// tickInterval derives the update period from the configured FPS so config
// changes apply on the next scheduled tick.
func (a *app) tickInterval() time.Duration {
	fps := a.cfg.FPS
	if fps <= 0 {
		fps = 16
	}
	return time.Duration(float64(time.Second) / fps)
}

func (a *app) scheduleTick() {
	a.afterID = TclAfter(a.tickInterval(), func() { a.c.Loop.Tick() })
}

func (a *app) exitHandler() {
	if a.afterID != "" {
		TclAfterCancel(a.afterID)
	}
	a.closeSource()
	a.persistSettings()
	Destroy(App)
}

func (a *app) closeSource() {
	if a.src == nil {
		return
	}
	if err := a.src.Close(); err != nil {
		a.logger.Warn("closing source", "error", err)
	}
	a.src = nil
}

// --- connect flow ---

func (a *app) onConnect(mode, sourceText string) {
	a.settings.SourceMode = mode
	a.settings.Source = sourceText
	a.persistSettings()
	a.c.Connector.Connect(mode, sourceText)
}

func (a *app) onSourceLost(reason string) {
	a.closeSource()
	a.c.Frame.SetSource(nil)
	a.c.Connector.Disconnect()
	if a.c.Detect.Enabled() {
		a.c.Detect.SetEnabled(false)
		a.c.RootView.SourcePnl.SetDetectLabel("Start Callouts")
	}
	a.c.RootView.ShowBanner("source lost: " + reason)
}

func (a *app) onRegionPicked(spec string) {
	rv := a.c.RootView
	rv.SourcePnl.SetMode("screen")
	rv.SourcePnl.SetSourceText(spec)
	rv.SourcePnl.SetHint(presenter.ModeHint("screen"))
	a.settings.SourceMode = "screen"
	a.settings.Source = spec
	a.persistSettings()
}

func (a *app) onModeChanged(mode string) {
	rv := a.c.RootView
	rv.SourcePnl.SetHint(presenter.ModeHint(mode))
	if fill := presenter.AutofillSource(mode); fill != "" && strings.TrimSpace(rv.SourcePnl.SourceText()) == "" {
		rv.SourcePnl.SetSourceText(fill)
	}
	a.settings.SourceMode = mode
	a.persistSettings()
}

func (a *app) onTTSChanged(backend string) {
	a.speaker = a.buildSpeaker(backend)
	a.c.Frame.Announce = a.buildAnnouncer()
	a.settings.TTSBackend = backend
	a.persistSettings()
}

func (a *app) onToggleDetect() {
	if a.c.Detect.Toggle() {
		a.c.RootView.SourcePnl.SetDetectLabel("Stop Callouts")
	} else {
		a.c.RootView.SourcePnl.SetDetectLabel("Start Callouts")
	}
}

// --- region editing ---

func (a *app) onAddRegion(name, rectText string) {
	rv := a.c.RootView
	name = strings.TrimSpace(name)
	if name == "" {
		rv.RegionPnl.SetStatus("region name required")
		return
	}
	for _, r := range a.c.Regions.Regions() {
		if r.Name == name {
			rv.RegionPnl.SetStatus(fmt.Sprintf("region %q already exists", name))
			return
		}
	}
	x1, y1, x2, y2, err := presenter.ParseRectSpec(rectText)
	if err != nil {
		rv.RegionPnl.SetStatus(err.Error())
		return
	}
	a.c.Regions.Add(callout.BuildRectRegion(name, x1, y1, x2, y2))
	a.refreshRegionList()
	rv.RegionPnl.SetStatus(fmt.Sprintf("added %q", name))
}

func (a *app) onDeleteRegion(i int) {
	if r, ok := a.c.Regions.At(i); ok {
		a.c.Regions.DeleteAt(i)
		a.activeRegion = -1
		a.refreshRegionList()
		a.c.RootView.RegionPnl.SetStatus(fmt.Sprintf("deleted %q", r.Name))
	}
}

func (a *app) onClearRegions() {
	a.c.Regions.Clear()
	a.activeRegion = -1
	a.refreshRegionList()
	a.c.RootView.RegionPnl.SetStatus("regions cleared")
}

func (a *app) onRegionSelected(i int) {
	a.activeRegion = i
	a.refreshZoom()
}

// previewRatio is the frame-to-preview scale of the currently displayed
// frame, 0 when nothing is displayed yet.
func (a *app) previewRatio() float64 {
	frame := a.c.Frame.LastFrame()
	if frame == nil {
		return 0
	}
	b := frame.Bounds()
	return images.ScaleRatio(b.Dx(), b.Dy(), a.cfg.PreviewMaxW, a.cfg.PreviewMaxH)
}

func (a *app) onPreviewPress(x, y int) {
	if a.c.Frame.LastFrame() == nil {
		return
	}
	a.c.Drag.Begin(image.Pt(x, y))
}

func (a *app) onPreviewDrag(x, y int) {
	a.c.Drag.Update(image.Pt(x, y))
}

// onPreviewRelease turns a finished drag into region corners. When a name is
// already typed the region is added immediately; otherwise the corners are
// filled in and the user only has to name it.
func (a *app) onPreviewRelease(x, y int) {
	a.c.Drag.Update(image.Pt(x, y))
	r, ok := a.c.Drag.End()
	if !ok {
		return
	}
	rv := a.c.RootView
	x1, y1, x2, y2, ok := presenter.MapDragToFrame(r, a.previewRatio())
	if !ok {
		rv.RegionPnl.SetStatus("drag a larger rectangle to add a region")
		return
	}
	spec := fmt.Sprintf("%.0f,%.0f,%.0f,%.0f", x1, y1, x2, y2)
	rv.RegionPnl.SetRectText(spec)
	if name := strings.TrimSpace(rv.RegionPnl.RegionName()); name != "" {
		a.onAddRegion(name, spec)
		return
	}
	rv.RegionPnl.SetStatus("rectangle captured, name it and press Add Region")
}

func (a *app) activeRegionName() string {
	if r, ok := a.c.Regions.At(a.activeRegion); ok {
		return r.Name
	}
	return ""
}

// refreshZoom crops the selected region out of the latest frame and shows it
// magnified next to the preview.
func (a *app) refreshZoom() {
	frame := a.c.Frame.LastFrame()
	if frame == nil {
		return
	}
	r, ok := a.c.Regions.At(a.activeRegion)
	if !ok {
		return
	}
	rect, ok := callout.PolygonToRect(r.Polygon)
	if !ok {
		return
	}
	crop, _, err := images.CropRect(frame, image.Rect(int(rect.X1), int(rect.Y1), int(rect.X2), int(rect.Y2)))
	if err != nil {
		return
	}
	a.c.RootView.UpdateZoom(crop)
}

func (a *app) refreshRegionList() {
	regions := a.c.Regions.Regions()
	names := make([]string, 0, len(regions))
	for _, r := range regions {
		names = append(names, r.Name)
	}
	a.c.RootView.RegionPnl.SetRegionNames(names)
}

// --- map persistence ---

func (a *app) onNewMap(name string) {
	name = strings.TrimSpace(name)
	if name == "" {
		a.c.RootView.RegionPnl.SetStatus("map name required")
		return
	}
	a.c.Regions.Reset(name, nil)
	a.activeRegion = -1
	a.refreshRegionList()
	a.c.RootView.RegionPnl.SetMapName(name)
	a.c.RootView.RegionPnl.SetStatus(fmt.Sprintf("new map %q", name))
}

func (a *app) onLoadMap(name string) {
	a.loadMap(name)
	a.settings.MapName = a.c.Regions.MapName()
	a.persistSettings()
}

func (a *app) loadMap(name string) {
	rv := a.c.RootView
	cfg, err := a.c.Maps.Load(name)
	if err != nil {
		a.logger.Warn("map load failed", "map", name, "error", err)
		rv.RegionPnl.SetStatus(fmt.Sprintf("load failed: %v", err))
		return
	}
	a.c.Regions.Reset(cfg.MapName, cfg.Regions)
	a.activeRegion = -1
	a.refreshRegionList()
	a.refreshMapList()
	rv.RegionPnl.SetMapName(cfg.MapName)
	rv.RegionPnl.SetStatus(fmt.Sprintf("loaded %q (%d regions)", cfg.MapName, len(cfg.Regions)))
}

func (a *app) onSaveMap() {
	rv := a.c.RootView
	name := strings.TrimSpace(rv.RegionPnl.MapName())
	if name == "" {
		name = a.c.Regions.MapName()
	}
	if name == "" {
		rv.RegionPnl.SetStatus("map name required")
		return
	}
	a.c.Regions.SetMapName(name)
	path, err := a.c.Maps.Save(&store.MapConfig{MapName: name, Regions: a.c.Regions.Regions()})
	if err != nil {
		rv.RegionPnl.SetStatus(fmt.Sprintf("save failed: %v", err))
		return
	}
	a.c.Regions.MarkSaved()
	a.refreshMapList()
	rv.RegionPnl.SetStatus("saved " + path)
	a.settings.MapName = name
	a.persistSettings()
}

func (a *app) refreshMapList() {
	names, err := a.c.Maps.ListMapNames()
	if err != nil {
		a.logger.Warn("listing maps", "error", err)
		return
	}
	a.c.RootView.RegionPnl.SetMapNames(names)
}

// --- settings / config ---

func (a *app) loadSettings() store.Settings {
	s, err := a.c.Settings.Load()
	if err != nil {
		a.logger.Warn("settings load failed, using defaults", "error", err)
		return store.DefaultSettings()
	}
	return s
}

func (a *app) restoreSettings() {
	rv := a.c.RootView
	rv.SourcePnl.SetMode(a.settings.SourceMode)
	rv.SourcePnl.SetSourceText(a.settings.Source)
	rv.SourcePnl.SetTTSBackend(a.settings.TTSBackend)
	rv.SourcePnl.SetHint(presenter.ModeHint(a.settings.SourceMode))
	a.refreshMapList()
}

func (a *app) persistSettings() {
	if _, err := a.c.Settings.Save(a.settings); err != nil {
		a.logger.Warn("settings save failed", "error", err)
	}
}

func (a *app) onConfigApplied(cfg *config.Config) {
	a.c.Frame.Announce = a.buildAnnouncer()
	a.logger.Info("config applied",
		slog.Float64("fps", cfg.FPS),
		slog.Float64("cooldown_s", cfg.CooldownSeconds),
		slog.Int("stable_frames", cfg.StableFrames),
		slog.Int("min_area", cfg.MinArea),
	)
}

func (a *app) buildSpeaker(backend string) tts.Speaker {
	sp, err := tts.New(backend, a.logger)
	if err != nil {
		a.logger.Warn("tts backend unavailable, falling back to console", "backend", backend, "error", err)
		return &tts.ConsoleSpeaker{Logger: a.logger}
	}
	return sp
}

func (a *app) buildAnnouncer() *announce.Announcer {
	cooldown := time.Duration(a.cfg.CooldownSeconds * float64(time.Second))
	an, err := announce.NewAnnouncer(a.speaker, cooldown, a.cfg.StableFrames, a.logger)
	if err != nil {
		a.logger.Error("building announcer", "error", err)
		an, _ = announce.NewAnnouncer(a.speaker, 2*time.Second, 3, a.logger)
	}
	return an
}

// liveMapper resolves points against the regions model's current content so
// edits take effect without rewiring the presenter.
type liveMapper struct {
	regions *model.RegionsModel
}

func (l liveMapper) MapPoint(p callout.Point) (string, bool) {
	return callout.NewMapper(l.regions.Regions()).MapPoint(p)
}
