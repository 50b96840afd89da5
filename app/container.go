package app

import (
	"fmt"
	"log/slog"

	"github.com/soocke/minimap-caller-go/assets"
	"github.com/soocke/minimap-caller-go/config"
	"github.com/soocke/minimap-caller-go/domain/connect"
	"github.com/soocke/minimap-caller-go/domain/detect"
	"github.com/soocke/minimap-caller-go/store"
	"github.com/soocke/minimap-caller-go/ui/model"
	"github.com/soocke/minimap-caller-go/ui/presenter"
	"github.com/soocke/minimap-caller-go/ui/view"
)

// Container assembles models, services, presenters and the root view.
type Container struct {
	Config   *config.Config
	Logger   *slog.Logger
	Maps     *store.MapStore
	Settings *store.SettingsStore

	// Models
	Regions *model.RegionsModel
	Session *model.SessionModel
	Marker  *model.MarkerModel
	Detect  *model.DetectModel
	Drag    *model.DragModel

	// Domain
	Machine  *connect.Machine
	Detector *detect.RedDotDetector

	// View
	RootView *view.RootView

	// Presenters, wired by the app wrapper once view callbacks exist.
	Frame     *presenter.FramePresenter
	Connector *presenter.ConnectPresenter
	SessionP  *presenter.SessionPresenter
	Loop      *presenter.Loop
}

// BuildContainer constructs all components. Side effects are limited to
// creating the maps directory, seeding the starter map and the settings file
// location.
func BuildContainer(cfg *config.Config, cfgPath, mapsDir, settingsPath string, logger *slog.Logger) (*Container, error) {
	maps, err := store.NewMapStore(mapsDir)
	if err != nil {
		return nil, fmt.Errorf("app: %w", err)
	}
	if err := maps.SeedDefault(assets.DefaultMapName, assets.DefaultMapYAML); err != nil {
		return nil, fmt.Errorf("app: seed default map: %w", err)
	}
	settings, err := store.NewSettingsStore(settingsPath)
	if err != nil {
		return nil, fmt.Errorf("app: %w", err)
	}

	c := &Container{Config: cfg, Logger: logger, Maps: maps, Settings: settings}
	c.Regions = model.NewRegionsModel()
	c.Session = model.NewSessionModel()
	c.Marker = model.NewMarkerModel()
	c.Detect = &model.DetectModel{}
	c.Drag = model.NewDragModel()
	c.Machine = connect.NewMachine(logger)
	c.Detector = detect.NewRedDotDetector(cfg, logger)
	c.RootView = view.NewRootView(cfg, cfgPath, logger)
	// Presenters wired after the view callbacks are resolved by the app wrapper.
	return c, nil
}
