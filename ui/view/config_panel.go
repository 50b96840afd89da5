package view

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/soocke/minimap-caller-go/config"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// ConfigPanel encapsulates the detection tuning form and apply logic.
// It owns its widgets and writes back into *config.Config on ApplyChanges.
type ConfigPanel interface {
	Build(startRow int) (endRow int) // constructs widgets starting at startRow, returns next free row
	SetEditable(enabled bool)
	ApplyChanges() // parses widget text into underlying config and persists
}

// ConfigApplied is called with the updated config after a successful apply,
// so the app can rebuild the detector and announcer with the new values.
type ConfigApplied func(cfg *config.Config)

type configPanel struct {
	cfg      *config.Config
	cfgPath  string
	logger   *slog.Logger
	onApply  ConfigApplied
	applyBtn *ButtonWidget
	widgets  map[string]*TextWidget // keyed by internal field id
}

// NewConfigPanel creates the view bound to cfg.
func NewConfigPanel(cfg *config.Config, cfgPath string, logger *slog.Logger, onApply ConfigApplied) ConfigPanel {
	return &configPanel{cfg: cfg, cfgPath: cfgPath, logger: logger, onApply: onApply, widgets: make(map[string]*TextWidget)}
}

func (v *configPanel) Build(startRow int) (row int) {
	c := v.cfg
	row = startRow
	makeRow := func(id, label, value string) {
		lbl := Label(Txt(label), Anchor("w"))
		Grid(lbl, Row(row), Column(3), Sticky("w"), Padx("0.4m"), Pady("0.15m"))
		w := Text(Height(1), Width(12))
		Grid(w, Row(row), Column(4), Sticky("we"), Padx("0.4m"), Pady("0.15m"))
		w.Delete("1.0", END)
		w.Insert("1.0", value)
		v.widgets[id] = w
		row++
	}
	makeRow("fps", "FPS", fmt.Sprintf("%.1f", c.FPS))
	makeRow("cooldownSeconds", "Cooldown Seconds", fmt.Sprintf("%.1f", c.CooldownSeconds))
	makeRow("stableFrames", "Stable Frames", fmt.Sprintf("%d", c.StableFrames))
	makeRow("minArea", "Min Dot Area Px", fmt.Sprintf("%d", c.MinArea))
	v.applyBtn = Button(Txt("Apply Changes"), Command(func() { v.ApplyChanges() }))
	Grid(v.applyBtn, Row(row), Column(3), Columnspan(2), Sticky("we"), Padx("0.4m"), Pady("0.3m"))
	row++
	return row
}

func (v *configPanel) SetEditable(enabled bool) {
	state := "disabled"
	if enabled {
		state = "normal"
	}
	for _, w := range v.widgets {
		if w != nil {
			w.Configure(State(state))
		}
	}
	if v.applyBtn != nil {
		v.applyBtn.Configure(State(state))
	}
}

func (v *configPanel) text(w *TextWidget) string {
	if w == nil {
		return ""
	}
	parts := w.Get("1.0", END)
	return strings.Join(parts, "")
}

func (v *configPanel) ApplyChanges() {
	if v.cfg == nil {
		return
	}
	cfg := *v.cfg // copy
	assignFloat := func(id string, dst *float64) {
		w := v.widgets[id]
		if w == nil {
			return
		}
		if f, ok := parseFloatField(strings.TrimSpace(v.text(w))); ok {
			*dst = f
		}
	}
	assignInt := func(id string, dst *int) {
		w := v.widgets[id]
		if w == nil {
			return
		}
		if i, ok := parseIntField(strings.TrimSpace(v.text(w))); ok {
			*dst = i
		}
	}
	assignFloat("fps", &cfg.FPS)
	assignFloat("cooldownSeconds", &cfg.CooldownSeconds)
	assignInt("stableFrames", &cfg.StableFrames)
	assignInt("minArea", &cfg.MinArea)
	if verr := cfg.Validate(); verr != nil {
		if v.logger != nil {
			v.logger.Warn("config rejected", "error", verr)
		}
		return
	}
	*v.cfg = cfg
	if err := v.cfg.Save(v.cfgPath); err != nil {
		if v.logger != nil {
			v.logger.Error("config save failed", "error", err)
		}
	} else if v.logger != nil {
		v.logger.Info("config saved", "path", v.cfgPath)
	}
	if v.onApply != nil {
		v.onApply(v.cfg)
	}
}

// parsing helpers (unexported)
func parseFloatField(s string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
func parseIntField(s string) (int, bool) {
	i, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, false
	}
	return i, true
}
