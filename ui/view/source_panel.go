package view

import (
	"log/slog"
	"strconv"
	"strings"

	"github.com/soocke/minimap-caller-go/domain/connect"
	"github.com/soocke/minimap-caller-go/source"
	"github.com/soocke/minimap-caller-go/tts"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// SourcePanelCallbacks wires user actions back to the presenters.
type SourcePanelCallbacks struct {
	OnConnect      func(mode, sourceText string)
	OnCancel       func()
	OnModeChanged  func(mode string)
	OnTTSChanged   func(backend string)
	OnToggleDetect func()
	OnPickRegion   func() // opens the screen-region overlay
}

// SourcePanel groups the source mode selector, the source entry, the TTS
// backend selector and the connect controls.
type SourcePanel interface {
	Build(startRow int) (endRow int)
	Mode() string
	SourceText() string
	SetSourceText(text string)
	TTSBackend() string
	SetMode(mode string)
	SetTTSBackend(backend string)
	SetHint(text string)
	SetSourceStatus(text string)
	SetDetectLabel(text string)
	ApplyConnectControls(c connect.Controls)
}

type sourcePanel struct {
	logger *slog.Logger
	cb     SourcePanelCallbacks

	modeBox    *TComboboxWidget
	sourceText *TextWidget
	ttsBox     *TComboboxWidget
	hintLbl    *LabelWidget
	statusLbl  *LabelWidget
	connectBtn *ButtonWidget
	cancelBtn  *ButtonWidget
	detectBtn  *ButtonWidget
}

// NewSourcePanel creates the panel; Build must be called before use.
func NewSourcePanel(logger *slog.Logger, cb SourcePanelCallbacks) SourcePanel {
	return &sourcePanel{logger: logger, cb: cb}
}

func (v *sourcePanel) Build(startRow int) (row int) {
	row = startRow

	modes := source.Modes()
	Grid(Label(Txt("Source mode"), Anchor("w")), Row(row), Column(0), Sticky("w"), Padx("0.4m"), Pady("0.15m"))
	v.modeBox = TCombobox(Values(modes), Width(12))
	Grid(v.modeBox, Row(row), Column(1), Sticky("we"), Padx("0.4m"), Pady("0.15m"))
	v.modeBox.Current(0)
	Bind(v.modeBox, "<<ComboboxSelected>>", Command(func() {
		idx := v.comboIndex(v.modeBox)
		if idx >= 0 && idx < len(modes) && v.cb.OnModeChanged != nil {
			v.cb.OnModeChanged(modes[idx])
		}
	}))
	pickBtn := Button(Txt("Pick Region"), Command(func() {
		if v.cb.OnPickRegion != nil {
			v.cb.OnPickRegion()
		}
	}))
	Grid(pickBtn, Row(row), Column(2), Sticky("we"), Padx("0.2m"), Pady("0.15m"))
	row++

	Grid(Label(Txt("Source"), Anchor("w")), Row(row), Column(0), Sticky("w"), Padx("0.4m"), Pady("0.15m"))
	v.sourceText = Text(Height(1), Width(36))
	Grid(v.sourceText, Row(row), Column(1), Columnspan(2), Sticky("we"), Padx("0.4m"), Pady("0.15m"))
	row++

	v.hintLbl = Label(Txt(""), Anchor("w"))
	Grid(v.hintLbl, Row(row), Column(1), Columnspan(2), Sticky("w"), Padx("0.4m"))
	row++

	ttsBackends := tts.Backends()
	Grid(Label(Txt("Voice"), Anchor("w")), Row(row), Column(0), Sticky("w"), Padx("0.4m"), Pady("0.15m"))
	v.ttsBox = TCombobox(Values(ttsBackends), Width(12))
	Grid(v.ttsBox, Row(row), Column(1), Sticky("we"), Padx("0.4m"), Pady("0.15m"))
	v.ttsBox.Current(0)
	Bind(v.ttsBox, "<<ComboboxSelected>>", Command(func() {
		idx := v.comboIndex(v.ttsBox)
		if idx >= 0 && idx < len(ttsBackends) && v.cb.OnTTSChanged != nil {
			v.cb.OnTTSChanged(ttsBackends[idx])
		}
	}))
	row++

	v.connectBtn = Button(Txt("Connect source"), Command(func() {
		if v.cb.OnConnect != nil {
			v.cb.OnConnect(v.Mode(), v.SourceText())
		}
	}))
	Grid(v.connectBtn, Row(row), Column(0), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	v.cancelBtn = Button(Txt("Cancel"), Command(func() {
		if v.cb.OnCancel != nil {
			v.cb.OnCancel()
		}
	}))
	v.cancelBtn.Configure(State("disabled"))
	Grid(v.cancelBtn, Row(row), Column(1), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	v.detectBtn = Button(Txt("Start Callouts"), Command(func() {
		if v.cb.OnToggleDetect != nil {
			v.cb.OnToggleDetect()
		}
	}))
	Grid(v.detectBtn, Row(row), Column(2), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	row++

	v.statusLbl = Label(Txt("disconnected"), Borderwidth(1), Relief("ridge"))
	Grid(v.statusLbl, Row(row), Column(0), Columnspan(3), Sticky("we"), Padx("0.4m"), Pady("0.2m"))
	row++
	return row
}

func (v *sourcePanel) comboIndex(box *TComboboxWidget) int {
	if box == nil {
		return -1
	}
	idxStr := box.Current(nil)
	idx, err := strconv.Atoi(idxStr)
	if err != nil {
		if v.logger != nil {
			v.logger.Error("combobox selection parse error", "error", err)
		}
		return -1
	}
	return idx
}

func (v *sourcePanel) Mode() string {
	idx := v.comboIndex(v.modeBox)
	modes := source.Modes()
	if idx >= 0 && idx < len(modes) {
		return modes[idx]
	}
	return source.ModeMock
}

func (v *sourcePanel) SetMode(mode string) {
	for i, m := range source.Modes() {
		if m == mode {
			v.modeBox.Current(i)
			return
		}
	}
}

func (v *sourcePanel) SourceText() string {
	if v.sourceText == nil {
		return ""
	}
	parts := v.sourceText.Get("1.0", END)
	return strings.TrimSpace(strings.Join(parts, ""))
}

func (v *sourcePanel) SetSourceText(text string) {
	if v.sourceText == nil {
		return
	}
	v.sourceText.Delete("1.0", END)
	v.sourceText.Insert("1.0", text)
}

func (v *sourcePanel) TTSBackend() string {
	idx := v.comboIndex(v.ttsBox)
	backends := tts.Backends()
	if idx >= 0 && idx < len(backends) {
		return backends[idx]
	}
	return backends[0]
}

func (v *sourcePanel) SetTTSBackend(backend string) {
	for i, b := range tts.Backends() {
		if b == backend {
			v.ttsBox.Current(i)
			return
		}
	}
}

func (v *sourcePanel) SetHint(text string) {
	if v.hintLbl != nil {
		v.hintLbl.Configure(Txt(text))
	}
}

func (v *sourcePanel) SetSourceStatus(text string) {
	if v.statusLbl != nil {
		v.statusLbl.Configure(Txt(text))
	}
}

func (v *sourcePanel) SetDetectLabel(text string) {
	if v.detectBtn != nil {
		v.detectBtn.Configure(Txt(text))
	}
}

func (v *sourcePanel) ApplyConnectControls(c connect.Controls) {
	if v.connectBtn != nil {
		state := "disabled"
		if c.ConnectEnabled {
			state = "normal"
		}
		v.connectBtn.Configure(Txt(c.ConnectButtonText), State(state))
	}
	if v.cancelBtn != nil {
		state := "disabled"
		if c.CancelEnabled {
			state = "normal"
		}
		v.cancelBtn.Configure(State(state))
	}
}
