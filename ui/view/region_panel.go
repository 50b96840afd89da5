package view

import (
	"log/slog"
	"strconv"
	"strings"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// RegionPanelCallbacks wires the region editor actions back to the app.
type RegionPanelCallbacks struct {
	OnAddRegion      func(name, rectText string)
	OnDeleteSelected func(index int)
	OnClearRegions   func()
	OnRegionSelected func(index int)
	OnNewMap         func(name string)
	OnLoadMap        func(name string)
	OnSaveMap        func()
}

// RegionPanel is the map and region editor: pick or create a map, list its
// regions, and add rectangle regions either by dragging on the preview or by
// typing the two corners.
type RegionPanel interface {
	Build(startRow int) (endRow int)
	SetMapNames(names []string)
	SetMapName(name string)
	MapName() string
	SetRegionNames(names []string)
	SelectedRegion() int
	RegionName() string
	SetRectText(text string)
	SetStatus(text string)
}

type regionPanel struct {
	logger *slog.Logger
	cb     RegionPanelCallbacks

	mapBox    *TComboboxWidget
	mapNames  []string
	mapName   *TextWidget
	regionBox *TComboboxWidget
	regions   []string
	nameText  *TextWidget
	rectText  *TextWidget
	statusLbl *LabelWidget
}

func NewRegionPanel(logger *slog.Logger, cb RegionPanelCallbacks) RegionPanel {
	return &regionPanel{logger: logger, cb: cb}
}

func (v *regionPanel) Build(startRow int) (row int) {
	row = startRow

	Grid(Label(Txt("Map"), Anchor("w")), Row(row), Column(0), Sticky("w"), Padx("0.4m"), Pady("0.15m"))
	v.mapBox = TCombobox(Values([]string{"<none>"}), Width(18))
	Grid(v.mapBox, Row(row), Column(1), Sticky("we"), Padx("0.4m"), Pady("0.15m"))
	v.mapBox.Current(0)
	loadBtn := Button(Txt("Load"), Command(func() {
		idx := v.comboIndex(v.mapBox)
		if idx >= 0 && idx < len(v.mapNames) && v.cb.OnLoadMap != nil {
			v.cb.OnLoadMap(v.mapNames[idx])
		}
	}))
	Grid(loadBtn, Row(row), Column(2), Sticky("we"), Padx("0.2m"), Pady("0.15m"))
	row++

	Grid(Label(Txt("Map name"), Anchor("w")), Row(row), Column(0), Sticky("w"), Padx("0.4m"), Pady("0.15m"))
	v.mapName = Text(Height(1), Width(18))
	Grid(v.mapName, Row(row), Column(1), Sticky("we"), Padx("0.4m"), Pady("0.15m"))
	newBtn := Button(Txt("New"), Command(func() {
		if v.cb.OnNewMap != nil {
			v.cb.OnNewMap(v.MapName())
		}
	}))
	Grid(newBtn, Row(row), Column(2), Sticky("we"), Padx("0.2m"), Pady("0.15m"))
	row++

	Grid(Label(Txt("Regions"), Anchor("w")), Row(row), Column(0), Sticky("w"), Padx("0.4m"), Pady("0.15m"))
	v.regionBox = TCombobox(Values([]string{"<empty>"}), Width(18))
	Grid(v.regionBox, Row(row), Column(1), Sticky("we"), Padx("0.4m"), Pady("0.15m"))
	v.regionBox.Current(0)
	Bind(v.regionBox, "<<ComboboxSelected>>", Command(func() {
		if idx := v.SelectedRegion(); idx >= 0 && v.cb.OnRegionSelected != nil {
			v.cb.OnRegionSelected(idx)
		}
	}))
	delBtn := Button(Txt("Delete"), Command(func() {
		if idx := v.SelectedRegion(); idx >= 0 && v.cb.OnDeleteSelected != nil {
			v.cb.OnDeleteSelected(idx)
		}
	}))
	Grid(delBtn, Row(row), Column(2), Sticky("we"), Padx("0.2m"), Pady("0.15m"))
	row++

	Grid(Label(Txt("Region name"), Anchor("w")), Row(row), Column(0), Sticky("w"), Padx("0.4m"), Pady("0.15m"))
	v.nameText = Text(Height(1), Width(18))
	Grid(v.nameText, Row(row), Column(1), Sticky("we"), Padx("0.4m"), Pady("0.15m"))
	clearBtn := Button(Txt("Clear All"), Command(func() {
		if v.cb.OnClearRegions != nil {
			v.cb.OnClearRegions()
		}
	}))
	Grid(clearBtn, Row(row), Column(2), Sticky("we"), Padx("0.2m"), Pady("0.15m"))
	row++

	Grid(Label(Txt("Corners x1,y1,x2,y2"), Anchor("w")), Row(row), Column(0), Sticky("w"), Padx("0.4m"), Pady("0.15m"))
	v.rectText = Text(Height(1), Width(18))
	Grid(v.rectText, Row(row), Column(1), Sticky("we"), Padx("0.4m"), Pady("0.15m"))
	addBtn := Button(Txt("Add Region"), Command(func() {
		if v.cb.OnAddRegion != nil {
			v.cb.OnAddRegion(v.textOf(v.nameText), v.textOf(v.rectText))
		}
	}))
	Grid(addBtn, Row(row), Column(2), Sticky("we"), Padx("0.2m"), Pady("0.15m"))
	row++

	saveBtn := Button(Txt("Save Map"), Command(func() {
		if v.cb.OnSaveMap != nil {
			v.cb.OnSaveMap()
		}
	}))
	Grid(saveBtn, Row(row), Column(0), Columnspan(2), Sticky("we"), Padx("0.4m"), Pady("0.2m"))
	row++

	v.statusLbl = Label(Txt(""), Anchor("w"))
	Grid(v.statusLbl, Row(row), Column(0), Columnspan(3), Sticky("we"), Padx("0.4m"))
	row++
	return row
}

func (v *regionPanel) comboIndex(box *TComboboxWidget) int {
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

func (v *regionPanel) textOf(w *TextWidget) string {
	if w == nil {
		return ""
	}
	parts := w.Get("1.0", END)
	return strings.TrimSpace(strings.Join(parts, ""))
}

func (v *regionPanel) SetMapNames(names []string) {
	v.mapNames = append([]string(nil), names...)
	display := names
	if len(display) == 0 {
		display = []string{"<none>"}
	}
	v.mapBox.Configure(Values(display))
	v.mapBox.Current(0)
}

func (v *regionPanel) SetMapName(name string) {
	if v.mapName == nil {
		return
	}
	v.mapName.Delete("1.0", END)
	v.mapName.Insert("1.0", name)
}

func (v *regionPanel) MapName() string { return v.textOf(v.mapName) }

// RegionName returns the pending region name entry, used when a drag on the
// preview finishes.
func (v *regionPanel) RegionName() string { return v.textOf(v.nameText) }

// SetRectText fills the corner entry, e.g. from a finished preview drag.
func (v *regionPanel) SetRectText(text string) {
	if v.rectText == nil {
		return
	}
	v.rectText.Delete("1.0", END)
	v.rectText.Insert("1.0", text)
}

func (v *regionPanel) SetRegionNames(names []string) {
	v.regions = append([]string(nil), names...)
	display := names
	if len(display) == 0 {
		display = []string{"<empty>"}
	}
	v.regionBox.Configure(Values(display))
	v.regionBox.Current(0)
}

// SelectedRegion returns the selected region index, -1 when the list is empty.
func (v *regionPanel) SelectedRegion() int {
	if len(v.regions) == 0 {
		return -1
	}
	idx := v.comboIndex(v.regionBox)
	if idx < 0 || idx >= len(v.regions) {
		return -1
	}
	return idx
}

func (v *regionPanel) SetStatus(text string) {
	if v.statusLbl != nil {
		v.statusLbl.Configure(Txt(text))
	}
}
