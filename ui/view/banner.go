package view

import (
	"github.com/soocke/minimap-caller-go/ui/theme"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// Banner is the single-line error strip above the preview. It stays empty
// until something goes wrong; a connect failure or a dead source sets it.
type Banner interface {
	Show(text string)
	Clear()
}

type banner struct {
	label *LabelWidget
}

// NewBanner creates the banner label spanning the full grid width.
func NewBanner(row int) Banner {
	lbl := Label(Txt(""), Anchor("w"))
	Grid(lbl, Row(row), Column(0), Columnspan(5), Sticky("we"), Padx("0.4m"), Pady("0.2m"))
	return &banner{label: lbl}
}

func (b *banner) Show(text string) {
	if b == nil || b.label == nil {
		return
	}
	pal := theme.CurrentPalette()
	b.label.Configure(Txt(text), Foreground("white"), Background(pal.Danger))
}

func (b *banner) Clear() {
	if b == nil || b.label == nil {
		return
	}
	pal := theme.CurrentPalette()
	b.label.Configure(Txt(""), Foreground(pal.Text), Background(pal.AppBg))
}
