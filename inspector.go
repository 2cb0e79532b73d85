package main

import (
	"fmt"
	"image/color"
	"log"
	"sync"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/floater/ecs/component"
	"github.com/milk9111/floater/ecs/system"
	"github.com/milk9111/floater/prefabs"
	"golang.design/x/clipboard"
	"golang.org/x/image/font/basicfont"
	"gopkg.in/yaml.v3"
)

const tuningStep = 0.1

// tuningField is one editable coefficient.
type tuningField struct {
	name string
	get  func(component.FloatingCharacter) float64
	set  func(*component.FloatingCharacter, float64)
}

var tuningFields = []tuningField{
	{
		name: "ride_height",
		get:  func(fc component.FloatingCharacter) float64 { return fc.RideHeight },
		set:  func(fc *component.FloatingCharacter, v float64) { fc.RideHeight = v },
	},
	{
		name: "spring_strength",
		get:  func(fc component.FloatingCharacter) float64 { return fc.SpringStrength },
		set:  func(fc *component.FloatingCharacter, v float64) { fc.SpringStrength = v },
	},
	{
		name: "spring_damper",
		get:  func(fc component.FloatingCharacter) float64 { return fc.SpringDamper },
		set:  func(fc *component.FloatingCharacter, v float64) { fc.SpringDamper = v },
	},
}

type inspector struct {
	ui     *ebitenui.UI
	tuning system.TuningAccessor
	labels []*widget.Text
	status *widget.Text
}

// newInspector builds the tuning overlay: a label and -/+ buttons per
// coefficient, and a button that copies the values as a prefab fragment.
func newInspector(tuning system.TuningAccessor) *inspector {
	in := &inspector{tuning: tuning}

	panelImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x00, G: 0x00, B: 0x00, A: 200})
	btnImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 255})
	btnPressedImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x55, G: 0x55, B: 0x55, A: 255})

	goFace := ebtext.NewGoXFace(basicfont.Face7x13)
	var face ebtext.Face = goFace

	white := color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	btnTextColor := &widget.ButtonTextColor{Idle: white}
	button := func(label string, onClick func()) *widget.Button {
		return widget.NewButton(
			widget.ButtonOpts.Image(&widget.ButtonImage{Idle: btnImg, Pressed: btnPressedImg}),
			widget.ButtonOpts.Text(label, &face, btnTextColor),
			widget.ButtonOpts.TextPadding(&widget.Insets{Left: 8, Right: 8, Top: 2, Bottom: 2}),
			widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
				onClick()
			}),
		)
	}

	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(panelImg),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(8),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 12, Bottom: 12, Left: 16, Right: 16}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(280, 0),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{HorizontalPosition: widget.AnchorLayoutPositionEnd, VerticalPosition: widget.AnchorLayoutPositionStart}),
		),
	)

	panel.AddChild(widget.NewText(widget.TextOpts.Text("Tuning (F1)", &face, white)))

	for _, field := range tuningFields {
		row := widget.NewContainer(
			widget.ContainerOpts.Layout(widget.NewRowLayout(
				widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
				widget.RowLayoutOpts.Spacing(6),
			)),
		)
		label := widget.NewText(
			widget.TextOpts.Text("", &face, white),
			widget.TextOpts.WidgetOpts(widget.WidgetOpts.MinSize(180, 0)),
		)
		in.labels = append(in.labels, label)
		row.AddChild(label)
		row.AddChild(button("-", func() { in.nudge(field, -tuningStep) }))
		row.AddChild(button("+", func() { in.nudge(field, tuningStep) }))
		panel.AddChild(row)
	}

	panel.AddChild(button("Copy YAML", in.copyYAML))
	in.status = widget.NewText(widget.TextOpts.Text("", &face, color.NRGBA{R: 0xaa, G: 0xaa, B: 0xaa, A: 0xff}))
	panel.AddChild(in.status)

	root := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout(
			widget.AnchorLayoutOpts.Padding(&widget.Insets{Top: 10, Bottom: 10, Left: 10, Right: 10}),
		)),
	)
	root.AddChild(panel)

	in.ui = &ebitenui.UI{Container: root}
	in.refresh()
	return in
}

func (in *inspector) refresh() {
	fc, ok := in.tuning.Tuning()
	for i, field := range tuningFields {
		if !ok {
			in.labels[i].Label = fmt.Sprintf("%s: -", field.name)
			continue
		}
		in.labels[i].Label = fmt.Sprintf("%s: %.2f", field.name, field.get(fc))
	}
}

func (in *inspector) nudge(field tuningField, delta float64) {
	fc, ok := in.tuning.Tuning()
	if !ok {
		return
	}
	field.set(&fc, field.get(fc)+delta)
	in.tuning.SetTuning(fc)
	in.refresh()
}

func (in *inspector) copyYAML() {
	out, err := tuningYAML(in.tuning)
	if err != nil {
		in.status.Label = err.Error()
		return
	}
	if err := initClipboard(); err != nil {
		log.Printf("Inspector: clipboard unavailable: %v\n%s", err, out)
		in.status.Label = "clipboard unavailable, see log"
		return
	}
	clipboard.Write(clipboard.FmtText, out)
	in.status.Label = "copied"
}

// tuningYAML renders the live tuning as a floating_character prefab entry.
func tuningYAML(tuning system.TuningAccessor) ([]byte, error) {
	fc, ok := tuning.Tuning()
	if !ok {
		return nil, fmt.Errorf("no floating character")
	}
	doc := map[string]prefabs.FloatingCharacterComponentSpec{
		"floating_character": {
			RideHeight:     fc.RideHeight,
			SpringStrength: fc.SpringStrength,
			SpringDamper:   fc.SpringDamper,
		},
	}
	out, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshal tuning: %w", err)
	}
	return out, nil
}

var (
	clipboardOnce sync.Once
	clipboardErr  error
)

func initClipboard() error {
	clipboardOnce.Do(func() {
		clipboardErr = clipboard.Init()
	})
	return clipboardErr
}
