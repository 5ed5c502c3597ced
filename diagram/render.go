package diagram

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Renderer rasterizes a validated DAG into a PNG circuit diagram.
type Renderer struct {
	lineWidth   int
	lineSpacing int
	topY        int
	lineOffsetX int
	textOffsetX int
	gateSpace   int
	gateSize    int
	inputText   string
}

// NewDefaultRenderer returns a Renderer with the same proportions as
// the teacher's default circuit renderer.
func NewDefaultRenderer() *Renderer {
	return &Renderer{
		lineWidth:   240,
		lineSpacing: 40,
		topY:        20,
		lineOffsetX: 30,
		textOffsetX: 5,
		gateSpace:   10,
		gateSize:    30,
		inputText:   "|0>",
	}
}

// Render draws dag (which must already be Validate()d) to an RGBA image.
func (r Renderer) Render(dag *DAG) *image.RGBA {
	lanes := dag.Lanes()
	steps := dag.Steps()
	depth := dag.Depth()

	width := r.lineOffsetX + r.lineWidth
	if need := r.lineOffsetX + r.gateSpace + depth*(r.gateSize+r.gateSpace); need > width {
		width = need
	}
	height := r.topY
	if lanes > 0 {
		height = r.topY + lanes*r.lineSpacing
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), &image.Uniform{color.White}, image.Point{}, draw.Src)
	if lanes == 0 {
		return img
	}

	y := r.topY
	for i := 0; i < lanes; i++ {
		r.drawLine(img, image.Pt(r.lineOffsetX, y), image.Pt(r.lineOffsetX+r.lineWidth, y), color.Black)
		r.drawText(img, image.Pt(r.textOffsetX, y+5), color.Black, r.inputText)
		y += r.lineSpacing
	}

	for _, n := range steps {
		col := dag.Column(n)
		r.drawNode(img, dag, n, col)
	}
	return img
}

// RenderToFile renders dag and writes it to path as a PNG.
func (r Renderer) RenderToFile(dag *DAG, path string) error {
	img := r.Render(dag)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("diagram: cannot create %s: %w", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("diagram: cannot encode png: %w", err)
	}
	return nil
}

func (r Renderer) drawNode(img *image.RGBA, dag *DAG, n *Node, step int) {
	blue := color.RGBA{0, 0, 255, 255}
	black := color.Black

	allLanes := append(append([]int{}, n.Controls...), n.Targets...)
	minLane, maxLane := allLanes[0], allLanes[0]
	for _, l := range allLanes {
		if l < minLane {
			minLane = l
		}
		if l > maxLane {
			maxLane = l
		}
	}
	x := r.lineOffsetX + r.gateSpace + step*(r.gateSize+r.gateSpace)
	if maxLane > minLane {
		top := r.topY + minLane*r.lineSpacing
		bottom := r.topY + maxLane*r.lineSpacing
		r.drawLine(img, image.Pt(x+r.gateSize/2, top), image.Pt(x+r.gateSize/2, bottom), black)
	}

	for _, lane := range n.Controls {
		y := r.topY + lane*r.lineSpacing
		r.drawDot(img, x+r.gateSize/2, y, black)
	}
	for _, lane := range n.Targets {
		y := r.topY + lane*r.lineSpacing - r.gateSize/2
		rect := image.Rect(x, y, x+r.gateSize, y+r.gateSize)
		draw.Draw(img, rect, &image.Uniform{blue}, image.Point{}, draw.Src)
		cx, cy := (rect.Min.X+rect.Max.X)/2, (rect.Min.Y+rect.Max.Y)/2
		r.drawTextAroundCenter(img, cx, cy, color.White, n.Symbol)
	}
}

func (r Renderer) drawDot(img *image.RGBA, x, y int, col color.Color) {
	for dx := -2; dx <= 2; dx++ {
		for dy := -2; dy <= 2; dy++ {
			if dx*dx+dy*dy <= 4 {
				img.Set(x+dx, y+dy, col)
			}
		}
	}
}

func (r Renderer) drawLine(img *image.RGBA, start, end image.Point, col color.Color) {
	dx, dy := abs(end.X-start.X), abs(end.Y-start.Y)
	sx, sy := sign(end.X-start.X), sign(end.Y-start.Y)
	x, y := start.X, start.Y
	err := dx - dy
	for {
		img.Set(x, y, col)
		if x == end.X && y == end.Y {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x += sx
		}
		if e2 < dx {
			err += dx
			y += sy
		}
	}
}

func (r Renderer) drawText(img *image.RGBA, p image.Point, col color.Color, txt string) {
	d := &font.Drawer{Dst: img, Src: image.NewUniform(col), Face: basicfont.Face7x13, Dot: fixed.P(p.X, p.Y)}
	d.DrawString(txt)
}

func (r Renderer) drawTextAroundCenter(img *image.RGBA, xPos, yPos int, col color.Color, txt string) {
	d := &font.Drawer{Dst: img, Src: image.NewUniform(col), Face: basicfont.Face7x13}
	corrX := fixed.I(xPos) - d.MeasureString(txt)/2
	bounds, _ := d.BoundString(txt)
	textHeight := bounds.Max.Y - bounds.Min.Y
	corrY := fixed.I(yPos + textHeight.Ceil()/2 - 1)
	d.Dot = fixed.Point26_6{X: corrX, Y: corrY}
	d.DrawString(txt)
}

func abs(a int) int {
	if a < 0 {
		return -a
	}
	return a
}

func sign(a int) int {
	switch {
	case a < 0:
		return -1
	case a > 0:
		return 1
	default:
		return 0
	}
}
