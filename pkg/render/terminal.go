package render

import (
	"image/color"

	uv "github.com/charmbracelet/ultraviolet"

	"github.com/taigrr/portalvis/pkg/vis"
)

// Draw converts the framebuffer to terminal cells using ▀ (upper half
// block) with fg=top pixel and bg=bottom pixel, doubling the vertical
// resolution.
func (fb *Framebuffer) Draw(scr uv.Screen, area uv.Rectangle) {
	for row := area.Min.Y; row < area.Max.Y; row++ {
		topY := row * 2
		botY := topY + 1

		for col := area.Min.X; col < area.Max.X && col < fb.Width; col++ {
			topColor := fb.GetPixel(col, topY)
			botColor := fb.GetPixel(col, botY)

			cell := &uv.Cell{
				Content: "▀",
				Width:   1,
				Style: uv.Style{
					Fg: rgbaToColor(topColor),
					Bg: rgbaToColor(botColor),
				},
			}
			scr.SetCell(col, row, cell)
		}
	}
}

// TerminalRenderer presents framebuffers on an ultraviolet terminal.
// Framebuffers are twice the terminal height, collapsed back to cells
// by Draw.
type TerminalRenderer struct {
	term   *uv.Terminal
	width  int
	height int
}

// NewTerminalRenderer wraps a terminal of the given cell dimensions.
func NewTerminalRenderer(term *uv.Terminal, width, height int) *TerminalRenderer {
	return &TerminalRenderer{term: term, width: width, height: height}
}

// FramebufferSize returns the pixel dimensions a framebuffer should
// have for this terminal.
func (r *TerminalRenderer) FramebufferSize() (width, height int) {
	return r.width, r.height * 2
}

// Render draws the framebuffer into the terminal's cell buffer.
func (r *TerminalRenderer) Render(fb *Framebuffer) {
	fb.Draw(r.term, uv.Rect(0, 0, r.width, r.height))
}

// Flush pushes the cell buffer to the terminal.
func (r *TerminalRenderer) Flush() error {
	return r.term.Display()
}

// rgbaToColor converts color.RGBA to Go's color.Color interface.
func rgbaToColor(c color.RGBA) color.Color {
	if c.A == 0 {
		return nil // transparent = no color
	}
	return c
}

// Color is an alias for color.RGBA for convenience.
type Color = color.RGBA

var (
	ColorBlack   = color.RGBA{0, 0, 0, 255}
	ColorWhite   = color.RGBA{255, 255, 255, 255}
	ColorRed     = color.RGBA{255, 0, 0, 255}
	ColorGreen   = color.RGBA{0, 255, 0, 255}
	ColorBlue    = color.RGBA{0, 0, 255, 255}
	ColorYellow  = color.RGBA{255, 255, 0, 255}
	ColorCyan    = color.RGBA{0, 255, 255, 255}
	ColorMagenta = color.RGBA{255, 0, 255, 255}
	ColorGray    = color.RGBA{128, 128, 128, 255}
	ColorDimGray = color.RGBA{64, 64, 64, 255}
)

// PortalColor returns the overlay color for a portal state: green for
// open, red for closed, yellow for blocked, cyan for mirrors, magenta
// for remote views. Opacity scales the alpha.
func PortalColor(state vis.PortalState, opacity float64) color.RGBA {
	var c color.RGBA
	switch state {
	case vis.PortalOpen:
		c = ColorGreen
	case vis.PortalClosed:
		c = ColorRed
	case vis.PortalBlocked:
		c = ColorYellow
	case vis.PortalMirror:
		c = ColorCyan
	case vis.PortalRemote:
		c = ColorMagenta
	default:
		c = ColorWhite
	}
	c.A = uint8(min(max(opacity, 0), 1) * 255)
	return c
}

// AreaColor returns the wireframe color for an area: bright when the
// current query found it visible, dim otherwise.
func AreaColor(visible bool) color.RGBA {
	if visible {
		return ColorWhite
	}
	return ColorDimGray
}

// RGB creates an opaque color from RGB values.
func RGB(r, g, b uint8) color.RGBA {
	return color.RGBA{r, g, b, 255}
}
