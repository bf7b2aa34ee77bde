package tui

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/image/draw"

	"github.com/pithecene-io/lumen/decoder"
	"github.com/pithecene-io/lumen/types"
)

// halfBlock paints the top half of a cell in the foreground colour and the
// bottom half in the background colour, giving two pixels per cell.
const halfBlock = "▀"

// checkerSize is the edge of one checkerboard square in scaled pixels.
const checkerSize = 4

type scaler struct {
	name   string
	interp draw.Interpolator
}

var scalers = []scaler{
	{"nearest", draw.NearestNeighbor},
	{"bilinear", draw.BiLinear},
}

// Backdrops behind transparent pixels.
const (
	backdropChecker = iota
	backdropBlack
	backdropWhite
	backdropCount
)

var backdropNames = [backdropCount]string{"checker", "black", "white"}

var (
	checkerLight = color.NRGBA{R: 0x99, G: 0x99, B: 0x99, A: 0xff}
	checkerDark  = color.NRGBA{R: 0x66, G: 0x66, B: 0x66, A: 0xff}
	black        = color.NRGBA{A: 0xff}
	white        = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
)

// ViewerModel draws a decoded image in the terminal with half-block cells.
type ViewerModel struct {
	source   string
	src      *image.NRGBA
	scaler   int
	backdrop int
	width    int
	height   int
	quitting bool
}

// NewViewerModel creates a viewer for a *decoder.Result.
func NewViewerModel(data any) ViewerModel {
	res, ok := data.(*decoder.Result)
	if !ok || res.Pixels == nil {
		return ViewerModel{}
	}
	m := ViewerModel{src: toNRGBA(res.Pixels)}
	if res.Meta != nil {
		m.source = res.Meta.Source
	}
	return m
}

// toNRGBA wraps the pixel buffer without copying. The layout matches:
// row-major, non-premultiplied RGBA, 8 bits per channel.
func toNRGBA(p *types.PixelBuffer) *image.NRGBA {
	return &image.NRGBA{
		Pix:    p.Pix,
		Stride: p.Stride,
		Rect:   image.Rect(0, 0, p.Width, p.Height),
	}
}

// Init implements tea.Model.
func (m ViewerModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m ViewerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, keys.Scaler):
			m.scaler = (m.scaler + 1) % len(scalers)
		case key.Matches(msg, keys.Background):
			m.backdrop = (m.backdrop + 1) % backdropCount
		}
	}

	return m, nil
}

// View implements tea.Model.
func (m ViewerModel) View() string {
	if m.quitting {
		return ""
	}
	if m.src == nil {
		return "Invalid data type for view_image"
	}

	cols, rows := m.width, m.height
	if cols <= 0 || rows <= 0 {
		cols, rows = 80, 24
	}
	// Title, status and help lines.
	rows = max(1, rows-4)

	b := m.src.Bounds()
	w, h := fitSize(b.Dx(), b.Dy(), cols, rows)
	scaled := scale(m.src, w, h, scalers[m.scaler].interp)

	status := MutedStyle.Render(fmt.Sprintf("%dx%d → %dx%d  %s  %s",
		b.Dx(), b.Dy(), w, h, scalers[m.scaler].name, backdropNames[m.backdrop]))

	return lipgloss.JoinVertical(lipgloss.Left,
		TitleStyle.UnsetMarginBottom().Render(m.source),
		renderHalfBlocks(scaled, m.backdrop),
		status,
		helpLine(keys.Scaler, keys.Background, keys.Quit),
	)
}

// fitSize returns the largest size with the source aspect ratio that fits in
// cols x rows cells, where each cell holds two pixels vertically.
func fitSize(srcW, srcH, cols, rows int) (w, h int) {
	if srcW <= 0 || srcH <= 0 || cols <= 0 || rows <= 0 {
		return 0, 0
	}
	maxH := rows * 2
	factor := min(float64(cols)/float64(srcW), float64(maxH)/float64(srcH))
	w = max(1, int(float64(srcW)*factor))
	h = max(1, int(float64(srcH)*factor))
	return min(w, cols), min(h, maxH)
}

// scale resizes src to w x h. The source is returned unchanged when the
// sizes already match.
func scale(src *image.NRGBA, w, h int, interp draw.Interpolator) *image.NRGBA {
	if src.Bounds().Dx() == w && src.Bounds().Dy() == h {
		return src
	}
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	interp.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}

// backdropAt returns the colour behind pixel (x, y).
func backdropAt(mode, x, y int) color.NRGBA {
	switch mode {
	case backdropBlack:
		return black
	case backdropWhite:
		return white
	default:
		if (x/checkerSize+y/checkerSize)%2 == 0 {
			return checkerLight
		}
		return checkerDark
	}
}

// composite blends c over an opaque backdrop.
func composite(c, bg color.NRGBA) color.NRGBA {
	a := uint32(c.A)
	mix := func(fg, back uint8) uint8 {
		return uint8((uint32(fg)*a + uint32(back)*(255-a) + 127) / 255)
	}
	return color.NRGBA{R: mix(c.R, bg.R), G: mix(c.G, bg.G), B: mix(c.B, bg.B), A: 0xff}
}

func hex(c color.NRGBA) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B))
}

// renderHalfBlocks draws img as ceil(h/2) lines of w cells. An odd final
// row is paired with the backdrop.
func renderHalfBlocks(img *image.NRGBA, mode int) string {
	b := img.Bounds()
	lines := make([]string, 0, (b.Dy()+1)/2)
	for y := b.Min.Y; y < b.Max.Y; y += 2 {
		var line strings.Builder
		for x := b.Min.X; x < b.Max.X; x++ {
			top := composite(img.NRGBAAt(x, y), backdropAt(mode, x, y))
			bottom := backdropAt(mode, x, y+1)
			if y+1 < b.Max.Y {
				bottom = composite(img.NRGBAAt(x, y+1), bottom)
			}
			line.WriteString(lipgloss.NewStyle().
				Foreground(hex(top)).
				Background(hex(bottom)).
				Render(halfBlock))
		}
		lines = append(lines, line.String())
	}
	return strings.Join(lines, "\n")
}
