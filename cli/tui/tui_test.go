package tui

import (
	"image"
	"image/color"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/image/draw"

	"github.com/pithecene-io/lumen/cli/reader"
	"github.com/pithecene-io/lumen/decoder"
	"github.com/pithecene-io/lumen/types"
)

func TestIsTUISupported(t *testing.T) {
	tests := []struct {
		viewType string
		want     bool
	}{
		{"inspect_chunks", true},
		{"stats_decode", true},
		{"view_image", true},

		// Not supported: list, version, unknown
		{"list_decodes", false},
		{"version", false},
		{"inspect_", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.viewType, func(t *testing.T) {
			if got := IsTUISupported(tt.viewType); got != tt.want {
				t.Errorf("IsTUISupported(%q) = %v, want %v", tt.viewType, got, tt.want)
			}
		})
	}
}

func TestSupportedTUIViews(t *testing.T) {
	views := SupportedTUIViews()
	if len(views) != 3 {
		t.Errorf("SupportedTUIViews() returned %d views, expected 3", len(views))
	}
	for _, v := range views {
		if !IsTUISupported(v) {
			t.Errorf("SupportedTUIViews() returned %q but IsTUISupported returns false", v)
		}
	}
}

func TestRun_UnsupportedViewType(t *testing.T) {
	if err := Run("list_decodes", nil); err == nil {
		t.Error("Expected error for unsupported view type")
	}
}

func TestFitSize(t *testing.T) {
	tests := []struct {
		name                   string
		srcW, srcH, cols, rows int
		wantW, wantH           int
	}{
		{"downscale wide", 200, 100, 50, 40, 50, 25},
		{"downscale tall", 100, 400, 80, 20, 10, 40},
		{"upscale small", 2, 2, 10, 10, 10, 10},
		{"exact", 8, 8, 8, 4, 8, 8},
		{"thin line keeps one pixel", 1000, 1, 10, 10, 10, 1},
		{"empty source", 0, 5, 10, 10, 0, 0},
		{"no room", 5, 5, 0, 10, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := fitSize(tt.srcW, tt.srcH, tt.cols, tt.rows)
			if w != tt.wantW || h != tt.wantH {
				t.Errorf("fitSize = %dx%d, want %dx%d", w, h, tt.wantW, tt.wantH)
			}
		})
	}
}

func TestComposite(t *testing.T) {
	bg := color.NRGBA{R: 100, G: 100, B: 100, A: 255}

	opaque := color.NRGBA{R: 10, G: 20, B: 30, A: 255}
	if got := composite(opaque, bg); got != opaque {
		t.Errorf("opaque = %v, want %v", got, opaque)
	}

	clear := color.NRGBA{R: 255, G: 0, B: 0, A: 0}
	if got := composite(clear, bg); got != bg {
		t.Errorf("transparent = %v, want backdrop %v", got, bg)
	}

	half := composite(color.NRGBA{R: 200, A: 128}, color.NRGBA{A: 255})
	if half.R < 99 || half.R > 101 || half.A != 255 {
		t.Errorf("half = %v, want R about 100 and opaque", half)
	}
}

func TestBackdropAt(t *testing.T) {
	if backdropAt(backdropChecker, 0, 0) != checkerLight {
		t.Error("origin square should be light")
	}
	if backdropAt(backdropChecker, checkerSize, 0) != checkerDark {
		t.Error("next square should be dark")
	}
	if backdropAt(backdropChecker, checkerSize, checkerSize) != checkerLight {
		t.Error("diagonal square should be light")
	}
	if backdropAt(backdropBlack, 3, 3) != black || backdropAt(backdropWhite, 3, 3) != white {
		t.Error("solid backdrops wrong")
	}
}

func TestRenderHalfBlocks_Shape(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 3, 5))
	out := renderHalfBlocks(img, backdropBlack)

	lines := strings.Split(out, "\n")
	if len(lines) != 3 {
		t.Fatalf("lines = %d, want 3 for 5 pixel rows", len(lines))
	}
	for i, line := range lines {
		if n := strings.Count(line, halfBlock); n != 3 {
			t.Errorf("line %d has %d cells, want 3", i, n)
		}
	}
}

func TestScale(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for i := range src.Pix {
		src.Pix[i] = 0xff
	}

	if got := scale(src, 4, 4, draw.NearestNeighbor); got != src {
		t.Error("same size should return the source")
	}

	got := scale(src, 2, 2, draw.NearestNeighbor)
	if got.Bounds().Dx() != 2 || got.Bounds().Dy() != 2 {
		t.Fatalf("bounds = %v", got.Bounds())
	}
	if c := got.NRGBAAt(1, 1); c != white {
		t.Errorf("scaled pixel = %v, want white", c)
	}
}

func newViewerResult() *decoder.Result {
	pix := make([]byte, 4*2*4)
	for i := range pix {
		pix[i] = 0xff
	}
	return &decoder.Result{
		Meta:   &types.DecodeMeta{DecodeID: "d", Source: "white.png"},
		Header: &types.ImageHeader{Width: 4, Height: 2, BitDepth: 8, ColorType: 6},
		Pixels: &types.PixelBuffer{Width: 4, Height: 2, Stride: 16, Pix: pix},
	}
}

func TestViewerModel_Keys(t *testing.T) {
	var m tea.Model = NewViewerModel(newViewerResult())

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("s")})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("b")})
	vm := m.(ViewerModel)
	if vm.scaler != 1 || vm.backdrop != backdropBlack {
		t.Errorf("scaler/backdrop = %d/%d, want 1/%d", vm.scaler, vm.backdrop, backdropBlack)
	}

	m, _ = m.Update(tea.WindowSizeMsg{Width: 40, Height: 12})
	view := m.View()
	if !strings.Contains(view, "white.png") || !strings.Contains(view, "bilinear") {
		t.Errorf("view missing title or scaler name:\n%s", view)
	}

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Error("q should return a quit command")
	}
}

func TestViewerModel_InvalidData(t *testing.T) {
	if v := NewViewerModel("nope").View(); !strings.Contains(v, "Invalid data type") {
		t.Errorf("view = %q", v)
	}
}

func TestInspectModel_Cursor(t *testing.T) {
	report := &reader.InspectReport{
		Source: "a.png",
		Chunks: []reader.ChunkRow{
			{Index: 0, Type: "IHDR", Length: 13, Critical: true},
			{Index: 1, Type: "IDAT", Length: 20, Critical: true},
			{Index: 2, Type: "IEND", Critical: true},
		},
		Complete: true,
	}

	var m tea.Model = NewInspectModel(report)
	down := tea.KeyMsg{Type: tea.KeyDown}
	for range 5 {
		m, _ = m.Update(down)
	}
	if c := m.(InspectModel).cursor; c != 2 {
		t.Errorf("cursor = %d, want clamped at 2", c)
	}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	if c := m.(InspectModel).cursor; c != 1 {
		t.Errorf("cursor = %d, want 1", c)
	}

	view := m.View()
	for _, want := range []string{"IHDR", "IDAT", "IEND", "complete"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestVisibleRange(t *testing.T) {
	tests := []struct {
		cursor, total, height int
		start, end            int
	}{
		{0, 5, 10, 0, 5},
		{0, 20, 4, 0, 4},
		{10, 20, 4, 8, 12},
		{19, 20, 4, 16, 20},
		{3, 20, 0, 0, 20},
	}
	for _, tt := range tests {
		start, end := visibleRange(tt.cursor, tt.total, tt.height)
		if start != tt.start || end != tt.end {
			t.Errorf("visibleRange(%d, %d, %d) = %d..%d, want %d..%d",
				tt.cursor, tt.total, tt.height, start, end, tt.start, tt.end)
		}
	}
}

func TestRenderStatsStatic(t *testing.T) {
	out := RenderStatsStatic(&reader.DecodeSummary{
		Source:          "a.png",
		Header:          types.ImageHeader{Width: 3, Height: 2},
		Chunks:          4,
		InflateAttempts: 2,
	})
	for _, want := range []string{"a.png", "3x2", "Records", "Inflate tries"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
}
