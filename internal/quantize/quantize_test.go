package quantize

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/ironsheep/image-quantize/internal/imaging"
)

// createGradientImage creates an image with many distinct colors.
func createGradientImage(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{
				R: uint8(x * 255 / (width - 1)),
				G: uint8(y * 255 / (height - 1)),
				B: uint8((x + y) * 255 / (width + height - 2)),
				A: 255,
			})
		}
	}
	return img
}

// createTwoByTwo returns the 2x2 image red, red, green, blue.
func createTwoByTwo() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{255, 0, 0, 255})
	img.Set(1, 0, color.RGBA{255, 0, 0, 255})
	img.Set(0, 1, color.RGBA{0, 255, 0, 255})
	img.Set(1, 1, color.RGBA{0, 0, 255, 255})
	return img
}

func distinct(img image.Image) map[imaging.RGBColor]int {
	colors := make(map[imaging.RGBColor]int)
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			colors[imaging.RGBOf(img.At(x, y))]++
		}
	}
	return colors
}

func TestNew_InvalidColors(t *testing.T) {
	for _, n := range []int{0, -1, MaxColors + 1} {
		_, err := New(n, MethodMedianCut)
		if !errors.Is(err, ErrQuantize) {
			t.Errorf("New(%d) error should wrap ErrQuantize, got %v", n, err)
		}
	}
}

func TestNew_DefaultMethod(t *testing.T) {
	q, err := New(4, "")
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if q.Method() != MethodMedianCut {
		t.Errorf("Method: got %s, want %s", q.Method(), MethodMedianCut)
	}
	if q.Colors() != 4 {
		t.Errorf("Colors: got %d, want 4", q.Colors())
	}
}

func TestParseMethod(t *testing.T) {
	tests := []struct {
		in      string
		want    Method
		wantErr bool
	}{
		{"mediancut", MethodMedianCut, false},
		{"KMeans", MethodKMeans, false},
		{" dominant ", MethodDominant, false},
		{"octree", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMethod(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrQuantize) {
					t.Errorf("ParseMethod(%q) error should wrap ErrQuantize, got %v", tt.in, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseMethod(%q) failed: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseMethod(%q): got %s, want %s", tt.in, got, tt.want)
			}
		})
	}
}

func TestImage_EmptyImage(t *testing.T) {
	q, err := New(4, MethodMedianCut)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	_, err = q.Image(image.NewRGBA(image.Rect(0, 0, 0, 0)))
	if !errors.Is(err, ErrQuantize) {
		t.Errorf("error should wrap ErrQuantize, got %v", err)
	}

	_, err = q.Image(nil)
	if !errors.Is(err, ErrQuantize) {
		t.Errorf("nil image error should wrap ErrQuantize, got %v", err)
	}
}

func TestImage_ZeroValueQuantizer(t *testing.T) {
	var q Quantizer
	_, err := q.Image(createTwoByTwo())
	if !errors.Is(err, ErrQuantize) {
		t.Errorf("zero Quantizer error should wrap ErrQuantize, got %v", err)
	}
}

func TestImage_Passthrough(t *testing.T) {
	src := createTwoByTwo()

	for _, m := range Methods() {
		t.Run(string(m), func(t *testing.T) {
			q, err := New(4, m)
			if err != nil {
				t.Fatalf("New failed: %v", err)
			}
			out, err := q.Image(src)
			if err != nil {
				t.Fatalf("Image failed: %v", err)
			}

			if out.Bounds() != src.Bounds() {
				t.Fatalf("bounds: got %v, want %v", out.Bounds(), src.Bounds())
			}
			for y := 0; y < 2; y++ {
				for x := 0; x < 2; x++ {
					if got, want := imaging.RGBOf(out.At(x, y)), imaging.RGBOf(src.At(x, y)); got != want {
						t.Errorf("pixel (%d,%d): got %v, want %v", x, y, got, want)
					}
				}
			}

			// First-seen order: red, green, blue.
			want := []imaging.RGBColor{{R: 255}, {G: 255}, {B: 255}}
			if len(out.Palette) != len(want) {
				t.Fatalf("palette size: got %d, want %d", len(out.Palette), len(want))
			}
			for i, c := range out.Palette {
				if imaging.RGBOf(c) != want[i] {
					t.Errorf("palette[%d]: got %v, want %v", i, imaging.RGBOf(c), want[i])
				}
			}
		})
	}
}

func TestImage_ExactlyKColors(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 4, 1))
	colors := []color.RGBA{{10, 10, 10, 255}, {20, 20, 20, 255}, {30, 30, 30, 255}, {40, 40, 40, 255}}
	for x, c := range colors {
		src.Set(x, 0, c)
	}

	q, _ := New(4, MethodMedianCut)
	out, err := q.Image(src)
	if err != nil {
		t.Fatalf("Image failed: %v", err)
	}
	for x, c := range colors {
		if got := imaging.RGBOf(out.At(x, 0)); got != imaging.RGBOf(c) {
			t.Errorf("pixel %d: got %v, want %v", x, got, imaging.RGBOf(c))
		}
	}
}

func TestImage_AtMostKColors(t *testing.T) {
	src := createGradientImage(64, 48)

	for _, m := range Methods() {
		for _, k := range []int{1, 2, 4, 8} {
			q, err := New(k, m)
			if err != nil {
				t.Fatalf("New(%d, %s) failed: %v", k, m, err)
			}
			out, err := q.Image(src)
			if err != nil {
				t.Fatalf("%s k=%d: Image failed: %v", m, k, err)
			}

			if out.Bounds().Dx() != 64 || out.Bounds().Dy() != 48 {
				t.Errorf("%s k=%d: dimensions %dx%d, want 64x48", m, k, out.Bounds().Dx(), out.Bounds().Dy())
			}
			if len(out.Palette) > k {
				t.Errorf("%s k=%d: palette has %d colors", m, k, len(out.Palette))
			}
			if n := len(distinct(out)); n > k || n < 1 {
				t.Errorf("%s k=%d: image has %d distinct colors", m, k, n)
			}
		}
	}
}

func TestImage_MedianCutDeterministic(t *testing.T) {
	src := createGradientImage(40, 40)
	q, _ := New(4, MethodMedianCut)

	first, err := q.Image(src)
	if err != nil {
		t.Fatalf("Image failed: %v", err)
	}
	for i := 0; i < 3; i++ {
		again, err := q.Image(src)
		if err != nil {
			t.Fatalf("Image failed: %v", err)
		}
		a, b := distinct(first), distinct(again)
		if len(a) != len(b) {
			t.Fatalf("run %d: %d colors, want %d", i, len(b), len(a))
		}
		for c, n := range a {
			if b[c] != n {
				t.Errorf("run %d: color %v count %d, want %d", i, c, b[c], n)
			}
		}
	}
}

func TestImage_DropsAlpha(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	src.SetNRGBA(0, 0, color.NRGBA{200, 100, 50, 0})
	src.SetNRGBA(1, 0, color.NRGBA{200, 100, 50, 255})

	q, _ := New(4, MethodMedianCut)
	out, err := q.Image(src)
	if err != nil {
		t.Fatalf("Image failed: %v", err)
	}
	if len(out.Palette) != 1 {
		t.Fatalf("palette size: got %d, want 1", len(out.Palette))
	}
	if _, _, _, a := out.Palette[0].RGBA(); a != 0xffff {
		t.Errorf("palette color should be opaque, alpha %d", a)
	}
}

func TestQuantize_DrawQuantizer(t *testing.T) {
	q, _ := New(4, MethodMedianCut)
	src := createGradientImage(32, 32)

	p := q.Quantize(make(color.Palette, 0, 2), src)
	if len(p) > 2 {
		t.Errorf("Quantize should respect palette capacity, got %d colors", len(p))
	}
	if len(p) == 0 {
		t.Error("Quantize returned an empty palette")
	}

	prefix := color.Palette{color.Transparent}
	p = q.Quantize(prefix, src)
	if len(p) < 2 || p[0] != color.Transparent {
		t.Errorf("Quantize should append to the given palette, got %v", p)
	}

	p = q.Quantize(nil, image.NewRGBA(image.Rect(0, 0, 0, 0)))
	if p != nil {
		t.Errorf("Quantize of an empty image should return the input palette, got %v", p)
	}
}

func TestNormalizePalette(t *testing.T) {
	in := []color.Color{
		color.RGBA{1, 2, 3, 255},
		color.NRGBA{1, 2, 3, 255},
		color.RGBA{4, 5, 6, 255},
		color.RGBA{7, 8, 9, 255},
	}
	got := normalizePalette(in, 2)
	if len(got) != 2 {
		t.Fatalf("len: got %d, want 2", len(got))
	}
	if imaging.RGBOf(got[0]) != (imaging.RGBColor{R: 1, G: 2, B: 3}) || imaging.RGBOf(got[1]) != (imaging.RGBColor{R: 4, G: 5, B: 6}) {
		t.Errorf("unexpected palette %v", got)
	}
}
