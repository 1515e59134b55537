package transform

import (
	"errors"
	"image/color"
	"testing"

	"github.com/ironsheep/image-transform/internal/primitive"
)

func TestFitScale(t *testing.T) {
	tests := []struct {
		name          string
		w, h          int
		width, height int
		want          float64
	}{
		{"width only", 400, 0, 800, 600, 400.1 / 800},
		{"height only", 0, 150, 800, 600, 150.1 / 600},
		{"width binds", 400, 400, 800, 600, 400.1 / 800},
		{"height binds", 400, 100, 800, 600, 100.1 / 600},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := fitScale(tt.w, tt.h, tt.width, tt.height); !near(got, tt.want, 1e-12) {
				t.Errorf("fitScale: got %v, want %v", got, tt.want)
			}
		})
	}

	coverTests := []struct {
		name          string
		w, h          int
		width, height int
		want          float64
	}{
		{"both axes", 400, 400, 800, 600, 400.1 / 600},
		{"width only", 400, 0, 800, 600, 400.1 / 800},
		{"height only", 0, 150, 800, 600, 150.1 / 600},
	}
	for _, tt := range coverTests {
		if got := coverScale(tt.w, tt.h, tt.width, tt.height); !near(got, tt.want, 1e-12) {
			t.Errorf("coverScale %s: got %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestResize_Fit(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		w, h          int
		wantW, wantH  int
	}{
		{"width only", 800, 600, 400, 0, 400, 300},
		{"height only", 800, 600, 0, 150, 200, 150},
		{"box wider than image", 800, 600, 400, 400, 400, 300},
		{"box taller than image", 600, 800, 400, 400, 300, 400},
		{"awkward ratio", 333, 777, 100, 100, 43, 100},
		{"upscale", 50, 40, 100, 0, 100, 80},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := newContext(t)
			img := decodeImage(t, ctx, solid(tt.width, tt.height, color.NRGBA{10, 20, 30, 255}))

			if err := img.Resize(tt.w, tt.h, ResizeFit); err != nil {
				t.Fatalf("Resize failed: %v", err)
			}
			if img.Width() != tt.wantW || img.Height() != tt.wantH {
				t.Errorf("size: got %dx%d, want %dx%d", img.Width(), img.Height(), tt.wantW, tt.wantH)
			}
			if tt.w > 0 && img.Width() > tt.w || tt.h > 0 && img.Height() > tt.h {
				t.Errorf("size %dx%d exceeds box %dx%d", img.Width(), img.Height(), tt.w, tt.h)
			}
			if img.Bands() != 3 {
				t.Errorf("bands: got %d, want 3", img.Bands())
			}
		})
	}
}

func TestResize_Fill(t *testing.T) {
	ctx := newContext(t)
	img := decodeImage(t, ctx, solid(800, 600, color.NRGBA{10, 20, 30, 255}))

	if err := img.Resize(400, 400, ResizeFill); err != nil {
		t.Fatalf("Resize failed: %v", err)
	}
	if img.Width() != 400 || img.Height() != 400 {
		t.Fatalf("size: got %dx%d, want 400x400", img.Width(), img.Height())
	}
	if img.Bands() != 4 || !img.HasAlpha() {
		t.Fatalf("bands: got %d, want 4 with alpha", img.Bands())
	}

	// Scaled to 400x300, so 50 rows of padding above and below.
	for _, y := range []int{0, 49, 350, 399} {
		if a := sample(t, img, 200, y, 3); a != 0 {
			t.Errorf("padding alpha at row %d: got %v, want 0", y, a)
		}
		if r := sample(t, img, 200, y, 0); r != 255 {
			t.Errorf("padding colour at row %d: got %v, want 255", y, r)
		}
	}
	for _, y := range []int{50, 200, 349} {
		if a := sample(t, img, 200, y, 3); a != 255 {
			t.Errorf("image alpha at row %d: got %v, want 255", y, a)
		}
	}
	if g := sample(t, img, 200, 200, 1); !near(g, 20, 2) {
		t.Errorf("image colour: got %v, want 20", g)
	}
}

func TestResize_FillPreserve(t *testing.T) {
	ctx := newContext(t, WithPadAlpha(PadAlphaPreserve))

	t.Run("opaque source", func(t *testing.T) {
		img := decodeImage(t, ctx, solid(600, 800, color.NRGBA{10, 20, 30, 255}))
		if err := img.SetBackgroundColour(255, 0, 0); err != nil {
			t.Fatalf("SetBackgroundColour failed: %v", err)
		}
		if err := img.Resize(400, 400, ResizeFill); err != nil {
			t.Fatalf("Resize failed: %v", err)
		}
		if img.Width() != 400 || img.Height() != 400 || img.Bands() != 3 {
			t.Fatalf("got %dx%d with %d bands, want 400x400 with 3", img.Width(), img.Height(), img.Bands())
		}
		// Scaled to 300x400, so 50 columns of padding either side.
		for band, want := range []float64{255, 0, 0} {
			if v := sample(t, img, 10, 200, band); v != want {
				t.Errorf("padding band %d: got %v, want %v", band, v, want)
			}
		}
	})

	t.Run("translucent source", func(t *testing.T) {
		img := decodeImage(t, ctx, solid(600, 800, color.NRGBA{10, 20, 30, 128}))
		if err := img.Resize(400, 400, ResizeFill); err != nil {
			t.Fatalf("Resize failed: %v", err)
		}
		if img.Bands() != 4 {
			t.Fatalf("bands: got %d, want 4", img.Bands())
		}
		if a := sample(t, img, 10, 200, 3); a != 0 {
			t.Errorf("padding alpha: got %v, want 0", a)
		}
		if a := sample(t, img, 200, 200, 3); !near(a, 128, 2) {
			t.Errorf("image alpha: got %v, want 128", a)
		}
	})
}

func TestResize_FillSingleAxis(t *testing.T) {
	ctx := newContext(t)
	img := decodeImage(t, ctx, solid(800, 600, color.NRGBA{10, 20, 30, 255}))

	if err := img.Resize(400, 0, ResizeFill); err != nil {
		t.Fatalf("Resize failed: %v", err)
	}
	if img.Width() != 400 || img.Height() != 300 || img.Bands() != 3 {
		t.Errorf("got %dx%d with %d bands, want 400x300 with 3", img.Width(), img.Height(), img.Bands())
	}
}

func TestResize_Crop(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		w, h          int
		wantW, wantH  int
	}{
		{"square from landscape", 800, 600, 200, 200, 200, 200},
		{"square from wide", 300, 100, 100, 100, 100, 100},
		{"landscape from portrait", 600, 800, 300, 100, 300, 100},
		{"width only", 800, 600, 400, 0, 400, 300},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := newContext(t)
			img := decodeImage(t, ctx, solid(tt.width, tt.height, color.NRGBA{90, 90, 90, 255}))

			if err := img.Resize(tt.w, tt.h, ResizeCrop); err != nil {
				t.Fatalf("Resize failed: %v", err)
			}
			if img.Width() != tt.wantW || img.Height() != tt.wantH {
				t.Errorf("size: got %dx%d, want %dx%d", img.Width(), img.Height(), tt.wantW, tt.wantH)
			}
		})
	}
}

func TestResize_Invalid(t *testing.T) {
	ctx := newContext(t)
	img := decodeImage(t, ctx, solid(80, 60, color.NRGBA{1, 2, 3, 255}))

	tests := []struct {
		name string
		w, h int
		mode ResizeMode
		want error
	}{
		{"both zero", 0, 0, ResizeFit, ErrInvalidArgument},
		{"negative", -1, 10, ResizeFill, ErrInvalidArgument},
		{"unknown mode", 10, 10, ResizeMode(42), ErrUnknownMode},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := img.Resize(tt.w, tt.h, tt.mode)
			if !errors.Is(err, tt.want) || !errors.Is(err, ErrTransform) {
				t.Errorf("got %v, want %v", err, tt.want)
			}
			if img.Width() != 80 || img.Height() != 60 {
				t.Errorf("image changed to %dx%d", img.Width(), img.Height())
			}
		})
	}
}

func TestResize_FailureLeavesImage(t *testing.T) {
	b := newFaultyBackend()
	b.failEmbed = true
	ctx := newContextWith(t, b)
	img := decodeImage(t, ctx, solid(80, 60, color.NRGBA{1, 2, 3, 255}))
	before := img.Primitive()

	err := img.Resize(40, 40, ResizeFill)
	if !errors.Is(err, errInjected) || !errors.Is(err, ErrTransform) {
		t.Fatalf("got %v, want injected transform failure", err)
	}
	if img.Primitive() != before || img.Width() != 80 || img.Height() != 60 || img.Bands() != 3 {
		t.Errorf("image changed to %dx%d with %d bands", img.Width(), img.Height(), img.Bands())
	}
	if len(b.released) == 0 {
		t.Error("intermediate images were not released")
	}
	for _, r := range b.released {
		if r == before {
			t.Error("original image was released")
		}
	}

	b.failEmbed = false
	if err := img.Resize(40, 40, ResizeFill); err != nil {
		t.Fatalf("Resize after failure: %v", err)
	}
	if img.Width() != 40 || img.Height() != 40 {
		t.Errorf("size: got %dx%d, want 40x40", img.Width(), img.Height())
	}
	if b.released[len(b.released)-1] != before {
		t.Error("replaced image was not released")
	}
}

func TestPadValues(t *testing.T) {
	zero := 0.0
	tests := []struct {
		name  string
		img   primitive.Image
		bg    Background
		alpha *float64
		want  []float64
	}{
		{"srgb", newPlanar(3, primitive.InterpretationSRGB, primitive.FormatUchar), Background{R: 1, G: 2, B: 3}, nil, []float64{1, 2, 3}},
		{"srgb alpha", newPlanar(4, primitive.InterpretationSRGB, primitive.FormatUchar), Background{R: 1, G: 2, B: 3}, &zero, []float64{1, 2, 3, 0}},
		{"rgb16", newPlanar(3, primitive.InterpretationRGB16, primitive.FormatUshort), Background{R: 255, G: 1}, nil, []float64{65535, 257, 0}},
		{"grey16", newPlanar(1, primitive.InterpretationGrey16, primitive.FormatUshort), Background{R: 255}, nil, []float64{19532}},
		{"grey alpha", newPlanar(2, primitive.InterpretationBW, primitive.FormatUchar), Background{R: 255, G: 255, B: 255}, &zero, []float64{255, 0}},
		{"cmyk", newPlanar(4, primitive.InterpretationCMYK, primitive.FormatUchar), Background{R: 255, G: 255, B: 255}, nil, []float64{0, 0, 0, 0}},
		{"cmyk alpha", newPlanar(5, primitive.InterpretationCMYK, primitive.FormatUchar), Background{}, &zero, []float64{0, 0, 0, 255, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := padValues(tt.img, tt.bg, tt.alpha)
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if !near(got[i], tt.want[i], 1e-9) {
					t.Errorf("got %v, want %v", got, tt.want)
					break
				}
			}
		})
	}
}

func TestBlur(t *testing.T) {
	ctx := newContext(t)
	img := decodeImage(t, ctx, solid(30, 20, color.NRGBA{100, 150, 200, 255}))

	for _, sigma := range []float64{0, -1} {
		err := img.Blur(sigma)
		if !errors.Is(err, ErrConfig) || !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("sigma %v: got %v, want ErrConfig", sigma, err)
		}
	}

	if err := img.Blur(1.5); err != nil {
		t.Fatalf("Blur failed: %v", err)
	}
	if img.Width() != 30 || img.Height() != 20 || img.Bands() != 3 {
		t.Errorf("got %dx%d with %d bands", img.Width(), img.Height(), img.Bands())
	}
	if v := sample(t, img, 15, 10, 1); !near(v, 150, 1) {
		t.Errorf("blurred solid colour: got %v, want 150", v)
	}
}
