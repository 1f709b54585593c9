package asciimask

import (
	"strings"
	"testing"

	"github.com/0x0ndra/ascii-photo-mask/imageutil"
)

func TestGenerateTextShape(t *testing.T) {
	t.Parallel()

	r := NewRenderer(nil, WithWidth(8), WithFontSize(4))
	text, err := r.GenerateText(imageutil.CreateGradientImage(64, 32))
	if err != nil {
		t.Fatalf("GenerateText failed: %v", err)
	}

	if !strings.HasSuffix(text, "\n") {
		t.Error("Expected trailing newline")
	}
	lines := strings.Split(strings.TrimSuffix(text, "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("Expected 4 lines, got %d", len(lines))
	}
	for i, line := range lines {
		if n := len([]rune(line)); n != 8 {
			t.Errorf("Line %d: expected 8 characters, got %d", i, n)
		}
	}
}

func TestGenerateTextUniform(t *testing.T) {
	t.Parallel()

	newRenderer := func() *Renderer {
		return NewRenderer(nil,
			WithWidth(4),
			WithFontSize(2),
			WithRamp("#."),
			WithBrightness(1.0),
			WithContrast(1.0),
		)
	}

	cases := []struct {
		name  string
		pixel imageutil.RGB
		want  rune
	}{
		{"black maps dense", imageutil.RGB{}, '#'},
		{"white maps sparse", imageutil.RGB{R: 255, G: 255, B: 255}, '.'},
		// Mid-gray sits exactly on the boundary and rounds toward the
		// sparse end.
		{"mid-gray rounds sparse", imageutil.RGB{R: 128, G: 128, B: 128}, '.'},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			text, err := newRenderer().GenerateText(imageutil.CreateSolidImage(8, 8, tc.pixel))
			if err != nil {
				t.Fatalf("GenerateText failed: %v", err)
			}
			for _, line := range strings.Split(strings.TrimSuffix(text, "\n"), "\n") {
				for _, ch := range line {
					if ch != tc.want {
						t.Fatalf("Expected all %q, got %q in %q", tc.want, ch, text)
					}
				}
			}
		})
	}
}

func TestGenerateTextStableUnderRandomize(t *testing.T) {
	t.Parallel()

	// Jitter only moves rasterized glyphs; the text form ignores it.
	src := imageutil.CreateGradientImage(32, 16)
	a, err := NewRenderer(nil, WithWidth(8), WithFontSize(4), WithRandomize(true)).GenerateText(src)
	if err != nil {
		t.Fatalf("GenerateText failed: %v", err)
	}
	b, err := NewRenderer(nil, WithWidth(8), WithFontSize(4), WithRandomize(false)).GenerateText(src)
	if err != nil {
		t.Fatalf("GenerateText failed: %v", err)
	}
	if a != b {
		t.Error("Expected randomization to leave the text form unchanged")
	}
}

func TestGenerateTextErrors(t *testing.T) {
	t.Parallel()

	if _, err := NewRenderer(nil, WithWidth(-1)).GenerateText(imageutil.CreateSolidImage(4, 4, imageutil.RGB{})); err == nil {
		t.Error("Expected error for invalid config")
	}
	if _, err := NewRenderer(nil).GenerateText(nil); err == nil {
		t.Error("Expected error for nil source")
	}
}

func BenchmarkGenerateText(b *testing.B) {
	r := NewRenderer(nil, WithWidth(80), WithFontSize(8))
	src := imageutil.CreateGradientImage(640, 320)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := r.GenerateText(src); err != nil {
			b.Fatalf("GenerateText failed: %v", err)
		}
	}
}
