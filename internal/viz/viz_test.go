package viz

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestGetTheme(t *testing.T) {
	if got := GetTheme("sunset"); got.Name != "sunset" {
		t.Errorf("expected sunset, got %s", got.Name)
	}
	if got := GetTheme("neon"); got.Name != "ocean" {
		t.Errorf("expected fallback to ocean, got %s", got.Name)
	}
	if n := len(ThemeNames()); n != len(Themes) {
		t.Errorf("expected %d names, got %d", len(Themes), n)
	}
}

func TestSliderBar(t *testing.T) {
	tests := []struct {
		value float64
		knob  int
	}{
		{0, 0},
		{10, 19},
		{5, 9},
		{-3, 0},
		{42, 19},
	}
	for _, tt := range tests {
		bar := SliderBar(tt.value, 0, 10, 20)
		if n := utf8.RuneCountInString(bar); n != 20 {
			t.Errorf("value %v: expected width 20, got %d", tt.value, n)
		}
		idx := strings.IndexRune(bar, '●')
		if got := utf8.RuneCountInString(bar[:idx]); got != tt.knob {
			t.Errorf("value %v: expected knob at %d, got %d", tt.value, tt.knob, got)
		}
	}
}

func TestSparklineChart(t *testing.T) {
	if got := SparklineChart(nil, 4); got != "────" {
		t.Errorf("expected flat line, got %q", got)
	}
	got := SparklineChart([]float64{0, 1, 2, 3}, 10)
	if got != "▁▃▅█" {
		t.Errorf("unexpected sparkline %q", got)
	}
	got = SparklineChart([]float64{0, 1, 2, 3}, 2)
	if utf8.RuneCountInString(got) != 2 || !strings.HasSuffix(got, "█") {
		t.Errorf("expected newest two values, got %q", got)
	}
}

func TestSeparator(t *testing.T) {
	if got := Separator(30); !strings.Contains(got, "◆") {
		t.Errorf("expected centered mark in %q", got)
	}
	if got := Separator(4); strings.Contains(got, "◆") || !strings.Contains(got, "────") {
		t.Errorf("narrow separator should be a plain rule, got %q", got)
	}
	if got := Separator(-1); strings.Contains(got, "─") {
		t.Errorf("negative width should be empty, got %q", got)
	}
}

func TestSnowfallEnds(t *testing.T) {
	s := NewSnowfall(20, 5, 10, 1)
	steps := 0
	for s.Step() {
		steps++
		if steps > 100 {
			t.Fatal("snowfall never ended")
		}
	}
	if strings.TrimSpace(s.Render()) != "" {
		t.Error("expected empty field after the last flake fell")
	}
}

func TestRainbowKeepsText(t *testing.T) {
	// without a color terminal the styles render plain text
	if got := Rainbow("Home"); !strings.Contains(got, "H") || !strings.Contains(got, "e") {
		t.Errorf("unexpected rainbow output %q", got)
	}
}
