package misc

import (
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestLerpFloat64(t *testing.T) {
	cases := []struct {
		v1, v2, fraction, want float64
	}{
		{0, 10, 0, 0},
		{0, 10, 1, 10},
		{-2, 2, 0.5, 0},
		{1, 3, 0.25, 1.5},
	}
	for _, c := range cases {
		if got := LerpFloat64(c.v1, c.v2, c.fraction); got != c.want {
			t.Errorf("LerpFloat64(%v, %v, %v) = %v, want %v", c.v1, c.v2, c.fraction, got, c.want)
		}
	}
}

func TestUnitToUint8(t *testing.T) {
	cases := []struct {
		v    float64
		want uint8
	}{
		{-1, 0},
		{0, 0},
		{0.5, 127},
		{1, 255},
		{2, 255},
		{math.NaN(), 0},
		{math.Inf(1), 255},
	}
	for _, c := range cases {
		if got := UnitToUint8(c.v); got != c.want {
			t.Errorf("UnitToUint8(%v) = %d, want %d", c.v, got, c.want)
		}
	}
}

func TestEasing(t *testing.T) {
	if EaseOutExpo(1) != 1 || EaseOutExpo(2) != 1 {
		t.Error("EaseOutExpo should saturate at 1")
	}
	if EaseInExpo(0) != 0 || EaseInExpo(-1) != 0 {
		t.Error("EaseInExpo should saturate at 0")
	}
	prev := -1.0
	for i := 0; i <= 10; i++ {
		v := EaseOutExpo(float64(i) / 10)
		if v < prev {
			t.Fatalf("EaseOutExpo not monotonic at step %d", i)
		}
		prev = v
	}
}

func TestCount(t *testing.T) {
	if got := Count(1234567); got != "1,234,567" {
		t.Errorf("Count = %q", got)
	}
	if got := Count(48); got != "48" {
		t.Errorf("Count = %q", got)
	}
}

func TestReadWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "file.txt")

	if err := EnsureDir(filepath.Dir(path)); err != nil {
		t.Fatalf("EnsureDir: %v", err)
	}
	n, err := WriteFile(path, []byte("hello"))
	if err != nil || n != 5 {
		t.Fatalf("WriteFile = %d, %v", n, err)
	}
	data, err := ReadFile(path)
	if err != nil || string(data) != "hello" {
		t.Fatalf("ReadFile = %q, %v", data, err)
	}

	if _, err := ReadFile(""); err == nil {
		t.Error("expected error for empty filename")
	}
	if _, err := ReadFile(filepath.Join(dir, "missing")); err == nil {
		t.Error("expected error for missing file")
	}
	if _, err := os.Stat(path); err != nil {
		t.Error(err)
	}
}
