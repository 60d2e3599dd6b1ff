package classifier

import (
	"bytes"
	"encoding/binary"
	"errors"
	"image"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"testing"
)

func testImage(w, h int, seed uint8) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{
				R: uint8(x*7+int(seed)) % 255,
				G: uint8(y*13+int(seed)) % 255,
				B: uint8((x+y)*3) % 255,
				A: 255,
			})
		}
	}
	return img
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "solar_model.bin")

	saved := NewRandom(42)
	if err := saved.Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	img := testImage(128, 96, 1)
	want, err := saved.Predict(img)
	if err != nil {
		t.Fatalf("Predict() on saved model error = %v", err)
	}
	got, err := loaded.Predict(img)
	if err != nil {
		t.Fatalf("Predict() on loaded model error = %v", err)
	}

	if got.Label != want.Label {
		t.Errorf("loaded model label = %q, saved model label = %q", got.Label, want.Label)
	}
	for name, p := range want.Distribution {
		if math.Abs(got.Distribution[name]-p) > 1e-6 {
			t.Errorf("probability mismatch for %q: loaded %v, saved %v", name, got.Distribution[name], p)
		}
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	valid := filepath.Join(dir, "valid.bin")
	if err := NewRandom(1).Save(valid); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	validBytes, err := os.ReadFile(valid)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}

	garbage := filepath.Join(dir, "garbage.bin")
	if err := os.WriteFile(garbage, []byte("not a model"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	truncated := filepath.Join(dir, "truncated.bin")
	if err := os.WriteFile(truncated, validBytes[:len(validBytes)/2], 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	tests := []struct {
		name string
		path string
	}{
		{name: "missing file", path: filepath.Join(dir, "absent.bin")},
		{name: "garbage content", path: garbage},
		{name: "truncated file", path: truncated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.path)
			if err == nil {
				t.Fatal("Load() expected error, got nil")
			}
			if !errors.Is(err, ErrLoad) {
				t.Errorf("Load() error = %v, want ErrLoad", err)
			}
		})
	}
}

func TestLoadRejectsOversizedTensor(t *testing.T) {
	// A valid header followed by a tensor whose declared dims are far
	// beyond any real parameter tensor must fail with ErrLoad instead
	// of attempting the allocation.
	tests := []struct {
		name string
		dims []uint32
	}{
		{name: "huge single dimension", dims: []uint32{0xFFFFFFFF, 3, 3, 3}},
		{name: "huge dimension product", dims: []uint32{2048, 2048, 3, 3}},
		{name: "zero dimension", dims: []uint32{0, 3, 3, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			header := struct {
				Magic, Version, Classes, Tensors uint32
			}{weightsMagic, weightsVersion, NumClasses, uint32(len(archSpec))}
			if err := binary.Write(&buf, binary.LittleEndian, header); err != nil {
				t.Fatalf("write header: %v", err)
			}
			name := "conv1.weight"
			if err := binary.Write(&buf, binary.LittleEndian, uint32(len(name))); err != nil {
				t.Fatalf("write name length: %v", err)
			}
			buf.WriteString(name)
			if err := binary.Write(&buf, binary.LittleEndian, uint32(len(tt.dims))); err != nil {
				t.Fatalf("write rank: %v", err)
			}
			if err := binary.Write(&buf, binary.LittleEndian, tt.dims); err != nil {
				t.Fatalf("write dims: %v", err)
			}

			path := filepath.Join(t.TempDir(), "oversized.bin")
			if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
				t.Fatalf("WriteFile() error = %v", err)
			}

			_, err := Load(path)
			if err == nil {
				t.Fatal("Load() expected error, got nil")
			}
			if !errors.Is(err, ErrLoad) {
				t.Errorf("Load() error = %v, want ErrLoad", err)
			}
		})
	}
}

func TestPredictDistribution(t *testing.T) {
	model := NewRandom(7)

	tests := []struct {
		name string
		img  image.Image
	}{
		{name: "small square", img: testImage(32, 32, 0)},
		{name: "large landscape", img: testImage(640, 480, 10)},
		{name: "tall portrait", img: testImage(100, 300, 20)},
		{name: "exact input size", img: testImage(64, 64, 30)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pred, err := model.Predict(tt.img)
			if err != nil {
				t.Fatalf("Predict() error = %v", err)
			}

			if len(pred.Distribution) != NumClasses {
				t.Fatalf("distribution has %d entries, want %d", len(pred.Distribution), NumClasses)
			}

			sum := 0.0
			for name, p := range pred.Distribution {
				if p < 0 {
					t.Errorf("negative probability %v for %q", p, name)
				}
				sum += p
			}
			if math.Abs(sum-1.0) > 1e-9 {
				t.Errorf("probabilities sum to %v, want 1", sum)
			}

			// The winning label is the argmax of the distribution.
			for name, p := range pred.Distribution {
				if p > pred.Confidence {
					t.Errorf("label %q has probability %v above confidence %v", name, p, pred.Confidence)
				}
			}
			if pred.Distribution[pred.Label] != pred.Confidence {
				t.Errorf("confidence %v does not match distribution entry %v for %q",
					pred.Confidence, pred.Distribution[pred.Label], pred.Label)
			}
		})
	}
}

func TestPredictDeterministic(t *testing.T) {
	model := NewRandom(99)
	img := testImage(200, 150, 5)

	first, err := model.Predict(img)
	if err != nil {
		t.Fatalf("Predict() error = %v", err)
	}
	second, err := model.Predict(img)
	if err != nil {
		t.Fatalf("Predict() error = %v", err)
	}

	if first.Label != second.Label || first.Confidence != second.Confidence {
		t.Errorf("repeated prediction differs: %q %v vs %q %v",
			first.Label, first.Confidence, second.Label, second.Confidence)
	}
}

func TestSoftmax(t *testing.T) {
	tests := []struct {
		name   string
		logits []float64
		argmax int
	}{
		{name: "distinct logits", logits: []float64{0.1, 2.0, -1.0}, argmax: 1},
		{name: "large logits stay finite", logits: []float64{1000, 999, 998}, argmax: 0},
		{name: "all equal", logits: []float64{0.5, 0.5, 0.5, 0.5}, argmax: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			probs := softmax(tt.logits)

			sum := 0.0
			best := 0
			for i, p := range probs {
				if math.IsNaN(p) || math.IsInf(p, 0) {
					t.Fatalf("softmax produced non-finite value %v", p)
				}
				sum += p
				if p > probs[best] {
					best = i
				}
			}
			if math.Abs(sum-1.0) > 1e-9 {
				t.Errorf("softmax sums to %v, want 1", sum)
			}
			if best != tt.argmax {
				t.Errorf("argmax = %d, want %d", best, tt.argmax)
			}
		})
	}
}

func TestClassNamesMatchOutputLayer(t *testing.T) {
	if len(ClassNames) != NumClasses {
		t.Fatalf("ClassNames has %d entries, output layer declares %d", len(ClassNames), NumClasses)
	}
	seen := make(map[string]bool, len(ClassNames))
	for _, name := range ClassNames {
		if name == "" {
			t.Error("empty class name")
		}
		if seen[name] {
			t.Errorf("duplicate class name %q", name)
		}
		seen[name] = true
	}
}
