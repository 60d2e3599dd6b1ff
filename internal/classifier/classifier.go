// Package classifier wraps a small convolutional network that assigns
// an EL image of a solar panel to one of the known fault classes.
//
// The model is loaded once at startup and is read-only afterwards, so a
// single handle is safe to share across concurrent requests.
package classifier

import (
	"fmt"
	"image"
	"math"
	"os"

	"golang.org/x/image/draw"

	"github.com/Tejkumar2005/solarfaulty-analysis/internal/domain/panel"
)

// ClassNames is the fixed label set, in declared order. The declared
// order is the tie-break for equal probabilities.
var ClassNames = []string{
	"Healthy Panel",
	"Microcracks",
	"Hot Spots",
	"Snail Trails",
	"Cell Breakage",
	"Delamination",
	"Bypass Diode Failure",
	"PID",
}

// NumClasses is the width of the network's output layer.
const NumClasses = 8

// inputSize is the spatial resolution every image is resized to before
// the forward pass.
const inputSize = 64

// Per-channel normalization constants (RGB order), the standard
// ImageNet statistics.
var (
	channelMean = [3]float64{0.485, 0.456, 0.406}
	channelStd  = [3]float64{0.229, 0.224, 0.225}
)

// Model is a loaded, immutable parameter state.
type Model struct {
	params *parameters
}

// Load reads the serialized parameter state from path and validates it
// against the declared architecture. Call once per process and reuse
// the handle.
func Load(path string) (*Model, error) {
	params, err := loadParameters(path)
	if err != nil {
		return nil, err
	}
	return &Model{params: params}, nil
}

// NewRandom builds a model with seeded random parameters.
func NewRandom(seed int64) *Model {
	return &Model{params: randomParameters(seed)}
}

// Save persists the model's parameter state to path in the format
// accepted by Load.
func (m *Model) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create weights file: %w", err)
	}
	defer f.Close()
	if err := writeParameters(f, m.params); err != nil {
		return err
	}
	return f.Close()
}

// Predict runs one decoded image through the network and returns the
// ranked fault probabilities. Pure: no side effects, no stored state.
func (m *Model) Predict(img image.Image) (panel.FaultPrediction, error) {
	if img == nil {
		return panel.FaultPrediction{}, fmt.Errorf("nil image")
	}
	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return panel.FaultPrediction{}, fmt.Errorf("empty image %dx%d", b.Dx(), b.Dy())
	}

	in := preprocess(img)

	x := relu(conv2d(in, m.params.tensors["conv1.weight"], m.params.tensors["conv1.bias"].data))
	x = maxPool2(x)
	x = relu(conv2d(x, m.params.tensors["conv2.weight"], m.params.tensors["conv2.bias"].data))
	x = maxPool2(x)
	x = relu(conv2d(x, m.params.tensors["conv3.weight"], m.params.tensors["conv3.bias"].data))
	x = maxPool2(x)

	features := globalAvgPool(x)
	logits := linear(features, m.params.tensors["fc.weight"].data, m.params.tensors["fc.bias"].data, NumClasses)
	probs := softmax(logits)

	dist := make(map[string]float64, NumClasses)
	best := 0
	for i, name := range ClassNames {
		dist[name] = probs[i]
		if probs[i] > probs[best] {
			best = i
		}
	}

	return panel.FaultPrediction{
		Label:        ClassNames[best],
		Confidence:   probs[best],
		Distribution: dist,
	}, nil
}

// preprocess resizes to the network input resolution with bilinear
// interpolation and normalizes each RGB channel.
func preprocess(img image.Image) *tensor {
	scaled := image.NewRGBA(image.Rect(0, 0, inputSize, inputSize))
	draw.BiLinear.Scale(scaled, scaled.Bounds(), img, img.Bounds(), draw.Src, nil)

	t := newTensor(3, inputSize, inputSize)
	for y := 0; y < inputSize; y++ {
		for x := 0; x < inputSize; x++ {
			i := scaled.PixOffset(x, y)
			r := float64(scaled.Pix[i]) / 255.0
			g := float64(scaled.Pix[i+1]) / 255.0
			b := float64(scaled.Pix[i+2]) / 255.0
			t.set3(0, y, x, (r-channelMean[0])/channelStd[0])
			t.set3(1, y, x, (g-channelMean[1])/channelStd[1])
			t.set3(2, y, x, (b-channelMean[2])/channelStd[2])
		}
	}
	return t
}

// softmax converts logits to a probability distribution, shifting by
// the max logit for numerical stability.
func softmax(logits []float64) []float64 {
	maxLogit := logits[0]
	for _, v := range logits[1:] {
		if v > maxLogit {
			maxLogit = v
		}
	}
	out := make([]float64, len(logits))
	sum := 0.0
	for i, v := range logits {
		out[i] = math.Exp(v - maxLogit)
		sum += out[i]
	}
	for i := range out {
		out[i] /= sum
	}
	return out
}
