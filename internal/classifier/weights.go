package classifier

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"math/rand"
	"os"
)

// ErrLoad marks a weight file that is missing, corrupt, or
// shape-incompatible with the declared architecture. Fatal at startup.
var ErrLoad = errors.New("model load failed")

const (
	weightsMagic   = uint32(0x5346434e) // "SFCN"
	weightsVersion = uint32(1)

	// maxTensorElems bounds a single tensor's element count before
	// allocation; the architecture's largest tensor has 18,432
	// elements, so anything near this limit is a corrupt file.
	maxTensorElems = 1 << 20
)

type tensorSpec struct {
	name string
	dims []int
}

// archSpec declares every parameter tensor of the network, in file
// order: three 3x3 conv blocks and a single linear output layer.
var archSpec = []tensorSpec{
	{"conv1.weight", []int{16, 3, 3, 3}},
	{"conv1.bias", []int{16}},
	{"conv2.weight", []int{32, 16, 3, 3}},
	{"conv2.bias", []int{32}},
	{"conv3.weight", []int{64, 32, 3, 3}},
	{"conv3.bias", []int{64}},
	{"fc.weight", []int{NumClasses, 64}},
	{"fc.bias", []int{NumClasses}},
}

type parameters struct {
	tensors map[string]*tensor
}

// loadParameters reads and validates a serialized parameter state.
// Every tensor must appear in archSpec order with the exact declared
// shape; anything else fails with a wrapped ErrLoad.
func loadParameters(path string) (*parameters, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open weights: %v", ErrLoad, err)
	}
	defer f.Close()
	return readParameters(bufio.NewReader(f))
}

func readParameters(r io.Reader) (*parameters, error) {
	var header struct {
		Magic, Version, Classes, Tensors uint32
	}
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("%w: read header: %v", ErrLoad, err)
	}
	if header.Magic != weightsMagic {
		return nil, fmt.Errorf("%w: bad magic 0x%08x", ErrLoad, header.Magic)
	}
	if header.Version != weightsVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrLoad, header.Version)
	}
	if header.Classes != NumClasses {
		return nil, fmt.Errorf("%w: weight file has %d classes, architecture declares %d",
			ErrLoad, header.Classes, NumClasses)
	}
	if int(header.Tensors) != len(archSpec) {
		return nil, fmt.Errorf("%w: weight file has %d tensors, architecture declares %d",
			ErrLoad, header.Tensors, len(archSpec))
	}

	params := &parameters{tensors: make(map[string]*tensor, len(archSpec))}
	for _, spec := range archSpec {
		name, t, err := readTensor(r)
		if err != nil {
			return nil, err
		}
		if name != spec.name {
			return nil, fmt.Errorf("%w: expected tensor %q, found %q", ErrLoad, spec.name, name)
		}
		if !dimsEqual(t.dims, spec.dims) {
			return nil, fmt.Errorf("%w: tensor %q has shape %v, architecture declares %v",
				ErrLoad, name, t.dims, spec.dims)
		}
		params.tensors[name] = t
	}
	return params, nil
}

func readTensor(r io.Reader) (string, *tensor, error) {
	var nameLen uint32
	if err := binary.Read(r, binary.LittleEndian, &nameLen); err != nil {
		return "", nil, fmt.Errorf("%w: read tensor name length: %v", ErrLoad, err)
	}
	if nameLen == 0 || nameLen > 256 {
		return "", nil, fmt.Errorf("%w: implausible tensor name length %d", ErrLoad, nameLen)
	}
	nameBuf := make([]byte, nameLen)
	if _, err := io.ReadFull(r, nameBuf); err != nil {
		return "", nil, fmt.Errorf("%w: read tensor name: %v", ErrLoad, err)
	}

	var rank uint32
	if err := binary.Read(r, binary.LittleEndian, &rank); err != nil {
		return "", nil, fmt.Errorf("%w: read tensor rank: %v", ErrLoad, err)
	}
	if rank == 0 || rank > 4 {
		return "", nil, fmt.Errorf("%w: implausible tensor rank %d", ErrLoad, rank)
	}

	dims := make([]int, rank)
	count := 1
	for i := range dims {
		var d uint32
		if err := binary.Read(r, binary.LittleEndian, &d); err != nil {
			return "", nil, fmt.Errorf("%w: read tensor dims: %v", ErrLoad, err)
		}
		if d == 0 || d > maxTensorElems {
			return "", nil, fmt.Errorf("%w: implausible tensor dimension %d", ErrLoad, d)
		}
		dims[i] = int(d)
		count *= int(d)
		if count > maxTensorElems {
			return "", nil, fmt.Errorf("%w: tensor exceeds %d elements", ErrLoad, maxTensorElems)
		}
	}

	raw := make([]uint32, count)
	if err := binary.Read(r, binary.LittleEndian, raw); err != nil {
		return "", nil, fmt.Errorf("%w: read tensor data: %v", ErrLoad, err)
	}
	t := &tensor{data: make([]float64, count), dims: dims}
	for i, bits := range raw {
		t.data[i] = float64(math.Float32frombits(bits))
	}
	return string(nameBuf), t, nil
}

// writeParameters persists the parameter state in the binary format
// read back by loadParameters.
func writeParameters(w io.Writer, params *parameters) error {
	header := struct {
		Magic, Version, Classes, Tensors uint32
	}{weightsMagic, weightsVersion, NumClasses, uint32(len(archSpec))}
	if err := binary.Write(w, binary.LittleEndian, header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, spec := range archSpec {
		t := params.tensors[spec.name]
		if err := binary.Write(w, binary.LittleEndian, uint32(len(spec.name))); err != nil {
			return fmt.Errorf("write tensor %q: %w", spec.name, err)
		}
		if _, err := w.Write([]byte(spec.name)); err != nil {
			return fmt.Errorf("write tensor %q: %w", spec.name, err)
		}
		if err := binary.Write(w, binary.LittleEndian, uint32(len(t.dims))); err != nil {
			return fmt.Errorf("write tensor %q: %w", spec.name, err)
		}
		for _, d := range t.dims {
			if err := binary.Write(w, binary.LittleEndian, uint32(d)); err != nil {
				return fmt.Errorf("write tensor %q: %w", spec.name, err)
			}
		}
		raw := make([]uint32, len(t.data))
		for i, v := range t.data {
			raw[i] = math.Float32bits(float32(v))
		}
		if err := binary.Write(w, binary.LittleEndian, raw); err != nil {
			return fmt.Errorf("write tensor %q: %w", spec.name, err)
		}
	}
	return nil
}

// randomParameters initializes every tensor with fan-in scaled uniform
// noise. Used by the one-time model creation command and by tests; the
// resulting model predicts garbage but exercises the full pipeline.
func randomParameters(seed int64) *parameters {
	rng := rand.New(rand.NewSource(seed))
	params := &parameters{tensors: make(map[string]*tensor, len(archSpec))}
	for _, spec := range archSpec {
		t := newTensor(spec.dims...)
		fanIn := 1
		for _, d := range spec.dims[1:] {
			fanIn *= d
		}
		bound := 1.0 / math.Sqrt(float64(fanIn))
		for i := range t.data {
			t.data[i] = (rng.Float64()*2 - 1) * bound
		}
		params.tensors[spec.name] = t
	}
	return params
}

func dimsEqual(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
