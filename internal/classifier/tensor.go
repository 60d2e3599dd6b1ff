package classifier

// tensor is a dense float64 tensor in CHW layout (channels, height,
// width) for activations, or OIHW for convolution kernels.
type tensor struct {
	data []float64
	dims []int
}

func newTensor(dims ...int) *tensor {
	n := 1
	for _, d := range dims {
		n *= d
	}
	return &tensor{data: make([]float64, n), dims: dims}
}

func (t *tensor) at3(c, y, x int) float64 {
	h, w := t.dims[1], t.dims[2]
	return t.data[c*h*w+y*w+x]
}

func (t *tensor) set3(c, y, x int, v float64) {
	h, w := t.dims[1], t.dims[2]
	t.data[c*h*w+y*w+x] = v
}

// conv2d applies a 3x3 convolution with stride 1 and zero padding 1,
// so spatial dimensions are preserved. Kernel layout is OIHW.
func conv2d(in *tensor, kernel *tensor, bias []float64) *tensor {
	outCh := kernel.dims[0]
	inCh := in.dims[0]
	h, w := in.dims[1], in.dims[2]
	k := kernel.dims[2]
	pad := k / 2

	out := newTensor(outCh, h, w)
	for oc := 0; oc < outCh; oc++ {
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				sum := bias[oc]
				for ic := 0; ic < inCh; ic++ {
					for ky := 0; ky < k; ky++ {
						iy := y + ky - pad
						if iy < 0 || iy >= h {
							continue
						}
						for kx := 0; kx < k; kx++ {
							ix := x + kx - pad
							if ix < 0 || ix >= w {
								continue
							}
							kidx := ((oc*inCh+ic)*k+ky)*k + kx
							sum += in.at3(ic, iy, ix) * kernel.data[kidx]
						}
					}
				}
				out.set3(oc, y, x, sum)
			}
		}
	}
	return out
}

// relu rectifies in place.
func relu(t *tensor) *tensor {
	for i, v := range t.data {
		if v < 0 {
			t.data[i] = 0
		}
	}
	return t
}

// maxPool2 halves the spatial dimensions with a 2x2 window, stride 2.
func maxPool2(in *tensor) *tensor {
	ch, h, w := in.dims[0], in.dims[1], in.dims[2]
	oh, ow := h/2, w/2
	out := newTensor(ch, oh, ow)
	for c := 0; c < ch; c++ {
		for y := 0; y < oh; y++ {
			for x := 0; x < ow; x++ {
				m := in.at3(c, 2*y, 2*x)
				if v := in.at3(c, 2*y, 2*x+1); v > m {
					m = v
				}
				if v := in.at3(c, 2*y+1, 2*x); v > m {
					m = v
				}
				if v := in.at3(c, 2*y+1, 2*x+1); v > m {
					m = v
				}
				out.set3(c, y, x, m)
			}
		}
	}
	return out
}

// globalAvgPool collapses each channel to its spatial mean.
func globalAvgPool(in *tensor) []float64 {
	ch, h, w := in.dims[0], in.dims[1], in.dims[2]
	out := make([]float64, ch)
	for c := 0; c < ch; c++ {
		sum := 0.0
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				sum += in.at3(c, y, x)
			}
		}
		out[c] = sum / float64(h*w)
	}
	return out
}

// linear computes weight*in + bias. Weight layout is (out, in) row-major.
func linear(in []float64, weight []float64, bias []float64, outDim int) []float64 {
	inDim := len(in)
	out := make([]float64, outDim)
	for o := 0; o < outDim; o++ {
		sum := bias[o]
		row := weight[o*inDim : (o+1)*inDim]
		for i, v := range in {
			sum += row[i] * v
		}
		out[o] = sum
	}
	return out
}
