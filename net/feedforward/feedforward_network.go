// Package feedforward implements a sequential feedforward network type
package feedforward

import "fmt"
import "io"
import "math/rand"
import "strings"

import "github.com/neurlang/taskpriority/layer"
import "github.com/neurlang/taskpriority/parallel"
import "github.com/pkg/errors"
import "gonum.org/v1/gonum/mat"

// FeedforwardNetwork is a stack of layers mapping a feature row to a single
// scalar output.
type FeedforwardNetwork struct {
	layers  []layer.Layer
	names   []string
	shapes  []layer.Shape
	offsets []int

	inputWidth int
	threads    int
}

// NewLayer appends a layer. Layers must be added before Build.
func (f *FeedforwardNetwork) NewLayer(l layer.Layer) {
	f.layers = append(f.layers, l)
	f.inputWidth = 0
}

// SetThreads sets the number of goroutines used by Predict, 0 picks one per core.
func (f *FeedforwardNetwork) SetThreads(threads int) {
	f.threads = threads
}

// Build allocates all weights for feature rows of inputWidth values. Weights
// are drawn from a prng seeded with seed, so equal seeds give equal networks.
func (f *FeedforwardNetwork) Build(inputWidth int, seed int64) error {
	return f.BuildRand(inputWidth, rand.New(rand.NewSource(seed)))
}

// BuildRand is Build drawing initial weights from rng.
func (f *FeedforwardNetwork) BuildRand(inputWidth int, rng *rand.Rand) error {
	if len(f.layers) == 0 {
		return errors.New("feedforward: no layers")
	}
	if inputWidth <= 0 {
		return errors.Errorf("feedforward: input width must be positive, got %d", inputWidth)
	}
	f.names = f.names[:0]
	f.shapes = f.shapes[:0]
	f.offsets = append(f.offsets[:0], 0)
	var seen = make(map[string]int)
	in := layer.Shape{Rows: 1, Cols: inputWidth}
	for i, l := range f.layers {
		out, err := l.Build(in, rng)
		if err != nil {
			return errors.Wrapf(err, "feedforward: build layer %d", i)
		}
		typ := l.Spec().Type
		name := typ
		if n := seen[typ]; n > 0 {
			name = fmt.Sprintf("%s_%d", typ, n)
		}
		seen[typ]++
		f.names = append(f.names, name)
		f.shapes = append(f.shapes, out)
		f.offsets = append(f.offsets, f.offsets[i]+len(l.Params()))
		in = out
	}
	if in.Size() != 1 {
		return errors.Errorf("feedforward: last layer must output a single value, got %d×%d", in.Rows, in.Cols)
	}
	f.inputWidth = inputWidth
	return nil
}

// InputWidth returns the built input width, 0 before Build.
func (f FeedforwardNetwork) InputWidth() int {
	return f.inputWidth
}

// LenLayers returns the number of layers.
func (f FeedforwardNetwork) LenLayers() int {
	return len(f.layers)
}

// GetLayer returns the n-th layer.
func (f FeedforwardNetwork) GetLayer(n int) layer.Layer {
	return f.layers[n]
}

// LayerName returns the display name of the n-th layer, like dense_1.
func (f FeedforwardNetwork) LayerName(n int) string {
	return f.names[n]
}

// LenParams returns the number of trainable scalars of the n-th layer.
func (f FeedforwardNetwork) LenParams(n int) (o int) {
	for _, p := range f.GetLayer(n).Params() {
		o += p.Size()
	}
	return
}

// Len returns the number of trainable scalars inside the network.
func (f FeedforwardNetwork) Len() (o int) {
	for i := range f.layers {
		o += f.LenParams(i)
	}
	return
}

// Params returns all trainable parameters, layer by layer.
func (f FeedforwardNetwork) Params() (o []*layer.Param) {
	for _, l := range f.layers {
		o = append(o, l.Params()...)
	}
	return
}

func (f FeedforwardNetwork) checkRow(row []float64) error {
	if f.inputWidth == 0 {
		return errors.New("feedforward: network is not built")
	}
	if len(row) != f.inputWidth {
		return errors.Errorf("feedforward: input width %d does not match model input width %d", len(row), f.inputWidth)
	}
	return nil
}

// Lay runs one sample forward and keeps the tapes for a later Backward.
func (f *FeedforwardNetwork) Lay(row []float64) (*Pass, error) {
	if err := f.checkRow(row); err != nil {
		return nil, err
	}
	p := &Pass{f: f, tapes: make([]layer.Tape, len(f.layers))}
	x := mat.NewDense(1, len(row), append([]float64(nil), row...))
	for i, l := range f.layers {
		p.tapes[i] = l.Lay()
		y, err := p.tapes[i].Forward(x)
		if err != nil {
			return nil, errors.Wrapf(err, "feedforward: layer %s", f.names[i])
		}
		x = y
	}
	p.out = x.At(0, 0)
	return p, nil
}

// Infer computes the network output for one feature row.
func (f *FeedforwardNetwork) Infer(row []float64) (float64, error) {
	p, err := f.Lay(row)
	if err != nil {
		return 0, err
	}
	return p.Output(), nil
}

// Predict computes the output of every row of X in parallel.
func (f *FeedforwardNetwork) Predict(X mat.Matrix) (*mat.VecDense, error) {
	r, c := X.Dims()
	if r == 0 {
		return nil, errors.New("feedforward: no rows to predict")
	}
	if f.inputWidth != 0 && c != f.inputWidth {
		return nil, errors.Errorf("feedforward: input width %d does not match model input width %d", c, f.inputWidth)
	}
	out := make([]float64, r)
	errs := make([]error, r)
	threads := f.threads
	if threads <= 0 {
		threads = parallel.Threads()
	}
	parallel.ForEach(r, threads, func(i int) {
		out[i], errs[i] = f.Infer(mat.Row(nil, i, X))
	})
	for i, err := range errs {
		if err != nil {
			return nil, errors.Wrapf(err, "row %d", i)
		}
	}
	return mat.NewVecDense(r, out), nil
}

// Backprop runs one sample forward, then backward from dOut, the loss
// gradient with respect to the output. Gradients are added into grads,
// aligned with Params. It returns the forward output.
func (f *FeedforwardNetwork) Backprop(row []float64, dOut float64, grads []*mat.Dense) (float64, error) {
	p, err := f.Lay(row)
	if err != nil {
		return 0, err
	}
	p.Backward(dOut, grads)
	return p.Output(), nil
}

// Summary prints a table of layers, output shapes and parameter counts.
func (f FeedforwardNetwork) Summary(w io.Writer) error {
	const rule = "_________________________________________________________________\n"
	var b strings.Builder
	b.WriteString("Model: \"sequential\"\n")
	b.WriteString(rule)
	fmt.Fprintf(&b, " %-28s%-26s%s\n", "Layer (type)", "Output Shape", "Param #")
	b.WriteString(strings.Repeat("=", len(rule)-1) + "\n")
	for i := 0; i < f.LenLayers(); i++ {
		name := fmt.Sprintf("%s (%s)", f.LayerName(i), title(f.GetLayer(i).Spec().Type))
		fmt.Fprintf(&b, " %-28s%-26s%d\n", name, shapeString(f.shapes[i]), f.LenParams(i))
		if i+1 < f.LenLayers() {
			b.WriteString("\n")
		}
	}
	b.WriteString(strings.Repeat("=", len(rule)-1) + "\n")
	fmt.Fprintf(&b, "Total params: %d\n", f.Len())
	fmt.Fprintf(&b, "Trainable params: %d\n", f.Len())
	fmt.Fprintf(&b, "Non-trainable params: 0\n")
	b.WriteString(rule)
	_, err := io.WriteString(w, b.String())
	return err
}

func title(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func shapeString(s layer.Shape) string {
	if s.Rows == 1 {
		return fmt.Sprintf("(None, %d)", s.Cols)
	}
	return fmt.Sprintf("(None, %d, %d)", s.Rows, s.Cols)
}
