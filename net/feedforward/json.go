package feedforward

import "compress/lzw"
import "io"
import "time"

import "github.com/mailru/easyjson"
import "github.com/mailru/easyjson/jlexer"
import "github.com/mailru/easyjson/jwriter"
import "github.com/neurlang/taskpriority/layer"
import "github.com/pkg/errors"
import "gonum.org/v1/gonum/mat"

type modelDocument struct {
	Format     string
	Meta       Metadata
	InputWidth int
	Layers     []layerDocument
}

type layerDocument struct {
	Spec    layer.Spec
	Weights []weightDocument
}

type weightDocument struct {
	Name       string
	Rows, Cols int
	Data       []float64
}

func (f FeedforwardNetwork) document(meta Metadata) *modelDocument {
	doc := &modelDocument{Format: Format, Meta: meta, InputWidth: f.inputWidth}
	for i, l := range f.layers {
		ld := layerDocument{Spec: l.Spec()}
		ld.Spec.Name = f.names[i]
		for _, p := range l.Params() {
			r, c := p.Value.Dims()
			ld.Weights = append(ld.Weights, weightDocument{
				Name: p.Name,
				Rows: r,
				Cols: c,
				Data: mat.DenseCopyOf(p.Value).RawMatrix().Data,
			})
		}
		doc.Layers = append(doc.Layers, ld)
	}
	return doc
}

// WriteCompressedWeights writes the model, its layer specs and weights, to a writer
func (f FeedforwardNetwork) WriteCompressedWeights(w io.Writer, meta Metadata) error {
	if f.inputWidth == 0 {
		return errors.New("feedforward: network is not built")
	}
	lw := lzw.NewWriter(w, lzw.LSB, 8)
	if _, err := easyjson.MarshalToWriter(f.document(meta), lw); err != nil {
		lw.Close()
		return errors.Wrap(err, "feedforward: write weights")
	}
	return lw.Close()
}

func readDocument(r io.Reader) (*modelDocument, error) {
	lr := lzw.NewReader(r, lzw.LSB, 8)
	defer lr.Close()
	data, err := io.ReadAll(lr)
	if err != nil {
		return nil, errors.Wrap(err, "feedforward: decompress weights")
	}
	doc := new(modelDocument)
	if err := easyjson.Unmarshal(data, doc); err != nil {
		return nil, errors.Wrap(err, "feedforward: decode weights")
	}
	if doc.Format != Format {
		return nil, errors.Errorf("feedforward: unsupported model format %q", doc.Format)
	}
	return doc, nil
}

// ReadCompressedWeights reads weights from a reader into an already built
// network of the same structure.
func (f *FeedforwardNetwork) ReadCompressedWeights(r io.Reader) (Metadata, error) {
	doc, err := readDocument(r)
	if err != nil {
		return Metadata{}, err
	}
	if err := f.load(doc); err != nil {
		return Metadata{}, err
	}
	return doc.Meta, nil
}

// ReadCompressedModel recreates and builds a network from the layer specs
// of a model artifact, then loads its weights.
func ReadCompressedModel(r io.Reader) (*FeedforwardNetwork, Metadata, error) {
	doc, err := readDocument(r)
	if err != nil {
		return nil, Metadata{}, err
	}
	f := new(FeedforwardNetwork)
	for i, ld := range doc.Layers {
		l, err := decodeLayer(ld.Spec)
		if err != nil {
			return nil, Metadata{}, errors.Wrapf(err, "layer %d", i)
		}
		f.NewLayer(l)
	}
	if err := f.Build(doc.InputWidth, 0); err != nil {
		return nil, Metadata{}, err
	}
	if err := f.load(doc); err != nil {
		return nil, Metadata{}, err
	}
	return f, doc.Meta, nil
}

func (f *FeedforwardNetwork) load(doc *modelDocument) error {
	if doc.InputWidth != f.inputWidth {
		return errors.Errorf("feedforward: model input width %d, network input width %d", doc.InputWidth, f.inputWidth)
	}
	if len(doc.Layers) != len(f.layers) {
		return errors.Errorf("feedforward: model has %d layers, network has %d", len(doc.Layers), len(f.layers))
	}
	for i, ld := range doc.Layers {
		if typ := f.layers[i].Spec().Type; typ != ld.Spec.Type {
			return errors.Errorf("feedforward: layer %d is %s, model has %s", i, typ, ld.Spec.Type)
		}
		params := f.layers[i].Params()
		if len(params) != len(ld.Weights) {
			return errors.Errorf("feedforward: layer %d has %d weights, model has %d", i, len(params), len(ld.Weights))
		}
		for j, p := range params {
			wd := ld.Weights[j]
			r, c := p.Value.Dims()
			if wd.Rows != r || wd.Cols != c || len(wd.Data) != r*c {
				return errors.Errorf("feedforward: %s/%s is %d×%d, model has %d×%d",
					f.names[i], p.Name, r, c, wd.Rows, wd.Cols)
			}
		}
	}
	for i, ld := range doc.Layers {
		for j, p := range f.layers[i].Params() {
			wd := ld.Weights[j]
			p.Value.Copy(mat.NewDense(wd.Rows, wd.Cols, wd.Data))
		}
	}
	return nil
}

// MarshalEasyJSON implements easyjson.Marshaler
func (d *modelDocument) MarshalEasyJSON(w *jwriter.Writer) {
	w.RawString(`{"format":`)
	w.String(d.Format)
	w.RawString(`,"meta":`)
	writeMetadata(w, &d.Meta)
	w.RawString(`,"input_width":`)
	w.Int(d.InputWidth)
	w.RawString(`,"layers":[`)
	for i := range d.Layers {
		if i > 0 {
			w.RawByte(',')
		}
		writeLayer(w, &d.Layers[i])
	}
	w.RawString("]}")
}

func writeMetadata(w *jwriter.Writer, m *Metadata) {
	w.RawString(`{"run_id":`)
	w.String(m.RunID)
	w.RawString(`,"created":`)
	w.String(m.Created.Format(time.RFC3339))
	w.RawString(`,"optimizer":`)
	w.String(m.Optimizer)
	w.RawString(`,"loss":`)
	w.String(m.Loss)
	w.RawString(`,"epochs":`)
	w.Int(m.Epochs)
	w.RawString(`,"history":`)
	writeFloats(w, m.History)
	w.RawString(`,"sequence":{"maxlen":`)
	w.Int(m.Sequence.MaxLen)
	w.RawString(`,"padding":`)
	w.String(m.Sequence.Padding)
	w.RawString(`,"truncating":`)
	w.String(m.Sequence.Truncating)
	w.RawString("}}")
}

func writeLayer(w *jwriter.Writer, l *layerDocument) {
	w.RawString(`{"spec":{"type":`)
	w.String(l.Spec.Type)
	w.RawString(`,"name":`)
	w.String(l.Spec.Name)
	w.RawString(`,"input_dim":`)
	w.Int(l.Spec.InputDim)
	w.RawString(`,"output_dim":`)
	w.Int(l.Spec.OutputDim)
	w.RawString(`,"units":`)
	w.Int(l.Spec.Units)
	w.RawString(`,"activation":`)
	w.String(l.Spec.Activation)
	w.RawString(`},"weights":[`)
	for i, wd := range l.Weights {
		if i > 0 {
			w.RawByte(',')
		}
		w.RawString(`{"name":`)
		w.String(wd.Name)
		w.RawString(`,"rows":`)
		w.Int(wd.Rows)
		w.RawString(`,"cols":`)
		w.Int(wd.Cols)
		w.RawString(`,"data":`)
		writeFloats(w, wd.Data)
		w.RawByte('}')
	}
	w.RawString("]}")
}

func writeFloats(w *jwriter.Writer, v []float64) {
	w.RawByte('[')
	for i, x := range v {
		if i > 0 {
			w.RawByte(',')
		}
		w.Float64(x)
	}
	w.RawByte(']')
}

// UnmarshalEasyJSON implements easyjson.Unmarshaler
func (d *modelDocument) UnmarshalEasyJSON(in *jlexer.Lexer) {
	readObject(in, func(key string) {
		switch key {
		case "format":
			d.Format = in.String()
		case "meta":
			readMetadata(in, &d.Meta)
		case "input_width":
			d.InputWidth = in.Int()
		case "layers":
			in.Delim('[')
			for !in.IsDelim(']') {
				var l layerDocument
				readLayer(in, &l)
				d.Layers = append(d.Layers, l)
				in.WantComma()
			}
			in.Delim(']')
		default:
			in.SkipRecursive()
		}
	})
}

// readObject walks the fields of a JSON object, calling field for each key
// with the lexer positioned at the value.
func readObject(in *jlexer.Lexer, field func(key string)) {
	isTopLevel := in.IsStart()
	if in.IsNull() {
		if isTopLevel {
			in.Consumed()
		}
		in.Skip()
		return
	}
	in.Delim('{')
	for !in.IsDelim('}') {
		key := in.UnsafeFieldName(false)
		in.WantColon()
		if in.IsNull() {
			in.Skip()
			in.WantComma()
			continue
		}
		field(key)
		in.WantComma()
	}
	in.Delim('}')
	if isTopLevel {
		in.Consumed()
	}
}

func readMetadata(in *jlexer.Lexer, m *Metadata) {
	readObject(in, func(key string) {
		switch key {
		case "run_id":
			m.RunID = in.String()
		case "created":
			t, err := time.Parse(time.RFC3339, in.String())
			if err != nil {
				in.AddError(err)
				return
			}
			m.Created = t
		case "optimizer":
			m.Optimizer = in.String()
		case "loss":
			m.Loss = in.String()
		case "epochs":
			m.Epochs = in.Int()
		case "history":
			m.History = readFloats(in)
		case "sequence":
			readObject(in, func(key string) {
				switch key {
				case "maxlen":
					m.Sequence.MaxLen = in.Int()
				case "padding":
					m.Sequence.Padding = in.String()
				case "truncating":
					m.Sequence.Truncating = in.String()
				default:
					in.SkipRecursive()
				}
			})
		default:
			in.SkipRecursive()
		}
	})
}

func readLayer(in *jlexer.Lexer, l *layerDocument) {
	readObject(in, func(key string) {
		switch key {
		case "spec":
			readObject(in, func(key string) {
				switch key {
				case "type":
					l.Spec.Type = in.String()
				case "name":
					l.Spec.Name = in.String()
				case "input_dim":
					l.Spec.InputDim = in.Int()
				case "output_dim":
					l.Spec.OutputDim = in.Int()
				case "units":
					l.Spec.Units = in.Int()
				case "activation":
					l.Spec.Activation = in.String()
				default:
					in.SkipRecursive()
				}
			})
		case "weights":
			in.Delim('[')
			for !in.IsDelim(']') {
				var wd weightDocument
				readObject(in, func(key string) {
					switch key {
					case "name":
						wd.Name = in.String()
					case "rows":
						wd.Rows = in.Int()
					case "cols":
						wd.Cols = in.Int()
					case "data":
						wd.Data = readFloats(in)
					default:
						in.SkipRecursive()
					}
				})
				l.Weights = append(l.Weights, wd)
				in.WantComma()
			}
			in.Delim(']')
		default:
			in.SkipRecursive()
		}
	})
}

func readFloats(in *jlexer.Lexer) (o []float64) {
	in.Delim('[')
	for !in.IsDelim(']') {
		o = append(o, in.Float64())
		in.WantComma()
	}
	in.Delim(']')
	return
}
