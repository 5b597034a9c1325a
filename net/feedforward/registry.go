package feedforward

import "sync"

import "github.com/neurlang/taskpriority/layer"
import "github.com/neurlang/taskpriority/layer/dense"
import "github.com/neurlang/taskpriority/layer/embedding"
import "github.com/neurlang/taskpriority/layer/flatten"
import "github.com/pkg/errors"

// LayerDecoder recreates an unbuilt layer from its Spec.
type LayerDecoder func(spec layer.Spec) (layer.Layer, error)

var decoders sync.Map

// RegisterLayer makes layers of type typ loadable by ReadCompressedModel.
func RegisterLayer(typ string, d LayerDecoder) {
	decoders.Store(typ, d)
}

func decodeLayer(spec layer.Spec) (layer.Layer, error) {
	d, ok := decoders.Load(spec.Type)
	if !ok {
		return nil, errors.Errorf("feedforward: unknown layer type %q", spec.Type)
	}
	return d.(LayerDecoder)(spec)
}

func init() {
	RegisterLayer(embedding.Type, func(spec layer.Spec) (layer.Layer, error) {
		l, err := embedding.New(spec.InputDim, spec.OutputDim)
		if err != nil {
			return nil, err
		}
		return l, nil
	})
	RegisterLayer(flatten.Type, func(layer.Spec) (layer.Layer, error) {
		return flatten.New(), nil
	})
	RegisterLayer(dense.Type, func(spec layer.Spec) (layer.Layer, error) {
		l, err := dense.New(spec.Units, dense.Activation(spec.Activation))
		if err != nil {
			return nil, err
		}
		return l, nil
	})
}
