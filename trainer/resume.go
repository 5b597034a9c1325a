package trainer

import "bytes"

import "github.com/neurlang/taskpriority/net/feedforward"
import "github.com/neurlang/taskpriority/storage"
import "github.com/pkg/errors"

// Resume loads previously trained weights stored under key into the built
// network, so training continues from them.
func Resume(net *feedforward.FeedforwardNetwork, store storage.Backend, key string) (feedforward.Metadata, error) {
	data, err := store.Get(key)
	if err != nil {
		return feedforward.Metadata{}, errors.Wrap(err, "trainer: resume")
	}
	meta, err := net.ReadCompressedWeights(bytes.NewReader(data))
	if err != nil {
		return feedforward.Metadata{}, errors.Wrapf(err, "trainer: resume from %s", store.Locate(key))
	}
	return meta, nil
}
