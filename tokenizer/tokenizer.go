package tokenizer

import "github.com/pkg/errors"

// DefaultFilters are the characters replaced by the split string before splitting.
const DefaultFilters = "!\"#$%&()*+,-./:;<=>?@[\\]^_`{|}~\t\n"

// Options configure a Tokenizer.
type Options struct {
	// NumWords keeps only words with index below NumWords. Zero keeps all.
	NumWords int

	Filters   string
	Lower     bool
	Split     string
	CharLevel bool

	// OOVToken, when set, takes index 1 and replaces unknown words.
	OOVToken string

	// OOVBuckets hashes unknown words into this many extra indices (rounded
	// up to a prime), placed after the vocabulary. Takes precedence over OOVToken.
	OOVBuckets int

	Analyzer Analyzer

	// Stopwords drops English stopwords. The filter lowercases its input,
	// so it requires Lower.
	Stopwords bool
	Stem      bool
}

// DefaultOptions returns the options of a plain lowercase word tokenizer.
func DefaultOptions() Options {
	return Options{
		Filters:  DefaultFilters,
		Lower:    true,
		Split:    " ",
		Analyzer: Split,
	}
}

// Tokenizer maps words to integer indices.
type Tokenizer struct {
	opts Options

	documentCount int
	wordCounts    map[string]int
	wordOrder     []string
	wordDocs      map[string]int

	wordIndex map[string]int
	indexWord map[int]string

	buckets uint32
}

// New creates an empty tokenizer.
func New(o Options) (*Tokenizer, error) {
	if o.NumWords < 0 {
		return nil, errors.Errorf("tokenizer: negative num_words %d", o.NumWords)
	}
	if o.OOVBuckets < 0 {
		return nil, errors.Errorf("tokenizer: negative oov_buckets %d", o.OOVBuckets)
	}
	if o.Split == "" && !o.CharLevel {
		return nil, errors.New("tokenizer: empty split string")
	}
	if o.Stopwords && !o.Lower {
		return nil, errors.New("tokenizer: stopword removal lowercases, set lower")
	}
	if o.Analyzer == "" {
		o.Analyzer = Split
	}
	if _, ok := analyzers[o.Analyzer]; !ok {
		return nil, errors.Errorf("tokenizer: unknown analyzer %q", o.Analyzer)
	}
	t := &Tokenizer{
		opts:       o,
		wordCounts: make(map[string]int),
		wordDocs:   make(map[string]int),
		wordIndex:  make(map[string]int),
		indexWord:  make(map[int]string),
	}
	if o.OOVBuckets > 0 {
		t.buckets = primeAtLeast(uint32(o.OOVBuckets))
	}
	return t, nil
}

// MustNew creates a tokenizer or panics
func MustNew(o Options) *Tokenizer {
	t, err := New(o)
	if err != nil {
		panic(err.Error())
	}
	return t
}

// Options returns the options the tokenizer was created with.
func (t *Tokenizer) Options() Options {
	return t.opts
}

// FitOnTexts updates the vocabulary from texts and rebuilds the word index.
func (t *Tokenizer) FitOnTexts(texts []string) error {
	for n, text := range texts {
		seq, err := t.TextToWordSequence(text)
		if err != nil {
			return errors.Wrapf(err, "text %d", n)
		}
		t.documentCount++
		seen := make(map[string]struct{}, len(seq))
		for _, w := range seq {
			if _, ok := t.wordCounts[w]; !ok {
				t.wordOrder = append(t.wordOrder, w)
			}
			t.wordCounts[w]++
			if _, ok := seen[w]; !ok {
				seen[w] = struct{}{}
				t.wordDocs[w]++
			}
		}
	}
	t.reindex()
	return nil
}

// TextsToSequences converts each text into a sequence of word indices.
func (t *Tokenizer) TextsToSequences(texts []string) ([][]int, error) {
	out := make([][]int, len(texts))
	for n, text := range texts {
		seq, err := t.TextToSequence(text)
		if err != nil {
			return nil, errors.Wrapf(err, "text %d", n)
		}
		out[n] = seq
	}
	return out, nil
}

// TextToSequence converts a single text into word indices.
func (t *Tokenizer) TextToSequence(text string) ([]int, error) {
	words, err := t.TextToWordSequence(text)
	if err != nil {
		return nil, err
	}
	seq := make([]int, 0, len(words))
	oov, hasOOV := t.oovIndex()
	for _, w := range words {
		i, ok := t.wordIndex[w]
		if ok && (t.opts.NumWords == 0 || i < t.opts.NumWords) {
			seq = append(seq, i)
			continue
		}
		switch {
		case t.buckets > 0:
			seq = append(seq, t.bucketIndex(w))
		case hasOOV:
			seq = append(seq, oov)
		}
	}
	return seq, nil
}

// SequencesToTexts maps index sequences back to space joined words.
func (t *Tokenizer) SequencesToTexts(seqs [][]int) []string {
	out := make([]string, len(seqs))
	oov, hasOOV := t.oovIndex()
	for n, seq := range seqs {
		var text []byte
		for _, i := range seq {
			w, ok := t.indexWord[i]
			switch {
			case ok && (t.opts.NumWords == 0 || i < t.opts.NumWords):
			case hasOOV:
				w = t.indexWord[oov]
			default:
				continue
			}
			if len(text) > 0 {
				text = append(text, ' ')
			}
			text = append(text, w...)
		}
		out[n] = string(text)
	}
	return out
}

// WordIndex returns a copy of the word to index mapping.
func (t *Tokenizer) WordIndex() map[string]int {
	out := make(map[string]int, len(t.wordIndex))
	for k, v := range t.wordIndex {
		out[k] = v
	}
	return out
}

// IndexWord returns the word at index i.
func (t *Tokenizer) IndexWord(i int) (string, bool) {
	w, ok := t.indexWord[i]
	return w, ok
}

// WordCounts returns a copy of the word frequencies.
func (t *Tokenizer) WordCounts() map[string]int {
	out := make(map[string]int, len(t.wordCounts))
	for k, v := range t.wordCounts {
		out[k] = v
	}
	return out
}

// WordDocs reports in how many fitted texts the word appeared.
func (t *Tokenizer) WordDocs(word string) int {
	return t.wordDocs[word]
}

// DocumentCount reports the number of fitted texts.
func (t *Tokenizer) DocumentCount() int {
	return t.documentCount
}

// IndexLimit is the exclusive upper bound of indices produced by TextToSequence.
// An embedding consuming the sequences needs at least this many rows.
func (t *Tokenizer) IndexLimit() int {
	return t.base() + int(t.buckets)
}

func (t *Tokenizer) base() int {
	limit := len(t.wordIndex) + 1
	if t.opts.NumWords > 0 && t.opts.NumWords < limit {
		return t.opts.NumWords
	}
	return limit
}

func (t *Tokenizer) bucketIndex(word string) int {
	return t.base() + int(bucket(word, t.buckets))
}

func (t *Tokenizer) oovIndex() (int, bool) {
	if t.opts.OOVToken == "" {
		return 0, false
	}
	i, ok := t.wordIndex[t.opts.OOVToken]
	return i, ok
}
