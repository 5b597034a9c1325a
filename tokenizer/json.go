package tokenizer

import "encoding/json"
import "io"

import "github.com/pkg/errors"

// ClassName tags the serialized tokenizer document.
const ClassName = "Tokenizer"

// WordCount is one vocabulary entry in first appearance order.
type WordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

type document struct {
	ClassName string         `json:"class_name"`
	Config    documentConfig `json:"config"`
}

type documentConfig struct {
	NumWords   int      `json:"num_words"`
	Filters    string   `json:"filters"`
	Lower      bool     `json:"lower"`
	Split      string   `json:"split"`
	CharLevel  bool     `json:"char_level"`
	OOVToken   string   `json:"oov_token,omitempty"`
	OOVBuckets int      `json:"oov_buckets,omitempty"`
	Analyzer   Analyzer `json:"analyzer"`
	Stopwords  bool     `json:"stopwords,omitempty"`
	Stem       bool     `json:"stem,omitempty"`

	DocumentCount int            `json:"document_count"`
	WordCounts    []WordCount    `json:"word_counts"`
	WordDocs      map[string]int `json:"word_docs"`
	WordIndex     map[string]int `json:"word_index"`
}

// WriteTo writes the tokenizer as a JSON document.
func (t *Tokenizer) WriteTo(w io.Writer) (int64, error) {
	doc := document{
		ClassName: ClassName,
		Config: documentConfig{
			NumWords:      t.opts.NumWords,
			Filters:       t.opts.Filters,
			Lower:         t.opts.Lower,
			Split:         t.opts.Split,
			CharLevel:     t.opts.CharLevel,
			OOVToken:      t.opts.OOVToken,
			OOVBuckets:    t.opts.OOVBuckets,
			Analyzer:      t.opts.Analyzer,
			Stopwords:     t.opts.Stopwords,
			Stem:          t.opts.Stem,
			DocumentCount: t.documentCount,
			WordCounts:    make([]WordCount, 0, len(t.wordOrder)),
			WordDocs:      t.wordDocs,
			WordIndex:     t.wordIndex,
		},
	}
	for _, word := range t.wordOrder {
		doc.Config.WordCounts = append(doc.Config.WordCounts, WordCount{Word: word, Count: t.wordCounts[word]})
	}
	buf, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return 0, errors.Wrap(err, "tokenizer: encode")
	}
	buf = append(buf, '\n')
	n, err := w.Write(buf)
	return int64(n), err
}

// ReadTokenizer reads a tokenizer written by WriteTo.
func ReadTokenizer(r io.Reader) (*Tokenizer, error) {
	var doc document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errors.Wrap(err, "tokenizer: decode")
	}
	if doc.ClassName != ClassName {
		return nil, errors.Errorf("tokenizer: unexpected class %q", doc.ClassName)
	}
	c := doc.Config
	t, err := New(Options{
		NumWords:   c.NumWords,
		Filters:    c.Filters,
		Lower:      c.Lower,
		Split:      c.Split,
		CharLevel:  c.CharLevel,
		OOVToken:   c.OOVToken,
		OOVBuckets: c.OOVBuckets,
		Analyzer:   c.Analyzer,
		Stopwords:  c.Stopwords,
		Stem:       c.Stem,
	})
	if err != nil {
		return nil, err
	}
	t.documentCount = c.DocumentCount
	for _, wc := range c.WordCounts {
		if _, dup := t.wordCounts[wc.Word]; dup {
			return nil, errors.Errorf("tokenizer: duplicate word %q", wc.Word)
		}
		t.wordOrder = append(t.wordOrder, wc.Word)
		t.wordCounts[wc.Word] = wc.Count
	}
	for k, v := range c.WordDocs {
		t.wordDocs[k] = v
	}
	for k, v := range c.WordIndex {
		if other, dup := t.indexWord[v]; dup {
			return nil, errors.Errorf("tokenizer: index %d used by %q and %q", v, other, k)
		}
		t.wordIndex[k] = v
		t.indexWord[v] = k
	}
	return t, nil
}
