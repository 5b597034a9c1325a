package tokenizer

import "strings"

import "github.com/bbalet/stopwords"
import "github.com/jdkato/prose/v2"
import "github.com/pkg/errors"
import "github.com/reiver/go-porterstemmer"

// Analyzer names the strategy used to break a text into words.
type Analyzer string

const (
	// Split replaces filter characters by the split string and splits on it.
	Split Analyzer = "split"

	// Prose uses the prose treebank tokenizer and drops pure filter tokens.
	Prose Analyzer = "prose"
)

var analyzers = map[Analyzer]func(t *Tokenizer, text string) ([]string, error){
	Split: splitWords,
	Prose: proseWords,
}

// TextToWordSequence breaks text into the words the tokenizer indexes.
func (t *Tokenizer) TextToWordSequence(text string) ([]string, error) {
	if t.opts.Lower {
		text = strings.ToLower(text)
	}
	if t.opts.CharLevel {
		var seq []string
		for _, r := range text {
			seq = append(seq, string(r))
		}
		return seq, nil
	}
	if t.opts.Stopwords {
		text = stopwords.CleanString(text, "en", false)
	}
	seq, err := analyzers[t.opts.Analyzer](t, text)
	if err != nil {
		return nil, err
	}
	if t.opts.Stem {
		for i := range seq {
			seq[i] = porterstemmer.StemString(seq[i])
		}
	}
	return seq, nil
}

func splitWords(t *Tokenizer, text string) ([]string, error) {
	if t.opts.Filters != "" {
		text = replaceFilters(text, t.opts.Filters, t.opts.Split)
	}
	var seq []string
	for _, w := range strings.Split(text, t.opts.Split) {
		if w != "" {
			seq = append(seq, w)
		}
	}
	return seq, nil
}

func replaceFilters(text, filters, split string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if strings.ContainsRune(filters, r) {
			b.WriteString(split)
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func proseWords(t *Tokenizer, text string) ([]string, error) {
	doc, err := prose.NewDocument(text,
		prose.WithTagging(false),
		prose.WithExtraction(false),
		prose.WithSegmentation(false))
	if err != nil {
		return nil, errors.Wrap(err, "prose")
	}
	var seq []string
	for _, tok := range doc.Tokens() {
		w := strings.Map(func(r rune) rune {
			if strings.ContainsRune(t.opts.Filters, r) {
				return -1
			}
			return r
		}, tok.Text)
		if w != "" {
			seq = append(seq, w)
		}
	}
	return seq, nil
}
