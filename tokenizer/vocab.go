package tokenizer

import "github.com/google/btree"

type vocabEntry struct {
	word  string
	count int
	first int
}

// byFrequency orders by descending count, ties by first appearance.
func byFrequency(a, b vocabEntry) bool {
	if a.count != b.count {
		return a.count > b.count
	}
	return a.first < b.first
}

// reindex rebuilds the word index from the word counts.
func (t *Tokenizer) reindex() {
	tree := btree.NewG[vocabEntry](8, byFrequency)
	for i, w := range t.wordOrder {
		tree.ReplaceOrInsert(vocabEntry{word: w, count: t.wordCounts[w], first: i})
	}

	t.wordIndex = make(map[string]int, tree.Len()+1)
	t.indexWord = make(map[int]string, tree.Len()+1)
	next := 1
	if t.opts.OOVToken != "" {
		t.wordIndex[t.opts.OOVToken] = next
		t.indexWord[next] = t.opts.OOVToken
		next++
	}
	tree.Ascend(func(e vocabEntry) bool {
		if _, dup := t.wordIndex[e.word]; dup {
			return true
		}
		t.wordIndex[e.word] = next
		t.indexWord[next] = e.word
		next++
		return true
	})
}
