package sequence

import "github.com/pkg/errors"

// Mode selects the side of a sequence that is padded or truncated.
type Mode string

const (
	Pre  Mode = "pre"
	Post Mode = "post"
)

// ParseMode parses "pre" or "post". Empty string means Pre.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case "", Pre:
		return Pre, nil
	case Post:
		return Post, nil
	}
	return "", errors.Errorf("sequence: unknown mode %q", s)
}

// Options configure Pad.
type Options struct {
	// MaxLen is the output length. Zero pads to the longest sequence.
	MaxLen int

	Padding    Mode
	Truncating Mode

	// Value fills the padded positions.
	Value int
}

// Pad returns sequences of equal length. Sequences longer than MaxLen lose
// items from the Truncating side, shorter ones are filled with Value on the
// Padding side. The input is not modified.
func Pad(seqs [][]int, o Options) ([][]int, error) {
	if o.MaxLen < 0 {
		return nil, errors.Errorf("sequence: negative maxlen %d", o.MaxLen)
	}
	padding, err := ParseMode(string(o.Padding))
	if err != nil {
		return nil, errors.Wrap(err, "padding")
	}
	truncating, err := ParseMode(string(o.Truncating))
	if err != nil {
		return nil, errors.Wrap(err, "truncating")
	}

	maxlen := o.MaxLen
	if maxlen == 0 {
		for _, s := range seqs {
			if len(s) > maxlen {
				maxlen = len(s)
			}
		}
	}

	out := make([][]int, len(seqs))
	for i, s := range seqs {
		if len(s) > maxlen {
			if truncating == Pre {
				s = s[len(s)-maxlen:]
			} else {
				s = s[:maxlen]
			}
		}
		row := make([]int, maxlen)
		if o.Value != 0 {
			for j := range row {
				row[j] = o.Value
			}
		}
		if padding == Pre {
			copy(row[maxlen-len(s):], s)
		} else {
			copy(row, s)
		}
		out[i] = row
	}
	return out, nil
}
