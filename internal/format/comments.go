package format

import (
	"bytes"

	"blc/internal/token"
)

type comment struct {
	start, end int
	text       string
}

// collectComments scans the gaps between tokens. Anything there that is not
// whitespace is a '#' comment running to end of line.
func collectComments(src []byte, toks []token.Token) []comment {
	var out []comment
	prev := 0
	scan := func(end int) {
		for i := prev; i < end; i++ {
			if src[i] != '#' {
				continue
			}
			j := i
			for j < end && src[j] != '\n' {
				j++
			}
			out = append(out, comment{start: i, end: j, text: string(bytes.TrimRight(src[i:j], " \t\r"))})
			i = j
		}
	}
	for _, tok := range toks {
		scan(int(tok.Span.Start))
		prev = int(tok.Span.End)
	}
	scan(len(src))
	return out
}
