package format

// writer accumulates formatted lines.
type writer struct {
	opt         Options
	buf         []byte
	indentLevel int
	lastBlank   bool
}

func newWriter(opt Options, sizeHint int) *writer {
	return &writer{opt: opt, buf: make([]byte, 0, sizeHint+16), lastBlank: true}
}

func (w *writer) Bytes() []byte {
	return w.buf
}

func (w *writer) Indent() { w.indentLevel++ }

func (w *writer) Dedent() {
	if w.indentLevel > 0 {
		w.indentLevel--
	}
}

// Line writes s on its own line at the current indentation.
func (w *writer) Line(s string) {
	if w.opt.UseTabs {
		for range w.indentLevel {
			w.buf = append(w.buf, '\t')
		}
	} else {
		for range w.indentLevel * w.opt.IndentWidth {
			w.buf = append(w.buf, ' ')
		}
	}
	w.buf = append(w.buf, s...)
	w.buf = append(w.buf, '\n')
	w.lastBlank = false
}

// Blank writes one empty line; runs of blanks collapse.
func (w *writer) Blank() {
	if w.lastBlank {
		return
	}
	w.buf = append(w.buf, '\n')
	w.lastBlank = true
}
