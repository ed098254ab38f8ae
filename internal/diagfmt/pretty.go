package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"blc/internal/diag"
	"blc/internal/source"
)

type palette struct {
	sev      map[diag.Severity]*color.Color
	path     *color.Color
	gutter   *color.Color
	caret    *color.Color
	note     *color.Color
	fixTitle *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		sev: map[diag.Severity]*color.Color{
			diag.SevError:   color.New(color.FgRed, color.Bold),
			diag.SevWarning: color.New(color.FgYellow, color.Bold),
			diag.SevInfo:    color.New(color.FgCyan, color.Bold),
		},
		path:     color.New(color.Bold),
		gutter:   color.New(color.FgBlue),
		caret:    color.New(color.FgRed, color.Bold),
		note:     color.New(color.FgCyan),
		fixTitle: color.New(color.FgGreen),
	}
	all := []*color.Color{p.path, p.gutter, p.caret, p.note, p.fixTitle}
	for _, c := range p.sev {
		all = append(all, c)
	}
	for _, c := range all {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем строку исходника с подчёркиванием ^~~~ по Span, затем Notes и Fixes.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	if bag == nil {
		return
	}
	pal := newPalette(opts.Color)
	for _, d := range bag.Items() {
		prettyOne(w, d, fs, opts, pal)
	}
}

func prettyOne(w io.Writer, d diag.Diagnostic, fs *source.FileSet, opts PrettyOpts, pal palette) {
	f := fs.Get(d.Primary.File)
	start, _ := fs.Resolve(d.Primary)
	sevColor := pal.sev[d.Severity]
	if sevColor == nil {
		sevColor = pal.sev[diag.SevInfo]
	}

	fmt.Fprintf(w, "%s: %s %s: %s\n",
		pal.path.Sprintf("%s:%d:%d", formatPath(f, fs, opts.PathMode), start.Line, start.Col),
		sevColor.Sprint(d.Severity.String()),
		d.Code.ID(),
		d.Message,
	)
	writeSnippet(w, fs, d.Primary, opts.Context, pal)

	if opts.ShowNotes {
		for _, n := range d.Notes {
			nstart, _ := fs.Resolve(n.Span)
			fmt.Fprintf(w, "  %s %d:%d: %s\n", pal.note.Sprint("note:"), nstart.Line, nstart.Col, n.Msg)
		}
	}
	if opts.ShowFixes {
		for _, fx := range d.Fixes {
			fmt.Fprintf(w, "  %s %s\n", pal.fixTitle.Sprint("fix:"), fx.Title)
			for _, e := range fx.Edits {
				old := string(f.Content[e.Span.Start:e.Span.End])
				fmt.Fprintf(w, "    - %q\n    + %q\n", old, e.NewText)
			}
		}
	}
}

// writeSnippet печатает строку span'а (и Context строк вокруг) с кареткой.
func writeSnippet(w io.Writer, fs *source.FileSet, sp source.Span, context int8, pal palette) {
	f := fs.Get(sp.File)
	start, end := fs.Resolve(sp)
	first := max(int64(start.Line)-int64(context), 1)
	last := int64(start.Line) + int64(context)
	gw := len(fmt.Sprint(last))

	for ln := first; ln <= last; ln++ {
		line := f.GetLine(uint32(ln))
		if line == "" && uint32(ln) != start.Line {
			if uint32(ln) > start.Line {
				break
			}
			continue
		}
		fmt.Fprintf(w, "%s %s\n", pal.gutter.Sprintf("%*d |", gw, ln), line)
		if uint32(ln) != start.Line {
			continue
		}
		col := int(start.Col) - 1
		col = min(max(col, 0), len(line))
		pad := runewidth.StringWidth(expandTabs(line[:col]))
		width := 1
		if end.Line == start.Line && end.Col > start.Col {
			stop := min(int(end.Col)-1, len(line))
			width = max(runewidth.StringWidth(line[col:stop]), 1)
		}
		marker := "^" + strings.Repeat("~", width-1)
		fmt.Fprintf(w, "%s %s%s\n", pal.gutter.Sprintf("%*s |", gw, ""), strings.Repeat(" ", pad), pal.caret.Sprint(marker))
	}
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", " ")
}
