package lsp

import (
	"sort"
	"unicode/utf8"

	"fortio.org/safecast"

	"blc/internal/source"
)

// LSP positions count UTF-16 code units; spans count bytes.

func safeUint32(n int) uint32 {
	if n < 0 {
		return 0
	}
	v, err := safecast.Conv[uint32](n)
	if err != nil {
		return ^uint32(0)
	}
	return v
}

func utf16Len(r rune) int {
	if r > 0xFFFF {
		return 2
	}
	return 1
}

// lineBounds returns the byte range of line (0-based) without its newline.
func lineBounds(file *source.File, line int) (start, end uint32) {
	contentLen := safeUint32(len(file.Content))
	if line > len(file.LineIdx) {
		return contentLen, contentLen
	}
	if line > 0 {
		start = file.LineIdx[line-1] + 1
	}
	end = contentLen
	if line < len(file.LineIdx) {
		end = file.LineIdx[line]
	}
	return start, end
}

func offsetForPosition(file *source.File, pos position) uint32 {
	if file == nil || pos.Line < 0 || pos.Character < 0 {
		return 0
	}
	start, end := lineBounds(file, pos.Line)
	units := 0
	off := start
	for off < end && units < pos.Character {
		r, size := utf8.DecodeRune(file.Content[off:end])
		if units+utf16Len(r) > pos.Character {
			break
		}
		units += utf16Len(r)
		off += safeUint32(size)
	}
	return off
}

func positionForOffset(file *source.File, offset uint32) position {
	if file == nil {
		return position{}
	}
	if contentLen := safeUint32(len(file.Content)); offset > contentLen {
		offset = contentLen
	}
	lineIdx := file.LineIdx
	line := sort.Search(len(lineIdx), func(i int) bool { return lineIdx[i] >= offset })
	start, _ := lineBounds(file, line)
	units := 0
	for off := start; off < offset; {
		r, size := utf8.DecodeRune(file.Content[off:offset])
		units += utf16Len(r)
		off += safeUint32(size)
	}
	return position{Line: line, Character: units}
}

func rangeForSpan(file *source.File, span source.Span) lspRange {
	if file == nil {
		return lspRange{}
	}
	return lspRange{
		Start: positionForOffset(file, span.Start),
		End:   positionForOffset(file, span.End),
	}
}

// applyChanges applies incremental or full-text edits in order.
func applyChanges(text string, changes []textDocumentContentChangeEvent) string {
	for _, change := range changes {
		if change.Range == nil {
			text = change.Text
			continue
		}
		fs := source.NewFileSet()
		file := fs.Get(fs.AddVirtual("", []byte(text)))
		start := int(offsetForPosition(file, change.Range.Start))
		end := int(offsetForPosition(file, change.Range.End))
		if end < start {
			end = start
		}
		text = text[:start] + change.Text + text[end:]
	}
	return text
}
