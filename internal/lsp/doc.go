// Package lsp implements a Language Server Protocol server for BL over
// stdio. It publishes parse diagnostics for open buffers and serves
// formatting, folding ranges, quick fixes from diagnostic fixes and
// keyword hovers.
package lsp
