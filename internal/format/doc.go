// Package format prints BL programs in canonical layout: one statement per
// line, bodies indented, every compound statement closed by its own
// END line. Comments survive formatting; each is emitted on its own line
// ahead of the statement or terminator that follows it in the source.
package format
