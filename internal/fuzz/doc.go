// Package fuzztests houses Go fuzz harnesses for the BL front end
// (source -> lexer -> parser -> formatter). They guard against panics,
// hangs and broken span invariants on arbitrary input.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
package fuzztests
