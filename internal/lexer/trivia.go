package lexer

// skipTrivia пропускает пробельные символы и комментарии.
// '#' открывает комментарий до конца строки.
func (lx *Lexer) skipTrivia() {
	for !lx.cursor.EOF() {
		r, size := lx.peekRune()
		switch {
		case r == '#':
			for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
				lx.cursor.Bump()
			}
		case isSpace(r):
			lx.cursor.Advance(uint32(size))
		default:
			return
		}
	}
}
