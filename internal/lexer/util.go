package lexer

// ===== Классификаторы =====

func isIdentStartByte(b byte) bool {
	return b == '_' || 'a' <= b|0x20 && b|0x20 <= 'z'
}

func isIdentContinueByte(b byte) bool { return isIdentStartByte(b) || isDec(b) }

func isDec(b byte) bool { return '0' <= b && b <= '9' }

func isHex(b byte) bool { return isDec(b) || 'a' <= b|0x20 && b|0x20 <= 'f' }

// hasPrefix reports whether seq starts at the cursor, within the limit.
func (lx *Lexer) hasPrefix(seq string) bool {
	off, end := int(lx.cursor.Off), int(lx.cursor.limit())
	return end-off >= len(seq) && string(lx.file.Content[off:off+len(seq)]) == seq
}

// eat consumes seq if it starts at the cursor.
func (lx *Lexer) eat(seq string) bool {
	if lx.cursor.EOF() || !lx.hasPrefix(seq) {
		return false
	}
	for range len(seq) {
		lx.cursor.Bump()
	}
	return true
}

// atTripleBar reports whether "|||" starts at the cursor.
func (lx *Lexer) atTripleBar() bool { return lx.hasPrefix("|||") }
