package ast

// StmtKind discriminates the five statement shapes.
type StmtKind uint8

const (
	StmtBlock StmtKind = iota
	StmtIf
	StmtIfElse
	StmtWhile
	StmtCall
)

func (k StmtKind) String() string {
	switch k {
	case StmtBlock:
		return "BLOCK"
	case StmtIf:
		return "IF"
	case StmtIfElse:
		return "IF_ELSE"
	case StmtWhile:
		return "WHILE"
	case StmtCall:
		return "CALL"
	default:
		return "UNKNOWN"
	}
}

// ParseStmtKind is the inverse of StmtKind.String.
func ParseStmtKind(s string) (StmtKind, bool) {
	for k := StmtBlock; k <= StmtCall; k++ {
		if k.String() == s {
			return k, true
		}
	}
	return 0, false
}
