package domain

// TokenKind names the secret being verified.
type TokenKind int

const (
	TokenSpot TokenKind = iota
	TokenGoal
	TokenTotalize
	TokenTotalizePassword
)

func (k TokenKind) String() string {
	switch k {
	case TokenSpot:
		return "spot"
	case TokenGoal:
		return "goal"
	case TokenTotalize:
		return "totalize"
	case TokenTotalizePassword:
		return "totalize_password"
	default:
		return "unknown"
	}
}
