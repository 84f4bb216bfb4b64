package game

// Mark is the content of a single board cell. Empty is the zero value so a
// fresh board needs no initialization.
type Mark int

const (
	Empty Mark = iota
	MarkX
	MarkO
)

func (that Mark) String() string {
	switch that {
	case MarkX:
		return "X"
	case MarkO:
		return "O"
	default:
		return ""
	}
}

// IsPlayer reports whether the mark belongs to a player, i.e. is not Empty.
func (that Mark) IsPlayer() bool {
	return that == MarkX || that == MarkO
}

// State is the outcome of a board position, recomputed after every placement.
type State int

const (
	Ongoing State = iota
	WinX
	WinO
	Tie
)

func (that State) String() string {
	switch that {
	case WinX:
		return "x_won"
	case WinO:
		return "o_won"
	case Tie:
		return "tie"
	default:
		return "ongoing"
	}
}

// IsTerminal reports whether the state ends the current game.
func (that State) IsTerminal() bool {
	return that != Ongoing
}

// Winner returns the winning mark for WinX/WinO and Empty otherwise.
func (that State) Winner() Mark {
	switch that {
	case WinX:
		return MarkX
	case WinO:
		return MarkO
	default:
		return Empty
	}
}

// MoveResult is the two-variant outcome of a placement: either the move was
// rejected because the cell was occupied, or it succeeded and State holds the
// freshly computed board state. Rejection is a routine outcome, not an error.
type MoveResult struct {
	State    State
	Rejected bool
}
