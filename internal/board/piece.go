package board

// Color represents the color of a piece or player.
type Color uint8

const (
	White Color = iota
	Black
	NoColor Color = 2
)

// Other returns the opposite color.
func (c Color) Other() Color {
	return c ^ 1
}

// String returns the color name.
func (c Color) String() string {
	switch c {
	case White:
		return "White"
	case Black:
		return "Black"
	default:
		return "NoColor"
	}
}

// idChar is the first character of a piece identifier ("w" or "b").
func (c Color) idChar() byte {
	if c == White {
		return 'w'
	}
	return 'b'
}

// forward is the row delta a pawn of this color advances by.
// Row 0 is rank 8, so White moves toward lower rows.
func (c Color) forward() int {
	if c == White {
		return -1
	}
	return 1
}

// PieceType represents the kind of a chess piece.
type PieceType uint8

const (
	Pawn PieceType = iota
	Knight
	Bishop
	Rook
	Queen
	King
	NoPieceType PieceType = 6
)

// String returns the piece type name.
func (pt PieceType) String() string {
	switch pt {
	case Pawn:
		return "Pawn"
	case Knight:
		return "Knight"
	case Bishop:
		return "Bishop"
	case Rook:
		return "Rook"
	case Queen:
		return "Queen"
	case King:
		return "King"
	default:
		return "None"
	}
}

// Char returns the lowercase letter used for the piece type in move text.
func (pt PieceType) Char() byte {
	if pt > NoPieceType {
		return ' '
	}
	return "pnbrqk "[pt]
}

// promotionKinds lists the kinds a pawn may become, most valuable first.
var promotionKinds = [4]PieceType{Queen, Rook, Bishop, Knight}

// Piece combines PieceType and Color into a single value.
// Encoded as: pieceType + color*6
type Piece uint8

const (
	WhitePawn   Piece = Piece(Pawn) + Piece(White)*6
	WhiteKnight Piece = Piece(Knight) + Piece(White)*6
	WhiteBishop Piece = Piece(Bishop) + Piece(White)*6
	WhiteRook   Piece = Piece(Rook) + Piece(White)*6
	WhiteQueen  Piece = Piece(Queen) + Piece(White)*6
	WhiteKing   Piece = Piece(King) + Piece(White)*6
	BlackPawn   Piece = Piece(Pawn) + Piece(Black)*6
	BlackKnight Piece = Piece(Knight) + Piece(Black)*6
	BlackBishop Piece = Piece(Bishop) + Piece(Black)*6
	BlackRook   Piece = Piece(Rook) + Piece(Black)*6
	BlackQueen  Piece = Piece(Queen) + Piece(Black)*6
	BlackKing   Piece = Piece(King) + Piece(Black)*6
	NoPiece     Piece = 12
)

// EmptyID is the identifier of an empty square.
const EmptyID = "--"

// NewPiece creates a Piece from PieceType and Color.
func NewPiece(pt PieceType, c Color) Piece {
	if pt >= NoPieceType || c >= NoColor {
		return NoPiece
	}
	return Piece(pt) + Piece(c)*6
}

// Type returns the PieceType of the piece.
func (p Piece) Type() PieceType {
	if p >= NoPiece {
		return NoPieceType
	}
	return PieceType(p % 6)
}

// Color returns the Color of the piece.
func (p Piece) Color() Color {
	if p >= NoPiece {
		return NoColor
	}
	return Color(p / 6)
}

// IsEmpty reports whether p is the empty marker.
func (p Piece) IsEmpty() bool {
	return p >= NoPiece
}

// ID returns the two-character identifier used by presentation code:
// color letter then kind letter, e.g. "wK", "bN", "wp". Empty is "--".
func (p Piece) ID() string {
	if p >= NoPiece {
		return EmptyID
	}
	return string([]byte{p.Color().idChar(), "pNBRQK"[p.Type()]})
}

// String returns the identifier of the piece.
func (p Piece) String() string {
	return p.ID()
}

// PieceFromID converts a two-character identifier back to a Piece.
// The second return value is false for unknown identifiers.
func PieceFromID(id string) (Piece, bool) {
	if id == EmptyID {
		return NoPiece, true
	}
	if len(id) != 2 {
		return NoPiece, false
	}

	var c Color
	switch id[0] {
	case 'w':
		c = White
	case 'b':
		c = Black
	default:
		return NoPiece, false
	}

	switch id[1] {
	case 'p':
		return NewPiece(Pawn, c), true
	case 'N':
		return NewPiece(Knight, c), true
	case 'B':
		return NewPiece(Bishop, c), true
	case 'R':
		return NewPiece(Rook, c), true
	case 'Q':
		return NewPiece(Queen, c), true
	case 'K':
		return NewPiece(King, c), true
	default:
		return NoPiece, false
	}
}
