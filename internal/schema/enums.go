package schema

// All enums reserve 0 for the None sentinel so that the zero value of Move
// means "field not set". Real values start at 1.

// Piece is a chess piece kind.
type Piece int8

const (
	PieceNone Piece = iota
	PieceKing
	PieceQueen
	PieceRook
	PieceBishop
	PieceKnight
	PiecePawn
)

var pieceNames = [...]string{"none", "king", "queen", "rook", "bishop", "knight", "pawn"}

func (p Piece) String() string {
	if p < PieceNone || p > PiecePawn {
		return "invalid"
	}
	return pieceNames[p]
}

// Square is a board square, A1=1 through H8=64, rank-major (A1, B1, ... H1,
// A2, ...).
type Square int8

const (
	SquareNone Square = 0
	SquareA1   Square = 1
	SquareH8   Square = 64
)

// File returns the square's file.
func (s Square) File() File {
	if s == SquareNone {
		return FileNone
	}
	return File((s-1)%8 + 1)
}

// Rank returns the square's rank.
func (s Square) Rank() Rank {
	if s == SquareNone {
		return RankNone
	}
	return Rank((s-1)/8 + 1)
}

func (s Square) String() string {
	if s < SquareA1 || s > SquareH8 {
		return "-"
	}
	return string([]byte{byte('a' + (s-1)%8), byte('1' + (s-1)/8)})
}

// File is a board file, a=1 through h=8.
type File int8

const (
	FileNone File = iota
	FileA
	FileB
	FileC
	FileD
	FileE
	FileF
	FileG
	FileH
)

func (f File) String() string {
	if f < FileA || f > FileH {
		return "-"
	}
	return string([]byte{byte('a' + f - 1)})
}

// Rank is a board rank, 1st=1 through 8th=8.
type Rank int8

const (
	RankNone Rank = iota
	RankFirst
	RankSecond
	RankThird
	RankFourth
	RankFifth
	RankSixth
	RankSeventh
	RankEighth
)

func (r Rank) String() string {
	if r < RankFirst || r > RankEighth {
		return "-"
	}
	return string([]byte{byte('0' + r)})
}

// CastleKind is the side of a castling move.
type CastleKind int8

const (
	CastleNone CastleKind = iota
	CastleKingside
	CastleQueenside
)

func (c CastleKind) String() string {
	switch c {
	case CastleKingside:
		return "O-O"
	case CastleQueenside:
		return "O-O-O"
	default:
		return "none"
	}
}

// GameResult is a game's outcome. The wire default (absent field) is
// ResultUnknown, which is also what the `*` ongoing marker maps to.
type GameResult int8

const (
	ResultUnknown GameResult = iota
	ResultWhiteWin
	ResultBlackWin
	ResultDraw
)

var resultNames = [...]string{"*", "1-0", "0-1", "1/2-1/2"}

func (r GameResult) String() string {
	if r < ResultUnknown || r > ResultDraw {
		return "invalid"
	}
	return resultNames[r]
}

// ArchiveType tags the union on Block. Archive is the only variant today;
// the tag exists so future archive kinds can be added without changing the
// Block shape. Readers must treat an unknown tag as an undecodable block.
type ArchiveType byte

const (
	ArchiveTypeNONE ArchiveType = iota
	ArchiveTypeArchive
)
