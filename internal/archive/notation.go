package archive

import (
	"github.com/notnil/chess"

	"github.com/samwightt/cbin/internal/schema"
)

// Mappings between the rules engine's types and the schema enums. Both sides
// lay squares out rank-major with A1 first; the schema is shifted by one for
// its None sentinel.

func squareOf(s chess.Square) schema.Square {
	return schema.Square(int8(s) + 1)
}

func chessSquare(s schema.Square) chess.Square {
	return chess.Square(int8(s) - 1)
}

func fileOf(f chess.File) schema.File {
	return schema.File(int8(f) + 1)
}

func rankOf(r chess.Rank) schema.Rank {
	return schema.Rank(int8(r) + 1)
}

func pieceOf(t chess.PieceType) schema.Piece {
	switch t {
	case chess.King:
		return schema.PieceKing
	case chess.Queen:
		return schema.PieceQueen
	case chess.Rook:
		return schema.PieceRook
	case chess.Bishop:
		return schema.PieceBishop
	case chess.Knight:
		return schema.PieceKnight
	case chess.Pawn:
		return schema.PiecePawn
	default:
		return schema.PieceNone
	}
}

func resultOf(o chess.Outcome) schema.GameResult {
	switch o {
	case chess.WhiteWon:
		return schema.ResultWhiteWin
	case chess.BlackWon:
		return schema.ResultBlackWin
	case chess.Draw:
		return schema.ResultDraw
	default:
		return schema.ResultUnknown
	}
}

func isCapture(m *chess.Move) bool {
	return m.HasTag(chess.Capture) || m.HasTag(chess.EnPassant)
}

// disambiguate returns the minimal origin hints needed to make a move
// unique among the legal moves of pos, following SAN conventions: pawn
// captures always carry their file, pawn pushes and king moves never need
// hints, and other pieces get a file hint, then a rank hint, then both.
func disambiguate(pos *chess.Position, mv *chess.Move, pt chess.PieceType) (schema.File, schema.Rank) {
	switch pt {
	case chess.Pawn:
		if isCapture(mv) {
			return fileOf(mv.S1().File()), schema.RankNone
		}
		return schema.FileNone, schema.RankNone
	case chess.King:
		return schema.FileNone, schema.RankNone
	}

	var total, sameFile, sameRank int
	for _, cand := range pos.ValidMoves() {
		if cand.S2() != mv.S2() {
			continue
		}
		if pos.Board().Piece(cand.S1()).Type() != pt {
			continue
		}
		total++
		if cand.S1().File() == mv.S1().File() {
			sameFile++
		}
		if cand.S1().Rank() == mv.S1().Rank() {
			sameRank++
		}
	}
	switch {
	case total <= 1:
		return schema.FileNone, schema.RankNone
	case sameFile == 1:
		return fileOf(mv.S1().File()), schema.RankNone
	case sameRank == 1:
		return schema.FileNone, rankOf(mv.S1().Rank())
	default:
		return fileOf(mv.S1().File()), rankOf(mv.S1().Rank())
	}
}
