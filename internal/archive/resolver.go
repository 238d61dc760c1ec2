package archive

import (
	"errors"
	"fmt"

	"github.com/notnil/chess"

	"github.com/samwightt/cbin/internal/schema"
)

// ErrUnresolvedMove reports a compact move that does not denote exactly one
// legal move in the live position. The owning game is undecodable from that
// point on and is skipped.
var ErrUnresolvedMove = errors.New("compact move does not resolve to a unique legal move")

// resolveMove finds the unique legal move in pos that m denotes. The
// disambiguation payload plus the position must make the match unique; zero
// or multiple matches are an ErrUnresolvedMove.
func resolveMove(pos *chess.Position, m schema.Move) (*chess.Move, error) {
	var match *chess.Move
	for _, cand := range pos.ValidMoves() {
		if !matches(pos, cand, m) {
			continue
		}
		if match != nil {
			return nil, fmt.Errorf("%w: ambiguous %s to %s", ErrUnresolvedMove, m.MovedPiece, m.To)
		}
		match = cand
	}
	if match == nil {
		return nil, fmt.Errorf("%w: no legal %s to %s", ErrUnresolvedMove, m.MovedPiece, m.To)
	}
	return match, nil
}

func matches(pos *chess.Position, cand *chess.Move, m schema.Move) bool {
	if m.Castle != schema.CastleNone {
		switch m.Castle {
		case schema.CastleKingside:
			return cand.HasTag(chess.KingSideCastle)
		case schema.CastleQueenside:
			return cand.HasTag(chess.QueenSideCastle)
		}
		return false
	}
	if cand.HasTag(chess.KingSideCastle) || cand.HasTag(chess.QueenSideCastle) {
		return false
	}
	if pieceOf(pos.Board().Piece(cand.S1()).Type()) != m.MovedPiece {
		return false
	}
	if squareOf(cand.S2()) != m.To {
		return false
	}
	if isCapture(cand) != m.IsCapture {
		return false
	}
	if pieceOf(cand.Promo()) != m.PromotedPiece {
		return false
	}
	if m.From != schema.SquareNone && cand.S1() != chessSquare(m.From) {
		return false
	}
	if m.FromFile != schema.FileNone && fileOf(cand.S1().File()) != m.FromFile {
		return false
	}
	if m.FromRank != schema.RankNone && rankOf(cand.S1().Rank()) != m.FromRank {
		return false
	}
	return true
}
