package archive

import (
	"errors"
	"fmt"

	"github.com/notnil/chess"

	"github.com/samwightt/cbin/internal/schema"
)

// ErrCorruptBlock reports a block payload that does not parse as the
// expected schema shape. The block contributes nothing; the scan goes on.
var ErrCorruptBlock = errors.New("block does not parse as an archive")

// DecodedMove is a move reconstructed to full information by replay: exact
// origin and destination plus everything the compact form carried or the
// rules engine rederived.
type DecodedMove struct {
	Piece         schema.Piece
	From          schema.Square
	To            schema.Square
	IsCapture     bool
	PromotedPiece schema.Piece
	Castle        schema.CastleKind
	IsCheck       bool
}

// DecodedGame is one fully replayed game.
type DecodedGame struct {
	Result        schema.GameResult
	StartPosition string // FEN, or "" for the standard initial position
	Moves         []DecodedMove
}

// BlockResult is the outcome of decoding one block. Games that failed to
// replay are not in Games; they are counted in SkippedGames so the loss is
// never silent.
type BlockResult struct {
	Games        []DecodedGame
	SkippedGames int
}

// DecodeBlock parses one block's payload and replays every game it holds.
// Block decoding shares no mutable state, so any number of blocks may be
// decoded concurrently. A payload that cannot be parsed (corrupt bytes, or
// an archive type this version does not know) returns ErrCorruptBlock.
func DecodeBlock(buf []byte) (res *BlockResult, err error) {
	// The FlatBuffers runtime bounds-panics on offsets that point outside
	// the buffer, which is exactly what corrupt payloads produce.
	defer func() {
		if r := recover(); r != nil {
			res, err = nil, fmt.Errorf("%w: %v", ErrCorruptBlock, r)
		}
	}()

	if len(buf) < 4 {
		return nil, fmt.Errorf("%w: %d bytes", ErrCorruptBlock, len(buf))
	}
	block := schema.GetRootAsBlock(buf, 0)
	if t := block.ArchiveType(); t != schema.ArchiveTypeArchive {
		return nil, fmt.Errorf("%w: unknown archive type %d", ErrCorruptBlock, t)
	}
	var arch schema.ArchiveRef
	if !block.Archive(&arch) {
		return nil, fmt.Errorf("%w: missing archive", ErrCorruptBlock)
	}

	// The declared game count is untrusted input. Each game costs at least
	// a 4-byte vector entry, so cap the allocation hint by what the payload
	// could physically hold; a lying count then panics on the first
	// out-of-range game and lands in the corrupt-block path above instead
	// of exhausting memory here.
	capHint := min(arch.GamesLength(), len(buf)/4)
	out := &BlockResult{Games: make([]DecodedGame, 0, capHint)}
	var game schema.GameRef
	for i := 0; i < arch.GamesLength(); i++ {
		if !arch.Games(&game, i) {
			return nil, fmt.Errorf("%w: missing game %d", ErrCorruptBlock, i)
		}
		dg, derr := decodeGame(&game)
		if derr != nil {
			out.SkippedGames++
			continue
		}
		out.Games = append(out.Games, *dg)
	}
	return out, nil
}

// decodeGame replays one game's compact moves from its start position,
// resolving each against the legal moves of the live position.
func decodeGame(g *schema.GameRef) (*DecodedGame, error) {
	fen := g.StartPosition()
	pos, err := startPosition(fen)
	if err != nil {
		return nil, err
	}

	dg := &DecodedGame{
		Result:        g.Result(),
		StartPosition: fen,
		Moves:         make([]DecodedMove, 0, g.MovesLength()),
	}
	var mref schema.MoveRef
	for j := 0; j < g.MovesLength(); j++ {
		if !g.Moves(&mref, j) {
			return nil, fmt.Errorf("%w: missing move %d", ErrUnresolvedMove, j)
		}
		m := mref.Value()
		resolved, err := resolveMove(pos, m)
		if err != nil {
			return nil, err
		}
		dg.Moves = append(dg.Moves, DecodedMove{
			Piece:         m.MovedPiece,
			From:          squareOf(resolved.S1()),
			To:            squareOf(resolved.S2()),
			IsCapture:     isCapture(resolved),
			PromotedPiece: pieceOf(resolved.Promo()),
			Castle:        m.Castle,
			IsCheck:       resolved.HasTag(chess.Check),
		})
		pos = pos.Update(resolved)
	}
	return dg, nil
}

func startPosition(fen string) (*chess.Position, error) {
	if fen == "" {
		return chess.StartingPosition(), nil
	}
	opt, err := chess.FEN(fen)
	if err != nil {
		return nil, fmt.Errorf("bad start position: %w", err)
	}
	return chess.NewGame(opt).Position(), nil
}
