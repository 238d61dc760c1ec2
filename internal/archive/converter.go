package archive

import (
	"errors"
	"fmt"
	"io"

	flatbuffers "github.com/google/flatbuffers/go"
	"github.com/notnil/chess"

	"github.com/samwightt/cbin/internal/schema"
)

// ErrUnsupportedMove reports a parsed move the schema cannot represent.
// Encoding aborts on it: a partially representable game would corrupt the
// archive's meaning.
var ErrUnsupportedMove = errors.New("move has no archive representation")

// Converter translates parsed PGN games into schema entities and feeds them
// to a Serializer, one game at a time. The caller (or Convert) must flush
// after the last game on every exit path, or trailing games never reach the
// output; no other component can recover them.
type Converter struct {
	ser          *Serializer
	exactOrigins bool

	// moveRefs is reused across games within a block; cleared, not freed.
	moveRefs  []flatbuffers.UOffsetT
	gameCount int64
}

// ConverterOption configures a Converter.
type ConverterOption func(*Converter)

// WithExactOrigins stores each move's true origin square and check status
// instead of minimal disambiguation hints. Larger archives, cheaper decode.
func WithExactOrigins() ConverterOption {
	return func(c *Converter) { c.exactOrigins = true }
}

// NewConverter creates a converter feeding ser.
func NewConverter(ser *Serializer, opts ...ConverterOption) *Converter {
	c := &Converter{ser: ser}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Convert reads every game from r and encodes it. The current block is
// flushed on all exit paths, including parse and write errors, so a
// fully-formed prefix of the input is never silently lost.
func (c *Converter) Convert(r io.Reader) (err error) {
	defer func() {
		if ferr := c.Flush(); err == nil {
			err = ferr
		}
	}()
	sc := chess.NewScanner(r)
	for sc.Scan() {
		if err = c.AddGame(sc.Next()); err != nil {
			return err
		}
	}
	if serr := sc.Err(); serr != nil && !errors.Is(serr, io.EOF) {
		return serr
	}
	return nil
}

// AddGame encodes one parsed game: each move is translated to its compact
// form and submitted through the serializer's dedup path, then the game is
// appended with its outcome and (if tagged) FEN start position.
//
// The PGN scanner yields one artifact at end of input: a game with no moves
// and no tag pairs. AddGame drops it without encoding or counting it. A
// genuinely empty game still carries its tag section and is kept.
func (c *Converter) AddGame(g *chess.Game) error {
	moves := g.Moves()
	if len(moves) == 0 && len(g.TagPairs()) == 0 {
		return nil
	}
	positions := g.Positions()
	c.moveRefs = c.moveRefs[:0]
	for i, mv := range moves {
		m, err := c.translate(positions[i], mv)
		if err != nil {
			return fmt.Errorf("game %d, move %d: %w", c.gameCount+1, i+1, err)
		}
		c.moveRefs = append(c.moveRefs, c.ser.AddMove(m))
	}

	startFEN := ""
	if tag := g.GetTagPair("FEN"); tag != nil {
		startFEN = tag.Value
	}
	if err := c.ser.AddGame(resultOf(g.Outcome()), startFEN, c.moveRefs); err != nil {
		return err
	}
	c.gameCount++
	return nil
}

// translate builds the compact Move for mv played from pos.
func (c *Converter) translate(pos *chess.Position, mv *chess.Move) (schema.Move, error) {
	if mv.HasTag(chess.KingSideCastle) {
		return schema.Move{MovedPiece: schema.PieceKing, Castle: schema.CastleKingside}, nil
	}
	if mv.HasTag(chess.QueenSideCastle) {
		return schema.Move{MovedPiece: schema.PieceKing, Castle: schema.CastleQueenside}, nil
	}

	piece := pos.Board().Piece(mv.S1())
	if piece == chess.NoPiece {
		return schema.Move{}, fmt.Errorf("%w: no piece on %s", ErrUnsupportedMove, mv.S1())
	}
	m := schema.Move{
		MovedPiece:    pieceOf(piece.Type()),
		To:            squareOf(mv.S2()),
		IsCapture:     isCapture(mv),
		PromotedPiece: pieceOf(mv.Promo()),
	}
	if c.exactOrigins {
		m.From = squareOf(mv.S1())
		m.IsCheck = mv.HasTag(chess.Check)
	} else {
		m.FromFile, m.FromRank = disambiguate(pos, mv, piece.Type())
	}
	return m, nil
}

// Flush finishes the current block. Must be called after the last game.
func (c *Converter) Flush() error {
	return c.ser.FinishCurrentBlock()
}

// GameCount returns the number of games fully converted so far.
func (c *Converter) GameCount() int64 { return c.gameCount }
