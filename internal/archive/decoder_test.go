package archive

import (
	"bytes"
	"encoding/binary"
	"errors"
	"strings"
	"testing"

	flatbuffers "github.com/google/flatbuffers/go"
	"github.com/notnil/chess"

	"github.com/samwightt/cbin/internal/schema"
)

// roundTripPGN exercises castling both ways, rook disambiguation, en
// passant, promotion, and a FEN start position.
const roundTripPGN = `[Event "?"]
[Result "1-0"]

1. e4 e5 2. Nf3 1-0

[Event "?"]
[Result "1/2-1/2"]

1. e4 e5 2. Nf3 Nc6 3. Bc4 Bc5 4. O-O Nf6 5. Nc3 O-O 1/2-1/2

[Event "?"]
[Result "0-1"]

1. a4 h5 2. h4 a5 3. Ra3 Ra6 4. Rhh3 Rhh6 0-1

[Event "?"]
[Result "*"]

1. e4 Nf6 2. e5 d5 3. exd6 *

[Event "?"]
[Result "*"]

1. g4 h5 2. gxh5 g6 3. hxg6 Bh6 4. g7 Be3 5. gxh8=Q *

[Event "?"]
[SetUp "1"]
[FEN "rnbqkbnr/pppp1ppp/8/4p3/4P3/8/PPPP1PPP/RNBQKBNR w KQkq - 0 2"]
[Result "*"]

2. Nf3 Nc6 *

`

func decodeAll(t *testing.T, raw []byte) []DecodedGame {
	t.Helper()
	var games []DecodedGame
	sc := NewBlockScanner(raw)
	for {
		payload, ok := sc.Next()
		if !ok {
			return games
		}
		res, err := DecodeBlock(payload)
		if err != nil {
			t.Fatalf("DecodeBlock: %v", err)
		}
		if res.SkippedGames != 0 {
			t.Fatalf("SkippedGames = %d, want 0", res.SkippedGames)
		}
		games = append(games, res.Games...)
	}
}

func roundTrip(t *testing.T, pgn string, opts ...ConverterOption) {
	t.Helper()

	// Parse the same input independently as the expectation.
	var want []*chess.Game
	sc := chess.NewScanner(strings.NewReader(pgn))
	for sc.Scan() {
		want = append(want, sc.Next())
	}

	got := decodeAll(t, encodePGN(t, pgn, 10, opts...))
	if len(got) != len(want) {
		t.Fatalf("decoded %d games, want %d", len(got), len(want))
	}

	for i, wg := range want {
		dg := got[i]
		if dg.Result != resultOf(wg.Outcome()) {
			t.Errorf("game %d result = %v, want %v", i+1, dg.Result, resultOf(wg.Outcome()))
		}
		moves := wg.Moves()
		positions := wg.Positions()
		if len(dg.Moves) != len(moves) {
			t.Fatalf("game %d: %d moves, want %d", i+1, len(dg.Moves), len(moves))
		}
		for j, wm := range moves {
			dm := dg.Moves[j]
			if dm.From != squareOf(wm.S1()) || dm.To != squareOf(wm.S2()) {
				t.Errorf("game %d move %d = %v%v, want %v%v",
					i+1, j+1, dm.From, dm.To, squareOf(wm.S1()), squareOf(wm.S2()))
			}
			if dm.IsCapture != isCapture(wm) {
				t.Errorf("game %d move %d capture = %v, want %v", i+1, j+1, dm.IsCapture, isCapture(wm))
			}
			if dm.PromotedPiece != pieceOf(wm.Promo()) {
				t.Errorf("game %d move %d promotion = %v, want %v", i+1, j+1, dm.PromotedPiece, pieceOf(wm.Promo()))
			}
			wantPiece := pieceOf(positions[j].Board().Piece(wm.S1()).Type())
			if dm.Piece != wantPiece {
				t.Errorf("game %d move %d piece = %v, want %v", i+1, j+1, dm.Piece, wantPiece)
			}
			wantCastle := schema.CastleNone
			if wm.HasTag(chess.KingSideCastle) {
				wantCastle = schema.CastleKingside
			} else if wm.HasTag(chess.QueenSideCastle) {
				wantCastle = schema.CastleQueenside
			}
			if dm.Castle != wantCastle {
				t.Errorf("game %d move %d castle = %v, want %v", i+1, j+1, dm.Castle, wantCastle)
			}
			if dm.IsCheck != wm.HasTag(chess.Check) {
				t.Errorf("game %d move %d check = %v, want %v", i+1, j+1, dm.IsCheck, wm.HasTag(chess.Check))
			}
		}
	}
}

func TestRoundTrip(t *testing.T) {
	roundTrip(t, roundTripPGN)
}

func TestRoundTripExactOrigins(t *testing.T) {
	roundTrip(t, roundTripPGN, WithExactOrigins())
}

func TestReplayScenario(t *testing.T) {
	games := decodeAll(t, encodePGN(t, twoGamePGN, 10))
	if len(games) != 2 {
		t.Fatalf("games = %d, want 2", len(games))
	}

	wantSquares := [][2]string{{"e2", "e4"}, {"e7", "e5"}, {"g1", "f3"}}
	g1 := games[0]
	if len(g1.Moves) != 3 {
		t.Fatalf("game 1 moves = %d, want 3", len(g1.Moves))
	}
	for i, w := range wantSquares {
		m := g1.Moves[i]
		if m.From != sq(w[0]) || m.To != sq(w[1]) {
			t.Errorf("game 1 move %d = %v%v, want %s%s", i+1, m.From, m.To, w[0], w[1])
		}
	}
	if g1.Result != schema.ResultWhiteWin {
		t.Errorf("game 1 result = %v, want %v", g1.Result, schema.ResultWhiteWin)
	}
	if games[1].Result != schema.ResultUnknown {
		t.Errorf("game 2 result = %v, want %v", games[1].Result, schema.ResultUnknown)
	}

	// White-win classification: true for game 1 only.
	st := analyzeBlock(mustFirstBlock(t, encodePGN(t, twoGamePGN, 10)))
	if st.WhiteWins != 1 {
		t.Errorf("WhiteWins = %d, want 1", st.WhiteWins)
	}
	if st.Unknown != 1 {
		t.Errorf("Unknown = %d, want 1", st.Unknown)
	}
}

func TestDecodeCorruptBlock(t *testing.T) {
	payload := mustFirstBlock(t, encodePGN(t, twoGamePGN, 10))
	garbage := bytes.Repeat([]byte{0xFF}, len(payload))
	if _, err := DecodeBlock(garbage); !errors.Is(err, ErrCorruptBlock) {
		t.Errorf("DecodeBlock(garbage) = %v, want ErrCorruptBlock", err)
	}
	if _, err := DecodeBlock(nil); !errors.Is(err, ErrCorruptBlock) {
		t.Errorf("DecodeBlock(nil) = %v, want ErrCorruptBlock", err)
	}
}

func TestDecodeOverstatedGameCount(t *testing.T) {
	// Hand-laid block whose games vector declares ~2^31 entries but whose
	// payload ends right after the length word. Decoding must fail through
	// the corrupt-block path without allocating for the declared count.
	buf := make([]byte, 44)
	le := binary.LittleEndian
	le.PutUint32(buf[0:], 20)      // root -> block table
	le.PutUint16(buf[4:], 8)       // block vtable: size
	le.PutUint16(buf[6:], 12)      //   table size
	le.PutUint16(buf[8:], 4)       //   archive type slot
	le.PutUint16(buf[10:], 8)      //   archive slot
	le.PutUint16(buf[12:], 6)      // archive vtable: size
	le.PutUint16(buf[14:], 8)      //   table size
	le.PutUint16(buf[16:], 4)      //   games slot
	le.PutUint32(buf[20:], 16)     // block table: soffset to vtable
	buf[24] = byte(schema.ArchiveTypeArchive)
	le.PutUint32(buf[28:], 4)          // archive field -> table at 32
	le.PutUint32(buf[32:], 20)         // archive table: soffset to vtable
	le.PutUint32(buf[36:], 4)          // games field -> vector at 40
	le.PutUint32(buf[40:], 0x7FFFFFFF) // declared length, no entries

	if _, err := DecodeBlock(buf); !errors.Is(err, ErrCorruptBlock) {
		t.Errorf("DecodeBlock(overstated count) = %v, want ErrCorruptBlock", err)
	}
}

func TestDecodeSkipsUnresolvableGame(t *testing.T) {
	var buf bytes.Buffer
	s := NewSerializer(&buf)

	// No knight can reach a1 from the initial position.
	bad := s.AddMove(schema.Move{MovedPiece: schema.PieceKnight, To: sq("a1")})
	if err := s.AddGame(schema.ResultWhiteWin, "", []flatbuffers.UOffsetT{bad}); err != nil {
		t.Fatalf("AddGame: %v", err)
	}
	good := s.AddMove(schema.Move{MovedPiece: schema.PiecePawn, To: sq("e4")})
	if err := s.AddGame(schema.ResultDraw, "", []flatbuffers.UOffsetT{good}); err != nil {
		t.Fatalf("AddGame: %v", err)
	}
	if err := s.FinishCurrentBlock(); err != nil {
		t.Fatalf("FinishCurrentBlock: %v", err)
	}

	res, err := DecodeBlock(mustFirstBlock(t, buf.Bytes()))
	if err != nil {
		t.Fatalf("DecodeBlock: %v", err)
	}
	if res.SkippedGames != 1 {
		t.Errorf("SkippedGames = %d, want 1", res.SkippedGames)
	}
	if len(res.Games) != 1 || res.Games[0].Result != schema.ResultDraw {
		t.Fatalf("surviving games = %+v, want the draw", res.Games)
	}
}

func TestDecodeSkipsAmbiguousGame(t *testing.T) {
	// Both rooks reach e1; without hints the move is ambiguous.
	const fen = "4k3/8/8/8/8/8/4K3/R6R w - - 0 1"

	var buf bytes.Buffer
	s := NewSerializer(&buf)
	ambiguous := s.AddMove(schema.Move{MovedPiece: schema.PieceRook, To: sq("e1")})
	if err := s.AddGame(schema.ResultUnknown, fen, []flatbuffers.UOffsetT{ambiguous}); err != nil {
		t.Fatalf("AddGame: %v", err)
	}
	hinted := s.AddMove(schema.Move{MovedPiece: schema.PieceRook, To: sq("e1"), FromFile: schema.FileA})
	if err := s.AddGame(schema.ResultUnknown, fen, []flatbuffers.UOffsetT{hinted}); err != nil {
		t.Fatalf("AddGame: %v", err)
	}
	if err := s.FinishCurrentBlock(); err != nil {
		t.Fatalf("FinishCurrentBlock: %v", err)
	}

	res, err := DecodeBlock(mustFirstBlock(t, buf.Bytes()))
	if err != nil {
		t.Fatalf("DecodeBlock: %v", err)
	}
	if res.SkippedGames != 1 {
		t.Errorf("SkippedGames = %d, want 1", res.SkippedGames)
	}
	if len(res.Games) != 1 {
		t.Fatalf("games = %d, want 1", len(res.Games))
	}
	if got := res.Games[0].Moves[0].From; got != sq("a1") {
		t.Errorf("hinted rook origin = %v, want a1", got)
	}
}
