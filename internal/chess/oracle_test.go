package chess

import (
	"math/rand"
	"sort"
	"testing"

	nchess "github.com/corentings/chess/v2"
	"github.com/dylhunn/dragontoothmg"
)

// Both reference generators index squares from a1 = 0 to h8 = 63.
func fromIndex(n int) Square {
	return Sq(7-n/8, n%8)
}

func sortedMoves(in []Move) []string {
	out := make([]string, 0, len(in))
	for _, m := range in {
		out = append(out, m.String())
	}
	sort.Strings(out)
	return out
}

func sameMoves(t *testing.T, ctx string, got, want []Move) {
	t.Helper()
	g, w := sortedMoves(got), sortedMoves(want)
	if len(g) != len(w) {
		t.Fatalf("%s: %d moves %v, want %d %v", ctx, len(g), g, len(w), w)
	}
	for i := range g {
		if g[i] != w[i] {
			t.Fatalf("%s: moves %v, want %v", ctx, g, w)
		}
	}
}

// basicMoves drops castling and en passant and folds promotion choices into a
// single from/to pair, leaving the move set this engine generates.
func basicMoves(g *nchess.Game) (moves []Move, promotions map[Move]bool) {
	seen := make(map[Move]bool)
	promotions = make(map[Move]bool)
	for _, mv := range g.ValidMoves() {
		if mv.HasTag(nchess.KingSideCastle) || mv.HasTag(nchess.QueenSideCastle) || mv.HasTag(nchess.EnPassant) {
			continue
		}
		m := Move{From: fromIndex(int(mv.S1())), To: fromIndex(int(mv.S2()))}
		if mv.Promo() != nchess.NoPieceType {
			promotions[m] = true
		}
		if !seen[m] {
			seen[m] = true
			moves = append(moves, m)
		}
	}
	return moves, promotions
}

func TestRandomPlayoutsMatchReferenceGenerator(t *testing.T) {
	r := rand.New(rand.NewSource(2024))
	games := 25
	if testing.Short() {
		games = 5
	}
	for n := 0; n < games; n++ {
		ref := nchess.NewGame()
		b, side := StandardBoard(), White
		for ply := 0; ply < 150; ply++ {
			if b.Placement() != ref.Position().Board().String() {
				t.Fatalf("game %d ply %d: placement %s, reference %s", n, ply, b.Placement(), ref.Position().Board().String())
			}
			want, promotions := basicMoves(ref)
			got := AllLegalMoves(b, side)
			sameMoves(t, b.FEN(side), got, want)

			if ref.Outcome() != nchess.NoOutcome {
				switch ref.Method() {
				case nchess.Checkmate:
					if s := Classify(b, side); s != Checkmate {
						t.Fatalf("%s: Classify = %s, reference reports checkmate", b.FEN(side), s)
					}
				case nchess.Stalemate:
					if s := Classify(b, side); s != Stalemate {
						t.Fatalf("%s: Classify = %s, reference reports stalemate", b.FEN(side), s)
					}
				}
				break
			}

			var playable []Move
			for _, m := range got {
				if !promotions[m] {
					playable = append(playable, m)
				}
			}
			if len(playable) == 0 {
				break
			}
			m := playable[r.Intn(len(playable))]
			if err := ref.PushNotationMove(m.String(), nchess.UCINotation{}, nil); err != nil {
				t.Fatalf("reference rejected %s on %s: %v", m, b.FEN(side), err)
			}
			b, side = b.WithMove(m), side.Opposite()
		}
	}
}

func TestLegalMovesMatchDragontooth(t *testing.T) {
	fens := []string{
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w - - 0 1",
		"r1bqkb1r/pppp1ppp/2n2n2/4p2Q/2B1P3/8/PPPP1PPP/RNB1K1NR w - - 0 1",
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w - - 0 1",
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R b - - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		"4k3/8/8/8/8/8/4r3/4K3 w - - 0 1",
		"rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w - - 0 1",
	}
	for _, fen := range fens {
		b, side := mustFEN(t, fen)
		ref := dragontoothmg.ParseFen(fen)
		var want []Move
		for _, mv := range ref.GenerateLegalMoves() {
			want = append(want, Move{From: fromIndex(int(mv.From())), To: fromIndex(int(mv.To()))})
		}
		sameMoves(t, fen, AllLegalMoves(b, side), want)
	}
}

func TestDragontoothMoveCounts(t *testing.T) {
	counts := map[string]int{
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1": 14,
		"4k3/8/8/8/8/8/4r3/4K3 w - - 0 1":           3,
	}
	for fen, n := range counts {
		ref := dragontoothmg.ParseFen(fen)
		if got := len(ref.GenerateLegalMoves()); got != n {
			t.Fatalf("reference count for %s = %d, want %d", fen, got, n)
		}
		b, side := mustFEN(t, fen)
		if got := len(AllLegalMoves(b, side)); got != n {
			t.Fatalf("AllLegalMoves(%s) = %d, want %d", fen, got, n)
		}
	}
}
