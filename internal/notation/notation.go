// Package notation converts coordinate move lists into standard algebraic
// notation and PGN text.
package notation

import (
	"fmt"
	"strings"
	"time"

	nchess "github.com/corentings/chess/v2"
	"github.com/corentings/chess/v2/opening"
)

// Replay is the notated form of a move list.
type Replay struct {
	SAN      []string
	ECOCode  string
	ECOTitle string
}

// Annotate replays UCI moves from startFEN, or from the standard position when
// startFEN is empty. On a move the notation library cannot follow (a pawn left
// unpromoted on the last rank, a captured king) it returns the moves notated so
// far together with the error.
func Annotate(startFEN string, moves []string) (Replay, error) {
	var out Replay
	game, err := newGame(startFEN)
	if err != nil {
		return out, err
	}
	uci := nchess.UCINotation{}
	for i, raw := range moves {
		pos := game.Position()
		mv, err := uci.Decode(pos, strings.ToLower(strings.TrimSpace(raw)))
		if err != nil {
			return out, fmt.Errorf("decode move %d %q: %w", i+1, raw, err)
		}
		san := nchess.AlgebraicNotation{}.Encode(pos, mv)
		if err := game.Move(mv, nil); err != nil {
			return out, fmt.Errorf("apply move %d %q: %w", i+1, raw, err)
		}
		out.SAN = append(out.SAN, san)
	}
	if strings.TrimSpace(startFEN) == "" && len(moves) > 0 {
		if book := opening.NewBookECO(); book != nil {
			if eco := book.Find(game.Moves()); eco != nil {
				out.ECOCode, out.ECOTitle = eco.Code(), eco.Title()
			}
		}
	}
	return out, nil
}

func newGame(startFEN string) (*nchess.Game, error) {
	fen := strings.TrimSpace(startFEN)
	if fen == "" {
		return nchess.NewGame(), nil
	}
	opt, err := nchess.FEN(fen)
	if err != nil {
		return nil, fmt.Errorf("parse start fen: %w", err)
	}
	return nchess.NewGame(opt), nil
}

// ResultToken maps white, black or draw to the PGN result token.
func ResultToken(result string) string {
	switch strings.ToLower(strings.TrimSpace(result)) {
	case "white":
		return "1-0"
	case "black":
		return "0-1"
	case "draw":
		return "1/2-1/2"
	default:
		return "*"
	}
}

// Header carries the PGN tag pairs written by PGN.
type Header struct {
	Event       string
	Site        string
	Date        time.Time
	White       string
	Black       string
	StartFEN    string
	Termination string
	ECO         string
	Opening     string
}

// PGN renders a movetext with numbered full moves. moves may be SAN or UCI.
func PGN(h Header, moves []string, result string) string {
	token := ResultToken(result)
	var b strings.Builder
	date := h.Date
	if date.IsZero() {
		date = time.Now()
	}
	writeTag(&b, "Event", fallback(h.Event, "Casual Game"))
	writeTag(&b, "Site", fallback(h.Site, "gamehub"))
	writeTag(&b, "Date", fmt.Sprintf("%04d.%02d.%02d", date.Year(), int(date.Month()), date.Day()))
	writeTag(&b, "White", fallback(h.White, "White"))
	writeTag(&b, "Black", fallback(h.Black, "Black"))
	writeTag(&b, "Result", token)
	if fen := strings.TrimSpace(h.StartFEN); fen != "" {
		writeTag(&b, "SetUp", "1")
		writeTag(&b, "FEN", fen)
	}
	if h.ECO != "" {
		writeTag(&b, "ECO", h.ECO)
	}
	if h.Opening != "" {
		writeTag(&b, "Opening", h.Opening)
	}
	if h.Termination != "" {
		writeTag(&b, "Termination", strings.ToLower(h.Termination))
	}
	b.WriteString("\n")

	// a position with Black to move starts with "1..."
	offset := 0
	if blackToStart(h.StartFEN) {
		offset = 1
		if len(moves) > 0 {
			fmt.Fprintf(&b, "1... %s ", strings.TrimSpace(moves[0]))
		}
	}
	for i := offset; i < len(moves); i += 2 {
		fmt.Fprintf(&b, "%d. %s", (i+offset)/2+1, strings.TrimSpace(moves[i]))
		if i+1 < len(moves) {
			b.WriteString(" ")
			b.WriteString(strings.TrimSpace(moves[i+1]))
		}
		b.WriteString(" ")
	}
	b.WriteString(token)
	return b.String()
}

func blackToStart(fen string) bool {
	fields := strings.Fields(fen)
	return len(fields) > 1 && fields[1] == "b"
}

func writeTag(b *strings.Builder, name, value string) {
	fmt.Fprintf(b, "[%s \"%s\"]\n", name, sanitize(value))
}

func sanitize(s string) string {
	s = strings.ReplaceAll(s, "\\", " ")
	s = strings.ReplaceAll(s, "\"", "'")
	return strings.TrimSpace(s)
}

func fallback(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}
