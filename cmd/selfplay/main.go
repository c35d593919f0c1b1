// Command selfplay pits the search engine against itself and prints every board.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/muesli/termenv"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/pkg"
	"github.com/rocketscienceinc/tictactoe-engine/internal/search"
	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
)

func main() {
	games := flag.Int("games", 1, "number of games to play")
	full := flag.Bool("full", false, "search every move, skipping the opening heuristic")
	depth := flag.Bool("depth", false, "prefer faster wins and slower losses")
	delay := flag.Duration("delay", 0, "pause between moves")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	var opts []search.Option
	if *full {
		opts = append(opts, search.WithoutOpening())
	}
	if *depth {
		opts = append(opts, search.WithDepthScoring())
	}

	output := termenv.NewOutput(os.Stdout)
	engine := search.NewEngine(opts...)
	session := entity.NewGameSession(pkg.GenerateSessionID(), entity.ModeFriend)

	draws := 0
	for game := range *games {
		fmt.Fprintf(output, "game %d\n", game+1)

		if err := play(engine, session, output, *delay); err != nil {
			logger.Error("self-play failed", "game", game+1, "error", err)
			os.Exit(1)
		}

		fmt.Fprintln(output, renderStatus(output, session.Status))
		if session.Status.Outcome == entity.Draw {
			draws++
		}

		tictactoe.Reset(session)
	}

	fmt.Fprintf(output, "O %d  X %d  draws %d\n", session.Score.O, session.Score.X, draws)
}

func play(engine *search.Engine, session *entity.GameSession, output *termenv.Output, delay time.Duration) error {
	for session.IsOngoing() {
		cell, err := engine.SelectMove(session.Board, session.Turn)
		if err != nil {
			return fmt.Errorf("failed to select move for %s: %w", session.Turn, err)
		}

		player := session.Turn
		if err = tictactoe.ApplyMove(session, player, cell); err != nil {
			return fmt.Errorf("failed to apply move %d for %s: %w", cell, player, err)
		}

		fmt.Fprintf(output, "%s -> %d\n%s\n", player, cell, renderBoard(output, session.Board))

		if delay > 0 {
			time.Sleep(delay)
		}
	}

	return nil
}

func renderBoard(output *termenv.Output, board entity.Board) string {
	var sb strings.Builder

	for row := range 3 {
		for col := range 3 {
			cell := board[row*3+col]

			var text string
			switch cell.Owner() {
			case entity.PlayerO:
				text = output.String("O").Foreground(output.Color("4")).Bold().String()
			case entity.PlayerX:
				text = output.String("X").Foreground(output.Color("1")).Bold().String()
			default:
				text = output.String(".").Faint().String()
			}

			sb.WriteString(" ")
			sb.WriteString(text)
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

func renderStatus(output *termenv.Output, status entity.Status) string {
	if status.Outcome == entity.Won {
		return output.String(fmt.Sprintf("%s wins", status.Winner)).Bold().String()
	}

	return output.String(status.Outcome.String()).Italic().String()
}
