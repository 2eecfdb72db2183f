package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/rocketscienceinc/gomoku-backend/internal/entity"
	"github.com/rocketscienceinc/gomoku-backend/internal/gomoku"
	"github.com/rocketscienceinc/gomoku-backend/internal/historyclient"
	"github.com/rocketscienceinc/gomoku-backend/internal/usecase"
)

var errQuit = errors.New("quit")

const helpText = `commands:
  place X Y             put a stone at column X, row Y (0-14)
  choose black|white|two
  status                who acts next
  history               list saved matches
  reset                 start a new match
  quit`

type historySource interface {
	RequestHistory(ctx context.Context) ([]entity.History, error)
}

// saveTracker reports what the history server answered to the last pushed result.
type saveTracker interface {
	Status() historyclient.SaveStatus
}

// table reads commands line by line and prints the state of the match as text.
type table struct {
	match          *usecase.MatchManager
	history        historySource
	saves          saveTracker
	requestTimeout time.Duration
	out            io.Writer

	lastSave historyclient.SaveStatus
}

func (that *table) run(in io.Reader) error {
	that.println(that.describe())

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		err := that.execute(strings.Fields(scanner.Text()))
		if errors.Is(err, errQuit) {
			return nil
		}

		if err != nil {
			that.println("error: " + err.Error())
		}

		that.reportSave()
	}

	return scanner.Err()
}

// reportSave prints the server's answer once, the first time a command sees it.
func (that *table) reportSave() {
	if that.saves == nil {
		return
	}

	status := that.saves.Status()
	if status == that.lastSave {
		return
	}

	that.lastSave = status

	switch status {
	case historyclient.SaveSaved:
		that.println("match result saved on the history server")
	case historyclient.SaveNotSaved, historyclient.SaveFailed:
		that.println("match result was not saved on the history server")
	}
}

func (that *table) resultLost() bool {
	if that.match.PersistenceFailed() {
		return true
	}

	if that.saves == nil {
		return false
	}

	status := that.saves.Status()

	return status == historyclient.SaveNotSaved || status == historyclient.SaveFailed
}

func (that *table) execute(args []string) error {
	if len(args) == 0 {
		return nil
	}

	switch strings.ToLower(args[0]) {
	case "place", "p":
		return that.place(args[1:])
	case "choose", "c":
		return that.choose(args[1:])
	case "status", "s":
		that.println(that.describe())
	case "history", "h":
		return that.listHistory()
	case "reset":
		that.match.Reset()
		that.println(that.describe())
	case "help", "?":
		that.println(helpText)
	case "quit", "q", "exit":
		return errQuit
	default:
		return fmt.Errorf("unknown command %q, type help", args[0])
	}

	return nil
}

func (that *table) place(args []string) error {
	if len(args) != 2 {
		return errors.New("usage: place X Y")
	}

	x, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("bad column %q", args[0])
	}

	y, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("bad row %q", args[1])
	}

	outcome, err := that.match.Place(entity.Position{X: x, Y: y})
	if err != nil {
		return err
	}

	if outcome.Placed != nil {
		that.println(fmt.Sprintf("%s stone at %s", outcome.Placed.Color, outcome.Placed.Position))
	}

	that.println(that.describe())

	return nil
}

func (that *table) choose(args []string) error {
	if len(args) != 1 {
		return errors.New("usage: choose black|white|two")
	}

	choice, err := gomoku.ParseChoice(args[0])
	if err != nil {
		return err
	}

	if _, err = that.match.Choose(choice); err != nil {
		return err
	}

	that.println(that.describe())

	return nil
}

func (that *table) listHistory() error {
	if that.history == nil {
		return errors.New("playing offline, no history server")
	}

	ctx, cancel := context.WithTimeout(context.Background(), that.requestTimeout)
	defer cancel()

	history, err := that.history.RequestHistory(ctx)
	if err != nil {
		return fmt.Errorf("failed to get history: %w", err)
	}

	if len(history) == 0 {
		that.println("no matches saved yet")
		return nil
	}

	for i, record := range history {
		that.println(fmt.Sprintf("%d. %s", i+1, formatRecord(record)))
	}

	return nil
}

func (that *table) describe() string {
	session := that.match.Session()
	active := session.Active()

	switch session.Status() {
	case gomoku.StatusWon:
		winner, _ := session.Winner()
		text := fmt.Sprintf("%s (%s) wins, type reset for a new match", winner.Name, winner.Color)

		if that.resultLost() {
			text += "; the result was not saved on the history server"
		}

		return text
	case gomoku.StatusTie:
		return "the board is full, the match is a tie; type reset for a new match"
	}

	switch session.Stage() {
	case gomoku.StageSecondChoice:
		return fmt.Sprintf("%s: choose black, white or two", active.Name)
	case gomoku.StageFinalChoice:
		return fmt.Sprintf("%s: choose black or white", active.Name)
	}

	color, _ := session.NextColor()
	if session.Stage() == gomoku.StageNormal {
		return fmt.Sprintf("%s (%s) to move, %d cells left", active.Name, color, session.Remaining())
	}

	return fmt.Sprintf("opening %s: %s places a %s stone", session.Stage(), active.Name, color)
}

func formatRecord(record entity.History) string {
	switch {
	case record.PlayerOneWinner:
		return fmt.Sprintf("%s beat %s", record.PlayerOneName, record.PlayerTwoName)
	case record.PlayerTwoWinner:
		return fmt.Sprintf("%s beat %s", record.PlayerTwoName, record.PlayerOneName)
	default:
		return fmt.Sprintf("%s and %s drew", record.PlayerOneName, record.PlayerTwoName)
	}
}

func (that *table) println(text string) {
	_, _ = fmt.Fprintln(that.out, text)
}
