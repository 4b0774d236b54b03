package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/Laulau4713/champion-engine/internal/level"
	"github.com/Laulau4713/champion-engine/internal/logging"
	"github.com/Laulau4713/champion-engine/internal/replay"
	"github.com/Laulau4713/champion-engine/internal/session"
)

// #region main

func main() {
	dbPath := flag.String("db", "", "path to sessions.db")
	sessionID := flag.String("session", "", "session to export")
	levelName := flag.String("level", "easy", "difficulty the session was run on")
	moduleID := flag.String("module", "discovery", "module the session was run on")
	outPath := flag.String("out", "", "output fixture JSON path")
	closed := flag.Bool("closed", false, "the prospect committed at the end")
	flag.Parse()

	if *dbPath == "" || *sessionID == "" || *outPath == "" {
		fmt.Fprintln(os.Stderr, "usage: fixture-export --db path/to/sessions.db --session id --out path/to/fixture.json [--level name] [--module id] [--closed]")
		os.Exit(2)
	}

	if err := run(*dbPath, *sessionID, *levelName, *moduleID, *outPath, *closed); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// #endregion main

// #region extract

func run(dbPath, sessionID, levelName, moduleID, outPath string, closed bool) error {
	store, err := logging.NewStore(dbPath)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer store.Close()

	turns, err := store.SessionTurns(sessionID)
	if err != nil {
		return fmt.Errorf("read session: %w", err)
	}
	if len(turns) == 0 {
		return fmt.Errorf("session %s: no turns logged", sessionID)
	}

	fmt.Printf("Found %d logged turns\n", len(turns))

	fixture := buildFixture(sessionID, level.Difficulty(levelName), moduleID, closed, turns)
	return writeFixture(fixture, outPath)
}

// #endregion extract

// #region build

// buildFixture converts logged turns into a replayable fixture. Probabilistic
// draws were not recorded, so the exported rolls are empty and nothing
// situational fires on replay: expectations are pinned only up to the first
// logged event, reversal, or interruption, where the recorded run and a
// roll-free replay stop agreeing.
func buildFixture(sessionID string, difficulty level.Difficulty, moduleID string, closed bool, turns []logging.TurnRecord) replay.Fixture {
	fixtureTurns := make([]replay.FixtureTurn, len(turns))
	pin := true
	for i, rec := range turns {
		if rec.EventType != "" || rec.ReversalType != "" || rec.Interrupted {
			pin = false
		}

		fixtureTurns[i] = replay.FixtureTurn{
			Input: session.TurnInput{
				Text:                 rec.Text,
				ResponseDelaySeconds: rec.ResponseDelaySeconds,
				SpeakingDuration:     rec.SpeakingDuration,
				Confidence:           rec.Confidence,
			},
		}
		if pin {
			g := rec.GaugeAfter
			fixtureTurns[i].Expected = &replay.FixtureExpectations{
				Gauge: &g,
				Mood:  rec.Mood,
			}
		}
	}

	return replay.Fixture{
		Description:     fmt.Sprintf("Real session export: %d turns of session %s", len(turns), sessionID),
		Level:           difficulty,
		ModuleID:        moduleID,
		Rolls:           []float64{},
		Turns:           fixtureTurns,
		ClosingAchieved: closed,
	}
}

// #endregion build

// #region output

func writeFixture(fixture replay.Fixture, outPath string) error {
	data, err := json.MarshalIndent(fixture, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal fixture: %w", err)
	}

	if err := os.WriteFile(outPath, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", outPath, err)
	}

	fmt.Printf("Wrote fixture to %s (%d bytes, %d turns)\n", outPath, len(data), len(fixture.Turns))
	return nil
}

// #endregion output
