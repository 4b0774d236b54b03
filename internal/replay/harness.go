package replay

import (
	"fmt"

	"github.com/Laulau4713/champion-engine/internal/checklist"
	"github.com/Laulau4713/champion-engine/internal/level"
	"github.com/Laulau4713/champion-engine/internal/rng"
	"github.com/Laulau4713/champion-engine/internal/session"
)

// #region types
// TurnOutcome pairs a replayed turn with its expectation mismatches.
type TurnOutcome struct {
	Turn       int
	Result     session.TurnResult
	Mismatches []string
}

// Summary aggregates a replay run.
type Summary struct {
	TotalTurns     int
	EventsFired    int
	ReversalsFired int
	Interruptions  int
	Mismatches     int
	FinalGauge     int
	Report         session.FinalReport
}

// #endregion types

// #region replay
// Replay runs a fixture through a fresh session with scripted randomness.
// Operates entirely in-memory; per-turn mismatches are collected, not fatal.
func Replay(f *Fixture, cfg *level.Config, module *checklist.Definition) ([]TurnOutcome, Summary, error) {
	if cfg == nil {
		var err error
		if cfg, err = f.ResolveLevel(); err != nil {
			return nil, Summary{}, err
		}
	}
	if module == nil {
		return nil, Summary{}, fmt.Errorf("fixture %q: nil module", f.Description)
	}

	s := session.New(cfg, module, session.Options{RNG: rng.NewScripted(f.Rolls...)})

	outcomes := make([]TurnOutcome, 0, len(f.Turns))
	var sum Summary
	for i, turn := range f.Turns {
		res := s.EvaluateTurn(turn.Input)

		out := TurnOutcome{Turn: i + 1, Result: res}
		if turn.Expected != nil {
			out.Mismatches = checkTurn(turn.Expected, res)
		}
		sum.Mismatches += len(out.Mismatches)
		if res.Event != nil {
			sum.EventsFired++
		}
		if res.Reversal != nil {
			sum.ReversalsFired++
		}
		if res.Interruption.ShouldInterrupt {
			sum.Interruptions++
		}
		sum.FinalGauge = res.Gauge
		outcomes = append(outcomes, out)
	}

	sum.TotalTurns = len(f.Turns)
	sum.Report = s.Finish(f.ClosingAchieved)
	if f.Expected != nil {
		sum.Mismatches += len(checkFinal(f.Expected, sum.Report))
	}
	return outcomes, sum, nil
}

// #endregion replay

// #region checks

func checkTurn(want *FixtureExpectations, got session.TurnResult) []string {
	var mm []string
	if want.Gauge != nil && got.Gauge != *want.Gauge {
		mm = append(mm, fmt.Sprintf("gauge: got %d, want %d", got.Gauge, *want.Gauge))
	}
	if want.Mood != "" && string(got.Mood.Mood) != want.Mood {
		mm = append(mm, fmt.Sprintf("mood: got %s, want %s", got.Mood.Mood, want.Mood))
	}
	if want.EventType != "" {
		if got.Event == nil {
			mm = append(mm, fmt.Sprintf("event: got none, want %s", want.EventType))
		} else if got.Event.Def.Type != want.EventType {
			mm = append(mm, fmt.Sprintf("event: got %s, want %s", got.Event.Def.Type, want.EventType))
		}
	}
	if want.ReversalType != "" {
		if got.Reversal == nil {
			mm = append(mm, fmt.Sprintf("reversal: got none, want %s", want.ReversalType))
		} else if got.Reversal.Def.Type != want.ReversalType {
			mm = append(mm, fmt.Sprintf("reversal: got %s, want %s", got.Reversal.Def.Type, want.ReversalType))
		}
	}
	if want.Interrupted != nil && got.Interruption.ShouldInterrupt != *want.Interrupted {
		mm = append(mm, fmt.Sprintf("interrupted: got %v, want %v", got.Interruption.ShouldInterrupt, *want.Interrupted))
	}
	return mm
}

func checkFinal(want *FixtureExpected, report session.FinalReport) []string {
	var mm []string
	if want.Score != 0 && report.Evaluation.Score != want.Score {
		mm = append(mm, fmt.Sprintf("score: got %d, want %d", report.Evaluation.Score, want.Score))
	}
	if want.Level != "" && report.Evaluation.Level != want.Level {
		mm = append(mm, fmt.Sprintf("level: got %s, want %s", report.Evaluation.Level, want.Level))
	}
	if want.ResultKey != "" && report.Final.Key != want.ResultKey {
		mm = append(mm, fmt.Sprintf("result: got %s, want %s", report.Final.Key, want.ResultKey))
	}
	return mm
}

// #endregion checks
