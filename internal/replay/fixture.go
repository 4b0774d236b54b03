package replay

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/Laulau4713/champion-engine/internal/level"
	"github.com/Laulau4713/champion-engine/internal/session"
)

// #region fixture-types

// Fixture is the top-level JSON structure for a recorded session. The rolls
// script every probabilistic draw, so a fixture replays bit-for-bit: same
// events, same cues, same interruptions.
type Fixture struct {
	Description     string           `json:"description"`
	Level           level.Difficulty `json:"level"`
	LevelFile       string           `json:"level_file,omitempty"`
	ModuleID        string           `json:"module_id"`
	Rolls           []float64        `json:"rolls"`
	Turns           []FixtureTurn    `json:"turns"`
	ClosingAchieved bool             `json:"closing_achieved"`
	Expected        *FixtureExpected `json:"expected,omitempty"`
}

// FixtureTurn is one recorded trainee turn plus the per-turn expectations.
type FixtureTurn struct {
	Input    session.TurnInput    `json:"input"`
	Expected *FixtureExpectations `json:"expected,omitempty"`
}

// FixtureExpectations pins the outcomes a turn must reproduce. Zero-valued
// fields are not checked; Gauge uses a pointer so 0 stays checkable.
type FixtureExpectations struct {
	Gauge        *int   `json:"gauge,omitempty"`
	Mood         string `json:"mood,omitempty"`
	EventType    string `json:"event_type,omitempty"`
	ReversalType string `json:"reversal_type,omitempty"`
	Interrupted  *bool  `json:"interrupted,omitempty"`
}

// FixtureExpected pins the end-of-session outcome.
type FixtureExpected struct {
	Score     int    `json:"score,omitempty"`
	Level     string `json:"level,omitempty"`
	ResultKey string `json:"result_key,omitempty"`
}

// #endregion fixture-types

// #region fixture-loader

// LoadFixture reads and parses a JSON fixture file.
func LoadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture %s: %w", path, err)
	}
	var f Fixture
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse fixture %s: %w", path, err)
	}
	if len(f.Turns) == 0 {
		return nil, fmt.Errorf("fixture %s: no turns", path)
	}
	return &f, nil
}

// ResolveLevel loads the fixture's level: an external file when given,
// otherwise the built-in difficulty.
func (f *Fixture) ResolveLevel() (*level.Config, error) {
	if f.LevelFile != "" {
		return level.Load(f.LevelFile)
	}
	return level.Default(f.Level)
}

// #endregion fixture-loader
