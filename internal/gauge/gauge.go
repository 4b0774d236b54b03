// Package gauge owns the prospect's 0–100 willingness value: the single
// mutable scalar at the heart of a session. The value only moves through
// Engine.ApplyAction, which records every change in the state's history.
package gauge

import (
	"math"
	"time"

	"github.com/Laulau4713/champion-engine/internal/level"
)

// #region state

// HistoryEntry records one gauge mutation.
type HistoryEntry struct {
	Action    string    `json:"action"`
	Delta     int       `json:"delta"`
	Resulting int       `json:"resulting"`
	Reason    string    `json:"reason"`
	At        time.Time `json:"at"`
}

// State holds the gauge value and its full mutation history. One State per
// session; never reset after creation.
type State struct {
	Value   int            `json:"value"`
	History []HistoryEntry `json:"history"`
}

// NewState creates a gauge at the level's starting value.
func NewState(starting int) *State {
	return &State{Value: clamp(starting)}
}

// #endregion state

// #region modification

// Modification is the outcome of applying one action to the gauge.
type Modification struct {
	Action   string `json:"action"`
	Delta    int    `json:"delta"`
	NewValue int    `json:"new_value"`
	Reason   string `json:"reason"`
}

// #endregion modification

// #region blockers

// BlockerRule describes what a conversion blocker does when its action fires:
// cap the gauge at a ceiling, or forbid conversion for the rest of the session.
type BlockerRule struct {
	Cap              int
	BlocksConversion bool
}

// ConversionBlockers is the fixed blocker table. denigrated_competitor caps
// the post-action gauge at 70 even though the action itself is a penalty; the
// behavior is kept as-is for compatibility with existing session recordings
// (see the cap test before touching this).
var ConversionBlockers = map[string]BlockerRule{
	"denigrated_competitor": {Cap: 70},
	"lost_temper":           {BlocksConversion: true},
}

// #endregion blockers

// #region engine

// Engine applies catalog actions to a gauge state under a level's volatility.
type Engine struct {
	cfg *level.Config
}

// NewEngine creates a gauge engine for the given level.
func NewEngine(cfg *level.Config) *Engine {
	return &Engine{cfg: cfg}
}

// ApplyAction looks the action up in the level's catalog for the given
// polarity, scales its points by volatility, and mutates the state. Unknown
// actions are a no-op with an explicit reason, never an error.
func (e *Engine) ApplyAction(st *State, action string, polarity level.Polarity) Modification {
	mod, ok := e.cfg.Modifier(polarity, action)
	if !ok {
		m := Modification{
			Action:   action,
			Delta:    0,
			NewValue: st.Value,
			Reason:   "unrecognized action",
		}
		st.History = append(st.History, HistoryEntry{
			Action: action, Delta: 0, Resulting: st.Value, Reason: m.Reason, At: time.Now().UTC(),
		})
		return m
	}

	delta := int(math.Round(float64(mod.Points) * e.cfg.Volatility.Multiplier()))
	next := st.Value + delta
	if rule, capped := ConversionBlockers[action]; capped && rule.Cap > 0 && next > rule.Cap {
		next = rule.Cap
	}
	next = clamp(next)

	st.Value = next
	m := Modification{
		Action:   action,
		Delta:    delta,
		NewValue: next,
		Reason:   mod.Description,
	}
	st.History = append(st.History, HistoryEntry{
		Action: action, Delta: delta, Resulting: next, Reason: mod.Description, At: time.Now().UTC(),
	})
	return m
}

// Adjust applies a raw delta outside the catalogs (event bonuses, reversal
// drops). The same clamp applies; blocker caps do not.
func (e *Engine) Adjust(st *State, source string, delta int, reason string) Modification {
	next := clamp(st.Value + delta)
	st.Value = next
	m := Modification{Action: source, Delta: delta, NewValue: next, Reason: reason}
	st.History = append(st.History, HistoryEntry{
		Action: source, Delta: delta, Resulting: next, Reason: reason, At: time.Now().UTC(),
	})
	return m
}

// MoodFor returns the mood stage containing the given gauge value. The
// partition invariant makes a miss impossible for validated levels; the
// neutral fallback exists so a miss can never take a session down.
func (e *Engine) MoodFor(value int) level.MoodStage {
	for _, s := range e.cfg.MoodStages {
		if s.Contains(value) {
			return s
		}
	}
	return level.MoodStage{Lo: 0, Hi: 100, Mood: level.MoodNeutral, Behavior: "measured"}
}

// #endregion engine

// #region conversion

// CheckConversionPossible reports whether the session can still convert, and
// why not when it cannot. firedBlockers holds the blocker action names that
// occurred during the session. requiredConditions/conditionsMet are optional;
// when both are supplied, every required condition must be met.
func CheckConversionPossible(gaugeValue, threshold int, firedBlockers []string, requiredConditions, conditionsMet []string) (bool, []string) {
	var reasons []string

	if gaugeValue < threshold {
		reasons = append(reasons, "gauge below conversion threshold")
	}
	for _, name := range firedBlockers {
		if rule, ok := ConversionBlockers[name]; ok && rule.BlocksConversion {
			reasons = append(reasons, "blocked by "+name)
		}
	}
	if len(requiredConditions) > 0 && conditionsMet != nil {
		met := make(map[string]bool, len(conditionsMet))
		for _, c := range conditionsMet {
			met[c] = true
		}
		for _, c := range requiredConditions {
			if !met[c] {
				reasons = append(reasons, "missing condition "+c)
			}
		}
	}

	return len(reasons) == 0, reasons
}

// #endregion conversion

// #region helpers

func clamp(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// #endregion helpers
