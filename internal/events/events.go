// Package events decides when scripted situational events and reversals fire
// during a session, and scores the trainee's handling of them. The engine is
// per-session: it owns the "already fired" dedupe set and the single-reversal
// flag. All probability rolls go through the injected rng.Source.
package events

import (
	"strings"

	"github.com/Laulau4713/champion-engine/internal/level"
	"github.com/Laulau4713/champion-engine/internal/patterns"
	"github.com/Laulau4713/champion-engine/internal/rng"
)

// #region constants

// warmUpMessages suppresses events during the opening exchanges: nobody gets
// a surprise objection on turn two.
const warmUpMessages = 6

// gaugeHighFloor is the minimum gauge for when_gauge_high triggers.
const gaugeHighFloor = 60

// largeSwing is the |delta| from which delta-direction cues join the pool.
const largeSwing = 5

// #endregion constants

// #region occurrences

// Occurrence is a fired situational event. Immutable once returned.
type Occurrence struct {
	Def          level.EventDef `json:"def"`
	ProspectLine string         `json:"prospect_line"`
	MessageCount int            `json:"message_count"`
}

// ReversalOccurrence is the session's single fired reversal.
type ReversalOccurrence struct {
	Def          level.ReversalDef `json:"def"`
	ProspectLine string            `json:"prospect_line"`
	GaugeDrop    int               `json:"gauge_drop"`
}

// ResponseOutcome scores the trainee's reply to a pending event.
type ResponseOutcome struct {
	HandledWell bool   `json:"handled_well"`
	GaugeImpact int    `json:"gauge_impact"`
	Feedback    string `json:"feedback"`
}

// #endregion occurrences

// #region engine

// Engine owns per-session event/reversal bookkeeping.
type Engine struct {
	cfg           *level.Config
	src           rng.Source
	fired         map[string]bool
	reversalFired bool
}

// NewEngine creates an event engine for one session. src may be nil, in which
// case a time-seeded default is used.
func NewEngine(cfg *level.Config, src rng.Source) *Engine {
	if src == nil {
		src = rng.Default()
	}
	return &Engine{cfg: cfg, src: src, fired: make(map[string]bool)}
}

// FiredTypes returns the event types that already fired, for snapshotting.
func (e *Engine) FiredTypes() []string {
	out := make([]string, 0, len(e.fired))
	for t := range e.fired {
		out = append(out, t)
	}
	return out
}

// ReversalFired reports whether the session's reversal already happened.
func (e *Engine) ReversalFired() bool {
	return e.reversalFired
}

// Restore reloads dedupe state from a snapshot.
func (e *Engine) Restore(firedTypes []string, reversalFired bool) {
	for _, t := range firedTypes {
		e.fired[t] = true
	}
	e.reversalFired = reversalFired
}

// #endregion engine

// #region trigger-event

// ShouldTriggerEvent walks the level's event table in order and fires the
// first candidate whose probability roll succeeds. Candidates must be random
// or match the caller's context, must not have fired before, and
// when_gauge_high candidates need the gauge at 60+. Returns nil when nothing
// fires; the warm-up window always returns nil.
func (e *Engine) ShouldTriggerEvent(messageCount, gaugeValue int, context string) *Occurrence {
	if messageCount < warmUpMessages || len(e.cfg.Events) == 0 {
		return nil
	}

	for _, def := range e.cfg.Events {
		if e.fired[def.Type] {
			continue
		}
		if def.Trigger != level.TriggerRandom && string(def.Trigger) != context {
			continue
		}
		if def.Trigger == level.TriggerGaugeHigh && gaugeValue < gaugeHighFloor {
			continue
		}
		if e.src.Float64() < def.Probability {
			e.fired[def.Type] = true
			return &Occurrence{
				Def:          def,
				ProspectLine: def.ProspectLine,
				MessageCount: messageCount,
			}
		}
	}
	return nil
}

// #endregion trigger-event

// #region trigger-reversal

// ShouldTriggerReversal fires at most one reversal per session. Candidates
// whose threshold the gauge has reached are rolled in table order; reversals
// that only make sense at the close are skipped until a closing attempt
// happened.
func (e *Engine) ShouldTriggerReversal(gaugeValue int, closingAttempted bool) *ReversalOccurrence {
	if e.reversalFired || len(e.cfg.Reversals) == 0 {
		return nil
	}

	for _, def := range e.cfg.Reversals {
		if gaugeValue < def.GaugeThreshold {
			continue
		}
		if def.RequiresClosingAttempt && !closingAttempted {
			continue
		}
		if e.src.Float64() < def.Probability {
			e.reversalFired = true
			return &ReversalOccurrence{
				Def:          def,
				ProspectLine: def.ProspectLine,
				GaugeDrop:    def.GaugeDrop,
			}
		}
	}
	return nil
}

// #endregion trigger-reversal

// #region cues

// BehavioralCue picks a stage direction for the prospect's current mood.
// After a large gauge swing the direction-specific cues join the pool, so a
// big win or a big slip shows on the prospect's face.
func (e *Engine) BehavioralCue(mood level.Mood, gaugeDelta int) string {
	pool := append([]string(nil), level.CueBank[mood]...)
	if gaugeDelta >= largeSwing {
		pool = append(pool, level.DeltaCues[true]...)
	} else if gaugeDelta <= -largeSwing {
		pool = append(pool, level.DeltaCues[false]...)
	}
	if len(pool) == 0 {
		return ""
	}
	return pool[e.src.Intn(len(pool))]
}

// #endregion cues

// #region evaluate-response

// EvaluateEventResponse scores how the trainee handled a pending event.
// Per-type heuristics where the event demands a specific skill; the default
// compares positive against negative pattern counts.
func EvaluateEventResponse(def level.EventDef, userResponse string, det patterns.Detection) ResponseOutcome {
	handled := false
	feedback := ""

	switch def.Type {
	case "aggressive_interruption":
		// Substance without retaliation.
		handled = len(det.Negative) == 0 && len(det.Positive) > 0
		if handled {
			feedback = "stayed calm and answered with substance"
		} else {
			feedback = "an aggressive push needs a calm, substantive answer"
		}
	case "time_pressure":
		handled = det.Indicators.WordCount < 50 && det.Indicators.WordCount > 0
		if handled {
			feedback = "compressed the pitch instead of rushing it"
		} else {
			feedback = "under time pressure, shorter is stronger"
		}
	case "competitor_mention":
		handled = !det.HasAction("denigrated_competitor") && len(det.Positive) > 0
		if handled {
			feedback = "defended value without attacking the competitor"
		} else {
			feedback = "never win against a competitor by denigrating them"
		}
	case "colleague_joins":
		handled = det.HasAction("value_demonstrated") || det.HasAction("benefit_personalized")
		if handled {
			feedback = "restated value for the new stakeholder"
		} else {
			feedback = "a new stakeholder needs the value restated, not a recap"
		}
	default:
		handled = len(det.Positive) > len(det.Negative)
		if handled {
			feedback = "kept the conversation constructive"
		} else {
			feedback = "the reaction gave more ground than it gained"
		}
	}

	impact := def.BadPenalty
	if handled {
		impact = def.GoodBonus
	}
	return ResponseOutcome{HandledWell: handled, GaugeImpact: impact, Feedback: feedback}
}

// #endregion evaluate-response

// #region source-label

// SourceLabel names a gauge adjustment caused by an event or reversal, for
// history entries and provenance rows.
func SourceLabel(kind, typ string) string {
	return kind + ":" + strings.TrimSpace(typ)
}

// #endregion source-label
