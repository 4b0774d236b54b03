// Package interrupt decides whether the prospect cuts the trainee off. The
// decision is independent of the gauge: it reads raw timing, hesitation, and
// confidence signals. Rules are checked in a fixed order and the first match
// wins.
package interrupt

import (
	"github.com/Laulau4713/champion-engine/internal/level"
	"github.com/Laulau4713/champion-engine/internal/rng"
)

// #region types

// Input carries the per-turn signals the decision consumes. Confidence comes
// from the caller's speech pipeline; FactualError is a context flag set when
// the trainee stated something verifiably wrong.
type Input struct {
	FactualError     bool    `json:"factual_error"`
	SpeakingDuration float64 `json:"speaking_duration"`
	HesitationCount  int     `json:"hesitation_count"`
	Confidence       float64 `json:"confidence"`
}

// Decision is the transient per-turn outcome. Not persisted.
type Decision struct {
	ShouldInterrupt bool   `json:"should_interrupt"`
	Phrase          string `json:"phrase,omitempty"`
	Reason          string `json:"reason,omitempty"`
	Category        string `json:"category,omitempty"`
}

// #endregion types

// #region phrase-banks

// phraseBank maps an interruption category to the lines the prospect may use.
var phraseBank = map[string][]string{
	"disagreement": {
		"Hold on — that's not accurate.",
		"Wait, stop. That's just not true.",
		"No, I have to correct you there.",
	},
	"impatient": {
		"OK, OK, I get it — what's the bottom line?",
		"You've been talking for a while. Get to the point.",
		"Let me stop you there. Short version, please.",
	},
	"skeptical": {
		"You don't sound very sure about that.",
		"Hmm. Do you actually believe that yourself?",
		"That sounded rehearsed. What's the real answer?",
	},
	"curious": {
		"Sorry to cut in — quick question before I forget.",
		"Actually, wait — back up one second.",
	},
}

// #endregion phrase-banks

// #region engine

// Engine makes interruption decisions under one level's configuration.
type Engine struct {
	cfg level.InterruptionConfig
	src rng.Source
}

// NewEngine creates an interruption engine. src may be nil for a time-seeded
// default.
func NewEngine(cfg level.InterruptionConfig, src rng.Source) *Engine {
	if src == nil {
		src = rng.Default()
	}
	return &Engine{cfg: cfg, src: src}
}

// Decide applies the rules in order; the first match wins.
//
//  1. factual error        → always interrupt (disagreement)
//  2. over patience budget → always interrupt (impatient)
//  3. heavy hesitation     → roll at 1.5× base probability (skeptical)
//  4. low confidence       → roll at 2× base probability (skeptical)
//  5. base roll            → random interruption (curious)
func (e *Engine) Decide(in Input) Decision {
	if !e.cfg.Enabled {
		return Decision{}
	}

	if in.FactualError {
		return e.interrupt("factual_error", "disagreement")
	}
	if in.SpeakingDuration > e.cfg.PatienceSeconds {
		return e.interrupt("speaking_too_long", "impatient")
	}
	if in.HesitationCount >= e.cfg.HesitationThreshold {
		if e.src.Float64() < e.cfg.Probability*1.5 {
			return e.interrupt("too_much_hesitation", "skeptical")
		}
		return Decision{}
	}
	if in.Confidence < 0.3 {
		if e.src.Float64() < e.cfg.Probability*2 {
			return e.interrupt("low_confidence", "skeptical")
		}
		return Decision{}
	}
	if e.src.Float64() < e.cfg.Probability {
		return e.interrupt("random", "curious")
	}
	return Decision{}
}

func (e *Engine) interrupt(reason, category string) Decision {
	bank := phraseBank[category]
	phrase := ""
	if len(bank) > 0 {
		phrase = bank[e.src.Intn(len(bank))]
	}
	return Decision{
		ShouldInterrupt: true,
		Phrase:          phrase,
		Reason:          reason,
		Category:        category,
	}
}

// #endregion engine
