// Package session owns one live training conversation: the gauge state, the
// event/reversal dedupe sets, checklist progress, and the per-turn pipeline
// that feeds a trainee utterance through pattern detection, gauge updates,
// event and reversal triggers, interruption decisions, and incremental
// checklist evaluation. A session serializes its turns: concurrent calls for
// the same session queue on the session mutex.
package session

import (
	"log"
	"sync"

	"github.com/google/uuid"

	"github.com/Laulau4713/champion-engine/internal/checklist"
	"github.com/Laulau4713/champion-engine/internal/events"
	"github.com/Laulau4713/champion-engine/internal/gauge"
	"github.com/Laulau4713/champion-engine/internal/interrupt"
	"github.com/Laulau4713/champion-engine/internal/level"
	"github.com/Laulau4713/champion-engine/internal/patterns"
	"github.com/Laulau4713/champion-engine/internal/rng"
)

// #region turn-io

// TurnInput carries everything the caller knows about one trainee turn.
// Timing and confidence come from the caller's audio pipeline; Context hints
// at a contextual event trigger; FactualError is set when the surrounding
// system verified a wrong claim.
type TurnInput struct {
	Text                 string  `json:"text"`
	ResponseDelaySeconds float64 `json:"response_delay_seconds"`
	SpeakingDuration     float64 `json:"speaking_duration"`
	Confidence           float64 `json:"confidence"`
	ProspectWasSpeaking  bool    `json:"prospect_was_speaking"`
	LastProspectLine     string  `json:"last_prospect_line"`
	Context              string  `json:"context,omitempty"`
	FactualError         bool    `json:"factual_error,omitempty"`
}

// TurnResult is everything the caller needs to render the prospect's next
// move and to build its generation prompt.
type TurnResult struct {
	Turn          int                        `json:"turn"`
	Modifications []gauge.Modification       `json:"modifications"`
	Gauge         int                        `json:"gauge"`
	Mood          level.MoodStage            `json:"mood"`
	Cue           string                     `json:"cue,omitempty"`
	Event         *events.Occurrence         `json:"event,omitempty"`
	EventOutcome  *events.ResponseOutcome    `json:"event_outcome,omitempty"`
	Reversal      *events.ReversalOccurrence `json:"reversal,omitempty"`
	Interruption  interrupt.Decision         `json:"interruption"`
	Indicators    patterns.Indicators        `json:"indicators"`
	Warnings      []string                   `json:"warnings,omitempty"`
	NewlyCovered  []string                   `json:"newly_covered,omitempty"`
}

// FinalReport closes the session: module evaluation plus the combined
// outcome.
type FinalReport struct {
	Evaluation         checklist.EvaluationResult `json:"evaluation"`
	Final              checklist.FinalResult      `json:"final"`
	ConversionPossible bool                       `json:"conversion_possible"`
	ConversionBlocks   []string                   `json:"conversion_blocks,omitempty"`
	ClosingAttempted   bool                       `json:"closing_attempted"`
}

// #endregion turn-io

// #region session

// recentQuestionWindow bounds the question history kept for spam detection.
const recentQuestionWindow = 10

// Options tunes session construction.
type Options struct {
	// ID overrides the generated session id (used when restoring).
	ID string
	// RNG overrides the default randomness source for events, reversals,
	// cues, and interruptions.
	RNG rng.Source
}

// Session is the per-trainee conversation state. All methods are safe for
// concurrent use; turns for one session run strictly one at a time.
type Session struct {
	mu sync.Mutex

	id     string
	cfg    *level.Config
	module *checklist.Definition

	gaugeState *gauge.State
	gaugeEng   *gauge.Engine
	detector   *patterns.Detector
	eventsEng  *events.Engine
	interrupts *interrupt.Engine
	progress   *checklist.Progress

	messageCount     int
	recentQuestions  []patterns.QuestionType
	closingAttempted bool
	firedBlockers    []string
	pendingEvent     *events.Occurrence
}

// New starts a session on the given level with the given methodology module.
func New(cfg *level.Config, module *checklist.Definition, opts Options) *Session {
	src := opts.RNG
	if src == nil {
		src = rng.Default()
	}
	id := opts.ID
	if id == "" {
		id = uuid.New().String()
	}
	return &Session{
		id:         id,
		cfg:        cfg,
		module:     module,
		gaugeState: gauge.NewState(cfg.StartingGauge),
		gaugeEng:   gauge.NewEngine(cfg),
		detector:   patterns.NewDetector(),
		eventsEng:  events.NewEngine(cfg, src),
		interrupts: interrupt.NewEngine(cfg.Interruption, src),
		progress:   checklist.NewProgress(module),
	}
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// Gauge returns the current gauge value.
func (s *Session) Gauge() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gaugeState.Value
}

// #endregion session

// #region evaluate-turn

// EvaluateTurn runs one trainee utterance through the full pipeline.
func (s *Session) EvaluateTurn(in TurnInput) TurnResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.messageCount++
	res := TurnResult{Turn: s.messageCount}

	det := s.detector.Detect(in.Text)
	res.Indicators = det.Indicators

	// A pending event is a test: the first reply after it fires is scored.
	if s.pendingEvent != nil {
		outcome := events.EvaluateEventResponse(s.pendingEvent.Def, in.Text, det)
		mod := s.gaugeEng.Adjust(s.gaugeState,
			events.SourceLabel("event", s.pendingEvent.Def.Type), outcome.GaugeImpact, outcome.Feedback)
		res.Modifications = append(res.Modifications, mod)
		res.EventOutcome = &outcome
		s.pendingEvent = nil
	}

	// Catalog actions from the utterance itself.
	for _, m := range det.Positive {
		res.Modifications = append(res.Modifications,
			s.applyCatalog(m.Action, level.PolarityPositive))
	}
	for _, m := range det.Negative {
		res.Modifications = append(res.Modifications,
			s.applyCatalog(m.Action, level.PolarityNegative))
	}
	if det.HasAction("closing_attempted") {
		s.closingAttempted = true
	}

	// Timing- and history-derived penalties.
	res.Warnings = append(res.Warnings, s.applyDerived(in, det, &res)...)

	// Situational machinery: new event, then reversal.
	if ev := s.eventsEng.ShouldTriggerEvent(s.messageCount, s.gaugeState.Value, in.Context); ev != nil {
		res.Event = ev
		if ev.Def.IsTest {
			s.pendingEvent = ev
		}
		log.Printf("[SESSION] %s: event %s fired at turn %d", s.id, ev.Def.Type, s.messageCount)
	}
	if rv := s.eventsEng.ShouldTriggerReversal(s.gaugeState.Value, s.closingAttempted); rv != nil {
		res.Reversal = rv
		mod := s.gaugeEng.Adjust(s.gaugeState,
			events.SourceLabel("reversal", rv.Def.Type), -rv.GaugeDrop, rv.ProspectLine)
		res.Modifications = append(res.Modifications, mod)
		log.Printf("[SESSION] %s: reversal %s fired, gauge %d", s.id, rv.Def.Type, s.gaugeState.Value)
	}

	// Interruptions read raw signals, not the gauge.
	res.Interruption = s.interrupts.Decide(interrupt.Input{
		FactualError:     in.FactualError,
		SpeakingDuration: in.SpeakingDuration,
		HesitationCount:  det.Indicators.HesitationCount,
		Confidence:       in.Confidence,
	})

	res.Gauge = s.gaugeState.Value
	res.Mood = s.gaugeEng.MoodFor(res.Gauge)
	if s.cfg.Feedback.ShowCues {
		res.Cue = s.eventsEng.BehavioralCue(res.Mood.Mood, turnDelta(res.Modifications))
	}

	res.NewlyCovered = s.progress.EvaluateMessage(in.Text)
	return res
}

// applyCatalog applies one catalog action and tracks conversion blockers.
func (s *Session) applyCatalog(action string, polarity level.Polarity) gauge.Modification {
	if _, isBlocker := gauge.ConversionBlockers[action]; isBlocker {
		s.firedBlockers = append(s.firedBlockers, action)
	}
	return s.gaugeEng.ApplyAction(s.gaugeState, action, polarity)
}

// applyDerived handles the detectors that need timing or history context.
func (s *Session) applyDerived(in TurnInput, det patterns.Detection, res *TurnResult) []string {
	var warnings []string

	if patterns.DetectInterruption(in.ResponseDelaySeconds, in.ProspectWasSpeaking) {
		res.Modifications = append(res.Modifications,
			s.applyCatalog("interrupted_prospect", level.PolarityNegative))
		warnings = append(warnings, "interrupted the prospect")
	}
	if patterns.DetectSpokeFirstAfterPrice(in.LastProspectLine, in.ResponseDelaySeconds) {
		res.Modifications = append(res.Modifications,
			s.applyCatalog("spoke_first_after_price", level.PolarityNegative))
		warnings = append(warnings, "broke the silence after the price")
	}
	if patterns.DetectBudgetTooEarly(in.Text, s.messageCount) {
		res.Modifications = append(res.Modifications,
			s.applyCatalog("budget_too_early", level.PolarityNegative))
		warnings = append(warnings, "raised budget before discovery")
	}

	if det.Indicators.QuestionType != patterns.QuestionNone {
		s.recentQuestions = append(s.recentQuestions, det.Indicators.QuestionType)
		if len(s.recentQuestions) > recentQuestionWindow {
			s.recentQuestions = s.recentQuestions[len(s.recentQuestions)-recentQuestionWindow:]
		}
		if patterns.DetectClosedQuestionSpam(s.recentQuestions) {
			res.Modifications = append(res.Modifications,
				s.applyCatalog("closed_question_spam", level.PolarityNegative))
			warnings = append(warnings, "three closed questions in a row")
		}
	}
	return warnings
}

func turnDelta(mods []gauge.Modification) int {
	total := 0
	for _, m := range mods {
		total += m.Delta
	}
	return total
}

// #endregion evaluate-turn

// #region finish

// Finish ends the session. closingAchieved is the caller's verdict on whether
// the prospect actually committed; it only counts as a closing success when
// conversion was still possible (threshold reached, no hard blocker fired).
func (s *Session) Finish(closingAchieved bool) FinalReport {
	s.mu.Lock()
	defer s.mu.Unlock()

	eval := s.progress.Result()
	possible, reasons := gauge.CheckConversionPossible(
		s.gaugeState.Value, s.cfg.ConversionThreshold, s.firedBlockers, nil, nil)

	closingSuccess := closingAchieved && possible
	final := checklist.CalculateFinalResult(
		eval.Score, s.module.Evaluation.MasteryThreshold, closingSuccess, s.module)

	log.Printf("[SESSION] %s: finished score=%d level=%s outcome=%s",
		s.id, eval.Score, eval.Level, final.Key)

	return FinalReport{
		Evaluation:         eval,
		Final:              final,
		ConversionPossible: possible,
		ConversionBlocks:   reasons,
		ClosingAttempted:   s.closingAttempted,
	}
}

// #endregion finish
