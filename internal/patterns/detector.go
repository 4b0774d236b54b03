// Package patterns extracts named behavioral signals from a single trainee
// utterance. The pattern library is data compiled once at startup into an
// immutable table shared read-only across all sessions; detection itself is
// stateless.
package patterns

import (
	"regexp"
	"strings"

	"github.com/Laulau4713/champion-engine/internal/level"
)

// #region types

// QuestionType classifies a question-bearing utterance.
type QuestionType string

const (
	QuestionOpen   QuestionType = "open"
	QuestionClosed QuestionType = "closed"
	QuestionNone   QuestionType = ""
)

// Match names a pattern that fired and the catalog action it maps to.
type Match struct {
	Pattern string `json:"pattern"`
	Action  string `json:"action"`
}

// Indicators are the per-utterance scalar signals alongside pattern matches.
type Indicators struct {
	HesitationCount int          `json:"hesitation_count"`
	QuestionType    QuestionType `json:"question_type"`
	WordCount       int          `json:"word_count"`
}

// Detection is the full result of one utterance pass.
type Detection struct {
	Positive   []Match    `json:"positive"`
	Negative   []Match    `json:"negative"`
	Indicators Indicators `json:"indicators"`
}

// HasAction reports whether a given action fired in either polarity.
func (d Detection) HasAction(action string) bool {
	for _, m := range d.Positive {
		if m.Action == action {
			return true
		}
	}
	for _, m := range d.Negative {
		if m.Action == action {
			return true
		}
	}
	return false
}

// #endregion types

// #region pattern-table

type entry struct {
	id       string
	re       *regexp.Regexp
	action   string
	polarity level.Polarity
}

// patternTable is evaluated against the lower-cased utterance. Each entry
// fires at most once per call.
var patternTable = []entry{
	// positive
	{
		id:       "open_question",
		re:       regexp.MustCompile(`(?:^|\s)(?:what|how|why|in what way)\b[^?]*\?`),
		action:   "open_question_asked",
		polarity: level.PolarityPositive,
	},
	{
		id:       "need_probe",
		re:       regexp.MustCompile(`\b(?:what (?:are|is) your (?:main |biggest )?(?:challenge|priorit|goal|need)|what matters most|what keeps you up)`),
		action:   "need_identified",
		polarity: level.PolarityPositive,
	},
	{
		id:       "reformulation",
		re:       regexp.MustCompile(`\b(?:if i understand(?: you)? correctly|so what you(?:'| a)re saying|let me make sure i(?: got|'ve got| have))\b`),
		action:   "active_listening",
		polarity: level.PolarityPositive,
	},
	{
		id:       "value_link",
		re:       regexp.MustCompile(`\b(?:that means you (?:save|gain)|which (?:saves|means) you|the impact for you|you(?:'d| would) (?:save|gain|cut|recover))\b`),
		action:   "value_demonstrated",
		polarity: level.PolarityPositive,
	},
	{
		id:       "personal_benefit",
		re:       regexp.MustCompile(`\b(?:for your (?:team|business|company|case)|in your situation|given your (?:size|setup|context|constraints))\b`),
		action:   "benefit_personalized",
		polarity: level.PolarityPositive,
	},
	{
		id:       "objection_ack",
		re:       regexp.MustCompile(`\b(?:i (?:hear|understand) (?:you|your concern|that)|fair point|that'?s a (?:fair|valid|good) (?:point|concern|question)|you(?:'| a)re right to (?:ask|wonder|worry))\b`),
		action:   "objection_handled",
		polarity: level.PolarityPositive,
	},
	{
		id:       "social_proof",
		re:       regexp.MustCompile(`\b(?:clients? like you|our (?:customers?|clients?) (?:typically|usually|saw|see)|companies like yours|a similar (?:company|client|team))\b`),
		action:   "social_proof_given",
		polarity: level.PolarityPositive,
	},
	{
		id:       "next_step",
		re:       regexp.MustCompile(`\b(?:the next step|shall we (?:book|schedule|plan)|i(?:'ll| will) send (?:you )?(?:a|the) (?:proposal|contract|summary)|can we set (?:up|a))\b`),
		action:   "next_step_proposed",
		polarity: level.PolarityPositive,
	},
	{
		id:       "closing",
		re:       regexp.MustCompile(`\b(?:shall we (?:go ahead|sign|move forward)|are you ready to (?:start|sign|commit)|can i count on you|do we have a deal|sign (?:today|now|the contract))\b`),
		action:   "closing_attempted",
		polarity: level.PolarityPositive,
	},

	// negative
	{
		id:       "denigration",
		re:       regexp.MustCompile(`\b(?:(?:their|the competitor'?s?) (?:product|tool|service|platform) is (?:garbage|junk|terrible|awful|a joke)|(?:they|that vendor)(?:'| a)re (?:incompetent|useless|a joke|amateurs))\b`),
		action:   "denigrated_competitor",
		polarity: level.PolarityNegative,
	},
	{
		id:       "temper",
		re:       regexp.MustCompile(`\b(?:that'?s a stupid (?:question|thing)|you(?:'| a)re not listening|are you serious right now|this is ridiculous|just let me (?:finish|talk))\b`),
		action:   "lost_temper",
		polarity: level.PolarityNegative,
	},
	{
		id:       "jargon",
		re:       regexp.MustCompile(`\b(?:synergy|paradigm|best-in-class|turnkey|disruptive|next-gen|game.?changer)\b(?:\W+\w+){0,12}?\W+\b(?:synergy|paradigm|best-in-class|turnkey|disruptive|next-gen|game.?changer)\b`),
		action:   "jargon_overload",
		polarity: level.PolarityNegative,
	},
	{
		id:       "pushy",
		re:       regexp.MustCompile(`\b(?:sign (?:right )?now|today only|(?:the )?offer expires|last chance|you need to decide (?:now|today)|now or never)\b`),
		action:   "pushy_close",
		polarity: level.PolarityNegative,
	},
	{
		id:       "dismissal",
		re:       regexp.MustCompile(`\b(?:that(?:'s| is) not (?:important|the point)|that doesn'?t matter|let'?s not (?:get into|talk about) that|anyway,? moving on)\b`),
		action:   "ignored_objection",
		polarity: level.PolarityNegative,
	},
}

// #endregion pattern-table

// #region fillers

// fillerWords is the fixed hesitation vocabulary. Counted as occurrences, not
// presence, so "um... um..." weighs twice.
var fillerWords = []*regexp.Regexp{
	regexp.MustCompile(`\bum+\b`),
	regexp.MustCompile(`\buh+\b`),
	regexp.MustCompile(`\berm?\b`),
	regexp.MustCompile(`\bhmm+\b`),
	regexp.MustCompile(`\byou know\b`),
	regexp.MustCompile(`\bi mean\b`),
	regexp.MustCompile(`\bsort of\b`),
	regexp.MustCompile(`\bkind of\b`),
	regexp.MustCompile(`\bbasically\b`),
}

// openLeadWords start an open question.
var openLeadWords = map[string]bool{
	"what": true, "how": true, "why": true, "who": true, "when": true,
	"where": true, "which": true, "tell": true, "describe": true, "walk": true,
}

// #endregion fillers

// #region detector

// Detector evaluates the compiled pattern table against utterances. The zero
// cost of construction keeps it easy to embed per session even though the
// table is shared.
type Detector struct {
	table []entry
}

// NewDetector returns a detector over the built-in pattern table.
func NewDetector() *Detector {
	return &Detector{table: patternTable}
}

// Detect runs one utterance through the table. A pattern fires at most once
// per call; nothing is deduplicated across calls. Safe on empty and very long
// input.
func (d *Detector) Detect(text string) Detection {
	lower := strings.ToLower(text)

	det := Detection{}
	for _, e := range d.table {
		if e.re.MatchString(lower) {
			m := Match{Pattern: e.id, Action: e.action}
			if e.polarity == level.PolarityPositive {
				det.Positive = append(det.Positive, m)
			} else {
				det.Negative = append(det.Negative, m)
			}
		}
	}

	det.Indicators = Indicators{
		HesitationCount: countHesitations(lower),
		QuestionType:    classifyQuestion(lower),
		WordCount:       len(strings.Fields(text)),
	}
	return det
}

func countHesitations(lower string) int {
	total := 0
	for _, re := range fillerWords {
		total += len(re.FindAllStringIndex(lower, -1))
	}
	return total
}

func classifyQuestion(lower string) QuestionType {
	if !strings.Contains(lower, "?") {
		return QuestionNone
	}
	fields := strings.Fields(lower)
	if len(fields) > 0 && openLeadWords[strings.Trim(fields[0], ",.;:!?\"'")] {
		return QuestionOpen
	}
	return QuestionClosed
}

// #endregion detector

// #region timing-detectors

var budgetRe = regexp.MustCompile(`\b(?:budget|price range|how much (?:do|can|would) you (?:spend|pay|invest)|what(?:'s| is) your spend)\b`)

var priceMentionRe = regexp.MustCompile(`(?:[$€£]\s?\d[\d,.]*|\b\d[\d,.]*\s?(?:dollars|euros|k\b)|\bper (?:month|year|seat|user)\b|\bthe price is\b|\bit costs\b)`)

// DetectClosedQuestionSpam is true iff the last three recorded questions were
// all closed. Shorter histories never qualify.
func DetectClosedQuestionSpam(recent []QuestionType) bool {
	if len(recent) < 3 {
		return false
	}
	for _, q := range recent[len(recent)-3:] {
		if q != QuestionClosed {
			return false
		}
	}
	return true
}

// DetectBudgetTooEarly is true when the utterance raises budget during the
// discovery window (first 8 prospect exchanges).
func DetectBudgetTooEarly(text string, messageCount int) bool {
	return messageCount < 8 && budgetRe.MatchString(strings.ToLower(text))
}

// DetectInterruption is true when the trainee started speaking almost
// immediately while the prospect still had the floor.
func DetectInterruption(responseDelaySeconds float64, prospectWasSpeaking bool) bool {
	return prospectWasSpeaking && responseDelaySeconds < 0.5
}

// DetectSpokeFirstAfterPrice is true when the prospect's previous line
// mentioned price and the trainee filled the silence in under two seconds.
// The classic coaching rule: after the price, whoever speaks first loses.
func DetectSpokeFirstAfterPrice(lastProspectMessage string, responseDelaySeconds float64) bool {
	return responseDelaySeconds < 2.0 && priceMentionRe.MatchString(strings.ToLower(lastProspectMessage))
}

// #endregion timing-detectors
