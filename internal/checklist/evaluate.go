package checklist

import (
	"math"
	"regexp"
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// #region normalize

// diacriticStripper removes combining marks so "intéressé" matches a pattern
// written as "interesse". Transcripts come from speech-to-text and mix both.
var diacriticStripper = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize strips diacritics and lower-cases text. Both transcript and
// patterns go through the same normalization before matching.
func Normalize(s string) string {
	out, _, err := transform.String(diacriticStripper, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(out)
}

// #endregion normalize

// #region detect-element

// DetectElement matches normalized patterns against normalized text. A match
// in a question-bearing source utterance grades "good", otherwise "basic";
// the excellent grade is reserved for modules that score it explicitly.
func DetectElement(text string, patterns []string) (bool, Quality) {
	normText := Normalize(text)
	for _, p := range patterns {
		re, err := regexp.Compile(Normalize(p))
		if err != nil {
			continue
		}
		if re.MatchString(normText) {
			return true, gradeMatch(text)
		}
	}
	return false, QualityNone
}

// detect uses the item's pre-compiled patterns.
func (it *Item) detect(sourceText, normText string) (bool, Quality) {
	for _, re := range it.compiled {
		if re.MatchString(normText) {
			return true, gradeMatch(sourceText)
		}
	}
	return false, QualityNone
}

func gradeMatch(sourceText string) Quality {
	if strings.Contains(sourceText, "?") {
		return QualityGood
	}
	return QualityBasic
}

// #endregion detect-element

// #region progress

// Progress accumulates per-message detections for one session. Owned by the
// session; not safe for concurrent use on its own.
type Progress struct {
	def        *Definition
	detected   map[string]Quality
	transcript []string
}

// NewProgress starts incremental evaluation against a loaded module.
func NewProgress(def *Definition) *Progress {
	return &Progress{def: def, detected: make(map[string]Quality)}
}

// EvaluateMessage scans one trainee utterance and returns the IDs of items
// newly detected (or upgraded in quality) by this message.
func (p *Progress) EvaluateMessage(text string) []string {
	p.transcript = append(p.transcript, text)
	normText := Normalize(text)

	var newly []string
	for i := range p.def.Checklist {
		it := &p.def.Checklist[i]
		ok, q := it.detect(text, normText)
		if !ok {
			continue
		}
		prev, seen := p.detected[it.ID]
		if !seen {
			p.detected[it.ID] = q
			newly = append(newly, it.ID)
		} else if q.betterThan(prev) {
			p.detected[it.ID] = q
		}
	}
	return newly
}

// Transcript returns the accumulated trainee text.
func (p *Progress) Transcript() string {
	return strings.Join(p.transcript, "\n")
}

// Detected returns a copy of the current detection map, for snapshots.
func (p *Progress) Detected() map[string]Quality {
	out := make(map[string]Quality, len(p.detected))
	for k, v := range p.detected {
		out[k] = v
	}
	return out
}

// Lines returns a copy of the per-message transcript, for snapshots.
func (p *Progress) Lines() []string {
	out := make([]string, len(p.transcript))
	copy(out, p.transcript)
	return out
}

// Restore reloads detections and transcript from a snapshot.
func (p *Progress) Restore(detected map[string]Quality, transcript []string) {
	for k, v := range detected {
		p.detected[k] = v
	}
	p.transcript = append(p.transcript, transcript...)
}

// Result scores the detections accumulated so far.
func (p *Progress) Result() EvaluationResult {
	return score(p.def, p.detected)
}

// #endregion progress

// #region evaluate-session

// EvaluateSession scores the full accumulated trainee text in one pass.
func EvaluateSession(def *Definition, allUserText string) EvaluationResult {
	normText := Normalize(allUserText)
	detected := make(map[string]Quality)
	for i := range def.Checklist {
		it := &def.Checklist[i]
		if ok, q := it.detect(allUserText, normText); ok {
			detected[it.ID] = q
		}
	}
	return score(def, detected)
}

// score turns a detection map into the normalized module result. Each item
// contributes its weight scaled by quality, capped at twice the weight;
// the normalized score caps at 100.
func score(def *Definition, detected map[string]Quality) EvaluationResult {
	res := EvaluationResult{ModuleID: def.ID}

	total := 0.0
	maxScore := 0
	for _, it := range def.Checklist {
		w := def.itemWeight(it)
		maxScore += w

		q, ok := detected[it.ID]
		if !ok || q == QualityNone {
			res.Missing = append(res.Missing, MissingItem{
				ID: it.ID, Label: it.Label, Required: it.Required, QuestionHint: it.QuestionHint,
			})
			continue
		}
		contribution := float64(w) * q.multiplier()
		if limit := float64(w) * 2; contribution > limit {
			contribution = limit
		}
		total += contribution
		res.Detected = append(res.Detected, DetectedItem{ID: it.ID, Label: it.Label, Quality: q})
	}

	res.MaxScore = maxScore
	if maxScore > 0 {
		res.Score = int(math.Round(100 * total / float64(maxScore)))
		if res.Score > 100 {
			res.Score = 100
		}
	}
	res.MasteryAchieved = res.Score >= def.Evaluation.MasteryThreshold
	res.Level = classifyLevel(def, res.Score, len(res.Detected))
	res.Risks = buildRisks(def, res.Missing)
	return res
}

// classifyLevel picks the highest tier the score and element count both
// clear. "insufficient" when nothing matches.
func classifyLevel(def *Definition, normalized, detectedCount int) string {
	levels := make([]MasteryLevel, len(def.Evaluation.Levels))
	copy(levels, def.Evaluation.Levels)
	sort.Slice(levels, func(i, j int) bool { return levels[i].MinScore > levels[j].MinScore })

	for _, l := range levels {
		if normalized >= l.MinScore && detectedCount >= l.ElementsRequired {
			return l.Name
		}
	}
	return "insufficient"
}

// buildRisks reports risks only for missing required items with a configured
// risk entry.
func buildRisks(def *Definition, missing []MissingItem) []RiskReport {
	var out []RiskReport
	for _, m := range missing {
		if !m.Required {
			continue
		}
		r, ok := def.RisksIfMissing[m.ID]
		if !ok {
			continue
		}
		out = append(out, RiskReport{
			ItemID: m.ID, Risk: r.Risk, Consequence: r.Consequence, CoachingTip: r.CoachingTip,
		})
	}
	return out
}

// #endregion evaluate-session

// #region final-result

// defaultOutcomes covers the four (module, closing) combinations when a
// module's result matrix does not override them.
var defaultOutcomes = map[string]ResultOutcome{
	"full_success": {
		Label: "Complete win", Emoji: "🏆",
		Message: "Method mastered and the deal closed. Textbook session.",
	},
	"method_only": {
		Label: "Method without the close", Emoji: "📈",
		Message: "The methodology was there; the commitment wasn't. Work the close.",
	},
	"closing_only": {
		Label: "Lucky close", Emoji: "⚠️",
		Message: "Closed without the method. It won't repeat — tighten the fundamentals.",
	},
	"failure": {
		Label: "Needs work", Emoji: "📉",
		Message: "Neither the method nor the close landed. Review the basics and rerun.",
	},
}

func resultKey(moduleSuccess, closingSuccess bool) string {
	switch {
	case moduleSuccess && closingSuccess:
		return "full_success"
	case moduleSuccess:
		return "method_only"
	case closingSuccess:
		return "closing_only"
	default:
		return "failure"
	}
}

// CalculateFinalResult combines the module score with the separately tracked
// closing outcome into one of four results, resolved against the module's
// result matrix with built-in fallbacks.
func CalculateFinalResult(moduleScore, moduleThreshold int, closingAchieved bool, def *Definition) FinalResult {
	moduleSuccess := moduleScore >= moduleThreshold
	key := resultKey(moduleSuccess, closingAchieved)

	outcome, ok := ResultOutcome{}, false
	if def != nil {
		outcome, ok = def.ResultMatrix[key]
	}
	if !ok {
		outcome = defaultOutcomes[key]
	}

	return FinalResult{
		Key:            key,
		ModuleSuccess:  moduleSuccess,
		ClosingSuccess: closingAchieved,
		Label:          outcome.Label,
		Emoji:          outcome.Emoji,
		Message:        outcome.Message,
	}
}

// #endregion final-result
