package checklist

// #region builtin-modules

// builtinModules ships ready-to-use methodology modules so the engine scores
// sessions without any module files on disk. File-based definitions with the
// same id take precedence.
var builtinModules = map[string]Definition{
	"discovery": {
		ID:   "discovery",
		Name: "Needs Discovery",
		Checklist: []Item{
			{
				ID:           "context_opened",
				Label:        "Opened with context",
				Description:  "anchored the conversation in the prospect's world before pitching",
				QuestionHint: "How is the current setup working for you today?",
				Patterns: []string{
					`\b(?:how (?:is|are) .{0,40}(?:today|currently|right now)|tell me about your|walk me through)`,
					`\bcurrent (?:setup|process|tool|situation)\b`,
				},
				Weight: 15, Required: true,
			},
			{
				ID:           "pain_identified",
				Label:        "Identified a pain point",
				Description:  "surfaced a concrete problem worth solving",
				QuestionHint: "What's the most frustrating part of that process?",
				Patterns: []string{
					`\b(?:biggest|main|most frustrating|hardest) (?:challenge|problem|issue|pain|part)\b`,
					`\bwhat(?:'s| is) (?:slowing|blocking|costing) you\b`,
				},
				Weight: 20, Required: true,
			},
			{
				ID:           "impact_quantified",
				Label:        "Quantified the impact",
				Description:  "put a number or cost on the pain",
				QuestionHint: "What does that cost you per month, roughly?",
				Patterns: []string{
					`\b(?:how much|how many|how often|what does (?:that|it) cost)\b`,
					`\bper (?:month|week|year|deal)\b.{0,40}\b(?:lose|lost|costing|waste)`,
				},
				Weight: 20, Required: true,
			},
			{
				ID:           "decision_process",
				Label:        "Mapped the decision process",
				Description:  "asked who decides and how",
				QuestionHint: "Who else weighs in on a decision like this?",
				Patterns: []string{
					`\bwho (?:else|decides|signs|approves|weighs in)\b`,
					`\bdecision (?:process|maker)\b`,
				},
				Weight: 15,
			},
			{
				ID:           "timeline_explored",
				Label:        "Explored the timeline",
				Description:  "established when the prospect wants the problem solved",
				QuestionHint: "When would you want this running?",
				Patterns: []string{
					`\b(?:when (?:would|do) you (?:want|need)|what(?:'s| is) your time(?:line|frame)|by when)\b`,
				},
				Weight: 15,
			},
			{
				ID:           "summary_confirmed",
				Label:        "Summarized and confirmed",
				Description:  "played the needs back and got confirmation",
				QuestionHint: "So the priority is X before Y — did I get that right?",
				Patterns: []string{
					`\b(?:so if i (?:understand|got)|to (?:summarize|sum up)|did i get that right|so (?:the|your) priorit)`,
				},
				Weight: 15, Required: true,
			},
		},
		Evaluation: Evaluation{
			Scoring: Scoring{PerElementBase: 15, QualityBonus: 0.5, MasteryThreshold: 70},
			Levels: []MasteryLevel{
				{Name: "expert", MinScore: 85, ElementsRequired: 5, Description: "full discovery, high quality"},
				{Name: "proficient", MinScore: 70, ElementsRequired: 4, Description: "solid discovery with minor gaps"},
				{Name: "developing", MinScore: 50, ElementsRequired: 3, Description: "partial discovery"},
			},
		},
		RisksIfMissing: map[string]Risk{
			"context_opened": {
				Risk:        "pitching blind",
				Consequence: "the pitch lands on assumptions instead of facts",
				CoachingTip: "open with one question about today's setup before any pitch",
			},
			"pain_identified": {
				Risk:        "no reason to change",
				Consequence: "without a named pain, the status quo wins",
				CoachingTip: "keep digging until the prospect names the problem themselves",
			},
			"impact_quantified": {
				Risk:        "price objection guaranteed",
				Consequence: "a price without a quantified pain always looks expensive",
				CoachingTip: "get a number on the pain before any number on the price",
			},
			"summary_confirmed": {
				Risk:        "misaligned proposal",
				Consequence: "the proposal answers the wrong need",
				CoachingTip: "play the needs back and get an explicit yes before moving on",
			},
		},
		FeedbackTemplates: map[string]string{
			"mastery": "Discovery held up under pressure — the close built on real needs.",
			"partial": "Some needs surfaced, but the picture stayed incomplete.",
			"missed":  "The pitch started before the discovery did.",
		},
	},
}

// BuiltinIDs lists the modules available without any files.
func BuiltinIDs() []string {
	out := make([]string, 0, len(builtinModules))
	for id := range builtinModules {
		out = append(out, id)
	}
	return out
}

// #endregion builtin-modules
