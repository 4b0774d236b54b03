package level

// #region base-catalogs

// basePositive is the shared positive modifier catalog. Levels may override
// individual point values; points here are pre-volatility.
var basePositive = map[string]ActionModifier{
	"open_question_asked": {
		Name: "open_question_asked", Points: 4,
		Description: "asked an open discovery question",
	},
	"need_identified": {
		Name: "need_identified", Points: 6,
		Description: "named an explicit need of the prospect",
	},
	"active_listening": {
		Name: "active_listening", Points: 3,
		Description: "reformulated or acknowledged what the prospect said",
	},
	"value_demonstrated": {
		Name: "value_demonstrated", Points: 6,
		Description: "tied the offer to a concrete outcome",
	},
	"benefit_personalized": {
		Name: "benefit_personalized", Points: 5,
		Description: "personalized a benefit to the prospect's situation",
	},
	"objection_handled": {
		Name: "objection_handled", Points: 7,
		Description: "acknowledged and answered an objection",
	},
	"social_proof_given": {
		Name: "social_proof_given", Points: 4,
		Description: "cited a reference customer or result",
	},
	"next_step_proposed": {
		Name: "next_step_proposed", Points: 5,
		Description: "proposed a concrete next step",
	},
	"closing_attempted": {
		Name: "closing_attempted", Points: 5,
		Description: "explicitly asked for the deal",
	},
}

// baseNegative is the shared negative modifier catalog.
var baseNegative = map[string]ActionModifier{
	"denigrated_competitor": {
		Name: "denigrated_competitor", Points: -8,
		Description: "spoke badly of a competitor",
	},
	"lost_temper": {
		Name: "lost_temper", Points: -15,
		Description: "got aggressive or dismissive with the prospect",
	},
	"interrupted_prospect": {
		Name: "interrupted_prospect", Points: -6,
		Description: "cut the prospect off mid-sentence",
	},
	"budget_too_early": {
		Name: "budget_too_early", Points: -5,
		Description: "raised budget before discovering needs",
	},
	"closed_question_spam": {
		Name: "closed_question_spam", Points: -4,
		Description: "chained three closed questions in a row",
	},
	"ignored_objection": {
		Name: "ignored_objection", Points: -7,
		Description: "moved on without addressing an objection",
	},
	"jargon_overload": {
		Name: "jargon_overload", Points: -3,
		Description: "buried the prospect in technical jargon",
	},
	"pushy_close": {
		Name: "pushy_close", Points: -6,
		Description: "pressured the prospect into deciding now",
	},
	"spoke_first_after_price": {
		Name: "spoke_first_after_price", Points: -5,
		Description: "broke the silence right after announcing the price",
	},
}

func cloneCatalog(src map[string]ActionModifier) map[string]ActionModifier {
	out := make(map[string]ActionModifier, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}

// #endregion base-catalogs

// #region cue-banks

// CueBank maps moods to short parenthetical stage directions surfaced next to
// the prospect's dialogue. DeltaCues are mixed in when the last gauge swing
// was large (|delta| >= 5).
var CueBank = map[Mood][]string{
	MoodHostile: {
		"crosses arms and looks away",
		"checks the time pointedly",
		"answers in clipped monosyllables",
	},
	MoodSkeptical: {
		"raises an eyebrow",
		"leans back in the chair",
		"takes notes without looking up",
	},
	MoodNeutral: {
		"nods politely",
		"keeps a measured tone",
		"glances at the brochure",
	},
	MoodInterested: {
		"leans forward slightly",
		"asks to see that slide again",
		"starts taking real notes",
	},
	MoodReadyToBuy: {
		"smiles openly",
		"reaches for the contract folder",
		"asks about onboarding timing",
	},
}

// DeltaCues keyed by swing direction: true = warming up, false = cooling off.
var DeltaCues = map[bool][]string{
	true: {
		"visibly relaxes",
		"tone warms noticeably",
	},
	false: {
		"stiffens",
		"tone cools noticeably",
	},
}

// #endregion cue-banks

// #region level-definitions

// builders maps each built-in difficulty to its constructor. Each call returns
// a fresh Config so callers can mutate their copy safely.
var builders = map[Difficulty]func() *Config{
	DifficultyEasy:   easyLevel,
	DifficultyMedium: mediumLevel,
	DifficultyHard:   hardLevel,
	DifficultyExpert: expertLevel,
}

func easyLevel() *Config {
	return &Config{
		Name:                DifficultyEasy,
		StartingGauge:       50,
		ConversionThreshold: 60,
		Volatility:          VolatilityLow,
		MoodStages: []MoodStage{
			{Lo: 0, Hi: 15, Mood: MoodHostile, Behavior: "curt, wants to end the call"},
			{Lo: 16, Hi: 35, Mood: MoodSkeptical, Behavior: "doubts every claim"},
			{Lo: 36, Hi: 60, Mood: MoodNeutral, Behavior: "polite, noncommittal"},
			{Lo: 61, Hi: 85, Mood: MoodInterested, Behavior: "asks follow-up questions"},
			{Lo: 86, Hi: 100, Mood: MoodReadyToBuy, Behavior: "talks about next steps on their own"},
		},
		Positive: cloneCatalog(basePositive),
		Negative: cloneCatalog(baseNegative),
		// No events, no reversals, no interruptions on easy: the prospect is
		// patient and the session is purely catalog-driven.
		Interruption: InterruptionConfig{Enabled: false},
		Feedback:     FeedbackSettings{ShowCues: true, CoachingHints: true},
	}
}

func mediumLevel() *Config {
	c := &Config{
		Name:                DifficultyMedium,
		StartingGauge:       40,
		ConversionThreshold: 70,
		Volatility:          VolatilityMedium,
		MoodStages: []MoodStage{
			{Lo: 0, Hi: 20, Mood: MoodHostile, Behavior: "openly annoyed"},
			{Lo: 21, Hi: 40, Mood: MoodSkeptical, Behavior: "challenges claims, compares to competitors"},
			{Lo: 41, Hi: 60, Mood: MoodNeutral, Behavior: "listens but gives little back"},
			{Lo: 61, Hi: 85, Mood: MoodInterested, Behavior: "engages with specifics"},
			{Lo: 86, Hi: 100, Mood: MoodReadyToBuy, Behavior: "asks about terms and timing"},
		},
		Positive: cloneCatalog(basePositive),
		Negative: cloneCatalog(baseNegative),
		Events: []EventDef{
			{
				Type: "phone_interruption", Trigger: TriggerRandom, Probability: 0.12,
				ProspectLine:    "Sorry, I have to take this... OK, where were we?",
				TestDescription: "does the trainee recover the thread without losing momentum",
				GoodBonus:       4, BadPenalty: -4, IsTest: true,
			},
			{
				Type: "time_pressure", Trigger: TriggerRandom, Probability: 0.10,
				ProspectLine:    "I only have five more minutes, can you get to the point?",
				TestDescription: "does the trainee compress the pitch instead of rushing it",
				GoodBonus:       5, BadPenalty: -5, IsTest: true,
			},
		},
		Reversals: []ReversalDef{
			{
				Type: "last_minute_doubt", GaugeThreshold: 70, Probability: 0.20,
				ProspectLine: "Actually... I need to think it over. Something feels rushed.",
				GaugeDrop:    15,
			},
		},
		Interruption: InterruptionConfig{Enabled: true, Probability: 0.10, PatienceSeconds: 20, HesitationThreshold: 4},
		Feedback:     FeedbackSettings{ShowCues: true, CoachingHints: true},
	}
	return c
}

func hardLevel() *Config {
	c := &Config{
		Name:                DifficultyHard,
		StartingGauge:       30,
		ConversionThreshold: 75,
		Volatility:          VolatilityHigh,
		MoodStages: []MoodStage{
			{Lo: 0, Hi: 25, Mood: MoodHostile, Behavior: "hostile, looking for a reason to hang up"},
			{Lo: 26, Hi: 50, Mood: MoodSkeptical, Behavior: "burned before, demands proof"},
			{Lo: 51, Hi: 70, Mood: MoodNeutral, Behavior: "guarded, tests consistency"},
			{Lo: 71, Hi: 90, Mood: MoodInterested, Behavior: "negotiates hard but engages"},
			{Lo: 91, Hi: 100, Mood: MoodReadyToBuy, Behavior: "ready, wants reassurance on risk"},
		},
		Positive: cloneCatalog(basePositive),
		Negative: cloneCatalog(baseNegative),
		Events: []EventDef{
			{
				Type: "aggressive_interruption", Trigger: TriggerRandom, Probability: 0.15,
				ProspectLine:    "Stop. Every vendor says exactly that. Why should I believe you?",
				TestDescription: "does the trainee stay calm and answer with substance",
				GoodBonus:       6, BadPenalty: -8, IsTest: true,
			},
			{
				Type: "competitor_mention", Trigger: TriggerGaugeHigh, Probability: 0.20,
				ProspectLine:    "Your competitor quoted us 20% less last week.",
				TestDescription: "does the trainee defend value without denigrating",
				GoodBonus:       6, BadPenalty: -6, IsTest: true,
			},
			{
				Type: "time_pressure", Trigger: TriggerRandom, Probability: 0.12,
				ProspectLine:    "Wrap it up, I have a board meeting.",
				TestDescription: "does the trainee compress the pitch instead of rushing it",
				GoodBonus:       5, BadPenalty: -5, IsTest: true,
			},
		},
		Reversals: []ReversalDef{
			{
				Type: "budget_frozen", GaugeThreshold: 75, Probability: 0.25,
				ProspectLine:           "I just remembered — finance froze new spend this quarter.",
				GaugeDrop:              20,
				Reveals:                "budget authority sits with finance",
				RequiresClosingAttempt: true,
			},
			{
				Type: "competitor_counter_offer", GaugeThreshold: 70, Probability: 0.20,
				ProspectLine: "Full transparency: your competitor just came back with a better offer.",
				GaugeDrop:    15,
			},
		},
		Interruption: InterruptionConfig{Enabled: true, Probability: 0.15, PatienceSeconds: 12, HesitationThreshold: 3},
		Feedback:     FeedbackSettings{ShowCues: true, CoachingHints: false},
	}
	return c
}

func expertLevel() *Config {
	c := &Config{
		Name:                DifficultyExpert,
		StartingGauge:       25,
		ConversionThreshold: 80,
		Volatility:          VolatilityHigh,
		MoodStages: []MoodStage{
			{Lo: 0, Hi: 30, Mood: MoodHostile, Behavior: "dismissive, interrupts constantly"},
			{Lo: 31, Hi: 55, Mood: MoodSkeptical, Behavior: "picks apart every number"},
			{Lo: 56, Hi: 75, Mood: MoodNeutral, Behavior: "poker face, reveals nothing"},
			{Lo: 76, Hi: 92, Mood: MoodInterested, Behavior: "engaged but plays hard to get"},
			{Lo: 93, Hi: 100, Mood: MoodReadyToBuy, Behavior: "commits only when cornered politely"},
		},
		Positive: cloneCatalog(basePositive),
		Negative: cloneCatalog(baseNegative),
		Events: []EventDef{
			{
				Type: "aggressive_interruption", Trigger: TriggerRandom, Probability: 0.20,
				ProspectLine:    "No. Stop the pitch. Tell me one thing you actually know about my business.",
				TestDescription: "does the trainee stay calm and answer with substance",
				GoodBonus:       8, BadPenalty: -10, IsTest: true,
			},
			{
				Type: "competitor_mention", Trigger: TriggerGaugeHigh, Probability: 0.25,
				ProspectLine:    "I have your competitor's contract on my desk, signature-ready.",
				TestDescription: "does the trainee defend value without denigrating",
				GoodBonus:       7, BadPenalty: -8, IsTest: true,
			},
			{
				Type: "colleague_joins", Trigger: TriggerRandom, Probability: 0.12,
				ProspectLine:      "My CFO just walked in — repeat the numbers for her.",
				TestDescription:   "can the trainee restate value for a new stakeholder",
				GoodBonus:         6, BadPenalty: -6, IsTest: true,
				ExtraInterlocutor: "CFO, numbers-driven, allergic to vagueness",
			},
			{
				Type: "time_pressure", Trigger: TriggerRandom, Probability: 0.15,
				ProspectLine:    "You have two minutes left. Use them well.",
				TestDescription: "does the trainee compress the pitch instead of rushing it",
				GoodBonus:       6, BadPenalty: -6, IsTest: true,
			},
		},
		Reversals: []ReversalDef{
			{
				Type: "fake_agreement", GaugeThreshold: 80, Probability: 0.30,
				ProspectLine:           "Fine, fine, you've convinced me... assuming you can halve the price.",
				GaugeDrop:              25,
				IsFake:                 true,
				RequiresClosingAttempt: true,
			},
			{
				Type: "decision_maker_change", GaugeThreshold: 70, Probability: 0.25,
				ProspectLine: "One thing I didn't mention — the final call isn't mine anymore.",
				GaugeDrop:    20,
				Reveals:      "a second decision maker exists",
			},
		},
		HiddenObjections: []string{
			"already burned by a similar vendor two years ago",
			"internal champion for the competitor",
		},
		Interruption: InterruptionConfig{Enabled: true, Probability: 0.20, PatienceSeconds: 8, HesitationThreshold: 2},
		Feedback:     FeedbackSettings{ShowCues: false, CoachingHints: false},
	}
	return c
}

// #endregion level-definitions

// #region default

// Default returns a validated copy of a built-in difficulty level.
func Default(d Difficulty) (*Config, error) {
	build, ok := builders[d]
	if !ok {
		return nil, &ValidationError{Problems: []string{"unknown difficulty: " + string(d)}}
	}
	cfg := build()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Difficulties lists the built-in tiers in ascending order.
func Difficulties() []Difficulty {
	return []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard, DifficultyExpert}
}

// #endregion default
