package checklist

import (
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
)

// fourItemModule builds a minimal module with four equal-weight items.
func fourItemModule(t *testing.T) *Definition {
	t.Helper()
	def := &Definition{
		ID:   "four",
		Name: "Four Steps",
		Checklist: []Item{
			{ID: "a", Label: "A", Patterns: []string{`\balpha\b`}, Weight: 25, Required: true},
			{ID: "b", Label: "B", Patterns: []string{`\bbravo\b`}, Weight: 25},
			{ID: "c", Label: "C", Patterns: []string{`\bcharlie\b`}, Weight: 25},
			{ID: "d", Label: "D", Patterns: []string{`\bdelta\b`}, Weight: 25, Required: true},
		},
		Evaluation: Evaluation{
			Scoring: Scoring{MasteryThreshold: 70},
			Levels: []MasteryLevel{
				{Name: "strong", MinScore: 75, ElementsRequired: 3},
				{Name: "fair", MinScore: 50, ElementsRequired: 2},
			},
		},
		RisksIfMissing: map[string]Risk{
			"d": {Risk: "late surprise", Consequence: "deal dies at signature", CoachingTip: "cover D"},
		},
	}
	if err := finalize(def); err != nil {
		t.Fatal(err)
	}
	return def
}

func TestDetectElementDiacriticsAndQuality(t *testing.T) {
	ok, q := DetectElement("Qu'est-ce qui vous intéresse le plus ?", []string{`interesse`})
	if !ok {
		t.Fatal("diacritics should not block a match")
	}
	if q != QualityGood {
		t.Fatalf("question-bearing match graded %q, want good", q)
	}

	ok, q = DetectElement("Ce point vous interesse.", []string{`intéresse`})
	if !ok || q != QualityBasic {
		t.Fatalf("accented pattern on plain text: ok=%v quality=%q", ok, q)
	}

	ok, q = DetectElement("totally unrelated", []string{`interesse`})
	if ok || q != QualityNone {
		t.Fatal("non-match must grade none")
	}
}

func TestEvaluateSessionScoring(t *testing.T) {
	def := fourItemModule(t)

	// 3 of 4 items, all as questions → good quality, 1.5× weight each.
	res := EvaluateSession(def, "alpha? bravo? charlie?")
	if len(res.Detected) != 3 {
		t.Fatalf("detected %d items, want 3", len(res.Detected))
	}
	// 3 × 25 × 1.5 = 112.5 of 100 → capped at 100.
	if res.Score != 100 {
		t.Fatalf("score = %d, want 100 (capped)", res.Score)
	}
	if !res.MasteryAchieved {
		t.Fatal("mastery threshold 70 should be met")
	}
	if res.Level != "strong" {
		t.Fatalf("level = %q, want strong", res.Level)
	}
}

func TestEvaluateSessionBasicQuality(t *testing.T) {
	def := fourItemModule(t)

	res := EvaluateSession(def, "we covered alpha and bravo at length.")
	if res.Score != 50 { // 2 × 25 basic of 100
		t.Fatalf("score = %d, want 50", res.Score)
	}
	if res.MasteryAchieved {
		t.Fatal("50 must not reach threshold 70")
	}
	if res.Level != "fair" {
		t.Fatalf("level = %q, want fair", res.Level)
	}
}

func TestScoreMonotonicInDetectedItems(t *testing.T) {
	def := fourItemModule(t)

	prev := -1
	transcripts := []string{
		"",
		"alpha.",
		"alpha. bravo.",
		"alpha. bravo. charlie.",
		"alpha. bravo. charlie. delta.",
	}
	for _, txt := range transcripts {
		res := EvaluateSession(def, txt)
		if res.Score < prev {
			t.Fatalf("score dropped from %d to %d on %q", prev, res.Score, txt)
		}
		prev = res.Score
	}
}

func TestRisksOnlyForMissingRequired(t *testing.T) {
	def := fourItemModule(t)

	// a detected; b,c missing but optional (or no risk entry); d missing+required+risk.
	res := EvaluateSession(def, "alpha.")
	if len(res.Risks) != 1 {
		t.Fatalf("risks = %+v, want exactly the entry for d", res.Risks)
	}
	if res.Risks[0].ItemID != "d" {
		t.Fatalf("risk item = %q, want d", res.Risks[0].ItemID)
	}
}

func TestProgressIncrementalDetection(t *testing.T) {
	def := fourItemModule(t)
	p := NewProgress(def)

	newly := p.EvaluateMessage("let's start with alpha.")
	if len(newly) != 1 || newly[0] != "a" {
		t.Fatalf("first message detected %v, want [a]", newly)
	}
	// Re-mentioning a already-detected item adds nothing new.
	if newly := p.EvaluateMessage("alpha again."); len(newly) != 0 {
		t.Fatalf("repeat detection reported as new: %v", newly)
	}
	// Quality upgrades in place when the item later appears as a question.
	p.EvaluateMessage("what about alpha?")
	if p.Detected()["a"] != QualityGood {
		t.Fatalf("quality not upgraded: %v", p.Detected())
	}

	p.EvaluateMessage("and bravo?")
	res := p.Result()
	if len(res.Detected) != 2 {
		t.Fatalf("progress result detected %d, want 2", len(res.Detected))
	}
}

func TestFinalResultFourCombinations(t *testing.T) {
	def := fourItemModule(t)

	cases := []struct {
		score   int
		closing bool
		key     string
	}{
		{90, true, "full_success"},
		{90, false, "method_only"},
		{40, true, "closing_only"},
		{40, false, "failure"},
	}
	seen := map[string]bool{}
	for _, c := range cases {
		fr := CalculateFinalResult(c.score, 70, c.closing, def)
		if fr.Key != c.key {
			t.Fatalf("(%d,%v) key = %q, want %q", c.score, c.closing, fr.Key, c.key)
		}
		if fr.Label == "" || fr.Message == "" || fr.Emoji == "" {
			t.Fatalf("outcome %q missing copy: %+v", c.key, fr)
		}
		if seen[fr.Label] {
			t.Fatalf("outcome label %q reused across combinations", fr.Label)
		}
		seen[fr.Label] = true
	}
}

func TestFinalResultMatrixOverride(t *testing.T) {
	def := fourItemModule(t)
	def.ResultMatrix = map[string]ResultOutcome{
		"failure": {Label: "Back to basics", Emoji: "🧱", Message: "rerun the drill"},
	}

	fr := CalculateFinalResult(10, 70, false, def)
	if fr.Label != "Back to basics" {
		t.Fatalf("override ignored: %+v", fr)
	}
	// Other cells still use defaults.
	fr = CalculateFinalResult(90, 70, true, def)
	if fr.Label != defaultOutcomes["full_success"].Label {
		t.Fatalf("default cell clobbered: %+v", fr)
	}
}

func TestParseRejectsMissingSections(t *testing.T) {
	_, err := Parse([]byte("id: broken\nname: Broken\n"))
	if err == nil {
		t.Fatal("module without checklist and evaluation must fail")
	}
	verr, ok := err.(*ValidationError)
	if !ok {
		t.Fatalf("error type %T, want *ValidationError", err)
	}
	if len(verr.Problems) < 2 {
		t.Fatalf("expected multiple problems, got %v", verr.Problems)
	}
}

func TestRepositoryServesBuiltin(t *testing.T) {
	r := NewRepository("")

	def, err := r.Load("discovery")
	if err != nil {
		t.Fatalf("builtin discovery: %v", err)
	}
	if def.Name == "" || len(def.Checklist) == 0 {
		t.Fatalf("builtin came back hollow: %+v", def)
	}

	again, err := r.Load("discovery")
	if err != nil {
		t.Fatal(err)
	}
	if again != def {
		t.Fatal("repository returned a different pointer on second load")
	}

	if _, err := r.Load("nonexistent"); err == nil {
		t.Fatal("unknown module must error")
	}
}

func TestRepositoryFileOverridesBuiltin(t *testing.T) {
	dir := t.TempDir()
	content := `id: discovery
name: Custom Discovery
checklist:
  - id: only
    label: Only Step
    patterns: ["\\bonly\\b"]
    weight: 100
    required: true
evaluation:
  mastery_threshold: 60
  levels:
    - name: ok
      min_score: 60
      elements_required: 1
`
	if err := os.WriteFile(filepath.Join(dir, "discovery.yaml"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	r := NewRepository(dir)
	def, err := r.Load("discovery")
	if err != nil {
		t.Fatal(err)
	}
	if def.Name != "Custom Discovery" {
		t.Fatalf("file did not shadow builtin: %q", def.Name)
	}
}

func TestRepositoryLoadOnceUnderConcurrency(t *testing.T) {
	dir := t.TempDir()
	content := `id: race
name: Race Module
checklist:
  - id: x
    label: X
    patterns: ["\\bx\\b"]
    weight: 10
evaluation:
  mastery_threshold: 50
  levels:
    - name: ok
      min_score: 50
      elements_required: 1
`
	if err := os.WriteFile(filepath.Join(dir, "race.yaml"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	r := NewRepository(dir)

	var wg sync.WaitGroup
	var failures int64
	results := make([]*Definition, 32)
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			def, err := r.Load("race")
			if err != nil {
				atomic.AddInt64(&failures, 1)
				return
			}
			results[i] = def
		}(i)
	}
	wg.Wait()

	if failures != 0 {
		t.Fatalf("%d concurrent loads failed", failures)
	}
	for i := 1; i < len(results); i++ {
		if results[i] != results[0] {
			t.Fatal("concurrent loaders observed different definitions")
		}
	}
}
