package patterns

import (
	"strings"
	"testing"
)

func TestDetectPositivePatterns(t *testing.T) {
	d := NewDetector()

	det := d.Detect("What are your main challenges with the current setup?")
	if !det.HasAction("open_question_asked") {
		t.Fatalf("open question not detected: %+v", det)
	}
	if !det.HasAction("need_identified") {
		t.Fatalf("need probe not detected: %+v", det)
	}
	if det.Indicators.QuestionType != QuestionOpen {
		t.Fatalf("question type = %q, want open", det.Indicators.QuestionType)
	}
}

func TestDetectNegativePatterns(t *testing.T) {
	d := NewDetector()

	det := d.Detect("Honestly their product is garbage, you should drop it.")
	if !det.HasAction("denigrated_competitor") {
		t.Fatalf("denigration not detected: %+v", det)
	}
	if len(det.Positive) != 0 {
		t.Fatalf("unexpected positive matches: %+v", det.Positive)
	}
}

func TestPatternFiresAtMostOncePerCall(t *testing.T) {
	d := NewDetector()

	det := d.Detect("Fair point. Fair point. That's a fair point, really.")
	count := 0
	for _, m := range det.Positive {
		if m.Action == "objection_handled" {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("objection_handled fired %d times in one call, want 1", count)
	}
}

func TestHesitationCount(t *testing.T) {
	d := NewDetector()

	det := d.Detect("Um, well, I mean, it's, uh, sort of... um, complicated.")
	// um ×2, I mean ×1, uh ×1, sort of ×1
	if det.Indicators.HesitationCount != 5 {
		t.Fatalf("hesitation count = %d, want 5", det.Indicators.HesitationCount)
	}
}

func TestQuestionClassification(t *testing.T) {
	d := NewDetector()

	cases := []struct {
		text string
		want QuestionType
	}{
		{"How do you handle onboarding today?", QuestionOpen},
		{"Do you have a budget approved?", QuestionClosed},
		{"We can discuss that later.", QuestionNone},
		{"", QuestionNone},
	}
	for _, c := range cases {
		if got := d.Detect(c.text).Indicators.QuestionType; got != c.want {
			t.Fatalf("%q classified %q, want %q", c.text, got, c.want)
		}
	}
}

func TestDetectClosedQuestionSpam(t *testing.T) {
	closed, open := QuestionClosed, QuestionOpen

	if DetectClosedQuestionSpam([]QuestionType{closed, closed}) {
		t.Fatal("two closed questions must not count as spam")
	}
	if !DetectClosedQuestionSpam([]QuestionType{open, closed, closed, closed}) {
		t.Fatal("three trailing closed questions must count as spam")
	}
	if DetectClosedQuestionSpam([]QuestionType{closed, open, closed}) {
		t.Fatal("open question among last three must break the spam run")
	}
}

func TestDetectBudgetTooEarly(t *testing.T) {
	text := "Before we go further, what's your budget for this?"
	if !DetectBudgetTooEarly(text, 4) {
		t.Fatal("budget at message 4 should flag")
	}
	if DetectBudgetTooEarly(text, 10) {
		t.Fatal("budget at message 10 should not flag")
	}
	if DetectBudgetTooEarly("Let's talk about your goals.", 4) {
		t.Fatal("non-budget text should not flag")
	}
}

func TestDetectInterruption(t *testing.T) {
	if !DetectInterruption(0.2, true) {
		t.Fatal("fast reply over a speaking prospect is an interruption")
	}
	if DetectInterruption(0.2, false) {
		t.Fatal("prospect silent: no interruption")
	}
	if DetectInterruption(1.0, true) {
		t.Fatal("slow reply: no interruption")
	}
}

func TestDetectSpokeFirstAfterPrice(t *testing.T) {
	last := "The price is $1,200 per month for your tier."
	if !DetectSpokeFirstAfterPrice(last, 1.0) {
		t.Fatal("fast reply after price mention should flag")
	}
	if DetectSpokeFirstAfterPrice(last, 3.5) {
		t.Fatal("held silence should not flag")
	}
	if DetectSpokeFirstAfterPrice("Interesting, go on.", 1.0) {
		t.Fatal("no price in prior line: should not flag")
	}
}

func TestDetectToleratesExtremeInput(t *testing.T) {
	d := NewDetector()

	if got := d.Detect(""); got.Indicators.WordCount != 0 {
		t.Fatalf("empty input word count = %d", got.Indicators.WordCount)
	}

	long := strings.Repeat("we deliver measurable value to companies like yours ", 5000)
	det := d.Detect(long)
	if det.Indicators.WordCount == 0 {
		t.Fatal("long input lost its word count")
	}
}
