package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/Laulau4713/champion-engine/internal/checklist"
	"github.com/Laulau4713/champion-engine/internal/level"
	"github.com/Laulau4713/champion-engine/internal/logging"
	"github.com/Laulau4713/champion-engine/internal/session"
)

// #region main
func main() {
	dbPath := envOr("SIM_DB", "sessions.db")
	difficulty := level.Difficulty(envOr("SIM_LEVEL", "easy"))
	moduleID := envOr("SIM_MODULE", "discovery")
	modulesDir := envOr("SIM_MODULES_DIR", "modules")

	cfg, err := level.Default(difficulty)
	if err != nil {
		log.Fatalf("failed to resolve level: %v", err)
	}
	module, err := checklist.NewRepository(modulesDir).Load(moduleID)
	if err != nil {
		log.Fatalf("failed to load module %s: %v", moduleID, err)
	}
	store, err := logging.NewStore(dbPath)
	if err != nil {
		log.Fatalf("failed to open store: %v", err)
	}
	defer store.Close()

	s := session.New(cfg, module, session.Options{})

	fmt.Println("Champion Engine simulator ready.")
	fmt.Printf("  Session: %s | Level: %s | Module: %s | DB: %s\n", s.ID(), cfg.Name, module.ID, dbPath)
	fmt.Println("Type a trainee line ('close' to end with a signed deal, 'quit' to abandon):")

	scanner := bufio.NewScanner(os.Stdin)
	closingAchieved := false

	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "close" {
			closingAchieved = true
			break
		}
		if line == "quit" || line == "exit" {
			break
		}

		before := s.Gauge()
		res := s.EvaluateTurn(session.TurnInput{Text: line, Confidence: 0.8, ResponseDelaySeconds: 2.0})

		fmt.Print(s.ProspectContext(res))
		if res.Interruption.ShouldInterrupt {
			fmt.Printf("\nProspect cuts in: %s\n", res.Interruption.Phrase)
		} else if res.Event != nil {
			fmt.Printf("\nProspect: %s\n", res.Event.ProspectLine)
		} else if res.Reversal != nil {
			fmt.Printf("\nProspect: %s\n", res.Reversal.ProspectLine)
		}

		modsJSON, _ := json.Marshal(res.Modifications)
		rec := logging.TurnRecord{
			SessionID:         s.ID(),
			Turn:              res.Turn,
			Text:              line,
			Confidence:        0.8,
			HesitationCount:   res.Indicators.HesitationCount,
			GaugeBefore:       before,
			GaugeAfter:        res.Gauge,
			Mood:              string(res.Mood.Mood),
			Interrupted:       res.Interruption.ShouldInterrupt,
			ModificationsJSON: string(modsJSON),
			CreatedAt:         time.Now().UTC(),
		}
		if res.Event != nil {
			rec.EventType = res.Event.Def.Type
		}
		if res.Reversal != nil {
			rec.ReversalType = res.Reversal.Def.Type
		}
		if err := store.LogTurn(rec); err != nil {
			log.Printf("logging error: %v", err)
		}

		fmt.Printf("[turn-%d] gauge=%d mood=%s\n", res.Turn, res.Gauge, res.Mood.Mood)
	}

	report := s.Finish(closingAchieved)
	fmt.Printf("\nModule %s: score=%d level=%s\n", module.ID, report.Evaluation.Score, report.Evaluation.Level)
	fmt.Printf("Outcome: %s — %s\n", report.Final.Key, report.Final.Message)
	for _, risk := range report.Evaluation.Risks {
		fmt.Printf("  risk (%s): %s\n", risk.ItemID, risk.Risk)
	}
}

// #endregion main

// #region helpers
func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// #endregion helpers
