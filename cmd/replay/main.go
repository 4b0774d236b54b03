package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/Laulau4713/champion-engine/internal/checklist"
	"github.com/Laulau4713/champion-engine/internal/replay"
)

// #region main

func main() {
	fixturePath := flag.String("fixture", "", "path to fixture JSON")
	modulesDir := flag.String("modules", "modules", "directory of module YAML overrides")
	flag.Parse()

	if *fixturePath == "" {
		fmt.Fprintln(os.Stderr, "usage: replay --fixture path/to/fixture.json [--modules dir]")
		os.Exit(2)
	}
	os.Exit(run(*fixturePath, *modulesDir))
}

// #endregion main

// #region run

func run(fixturePath, modulesDir string) int {
	f, err := replay.LoadFixture(fixturePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load fixture: %v\n", err)
		return 2
	}

	module, err := checklist.NewRepository(modulesDir).Load(f.ModuleID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load module %s: %v\n", f.ModuleID, err)
		return 2
	}

	outcomes, sum, err := replay.Replay(f, nil, module)
	if err != nil {
		fmt.Fprintf(os.Stderr, "replay: %v\n", err)
		return 2
	}

	printOutcomes(outcomes)
	fmt.Printf("\nSummary: %d turns, %d events, %d reversals, %d interruptions, %d mismatches\n",
		sum.TotalTurns, sum.EventsFired, sum.ReversalsFired, sum.Interruptions, sum.Mismatches)
	fmt.Printf("Final: gauge=%d score=%d level=%s outcome=%s\n",
		sum.FinalGauge, sum.Report.Evaluation.Score, sum.Report.Evaluation.Level, sum.Report.Final.Key)

	if sum.Mismatches > 0 {
		return 1
	}
	return 0
}

// #endregion run

// #region output

func printOutcomes(outcomes []replay.TurnOutcome) {
	fmt.Printf("%-6s| %-6s| %-12s| %-22s| %s\n", "Turn", "Gauge", "Mood", "Situational", "Match")
	fmt.Printf("%-6s+%-7s+%-13s+%-23s+%s\n",
		"------", "-------", "-------------", "-----------------------", "------")

	for _, out := range outcomes {
		situational := "-"
		if out.Result.Event != nil {
			situational = "event:" + out.Result.Event.Def.Type
		} else if out.Result.Reversal != nil {
			situational = "reversal:" + out.Result.Reversal.Def.Type
		} else if out.Result.Interruption.ShouldInterrupt {
			situational = "interrupt:" + out.Result.Interruption.Reason
		}

		match := "OK"
		if len(out.Mismatches) > 0 {
			match = "DIFF: " + strings.Join(out.Mismatches, "; ")
		}
		fmt.Printf("%-6d| %-6d| %-12s| %-22s| %s\n",
			out.Turn, out.Result.Gauge, out.Result.Mood.Mood, situational, match)
	}
}

// #endregion output
