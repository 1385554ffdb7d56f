// Command cli aggregates a review from a file and prints the output record.
// Input is either a JSON review input or a committee worksheet (.xlsx/.csv),
// picked by extension.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"

	"gopanel/adapters/excel"
	"gopanel/domain/committee"
	"gopanel/internal"
	"gopanel/internal/aggregate"
	"gopanel/internal/config"
	"gopanel/internal/errors"
	"gopanel/internal/report"
	"gopanel/ports"
)

func main() {
	_ = godotenv.Load()

	var (
		inputPath   = flag.String("input", "", "review input file (.json, .xlsx or .csv)")
		level       = flag.String("level", "L3", "review level for worksheet inputs (L1..L5)")
		correlation = flag.String("correlation", "", "correlation class (mixed, majority-same, all-same)")
		asMarkdown  = flag.Bool("markdown", false, "print the decision worksheet instead of JSON")
	)
	flag.Parse()

	if *inputPath == "" {
		if cfg, err := config.Load(); err == nil {
			*inputPath = cfg.Paths.WorksheetFile
		}
	}
	if *inputPath == "" {
		fmt.Fprintln(os.Stderr, "usage: cli -input review.json [-level L3] [-correlation mixed] [-markdown]")
		os.Exit(2)
	}

	input, err := loadInput(*inputPath, *level, *correlation)
	if err != nil {
		fail(err)
	}

	engine := aggregate.NewEngine(internal.NewDefaultLogger())
	result, err := engine.Aggregate(input)
	if err != nil {
		fail(err)
	}

	if *asMarkdown {
		sheet := report.Worksheet{
			Subject: filepath.Base(*inputPath),
			Input:   input,
			Result:  result,
		}
		fmt.Print(report.RenderMarkdown(sheet))
		return
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		fail(err)
	}
}

func loadInput(path, level, correlation string) (*committee.ReviewInput, error) {
	if strings.ToLower(filepath.Ext(path)) == ".json" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		var input committee.ReviewInput
		if err := json.Unmarshal(data, &input); err != nil {
			return nil, errors.InvalidInput("malformed review input: " + err.Error())
		}
		return &input, nil
	}

	lvl, err := committee.ParseReviewLevel(level)
	if err != nil {
		return nil, err
	}
	var reader ports.WorksheetReader = excel.NewWorksheetReader(path, lvl, committee.CorrelationClass(correlation))
	return reader.ReadReviewInput()
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "error [%s]: %v\n", errors.GetCode(errors.Categorize(err)), err)
	os.Exit(1)
}
