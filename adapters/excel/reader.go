// Package excel reads committee worksheets. A worksheet carries the expert
// roster and the raw score grid for one review; the review level and
// correlation class travel outside the file because they are fixed at review
// creation, not at scoring time.
package excel

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopanel/domain/committee"
	"gopanel/domain/core"

	"github.com/xuri/excelize/v2"
)

// Sheet and column layout for .xlsx worksheets
const (
	expertsSheet = "Experts" // ID | Domain | DomainWeight | RoleTier
	scoresSheet  = "Scores"  // ExpertID | AngleID | RawScore
)

// WorksheetReader handles reading committee worksheets from Excel and CSV files
type WorksheetReader struct {
	filePath    string
	fileType    string // "xlsx" or "csv"
	level       committee.ReviewLevel
	correlation committee.CorrelationClass
}

// NewWorksheetReader creates a reader for the given file. Extension picks the
// format; anything that is not .csv is treated as xlsx.
func NewWorksheetReader(filePath string, level committee.ReviewLevel, correlation committee.CorrelationClass) *WorksheetReader {
	fileType := "xlsx"
	if strings.ToLower(filepath.Ext(filePath)) == ".csv" {
		fileType = "csv"
	}
	return &WorksheetReader{
		filePath:    filePath,
		fileType:    fileType,
		level:       level,
		correlation: correlation,
	}
}

// ReadReviewInput parses the worksheet into a validated review input set
func (r *WorksheetReader) ReadReviewInput() (*committee.ReviewInput, error) {
	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return nil, fmt.Errorf("worksheet file not found: %s", r.filePath)
	}

	var (
		in  *committee.ReviewInput
		err error
	)
	switch r.fileType {
	case "csv":
		in, err = r.readCSV()
	case "xlsx":
		in, err = r.readExcel()
	default:
		return nil, fmt.Errorf("unsupported worksheet type: %s", r.fileType)
	}
	if err != nil {
		return nil, err
	}
	if in.Correlation == "" {
		in.Correlation = committee.DeriveCorrelationClass(in.Experts)
	}

	if err := in.Validate(); err != nil {
		return nil, err
	}
	return in, nil
}

func (r *WorksheetReader) readExcel() (*committee.ReviewInput, error) {
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open worksheet: %w", err)
	}
	defer f.Close()

	expertRows, err := f.GetRows(expertsSheet)
	if err != nil {
		return nil, fmt.Errorf("missing %q sheet: %w", expertsSheet, err)
	}
	scoreRows, err := f.GetRows(scoresSheet)
	if err != nil {
		return nil, fmt.Errorf("missing %q sheet: %w", scoresSheet, err)
	}

	in := &committee.ReviewInput{
		Level:       r.level,
		Correlation: r.correlation,
	}

	for i, row := range expertRows {
		if i == 0 || isBlank(row) { // header
			continue
		}
		expert, err := parseExpertRow(row)
		if err != nil {
			return nil, fmt.Errorf("experts row %d: %w", i+1, err)
		}
		in.Experts = append(in.Experts, expert)
	}

	for i, row := range scoreRows {
		if i == 0 || isBlank(row) {
			continue
		}
		entry, err := parseScoreRow(row)
		if err != nil {
			return nil, fmt.Errorf("scores row %d: %w", i+1, err)
		}
		in.Scores = append(in.Scores, entry)
	}

	return in, nil
}

// readCSV reads the flat format: one row per score with the expert columns
// repeated (expert_id, domain, domain_weight, role_tier, angle_id, raw_score).
func (r *WorksheetReader) readCSV() (*committee.ReviewInput, error) {
	file, err := os.Open(r.filePath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	in := &committee.ReviewInput{
		Level:       r.level,
		Correlation: r.correlation,
	}
	seen := make(map[string]bool)

	line := 0
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("csv line %d: %w", line+1, err)
		}
		line++
		if line == 1 { // header
			continue
		}
		if len(row) < 6 {
			return nil, fmt.Errorf("csv line %d: expected 6 columns, got %d", line, len(row))
		}

		if !seen[row[0]] {
			expert, err := parseExpertRow(row[:4])
			if err != nil {
				return nil, fmt.Errorf("csv line %d: %w", line, err)
			}
			in.Experts = append(in.Experts, expert)
			seen[row[0]] = true
		}

		entry, err := parseScoreRow([]string{row[0], row[4], row[5]})
		if err != nil {
			return nil, fmt.Errorf("csv line %d: %w", line, err)
		}
		in.Scores = append(in.Scores, entry)
	}

	return in, nil
}

func parseExpertRow(row []string) (committee.Expert, error) {
	if len(row) < 3 {
		return committee.Expert{}, fmt.Errorf("expected at least 3 columns, got %d", len(row))
	}
	expertID, err := core.ParseExpertID(row[0])
	if err != nil {
		return committee.Expert{}, err
	}
	weight, err := strconv.ParseFloat(strings.TrimSpace(row[2]), 64)
	if err != nil {
		return committee.Expert{}, fmt.Errorf("bad domain weight %q: %w", row[2], err)
	}
	tier := committee.RoleTier("")
	if len(row) > 3 {
		tier = committee.RoleTier(strings.ToLower(strings.TrimSpace(row[3])))
	}
	return committee.NewExpert(
		expertID,
		committee.DomainCategory(strings.ToLower(strings.TrimSpace(row[1]))),
		weight,
		tier,
	)
}

func parseScoreRow(row []string) (committee.ScoreEntry, error) {
	if len(row) < 3 {
		return committee.ScoreEntry{}, fmt.Errorf("expected 3 columns, got %d", len(row))
	}
	expertID, err := core.ParseExpertID(row[0])
	if err != nil {
		return committee.ScoreEntry{}, err
	}
	angleID, err := core.ParseAngleID(row[1])
	if err != nil {
		return committee.ScoreEntry{}, err
	}
	score, err := strconv.Atoi(strings.TrimSpace(row[2]))
	if err != nil {
		return committee.ScoreEntry{}, fmt.Errorf("bad raw score %q: %w", row[2], err)
	}
	entry := committee.ScoreEntry{
		ExpertID: expertID,
		AngleID:  angleID,
		RawScore: score,
	}
	if err := entry.Validate(); err != nil {
		return committee.ScoreEntry{}, err
	}
	return entry, nil
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
