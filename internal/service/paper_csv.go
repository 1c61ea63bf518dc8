package service

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/lshigami/pathfinder/internal/model"
)

var csvHeader = []string{"Section", "Title", "QuestionText", "IdealAnswer", "Type", "Marks"}

var nonAlnum = regexp.MustCompile(`[^a-z0-9]`)

func exportFilename(title string) string {
	return nonAlnum.ReplaceAllString(strings.ToLower(title), "_") + "_export.csv"
}

func encodeQuestionsCSV(questions []model.Question) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(csvHeader); err != nil {
		return nil, err
	}
	for _, q := range questions {
		row := []string{q.Section, q.Title, q.Text, q.IdealAnswerKey, q.CodeType, strconv.Itoa(q.MarksOrDefault())}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("writing csv: %w", err)
	}
	return buf.Bytes(), nil
}

// TemplateCSV returns a blank 20-question sheet: 10 aptitude, 10 technical.
func TemplateCSV() []byte {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write([]string{"Section", "Title", "QuestionText", "IdealAnswer", "Type(text/python/javascript/java/cpp)", "Marks"})
	for i := 1; i <= 10; i++ {
		_ = w.Write([]string{"Aptitude & Reasoning", fmt.Sprintf("Aptitude Q%d", i), "Enter question text here...", "Enter answer key...", model.CodeTypeText, "5"})
	}
	for i := 1; i <= 10; i++ {
		_ = w.Write([]string{"Technical Assessment", fmt.Sprintf("Technical Q%d", i), "Enter question text here...", "Enter answer key...", model.CodeTypeText, "10"})
	}
	w.Flush()
	return buf.Bytes()
}

// decodeQuestionsCSV reads rows in the export column order. The header row is
// optional; rows without a title or text are skipped.
func decodeQuestionsCSV(r io.Reader) ([]model.Question, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPaper, err)
	}

	var questions []model.Question
	for i, rec := range records {
		if i == 0 && len(rec) > 0 && strings.EqualFold(strings.TrimSpace(rec[0]), "section") {
			continue
		}
		if len(rec) < 3 {
			continue
		}
		cell := func(n int) string {
			if n < len(rec) {
				return strings.TrimSpace(rec[n])
			}
			return ""
		}
		if cell(1) == "" || cell(2) == "" {
			continue
		}
		q := model.Question{
			ID:             fmt.Sprintf("q-csv-%d", len(questions)+1),
			Section:        cell(0),
			Title:          cell(1),
			Text:           cell(2),
			IdealAnswerKey: cell(3),
			CodeType:       strings.ToLower(cell(4)),
		}
		if q.CodeType == "" {
			q.CodeType = model.CodeTypeText
		}
		if marks, err := strconv.Atoi(cell(5)); err == nil && marks > 0 {
			q.Marks = marks
		} else {
			q.Marks = model.DefaultMarks
		}
		questions = append(questions, q)
	}
	if len(questions) == 0 {
		return nil, fmt.Errorf("%w: no valid questions found in CSV", ErrInvalidPaper)
	}
	return questions, nil
}
