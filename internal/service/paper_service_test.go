package service

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/lshigami/pathfinder/internal/dto"
	"github.com/lshigami/pathfinder/internal/model"
	"github.com/lshigami/pathfinder/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func samplePaperDTO() dto.PaperUpsertDTO {
	return dto.PaperUpsertDTO{
		Title:    "Backend Screen",
		Duration: 45,
		Questions: []dto.QuestionDTO{
			{ID: "b1", Section: "Technical", Title: "Indexes", Text: "When do indexes hurt?", IdealAnswerKey: "Write-heavy tables", Marks: 4},
			{Section: "Technical", Title: "Go", Text: "Implement a worker pool.", CodeType: "go"},
		},
	}
}

func TestPaperService_CreateUpdateDelete(t *testing.T) {
	advance := freezeClock(t)
	ds := newTestStore(t)
	svc := NewPaperService(ds)

	created, err := svc.CreateQuestionPaper(samplePaperDTO())
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, timeNow(), created.CreatedAt)
	require.Len(t, created.Questions, 2)
	assert.NotEmpty(t, created.Questions[1].ID)
	assert.Equal(t, model.DefaultMarks, created.Questions[1].Marks)

	stored, err := svc.GetPaper(created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, stored)

	advance(time.Hour)
	req := samplePaperDTO()
	req.Title = "Backend Screen v2"
	req.Questions = req.Questions[:1]
	updated, err := svc.UpdateQuestionPaper(created.ID, req)
	require.NoError(t, err)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	assert.Len(t, updated.Questions, 1)

	missing, err := svc.UpdateQuestionPaper("missing", req)
	assert.NoError(t, err)
	assert.Nil(t, missing)
	_, err = svc.GetPaper("missing")
	assert.ErrorIs(t, err, repository.ErrNotFound)
	_, err = svc.GetPaper("missing")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	require.NoError(t, svc.DeleteQuestionPaper(created.ID))
	papers, err := svc.GetAllPapers()
	require.NoError(t, err)
	assert.Len(t, papers, 1)
}

func TestPaperService_CreateKeepsSuppliedFields(t *testing.T) {
	freezeClock(t)
	ds := newTestStore(t)
	svc := NewPaperService(ds)

	req := samplePaperDTO()
	req.ID = "backend-screen"
	req.Description = "Thirty minute screen"
	req.CreatedAt = time.Date(2023, 11, 5, 14, 30, 0, 0, time.UTC)
	req.Questions[1].ID = "b2"
	req.Questions[1].Marks = 7

	created, err := svc.CreateQuestionPaper(req)
	require.NoError(t, err)

	got, err := svc.GetPaper("backend-screen")
	require.NoError(t, err)
	assert.Equal(t, req.CreatedAt, got.CreatedAt)
	assert.Equal(t, "Thirty minute screen", got.Description)
	assert.Equal(t, 45, got.Duration)
	require.Len(t, got.Questions, 2)
	for i, q := range req.Questions {
		assert.Equal(t, q.ID, got.Questions[i].ID)
		assert.Equal(t, q.Title, got.Questions[i].Title)
		assert.Equal(t, q.Text, got.Questions[i].Text)
		assert.Equal(t, q.IdealAnswerKey, got.Questions[i].IdealAnswerKey)
		assert.Equal(t, q.Marks, got.Questions[i].Marks)
	}
	assert.Equal(t, created, got)
}

func TestPaperService_RejectsDuplicateQuestionIDs(t *testing.T) {
	ds := newTestStore(t)
	req := samplePaperDTO()
	req.Questions[1].ID = "b1"
	_, err := NewPaperService(ds).CreateQuestionPaper(req)
	assert.ErrorIs(t, err, ErrInvalidPaper)
}

func TestPaperService_CandidateViewHidesKeys(t *testing.T) {
	ds := newTestStore(t)
	view, err := NewPaperService(ds).GetCandidatePaper(DefaultPaperID)
	require.NoError(t, err)
	require.Len(t, view.Questions, 7)
	assert.Equal(t, "apt-1", view.Questions[0].ID)
	assert.Equal(t, 5, view.Questions[0].Marks)
}

func TestPaperService_CSVRoundTrip(t *testing.T) {
	ds := newTestStore(t)
	svc := NewPaperService(ds)

	name, data, err := svc.ExportCSV(DefaultPaperID)
	require.NoError(t, err)
	assert.Equal(t, "comprehensive_developer_assessment_export.csv", name)
	assert.True(t, strings.HasPrefix(string(data), "Section,Title,QuestionText,IdealAnswer,Type,Marks\n"))

	imported, err := svc.ImportCSV(bytes.NewReader(data))
	require.NoError(t, err)
	original := DefaultPaper(time.Time{})
	require.Len(t, imported, len(original.Questions))
	for i, q := range imported {
		assert.Equal(t, original.Questions[i].Title, q.Title)
		assert.Equal(t, original.Questions[i].Text, q.Text)
		assert.Equal(t, original.Questions[i].IdealAnswerKey, q.IdealAnswerKey)
		assert.Equal(t, original.Questions[i].CodeType, q.CodeType)
		assert.Equal(t, original.Questions[i].MarksOrDefault(), q.Marks)
	}
}

func TestDecodeQuestionsCSV(t *testing.T) {
	in := "Aptitude,Q1,\"What, exactly?\",key,,\n" +
		"Tech,Q2,Write code,,Python,abc\n" +
		"Tech,,missing title,,,\n" +
		"short,row\n"
	qs, err := decodeQuestionsCSV(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, qs, 2)
	assert.Equal(t, "What, exactly?", qs[0].Text)
	assert.Equal(t, model.CodeTypeText, qs[0].CodeType)
	assert.Equal(t, model.DefaultMarks, qs[0].Marks)
	assert.Equal(t, "python", qs[1].CodeType)
	assert.Equal(t, "q-csv-2", qs[1].ID)

	_, err = decodeQuestionsCSV(strings.NewReader("Section,Title,QuestionText\n"))
	assert.ErrorIs(t, err, ErrInvalidPaper)
}

func TestTemplateCSV(t *testing.T) {
	qs, err := decodeQuestionsCSV(bytes.NewReader(TemplateCSV()))
	require.NoError(t, err)
	require.Len(t, qs, 20)
	assert.Equal(t, 5, qs[0].Marks)
	assert.Equal(t, 10, qs[19].Marks)
}
