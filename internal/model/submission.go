package model

import (
	"errors"
	"fmt"
	"time"
)

// SubmissionStatus is the persisted lifecycle state. A candidate without any
// submission record has not started; that state is never stored.
type SubmissionStatus string

const (
	StatusInProgress SubmissionStatus = "IN_PROGRESS"
	StatusSubmitted  SubmissionStatus = "SUBMITTED"
	StatusGraded     SubmissionStatus = "GRADED"
)

var ErrInvalidTransition = errors.New("invalid submission status transition")

// transitions lists the allowed next states. GRADED -> GRADED is re-evaluation.
var transitions = map[SubmissionStatus][]SubmissionStatus{
	StatusInProgress: {StatusSubmitted},
	StatusSubmitted:  {StatusGraded},
	StatusGraded:     {StatusGraded},
}

func (s SubmissionStatus) Valid() bool {
	_, ok := transitions[s]
	return ok
}

// Finalized reports whether the candidate can no longer change the submission.
func (s SubmissionStatus) Finalized() bool {
	return s == StatusSubmitted || s == StatusGraded
}

func (s SubmissionStatus) CanTransitionTo(next SubmissionStatus) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// ProctorLog is one timestamped violation captured in the browser.
type ProctorLog struct {
	Timestamp time.Time `json:"timestamp"`
	Type      string    `json:"type"` // e.g. "TAB_SWITCH", "COPY_PASTE"
	Details   string    `json:"details,omitempty"`
}

type ExamSubmission struct {
	CandidateID  string            `json:"candidateId" gorm:"primaryKey"`
	PaperID      string            `json:"paperId" gorm:"not null;index"`
	StartTime    time.Time         `json:"startTime"`
	EndTime      *time.Time        `json:"endTime,omitempty"`
	Answers      map[string]string `json:"answers" gorm:"serializer:json;type:jsonb"`
	ProctorLogs  []ProctorLog      `json:"proctorLogs" gorm:"serializer:json;type:jsonb"`
	Status       SubmissionStatus  `json:"status" gorm:"type:varchar(16);not null;index"`
	AIEvaluation *EvaluationResult `json:"aiEvaluation,omitempty" gorm:"serializer:json;type:jsonb"`
}

// NewSubmission starts an empty IN_PROGRESS submission.
func NewSubmission(candidateID, paperID string, start time.Time) *ExamSubmission {
	return &ExamSubmission{
		CandidateID: candidateID,
		PaperID:     paperID,
		StartTime:   start,
		Answers:     map[string]string{},
		ProctorLogs: []ProctorLog{},
		Status:      StatusInProgress,
	}
}

// ReplaceDraft overwrites answers and proctor logs wholesale.
func (s *ExamSubmission) ReplaceDraft(answers map[string]string, logs []ProctorLog) error {
	if s.Status != StatusInProgress {
		return fmt.Errorf("%w: cannot save draft while %s", ErrInvalidTransition, s.Status)
	}
	if answers == nil {
		answers = map[string]string{}
	}
	if logs == nil {
		logs = []ProctorLog{}
	}
	s.Answers = answers
	s.ProctorLogs = logs
	return nil
}

// Submit moves IN_PROGRESS to SUBMITTED and stamps the end time. It reports
// false when the submission was already finalized and nothing changed.
func (s *ExamSubmission) Submit(at time.Time) bool {
	if !s.Status.CanTransitionTo(StatusSubmitted) {
		return false
	}
	s.Status = StatusSubmitted
	s.EndTime = &at
	return true
}

// Grade attaches an evaluation, replacing any previous one.
func (s *ExamSubmission) Grade(result EvaluationResult) error {
	if !s.Status.CanTransitionTo(StatusGraded) {
		return fmt.Errorf("%w: cannot grade while %s", ErrInvalidTransition, s.Status)
	}
	s.Status = StatusGraded
	s.AIEvaluation = &result
	return nil
}
