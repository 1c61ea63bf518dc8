package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/jinzhu/copier"
	"github.com/lshigami/pathfinder/internal/dto"
	"github.com/lshigami/pathfinder/internal/model"
	"github.com/lshigami/pathfinder/internal/repository"
	"github.com/rs/zerolog/log"
)

// DefaultPaperID is the canonical paper every fresh install starts with.
const DefaultPaperID = "comprehensive-dev-v1"

// timeNow is the service clock; tests replace it.
var timeNow = func() time.Time { return time.Now().UTC() }

type bootstrapAssignment struct {
	Email string
	ID    string
}

var bootstrapAssignments = []bootstrapAssignment{
	{Email: "alex.tester@example.com", ID: "assign-default-comp-dev-1"},
	{Email: "hiring.panel@example.com", ID: "assign-panel-comp-dev-1"},
}

// DefaultPaper returns the code-level content of the default paper.
func DefaultPaper(createdAt time.Time) model.QuestionPaper {
	p := model.QuestionPaper{
		ID:          DefaultPaperID,
		Title:       "Comprehensive Developer Assessment",
		Description: "A structured two-module assessment covering aptitude and technical skills (Python, DL, Git, React, AWS).",
		Duration:    90,
		CreatedAt:   createdAt,
		Questions: []model.Question{
			{
				ID: "apt-1", Section: "Aptitude & Reasoning", Title: "Work rate",
				Text:           "Two developers close a backlog in 6 and 12 days working alone. How many days do they need together? Show your reasoning.",
				IdealAnswerKey: "Combined rate 1/6 + 1/12 = 1/4, so 4 days.",
				CodeType:       model.CodeTypeText, Marks: 5,
			},
			{
				ID: "apt-2", Section: "Aptitude & Reasoning", Title: "Sequence",
				Text:           "What is the next number in 2, 6, 12, 20, 30, ...? Explain the pattern.",
				IdealAnswerKey: "Differences grow by 2 (n*(n+1)); next is 42.",
				CodeType:       model.CodeTypeText, Marks: 5,
			},
			{
				ID: "tech-python", Section: "Technical Assessment", Title: "Python: deduplicate",
				Text:           "Write a Python function that removes duplicates from a list while preserving order.",
				IdealAnswerKey: "Track a seen set and append unseen items, or use dict.fromkeys(items).",
				CodeType:       "python",
			},
			{
				ID: "tech-dl", Section: "Technical Assessment", Title: "Deep learning: overfitting",
				Text:           "Your model reaches 99% training accuracy but 70% validation accuracy. What is happening and what would you try?",
				IdealAnswerKey: "Overfitting; regularization, dropout, augmentation, more data, early stopping, smaller model.",
				CodeType:       model.CodeTypeText,
			},
			{
				ID: "tech-git", Section: "Technical Assessment", Title: "Git: undo a pushed commit",
				Text:           "A bad commit was pushed to a shared branch. How do you undo it safely?",
				IdealAnswerKey: "git revert <sha> and push; avoid rewriting shared history with reset/force-push.",
				CodeType:       model.CodeTypeText,
			},
			{
				ID: "tech-react", Section: "Technical Assessment", Title: "React: counter",
				Text:           "Write a React component with a button that increments a counter, using hooks.",
				IdealAnswerKey: "useState for count; onClick uses functional update setCount(c => c + 1).",
				CodeType:       "javascript",
			},
			{
				ID: "tech-aws", Section: "Technical Assessment", Title: "AWS: static site",
				Text:           "Describe how you would host a static React build on AWS with HTTPS and caching.",
				IdealAnswerKey: "S3 bucket (private) behind CloudFront with OAC, ACM certificate, Route 53 alias, cache invalidation on deploy.",
				CodeType:       model.CodeTypeText,
			},
		},
	}
	p.NormalizeMarks()
	return p
}

// Seeder guarantees the default paper and bootstrap assignments exist.
type Seeder struct{}

func NewSeeder() *Seeder {
	return &Seeder{}
}

// Seed upserts the default paper, so its content tracks the code, and only
// ensures the bootstrap assignments, so an admin's reassignment survives.
func (s *Seeder) Seed(b *repository.Backend) error {
	now := timeNow()
	paper := DefaultPaper(now)

	existing, err := b.Papers.FindByID(DefaultPaperID)
	switch {
	case err == nil:
		paper.CreatedAt = existing.CreatedAt
	case !repository.IsNotFound(err):
		return fmt.Errorf("checking default paper: %w", err)
	}
	if err := b.Papers.Upsert(&paper); err != nil {
		return fmt.Errorf("upserting default paper: %w", err)
	}

	for _, ba := range bootstrapAssignments {
		if err := ensureAssignment(b.Assignments, ba.Email, DefaultPaperID, ba.ID, now); err != nil {
			return err
		}
	}
	log.Info().Str("mode", string(b.Mode)).Msg("Default paper and assignments seeded")
	return nil
}

// ensureAssignment creates the assignment when the email has none and leaves
// an existing one untouched.
func ensureAssignment(repo repository.AssignmentRepository, email, paperID, id string, now time.Time) error {
	_, err := repo.FindByEmail(email)
	if err == nil {
		return nil
	}
	if !repository.IsNotFound(err) {
		return fmt.Errorf("looking up assignment for %s: %w", email, err)
	}
	assignment := model.ExamAssignment{
		ID:         id,
		Email:      email,
		PaperID:    paperID,
		AssignedBy: model.AssignedBySystem,
		AssignedAt: now,
	}
	if err := repo.Create(&assignment); err != nil {
		return fmt.Errorf("creating assignment for %s: %w", email, err)
	}
	return nil
}

const (
	DemoProfileStrong  = "strong"
	DemoProfileAverage = "average"
)

type ProvisioningService interface {
	ProvisionDemoCandidate(profile string) (*dto.CandidateResponseDTO, error)
}

type provisioningService struct {
	store repository.Provider
}

func NewProvisioningService(store repository.Provider) ProvisioningService {
	return &provisioningService{store: store}
}

// ProvisionDemoCandidate registers a throwaway candidate on the default paper
// with a submitted exam already holding answers, ready for grading.
func (s *provisioningService) ProvisionDemoCandidate(profile string) (*dto.CandidateResponseDTO, error) {
	if profile != DemoProfileStrong && profile != DemoProfileAverage {
		return nil, fmt.Errorf("unknown demo profile %q", profile)
	}
	b := s.store.Backend()
	now := timeNow()
	stamp := now.UnixMilli()
	demoID := fmt.Sprintf("demo-%s-%d", profile, stamp)

	name := "Demo User (Average)"
	if profile == DemoProfileStrong {
		name = "Demo User (Expert)"
	}
	candidate := model.Candidate{
		ID:              demoID,
		Email:           fmt.Sprintf("%s%s.%d@example.com", model.DemoEmailPrefix, profile, stamp),
		FullName:        name,
		CurrentCompany:  "Demo Inc.",
		CurrentSalary:   "N/A",
		NoticePeriod:    "Immediate",
		AssignedPaperID: DefaultPaperID,
		RegisteredAt:    now,
	}

	if err := ensureAssignment(b.Assignments, candidate.Email, DefaultPaperID, "assign-"+demoID, now); err != nil {
		return nil, err
	}
	if err := b.Candidates.Create(&candidate); err != nil {
		return nil, fmt.Errorf("creating demo candidate: %w", err)
	}

	paper, err := b.Papers.FindByID(DefaultPaperID)
	if err != nil {
		return nil, fmt.Errorf("loading default paper: %w", err)
	}
	sub := model.NewSubmission(candidate.ID, DefaultPaperID, now)
	for _, q := range paper.Questions {
		if profile == DemoProfileStrong {
			sub.Answers[q.ID] = q.IdealAnswerKey
		} else {
			sub.Answers[q.ID] = fmt.Sprintf("[Demo Answer] I believe the concept involves... %s. However, I am not fully sure of the exact syntax.", strings.ToLower(q.Title))
		}
	}
	sub.Submit(now)
	if err := b.Submissions.Create(sub); err != nil {
		return nil, fmt.Errorf("creating demo submission: %w", err)
	}

	log.Info().Str("candidateID", candidate.ID).Str("profile", profile).Msg("Demo candidate provisioned")
	var resp dto.CandidateResponseDTO
	if err := copier.Copy(&resp, &candidate); err != nil {
		return nil, fmt.Errorf("error preparing response data: %w", err)
	}
	return &resp, nil
}
