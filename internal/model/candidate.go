package model

import (
	"strings"
	"time"
)

type Candidate struct {
	ID              string    `json:"id" gorm:"primaryKey"`
	Email           string    `json:"email" gorm:"not null;uniqueIndex"`
	FullName        string    `json:"fullName"`
	CurrentCompany  string    `json:"currentCompany"`
	CurrentSalary   string    `json:"currentSalary"`
	NoticePeriod    string    `json:"noticePeriod"`
	AssignedPaperID string    `json:"assignedPaperId" gorm:"index"`
	RegisteredAt    time.Time `json:"registeredAt"`
}

// DemoEmailPrefix marks throwaway demo accounts that may re-enter a finished exam.
const DemoEmailPrefix = "demo."

// NormalizeEmail trims and lowercases an address for lookups and storage.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// IsDemoEmail reports whether a normalized email belongs to the demo namespace.
func IsDemoEmail(email string) bool {
	return strings.HasPrefix(email, DemoEmailPrefix)
}
