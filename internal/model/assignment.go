package model

import "time"

const (
	AssignedBySystem = "System"
	AssignedByAdmin  = "Admin"
)

type ExamAssignment struct {
	ID         string    `json:"id" gorm:"primaryKey"`
	Email      string    `json:"email" gorm:"not null;uniqueIndex"`
	PaperID    string    `json:"paperId" gorm:"not null;index"`
	AssignedBy string    `json:"assignedBy"`
	AssignedAt time.Time `json:"assignedAt"`
}
