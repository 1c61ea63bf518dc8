package model

import "time"

type QuestionPaper struct {
	ID          string     `json:"id" gorm:"primaryKey"`
	Title       string     `json:"title" gorm:"not null"`
	Description string     `json:"description"`
	Duration    int        `json:"duration"` // minutes
	Questions   []Question `json:"questions" gorm:"serializer:json;type:jsonb"`
	CreatedAt   time.Time  `json:"createdAt" gorm:"autoCreateTime:false"`
}

// NormalizeMarks fills in DefaultMarks for every question without marks.
func (p *QuestionPaper) NormalizeMarks() {
	for i := range p.Questions {
		p.Questions[i].Marks = p.Questions[i].MarksOrDefault()
	}
}

// MaxScore is the sum of marks over all questions.
func (p *QuestionPaper) MaxScore() float64 {
	total := 0
	for _, q := range p.Questions {
		total += q.MarksOrDefault()
	}
	return float64(total)
}
