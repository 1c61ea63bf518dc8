package model

// DefaultMarks is applied to questions that carry no explicit mark value.
const DefaultMarks = 10

// CodeTypeText marks a free-text question; anything else is a language tag.
const CodeTypeText = "text"

type Question struct {
	ID             string `json:"id"`
	Section        string `json:"section"`
	Title          string `json:"title"`
	Text           string `json:"text"`
	IdealAnswerKey string `json:"idealAnswerKey"` // grading guideline, not ground truth
	CodeType       string `json:"codeType"`       // "text", "python", "javascript", ...
	Marks          int    `json:"marks"`
}

// MarksOrDefault returns the question's marks, falling back to DefaultMarks.
func (q Question) MarksOrDefault() int {
	if q.Marks <= 0 {
		return DefaultMarks
	}
	return q.Marks
}
