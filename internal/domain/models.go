package domain

import "time"

// QuestionType is the closed set of supported question kinds.
type QuestionType string

const (
	SingleChoice   QuestionType = "single_choice"
	MultipleChoice QuestionType = "multiple_choice"
	Text           QuestionType = "text"
)

// ParseQuestionType maps a raw string onto the closed QuestionType set.
func ParseQuestionType(raw string) (QuestionType, bool) {
	switch QuestionType(raw) {
	case SingleChoice, MultipleChoice, Text:
		return QuestionType(raw), true
	default:
		return "", false
	}
}

// Option is one selectable choice belonging to a question.
type Option struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	IsCorrect bool   `json:"isCorrect"`
}

// Question is a prompt of a fixed type with a set of options, some marked correct.
type Question struct {
	ID        string       `json:"id"`
	Text      string       `json:"text"`
	Type      QuestionType `json:"type"`
	Options   []Option     `json:"options"`
	CreatedAt time.Time    `json:"createdAt"`
}

// CorrectOptionIDs returns the ids of all options marked correct, in option order.
func (q Question) CorrectOptionIDs() []string {
	ids := make([]string, 0, len(q.Options))
	for _, opt := range q.Options {
		if opt.IsCorrect {
			ids = append(ids, opt.ID)
		}
	}
	return ids
}

// FindOption returns the option with the given id, if present.
func (q Question) FindOption(optionID string) (Option, bool) {
	for _, opt := range q.Options {
		if opt.ID == optionID {
			return opt, true
		}
	}
	return Option{}, false
}

// HasOption reports whether optionID belongs to this question.
func (q Question) HasOption(optionID string) bool {
	_, ok := q.FindOption(optionID)
	return ok
}

// Quiz is a named, ordered collection of questions. Question order is
// insertion order and is the display order used by all projections.
type Quiz struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Questions []Question `json:"questions"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// FindQuestion returns the question with the given id, if present.
func (z Quiz) FindQuestion(questionID string) (Question, bool) {
	for _, q := range z.Questions {
		if q.ID == questionID {
			return q, true
		}
	}
	return Question{}, false
}

// RemoveQuestion drops the question with the given id, preserving the order
// of the remaining questions. Returns false if the id is unknown.
func (z *Quiz) RemoveQuestion(questionID string) bool {
	for i, q := range z.Questions {
		if q.ID == questionID {
			z.Questions = append(z.Questions[:i], z.Questions[i+1:]...)
			return true
		}
	}
	return false
}

// OptionView is the answer-free projection of an option: id and text only,
// never the correctness flag.
type OptionView struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// QuestionView is the answer-free projection served to quiz takers.
type QuestionView struct {
	ID      string       `json:"id"`
	Text    string       `json:"text"`
	Type    QuestionType `json:"type"`
	Options []OptionView `json:"options"`
}

// View builds the answer-free projection of the question.
func (q Question) View() QuestionView {
	options := make([]OptionView, 0, len(q.Options))
	for _, opt := range q.Options {
		options = append(options, OptionView{ID: opt.ID, Text: opt.Text})
	}
	return QuestionView{ID: q.ID, Text: q.Text, Type: q.Type, Options: options}
}

// QuizSummary is the listing view of a quiz.
type QuizSummary struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	QuestionCount int       `json:"questionCount"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// Summary builds the listing view of the quiz.
func (z Quiz) Summary() QuizSummary {
	return QuizSummary{
		ID:            z.ID,
		Title:         z.Title,
		QuestionCount: len(z.Questions),
		CreatedAt:     z.CreatedAt,
		UpdatedAt:     z.UpdatedAt,
	}
}
