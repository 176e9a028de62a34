package domain

// OptionInput is the caller-supplied shape for one option of a new question.
type OptionInput struct {
	Text      string `json:"text"`
	IsCorrect bool   `json:"isCorrect"`
}

// QuestionInput is the caller-supplied shape for adding a question to a quiz.
type QuestionInput struct {
	Text    string        `json:"text"`
	Type    string        `json:"type"`
	Options []OptionInput `json:"options"`
}

// AnswerInput is one entry of a submission: the question being answered and
// the option ids the taker selected.
type AnswerInput struct {
	QuestionID        string   `json:"questionId"`
	SelectedOptionIDs []string `json:"selectedOptionIds"`
}
