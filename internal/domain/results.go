package domain

import "time"

// OptionRef resolves an option id to its display text.
type OptionRef struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// QuestionResult is the per-question outcome of a scored submission.
type QuestionResult struct {
	QuestionID        string       `json:"questionId"`
	QuestionText      string       `json:"questionText"`
	QuestionType      QuestionType `json:"questionType"`
	SelectedOptionIDs []string     `json:"selectedOptionIds"`
	CorrectOptionIDs  []string     `json:"correctOptionIds"`
	IsCorrect         bool         `json:"isCorrect"`
	SelectedOptions   []OptionRef  `json:"selectedOptions"`
	CorrectOptions    []OptionRef  `json:"correctOptions"`
}

// SubmissionResult is the aggregate outcome of scoring one submission
// against a quiz.
type SubmissionResult struct {
	QuizID          string           `json:"quizId"`
	Score           int              `json:"score"`
	Total           int              `json:"total"`
	Percentage      int              `json:"percentage"`
	AnsweredCount   int              `json:"answeredCount"`
	UnansweredCount int              `json:"unansweredCount"`
	Passed          bool             `json:"passed"`
	Grade           string           `json:"grade"`
	Results         []QuestionResult `json:"results"`
	SubmittedAt     time.Time        `json:"submittedAt"`
}

// QuizStatistics aggregates authoring-side counts for one quiz.
type QuizStatistics struct {
	QuizID                string               `json:"quizId"`
	QuestionCount         int                  `json:"questionCount"`
	QuestionsByType       map[QuestionType]int `json:"questionsByType"`
	TotalOptions          int                  `json:"totalOptions"`
	AverageOptions        float64              `json:"averageOptions"`
	TotalCorrectOptions   int                  `json:"totalCorrectOptions"`
	AverageCorrectOptions float64              `json:"averageCorrectOptions"`
}

// HealthStatus reports service liveness: how many quizzes are held and for
// how long the process has been up.
type HealthStatus struct {
	Status        string `json:"status"`
	QuizCount     int    `json:"quizCount"`
	UptimeSeconds int64  `json:"uptimeSeconds"`
}
