package app

import (
	"strings"
	"time"

	"quizforge-service/internal/domain"
)

const (
	maxTitleLen        = 200
	minTitleLen        = 3
	maxQuestionTextLen = 1000
	maxTextQuestionLen = 300
	maxOptionTextLen   = 500
	maxOptionsPerQ     = 10
)

// ValidateQuizTitle trims and checks a quiz title, returning the cleaned value.
func ValidateQuizTitle(raw string) (string, error) {
	title := strings.TrimSpace(raw)
	if title == "" {
		return "", domain.NewValidationError("Quiz title is required")
	}
	if len(title) < minTitleLen {
		return "", domain.NewValidationError("Quiz title must be at least 3 characters long")
	}
	if len(title) > maxTitleLen {
		return "", domain.NewValidationError("Quiz title cannot exceed 200 characters")
	}
	return title, nil
}

// BuildQuestion validates a question-creation payload as a single atomic check
// and materializes the question with generated ids. The first violated rule
// determines the returned error; no partial question is ever produced.
func BuildQuestion(input domain.QuestionInput, newID func() string, createdAt time.Time) (domain.Question, error) {
	text := strings.TrimSpace(input.Text)
	if text == "" {
		return domain.Question{}, domain.NewValidationError("Question text is required")
	}
	if len(text) > maxQuestionTextLen {
		return domain.Question{}, domain.NewValidationError("Question text cannot exceed 1000 characters")
	}

	qType, ok := domain.ParseQuestionType(input.Type)
	if !ok {
		return domain.Question{}, domain.NewValidationError(
			"Question type must be one of: single_choice, multiple_choice, text")
	}
	if qType == domain.Text && len(text) > maxTextQuestionLen {
		return domain.Question{}, domain.NewValidationError("Text question text cannot exceed 300 characters")
	}

	options, err := buildOptions(input.Options, newID)
	if err != nil {
		return domain.Question{}, err
	}

	correct := 0
	for _, opt := range options {
		if opt.IsCorrect {
			correct++
		}
	}
	if correct == 0 {
		return domain.Question{}, domain.NewValidationError("At least one option must be marked as correct")
	}

	switch qType {
	case domain.SingleChoice:
		if correct != 1 {
			return domain.Question{}, domain.NewValidationError(
				"Single choice questions must have exactly one correct option")
		}
		if len(options) < 2 {
			return domain.Question{}, domain.NewValidationError(
				"Single choice questions must have at least 2 options")
		}
	case domain.MultipleChoice:
		if correct < 2 {
			return domain.Question{}, domain.NewValidationError(
				"Multiple choice questions must have at least 2 correct options")
		}
		if correct == len(options) {
			return domain.Question{}, domain.NewValidationError(
				"Multiple choice questions must have at least one incorrect option")
		}
		if len(options) < 3 {
			return domain.Question{}, domain.NewValidationError(
				"Multiple choice questions must have at least 3 options")
		}
	case domain.Text:
		// no option-count floor beyond the general rules
	}

	return domain.Question{
		ID:        newID(),
		Text:      text,
		Type:      qType,
		Options:   options,
		CreatedAt: createdAt,
	}, nil
}

// buildOptions trims and validates option payloads, assigning ids. Option
// text must be unique per question, compared case-insensitively.
func buildOptions(inputs []domain.OptionInput, newID func() string) ([]domain.Option, error) {
	if len(inputs) == 0 {
		return nil, domain.NewValidationError("Question must have at least one option")
	}
	if len(inputs) > maxOptionsPerQ {
		return nil, domain.NewValidationError("Question cannot have more than 10 options")
	}

	options := make([]domain.Option, 0, len(inputs))
	seen := make(map[string]struct{}, len(inputs))
	for i, in := range inputs {
		text := strings.TrimSpace(in.Text)
		if text == "" {
			return nil, domain.NewValidationError("Option %d text is required", i+1)
		}
		if len(text) > maxOptionTextLen {
			return nil, domain.NewValidationError("Option %d text cannot exceed 500 characters", i+1)
		}
		key := strings.ToLower(text)
		if _, dup := seen[key]; dup {
			return nil, domain.NewValidationError("Duplicate option text: %s", text)
		}
		seen[key] = struct{}{}
		options = append(options, domain.Option{ID: newID(), Text: text, IsCorrect: in.IsCorrect})
	}
	return options, nil
}

// ValidateSubmission checks the quiz-level envelope of an answers payload
// before any scoring occurs. Option-level checks are deferred to scoring.
func ValidateSubmission(quiz domain.Quiz, answers []domain.AnswerInput) error {
	if answers == nil {
		return domain.NewValidationError("Answers must be provided as an array")
	}
	if len(answers) == 0 {
		return domain.NewValidationError("At least one answer must be provided")
	}
	if len(answers) > len(quiz.Questions) {
		return domain.NewValidationError("Cannot submit more answers than the quiz has questions")
	}

	seen := make(map[string]struct{}, len(answers))
	for i, answer := range answers {
		questionID := strings.TrimSpace(answer.QuestionID)
		if questionID == "" {
			return domain.NewValidationError("Answer %d is missing questionId", i+1)
		}
		if _, ok := quiz.FindQuestion(questionID); !ok {
			return domain.NewValidationError("Question with id %s does not belong to this quiz", questionID)
		}
		if _, dup := seen[questionID]; dup {
			return domain.NewValidationError("Duplicate answer for question %s", questionID)
		}
		seen[questionID] = struct{}{}
		if len(answer.SelectedOptionIDs) == 0 {
			return domain.NewValidationError(
				"Answer for question %s must include at least one selected option", questionID)
		}
	}
	return nil
}
