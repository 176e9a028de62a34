package app

import (
	"math"
	"time"

	"quizforge-service/internal/domain"
)

const passThreshold = 60

// IsAnswerCorrect decides whether the selected option ids satisfy the
// question. It is pure and never errors: malformed input degrades to false,
// since a malformed answer and a wrong answer look the same to a quiz taker.
func IsAnswerCorrect(q domain.Question, selected []string) bool {
	if selected == nil {
		return false
	}

	correct := make(map[string]struct{}, len(q.Options))
	for _, opt := range q.Options {
		if opt.IsCorrect {
			correct[opt.ID] = struct{}{}
		}
	}
	// A question with no correct answer can never be satisfied.
	if len(correct) == 0 {
		return false
	}

	ids := dedupeIDs(selected)
	if len(ids) == 0 {
		return false
	}
	for _, id := range ids {
		if !q.HasOption(id) {
			return false
		}
	}

	switch q.Type {
	case domain.SingleChoice:
		if len(ids) != 1 {
			return false
		}
		_, ok := correct[ids[0]]
		return ok
	case domain.MultipleChoice:
		if len(ids) != len(correct) {
			return false
		}
		for _, id := range ids {
			if _, ok := correct[id]; !ok {
				return false
			}
		}
		return true
	case domain.Text:
		for _, id := range ids {
			if _, ok := correct[id]; ok {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// ScoreSubmission evaluates an already envelope-validated answers sequence
// against the quiz and aggregates the scored result. Any invalid option id
// aborts before a partial result is produced.
func ScoreSubmission(quiz domain.Quiz, answers []domain.AnswerInput, submittedAt time.Time) (domain.SubmissionResult, error) {
	// Option-level validation first, across all entries, so scoring is atomic.
	for _, answer := range answers {
		question, ok := quiz.FindQuestion(answer.QuestionID)
		if !ok {
			return domain.SubmissionResult{}, domain.NewValidationError(
				"Question with id %s does not belong to this quiz", answer.QuestionID)
		}
		for _, optionID := range answer.SelectedOptionIDs {
			if !question.HasOption(optionID) {
				return domain.SubmissionResult{}, domain.NewValidationError(
					"Invalid option id %s for question %s", optionID, question.ID)
			}
		}
	}

	results := make([]domain.QuestionResult, 0, len(answers))
	score := 0
	for _, answer := range answers {
		question, _ := quiz.FindQuestion(answer.QuestionID)
		selected := dedupeIDs(answer.SelectedOptionIDs)
		correctIDs := question.CorrectOptionIDs()

		isCorrect := IsAnswerCorrect(question, answer.SelectedOptionIDs)
		if isCorrect {
			score++
		}

		results = append(results, domain.QuestionResult{
			QuestionID:        question.ID,
			QuestionText:      question.Text,
			QuestionType:      question.Type,
			SelectedOptionIDs: selected,
			CorrectOptionIDs:  correctIDs,
			IsCorrect:         isCorrect,
			SelectedOptions:   resolveOptions(question, selected),
			CorrectOptions:    resolveOptions(question, correctIDs),
		})
	}

	total := len(quiz.Questions)
	percentage := percentageOf(score, total)
	return domain.SubmissionResult{
		QuizID:          quiz.ID,
		Score:           score,
		Total:           total,
		Percentage:      percentage,
		AnsweredCount:   len(answers),
		UnansweredCount: total - len(answers),
		Passed:          percentage >= passThreshold,
		Grade:           gradeFor(percentage),
		Results:         results,
		SubmittedAt:     submittedAt,
	}, nil
}

// dedupeIDs drops empty entries and duplicates, keeping first-seen order.
func dedupeIDs(ids []string) []string {
	out := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// resolveOptions maps ids to {id, text} pairs, silently omitting ids that no
// longer resolve.
func resolveOptions(q domain.Question, ids []string) []domain.OptionRef {
	refs := make([]domain.OptionRef, 0, len(ids))
	for _, id := range ids {
		if opt, ok := q.FindOption(id); ok {
			refs = append(refs, domain.OptionRef{ID: opt.ID, Text: opt.Text})
		}
	}
	return refs
}

func percentageOf(score, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(score) / float64(total) * 100))
}

func gradeFor(percentage int) string {
	switch {
	case percentage >= 90:
		return "A"
	case percentage >= 80:
		return "B"
	case percentage >= 70:
		return "C"
	case percentage >= 60:
		return "D"
	default:
		return "F"
	}
}
