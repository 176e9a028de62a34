package app

import (
	"math"

	"quizforge-service/internal/domain"
)

// computeStatistics aggregates question counts by type plus option totals
// and averages (averages rounded to one decimal place).
func computeStatistics(quiz domain.Quiz) domain.QuizStatistics {
	byType := map[domain.QuestionType]int{
		domain.SingleChoice:   0,
		domain.MultipleChoice: 0,
		domain.Text:           0,
	}
	totalOptions := 0
	totalCorrect := 0
	for _, question := range quiz.Questions {
		byType[question.Type]++
		totalOptions += len(question.Options)
		totalCorrect += len(question.CorrectOptionIDs())
	}

	count := len(quiz.Questions)
	avgOptions := 0.0
	avgCorrect := 0.0
	if count > 0 {
		avgOptions = round1(float64(totalOptions) / float64(count))
		avgCorrect = round1(float64(totalCorrect) / float64(count))
	}

	return domain.QuizStatistics{
		QuizID:                quiz.ID,
		QuestionCount:         count,
		QuestionsByType:       byType,
		TotalOptions:          totalOptions,
		AverageOptions:        avgOptions,
		TotalCorrectOptions:   totalCorrect,
		AverageCorrectOptions: avgCorrect,
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
