package app_test

import (
	"testing"
	"time"

	"quizforge-service/internal/app"
	"quizforge-service/internal/domain"
)

func singleChoiceQuestion() domain.Question {
	return domain.Question{
		ID:   "q1",
		Text: "What is 2+2?",
		Type: domain.SingleChoice,
		Options: []domain.Option{
			{ID: "o1", Text: "3", IsCorrect: false},
			{ID: "o2", Text: "4", IsCorrect: true},
			{ID: "o3", Text: "5", IsCorrect: false},
		},
	}
}

func multipleChoiceQuestion() domain.Question {
	return domain.Question{
		ID:   "q2",
		Text: "Select primes",
		Type: domain.MultipleChoice,
		Options: []domain.Option{
			{ID: "m1", Text: "2", IsCorrect: true},
			{ID: "m2", Text: "3", IsCorrect: true},
			{ID: "m3", Text: "4", IsCorrect: false},
		},
	}
}

func textQuestion() domain.Question {
	return domain.Question{
		ID:   "q3",
		Text: "Name a primary color",
		Type: domain.Text,
		Options: []domain.Option{
			{ID: "t1", Text: "red", IsCorrect: true},
			{ID: "t2", Text: "blue", IsCorrect: true},
			{ID: "t3", Text: "green", IsCorrect: false},
		},
	}
}

func TestSingleChoiceCorrectness(t *testing.T) {
	q := singleChoiceQuestion()
	cases := []struct {
		name     string
		selected []string
		want     bool
	}{
		{"correct option", []string{"o2"}, true},
		{"wrong option", []string{"o1"}, false},
		{"two options selected", []string{"o1", "o2"}, false},
		{"correct twice dedupes to one", []string{"o2", "o2"}, true},
	}
	for _, tc := range cases {
		if got := app.IsAnswerCorrect(q, tc.selected); got != tc.want {
			t.Fatalf("%s: got %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestMultipleChoiceExactSetMatch(t *testing.T) {
	q := multipleChoiceQuestion()
	cases := []struct {
		name     string
		selected []string
		want     bool
	}{
		{"exact set", []string{"m1", "m2"}, true},
		{"exact set reversed", []string{"m2", "m1"}, true},
		{"subset", []string{"m1"}, false},
		{"superset with incorrect", []string{"m1", "m2", "m3"}, false},
		{"duplicates collapse to exact set", []string{"m1", "m1", "m2"}, true},
	}
	for _, tc := range cases {
		if got := app.IsAnswerCorrect(q, tc.selected); got != tc.want {
			t.Fatalf("%s: got %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestTextAnyCorrectOptionSuffices(t *testing.T) {
	q := textQuestion()
	if !app.IsAnswerCorrect(q, []string{"t2"}) {
		t.Fatalf("one correct option should satisfy a text question")
	}
	if !app.IsAnswerCorrect(q, []string{"t3", "t1"}) {
		t.Fatalf("a correct option mixed with incorrect ones should satisfy a text question")
	}
	if app.IsAnswerCorrect(q, []string{"t3"}) {
		t.Fatalf("selecting only incorrect options must not satisfy a text question")
	}
}

func TestAnswerEvaluationDegradesToFalse(t *testing.T) {
	q := singleChoiceQuestion()

	if app.IsAnswerCorrect(q, nil) {
		t.Fatalf("nil selection must be false")
	}
	if app.IsAnswerCorrect(q, []string{}) {
		t.Fatalf("empty selection must be false")
	}
	if app.IsAnswerCorrect(q, []string{""}) {
		t.Fatalf("selection of empty ids must be false")
	}
	if app.IsAnswerCorrect(q, []string{"nope"}) {
		t.Fatalf("unknown option id must be false")
	}

	noCorrect := q
	noCorrect.Options = []domain.Option{
		{ID: "o1", Text: "3"},
		{ID: "o2", Text: "4"},
	}
	if app.IsAnswerCorrect(noCorrect, []string{"o1"}) {
		t.Fatalf("a question with no correct option can never be satisfied")
	}

	badType := q
	badType.Type = domain.QuestionType("essay")
	if app.IsAnswerCorrect(badType, []string{"o2"}) {
		t.Fatalf("unknown question type must be false")
	}
}

func TestAnswerEvaluationIsIdempotent(t *testing.T) {
	q := multipleChoiceQuestion()
	selection := []string{"m1", "m2"}
	first := app.IsAnswerCorrect(q, selection)
	second := app.IsAnswerCorrect(q, selection)
	if first != second {
		t.Fatalf("evaluation must be deterministic, got %v then %v", first, second)
	}
}

func scoringQuiz() domain.Quiz {
	return domain.Quiz{
		ID:        "quiz-1",
		Title:     "Math Quiz",
		Questions: []domain.Question{singleChoiceQuestion(), multipleChoiceQuestion()},
	}
}

func TestScoreSubmissionAllCorrect(t *testing.T) {
	quiz := scoringQuiz()
	submittedAt := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	result, err := app.ScoreSubmission(quiz, []domain.AnswerInput{
		{QuestionID: "q1", SelectedOptionIDs: []string{"o2"}},
		{QuestionID: "q2", SelectedOptionIDs: []string{"m1", "m2"}},
	}, submittedAt)
	if err != nil {
		t.Fatalf("score: %v", err)
	}

	if result.Score != 2 || result.Total != 2 {
		t.Fatalf("expected 2/2, got %d/%d", result.Score, result.Total)
	}
	if result.Percentage != 100 || result.Grade != "A" || !result.Passed {
		t.Fatalf("expected 100%% grade A passed, got %d%% %s passed=%v",
			result.Percentage, result.Grade, result.Passed)
	}
	if result.AnsweredCount != 2 || result.UnansweredCount != 0 {
		t.Fatalf("expected 2 answered 0 unanswered, got %d/%d",
			result.AnsweredCount, result.UnansweredCount)
	}
	if !result.SubmittedAt.Equal(submittedAt) {
		t.Fatalf("expected submission timestamp %v, got %v", submittedAt, result.SubmittedAt)
	}
}

func TestScoreSubmissionPartial(t *testing.T) {
	quiz := scoringQuiz()

	result, err := app.ScoreSubmission(quiz, []domain.AnswerInput{
		{QuestionID: "q1", SelectedOptionIDs: []string{"o3"}},
	}, time.Now())
	if err != nil {
		t.Fatalf("score: %v", err)
	}

	if len(result.Results) != 1 || result.Results[0].IsCorrect {
		t.Fatalf("expected one incorrect entry, got %+v", result.Results)
	}
	if result.UnansweredCount != 1 || result.AnsweredCount != 1 {
		t.Fatalf("expected 1 answered 1 unanswered, got %d/%d",
			result.AnsweredCount, result.UnansweredCount)
	}
	if result.Score != 0 || result.Percentage != 0 || result.Grade != "F" || result.Passed {
		t.Fatalf("expected zero score grade F, got %+v", result)
	}
}

func TestScoreSubmissionOrderInvariant(t *testing.T) {
	quiz := scoringQuiz()
	answers := []domain.AnswerInput{
		{QuestionID: "q1", SelectedOptionIDs: []string{"o2"}},
		{QuestionID: "q2", SelectedOptionIDs: []string{"m3"}},
	}
	reversed := []domain.AnswerInput{answers[1], answers[0]}

	a, err := app.ScoreSubmission(quiz, answers, time.Now())
	if err != nil {
		t.Fatalf("score: %v", err)
	}
	b, err := app.ScoreSubmission(quiz, reversed, time.Now())
	if err != nil {
		t.Fatalf("score reversed: %v", err)
	}

	if a.Score != b.Score || a.Percentage != b.Percentage || a.Grade != b.Grade {
		t.Fatalf("answer order changed the outcome: %+v vs %+v", a, b)
	}
}

func TestScoreSubmissionRejectsUnknownOption(t *testing.T) {
	quiz := scoringQuiz()

	_, err := app.ScoreSubmission(quiz, []domain.AnswerInput{
		{QuestionID: "q1", SelectedOptionIDs: []string{"bogus"}},
	}, time.Now())
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	want := "Invalid option id bogus for question q1"
	if err.Error() != want {
		t.Fatalf("expected %q, got %q", want, err.Error())
	}
}

func TestScoreSubmissionResolvesOptionRefs(t *testing.T) {
	quiz := scoringQuiz()

	result, err := app.ScoreSubmission(quiz, []domain.AnswerInput{
		{QuestionID: "q2", SelectedOptionIDs: []string{"m2", "m2", "m1"}},
	}, time.Now())
	if err != nil {
		t.Fatalf("score: %v", err)
	}

	entry := result.Results[0]
	if len(entry.SelectedOptionIDs) != 2 {
		t.Fatalf("expected deduped selection, got %v", entry.SelectedOptionIDs)
	}
	if len(entry.SelectedOptions) != 2 || entry.SelectedOptions[0].Text != "3" {
		t.Fatalf("expected resolved selected options, got %+v", entry.SelectedOptions)
	}
	if len(entry.CorrectOptionIDs) != 2 || entry.CorrectOptionIDs[0] != "m1" {
		t.Fatalf("expected full correct set, got %v", entry.CorrectOptionIDs)
	}
	if len(entry.CorrectOptions) != 2 || entry.CorrectOptions[1].Text != "3" {
		t.Fatalf("expected resolved correct options, got %+v", entry.CorrectOptions)
	}
	if !entry.IsCorrect {
		t.Fatalf("deduped exact set should be correct")
	}
}
