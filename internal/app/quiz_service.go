package app

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"quizforge-service/internal/domain"
)

// QuizRepository abstracts how quizzes are stored (in-memory, Redis, etc).
// The repository exclusively owns all stored quizzes; callers receive and
// hand back detached values.
type QuizRepository interface {
	Create(ctx context.Context, quiz domain.Quiz) error
	Get(ctx context.Context, quizID string) (domain.Quiz, error)
	Update(ctx context.Context, quiz domain.Quiz) error
	List(ctx context.Context) ([]domain.Quiz, error)
	Delete(ctx context.Context, quizID string) error
}

// QuizService contains the quiz authoring and taking use cases.
type QuizService struct {
	quizzes   QuizRepository
	feed      *ResultFeed
	now       func() time.Time
	newID     func() string
	startedAt time.Time
	stats     singleflight.Group
}

func NewQuizService(quizzes QuizRepository, feed *ResultFeed) *QuizService {
	return NewQuizServiceWithClock(quizzes, feed, time.Now, uuid.NewString)
}

// NewQuizServiceWithClock allows deterministic timestamps and ids in tests.
func NewQuizServiceWithClock(quizzes QuizRepository, feed *ResultFeed, now func() time.Time, newID func() string) *QuizService {
	return &QuizService{
		quizzes:   quizzes,
		feed:      feed,
		now:       now,
		newID:     newID,
		startedAt: now(),
	}
}

// CreateQuiz validates the title and stores a new quiz with no questions.
func (s *QuizService) CreateQuiz(ctx context.Context, title string) (domain.Quiz, error) {
	clean, err := ValidateQuizTitle(title)
	if err != nil {
		return domain.Quiz{}, err
	}

	now := s.now()
	quiz := domain.Quiz{
		ID:        s.newID(),
		Title:     clean,
		Questions: []domain.Question{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.quizzes.Create(ctx, quiz); err != nil {
		return domain.Quiz{}, err
	}
	return quiz, nil
}

// GetQuiz loads one quiz by id.
func (s *QuizService) GetQuiz(ctx context.Context, quizID string) (domain.Quiz, error) {
	if err := requireQuizID(quizID); err != nil {
		return domain.Quiz{}, err
	}
	return s.quizzes.Get(ctx, quizID)
}

// ListQuizzes returns summaries in creation order.
func (s *QuizService) ListQuizzes(ctx context.Context) ([]domain.QuizSummary, error) {
	quizzes, err := s.quizzes.List(ctx)
	if err != nil {
		return nil, err
	}
	summaries := make([]domain.QuizSummary, 0, len(quizzes))
	for _, quiz := range quizzes {
		summaries = append(summaries, quiz.Summary())
	}
	return summaries, nil
}

// RenameQuiz updates the quiz title and advances its updatedAt.
func (s *QuizService) RenameQuiz(ctx context.Context, quizID, title string) (domain.Quiz, error) {
	if err := requireQuizID(quizID); err != nil {
		return domain.Quiz{}, err
	}
	clean, err := ValidateQuizTitle(title)
	if err != nil {
		return domain.Quiz{}, err
	}

	quiz, err := s.quizzes.Get(ctx, quizID)
	if err != nil {
		return domain.Quiz{}, err
	}
	quiz.Title = clean
	quiz.UpdatedAt = s.now()
	if err := s.quizzes.Update(ctx, quiz); err != nil {
		return domain.Quiz{}, err
	}
	return quiz, nil
}

// DeleteQuiz removes the quiz and, with it, all owned questions and options.
func (s *QuizService) DeleteQuiz(ctx context.Context, quizID string) error {
	if err := requireQuizID(quizID); err != nil {
		return err
	}
	return s.quizzes.Delete(ctx, quizID)
}

// AddQuestion validates the payload, appends the question to the quiz and
// advances updatedAt. A failed validation attaches nothing.
func (s *QuizService) AddQuestion(ctx context.Context, quizID string, input domain.QuestionInput) (domain.Question, error) {
	if err := requireQuizID(quizID); err != nil {
		return domain.Question{}, err
	}
	quiz, err := s.quizzes.Get(ctx, quizID)
	if err != nil {
		return domain.Question{}, err
	}

	now := s.now()
	question, err := BuildQuestion(input, s.newID, now)
	if err != nil {
		return domain.Question{}, err
	}

	quiz.Questions = append(quiz.Questions, question)
	quiz.UpdatedAt = now
	if err := s.quizzes.Update(ctx, quiz); err != nil {
		return domain.Question{}, err
	}
	return question, nil
}

// RemoveQuestion drops one question from the quiz.
func (s *QuizService) RemoveQuestion(ctx context.Context, quizID, questionID string) error {
	if err := requireQuizID(quizID); err != nil {
		return err
	}
	quiz, err := s.quizzes.Get(ctx, quizID)
	if err != nil {
		return err
	}
	if !quiz.RemoveQuestion(questionID) {
		return domain.ErrQuestionNotFound
	}
	quiz.UpdatedAt = s.now()
	return s.quizzes.Update(ctx, quiz)
}

// ListQuestions returns the answer-free projection of the quiz's questions.
// A quiz without questions is reported as not found rather than an empty list.
func (s *QuizService) ListQuestions(ctx context.Context, quizID string) ([]domain.QuestionView, error) {
	if err := requireQuizID(quizID); err != nil {
		return nil, err
	}
	quiz, err := s.quizzes.Get(ctx, quizID)
	if err != nil {
		return nil, err
	}
	if len(quiz.Questions) == 0 {
		return nil, domain.ErrQuizHasNoQuestions
	}
	views := make([]domain.QuestionView, 0, len(quiz.Questions))
	for _, question := range quiz.Questions {
		views = append(views, question.View())
	}
	return views, nil
}

// Submit validates and scores an answers payload against the quiz. The whole
// operation is atomic: any validation failure aborts before scoring.
func (s *QuizService) Submit(ctx context.Context, quizID string, answers []domain.AnswerInput) (domain.SubmissionResult, error) {
	if err := requireQuizID(quizID); err != nil {
		return domain.SubmissionResult{}, err
	}
	quiz, err := s.quizzes.Get(ctx, quizID)
	if err != nil {
		return domain.SubmissionResult{}, err
	}
	if err := ValidateSubmission(quiz, answers); err != nil {
		return domain.SubmissionResult{}, err
	}
	result, err := ScoreSubmission(quiz, answers, s.now())
	if err != nil {
		return domain.SubmissionResult{}, err
	}
	if s.feed != nil {
		s.feed.Publish(quiz.ID, result)
	}
	return result, nil
}

// Statistics aggregates per-quiz question counts. Concurrent requests for
// the same quiz share one computation.
func (s *QuizService) Statistics(ctx context.Context, quizID string) (domain.QuizStatistics, error) {
	if err := requireQuizID(quizID); err != nil {
		return domain.QuizStatistics{}, err
	}
	result, err, _ := s.stats.Do(quizID, func() (interface{}, error) {
		quiz, err := s.quizzes.Get(ctx, quizID)
		if err != nil {
			return domain.QuizStatistics{}, err
		}
		return computeStatistics(quiz), nil
	})
	if err != nil {
		return domain.QuizStatistics{}, err
	}
	return result.(domain.QuizStatistics), nil
}

// Health reports how many quizzes are held and the process uptime.
func (s *QuizService) Health(ctx context.Context) (domain.HealthStatus, error) {
	quizzes, err := s.quizzes.List(ctx)
	if err != nil {
		return domain.HealthStatus{}, err
	}
	return domain.HealthStatus{
		Status:        "ok",
		QuizCount:     len(quizzes),
		UptimeSeconds: int64(s.now().Sub(s.startedAt).Seconds()),
	}, nil
}

// requireQuizID distinguishes a missing id (caller-input problem) from an
// unknown id (absence problem).
func requireQuizID(quizID string) error {
	if strings.TrimSpace(quizID) == "" {
		return domain.NewValidationError("Quiz id is required")
	}
	return nil
}
