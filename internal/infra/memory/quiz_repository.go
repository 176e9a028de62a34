package memory

import (
	"context"
	"sync"

	"quizforge-service/internal/domain"
)

// QuizRepository is the in-memory implementation of app.QuizRepository:
// a single mutex-guarded table holding every quiz for the process lifetime.
// Listing follows insertion order.
type QuizRepository struct {
	mu      sync.RWMutex
	quizzes map[string]domain.Quiz
	order   []string
}

func NewQuizRepository() *QuizRepository {
	return &QuizRepository{
		quizzes: make(map[string]domain.Quiz),
	}
}

func (r *QuizRepository) Create(_ context.Context, quiz domain.Quiz) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.quizzes[quiz.ID]; exists {
		return domain.NewValidationError("Quiz with id %s already exists", quiz.ID)
	}
	r.quizzes[quiz.ID] = cloneQuiz(quiz)
	r.order = append(r.order, quiz.ID)
	return nil
}

func (r *QuizRepository) Get(_ context.Context, quizID string) (domain.Quiz, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	quiz, ok := r.quizzes[quizID]
	if !ok {
		return domain.Quiz{}, domain.ErrQuizNotFound
	}
	return cloneQuiz(quiz), nil
}

func (r *QuizRepository) Update(_ context.Context, quiz domain.Quiz) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.quizzes[quiz.ID]; !ok {
		return domain.ErrQuizNotFound
	}
	r.quizzes[quiz.ID] = cloneQuiz(quiz)
	return nil
}

func (r *QuizRepository) List(_ context.Context) ([]domain.Quiz, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Quiz, 0, len(r.order))
	for _, id := range r.order {
		if quiz, ok := r.quizzes[id]; ok {
			out = append(out, cloneQuiz(quiz))
		}
	}
	return out, nil
}

func (r *QuizRepository) Delete(_ context.Context, quizID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.quizzes[quizID]; !ok {
		return domain.ErrQuizNotFound
	}
	delete(r.quizzes, quizID)
	for i, id := range r.order {
		if id == quizID {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// cloneQuiz detaches a quiz from the table so callers cannot alias the
// repository's own copy through shared slices.
func cloneQuiz(quiz domain.Quiz) domain.Quiz {
	out := quiz
	out.Questions = make([]domain.Question, len(quiz.Questions))
	for i, question := range quiz.Questions {
		cloned := question
		cloned.Options = make([]domain.Option, len(question.Options))
		copy(cloned.Options, question.Options)
		out.Questions[i] = cloned
	}
	return out
}
