package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"quizforge-service/internal/domain"
)

// QuizRepository stores quizzes in Redis as JSON blobs, one key per quiz,
// with a list tracking insertion order for listing:
//
//	SET   quiz:{quizID}        {json}
//	RPUSH quiz:index           {quizID}
type QuizRepository struct {
	client *redis.Client
}

func NewQuizRepository(client *redis.Client) *QuizRepository {
	return &QuizRepository{client: client}
}

const indexKey = "quiz:index"

func quizKey(quizID string) string {
	return "quiz:" + quizID
}

func (r *QuizRepository) Create(ctx context.Context, quiz domain.Quiz) error {
	raw, err := json.Marshal(quiz)
	if err != nil {
		return fmt.Errorf("marshal quiz: %w", err)
	}
	set, err := r.client.SetNX(ctx, quizKey(quiz.ID), raw, 0).Result()
	if err != nil {
		return fmt.Errorf("store quiz: %w", err)
	}
	if !set {
		return domain.NewValidationError("Quiz with id %s already exists", quiz.ID)
	}
	if err := r.client.RPush(ctx, indexKey, quiz.ID).Err(); err != nil {
		return fmt.Errorf("index quiz: %w", err)
	}
	return nil
}

func (r *QuizRepository) Get(ctx context.Context, quizID string) (domain.Quiz, error) {
	raw, err := r.client.Get(ctx, quizKey(quizID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.Quiz{}, domain.ErrQuizNotFound
	}
	if err != nil {
		return domain.Quiz{}, fmt.Errorf("load quiz: %w", err)
	}
	var quiz domain.Quiz
	if err := json.Unmarshal(raw, &quiz); err != nil {
		return domain.Quiz{}, fmt.Errorf("unmarshal quiz: %w", err)
	}
	return quiz, nil
}

func (r *QuizRepository) Update(ctx context.Context, quiz domain.Quiz) error {
	exists, err := r.client.Exists(ctx, quizKey(quiz.ID)).Result()
	if err != nil {
		return fmt.Errorf("check quiz: %w", err)
	}
	if exists == 0 {
		return domain.ErrQuizNotFound
	}
	raw, err := json.Marshal(quiz)
	if err != nil {
		return fmt.Errorf("marshal quiz: %w", err)
	}
	if err := r.client.Set(ctx, quizKey(quiz.ID), raw, 0).Err(); err != nil {
		return fmt.Errorf("store quiz: %w", err)
	}
	return nil
}

func (r *QuizRepository) List(ctx context.Context) ([]domain.Quiz, error) {
	ids, err := r.client.LRange(ctx, indexKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("list quiz index: %w", err)
	}
	out := make([]domain.Quiz, 0, len(ids))
	for _, id := range ids {
		quiz, err := r.Get(ctx, id)
		if errors.Is(err, domain.ErrQuizNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, quiz)
	}
	return out, nil
}

func (r *QuizRepository) Delete(ctx context.Context, quizID string) error {
	deleted, err := r.client.Del(ctx, quizKey(quizID)).Result()
	if err != nil {
		return fmt.Errorf("delete quiz: %w", err)
	}
	if deleted == 0 {
		return domain.ErrQuizNotFound
	}
	if err := r.client.LRem(ctx, indexKey, 0, quizID).Err(); err != nil {
		return fmt.Errorf("unindex quiz: %w", err)
	}
	return nil
}
