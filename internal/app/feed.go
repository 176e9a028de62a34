package app

import (
	"sync"

	"quizforge-service/internal/domain"
)

// ResultFeed fans out scored submission results to live subscribers, one
// stream per quiz. Subscribers that fall behind lose the oldest update
// rather than blocking publishers.
type ResultFeed struct {
	mu          sync.Mutex
	subscribers map[string]map[chan domain.SubmissionResult]struct{}
}

func NewResultFeed() *ResultFeed {
	return &ResultFeed{
		subscribers: make(map[string]map[chan domain.SubmissionResult]struct{}),
	}
}

// Subscribe returns a channel that receives every scored submission for the
// quiz. The caller must invoke the returned cancel function to avoid leaks.
func (f *ResultFeed) Subscribe(quizID string) (<-chan domain.SubmissionResult, func()) {
	ch := make(chan domain.SubmissionResult, 8)

	f.mu.Lock()
	subs, ok := f.subscribers[quizID]
	if !ok {
		subs = make(map[chan domain.SubmissionResult]struct{})
		f.subscribers[quizID] = subs
	}
	subs[ch] = struct{}{}
	f.mu.Unlock()

	cancel := func() {
		f.mu.Lock()
		if subs, ok := f.subscribers[quizID]; ok {
			if _, live := subs[ch]; live {
				delete(subs, ch)
				close(ch)
				if len(subs) == 0 {
					delete(f.subscribers, quizID)
				}
			}
		}
		f.mu.Unlock()
	}
	return ch, cancel
}

// Publish delivers the result to every subscriber of the quiz.
func (f *ResultFeed) Publish(quizID string, result domain.SubmissionResult) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for ch := range f.subscribers[quizID] {
		select {
		case ch <- result:
		default:
			// drop the stale update so a slow client cannot block delivery
			select {
			case <-ch:
			default:
			}
			ch <- result
		}
	}
}
