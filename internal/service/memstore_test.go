package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"quiz-prep/internal/domain"
	"quiz-prep/internal/util"
)

// memStore is an in-memory stand-in for every repository the services use. Its
// WithTransaction restores the previous state when fn fails.
type memStore struct {
	mu       sync.Mutex
	users    map[string]domain.User
	attempts map[string]domain.QuizAttempt
	answers  map[string][]domain.QuestionAttempt
	progress map[string]domain.UserProgress
	sessions map[string]map[time.Time]domain.StudySession
	payments []domain.Payment
	chapters []domain.Chapter

	saveProgressErr error
}

func newMemStore() *memStore {
	return &memStore{
		users:    map[string]domain.User{},
		attempts: map[string]domain.QuizAttempt{},
		answers:  map[string][]domain.QuestionAttempt{},
		progress: map[string]domain.UserProgress{},
		sessions: map[string]map[time.Time]domain.StudySession{},
	}
}

type memSnapshot struct {
	attempts map[string]domain.QuizAttempt
	answers  map[string][]domain.QuestionAttempt
	progress map[string]domain.UserProgress
	sessions map[string]map[time.Time]domain.StudySession
}

func (s *memStore) snapshot() memSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := memSnapshot{
		attempts: make(map[string]domain.QuizAttempt, len(s.attempts)),
		answers:  make(map[string][]domain.QuestionAttempt, len(s.answers)),
		progress: make(map[string]domain.UserProgress, len(s.progress)),
		sessions: make(map[string]map[time.Time]domain.StudySession, len(s.sessions)),
	}
	for k, v := range s.attempts {
		snap.attempts[k] = v
	}
	for k, v := range s.answers {
		snap.answers[k] = append([]domain.QuestionAttempt(nil), v...)
	}
	for k, v := range s.progress {
		snap.progress[k] = v
	}
	for k, days := range s.sessions {
		cp := make(map[time.Time]domain.StudySession, len(days))
		for d, sess := range days {
			cp[d] = sess
		}
		snap.sessions[k] = cp
	}
	return snap
}

func (s *memStore) restore(snap memSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.attempts = snap.attempts
	s.answers = snap.answers
	s.progress = snap.progress
	s.sessions = snap.sessions
}

func (s *memStore) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	snap := s.snapshot()
	if err := fn(ctx); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

func (s *memStore) addUser(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[id] = domain.User{ID: id, ExternalID: "ext-" + id, Email: id + "@example.com"}
}

func (s *memStore) addChapter(id, title string) domain.Chapter {
	s.mu.Lock()
	defer s.mu.Unlock()
	ch := domain.Chapter{ID: id, Title: title, Order: len(s.chapters) + 1}
	s.chapters = append(s.chapters, ch)
	return ch
}

// --- domain.UserRepository ---

func (s *memStore) CreateUser(ctx context.Context, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if user.ID == "" {
		user.ID = util.NewULID()
	}
	s.users[user.ID] = *user
	return nil
}

func (s *memStore) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[userID]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (s *memStore) GetUserByExternalID(ctx context.Context, externalID string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.ExternalID == externalID {
			found := u
			return &found, nil
		}
	}
	return nil, nil
}

func (s *memStore) UpdateUser(ctx context.Context, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[user.ID] = *user
	return nil
}

// --- domain.QuizAttemptRepository ---

func (s *memStore) CreateAttempt(ctx context.Context, attempt *domain.QuizAttempt) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if attempt.ID == "" {
		attempt.ID = util.NewULID()
	}
	s.attempts[attempt.ID] = *attempt
	return nil
}

func (s *memStore) GetAttemptByID(ctx context.Context, attemptID string) (*domain.QuizAttempt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.attempts[attemptID]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

func (s *memStore) GetAttemptByIDForUpdate(ctx context.Context, attemptID string) (*domain.QuizAttempt, error) {
	return s.GetAttemptByID(ctx, attemptID)
}

func (s *memStore) UpdateAttempt(ctx context.Context, attempt *domain.QuizAttempt) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.attempts[attempt.ID]; !ok {
		return domain.NewAttemptNotFoundError(attempt.ID)
	}
	s.attempts[attempt.ID] = *attempt
	return nil
}

func (s *memStore) completedLocked(userID string) []domain.QuizAttempt {
	var out []domain.QuizAttempt
	for _, a := range s.attempts {
		if a.UserID == userID && a.IsCompleted {
			out = append(out, a)
		}
	}
	return out
}

func (s *memStore) AggregateCompleted(ctx context.Context, userID string) (*domain.AttemptAggregate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	agg := &domain.AttemptAggregate{}
	sum := 0.0
	for _, a := range s.completedLocked(userID) {
		agg.CompletedAttempts++
		agg.TotalQuestions += a.TotalQuestions
		agg.TotalCorrect += a.CorrectAnswers
		sum += a.ScorePercentage
		if a.ScorePercentage > agg.BestScore {
			agg.BestScore = a.ScorePercentage
		}
	}
	if agg.CompletedAttempts > 0 {
		agg.AverageScore = sum / float64(agg.CompletedAttempts)
	}
	return agg, nil
}

func (s *memStore) CountCompletedSince(ctx context.Context, userID string, since *time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, a := range s.completedLocked(userID) {
		if since == nil || (a.CompletedAt != nil && !a.CompletedAt.Before(*since)) {
			n++
		}
	}
	return n, nil
}

func (s *memStore) CountRecentCompleted(ctx context.Context, userID string, limit int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := len(s.completedLocked(userID))
	if n > limit {
		n = limit
	}
	return n, nil
}

func (s *memStore) chapterTitleLocked(id string) string {
	for _, ch := range s.chapters {
		if ch.ID == id {
			return ch.Title
		}
	}
	return ""
}

func (s *memStore) GetFavoriteChapterTitle(ctx context.Context, userID string) (*string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	counts := map[string]int{}
	for _, a := range s.completedLocked(userID) {
		if a.ChapterID != nil {
			counts[s.chapterTitleLocked(*a.ChapterID)]++
		}
	}
	if len(counts) == 0 {
		return nil, nil
	}
	titles := make([]string, 0, len(counts))
	for t := range counts {
		titles = append(titles, t)
	}
	sort.Slice(titles, func(i, j int) bool {
		if counts[titles[i]] != counts[titles[j]] {
			return counts[titles[i]] > counts[titles[j]]
		}
		return titles[i] < titles[j]
	})
	return &titles[0], nil
}

func (s *memStore) GetChapterProgress(ctx context.Context, userID string) ([]domain.ChapterProgress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []domain.ChapterProgress{}
	for _, ch := range s.chapters {
		cp := domain.ChapterProgress{ChapterID: ch.ID, ChapterTitle: ch.Title}
		sum := 0.0
		for _, a := range s.completedLocked(userID) {
			if a.ChapterID == nil || *a.ChapterID != ch.ID {
				continue
			}
			cp.Attempts++
			sum += a.ScorePercentage
			if a.ScorePercentage > cp.BestScore {
				cp.BestScore = a.ScorePercentage
			}
		}
		if cp.Attempts > 0 {
			cp.AverageScore = sum / float64(cp.Attempts)
			out = append(out, cp)
		}
	}
	return out, nil
}

// --- domain.QuestionAttemptRepository ---

func (s *memStore) CreateQuestionAttempt(ctx context.Context, qa *domain.QuestionAttempt) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if qa.ID == "" {
		qa.ID = util.NewULID()
	}
	s.answers[qa.QuizAttemptID] = append(s.answers[qa.QuizAttemptID], *qa)
	return nil
}

func (s *memStore) GetByAttemptID(ctx context.Context, attemptID string) ([]domain.QuestionAttempt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.QuestionAttempt{}, s.answers[attemptID]...), nil
}

// --- domain.UserProgressRepository ---

func (s *memStore) GetByUserID(ctx context.Context, userID string) (*domain.UserProgress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.progress[userID]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (s *memStore) GetByUserIDForUpdate(ctx context.Context, userID string) (*domain.UserProgress, error) {
	return s.GetByUserID(ctx, userID)
}

func (s *memStore) SaveProgress(ctx context.Context, progress *domain.UserProgress) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveProgressErr != nil {
		return s.saveProgressErr
	}
	if progress.ID == "" {
		progress.ID = util.NewULID()
	}
	s.progress[progress.UserID] = *progress
	return nil
}

// --- domain.StudySessionRepository ---

func (s *memStore) RecordAttemptStart(ctx context.Context, userID string, day time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	day = util.StartOfDayUTC(day)
	days, ok := s.sessions[userID]
	if !ok {
		days = map[time.Time]domain.StudySession{}
		s.sessions[userID] = days
	}
	sess, ok := days[day]
	if !ok {
		sess = domain.StudySession{ID: util.NewULID(), UserID: userID, SessionDate: day}
	}
	sess.QuizAttemptsCount++
	days[day] = sess
	return nil
}

func (s *memStore) AddCompletedTotals(ctx context.Context, userID string, day time.Time, questions, correct, durationSeconds int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	day = util.StartOfDayUTC(day)
	sess, ok := s.sessions[userID][day]
	if !ok {
		return nil
	}
	sess.TotalQuestions += questions
	sess.TotalCorrect += correct
	sess.SessionDurationSeconds += durationSeconds
	s.sessions[userID][day] = sess
	return nil
}

func (s *memStore) ListSessionDates(ctx context.Context, userID string) ([]time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	dates := make([]time.Time, 0, len(s.sessions[userID]))
	for d := range s.sessions[userID] {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].After(dates[j]) })
	return dates, nil
}

func (s *memStore) addSession(userID string, day time.Time) {
	_ = s.RecordAttemptStart(context.Background(), userID, day)
}

func (s *memStore) session(userID string, day time.Time) (domain.StudySession, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[userID][util.StartOfDayUTC(day)]
	return sess, ok
}

// --- domain.PaymentRepository ---

func (s *memStore) GetActivePayment(ctx context.Context, userID string, now time.Time) (*domain.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var latest *domain.Payment
	for i := range s.payments {
		p := s.payments[i]
		if p.UserID != userID || !p.IsActive(now) {
			continue
		}
		if latest == nil || p.CreatedAt.After(latest.CreatedAt) {
			latest = &p
		}
	}
	return latest, nil
}
