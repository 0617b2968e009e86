package papers

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu     sync.RWMutex
	papers map[string][]TestPaper  // userId -> papers
	subs   map[string][]Submission // paperId -> submissions
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		papers: make(map[string][]TestPaper),
		subs:   make(map[string][]Submission),
	}
}

// Create stores a paper.
func (r *MemoryRepo) Create(ctx context.Context, paper TestPaper) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.papers[paper.UserID] = append(r.papers[paper.UserID], paper)
	return nil
}

// GetByID returns a paper by ID for a user.
func (r *MemoryRepo) GetByID(ctx context.Context, userId, paperID string) (TestPaper, error) {
	if err := ctx.Err(); err != nil {
		return TestPaper{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.papers[userId] {
		if p.ID == paperID {
			return p, nil
		}
	}
	return TestPaper{}, ErrNotFound
}

// ListByUser returns papers for a user, newest first, honoring limit/offset.
func (r *MemoryRepo) ListByUser(ctx context.Context, userId string, limit, offset int) ([]TestPaper, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if offset < 0 {
		offset = 0
	}
	if limit < 0 {
		limit = 0
	}

	r.mu.RLock()
	userPapers := r.papers[userId]
	r.mu.RUnlock()

	if len(userPapers) == 0 || offset >= len(userPapers) {
		return []TestPaper{}, nil
	}

	out := make([]TestPaper, len(userPapers))
	copy(out, userPapers)
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	end := len(out)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return out[offset:end], nil
}

// Update replaces a stored paper.
func (r *MemoryRepo) Update(ctx context.Context, paper TestPaper) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	userPapers := r.papers[paper.UserID]
	for i := range userPapers {
		if userPapers[i].ID == paper.ID {
			userPapers[i] = paper
			r.papers[paper.UserID] = userPapers
			return nil
		}
	}
	return ErrNotFound
}

// CreateSubmission stores a submission.
func (r *MemoryRepo) CreateSubmission(ctx context.Context, sub Submission) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.subs[sub.PaperID] = append(r.subs[sub.PaperID], sub)
	return nil
}

// ListSubmissions returns a user's submissions for a paper, newest first.
func (r *MemoryRepo) ListSubmissions(ctx context.Context, userId, paperID string) ([]Submission, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []Submission{}
	for _, sub := range r.subs[paperID] {
		if sub.UserID == userId {
			out = append(out, sub)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}
