package papers

import "context"

// Repo defines persistence operations for test papers and submissions.
type Repo interface {
	Create(ctx context.Context, paper TestPaper) error
	GetByID(ctx context.Context, userId, paperID string) (TestPaper, error)
	ListByUser(ctx context.Context, userId string, limit, offset int) ([]TestPaper, error)
	Update(ctx context.Context, paper TestPaper) error
	CreateSubmission(ctx context.Context, sub Submission) error
	ListSubmissions(ctx context.Context, userId, paperID string) ([]Submission, error)
}
