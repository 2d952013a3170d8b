package authors

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/bibliocat/bibliocat/pkg/errcodes"
	"github.com/bibliocat/bibliocat/pkg/models"
	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

type RetrieveAuthorOptions struct {
	ID   *int
	Name *string

	// IncludeBooks loads the author's books ordered by title.
	IncludeBooks bool
}

type Service struct {
	db *bun.DB
}

func NewService(db *bun.DB) *Service {
	return &Service{db}
}

func (svc *Service) CreateAuthor(ctx context.Context, author *models.Author) error {
	now := time.Now()
	if author.CreatedAt.IsZero() {
		author.CreatedAt = now
	}
	author.UpdatedAt = author.CreatedAt

	_, err := svc.db.
		NewInsert().
		Model(author).
		Returning("*").
		Exec(ctx)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint") {
			return errcodes.Conflict("Author")
		}
		return errors.WithStack(err)
	}
	return nil
}

// CreateAuthors inserts a batch of authors in a single statement.
func (svc *Service) CreateAuthors(ctx context.Context, authorList []*models.Author) error {
	if len(authorList) == 0 {
		return nil
	}

	now := time.Now()
	for _, author := range authorList {
		if author.CreatedAt.IsZero() {
			author.CreatedAt = now
		}
		author.UpdatedAt = author.CreatedAt
	}

	_, err := svc.db.
		NewInsert().
		Model(&authorList).
		Returning("*").
		Exec(ctx)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint") {
			return errcodes.Conflict("Author")
		}
		return errors.WithStack(err)
	}
	return nil
}

func (svc *Service) RetrieveAuthor(ctx context.Context, opts RetrieveAuthorOptions) (*models.Author, error) {
	author := &models.Author{}

	q := svc.db.
		NewSelect().
		Model(author)

	if opts.IncludeBooks {
		q = q.Relation("Books", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Order("title ASC")
		})
	}

	if opts.ID != nil {
		q = q.Where("a.id = ?", *opts.ID)
	}
	if opts.Name != nil {
		// Case-insensitive match
		q = q.Where("LOWER(a.name) = LOWER(?)", *opts.Name)
	}

	err := q.Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errcodes.NotFound("Author")
		}
		return nil, errors.WithStack(err)
	}

	return author, nil
}

// RetrieveAuthorByID retrieves an author by its ID.
func (svc *Service) RetrieveAuthorByID(ctx context.Context, id int) (*models.Author, error) {
	return svc.RetrieveAuthor(ctx, RetrieveAuthorOptions{ID: &id})
}

func (svc *Service) ListAuthors(ctx context.Context) ([]*models.Author, error) {
	var authorList []*models.Author

	err := svc.db.
		NewSelect().
		Model(&authorList).
		Order("a.name ASC").
		Scan(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return authorList, nil
}
