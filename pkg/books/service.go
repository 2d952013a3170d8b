package books

import (
	"context"
	"database/sql"
	"time"

	"github.com/bibliocat/bibliocat/pkg/errcodes"
	"github.com/bibliocat/bibliocat/pkg/models"
	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

type RetrieveBookOptions struct {
	ID *int
}

type ListBooksOptions struct {
	// AuthorName filters by SQL LIKE pattern on the author's name. When set,
	// results are ordered by year ascending instead of the default
	// author-then-title order.
	AuthorName *string
}

type UpdateBookOptions struct {
	Columns []string
}

type Service struct {
	db *bun.DB
}

func NewService(db *bun.DB) *Service {
	return &Service{db}
}

// CreateBook persists a new book. The caller is responsible for resolving
// AuthorID against an existing author before the write.
func (svc *Service) CreateBook(ctx context.Context, book *models.Book) error {
	now := time.Now()
	if book.CreatedAt.IsZero() {
		book.CreatedAt = now
	}
	book.UpdatedAt = book.CreatedAt

	_, err := svc.db.
		NewInsert().
		Model(book).
		Returning("*").
		Exec(ctx)
	return errors.WithStack(err)
}

// CreateBooks inserts a batch of books in a single statement.
func (svc *Service) CreateBooks(ctx context.Context, bookList []*models.Book) error {
	if len(bookList) == 0 {
		return nil
	}

	now := time.Now()
	for _, book := range bookList {
		if book.CreatedAt.IsZero() {
			book.CreatedAt = now
		}
		book.UpdatedAt = book.CreatedAt
	}

	_, err := svc.db.
		NewInsert().
		Model(&bookList).
		Returning("*").
		Exec(ctx)
	return errors.WithStack(err)
}

func (svc *Service) RetrieveBook(ctx context.Context, opts RetrieveBookOptions) (*models.Book, error) {
	book := &models.Book{}

	q := svc.db.
		NewSelect().
		Model(book).
		Relation("Author")

	if opts.ID != nil {
		q = q.Where("b.id = ?", *opts.ID)
	}

	err := q.Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errcodes.NotFound("Book")
		}
		return nil, errors.WithStack(err)
	}

	return book, nil
}

// RetrieveBookByID retrieves a book by its ID with its author loaded.
func (svc *Service) RetrieveBookByID(ctx context.Context, id int) (*models.Book, error) {
	return svc.RetrieveBook(ctx, RetrieveBookOptions{ID: &id})
}

// ListBooks returns books with their author joined. Books whose author row is
// missing are dropped by the join rather than erroring; the schema's foreign
// key keeps that from happening in practice.
func (svc *Service) ListBooks(ctx context.Context, opts ListBooksOptions) ([]*models.Book, error) {
	var bookList []*models.Book

	q := svc.db.
		NewSelect().
		Model(&bookList).
		Relation("Author")

	if opts.AuthorName != nil {
		q = q.
			Where("author.name LIKE ?", *opts.AuthorName).
			Order("b.year ASC")
	} else {
		// Deterministic catalog order
		q = q.Order("author.name ASC", "b.title ASC")
	}

	err := q.Scan(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return bookList, nil
}

// UpdateBook writes only the named columns; everything else keeps its
// persisted value.
func (svc *Service) UpdateBook(ctx context.Context, book *models.Book, opts UpdateBookOptions) error {
	if len(opts.Columns) == 0 {
		return nil
	}

	now := time.Now()
	book.UpdatedAt = now
	// Don't append into the caller's slice.
	columns := make([]string, 0, len(opts.Columns)+1)
	columns = append(columns, opts.Columns...)
	columns = append(columns, "updated_at")

	result, err := svc.db.
		NewUpdate().
		Model(book).
		Column(columns...).
		WherePK().
		Exec(ctx)
	if err != nil {
		return errors.WithStack(err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return errors.WithStack(err)
	}
	if n == 0 {
		return errcodes.NotFound("Book")
	}
	return nil
}

// DeleteBook removes the book if present. The associated author is never
// touched.
func (svc *Service) DeleteBook(ctx context.Context, bookID int) error {
	result, err := svc.db.
		NewDelete().
		Model((*models.Book)(nil)).
		Where("id = ?", bookID).
		Exec(ctx)
	if err != nil {
		return errors.WithStack(err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return errors.WithStack(err)
	}
	if n == 0 {
		return errcodes.NotFound("Book")
	}
	return nil
}
