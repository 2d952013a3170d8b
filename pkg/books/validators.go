package books

// CreateBookPayload is the request body for creating a book. Year, when
// present, must be a plausible publication year.
type CreateBookPayload struct {
	Title    string `json:"title" mod:"trim" validate:"required,min=1,max=500"`
	AuthorID int    `json:"author_id" validate:"required,min=1"`
	Year     *int   `json:"year,omitempty" validate:"omitempty,min=1000"`
}

// UpdateBookPayload is the request body for partially updating a book. Only
// supplied fields are written.
type UpdateBookPayload struct {
	Title *string `json:"title,omitempty" mod:"trim" validate:"omitempty,min=1,max=500"`
	Year  *int    `json:"year,omitempty" validate:"omitempty,min=1000"`
}

// ListBooksQuery holds the query parameters for listing books.
type ListBooksQuery struct {
	// Author filters by author name; SQL LIKE wildcards are honored.
	Author *string `query:"author" json:"author,omitempty" validate:"omitempty,max=300"`
}
