package authors

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/bibliocat/bibliocat/pkg/binder"
	"github.com/bibliocat/bibliocat/pkg/errcodes"
	"github.com/bibliocat/bibliocat/pkg/models"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthorsTestContext(t *testing.T, method, payload, path string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	b, err := binder.New()
	require.NoError(t, err)
	e.Binder = b
	e.HTTPErrorHandler = errcodes.NewHandler().Handle

	req := httptest.NewRequest(method, path, strings.NewReader(payload))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rr := httptest.NewRecorder()
	return e.NewContext(req, rr), rr
}

func TestHandlerCreate_ReturnsCreatedAuthor(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	h := &handler{authorService: NewService(db)}

	c, rr := newAuthorsTestContext(t, http.MethodPost, `{"name":"Ernest Hemingway"}`, "/authors")

	err := h.create(c)
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, rr.Code)

	var created models.Author
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &created))
	assert.NotZero(t, created.ID)
	assert.Equal(t, "Ernest Hemingway", created.Name)
}

func TestHandlerCreate_EmptyPayloadFailsValidation(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	h := &handler{authorService: NewService(db)}

	c, _ := newAuthorsTestContext(t, http.MethodPost, `{}`, "/authors")

	err := h.create(c)
	require.Error(t, err)

	var codeErr *errcodes.Error
	require.ErrorAs(t, err, &codeErr)
	assert.Equal(t, http.StatusBadRequest, codeErr.HTTPCode)
	assert.Equal(t, `"name" is required`, codeErr.Message)

	// Nothing was persisted
	listed, err := h.authorService.ListAuthors(context.Background())
	require.NoError(t, err)
	assert.Empty(t, listed)
}

func TestHandlerCreate_ExtraFieldRejected(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	h := &handler{authorService: NewService(db)}

	c, _ := newAuthorsTestContext(t, http.MethodPost, `{"name":"Hemingway","age":61}`, "/authors")

	err := h.create(c)
	require.Error(t, err)

	var codeErr *errcodes.Error
	require.ErrorAs(t, err, &codeErr)
	assert.Equal(t, http.StatusBadRequest, codeErr.HTTPCode)
	assert.Equal(t, "unknown_parameter", codeErr.Code)

	listed, err := h.authorService.ListAuthors(context.Background())
	require.NoError(t, err)
	assert.Empty(t, listed)
}

func TestHandlerCreate_DuplicateNameConflicts(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	h := &handler{authorService: NewService(db)}

	err := h.authorService.CreateAuthor(context.Background(), &models.Author{Name: "Isabel Allende"})
	require.NoError(t, err)

	c, _ := newAuthorsTestContext(t, http.MethodPost, `{"name":"Isabel Allende"}`, "/authors")

	err = h.create(c)
	require.Error(t, err)

	var codeErr *errcodes.Error
	require.ErrorAs(t, err, &codeErr)
	assert.Equal(t, http.StatusConflict, codeErr.HTTPCode)
}

func TestHandlerRetrieve_IncludesBooks(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	h := &handler{authorService: NewService(db)}
	ctx := context.Background()

	author := &models.Author{Name: "Jorge Luis Borges"}
	require.NoError(t, h.authorService.CreateAuthor(ctx, author))

	year := 1944
	book := &models.Book{Title: "Ficciones", Year: &year, AuthorID: author.ID}
	_, err := db.NewInsert().Model(book).Returning("*").Exec(ctx)
	require.NoError(t, err)

	c, rr := newAuthorsTestContext(t, http.MethodGet, "", "/authors/"+strconv.Itoa(author.ID))
	c.SetPath("/authors/:id")
	c.SetParamNames("id")
	c.SetParamValues(strconv.Itoa(author.ID))

	err = h.retrieve(c)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rr.Code)

	var response struct {
		ID    int            `json:"id"`
		Name  string         `json:"name"`
		Books []*models.Book `json:"books"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &response))
	assert.Equal(t, author.ID, response.ID)
	require.Len(t, response.Books, 1)
	assert.Equal(t, "Ficciones", response.Books[0].Title)
}

func TestHandlerRetrieve_NoBooksIsEmptyArray(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	h := &handler{authorService: NewService(db)}
	ctx := context.Background()

	author := &models.Author{Name: "Isabel Allende"}
	require.NoError(t, h.authorService.CreateAuthor(ctx, author))

	c, rr := newAuthorsTestContext(t, http.MethodGet, "", "/authors/"+strconv.Itoa(author.ID))
	c.SetPath("/authors/:id")
	c.SetParamNames("id")
	c.SetParamValues(strconv.Itoa(author.ID))

	require.NoError(t, h.retrieve(c))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"books":[]`)
}

func TestHandlerRetrieve_NotFound(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	h := &handler{authorService: NewService(db)}

	c, _ := newAuthorsTestContext(t, http.MethodGet, "", "/authors/999")
	c.SetPath("/authors/:id")
	c.SetParamNames("id")
	c.SetParamValues("999")

	err := h.retrieve(c)
	require.Error(t, err)
	assert.ErrorIs(t, err, errcodes.NotFound("Author"))
}

func TestHandlerList_ReturnsAllAuthors(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	h := &handler{authorService: NewService(db)}
	ctx := context.Background()

	require.NoError(t, h.authorService.CreateAuthors(ctx, []*models.Author{
		{Name: "Gabriel García Márquez"},
		{Name: "Isabel Allende"},
	}))

	c, rr := newAuthorsTestContext(t, http.MethodGet, "", "/authors")

	require.NoError(t, h.list(c))
	assert.Equal(t, http.StatusOK, rr.Code)

	var listed []*models.Author
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &listed))
	assert.Len(t, listed, 2)
}
