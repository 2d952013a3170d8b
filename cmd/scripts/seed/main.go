package main

import (
	"context"
	"fmt"

	"github.com/bibliocat/bibliocat/pkg/authors"
	"github.com/bibliocat/bibliocat/pkg/books"
	"github.com/bibliocat/bibliocat/pkg/config"
	"github.com/bibliocat/bibliocat/pkg/database"
	"github.com/bibliocat/bibliocat/pkg/migrations"
	"github.com/bibliocat/bibliocat/pkg/models"
	"github.com/robinjoseph08/golib/logger"
)

func intptr(v int) *int {
	return &v
}

// Seeds the demo catalog and prints every book's summary line.
func main() {
	ctx := context.Background()
	log := logger.New()

	cfg, err := config.New()
	if err != nil {
		log.Err(err).Fatal("config error")
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Err(err).Fatal("database error")
	}
	defer db.Close()

	if _, err := migrations.BringUpToDate(ctx, db); err != nil {
		log.Err(err).Fatal("migrations error")
	}

	authorService := authors.NewService(db)
	bookService := books.NewService(db)

	authorList := []*models.Author{
		{Name: "Gabriel García Márquez"},
		{Name: "Isabel Allende"},
		{Name: "Jorge Luis Borges"},
	}
	if err := authorService.CreateAuthors(ctx, authorList); err != nil {
		log.Err(err).Fatal("seed authors error")
	}

	bookList := []*models.Book{
		{Title: "Cien años de soledad", Year: intptr(1967), AuthorID: authorList[0].ID},
		{Title: "El amor en los tiempos del cólera", Year: intptr(1985), AuthorID: authorList[0].ID},
		{Title: "La casa de los espíritus", Year: intptr(1982), AuthorID: authorList[1].ID},
		{Title: "Paula", Year: intptr(1994), AuthorID: authorList[1].ID},
		{Title: "Ficciones", Year: intptr(1944), AuthorID: authorList[2].ID},
		{Title: "El Aleph", Year: intptr(1949), AuthorID: authorList[2].ID},
	}
	if err := bookService.CreateBooks(ctx, bookList); err != nil {
		log.Err(err).Fatal("seed books error")
	}

	seeded, err := bookService.ListBooks(ctx, books.ListBooksOptions{})
	if err != nil {
		log.Err(err).Fatal("list books error")
	}

	for _, b := range seeded {
		fmt.Println(b.Summary())
	}

	log.Info("catalog seeded", logger.Data{"authors": len(authorList), "books": len(bookList)})
}
