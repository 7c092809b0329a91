package services

import (
	"context"
	"errors"

	"libraryhub/internal/adapters/persistence/models"
	"libraryhub/internal/adapters/persistence/repositories"
	"libraryhub/internal/core/domain"

	"gorm.io/gorm"
)

// BookService handles catalog management
type BookService struct {
	bookRepo   repositories.BookRepository
	borrowRepo repositories.BorrowRepository
}

// NewBookService creates a new book service
func NewBookService(bookRepo repositories.BookRepository, borrowRepo repositories.BorrowRepository) *BookService {
	return &BookService{
		bookRepo:   bookRepo,
		borrowRepo: borrowRepo,
	}
}

// BookInput represents book create/update input
type BookInput struct {
	Title           string  `json:"title" validate:"required,max=200"`
	Author          string  `json:"author" validate:"required,max=100"`
	ISBN            string  `json:"isbn" validate:"required,max=20"`
	Genre           string  `json:"genre"`
	Description     string  `json:"description"`
	PublishedYear   int     `json:"published_year"`
	Publisher       string  `json:"publisher"`
	TotalCopies     int     `json:"total_copies" validate:"min=0"`
	AvailableCopies int     `json:"available_copies" validate:"min=0"`
	Status          string  `json:"status" validate:"omitempty,oneof=available borrowed reserved"`
	ImageURL        *string `json:"image_url"`
}

// ListBooksOutput represents a paginated book listing
type ListBooksOutput struct {
	Books []*models.Book `json:"books"`
	Total int64          `json:"total"`
}

// ListAvailable lists books with available copies (public)
func (s *BookService) ListAvailable(ctx context.Context) ([]*models.Book, error) {
	return s.bookRepo.ListAvailable(ctx)
}

// List lists all books unfiltered (admin)
func (s *BookService) List(ctx context.Context, offset, limit int) (*ListBooksOutput, error) {
	books, total, err := s.bookRepo.List(ctx, offset, limit)
	if err != nil {
		return nil, err
	}
	return &ListBooksOutput{Books: books, Total: total}, nil
}

// Add adds a new book to the catalog
func (s *BookService) Add(ctx context.Context, input *BookInput) (*models.Book, error) {
	exists, err := s.bookRepo.ExistsByISBN(ctx, input.ISBN)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrISBNAlreadyExists
	}

	book := bookFromInput(input)
	if book.Status == "" {
		book.Status = models.BookStatusAvailable
	}

	if err := s.bookRepo.Create(ctx, book); err != nil {
		return nil, err
	}
	return book, nil
}

// Update replaces a book's fields. Changing the ISBN to one held by a
// different book is a conflict.
func (s *BookService) Update(ctx context.Context, id uint, input *BookInput) error {
	book, err := s.bookRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrBookNotFound
		}
		return err
	}

	if input.ISBN != book.ISBN {
		exists, err := s.bookRepo.ExistsByISBNExcept(ctx, input.ISBN, id)
		if err != nil {
			return err
		}
		if exists {
			return domain.ErrISBNAlreadyExists
		}
	}

	updated := bookFromInput(input)
	updated.ID = book.ID
	updated.CreatedAt = book.CreatedAt
	if updated.Status == "" {
		updated.Status = book.Status
	}

	return s.bookRepo.Update(ctx, updated)
}

// Delete removes a book. Books with an unreturned borrow cannot be deleted.
func (s *BookService) Delete(ctx context.Context, id uint) error {
	if _, err := s.bookRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrBookNotFound
		}
		return err
	}

	active, err := s.borrowRepo.CountActiveByBook(ctx, id)
	if err != nil {
		return err
	}
	if active > 0 {
		return domain.ErrBookStillBorrowed
	}

	return s.bookRepo.Delete(ctx, id)
}

func bookFromInput(input *BookInput) *models.Book {
	return &models.Book{
		Title:           input.Title,
		Author:          input.Author,
		ISBN:            input.ISBN,
		Genre:           input.Genre,
		Description:     input.Description,
		PublishedYear:   input.PublishedYear,
		Publisher:       input.Publisher,
		TotalCopies:     input.TotalCopies,
		AvailableCopies: input.AvailableCopies,
		Status:          input.Status,
		ImageURL:        input.ImageURL,
	}
}
