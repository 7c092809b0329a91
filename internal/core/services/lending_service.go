package services

import (
	"context"
	"errors"
	"log"
	"time"

	"libraryhub/internal/adapters/persistence/models"
	"libraryhub/internal/adapters/persistence/repositories"
	"libraryhub/internal/core/domain"
	"libraryhub/internal/pkg/jwt"

	"gorm.io/gorm"
)

const (
	// FineRatePerDay is the fine charged per whole day overdue
	FineRatePerDay = 5.0

	// MinBorrowDays / MaxBorrowDays bound the requested loan duration
	MinBorrowDays = 1
	MaxBorrowDays = 30

	receiptNote = "Please screenshot this receipt. Present it to collect your book."
)

// LendingService orchestrates borrow/return against the catalog and
// the borrow ledger
type LendingService struct {
	bookRepo   repositories.BookRepository
	borrowRepo repositories.BorrowRepository
	now        func() time.Time
}

// NewLendingService creates a new lending service
func NewLendingService(bookRepo repositories.BookRepository, borrowRepo repositories.BorrowRepository) *LendingService {
	return &LendingService{
		bookRepo:   bookRepo,
		borrowRepo: borrowRepo,
		now:        time.Now,
	}
}

// Borrow checks out a book for the authenticated user and returns a receipt.
//
// The copy decrement and the record insert are two independent writes
// with no transaction around them; concurrent borrows of the last copy
// can both pass the availability check. This matches the system this
// service replaces (see DESIGN.md).
func (s *LendingService) Borrow(ctx context.Context, claims *jwt.Claims, bookID uint, borrowDays int) (*models.Receipt, error) {
	if borrowDays < MinBorrowDays || borrowDays > MaxBorrowDays {
		return nil, domain.ErrInvalidDuration
	}

	book, err := s.bookRepo.GetByID(ctx, bookID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrBookNotFound
		}
		return nil, err
	}

	if book.AvailableCopies <= 0 {
		return nil, domain.ErrNoCopiesAvailable
	}

	_, err = s.borrowRepo.GetActiveByBookAndEmail(ctx, bookID, claims.Email)
	if err == nil {
		return nil, domain.ErrAlreadyBorrowed
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	borrowDate := s.now()
	dueDate := borrowDate.Add(time.Duration(borrowDays) * 24 * time.Hour)

	if err := s.bookRepo.AdjustAvailableCopies(ctx, bookID, -1); err != nil {
		return nil, err
	}

	record := &models.BorrowRecord{
		BookID:     bookID,
		UserEmail:  claims.Email,
		BorrowDate: borrowDate,
		DueDate:    dueDate,
		Status:     models.BorrowStatusBorrowed,
		FineAmount: 0,
	}

	if err := s.borrowRepo.Create(ctx, record); err != nil {
		return nil, err
	}

	log.Printf("📚 Book borrowed: %q by %s (due %s)", book.Title, claims.Email, dueDate.Format("2006-01-02"))

	return &models.Receipt{
		TransactionID: record.ID,
		BookTitle:     book.Title,
		UserName:      claims.Name,
		BorrowDate:    borrowDate,
		DueDate:       dueDate,
		FineNote:      receiptNote,
	}, nil
}

// Return closes out a borrow record and reports the fine.
// Same two-write sequence as Borrow, in the opposite direction.
func (s *LendingService) Return(ctx context.Context, claims *jwt.Claims, borrowID uint) (float64, error) {
	record, err := s.borrowRepo.GetByIDAndEmail(ctx, borrowID, claims.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, domain.ErrBorrowNotFound
		}
		return 0, err
	}

	if record.Status == models.BorrowStatusReturned {
		return 0, domain.ErrAlreadyReturned
	}

	returnDate := s.now()
	fine := CalculateFine(record.DueDate, returnDate)

	record.ReturnDate = &returnDate
	record.Status = models.BorrowStatusReturned
	record.FineAmount = fine

	if err := s.borrowRepo.Update(ctx, record); err != nil {
		return 0, err
	}

	if err := s.bookRepo.AdjustAvailableCopies(ctx, record.BookID, 1); err != nil {
		return 0, err
	}

	return fine, nil
}

// MyActiveBorrows lists the user's unreturned records, newest first,
// each joined with the book's current snapshot
func (s *LendingService) MyActiveBorrows(ctx context.Context, claims *jwt.Claims) ([]*models.BorrowResponse, error) {
	return s.listWithBooks(ctx, claims.Email, models.BorrowStatusBorrowed)
}

// History lists the user's returned records, newest first
func (s *LendingService) History(ctx context.Context, claims *jwt.Claims) ([]*models.BorrowResponse, error) {
	return s.listWithBooks(ctx, claims.Email, models.BorrowStatusReturned)
}

func (s *LendingService) listWithBooks(ctx context.Context, email, status string) ([]*models.BorrowResponse, error) {
	records, err := s.borrowRepo.ListByEmailAndStatus(ctx, email, status)
	if err != nil {
		return nil, err
	}

	now := s.now()
	responses := make([]*models.BorrowResponse, 0, len(records))
	for _, record := range records {
		// The book may have been deleted since; the record still lists.
		book, err := s.bookRepo.GetByID(ctx, record.BookID)
		if err != nil {
			book = nil
		}
		responses = append(responses, record.ToResponse(book, now))
	}

	return responses, nil
}

// CalculateFine computes the late fine: whole days overdue (truncated,
// not rounded) times the daily rate. Returning on or before the due
// date costs nothing.
func CalculateFine(dueDate, returnDate time.Time) float64 {
	if !returnDate.After(dueDate) {
		return 0
	}
	daysOverdue := int(returnDate.Sub(dueDate).Hours() / 24)
	return float64(daysOverdue) * FineRatePerDay
}
