package repositories

import (
	"context"

	"libraryhub/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// borrowRepository implements BorrowRepository interface
type borrowRepository struct {
	db *gorm.DB
}

// NewBorrowRepository creates a new borrow repository
func NewBorrowRepository(db *gorm.DB) BorrowRepository {
	return &borrowRepository{db: db}
}

// Create creates a new borrow record
func (r *borrowRepository) Create(ctx context.Context, record *models.BorrowRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

// GetByIDAndEmail gets a borrow record by ID scoped to the borrower
func (r *borrowRepository) GetByIDAndEmail(ctx context.Context, id uint, email string) (*models.BorrowRecord, error) {
	var record models.BorrowRecord
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_email = ?", id, email).
		First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// GetActiveByBookAndEmail gets the unreturned record for a (book, user) pair
func (r *borrowRepository) GetActiveByBookAndEmail(ctx context.Context, bookID uint, email string) (*models.BorrowRecord, error) {
	var record models.BorrowRecord
	err := r.db.WithContext(ctx).
		Where("book_id = ? AND user_email = ? AND status = ?", bookID, email, models.BorrowStatusBorrowed).
		First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// Update updates a borrow record
func (r *borrowRepository) Update(ctx context.Context, record *models.BorrowRecord) error {
	return r.db.WithContext(ctx).Save(record).Error
}

// ListByEmailAndStatus lists a user's records with the given status, newest first
func (r *borrowRepository) ListByEmailAndStatus(ctx context.Context, email, status string) ([]*models.BorrowRecord, error) {
	var records []*models.BorrowRecord
	err := r.db.WithContext(ctx).
		Where("user_email = ? AND status = ?", email, status).
		Order("borrow_date DESC").
		Find(&records).Error
	return records, err
}

// CountActiveByBook counts unreturned records referencing a book
func (r *borrowRepository) CountActiveByBook(ctx context.Context, bookID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.BorrowRecord{}).
		Where("book_id = ? AND status = ?", bookID, models.BorrowStatusBorrowed).
		Count(&count).Error
	return count, err
}
