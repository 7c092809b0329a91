package repositories

import (
	"context"

	"libraryhub/internal/adapters/persistence/models"
)

// UserRepository defines user repository interface
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	UpdateFields(ctx context.Context, email string, fields map[string]interface{}) error
	List(ctx context.Context, offset, limit int) ([]*models.User, int64, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// BookRepository defines book catalog repository interface
type BookRepository interface {
	Create(ctx context.Context, book *models.Book) error
	GetByID(ctx context.Context, id uint) (*models.Book, error)
	GetByISBN(ctx context.Context, isbn string) (*models.Book, error)
	Update(ctx context.Context, book *models.Book) error
	Delete(ctx context.Context, id uint) error
	ListAvailable(ctx context.Context) ([]*models.Book, error)
	List(ctx context.Context, offset, limit int) ([]*models.Book, int64, error)
	AdjustAvailableCopies(ctx context.Context, id uint, delta int) error
	ExistsByISBN(ctx context.Context, isbn string) (bool, error)
	ExistsByISBNExcept(ctx context.Context, isbn string, exceptID uint) (bool, error)
}

// BorrowRepository defines borrow ledger repository interface
type BorrowRepository interface {
	Create(ctx context.Context, record *models.BorrowRecord) error
	GetByIDAndEmail(ctx context.Context, id uint, email string) (*models.BorrowRecord, error)
	GetActiveByBookAndEmail(ctx context.Context, bookID uint, email string) (*models.BorrowRecord, error)
	Update(ctx context.Context, record *models.BorrowRecord) error
	ListByEmailAndStatus(ctx context.Context, email, status string) ([]*models.BorrowRecord, error)
	CountActiveByBook(ctx context.Context, bookID uint) (int64, error)
}

// RefreshTokenRepository defines refresh token repository interface
type RefreshTokenRepository interface {
	Create(ctx context.Context, token *models.RefreshToken) error
	GetByTokenHash(ctx context.Context, tokenHash string) (*models.RefreshToken, error)
	Revoke(ctx context.Context, id uint) error
	RevokeByTokenHash(ctx context.Context, tokenHash string) error
	RevokeAllByUserID(ctx context.Context, userID uint) error
	DeleteExpired(ctx context.Context) (int64, error)
}
