package models

import (
	"time"

	"gorm.io/gorm"

	"libraryhub/internal/core/domain"
)

// ============================================================
// Users & Auth
// ============================================================

// User represents users table
type User struct {
	ID           uint        `gorm:"primaryKey" json:"id"`
	Name         string      `gorm:"size:100;not null" json:"name"`
	Email        string      `gorm:"uniqueIndex;size:100;not null" json:"email"`
	Password     string      `gorm:"size:255;not null" json:"-"`
	DOB          string      `gorm:"size:20" json:"dob"`
	Gender       string      `gorm:"size:20" json:"gender"`
	Address      string      `gorm:"size:255" json:"address"`
	Phone        string      `gorm:"size:30" json:"phone"`
	Role         domain.Role `gorm:"size:10;default:'user'" json:"role"`
	IsBanned     bool        `gorm:"default:false" json:"is_banned"`
	BanReason    *string     `gorm:"size:255" json:"ban_reason"`
	BannedAt     *time.Time  `json:"banned_at"`
	ProfileImage *string     `gorm:"size:255" json:"profile_image"`
	CreatedAt    time.Time   `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time   `gorm:"autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// UserResponse DTO. The password hash never appears in any view.
type UserResponse struct {
	ID           uint        `json:"id"`
	Email        string      `json:"email"`
	Name         string      `json:"name"`
	Role         domain.Role `json:"role"`
	IsBanned     bool        `json:"is_banned"`
	BanReason    *string     `json:"ban_reason"`
	BannedAt     *time.Time  `json:"banned_at"`
	CreatedAt    time.Time   `json:"created_at"`
	ProfileImage *string     `json:"profile_image"`
	DOB          string      `json:"dob"`
	Gender       string      `json:"gender"`
	Address      string      `json:"address"`
	Phone        string      `json:"phone"`
}

func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:           u.ID,
		Email:        u.Email,
		Name:         u.Name,
		Role:         u.Role,
		IsBanned:     u.IsBanned,
		BanReason:    u.BanReason,
		BannedAt:     u.BannedAt,
		CreatedAt:    u.CreatedAt,
		ProfileImage: u.ProfileImage,
		DOB:          u.DOB,
		Gender:       u.Gender,
		Address:      u.Address,
		Phone:        u.Phone,
	}
}

// RefreshToken represents refresh_tokens table
type RefreshToken struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"index;not null" json:"user_id"`
	TokenHash string     `gorm:"size:255;not null;index" json:"-"`
	ExpiresAt time.Time  `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	RevokedAt *time.Time `gorm:"index" json:"revoked_at"`
	User      User       `gorm:"foreignKey:UserID" json:"-"`
}

func (RefreshToken) TableName() string {
	return "refresh_tokens"
}

func (rt *RefreshToken) IsRevoked() bool {
	return rt.RevokedAt != nil
}

func (rt *RefreshToken) IsExpired() bool {
	return time.Now().After(rt.ExpiresAt)
}

// ============================================================
// Catalog
// ============================================================

// Book statuses
const (
	BookStatusAvailable = "available"
	BookStatusBorrowed  = "borrowed"
	BookStatusReserved  = "reserved"
)

// Book represents books table
type Book struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	Title           string    `gorm:"size:200;not null" json:"title"`
	Author          string    `gorm:"size:100;not null" json:"author"`
	ISBN            string    `gorm:"uniqueIndex;size:20;not null" json:"isbn"`
	Genre           string    `gorm:"size:50" json:"genre"`
	Description     string    `gorm:"type:text" json:"description"`
	PublishedYear   int       `json:"published_year"`
	Publisher       string    `gorm:"size:100" json:"publisher"`
	TotalCopies     int       `gorm:"default:1" json:"total_copies"`
	AvailableCopies int       `gorm:"default:1" json:"available_copies"`
	Status          string    `gorm:"size:10;default:'available'" json:"status"`
	ImageURL        *string   `gorm:"size:255" json:"image_url"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Book) TableName() string {
	return "books"
}

// ============================================================
// Borrow Ledger
// ============================================================

// Borrow statuses. BorrowStatusOverdue is never stored; overdue is
// derived from the due date when building responses.
const (
	BorrowStatusBorrowed = "borrowed"
	BorrowStatusReturned = "returned"
	BorrowStatusOverdue  = "overdue"
)

// BorrowRecord represents borrow_records table
type BorrowRecord struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	BookID     uint       `gorm:"index;not null" json:"book_id"`
	UserEmail  string     `gorm:"index;size:100;not null" json:"user_email"`
	BorrowDate time.Time  `gorm:"not null" json:"borrow_date"`
	DueDate    time.Time  `gorm:"not null" json:"due_date"`
	ReturnDate *time.Time `json:"return_date"`
	Status     string     `gorm:"size:10;not null;default:'borrowed'" json:"status"`
	FineAmount float64    `gorm:"type:decimal(10,2);default:0" json:"fine_amount"`
	CreatedAt  time.Time  `gorm:"autoCreateTime" json:"created_at"`
}

func (BorrowRecord) TableName() string {
	return "borrow_records"
}

// BorrowResponse DTO, joined with the book's current snapshot
type BorrowResponse struct {
	ID         uint       `json:"id"`
	BookID     uint       `json:"book_id"`
	UserEmail  string     `json:"user_email"`
	BorrowDate time.Time  `json:"borrow_date"`
	DueDate    time.Time  `json:"due_date"`
	ReturnDate *time.Time `json:"return_date"`
	Status     string     `json:"status"`
	FineAmount float64    `json:"fine_amount"`
	IsOverdue  bool       `json:"is_overdue"`
	Book       *Book      `json:"book,omitempty"`
}

// ToResponse joins the record with the book's current snapshot.
// IsOverdue is derived, not stored.
func (r *BorrowRecord) ToResponse(book *Book, now time.Time) *BorrowResponse {
	return &BorrowResponse{
		ID:         r.ID,
		BookID:     r.BookID,
		UserEmail:  r.UserEmail,
		BorrowDate: r.BorrowDate,
		DueDate:    r.DueDate,
		ReturnDate: r.ReturnDate,
		Status:     r.Status,
		FineAmount: r.FineAmount,
		IsOverdue:  r.Status == BorrowStatusBorrowed && now.After(r.DueDate),
		Book:       book,
	}
}

// Receipt is the human-presentable borrow confirmation
type Receipt struct {
	TransactionID uint      `json:"transaction_id"`
	BookTitle     string    `json:"book_title"`
	UserName      string    `json:"user_name"`
	BorrowDate    time.Time `json:"borrow_date"`
	DueDate       time.Time `json:"due_date"`
	FineNote      string    `json:"fine_note"`
}

// ============================================================
// Auto Migration
// ============================================================

// AutoMigrate runs auto migration for all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&RefreshToken{},
		&Book{},
		&BorrowRecord{},
	)
}
