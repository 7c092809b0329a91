package domain

import "errors"

// Common domain errors
var (
	ErrNotFound           = errors.New("resource not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrInternalServer     = errors.New("internal server error")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("token invalid")
)

// User errors
var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("email already registered")
	ErrUserBanned        = errors.New("account is banned")
	ErrCannotBanAdmin    = errors.New("cannot ban admin users")
)

// Book errors
var (
	ErrBookNotFound      = errors.New("book not found")
	ErrISBNAlreadyExists = errors.New("book with this ISBN already exists")
	ErrBookStillBorrowed = errors.New("cannot delete book that is currently borrowed")
	ErrNoCopiesAvailable = errors.New("no copies available")
)

// Borrow errors
var (
	ErrBorrowNotFound  = errors.New("borrow record not found")
	ErrAlreadyBorrowed = errors.New("book already borrowed by this user")
	ErrAlreadyReturned = errors.New("book already returned")
	ErrInvalidDuration = errors.New("borrow days must be between 1 and 30")
)

// Upstream errors
var (
	ErrImageUpload = errors.New("image upload failed")
)
