package services

import (
	"context"
	"errors"
	"time"

	"libraryhub/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// In-memory repository fakes backing the service tests.

type fakeUserRepo struct {
	users  map[uint]*models.User
	nextID uint
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[uint]*models.User{}, nextID: 1}
}

func (r *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	user.ID = r.nextID
	user.CreatedAt = time.Now()
	r.nextID++
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id uint) (*models.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) Update(_ context.Context, user *models.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) UpdateFields(_ context.Context, email string, fields map[string]interface{}) error {
	for _, user := range r.users {
		if user.Email != email {
			continue
		}
		for key, value := range fields {
			switch key {
			case "name":
				user.Name = value.(string)
			case "dob":
				user.DOB = value.(string)
			case "gender":
				user.Gender = value.(string)
			case "address":
				user.Address = value.(string)
			case "phone":
				user.Phone = value.(string)
			case "profile_image":
				url := value.(string)
				user.ProfileImage = &url
			case "is_banned":
				user.IsBanned = value.(bool)
			case "ban_reason":
				if value == nil {
					user.BanReason = nil
				} else {
					reason := value.(string)
					user.BanReason = &reason
				}
			case "banned_at":
				if value == nil {
					user.BannedAt = nil
				}
			}
		}
		return nil
	}
	return gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) List(_ context.Context, offset, limit int) ([]*models.User, int64, error) {
	all := make([]*models.User, 0, len(r.users))
	for id := uint(1); id < r.nextID; id++ {
		if user, ok := r.users[id]; ok {
			all = append(all, user)
		}
	}
	total := int64(len(all))
	if offset >= len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (r *fakeUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := r.GetByEmail(ctx, email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	return err == nil, err
}

type fakeBookRepo struct {
	books  map[uint]*models.Book
	nextID uint
}

func newFakeBookRepo() *fakeBookRepo {
	return &fakeBookRepo{books: map[uint]*models.Book{}, nextID: 1}
}

func (r *fakeBookRepo) Create(_ context.Context, book *models.Book) error {
	book.ID = r.nextID
	book.CreatedAt = time.Now()
	r.nextID++
	r.books[book.ID] = book
	return nil
}

func (r *fakeBookRepo) GetByID(_ context.Context, id uint) (*models.Book, error) {
	book, ok := r.books[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return book, nil
}

func (r *fakeBookRepo) GetByISBN(_ context.Context, isbn string) (*models.Book, error) {
	for _, book := range r.books {
		if book.ISBN == isbn {
			return book, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeBookRepo) Update(_ context.Context, book *models.Book) error {
	if _, ok := r.books[book.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.books[book.ID] = book
	return nil
}

func (r *fakeBookRepo) Delete(_ context.Context, id uint) error {
	if _, ok := r.books[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.books, id)
	return nil
}

func (r *fakeBookRepo) ListAvailable(_ context.Context) ([]*models.Book, error) {
	available := []*models.Book{}
	for id := uint(1); id < r.nextID; id++ {
		if book, ok := r.books[id]; ok && book.AvailableCopies > 0 {
			available = append(available, book)
		}
	}
	return available, nil
}

func (r *fakeBookRepo) List(_ context.Context, offset, limit int) ([]*models.Book, int64, error) {
	all := []*models.Book{}
	for id := uint(1); id < r.nextID; id++ {
		if book, ok := r.books[id]; ok {
			all = append(all, book)
		}
	}
	total := int64(len(all))
	if offset >= len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (r *fakeBookRepo) AdjustAvailableCopies(_ context.Context, id uint, delta int) error {
	book, ok := r.books[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	book.AvailableCopies += delta
	return nil
}

func (r *fakeBookRepo) ExistsByISBN(ctx context.Context, isbn string) (bool, error) {
	_, err := r.GetByISBN(ctx, isbn)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	return err == nil, err
}

func (r *fakeBookRepo) ExistsByISBNExcept(_ context.Context, isbn string, exceptID uint) (bool, error) {
	for _, book := range r.books {
		if book.ISBN == isbn && book.ID != exceptID {
			return true, nil
		}
	}
	return false, nil
}

type fakeBorrowRepo struct {
	records map[uint]*models.BorrowRecord
	nextID  uint
}

func newFakeBorrowRepo() *fakeBorrowRepo {
	return &fakeBorrowRepo{records: map[uint]*models.BorrowRecord{}, nextID: 1}
}

func (r *fakeBorrowRepo) Create(_ context.Context, record *models.BorrowRecord) error {
	record.ID = r.nextID
	record.CreatedAt = time.Now()
	r.nextID++
	r.records[record.ID] = record
	return nil
}

func (r *fakeBorrowRepo) GetByIDAndEmail(_ context.Context, id uint, email string) (*models.BorrowRecord, error) {
	record, ok := r.records[id]
	if !ok || record.UserEmail != email {
		return nil, gorm.ErrRecordNotFound
	}
	return record, nil
}

func (r *fakeBorrowRepo) GetActiveByBookAndEmail(_ context.Context, bookID uint, email string) (*models.BorrowRecord, error) {
	for _, record := range r.records {
		if record.BookID == bookID && record.UserEmail == email && record.Status == models.BorrowStatusBorrowed {
			return record, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeBorrowRepo) Update(_ context.Context, record *models.BorrowRecord) error {
	if _, ok := r.records[record.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.records[record.ID] = record
	return nil
}

func (r *fakeBorrowRepo) ListByEmailAndStatus(_ context.Context, email, status string) ([]*models.BorrowRecord, error) {
	matched := []*models.BorrowRecord{}
	for id := r.nextID; id > 0; id-- {
		record, ok := r.records[id]
		if ok && record.UserEmail == email && record.Status == status {
			matched = append(matched, record)
		}
	}
	return matched, nil
}

func (r *fakeBorrowRepo) CountActiveByBook(_ context.Context, bookID uint) (int64, error) {
	var count int64
	for _, record := range r.records {
		if record.BookID == bookID && record.Status == models.BorrowStatusBorrowed {
			count++
		}
	}
	return count, nil
}

type fakeRefreshTokenRepo struct {
	tokens map[uint]*models.RefreshToken
	nextID uint
}

func newFakeRefreshTokenRepo() *fakeRefreshTokenRepo {
	return &fakeRefreshTokenRepo{tokens: map[uint]*models.RefreshToken{}, nextID: 1}
}

func (r *fakeRefreshTokenRepo) Create(_ context.Context, token *models.RefreshToken) error {
	token.ID = r.nextID
	token.CreatedAt = time.Now()
	r.nextID++
	r.tokens[token.ID] = token
	return nil
}

func (r *fakeRefreshTokenRepo) GetByTokenHash(_ context.Context, tokenHash string) (*models.RefreshToken, error) {
	for _, token := range r.tokens {
		if token.TokenHash == tokenHash && !token.IsRevoked() {
			return token, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeRefreshTokenRepo) Revoke(_ context.Context, id uint) error {
	token, ok := r.tokens[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	now := time.Now()
	token.RevokedAt = &now
	return nil
}

func (r *fakeRefreshTokenRepo) RevokeByTokenHash(_ context.Context, tokenHash string) error {
	for _, token := range r.tokens {
		if token.TokenHash == tokenHash {
			now := time.Now()
			token.RevokedAt = &now
			return nil
		}
	}
	return nil
}

func (r *fakeRefreshTokenRepo) RevokeAllByUserID(_ context.Context, userID uint) error {
	for _, token := range r.tokens {
		if token.UserID == userID {
			now := time.Now()
			token.RevokedAt = &now
		}
	}
	return nil
}

func (r *fakeRefreshTokenRepo) DeleteExpired(_ context.Context) (int64, error) {
	var n int64
	for id, token := range r.tokens {
		if token.IsExpired() {
			delete(r.tokens, id)
			n++
		}
	}
	return n, nil
}

// fakeUploader records uploads and can be told to fail
type fakeUploader struct {
	uploads map[string][]byte
	err     error
}

func newFakeUploader() *fakeUploader {
	return &fakeUploader{uploads: map[string][]byte{}}
}

func (u *fakeUploader) Upload(data []byte, key string) (string, error) {
	if u.err != nil {
		return "", u.err
	}
	u.uploads[key] = data
	return "https://img.test/" + key + ".jpg", nil
}
