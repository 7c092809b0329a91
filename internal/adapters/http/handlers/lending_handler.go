package handlers

import (
	"errors"
	"strconv"

	"libraryhub/internal/adapters/http/middleware"
	"libraryhub/internal/core/domain"
	"libraryhub/internal/core/services"
	"libraryhub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// DefaultBorrowDays is used when the request omits a duration
const DefaultBorrowDays = 14

// LendingHandler handles borrow/return endpoints
type LendingHandler struct {
	lendingService *services.LendingService
}

// NewLendingHandler creates a new lending handler
func NewLendingHandler(lendingService *services.LendingService) *LendingHandler {
	return &LendingHandler{lendingService: lendingService}
}

// BorrowRequest represents a borrow request body.
// The book ID arrives as a string and is parsed server-side.
type BorrowRequest struct {
	BookID     string `json:"book_id"`
	BorrowDays int    `json:"borrow_days"`
}

// ReturnRequest represents a return request body
type ReturnRequest struct {
	BorrowID string `json:"borrow_id"`
}

// Borrow checks out a book for the current user
// @Summary Borrow a book
// @Tags Lending
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body BorrowRequest true "Borrow request"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /books/borrow [post]
func (h *LendingHandler) Borrow(c *fiber.Ctx) error {
	claims := middleware.GetClaims(c)
	if claims == nil {
		return response.Unauthorized(c, "Unauthorized")
	}

	var req BorrowRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	bookID, err := strconv.ParseUint(req.BookID, 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid book ID format")
	}

	borrowDays := req.BorrowDays
	if borrowDays == 0 {
		borrowDays = DefaultBorrowDays
	}

	receipt, err := h.lendingService.Borrow(c.Context(), claims, uint(bookID), borrowDays)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidDuration):
			return response.BadRequest(c, "Borrow duration must be between 1 and 30 days")
		case errors.Is(err, domain.ErrBookNotFound):
			return response.NotFound(c, "Book not found")
		case errors.Is(err, domain.ErrNoCopiesAvailable):
			return response.BadRequest(c, "No copies available")
		case errors.Is(err, domain.ErrAlreadyBorrowed):
			return response.Conflict(c, "You already have an active borrow for this book")
		default:
			return response.InternalServerError(c, "Failed to borrow book")
		}
	}

	return response.Success(c, "Book borrowed successfully", receipt)
}

// Return closes out a borrow and reports the fine owed
// @Summary Return a borrowed book
// @Tags Lending
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body ReturnRequest true "Return request"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /books/return [post]
func (h *LendingHandler) Return(c *fiber.Ctx) error {
	claims := middleware.GetClaims(c)
	if claims == nil {
		return response.Unauthorized(c, "Unauthorized")
	}

	var req ReturnRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	borrowID, err := strconv.ParseUint(req.BorrowID, 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid borrow ID format")
	}

	fine, err := h.lendingService.Return(c.Context(), claims, uint(borrowID))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrBorrowNotFound):
			return response.NotFound(c, "Borrow record not found")
		case errors.Is(err, domain.ErrAlreadyReturned):
			return response.BadRequest(c, "Book already returned")
		default:
			return response.InternalServerError(c, "Failed to return book")
		}
	}

	return response.Success(c, "Book returned successfully", fiber.Map{
		"fine_amount": fine,
	})
}

// MyBorrows lists the current user's active borrows
// @Summary List my active borrows
// @Tags Lending
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /books/my-borrows [get]
func (h *LendingHandler) MyBorrows(c *fiber.Ctx) error {
	claims := middleware.GetClaims(c)
	if claims == nil {
		return response.Unauthorized(c, "Unauthorized")
	}

	borrows, err := h.lendingService.MyActiveBorrows(c.Context(), claims)
	if err != nil {
		return response.InternalServerError(c, "Failed to list borrows")
	}

	return response.Success(c, "Active borrows retrieved successfully", borrows)
}

// History lists the current user's returned borrows
// @Summary List my borrowing history
// @Tags Lending
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /books/borrowing-history [get]
func (h *LendingHandler) History(c *fiber.Ctx) error {
	claims := middleware.GetClaims(c)
	if claims == nil {
		return response.Unauthorized(c, "Unauthorized")
	}

	history, err := h.lendingService.History(c.Context(), claims)
	if err != nil {
		return response.InternalServerError(c, "Failed to list borrowing history")
	}

	return response.Success(c, "Borrowing history retrieved successfully", history)
}
