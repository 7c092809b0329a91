package handlers

import (
	"errors"

	"libraryhub/internal/core/domain"
	"libraryhub/internal/core/services"
	"libraryhub/internal/pkg/pagination"
	"libraryhub/internal/pkg/response"
	"libraryhub/internal/pkg/validate"

	"github.com/gofiber/fiber/v2"
)

// BookHandler handles catalog endpoints
type BookHandler struct {
	bookService *services.BookService
	validator   *validate.Validator
}

// NewBookHandler creates a new book handler
func NewBookHandler(bookService *services.BookService, validator *validate.Validator) *BookHandler {
	return &BookHandler{
		bookService: bookService,
		validator:   validator,
	}
}

// ListAvailable lists books with available copies (public)
// @Summary List available books
// @Tags Books
// @Produce json
// @Success 200 {object} response.Response
// @Router /books [get]
func (h *BookHandler) ListAvailable(c *fiber.Ctx) error {
	books, err := h.bookService.ListAvailable(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to list books")
	}

	return response.Success(c, "Books retrieved successfully", books)
}

// ListAll lists every book unfiltered (admin only)
// @Summary List all books
// @Tags Books
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /books/all [get]
func (h *BookHandler) ListAll(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	result, err := h.bookService.List(c.Context(), params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list books")
	}

	return response.Success(c, "Books retrieved successfully", fiber.Map{
		"books": result.Books,
		"meta":  pagination.GetMeta(params, result.Total),
	})
}

// Add adds a new book (admin only)
// @Summary Add a book
// @Tags Books
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.BookInput true "Book data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /books [post]
func (h *BookHandler) Add(c *fiber.Ctx) error {
	var input services.BookInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.Struct(&input); err != nil {
		return response.BadRequest(c, err.Error())
	}

	book, err := h.bookService.Add(c.Context(), &input)
	if err != nil {
		if errors.Is(err, domain.ErrISBNAlreadyExists) {
			return response.Conflict(c, "Book with this ISBN already exists")
		}
		return response.InternalServerError(c, "Failed to add book")
	}

	return response.Created(c, "Book added successfully", book)
}

// Update updates a book (admin only)
// @Summary Update a book
// @Tags Books
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Book ID"
// @Param body body services.BookInput true "Book data"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /books/{id} [put]
func (h *BookHandler) Update(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid book ID format")
	}

	var input services.BookInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.Struct(&input); err != nil {
		return response.BadRequest(c, err.Error())
	}

	if err := h.bookService.Update(c.Context(), id, &input); err != nil {
		switch {
		case errors.Is(err, domain.ErrBookNotFound):
			return response.NotFound(c, "Book not found")
		case errors.Is(err, domain.ErrISBNAlreadyExists):
			return response.Conflict(c, "ISBN already exists")
		default:
			return response.InternalServerError(c, "Failed to update book")
		}
	}

	return response.Success(c, "Book updated successfully", nil)
}

// Delete deletes a book (admin only)
// @Summary Delete a book
// @Tags Books
// @Produce json
// @Security BearerAuth
// @Param id path int true "Book ID"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /books/{id} [delete]
func (h *BookHandler) Delete(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid book ID format")
	}

	if err := h.bookService.Delete(c.Context(), id); err != nil {
		switch {
		case errors.Is(err, domain.ErrBookNotFound):
			return response.NotFound(c, "Book not found")
		case errors.Is(err, domain.ErrBookStillBorrowed):
			return response.Conflict(c, "Cannot delete book that is currently borrowed")
		default:
			return response.InternalServerError(c, "Failed to delete book")
		}
	}

	return response.Success(c, "Book deleted successfully", nil)
}
