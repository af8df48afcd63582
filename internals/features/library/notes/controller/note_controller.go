package controller

import (
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	bookDto "bookshelf_backend/internals/features/library/books/dto"
	bookModel "bookshelf_backend/internals/features/library/books/model"
	bookService "bookshelf_backend/internals/features/library/books/service"
	"bookshelf_backend/internals/features/library/notes/dto"
	"bookshelf_backend/internals/features/library/notes/model"
	helper "bookshelf_backend/internals/helpers"
)

var validateNote = validator.New()

type NoteController struct {
	DB *gorm.DB
}

func NewNoteController(db *gorm.DB) *NoteController {
	return &NoteController{DB: db}
}

// =======================
// 📝 Get Notes (paginated)
// Query: ?page= &book= &q= &created_at__gte= &created_at__lte= &title= &authors= &amazon_dp= &content= &quote_text=
// =======================
func (ctrl *NoteController) GetNotes(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, helper.DefaultPageSize, 100)

	tx := ctrl.DB.Model(&model.NoteModel{}).
		Joins("JOIN books ON books.book_id = notes.note_book_id")
	if book := c.Query("book"); book != "" {
		bookID, err := uuid.Parse(book)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Parameter book tidak valid")
		}
		tx = tx.Where("notes.note_book_id = ?", bookID)
	}
	if t, err := helper.ParseTimeParam(c.Query("created_at__gte")); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "created_at__gte tidak valid")
	} else if t != nil {
		tx = tx.Where("notes.note_created_at >= ?", *t)
	}
	if t, err := helper.ParseTimeParam(c.Query("created_at__lte")); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "created_at__lte tidak valid")
	} else if t != nil {
		tx = tx.Where("notes.note_created_at <= ?", *t)
	}
	if title := c.Query("title"); title != "" {
		tx = helper.ApplySearch(tx, helper.SearchFields{
			Like: []string{"books.book_title"},
		}, title)
	}
	if authors := c.Query("authors"); authors != "" {
		sub := ctrl.DB.Table("book_authors ba").
			Select("ba.book_id").
			Joins("JOIN authors a ON a.author_id = ba.author_id")
		sub = helper.ApplySearch(sub, helper.SearchFields{
			Like: []string{"a.author_name"},
		}, authors)
		tx = tx.Where("books.book_id IN (?)", sub)
	}
	if dp := c.Query("amazon_dp"); dp != "" {
		tx = tx.Where("books.book_amazon_dp = ?", dp)
	}
	if content := c.Query("content"); content != "" {
		tx = helper.ApplySearch(tx, helper.SearchFields{
			Like: []string{"notes.note_content"},
		}, content)
	}
	if quote := c.Query("quote_text"); quote != "" {
		tx = helper.ApplySearch(tx, helper.SearchFields{
			Like: []string{"notes.note_quote_text"},
		}, quote)
	}
	if q := c.Query("q"); q != "" {
		tx = helper.ApplySearch(tx, helper.SearchFields{
			Like: []string{"notes.note_content", "notes.note_quote_text"},
		}, q)
	}

	var total int64
	if err := tx.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung catatan")
	}

	var notes []model.NoteModel
	if err := tx.
		Order("note_created_at DESC").
		Limit(paging.Limit).
		Offset(paging.Offset).
		Find(&notes).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil catatan")
	}

	items, err := ctrl.buildNoteDTOs(notes)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyusun catatan")
	}
	return helper.JsonPage(c, helper.BuildPage(c, items, total, paging))
}

// =======================
// 🔍 Get Note Detail
// =======================
func (ctrl *NoteController) GetNoteByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID catatan tidak valid")
	}

	var note model.NoteModel
	if err := ctrl.DB.First(&note, "note_id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return helper.JsonError(c, fiber.StatusNotFound, "Catatan tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil catatan")
	}

	items, err := ctrl.buildNoteDTOs([]model.NoteModel{note})
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyusun catatan")
	}
	return helper.JsonOK(c, "OK", items[0])
}

// =======================
// ➕ Create Note (multipart)
// Field: book, position, content, quote_text, quote_image (file)
// =======================
func (ctrl *NoteController) CreateNote(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "User tidak terautentikasi")
	}

	position, _ := strconv.Atoi(c.FormValue("position", "0"))
	body := dto.CreateNoteRequest{
		Book:      strings.TrimSpace(c.FormValue("book")),
		Position:  position,
		Content:   c.FormValue("content"),
		QuoteText: c.FormValue("quote_text"),
	}
	if err := validateNote.Struct(&body); err != nil {
		return helper.ValidatorError(c, err)
	}

	bookID, _ := uuid.Parse(body.Book)
	var book bookModel.BookModel
	if err := ctrl.DB.First(&book, "book_id = ?", bookID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return helper.JsonError(c, fiber.StatusBadRequest, "Buku tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil buku")
	}
	if err := body.Validate(&book); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	note := model.NoteModel{
		NoteBookID:   book.BookID,
		NotePosition: body.Position,
		NoteContent:  body.Content,
		NoteUserID:   userID,
	}
	if body.QuoteText != "" {
		note.NoteQuoteText = &body.QuoteText
	}

	if fh, err := c.FormFile("quote_image"); err == nil && fh != nil {
		path, err := helper.SaveQuoteImageWebp(fh)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Gagal memproses quote_image")
		}
		note.NoteQuoteImage = &path
	}

	if err := ctrl.DB.Create(&note).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyimpan catatan")
	}

	items, err := ctrl.buildNoteDTOs([]model.NoteModel{note})
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyusun catatan")
	}
	return helper.JsonCreated(c, "Catatan berhasil dibuat", items[0])
}

// =======================
// ✏️ Update Note (multipart, PUT/PATCH)
// =======================
func (ctrl *NoteController) UpdateNote(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "User tidak terautentikasi")
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID catatan tidak valid")
	}

	var note model.NoteModel
	if err := ctrl.DB.First(&note, "note_id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return helper.JsonError(c, fiber.StatusNotFound, "Catatan tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil catatan")
	}
	if note.NoteUserID != userID {
		return helper.JsonError(c, fiber.StatusForbidden, "Bukan pemilik catatan ini")
	}

	var book bookModel.BookModel
	if err := ctrl.DB.First(&book, "book_id = ?", note.NoteBookID).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil buku")
	}

	var body dto.UpdateNoteRequest
	if v := c.FormValue("position"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "position tidak valid")
		}
		body.Position = &p
	}
	if v := c.FormValue("content"); v != "" {
		body.Content = &v
	}
	if v := c.FormValue("quote_text"); v != "" {
		body.QuoteText = &v
	}
	if err := body.Validate(&book); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	if body.Position != nil {
		note.NotePosition = *body.Position
	}
	if body.Content != nil {
		note.NoteContent = *body.Content
	}
	if body.QuoteText != nil {
		note.NoteQuoteText = body.QuoteText
	}
	if fh, err := c.FormFile("quote_image"); err == nil && fh != nil {
		path, err := helper.SaveQuoteImageWebp(fh)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Gagal memproses quote_image")
		}
		note.NoteQuoteImage = &path
	}

	if err := ctrl.DB.Save(&note).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memperbarui catatan")
	}

	items, err := ctrl.buildNoteDTOs([]model.NoteModel{note})
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyusun catatan")
	}
	return helper.JsonUpdated(c, "Catatan berhasil diperbarui", items[0])
}

// =======================
// 🗑️ Delete Note
// =======================
func (ctrl *NoteController) DeleteNote(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "User tidak terautentikasi")
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID catatan tidak valid")
	}

	var note model.NoteModel
	if err := ctrl.DB.First(&note, "note_id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return helper.JsonError(c, fiber.StatusNotFound, "Catatan tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil catatan")
	}
	if note.NoteUserID != userID {
		return helper.JsonError(c, fiber.StatusForbidden, "Bukan pemilik catatan ini")
	}

	if err := ctrl.DB.Delete(&note).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghapus catatan")
	}
	return helper.JsonDeleted(c, "Catatan berhasil dihapus", fiber.Map{"id": id})
}

/* ===============================
   Internal view builder
=================================*/

func (ctrl *NoteController) buildNoteDTOs(notes []model.NoteModel) ([]dto.NoteDTO, error) {
	items := make([]dto.NoteDTO, 0, len(notes))
	if len(notes) == 0 {
		return items, nil
	}

	idSet := make(map[uuid.UUID]struct{})
	for _, n := range notes {
		idSet[n.NoteBookID] = struct{}{}
	}
	ids := make([]uuid.UUID, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}

	var books []bookModel.BookModel
	if err := ctrl.DB.Where("book_id IN ?", ids).Find(&books).Error; err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]bookModel.BookModel, len(books))
	for _, b := range books {
		byID[b.BookID] = b
	}

	authors, err := bookService.AuthorNamesByBook(ctrl.DB, ids)
	if err != nil {
		return nil, err
	}

	for _, n := range notes {
		var bookView *bookDto.BookDTO
		if b, ok := byID[n.NoteBookID]; ok {
			view := bookDto.ToBookDTO(b, authors[b.BookID])
			bookView = &view
		}
		items = append(items, dto.ToNoteDTO(n, bookView))
	}
	return items, nil
}
