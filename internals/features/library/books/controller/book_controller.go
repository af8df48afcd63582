package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	bookDto "bookshelf_backend/internals/features/library/books/dto"
	bookModel "bookshelf_backend/internals/features/library/books/model"
	bookService "bookshelf_backend/internals/features/library/books/service"
	noteDto "bookshelf_backend/internals/features/library/notes/dto"
	noteModel "bookshelf_backend/internals/features/library/notes/model"
	progressDto "bookshelf_backend/internals/features/library/progress/dto"
	progressModel "bookshelf_backend/internals/features/library/progress/model"
	progressService "bookshelf_backend/internals/features/library/progress/service"
	helper "bookshelf_backend/internals/helpers"
)

var validateBook = validator.New()

type BookController struct {
	DB *gorm.DB
}

func NewBookController(db *gorm.DB) *BookController {
	return &BookController{DB: db}
}

// BookView membungkus BookDTO plus relasi bersarang yang dipakai frontend:
// seluruh status log (paling baru dulu) dan catatan.
type BookView struct {
	bookDto.BookDTO
	Status []progressDto.StatusLogDTO `json:"status"`
	Notes  []noteDto.NoteDTO          `json:"notes"`
}

// =======================
// 📚 Get Books (paginated)
// Query: ?page= &q= &q_or= &title= &title_or= &authors= &authors_or= &status=
// =======================
func (ctrl *BookController) GetBooks(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, helper.DefaultPageSize, 100)

	criteria := bookSearchCriteria(c)
	tx := ctrl.baseQuery(criteria)

	// Filter state butuh klasifikasi event terbaru, jadi diselesaikan di Go
	// lalu diturunkan lagi ke SQL sebagai daftar ID.
	if status := c.Query("status"); status != "" {
		ids, err := ctrl.bookIDsByState(criteria, progressService.State(status))
		if err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memfilter status buku")
		}
		if len(ids) == 0 {
			return helper.JsonPage(c, helper.BuildPage(c, []BookView{}, 0, paging))
		}
		tx = tx.Where("books.book_id IN ?", ids)
	}

	var total int64
	if err := tx.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung buku")
	}

	var books []bookModel.BookModel
	if err := tx.
		Order(lastActivityOrder).
		Limit(paging.Limit).
		Offset(paging.Offset).
		Find(&books).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil buku")
	}

	views, err := ctrl.buildBookViews(books)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyusun data buku")
	}
	return helper.JsonPage(c, helper.BuildPage(c, views, total, paging))
}

// =======================
// 📖 Get Book Detail
// =======================
func (ctrl *BookController) GetBookByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID buku tidak valid")
	}

	var book bookModel.BookModel
	if err := ctrl.DB.First(&book, "book_id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return helper.JsonError(c, fiber.StatusNotFound, "Buku tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil buku")
	}

	views, err := ctrl.buildBookViews([]bookModel.BookModel{book})
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyusun data buku")
	}
	return helper.JsonOK(c, "OK", views[0])
}

// =======================
// ➕ Create Book
// =======================
func (ctrl *BookController) CreateBook(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "User tidak terautentikasi")
	}

	var body bookDto.CreateBookRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body request tidak valid")
	}
	if err := validateBook.Struct(&body); err != nil {
		return helper.ValidatorError(c, err)
	}
	if err := body.Validate(); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	book := bookModel.BookModel{
		BookIDGoogle:  body.IDGoogle,
		BookTitle:     body.Title,
		BookThumbnail: body.Thumbnail,
		BookFormat:    body.FormatType,
		BookTotal:     body.Total,
		BookTotalPage: body.TotalPage,
		BookAmazonDP:  body.AmazonDP,
		BookUserID:    userID,
	}

	if err := ctrl.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&book).Error; err != nil {
			return err
		}
		return bookService.ReplaceBookAuthors(tx, book.BookID, body.Authors)
	}); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyimpan buku")
	}

	views, err := ctrl.buildBookViews([]bookModel.BookModel{book})
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyusun data buku")
	}
	return helper.JsonCreated(c, "Buku berhasil dibuat", views[0])
}

// =======================
// ✏️ Update Book (PUT/PATCH)
// =======================
func (ctrl *BookController) UpdateBook(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "User tidak terautentikasi")
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID buku tidak valid")
	}

	var book bookModel.BookModel
	if err := ctrl.DB.First(&book, "book_id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return helper.JsonError(c, fiber.StatusNotFound, "Buku tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil buku")
	}
	if book.BookUserID != userID {
		return helper.JsonError(c, fiber.StatusForbidden, "Bukan pemilik buku ini")
	}

	var body bookDto.UpdateBookRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body request tidak valid")
	}
	if err := validateBook.Struct(&body); err != nil {
		return helper.ValidatorError(c, err)
	}
	if err := body.Validate(&book); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	if body.IDGoogle != nil {
		book.BookIDGoogle = *body.IDGoogle
	}
	if body.Title != nil {
		book.BookTitle = *body.Title
	}
	if body.Thumbnail != nil {
		book.BookThumbnail = body.Thumbnail
	}
	if body.FormatType != nil {
		book.BookFormat = *body.FormatType
	}
	if body.Total != nil {
		book.BookTotal = *body.Total
	}
	if body.TotalPage != nil {
		book.BookTotalPage = body.TotalPage
	}
	if body.AmazonDP != nil {
		book.BookAmazonDP = body.AmazonDP
	}

	if err := ctrl.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&book).Error; err != nil {
			return err
		}
		if body.Authors != nil {
			return bookService.ReplaceBookAuthors(tx, book.BookID, *body.Authors)
		}
		return nil
	}); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memperbarui buku")
	}

	views, err := ctrl.buildBookViews([]bookModel.BookModel{book})
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyusun data buku")
	}
	return helper.JsonUpdated(c, "Buku berhasil diperbarui", views[0])
}

// =======================
// 🗑️ Delete Book
// =======================
func (ctrl *BookController) DeleteBook(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "User tidak terautentikasi")
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID buku tidak valid")
	}

	var book bookModel.BookModel
	if err := ctrl.DB.First(&book, "book_id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return helper.JsonError(c, fiber.StatusNotFound, "Buku tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil buku")
	}
	if book.BookUserID != userID {
		return helper.JsonError(c, fiber.StatusForbidden, "Bukan pemilik buku ini")
	}

	if err := ctrl.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("status_log_book_id = ?", id).Delete(&progressModel.StatusLogModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("note_book_id = ?", id).Delete(&noteModel.NoteModel{}).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM book_authors WHERE book_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&book).Error; err != nil {
			return err
		}
		return bookService.DeleteOrphanAuthors(tx)
	}); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghapus buku")
	}

	return helper.JsonDeleted(c, "Buku berhasil dihapus", fiber.Map{"id": id})
}

/* ===============================
   Internal query/view builders
=================================*/

// Urutan list mengikuti aktivitas terakhir: buku yang baru dicatat
// progress-nya naik ke atas, buku tanpa progress pakai tanggal dibuat.
const lastActivityOrder = `COALESCE((SELECT MAX(sl.status_log_created_at) FROM status_logs sl WHERE sl.status_log_book_id = books.book_id), books.book_created_at) DESC`

// bookSearchCriteria membaca seluruh parameter pencarian buku. Varian _or
// memperluas hasil filter lain (perilaku union API lama).
func bookSearchCriteria(c *fiber.Ctx) *helper.SearchCriteria {
	full := helper.SearchFields{
		Like:  []string{"books.book_title", "a.author_name"},
		Exact: []string{"books.book_amazon_dp"},
	}
	titleOnly := helper.SearchFields{Like: []string{"books.book_title"}}
	authorsOnly := helper.SearchFields{Like: []string{"a.author_name"}}

	criteria := &helper.SearchCriteria{}
	criteria.And(full, c.Query("q"))
	criteria.And(titleOnly, c.Query("title"))
	criteria.And(authorsOnly, c.Query("authors"))
	criteria.Or(full, c.Query("q_or"))
	criteria.Or(titleOnly, c.Query("title_or"))
	criteria.Or(authorsOnly, c.Query("authors_or"))
	return criteria
}

func (ctrl *BookController) baseQuery(criteria *helper.SearchCriteria) *gorm.DB {
	tx := ctrl.DB.Model(&bookModel.BookModel{})
	if criteria.Empty() {
		return tx
	}
	sub := ctrl.DB.Model(&bookModel.BookModel{}).
		Select("books.book_id").
		Joins("LEFT JOIN book_authors ba ON ba.book_id = books.book_id").
		Joins("LEFT JOIN authors a ON a.author_id = ba.author_id")
	sub = criteria.Apply(sub)
	return tx.Where("books.book_id IN (?)", sub)
}

// bookIDsByState mengklasifikasikan setiap kandidat dari event terbarunya
// (tanpa event = to_be_read) lalu mengembalikan ID yang cocok.
func (ctrl *BookController) bookIDsByState(criteria *helper.SearchCriteria, want progressService.State) ([]uuid.UUID, error) {
	var candidates []bookModel.BookModel
	if err := ctrl.baseQuery(criteria).
		Select("books.book_id, books.book_total").
		Find(&candidates).Error; err != nil {
		return nil, err
	}

	type latestRow struct {
		BookID   uuid.UUID `gorm:"column:book_id"`
		Position int       `gorm:"column:position"`
	}
	var rows []latestRow
	if err := ctrl.DB.Raw(`
		SELECT DISTINCT ON (status_log_book_id)
		       status_log_book_id AS book_id,
		       status_log_position AS position
		FROM status_logs
		ORDER BY status_log_book_id, status_log_created_at DESC, status_log_id DESC
	`).Scan(&rows).Error; err != nil {
		return nil, err
	}
	latest := make(map[uuid.UUID]int, len(rows))
	for _, r := range rows {
		latest[r.BookID] = r.Position
	}

	ids := make([]uuid.UUID, 0, len(candidates))
	for _, b := range candidates {
		if progressService.ClassifyState(latest[b.BookID], b.BookTotal) == want {
			ids = append(ids, b.BookID)
		}
	}
	return ids, nil
}

// buildBookViews merakit BookView untuk satu halaman buku dengan jumlah
// query tetap: authors, status logs, dan notes masing-masing satu query.
func (ctrl *BookController) buildBookViews(books []bookModel.BookModel) ([]BookView, error) {
	ids := make([]uuid.UUID, 0, len(books))
	for _, b := range books {
		ids = append(ids, b.BookID)
	}

	views := make([]BookView, 0, len(books))
	if len(ids) == 0 {
		return views, nil
	}

	authors, err := bookService.AuthorNamesByBook(ctrl.DB, ids)
	if err != nil {
		return nil, err
	}

	var events []progressModel.StatusLogModel
	if err := ctrl.DB.
		Where("status_log_book_id IN ?", ids).
		Find(&events).Error; err != nil {
		return nil, err
	}
	history := progressService.NewHistory(events)

	var notes []noteModel.NoteModel
	if err := ctrl.DB.
		Where("note_book_id IN ?", ids).
		Order("note_created_at DESC").
		Find(&notes).Error; err != nil {
		return nil, err
	}
	notesByBook := make(map[uuid.UUID][]noteModel.NoteModel)
	for _, n := range notes {
		notesByBook[n.NoteBookID] = append(notesByBook[n.NoteBookID], n)
	}

	for i := range books {
		b := &books[i]
		view := BookView{
			BookDTO: bookDto.ToBookDTO(*b, authors[b.BookID]),
			Status:  make([]progressDto.StatusLogDTO, 0),
			Notes:   make([]noteDto.NoteDTO, 0),
		}
		for _, ev := range history.ForBook(b.BookID) {
			view.Status = append(view.Status, progressDto.ToStatusLogDTO(ev, b, history, nil))
		}
		for _, n := range notesByBook[b.BookID] {
			view.Notes = append(view.Notes, noteDto.ToNoteDTO(n, nil))
		}
		views = append(views, view)
	}
	return views, nil
}
