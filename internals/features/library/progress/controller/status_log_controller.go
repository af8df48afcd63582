package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	bookDto "bookshelf_backend/internals/features/library/books/dto"
	bookModel "bookshelf_backend/internals/features/library/books/model"
	bookService "bookshelf_backend/internals/features/library/books/service"
	"bookshelf_backend/internals/features/library/progress/dto"
	"bookshelf_backend/internals/features/library/progress/model"
	"bookshelf_backend/internals/features/library/progress/service"
	helper "bookshelf_backend/internals/helpers"
)

var validateStatusLog = validator.New()

type StatusLogController struct {
	DB *gorm.DB
}

func NewStatusLogController(db *gorm.DB) *StatusLogController {
	return &StatusLogController{DB: db}
}

// =======================
// 🧾 Get Status Logs (paginated)
// Query: ?page= &created_at__gte= &created_at__lte= &title= &authors= &amazon_dp= &q=
// =======================
func (ctrl *StatusLogController) GetStatusLogs(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, helper.DefaultPageSize, 100)

	tx := ctrl.DB.Model(&model.StatusLogModel{}).
		Joins("JOIN books ON books.book_id = status_logs.status_log_book_id")

	if t, err := helper.ParseTimeParam(c.Query("created_at__gte")); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "created_at__gte tidak valid")
	} else if t != nil {
		tx = tx.Where("status_logs.status_log_created_at >= ?", *t)
	}
	if t, err := helper.ParseTimeParam(c.Query("created_at__lte")); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "created_at__lte tidak valid")
	} else if t != nil {
		tx = tx.Where("status_logs.status_log_created_at <= ?", *t)
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
	if q := c.Query("q"); q != "" {
		sub := ctrl.DB.Model(&bookModel.BookModel{}).
			Select("books.book_id").
			Joins("LEFT JOIN book_authors ba ON ba.book_id = books.book_id").
			Joins("LEFT JOIN authors a ON a.author_id = ba.author_id")
		sub = helper.ApplySearch(sub, helper.SearchFields{
			Like:  []string{"books.book_title", "a.author_name"},
			Exact: []string{"books.book_amazon_dp"},
		}, q)
		tx = tx.Where("books.book_id IN (?)", sub)
	}

	var total int64
	if err := tx.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung status log")
	}

	var events []model.StatusLogModel
	if err := tx.
		Order("status_logs.status_log_created_at DESC").
		Limit(paging.Limit).
		Offset(paging.Offset).
		Find(&events).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil status log")
	}

	items, err := ctrl.buildStatusLogDTOs(events)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyusun status log")
	}
	return helper.JsonPage(c, helper.BuildPage(c, items, total, paging))
}

// =======================
// 🔍 Get Status Log Detail
// =======================
func (ctrl *StatusLogController) GetStatusLogByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID status log tidak valid")
	}

	var ev model.StatusLogModel
	if err := ctrl.DB.First(&ev, "status_log_id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return helper.JsonError(c, fiber.StatusNotFound, "Status log tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil status log")
	}

	items, err := ctrl.buildStatusLogDTOs([]model.StatusLogModel{ev})
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyusun status log")
	}
	return helper.JsonOK(c, "OK", items[0])
}

// =======================
// ➕ Create Status Log
// Position 0 = paused; posisi sama dengan sebelumnya sah (diff = 0).
// =======================
func (ctrl *StatusLogController) CreateStatusLog(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "User tidak terautentikasi")
	}

	var body dto.CreateStatusLogRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body request tidak valid")
	}
	if err := validateStatusLog.Struct(&body); err != nil {
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

	ev := model.StatusLogModel{
		StatusLogBookID:   book.BookID,
		StatusLogPosition: body.Position,
		StatusLogUserID:   userID,
	}
	if err := ctrl.DB.Create(&ev).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyimpan status log")
	}

	items, err := ctrl.buildStatusLogDTOs([]model.StatusLogModel{ev})
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyusun status log")
	}
	return helper.JsonCreated(c, "Status log berhasil dibuat", items[0])
}

// =======================
// 🗑️ Delete Status Log
// =======================
func (ctrl *StatusLogController) DeleteStatusLog(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "User tidak terautentikasi")
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID status log tidak valid")
	}

	var ev model.StatusLogModel
	if err := ctrl.DB.First(&ev, "status_log_id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return helper.JsonError(c, fiber.StatusNotFound, "Status log tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil status log")
	}
	if ev.StatusLogUserID != userID {
		return helper.JsonError(c, fiber.StatusForbidden, "Bukan pemilik status log ini")
	}

	if err := ctrl.DB.Delete(&ev).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghapus status log")
	}
	return helper.JsonDeleted(c, "Status log berhasil dihapus", fiber.Map{"id": id})
}

/* ===============================
   Internal view builder
=================================*/

// buildStatusLogDTOs merakit DTO untuk satu halaman event. Diff butuh
// predecessor yang bisa berada di luar halaman (atau di luar filter
// tanggal), jadi history dimuat penuh untuk semua buku yang terlibat.
func (ctrl *StatusLogController) buildStatusLogDTOs(events []model.StatusLogModel) ([]dto.StatusLogDTO, error) {
	items := make([]dto.StatusLogDTO, 0, len(events))
	if len(events) == 0 {
		return items, nil
	}

	idSet := make(map[uuid.UUID]struct{})
	for _, ev := range events {
		idSet[ev.StatusLogBookID] = struct{}{}
	}
	ids := make([]uuid.UUID, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}

	var books []bookModel.BookModel
	if err := ctrl.DB.Where("book_id IN ?", ids).Find(&books).Error; err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]*bookModel.BookModel, len(books))
	for i := range books {
		byID[books[i].BookID] = &books[i]
	}

	authors, err := bookService.AuthorNamesByBook(ctrl.DB, ids)
	if err != nil {
		return nil, err
	}

	var full []model.StatusLogModel
	if err := ctrl.DB.Where("status_log_book_id IN ?", ids).Find(&full).Error; err != nil {
		return nil, err
	}
	history := service.NewHistory(full)

	for _, ev := range events {
		book := byID[ev.StatusLogBookID]
		if book == nil {
			continue
		}
		view := bookDto.ToBookDTO(*book, authors[book.BookID])
		items = append(items, dto.ToStatusLogDTO(ev, book, history, &view))
	}
	return items, nil
}
