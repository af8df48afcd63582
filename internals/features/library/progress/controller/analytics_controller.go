package controller

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	configs "bookshelf_backend/internals/configs"
	bookModel "bookshelf_backend/internals/features/library/books/model"
	bookService "bookshelf_backend/internals/features/library/books/service"
	"bookshelf_backend/internals/features/library/progress/model"
	"bookshelf_backend/internals/features/library/progress/service"
	userModel "bookshelf_backend/internals/features/users/user/model"
	helper "bookshelf_backend/internals/helpers"
)

type AnalyticsController struct {
	DB *gorm.DB
}

func NewAnalyticsController(db *gorm.DB) *AnalyticsController {
	return &AnalyticsController{DB: db}
}

// analyticsInput adalah snapshot data satu user yang dibutuhkan engine:
// seluruh event (history penuh), peta buku yang dirujuk, nama pengarang
// per buku, dan jumlah buku yang belum pernah dicatat progress-nya.
type analyticsInput struct {
	events    []model.StatusLogModel
	books     map[uuid.UUID]*bookModel.BookModel
	authors   map[uuid.UUID][]string
	history   *service.History
	unstarted int
}

func (ctrl *AnalyticsController) loadInput(userID uuid.UUID) (*analyticsInput, error) {
	var events []model.StatusLogModel
	if err := ctrl.DB.
		Where("status_log_user_id = ?", userID).
		Find(&events).Error; err != nil {
		return nil, err
	}

	idSet := make(map[uuid.UUID]struct{})
	for _, ev := range events {
		idSet[ev.StatusLogBookID] = struct{}{}
	}

	// Buku milik user ikut dimuat walau belum punya event, untuk hitungan
	// unstarted dan ranking pengarang.
	var owned []bookModel.BookModel
	if err := ctrl.DB.
		Where("book_user_id = ?", userID).
		Find(&owned).Error; err != nil {
		return nil, err
	}

	books := make(map[uuid.UUID]*bookModel.BookModel, len(owned))
	unstarted := 0
	for i := range owned {
		b := &owned[i]
		books[b.BookID] = b
		if _, ok := idSet[b.BookID]; !ok {
			unstarted++
		}
		delete(idSet, b.BookID)
	}

	// Event yang merujuk buku di luar koleksi user (edge case data lama).
	if len(idSet) > 0 {
		extra := make([]uuid.UUID, 0, len(idSet))
		for id := range idSet {
			extra = append(extra, id)
		}
		var rest []bookModel.BookModel
		if err := ctrl.DB.Where("book_id IN ?", extra).Find(&rest).Error; err != nil {
			return nil, err
		}
		for i := range rest {
			books[rest[i].BookID] = &rest[i]
		}
	}

	ids := make([]uuid.UUID, 0, len(books))
	for id := range books {
		ids = append(ids, id)
	}
	authors, err := bookService.AuthorNamesByBook(ctrl.DB, ids)
	if err != nil {
		return nil, err
	}

	return &analyticsInput{
		events:    events,
		books:     books,
		authors:   authors,
		history:   service.NewHistory(events),
		unstarted: unstarted,
	}, nil
}

// resolveWindow membaca filter tanggal dan memutuskan window analitik.
// Default: dari tanggal user bergabung sampai hari ini.
func (ctrl *AnalyticsController) resolveWindow(c *fiber.Ctx, userID uuid.UUID) (service.Window, error) {
	var user userModel.UserModel
	if err := ctrl.DB.First(&user, "id = ?", userID).Error; err != nil {
		return service.Window{}, err
	}

	from, err := helper.ParseTimeParam(c.Query("created_at__gte"))
	if err != nil {
		return service.Window{}, fiber.NewError(fiber.StatusBadRequest, "created_at__gte tidak valid")
	}
	to, err := helper.ParseTimeParam(c.Query("created_at__lte"))
	if err != nil {
		return service.Window{}, fiber.NewError(fiber.StatusBadRequest, "created_at__lte tidak valid")
	}

	return service.ResolveWindow(from, to, user.DateJoined, time.Now(), configs.TimeZone), nil
}

func filterWindow(events []model.StatusLogModel, w service.Window, loc *time.Location) []model.StatusLogModel {
	out := make([]model.StatusLogModel, 0, len(events))
	for _, ev := range events {
		if w.Contains(ev.StatusLogCreatedAt, loc) {
			out = append(out, ev)
		}
	}
	return out
}

// BuildAnalytics menjalankan seluruh agregat untuk satu user dalam satu
// window. authorsHead membatasi ranking pengarang (0 = tanpa batas).
// Dipakai endpoint /analytics dan embed di /users/me.
func (ctrl *AnalyticsController) BuildAnalytics(userID uuid.UUID, w service.Window, authorsHead int) (service.Analytics, error) {
	in, err := ctrl.loadInput(userID)
	if err != nil {
		return service.Analytics{}, err
	}

	loc := configs.TimeZone
	windowed := filterWindow(in.events, w, loc)

	return service.Analytics{
		NumberOfBooks: service.CountBooksByState(windowed, in.books, in.history, in.unstarted),
		PagesRead:     service.SumPagesRead(windowed, in.books, in.history, w, loc),
		Days:          service.ReadingDays(windowed, w, loc),
		AuthorsCount:  service.AuthorsRanking(in.authors, authorsHead),
		PagesDaily:    service.PagesDaily(windowed, in.books, in.history, loc, true),
	}, nil
}

// DefaultWindow: dari tanggal bergabung sampai sekarang.
func (ctrl *AnalyticsController) DefaultWindow(joined time.Time) service.Window {
	return service.ResolveWindow(nil, nil, joined, time.Now(), configs.TimeZone)
}

// Ringkasan analitik memotong ranking pengarang ke tampilan ringkas.
const authorsHeadOnAnalytics = 5

// =======================
// 📊 Get Analytics
// Query: ?created_at__gte= &created_at__lte=
// =======================
func (ctrl *AnalyticsController) GetAnalytics(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "User tidak terautentikasi")
	}

	w, err := ctrl.resolveWindow(c, userID)
	if err != nil {
		if fe, ok := err.(*fiber.Error); ok {
			return helper.JsonError(c, fe.Code, fe.Message)
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data user")
	}

	result, err := ctrl.BuildAnalytics(userID, w, authorsHeadOnAnalytics)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memuat data analitik")
	}
	return helper.JsonOK(c, "OK", result)
}

// =======================
// 🏆 Get Author Ranking
// Query: ?limit= (0 = tanpa batas)
// =======================
func (ctrl *AnalyticsController) GetAuthorRanking(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "User tidak terautentikasi")
	}

	head, _ := strconv.Atoi(c.Query("limit", "0"))
	if head < 0 {
		head = 0
	}

	in, err := ctrl.loadInput(userID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memuat data analitik")
	}
	return helper.JsonOK(c, "OK", service.AuthorsRanking(in.authors, head))
}

// =======================
// 📈 Get Pages Daily
// Query: ?created_at__gte= &created_at__lte= &order=asc|desc (default desc)
// =======================
func (ctrl *AnalyticsController) GetPagesDaily(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "User tidak terautentikasi")
	}

	w, err := ctrl.resolveWindow(c, userID)
	if err != nil {
		if fe, ok := err.(*fiber.Error); ok {
			return helper.JsonError(c, fe.Code, fe.Message)
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data user")
	}

	in, err := ctrl.loadInput(userID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memuat data analitik")
	}

	loc := configs.TimeZone
	windowed := filterWindow(in.events, w, loc)
	desc := c.Query("order", "desc") != "asc"

	return helper.JsonOK(c, "OK", service.PagesDaily(windowed, in.books, in.history, loc, desc))
}
