package route

import (
	"bookshelf_backend/internals/features/library/progress/controller"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// StatusLogRoutes mendaftarkan endpoint progress membaca.
func StatusLogRoutes(api fiber.Router, optionalAuth, requireAuth fiber.Handler, db *gorm.DB) {
	statusCtrl := controller.NewStatusLogController(db)

	api.Get("/status", optionalAuth, statusCtrl.GetStatusLogs)        // 📄 List + filter tanggal/buku
	api.Get("/status/:id", optionalAuth, statusCtrl.GetStatusLogByID) // 🔍 Detail

	api.Post("/status", requireAuth, statusCtrl.CreateStatusLog)       // ➕ Catat progress
	api.Delete("/status/:id", requireAuth, statusCtrl.DeleteStatusLog) // 🗑️ Hapus
}

// AnalyticsRoutes mendaftarkan endpoint analitik; semuanya per-user,
// jadi wajib login.
func AnalyticsRoutes(api fiber.Router, requireAuth fiber.Handler, db *gorm.DB) {
	analyticsCtrl := controller.NewAnalyticsController(db)

	api.Get("/analytics", requireAuth, analyticsCtrl.GetAnalytics)  // 📊 Ringkasan lengkap
	api.Get("/author", requireAuth, analyticsCtrl.GetAuthorRanking) // 🏆 Ranking pengarang
	api.Get("/pages", requireAuth, analyticsCtrl.GetPagesDaily)     // 📈 Halaman per hari
}
