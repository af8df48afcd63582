package route

import (
	"bookshelf_backend/internals/features/library/books/controller"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// BookRoutes mendaftarkan endpoint buku. Baca publik, tulis wajib login.
func BookRoutes(api fiber.Router, optionalAuth, requireAuth fiber.Handler, db *gorm.DB) {
	bookCtrl := controller.NewBookController(db)

	api.Get("/book", optionalAuth, bookCtrl.GetBooks)        // 📄 List + search + filter status
	api.Get("/book/:id", optionalAuth, bookCtrl.GetBookByID) // 🔍 Detail + status + notes

	api.Post("/book", requireAuth, bookCtrl.CreateBook)       // ➕ Tambah buku
	api.Put("/book/:id", requireAuth, bookCtrl.UpdateBook)    // ✏️ Update penuh
	api.Patch("/book/:id", requireAuth, bookCtrl.UpdateBook)  // ✏️ Update sebagian
	api.Delete("/book/:id", requireAuth, bookCtrl.DeleteBook) // 🗑️ Hapus
}
