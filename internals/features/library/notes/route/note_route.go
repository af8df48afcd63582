package route

import (
	"bookshelf_backend/internals/features/library/notes/controller"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// NoteRoutes mendaftarkan endpoint catatan baca.
func NoteRoutes(api fiber.Router, optionalAuth, requireAuth fiber.Handler, db *gorm.DB) {
	noteCtrl := controller.NewNoteController(db)

	api.Get("/note", optionalAuth, noteCtrl.GetNotes)        // 📄 List + filter buku
	api.Get("/note/:id", optionalAuth, noteCtrl.GetNoteByID) // 🔍 Detail

	api.Post("/note", requireAuth, noteCtrl.CreateNote)       // ➕ Tambah catatan (multipart)
	api.Put("/note/:id", requireAuth, noteCtrl.UpdateNote)    // ✏️ Update penuh
	api.Patch("/note/:id", requireAuth, noteCtrl.UpdateNote)  // ✏️ Update sebagian
	api.Delete("/note/:id", requireAuth, noteCtrl.DeleteNote) // 🗑️ Hapus
}
