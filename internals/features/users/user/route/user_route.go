package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	userController "bookshelf_backend/internals/features/users/user/controller"
)

// UserRoutes mendaftarkan endpoint profil. Semuanya wajib login.
func UserRoutes(api fiber.Router, requireAuth fiber.Handler, db *gorm.DB) {
	userCtrl := userController.NewUserController(db)

	api.Get("/users/me", requireAuth, userCtrl.GetMe)      // 👤 Profil + analitik
	api.Put("/users/me", requireAuth, userCtrl.UpdateMe)   // ✏️ Update penuh
	api.Patch("/users/me", requireAuth, userCtrl.UpdateMe) // ✏️ Update sebagian
}
