package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authRoute "bookshelf_backend/internals/features/users/auth/route"
	userRoute "bookshelf_backend/internals/features/users/user/route"
)

func AuthRoutes(api fiber.Router, requireAuth fiber.Handler, db *gorm.DB) {
	authRoute.AuthRoutes(api, db)
	userRoute.UserRoutes(api, requireAuth, db)
}
