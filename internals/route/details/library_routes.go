package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	bookRoute "bookshelf_backend/internals/features/library/books/route"
	noteRoute "bookshelf_backend/internals/features/library/notes/route"
	progressRoute "bookshelf_backend/internals/features/library/progress/route"
)

func LibraryRoutes(api fiber.Router, optionalAuth, requireAuth fiber.Handler, db *gorm.DB) {
	bookRoute.BookRoutes(api, optionalAuth, requireAuth, db)
	progressRoute.StatusLogRoutes(api, optionalAuth, requireAuth, db)
	progressRoute.AnalyticsRoutes(api, requireAuth, db)
	noteRoute.NoteRoutes(api, optionalAuth, requireAuth, db)
}
