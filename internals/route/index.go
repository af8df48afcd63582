// file: internals/route/index.go
package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authMiddleware "bookshelf_backend/internals/middlewares/auth"
	routeDetails "bookshelf_backend/internals/route/details"
)

var startTime time.Time

// SetupRoutes memasang seluruh endpoint di bawah /api/v1.
// Middleware auth dipasang per route: optionalAuth untuk endpoint baca
// publik, requireAuth untuk endpoint tulis dan data per-user.
func SetupRoutes(app *fiber.App, db *gorm.DB) {
	startTime = time.Now()

	api := app.Group("/api/v1")
	optionalAuth := authMiddleware.OptionalAuthMiddleware(db)
	requireAuth := authMiddleware.AuthMiddleware(db)

	log.Println("[INFO] Mounting Auth & User routes...")
	routeDetails.AuthRoutes(api, requireAuth, db)

	log.Println("[INFO] Mounting Library routes...")
	routeDetails.LibraryRoutes(api, optionalAuth, requireAuth, db)
}
