package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authController "bookshelf_backend/internals/features/users/auth/controller"
	"bookshelf_backend/internals/middlewares"
)

// AuthRoutes mendaftarkan endpoint autentikasi. Semuanya terbuka: refresh
// dan logout justru dipanggil saat access token sudah kadaluarsa, jadi
// tidak boleh dijaga middleware token. Login & register dapat rate
// limiter lebih ketat dari limiter global.
func AuthRoutes(api fiber.Router, db *gorm.DB) {
	authCtrl := authController.NewAuthController(db)

	api.Post("/auth/register", middlewares.RegisterRateLimiter(), authCtrl.Register) // 🆕 Daftar
	api.Post("/auth/login", middlewares.LoginRateLimiter(), authCtrl.Login)          // 🔑 Login email+password
	api.Post("/auth/google", middlewares.LoginRateLimiter(), authCtrl.LoginGoogle)   // 🔑 Login Google ID token
	api.Post("/auth/refresh", authCtrl.RefreshToken)                                 // ♻️ Rotasi token
	api.Post("/auth/logout", authCtrl.Logout)                                        // 🚪 Logout + blacklist (idempoten)
}
