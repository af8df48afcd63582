// internals/middlewares/auth/auth_middleware.go
package auth

import (
	"errors"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"bookshelf_backend/internals/configs"
	authModel "bookshelf_backend/internals/features/users/auth/model"
	userModel "bookshelf_backend/internals/features/users/user/model"
	helper "bookshelf_backend/internals/helpers"
)

// AuthMiddleware mewajibkan access token valid, mengecek blacklist,
// dan menyimpan user_id + token mentah ke Locals.
func AuthMiddleware(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, err := extractBearerToken(c)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, err.Error())
		}
		return authenticate(c, db, tokenString)
	}
}

// OptionalAuthMiddleware: identik dengan AuthMiddleware kalau ada token,
// tapi request tanpa token tetap lewat (untuk endpoint read-only publik).
func OptionalAuthMiddleware(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, err := extractBearerToken(c)
		if err != nil {
			return c.Next()
		}
		return authenticate(c, db, tokenString)
	}
}

func authenticate(c *fiber.Ctx, db *gorm.DB, tokenString string) error {
	// 1) Cek blacklist (sekali per request)
	if c.Locals("token_checked") == nil {
		var existing authModel.TokenBlacklist
		if err := db.Where("token = ? AND deleted_at IS NULL", tokenString).First(&existing).Error; err == nil {
			log.Println("[WARNING] Token ditemukan di blacklist")
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Token is blacklisted")
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Println("[ERROR] DB error saat cek blacklist:", err)
			return fiber.NewError(fiber.StatusInternalServerError, "Internal Server Error")
		}
		c.Locals("token_checked", true)
	}

	// 2) Parse & verifikasi JWT
	if configs.JWTSecret == "" {
		log.Println("[ERROR] JWT_SECRET kosong")
		return fiber.NewError(fiber.StatusInternalServerError, "Missing JWT Secret")
	}
	userID, err := helper.ParseToken(tokenString, configs.JWTSecret)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - "+err.Error())
	}

	// 3) Validasi user masih aktif
	var user userModel.UserModel
	if err := db.Select("id", "is_active").First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - User not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Internal Server Error")
	}
	if !user.IsActive {
		return fiber.NewError(fiber.StatusForbidden, "Akun Anda telah dinonaktifkan")
	}

	c.Locals("user_id", userID.String())
	c.Locals("access_token", tokenString)
	return c.Next()
}

func extractBearerToken(c *fiber.Ctx) (string, error) {
	header := c.Get("Authorization")
	if header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
			return "", errors.New("format Authorization header tidak valid")
		}
		return strings.TrimSpace(parts[1]), nil
	}
	if cookie := strings.TrimSpace(c.Cookies("access_token")); cookie != "" {
		return cookie, nil
	}
	return "", errors.New("token tidak ditemukan")
}
