package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"fmt"
	"log"
	"strings"
	"time"

	googleAuthIDTokenVerifier "github.com/futurenda/google-auth-id-token-verifier"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"bookshelf_backend/internals/configs"
	authModel "bookshelf_backend/internals/features/users/auth/model"
	userDto "bookshelf_backend/internals/features/users/user/dto"
	userModel "bookshelf_backend/internals/features/users/user/model"
	helper "bookshelf_backend/internals/helpers"
)

/* ==========================
   Const & small helpers
========================== */

const (
	accessTTL  = 24 * time.Hour
	refreshTTL = 7 * 24 * time.Hour
)

func nowUTC() time.Time { return time.Now().UTC() }

func computeRefreshHash(token, secret string) []byte {
	m := hmac.New(sha256.New, []byte(secret))
	_, _ = m.Write([]byte(token))
	return m.Sum(nil)
}

// usernameFromEmail menurunkan username unik dari bagian lokal email.
// Tabrakan diselesaikan dengan suffix -1, -2, dst.
func usernameFromEmail(db *gorm.DB, email string) (string, error) {
	base := strings.ToLower(strings.SplitN(email, "@", 2)[0])
	if base == "" {
		base = "reader"
	}

	candidate := base
	for i := 0; ; i++ {
		if i > 0 {
			candidate = fmt.Sprintf("%s-%d", base, i)
		}
		var count int64
		if err := db.Model(&userModel.UserModel{}).
			Where("user_name = ?", candidate).
			Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return candidate, nil
		}
	}
}

/* ==========================
   REGISTER
========================== */

func Register(db *gorm.DB, c *fiber.Ctx) error {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&input); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body request tidak valid")
	}
	input.Email = strings.TrimSpace(strings.ToLower(input.Email))
	if input.Email == "" || !strings.Contains(input.Email, "@") {
		return helper.JsonError(c, fiber.StatusBadRequest, "Email tidak valid")
	}
	if len(input.Password) < 8 {
		return helper.JsonError(c, fiber.StatusBadRequest, "Password minimal 8 karakter")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal meng-hash password")
	}

	username, err := usernameFromEmail(db, input.Email)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat username")
	}

	user := userModel.UserModel{
		UserName: username,
		Email:    input.Email,
		Password: string(hash),
		IsActive: true,
	}
	if err := db.Create(&user).Error; err != nil {
		low := strings.ToLower(err.Error())
		if strings.Contains(low, "duplicate key") || strings.Contains(low, "unique") {
			return helper.JsonError(c, fiber.StatusBadRequest, "Email sudah terdaftar")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat user")
	}

	return helper.JsonCreated(c, "Registrasi berhasil", userDto.ToUserDTO(user))
}

/* ==========================
   LOGIN (email + password)
========================== */

func Login(db *gorm.DB, c *fiber.Ctx) error {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&input); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body request tidak valid")
	}
	input.Email = strings.TrimSpace(strings.ToLower(input.Email))

	var user userModel.UserModel
	if err := db.First(&user, "email = ?", input.Email).Error; err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Email atau password salah")
	}
	if !user.IsActive {
		return helper.JsonError(c, fiber.StatusForbidden, "Akun Anda telah dinonaktifkan")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Email atau password salah")
	}

	return issueTokens(c, db, user)
}

/* ==========================
   LOGIN GOOGLE
========================== */

func LoginGoogle(db *gorm.DB, c *fiber.Ctx) error {
	var input struct {
		IDToken string `json:"id_token"`
	}
	if err := c.BodyParser(&input); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body request tidak valid")
	}

	v := googleAuthIDTokenVerifier.Verifier{}
	if err := v.VerifyIDToken(input.IDToken, []string{configs.GoogleClientID}); err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Google ID token tidak valid")
	}
	claimSet, err := googleAuthIDTokenVerifier.Decode(input.IDToken)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membaca ID token")
	}
	email := strings.ToLower(claimSet.Email)
	googleID := claimSet.Sub

	var user userModel.UserModel
	err = db.First(&user, "google_id = ?", googleID).Error
	if err == gorm.ErrRecordNotFound {
		// Belum ada: tautkan ke akun email yang sama, atau buat baru.
		err = db.First(&user, "email = ?", email).Error
		if err == gorm.ErrRecordNotFound {
			username, uerr := usernameFromEmail(db, email)
			if uerr != nil {
				return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat username")
			}
			dummy, _ := bcrypt.GenerateFromPassword([]byte(uuid.NewString()), bcrypt.DefaultCost)
			user = userModel.UserModel{
				UserName:  username,
				Email:     email,
				Password:  string(dummy),
				FirstName: claimSet.GivenName,
				LastName:  claimSet.FamilyName,
				GoogleID:  &googleID,
				IsActive:  true,
			}
			if cerr := db.Create(&user).Error; cerr != nil {
				return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat user Google")
			}
		} else if err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data user")
		} else {
			user.GoogleID = &googleID
			if serr := db.Save(&user).Error; serr != nil {
				return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menautkan akun Google")
			}
		}
	} else if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data user")
	}

	if !user.IsActive {
		return helper.JsonError(c, fiber.StatusForbidden, "Akun Anda telah dinonaktifkan")
	}
	return issueTokens(c, db, user)
}

/* ==========================
   ISSUE TOKENS
========================== */

func issueTokens(c *fiber.Ctx, db *gorm.DB, user userModel.UserModel) error {
	now := nowUTC()

	accessToken, err := helper.CreateToken(user.ID, configs.JWTSecret, accessTTL)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat access token")
	}
	refreshToken, err := helper.CreateToken(user.ID, configs.JWTRefreshSecret, refreshTTL)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat refresh token")
	}

	rt := authModel.RefreshToken{
		UserID:    user.ID,
		TokenHash: computeRefreshHash(refreshToken, configs.JWTRefreshSecret),
		ExpiredAt: now.Add(refreshTTL),
	}
	if err := db.Create(&rt).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyimpan refresh token")
	}

	setAuthCookies(c, accessToken, refreshToken, now)

	return helper.JsonOK(c, "Login berhasil", fiber.Map{
		"user":         userDto.ToUserDTO(user),
		"access_token": accessToken,
	})
}

func setAuthCookies(c *fiber.Ctx, accessToken, refreshToken string, now time.Time) {
	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    accessToken,
		HTTPOnly: true,
		Secure:   true,
		SameSite: "None",
		Path:     "/",
		Expires:  now.Add(accessTTL),
	})
	c.Cookie(&fiber.Cookie{
		Name:     "refresh_token",
		Value:    refreshToken,
		HTTPOnly: true,
		Secure:   true,
		SameSite: "None",
		Path:     "/",
		Expires:  now.Add(refreshTTL),
	})
}

/* ==========================
   REFRESH TOKEN (rotasi)
========================== */

func RefreshToken(db *gorm.DB, c *fiber.Ctx) error {
	refreshCookie := strings.TrimSpace(c.Cookies("refresh_token"))
	if refreshCookie == "" {
		// fallback: body {"refresh": "..."} untuk klien non-cookie
		var body struct {
			Refresh string `json:"refresh"`
		}
		_ = c.BodyParser(&body)
		refreshCookie = strings.TrimSpace(body.Refresh)
	}
	if refreshCookie == "" {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Refresh token tidak ada")
	}

	userID, err := helper.ParseToken(refreshCookie, configs.JWTRefreshSecret)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Refresh token tidak valid")
	}

	hash := computeRefreshHash(refreshCookie, configs.JWTRefreshSecret)
	var stored authModel.RefreshToken
	if err := db.
		Where("token_hash = ? AND expired_at > ?", hash, nowUTC()).
		First(&stored).Error; err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Refresh token tidak dikenal")
	}

	var user userModel.UserModel
	if err := db.First(&user, "id = ?", userID).Error; err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "User tidak ditemukan")
	}
	if !user.IsActive {
		return helper.JsonError(c, fiber.StatusForbidden, "Akun Anda telah dinonaktifkan")
	}

	// ROTATE: token lama hangus sebelum yang baru diterbitkan.
	if err := db.Delete(&stored).Error; err != nil {
		log.Printf("[ERROR] Gagal menghapus refresh token lama: %v", err)
	}

	return issueTokens(c, db, user)
}

/* ==========================
   LOGOUT
========================== */

func Logout(db *gorm.DB, c *fiber.Ctx) error {
	accessToken, _ := c.Locals("access_token").(string)
	if accessToken == "" {
		accessToken = strings.TrimSpace(strings.TrimPrefix(c.Get("Authorization"), "Bearer "))
	}
	if accessToken == "" {
		accessToken = strings.TrimSpace(c.Cookies("access_token"))
	}

	if accessToken != "" {
		entry := authModel.TokenBlacklist{
			Token:     accessToken,
			ExpiredAt: resolveBlacklistExpiry(accessToken),
		}
		if err := db.Create(&entry).Error; err != nil {
			log.Printf("[ERROR] Gagal blacklist access token: %v", err)
		}
	}

	if rt := strings.TrimSpace(c.Cookies("refresh_token")); rt != "" {
		hash := computeRefreshHash(rt, configs.JWTRefreshSecret)
		if err := db.Where("token_hash = ?", hash).
			Delete(&authModel.RefreshToken{}).Error; err != nil {
			log.Printf("[ERROR] Gagal menghapus refresh token: %v", err)
		}
	}

	expired := nowUTC().Add(-time.Hour)
	for _, name := range []string{"access_token", "refresh_token"} {
		c.Cookie(&fiber.Cookie{
			Name:     name,
			Value:    "",
			HTTPOnly: true,
			Secure:   true,
			SameSite: "None",
			Path:     "/",
			Expires:  expired,
			MaxAge:   -1,
		})
	}

	return helper.JsonOK(c, "Logout berhasil", nil)
}

// resolveBlacklistExpiry membaca exp token supaya baris blacklist bisa
// dibersihkan begitu token aslinya kadaluarsa.
func resolveBlacklistExpiry(accessToken string) time.Time {
	fallback := nowUTC().Add(accessTTL)
	tok, err := jwt.Parse(accessToken, func(t *jwt.Token) (any, error) {
		return []byte(configs.JWTSecret), nil
	})
	if err != nil || !tok.Valid {
		return fallback
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return fallback
	}
	exp, ok := claims["exp"].(float64)
	if !ok {
		return fallback
	}
	return time.Unix(int64(exp), 0)
}
