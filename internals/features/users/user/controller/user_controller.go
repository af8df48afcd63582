package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	progressController "bookshelf_backend/internals/features/library/progress/controller"
	"bookshelf_backend/internals/features/users/user/dto"
	"bookshelf_backend/internals/features/users/user/model"
	helper "bookshelf_backend/internals/helpers"
)

var validateUser = validator.New()

// authorsHeadOnMe: /users/me hanya butuh ranking pengarang teratas
// untuk widget profil, bukan daftar lengkap.
const authorsHeadOnMe = 8

type UserController struct {
	DB        *gorm.DB
	Analytics *progressController.AnalyticsController
}

func NewUserController(db *gorm.DB) *UserController {
	return &UserController{
		DB:        db,
		Analytics: progressController.NewAnalyticsController(db),
	}
}

// MeView = profil user + ringkasan analitik sejak bergabung.
type MeView struct {
	dto.UserDTO
	Analytics any `json:"analytics"`
}

// =======================
// 👤 Get Me
// =======================
func (ctrl *UserController) GetMe(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "User tidak terautentikasi")
	}

	var user model.UserModel
	if err := ctrl.DB.First(&user, "id = ?", userID).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "User tidak ditemukan")
	}

	analytics, err := ctrl.Analytics.BuildAnalytics(userID, ctrl.Analytics.DefaultWindow(user.DateJoined), authorsHeadOnMe)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memuat data analitik")
	}

	return helper.JsonOK(c, "OK", MeView{
		UserDTO:   dto.ToUserDTO(user),
		Analytics: analytics,
	})
}

// =======================
// ✏️ Update Me (multipart, PUT/PATCH)
// Field: username, first_name, last_name, preferences, avatar (file)
// =======================
func (ctrl *UserController) UpdateMe(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "User tidak terautentikasi")
	}

	var user model.UserModel
	if err := ctrl.DB.First(&user, "id = ?", userID).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "User tidak ditemukan")
	}

	form, err := c.MultipartForm()
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Form multipart tidak valid")
	}

	// Field yang tidak dikirim dibiarkan; first_name/last_name boleh
	// dikirim kosong untuk mengosongkan nama.
	var body dto.UpdateUserRequest
	body.UserName = formString(form.Value, "username")
	body.FirstName = formString(form.Value, "first_name")
	body.LastName = formString(form.Value, "last_name")
	body.Preferences = formString(form.Value, "preferences")
	if err := validateUser.Struct(&body); err != nil {
		return helper.ValidatorError(c, err)
	}

	if body.UserName != nil && *body.UserName != "" {
		user.UserName = *body.UserName
	}
	if body.FirstName != nil {
		user.FirstName = *body.FirstName
	}
	if body.LastName != nil {
		user.LastName = *body.LastName
	}
	if body.Preferences != nil && *body.Preferences != "" {
		user.Preferences = datatypes.JSON(*body.Preferences)
	}
	if fh, err := c.FormFile("avatar"); err == nil && fh != nil {
		path, err := helper.SaveAvatarWebp(fh)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Gagal memproses avatar")
		}
		user.Avatar = &path
	}

	if err := ctrl.DB.Save(&user).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memperbarui profil")
	}
	return helper.JsonUpdated(c, "Profil berhasil diperbarui", dto.ToUserDTO(user))
}

// formString membedakan field yang absen (nil) dari field yang dikirim
// dengan nilai kosong (pointer ke ""), supaya PATCH bisa mengosongkan field.
func formString(values map[string][]string, key string) *string {
	vs, ok := values[key]
	if !ok || len(vs) == 0 {
		return nil
	}
	v := vs[0]
	return &v
}
