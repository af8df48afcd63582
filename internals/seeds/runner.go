package seeds

import (
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	bookModel "bookshelf_backend/internals/features/library/books/model"
	bookService "bookshelf_backend/internals/features/library/books/service"
	progressModel "bookshelf_backend/internals/features/library/progress/model"
	userModel "bookshelf_backend/internals/features/users/user/model"
)

// RunAllSeeds mengisi data demo untuk development. Idempoten: tidak
// melakukan apa-apa kalau sudah ada user.
func RunAllSeeds(db *gorm.DB) {
	var count int64
	if err := db.Model(&userModel.UserModel{}).Count(&count).Error; err != nil {
		log.Printf("[SEED ERROR] Gagal cek user: %v", err)
		return
	}
	if count > 0 {
		log.Println("[SEED] Data sudah ada, skip seeding")
		return
	}

	hash, _ := bcrypt.GenerateFromPassword([]byte("demo12345"), bcrypt.DefaultCost)
	user := userModel.UserModel{
		UserName: "demo",
		Email:    "demo@example.com",
		Password: string(hash),
		IsActive: true,
	}
	if err := db.Create(&user).Error; err != nil {
		log.Printf("[SEED ERROR] Gagal membuat user demo: %v", err)
		return
	}

	totalPage := 220
	books := []struct {
		model   bookModel.BookModel
		authors []string
		// posisi progress berurutan; 0 = paused
		positions []int
	}{
		{
			model: bookModel.BookModel{
				BookTitle:  "ノルウェイの森",
				BookFormat: bookModel.FormatPaged,
				BookTotal:  296,
				BookUserID: user.ID,
			},
			authors:   []string{"村上春樹"},
			positions: []int{35, 120, 0},
		},
		{
			model: bookModel.BookModel{
				BookTitle:     "Snow Country",
				BookFormat:    bookModel.FormatLocation,
				BookTotal:     2500,
				BookTotalPage: &totalPage,
				BookUserID:    user.ID,
			},
			authors:   []string{"川端康成"},
			positions: []int{991, 2500},
		},
		{
			model: bookModel.BookModel{
				BookTitle:  "The Go Programming Language",
				BookFormat: bookModel.FormatPaged,
				BookTotal:  380,
				BookUserID: user.ID,
			},
			authors: []string{"Alan A. A. Donovan", "Brian W. Kernighan"},
		},
	}

	for _, seed := range books {
		b := seed.model
		if err := db.Create(&b).Error; err != nil {
			log.Printf("[SEED ERROR] Gagal membuat buku %q: %v", b.BookTitle, err)
			continue
		}
		if err := bookService.ReplaceBookAuthors(db, b.BookID, seed.authors); err != nil {
			log.Printf("[SEED ERROR] Gagal set authors %q: %v", b.BookTitle, err)
		}
		// Event disebar mundur per hari supaya analitik demo punya riwayat.
		for i, pos := range seed.positions {
			ev := progressModel.StatusLogModel{
				StatusLogBookID:    b.BookID,
				StatusLogPosition:  pos,
				StatusLogUserID:    user.ID,
				StatusLogCreatedAt: time.Now().AddDate(0, 0, i-len(seed.positions)),
			}
			if err := db.Create(&ev).Error; err != nil {
				log.Printf("[SEED ERROR] Gagal membuat status log: %v", err)
			}
		}
	}

	log.Println("[SEED] Data demo selesai dibuat (user: demo@example.com / demo12345)")
}
