package scheduler

import (
	"log"
	"time"

	"bookshelf_backend/internals/features/users/auth/model"

	"gorm.io/gorm"
)

// StartTokenCleanupScheduler membersihkan token yang sudah tidak berguna:
// access token di blacklist yang sudah kadaluarsa dan refresh token yang
// lewat masa berlakunya. Jalan tiap 24 jam di goroutine sendiri.
func StartTokenCleanupScheduler(db *gorm.DB) {
	go func() {
		for {
			log.Println("[CLEANUP] Menjalankan pembersihan token...")
			now := time.Now().UTC()

			res := db.Where("expired_at < ?", now).Delete(&model.TokenBlacklist{})
			if res.Error != nil {
				log.Printf("[CLEANUP ERROR] Gagal hapus blacklist: %v", res.Error)
			} else if res.RowsAffected > 0 {
				log.Printf("[CLEANUP] %d token blacklist kadaluarsa dihapus", res.RowsAffected)
			}

			res = db.Where("expired_at < ?", now).Delete(&model.RefreshToken{})
			if res.Error != nil {
				log.Printf("[CLEANUP ERROR] Gagal hapus refresh token: %v", res.Error)
			} else if res.RowsAffected > 0 {
				log.Printf("[CLEANUP] %d refresh token kadaluarsa dihapus", res.RowsAffected)
			}

			time.Sleep(24 * time.Hour)
		}
	}()
}
