// file: internals/helpers/convert_image.go
package helper

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	"github.com/google/uuid"

	"bookshelf_backend/internals/configs"
)

// Preset ukuran thumbnail.
const (
	AvatarSize     = 128 // persegi, crop fill
	QuoteMaxWidth  = 350
	QuoteMaxHeight = 1400
)

// SaveAvatarWebp menyimpan avatar sebagai webp 128x128 (crop fill).
// Return path relatif terhadap MEDIA_ROOT.
func SaveAvatarWebp(fileHeader *multipart.FileHeader) (string, error) {
	return saveWebp(fileHeader, "avatars", func(img image.Image) image.Image {
		return imaging.Fill(img, AvatarSize, AvatarSize, imaging.Center, imaging.Lanczos)
	})
}

// SaveQuoteImageWebp menyimpan gambar kutipan, di-resize maksimal 350px lebar.
func SaveQuoteImageWebp(fileHeader *multipart.FileHeader) (string, error) {
	return saveWebp(fileHeader, "quotes", func(img image.Image) image.Image {
		return imaging.Fit(img, QuoteMaxWidth, QuoteMaxHeight, imaging.Lanczos)
	})
}

func saveWebp(fileHeader *multipart.FileHeader, folder string, transform func(image.Image) image.Image) (string, error) {
	src, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("gagal membuka file gambar: %w", err)
	}
	defer src.Close()

	img, _, err := image.Decode(src)
	if err != nil {
		// fallback: mungkin sumbernya sudah webp
		if _, seekErr := src.Seek(0, 0); seekErr != nil {
			return "", fmt.Errorf("format gambar tidak dikenali: %w", err)
		}
		img, err = webp.Decode(src)
		if err != nil {
			return "", fmt.Errorf("format gambar tidak dikenali: %w", err)
		}
	}

	img = transform(img)

	dir := filepath.Join(configs.MediaRoot, folder)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("gagal membuat direktori media: %w", err)
	}

	name := uuid.New().String() + ".webp"
	out, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return "", fmt.Errorf("gagal menulis file media: %w", err)
	}
	defer out.Close()

	if err := webp.Encode(out, img, &webp.Options{Lossless: false, Quality: 85}); err != nil {
		return "", fmt.Errorf("gagal encode webp: %w", err)
	}

	return path.Join(folder, name), nil
}

// PublicMediaURL mengubah path media relatif menjadi URL absolut.
// Path yang sudah absolut (thumbnail eksternal) dikembalikan apa adanya.
func PublicMediaURL(p string) string {
	if p == "" {
		return ""
	}
	if strings.HasPrefix(p, "http://") || strings.HasPrefix(p, "https://") {
		return p
	}
	return configs.HostURL + "/media/" + p
}
