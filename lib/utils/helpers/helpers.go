package helpers

import (
	"context"
	"crypto/rand"
	"math/big"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

func IsContextDone(ctx context.Context) bool {
	if ctx == nil {
		return true
	}
	select {
	case <-ctx.Done():
		return true
	default:
	}
	return false
}

var matchNonSlug = regexp.MustCompile("[^a-z0-9]+")

// Slug имя для файлов: латиница, цифры и "_", не длиннее maxLen
func Slug(str string, maxLen int, fallback string) string {
	var b strings.Builder
	for _, r := range norm.NFD.String(str) {
		if unicode.Is(unicode.Mn, r) {
			// диакритика (á -> a)
			continue
		}
		b.WriteRune(unicode.ToLower(r))
	}
	slug := matchNonSlug.ReplaceAllString(b.String(), "_")
	slug = strings.Trim(slug, "_")
	if maxLen > 0 && len(slug) > maxLen {
		slug = strings.TrimRight(slug[:maxLen], "_")
	}
	if slug == "" {
		return fallback
	}
	return slug
}

const alphaNum = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// RandomString строка из [A-Z0-9] на crypto/rand
func RandomString(n int) (string, error) {
	max := big.NewInt(int64(len(alphaNum)))
	buf := make([]byte, n)
	for i := range buf {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		buf[i] = alphaNum[idx.Int64()]
	}
	return string(buf), nil
}
