package signature

import (
	"encoding/base64"
	"strings"

	"github.com/pkg/errors"
)

const (
	MinPayloadChars = 100
	MinDecodedBytes = 100

	defaultPrefix = "data:image/png;base64,"
)

var (
	ErrInvalidSignatureFormat      = errors.New("invalid signature format")
	ErrSignatureTooSmall           = errors.New("signature is too small")
	ErrInvalidSignatureEncoding    = errors.New("invalid signature encoding")
	ErrSignaturePersistenceFailed  = errors.New("signature could not be saved")
	ErrSignatureVerificationFailed = errors.New("signature could not be verified after saving")
	ErrUnsupportedSignatureFile    = errors.New("unsupported signature file type")
)

var whitespaceReplacer = strings.NewReplacer("\r", "", "\n", "", "\t", "", " ", "+")

// NormalizeDataURL приводит подпись с холста к виду data:image/...;base64,<payload>.
// Чинит: префикс без media type, префикс без "data:", голый base64.
// Пробелы в base64 возвращаются в "+" (форма кодирует их при отправке).
func NormalizeDataURL(raw string) string {
	s := whitespaceReplacer.Replace(strings.TrimSpace(raw))
	lower := strings.ToLower(s)
	switch {
	case strings.HasPrefix(lower, "data:;base64,"):
		return defaultPrefix + s[len("data:;base64,"):]
	case strings.HasPrefix(lower, "data:base64,"):
		return defaultPrefix + s[len("data:base64,"):]
	case strings.HasPrefix(lower, "data:"):
		return s
	case strings.HasPrefix(lower, "image/") && strings.Contains(lower, ";base64,"):
		return "data:" + s
	case strings.HasPrefix(lower, ";base64,"):
		return "data:image/png" + s
	case strings.HasPrefix(lower, "base64,"):
		return "data:image/png;" + s
	}
	return defaultPrefix + s
}

// DecodeDataURL проверяет нормализованную строку и возвращает байты изображения
func DecodeDataURL(dataURL string) ([]byte, error) {
	header, payload, found := strings.Cut(dataURL, ",")
	if !found {
		return nil, ErrInvalidSignatureFormat
	}
	header = strings.ToLower(header)
	if !strings.HasPrefix(header, "data:image/") || !strings.HasSuffix(header, ";base64") {
		return nil, ErrInvalidSignatureFormat
	}
	if len(payload) < MinPayloadChars {
		return nil, ErrSignatureTooSmall
	}
	body, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		body, err = base64.RawStdEncoding.DecodeString(strings.TrimRight(payload, "="))
		if err != nil {
			return nil, ErrInvalidSignatureEncoding
		}
	}
	if len(body) < MinDecodedBytes {
		return nil, ErrSignatureTooSmall
	}
	return body, nil
}

// MediaType media type из заголовка data url, image/png по умолчанию
func MediaType(dataURL string) string {
	header, _, found := strings.Cut(dataURL, ",")
	if !found {
		return "image/png"
	}
	header = strings.TrimPrefix(strings.ToLower(header), "data:")
	mediaType, _, _ := strings.Cut(header, ";")
	if mediaType == "" {
		return "image/png"
	}
	return mediaType
}
