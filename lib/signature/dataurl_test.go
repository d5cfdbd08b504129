package signature

import (
	"bytes"
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func pngLike(n int) []byte {
	body := append([]byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}, bytes.Repeat([]byte{0x42}, n)...)
	return body[:n]
}

func TestNormalizeDataURL(t *testing.T) {
	payload := base64.StdEncoding.EncodeToString(pngLike(120))
	full := "data:image/png;base64," + payload

	t.Run("корректная строка не меняется", func(t *testing.T) {
		require.Equal(t, full, NormalizeDataURL(full))
	})
	t.Run("голый base64", func(t *testing.T) {
		require.Equal(t, full, NormalizeDataURL(payload))
	})
	t.Run("префикс без media type", func(t *testing.T) {
		require.Equal(t, full, NormalizeDataURL("data:;base64,"+payload))
		require.Equal(t, full, NormalizeDataURL("data:base64,"+payload))
	})
	t.Run("префикс без data:", func(t *testing.T) {
		require.Equal(t, full, NormalizeDataURL("image/png;base64,"+payload))
		require.Equal(t, full, NormalizeDataURL(";base64,"+payload))
		require.Equal(t, full, NormalizeDataURL("base64,"+payload))
	})
	t.Run("пробелы и переносы", func(t *testing.T) {
		broken := strings.ReplaceAll(full, "+", " ")
		broken = broken[:40] + "\r\n" + broken[40:]
		require.Equal(t, full, NormalizeDataURL(broken))
	})
}

func TestDecodeDataURLRoundTrip(t *testing.T) {
	body := pngLike(150)
	payload := base64.StdEncoding.EncodeToString(body)

	withPrefix, err := DecodeDataURL(NormalizeDataURL("data:image/png;base64," + payload))
	require.NoError(t, err)
	withoutPrefix, err := DecodeDataURL(NormalizeDataURL(payload))
	require.NoError(t, err)
	require.Equal(t, withPrefix, withoutPrefix)
	require.Equal(t, body, withoutPrefix)
}

func TestDecodeDataURLErrors(t *testing.T) {
	t.Run("нет запятой", func(t *testing.T) {
		_, err := DecodeDataURL("data:image/png;base64")
		require.ErrorIs(t, err, ErrInvalidSignatureFormat)
	})
	t.Run("не изображение", func(t *testing.T) {
		payload := base64.StdEncoding.EncodeToString(pngLike(150))
		_, err := DecodeDataURL(NormalizeDataURL("data:text/plain;base64," + payload))
		require.ErrorIs(t, err, ErrInvalidSignatureFormat)
	})
	t.Run("99 символов", func(t *testing.T) {
		_, err := DecodeDataURL(NormalizeDataURL(strings.Repeat("A", 99)))
		require.ErrorIs(t, err, ErrSignatureTooSmall)
	})
	t.Run("100 символов, но меньше 100 байт", func(t *testing.T) {
		_, err := DecodeDataURL(NormalizeDataURL(strings.Repeat("A", 100)))
		require.ErrorIs(t, err, ErrSignatureTooSmall)
	})
	t.Run("136 символов, 102 байта", func(t *testing.T) {
		payload := base64.StdEncoding.EncodeToString(pngLike(102))
		require.Len(t, payload, 136)
		body, err := DecodeDataURL(NormalizeDataURL(payload))
		require.NoError(t, err)
		require.Len(t, body, 102)
	})
	t.Run("битый base64", func(t *testing.T) {
		_, err := DecodeDataURL(NormalizeDataURL(strings.Repeat("!", 140)))
		require.ErrorIs(t, err, ErrInvalidSignatureEncoding)
	})
	t.Run("без выравнивания", func(t *testing.T) {
		payload := strings.TrimRight(base64.StdEncoding.EncodeToString(pngLike(121)), "=")
		body, err := DecodeDataURL(NormalizeDataURL(payload))
		require.NoError(t, err)
		require.Len(t, body, 121)
	})
}

func TestMediaType(t *testing.T) {
	require.Equal(t, "image/jpeg", MediaType("data:image/jpeg;base64,AAAA"))
	require.Equal(t, "image/png", MediaType("AAAA"))
}
