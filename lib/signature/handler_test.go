package signature

import (
	"context"
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	filestorage "maintenance-backend/lib/file-storage"
	"maintenance-backend/models"
)

var fixedNow = func() time.Time {
	return time.Date(2026, 3, 4, 10, 20, 30, 0, time.UTC)
}

// lyingStorage сообщает об успешной записи, но файл не создает
type lyingStorage struct {
	filestorage.Provider
}

func (l lyingStorage) Put(ctx context.Context, filePath string, body []byte, contentType string) error {
	return nil
}

type failingStrategy struct {
	name string
}

func (f failingStrategy) Name() string { return f.name }

func (f failingStrategy) Write(ctx context.Context, filePath string, body []byte) error {
	return errors.New("диск недоступен")
}

func newLocal(t *testing.T) filestorage.Provider {
	storage, err := filestorage.NewLocal(t.TempDir())
	require.NoError(t, err)
	return storage
}

func validDataURL() string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(pngLike(200))
}

func TestFromDataURL(t *testing.T) {
	ctx := context.Background()

	t.Run("запись через хранилище", func(t *testing.T) {
		storage := newLocal(t)
		h := NewHandlerWithDeps(storage, filestorage.DefaultStrategies, fixedNow, 0)
		res, err := h.FromDataURL(ctx, "José Pérez-López", validDataURL())
		require.NoError(t, err)
		require.True(t, res.IsDigital)
		require.Equal(t, filestorage.StrategyStorage, res.Strategy)
		require.True(t, strings.HasPrefix(res.Path, "digital_signature/jose_perez_lopez_20260304_102030_"))
		require.True(t, strings.HasSuffix(res.Path, ".png"))
		require.EqualValues(t, 200, res.Size)
		body, err := storage.Get(ctx, res.Path)
		require.NoError(t, err)
		require.Equal(t, pngLike(200), body)
	})

	t.Run("хранилище врет, срабатывает прямая запись", func(t *testing.T) {
		storage := newLocal(t)
		h := NewHandlerWithDeps(lyingStorage{Provider: storage}, filestorage.DefaultStrategies, fixedNow, 0)
		res, err := h.FromDataURL(ctx, "Ann", validDataURL())
		require.NoError(t, err)
		require.Equal(t, filestorage.StrategyDirect, res.Strategy)
		_, err = os.Stat(filepath.Join(storage.LocalRoot(), filepath.FromSlash(res.Path)))
		require.NoError(t, err)
	})

	t.Run("последний шанс - временный файл", func(t *testing.T) {
		storage := newLocal(t)
		strategies := func(p filestorage.Provider, contentType string) []filestorage.WriteStrategy {
			return []filestorage.WriteStrategy{
				failingStrategy{name: filestorage.StrategyStorage},
				failingStrategy{name: filestorage.StrategyDirect},
				filestorage.AtomicStrategy(p.LocalRoot()),
			}
		}
		h := NewHandlerWithDeps(storage, strategies, fixedNow, 0)
		res, err := h.FromDataURL(ctx, "Ann", validDataURL())
		require.NoError(t, err)
		require.Equal(t, filestorage.StrategyAtomic, res.Strategy)
		exists, err := storage.Exists(ctx, res.Path)
		require.NoError(t, err)
		require.True(t, exists)
	})

	t.Run("все способы записи отказали", func(t *testing.T) {
		storage := newLocal(t)
		strategies := func(p filestorage.Provider, contentType string) []filestorage.WriteStrategy {
			return []filestorage.WriteStrategy{
				failingStrategy{name: filestorage.StrategyStorage},
				failingStrategy{name: filestorage.StrategyDirect},
				failingStrategy{name: filestorage.StrategyAtomic},
			}
		}
		h := NewHandlerWithDeps(storage, strategies, fixedNow, 0)
		_, err := h.FromDataURL(ctx, "Ann", validDataURL())
		require.ErrorIs(t, err, ErrSignaturePersistenceFailed)
	})

	t.Run("ложный успех записи", func(t *testing.T) {
		storage := newLocal(t)
		strategies := func(p filestorage.Provider, contentType string) []filestorage.WriteStrategy {
			return []filestorage.WriteStrategy{noopStrategy{}}
		}
		h := NewHandlerWithDeps(storage, strategies, fixedNow, 0)
		_, err := h.FromDataURL(ctx, "Ann", validDataURL())
		require.ErrorIs(t, err, ErrSignatureVerificationFailed)
	})

	t.Run("слишком маленькая подпись", func(t *testing.T) {
		h := NewHandlerWithDeps(newLocal(t), filestorage.DefaultStrategies, fixedNow, 0)
		_, err := h.FromDataURL(ctx, "Ann", strings.Repeat("A", 99))
		require.ErrorIs(t, err, ErrSignatureTooSmall)
		require.True(t, IsSignatureError(err))
	})

	t.Run("содержимое не изображение", func(t *testing.T) {
		storage := newLocal(t)
		h := NewHandlerWithDeps(storage, filestorage.DefaultStrategies, fixedNow, 0)
		payload := base64.StdEncoding.EncodeToString([]byte(strings.Repeat("not an image ", 20)))
		_, err := h.FromDataURL(ctx, "Ann", "data:image/png;base64,"+payload)
		require.ErrorIs(t, err, ErrInvalidSignatureFormat)
		entries, err := os.ReadDir(storage.LocalRoot())
		require.NoError(t, err)
		require.Empty(t, entries)
	})

	t.Run("svg не принимается", func(t *testing.T) {
		h := NewHandlerWithDeps(newLocal(t), filestorage.DefaultStrategies, fixedNow, 0)
		svg := `<svg xmlns="http://www.w3.org/2000/svg">` + strings.Repeat(`<path d="M0 0L1 1"/>`, 10) + `</svg>`
		_, err := h.FromDataURL(ctx, "Ann", "data:image/svg+xml;base64,"+base64.StdEncoding.EncodeToString([]byte(svg)))
		require.ErrorIs(t, err, ErrInvalidSignatureFormat)
	})

	t.Run("заявлен jpeg, внутри png", func(t *testing.T) {
		h := NewHandlerWithDeps(newLocal(t), filestorage.DefaultStrategies, fixedNow, 0)
		_, err := h.FromDataURL(ctx, "Ann", "data:image/jpeg;base64,"+base64.StdEncoding.EncodeToString(pngLike(200)))
		require.ErrorIs(t, err, ErrInvalidSignatureFormat)
	})
}

type noopStrategy struct{}

func (noopStrategy) Name() string { return "noop" }

func (noopStrategy) Write(ctx context.Context, filePath string, body []byte) error { return nil }

func TestFromUpload(t *testing.T) {
	ctx := context.Background()
	h := NewHandlerWithDeps(newLocal(t), filestorage.DefaultStrategies, fixedNow, 1024)

	t.Run("png", func(t *testing.T) {
		res, err := h.FromUpload(ctx, "Ann Lee", models.File{FileName: "sign.png", Body: pngLike(300)})
		require.NoError(t, err)
		require.True(t, res.IsDigital)
		require.Empty(t, res.DataURL)
		require.True(t, strings.HasPrefix(res.Path, "uploaded_signature/ann_lee_"))
		require.True(t, strings.HasSuffix(res.Path, ".png"))
	})
	t.Run("не изображение", func(t *testing.T) {
		_, err := h.FromUpload(ctx, "Ann", models.File{FileName: "sign.png", Body: []byte(strings.Repeat("plain text ", 20))})
		require.ErrorIs(t, err, ErrUnsupportedSignatureFile)
	})
	t.Run("расширение не совпадает с содержимым", func(t *testing.T) {
		_, err := h.FromUpload(ctx, "Ann", models.File{FileName: "sign.gif", Body: pngLike(300)})
		require.ErrorIs(t, err, ErrUnsupportedSignatureFile)
	})
	t.Run("слишком большой файл", func(t *testing.T) {
		_, err := h.FromUpload(ctx, "Ann", models.File{FileName: "sign.png", Body: pngLike(2048)})
		require.ErrorIs(t, err, ErrUnsupportedSignatureFile)
	})
	t.Run("пустой файл", func(t *testing.T) {
		_, err := h.FromUpload(ctx, "Ann", models.File{FileName: "sign.png"})
		require.ErrorIs(t, err, ErrSignatureTooSmall)
	})
}
