package translation

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"maintenance-backend/models"
)

type fakeClient struct {
	calls  int
	result string
	err    error
	wait   time.Duration
}

func (f *fakeClient) GenerateByPromtAndText(ctx context.Context, promt, text string) (string, error) {
	f.calls++
	if f.wait > 0 {
		select {
		case <-time.After(f.wait):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return f.result, f.err
}

func TestTranslate(t *testing.T) {
	ctx := context.Background()

	t.Run("одинаковые языки - без вызова сервиса", func(t *testing.T) {
		client := &fakeClient{result: "x"}
		h := NewHandlerWithClient(client, time.Second)
		res, err := h.Translate(ctx, "leaking sink", models.LanguageEn, models.LanguageEn)
		require.NoError(t, err)
		require.Equal(t, "leaking sink", res)
		require.Equal(t, 0, client.calls)
	})
	t.Run("перевод", func(t *testing.T) {
		client := &fakeClient{result: "  The sink is leaking \n"}
		h := NewHandlerWithClient(client, time.Second)
		res, err := h.Translate(ctx, "El fregadero gotea", models.LanguageEs, models.LanguageEn)
		require.NoError(t, err)
		require.Equal(t, "The sink is leaking", res)
		require.Equal(t, 1, client.calls)
	})
	t.Run("ошибка сервиса", func(t *testing.T) {
		h := NewHandlerWithClient(&fakeClient{err: errors.New("503")}, time.Second)
		_, err := h.Translate(ctx, "hola", models.LanguageEs, models.LanguageEn)
		require.ErrorIs(t, err, ErrTranslationUnavailable)
	})
	t.Run("пустой ответ", func(t *testing.T) {
		h := NewHandlerWithClient(&fakeClient{result: " "}, time.Second)
		_, err := h.Translate(ctx, "hola", models.LanguageEs, models.LanguageEn)
		require.ErrorIs(t, err, ErrTranslationUnavailable)
	})
	t.Run("таймаут", func(t *testing.T) {
		h := NewHandlerWithClient(&fakeClient{result: "hi", wait: time.Second}, 20*time.Millisecond)
		_, err := h.Translate(ctx, "hola", models.LanguageEs, models.LanguageEn)
		require.ErrorIs(t, err, ErrTranslationUnavailable)
	})
	t.Run("перевод отключен", func(t *testing.T) {
		_, err := NewDisabled().Translate(ctx, "hola", models.LanguageEs, models.LanguageEn)
		require.ErrorIs(t, err, ErrTranslationUnavailable)
	})
}
