package translation

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"maintenance-backend/config"
	"maintenance-backend/lib/metrics"
	yagptclient "maintenance-backend/lib/translation/yagpt-client"
	"maintenance-backend/models"
)

var ErrTranslationUnavailable = errors.New("translation service unavailable")

type Provider interface {
	Translate(ctx context.Context, text string, from, to models.Language) (string, error)
}

var Instance Provider

func NewHandler() {
	if config.Conf.YandexGPT.IAMToken == "" || config.Conf.YandexGPT.CatalogID == "" {
		log.Warn("перевод отключен: не заданы настройки YandexGPT")
		Instance = disabledImpl{}
		return
	}
	timeout := time.Duration(config.Conf.YandexGPT.TimeoutSeconds) * time.Second
	Instance = NewHandlerWithClient(yagptclient.NewClient(config.Conf.YandexGPT.IAMToken, config.Conf.YandexGPT.CatalogID), timeout)
}

func NewHandlerWithClient(client yagptclient.Provider, timeout time.Duration) Provider {
	return impl{
		client:  client,
		timeout: timeout,
	}
}

type impl struct {
	client  yagptclient.Provider
	timeout time.Duration
}

const promtTemplate = "You are a professional translator for a property management company. " +
	"Translate the user's text from %s to %s. " +
	"Keep unit numbers, names and measurements unchanged. " +
	"Reply with the translation only, without quotes or comments."

func (i impl) Translate(ctx context.Context, text string, from, to models.Language) (string, error) {
	if from == to || strings.TrimSpace(text) == "" {
		return text, nil
	}
	if i.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, i.timeout)
		defer cancel()
	}
	promt := fmt.Sprintf(promtTemplate, languageName(from), languageName(to))
	result, err := i.client.GenerateByPromtAndText(ctx, promt, text)
	if err == nil && strings.TrimSpace(result) == "" {
		err = errors.New("пустой перевод")
	}
	metrics.TranslationTotal.WithLabelValues(metrics.Result(err)).Inc()
	if err != nil {
		log.
			WithField("from", from).
			WithField("to", to).
			WithError(err).
			Warn("ошибка перевода текста")
		return "", errors.Wrap(ErrTranslationUnavailable, err.Error())
	}
	return strings.TrimSpace(result), nil
}

func languageName(lang models.Language) string {
	switch lang {
	case models.LanguageEs:
		return "Spanish"
	case models.LanguageEn:
		return "English"
	}
	return string(lang)
}

type disabledImpl struct{}

func (disabledImpl) Translate(ctx context.Context, text string, from, to models.Language) (string, error) {
	if from == to || strings.TrimSpace(text) == "" {
		return text, nil
	}
	return "", ErrTranslationUnavailable
}

// NewDisabled переводчик без внешнего сервиса, любой перевод недоступен
func NewDisabled() Provider {
	return disabledImpl{}
}
