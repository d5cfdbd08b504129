package maintenancereqhandler

import (
	"context"

	"github.com/pkg/errors"
	"maintenance-backend/lib/translation"
	"maintenance-backend/models"
	maintenanceapimodels "maintenance-backend/models/api/maintenance"
	dbmodels "maintenance-backend/models/db"
)

// translatedTexts тексты арендатора после применения правил перевода
type translatedTexts struct {
	WorkRequested       models.BilingualText
	SpecialInstructions models.BilingualText
	NoPermissionReason  models.BilingualText
	Status              models.TranslationStatus
}

func (t translatedTexts) apply(rec *dbmodels.MaintenanceRequest) {
	rec.SetWorkRequested(t.WorkRequested)
	rec.SetSpecialInstructions(t.SpecialInstructions)
	rec.SetNoPermissionReason(t.NoPermissionReason)
	rec.TranslationStatus = t.Status
}

// translateTexts английский текст не переводится; испанский переводится на английский.
// Ошибка перевода не прерывает обработку: поле остается без перевода, возвращается
// translation.ErrTranslationUnavailable.
func (i impl) translateTexts(ctx context.Context, lang models.Language, work, instructions, reason string) (translatedTexts, error) {
	if lang == models.LanguageEn {
		return translatedTexts{
			WorkRequested:       models.NewUntranslated(work),
			SpecialInstructions: models.NewUntranslated(instructions),
			NoPermissionReason:  models.NewUntranslated(reason),
			Status:              models.TranslationNotRequired,
		}, nil
	}
	var failed error
	translate := func(text string) models.BilingualText {
		if text == "" {
			return models.NewUntranslated("")
		}
		translated, err := i.deps.Translator.Translate(ctx, text, lang, models.LanguageEn)
		if err != nil {
			if failed == nil {
				failed = err
			}
			return models.NewPendingTranslation(text)
		}
		return models.NewTranslated(text, translated)
	}
	result := translatedTexts{
		WorkRequested:       translate(work),
		SpecialInstructions: translate(instructions),
		NoPermissionReason:  translate(reason),
		Status:              models.TranslationDone,
	}
	if failed != nil {
		result.Status = models.TranslationFailed
		if !errors.Is(failed, translation.ErrTranslationUnavailable) {
			failed = errors.Wrap(translation.ErrTranslationUnavailable, failed.Error())
		}
		return result, failed
	}
	return result, nil
}

func (i impl) Retranslate(ctx context.Context, id string) (maintenanceapimodels.RequestView, error) {
	logger := i.getLogger(id)
	rec, err := i.getRec(id)
	if err != nil {
		return maintenanceapimodels.RequestView{}, err
	}
	if rec.SelectedLanguage == models.LanguageEn {
		return maintenanceapimodels.RequestConvert(*rec), nil
	}
	texts, err := i.translateTexts(ctx, rec.SelectedLanguage,
		rec.GetWorkRequested().Original,
		rec.GetSpecialInstructions().Original,
		rec.GetNoPermissionReason().Original,
	)
	if err != nil {
		// прежний перевод лучше, чем никакого
		logger.WithError(err).Warn("повторный перевод не выполнен")
		return maintenanceapimodels.RequestView{}, err
	}
	texts.apply(rec)
	if err = i.deps.Store.Update(id, rec.TextUpdMap()); err != nil {
		logger.WithError(err).Error("ошибка сохранения перевода")
		return maintenanceapimodels.RequestView{}, err
	}
	logger.WithField("work_order_number", rec.WorkOrderNumber).Info("заявка переведена повторно")
	return maintenanceapimodels.RequestConvert(*rec), nil
}

// translateStatusMessage сообщение администратора на язык арендатора, при ошибке остается английский текст
func (i impl) translateStatusMessage(ctx context.Context, rec *dbmodels.MaintenanceRequest, message string) string {
	if rec.SelectedLanguage == models.LanguageEn || message == "" {
		return message
	}
	translated, err := i.deps.Translator.Translate(ctx, message, models.LanguageEn, rec.SelectedLanguage)
	if err != nil {
		i.getLogger(rec.ID).WithError(err).Warn("сообщение арендатору отправлено без перевода")
		return message
	}
	return translated
}
