package models

// BilingualText текст, введенный арендатором, и его английская версия для администраторов.
// Translated == nil означает, что перевода нет (язык en не требует перевода
// и в этом случае Translated указывает на тот же текст).
type BilingualText struct {
	Original   string
	Translated *string
}

// NewUntranslated текст на английском, все три поля совпадают
func NewUntranslated(text string) BilingualText {
	t := text
	return BilingualText{Original: text, Translated: &t}
}

func NewTranslated(original, translated string) BilingualText {
	return BilingualText{Original: original, Translated: &translated}
}

// NewPendingTranslation перевод не удался, администратор видит оригинал
func NewPendingTranslation(original string) BilingualText {
	return BilingualText{Original: original}
}

// Live значение, которое видит администратор по умолчанию
func (t BilingualText) Live() string {
	if t.Translated != nil {
		return *t.Translated
	}
	return t.Original
}

func (t BilingualText) TranslatedValue() string {
	if t.Translated == nil {
		return ""
	}
	return *t.Translated
}

func (t BilingualText) IsTranslated() bool {
	return t.Translated != nil
}

func (t BilingualText) IsEmpty() bool {
	return t.Original == ""
}
