package domain

type Language string

func (l Language) String() string {
	return string(l)
}

const (
	LanguagePersian Language = "fa" // Default site language
	LanguageEnglish Language = "en"
)

var Languages = []Language{
	LanguagePersian,
	LanguageEnglish,
}

func (l Language) GetLanguageName() string {
	switch l {
	case LanguagePersian:
		return "فارسی"
	case LanguageEnglish:
		return "English"
	default:
		return "Unknown"
	}
}
