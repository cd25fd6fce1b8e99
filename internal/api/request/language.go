package request

import (
	"net/http"

	"golang.org/x/text/language"

	"labequip/storefront/internal/domain"
)

// Order matches domain.Languages; the first entry is the fallback.
var matcher = language.NewMatcher([]language.Tag{
	language.Persian,
	language.English,
})

// Language picks the response language from ?lang= or the Accept-Language header
func Language(r *http.Request) domain.Language {
	if lang := r.URL.Query().Get("lang"); lang != "" {
		return match(lang)
	}
	return match(r.Header.Get("Accept-Language"))
}

func match(preference string) domain.Language {
	tags, _, err := language.ParseAcceptLanguage(preference)
	if err != nil || len(tags) == 0 {
		return domain.LanguagePersian
	}

	_, index, confidence := matcher.Match(tags...)
	if confidence == language.No {
		return domain.LanguagePersian
	}
	return domain.Languages[index]
}
