package locale

import "strings"

const (
	LanguageEnglish = "en"
	LanguageFrench  = "fr"
)

// DefaultLanguage 为无法判断时的回退语言。
const DefaultLanguage = LanguageEnglish

type Preference struct {
	Language string
	Locale   string
	HTMLLang string
}

// 法语为主要语言的国家/地区代码，加拿大需要靠 Accept-Language 区分。
var francophoneCountries = map[string]struct{}{
	"FR": {}, "BE": {}, "LU": {}, "MC": {}, "SN": {}, "CI": {}, "HT": {}, "CM": {}, "CD": {},
}

func NormalizeLanguage(raw string) string {
	trimmed := strings.ToLower(strings.TrimSpace(raw))
	if trimmed == "" {
		return ""
	}
	if strings.HasPrefix(trimmed, "fr") {
		return LanguageFrench
	}
	if strings.HasPrefix(trimmed, "en") {
		return LanguageEnglish
	}
	return ""
}

func LanguageFromCountryCode(code string) string {
	trimmed := strings.ToUpper(strings.TrimSpace(code))
	if trimmed == "" {
		return ""
	}
	if _, ok := francophoneCountries[trimmed]; ok {
		return LanguageFrench
	}
	return LanguageEnglish
}

// LanguageFromAcceptLanguage 返回 Accept-Language 中第一个受支持的语言。
func LanguageFromAcceptLanguage(header string) string {
	for _, part := range strings.Split(header, ",") {
		tag := part
		if idx := strings.Index(tag, ";"); idx >= 0 {
			tag = tag[:idx]
		}
		if language := NormalizeLanguage(tag); language != "" {
			return language
		}
	}
	return ""
}

func PreferenceForLanguage(language string) Preference {
	if NormalizeLanguage(language) == LanguageFrench {
		return Preference{Language: LanguageFrench, Locale: "fr_CA", HTMLLang: "fr-CA"}
	}
	return Preference{Language: LanguageEnglish, Locale: "en_CA", HTMLLang: "en-CA"}
}
