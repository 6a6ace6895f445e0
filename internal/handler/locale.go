package handler

import (
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/gosecsite/internal/locale"
	"go.uber.org/zap"
)

const (
	localeContextKey   = "__request_locale"
	languageSessionKey = "lang"
)

var countryHeaderCandidates = []string{
	"CF-IPCountry",
	"X-Geo-Country",
	"X-Forwarded-Country",
	"X-Country-Code",
}

// LocaleMiddleware resolves request language and sets headers for downstream caching.
func (a *API) LocaleMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		pref := a.requestLocale(c)
		c.Header("Content-Language", pref.HTMLLang)
		appendVaryHeader(c, append([]string{"Accept-Language", "Cookie"}, countryHeaderCandidates...)...)
		c.Next()
	}
}

func (a *API) requestLocale(c *gin.Context) locale.Preference {
	if cached, exists := c.Get(localeContextKey); exists {
		if pref, ok := cached.(locale.Preference); ok {
			return pref
		}
	}
	pref := locale.PreferenceForLanguage(a.resolveLanguage(c))
	c.Set(localeContextKey, pref)
	return pref
}

// resolveLanguage 顺序：?lang（写入 session）> session > Accept-Language > 国家头 > 默认英文。
func (a *API) resolveLanguage(c *gin.Context) string {
	if override := locale.NormalizeLanguage(c.Query("lang")); override != "" {
		a.persistLanguage(c, override)
		return override
	}
	if stored := readSessionLanguage(c); stored != "" {
		return stored
	}
	if fromHeader := locale.LanguageFromAcceptLanguage(c.GetHeader("Accept-Language")); fromHeader != "" {
		return fromHeader
	}
	if country := readCountryHeader(c); country != "" {
		return locale.LanguageFromCountryCode(country)
	}
	return locale.DefaultLanguage
}

func sessionFor(c *gin.Context) sessions.Session {
	if _, ok := c.Get(sessions.DefaultKey); !ok {
		return nil
	}
	return sessions.Default(c)
}

func readSessionLanguage(c *gin.Context) string {
	session := sessionFor(c)
	if session == nil {
		return ""
	}
	value, _ := session.Get(languageSessionKey).(string)
	return locale.NormalizeLanguage(value)
}

func (a *API) persistLanguage(c *gin.Context, language string) {
	session := sessionFor(c)
	if session == nil {
		return
	}
	if current, _ := session.Get(languageSessionKey).(string); current == language {
		return
	}
	session.Set(languageSessionKey, language)
	if err := session.Save(); err != nil {
		a.log.Warn("persist language preference", zap.Error(err))
	}
}

func readCountryHeader(c *gin.Context) string {
	for _, header := range countryHeaderCandidates {
		value := strings.TrimSpace(c.GetHeader(header))
		if value == "" {
			continue
		}
		if candidate := strings.TrimSpace(strings.Split(value, ",")[0]); candidate != "" {
			return candidate
		}
	}
	return ""
}

func appendVaryHeader(c *gin.Context, headers ...string) {
	existing := c.Writer.Header().Get("Vary")
	seen := make(map[string]struct{})
	order := make([]string, 0, len(headers))
	for _, token := range append(strings.Split(existing, ","), headers...) {
		trimmed := strings.TrimSpace(token)
		if trimmed == "" {
			continue
		}
		if _, ok := seen[trimmed]; ok {
			continue
		}
		seen[trimmed] = struct{}{}
		order = append(order, trimmed)
	}
	if len(order) > 0 {
		c.Header("Vary", strings.Join(order, ", "))
	}
}
