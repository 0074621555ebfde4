// Package i18n provides internationalization support for the parcel service.
// It handles translation of user-facing messages and error messages.
package i18n

import (
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
)

const (
	// DefaultLocale is the default language locale (English).
	DefaultLocale = "en"
	// AcceptLanguageHeader is the HTTP header name for language preference.
	AcceptLanguageHeader = "Accept-Language"
)

var (
	// defaultTranslator is the singleton translator instance.
	defaultTranslator *Translator
	translatorOnce    sync.Once
)

// Translator handles message translation for different locales.
type Translator struct {
	messages map[string]map[string]string
}

// NewTranslator creates a new translator with the default messages.
func NewTranslator() *Translator {
	return &Translator{
		messages: getDefaultMessages(),
	}
}

// GetTranslator returns the default singleton translator instance.
func GetTranslator() *Translator {
	translatorOnce.Do(func() {
		defaultTranslator = NewTranslator()
	})
	return defaultTranslator
}

// Translate returns the translated message for the given key and locale.
// Falls back to DefaultLocale if the locale is not found.
func (t *Translator) Translate(key, locale string) string {
	if locale == "" {
		locale = DefaultLocale
	}

	localeMessages, ok := t.messages[locale]
	if !ok {
		localeMessages = t.messages[DefaultLocale]
	}

	msg, ok := localeMessages[key]
	if !ok {
		// Fallback to default locale
		if defaultMessages := t.messages[DefaultLocale]; defaultMessages != nil {
			if fallbackMsg, exists := defaultMessages[key]; exists {
				return fallbackMsg
			}
		}
		return key
	}

	return msg
}

// GetLocale extracts the locale from the gin context.
// Checks Accept-Language header and falls back to DefaultLocale.
func GetLocale(c *gin.Context) string {
	acceptLang := c.GetHeader(AcceptLanguageHeader)
	if acceptLang == "" {
		return DefaultLocale
	}

	// Parse Accept-Language header (e.g., "en-US,en;q=0.9,ms;q=0.8")
	parts := strings.Split(acceptLang, ",")
	if len(parts) > 0 {
		lang := strings.TrimSpace(strings.Split(parts[0], ";")[0])
		// Extract base language (e.g., "en" from "en-US")
		if idx := strings.Index(lang, "-"); idx > 0 {
			lang = lang[:idx]
		}
		// Normalize to lowercase
		lang = strings.ToLower(lang)
		// Validate it's a supported locale
		if _, ok := getDefaultMessages()[lang]; ok {
			return lang
		}
	}

	return DefaultLocale
}

// getDefaultMessages returns the default message translations.
func getDefaultMessages() map[string]map[string]string {
	return map[string]map[string]string{
		"en": {
			// Error messages
			"error.invalid_request":      "Invalid request",
			"error.invalid_request_body": "Invalid request body",
			"error.internal_error":       "An unexpected error occurred",
			"error.unauthorized":         "Unauthorized",
			"error.invalid_credentials":  "Invalid email or password",
			"error.forbidden":            "Forbidden",
			"error.not_found":            "Not found",
			"error.rate_limit_exceeded":  "Too many requests, please try again later",
			"error.conflict":             "Conflict",
			"error.invalid_token":        "Invalid or expired token",
			"error.token_required":       "Authentication token is required",
			"error.timeout":              "Request timed out",

			"error.parcel_not_found":     "Parcel not found",
			"error.storage_full":         "No storage space available in this zone",
			"error.invalid_status":       "The parcel status does not allow this action",
			"error.insufficient_payment": "Insufficient payment",
			"error.duplicate_tracking":   "This tracking ID is already registered",

			// Success messages
			"success.parcel_matched":   "Parcel matched! Stored and ready for pickup",
			"success.parcel_unmatched": "No pre-registration found. Stored as unclaimed arrival",
			"success.parcel_collected": "Parcel collected",
			"success.pre_registered":   "Parcel pre-registered",
		},
		"ms": {
			// Error messages
			"error.invalid_request":      "Permintaan tidak sah",
			"error.invalid_request_body": "Kandungan permintaan tidak sah",
			"error.internal_error":       "Ralat tidak dijangka telah berlaku",
			"error.unauthorized":         "Tidak dibenarkan",
			"error.invalid_credentials":  "E-mel atau kata laluan tidak sah",
			"error.forbidden":            "Dilarang",
			"error.not_found":            "Tidak dijumpai",
			"error.rate_limit_exceeded":  "Terlalu banyak permintaan, sila cuba sebentar lagi",
			"error.conflict":             "Konflik",
			"error.invalid_token":        "Token tidak sah atau telah tamat tempoh",
			"error.token_required":       "Token pengesahan diperlukan",
			"error.timeout":              "Permintaan tamat masa",

			"error.parcel_not_found":     "Bungkusan tidak dijumpai",
			"error.storage_full":         "Tiada ruang simpanan dalam zon ini",
			"error.invalid_status":       "Status bungkusan tidak membenarkan tindakan ini",
			"error.insufficient_payment": "Bayaran tidak mencukupi",
			"error.duplicate_tracking":   "Nombor penjejakan ini telah didaftarkan",

			// Success messages
			"success.parcel_matched":   "Bungkusan sepadan! Disimpan dan sedia untuk diambil",
			"success.parcel_unmatched": "Tiada prapendaftaran dijumpai. Disimpan sebagai ketibaan tanpa tuntutan",
			"success.parcel_collected": "Bungkusan telah diambil",
			"success.pre_registered":   "Bungkusan telah diprapendaftar",
		},
	}
}
