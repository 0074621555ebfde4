//go:build !integration

package i18n

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestGetTranslator(t *testing.T) {
	translator1 := GetTranslator()
	translator2 := GetTranslator()
	assert.NotNil(t, translator1)
	assert.Equal(t, translator1, translator2)
}

func TestTranslator_Translate(t *testing.T) {
	translator := NewTranslator()

	tests := []struct {
		name     string
		key      string
		locale   string
		expected string
	}{
		{
			name:     "english message",
			key:      ErrKeyParcelNotFound,
			locale:   "en",
			expected: "Parcel not found",
		},
		{
			name:     "malay message",
			key:      ErrKeyParcelNotFound,
			locale:   "ms",
			expected: "Bungkusan tidak dijumpai",
		},
		{
			name:     "empty locale defaults to english",
			key:      ErrKeyStorageFull,
			locale:   "",
			expected: "No storage space available in this zone",
		},
		{
			name:     "unsupported locale falls back to english",
			key:      ErrKeyInsufficientPayment,
			locale:   "fr",
			expected: "Insufficient payment",
		},
		{
			name:     "unknown key returns key",
			key:      "unknown.key",
			locale:   "en",
			expected: "unknown.key",
		},
		{
			name:     "success message in malay",
			key:      SuccessKeyParcelCollected,
			locale:   "ms",
			expected: "Bungkusan telah diambil",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := translator.Translate(tt.key, tt.locale)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestAllKeysHaveTranslations(t *testing.T) {
	keys := []string{
		ErrKeyInvalidRequest, ErrKeyInvalidRequestBody, ErrKeyInternalError,
		ErrKeyUnauthorized, ErrKeyInvalidCredentials, ErrKeyForbidden,
		ErrKeyNotFound, ErrKeyRateLimitExceeded, ErrKeyConflict,
		ErrKeyInvalidToken, ErrKeyTokenRequired, ErrKeyTimeout,
		ErrKeyParcelNotFound, ErrKeyStorageFull, ErrKeyInvalidStatus,
		ErrKeyInsufficientPayment, ErrKeyDuplicateTracking,
		SuccessKeyParcelMatched, SuccessKeyParcelUnmatched,
		SuccessKeyParcelCollected, SuccessKeyPreRegistered,
	}

	translator := NewTranslator()
	for _, locale := range []string{"en", "ms"} {
		for _, key := range keys {
			assert.NotEqual(t, key, translator.Translate(key, locale),
				"missing %s translation for %s", locale, key)
		}
	}
}

func TestGetLocale(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		acceptLanguage string
		expected       string
	}{
		{
			name:           "no header returns default",
			acceptLanguage: "",
			expected:       DefaultLocale,
		},
		{
			name:           "english header",
			acceptLanguage: "en",
			expected:       "en",
		},
		{
			name:           "malay header",
			acceptLanguage: "ms",
			expected:       "ms",
		},
		{
			name:           "full locale with region",
			acceptLanguage: "ms-MY",
			expected:       "ms",
		},
		{
			name:           "multiple languages",
			acceptLanguage: "en-US,en;q=0.9,ms;q=0.8",
			expected:       "en",
		},
		{
			name:           "unsupported language defaults",
			acceptLanguage: "fr",
			expected:       DefaultLocale,
		},
		{
			name:           "case insensitive",
			acceptLanguage: "EN",
			expected:       "en",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.acceptLanguage != "" {
				req.Header.Set(AcceptLanguageHeader, tt.acceptLanguage)
			}
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = req

			result := GetLocale(c)
			assert.Equal(t, tt.expected, result)
		})
	}
}
