// Package locale resolves and persists the UI locale and provides the fallback
// notification strings emitted when a request fails.
package locale

import (
	"context"
	"fmt"

	"golang.org/x/text/language"

	apperrors "github.com/allisson/rotator-admin/internal/errors"
	sessionDomain "github.com/allisson/rotator-admin/internal/session/domain"
)

// Supported locales. The first entry is the default.
var (
	SimplifiedChinese = language.MustParse("zh-CN")
	English           = language.English

	supported = []language.Tag{SimplifiedChinese, English}
	matcher   = language.NewMatcher(supported)
)

// Default is used when nothing valid is stored.
var Default = SimplifiedChinese

// Messages holds the fixed strings surfaced by the error interceptor.
type Messages struct {
	// RequestFailed is shown when a response arrived without a server-supplied message.
	RequestFailed string
	// NetworkFailure is shown when no response arrived at all.
	NetworkFailure string
}

var catalog = map[language.Tag]Messages{
	SimplifiedChinese: {
		RequestFailed:  "请求失败",
		NetworkFailure: "网络错误或服务器无响应",
	},
	English: {
		RequestFailed:  "Request failed",
		NetworkFailure: "Network error or server not responding",
	},
}

// Parse matches value against the supported locales and returns the supported tag.
func Parse(value string) (language.Tag, error) {
	tag, err := language.Parse(value)
	if err != nil {
		return language.Und, apperrors.Wrapf(apperrors.ErrInvalidInput, "invalid locale %q", value)
	}

	_, index, confidence := matcher.Match(tag)
	if confidence == language.No {
		return language.Und, apperrors.Wrapf(apperrors.ErrInvalidInput, "unsupported locale %q", value)
	}
	return supported[index], nil
}

// Supported returns the locales a user may select.
func Supported() []language.Tag {
	out := make([]language.Tag, len(supported))
	copy(out, supported)
	return out
}

// MessagesFor returns the notification strings for tag, falling back to English.
func MessagesFor(tag language.Tag) Messages {
	if m, ok := catalog[tag]; ok {
		return m
	}
	return catalog[English]
}

// Load returns the stored locale, or Default when it is missing, unreadable or unsupported.
func Load(ctx context.Context, store sessionDomain.Store) language.Tag {
	value, ok, err := store.Get(ctx, sessionDomain.LocaleKey)
	if err != nil || !ok {
		return Default
	}

	tag, err := Parse(value)
	if err != nil {
		return Default
	}
	return tag
}

// Save validates value and stores the matched locale.
func Save(ctx context.Context, store sessionDomain.Store, value string) (language.Tag, error) {
	tag, err := Parse(value)
	if err != nil {
		return language.Und, err
	}

	if err := store.Set(ctx, sessionDomain.LocaleKey, tag.String()); err != nil {
		return language.Und, fmt.Errorf("failed to store locale: %w", err)
	}
	return tag, nil
}

// Source resolves the notification strings from the stored locale on each call,
// so a locale change applies to the next failure.
type Source struct {
	store sessionDomain.Store
}

// NewSource creates a Source reading the locale from store.
func NewSource(store sessionDomain.Store) *Source {
	return &Source{store: store}
}

// Messages returns the strings for the currently stored locale.
func (s *Source) Messages(ctx context.Context) Messages {
	return MessagesFor(Load(ctx, s.store))
}
