package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/allisson/rotator-admin/internal/locale"
	sessionDomain "github.com/allisson/rotator-admin/internal/session/domain"
)

type localeOutput struct {
	Locale    string   `json:"locale"`
	Supported []string `json:"supported"`
}

// RunLocaleGet prints the selected locale and the supported ones.
func RunLocaleGet(ctx context.Context, store sessionDomain.Store, format string, writer io.Writer) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	out := localeOutput{Locale: locale.Load(ctx, store).String()}
	for _, tag := range locale.Supported() {
		out.Supported = append(out.Supported, tag.String())
	}

	if format == "json" {
		return writeJSON(writer, out)
	}

	_, _ = fmt.Fprintf(writer, "Locale: %s\n", out.Locale)
	_, _ = fmt.Fprintf(writer, "Supported: %v\n", out.Supported)
	return nil
}

// RunLocaleSet stores the selected locale. Unsupported values are rejected and the stored locale is kept.
func RunLocaleSet(ctx context.Context, store sessionDomain.Store, logger *slog.Logger, value string, writer io.Writer) error {
	tag, err := locale.Save(ctx, store, value)
	if err != nil {
		return err
	}

	logger.Info("locale changed", slog.String("locale", tag.String()))
	_, _ = fmt.Fprintf(writer, "Locale set to %s\n", tag)
	return nil
}
