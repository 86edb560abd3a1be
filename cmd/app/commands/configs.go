package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"text/tabwriter"

	adminDomain "github.com/allisson/rotator-admin/internal/adminapi/domain"
	adminUseCase "github.com/allisson/rotator-admin/internal/adminapi/usecase"
)

// RunListConfigs lists every proxy and LLM config.
func RunListConfigs(ctx context.Context, api adminUseCase.API, format string, writer io.Writer) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	raw, err := api.ListConfigs(ctx)
	if err != nil {
		return err
	}
	if format == "json" {
		return writeRaw(writer, raw)
	}

	var configs []adminDomain.ProxyConfig
	if err := json.Unmarshal(raw, &configs); err != nil {
		return fmt.Errorf("failed to parse configs: %w", err)
	}
	if len(configs) == 0 {
		_, _ = fmt.Fprintln(writer, "No configs found")
		return nil
	}

	w := tabwriter.NewWriter(writer, 0, 0, 3, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tNAME\tSLUG\tTYPE\tACTIVE\tTARGET\tKEYS")
	for _, c := range configs {
		_, _ = fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%d\n",
			c.ID, c.Name, c.Slug, c.ConfigType, yesNo(c.IsActive), configTarget(c), len(c.APIKeys))
	}
	return w.Flush()
}

// RunGetConfig shows a single config with its keys masked.
func RunGetConfig(ctx context.Context, api adminUseCase.API, id int64, format string, writer io.Writer) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	raw, err := api.GetConfig(ctx, id)
	if err != nil {
		return err
	}
	if format == "json" {
		return writeRaw(writer, raw)
	}

	var c adminDomain.ProxyConfig
	if err := json.Unmarshal(raw, &c); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}

	_, _ = fmt.Fprintf(writer, "ID:       %d\n", c.ID)
	_, _ = fmt.Fprintf(writer, "Name:     %s\n", c.Name)
	_, _ = fmt.Fprintf(writer, "Slug:     %s\n", c.Slug)
	_, _ = fmt.Fprintf(writer, "Type:     %s\n", c.ConfigType)
	_, _ = fmt.Fprintf(writer, "Active:   %s\n", yesNo(c.IsActive))
	_, _ = fmt.Fprintf(writer, "Target:   %s\n", configTarget(c))
	if c.ConfigType == adminDomain.ConfigTypeLLM {
		_, _ = fmt.Fprintf(writer, "Format:   %s -> %s\n", deref(c.APIFormat), deref(c.OutputFormat))
	} else {
		_, _ = fmt.Fprintf(writer, "Method:   %s\n", deref(c.Method))
		_, _ = fmt.Fprintf(writer, "Key:      %s (%s)\n", deref(c.APIKeyName), deref(c.APIKeyLocation))
	}
	_, _ = fmt.Fprintf(writer, "Keys:     %d\n", len(c.APIKeys))
	for _, k := range c.APIKeys {
		_, _ = fmt.Fprintf(writer, "  #%d %s active=%s\n", k.ID, adminDomain.MaskKey(k.KeyValue), yesNo(k.IsActive))
	}
	return nil
}

// RunSaveConfig validates the form and creates (id == 0) or updates a config. The config type selects
// the proxy or LLM endpoints.
func RunSaveConfig(
	ctx context.Context,
	api adminUseCase.API,
	logger *slog.Logger,
	id int64,
	input adminDomain.ProxyConfigInput,
	format string,
	writer io.Writer,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}
	if err := input.Validate(); err != nil {
		return err
	}

	var (
		raw json.RawMessage
		err error
	)
	isLLM := input.ConfigType == adminDomain.ConfigTypeLLM
	switch {
	case id == 0 && isLLM:
		raw, err = api.CreateLLMConfig(ctx, input)
	case id == 0:
		raw, err = api.CreateProxyConfig(ctx, input)
	case isLLM:
		raw, err = api.UpdateLLMConfig(ctx, id, input)
	default:
		raw, err = api.UpdateProxyConfig(ctx, id, input)
	}
	if err != nil {
		return err
	}

	logger.Info("config saved",
		slog.Int64("id", id),
		slog.String("slug", input.Slug),
		slog.String("config_type", input.ConfigType),
	)

	if format == "json" {
		return writeRaw(writer, raw)
	}

	var saved adminDomain.ProxyConfig
	if err := json.Unmarshal(raw, &saved); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}
	_, _ = fmt.Fprintf(writer, "Config %q saved (id %d)\n", saved.Name, saved.ID)
	return nil
}

// RunConfigStatus enables or disables a config.
func RunConfigStatus(
	ctx context.Context,
	api adminUseCase.API,
	logger *slog.Logger,
	id int64,
	isActive bool,
	writer io.Writer,
) error {
	if _, err := api.UpdateConfigStatus(ctx, id, isActive); err != nil {
		return err
	}

	logger.Info("config status updated", slog.Int64("id", id), slog.Bool("is_active", isActive))
	_, _ = fmt.Fprintf(writer, "Config %d active=%s\n", id, yesNo(isActive))
	return nil
}

// RunDeleteConfig deletes a config and its keys.
func RunDeleteConfig(ctx context.Context, api adminUseCase.API, logger *slog.Logger, id int64, writer io.Writer) error {
	if _, err := api.DeleteConfig(ctx, id); err != nil {
		return err
	}

	logger.Info("config deleted", slog.Int64("id", id))
	_, _ = fmt.Fprintf(writer, "Config %d deleted\n", id)
	return nil
}

func configTarget(c adminDomain.ProxyConfig) string {
	if c.ConfigType == adminDomain.ConfigTypeLLM {
		return deref(c.TargetBaseURL)
	}
	return deref(c.TargetURL)
}
