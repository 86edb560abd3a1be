package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"golang.org/x/sync/errgroup"

	adminDomain "github.com/allisson/rotator-admin/internal/adminapi/domain"
	adminUseCase "github.com/allisson/rotator-admin/internal/adminapi/usecase"
)

// DashboardSummary is the landing view: config counts plus the public proxy address.
type DashboardSummary struct {
	ProxyPublicBaseURL string `json:"proxy_public_base_url"`
	Configs            int    `json:"configs"`
	ActiveConfigs      int    `json:"active_configs"`
	LLMConfigs         int    `json:"llm_configs"`
	Keys               int    `json:"keys"`
	ActiveKeys         int    `json:"active_keys"`
}

// RunDashboard loads the config list and the app config concurrently and prints a summary.
func RunDashboard(ctx context.Context, api adminUseCase.API, format string, writer io.Writer) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	var (
		configs   []adminDomain.ProxyConfig
		appConfig adminDomain.AppConfig
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		raw, err := api.ListConfigs(gctx)
		if err != nil {
			return err
		}
		if err := json.Unmarshal(raw, &configs); err != nil {
			return fmt.Errorf("failed to parse configs: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		raw, err := api.GetAppConfig(gctx)
		if err != nil {
			return err
		}
		if err := json.Unmarshal(raw, &appConfig); err != nil {
			return fmt.Errorf("failed to parse app config: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}

	summary := DashboardSummary{ProxyPublicBaseURL: appConfig.ProxyPublicBaseURL, Configs: len(configs)}
	for _, c := range configs {
		if c.IsActive {
			summary.ActiveConfigs++
		}
		if c.ConfigType == adminDomain.ConfigTypeLLM {
			summary.LLMConfigs++
		}
		for _, k := range c.APIKeys {
			summary.Keys++
			if k.IsActive {
				summary.ActiveKeys++
			}
		}
	}

	if format == "json" {
		return writeJSON(writer, summary)
	}

	_, _ = fmt.Fprintf(writer, "Proxy URL: %s\n", summary.ProxyPublicBaseURL)
	_, _ = fmt.Fprintf(writer, "Configs:   %d (%d active, %d llm)\n", summary.Configs, summary.ActiveConfigs, summary.LLMConfigs)
	_, _ = fmt.Fprintf(writer, "Keys:      %d (%d active)\n", summary.Keys, summary.ActiveKeys)
	return nil
}

// RunAppConfig prints the backend's public application settings.
func RunAppConfig(ctx context.Context, api adminUseCase.API, format string, writer io.Writer) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	raw, err := api.GetAppConfig(ctx)
	if err != nil {
		return err
	}
	if format == "json" {
		return writeRaw(writer, raw)
	}

	var appConfig adminDomain.AppConfig
	if err := json.Unmarshal(raw, &appConfig); err != nil {
		return fmt.Errorf("failed to parse app config: %w", err)
	}
	_, _ = fmt.Fprintf(writer, "Proxy public base URL: %s\n", appConfig.ProxyPublicBaseURL)
	return nil
}
