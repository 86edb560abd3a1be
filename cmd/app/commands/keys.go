package commands

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"text/tabwriter"

	"golang.org/x/sync/errgroup"

	adminDomain "github.com/allisson/rotator-admin/internal/adminapi/domain"
	adminUseCase "github.com/allisson/rotator-admin/internal/adminapi/usecase"
	apperrors "github.com/allisson/rotator-admin/internal/errors"
)

// RunListKeys lists the keys of a config with their values masked. JSON output is the raw response.
func RunListKeys(ctx context.Context, api adminUseCase.API, configID int64, format string, writer io.Writer) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	raw, err := api.ListKeys(ctx, configID)
	if err != nil {
		return err
	}
	if format == "json" {
		return writeRaw(writer, raw)
	}

	var keys []adminDomain.APIKey
	if err := json.Unmarshal(raw, &keys); err != nil {
		return fmt.Errorf("failed to parse keys: %w", err)
	}
	if len(keys) == 0 {
		_, _ = fmt.Fprintf(writer, "No keys for config %d\n", configID)
		return nil
	}

	w := tabwriter.NewWriter(writer, 0, 0, 3, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tKEY\tACTIVE")
	for _, k := range keys {
		_, _ = fmt.Fprintf(w, "%d\t%s\t%s\n", k.ID, adminDomain.MaskKey(k.KeyValue), yesNo(k.IsActive))
	}
	return w.Flush()
}

// RunAddKey validates and adds a single key to a config.
func RunAddKey(
	ctx context.Context,
	api adminUseCase.API,
	logger *slog.Logger,
	configID int64,
	input adminDomain.APIKeyInput,
	format string,
	writer io.Writer,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}
	if err := input.Validate(); err != nil {
		return err
	}

	raw, err := api.AddKey(ctx, configID, input)
	if err != nil {
		return err
	}

	logger.Info("key added", slog.Int64("config_id", configID))

	if format == "json" {
		return writeRaw(writer, raw)
	}

	var key adminDomain.APIKey
	if err := json.Unmarshal(raw, &key); err != nil {
		return fmt.Errorf("failed to parse key: %w", err)
	}
	_, _ = fmt.Fprintf(writer, "Key %d added to config %d (%s)\n", key.ID, configID, adminDomain.MaskKey(key.KeyValue))
	return nil
}

// RunKeyStatus enables or disables a key.
func RunKeyStatus(
	ctx context.Context,
	api adminUseCase.API,
	logger *slog.Logger,
	keyID int64,
	isActive bool,
	writer io.Writer,
) error {
	if _, err := api.UpdateKeyStatus(ctx, keyID, isActive); err != nil {
		return err
	}

	logger.Info("key status updated", slog.Int64("key_id", keyID), slog.Bool("is_active", isActive))
	_, _ = fmt.Fprintf(writer, "Key %d active=%s\n", keyID, yesNo(isActive))
	return nil
}

// RunDeleteKey deletes a key.
func RunDeleteKey(ctx context.Context, api adminUseCase.API, logger *slog.Logger, keyID int64, writer io.Writer) error {
	if _, err := api.DeleteKey(ctx, keyID); err != nil {
		return err
	}

	logger.Info("key deleted", slog.Int64("key_id", keyID))
	_, _ = fmt.Fprintf(writer, "Key %d deleted\n", keyID)
	return nil
}

// ImportResult summarizes a bulk key import.
type ImportResult struct {
	ConfigID int64         `json:"config_id"`
	Added    int           `json:"added"`
	Failed   []ImportError `json:"failed"`
}

// ImportError describes one key that could not be added.
type ImportError struct {
	Line  int    `json:"line"`
	Key   string `json:"key"`
	Error string `json:"error"`
}

// ErrImportIncomplete is returned when at least one key of an import failed.
var ErrImportIncomplete = errors.New("key import incomplete")

// RunImportKeys adds one key per line of source to a config, with at most concurrency requests in
// flight. Blank lines and lines starting with '#' are skipped. Every line is validated before any
// request is sent; a failed key does not stop the others.
func RunImportKeys(
	ctx context.Context,
	api adminUseCase.API,
	logger *slog.Logger,
	configID int64,
	source io.Reader,
	isActive bool,
	concurrency int,
	format string,
	writer io.Writer,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}
	if concurrency < 1 {
		concurrency = 1
	}

	inputs, lines, err := readKeyLines(source, isActive)
	if err != nil {
		return err
	}
	if len(inputs) == 0 {
		return apperrors.Wrap(apperrors.ErrInvalidInput, "no keys to import")
	}

	result := ImportResult{ConfigID: configID, Failed: []ImportError{}}
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, input := range inputs {
		g.Go(func() error {
			_, err := api.AddKey(gctx, configID, input)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				result.Failed = append(result.Failed, ImportError{
					Line:  lines[i],
					Key:   adminDomain.MaskKey(input.KeyValue),
					Error: err.Error(),
				})
				return nil
			}
			result.Added++
			return nil
		})
	}
	_ = g.Wait()
	slices.SortFunc(result.Failed, func(a, b ImportError) int { return a.Line - b.Line })

	logger.Info("keys imported",
		slog.Int64("config_id", configID),
		slog.Int("added", result.Added),
		slog.Int("failed", len(result.Failed)),
	)

	if format == "json" {
		if err := writeJSON(writer, result); err != nil {
			return err
		}
	} else {
		_, _ = fmt.Fprintf(writer, "Imported %d of %d keys into config %d\n", result.Added, len(inputs), configID)
		for _, f := range result.Failed {
			_, _ = fmt.Fprintf(writer, "  line %d %s: %s\n", f.Line, f.Key, f.Error)
		}
	}

	if len(result.Failed) > 0 {
		return fmt.Errorf("%w: %d of %d keys failed", ErrImportIncomplete, len(result.Failed), len(inputs))
	}
	return nil
}

// readKeyLines parses and validates the key file. The returned line numbers are 1-based.
func readKeyLines(source io.Reader, isActive bool) ([]adminDomain.APIKeyInput, []int, error) {
	var (
		inputs []adminDomain.APIKeyInput
		lines  []int
	)

	scanner := bufio.NewScanner(source)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		value := strings.TrimSpace(scanner.Text())
		if value == "" || strings.HasPrefix(value, "#") {
			continue
		}

		input := adminDomain.APIKeyInput{KeyValue: value, IsActive: isActive}
		if err := input.Validate(); err != nil {
			return nil, nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		inputs = append(inputs, input)
		lines = append(lines, lineNo)
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, fmt.Errorf("failed to read keys: %w", err)
	}
	return inputs, lines, nil
}
