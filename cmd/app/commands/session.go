package commands

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	adminDomain "github.com/allisson/rotator-admin/internal/adminapi/domain"
	adminUseCase "github.com/allisson/rotator-admin/internal/adminapi/usecase"
	apperrors "github.com/allisson/rotator-admin/internal/errors"
	sessionDomain "github.com/allisson/rotator-admin/internal/session/domain"
)

// SessionManager is the session lifecycle used by the login, logout and status commands.
type SessionManager interface {
	State(ctx context.Context) sessionDomain.State
	Login(ctx context.Context, token string) error
	Logout(ctx context.Context) error
}

// RunLogin authenticates against the login surface and stores the returned access token as the
// session credential. Missing username or password are prompted for on io.Reader.
//
// A rejected login leaves the session untouched.
func RunLogin(
	ctx context.Context,
	api adminUseCase.API,
	session SessionManager,
	logger *slog.Logger,
	username string,
	password string,
	io IOTuple,
) error {
	if username == "" || password == "" {
		reader := bufio.NewReader(io.Reader)
		var err error
		if username == "" {
			if username, err = prompt(reader, io.Writer, "Username: "); err != nil {
				return err
			}
		}
		if password == "" {
			if password, err = prompt(reader, io.Writer, "Password: "); err != nil {
				return err
			}
		}
	}

	request := adminDomain.LoginRequest{Username: username, Password: password}
	if err := request.Validate(); err != nil {
		return err
	}

	raw, err := api.Login(ctx, request)
	if err != nil {
		return err
	}

	var response adminDomain.LoginResponse
	if err := json.Unmarshal(raw, &response); err != nil {
		return fmt.Errorf("failed to parse login response: %w", err)
	}
	if response.AccessToken == "" {
		return apperrors.Wrap(apperrors.ErrUnauthorized, "login response has no access token")
	}

	if err := session.Login(ctx, response.AccessToken); err != nil {
		return err
	}

	logger.Info("signed in", slog.String("username", username))
	_, _ = fmt.Fprintf(io.Writer, "Signed in as %s\n", username)
	return nil
}

// RunLogout clears the session credential.
func RunLogout(ctx context.Context, session SessionManager, logger *slog.Logger, writer io.Writer) error {
	if err := session.Logout(ctx); err != nil {
		return err
	}

	logger.Info("signed out")
	_, _ = fmt.Fprintln(writer, "Signed out")
	return nil
}

// StatusInfo describes the local client state.
type StatusInfo struct {
	State     string `json:"state"`
	Locale    string `json:"locale"`
	APIBase   string `json:"api_base_url"`
	AdminPath string `json:"admin_prefix"`
}

// RunStatus prints the session state, the selected locale and the backend the client talks to.
// It never contacts the backend.
func RunStatus(ctx context.Context, session SessionManager, info StatusInfo, format string, writer io.Writer) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	info.State = session.State(ctx).String()

	if format == "json" {
		return writeJSON(writer, info)
	}

	_, _ = fmt.Fprintf(writer, "Session: %s\n", info.State)
	_, _ = fmt.Fprintf(writer, "Locale:  %s\n", info.Locale)
	_, _ = fmt.Fprintf(writer, "Backend: %s%s\n", info.APIBase, info.AdminPath)
	return nil
}
