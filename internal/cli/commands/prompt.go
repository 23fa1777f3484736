package commands

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/manifoldco/promptui"
	"golang.org/x/term"

	"github.com/hrdesk-dev/hrdesk/internal/cli/pages"
)

// errNonInteractive is returned when input is needed but stdin is not a terminal
var errNonInteractive = errors.New("input required in non-interactive mode")

func isInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// promptText asks for a line of input. validate may be nil.
func promptText(label, defaultValue string, validate func(string) error) (string, error) {
	if !isInteractive() {
		return "", fmt.Errorf("%w: %s", errNonInteractive, strings.ToLower(label))
	}

	prompt := promptui.Prompt{
		Label:    label,
		Default:  defaultValue,
		Validate: validate,
	}
	value, err := prompt.Run()
	if err != nil {
		return "", fmt.Errorf("prompt cancelled: %w", err)
	}
	return strings.TrimSpace(value), nil
}

func promptEmail(defaultValue string) (string, error) {
	return promptText("Email", defaultValue, func(s string) error {
		if !pages.ValidEmail(s) {
			return errors.New(pages.MsgInvalidEmail)
		}
		return nil
	})
}

// promptPassword reads a password without echoing it
func promptPassword(out *os.File) (string, error) {
	if !isInteractive() {
		return "", fmt.Errorf("%w: password", errNonInteractive)
	}

	fmt.Fprint(out, "Password: ")
	bytePassword, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(out)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return string(bytePassword), nil
}
