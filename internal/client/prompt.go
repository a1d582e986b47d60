package client

import (
	"strings"

	"github.com/chzyer/readline"
	"github.com/pkg/errors"
)

type (
	// A Prompter asks the user for values.
	Prompter interface {
		Line(prompt string) (string, error)
		Password(prompt string) ([]byte, error)
		// Confirm asks a yes/no question, the default answer is no.
		Confirm(question string) (bool, error)
	}

	terminal struct{}
)

// Terminal returns the Prompter reading from the terminal.
func Terminal() Prompter {
	return terminal{}
}

func (terminal) Line(prompt string) (string, error) {
	line, err := readline.Line(prompt)
	return strings.TrimSpace(line), errors.Wrap(err, "could not read from stdin")
}

func (terminal) Password(prompt string) ([]byte, error) {
	password, err := readline.Password(prompt)
	return password, errors.Wrap(err, "could not read password from stdin")
}

func (t terminal) Confirm(question string) (bool, error) {
	answer, err := t.Line(question + " [y/N] ")
	if err != nil {
		return false, err
	}
	return yes(answer), nil
}

func yes(answer string) bool {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	}
	return false
}
