package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/x/term"

	"github.com/praskarnam/DSynth/pkg/generator"
	"github.com/praskarnam/DSynth/pkg/registry"
)

// interactive reports whether stdin is a terminal that can show prompts.
func interactive() bool {
	return term.IsTerminal(os.Stdin.Fd())
}

// confirmClear asks before the data directory is emptied. Aborting the
// prompt counts as "no".
func confirmClear(dir string) (bool, error) {
	var ok bool
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Remove every schema and custom type in %s?", dir)).
				Affirmative("Clear").
				Negative("Cancel").
				Value(&ok),
		),
	).Run()
	if errors.Is(err, huh.ErrUserAborted) {
		return false, nil
	}
	return ok, err
}

// promptExpression asks for a custom type expression, rejecting ones that
// fail to evaluate before the form is submitted.
func promptExpression() (string, error) {
	gen := generator.New()
	var expr string
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Custom type expression").
				Placeholder("random.choice(['gold', 'silver', 'bronze'])").
				Value(&expr).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return ErrExpressionRequired
					}
					_, err := gen.SampleDefinition(registry.Definition{Name: "prompt", Expression: s})
					return err
				}),
		),
	).Run()
	return expr, err
}
