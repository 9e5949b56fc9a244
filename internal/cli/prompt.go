package cli

import "github.com/charmbracelet/huh"

// ConfirmFunc asks the user a yes/no question and returns true if confirmed.
type ConfirmFunc func(prompt string) (bool, error)

// NewConfirmFunc returns a ConfirmFunc backed by huh's interactive confirm.
func NewConfirmFunc() ConfirmFunc {
	return func(prompt string) (bool, error) {
		var result bool
		err := huh.NewConfirm().
			Title(prompt).
			Affirmative("Yes").
			Negative("No").
			Value(&result).
			Run()
		return result, err
	}
}

// AlwaysYes returns a ConfirmFunc that confirms without asking (--yes).
func AlwaysYes() ConfirmFunc {
	return func(string) (bool, error) { return true, nil }
}

// confirmFor picks the ConfirmFunc for a command from its --yes flag.
func confirmFor(yes bool) ConfirmFunc {
	if yes {
		return AlwaysYes()
	}
	return NewConfirmFunc()
}
