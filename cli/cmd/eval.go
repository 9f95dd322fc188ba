package cmd

import (
	"context"
	"fmt"

	"github.com/ardnew/tomelt/lang"
)

// Eval evaluates a postfix expression against a document's constants.
type Eval struct {
	Tokens []string `arg:"" help:"Postfix expression tokens to evaluate"           name:"tokens"`
	Source string   `       help:"Source document binding constants, '-' for stdin"               optional:"" short:"s"`
}

// Run executes the eval command.
func (e *Eval) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	// Without a source document the environment is empty, which still
	// evaluates expressions over literals alone.
	var env lang.Env

	if e.Source != "" {
		doc, _, err := loadSource(ctx, e.Source)
		if err != nil {
			return err
		}

		env, err = lang.Constants(doc)
		if err != nil {
			return err
		}
	}

	result, err := lang.Evaluate(e.Tokens, env)
	if err != nil {
		return err
	}

	fmt.Println(result.String())

	return nil
}
