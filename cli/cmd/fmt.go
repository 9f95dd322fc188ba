package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/ardnew/tomelt/lang"
)

// Fmt re-renders a decoded document in the chosen format.
type Fmt struct {
	Lines Lines `cmd:"" default:"withargs" help:"Format as flat output lines (default)."`
	JSON  JSON  `cmd:""                    help:"Format as JSON."`
	YAML  YAML  `cmd:""                    help:"Format as YAML."`
}

// Lines renders the converted output lines on stdout.
type Lines struct {
	Source string `arg:"" default:"-" help:"Source input file or '-' for default stdin." name:"source"`
}

// Run executes the lines command.
func (l *Lines) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	doc, ext, err := loadSource(ctx, l.Source)
	if err != nil {
		return err
	}

	lines, err := lang.Process(doc, ext.Comments)
	if err != nil {
		return err
	}

	for _, line := range lines {
		fmt.Println(line)
	}

	return nil
}

// JSON renders the document as a JSON object preserving entry order.
type JSON struct {
	Indent int `default:"2" help:"Indent width for JSON output" short:"i"`

	Source string `arg:"" default:"-" help:"Source input file or '-' for default stdin." name:"source"`
}

// Run executes the json command.
func (j *JSON) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	doc, _, err := loadSource(ctx, j.Source)
	if err != nil {
		return err
	}

	var data []byte
	if j.Indent > 0 {
		data, err = json.MarshalIndent(doc, "", strings.Repeat(" ", j.Indent))
	} else {
		data, err = json.Marshal(doc)
	}

	if err != nil {
		return ErrJSONMarshal.Wrap(err)
	}

	fmt.Println(string(data))

	return nil
}

// YAML renders the document as YAML preserving entry order.
type YAML struct {
	Indent int `default:"2" help:"Indent width for YAML output" short:"i"`

	Source string `arg:"" default:"-" help:"Source input file or '-' for default stdin." name:"source"`
}

// Run executes the yaml command.
func (y *YAML) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	doc, _, err := loadSource(ctx, y.Source)
	if err != nil {
		return err
	}

	// Zero indent renders compact flow style instead.
	opt := yaml.Indent(y.Indent)
	if y.Indent <= 0 {
		opt = yaml.Flow(true)
	}

	data, err := yaml.MarshalContext(ctx, doc.ToMapSlice(), opt)
	if err != nil {
		return ErrYAMLMarshal.Wrap(err)
	}

	_, err = os.Stdout.Write(data)

	return err
}
