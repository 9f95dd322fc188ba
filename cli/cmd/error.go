package cmd

import "github.com/ardnew/tomelt/pkg"

// Predefined errors (sentinel values).
//
//nolint:gochecknoglobals
var (
	ErrReadInput   = pkg.NewError("read input")
	ErrWriteOutput = pkg.NewError("write output")
	ErrJSONMarshal = pkg.NewError("marshal JSON")
	ErrYAMLMarshal = pkg.NewError("marshal YAML")
	ErrWriteConfig = pkg.NewError("write configuration file")
	ErrFileExists  = pkg.NewError("file exists (use --force to overwrite)")
)
