package lang

import (
	"strings"
	"testing"
)

// BenchmarkEvaluate benchmarks postfix evaluation across expression shapes.
func BenchmarkEvaluate(b *testing.B) {
	env := Env{}.
		Bind("Base", IntNumber(100)).
		Bind("Rate", FloatNumber(1.5))

	tests := []struct {
		name string
		expr string
	}{
		{
			name: "literal_pair",
			expr: "1 2 +",
		},
		{
			name: "constant_lookup",
			expr: "Base Rate *",
		},
		{
			name: "division",
			expr: "7 2 /",
		},
		{
			name: "minimum",
			expr: "Base 42 min",
		},
		{
			name: "long_chain",
			expr: "1 2 + 3 + 4 + 5 + 6 + 7 + 8 +",
		},
	}

	for _, tt := range tests {
		b.Run(tt.name, func(b *testing.B) {
			tokens := strings.Fields(tt.expr)

			b.ResetTimer()
			b.ReportAllocs()

			for i := 0; i < b.N; i++ {
				_, err := Evaluate(tokens, env)
				if err != nil {
					b.Fatalf("eval error: %v", err)
				}
			}
		})
	}
}

// BenchmarkEvaluateInfix benchmarks expression evaluation through expr-lang.
func BenchmarkEvaluateInfix(b *testing.B) {
	env := Env{}.
		Bind("Base", IntNumber(100)).
		Bind("Rate", FloatNumber(1.5))

	tests := []struct {
		name string
		expr string
	}{
		{
			name: "simple_arithmetic",
			expr: "Base + 1",
		},
		{
			name: "builtin_function",
			expr: "min(Base, 42)",
		},
		{
			name: "complex_expression",
			expr: "Base * Rate + 50",
		},
	}

	for _, tt := range tests {
		b.Run(tt.name, func(b *testing.B) {
			b.ReportAllocs()

			for i := 0; i < b.N; i++ {
				_, err := EvaluateInfix(tt.expr, env)
				if err != nil {
					b.Fatalf("eval error: %v", err)
				}
			}
		})
	}
}

// BenchmarkProcess benchmarks full document rendering.
func BenchmarkProcess(b *testing.B) {
	source := `
Key1 = 10
Key2 = 20
Key3 = [1, 2, 3]
Key4 = "|Key1 Key2 +|"

[Table]
A = 1
B = 2
`

	ext := Extract(source)

	doc, err := DecodeDocument(ext.Text)
	if err != nil {
		b.Fatalf("decode error: %v", err)
	}

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		_, err := Process(doc, ext.Comments)
		if err != nil {
			b.Fatalf("process error: %v", err)
		}
	}
}

// BenchmarkExtract benchmarks comment scanning over a document with many
// interleaved blocks.
func BenchmarkExtract(b *testing.B) {
	source := strings.Repeat("Key = 1\n{{!\na note spanning\ntwo lines\n}}\n", 64)

	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		_ = Extract(source)
	}
}
