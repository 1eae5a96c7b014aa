package parser

import (
	"strings"
	"testing"
)

func parseCall(t *testing.T, input string, pos SyntacticPosition) *MacroCall {
	t.Helper()
	node, err := ParseMacroCall(strings.NewReader(input), pos).Finish()
	if err != nil {
		t.Fatalf("parse %q: %v", input, err)
	}
	call, ok := node.(*MacroCall)
	if !ok {
		t.Fatalf("parse %q: got %T, want *MacroCall", input, node)
	}
	return call
}

func callError(t *testing.T, input string, pos SyntacticPosition) *ParseError {
	t.Helper()
	_, err := ParseMacroCall(strings.NewReader(input), pos).Finish()
	if err == nil {
		t.Fatalf("parse %q: expected error", input)
	}
	perr, ok := err.(*ParseError)
	if !ok {
		t.Fatalf("parse %q: got %T, want *ParseError", input, err)
	}
	return perr
}

func TestMacroCallDelimiters(t *testing.T) {
	tests := []struct {
		input string
		delim Delimiter
	}{
		{"assert!(a == b);", DelimParen},
		{"assert![a == b];", DelimBracket},
		{"assert!{a == b};", DelimBrace},
	}

	var trees []*TokenTree
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			call := parseCall(t, tt.input, PositionStatement)
			if call.Delim != tt.delim {
				t.Errorf("delimiter: got %s, want %s", call.Delim, tt.delim)
			}
			trees = append(trees, call.Args)
		})
	}

	if len(trees) != len(tests) {
		t.Fatalf("collected %d trees, want %d", len(trees), len(tests))
	}

	// Delimiter choice never affects the captured argument tree's content.
	want := tokenLiterals(trees[0])
	for i, tree := range trees[1:] {
		got := tokenLiterals(tree)
		if len(got) != len(want) {
			t.Fatalf("tree %d: got %d tokens, want %d", i+1, len(got), len(want))
		}
		for j := range got {
			if got[j] != want[j] {
				t.Errorf("tree %d token %d: got %q, want %q", i+1, j, got[j], want[j])
			}
		}
	}
}

func tokenLiterals(t *TokenTree) []string {
	var out []string
	for _, child := range t.Children {
		for _, tok := range child.Tokens() {
			out = append(out, tok.Literal)
		}
	}
	return out
}

func TestMacroCallPath(t *testing.T) {
	tests := []struct {
		input string
		path  string
	}{
		{"println!(\"{}\", 92);", "println"},
		{"crate::foo!();", "crate::foo"},
		{"std::vec::vec![];", "std::vec::vec"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			call := parseCall(t, tt.input, PositionStatement)
			if call.PathString() != tt.path {
				t.Errorf("path: got %q, want %q", call.PathString(), tt.path)
			}
		})
	}
}

func TestMacroCallOpaqueArguments(t *testing.T) {
	// Named-prefix conventions stay inside the opaque argument tree.
	tests := []string{
		`trace!(target: "smbc", "open_with {:?}", options);`,
		`debug!(log, "debug values"; "x" => 1, "y" => -1);`,
		`format_args!("{name} {}", 1, name = 2);`,
		`format!("{argument}", argument = "test");`,
	}

	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			call := parseCall(t, input, PositionStatement)
			if call.Args == nil || len(call.Args.Children) == 0 {
				t.Fatal("expected non-empty opaque argument tree")
			}
		})
	}
}

func TestMacroCallTerminatorPolicy(t *testing.T) {
	t.Run("statement brace needs no semicolon", func(t *testing.T) {
		call := parseCall(t, "foo! {}", PositionStatement)
		if call.Terminator != nil {
			t.Error("brace call should have no terminator")
		}
		if call.RequiresTerminator() {
			t.Error("brace call must not require a terminator")
		}
	})

	t.Run("statement brace consumes written semicolon", func(t *testing.T) {
		call := parseCall(t, "assert!{a == b};", PositionStatement)
		if call.Terminator == nil {
			t.Error("written ; should be consumed and recorded")
		}
	})

	t.Run("statement paren requires semicolon", func(t *testing.T) {
		perr := callError(t, "foo!()", PositionStatement)
		if perr.Kind != ErrMissingStatementTerminator {
			t.Errorf("got %s, want MissingStatementTerminator", perr.Kind)
		}
	})

	t.Run("statement bracket requires semicolon", func(t *testing.T) {
		perr := callError(t, "try![bar()]", PositionStatement)
		if perr.Kind != ErrMissingStatementTerminator {
			t.Errorf("got %s, want MissingStatementTerminator", perr.Kind)
		}
	})

	t.Run("item never requires semicolon", func(t *testing.T) {
		call := parseCall(t, "thread_local!(static HANDLE: Handle = Handle(0))", PositionItem)
		if call.Terminator != nil {
			t.Error("no terminator was written")
		}
	})

	t.Run("item consumes written semicolon separately", func(t *testing.T) {
		call := parseCall(t, "default!(String);", PositionItem)
		if call.Terminator == nil {
			t.Error("written ; should be recorded")
		}
	})

	t.Run("operand leaves following tokens alone", func(t *testing.T) {
		p := ParseMacroCall(strings.NewReader("foo!() + foo!()"), PositionOperand)
		node, err := p.Finish()
		if err != nil {
			t.Fatal(err)
		}
		call := node.(*MacroCall)
		if call.Terminator != nil {
			t.Error("operand call must not consume a terminator")
		}
		if call.RequiresTerminator() {
			t.Error("operand call must not require a terminator")
		}
	})
}

func TestMacroCallErrors(t *testing.T) {
	t.Run("no delimiter after bang", func(t *testing.T) {
		perr := callError(t, "foo! + 1;", PositionStatement)
		if perr.Kind != ErrExpectedMacroArguments {
			t.Errorf("got %s, want ExpectedMacroArguments", perr.Kind)
		}
	})

	t.Run("mismatched closer", func(t *testing.T) {
		perr := callError(t, "foo!(a, [b, c)", PositionStatement)
		if perr.Kind != ErrMismatchedDelimiter {
			t.Errorf("got %s, want MismatchedDelimiter", perr.Kind)
		}
		// The span points at the offending `)`.
		if perr.Span.Start.Column != 14 {
			t.Errorf("error column %d, want 14", perr.Span.Start.Column)
		}
	})

	t.Run("unterminated tree", func(t *testing.T) {
		perr := callError(t, "foo!(a, b", PositionStatement)
		if perr.Kind != ErrUnterminatedTokenTree {
			t.Errorf("got %s, want UnterminatedTokenTree", perr.Kind)
		}
	})
}

func TestMacroCallNestingLimit(t *testing.T) {
	depth := 300
	input := "foo!" + strings.Repeat("(", depth) + strings.Repeat(")", depth) + ";"
	perr := callError(t, input, PositionStatement)
	if perr.Kind != ErrNestingTooDeep {
		t.Errorf("got %s, want NestingTooDeep", perr.Kind)
	}

	// A higher configured limit accepts the same input.
	_, err := ParseMacroCall(strings.NewReader(input), PositionStatement, WithMaxDepth(512)).Finish()
	if err != nil {
		t.Errorf("with raised limit: %v", err)
	}
}

func TestMacroCallItemName(t *testing.T) {
	call := parseCall(t, `peg! parser_definition(r#""#);`, PositionItem)
	if call.PathString() != "peg" {
		t.Errorf("path: got %q, want peg", call.PathString())
	}
	if call.ItemName == nil || call.ItemName.Literal != "parser_definition" {
		t.Errorf("item name: got %v, want parser_definition", call.ItemName)
	}
}

func TestMacroCallRoundTrip(t *testing.T) {
	inputs := []string{
		"println!(\"{}\", 92)",
		"vec![1, 2, 3]",
		"try! {\n        bar()\n    }",
		`trace!(target: "smbc", "open_with {:?}", options)`,
		"format! {\n        \"x = {}, y = {y}\",\n        10, y = 30\n    }",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			p := ParseMacroCall(strings.NewReader(input), PositionOperand)
			node, err := p.Finish()
			if err != nil {
				t.Fatal(err)
			}
			span := node.NodeSpan()
			got := string(p.Source()[span.Start.Offset:span.End.Offset])
			if got != input {
				t.Errorf("round trip:\ngot  %q\nwant %q", got, input)
			}
		})
	}
}

func parseDef(t *testing.T, input string) *MacroDef {
	t.Helper()
	node, err := ParseMacroDef(strings.NewReader(input)).Finish()
	if err != nil {
		t.Fatalf("parse %q: %v", input, err)
	}
	return node.(*MacroDef)
}

func TestMacroDef(t *testing.T) {
	t.Run("single empty rule", func(t *testing.T) {
		def := parseDef(t, "macro_rules! bar {\n    () => {};\n}")
		if def.Name.Literal != "bar" {
			t.Errorf("name: got %q, want bar", def.Name.Literal)
		}
		if len(def.Rules) != 1 {
			t.Fatalf("got %d rules, want 1", len(def.Rules))
		}
		rule := def.Rules[0]
		if len(rule.Pattern.Children) != 0 {
			t.Error("pattern should be empty")
		}
		if len(rule.Template.Children) != 0 {
			t.Error("template should be empty")
		}
	})

	t.Run("zero rules", func(t *testing.T) {
		def := parseDef(t, "macro_rules! nothing {}")
		if len(def.Rules) != 0 {
			t.Errorf("got %d rules, want 0", len(def.Rules))
		}
	})

	t.Run("repetition pattern stays opaque", func(t *testing.T) {
		def := parseDef(t, "macro_rules! vec {\n    ( $( $x:expr ),* ) => {\n        {\n            let mut temp_vec = Vec::new();\n            $(\n                temp_vec.push($x);\n            )*\n            temp_vec\n        }\n    };\n}")
		if def.Name.Literal != "vec" {
			t.Errorf("name: got %q, want vec", def.Name.Literal)
		}
		if len(def.Rules) != 1 {
			t.Fatalf("got %d rules, want 1", len(def.Rules))
		}
		if def.Rules[0].Pattern.Delim != DelimParen {
			t.Errorf("pattern delim: got %s, want ()", def.Rules[0].Pattern.Delim)
		}
		if def.Rules[0].Template.Delim != DelimBrace {
			t.Errorf("template delim: got %s, want {}", def.Rules[0].Template.Delim)
		}
	})

	t.Run("multiple rules with separators", func(t *testing.T) {
		def := parseDef(t, "macro_rules! m { () => {}; ($x:expr) => { $x }; }")
		if len(def.Rules) != 2 {
			t.Errorf("got %d rules, want 2", len(def.Rules))
		}
	})

	t.Run("missing separator between rules", func(t *testing.T) {
		_, err := ParseMacroDef(strings.NewReader("macro_rules! m { () => {} ($x:expr) => {} }")).Finish()
		perr, ok := err.(*ParseError)
		if !ok {
			t.Fatalf("got %T (%v), want *ParseError", err, err)
		}
		if perr.Kind != ErrExpectedRuleSeparator {
			t.Errorf("got %s, want ExpectedRuleSeparator", perr.Kind)
		}
	})

	t.Run("bracket body", func(t *testing.T) {
		def := parseDef(t, "macro_rules! m [ () => {}; ];")
		if def.Delim != DelimBracket {
			t.Errorf("body delim: got %s, want []", def.Delim)
		}
	})
}

func TestAttributeGatedCall(t *testing.T) {
	call := parseCall(t, "#[cfg(foo)] foo!();", PositionItem)
	if len(call.Attrs) != 1 {
		t.Fatalf("got %d attributes, want 1", len(call.Attrs))
	}
	attr := call.Attrs[0]
	if attr.Body.Delim != DelimBracket {
		t.Errorf("attribute body delim: got %s, want []", attr.Body.Delim)
	}
	// The condition is carried, not evaluated.
	toks := attr.Body.Tokens()
	if toks[1].Literal != "cfg" {
		t.Errorf("attribute content: got %q, want cfg", toks[1].Literal)
	}
}
