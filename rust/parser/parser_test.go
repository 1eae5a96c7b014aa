package parser

import (
	"os"
	"strings"
	"testing"
)

func parseStmt(t *testing.T, input string) Node {
	t.Helper()
	node, err := ParseStatement(strings.NewReader(input)).Finish()
	if err != nil {
		t.Fatalf("parse %q: %v", input, err)
	}
	return node
}

func TestStatementMacroCall(t *testing.T) {
	tests := []struct {
		input string
		delim Delimiter
	}{
		{"println!(\"{}\", 92);", DelimParen},
		{"try![bar()];", DelimBracket},
		{"try! {\n    bar()\n}", DelimBrace},
		{"error!();", DelimParen},
		{"dbg!();", DelimParen},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			node := parseStmt(t, tt.input)
			call, ok := node.(*MacroCall)
			if !ok {
				t.Fatalf("got %T, want *MacroCall", node)
			}
			if call.Delim != tt.delim {
				t.Errorf("delim: got %s, want %s", call.Delim, tt.delim)
			}
			if call.Position != PositionStatement {
				t.Errorf("position: got %s, want statement", call.Position)
			}
		})
	}
}

func TestStatementTerminatorRequired(t *testing.T) {
	_, err := ParseStatement(strings.NewReader("println!(\"{}\", 92)")).Finish()
	perr, ok := err.(*ParseError)
	if !ok {
		t.Fatalf("got %T (%v), want *ParseError", err, err)
	}
	if perr.Kind != ErrMissingStatementTerminator {
		t.Errorf("got %s, want MissingStatementTerminator", perr.Kind)
	}
}

// Regression for the fixture's "needed to check that we parsed the call as a
// stmt": a brace macro call statement without `;` must leave the following
// statement parseable.
func TestBraceMacroCallThenStatement(t *testing.T) {
	input := "fn f() {\n    foo! {}\n    let a = 0;\n}"
	node, err := ParseFile(strings.NewReader(input)).Finish()
	if err != nil {
		t.Fatal(err)
	}
	file := node.(*SourceFile)
	fn := file.Items[0].(*Function)
	if len(fn.Body.Stmts) != 2 {
		t.Fatalf("got %d statements, want 2", len(fn.Body.Stmts))
	}
	if _, ok := fn.Body.Stmts[0].(*MacroCall); !ok {
		t.Errorf("first statement: got %T, want *MacroCall", fn.Body.Stmts[0])
	}
	if _, ok := fn.Body.Stmts[1].(*Let); !ok {
		t.Errorf("second statement: got %T, want *Let", fn.Body.Stmts[1])
	}
}

func TestMacroCallsAsOperands(t *testing.T) {
	node := parseStmt(t, "foo!() + foo!();")
	stmt, ok := node.(*ExprStmt)
	if !ok {
		t.Fatalf("got %T, want *ExprStmt", node)
	}
	bin, ok := stmt.X.(*BinaryExpr)
	if !ok {
		t.Fatalf("got %T, want *BinaryExpr", stmt.X)
	}
	if bin.Op.Kind != TokenPlus {
		t.Errorf("operator: got %s, want +", bin.Op.Kind)
	}
	left, ok := bin.X.(*MacroCall)
	if !ok {
		t.Fatalf("left operand: got %T, want *MacroCall", bin.X)
	}
	right, ok := bin.Y.(*MacroCall)
	if !ok {
		t.Fatalf("right operand: got %T, want *MacroCall", bin.Y)
	}
	if left.Position != PositionOperand || right.Position != PositionOperand {
		t.Error("operand calls must be classified as operands")
	}
}

// macro_rules is only a macro-definition keyword when immediately followed
// by `!`; alone it is an ordinary variable name.
func TestMacroRulesAsIdentifier(t *testing.T) {
	t.Run("compound assignment", func(t *testing.T) {
		node := parseStmt(t, "macro_rules += 1;")
		stmt, ok := node.(*ExprStmt)
		if !ok {
			t.Fatalf("got %T, want *ExprStmt", node)
		}
		assign, ok := stmt.X.(*AssignExpr)
		if !ok {
			t.Fatalf("got %T, want *AssignExpr", stmt.X)
		}
		if assign.Op.Kind != TokenPlusAssign {
			t.Errorf("operator: got %s, want +=", assign.Op.Kind)
		}
		path, ok := assign.X.(*PathExpr)
		if !ok || path.Segments[0].Literal != "macro_rules" {
			t.Errorf("target: got %T %v", assign.X, assign.X)
		}
	})

	t.Run("let binding", func(t *testing.T) {
		node := parseStmt(t, "let mut macro_rules = 0;")
		let, ok := node.(*Let)
		if !ok {
			t.Fatalf("got %T, want *Let", node)
		}
		if headerString(let.Header) != "mut macro_rules" {
			t.Errorf("header: got %q", headerString(let.Header))
		}
	})
}

func TestLetStatements(t *testing.T) {
	t.Run("macro initializer", func(t *testing.T) {
		node := parseStmt(t, "let v1 = vec![1, 2, 3];")
		let := node.(*Let)
		call, ok := let.Init.(*MacroCall)
		if !ok {
			t.Fatalf("init: got %T, want *MacroCall", let.Init)
		}
		if call.Delim != DelimBracket {
			t.Errorf("delim: got %s, want []", call.Delim)
		}
	})

	t.Run("type ascription in header", func(t *testing.T) {
		node := parseStmt(t, "let v: Vec<i32> = vec![];")
		let := node.(*Let)
		if headerString(let.Header) != "v : Vec < i32 >" {
			t.Errorf("header: got %q", headerString(let.Header))
		}
		call := let.Init.(*MacroCall)
		if len(call.Args.Children) != 0 {
			t.Error("vec![] arguments should be empty")
		}
	})

	t.Run("suffixed literal", func(t *testing.T) {
		node := parseStmt(t, "let a = 42u32;")
		let := node.(*Let)
		lit, ok := let.Init.(*LiteralExpr)
		if !ok || lit.Tok.Literal != "42u32" {
			t.Errorf("init: got %T %v", let.Init, let.Init)
		}
	})

	t.Run("missing semicolon", func(t *testing.T) {
		_, err := ParseStatement(strings.NewReader("let a = 0")).Finish()
		perr, ok := err.(*ParseError)
		if !ok || perr.Kind != ErrMissingStatementTerminator {
			t.Errorf("got %v, want MissingStatementTerminator", err)
		}
	})
}

func TestNestedMacroDefInFunction(t *testing.T) {
	input := "fn foo() {\n    macro_rules! bar {\n        () => {};\n    }\n}"
	node, err := ParseFile(strings.NewReader(input)).Finish()
	if err != nil {
		t.Fatal(err)
	}
	fn := node.(*SourceFile).Items[0].(*Function)
	def, ok := fn.Body.Stmts[0].(*MacroDef)
	if !ok {
		t.Fatalf("got %T, want *MacroDef", fn.Body.Stmts[0])
	}
	if def.Name.Literal != "bar" {
		t.Errorf("name: got %q, want bar", def.Name.Literal)
	}
}

func TestAttributeGatedStatement(t *testing.T) {
	input := "fn f() {\n    #[cfg(foo)]\n    foo! {}\n}"
	node, err := ParseFile(strings.NewReader(input)).Finish()
	if err != nil {
		t.Fatal(err)
	}
	fn := node.(*SourceFile).Items[0].(*Function)
	call := fn.Body.Stmts[0].(*MacroCall)
	if len(call.Attrs) != 1 {
		t.Fatalf("got %d attributes, want 1", len(call.Attrs))
	}
}

func TestParseFixture(t *testing.T) {
	content, err := os.ReadFile("testdata/macros.rs")
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}

	p := ParseFile(strings.NewReader(string(content)), WithFile("macros.rs"))
	node, err := p.Finish()
	if err != nil {
		t.Fatalf("parse fixture: %v", err)
	}
	file := node.(*SourceFile)

	// peg!, three macro_rules defs, default!, thread_local!, foo!, fn foo.
	if len(file.Items) != 8 {
		t.Errorf("got %d items, want 8", len(file.Items))
		for _, item := range file.Items {
			t.Logf("item: %T %s", item, item.NodeSpan().Start)
		}
	}

	var defs, calls int
	for _, item := range file.Items {
		switch item.(type) {
		case *MacroDef:
			defs++
		case *MacroCall:
			calls++
		}
	}
	if defs != 3 {
		t.Errorf("got %d top-level macro definitions, want 3", defs)
	}
	if calls != 4 {
		t.Errorf("got %d top-level macro calls, want 4", calls)
	}
}

func TestFixtureRoundTrip(t *testing.T) {
	content, err := os.ReadFile("testdata/macros.rs")
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}

	p := ParseFile(strings.NewReader(string(content)), WithFile("macros.rs"))
	node, err := p.Finish()
	if err != nil {
		t.Fatalf("parse fixture: %v", err)
	}

	src := p.Source()
	var check func(n Node)
	check = func(n Node) {
		switch node := n.(type) {
		case *SourceFile:
			for _, item := range node.Items {
				check(item)
			}
		case *Function:
			for _, stmt := range node.Body.Stmts {
				check(stmt)
			}
		case *Let:
			if node.Init != nil {
				check(node.Init)
			}
		case *ExprStmt:
			check(node.X)
		case *BinaryExpr:
			check(node.X)
			check(node.Y)
		case *MacroCall:
			span := node.Span
			text := string(src[span.Start.Offset:span.End.Offset])
			if !strings.Contains(text, node.PathString()) {
				t.Errorf("span text %q does not contain path %q", text, node.PathString())
			}
			if node.Terminator != nil && !strings.HasSuffix(text, ";") {
				t.Errorf("terminated call span %q does not end in ;", text)
			}
			// The argument tree's span reproduces its source verbatim.
			argSpan := node.Args.Span()
			argText := string(src[argSpan.Start.Offset:argSpan.End.Offset])
			if !strings.HasPrefix(argText, node.Delim.OpenKind().String()) {
				t.Errorf("argument text %q does not open with %s", argText, node.Delim)
			}
		}
	}
	check(node)
}

func TestFixtureComments(t *testing.T) {
	content, err := os.ReadFile("testdata/macros.rs")
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}

	p := ParseFile(strings.NewReader(string(content)), WithComments())
	if _, err := p.Finish(); err != nil {
		t.Fatal(err)
	}
	found := false
	for _, c := range p.Comments() {
		if strings.Contains(c.Literal, "needed to check that we parsed the call as a stmt") {
			found = true
		}
	}
	if !found {
		t.Error("expected fixture comment to be collected")
	}
}
