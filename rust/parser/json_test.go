package parser

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestMarshalNode(t *testing.T) {
	node, err := ParseStatement(strings.NewReader(`trace!(target: "smbc", "msg");`)).Finish()
	if err != nil {
		t.Fatal(err)
	}

	data, err := MarshalNode(node)
	if err != nil {
		t.Fatal(err)
	}

	var decoded struct {
		Kind       string `json:"kind"`
		Path       string `json:"path"`
		Delimiter  string `json:"delimiter"`
		Position   string `json:"position"`
		Terminated bool   `json:"terminated"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatal(err)
	}
	if decoded.Kind != "MacroCall" {
		t.Errorf("kind: got %q", decoded.Kind)
	}
	if decoded.Path != "trace" {
		t.Errorf("path: got %q", decoded.Path)
	}
	if decoded.Delimiter != "()" {
		t.Errorf("delimiter: got %q", decoded.Delimiter)
	}
	if decoded.Position != "statement" {
		t.Errorf("position: got %q", decoded.Position)
	}
	if !decoded.Terminated {
		t.Error("expected terminated call")
	}
}

func TestNodeString(t *testing.T) {
	node, err := ParseFile(strings.NewReader("macro_rules! bar { () => {}; }")).Finish()
	if err != nil {
		t.Fatal(err)
	}
	out := NodeString(node)
	if !strings.Contains(out, "MacroDef bar {} (1 rules)") {
		t.Errorf("unexpected output:\n%s", out)
	}
	if !strings.Contains(out, "MacroRule") {
		t.Errorf("missing rule line:\n%s", out)
	}
}
