// ==============================================================================================
// FILE: repl/repl_unit_test.go
// ==============================================================================================
// PURPOSE: Unit tests for basic REPL functionality.
//          Verifies that commands work and simple calculations produce output.
// ==============================================================================================

package repl

import (
	"bytes"
	"strings"
	"testing"
)

// Helper to simulate a REPL session
func runSession(input string) string {
	in := strings.NewReader(input)
	var out bytes.Buffer
	Start(in, &out)
	return out.String()
}

func TestREPL_Math(t *testing.T) {
	input := "import int\nint.add(10, 20)\n.exit"
	output := runSession(input)

	if !strings.Contains(output, "30") {
		t.Errorf("REPL failed simple math. Output:\n%s", output)
	}
}

func TestREPL_VariablePersistence(t *testing.T) {
	// Ensure variables defined in one line persist to the next
	input := `
	import int
	x = 50
	int.add(x, 10)
	.exit`
	output := runSession(input)

	if !strings.Contains(output, "60") {
		t.Errorf("REPL failed variable persistence. Output:\n%s", output)
	}
}

func TestREPL_Commands(t *testing.T) {
	// Test .debug toggle and .clear
	input := `
	.debug
	x = 10
	.clear
	x
	.exit`
	output := runSession(input)

	// Check for debug sections
	if !strings.Contains(output, "[ TOKENS ]") {
		t.Error("Debug mode did not print tokens")
	}
	if !strings.Contains(output, "[ STMT TREE ]") {
		t.Error("Debug mode did not print the stmt tree")
	}

	// Check for environment clear (x should be gone)
	if !strings.Contains(output, `unknown name "x"`) {
		t.Error("Environment was not cleared correctly")
	}
}
