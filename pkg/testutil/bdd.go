package testutil

import "testing"

// Given opens a scenario. Nested When/Then calls become subtests, so a
// failing step reads as "Given x/When y/Then z" in test output.
func Given(t *testing.T, precondition string, steps func(t *testing.T)) {
	t.Helper()
	t.Run("Given "+precondition, steps)
}

// When names the action under test.
func When(t *testing.T, action string, steps func(t *testing.T)) {
	t.Helper()
	t.Run("When "+action, steps)
}

// Then holds the assertions for the enclosing When.
func Then(t *testing.T, outcome string, assertions func(t *testing.T)) {
	t.Helper()
	t.Run("Then "+outcome, assertions)
}
