package oven

import (
	"errors"
	"testing"
)

func newTestContext() *Context {
	return &Context{
		state: stateReady,
		env:   []string{"MY_VAR=hello", "OTHER=world"},
		variables: variables{
			targetPlatform:     "linux",
			targetArchitecture: "amd64",
			cwd:                "/work",
		},
		installRoot: "/work/.oven/output",
	}
}

func TestPreprocessTextPassthrough(t *testing.T) {
	c := newTestContext()
	got, err := c.PreprocessText("no substitutions here")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "no substitutions here" {
		t.Fatalf("got %q", got)
	}
}

func TestPreprocessTextInternalVariables(t *testing.T) {
	c := newTestContext()

	cases := map[string]string{
		"$[[ CHEF_TARGET_PLATFORM ]]":     "linux",
		"$[[CHEF_TARGET_ARCHITECTURE]]":   "amd64",
		"prefix-$[[ PROJECT_PATH ]]":      "prefix-/work",
		"$[[ INSTALL_PREFIX ]]/bin":       "/work/.oven/output/bin",
	}
	for input, want := range cases {
		got, err := c.PreprocessText(input)
		if err != nil {
			t.Fatalf("PreprocessText(%q) error = %v", input, err)
		}
		if got != want {
			t.Fatalf("PreprocessText(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestPreprocessTextEnvironmentVariables(t *testing.T) {
	c := newTestContext()

	got, err := c.PreprocessText("value=$[ MY_VAR ]")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "value=hello" {
		t.Fatalf("got %q", got)
	}
}

func TestPreprocessTextMissingEnvironmentVariableIsEmpty(t *testing.T) {
	c := newTestContext()

	got, err := c.PreprocessText("x$[ DOES_NOT_EXIST_XYZ ]y")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "xy" {
		t.Fatalf("got %q, want \"xy\"", got)
	}
}

func TestPreprocessTextUnknownInternalVariableFails(t *testing.T) {
	c := newTestContext()

	_, err := c.PreprocessText("$[[ NOT_A_REAL_VAR ]]")
	if !errors.Is(err, ErrUnknownVariable) {
		t.Fatalf("error = %v, want ErrUnknownVariable", err)
	}
}

func TestPreprocessTextUnclosedSigilFails(t *testing.T) {
	c := newTestContext()

	if _, err := c.PreprocessText("$[[ CHEF_TARGET_PLATFORM"); !errors.Is(err, ErrUnclosedSigil) {
		t.Fatalf("error = %v, want ErrUnclosedSigil", err)
	}
	if _, err := c.PreprocessText("$[ MY_VAR"); !errors.Is(err, ErrUnclosedSigil) {
		t.Fatalf("error = %v, want ErrUnclosedSigil", err)
	}
}

func TestPreprocessTextToolchainPrefixEmptyWithoutRecipe(t *testing.T) {
	c := newTestContext()

	got, err := c.PreprocessText("$[[ TOOLCHAIN_PREFIX ]]")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "" {
		t.Fatalf("got %q, want empty string", got)
	}
}
