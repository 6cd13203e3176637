package oven

import (
	"fmt"
	"os"
	"strings"
)

// getVariable resolves a $[[ NAME ]] internal variable against the
// active driver/recipe state. ok is false for an unrecognized name.
func (c *Context) getVariable(name string) (string, bool) {
	switch name {
	case "CHEF_TARGET_PLATFORM":
		return c.variables.targetPlatform, true
	case "CHEF_TARGET_ARCHITECTURE":
		return c.variables.targetArchitecture, true
	case "CHEF_HOST_PLATFORM":
		return hostPlatform(), true
	case "CHEF_HOST_ARCHITECTURE":
		return hostArchitecture(), true
	case "TOOLCHAIN_PREFIX":
		if c.recipe == nil {
			return "", true
		}
		return c.recipe.toolchain, true
	case "PROJECT_PATH":
		if c.recipe == nil || !c.recipe.scratch.Confined {
			return c.variables.cwd, true
		}
		return c.recipe.scratch.ProjectRoot, true
	case "INSTALL_PREFIX":
		if c.recipe == nil || !c.recipe.scratch.Confined {
			return c.installRoot, true
		}
		return c.recipe.scratch.InstallRoot, true
	default:
		return "", false
	}
}

// PreprocessText expands every $[[ NAME ]] and $[ NAME ] occurrence in
// s. Internal variables come from [Context.getVariable]; environment
// variables are read from the environment recorded at Initialize,
// falling back to the live process environment, and names found in
// neither expand to the empty string. Whitespace
// inside a sigil is trimmed. An unknown internal variable fails with
// ErrUnknownVariable; an unclosed sigil fails with ErrUnclosedSigil.
func (c *Context) PreprocessText(s string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var out strings.Builder
	i := 0
	for i < len(s) {
		switch {
		case strings.HasPrefix(s[i:], "$[["):
			end := strings.Index(s[i+3:], "]]")
			if end < 0 {
				return "", fmt.Errorf("%w: unterminated $[[ in %q", ErrUnclosedSigil, s)
			}
			name := strings.TrimSpace(s[i+3 : i+3+end])
			value, ok := c.getVariable(name)
			if !ok {
				return "", fmt.Errorf("%w: %q", ErrUnknownVariable, name)
			}
			out.WriteString(value)
			i = i + 3 + end + 2

		case strings.HasPrefix(s[i:], "$["):
			end := strings.IndexByte(s[i+2:], ']')
			if end < 0 {
				return "", fmt.Errorf("%w: unterminated $[ in %q", ErrUnclosedSigil, s)
			}
			name := strings.TrimSpace(s[i+2 : i+2+end])
			out.WriteString(c.lookupEnv(name))
			i = i + 2 + end + 1

		default:
			out.WriteByte(s[i])
			i++
		}
	}
	return out.String(), nil
}

func (c *Context) lookupEnv(name string) string {
	for _, kv := range c.env {
		k, v, ok := strings.Cut(kv, "=")
		if ok && k == name {
			return v
		}
	}
	return os.Getenv(name)
}
