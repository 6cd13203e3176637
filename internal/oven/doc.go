// Package oven drives a recipe through its steps: initialize process
// state, set up a scratch tree for the recipe, then dispatch each
// configure/build/script step to a named backend with idempotent,
// checkpointed execution.
//
// A Context moves through three states:
//
//	Uninitialized -- Initialize --> Ready
//	Ready -- RecipeStart --> Recipe-Active
//	Recipe-Active -- RecipeEnd --> Ready
//	Ready -- Cleanup --> Uninitialized
//
// Arguments, environment values, and scripts may reference two kinds
// of substitution: $[[ NAME ]] for a fixed set of internal variables,
// and $[ NAME ] for host environment variables.
package oven
