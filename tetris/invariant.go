//go:build !debug

package tetris

// invariant reports whether ok holds. Release builds let the caller
// skip the offending operation instead of crashing the game loop.
func invariant(ok bool, _ string, _ ...any) bool { return ok }
