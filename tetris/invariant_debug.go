//go:build debug

package tetris

import "fmt"

func invariant(ok bool, format string, args ...any) bool {
	if !ok {
		panic("tetris: invariant violated: " + fmt.Sprintf(format, args...))
	}
	return ok
}
