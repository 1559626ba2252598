//go:build cachepolicy_debug

package cachepolicy

const debugging = true

func assert(cond bool, message string) {
	if !cond {
		panic(message)
	}
}
