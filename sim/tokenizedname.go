package sim

import (
	"log"
	"strings"
	"unicode"
)

// NameMustBeValid panics if the name does not follow the naming convention.
// A valid name is a dot-separated hierarchy of capitalized CamelCase tokens,
// where a token may carry a single square-bracket index, e.g.
// "Bench.Uart[0]".
func NameMustBeValid(name string) {
	for _, token := range strings.Split(name, ".") {
		if err := tokenProblem(token); err != "" {
			log.Panicf("name %q is not valid: %s", name, err)
		}
	}
}

func tokenProblem(token string) string {
	if token == "" {
		return "empty token"
	}

	elem := token
	if open := strings.IndexByte(token, '['); open >= 0 {
		if !strings.HasSuffix(token, "]") || open == len(token)-2 {
			return "bracket must match"
		}

		for _, c := range token[open+1 : len(token)-1] {
			if !unicode.IsDigit(c) {
				return "index must be an integer"
			}
		}

		elem = token[:open]
	}

	if elem == "" || !unicode.IsUpper(rune(elem[0])) {
		return "token must be capitalized"
	}

	for _, c := range elem {
		if !unicode.IsLetter(c) && !unicode.IsDigit(c) {
			return "token must be CamelCase"
		}
	}

	return ""
}
