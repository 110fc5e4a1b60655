package clk

import "strconv"

// Tokenize splits value into the n-grams hashed into a CLK.
//
// For n >= 2 the value is padded with a single space on each side so the
// first and last characters also appear in edge n-grams. For n == 1 each
// character is a token. Positional tokens are prefixed with their index,
// e.g. "0 a". Empty values and n <= 0 produce no tokens.
func Tokenize(value string, n int, positional bool) []string {
	if value == "" || n <= 0 {
		return nil
	}

	runes := []rune(value)
	if n > 1 {
		padded := make([]rune, 0, len(runes)+2)
		padded = append(padded, ' ')
		padded = append(padded, runes...)
		runes = append(padded, ' ')
	}
	if len(runes) < n {
		return nil
	}

	tokens := make([]string, 0, len(runes)-n+1)
	for i := 0; i+n <= len(runes); i++ {
		tok := string(runes[i : i+n])
		if positional {
			tok = strconv.Itoa(i) + " " + tok
		}
		tokens = append(tokens, tok)
	}
	return tokens
}
