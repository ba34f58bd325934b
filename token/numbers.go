package token

// scanNumber consumes a numeric literal starting at s[i] (s[i] is '-' or a
// digit) and reports whether it parsed as an integer or a float, along with
// the index just past the consumed run. For a number immediately followed
// by a unit suffix (e.g. "512MB") the returned end stops before the suffix;
// tryScanNumber then rejects the number and the whole run lexes as one
// unquoted string. A suffix after whitespace ("5 minutes") leaves the number
// as its own TInteger or TFloat token.
func scanNumber(s []byte, i int) (end int, isFloat bool, ok bool) {
	n := len(s)
	start := i
	if i < n && s[i] == '-' {
		i++
	}
	digitsStart := i
	for i < n && isDigit(s[i]) {
		i++
	}
	if i == digitsStart {
		return start, false, false
	}
	if i < n && s[i] == '.' && i+1 < n && isDigit(s[i+1]) {
		isFloat = true
		i++
		for i < n && isDigit(s[i]) {
			i++
		}
	}
	if i < n && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < n && (s[j] == '+' || s[j] == '-') {
			j++
		}
		if j < n && isDigit(s[j]) {
			isFloat = true
			i = j
			for i < n && isDigit(s[i]) {
				i++
			}
		}
	}
	return i, isFloat, true
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }
