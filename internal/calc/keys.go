package calc

// Dispatch applies the operation bound to key and reports whether key
// was recognised. Both Bubble Tea key names ("enter", "esc",
// "backspace") and browser-style names ("Enter", "Escape", "Backspace")
// are accepted. "n" toggles the sign, which has no single key on a
// physical keypad.
func Dispatch(e *Evaluator, key string) bool {
	if len(key) == 1 && key[0] >= '0' && key[0] <= '9' {
		e.InputDigit(rune(key[0]))
		return true
	}
	if op, ok := ParseOperator(key); ok {
		e.PerformOperation(op)
		return true
	}

	switch key {
	case ".":
		e.InputDecimal()
	case "enter", "Enter", "=":
		e.Equals()
	case "esc", "Escape":
		e.ClearAll()
	case "backspace", "Backspace":
		e.Backspace()
	case "%":
		e.InputPercent()
	case "n":
		e.ToggleSign()
	default:
		return false
	}
	return true
}

// Run feeds a sequence of keys to e and returns the final state along
// with any keys that were not recognised.
func Run(e *Evaluator, keys []string) (State, []string) {
	var unknown []string
	for _, k := range keys {
		if !Dispatch(e, k) {
			unknown = append(unknown, k)
		}
	}
	return e.State(), unknown
}

// Tokenize splits an expression such as "12.5+3*4=" or "5 / 0 =" into
// key names. Spaces separate nothing and are dropped; "C" maps to
// Escape, "<" to Backspace and "~" to sign toggle.
func Tokenize(expr string) []string {
	keys := make([]string, 0, len(expr))
	for _, r := range expr {
		switch r {
		case ' ', '\t', '\n':
			continue
		case 'C', 'c':
			keys = append(keys, "Escape")
		case '<':
			keys = append(keys, "Backspace")
		case '~':
			keys = append(keys, "n")
		default:
			keys = append(keys, string(r))
		}
	}
	return keys
}
