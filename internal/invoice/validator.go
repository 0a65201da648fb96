package invoice

// IsValidCurrencyCode reports whether code is exactly three uppercase Latin letters.
// It does not normalize; callers uppercase input first.
func IsValidCurrencyCode(code string) bool {
	if len(code) != 3 {
		return false
	}
	for i := 0; i < len(code); i++ {
		if code[i] < 'A' || code[i] > 'Z' {
			return false
		}
	}
	return true
}
