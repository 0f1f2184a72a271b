package token

// prefixPowers maps a metric prefix letter to its power of ten, per the
// BIPM SI brochure. Both 'u' and 'µ' are accepted for micro.
var prefixPowers = map[rune]int{
	'Q': 30,
	'R': 27,
	'Y': 24,
	'Z': 21,
	'E': 18,
	'P': 15,
	'T': 12,
	'G': 9,
	'M': 6,
	'k': 3,
	'd': -1,
	'c': -2,
	'm': -3,
	'u': -6,
	'µ': -6,
	'n': -9,
	'p': -12,
	'f': -15,
	'a': -18,
	'z': -21,
	'y': -24,
	'r': -27,
	'q': -30,
}

// PrefixPower returns the power of ten for a metric prefix letter.
// ok is false if the rune is not a recognized prefix.
func PrefixPower(r rune) (power int, ok bool) {
	power, ok = prefixPowers[r]
	return power, ok
}

// Prefixes returns all recognized prefix letters with their powers,
// ordered from largest to smallest power.
func Prefixes() []struct {
	Symbol rune
	Power  int
} {
	out := []struct {
		Symbol rune
		Power  int
	}{
		{'Q', 30}, {'R', 27}, {'Y', 24}, {'Z', 21}, {'E', 18}, {'P', 15},
		{'T', 12}, {'G', 9}, {'M', 6}, {'k', 3},
		{'d', -1}, {'c', -2}, {'m', -3}, {'µ', -6}, {'n', -9}, {'p', -12},
		{'f', -15}, {'a', -18}, {'z', -21}, {'y', -24}, {'r', -27}, {'q', -30},
	}
	return out
}
