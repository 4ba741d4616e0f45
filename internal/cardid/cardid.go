// ABOUTME: Reversible mapping between card ids and filesystem-safe filenames
// ABOUTME: Card ids may contain characters that are illegal in filenames
package cardid

import "strings"

// replacement is one token↔character pair in the filename mapping.
type replacement struct {
	token string
	char  string
}

// replacements is the fixed substitution table, applied in this order.
// Tokens are mutually non-overlapping substrings, so application order
// only matters for determinism, not correctness. The table must stay in
// sync with whatever produced the image filenames.
var replacements = []replacement{
	{"_excl_", "!"},
	{"_qmark_", "?"},
	{"_star_", "*"},
	{"_lt_", "<"},
	{"_gt_", ">"},
	{"_quot_", `"`},
	{"_pipe_", "|"},
	{"_bslash_", `\`},
	{"_slash_", "/"},
	{"_colon_", ":"},
	{"_pct_", "%"},
}

// Decode converts a filesystem-safe filename stem back into a card id by
// replacing every occurrence of each token with its original character.
//
// There is no escaping: a card id that literally contains one of the
// token strings is not representable and will decode incorrectly.
func Decode(stem string) string {
	id := stem
	for _, r := range replacements {
		id = strings.ReplaceAll(id, r.token, r.char)
	}
	return id
}

// Encode converts a card id into a filesystem-safe filename stem,
// replacing each unsafe character with its token. Decode(Encode(id)) == id
// for any id that does not literally contain a token string.
func Encode(id string) string {
	stem := id
	for _, r := range replacements {
		stem = strings.ReplaceAll(stem, r.char, r.token)
	}
	return stem
}
