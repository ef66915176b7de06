// Package languages resolves Slack emoji reactions and short locale codes
// into [DeepL target language codes].
//
// [DeepL target language codes]: https://developers.deepl.com/docs/resources/supported-languages#target-languages
package languages

import (
	"regexp"
	"slices"
	"strings"

	"github.com/samber/lo"
)

const (
	// DefaultIgnorePattern marks custom workspace emoji that
	// should never trigger a translation, e.g. ":qp-custom:".
	DefaultIgnorePattern = "qp"

	flagPrefix = "flag-"
)

var shorthand = regexp.MustCompile(`^[a-z]{2}$`)

// table maps normalized triggers (lowercase, without the "flag-" prefix)
// to target language codes. It is never modified after initialization.
//
// Entries here take precedence over the two-letter fallback, so country
// codes that differ from their language code (e.g. "jp", "uk", "ar")
// are always resolved by country.
var table = map[string]string{
	// Arabic.
	"ae": "AR",
	"eg": "AR",
	"sa": "AR",
	// Bulgarian, Czech, Danish.
	"bg": "BG",
	"cz": "CS",
	"dk": "DA",
	// German.
	"at": "DE",
	"ch": "DE",
	"de": "DE",
	// Greek.
	"gr": "EL",
	// English.
	"au":       "EN-GB",
	"england":  "EN-GB",
	"gb":       "EN-GB",
	"ie":       "EN-GB",
	"nz":       "EN-GB",
	"scotland": "EN-GB",
	"uk":       "EN-GB",
	"wales":    "EN-GB",
	"us":       "EN-US",
	// Spanish.
	"ar": "ES",
	"cl": "ES",
	"co": "ES",
	"es": "ES",
	"mx": "ES",
	"pe": "ES",
	// Estonian, Finnish, French, Hungarian, Indonesian, Italian.
	"ee": "ET",
	"fi": "FI",
	"fr": "FR",
	"hu": "HU",
	"id": "ID",
	"it": "IT",
	// Japanese, Korean.
	"jp": "JA",
	"kr": "KO",
	// Lithuanian, Latvian, Norwegian.
	"lt": "LT",
	"lv": "LV",
	"no": "NB",
	// Dutch.
	"be": "NL",
	"nl": "NL",
	// Polish.
	"pl": "PL",
	// Portuguese.
	"br": "PT-BR",
	"pt": "PT-PT",
	// Romanian, Russian, Slovak, Slovenian, Swedish, Turkish, Ukrainian.
	"ro": "RO",
	"ru": "RU",
	"sk": "SK",
	"si": "SL",
	"se": "SV",
	"tr": "TR",
	"ua": "UK",
	// Chinese.
	"cn": "ZH-HANS",
	"hk": "ZH-HANT",
	"tw": "ZH-HANT",
}

// Resolver maps triggers to target language codes, according to
// the static table and a list of case-insensitive ignore patterns.
// It holds no mutable state, so it's safe for concurrent use.
type Resolver struct {
	ignore []string
}

// NewResolver returns a [Resolver] that rejects any trigger which contains
// one of the given patterns (case-insensitive). Empty patterns are skipped.
func NewResolver(ignorePatterns []string) *Resolver {
	r := &Resolver{}
	for _, p := range ignorePatterns {
		if p = strings.ToLower(strings.TrimSpace(p)); p != "" {
			r.ignore = append(r.ignore, p)
		}
	}
	return r
}

// Resolve returns the target language code of the given emoji name or short
// locale code, or false if there is no mapping. The policy is ordered:
// ignore patterns first, then the static table, and then the two-letter
// shorthand fallback, which passes the uppercased code through verbatim.
func (r *Resolver) Resolve(trigger string) (string, bool) {
	t := strings.ToLower(strings.TrimSpace(trigger))
	if t == "" || r.ignored(t) {
		return "", false
	}

	t = strings.TrimPrefix(t, flagPrefix)
	if code, ok := table[t]; ok {
		return code, true
	}

	if shorthand.MatchString(t) {
		return strings.ToUpper(t), true
	}

	return "", false
}

func (r *Resolver) ignored(trigger string) bool {
	for _, p := range r.ignore {
		if strings.Contains(trigger, p) {
			return true
		}
	}
	return false
}

// TargetLanguages returns the sorted distinct language codes in the static table.
func TargetLanguages() []string {
	codes := lo.Uniq(lo.Values(table))
	slices.Sort(codes)
	return codes
}
