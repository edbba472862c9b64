package generator

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// reservedWords are MoonBit keywords that cannot be used as identifiers.
var reservedWords = map[string]bool{
	"type": true, "fn": true, "let": true, "mut": true, "pub": true,
	"trait": true, "impl": true, "enum": true, "struct": true, "match": true,
	"if": true, "else": true, "while": true, "for": true, "in": true,
	"return": true, "break": true, "continue": true,
}

var (
	reAcronym     = regexp.MustCompile(`([A-Z]+)([A-Z][a-z])`)
	reCamelBreak  = regexp.MustCompile(`([a-z\d])([A-Z])`)
	reCommaSpace  = regexp.MustCompile(`,\s*`)
	reSpaces      = regexp.MustCompile(`\s+`)
	reNonWord     = regexp.MustCompile(`[^\w]`)
	reIdentifier  = regexp.MustCompile(`[A-Za-z_$][A-Za-z0-9_$]*`)
	reJSIdentName = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)
)

var symbolWords = strings.NewReplacer(
	`'`, "",
	`"`, "",
	"-", "_minus_",
	"+", "_plus_",
	"*", "_star_",
	"/", "_slash_",
	".", "_dot_",
	"?", "_question_",
	"!", "_exclamation_",
	"@", "_at_",
	"#", "_hash_",
	"$", "_dollar_",
	"%", "_percent_",
	"^", "_caret_",
	"&", "_and_",
)

// capitalize upper-cases the first rune of s.
func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 || unicode.IsUpper(r) {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// snakeCase converts a camelCase or PascalCase identifier to snake_case,
// keeping acronyms together, and escapes MoonBit reserved words with a
// leading underscore.
func snakeCase(name string) string {
	var out string
	if strings.ToUpper(name) == name {
		out = strings.ToLower(name)
	} else {
		out = reAcronym.ReplaceAllString(name, "${1}_${2}")
		out = reCamelBreak.ReplaceAllString(out, "${1}_${2}")
		out = strings.ToLower(strings.TrimPrefix(out, "_"))
	}
	if reservedWords[out] {
		return "_" + out
	}
	return out
}

// cleanPropertyName turns an arbitrary property key into identifier
// characters: quotes are removed, operator symbols are spelled out,
// whitespace becomes an underscore and anything else non-word is dropped.
func cleanPropertyName(name string) string {
	s := symbolWords.Replace(name)
	s = reSpaces.ReplaceAllString(s, "_")
	return reNonWord.ReplaceAllString(s, "")
}

// memberIdent is the MoonBit identifier for a TypeScript member or
// parameter name.
func memberIdent(name string) string {
	return snakeCase(cleanPropertyName(name))
}

// formatTypeName flattens a rendered MoonBit type into a single PascalCase
// identifier usable as an enum tag: Array[Map[String, Int]] becomes
// ArrayOfMapOfStringAndInt.
func formatTypeName(typeName string) string {
	s := strings.ReplaceAll(typeName, "[", "Of")
	s = strings.ReplaceAll(s, "]", "")
	s = reCommaSpace.ReplaceAllString(s, "And")
	s = strings.NewReplacer("<", "Of", ">", "Of").Replace(s)
	s = reSpaces.ReplaceAllString(s, "")
	s = reNonWord.ReplaceAllString(s, "")
	return capitalize(s)
}

// substituteTypeParams replaces whole identifiers of rendered that name a
// substituted type parameter.
func substituteTypeParams(rendered string, subst map[string]string) string {
	if len(subst) == 0 {
		return rendered
	}
	return reIdentifier.ReplaceAllStringFunc(rendered, func(id string) string {
		if to, ok := subst[id]; ok {
			return to
		}
		return id
	})
}

// isJSIdentifier reports whether name can follow a dot in a JS member access.
func isJSIdentifier(name string) bool {
	return reJSIdentName.MatchString(name)
}
