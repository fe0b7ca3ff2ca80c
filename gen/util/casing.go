package util

import (
	"strings"
	"unicode"
)

// ToSnakeCase converts PascalCase or camelCase to snake_case.
// Handles acronyms properly (e.g., "HTTPRequest" -> "http_request")
// and digit/letter boundaries used by engine names ("Node3D" -> "node3_d").
func ToSnakeCase(s string) string {
	var result strings.Builder
	runes := []rune(s)

	for i := 0; i < len(runes); i++ {
		r := runes[i]

		// Check if we need to insert underscore before this character
		if i > 0 && r >= 'A' && r <= 'Z' && runes[i-1] != '_' {
			// Don't insert underscore if previous char was uppercase (acronym)
			// unless next char is lowercase (end of acronym)
			prevUpper := runes[i-1] >= 'A' && runes[i-1] <= 'Z'
			nextLower := i+1 < len(runes) && runes[i+1] >= 'a' && runes[i+1] <= 'z'

			if !prevUpper || nextLower {
				result.WriteRune('_')
			}
		}

		result.WriteRune(r)
	}

	return strings.ToLower(result.String())
}

// ToPascalCase converts snake_case or kebab-case to PascalCase
func ToPascalCase(s string) string {
	parts := strings.FieldsFunc(s, func(r rune) bool {
		return r == '_' || r == '-'
	})

	var result strings.Builder
	for _, part := range parts {
		if len(part) > 0 {
			// Capitalize first letter, keep rest as-is
			runes := []rune(part)
			result.WriteRune(unicode.ToUpper(runes[0]))
			result.WriteString(string(runes[1:]))
		}
	}

	return result.String()
}

// ToCamelCase converts snake_case or kebab-case to camelCase
func ToCamelCase(s string) string {
	pascal := ToPascalCase(s)
	if len(pascal) == 0 {
		return pascal
	}

	runes := []rune(pascal)
	runes[0] = unicode.ToLower(runes[0])
	return string(runes)
}

// ShoutToPascal converts SHOUT_CASE constant names to PascalCase
// ("ENTER_TREE" -> "EnterTree").
func ShoutToPascal(s string) string {
	return ToPascalCase(strings.ToLower(s))
}

// ToGoName converts an engine class name to its exported Go identifier.
// Acronyms are folded to one capital ("GLTFDocument" -> "GltfDocument",
// "OS" -> "Os") so that every name has a single canonical spelling.
func ToGoName(engineName string) string {
	return ToPascalCase(ToSnakeCase(engineName))
}

// ToGoParam converts a snake_case parameter name to a Go parameter name,
// escaping Go keywords ("type" -> "type_").
func ToGoParam(name string) string {
	param := ToCamelCase(name)
	if isGoKeyword(param) {
		return param + "_"
	}
	return param
}

var goKeywords = map[string]bool{
	"break": true, "case": true, "chan": true, "const": true, "continue": true,
	"default": true, "defer": true, "else": true, "fallthrough": true, "for": true,
	"func": true, "go": true, "goto": true, "if": true, "import": true,
	"interface": true, "map": true, "package": true, "range": true, "return": true,
	"select": true, "struct": true, "switch": true, "type": true, "var": true,
}

func isGoKeyword(s string) bool {
	return goKeywords[s]
}
