package strcase

import (
	"strings"
	"unicode"
)

// ToIdentifier maps every rune outside [A-Za-z0-9_.-] to '_'.
func ToIdentifier(name string) string {
	if name == "" {
		return name
	}

	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		if isIdentRune(r) {
			b.WriteRune(r)
			continue
		}
		b.WriteByte('_')
	}
	return b.String()
}

// ToPascalCase upper-cases the first letter and drops '-' and '.' separators,
// upper-casing the rune that follows them.
func ToPascalCase(name string) string {
	if name == "" {
		return name
	}

	runes := []rune(name)
	result := make([]rune, 0, len(runes))
	upperNext := true

	for _, r := range runes {
		if r == '-' || r == '.' {
			upperNext = true
			continue
		}
		if upperNext {
			r = unicode.ToUpper(r)
			upperNext = false
		}
		result = append(result, r)
	}

	return string(result)
}

// ToTestName turns a slash-separated fixture identifier into the name a
// generated test method would carry, one PascalCase segment per path element.
func ToTestName(id string) string {
	if id == "" {
		return id
	}

	parts := strings.Split(id, "/")
	for i, p := range parts {
		parts[i] = ToPascalCase(ToIdentifier(p))
	}
	return strings.Join(parts, "/")
}

func isIdentRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case r == '_', r == '-', r == '.':
		return true
	}
	return false
}
