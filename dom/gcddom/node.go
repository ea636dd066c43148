package gcddom

import "strings"

// attributes from DOM.getAttributes are a flat name, value, name, value list

func attributeValue(attrs []string, name string) (string, bool) {
	name = strings.ToLower(name)
	for i := 0; i+1 < len(attrs); i += 2 {
		if strings.ToLower(attrs[i]) == name {
			return attrs[i+1], true
		}
	}
	return "", false
}
