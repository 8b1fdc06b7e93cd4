package typeddata

import "strings"

// stripType cuts a declared type string at the first non-word character, so
// "Message[]", "Message[3]" and "Message" all resolve to "Message".
func stripType(typ string) string {
	i := strings.IndexFunc(typ, func(r rune) bool {
		return !(r == '_' ||
			(r >= 'a' && r <= 'z') ||
			(r >= 'A' && r <= 'Z') ||
			(r >= '0' && r <= '9'))
	})
	if i < 0 {
		return typ
	}
	return typ[:i]
}

// dependencies walks the type graph depth-first from target and returns every
// composite type reachable from it, target first, in first-discovery order.
// Names without a table entry are scalar leaves and are skipped. The visited
// set doubles as a cycle guard: the declarations are caller-supplied, so the
// graph cannot be trusted to be acyclic.
func dependencies(target string, types Types) []string {
	seen := map[string]struct{}{}
	found := []string{}

	var walk func(typ string)
	walk = func(typ string) {
		name := stripType(typ)
		if _, ok := seen[name]; ok {
			return
		}
		if _, ok := types[name]; !ok {
			return
		}
		seen[name] = struct{}{}
		found = append(found, name)

		for _, f := range types[name] {
			walk(f.Type)
		}
	}

	walk(target)
	return found
}
