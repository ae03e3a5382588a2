package cli

import (
	"fmt"
	"strings"
)

// ResolveID expands ref to the single ID in ids that equals it or starts with
// it, so users can type the short IDs shown in listings.
func ResolveID(kind, ref string, ids []string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", fmt.Errorf("%s ID is required", kind)
	}
	var matches []string
	for _, id := range ids {
		if id == ref {
			return id, nil
		}
		if strings.HasPrefix(id, ref) {
			matches = append(matches, id)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("no %s matches %q", kind, ref)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("%q matches %d %ss, use a longer prefix", ref, len(matches), kind)
	}
}

// ResolveLimit bounds the listing scanned when resolving a short ID.
const ResolveLimit = 1000
