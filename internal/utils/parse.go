package utils

import (
	"regexp"
	"strconv"
	"strings"
)

var nonDigits = regexp.MustCompile(`[^\d]`)

// ParseTags découpe une chaîne "zapatos, verano, oferta" en liste de tags
// nettoyés et dédupliqués (l'ordre de saisie est conservé).
func ParseTags(tagsStr string) []string {
	if tagsStr == "" {
		return nil
	}

	seen := make(map[string]bool)
	var tags []string
	for _, t := range strings.Split(tagsStr, ",") {
		t = strings.TrimSpace(t)
		if t == "" || seen[t] {
			continue
		}
		tags = append(tags, t)
		seen[t] = true
	}
	return tags
}

// ParsePrice convertit une saisie de prix en entier : symboles monétaires et
// séparateurs sont ignorés ("$70.000" → 70000). Renvoie 0 si rien d'exploitable.
func ParsePrice(value string) int64 {
	digits := nonDigits.ReplaceAllString(value, "")
	if digits == "" {
		return 0
	}
	n, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0
	}
	return n
}
