package repositories

import "strings"

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds an ILIKE pattern matching term anywhere, with the
// LIKE wildcards in term taken literally. An empty term yields "%%".
func containsPattern(term string) string {
	return "%" + likeEscaper.Replace(term) + "%"
}
