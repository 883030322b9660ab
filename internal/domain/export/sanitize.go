package export

import "strings"

const safeNameMax = 50

var safeNameReplacer = strings.NewReplacer(
	" ", "_",
	"/", "",
	"\\", "",
	".", "",
	",", "",
	"?", "",
	"!", "",
)

// SafeName derives an archive entry name from a sentence: the first 50
// characters with spaces underscored and path/punctuation characters
// stripped. Two sentences can sanitize identically; collision handling
// is the archive writer's job.
func SafeName(sentence string) string {
	r := []rune(sentence)
	if len(r) > safeNameMax {
		r = r[:safeNameMax]
	}
	return safeNameReplacer.Replace(string(r))
}
