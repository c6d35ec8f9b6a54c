package file

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// DefaultName is used when a sanitized name with its extension ends up empty.
const DefaultName = "unnamed"

var (
	// unsafeChars matches everything outside the allowed filename alphabet.
	// \w, \s and \d are ASCII-only in RE2, so non-ASCII letters are dropped
	// unless the name was transliterated first.
	unsafeChars = regexp.MustCompile(`[^\w\s\d\-_~,;:\[\]\(\).]`)
	// dotRuns matches "..", "..." and longer runs used for traversal.
	dotRuns = regexp.MustCompile(`\.{2,}`)
)

// SplitName splits a client-declared file name into its base name and
// extension (without the dot prefix). Directory components are dropped first,
// so "photos/cat.JPG" yields ("cat", "JPG") and ".htaccess" yields ("", "htaccess").
//
// Example:
//
//	base, ext := file.SplitName("archive.tar.gz") // "archive.tar", "gz"
func SplitName(declared string) (base, ext string) {
	name := lastSegment(declared)
	idx := strings.LastIndex(name, ".")
	if idx < 0 {
		return name, ""
	}
	return name[:idx], name[idx+1:]
}

// SanitizeName makes a base name safe to join with a destination directory.
// Every character outside word characters, whitespace, digits and
// "-_~,;:[]()." is removed, then every run of two or more dots is removed,
// and finally only the last path segment is kept.
//
// The two regex passes run one after another: removing a dot run joins two
// non-dot characters, so no new ".." can appear.
//
// Example:
//
//	safe := file.SanitizeName("../../etc/passwd") // "etcpasswd"
func SanitizeName(name string) string {
	name = unsafeChars.ReplaceAllString(name, "")
	name = dotRuns.ReplaceAllString(name, "")
	return lastSegment(name)
}

// SanitizeExtension lowercases an extension and drops leading dots and
// anything SanitizeName would remove, so "P<h>P" becomes "php".
func SanitizeExtension(ext string) string {
	ext = strings.ToLower(strings.TrimLeft(ext, "."))
	ext = unsafeChars.ReplaceAllString(ext, "")
	ext = dotRuns.ReplaceAllString(ext, "")
	return strings.TrimRight(ext, ".")
}

// SafeName is the stored form of a client-declared name: the sanitized base
// joined with the sanitized extension.
//
//	file.SafeName(`C:\docs\Report.PDF`) // "Report.pdf"
func SafeName(declared string) string {
	base, ext := SplitName(declared)
	return JoinName(SanitizeName(base), SanitizeExtension(ext))
}

// Transliterate folds accented letters to their unaccented form
// ("résumé" -> "resume") so they survive SanitizeName.
// The input is returned unchanged if normalization fails.
func Transliterate(name string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, name)
	if err != nil {
		return name
	}
	return out
}

// JoinName returns "base.ext", or base alone when ext is empty.
// Falls back to DefaultName when the result would be empty or ".",
// which would otherwise resolve to the destination directory itself.
func JoinName(base, ext string) string {
	name := base
	if ext != "" {
		name = base + "." + ext
	}
	if name == "" || name == "." {
		return DefaultName
	}
	return name
}

// lastSegment returns the part after the last slash or backslash,
// ignoring trailing separators like basename(1) does.
func lastSegment(p string) string {
	p = strings.TrimRight(p, `/\`)
	if idx := strings.LastIndexAny(p, `/\`); idx >= 0 {
		return p[idx+1:]
	}
	return p
}
