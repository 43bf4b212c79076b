package utils

import "github.com/gosimple/slug"

// Slugify lowercases s, transliterates accented characters and joins the
// remaining alphanumeric runs with "-". Slugify(Slugify(s)) == Slugify(s).
func Slugify(s string) string {
	return slug.Make(s)
}
