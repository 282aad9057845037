package models

const (
	LanguageDefault = "en"
	GenreDefault    = "fiction"
)

// Languages are the accepted language codes for a book.
var Languages = []string{"en", "es", "fr", "de", "it", "pt", "zh", "ja", "ru"}

// Genres are the accepted genre codes for a book.
var Genres = []string{
	"fiction",
	"non_fiction",
	"sci_fi",
	"fantasy",
	"mystery",
	"thriller",
	"romance",
	"biography",
	"history",
	"self_help",
	"other",
}

// ValidGenre reports whether code is one of the accepted genre codes.
func ValidGenre(code string) bool {
	for _, g := range Genres {
		if g == code {
			return true
		}
	}
	return false
}
