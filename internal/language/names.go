package language

var names = map[string]string{
	"it": "Italian",
	"en": "English",
	"ru": "Russian",
	"fr": "French",
	"zh": "Chinese",
}

// Name returns the English display name of a language code, or the code
// itself when it is not known.
func Name(code string) string {
	if n, ok := names[code]; ok {
		return n
	}
	return code
}
