package curriculum

// Kind distinguishes the three course families. Language tracks share a
// parameterized topic catalog; chess and math carry fixed ones.
type Kind int

const (
	KindLanguage Kind = iota
	KindChess
	KindMath
)

// Track is a selectable course. Code is the stable identifier stored in
// profile progress maps; Name is the Spanish display name.
type Track struct {
	Code string
	Flag string
	Name string
	Kind Kind
}

var tracks = []Track{
	{Code: "English", Flag: "us", Name: "Inglés", Kind: KindLanguage},
	{Code: "French", Flag: "fr", Name: "Francés", Kind: KindLanguage},
	{Code: "Italian", Flag: "it", Name: "Italiano", Kind: KindLanguage},
	{Code: "German", Flag: "de", Name: "Alemán", Kind: KindLanguage},
	{Code: "Japanese", Flag: "jp", Name: "Japonés", Kind: KindLanguage},
	{Code: "Chinese", Flag: "cn", Name: "Chino", Kind: KindLanguage},
	{Code: "Russian", Flag: "ru", Name: "Ruso", Kind: KindLanguage},
	{Code: "Portuguese", Flag: "br", Name: "Portugués", Kind: KindLanguage},
	{Code: "Korean", Flag: "kr", Name: "Coreano", Kind: KindLanguage},
	{Code: "Dutch", Flag: "nl", Name: "Holandés", Kind: KindLanguage},
	{Code: "Swedish", Flag: "se", Name: "Sueco", Kind: KindLanguage},
	{Code: "Turkish", Flag: "tr", Name: "Turco", Kind: KindLanguage},
	{Code: "Hindi", Flag: "in", Name: "Hindi", Kind: KindLanguage},
	{Code: "Polish", Flag: "pl", Name: "Polaco", Kind: KindLanguage},
	{Code: "Arabic", Flag: "sa", Name: "Árabe", Kind: KindLanguage},
	{Code: "Chess", Flag: "chess", Name: "Ajedrez", Kind: KindChess},
	{Code: "Math", Flag: "math", Name: "Matemáticas", Kind: KindMath},
}

// Tracks returns the full course catalog in display order.
func Tracks() []Track {
	out := make([]Track, len(tracks))
	copy(out, tracks)
	return out
}

// TrackByCode looks up a track by its stable code.
func TrackByCode(code string) (Track, bool) {
	for _, t := range tracks {
		if t.Code == code {
			return t, true
		}
	}
	return Track{}, false
}
