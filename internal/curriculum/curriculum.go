// Package curriculum defines the static course graph: every track
// expands to a fixed grid of 8 sections with 5 lessons each. Lesson
// content is generated on demand; only the topics live here.
package curriculum

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	// SectionSize is the number of lessons per section.
	SectionSize = 5
	// SectionCount is the number of sections per track.
	SectionCount = 8
	// LessonCount is the total path length of every track.
	LessonCount = SectionSize * SectionCount
)

// Lesson is one node on a track's path. Completed and Locked are
// derived from player progress by WithStatus; Generate leaves them at
// their zero values.
type Lesson struct {
	ID          string
	Title       string
	Topic       string
	Description string
	Completed   bool
	Locked      bool
}

// Number returns the lesson's 1-based position on the path.
func (l Lesson) Number() int {
	n, err := strconv.Atoi(l.ID)
	if err != nil {
		return 0
	}
	return n
}

type section struct {
	title  string
	topics [SectionSize]string
}

var chessSections = [SectionCount]section{
	{"Intro", [SectionSize]string{"El Tablero", "El Peón", "La Torre", "El Alfil", "La Dama"}},
	{"Fundamentos", [SectionSize]string{"El Rey", "El Caballo", "Jaque", "Capturas", "Valor de Piezas"}},
	{"Reglas Esp.", [SectionSize]string{"Enroque", "Peón al Paso", "Coronación", "Tablas", "Ahogado"}},
	{"Táctica I", [SectionSize]string{"Clavada", "Ataque Doble", "Jaque Mate Pastor", "Desviación", "Rayos X"}},
	{"Aperturas", [SectionSize]string{"Centro", "Apertura Italiana", "Defensa Siciliana", "Gambito de Dama", "Desarrollo"}},
	{"Estrategia", [SectionSize]string{"Espacio", "Tiempo", "Estructura de Peones", "Columna Abierta", "Puesto Avanzado"}},
	{"Finales", [SectionSize]string{"Rey y Peón", "Mate de Escalera", "Mate de Torre", "Oposición", "Regla del Cuadrado"}},
	{"Maestría", [SectionSize]string{"Sacrificios", "Profilaxis", "Zugzwang", "Ataque al Rey", "Cálculo"}},
}

var mathSections = [SectionCount]section{
	{"Números", [SectionSize]string{"Contar 1-10", "Sumas Simples (1 dígito)", "Restas Básicas", "Mayor y Menor", "Decenas"}},
	{"Aritmética", [SectionSize]string{"Sumas de 2 dígitos", "Restas llevando", "Multiplicación Básica", "Tablas del 1-5", "División Simple"}},
	{"Lógica", [SectionSize]string{"Series Numéricas", "Números Pares/Impares", "Estimación", "Orden de Operaciones", "Problemas Verbales"}},
	{"Fracciones", [SectionSize]string{"Concepto de Fracción", "Medios y Cuartos", "Decimales Básicos", "Dinero", "Porcentajes Simples"}},
	{"Geometría", [SectionSize]string{"Figuras 2D", "Lados y Vértices", "Perímetro", "Área Básica", "Ángulos"}},
	{"Álgebra", [SectionSize]string{"Variables (x)", "Ecuaciones Lineales", "Desigualdades", "Gráficas Simples", "Factorización"}},
	{"Avanzado", [SectionSize]string{"Potencias", "Raíces Cuadradas", "Notación Científica", "Teorema de Pitágoras", "Trigonometría Básica"}},
	{"Cálculo", [SectionSize]string{"Funciones", "Límites Intro", "Concepto Derivada", "Pendiente", "Aplicaciones"}},
}

var languageSections = [SectionCount]section{
	{"Intro", [SectionSize]string{"Lo Básico 1", "Saludos", "Lo Básico 2", "Gente", "Frases Comunes"}},
	{"Fundamentos", [SectionSize]string{"Comida", "Animales", "Plurales", "Posesivos", "Ropa"}},
	{"Comunicación", [SectionSize]string{"Preguntas", "Tiempo Presente", "Colores", "Conjunciones", "Preposiciones"}},
	{"Vida Diaria", [SectionSize]string{"La Hora", "Familia", "Hogar", "Tamaños", "Rutina"}},
	{"Viajes", [SectionSize]string{"Lugares", "Direcciones", "Transporte", "Hotel", "Naturaleza"}},
	{"Gramática", [SectionSize]string{"Adverbios", "Pasado Simple", "Infinitivo", "Pronombres", "Objetos Abstractos"}},
	{"Social", [SectionSize]string{"Sentimientos", "Salud", "Política", "Deportes", "Arte"}},
	{"Avanzado", [SectionSize]string{"Futuro", "Condicional", "Negocios", "Tecnología", "Verbos Modales"}},
}

// pathSectionTitles label the section headers along the lesson path.
var pathSectionTitles = [SectionCount]string{
	"Fundamentos", "Comunicación", "Vida Diaria", "Viajes",
	"Gramática", "Maestría", "Fluidez", "Experto",
}

// SectionTitle returns the header for the section containing the given
// 1-based lesson number.
func SectionTitle(lessonNumber int) string {
	idx := (lessonNumber - 1) / SectionSize
	if idx < 0 || idx >= SectionCount {
		return "Práctica"
	}
	return pathSectionTitles[idx]
}

// Generate expands a track code into its 40-lesson path. Unknown codes
// get the generic language catalog with the code itself as the display
// name, so a stale profile never breaks the path screen.
func Generate(code string) []Lesson {
	track, ok := TrackByCode(code)
	if !ok {
		track = Track{Code: code, Name: code, Kind: KindLanguage}
	}

	lessons := make([]Lesson, 0, LessonCount)
	id := 1
	switch track.Kind {
	case KindChess:
		for _, sec := range chessSections {
			for _, topic := range sec.topics {
				lessons = append(lessons, Lesson{
					ID:          strconv.Itoa(id),
					Title:       fmt.Sprintf("Nivel %d", id),
					Topic:       topic,
					Description: "Domina: " + topic,
				})
				id++
			}
		}
	case KindMath:
		for _, sec := range mathSections {
			for _, topic := range sec.topics {
				lessons = append(lessons, Lesson{
					ID:          strconv.Itoa(id),
					Title:       fmt.Sprintf("Nivel %d", id),
					Topic:       topic,
					Description: "Aprende: " + topic,
				})
				id++
			}
		}
	default:
		for _, sec := range languageSections {
			for _, topic := range sec.topics {
				lessons = append(lessons, Lesson{
					ID:          strconv.Itoa(id),
					Title:       fmt.Sprintf("Unidad %d", id),
					Topic:       fmt.Sprintf("%s (%s)", topic, track.Name),
					Description: "Aprende: " + strings.ToLower(topic),
				})
				id++
			}
		}
	}
	return lessons
}

// Progress is the per-track slice of player state WithStatus needs.
type Progress struct {
	CompletedLessonIDs []string
	CurrentUnit        int
}

// WithStatus overlays player progress onto a generated path. A lesson
// is completed when its ID is in the completed set, and locked when it
// is neither completed nor at or below the current unit.
func WithStatus(lessons []Lesson, p Progress) []Lesson {
	completed := make(map[string]bool, len(p.CompletedLessonIDs))
	for _, id := range p.CompletedLessonIDs {
		completed[id] = true
	}
	out := make([]Lesson, len(lessons))
	for i, l := range lessons {
		l.Completed = completed[l.ID]
		l.Locked = !l.Completed && l.Number() > p.CurrentUnit
		out[i] = l
	}
	return out
}
