package content

import (
	"fmt"
	"regexp"
	"strings"
)

// introTopic matches topics that should get the simplified beginner
// structure instead of sentence translation drills.
var introTopic = regexp.MustCompile(`(?i)intro|basic|fundament|nivel 1|unit 1|básico|saludo|food|animal|comida|familia`)

// PracticeTopic is the generation topic for free practice sessions.
const PracticeTopic = "Review basic vocabulary"

// JumpExamTopic builds the generation topic for a section jump exam
// targeting the given lesson topic.
func JumpExamTopic(lessonTopic string) string {
	if lessonTopic == "" {
		lessonTopic = "General"
	}
	return fmt.Sprintf("EXAMEN DE NIVEL: %s. Mix advanced and basic questions.", lessonTopic)
}

const chessContext = `You are an expert Chess Coach teaching a %s speaker.
Topic: "%s".
Rules:
- Treat "Chess" as the target language.
- CRITICAL FOR VISUALS: You MUST use Unicode Chess Symbols for pieces to distinguish colors.
- WHITE PIECES: ♔ (King), ♕ (Queen), ♖ (Rook), ♗ (Bishop), ♘ (Knight), ♙ (Pawn).
- BLACK PIECES: ♚ (King), ♛ (Queen), ♜ (Rook), ♝ (Bishop), ♞ (Knight), ♟ (Pawn).

- MATCHING EXERCISES:
  - Pair the Symbol with the Name.
  - Example Pair: Source: "Caballo Blanco", Target: "♘" (Use the Symbol ONLY).
  - Example Pair: Source: "Torre Negra", Target: "♜".

- MULTIPLE CHOICE:
  - Question: "Select the Black Queen" (in %s). Options: ["♛", "♕", "♚", "♜"].
  - Question: "Move e4" (Concept). Options: ["Apertura", "Jaque", "Captura"].

- TRANSLATE:
  - Ask what a symbol means. Question: "♝". Answer: "Alfil Negro".`

const chessStructure = `Structure:
1. Exercise 1 & 2: TYPE 'MATCHING'. 4 Pairs. Mix of White/Black pieces matching to their %s names.
2. Exercise 3 & 4: TYPE 'MULTIPLE_CHOICE'. Identification (Symbol -> Name) or Strategy.
3. Exercise 5 & 6: TYPE 'MULTIPLE_CHOICE' or 'TRANSLATE_TO_TARGET'.
4. Exercise 7 & 8: TYPE 'TRANSLATE_TO_SOURCE' (Concept definition or Piece identification).`

const mathContext = `You are an expert Math Tutor.
Topic: "%s".
Target Audience: A student learning Mathematics.

Rules:
- For 'question', ONLY provide the mathematical expression or question. Do not prefix with "Calculate" or "Solve".
- For 'correctAnswer', ONLY provide the numerical answer.
- Use standard mathematical notation.

- MATCHING EXERCISES: Pair an Equation with its Solution (e.g. Source: "2 + 2", Target: "4").
- MULTIPLE CHOICE: Solve for X, or calculate result. Options must be numbers.
- TRANSLATE_TO_TARGET: This will be displayed as a 'Calculator' challenge.
  - Question: "5 * 5" -> Answer: "25".
  - Question: "10 / 2" -> Answer: "5".`

const mathStructure = `Structure:
1. Exercise 1 & 2: TYPE 'MATCHING'. 4 Pairs. Equation <-> Result.
2. Exercise 3 & 4: TYPE 'MULTIPLE_CHOICE'. Problem Solving.
3. Exercise 5, 6, 7 & 8: TYPE 'TRANSLATE_TO_TARGET'. Pure calculation problems.
   - Question format: "12 + 5" or "3 x 4"
   - CorrectAnswer format: "17" or "12"`

const languageContext = `You are an expert language teacher designed to teach %s to a %s speaker.
Current Level: %s.
Topic: "%s".`

const introStructure = `CRITICAL INSTRUCTION FOR INTRODUCTORY LESSONS:
- The user is a beginner. The goal is to DESCRIBE and INTRODUCE words clearly.
- Do not ask for complex sentence translations yet.
- Focus on: Word -> Meaning (Description/Translation).

Structure:
1. Exercise 1, 2 & 3: TYPE 'MATCHING'.
   - Introduce 4 new words per exercise.
   - Pair format: Target Word <-> Source Translation.
   - Ensure words are strictly related to "%s".

2. Exercise 4 & 5: TYPE 'MULTIPLE_CHOICE'.
   - Question: A single word in %s.
   - Options: Definitions or translations in %s.

3. Exercise 6: TYPE 'LISTENING'.
   - Audio plays a single word. User must identify the written word.

4. Exercise 7 & 8: TYPE 'TRANSLATE_TO_SOURCE'.
   - Translate a single word or very simple 2-word phrase (e.g., "The cat").`

const standardStructure = `CRITICAL RULES:
1. 'question' for MULTIPLE_CHOICE: MUST be a single word or short phrase in %s.
2. 'correctAnswer': MUST be the %s translation.
3. 'options': MUST be 4 distinct strings in %s.

Structure:
1. Exercise 1 & 2: TYPE 'MATCHING'. Introduce 4 pairs (Target -> Source). Add a 'tip' about the new vocabulary context.
2. Exercise 3 & 4: TYPE 'MULTIPLE_CHOICE'. Test recognition.
3. Exercise 5 & 6: TYPE 'PRONUNCIATION' or 'TRANSLATE_TO_TARGET'. Simple sentences. INCLUDE A PRONUNCIATION TIP.
4. Exercise 7 & 8: TYPE 'TRANSLATE_TO_SOURCE'.`

// buildPrompt assembles the generation prompt for one lesson request.
func buildPrompt(in Input) string {
	var contextPrompt, structurePrompt string
	switch {
	case isChess(in.Target):
		contextPrompt = fmt.Sprintf(chessContext, in.Source, in.Topic, in.Source)
		structurePrompt = fmt.Sprintf(chessStructure, in.Source)
	case isMath(in.Target):
		contextPrompt = fmt.Sprintf(mathContext, in.Topic)
		structurePrompt = mathStructure
	default:
		contextPrompt = fmt.Sprintf(languageContext, in.Target, in.Source, in.level(), in.Topic)
		if introTopic.MatchString(in.Topic) || in.level() == "A1" {
			structurePrompt = fmt.Sprintf(introStructure, in.Topic, in.Target, in.Source)
		} else {
			structurePrompt = fmt.Sprintf(standardStructure, in.Target, in.Source, in.Source)
		}
	}

	var b strings.Builder
	b.WriteString(contextPrompt)
	b.WriteString("\n\n")
	if len(in.WeakWords) > 0 {
		fmt.Fprintf(&b, "PRIORITY: The user is struggling with these concepts: %q. Include them in exercises.\n\n",
			strings.Join(in.WeakWords, ", "))
	}
	b.WriteString("Create a structured lesson of 8 exercises.\n")
	b.WriteString(structurePrompt)
	b.WriteString("\n\nReturn ONLY valid JSON.")
	return b.String()
}

func isChess(track string) bool {
	return track == "Chess" || track == "Ajedrez"
}

func isMath(track string) bool {
	return track == "Math" || track == "Matemáticas"
}
