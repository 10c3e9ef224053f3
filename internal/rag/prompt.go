package rag

import (
	"fmt"
	"strings"

	"codeberg.org/libroteca/server/internal/intent"
)

// buildSystemPrompt frames the generator as a catalog librarian and inlines
// the retrieved context so answers stay grounded in books we actually hold.
func buildSystemPrompt(state *State) string {
	var sb strings.Builder

	sb.WriteString("Eres un bibliotecario experto y amable de una biblioteca digital. ")
	sb.WriteString("Respondes preguntas sobre el catálogo usando únicamente la información de contexto que se te proporciona. ")
	sb.WriteString("Si el contexto no contiene libros relevantes, dilo honestamente en lugar de inventar títulos.\n\n")

	switch state.Intent {
	case intent.ExactMatch:
		sb.WriteString("El usuario parece buscar un libro concreto del catálogo. Confirma si lo tenemos y descríbelo brevemente.\n\n")
	case intent.Recommendation:
		sb.WriteString("El usuario busca recomendaciones. Sugiere los libros del contexto ordenados por afinidad y explica en una frase por qué cada uno encaja.\n\n")
	case intent.GeneralQuery:
		sb.WriteString("Responde la consulta general apoyándote en los libros del contexto cuando sea pertinente.\n\n")
	}

	if state.Context == "" {
		sb.WriteString("No se encontraron libros relacionados en el catálogo.")
		return sb.String()
	}

	sb.WriteString("Libros del catálogo relacionados con la consulta:\n\n")
	sb.WriteString(state.Context)

	return sb.String()
}

func buildUserMessage(question string) string {
	return fmt.Sprintf("Consulta del usuario: %s", question)
}
