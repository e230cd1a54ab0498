package generation

import (
	"fmt"
	"strings"

	"storybook-app/internal/domain/stories"
)

// BuildPrompt assembles the generation prompt for one age range. The wording
// also pins down the output markers the tokenizer recognizes.
func BuildPrompt(sel Selection, age string) string {
	var b strings.Builder

	weekly := strings.EqualFold(strings.TrimSpace(sel.Day), stories.DaySelectorWeek)
	if weekly {
		fmt.Fprintf(&b, "Écris sept histoires courtes pour enfants de %s ans sur le thème %q, une par jour de la semaine.\n", age, sel.Theme)
	} else {
		fmt.Fprintf(&b, "Écris une histoire courte pour enfants de %s ans sur le thème %q.\n", age, sel.Theme)
	}

	if sel.NumCharacters > 0 {
		fmt.Fprintf(&b, "L'histoire met en scène %d personnage(s)", sel.NumCharacters)
		if len(sel.CharacterNames) > 0 {
			fmt.Fprintf(&b, " nommés %s", strings.Join(sel.CharacterNames, ", "))
		}
		b.WriteString(".\n")
	}
	if sel.SeriesName != "" {
		fmt.Fprintf(&b, "Les histoires appartiennent à la série %q.\n", sel.SeriesName)
	}

	b.WriteString("\nPour chaque histoire, respecte exactement ce format :\n")
	b.WriteString("**Titre de l'Histoire :** <titre>\n")
	if weekly {
		b.WriteString("**Jour :** <Lundi..Dimanche>\n")
	}
	b.WriteString("**Thèmes Associés (JSON):** [{\"name\":\"...\",\"description\":\"...\",\"icon\":\"...\",\"color\":\"#RRGGBB\"}]\n")
	b.WriteString("[Illustration: <description de l'illustration>]\n")
	b.WriteString("<texte de l'histoire>\n")

	return b.String()
}
