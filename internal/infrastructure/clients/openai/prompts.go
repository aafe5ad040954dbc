package openai

import (
	"fmt"
	"strings"
)

const classifierPromptTemplate = `You are a medical symptom identifier. Your job is to identify cardiac-related symptoms from the user's message.

Available symptoms to identify:
%s

Rules:
1. Only identify symptoms that are explicitly mentioned or clearly implied
2. Return ONLY the symptom names as a JSON array (e.g., ["chest pain", "fatigue"])
3. Use exact symptom names from the available list
4. If no valid symptoms are found, return an empty array`

func buildClassifierSystemPrompt(allowed []string) string {
	lines := make([]string, 0, len(allowed))
	for _, name := range allowed {
		lines = append(lines, "- "+name)
	}
	return fmt.Sprintf(classifierPromptTemplate, strings.Join(lines, "\n"))
}
