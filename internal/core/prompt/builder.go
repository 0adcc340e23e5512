package prompt

import (
	"fmt"
	"strings"

	"github.com/xeoai/chatbot-saas-be/internal/models"
)

var dayNames = [7]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

// BuildSystemPrompt renders the business context into the system prompt.
// Pure and deterministic: identical input always yields byte-identical
// output. Sections with no source data are omitted entirely so the model
// never sees empty headers. Custom instructions come last before the
// guidelines so they can override everything above them.
func BuildSystemPrompt(bc *BusinessContext) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("You are a helpful, friendly, and professional AI assistant for %s. ", bc.Business.Name))
	sb.WriteString("You have been trained with comprehensive knowledge about this business and should provide accurate, helpful responses.\n\n")

	sb.WriteString("## Business Profile\n")
	sb.WriteString(fmt.Sprintf("**Name:** %s\n", bc.Business.Name))
	if bc.Business.Description != "" {
		sb.WriteString(fmt.Sprintf("**About:** %s\n", bc.Business.Description))
	}

	if len(bc.Hours) > 0 {
		sb.WriteString("\n## Operating Hours\n")
		for _, h := range bc.Hours {
			sb.WriteString(formatHours(h))
			sb.WriteByte('\n')
		}
	}

	if len(bc.Services) > 0 {
		sb.WriteString("\n## Services & Products\n")
		for _, s := range bc.Services {
			sb.WriteString(fmt.Sprintf("- %s", s.Name))
			if s.Description != "" {
				sb.WriteString(fmt.Sprintf(": %s", s.Description))
			}
			if s.Price != "" {
				sb.WriteString(fmt.Sprintf(" (%s)", s.Price))
			}
			sb.WriteByte('\n')
		}
	}

	if len(bc.FAQs) > 0 {
		sb.WriteString("\n## Knowledge Base (FAQ)\n")
		for _, f := range bc.FAQs {
			sb.WriteString(fmt.Sprintf("Q: %s\nA: %s\n\n", f.Question, f.Answer))
		}
	}

	if knowledge := formatKnowledge(bc.Knowledge); knowledge != "" {
		sb.WriteString("\n## Additional Knowledge\n")
		sb.WriteString(knowledge)
		sb.WriteByte('\n')
	}

	if bc.Instructions != "" {
		sb.WriteString("\n## Special Instructions & AI Memory\n")
		sb.WriteString(bc.Instructions)
		sb.WriteByte('\n')
	}

	sb.WriteString("\n## Response Guidelines\n")
	sb.WriteString("- Be warm, professional, and conversational\n")
	sb.WriteString("- Provide accurate information based on the business data above\n")
	sb.WriteString("- If asked about something not covered in the data, politely explain you don't have that specific information and suggest contacting the business directly\n")
	sb.WriteString("- Keep responses helpful but concise\n")
	sb.WriteString("- Never make up information that wasn't provided\n")
	sb.WriteString("- If the business has specific instructions above, follow them with priority\n")

	return sb.String()
}

func formatHours(h models.BusinessHours) string {
	day := "Unknown"
	if h.DayOfWeek >= 0 && h.DayOfWeek < len(dayNames) {
		day = dayNames[h.DayOfWeek]
	}

	if h.IsClosed {
		return fmt.Sprintf("%s: Closed", day)
	}

	open := h.OpenTime
	if open == "" {
		open = "N/A"
	}
	closeT := h.CloseTime
	if closeT == "" {
		closeT = "N/A"
	}

	return fmt.Sprintf("%s: %s - %s", day, open, closeT)
}

func formatKnowledge(items []models.KnowledgeItem) string {
	var parts []string

	for _, k := range items {
		switch k.Type {
		case models.KnowledgeTypeText:
			parts = append(parts, fmt.Sprintf("### %s\n%s", k.Title, k.Content))
		case models.KnowledgeTypeWebsite:
			parts = append(parts, fmt.Sprintf("### %s (Website: %s)\n%s", k.Title, k.URL, k.Content))
		case models.KnowledgeTypeFile:
			parts = append(parts, fmt.Sprintf("### %s (File: %s)\n%s", k.Title, k.FileName, k.Content))
		}
	}

	return strings.Join(parts, "\n\n")
}
