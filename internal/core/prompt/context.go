package prompt

import "github.com/xeoai/chatbot-saas-be/internal/models"

// BusinessContext is the in-memory aggregate of everything known about a
// business. It is produced by the loader and consumed only by the builder.
type BusinessContext struct {
	Business     models.Business
	Hours        []models.BusinessHours
	Services     []models.BusinessService
	FAQs         []models.BusinessFAQ
	Knowledge    []models.KnowledgeItem
	Instructions string
}
