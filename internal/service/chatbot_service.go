package service

import (
	"strings"

	"go.uber.org/zap"

	"github.com/ChienNQuang/nextuni-portal-api/internal/models"
	appErrors "github.com/ChienNQuang/nextuni-portal-api/pkg/errors"
)

// defaultChatRules is the built-in counselling reply table. Matching is
// keyword based; the first rule with any keyword present wins.
var defaultChatRules = []models.ChatRule{
	{
		Keywords: []string{"deadline", "apply", "application"},
		Reply:    "Application deadlines vary by university. Open the university's page under Universities to see its admission timeline.",
	},
	{
		Keywords: []string{"tuition", "fee", "cost", "scholarship"},
		Reply:    "Tuition and scholarship details are published per major. Pick a university, then a major, to see the latest fee schedule.",
	},
	{
		Keywords: []string{"subject", "group", "combination", "exam"},
		Reply:    "Each major admits through subject groups of three exam subjects. The Subject Groups page lists every accepted combination.",
	},
	{
		Keywords: []string{"event", "open day", "register"},
		Reply:    "Upcoming admission events are listed under Events. Registration stays open until the event starts or fills up.",
	},
	{
		Keywords: []string{"contact", "counsellor", "help", "human"},
		Reply:    "A counsellor is available on weekdays from 8:00 to 17:00. Leave your email and we will get back to you within one working day.",
	},
}

const chatFallbackReply = "I could not find an answer for that. A counsellor will follow up during working hours, or try asking about deadlines, tuition, subject groups or events."

// ChatbotService answers visitor questions from a fixed keyword rule table.
type ChatbotService struct {
	rules  []models.ChatRule
	logger *zap.Logger
}

// NewChatbotService constructs the service with the built-in rule table.
func NewChatbotService(logger *zap.Logger) *ChatbotService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ChatbotService{rules: defaultChatRules, logger: logger}
}

// Ask matches a question against the rule table. Unmatched questions get the
// fallback reply rather than an error.
func (s *ChatbotService) Ask(question string) (*models.ChatReply, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "question is required")
	}
	lowered := strings.ToLower(question)
	for _, rule := range s.rules {
		for _, keyword := range rule.Keywords {
			if strings.Contains(lowered, keyword) {
				return &models.ChatReply{Reply: rule.Reply, Matched: true, RuleHint: keyword}, nil
			}
		}
	}
	s.logger.Debug("chatbot fallback", zap.String("question", question))
	return &models.ChatReply{Reply: chatFallbackReply, Matched: false}, nil
}
