package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dinevalley/discovery-api/internal/dto"
	"github.com/dinevalley/discovery-api/internal/llm"
	"github.com/dinevalley/discovery-api/internal/service/scoring"
)

const (
	maxHistoryTurns       = 8
	maxContextRestaurants = 8
	maxContextReviews     = 2
)

// ErrQuestionRequired is returned when a chat request has no question text.
var ErrQuestionRequired = errors.New("a question string is required")

var conciergeSystemPrompt = strings.Join([]string{
	"You are DineValley AI, an upbeat dining concierge.",
	"Base guidance on the provided restaurant context first and never invent restaurants outside it.",
	"Keep answers short, concrete and friendly.",
	"When asked for recommendations, reference the most relevant restaurants from the context.",
}, " ")

var comparisonSystemPrompt = strings.Join([]string{
	"You are the Instant Restaurant Comparison Tool for DineValley.",
	"Only compare the restaurants provided in the context and never invent others.",
	"Return ONLY valid JSON with this shape:",
	`{ "overview": "short motivating sentence", "insights": [ { "category": "Best value", "winner": "Name or \"Split decision\"", "rationale": "<110 char reason>" } ] }`,
	`Include exactly one insight per category: "Best value", "Most options for dietary needs", "Best for groups", "Best for quick service", "Most popular dishes".`,
	`If data is insufficient for a category, set winner to "Split decision" and explain briefly.`,
	"Use evidence from ratings, review counts, price level symbols, cuisine/types, dietary tags, and takeaway/delivery hints.",
	"Prefer the local heuristic hints supplied in the context when they are decisive.",
	"Do not write prose outside the JSON.",
}, " ")

// ChatService orchestrates one assistant turn: it grounds the prompt in the
// provided restaurant context, runs the local comparison scorer when
// comparing, calls the LLM Provider and tolerantly parses the reply.
type ChatService struct {
	llm llm.Client
}

// NewChatService builds a chat service around the LLM client.
func NewChatService(client llm.Client) *ChatService {
	return &ChatService{llm: client}
}

// ChatAnswer is the outcome of one assistant turn. Hints carry the local
// scorer output for comparisons and are retained even when the LLM answer
// parses cleanly, since the structured reply may omit a category.
type ChatAnswer struct {
	Answer       string                `json:"answer"`
	Structured   *llm.StructuredAnswer `json:"structured,omitempty"`
	Comparison   *llm.ComparisonResult `json:"comparison,omitempty"`
	Hints        []scoring.Hint        `json:"hints,omitempty"`
	HintSummary  string                `json:"hintSummary,omitempty"`
	FallbackUsed bool                  `json:"fallbackUsed,omitempty"`
}

// Answer runs one chat turn. An upstream LLM failure surfaces as an error
// (retryable by the caller); a malformed LLM reply never does. For
// comparisons it falls back to the local scorer hints.
func (s *ChatService) Answer(ctx context.Context, req dto.ChatRequest) (ChatAnswer, error) {
	question := strings.TrimSpace(req.Question)
	if question == "" {
		return ChatAnswer{}, ErrQuestionRequired
	}
	rawQuestion := strings.TrimSpace(req.UserQuestion)
	if rawQuestion == "" {
		rawQuestion = question
	}

	history := sanitizeHistory(req.History)
	restaurants := req.Restaurants
	if len(restaurants) > maxContextRestaurants {
		restaurants = restaurants[:maxContextRestaurants]
	}
	keywords := sanitizeKeywords(req.Filters)
	isComparison := req.UseCase == dto.UseCaseComparison

	var localHints *scoring.Result
	if isComparison {
		if result, err := scoring.Compare(toCandidates(restaurants)); err == nil {
			localHints = &result
		}
	}

	messages := buildMessages(rawQuestion, history, restaurants, keywords, req.FocusRestaurantID, isComparison, localHints)

	answer, err := s.llm.Complete(ctx, messages)
	if err != nil {
		return ChatAnswer{}, fmt.Errorf("assistant request failed: %w", err)
	}

	result := ChatAnswer{Answer: answer}
	if localHints != nil {
		result.Hints = localHints.Hints
		result.HintSummary = localHints.Summary
	}

	if isComparison {
		if parsed, ok := llm.ParseComparison(answer); ok {
			result.Comparison = &parsed
		} else if localHints != nil {
			fallback := comparisonFromHints(*localHints)
			result.Comparison = &fallback
			result.FallbackUsed = true
		}
	} else if parsed, ok := llm.ParseStructured(answer); ok {
		result.Structured = &parsed
	}

	return result, nil
}

func sanitizeHistory(history []dto.ChatTurn) []dto.ChatTurn {
	cleaned := make([]dto.ChatTurn, 0, len(history))
	for _, turn := range history {
		if turn.Content == "" {
			continue
		}
		if turn.Role != "user" && turn.Role != "assistant" {
			continue
		}
		cleaned = append(cleaned, turn)
	}
	if len(cleaned) > maxHistoryTurns {
		cleaned = cleaned[len(cleaned)-maxHistoryTurns:]
	}
	return cleaned
}

func sanitizeKeywords(filters *dto.ChatFilters) []string {
	if filters == nil {
		return nil
	}
	keywords := make([]string, 0, len(filters.Keywords))
	for _, keyword := range filters.Keywords {
		trimmed := strings.ToLower(strings.TrimSpace(keyword))
		if trimmed != "" {
			keywords = append(keywords, trimmed)
		}
	}
	return keywords
}

func toCandidates(restaurants []dto.RestaurantContext) []scoring.Candidate {
	candidates := make([]scoring.Candidate, 0, len(restaurants))
	for _, r := range restaurants {
		candidates = append(candidates, scoring.Candidate{
			ID:          r.ID,
			Name:        r.Name,
			Rating:      r.Rating,
			ReviewCount: r.ReviewCount,
			PriceLevel:  r.PriceLevel,
			Types:       r.Types,
			Dietary:     r.Dietary,
		})
	}
	return candidates
}

func buildMessages(question string, history []dto.ChatTurn, restaurants []dto.RestaurantContext, keywords []string, focusID string, isComparison bool, hints *scoring.Result) []llm.Message {
	systemPrompt := conciergeSystemPrompt
	if isComparison {
		systemPrompt = comparisonSystemPrompt
	}

	sections := []string{"User question: " + question}

	if context := restaurantContext(restaurants); context != "" {
		label := "Restaurant context:"
		if isComparison {
			label = "Restaurants to compare:"
		}
		sections = append(sections, label+"\n"+context)
	} else if isComparison {
		sections = append(sections, "No restaurants provided.")
	}

	if reviews := reviewContext(restaurants); reviews != "" {
		sections = append(sections, "Review snippets:\n"+reviews)
	}

	if focusID != "" {
		for _, r := range restaurants {
			if r.ID == focusID {
				sections = append(sections, fmt.Sprintf(
					"Current restaurant focus: %s. When the user asks about \"this place\", answer about this restaurant and do not recommend others unless explicitly requested.",
					r.Name,
				))
				break
			}
		}
	}

	if len(keywords) > 0 {
		if len(restaurants) > 0 {
			sections = append(sections, "Only recommend places matching: "+strings.Join(keywords, ", ")+".")
		} else {
			sections = append(sections,
				"No restaurants in the current dataset match: "+strings.Join(keywords, ", ")+". Explain this limitation, suggest adjusting filters, and do not invent places.")
		}
	}

	if isComparison && hints != nil {
		lines := make([]string, 0, len(hints.Hints))
		for _, h := range hints.Hints {
			lines = append(lines, fmt.Sprintf("- %s: %s (%s)", h.Category, h.Winner, h.Evidence))
		}
		sections = append(sections, "Local heuristic hints:\n"+strings.Join(lines, "\n"))
	}

	messages := make([]llm.Message, 0, len(history)+2)
	messages = append(messages, llm.Message{Role: "system", Content: systemPrompt})
	for _, turn := range history {
		messages = append(messages, llm.Message{Role: turn.Role, Content: turn.Content})
	}
	messages = append(messages, llm.Message{Role: "user", Content: strings.Join(sections, "\n\n")})
	return messages
}

func restaurantContext(restaurants []dto.RestaurantContext) string {
	lines := make([]string, 0, len(restaurants))
	for i, r := range restaurants {
		var sb strings.Builder
		fmt.Fprintf(&sb, "%d. %s", i+1, r.Name)
		if r.Rating != nil {
			fmt.Fprintf(&sb, ", rated %.1f (%d reviews)", *r.Rating, r.ReviewCount)
		}
		if r.PriceLevel != nil && *r.PriceLevel > 0 {
			fmt.Fprintf(&sb, ", price %s", strings.Repeat("$", *r.PriceLevel))
		}
		if len(r.Types) > 0 {
			fmt.Fprintf(&sb, ", types: %s", strings.Join(r.Types, ", "))
		}
		if len(r.Dietary) > 0 {
			fmt.Fprintf(&sb, ", dietary: %s", strings.Join(r.Dietary, ", "))
		}
		if r.IsFavorite {
			sb.WriteString(", user favorite")
		}
		if r.Address != "" {
			fmt.Fprintf(&sb, " (%s)", r.Address)
		}
		lines = append(lines, sb.String())
	}
	return strings.Join(lines, "\n")
}

func reviewContext(restaurants []dto.RestaurantContext) string {
	lines := make([]string, 0, 4)
	for _, r := range restaurants {
		for i, review := range r.Reviews {
			if i >= maxContextReviews {
				break
			}
			text := strings.TrimSpace(review.Text)
			if text == "" {
				continue
			}
			if len(text) > 200 {
				text = text[:200] + "…"
			}
			lines = append(lines, fmt.Sprintf("%s (%.1f stars): %q", r.Name, review.Rating, text))
		}
	}
	return strings.Join(lines, "\n")
}

func comparisonFromHints(result scoring.Result) llm.ComparisonResult {
	insights := make([]llm.ComparisonInsight, 0, len(result.Hints))
	for _, h := range result.Hints {
		insights = append(insights, llm.ComparisonInsight{
			Category:  h.Category,
			Winner:    h.Winner,
			Rationale: h.Evidence,
		})
	}
	return llm.ComparisonResult{
		Overview: "Here's how they stack up based on local scoring.",
		Insights: insights,
	}
}
