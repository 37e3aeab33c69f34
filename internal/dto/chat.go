package dto

// Assistant use cases supported by the chat endpoint.
const (
	UseCaseRestaurantRecs = "restaurant_recs"
	UseCaseFilterHelp     = "filter_help"
	UseCaseProductHelp    = "product_help"
	UseCaseComparison     = "comparison_tool"
)

// ChatTurn is one prior exchange in the conversation history.
type ChatTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ReviewContext is a trimmed review snippet forwarded as grounding context.
type ReviewContext struct {
	Author string  `json:"author,omitempty"`
	Rating float64 `json:"rating,omitempty"`
	Text   string  `json:"text,omitempty"`
}

// RestaurantContext is the slice of a restaurant record the assistant is
// allowed to see.
type RestaurantContext struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Rating      *float64        `json:"rating"`
	ReviewCount int             `json:"reviewCount"`
	Address     string          `json:"address"`
	PriceLevel  *int            `json:"priceLevel"`
	Types       []string        `json:"types"`
	Dietary     []string        `json:"dietary"`
	IsFavorite  bool            `json:"isFavorite"`
	Reviews     []ReviewContext `json:"reviews,omitempty"`
}

// ChatFilters carries the derived keywords constraining recommendations.
type ChatFilters struct {
	Keywords []string `json:"keywords"`
}

// ChatRequest is the payload accepted by POST /chat.
type ChatRequest struct {
	Question          string              `json:"question"`
	UserQuestion      string              `json:"userQuestion,omitempty"`
	History           []ChatTurn          `json:"history,omitempty"`
	Restaurants       []RestaurantContext `json:"restaurants,omitempty"`
	Filters           *ChatFilters        `json:"filters,omitempty"`
	FocusRestaurantID string              `json:"focusRestaurantId,omitempty"`
	UseCase           string              `json:"useCase,omitempty"`
}
