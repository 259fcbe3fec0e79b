package domain

// Chat roles.
const (
	RoleUser  = "user"
	RoleModel = "model"
)

// ChatMessage is a single turn in a coaching conversation.
type ChatMessage struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

// Citation is a web source reference attached to a search-augmented reply.
// Order follows the raw grounding metadata; duplicates are preserved.
type Citation struct {
	Title string `json:"title"`
	URI   string `json:"uri"`
}
