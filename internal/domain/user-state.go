package domain

// Awaiting identifies which free-text input the bot expects from a user.
// Every incoming text message is routed through exactly one handler chosen
// by this value.
type Awaiting string

const (
	AwaitingNothing     Awaiting = ""
	AwaitingDescription Awaiting = "description"
	AwaitingKeywords    Awaiting = "keywords"
	AwaitingReviewText  Awaiting = "review_text"
	AwaitingQuestion    Awaiting = "question_text"
	AwaitingProductInfo Awaiting = "product_info"
)

// Review flavor constants for the reviews sub-flow
const (
	ReviewTypeReview   = "review"
	ReviewTypeQuestion = "question"
)

// Session holds per-user scratch data for one multi-step interaction.
// It lives in memory only: created when a flow begins, cleared when the
// flow completes or the user backs out to the main menu.
type Session struct {
	Awaiting     Awaiting
	ReviewType   string
	PendingInput string
}
