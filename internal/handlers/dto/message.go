package dto

type SendMessageRequest struct {
	MatchID string `json:"matchId" binding:"required,uuid"`
	Content string `json:"content" binding:"required"`
}

type IcebreakerRequest struct {
	RecipientID    string `json:"recipientId" binding:"required,uuid"`
	IcebreakerText string `json:"icebreakerText" binding:"required"`
}
