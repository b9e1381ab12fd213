package dto

type SwipeRequest struct {
	ProjectID string `json:"projectId" binding:"required,uuid"`
	Direction string `json:"direction" binding:"required,oneof=like skip"`
}

type SwipeStatsResponse struct {
	TodaySwipes     int64 `json:"todaySwipes"`
	MaxDailySwipes  int   `json:"maxDailySwipes"`
	RemainingSwipes int64 `json:"remainingSwipes"`
	LimitReached    bool  `json:"limitReached"`
}
