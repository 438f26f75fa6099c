package dto

type AnalyzeSentimentRequest struct {
	Message  string `json:"message" validate:"required"`
	Language string `json:"language" validate:"omitempty,oneof=auto eng fra ara tun"`
}

type AnalyzeSentimentResponse struct {
	Emotions map[string]float64 `json:"emotions"`
	Emoji    string             `json:"emoji"`
	Language string             `json:"language"`
}

type FeedbackRequest struct {
	MessageId string `json:"message_id" validate:"required"`
	Feedback  string `json:"feedback" validate:"required,max=2000"`
}

type FeedbackResponse struct {
	Status string `json:"status"`
}
