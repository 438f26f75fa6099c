package dto

type HealthResponse struct {
	Status string `json:"status"`
	// Checks is only present on the readiness probe.
	Checks map[string]string `json:"checks,omitempty"`
}

type ChatbotInitialMessageResponse struct {
	Message string `json:"message"`
}
