package dto

type RecommendGroupsRequest struct {
	UserId string `json:"user_id" validate:"required"`
}

type RecommendationResponse struct {
	GroupId    string   `json:"group_id"`
	GroupName  string   `json:"group_name"`
	Category   string   `json:"category"`
	Skills     []string `json:"skills"`
	Similarity float64  `json:"similarity"`
}

type RecommendGroupsResponse struct {
	Message         string                   `json:"message,omitempty"`
	Recommendations []RecommendationResponse `json:"recommendations"`
}

// RecommendWithCacheResponse is the body of a successful POST /recommend.
type RecommendWithCacheResponse struct {
	Message         string                   `json:"message,omitempty"`
	Recommendations []RecommendationResponse `json:"recommendations"`
	Cache           CacheSnapshotResponse    `json:"cache"`
}

// RecommendErrorResponse is the body of a failed POST /recommend.
type RecommendErrorResponse struct {
	Error string                `json:"error"`
	Cache CacheSnapshotResponse `json:"cache"`
}
