package dto

type GroupClassificationResponse struct {
	GroupId     string   `json:"group_id"`
	Name        string   `json:"name"`
	Category    string   `json:"category"`
	Skills      []string `json:"skills"`
	Similarity  float64  `json:"similarity"`
	LastUpdated string   `json:"last_updated"`
}

type UserClassificationResponse struct {
	UserId      string   `json:"user_id"`
	Keywords    []string `json:"keywords"`
	Category    string   `json:"category"`
	Skills      []string `json:"skills"`
	Similarity  float64  `json:"similarity"`
	LastUpdated string   `json:"last_updated"`
}

type CacheSnapshotResponse struct {
	GroupClassifications []GroupClassificationResponse `json:"group_classifications"`
	UserClassifications  []UserClassificationResponse  `json:"user_classifications"`
}
