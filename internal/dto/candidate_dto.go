package dto

type RootResponse struct {
	Message string `json:"message"`
}

type UploadResponse struct {
	Message     string   `json:"message"`
	CandidateID string   `json:"candidate_id"`
	DataPreview []string `json:"data_preview"`
}

type AskRequest struct {
	Question string `json:"question"`
}

type AskResponse struct {
	CandidateID string `json:"candidate_id"`
	Question    string `json:"question"`
	Answer      string `json:"answer"`
}
