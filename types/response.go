package types

type DataResponse struct {
	Status  bool        `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
	User        *User  `json:"user"`
}

// UploadError is one failed file in an upload batch.
type UploadError struct {
	FileName string `json:"fileName"`
	Error    string `json:"error"`
}

// UploadBatchResponse is the wire contract of the upload endpoint. PublicURL
// and FileName duplicate the first stored file for older clients that only
// ever uploaded one file.
type UploadBatchResponse struct {
	Success   bool          `json:"success"`
	Files     []StoredFile  `json:"files,omitempty"`
	Errors    []UploadError `json:"errors,omitempty"`
	Error     string        `json:"error,omitempty"`
	PublicURL string        `json:"publicUrl,omitempty"`
	FileName  string        `json:"fileName,omitempty"`
}

type PaperSummary struct {
	Paper       *Paper  `json:"paper"`
	UpvoteCount int     `json:"upvote_count"`
	AvgRating   float64 `json:"avg_rating"`
	RatingCount int     `json:"rating_count"`
}

type ProgressStats struct {
	TotalAttempted  int            `json:"total_attempted"`
	TotalSolved     int            `json:"total_solved"`
	TotalTimeMin    int            `json:"total_time_min"`
	SolvedBySubject map[string]int `json:"solved_by_subject"`
	Recent          []*ProgressEntry `json:"recent"`
}

type SearchHit struct {
	PaperID string  `json:"paper_id"`
	Score   float64 `json:"score"`
	Paper   *Paper  `json:"paper,omitempty"`
}
