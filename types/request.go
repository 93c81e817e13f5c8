package types

type RegisterRequest struct {
	Username    string `json:"username"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type CreatePaperRequest struct {
	Title       string       `json:"title"`
	Board       string       `json:"board"`
	Class       string       `json:"class"`
	Subject     string       `json:"subject"`
	Year        int          `json:"year"`
	ExamType    string       `json:"exam_type"`
	Description string       `json:"description"`
	Tags        []string     `json:"tags"`
	Files       []StoredFile `json:"files"`
}

// PaperFilter carries the optional list filters. Zero values mean "any".
type PaperFilter struct {
	Board    string `form:"board"`
	Class    string `form:"class"`
	Subject  string `form:"subject"`
	Year     int    `form:"year"`
	ExamType string `form:"exam_type"`
	Page     int64  `form:"page"`
	Limit    int64  `form:"limit"`
}

type CreateCommentRequest struct {
	Content string `json:"content"`
}

type RatePaperRequest struct {
	Score int `json:"score"`
}

type CreateGroupRequest struct {
	Name        string `json:"name"`
	Subject     string `json:"subject"`
	Description string `json:"description"`
}

type JoinGroupRequest struct {
	InviteCode string `json:"invite_code"`
}

type CreatePaperRequestRequest struct {
	Board    string `json:"board"`
	Class    string `json:"class"`
	Subject  string `json:"subject"`
	Year     int    `json:"year"`
	ExamType string `json:"exam_type"`
	Note     string `json:"note"`
}

type FulfillPaperRequestRequest struct {
	PaperID string `json:"paper_id"`
}

type UpdateProgressRequest struct {
	PaperID      string `json:"paper_id"`
	Status       string `json:"status"`
	TimeSpentMin int    `json:"time_spent_min"`
}

type CreateExamEventRequest struct {
	Title   string `json:"title"`
	Subject string `json:"subject"`
	Date    int64  `json:"date"`
	Note    string `json:"note"`
}
