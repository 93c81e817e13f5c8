package types

const (
	REQUEST_STATUS_OPEN      = "open"
	REQUEST_STATUS_FULFILLED = "fulfilled"
)

const (
	PROGRESS_STATUS_ATTEMPTED = "attempted"
	PROGRESS_STATUS_SOLVED    = "solved"
)

type User struct {
	ID          string `json:"id" bson:"_id,omitempty"`
	Username    string `json:"username" bson:"username"`
	Password    string `json:"-" bson:"password"`
	DisplayName string `json:"display_name" bson:"display_name"`
	CreateAt    int64  `json:"created_at" bson:"created_at"`
	UpdateAt    int64  `json:"updated_at" bson:"updated_at"`
}

// StoredFile describes one uploaded file after it has been written to storage.
type StoredFile struct {
	FileName     string `json:"fileName" bson:"file_name"`
	PublicURL    string `json:"publicUrl" bson:"public_url"`
	OriginalName string `json:"originalName" bson:"original_name"`
}

type Paper struct {
	ID          string       `json:"id" bson:"_id,omitempty"`
	Title       string       `json:"title" bson:"title"`
	Board       string       `json:"board" bson:"board"`
	Class       string       `json:"class" bson:"class"`
	Subject     string       `json:"subject" bson:"subject"`
	Year        int          `json:"year" bson:"year"`
	ExamType    string       `json:"exam_type" bson:"exam_type"`
	Description string       `json:"description" bson:"description"`
	Tags        []string     `json:"tags" bson:"tags"`
	Files       []StoredFile `json:"files" bson:"files"`
	UploaderID  string       `json:"uploader_id" bson:"uploader_id"`
	Upvotes     []string     `json:"upvotes" bson:"upvotes"`
	CreateAt    int64        `json:"created_at" bson:"created_at"`
	UpdateAt    int64        `json:"updated_at" bson:"updated_at"`
}

type Comment struct {
	ID       string `json:"id" bson:"_id,omitempty"`
	PaperID  string `json:"paper_id" bson:"paper_id"`
	UserID   string `json:"user_id" bson:"user_id"`
	Username string `json:"username" bson:"username"`
	Content  string `json:"content" bson:"content"`
	CreateAt int64  `json:"created_at" bson:"created_at"`
}

// Rating is one user's difficulty score (1-5) for one paper.
type Rating struct {
	ID       string `json:"id" bson:"_id,omitempty"`
	PaperID  string `json:"paper_id" bson:"paper_id"`
	UserID   string `json:"user_id" bson:"user_id"`
	Score    int    `json:"score" bson:"score"`
	CreateAt int64  `json:"created_at" bson:"created_at"`
}

type Bookmark struct {
	ID       string `json:"id" bson:"_id,omitempty"`
	PaperID  string `json:"paper_id" bson:"paper_id"`
	UserID   string `json:"user_id" bson:"user_id"`
	CreateAt int64  `json:"created_at" bson:"created_at"`
}

type StudyGroup struct {
	ID          string   `json:"id" bson:"_id,omitempty"`
	Name        string   `json:"name" bson:"name"`
	Subject     string   `json:"subject" bson:"subject"`
	Description string   `json:"description" bson:"description"`
	OwnerID     string   `json:"owner_id" bson:"owner_id"`
	InviteCode  string   `json:"invite_code" bson:"invite_code"`
	Members     []string `json:"members" bson:"members"`
	CreateAt    int64    `json:"created_at" bson:"created_at"`
}

type GroupMessage struct {
	ID       string `json:"id" bson:"_id,omitempty"`
	GroupID  string `json:"group_id" bson:"group_id"`
	UserID   string `json:"user_id" bson:"user_id"`
	Username string `json:"username" bson:"username"`
	Content  string `json:"content" bson:"content"`
	CreateAt int64  `json:"created_at" bson:"created_at"`
}

type PaperRequest struct {
	ID          string `json:"id" bson:"_id,omitempty"`
	Board       string `json:"board" bson:"board"`
	Class       string `json:"class" bson:"class"`
	Subject     string `json:"subject" bson:"subject"`
	Year        int    `json:"year" bson:"year"`
	ExamType    string `json:"exam_type" bson:"exam_type"`
	Note        string `json:"note" bson:"note"`
	RequesterID string `json:"requester_id" bson:"requester_id"`
	Status      string `json:"status" bson:"status"`
	PaperID     string `json:"paper_id,omitempty" bson:"paper_id,omitempty"`
	CreateAt    int64  `json:"created_at" bson:"created_at"`
	UpdateAt    int64  `json:"updated_at" bson:"updated_at"`
}

// ProgressEntry records one user's work on one paper. One entry per
// (user, paper) pair, upserted on every update.
type ProgressEntry struct {
	ID           string `json:"id" bson:"_id,omitempty"`
	UserID       string `json:"user_id" bson:"user_id"`
	PaperID      string `json:"paper_id" bson:"paper_id"`
	Subject      string `json:"subject" bson:"subject"`
	Status       string `json:"status" bson:"status"`
	TimeSpentMin int    `json:"time_spent_min" bson:"time_spent_min"`
	CreateAt     int64  `json:"created_at" bson:"created_at"`
	UpdateAt     int64  `json:"updated_at" bson:"updated_at"`
}

type ExamEvent struct {
	ID       string `json:"id" bson:"_id,omitempty"`
	UserID   string `json:"user_id" bson:"user_id"`
	Title    string `json:"title" bson:"title"`
	Subject  string `json:"subject" bson:"subject"`
	Date     int64  `json:"date" bson:"date"`
	Note     string `json:"note" bson:"note"`
	CreateAt int64  `json:"created_at" bson:"created_at"`
}
