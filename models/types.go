package models

import "time"

// Question type constants (stored values)
const (
	TypeChoice = "radio"
	TypeText   = "text"
)

// Suggestion moderation status constants (stored values)
const (
	StatusNone     = "none"
	StatusFlagged  = "red"
	StatusApproved = "green"
)

// Question destinations for AddQuestionRequest
const (
	DestinationForm = "form"
	DestinationBank = "bank"
)

// Entity types accepted by the admin delete endpoint
const (
	EntityQuestions     = "questions"
	EntityResponses     = "responses"
	EntitySuggestions   = "suggestions"
	EntitySubmissionLog = "submission_log"
	EntityQuestionBank  = "question_bank"
	EntityVersions      = "version_history"
)

// Entities lists every table the admin gateway may delete from.
var Entities = []string{
	EntityQuestions,
	EntityResponses,
	EntitySuggestions,
	EntitySubmissionLog,
	EntityQuestionBank,
	EntityVersions,
}

// IsEntity reports whether name is on the admin delete allow-list.
func IsEntity(name string) bool {
	for _, e := range Entities {
		if e == name {
			return true
		}
	}
	return false
}

// IsStatus reports whether s is a valid suggestion status.
func IsStatus(s string) bool {
	return s == StatusNone || s == StatusFlagged || s == StatusApproved
}

// Request types

type SubmitRequest struct {
	Answers    map[string]string `json:"answers"`
	Suggestion string            `json:"suggestion"`
}

type AddQuestionRequest struct {
	Text        string   `json:"text"`
	Type        string   `json:"type"`
	Options     []string `json:"options"`
	Destination string   `json:"destination"`
	AddToBank   bool     `json:"add_to_bank"`
}

type SetStatusRequest struct {
	Status string `json:"status"`
}

type SaveToBankRequest struct {
	Code string `json:"code"`
}

// ViewerMessage is sent by a realtime client to say what it is looking at.
// Type is "show" or "feedback"; an empty Question clears the selection.
type ViewerMessage struct {
	Type     string `json:"type"`
	Question string `json:"question"`
}

type SaveVersionRequest struct {
	Name string `json:"name"`
}

type AdminDeleteRequest struct {
	EntityType    string `json:"entity_type"`
	ID            string `json:"id"`
	AdminPassword string `json:"admin_password"`
}

// Response types

type SubmitResponse struct {
	Responses   int `json:"responses"`
	Suggestions int `json:"suggestions"`
}

type AddQuestionResponse struct {
	Question     *Question     `json:"question,omitempty"`
	BankQuestion *BankQuestion `json:"bank_question,omitempty"`
}

type StatsResponse struct {
	Count int    `json:"count"`
	Label string `json:"label"`
}

type AdminDeleteResponse struct {
	Success bool   `json:"success,omitempty"`
	Error   string `json:"error,omitempty"`
}

// PublicConfig is served at /env.json; it must only carry public values.
type PublicConfig struct {
	SupabaseURL     string `json:"SUPABASE_URL"`
	SupabaseAnonKey string `json:"SUPABASE_ANON_KEY"`
}

type VersionSummary struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	Age       string    `json:"age"`
}

// Domain types

type Question struct {
	ID        string    `json:"id"`
	Code      string    `json:"code"`
	Text      string    `json:"text"`
	Type      string    `json:"type"`
	Options   []string  `json:"options"`
	InBank    bool      `json:"in_bank"`
	CreatedAt time.Time `json:"created_at"`
}

// IsChoice reports whether answers to q are tallied.
func (q Question) IsChoice() bool {
	return q.Type != TypeText
}

// QuestionSeed is a well-known question created on startup if missing.
type QuestionSeed struct {
	Code    string
	Text    string
	Type    string
	Options []string
}

type Response struct {
	ID         string    `json:"id"`
	QuestionID string    `json:"question_id"`
	Answer     string    `json:"answer"`
	CreatedAt  time.Time `json:"created_at"`
}

type Suggestion struct {
	ID           string    `json:"id"`
	Text         string    `json:"text"`
	Status       string    `json:"status"`
	QuestionID   *string   `json:"question_id,omitempty"`
	QuestionCode *string   `json:"question_code,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

type Submission struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
}

type BankQuestion struct {
	ID        string    `json:"id"`
	Text      string    `json:"question_text"`
	Type      string    `json:"type"`
	Options   []string  `json:"options"`
	CreatedAt time.Time `json:"created_at"`
}

type Version struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	Data      SnapshotData `json:"data"`
	CreatedAt time.Time    `json:"created_at"`
}

// SnapshotData is the point-in-time aggregation state stored with a version.
type SnapshotData struct {
	Tallies     map[string]map[string]int `json:"tallies"`
	Questions   []Question                `json:"questions"`
	Submissions int                       `json:"submissions"`
}

// Result types

type OptionCount struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// ResultView is what the results panel renders for one question. Choice
// questions carry counts; free-text questions carry feedback instead.
type ResultView struct {
	Question Question      `json:"question"`
	Counts   []OptionCount `json:"counts,omitempty"`
	Total    int           `json:"total"`
	Step     int           `json:"step,omitempty"`
	Feedback []Suggestion  `json:"feedback,omitempty"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
