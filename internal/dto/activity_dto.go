package dto

import "time"

type ActivityLogResponse struct {
	Id        string    `json:"id"`
	RepName   string    `json:"rep_name"`
	RepRole   string    `json:"rep_role,omitempty"`
	RepAvatar string    `json:"rep_avatar"`
	Topic     string    `json:"topic"`
	Date      time.Time `json:"date"`
	Excerpt   string    `json:"excerpt"`
	Method    string    `json:"method"`
}

type ArchivedDocumentResponse struct {
	Id    string `json:"id"`
	Title string `json:"title"`
	Size  string `json:"size"`
	Date  string `json:"date"`
	Type  string `json:"type"`
}

type ActivityPageResponse struct {
	Logs  []ActivityLogResponse `json:"logs"`
	Total int64                 `json:"total"`
}
