package entity

import "time"

// ClientDocument is a file a client attached to one of their requests.
type ClientDocument struct {
	ID               string     `json:"id" firestore:"id"`
	ServiceRequestID string     `json:"service_request_id" firestore:"serviceRequestId"`
	UserID           string     `json:"user_id" firestore:"userId"`
	FileName         string     `json:"file_name" firestore:"fileName"`
	FilePath         string     `json:"file_path" firestore:"filePath"`
	FileSize         int64      `json:"file_size" firestore:"fileSize"`
	MimeType         string     `json:"mime_type" firestore:"mimeType"`
	Notes            string     `json:"notes,omitempty" firestore:"notes,omitempty"`
	Reviewed         bool       `json:"reviewed" firestore:"reviewed"`
	ReviewedBy       string     `json:"reviewed_by,omitempty" firestore:"reviewedBy,omitempty"`
	ReviewedAt       *time.Time `json:"reviewed_at,omitempty" firestore:"reviewedAt,omitempty"`
	CreatedAt        time.Time  `json:"created_at" firestore:"createdAt"`
}

// ServiceDocument is the deliverable a CA attaches to a request.
type ServiceDocument struct {
	ID               string    `json:"id" firestore:"id"`
	ServiceRequestID string    `json:"service_request_id" firestore:"serviceRequestId"`
	ClientID         string    `json:"client_id" firestore:"clientId"`
	UploadedBy       string    `json:"uploaded_by" firestore:"uploadedBy"`
	FileName         string    `json:"file_name" firestore:"fileName"`
	FilePath         string    `json:"file_path" firestore:"filePath"`
	FileSize         int64     `json:"file_size" firestore:"fileSize"`
	MimeType         string    `json:"mime_type" firestore:"mimeType"`
	CreatedAt        time.Time `json:"created_at" firestore:"createdAt"`
}
