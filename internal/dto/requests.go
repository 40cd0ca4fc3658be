package dto

// SubmitReportRequest represents a JSON report submission.
// Multipart submissions carry the same field names as form values
// and the photo as the "image" file part.
type SubmitReportRequest struct {
	IsLost      bool   `json:"is_lost"`
	IsFound     bool   `json:"is_found"`
	Name        string `json:"name"`
	Location    string `json:"location"`
	Description string `json:"description"`
	Contact     string `json:"contact"`
	// ImageBase64 is an optional photo encoded as standard base64.
	ImageBase64 string `json:"image_base64"`
}

// FeedQuery represents feed query parameters
type FeedQuery struct {
	Filter string `form:"filter"`
}
