// Package models contains the API envelope and the request DTOs of the HTTP layer.
package models

// ApiResponse is the envelope of every successful response.
//
//nolint:govet // fieldalignment: Accept minor memory overhead for better readability
type ApiResponse struct {
	StatusCode int    `json:"statusCode"`
	Data       any    `json:"data"`
	Message    string `json:"message"`
	Success    bool   `json:"success"`
}

// NewApiResponse builds a success envelope. Success follows the status code.
func NewApiResponse(statusCode int, data any, message string) ApiResponse {
	if message == "" {
		message = "Success"
	}
	return ApiResponse{
		StatusCode: statusCode,
		Data:       data,
		Message:    message,
		Success:    statusCode < 400,
	}
}

// ApiError is the envelope of every error response.
//
//nolint:govet // fieldalignment: Accept minor memory overhead for better readability
type ApiError struct {
	StatusCode int      `json:"statusCode"`
	Data       any      `json:"data"`
	Message    string   `json:"message"`
	Success    bool     `json:"success"`
	Errors     []string `json:"errors"`
}

// NewApiError builds an error envelope.
func NewApiError(statusCode int, message string, errs ...string) ApiError {
	if message == "" {
		message = "Something went wrong"
	}
	if errs == nil {
		errs = []string{}
	}
	return ApiError{
		StatusCode: statusCode,
		Data:       nil,
		Message:    message,
		Success:    false,
		Errors:     errs,
	}
}

// ContentRequest is the body of tweet and comment writes.
type ContentRequest struct {
	Content string `json:"content" form:"content" binding:"required,notblank,max=5000"`
}

// PlaylistRequest is the body of playlist create and update.
type PlaylistRequest struct {
	Name        string `json:"name" form:"name" binding:"required,notblank,max=200"`
	Description string `json:"description" form:"description" binding:"required,notblank,max=2000"`
}

// VideoForm holds the text fields of a video publish or update.
type VideoForm struct {
	Title       string `form:"title" binding:"required,notblank,max=200"`
	Description string `form:"description" binding:"required,notblank,max=5000"`
}

// ListQuery is the query string of paginated listings.
type ListQuery struct {
	Page  string `form:"page"`
	Limit string `form:"limit"`
}

// VideoListQuery is the query string of the video listing.
type VideoListQuery struct {
	ListQuery
	Query    string `form:"query"`
	SortBy   string `form:"sortBy" binding:"omitempty,oneof=createdAt views duration title"`
	SortType string `form:"sortType" binding:"omitempty,oneof=asc desc ASC DESC"`
	UserID   string `form:"userId"`
}

// LikeStatus is the payload of a like toggle.
type LikeStatus struct {
	IsLiked bool `json:"isLiked"`
}

// SubscriptionStatus is the payload of a subscription toggle.
type SubscriptionStatus struct {
	IsSubscribed bool `json:"isSubscribed"`
}

// PublishStatus is the payload of a publish toggle.
type PublishStatus struct {
	IsPublished bool `json:"isPublished"`
}
