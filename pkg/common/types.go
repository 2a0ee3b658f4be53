package common

// ListParams carries the query parameters of list endpoints.
type ListParams struct {
	Offset  int    `json:"offset"`
	Limit   int    `json:"limit"`
	OrderBy string `json:"order_by"`
	Search  string `json:"search"`
	Filters string `json:"filters"`
}

// Pagination is the metadata block returned with every list response.
type Pagination struct {
	TotalCount int `json:"total_count"`
	Offset     int `json:"offset"`
	Limit      int `json:"limit"`
	TotalPages int `json:"total_pages"`
}

// TotalPages computes ceil(total/limit); a zero limit yields one page.
func TotalPages(totalCount, limit int) int {
	if limit <= 0 {
		return 1
	}
	return (totalCount + limit - 1) / limit
}

// Response is the single-entity success envelope.
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
	Message string      `json:"message"`
}

// PaginatedResponse is the list success envelope.
type PaginatedResponse struct {
	Success    bool        `json:"success"`
	Data       interface{} `json:"data"`
	Pagination *Pagination `json:"pagination"`
	Message    string      `json:"message"`
}

// ErrorDetail describes one request-validation failure.
type ErrorDetail struct {
	Type  string      `json:"type"`
	Loc   []string    `json:"loc"`
	Msg   string      `json:"msg"`
	Input interface{} `json:"input"`
}

// ErrorResponse is the uniform error envelope. Errors is populated only
// for request-validation failures and stays empty otherwise.
type ErrorResponse struct {
	Success      bool          `json:"success"`
	Data         interface{}   `json:"data"`
	ErrorMessage string        `json:"error_message"`
	Errors       []ErrorDetail `json:"errors"`
}

// NewErrorResponse builds the error envelope with the invariant parts
// filled in.
func NewErrorResponse(message string, details []ErrorDetail) ErrorResponse {
	if details == nil {
		details = []ErrorDetail{}
	}
	return ErrorResponse{
		Success:      false,
		Data:         map[string]interface{}{},
		ErrorMessage: message,
		Errors:       details,
	}
}
