// Package api exposes the demo service over HTTP.
package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/bitechdev/DemoManage/pkg/apperr"
	"github.com/bitechdev/DemoManage/pkg/common"
	"github.com/bitechdev/DemoManage/pkg/logger"
	"github.com/bitechdev/DemoManage/pkg/models"
	"github.com/bitechdev/DemoManage/pkg/service"
)

const (
	defaultLimit     = 100
	maxLimit         = 100
	maxMultipartSize = 8 << 20
)

// Handler serves the demo endpoints.
type Handler struct {
	service *service.DemoService
}

func NewHandler(svc *service.DemoService) *Handler {
	return &Handler{service: svc}
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Error("encode response failed: %v", err)
	}
}

func sendData(w http.ResponseWriter, status int, data interface{}, message string) {
	writeJSON(w, status, common.Response{Success: true, Data: data, Message: message})
}

// sendError maps any error onto the uniform error envelope. Unknown
// error values become opaque 500s so internals never leak.
func sendError(w http.ResponseWriter, err error) {
	if appErr, ok := apperr.As(err); ok {
		message := appErr.Message
		if appErr.Status == http.StatusInternalServerError {
			logger.Error("request failed: %v", appErr)
			// Storage failures carry their cause in the message.
			message = appErr.Error()
		}
		writeJSON(w, appErr.Status, common.NewErrorResponse(message, nil))
		return
	}
	logger.Error("unclassified request failure: %v", err)
	writeJSON(w, http.StatusInternalServerError, common.NewErrorResponse("Internal server error.", nil))
}

func sendValidationError(w http.ResponseWriter, status int, message string, details []common.ErrorDetail) {
	writeJSON(w, status, common.NewErrorResponse(message, details))
}

// requireUserID extracts and validates the acting user from the
// user-id header. The second return is false when the response has
// already been written.
func requireUserID(w http.ResponseWriter, r *http.Request) (string, bool) {
	raw := r.Header.Get("user-id")
	if raw == "" {
		sendValidationError(w, http.StatusBadRequest, "Invalid request headers.", []common.ErrorDetail{{
			Type:  "missing",
			Loc:   []string{"header", "user-id"},
			Msg:   "Field required",
			Input: nil,
		}})
		return "", false
	}
	parsed, err := uuid.Parse(raw)
	if err != nil {
		sendValidationError(w, http.StatusBadRequest, "Invalid request headers.", []common.ErrorDetail{{
			Type:  "uuid_parsing",
			Loc:   []string{"header", "user-id"},
			Msg:   "Input should be a valid UUID",
			Input: raw,
		}})
		return "", false
	}
	return parsed.String(), true
}

// logoFromForm pulls the optional logo part out of a multipart form.
func logoFromForm(r *http.Request) (*service.LogoUpload, error) {
	file, header, err := r.FormFile("logo")
	if err == http.ErrMissingFile {
		return nil, nil
	}
	if err != nil {
		return nil, apperr.BadRequest("Failed to read logo upload.")
	}
	return &service.LogoUpload{Filename: header.Filename, File: file}, nil
}

func (h *Handler) CreateDemo(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	if err := r.ParseMultipartForm(maxMultipartSize); err != nil {
		sendError(w, apperr.BadRequest("Request body must be multipart form data."))
		return
	}

	logo, err := logoFromForm(r)
	if err != nil {
		sendError(w, err)
		return
	}

	demo, err := h.service.Create(r.Context(), r.FormValue("name"), logo, userID)
	if err != nil {
		sendError(w, err)
		return
	}
	sendData(w, http.StatusCreated, demo, "Demo created successfully.")
}

func (h *Handler) ReadDemo(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireUserID(w, r); !ok {
		return
	}
	demo, err := h.service.Read(r.Context(), mux.Vars(r)["demo_id"])
	if err != nil {
		sendError(w, err)
		return
	}
	sendData(w, http.StatusOK, demo, "Demo retrieved successfully.")
}

func (h *Handler) ListDemos(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireUserID(w, r); !ok {
		return
	}

	params := listParams(r)
	demos, pagination, err := h.service.List(r.Context(), params)
	if err != nil {
		sendError(w, err)
		return
	}
	if demos == nil {
		demos = []models.Demo{}
	}
	writeJSON(w, http.StatusOK, common.PaginatedResponse{
		Success:    true,
		Data:       demos,
		Pagination: &pagination,
		Message:    "Demos retrieved successfully.",
	})
}

// listParams reads the list query parameters, clamping rather than
// rejecting out-of-range values.
func listParams(r *http.Request) common.ListParams {
	q := r.URL.Query()

	offset := 0
	if n, err := strconv.Atoi(q.Get("offset")); err == nil && n > 0 {
		offset = n
	}

	limit := defaultLimit
	if n, err := strconv.Atoi(q.Get("limit")); err == nil && n > 0 {
		limit = n
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	orderBy := q.Get("order_by")
	if orderBy == "" {
		orderBy = "-created_at"
	}

	return common.ListParams{
		Offset:  offset,
		Limit:   limit,
		OrderBy: orderBy,
		Search:  q.Get("search"),
		Filters: q.Get("filters"),
	}
}

func (h *Handler) UpdateDemo(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	if err := r.ParseMultipartForm(maxMultipartSize); err != nil {
		sendError(w, apperr.BadRequest("Request body must be multipart form data."))
		return
	}

	var name *string
	if values, present := r.MultipartForm.Value["name"]; present && len(values) > 0 {
		name = &values[0]
	}

	logo, err := logoFromForm(r)
	if err != nil {
		sendError(w, err)
		return
	}

	demo, err := h.service.Update(r.Context(), mux.Vars(r)["demo_id"], name, logo, userID)
	if err != nil {
		sendError(w, err)
		return
	}
	sendData(w, http.StatusOK, demo, "Demo updated successfully.")
}

func (h *Handler) DeleteDemo(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	if err := h.service.Delete(r.Context(), mux.Vars(r)["demo_id"], userID); err != nil {
		sendError(w, err)
		return
	}
	sendData(w, http.StatusOK, map[string]interface{}{}, "Demo deleted successfully.")
}

type statusUpdateRequest struct {
	Status           string `json:"status"`
	ErrorMessage     string `json:"error_message"`
	ErrorUserMessage string `json:"error_user_message"`
}

func (h *Handler) UpdateDemoStatus(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var body statusUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		sendError(w, apperr.BadRequest("Request body must be valid JSON."))
		return
	}

	demo, err := h.service.UpdateStatus(r.Context(), mux.Vars(r)["demo_id"],
		body.Status, body.ErrorMessage, body.ErrorUserMessage, userID)
	if err != nil {
		sendError(w, err)
		return
	}
	sendData(w, http.StatusOK, demo, "Demo status updated successfully.")
}

type isActiveUpdateRequest struct {
	IsActive *bool `json:"is_active"`
}

func (h *Handler) UpdateDemoIsActive(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var body isActiveUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		sendError(w, apperr.BadRequest("Request body must be valid JSON."))
		return
	}
	if body.IsActive == nil {
		sendValidationError(w, http.StatusUnprocessableEntity, "Invalid request body.", []common.ErrorDetail{{
			Type: "missing",
			Loc:  []string{"body", "is_active"},
			Msg:  "Field required",
		}})
		return
	}

	demo, err := h.service.UpdateIsActive(r.Context(), mux.Vars(r)["demo_id"], *body.IsActive, userID)
	if err != nil {
		sendError(w, err)
		return
	}
	sendData(w, http.StatusOK, demo, "Demo is_active updated successfully.")
}

func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
