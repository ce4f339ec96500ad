package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
)

// apiErrorDetail is one entry in the coded error body. Workflow endpoints
// report failures the UI must distinguish (camera down, no active project,
// nothing to export) with a stable code instead of free-form message text.
type apiErrorDetail struct {
	Code   string `json:"code"`
	Status string `json:"status"`
	Detail string `json:"detail"`
}

type apiErrorBody struct {
	Errors []apiErrorDetail `json:"errors"`
}

// WriteAPIError writes a coded error response with the given HTTP status
func WriteAPIError(w http.ResponseWriter, httpStatus int, code string, detail string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(httpStatus)

	body := apiErrorBody{
		Errors: []apiErrorDetail{{
			Code:   code,
			Status: strconv.Itoa(httpStatus),
			Detail: detail,
		}},
	}
	_ = json.NewEncoder(w).Encode(body)
}
