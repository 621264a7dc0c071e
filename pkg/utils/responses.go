package utils

import (
	"encoding/json"
	"net/http"
)

// Response is the envelope every endpoint answers with.
type Response struct {
	Success bool    `json:"success"`
	Data    any     `json:"data"`
	Error   *string `json:"error"`
}

// ResponseJSON writes JSON response with custom status code
func ResponseJSON(w http.ResponseWriter, code int, data any, errCode string) {
	response := Response{
		Success: errCode == "",
		Data:    data,
	}
	if errCode != "" {
		response.Error = &errCode
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(response)
}

// ------------- Success responses -------------

// returns 200 OK
func ResponseSuccess(w http.ResponseWriter, data any) {
	ResponseJSON(w, http.StatusOK, data, "")
}

// returns 201 Created
func ResponseCreated(w http.ResponseWriter, data any) {
	ResponseJSON(w, http.StatusCreated, data, "")
}

// ------------- Error responses -------------

// ResponseError writes a failure envelope carrying an error code.
func ResponseError(w http.ResponseWriter, status int, errCode string) {
	ResponseJSON(w, status, nil, errCode)
}

// returns 400 Bad Request
func ResponseBadRequest(w http.ResponseWriter, errCode string) {
	ResponseError(w, http.StatusBadRequest, errCode)
}

// returns 401 Unauthorized
func ResponseUnauthorized(w http.ResponseWriter) {
	ResponseError(w, http.StatusUnauthorized, "UNAUTHORIZED")
}

// returns 500 Internal Server Error
func ResponseInternalError(w http.ResponseWriter) {
	ResponseError(w, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR")
}
