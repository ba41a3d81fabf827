package misc

import (
	"encoding/json"

	"github.com/gin-gonic/gin/binding"
)

type ErrorBody struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

const (
	CodeSuccess          = 0
	CodeUsernameNotFound = -1
	CodeWrongPassword    = -2
)

// ApiRequest is the generic request envelope: a caller supplied correlation id
// plus operation specific params. Params stay raw until the handler binds them
// into a typed struct.
type ApiRequest struct {
	ID     json.RawMessage `json:"id"`
	Params json.RawMessage `json:"params"`
}

type ApiResponse struct {
	ID    json.RawMessage `json:"id"`
	Code  int             `json:"code"`
	Data  interface{}     `json:"data,omitempty"`
	Error string          `json:"error,omitempty"`
}

// BindParams unmarshals the raw params into target and runs the same
// validation gin applies to request bodies.
func (r *ApiRequest) BindParams(target interface{}) error {
	if len(r.Params) > 0 {
		if err := json.Unmarshal(r.Params, target); err != nil {
			return err
		}
	}
	if binding.Validator == nil {
		return nil
	}
	return binding.Validator.ValidateStruct(target)
}

func Success(id json.RawMessage, data interface{}) *ApiResponse {
	return &ApiResponse{ID: id, Code: CodeSuccess, Data: data}
}

func SuccessWithoutData(id json.RawMessage) *ApiResponse {
	return &ApiResponse{ID: id, Code: CodeSuccess, Data: "success"}
}

func UsernameNotFound(id json.RawMessage) *ApiResponse {
	return &ApiResponse{ID: id, Code: CodeUsernameNotFound, Error: "Username not found"}
}

func WrongPassword(id json.RawMessage) *ApiResponse {
	return &ApiResponse{ID: id, Code: CodeWrongPassword, Error: "Wrong password"}
}

type PageRequest struct {
	Page     uint `json:"page" binding:"required,min=1"`
	PageSize uint `json:"page_size" binding:"required,min=1,max=100"`
}
