package models

import "ishop/internal/common"

// ServiceResult is what the image operations report to their callers.
// Kind is empty on success.
type ServiceResult struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Kind    common.Kind `json:"kind,omitempty"`
	Payload interface{} `json:"payload,omitempty"`
}

// OK builds a successful result.
func OK(payload interface{}) *ServiceResult {
	return &ServiceResult{Success: true, Payload: payload}
}

// Failed converts err into a failed result, keeping its kind.
func Failed(err error) *ServiceResult {
	return &ServiceResult{
		Success: false,
		Message: common.MessageOf(err),
		Kind:    common.KindOf(err),
	}
}
