package exception

import (
	"net/http"

	"github.com/kbukum/errkit/errors"
)

// Record is the normalized form of a handled error. It is built once per
// failed request and not modified afterwards.
type Record struct {
	Type    errors.ErrorType    `json:"type" yaml:"type"`
	Code    errors.ErrorCode    `json:"code" yaml:"code"`
	Detail  string              `json:"detail" yaml:"detail"`
	Attr    *string             `json:"attr" yaml:"attr"`
	Details map[string][]string `json:"details,omitempty" yaml:"details,omitempty"`

	FaAttr    *string `json:"fa_attr,omitempty" yaml:"fa_attr,omitempty"`
	FaDetails string  `json:"fa_details,omitempty" yaml:"fa_details,omitempty"`

	// List holds one record per field error in multiple-exception mode.
	List []Record `json:"list,omitempty" yaml:"list,omitempty"`

	HTTPStatus int `json:"-" yaml:"-"`
}

// Message returns the localized message when present, else the default one.
func (r *Record) Message() string {
	if r.FaDetails != "" {
		return r.FaDetails
	}
	return r.Detail
}

// Localized reports whether the record carries a localized message.
func (r *Record) Localized() bool {
	return r.FaDetails != ""
}

// Status returns HTTPStatus, defaulting to 500.
func (r *Record) Status() int {
	if r.HTTPStatus == 0 {
		return http.StatusInternalServerError
	}
	return r.HTTPStatus
}

// AttrValue returns the attr or an empty string.
func (r *Record) AttrValue() string {
	if r.Attr == nil {
		return ""
	}
	return *r.Attr
}
