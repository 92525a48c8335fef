package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// BindJSONOrError ensures body is present and parsable.
func BindJSONOrError[T any](c *gin.Context, dst *T) bool {
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		respondError(c, http.StatusBadRequest, "invalid_body", "request body is empty", nil)
		return false
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		respondError(c, http.StatusBadRequest, "invalid_json", "invalid payload", err.Error())
		return false
	}
	return true
}

// Stringish tolerates strings, numbers and bools, keeping the raw text.
type Stringish string

func (s *Stringish) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case string(b) == "null" || len(b) == 0:
		*s = ""
		return nil
	case len(b) >= 2 && b[0] == '"' && b[len(b)-1] == '"':
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return err
		}
		*s = Stringish(str)
		return nil
	default:
		*s = Stringish(strings.Trim(string(b), `"`))
		return nil
	}
}

func (s Stringish) String() string { return strings.TrimSpace(string(s)) }
