package utils

import (
	"log"
	"strings"
)

// LogEvent prints standardized log line with module/action/request_id.
// Passenger details stay out of the message; pass ids and counts only.
func LogEvent(requestID, module, action, message string) {
	req := strings.TrimSpace(requestID)
	if req == "" {
		req = "-"
	}
	log.Printf("[%s] action=%s request_id=%s msg=%s", strings.ToUpper(module), action, req, message)
}
