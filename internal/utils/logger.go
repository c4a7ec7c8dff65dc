package utils

import (
	"log"
	"strings"
)

// LogEvent prints one standardized line per domain event. Messages carry ids
// and amounts only; never payer details or gateway signatures.
func LogEvent(requestID, module, action, message string) {
	req := strings.TrimSpace(requestID)
	if req == "" {
		req = "-"
	}
	log.Printf("[%s] action=%s request_id=%s msg=%s", strings.ToUpper(module), action, req, message)
}
