package validation

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Messages maps a field name, or "Field.tag" for per-rule overrides, to the
// localized message returned to the client.
type Messages map[string]string

// FirstError resolves a gin binding error into the first failing field's
// localized message. Validation stops at the first schema error, matching the
// API contract.
func FirstError(err error, messages Messages) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		if msg, ok := messages[fe.Field()+"."+fe.Tag()]; ok {
			return msg
		}
		if msg, ok := messages[fe.Field()]; ok {
			return msg
		}
		return fmt.Sprintf("Champ invalide: %s", fe.Field())
	}

	// Malformed JSON, type mismatches and empty bodies land here.
	return "Requête invalide"
}
