package models

import "github.com/google/uuid"

// ensureID assigns a fresh UUID when the primary key is still zero. IDs are
// generated client-side so the same models work on dialects without
// gen_random_uuid().
func ensureID(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
}
