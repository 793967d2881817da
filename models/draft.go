package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// DraftFacts wraps Facts for JSONB persistence
type DraftFacts struct {
	Facts
}

// Value implements driver.Valuer for JSONB
func (f DraftFacts) Value() (driver.Value, error) {
	return json.Marshal(f.Facts)
}

// Scan implements sql.Scanner for JSONB
func (f *DraftFacts) Scan(value interface{}) error {
	if value == nil {
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}

	if len(bytes) == 0 {
		return nil
	}

	return json.Unmarshal(bytes, &f.Facts)
}

// Draft is one archived generation outcome. The pipeline itself is stateless;
// archiving is an audit trail and is skipped entirely when no database is
// configured.
type Draft struct {
	ID            uuid.UUID   `json:"id"`
	Language      Language    `json:"language"`
	Mode          DraftMode   `json:"mode"`
	CaseNumber    string      `json:"case_number"`
	ApplicantName string      `json:"applicant_name"`
	Facts         *DraftFacts `json:"facts,omitempty"`
	DecisionText  *string     `json:"decision_text,omitempty"`
	OrderText     *string     `json:"order_text,omitempty"`
	RawResponse   *string     `json:"raw_response,omitempty"`
	Model         string      `json:"model"`
	CreatedAt     time.Time   `json:"created_at"`
}
