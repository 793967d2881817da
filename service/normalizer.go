package service

import (
	"fmt"
	"strings"

	"zpdraft-backend/models"
)

// NormalizeCaseInput canonicalizes an arbitrary caller payload into a
// CaseRecord. Missing keys are valid input: every field defaults, nothing
// errors. Free-text fields are coerced to their trimmed string form; the
// localResidencyFlag is accepted only as a real boolean.
//
// Both the flattened shape (caseText at top level) and the nested shape
// (texts.caseText) are accepted; the nested shape wins where both appear.
func NormalizeCaseInput(payload map[string]interface{}) *models.CaseRecord {
	if payload == nil {
		payload = map[string]interface{}{}
	}

	record := &models.CaseRecord{
		Language:         normalizeLanguage(firstString(payload, "language", "lang")),
		Mode:             normalizeMode(asString(payload["mode"])),
		CaseNumber:       asString(payload["caseNumber"]),
		ApplicantName:    asString(payload["applicantName"]),
		CaseDescription:  asString(payload["caseDescription"]),
		LegalSections:    firstString(payload, "legalSections", "legalSectionsUser"),
		SelectedCaseType: asString(payload["selectedCaseType"]),
	}

	record.Texts = models.SourceTexts{
		CaseText:  asString(payload["caseText"]),
		GRText:    asString(payload["grText"]),
		LegalText: asString(payload["legalText"]),
	}
	if nested, ok := payload["texts"].(map[string]interface{}); ok {
		if v := asString(nested["caseText"]); v != "" {
			record.Texts.CaseText = v
		}
		if v := asString(nested["grText"]); v != "" {
			record.Texts.GRText = v
		}
		if v := asString(nested["legalText"]); v != "" {
			record.Texts.LegalText = v
		}
	}

	if facts, ok := payload["facts"].(map[string]interface{}); ok {
		record.Facts = normalizeFacts(facts)
	}

	return record
}

func normalizeLanguage(v string) models.Language {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "en", "english":
		return models.LanguageEnglish
	default:
		return models.LanguageMarathi
	}
}

func normalizeMode(v string) models.DraftMode {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "analyze":
		return models.ModeAnalyze
	case "decision":
		return models.ModeDecision
	default:
		return models.ModeOrder
	}
}

func normalizeFacts(raw map[string]interface{}) *models.Facts {
	facts := &models.Facts{
		Village:     asString(raw["village"]),
		Taluka:      asString(raw["taluka"]),
		HearingDate: asString(raw["hearingDate"]),
		HearingTime: asString(raw["hearingTime"]),
		Subject:     asString(raw["subject"]),
	}

	if refs, ok := raw["references"].([]interface{}); ok {
		for _, ref := range refs {
			if s := asString(ref); s != "" {
				facts.References = append(facts.References, s)
			}
		}
	}

	if grs, ok := raw["grs"].([]interface{}); ok {
		for _, gr := range grs {
			entry, ok := gr.(map[string]interface{})
			if !ok {
				continue
			}
			facts.GRs = append(facts.GRs, models.GRReference{
				Dept:   asString(entry["dept"]),
				Number: asString(entry["number"]),
				Date:   asString(entry["date"]),
				Topic:  asString(entry["topic"]),
			})
		}
	}

	if flag, ok := raw["localResidencyFlag"].(bool); ok {
		facts.LocalResidency = &flag
	}

	return facts
}

// firstString returns the coerced value of the first key present and non-empty
func firstString(payload map[string]interface{}, keys ...string) string {
	for _, key := range keys {
		if v, ok := payload[key]; ok {
			if s := asString(v); s != "" {
				return s
			}
		}
	}
	return ""
}

// asString coerces free-text values to their trimmed string form. Nil, maps
// and slices coerce to empty rather than their fmt representation.
func asString(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	case map[string]interface{}, []interface{}:
		return ""
	default:
		return strings.TrimSpace(fmt.Sprintf("%v", t))
	}
}
