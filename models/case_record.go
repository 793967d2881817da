package models

// Language selects the drafting language for generated documents
type Language string

const (
	LanguageMarathi Language = "mr"
	LanguageEnglish Language = "en"
)

// DraftMode selects what the pipeline produces
type DraftMode string

const (
	ModeAnalyze  DraftMode = "analyze"
	ModeDecision DraftMode = "decision"
	ModeOrder    DraftMode = "order"
)

// GRReference identifies one Government Resolution cited in a case
type GRReference struct {
	Dept   string `json:"dept,omitempty"`
	Number string `json:"number,omitempty"`
	Date   string `json:"date,omitempty"`
	Topic  string `json:"topic,omitempty"`
}

// Facts holds structured facts detected in the case record, either supplied
// by the caller or produced by a prior analyze pass. The drafting layer never
// invents these values itself.
type Facts struct {
	Village        string        `json:"village,omitempty"`
	Taluka         string        `json:"taluka,omitempty"`
	HearingDate    string        `json:"hearingDate,omitempty"`
	HearingTime    string        `json:"hearingTime,omitempty"`
	Subject        string        `json:"subject,omitempty"`
	References     []string      `json:"references,omitempty"`
	GRs            []GRReference `json:"grs,omitempty"`
	LocalResidency *bool         `json:"localResidencyFlag,omitempty"`
}

// SourceTexts carries the long-form source documents for one request.
// Raw OCR/parsed text; truncated to fixed caps before prompt inclusion.
type SourceTexts struct {
	CaseText  string `json:"caseText,omitempty"`
	GRText    string `json:"grText,omitempty"`
	LegalText string `json:"legalText,omitempty"`
}

// CaseRecord is the canonical representation of one drafting request. It is
// built fresh per request and discarded after the DraftResult is produced.
type CaseRecord struct {
	Language Language  `json:"language"`
	Mode     DraftMode `json:"mode"`

	CaseNumber       string `json:"caseNumber,omitempty"`
	ApplicantName    string `json:"applicantName,omitempty"`
	CaseDescription  string `json:"caseDescription,omitempty"`
	LegalSections    string `json:"legalSections,omitempty"`
	SelectedCaseType string `json:"selectedCaseType,omitempty"`

	Facts *Facts      `json:"facts,omitempty"`
	Texts SourceTexts `json:"texts"`

	// Today is the request date formatted dd/mm/yyyy, injected by the
	// service, never caller-supplied.
	Today string `json:"-"`
}

// DraftResult is the output of one pipeline run. Exactly one of DecisionText
// and OrderText is populated for the non-analyze modes; Raw is populated only
// when structured extraction of the model output failed.
type DraftResult struct {
	Facts        *Facts  `json:"facts"`
	DecisionText *string `json:"decisionText"`
	OrderText    *string `json:"orderText"`
	Raw          *string `json:"raw"`
}

// Title returns the legacy single-string response title for a language/mode pair
func Title(lang Language, mode DraftMode) string {
	if lang == LanguageMarathi {
		if mode == ModeOrder {
			return "आदेश"
		}
		return "निर्णय"
	}
	if mode == ModeOrder {
		return "Order"
	}
	return "Decision"
}
