package models

// UrgencyLevel represents the urgency pressure detected in a message
type UrgencyLevel string

const (
	UrgencyLow      UrgencyLevel = "LOW"
	UrgencyMedium   UrgencyLevel = "MEDIUM"
	UrgencyHigh     UrgencyLevel = "HIGH"
	UrgencyCritical UrgencyLevel = "CRITICAL"
)

// Ordinal returns the position of the level in the severity order.
// Unknown values map to the lowest level.
func (u UrgencyLevel) Ordinal() int {
	switch u {
	case UrgencyCritical:
		return 3
	case UrgencyHigh:
		return 2
	case UrgencyMedium:
		return 1
	default:
		return 0
	}
}

// MaxUrgency returns the more severe of two urgency levels
func MaxUrgency(a, b UrgencyLevel) UrgencyLevel {
	if b.Ordinal() > a.Ordinal() {
		return b
	}
	return a
}

// Tactic represents the dominant social-engineering tactic of a message
type Tactic string

const (
	TacticFear      Tactic = "FEAR"
	TacticGreed     Tactic = "GREED"
	TacticUrgency   Tactic = "URGENCY"
	TacticAuthority Tactic = "AUTHORITY"
	TacticTrust     Tactic = "TRUST"
	TacticUnknown   Tactic = "UNKNOWN"
)

// ThreatType represents the kind of threat a scammer is leveraging
type ThreatType string

const (
	ThreatLegal        ThreatType = "LEGAL_THREAT"
	ThreatAccount      ThreatType = "ACCOUNT_THREAT"
	ThreatTimePressure ThreatType = "TIME_PRESSURE"
	ThreatFalseReward  ThreatType = "FALSE_REWARD"
	ThreatGeneric      ThreatType = "GENERIC"
)

// ScamType represents the scam category of a conversation
type ScamType string

const (
	ScamBankingFraud    ScamType = "BANKING_FRAUD"
	ScamLottery         ScamType = "LOTTERY_SCAM"
	ScamJob             ScamType = "JOB_SCAM"
	ScamTechSupport     ScamType = "TECH_SUPPORT"
	ScamParcel          ScamType = "PARCEL_SCAM"
	ScamUtility         ScamType = "UTILITY_SCAM"
	ScamInvestmentFraud ScamType = "INVESTMENT_FRAUD"
	ScamUnknown         ScamType = "UNKNOWN"
)

// SophisticationLevel represents how polished a scammer's messaging is
type SophisticationLevel string

const (
	SophisticationLow    SophisticationLevel = "LOW"
	SophisticationMedium SophisticationLevel = "MEDIUM"
	SophisticationHigh   SophisticationLevel = "HIGH"
)

// MoneyAmount is one money mention with its parsed value in rupees
type MoneyAmount struct {
	Text  string `json:"text"`
	Value int64  `json:"value"`
}

// IntelligenceRecord holds everything extracted from scammer messages.
// Field names on the wire match the reporting payload consumed downstream.
// Set-valued fields are deduplicated by canonical form and preserve
// first-seen order; they are never nil.
type IntelligenceRecord struct {
	// Contact and payment identifiers
	Emails        []string `json:"emails"`
	UPIIDs        []string `json:"upiIds"`
	PhoneNumbers  []string `json:"phoneNumbers"`
	PhishingLinks []string `json:"phishingLinks"`

	// Financial identifiers
	BankAccounts  []string      `json:"bankAccounts"`
	IFSCCodes     []string      `json:"ifscCodes"`
	CryptoWallets []string      `json:"cryptoWallets"`
	MoneyAmounts  []MoneyAmount `json:"moneyAmounts"`

	// Reference and tracking ids
	TransactionIDs []string `json:"transactionIds"`
	OrderIDs       []string `json:"orderIds"`

	// Impersonation
	BanksImpersonated       []string `json:"banksImpersonated"`
	AuthoritiesImpersonated []string `json:"authoritiesImpersonated"`
	AppsRequested           []string `json:"appsRequested"`

	// Behavioral classification
	UrgencyLevel        UrgencyLevel        `json:"urgencyLevel"`
	TacticUsed          Tactic              `json:"tacticUsed"`
	ThreatType          ThreatType          `json:"threatType"`
	ScamType            ScamType            `json:"scamType"`
	SophisticationLevel SophisticationLevel `json:"sophisticationLevel"`

	SuspiciousKeywords []string `json:"suspiciousKeywords"`
	CredibilityMarkers []string `json:"credibilityMarkers"`

	// Message metadata
	MessageLength int  `json:"messageLength"`
	HasNumbers    bool `json:"hasNumbers"`
	HasLinks      bool `json:"hasLinks"`
}

// EmptyIntelligenceRecord returns the canonical all-empty record with
// default enum values. Extraction of blank input returns exactly this.
func EmptyIntelligenceRecord() IntelligenceRecord {
	return IntelligenceRecord{
		Emails:                  []string{},
		UPIIDs:                  []string{},
		PhoneNumbers:            []string{},
		PhishingLinks:           []string{},
		BankAccounts:            []string{},
		IFSCCodes:               []string{},
		CryptoWallets:           []string{},
		MoneyAmounts:            []MoneyAmount{},
		TransactionIDs:          []string{},
		OrderIDs:                []string{},
		BanksImpersonated:       []string{},
		AuthoritiesImpersonated: []string{},
		AppsRequested:           []string{},
		UrgencyLevel:            UrgencyLow,
		TacticUsed:              TacticUnknown,
		ThreatType:              ThreatGeneric,
		ScamType:                ScamUnknown,
		SophisticationLevel:     SophisticationLow,
		SuspiciousKeywords:      []string{},
		CredibilityMarkers:      []string{},
	}
}

// RiskLevel represents the severity tier of a risk assessment
type RiskLevel string

const (
	RiskLow    RiskLevel = "LOW"
	RiskMedium RiskLevel = "MEDIUM"
	RiskHigh   RiskLevel = "HIGH"
)

// RiskAssessment is the result of scoring an intelligence record
type RiskAssessment struct {
	Score   int       `json:"score"`
	Level   RiskLevel `json:"level"`
	Factors []string  `json:"factors"`
}

// HasCriticalIdentifiers reports whether the record captured at least one
// actionable contact or financial identifier
func (r *IntelligenceRecord) HasCriticalIdentifiers() bool {
	return len(r.UPIIDs) > 0 ||
		len(r.PhoneNumbers) > 0 ||
		len(r.Emails) > 0 ||
		len(r.PhishingLinks) > 0 ||
		len(r.BankAccounts) > 0 ||
		len(r.IFSCCodes) > 0 ||
		len(r.CryptoWallets) > 0
}

// ContactCount returns the number of direct contact identifiers captured
func (r *IntelligenceRecord) ContactCount() int {
	return len(r.UPIIDs) + len(r.PhoneNumbers) + len(r.Emails)
}
