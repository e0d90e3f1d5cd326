package services

import (
	"fmt"
	"regexp"

	"honeypot-lab/internal/domain/models"
)

// PatternConfig is the declarative rule set the engine runs on. It is
// versioned configuration, not code: swapping in a new config must never
// require touching extraction logic. All rule fields are uncompiled
// regular expressions validated by NewPatternLibrary.
type PatternConfig struct {
	Version string

	// Entity rules
	PhonePattern       string
	BankAccountPattern string
	UPIPattern         string // loose local@handle form
	UPIDottedPattern   string // strict dotted-name form, unioned with the loose form
	EmailPattern       string
	URLPattern         string
	IFSCPattern        string
	CryptoPattern      string
	TransactionPattern string // label+value form, value in capture group 1
	OrderPattern       string // label+value form, value in capture group 1
	MoneyPattern       string // amount in group 1, scale word in group 2

	// Derived-flag rules
	CredentialRequestPattern string
	LinkPattern              string
	NumberPattern            string

	// Classifier rules
	ThreatRules          []ThreatRule // evaluated in order, first match wins
	ScamRules            []ScamRule   // evaluated in order, first match wins
	AuthorityPhrase      string
	ReferencePhrase      string
	SalutationTokens     []string // matched case-sensitively
	CredibilityRules     []CredibilityRule
	SuspiciousURLTokens  []string
	UrgencyKeywords      []string
	TacticCategories     []TacticCategory // declaration order breaks ties
	SuspiciousKeywords   []string
	URLShorteners        []string
	SuspiciousTLDs       []string
	LegitimateDomains    []string
	PublicEmailProviders []string
	Banks                []string
	Authorities          []string
	Apps                 []string
}

// ThreatRule maps a keyword-group predicate to a threat category
type ThreatRule struct {
	Type    models.ThreatType
	Pattern string
}

// ScamRule maps a keyword-group predicate to a scam category
type ScamRule struct {
	Type    models.ScamType
	Pattern string
}

// CredibilityRule maps a phrasing predicate to a credibility marker flag
type CredibilityRule struct {
	Marker  string
	Pattern string
}

// TacticCategory is one social-engineering tactic with its keyword taxonomy
type TacticCategory struct {
	Tactic   models.Tactic
	Keywords []string
}

// PatternLibrary is a compiled, validated PatternConfig. A malformed rule
// is a configuration defect, so compilation happens once at startup and
// failure is fatal there rather than handled at extraction time.
type PatternLibrary struct {
	Version string

	Phone       *regexp.Regexp
	BankAccount *regexp.Regexp
	UPI         *regexp.Regexp
	UPIDotted   *regexp.Regexp
	Email       *regexp.Regexp
	URL         *regexp.Regexp
	IFSC        *regexp.Regexp
	Crypto      *regexp.Regexp
	Transaction *regexp.Regexp
	Order       *regexp.Regexp
	Money       *regexp.Regexp

	CredentialRequest *regexp.Regexp
	Link              *regexp.Regexp
	Number            *regexp.Regexp

	AuthorityPhrase *regexp.Regexp
	ReferencePhrase *regexp.Regexp

	ThreatRules      []compiledThreatRule
	ScamRules        []compiledScamRule
	CredibilityRules []compiledCredibilityRule

	SalutationTokens     []string
	SuspiciousURLTokens  []string
	UrgencyKeywords      []string
	TacticCategories     []TacticCategory
	SuspiciousKeywords   []string
	URLShorteners        []string
	SuspiciousTLDs       []string
	LegitimateDomains    []string
	PublicEmailProviders []string
	Banks                []string
	Authorities          []string
	Apps                 []string
}

type compiledThreatRule struct {
	Type models.ThreatType
	Rule *regexp.Regexp
}

type compiledScamRule struct {
	Type models.ScamType
	Rule *regexp.Regexp
}

type compiledCredibilityRule struct {
	Marker string
	Rule   *regexp.Regexp
}

// NewPatternLibrary compiles and validates a pattern config
func NewPatternLibrary(cfg PatternConfig) (*PatternLibrary, error) {
	lib := &PatternLibrary{
		Version:              cfg.Version,
		SalutationTokens:     cfg.SalutationTokens,
		SuspiciousURLTokens:  cfg.SuspiciousURLTokens,
		UrgencyKeywords:      cfg.UrgencyKeywords,
		TacticCategories:     cfg.TacticCategories,
		SuspiciousKeywords:   cfg.SuspiciousKeywords,
		URLShorteners:        cfg.URLShorteners,
		SuspiciousTLDs:       cfg.SuspiciousTLDs,
		LegitimateDomains:    cfg.LegitimateDomains,
		PublicEmailProviders: cfg.PublicEmailProviders,
		Banks:                cfg.Banks,
		Authorities:          cfg.Authorities,
		Apps:                 cfg.Apps,
	}

	var err error
	compile := func(name, pattern string) *regexp.Regexp {
		if err != nil {
			return nil
		}
		re, cerr := regexp.Compile(pattern)
		if cerr != nil {
			err = fmt.Errorf("invalid %s pattern %q: %w", name, pattern, cerr)
			return nil
		}
		return re
	}

	lib.Phone = compile("phone", cfg.PhonePattern)
	lib.BankAccount = compile("bank_account", cfg.BankAccountPattern)
	lib.UPI = compile("upi", cfg.UPIPattern)
	lib.UPIDotted = compile("upi_dotted", cfg.UPIDottedPattern)
	lib.Email = compile("email", cfg.EmailPattern)
	lib.URL = compile("url", cfg.URLPattern)
	lib.IFSC = compile("ifsc", cfg.IFSCPattern)
	lib.Crypto = compile("crypto", cfg.CryptoPattern)
	lib.Transaction = compile("transaction", cfg.TransactionPattern)
	lib.Order = compile("order", cfg.OrderPattern)
	lib.Money = compile("money", cfg.MoneyPattern)
	lib.CredentialRequest = compile("credential_request", cfg.CredentialRequestPattern)
	lib.Link = compile("link", cfg.LinkPattern)
	lib.Number = compile("number", cfg.NumberPattern)
	lib.AuthorityPhrase = compile("authority_phrase", cfg.AuthorityPhrase)
	lib.ReferencePhrase = compile("reference_phrase", cfg.ReferencePhrase)

	for _, rule := range cfg.ThreatRules {
		re := compile("threat:"+string(rule.Type), rule.Pattern)
		lib.ThreatRules = append(lib.ThreatRules, compiledThreatRule{Type: rule.Type, Rule: re})
	}
	for _, rule := range cfg.ScamRules {
		re := compile("scam:"+string(rule.Type), rule.Pattern)
		lib.ScamRules = append(lib.ScamRules, compiledScamRule{Type: rule.Type, Rule: re})
	}
	for _, rule := range cfg.CredibilityRules {
		re := compile("credibility:"+rule.Marker, rule.Pattern)
		lib.CredibilityRules = append(lib.CredibilityRules, compiledCredibilityRule{Marker: rule.Marker, Rule: re})
	}

	if err != nil {
		return nil, err
	}
	return lib, nil
}

// MustPatternLibrary compiles a config and panics on error (for tests)
func MustPatternLibrary(cfg PatternConfig) *PatternLibrary {
	lib, err := NewPatternLibrary(cfg)
	if err != nil {
		panic(err)
	}
	return lib
}

// DefaultPatternConfig returns the built-in rule set, tuned for
// Indian-market scam traffic.
func DefaultPatternConfig() PatternConfig {
	return PatternConfig{
		Version: "2025.1",

		// Indian mobile numbers: 10 digits starting 6-9, with optional
		// +91 / 0 prefix. Handles 9876543210, +91 9876543210, 09876543210.
		PhonePattern: `(?:\+91[\s-]?|0)?[6-9]\d{9}\b`,

		// Indian bank accounts are 9-18 digits
		BankAccountPattern: `\b\d{9,18}\b`,

		// UPI: local@handle where the handle is a bare bank alias (no TLD)
		UPIPattern:       `\b[a-zA-Z0-9._-]{2,256}@[a-zA-Z]{2,64}\b`,
		UPIDottedPattern: `\b[a-zA-Z][a-zA-Z0-9]*(?:\.[a-zA-Z][a-zA-Z0-9]*)+@[a-zA-Z]{2,}\b`,

		EmailPattern: `\b[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}\b`,

		URLPattern: `(?i)(?:https?://)?(?:www\.)?[a-zA-Z0-9][\w\-]*(?:\.[a-zA-Z]{2,})+(?:/[^\s]*)?`,

		IFSCPattern:   `\b[A-Z]{4}0[A-Z0-9]{6}\b`,
		CryptoPattern: `\b(?:bc1|0x|3)[a-zA-Z0-9]{25,42}\b`,

		TransactionPattern: `(?i)(?:txn|transaction|ref|reference|id|ticket|case)[\s:]*([A-Z0-9]{6,20})`,
		OrderPattern:       `(?i)(?:order|invoice|bill)[\s#:]*([A-Z0-9]{6,15})`,

		MoneyPattern: `(?i)(?:rs\.?|₹|inr)?\s*(\d{1,3}(?:,\d{3})*|\d+)(?:\s*(lakh|crore|thousand|hundred))?`,

		CredentialRequestPattern: `(?i)(?:share|send|enter|provide|give).*(?:otp|password|pin|cvv)`,
		LinkPattern:              `https?://`,
		NumberPattern:            `\d`,

		ThreatRules: []ThreatRule{
			{Type: models.ThreatLegal, Pattern: `arrest|warrant|police|jail|court`},
			{Type: models.ThreatAccount, Pattern: `block|suspend|freeze|close`},
			{Type: models.ThreatTimePressure, Pattern: `expire|deadline|last chance`},
			{Type: models.ThreatFalseReward, Pattern: `won|prize|reward|lottery`},
		},

		ScamRules: []ScamRule{
			{Type: models.ScamBankingFraud, Pattern: `kyc|aadhar|pan|bank|account`},
			{Type: models.ScamLottery, Pattern: `lottery|won|prize|gift`},
			{Type: models.ScamJob, Pattern: `job|work from home|part time`},
			{Type: models.ScamTechSupport, Pattern: `teamviewer|anydesk|remote`},
			{Type: models.ScamParcel, Pattern: `parcel|customs|courier`},
			{Type: models.ScamUtility, Pattern: `electricity|gas|water|bill`},
			{Type: models.ScamInvestmentFraud, Pattern: `investment|trading|crypto`},
		},

		AuthorityPhrase:  `official|government|department|authority`,
		ReferencePhrase:  `case|ticket|reference|transaction`,
		SalutationTokens: []string{"Dear", "Sir", "Madam"},

		CredibilityRules: []CredibilityRule{
			{Marker: "FAKE_CREDENTIALS", Pattern: `employee id|officer name|badge number`},
			{Marker: "AUTHORITY_CLAIM", Pattern: `official website|government portal`},
			{Marker: "REFERENCE_NUMBER", Pattern: `case number|complaint id|ticket`},
			{Marker: "TIME_PRESSURE", Pattern: `within \d+ hours|today|immediately`},
		},

		SuspiciousURLTokens: []string{"secure", "verify", "login", "account"},

		UrgencyKeywords: []string{
			"urgent", "immediately", "right now", "within 24 hours", "today only",
			"last chance", "final warning", "expire", "block", "suspend", "freeze",
			"arrest warrant", "legal action", "court case", "fine", "penalty",
		},

		TacticCategories: []TacticCategory{
			{Tactic: models.TacticFear, Keywords: []string{"arrest", "warrant", "police", "jail", "court", "illegal", "fraud case"}},
			{Tactic: models.TacticGreed, Keywords: []string{"won", "prize", "lottery", "reward", "cashback", "bonus", "offer"}},
			{Tactic: models.TacticUrgency, Keywords: []string{"immediately", "urgent", "expire", "last chance", "within"}},
			{Tactic: models.TacticAuthority, Keywords: []string{"officer", "government", "official", "department", "ministry"}},
			{Tactic: models.TacticTrust, Keywords: []string{"verify", "confirm", "update", "kyc", "secure", "protect"}},
		},

		SuspiciousKeywords: defaultSuspiciousKeywords(),

		URLShorteners: []string{
			"bit.ly", "tinyurl.com", "t.co", "goo.gl", "ow.ly",
			"buff.ly", "rebrand.ly", "cutt.ly", "is.gd", "short.io",
			"tiny.cc", "cli.gs", "pic.gd", "migre.me", "ff.im",
			"tiny.pl", "url4.eu", "tr.im", "twit.ac", "su.pr",
			"twurl.nl", "snipurl.com", "short.to", "ping.fm",
			"post.ly", "bkite.com", "snipr.com", "fic.kr",
			"loopt.us", "doiop.com", "twitthis.com", "htxt.it",
			"short.ie", "kl.am", "wp.me", "rubyurl.com",
			"to.ly", "bit.do", "lnkd.in", "db.tt", "qr.ae",
			"adf.ly", "cur.lv", "ity.im", "q.gs", "v.gd",
		},

		SuspiciousTLDs: []string{
			".tk", ".ml", ".ga", ".cf", ".gq",
			".click", ".link", ".download", ".loan", ".racing",
			".stream", ".trade", ".webcam", ".win", ".zip",
			".top", ".buzz", ".club", ".work", ".online",
		},

		LegitimateDomains: []string{
			"sbi.co.in", "onlinesbi.com", "hdfcbank.com", "icicibank.com",
			"axisbank.com", "kotakbank.com", "yesbank.in", "pnbindia.in",
			"bankofbaroda.in", "canarabank.com", "unionbankofindia.co.in",
			"indianbank.in", "bankofindia.co.in", "boi.co.in",
			"paytm.com", "phonepe.com", "googlepay.com", "amazon.in",
		},

		PublicEmailProviders: []string{
			"gmail", "yahoo", "hotmail", "outlook", "mail", "protonmail",
		},

		Banks: []string{
			"sbi", "hdfc", "icici", "axis", "kotak", "pnb", "canara", "bob",
			"union bank", "indian bank", "idbi", "yes bank", "indusind",
		},

		Authorities: []string{
			"police", "cyber cell", "cyber crime", "cbi", "ed", "income tax",
			"rbi", "sebi", "customs", "narcotics", "enforcement directorate",
			"supreme court", "high court", "magistrate", "judge", "microsoft",
		},

		Apps: []string{
			"teamviewer", "anydesk", "quicksupport", "remotely", "supremo",
			"chrome remote", "ammyy", "ultraviewer", "rustdesk",
			"paytm", "phonepe", "gpay", "google pay", "bhim", "whatsapp pay",
		},
	}
}

// defaultSuspiciousKeywords is the full threat-intelligence keyword
// taxonomy. Grouped by theme; matched by case-insensitive containment.
func defaultSuspiciousKeywords() []string {
	return []string{
		// Urgency and time pressure
		"urgent", "immediately", "within 24 hours", "within 48 hours",
		"action required", "respond now", "act now", "time sensitive",
		"last warning", "final notice", "expire", "expires today",
		"limited time", "hurry", "quick", "fast", "asap",

		// Verification and account threats
		"verify now", "verify your account", "verification required",
		"confirm your identity", "re-verify", "update required",
		"account suspended", "account blocked", "account locked",
		"account deactivated", "account terminated", "unauthorized activity",
		"unusual activity", "suspicious activity", "security alert",
		"kyc expired", "kyc pending", "kyc verification",

		// Financial threats
		"payment pending", "payment failed", "transaction failed",
		"pay now", "pay immediately", "transfer now", "transfer funds",
		"refund pending", "refund available", "tax refund",
		"prize money", "lottery", "winner", "congratulations",
		"cashback", "bonus", "reward", "claim now",
		"registration fee", "processing fee", "activation fee",
		"penalty", "fine", "overdue", "outstanding balance",

		// Banking and UPI specific
		"unlinked", "link expired", "manual sync", "re-link",
		"upi blocked", "upi deactivated", "pension credit",
		"mandate", "rbi mandate", "regulatory block", "compliance",
		"aadhar", "aadhaar", "pan card", "kyc documents",

		// Authority impersonation
		"official", "government", "income tax", "irs", "tax authority",
		"police", "cyber crime", "legal action", "court notice",
		"arrest warrant", "case filed", "fir", "investigation",
		"rbi", "reserve bank", "sebi", "uidai",

		// Tech support scams
		"anydesk", "teamviewer", "remote access", "screen share",
		"download app", "install app", "apk file", "update app",
		"tech support", "customer care", "helpline",
		"quick support", "instant help",

		// Credential theft
		"otp", "one time password", "verification code",
		"share otp", "send otp", "enter otp", "confirm otp",
		"password", "pin", "cvv", "card details",
		"banking details", "account details", "personal information",

		// Modern threats
		"ai verification", "biometric update", "face verification",
		"whatsapp verification", "telegram verification",
		"nft", "crypto", "bitcoin", "investment opportunity",
		"trading bot", "forex", "stock tips",
		"zoom meeting", "google meet", "online interview",
		"work from home", "job offer", "recruitment",
		"package delivery", "courier", "redelivery fee",
		"customs clearance", "import duty",
		"click here", "tap here", "swipe up", "link in bio",
		"exclusive offer", "limited seats", "vip access",
		"free gift", "free trial", "risk free",

		// Brand impersonation
		"amazon", "flipkart", "paytm", "phonepe", "google pay",
		"gpay", "netflix", "prime video", "hotstar",
		"tata", "reliance", "airtel", "jio", "vodafone",
		"sbi", "hdfc", "icici", "axis", "kotak",
		"income tax department", "gst portal", "epfo",

		// Social engineering
		"help needed", "family emergency", "medical emergency",
		"accident", "hospital", "medicine",
		"you won", "selected", "eligible",
		"claim your", "redeem now", "activate now",
		"don't ignore", "important", "confidential",
	}
}

// Derived suspicious-keyword flags appended by the extractor alongside
// taxonomy hits
const (
	FlagURLShortener      = "url_shortener_detected"
	FlagSuspiciousTLD     = "suspicious_tld_detected"
	FlagSuspiciousURL     = "suspicious_url_pattern"
	FlagMultiplePhones    = "multiple_phone_numbers"
	FlagCredentialRequest = "credential_request_detected"
)
