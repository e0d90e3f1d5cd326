package services

import (
	"regexp"
	"strings"

	"honeypot-lab/internal/config"
	"honeypot-lab/internal/domain/models"
	"honeypot-lab/pkg/logger"
)

// Extractor turns one raw scammer message into a structured intelligence
// record: contact and financial identifiers, impersonation signals,
// keyword hits, and the behavioral classification. Extraction is pure and
// deterministic; the same text always yields the same record.
type Extractor struct {
	patterns   *PatternLibrary
	classifier *Classifier
	normalizer *Normalizer
	cfg        config.EngineConfig
	log        *logger.Logger
}

// NewExtractor creates an extractor over a compiled pattern library
func NewExtractor(patterns *PatternLibrary, cfg config.EngineConfig, log *logger.Logger) *Extractor {
	return &Extractor{
		patterns:   patterns,
		classifier: NewClassifier(patterns),
		normalizer: NewNormalizer(cfg.CountryCodePrefix),
		cfg:        cfg,
		log:        log.WithComponent("extractor"),
	}
}

// Extract analyzes a single message. Blank input returns the canonical
// empty record.
func (e *Extractor) Extract(text string) models.IntelligenceRecord {
	if strings.TrimSpace(text) == "" {
		return models.EmptyIntelligenceRecord()
	}
	if e.cfg.MaxInputLength > 0 && len(text) > e.cfg.MaxInputLength {
		text = text[:e.cfg.MaxInputLength]
	}

	lower := strings.ToLower(text)
	record := models.EmptyIntelligenceRecord()

	phones := e.extractPhones(text)
	emails := e.extractEmails(text)
	links := e.extractLinks(text)

	record.PhoneNumbers = phones.Values()
	record.Emails = emails.Values()
	record.PhishingLinks = links.Values()
	record.UPIIDs = e.extractUPIIDs(text, emails)
	record.BankAccounts = e.extractBankAccounts(text, phones)
	record.IFSCCodes = findAllUnique(e.patterns.IFSC, text)
	record.CryptoWallets = findAllUnique(e.patterns.Crypto, text)
	record.TransactionIDs = findAllGroupUnique(e.patterns.Transaction, text)
	record.OrderIDs = findAllGroupUnique(e.patterns.Order, text)
	record.MoneyAmounts = e.extractMoneyAmounts(text)

	record.BanksImpersonated = matchTaxonomy(lower, e.patterns.Banks)
	record.AuthoritiesImpersonated = matchTaxonomy(lower, e.patterns.Authorities)
	record.AppsRequested = matchTaxonomy(lower, e.patterns.Apps)

	record.SuspiciousKeywords = e.collectSuspiciousKeywords(lower, record)

	cls := e.classifier.Classify(text)
	record.UrgencyLevel = cls.Urgency
	record.TacticUsed = cls.Tactic
	record.ThreatType = cls.Threat
	record.ScamType = cls.Scam
	record.SophisticationLevel = cls.Sophistication
	record.CredibilityMarkers = cls.CredibilityMarkers

	record.MessageLength = len([]rune(text))
	record.HasNumbers = e.patterns.Number.MatchString(text)
	record.HasLinks = e.patterns.Link.MatchString(text)

	e.log.Debug().
		Int("phones", len(record.PhoneNumbers)).
		Int("upi_ids", len(record.UPIIDs)).
		Int("links", len(record.PhishingLinks)).
		Int("keywords", len(record.SuspiciousKeywords)).
		Str("scam_type", string(record.ScamType)).
		Msg("message analyzed")

	return record
}

func (e *Extractor) extractPhones(text string) *orderedSet {
	phones := newOrderedSet()
	for _, m := range e.patterns.Phone.FindAllString(text, -1) {
		if normalized, ok := e.normalizer.NormalizePhone(m); ok {
			phones.Add(normalized)
		}
	}
	return phones
}

func (e *Extractor) extractEmails(text string) *orderedSet {
	emails := newOrderedSet()
	for _, m := range e.patterns.Email.FindAllString(text, -1) {
		emails.Add(strings.ToLower(m))
	}
	return emails
}

// extractUPIIDs unions the loose and dotted UPI patterns, then drops
// candidates that are really email addresses: exact email matches and
// handles belonging to public mail providers
func (e *Extractor) extractUPIIDs(text string, emails *orderedSet) []string {
	upis := newOrderedSet()
	candidates := e.patterns.UPI.FindAllString(text, -1)
	candidates = append(candidates, e.patterns.UPIDotted.FindAllString(text, -1)...)

	for _, m := range candidates {
		candidate := strings.ToLower(m)
		if emails.Has(candidate) {
			continue
		}
		if e.isPublicMailHandle(candidate) {
			continue
		}
		upis.Add(candidate)
	}
	return upis.Values()
}

func (e *Extractor) isPublicMailHandle(upi string) bool {
	at := strings.LastIndex(upi, "@")
	if at < 0 {
		return false
	}
	handle := upi[at+1:]
	for _, provider := range e.patterns.PublicEmailProviders {
		if strings.HasPrefix(handle, provider) || strings.Contains(handle, provider) {
			return true
		}
	}
	return false
}

// extractBankAccounts drops digit runs that are too short to be an
// account number or that are really phone numbers in disguise
func (e *Extractor) extractBankAccounts(text string, phones *orderedSet) []string {
	accounts := newOrderedSet()
	for _, m := range e.patterns.BankAccount.FindAllString(text, -1) {
		if len(m) < e.cfg.MinBankAccountDigits {
			continue
		}
		if normalized, ok := e.normalizer.NormalizePhone(m); ok && phones.Has(normalized) {
			continue
		}
		accounts.Add(m)
	}
	return accounts.Values()
}

// extractLinks filters URL matches that are actually email addresses and
// links to domains on the legitimate-banking allowlist. URLs keep their
// original casing; only the allowlist check is case-insensitive.
func (e *Extractor) extractLinks(text string) *orderedSet {
	links := newOrderedSet()
	for _, m := range e.patterns.URL.FindAllString(text, -1) {
		if strings.Contains(m, "@") {
			continue
		}
		if e.isLegitimateDomain(strings.ToLower(m)) {
			continue
		}
		links.Add(m)
	}
	return links
}

func (e *Extractor) isLegitimateDomain(link string) bool {
	for _, domain := range e.patterns.LegitimateDomains {
		if strings.Contains(link, domain) {
			return true
		}
	}
	return false
}

// extractMoneyAmounts keeps every mention, duplicates included; a demand
// repeated across the message is itself pressure signal
func (e *Extractor) extractMoneyAmounts(text string) []models.MoneyAmount {
	amounts := []models.MoneyAmount{}
	for _, m := range e.patterns.Money.FindAllStringSubmatch(text, -1) {
		if amount, ok := ParseMoney(m[0], m[1], m[2]); ok {
			amounts = append(amounts, amount)
		}
	}
	return amounts
}

// collectSuspiciousKeywords gathers taxonomy hits plus the derived flags
// computed from already-extracted identifiers
func (e *Extractor) collectSuspiciousKeywords(lower string, record models.IntelligenceRecord) []string {
	keywords := newOrderedSet()
	for _, kw := range e.patterns.SuspiciousKeywords {
		if strings.Contains(lower, kw) {
			keywords.Add(kw)
		}
	}

	if e.linksContainAny(record.PhishingLinks, e.patterns.URLShorteners) {
		keywords.Add(FlagURLShortener)
	}
	if e.linksEndWithAny(record.PhishingLinks, e.patterns.SuspiciousTLDs) {
		keywords.Add(FlagSuspiciousTLD)
	}
	if e.linksContainAny(record.PhishingLinks, e.patterns.SuspiciousURLTokens) {
		keywords.Add(FlagSuspiciousURL)
	}
	if len(record.PhoneNumbers) > 2 {
		keywords.Add(FlagMultiplePhones)
	}
	if e.patterns.CredentialRequest.MatchString(lower) {
		keywords.Add(FlagCredentialRequest)
	}

	return keywords.Values()
}

func (e *Extractor) linksContainAny(links, needles []string) bool {
	for _, link := range links {
		lowered := strings.ToLower(link)
		for _, needle := range needles {
			if strings.Contains(lowered, needle) {
				return true
			}
		}
	}
	return false
}

func (e *Extractor) linksEndWithAny(links, suffixes []string) bool {
	for _, link := range links {
		lowered := strings.ToLower(link)
		for _, suffix := range suffixes {
			if strings.HasSuffix(lowered, suffix) {
				return true
			}
		}
	}
	return false
}

func matchTaxonomy(lower string, terms []string) []string {
	hits := newOrderedSet()
	for _, term := range terms {
		if strings.Contains(lower, term) {
			hits.Add(term)
		}
	}
	return hits.Values()
}

func findAllUnique(re *regexp.Regexp, text string) []string {
	out := newOrderedSet()
	for _, m := range re.FindAllString(text, -1) {
		out.Add(m)
	}
	return out.Values()
}

func findAllGroupUnique(re *regexp.Regexp, text string) []string {
	out := newOrderedSet()
	for _, m := range re.FindAllStringSubmatch(text, -1) {
		if len(m) > 1 && m[1] != "" {
			out.Add(m[1])
		}
	}
	return out.Values()
}
