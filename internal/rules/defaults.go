package rules

import "contract-analyzer/internal/domain"

var defaultLaws = []domain.LawEntry{
	{
		ID:          "mietrecht_1",
		Title:       "Mietrecht § 535 BGB",
		Description: "Basic rental law - landlord must provide the property in a usable condition",
		URL:         "https://www.gesetze-im-internet.de/bgb/__535.html",
	},
	{
		ID:          "mietrecht_2",
		Title:       "Mietrecht § 556d BGB",
		Description: "Limits on agent fees (Maklergebühren)",
		URL:         "https://www.gesetze-im-internet.de/bgb/__556d.html",
	},
	{
		ID:          "arbeitsrecht_1",
		Title:       "Arbeitsrecht § 611a BGB",
		Description: "Employment contract basics",
		URL:         "https://www.gesetze-im-internet.de/bgb/__611a.html",
	},
	{
		ID:          "arbeitsrecht_2",
		Title:       "Kündigungsschutzgesetz",
		Description: "Protection against dismissal",
		URL:         "https://www.gesetze-im-internet.de/kschg/",
	},
	{
		ID:          "steuerrecht_1",
		Title:       "Einkommensteuergesetz",
		Description: "Income tax law",
		URL:         "https://www.gesetze-im-internet.de/estg/",
	},
	{
		ID:          "agb_1",
		Title:       "AGB-Recht § 307 BGB",
		Description: "Control of standard contract terms - unfair terms are invalid",
		URL:         "https://www.gesetze-im-internet.de/bgb/__307.html",
	},
}

var defaultRiskRules = []domain.RiskRule{
	{
		Pattern:     `(kündigungsfrist|notice period|termination).{0,50}(1 tag|1 day|sofort|immediate)`,
		Risk:        domain.RiskBucketViolates,
		Explanation: "Unreasonably short termination period",
		LawRef:      "agb_1",
	},
	{
		Pattern:     `(haftung|liability).{0,50}(ausgeschlossen|excluded|keine)`,
		Risk:        domain.RiskBucketViolates,
		Explanation: "Blanket liability exclusions are typically invalid",
		LawRef:      "agb_1",
	},
	{
		Pattern:     `(kaution|deposit|security).{0,50}([4-9]|[1-9][0-9]).{0,20}(monat|month)`,
		Risk:        domain.RiskBucketViolates,
		Explanation: "Deposit exceeds legal maximum of 3 months rent",
		LawRef:      "mietrecht_1",
	},
	{
		Pattern:     `(maklergebühr|agent fee|commission).{0,50}mieter|tenant.{0,50}pay`,
		Risk:        domain.RiskBucketAttention,
		Explanation: "Tenant may not have to pay agent fees under certain circumstances",
		LawRef:      "mietrecht_2",
	},
	{
		Pattern:     `(probezeit|probation).{0,50}([7-9]|[1-9][0-9]).{0,20}(monat|month)`,
		Risk:        domain.RiskBucketViolates,
		Explanation: "Probation period exceeds legal maximum of 6 months",
		LawRef:      "arbeitsrecht_1",
	},
	{
		Pattern:     `(vertrag|contract).{0,50}(automatisch|automatically|auto).{0,50}(verlänger|renew|extend)`,
		Risk:        domain.RiskBucketAttention,
		Explanation: "Auto-renewal clause - ensure you can cancel in time",
		LawRef:      "agb_1",
	},
	{
		Pattern:     `(kündigung|cancellation).{0,50}(schriftlich|written|mail)`,
		Risk:        domain.RiskBucketSafe,
		Explanation: "Standard cancellation clause requiring written notice",
		LawRef:      "agb_1",
	},
	{
		Pattern:     `(miete|rent).{0,50}(pünktlich|on time|fällig|due)`,
		Risk:        domain.RiskBucketSafe,
		Explanation: "Standard payment terms",
		LawRef:      "mietrecht_1",
	},
}

var defaultScamRules = []domain.ScamRule{
	{
		Pattern:   `(western union|moneygram|wire transfer|überweisung ins ausland)`,
		Indicator: "Untraceable payment method requested",
		Severity:  domain.SeverityHigh,
	},
	{
		Pattern:   `(vorkasse|upfront|advance|im voraus).{0,60}(zahlung|payment|pay|deposit|kaution)`,
		Indicator: "Payment requested before viewing or signing",
		Severity:  domain.SeverityHigh,
	},
	{
		Pattern:   `(bitcoin|crypto|kryptowährung|gift card|gutscheinkarte)`,
		Indicator: "Irreversible payment channel",
		Severity:  domain.SeverityHigh,
	},
	{
		Pattern:   `(keine besichtigung|no viewing|cannot view|ohne besichtigung|currently abroad|derzeit im ausland)`,
		Indicator: "Property or counterparty cannot be inspected in person",
		Severity:  domain.SeverityMedium,
	},
	{
		Pattern:   `(sofort|immediately|urgent|dringend|heute noch).{0,60}(zahlen|pay|transfer|überweisen)`,
		Indicator: "Urgency pressure on payment",
		Severity:  domain.SeverityMedium,
	},
	{
		Pattern:   `(passport|reisepass|personalausweis|id card).{0,60}(kopie|copy|send|schicken|senden)`,
		Indicator: "Identity document copies requested up front",
		Severity:  domain.SeverityMedium,
	},
	{
		Pattern:   `(guaranteed|garantiert).{0,40}(profit|gewinn|return|rendite)`,
		Indicator: "Guaranteed-return promise",
		Severity:  domain.SeverityMedium,
	},
	{
		Pattern:   `(weit unter|far below|below market|unschlagbar|unbeatable).{0,40}(preis|price|miete|rent)`,
		Indicator: "Price implausibly below market",
		Severity:  domain.SeverityLow,
	},
	{
		Pattern:   `(whatsapp|telegram).{0,60}(kontakt|contact|weiter|continue|only)`,
		Indicator: "Pushes communication off official channels",
		Severity:  domain.SeverityLow,
	},
	{
		Pattern:   `(notar|notary|anwalt|lawyer).{0,60}(treuhand|escrow|hold|verwahrt)`,
		Indicator: "Unverifiable escrow arrangement",
		Severity:  domain.SeverityLow,
	},
}

var defaultTopics = []domain.Topic{
	{ID: "rental", Name: "Rental Law", Icon: "home"},
	{ID: "employment", Name: "Employment Law", Icon: "briefcase"},
	{ID: "subscription", Name: "Subscription Law", Icon: "file-text"},
	{ID: "tax", Name: "Tax Law", Icon: "calculator"},
}

var defaultResources = map[string]domain.TrustedResources{
	"rental": {
		Authorities: []domain.TrustedLink{
			{Name: "Tenant Protection Association (Mieterschutzbund)", URL: "https://www.mieterschutzbund.de"},
			{Name: "Berlin Tenant Advisory Service", URL: "https://www.berlin.de/sen/stadtentwicklung/wohnen/mieterschutz/"},
		},
		Alternatives: []domain.TrustedLink{
			{Name: "Safer rental listings on ImmobilienScout24", URL: "https://www.immobilienscout24.de"},
			{Name: "Fair rental contract templates", URL: "https://www.mietrecht.de/mustervertrag/"},
		},
		Report: []domain.TrustedLink{
			{Name: "Report unfair rental practices", URL: "https://www.verbraucherzentrale.de/beschwerde"},
			{Name: "File complaint with tenant association", URL: "https://www.mieterbund.de/beratung.html"},
		},
	},
	"employment": {
		Authorities: []domain.TrustedLink{
			{Name: "Federal Employment Agency (Bundesagentur für Arbeit)", URL: "https://www.arbeitsagentur.de"},
			{Name: "DGB Labor Union", URL: "https://www.dgb.de"},
		},
		Alternatives: []domain.TrustedLink{
			{Name: "Fair employment contract templates", URL: "https://www.arbeitsvertrag.org"},
			{Name: "Job search on Federal Employment Agency", URL: "https://www.arbeitsagentur.de/jobsuche/"},
		},
		Report: []domain.TrustedLink{
			{Name: "Report unfair dismissal", URL: "https://www.dgb.de/service/kontakt"},
		},
	},
	"immigration": {
		Authorities: []domain.TrustedLink{
			{Name: "Federal Office for Migration (BAMF)", URL: "https://www.bamf.de"},
			{Name: "Make Your Way in Germany", URL: "https://www.make-it-in-germany.com"},
		},
		Alternatives: []domain.TrustedLink{
			{Name: "Visa and residence permit guide", URL: "https://www.germany.info/us-en/service/visa"},
			{Name: "Integration courses", URL: "https://www.bamf.de/EN/Themen/Integration/integration_node.html"},
		},
		Report: []domain.TrustedLink{
			{Name: "Legal advice for migrants", URL: "https://www.diakonie.de/angebote-und-hilfe/migration-und-integration"},
		},
	},
	"subscription": {
		Authorities: []domain.TrustedLink{
			{Name: "Consumer Protection Center (Verbraucherzentrale)", URL: "https://www.verbraucherzentrale.de"},
		},
		Alternatives: []domain.TrustedLink{
			{Name: "Cancel subscriptions properly", URL: "https://www.verbraucherzentrale.de/wissen/vertraege-reklamation/kundenrechte/so-kuendigen-sie-richtig-6892"},
		},
		Report: []domain.TrustedLink{
			{Name: "Report subscription scams", URL: "https://www.verbraucherzentrale.de/beschwerde"},
		},
	},
	"tax": {
		Authorities: []domain.TrustedLink{
			{Name: "German Tax Office (Finanzamt)", URL: "https://www.finanzamt.de"},
			{Name: "Federal Ministry of Finance", URL: "https://www.bundesfinanzministerium.de"},
		},
		Alternatives: []domain.TrustedLink{
			{Name: "Tax declaration help (ELSTER)", URL: "https://www.elster.de"},
			{Name: "Tax calculator", URL: "https://www.bmf-steuerrechner.de"},
		},
		Report: []domain.TrustedLink{
			{Name: "Tax consultation services", URL: "https://www.finanzamt.de/beratung"},
		},
	},
	"general": {
		Authorities: []domain.TrustedLink{
			{Name: "Consumer Protection Center", URL: "https://www.verbraucherzentrale.de"},
			{Name: "German Legal Portal", URL: "https://www.gesetze-im-internet.de"},
		},
		Alternatives: []domain.TrustedLink{
			{Name: "Legal advice directory", URL: "https://www.anwaltauskunft.de"},
		},
		Report: []domain.TrustedLink{
			{Name: "General complaint portal", URL: "https://www.verbraucherzentrale.de/beschwerde"},
		},
	},
}
