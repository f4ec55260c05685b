package template

import (
	"dagdraft/internal/types"
)

// defaultNoticeText is the fixed aanzegging: statutory warnings to the
// defendant. It is never generated; sections of the notice kind carry it
// verbatim and are born approved.
const defaultNoticeText = `Gedaagde wordt aangezegd dat:

a. indien gedaagde niet op de eerstdienende dag in het geding verschijnt, en de voorgeschreven termijnen en formaliteiten in acht zijn genomen, de rechter verstek zal verlenen en de vordering zal toewijzen, tenzij deze hem onrechtmatig of ongegrond voorkomt;

b. bij verschijning in het geding een griffierecht zal worden geheven, te voldoen binnen vier weken te rekenen vanaf het tijdstip van verschijning;

c. van een persoon die onvermogend is, een bij of krachtens de wet vastgesteld griffierecht voor onvermogenden wordt geheven, indien hij op het tijdstip waarop het griffierecht wordt geheven de daartoe vereiste verklaring heeft overgelegd.`

// defaultBody carries both placeholder families: user-field placeholders in
// square brackets, section placeholders in double braces keyed by section
// key.
const defaultBody = `DAGVAARDING

Heden, [datum], op verzoek van [naam eiser], wonende dan wel gevestigd te [woonplaats eiser], te dezer zake woonplaats kiezende te [kantoor adres] ten kantore van [naam gemachtigde],

HEB IK, [naam deurwaarder], gerechtsdeurwaarder met vestigingsplaats [vestigingsplaats deurwaarder],

GEDAGVAARD:

[naam gedaagde], wonende dan wel gevestigd te [woonplaats gedaagde],

OM te verschijnen op [zittingsdatum] ter terechtzitting van de rechtbank [naam rechtbank],

AANZEGGING

{{AANZEGGING}}

BEVOEGDHEID

{{BEVOEGDHEID}}

FEITEN

{{FEITEN}}

JURIDISCHE GRONDSLAG

{{GRONDSLAG}}

VERWEER VAN GEDAAGDE

{{VERWEER}}

MITSDIEN

{{VORDERING}}

De kosten dezes zijn voor mij, deurwaarder, [explootkosten].`

// DefaultTemplate returns the built-in basic summons template. It is always
// registered so the engine works out of the box with an empty template
// directory.
func DefaultTemplate() *types.Template {
	return &types.Template{
		ID:      "dagvaarding-basis",
		Version: "1",
		Name:    "Dagvaarding (basis)",
		Sections: []types.SectionDefinition{
			{
				Key: "AANZEGGING", Name: "Aanzegging", StepOrder: 1,
				Kind: types.KindNotice, FixedText: defaultNoticeText,
			},
			{
				Key: "BEVOEGDHEID", Name: "Bevoegdheid", StepOrder: 2,
				Kind:                    types.KindJurisdiction,
				GenerationCapabilityRef: "bevoegdheid-v1",
			},
			{
				Key: "FEITEN", Name: "Feiten", StepOrder: 3,
				Kind:                    types.KindFacts,
				GenerationCapabilityRef: "feiten-v1",
			},
			{
				Key: "GRONDSLAG", Name: "Juridische grondslag", StepOrder: 4,
				Kind:                    types.KindLegalGrounds,
				GenerationCapabilityRef: "grondslag-v1",
			},
			{
				Key: "VERWEER", Name: "Verweer van gedaagde", StepOrder: 5,
				Kind:                    types.KindDefenses,
				GenerationCapabilityRef: "verweer-v1",
				FeedbackCapabilityRef:   "verweer-feedback-v1",
			},
			{
				Key: "VORDERING", Name: "Vordering", StepOrder: 6,
				Kind:                    types.KindClaims,
				GenerationCapabilityRef: "vordering-v1",
			},
		},
		Body: defaultBody,
	}
}
