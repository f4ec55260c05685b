package generation

import (
	"context"
	"strings"
)

// MockClient implements Client for tests and wiring checks.
type MockClient struct {
	CompleteFunc func(ctx context.Context, systemPrompt, userPrompt string) (string, error)
	ModelName    string
}

func (m *MockClient) CompleteWithSystem(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	if m.CompleteFunc != nil {
		return m.CompleteFunc(ctx, systemPrompt, userPrompt)
	}
	return "{}", nil
}

func (m *MockClient) Model() string {
	if m.ModelName != "" {
		return m.ModelName
	}
	return "mock-model"
}

// NewScriptedClient returns a mock that answers with a plausible canned JSON
// object per content kind, recognized from the system prompt's declared
// response shape. It lets the whole review loop run offline.
func NewScriptedClient() *MockClient {
	return &MockClient{
		ModelName: "scripted-mock",
		CompleteFunc: func(_ context.Context, systemPrompt, _ string) (string, error) {
			switch {
			case strings.Contains(systemPrompt, `"primary_claims"`):
				return `{
					"primary_claims": [{"number": 1, "description": "gedaagde te veroordelen tot betaling van de hoofdsom"}],
					"subsidiary_claims": [{"number": 2, "description": "gedaagde te veroordelen tot betaling van een in goede justitie te bepalen bedrag"}],
					"statutory_interest": "te vermeerderen met de wettelijke rente vanaf de dag der dagvaarding tot aan de dag der algehele voldoening",
					"court_costs": "met veroordeling van gedaagde in de kosten van deze procedure",
					"provisional_enforcement": {"applicable": true, "paragraph": "een en ander uitvoerbaar bij voorraad"}
				}`, nil
			case strings.Contains(systemPrompt, `"defenses"`):
				return `{
					"introduction": "Gedaagde heeft buiten rechte de volgende verweren gevoerd.",
					"defenses": [{"claim": "Gedaagde stelt dat de factuur reeds is voldaan.", "rebuttal": "Van betaling is niet gebleken; eiser heeft geen ontvangst kunnen vaststellen."}],
					"conclusion": "De verweren van gedaagde treffen geen doel."
				}`, nil
			case strings.Contains(systemPrompt, `"applicable_laws"`):
				return `{
					"applicable_laws": [{"article": "6:74 BW", "title": "Tekortkoming in de nakoming", "explanation": "Iedere tekortkoming in de nakoming verplicht tot schadevergoeding."}],
					"conclusion": "De vordering vindt steun in het recht."
				}`, nil
			case strings.Contains(systemPrompt, `"known_facts"`):
				return `{
					"introduction": "Voor de beoordeling van het geschil zijn de volgende feiten van belang.",
					"known_facts": ["Partijen hebben een overeenkomst gesloten.", "De factuur is onbetaald gebleven."]
				}`, nil
			case strings.Contains(systemPrompt, `"competence"`):
				return `{
					"competence": "De kantonrechter is bevoegd van de vordering kennis te nemen.",
					"relative_competence": "De rechtbank is relatief bevoegd nu gedaagde woonplaats heeft in dit arrondissement.",
					"conclusion": "Deze rechtbank is derhalve bevoegd."
				}`, nil
			default:
				return `{"text": "Door de capaciteit opgestelde tekst voor dit onderdeel."}`, nil
			}
		},
	}
}
