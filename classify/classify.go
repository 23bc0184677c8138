// Package classify suggests the hazard classification of a safety
// finding from its description and optional photo, using Gemini with a
// constrained JSON response. It only ever proposes values the form also
// offers by hand.
package classify

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/crodriguezm/sgsst/asset"
	"github.com/crodriguezm/sgsst/model"
)

const modelName = "gemini-2.0-flash-exp"

// Suggestion is the classification proposed for one finding. Keys match
// the finding fields they prefill.
type Suggestion struct {
	DangerType           string `json:"dangerType"`
	ActionImplementation string `json:"actionImplementation"`
	ActionType           string `json:"actionType"`
	RiskLevel            string `json:"riskLevel"`
}

type Service struct {
	client *genai.Client
	model  string
}

func New(ctx context.Context, apiKey string) (*Service, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, err
	}
	return &Service{client: client, model: modelName}, nil
}

func prompt(description string) string {
	return fmt.Sprintf(`Eres un experto en Seguridad y Salud en el Trabajo (SG-SST) en Colombia.
Analiza el siguiente hallazgo de inspección y clasifícalo.

Hallazgo: %q

Responde en JSON con:
- dangerType: uno de [%s]
- actionType: uno de [%s] (según la jerarquía de controles)
- riskLevel: uno de [%s]
- actionImplementation: una acción correctiva concreta, en español, máximo dos frases.`,
		description,
		strings.Join(model.DangerTypes, ", "),
		strings.Join(model.ActionTypes, ", "),
		strings.Join(model.RiskLevels, ", "),
	)
}

func responseSchema() *genai.Schema {
	enum := func(values []string) *genai.Schema {
		return &genai.Schema{Type: genai.TypeString, Enum: values}
	}
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"dangerType":           enum(model.DangerTypes),
			"actionType":           enum(model.ActionTypes),
			"riskLevel":            enum(model.RiskLevels),
			"actionImplementation": {Type: genai.TypeString},
		},
		Required: []string{"dangerType", "actionType", "riskLevel", "actionImplementation"},
	}
}

// Analyze classifies one finding. photoURI may be an empty string or a
// stored photo data URI.
func (s *Service) Analyze(ctx context.Context, description, photoURI string) (Suggestion, error) {
	parts := []*genai.Part{genai.NewPartFromText(prompt(description))}
	if photoURI != "" {
		if data, mime, err := asset.Payload(photoURI); err == nil {
			parts = append(parts, genai.NewPartFromBytes(data, mime))
		}
	}
	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}

	resp, err := s.client.Models.GenerateContent(ctx, s.model, contents, &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   responseSchema(),
	})
	if err != nil {
		return Suggestion{}, fmt.Errorf("generate content: %w", err)
	}

	var sg Suggestion
	if err := json.Unmarshal([]byte(resp.Text()), &sg); err != nil {
		return Suggestion{}, fmt.Errorf("parse suggestion: %w", err)
	}
	return sg, nil
}
