package smarthire

import (
	"fmt"

	"github.com/smarthire/smarthire-cli/internal/match"

	"github.com/mitchellh/mapstructure"
)

// The backend mixes shapes depending on which indexer produced the document:
// job ids arrive as id, job_id or id_offre, cv fields come in French or
// English. Aliases are folded into one canonical shape here, at the gateway
// boundary, so core code never sees the variance.
var fieldAliases = map[string][]string{
	"id":         {"id", "cv_id", "job_id", "id_offre"},
	"name":       {"name", "nom"},
	"title":      {"title", "titre", "titre_profil"},
	"company":    {"company", "entreprise"},
	"location":   {"location", "localisation"},
	"experience": {"experience", "annees_experience"},
	"skills":     {"skills", "competences"},
	"summary":    {"cvSummary", "texte_preview", "description"},
	"posted":     {"posted", "postedDate", "date_publication"},
	"remote":     {"remote"},
}

type itemPayload struct {
	ID         string   `mapstructure:"id"`
	Name       string   `mapstructure:"name"`
	Title      string   `mapstructure:"title"`
	Company    string   `mapstructure:"company"`
	Location   string   `mapstructure:"location"`
	Remote     bool     `mapstructure:"remote"`
	Experience int      `mapstructure:"experience"`
	Skills     []string `mapstructure:"skills"`
	Summary    string   `mapstructure:"summary"`
	Posted     string   `mapstructure:"posted"`
}

func normalizeItem(target match.Target, raw map[string]any) (match.Item, error) {
	canonical := make(map[string]any, len(fieldAliases))
	for field, aliases := range fieldAliases {
		for _, alias := range aliases {
			if v, ok := raw[alias]; ok && v != nil {
				canonical[field] = v
				break
			}
		}
	}

	var payload itemPayload
	cfg := &mapstructure.DecoderConfig{
		Result: &payload,
		// Ids arrive as numbers or strings depending on the source table.
		WeaklyTypedInput: true,
	}
	decoder, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return match.Item{}, err
	}
	if err := decoder.Decode(canonical); err != nil {
		return match.Item{}, err
	}

	if payload.ID == "" {
		return match.Item{}, fmt.Errorf("result item has no id (target %s)", target)
	}

	item := match.Item{
		ID:         payload.ID,
		Name:       payload.Name,
		Title:      payload.Title,
		Company:    payload.Company,
		Location:   payload.Location,
		Remote:     payload.Remote,
		Experience: payload.Experience,
		Skills:     payload.Skills,
		Summary:    payload.Summary,
		Posted:     payload.Posted,
	}

	return item, nil
}
