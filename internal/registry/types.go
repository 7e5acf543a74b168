package registry

import (
	"encoding/json"
	"strings"
)

// Establishment is the head-office block of a search result.
type Establishment struct {
	SIRET              string `json:"siret"`
	ActivitePrincipale string `json:"activite_principale"`
	Adresse            string `json:"adresse"`
	CodePostal         string `json:"code_postal"`
	Commune            string `json:"libelle_commune"`
}

// Result is one company returned by the registry search.
type Result struct {
	SIREN              string        `json:"siren"`
	SIRET              string        `json:"siret"`
	NomComplet         string        `json:"nom_complet"`
	NomRaisonSociale   string        `json:"nom_raison_sociale"`
	Denomination       string        `json:"denomination"`
	NAF                string        `json:"naf"`
	ActivitePrincipale string        `json:"activite_principale"`
	EtatAdministratif  string        `json:"etat_administratif"`
	DateCreation       string        `json:"date_creation"`
	Score              json.Number   `json:"score"`
	Siege              Establishment `json:"siege"`
}

// Name returns the legal name: nom_raison_sociale, then denomination, then
// nom_complet.
func (r Result) Name() string {
	for _, candidate := range []string{r.NomRaisonSociale, r.Denomination, r.NomComplet} {
		if trimmed := strings.TrimSpace(candidate); trimmed != "" {
			return trimmed
		}
	}
	return ""
}

// HeadOfficeSIRET returns the result's SIRET, falling back to the head office.
func (r Result) HeadOfficeSIRET() string {
	if r.SIRET != "" {
		return r.SIRET
	}
	return r.Siege.SIRET
}

// ActivityCode returns the NAF/APE code from the first field that carries one.
func (r Result) ActivityCode() string {
	for _, candidate := range []string{r.NAF, r.ActivitePrincipale, r.Siege.ActivitePrincipale} {
		if candidate != "" {
			return candidate
		}
	}
	return ""
}

// Response models the paginated search response.
type Response struct {
	Results      []Result `json:"results"`
	TotalResults int      `json:"total_results"`
	Page         int      `json:"page"`
	PerPage      int      `json:"per_page"`
	TotalPages   int      `json:"total_pages"`
}
