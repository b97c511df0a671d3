package common

import (
	"net/url"
	"strings"

	"github.com/Stuart1162/fizzyjuice/internal/public/domain"
)

// Taxonomy is the vocabulary payload served at /taxonomy.
type Taxonomy struct {
	Strengths     []string `json:"strengths"`
	Roles         []string `json:"roles"`
	ContractTypes []string `json:"contractTypes"`
	Shifts        []string `json:"shifts"`
	ApplyDisplays []string `json:"applyDisplays"`
	MaxStrengths  int      `json:"maxStrengths"`
}

func CurrentTaxonomy() Taxonomy {
	return Taxonomy{
		Strengths:     append([]string(nil), domain.CompanyStrengths...),
		Roles:         append([]string(nil), domain.JobRoles...),
		ContractTypes: append([]string(nil), domain.ContractTypes...),
		Shifts:        append([]string(nil), domain.Shifts...),
		ApplyDisplays: append([]string(nil), domain.ApplyDisplays...),
		MaxStrengths:  domain.MaxPreferredStrengths,
	}
}

// QueryList accepts both ?roles=a&roles=b and ?roles=a,b.
func QueryList(query url.Values, key string) []string {
	var out []string
	for _, raw := range query[key] {
		for _, part := range strings.Split(raw, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
