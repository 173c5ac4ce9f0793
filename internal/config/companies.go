package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/yosuke-furukawa/json5/encoding/json5"
)

// Company describes one roster entry for the board-hosted ATS adapters.
// An entry carries a display name plus the board slug for whichever ATS
// hosts the company; an adapter skips entries missing its slug.
type Company struct {
	Name       string `json:"name"`
	Greenhouse string `json:"greenhouse,omitempty"`
	Lever      string `json:"lever,omitempty"`
}

// LoadCompanies reads the roster from flagPath, falling back to the
// config directory's companies.json. A missing roster is an empty one.
func LoadCompanies(flagPath string) ([]Company, error) {
	path := strings.TrimSpace(flagPath)
	if path == "" {
		var err error
		path, err = CompaniesPath()
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && strings.TrimSpace(flagPath) == "" {
			return nil, nil
		}
		return nil, fmt.Errorf("read companies roster %q: %w", path, err)
	}

	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, nil
	}

	var companies []Company
	if err := json5.Unmarshal(data, &companies); err != nil {
		return nil, fmt.Errorf("parse companies roster %q: %w", path, err)
	}
	return companies, nil
}
