package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

var validate = validator.New()

// LoadCredits reads the credit source file at the path provided. The file
// may be JSON or YAML (decided by extension) and must contain a list of
// credit objects. Values are weakly decoded so that exports which store the
// year as a number are accepted.
//
// Any failure to read, decode or validate a credit is returned as an error;
// the caller is expected to abort the run.
func LoadCredits(path string) ([]Credit, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read credits file: %w", err)
	}

	var rows []map[string]any
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(raw, &rows)
	default:
		err = json.Unmarshal(raw, &rows)
	}
	if err != nil {
		return nil, fmt.Errorf("credits file %s is malformed: %w", path, err)
	}

	credits := make([]Credit, 0, len(rows))
	for i, row := range rows {
		credit, err := decodeCredit(row)
		if err != nil {
			return nil, fmt.Errorf("credit #%d in %s is invalid: %w", i+1, path, err)
		}

		credits = append(credits, credit)
	}

	return credits, nil
}

func decodeCredit(row map[string]any) (Credit, error) {
	var credit Credit
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &credit,
	})
	if err != nil {
		return Credit{}, err
	}

	if err := decoder.Decode(row); err != nil {
		return Credit{}, err
	}

	credit.ImdbID = strings.TrimSpace(credit.ImdbID)
	credit.Year = strings.TrimSpace(credit.Year)
	if err := validate.Struct(credit); err != nil {
		return Credit{}, err
	}

	return credit, nil
}
