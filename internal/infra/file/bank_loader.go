// Package file loads question banks from YAML or JSON documents on disk.
package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"drb-quiz-service/internal/domain"
	"gopkg.in/yaml.v3"
)

// BankLoader serves a single bank from a file. Requests for other ids fail
// with domain.ErrBankNotFound.
type BankLoader struct {
	path string
}

func NewBankLoader(path string) *BankLoader {
	return &BankLoader{path: path}
}

func (l *BankLoader) LoadBank(_ context.Context, bankID string) (domain.Bank, error) {
	bank, err := ReadBank(l.path)
	if err != nil {
		return domain.Bank{}, err
	}
	if bank.ID != bankID {
		return domain.Bank{}, fmt.Errorf("%s holds %q, not %q: %w", l.path, bank.ID, bankID, domain.ErrBankNotFound)
	}
	return bank, nil
}

// ReadBank decodes a bank document; .json files are read as JSON, everything else as YAML.
func ReadBank(path string) (domain.Bank, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.Bank{}, fmt.Errorf("read bank file: %w", err)
	}

	var bank domain.Bank
	if strings.EqualFold(filepath.Ext(path), ".json") {
		err = json.Unmarshal(data, &bank)
	} else {
		err = yaml.Unmarshal(data, &bank)
	}
	if err != nil {
		return domain.Bank{}, fmt.Errorf("decode bank file %s: %w", path, err)
	}
	if bank.ID == "" {
		bank.ID = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return bank, nil
}
