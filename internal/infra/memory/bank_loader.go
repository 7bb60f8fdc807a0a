package memory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"quiz-session-service/internal/domain"
)

// StaticBankLoader is a simple loader backed by an in-memory map (useful for tests/demos).
type StaticBankLoader struct {
	banks map[string]domain.Bank
}

func NewStaticBankLoader(banks map[string]domain.Bank) *StaticBankLoader {
	return &StaticBankLoader{banks: banks}
}

func (l *StaticBankLoader) LoadBank(_ context.Context, bankID string) (domain.Bank, error) {
	if bank, ok := l.banks[bankID]; ok {
		return bank, nil
	}
	return domain.Bank{}, domain.ErrBankNotFound
}

// FileBankLoader reads banks from <dir>/<id>.json, <id>.yaml or <id>.yml.
type FileBankLoader struct {
	dir string
}

func NewFileBankLoader(dir string) *FileBankLoader {
	return &FileBankLoader{dir: dir}
}

var bankExtensions = []string{".json", ".yaml", ".yml"}

func (l *FileBankLoader) LoadBank(_ context.Context, bankID string) (domain.Bank, error) {
	if bankID == "" || strings.ContainsAny(bankID, `/\`) || strings.HasPrefix(bankID, ".") {
		return domain.Bank{}, domain.ErrBankNotFound
	}
	for _, ext := range bankExtensions {
		path := filepath.Join(l.dir, bankID+ext)
		bank, err := ReadBankFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return domain.Bank{}, err
		}
		bank.ID = bankID
		return bank, nil
	}
	return domain.Bank{}, domain.ErrBankNotFound
}

// ReadBankFile decodes a bank file. The document is either a bare list of questions
// or an object with a "questions" key; YAML is used for .yaml/.yml, JSON otherwise.
func ReadBankFile(path string) (domain.Bank, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.Bank{}, err
	}
	bank, err := decodeBank(data, filepath.Ext(path))
	if err != nil {
		return domain.Bank{}, fmt.Errorf("decode %s: %w", path, err)
	}
	if bank.ID == "" {
		bank.ID = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return bank, nil
}

func decodeBank(data []byte, ext string) (domain.Bank, error) {
	unmarshal := json.Unmarshal
	if ext == ".yaml" || ext == ".yml" {
		unmarshal = yaml.Unmarshal
	}

	var questions []domain.Question
	if err := unmarshal(data, &questions); err == nil {
		return domain.Bank{Questions: questions}, nil
	}
	var bank domain.Bank
	if err := unmarshal(data, &bank); err != nil {
		return domain.Bank{}, err
	}
	return bank, nil
}
