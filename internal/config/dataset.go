package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/studykit/pairwise/internal/reconcile"
)

// LoadDataset reads one JSON source document: a string-keyed mapping
// of free-form records. Missing or unparseable files are fatal
// configuration errors.
func LoadDataset(path string) (reconcile.Dataset, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, &Error{Code: ErrCodeNotFound, Path: path, Message: "dataset file not found"}
	}
	if err != nil {
		return nil, &Error{Code: ErrCodeParse, Path: path, Message: err.Error()}
	}

	var ds reconcile.Dataset
	if err := json.Unmarshal(data, &ds); err != nil {
		return nil, &Error{Code: ErrCodeParse, Path: path, Message: fmt.Sprintf("decode json: %v", err)}
	}
	if len(ds) == 0 {
		return nil, &Error{Code: ErrCodeParse, Path: path, Message: "dataset is empty"}
	}
	return ds, nil
}
