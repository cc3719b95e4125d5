package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// jsonOptions mirrors [Options] for the optional KEEPER_CONFIG file, with
// the debounce field decoded through [Duration] so the file may carry
// human-readable values like "300ms".
type jsonOptions struct {
	Root             string   `json:"root"`
	Debounce         Duration `json:"debounce"`
	KeyStoreKind     string   `json:"keystore_kind"`
	KeyStorePath     string   `json:"keystore_path"`
	KeyStoreDSN      string   `json:"keystore_dsn"`
	Algorithm        string   `json:"algorithm"`
	StrictConversion bool     `json:"strict_conversion"`
}

func parseJSON(jsonFilePath string) (*Options, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonOpts jsonOptions
	if err := json.NewDecoder(jsonFile).Decode(&jsonOpts); err != nil {
		return nil, fmt.Errorf("error decoding json options: %w", err)
	}

	opts := &Options{
		Root:             jsonOpts.Root,
		Debounce:         time.Duration(jsonOpts.Debounce),
		KeyStoreKind:     jsonOpts.KeyStoreKind,
		KeyStorePath:     jsonOpts.KeyStorePath,
		KeyStoreDSN:      jsonOpts.KeyStoreDSN,
		Algorithm:        jsonOpts.Algorithm,
		StrictConversion: jsonOpts.StrictConversion,
	}

	return opts, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
