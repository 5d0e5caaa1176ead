package cmd

import (
	"os"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/xhhuango/json"
)

// writeResult prints v as indented JSON, or writes it to --output.
func writeResult(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encoding result")
	}
	return writeBytes(append(data, '\n'))
}

func writeText(s string) error {
	return writeBytes([]byte(s))
}

func writeBytes(data []byte) error {
	output := viper.GetString("output")
	if output == "" {
		_, err := os.Stdout.Write(data)
		return err
	}

	if err := os.WriteFile(output, data, 0644); err != nil {
		return errors.Wrapf(err, "writing %s", output)
	}
	log.Infof("result written to %s", output)
	return nil
}

// readPath loads a JSON array of prices.
func readPath(file string) ([]float64, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}

	var path []float64
	if err := json.Unmarshal(data, &path); err != nil {
		return nil, errors.Wrapf(err, "decoding path from %s", file)
	}
	return path, nil
}
