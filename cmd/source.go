/*
Copyright 2020 Google LLC

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"

	"github.com/ademuri/listening-history/internal/fetch"
	"github.com/ademuri/listening-history/internal/history"
	"github.com/ademuri/listening-history/internal/logger"
	"github.com/ademuri/listening-history/internal/store"
)

// DataSource says where plays are read from.
type DataSource struct {
	// Inputs are files or URLs. When empty, DbPath is used.
	Inputs []string
	DbPath string
}

func dataSourceFromConfig() DataSource {
	return DataSource{
		Inputs: viper.GetStringSlice("input"),
		DbPath: viper.GetString("database"),
	}
}

// loadInputs reads and merges every input in order, downloading URLs.
func loadInputs(ctx context.Context, inputs []string) (history.Dataset, error) {
	var ds history.Dataset
	for _, input := range inputs {
		var next history.Dataset
		var err error
		if fetch.IsRemote(input) {
			logger.Info("downloading history", "url", input)
			next, err = fetch.Dataset(ctx, input, fetch.Config{})
		} else {
			next, err = history.LoadFile(input)
		}
		if err != nil {
			return history.Dataset{}, err
		}
		logger.Debug("loaded history", "source", input, "plays", next.Len())
		ds = ds.Merge(next)
	}
	return ds, nil
}

// Load reads the plays in [start, end) from the source.
func (s DataSource) Load(ctx context.Context, start, end time.Time) (history.Dataset, error) {
	if len(s.Inputs) > 0 {
		ds, err := loadInputs(ctx, s.Inputs)
		if err != nil {
			return history.Dataset{}, err
		}
		return ds.Between(start, end), nil
	}

	if _, err := os.Stat(s.DbPath); err != nil {
		return history.Dataset{}, fmt.Errorf("Database %s doesn't exist - run import first, or pass --input", s.DbPath)
	}
	db, err := store.New(s.DbPath)
	if err != nil {
		return history.Dataset{}, fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	return db.LoadDataset(start, end)
}
