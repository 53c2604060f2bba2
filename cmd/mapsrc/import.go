package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/fwojciec/mapsrc"
	"github.com/fwojciec/mapsrc/sqlite"
)

// importFile is the JSON layout read by the import command.
type importFile struct {
	Categories []*sqlite.CategoryRecord `json:"categories"`
	Items      []*sqlite.ItemRecord     `json:"items"`
}

// Run executes the import command.
func (c *ImportCmd) Run(deps *Dependencies) error {
	data, err := os.ReadFile(c.File)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", c.File, err)
	}

	var in importFile
	if err := json.Unmarshal(data, &in); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s is not valid JSON\n", c.File)
		return mapsrc.Errorf(mapsrc.EINVALID, "invalid import file: %s", err)
	}

	if err := deps.Store.Import(deps.Ctx, in.Categories, in.Items); err != nil {
		var importErr *sqlite.ImportError
		if errors.As(err, &importErr) {
			fmt.Fprintf(deps.Stderr, "error: %s\n", importErr)
			return err
		}
		return fmt.Errorf("failed to import %s: %w", c.File, err)
	}

	fmt.Fprintf(deps.Stdout, "Imported %d categories and %d items\n", len(in.Categories), len(in.Items))
	return nil
}
