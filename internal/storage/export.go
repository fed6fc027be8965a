package storage

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/shuv1824/packlist/internal/types"
)

// ExportPlan writes plan to w as indented JSON.
func ExportPlan(w io.Writer, plan types.Plan) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(plan); err != nil {
		return fmt.Errorf("failed to export plan: %w", err)
	}
	return nil
}

// ExportPlanFile writes plan to path, replacing any existing file.
func ExportPlanFile(path string, plan types.Plan) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}

	if err := ExportPlan(f, plan); err != nil {
		_ = f.Close()
		return err
	}

	return f.Close()
}
