// Package validator runs pre-flight checks on scenario documents for the
// CLI, reporting every problem at once instead of stopping at the first.
package validator

import (
	"fmt"
	"strings"

	"github.com/jdahm/lattice/pkg/scenario"
)

// CheckFile loads the scenario at path and validates it against the
// given backend names. On success it returns the loaded scenario.
func CheckFile(path string, backends []string) (*scenario.Scenario, error) {
	sc, err := scenario.Load(path)
	if err != nil {
		return nil, err
	}
	if err := Check(sc, backends); err != nil {
		return nil, err
	}
	return sc, nil
}

// Check validates sc against the given backend names and flattens the
// per-field problems into a single bulleted message.
func Check(sc *scenario.Scenario, backends []string) error {
	err := sc.Validate(backends)
	if err == nil {
		return nil
	}

	problems := scenario.ValidationErrors(err)
	if len(problems) == 0 {
		return err
	}

	lines := make([]string, 0, len(problems))
	for _, p := range problems {
		lines = append(lines, p.Error())
	}
	return fmt.Errorf("found %d problems:\n- %s", len(problems), strings.Join(lines, "\n- "))
}
