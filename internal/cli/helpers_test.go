package cli

import (
	"reflect"
	"testing"

	"github.com/spf13/cobra"
)

func TestSplitList(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{"empty", "", nil},
		{"single", "backend", []string{"backend"}},
		{"multiple", "backend,urgent", []string{"backend", "urgent"}},
		{"whitespace trimmed", " backend , urgent ", []string{"backend", "urgent"}},
		{"blanks dropped", "backend,,urgent,", []string{"backend", "urgent"}},
		{"only separators", ", ,", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := splitList(tt.raw); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("splitList(%q) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestCriteriaFromFlags(t *testing.T) {
	cmd := &cobra.Command{}
	cmd.Flags().String("pr-number", "", "")
	cmd.Flags().String("branch", "", "")
	cmd.Flags().String("title", "", "")
	if err := cmd.Flags().Set("pr-number", "12"); err != nil {
		t.Fatal(err)
	}
	if err := cmd.Flags().Set("title", "Fix it"); err != nil {
		t.Fatal(err)
	}

	crit := criteriaFromFlags(cmd)
	if crit.PRNumber != "12" || crit.Branch != "" || crit.Title != "Fix it" {
		t.Errorf("unexpected criteria: %+v", crit)
	}
	if crit.Empty() {
		t.Error("criteria with values should not be empty")
	}
}
