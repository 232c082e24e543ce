package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/yumyai/ggideo/pkg/model"
)

func TestRenderIdeogramPage(t *testing.T) {

	rows := []model.ChromosomeAnnots{
		{Chr: "1", Annots: []model.Annotation{
			{Name: "BRCA1", Chr: "1", Start: 1000, Stop: 1200, Px: 2, Color: "#F00"},
		}},
		{Chr: "2", Annots: []model.Annotation{}},
	}

	cfg := &model.Config{AnnotationsPath: "x.bed", ChrHeight: 400}
	data := BuildIdeogramPageData(9606, model.InitSettings(cfg), 400, rows)

	var buf bytes.Buffer
	if err := RenderIdeogramPage(&buf, data); err != nil {
		t.Fatalf("render: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"Taxon: 9606", "BRCA1", "<td>1</td>", "<td>2</td>"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
	// One lane per chromosome entry, empty ones included.
	if got := strings.Count(out, "chr-lane"); got != 2 {
		t.Errorf("want 2 lanes, got %d", got)
	}
}
