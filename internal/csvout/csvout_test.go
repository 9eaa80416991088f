package csvout

import (
	"bufio"
	"os"
	"strings"
	"testing"

	"github.com/BrianBLee1201/DoubleTripleQuadMonumentFinder/internal/coverage"
	"github.com/BrianBLee1201/DoubleTripleQuadMonumentFinder/internal/orchestrator"
	"github.com/BrianBLee1201/DoubleTripleQuadMonumentFinder/internal/placement"
)

func TestWriteProducesExpectedHeaderAndRow(t *testing.T) {
	out := orchestrator.Output{
		Spots: []orchestrator.Spot{
			{
				Members: []placement.Candidate{
					{CenterX: 100, CenterZ: 200},
					{CenterX: 300, CenterZ: 50},
				},
				AFK: coverage.Result{
					X: 150, Y: 50, Z: 120,
					PlaceBlockY:        49,
					TotalCovered:       1234,
					PerMonumentCovered: []int64{600, 634},
				},
			},
		},
	}

	tmp, err := os.CreateTemp(t.TempDir(), "afk-*.csv")
	if err != nil {
		t.Fatalf("create temp file: %v", err)
	}
	path := tmp.Name()
	tmp.Close()

	if err := Write(path, 2, out, false); err != nil {
		t.Fatalf("Write: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open written file: %v", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	if !scanner.Scan() {
		t.Fatal("expected a header line")
	}
	wantHeader := "type,afkX,afkY,afkZ,netherX,netherY,netherZ,placeBlockX,placeBlockY,placeBlockZ,totalCovered,count,monuments"
	if scanner.Text() != wantHeader {
		t.Fatalf("header mismatch:\n got:  %s\n want: %s", scanner.Text(), wantHeader)
	}

	if !scanner.Scan() {
		t.Fatal("expected a data row")
	}
	row := scanner.Text()
	if !strings.HasPrefix(row, "double,150,50,120,19,6,15,150,49,120,1234,2,") {
		t.Fatalf("row mismatch: %s", row)
	}
	if !strings.Contains(row, "(100,200);(300,50)") {
		t.Fatalf("expected monuments field to list both members, got: %s", row)
	}
}

func TestTypeNameMapsGroupSize(t *testing.T) {
	cases := map[int]string{2: "double", 3: "triple", 4: "quad"}
	for k, want := range cases {
		if got := typeName(k); got != want {
			t.Errorf("typeName(%d) = %q, want %q", k, got, want)
		}
	}
}
