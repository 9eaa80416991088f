// Package csvout writes a pipeline Output to the CSV format external tools
// consume, with an optional gzip-compressed variant for large runs.
package csvout

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/compress/gzip"

	"github.com/BrianBLee1201/DoubleTripleQuadMonumentFinder/internal/orchestrator"
	"github.com/BrianBLee1201/DoubleTripleQuadMonumentFinder/internal/placement"
)

var header = []string{
	"type", "afkX", "afkY", "afkZ",
	"netherX", "netherY", "netherZ",
	"placeBlockX", "placeBlockY", "placeBlockZ",
	"totalCovered", "count", "monuments",
}

// typeName names a group by its member count, the "double"/"triple"/"quad"
// vocabulary the tool is named for.
func typeName(groupSize int) string {
	switch groupSize {
	case 2:
		return "double"
	case 3:
		return "triple"
	case 4:
		return "quad"
	default:
		return strconv.Itoa(groupSize)
	}
}

// toNether scales an overworld coordinate into nether space (divided by 8,
// rounded to the nearest integer).
func toNether(overworld int32) int32 {
	return int32(math.Round(float64(overworld) / 8))
}

// Write streams out to a CSV file at path, gzip-compressing it (via
// klauspost/compress/gzip, a drop-in faster gzip) if gz is true, in which
// case path should already carry a .gz suffix.
func Write(path string, groupSize int, out orchestrator.Output, gz bool) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("csvout: create %s: %w", path, err)
	}
	defer f.Close()

	var w io.Writer = f
	if gz {
		gzw := gzip.NewWriter(f)
		defer gzw.Close()
		w = gzw
	}

	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(header); err != nil {
		return fmt.Errorf("csvout: write header: %w", err)
	}

	kind := typeName(groupSize)
	for _, spot := range out.Spots {
		afk := spot.AFK
		if err := cw.Write([]string{
			kind,
			strconv.Itoa(int(afk.X)),
			strconv.Itoa(int(afk.Y)),
			strconv.Itoa(int(afk.Z)),
			strconv.Itoa(int(toNether(afk.X))),
			strconv.Itoa(int(toNether(afk.Y))),
			strconv.Itoa(int(toNether(afk.Z))),
			strconv.Itoa(int(afk.X)),
			strconv.Itoa(int(afk.PlaceBlockY)),
			strconv.Itoa(int(afk.Z)),
			strconv.FormatInt(afk.TotalCovered, 10),
			strconv.Itoa(len(spot.Members)),
			monumentsField(spot.Members),
		}); err != nil {
			return fmt.Errorf("csvout: write row: %w", err)
		}
	}

	if err := cw.Error(); err != nil {
		return fmt.Errorf("csvout: flush: %w", err)
	}
	return nil
}

// monumentsField renders a group's members as a semicolon-separated list of
// (centerX,centerZ) pairs. encoding/csv quotes the whole field automatically
// since it contains commas.
func monumentsField(members []placement.Candidate) string {
	parts := make([]string, len(members))
	for i, m := range members {
		parts[i] = fmt.Sprintf("(%d,%d)", m.CenterX, m.CenterZ)
	}
	return strings.Join(parts, ";")
}
