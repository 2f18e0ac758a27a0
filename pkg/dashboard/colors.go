package dashboard

import (
	"hash/fnv"

	"github.com/dkellner/seamplan/pkg/model"
)

// Statuses keep fixed colors so the charts read consistently; every other
// series label hashes into the palette, which keeps a seamstress's color
// stable across reloads without persisting any assignment.
var statusColors = map[string]string{
	model.StatusWorking: "#f2c037",
	model.StatusDone:    "#21ba45",
	model.StatusStuck:   "#db2828",
}

var palette = []string{
	"#5470c6",
	"#91cc75",
	"#fac858",
	"#ee6666",
	"#73c0de",
	"#3ba272",
	"#fc8452",
	"#9a60b4",
}

func SeriesColor(label string) string {
	if c, ok := statusColors[label]; ok {
		return c
	}
	h := fnv.New32a()
	h.Write([]byte(label))
	return palette[h.Sum32()%uint32(len(palette))]
}
