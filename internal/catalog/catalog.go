package catalog

import (
	"fmt"

	"smartmolding/internal/models"
)

// seed is one catalog row before id/area assignment. Type is left empty for
// injection presses and overridden for blowing machines.
type seed struct {
	code     string
	brand    string
	capacity float64
	typ      string
}

var area1 = []seed{
	{code: "CLF125-25", brand: models.BrandCLF, capacity: 125},
	{code: "CLF180-30", brand: models.BrandCLF, capacity: 180},
	{code: "CLF180-31", brand: models.BrandCLF, capacity: 180},
	{code: "CLF180-36", brand: models.BrandCLF, capacity: 180},
	{code: "CLF180-37", brand: models.BrandCLF, capacity: 180},
	{code: "CLF250-13", brand: models.BrandCLF, capacity: 250},
	{code: "CLF400-10", brand: models.BrandCLF, capacity: 400},
	{code: "FKI", brand: models.BrandOther, capacity: 100},
	{code: "KAIMEI-15", brand: models.BrandOther, capacity: 15, typ: models.TypeBlowing},
	{code: "KAIMEI-09", brand: models.BrandOther, capacity: 9, typ: models.TypeBlowing},
	{code: "KAIMEI-34", brand: models.BrandOther, capacity: 34, typ: models.TypeBlowing},
	{code: "SMC-26", brand: models.BrandOther, capacity: 26, typ: models.TypeBlowing},
	{code: "SMC-27", brand: models.BrandOther, capacity: 27, typ: models.TypeBlowing},
	{code: "SMC-30", brand: models.BrandOther, capacity: 30, typ: models.TypeBlowing},
	{code: "CLF500-18", brand: models.BrandCLF, capacity: 500},
	{code: "CLF500-19", brand: models.BrandCLF, capacity: 500},
	{code: "CLF500-22", brand: models.BrandCLF, capacity: 500},
	{code: "CLF500-24", brand: models.BrandCLF, capacity: 500},
	{code: "CLF500-25", brand: models.BrandCLF, capacity: 500},
	{code: "CLF500-26", brand: models.BrandCLF, capacity: 500},
	{code: "JAD110-03", brand: models.BrandJAD, capacity: 110},
	{code: "JAD180-02", brand: models.BrandJAD, capacity: 180},
	{code: "JAD180-22", brand: models.BrandJAD, capacity: 180},
	{code: "JAD450-01", brand: models.BrandJAD, capacity: 450},
	{code: "JAD450-02", brand: models.BrandJAD, capacity: 450},
	{code: "JAD450-03", brand: models.BrandJAD, capacity: 450},
	{code: "JAD450-04", brand: models.BrandJAD, capacity: 450},
	{code: "JAD650-01", brand: models.BrandJAD, capacity: 650},
	{code: "JAD650-02", brand: models.BrandJAD, capacity: 650},
}

var area2 = []seed{
	{code: "JAD180-23", brand: models.BrandJAD, capacity: 180},
	{code: "JAD180-24", brand: models.BrandJAD, capacity: 180},
	{code: "JAD180-25", brand: models.BrandJAD, capacity: 180},
	{code: "JAD180-26", brand: models.BrandJAD, capacity: 180},
	{code: "JAD180-27", brand: models.BrandJAD, capacity: 180},
	{code: "CLF180-38", brand: models.BrandCLF, capacity: 180},
	{code: "CLF180-39", brand: models.BrandCLF, capacity: 180},
	{code: "CLF180-40", brand: models.BrandCLF, capacity: 180},
	{code: "CLF180-47", brand: models.BrandCLF, capacity: 180},
	{code: "CLF400-01", brand: models.BrandCLF, capacity: 400},
	{code: "CLF400-11", brand: models.BrandCLF, capacity: 400},
	{code: "CLF500-15", brand: models.BrandCLF, capacity: 500},
	{code: "CLF500-23", brand: models.BrandCLF, capacity: 500},
	{code: "CLF500-27", brand: models.BrandCLF, capacity: 500},
	{code: "CLF500-28", brand: models.BrandCLF, capacity: 500},
	{code: "CLF750-12", brand: models.BrandCLF, capacity: 750},
	{code: "CLF750-13", brand: models.BrandCLF, capacity: 750},
	{code: "CLF750-14", brand: models.BrandCLF, capacity: 750},
	{code: "CLF750-15", brand: models.BrandCLF, capacity: 750},
	{code: "CLF750-16", brand: models.BrandCLF, capacity: 750},
	{code: "CLF750-17", brand: models.BrandCLF, capacity: 750},
	{code: "CLF750-18", brand: models.BrandCLF, capacity: 750},
	{code: "CLF750-19", brand: models.BrandCLF, capacity: 750},
	{code: "CLF750-20", brand: models.BrandCLF, capacity: 750},
	{code: "CLF950-03", brand: models.BrandCLF, capacity: 950},
	{code: "CLF950-04", brand: models.BrandCLF, capacity: 950},
	{code: "CLF950-05", brand: models.BrandCLF, capacity: 950},
	{code: "CLF950-06", brand: models.BrandCLF, capacity: 950},
	{code: "CLF1500-01", brand: models.BrandCLF, capacity: 1500},
}

var area3 = []seed{
	{code: "CLF100-04", brand: models.BrandCLF, capacity: 100},
	{code: "CLF180-24", brand: models.BrandCLF, capacity: 180},
	{code: "CLF180-25", brand: models.BrandCLF, capacity: 180},
	{code: "CLF180-41", brand: models.BrandCLF, capacity: 180},
	{code: "CLF180-42", brand: models.BrandCLF, capacity: 180},
	{code: "CLF180-43", brand: models.BrandCLF, capacity: 180},
	{code: "CLF180-44", brand: models.BrandCLF, capacity: 180},
	{code: "CLF180-45", brand: models.BrandCLF, capacity: 180},
	{code: "CLF180-46", brand: models.BrandCLF, capacity: 180},
	{code: "CLF250-07", brand: models.BrandCLF, capacity: 250},
	{code: "CLF250-10", brand: models.BrandCLF, capacity: 250},
	{code: "CLF250-19", brand: models.BrandCLF, capacity: 250},
	{code: "CLF750-10", brand: models.BrandCLF, capacity: 750},
	{code: "CLF750-11", brand: models.BrandCLF, capacity: 750},
	{code: "CLF950-02", brand: models.BrandCLF, capacity: 950},
	{code: "CLF1000-01", brand: models.BrandCLF, capacity: 1000},
	{code: "CLF1420-01", brand: models.BrandCLF, capacity: 1420},
	{code: "CLF1420-02", brand: models.BrandCLF, capacity: 1420},
	{code: "CLF2k01", brand: models.BrandCLF, capacity: 2000},
	{code: "WJ2K-01", brand: models.BrandOther, capacity: 2000},
	{code: "CLF2k02", brand: models.BrandCLF, capacity: 2000},
	{code: "JSW2K5-01", brand: models.BrandOther, capacity: 2500},
	{code: "CLF3K5-01", brand: models.BrandCLF, capacity: 3500},
	{code: "CLF4K-01", brand: models.BrandCLF, capacity: 4000},
	{code: "KAIMEI-35", brand: models.BrandOther, capacity: 35, typ: models.TypeBlowing},
	{code: "AKEI", brand: models.BrandOther, capacity: 50, typ: models.TypeBlowing},
}

// Machines builds the full factory catalog. Ids are stable per area and
// position ("a1-0", "a1-1", ...); every machine starts RUNNING.
func Machines() []models.Machine {
	var out []models.Machine
	for _, grp := range []struct {
		area  int
		seeds []seed
	}{{1, area1}, {2, area2}, {3, area3}} {
		for i, s := range grp.seeds {
			typ := s.typ
			if typ == "" {
				typ = models.TypeInjection
			}
			out = append(out, models.Machine{
				ID:       fmt.Sprintf("a%d-%d", grp.area, i),
				Code:     s.code,
				Brand:    s.brand,
				Type:     typ,
				Capacity: s.capacity,
				Area:     grp.area,
				Status:   models.StatusRunning,
			})
		}
	}
	return out
}
