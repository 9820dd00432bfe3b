package spectrum

import (
	"time"

	"github.com/arloliu/mzml/cv"
)

// MassScan is the read-only metadata contract shared by Metadata and Scan.
type MassScan interface {
	ScanID() string
	RetentionTime() (time.Duration, bool)
	MSLevel() (uint16, bool)
	FindCV(name string) (cv.Param, bool)
	CVs() cv.Params
}

// MassSpectrumData is implemented by representations that carry binary arrays.
type MassSpectrumData interface {
	MassScan
	Peaks() ([]Peak, error)
}

var (
	_ MassScan         = (*Metadata)(nil)
	_ MassScan         = (*Scan)(nil)
	_ MassSpectrumData = (*Scan)(nil)
)
