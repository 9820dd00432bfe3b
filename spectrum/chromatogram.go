package spectrum

import (
	"fmt"
	"time"

	"github.com/arloliu/mzml/cv"
	"github.com/arloliu/mzml/errs"
	"github.com/arloliu/mzml/format"
)

// Chromatogram is a <chromatogram> element with its binary arrays.
type Chromatogram struct {
	Index              int           `xml:"index,attr"`
	ID                 string        `xml:"id,attr"`
	DefaultArrayLength int           `xml:"defaultArrayLength,attr"`
	Params             cv.Params     `xml:"cvParam"`
	Arrays             []BinaryArray `xml:"binaryDataArrayList>binaryDataArray"`
}

// TimePoint is one (time, intensity) pair of a chromatogram.
type TimePoint struct {
	Time      time.Duration
	Intensity float64
}

// Points decodes the time and intensity arrays and zips them.
//
// The time array's unit is taken from its own cvParam ("second" or
// "minute"); minutes are assumed otherwise. A NaN, infinite or out of range
// time fails with errs.ErrFormat.
func (c *Chromatogram) Points() ([]TimePoint, error) {
	times, intensity, err := decodePair(c.Arrays, format.CVTimeArray, format.CVIntensity, c.DefaultArrayLength)
	if err != nil {
		return nil, err
	}

	unit := time.Minute
	if ta, ok := findArray(c.Arrays, format.CVTimeArray); ok {
		if p, ok := ta.Params.FindContains(format.CVTimeArray); ok && p.UnitName == format.UnitSecond {
			unit = time.Second
		}
	}

	points := make([]TimePoint, len(times))
	for i := range times {
		d, ok := toDuration(times[i], unit)
		if !ok {
			return nil, &errs.ArrayError{Kind: format.CVTimeArray,
				Err: fmt.Errorf("%w: time %v at index %d is not a valid duration", errs.ErrFormat, times[i], i)}
		}
		points[i] = TimePoint{Time: d, Intensity: intensity[i]}
	}

	return points, nil
}

// FindCV returns the chromatogram-level parameter whose name equals name.
func (c *Chromatogram) FindCV(name string) (cv.Param, bool) {
	return c.Params.Find(name)
}
