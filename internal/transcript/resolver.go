package transcript

import (
	"fmt"
	"slices"
)

// Origin restricts resolution to manually created or generated tracks.
type Origin uint8

const (
	OriginAny Origin = iota
	OriginManual
	OriginGenerated
)

func (o Origin) String() string {
	switch o {
	case OriginManual:
		return "manual"
	case OriginGenerated:
		return "generated"
	default:
		return "any"
	}
}

// ParseOrigin maps "any", "manual" or "generated" to an Origin.
func ParseOrigin(value string) (Origin, error) {
	switch value {
	case "", "any":
		return OriginAny, nil
	case "manual":
		return OriginManual, nil
	case "generated":
		return OriginGenerated, nil
	default:
		return OriginAny, fmt.Errorf("transcript: unknown origin %q", value)
	}
}

// FindTranscript returns the first handle matching codes in preference order,
// preferring a manually created track over a generated one for the same code.
func (c *Catalog) FindTranscript(codes []string) (Handle, error) {
	return c.Find(codes, OriginAny)
}

// FindGenerated is FindTranscript restricted to generated tracks.
func (c *Catalog) FindGenerated(codes []string) (Handle, error) {
	return c.Find(codes, OriginGenerated)
}

// FindManual is FindTranscript restricted to manually created tracks.
func (c *Catalog) FindManual(codes []string) (Handle, error) {
	return c.Find(codes, OriginManual)
}

// Find walks codes in order. Language preference dominates origin: a
// generated track for the first code beats a manual track for the second.
func (c *Catalog) Find(codes []string, origin Origin) (Handle, error) {
	var sets []*handleSet
	switch origin {
	case OriginManual:
		sets = []*handleSet{c.manual}
	case OriginGenerated:
		sets = []*handleSet{c.generated}
	default:
		sets = []*handleSet{c.manual, c.generated}
	}
	for _, code := range codes {
		for _, set := range sets {
			if h, ok := set.get(code); ok {
				return h, nil
			}
		}
	}
	return Handle{}, &Error{
		Kind:      KindNoTranscriptFound,
		VideoID:   c.videoID,
		Languages: slices.Clone(codes),
		Reason:    c.String(),
	}
}
