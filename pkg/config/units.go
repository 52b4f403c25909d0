package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration is a time.Duration that also accepts days (d) and weeks (w) in YAML.
type Duration time.Duration

// Calendar-free day and week lengths.
const (
	Day  = 24 * time.Hour
	Week = 7 * Day
)

// Std returns the value as a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	dur, err := ParseDuration(s)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*d = Duration(dur)
	return nil
}

// MarshalYAML writes whole weeks and days in their short form ("1w", "3d").
func (d Duration) MarshalYAML() (interface{}, error) {
	std := d.Std()
	switch {
	case std > 0 && std%Week == 0:
		return strconv.FormatInt(int64(std/Week), 10) + "w", nil
	case std > 0 && std%Day == 0:
		return strconv.FormatInt(int64(std/Day), 10) + "d", nil
	}
	return std.String(), nil
}

// ParseDuration extends time.ParseDuration with d and w components, which
// may be mixed with the standard units ("2d12h"). Empty means zero.
func ParseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}

	var total time.Duration
	var rest strings.Builder
	for s != "" {
		i := strings.IndexFunc(s, func(r rune) bool { return (r < '0' || r > '9') && r != '.' })
		if i <= 0 {
			return 0, fmt.Errorf("invalid duration %q", s)
		}
		num := s[:i]
		j := i + strings.IndexFunc(s[i:], func(r rune) bool { return (r >= '0' && r <= '9') || r == '.' })
		if j < i {
			j = len(s)
		}
		unit := s[i:j]
		s = s[j:]

		var base time.Duration
		switch unit {
		case "d":
			base = Day
		case "w":
			base = Week
		default:
			rest.WriteString(num + unit)
			continue
		}
		v, err := strconv.ParseFloat(num, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid number %q in duration", num)
		}
		total += time.Duration(v * float64(base))
	}

	if rest.Len() > 0 {
		std, err := time.ParseDuration(rest.String())
		if err != nil {
			return 0, err
		}
		total += std
	}
	return total, nil
}
