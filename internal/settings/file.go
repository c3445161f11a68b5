package settings

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/objviewer/internal/logger"
	"github.com/Faultbox/objviewer/pkg/encoding"
)

// FileName is the base name of the settings file.
const FileName = "settings.conf"

// Keys in the order they are written.
const (
	keyProjection        = "Projection"
	keyEdgeType          = "EdgeType"
	keyEdgeColor         = "EdgeColor"
	keyEdgeThickness     = "EdgeThickness"
	keyEdgeDisplayMethod = "EdgeDisplayMethod"
	keyVertexColor       = "VertexColor"
	keyVertexSize        = "VertexSize"
	keyBackgroundColor   = "BackgroundColor"
)

// ErrInvalidValue is reported for a setting whose value cannot be used.
var ErrInvalidValue = errors.New("invalid settings value")

// Load resets s to Default and overlays the values found in the file at path.
//
// A missing or unreadable file returns an error and leaves s at defaults.
// Lines that cannot be used are logged and skipped, so a partially valid
// file still applies its good values.
func Load(path string, s *Settings) error {
	*s = Default()

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("loading settings: %w", err)
	}
	defer f.Close()

	return Decode(f, s)
}

// Decode overlays the Key=Value lines of r onto s.
// Only read errors are returned; bad lines are skipped.
func Decode(r io.Reader, s *Settings) error {
	sc := bufio.NewScanner(encoding.NewUTF8Reader(r))
	n := 0
	for sc.Scan() {
		n++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			logger.Warn("settings line without '='", zap.Int("line", n))
			continue
		}
		if err := s.set(strings.TrimSpace(key), strings.TrimSpace(value)); err != nil {
			logger.Warn("skipping setting", zap.Int("line", n), zap.Error(err))
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("reading settings: %w", err)
	}
	return nil
}

// set applies one key. Unknown keys are ignored.
func (s *Settings) set(key, value string) error {
	switch key {
	case keyProjection:
		v, err := parseEnum(key, value)
		if err != nil {
			return err
		}
		if p := Projection(v); p.valid() {
			s.Projection = p
			return nil
		}
	case keyEdgeType:
		v, err := parseEnum(key, value)
		if err != nil {
			return err
		}
		if e := EdgeType(v); e.valid() {
			s.EdgeType = e
			return nil
		}
	case keyEdgeDisplayMethod:
		v, err := parseEnum(key, value)
		if err != nil {
			return err
		}
		if d := DisplayMethod(v); d.valid() {
			s.DisplayMethod = d
			return nil
		}
	case keyEdgeThickness, keyVertexSize:
		v, err := strconv.ParseFloat(encoding.NormalizeDecimal(value), 64)
		if err != nil || !ValidSize(v) {
			break
		}
		if key == keyEdgeThickness {
			s.EdgeThickness = v
		} else {
			s.VertexSize = v
		}
		return nil
	case keyEdgeColor, keyVertexColor, keyBackgroundColor:
		c, err := parseColor(value)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		switch key {
		case keyEdgeColor:
			s.EdgeColor = c
		case keyVertexColor:
			s.VertexColor = c
		default:
			s.BackgroundColor = c
		}
		return nil
	default:
		return nil
	}
	return fmt.Errorf("%s=%q: %w", key, value, ErrInvalidValue)
}

func parseEnum(key, value string) (int, error) {
	v, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s=%q: %w", key, value, ErrInvalidValue)
	}
	return v, nil
}

func parseColor(value string) (Color, error) {
	fields := strings.Fields(encoding.NormalizeDecimal(value))
	if len(fields) != 4 {
		return Color{}, fmt.Errorf("%w: want 4 components, got %d", ErrInvalidValue, len(fields))
	}
	var a [4]float32
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 32)
		if err != nil {
			return Color{}, fmt.Errorf("%w: %q", ErrInvalidValue, f)
		}
		a[i] = float32(v)
	}
	c := ColorFromArray(a)
	if !c.valid() {
		return Color{}, fmt.Errorf("%w: component outside [0, 1]", ErrInvalidValue)
	}
	return c, nil
}

// Save writes s to path, creating the parent directory if needed.
func (s Settings) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("saving settings: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("saving settings: %w", err)
	}
	if err := s.Encode(f); err != nil {
		f.Close()
		return fmt.Errorf("saving settings: %w", err)
	}
	return f.Close()
}

// Encode writes s as Key=Value lines in the fixed settings.conf order.
func (s Settings) Encode(w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%s=%d\n", keyProjection, int(s.Projection))
	fmt.Fprintf(bw, "%s=%d\n", keyEdgeType, int(s.EdgeType))
	fmt.Fprintf(bw, "%s=%s\n", keyEdgeColor, formatColor(s.EdgeColor))
	fmt.Fprintf(bw, "%s=%s\n", keyEdgeThickness, formatFloat(s.EdgeThickness))
	fmt.Fprintf(bw, "%s=%d\n", keyEdgeDisplayMethod, int(s.DisplayMethod))
	fmt.Fprintf(bw, "%s=%s\n", keyVertexColor, formatColor(s.VertexColor))
	fmt.Fprintf(bw, "%s=%s\n", keyVertexSize, formatFloat(s.VertexSize))
	fmt.Fprintf(bw, "%s=%s\n", keyBackgroundColor, formatColor(s.BackgroundColor))
	return bw.Flush()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatColor(c Color) string {
	parts := make([]string, 0, 4)
	for _, v := range c.Array() {
		parts = append(parts, strconv.FormatFloat(float64(v), 'f', -1, 32))
	}
	return strings.Join(parts, " ")
}
