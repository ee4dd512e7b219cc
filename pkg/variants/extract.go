package variants

import (
	"regexp"
	"strings"

	"github.com/gastroflow/gastroflow/pkg/catalog"
	"github.com/gastroflow/gastroflow/pkg/constants"
	"github.com/gastroflow/gastroflow/pkg/units"
)

var (
	// "500x735x880mm", "610x455x1800", "40 x 40 x 85 cm"
	dims3D = regexp.MustCompile(`(\d+(?:[.,]\d+)?)\s*[xX×]\s*(\d+(?:[.,]\d+)?)\s*[xX×]\s*(\d+(?:[.,]\d+)?)(?:\s*([a-zA-Z]+))?`)
	// "400x400", "10x20 cm"
	dims2D = regexp.MustCompile(`(\d+(?:[.,]\d+)?)\s*[xX×]\s*(\d+(?:[.,]\d+)?)(?:\s*([a-zA-Z]+))?`)

	widthPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)šírka[:\s]+(\d+(?:[.,]\d+)?)\s*([a-zA-Z]+)?`),
		regexp.MustCompile(`(?i)š\s*[:\-]\s*(\d+(?:[.,]\d+)?)\s*([a-zA-Z]+)?`),
	}
	lengthPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)dĺžka[:\s]+(\d+(?:[.,]\d+)?)\s*([a-zA-Z]+)?`),
		regexp.MustCompile(`(?i)dlžka[:\s]+(\d+(?:[.,]\d+)?)\s*([a-zA-Z]+)?`),
		regexp.MustCompile(`(?i)d\s*[:\-]\s*(\d+(?:[.,]\d+)?)\s*([a-zA-Z]+)?`),
	}
	heightPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)výška[:\s]+(\d+(?:[.,]\d+)?)\s*([a-zA-Z]+)?`),
		regexp.MustCompile(`(?i)vyska[:\s]+(\d+(?:[.,]\d+)?)\s*([a-zA-Z]+)?`),
		regexp.MustCompile(`(?i)v\s*[:\-]\s*(\d+(?:[.,]\d+)?)\s*([a-zA-Z]+)?`),
	}

	powerPatterns = []*regexp.Regexp{
		// Multiplier form: "4 x 2,6 kW", "2x 5kW"
		regexp.MustCompile(`(\d+)\s*[xX]\s*(\d+(?:[.,]\d+)?)\s*([kK]?[wW])`),
		// Plain: "6W", "2.5 kW"
		regexp.MustCompile(`(\d+(?:[.,]\d+)?)\s*([kK]?[wW])`),
		// Labeled: "výkon: 2500W"
		regexp.MustCompile(`(?i)výkon[:\s]+(\d+(?:[.,]\d+)?)\s*([kK]?[wW])`),
	}
	volumePatterns = []*regexp.Regexp{
		// Multiplier form: "1x20l", "2 x 10 L"
		regexp.MustCompile(`(\d+)\s*[xX]\s*(\d+(?:[.,]\d+)?)\s*([lL])`),
		// Plain: "25 L", "25l", "25 litrov"
		regexp.MustCompile(`(\d+(?:[.,]\d+)?)\s*([lL](?:iter|itre|itrov)?s?)`),
		// Labeled: "objem: 25L"
		regexp.MustCompile(`(?i)objem[:\s]+(\d+(?:[.,]\d+)?)\s*([lL](?:iter|itre|itrov)?s?)`),
	}

	zonePattern     = regexp.MustCompile(`(\d+)\s*zon[ay]`)
	gnPattern       = regexp.MustCompile(`(\d+)[xX]\s*GN\s*\d+/\d+`)
	typePrefix      = regexp.MustCompile(`^(\d+)\s*-`)
	labelTrimCutset = " -–:"
)

// ExtractDifferences fills member attributes on the table per the schema.
// A record's category decides which attributes are extracted; categories
// absent from the schema are skipped entirely.
func (m *Matcher) ExtractDifferences(t *catalog.Table, groups []Group) {
	extracted := 0
	for _, g := range groups {
		for _, member := range g.Members {
			rec, ok := t.Get(member.Code)
			if !ok {
				continue
			}
			cols := m.schema.Columns(rec.Category)
			if len(cols) == 0 {
				continue
			}
			allowed := make(map[string]bool, len(cols))
			for _, c := range cols {
				allowed[c] = true
			}

			if allowed[catalog.AttrWidth] || allowed[catalog.AttrLength] || allowed[catalog.AttrHeight] {
				width, length, height := extractDimensions(rec.Name, rec.Params)
				if allowed[catalog.AttrWidth] {
					rec.SetAttribute(catalog.AttrWidth, width)
				}
				if allowed[catalog.AttrLength] {
					rec.SetAttribute(catalog.AttrLength, length)
				}
				if allowed[catalog.AttrHeight] {
					rec.SetAttribute(catalog.AttrHeight, height)
				}
			}
			if allowed[catalog.AttrPower] {
				rec.SetAttribute(catalog.AttrPower, extractPower(rec.Name, rec.Params))
			}
			if allowed[catalog.AttrVolume] {
				rec.SetAttribute(catalog.AttrVolume, extractVolume(rec.Name, rec.Params))
			}
			if allowed[catalog.AttrVariant] {
				rec.SetAttribute(catalog.AttrVariant, extractVariantLabel(member.Name, member.BaseName))
			}
			if len(rec.Attributes) > 0 {
				extracted++
			}
		}
	}
	m.logger.Info().Int("products", extracted).Msg("difference extraction complete")
}

// extractDimensions pulls width/length/height from the name, then the
// parameter text, trying 3-D runs first, then 2-D, then labeled fields.
// First successful pattern per dimension wins; units default to mm.
func extractDimensions(name, params string) (width, length, height string) {
	if m := dims3D.FindStringSubmatch(name); m != nil {
		return formatDim(m[1], m[4]), formatDim(m[2], m[4]), formatDim(m[3], m[4])
	}
	if m := dims2D.FindStringSubmatch(name); m != nil {
		return formatDim(m[1], m[3]), formatDim(m[2], m[3]), ""
	}
	if params != "" {
		if m := dims3D.FindStringSubmatch(params); m != nil {
			return formatDim(m[1], m[4]), formatDim(m[2], m[4]), formatDim(m[3], m[4])
		}
		if m := dims2D.FindStringSubmatch(params); m != nil {
			return formatDim(m[1], m[3]), formatDim(m[2], m[3]), ""
		}
	}

	sources := []string{name}
	if params != "" {
		sources = append(sources, params)
	}
	for _, text := range sources {
		if width == "" {
			width = matchLabeled(widthPatterns, text)
		}
		if length == "" {
			length = matchLabeled(lengthPatterns, text)
		}
		if height == "" {
			height = matchLabeled(heightPatterns, text)
		}
	}
	return width, length, height
}

func matchLabeled(patterns []*regexp.Regexp, text string) string {
	for _, p := range patterns {
		if m := p.FindStringSubmatch(text); m != nil {
			unit := ""
			if len(m) > 2 {
				unit = m[2]
			}
			return formatDim(m[1], unit)
		}
	}
	return ""
}

func formatDim(value, unit string) string {
	if unit == "" {
		unit = units.Millimeter
	}
	v, u, ok := units.NormalizeString(value, unit)
	if !ok {
		return ""
	}
	return units.Format(v, u)
}

// extractPower finds "4 x 2,6 kW" multiplier forms first, then plain and
// labeled forms; output is watt-normalized ("2x 2600 W").
func extractPower(name, params string) string {
	return extractQuantity(powerPatterns, name, params)
}

// extractVolume mirrors extractPower for liters.
func extractVolume(name, params string) string {
	return extractQuantity(volumePatterns, name, params)
}

func extractQuantity(patterns []*regexp.Regexp, name, params string) string {
	sources := []string{name}
	if params != "" {
		sources = append(sources, params)
	}
	for _, text := range sources {
		for _, p := range patterns {
			m := p.FindStringSubmatch(text)
			if m == nil {
				continue
			}
			if len(m) == 4 {
				v, u, ok := units.NormalizeString(m[2], m[3])
				if !ok {
					continue
				}
				return m[1] + "x " + units.Format(v, u)
			}
			v, u, ok := units.NormalizeString(m[1], m[2])
			if !ok {
				continue
			}
			return units.Format(v, u)
		}
	}
	return ""
}

// extractVariantLabel derives a short label for what distinguishes a member
// from its siblings: a zone count, a GN container count, a numeric type
// prefix, or the literal leftover after removing the base name. Long
// leftovers are unreliable and are discarded.
func extractVariantLabel(fullName, baseName string) string {
	if fullName == baseName {
		return ""
	}
	if m := zonePattern.FindStringSubmatch(fullName); m != nil {
		return m[1] + " zón"
	}
	if m := gnPattern.FindStringSubmatch(fullName); m != nil {
		return m[1] + "x GN"
	}
	if m := typePrefix.FindStringSubmatch(fullName); m != nil {
		return "Typ " + m[1]
	}
	diff := strings.TrimSpace(strings.ReplaceAll(fullName, baseName, ""))
	if diff != "" && len([]rune(diff)) <= constants.MaxVariantLabelLength {
		return strings.Trim(diff, labelTrimCutset)
	}
	return ""
}
