package service

import (
	"fmt"
	"sort"
	"strings"

	"contract-analyzer/internal/domain"
)

// The summarization collaborator returns free text organized by labeled
// sections. The grammar is: known labels appear at most once, each
// section runs until the next known label or end of text, and required
// labels must be present. Parsing fails loudly instead of silently
// substituting defaults, so a drifting prompt format is caught.

type sectionSpec struct {
	label    string
	required bool
}

var analysisSections = []sectionSpec{
	{label: "TYPE", required: true},
	{label: "SUMMARY", required: true},
	{label: "RECOMMENDATIONS", required: true},
	{label: "KEY_EXCERPTS", required: false},
}

// ParseAnalysisResponse parses the model's analysis output into its
// typed form. Returns domain.ErrMissingSection (wrapped) when a
// required label is absent.
func ParseAnalysisResponse(raw string) (*domain.AISummary, error) {
	sections, err := splitLabeledSections(raw, analysisSections)
	if err != nil {
		return nil, err
	}

	result := &domain.AISummary{
		DocumentType:    strings.ToLower(firstLine(sections["TYPE"])),
		Summary:         sections["SUMMARY"],
		Recommendations: sections["RECOMMENDATIONS"],
	}
	if excerpts, ok := sections["KEY_EXCERPTS"]; ok {
		result.KeyExcerpts = splitExcerpts(excerpts)
	}
	return result, nil
}

// splitLabeledSections cuts raw into sections keyed by label. Each
// section's content spans from after "LABEL:" to the start of the next
// known label (in position order) or end of text.
func splitLabeledSections(raw string, specs []sectionSpec) (map[string]string, error) {
	type labelPos struct {
		label string
		start int // index of the label itself
		body  int // index just past "LABEL:"
	}

	var positions []labelPos
	for _, spec := range specs {
		marker := spec.label + ":"
		idx := strings.Index(raw, marker)
		if idx < 0 {
			if spec.required {
				return nil, fmt.Errorf("%w: %s", domain.ErrMissingSection, spec.label)
			}
			continue
		}
		positions = append(positions, labelPos{label: spec.label, start: idx, body: idx + len(marker)})
	}

	sort.Slice(positions, func(i, j int) bool { return positions[i].start < positions[j].start })

	sections := make(map[string]string, len(positions))
	for i, pos := range positions {
		end := len(raw)
		if i+1 < len(positions) {
			end = positions[i+1].start
		}
		sections[pos.label] = strings.TrimSpace(raw[pos.body:end])
	}
	return sections, nil
}

func firstLine(s string) string {
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		s = s[:idx]
	}
	return strings.TrimSpace(s)
}

// splitExcerpts breaks the KEY_EXCERPTS section into individual quoted
// excerpts, tolerating bullet markers and blank lines.
func splitExcerpts(s string) []string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimLeft(line, "-*• \t")
		line = strings.Trim(line, `"`)
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}
