package ingestion

import (
	"fmt"

	"github.com/jaassure/proposal-intelligence/internal/decode"
	"github.com/jaassure/proposal-intelligence/internal/domain/entities"
)

// BuildChunk turns one extracted section into a chunk ready for embedding.
// Raw fields keep the coded values; decoded fields carry their readable form.
func BuildChunk(section Section) entities.ProposalChunk {
	fields := flattenFields(section.Data)
	return entities.ProposalChunk{
		ID:            fmt.Sprintf("%s:%s", section.QuoteID, section.Name),
		QuoteID:       section.QuoteID,
		Section:       section.Name,
		Text:          BuildSectionText(section),
		Fields:        fields,
		DecodedFields: decode.DecodeFields(fields),
		RiskLocation:  section.RiskLocation,
		UserName:      section.UserName,
	}
}

// BuildChunks converts a full row's sections.
func BuildChunks(sections []Section) []entities.ProposalChunk {
	chunks := make([]entities.ProposalChunk, 0, len(sections))
	for _, section := range sections {
		chunks = append(chunks, BuildChunk(section))
	}
	return chunks
}

// flattenFields lifts every leaf value into one flat map. Nested objects and
// arrays contribute their leaf keys directly; the executor matches on field
// names, not paths.
func flattenFields(data any) map[string]any {
	fields := make(map[string]any)
	flattenInto(fields, data)
	if len(fields) == 0 {
		return nil
	}
	return fields
}

func flattenInto(fields map[string]any, data any) {
	switch v := data.(type) {
	case map[string]any:
		for key, value := range v {
			switch value.(type) {
			case map[string]any, []any:
				flattenInto(fields, value)
			default:
				if hasValue(value) {
					fields[key] = value
				}
			}
		}
	case []any:
		for _, item := range v {
			flattenInto(fields, item)
		}
	}
}
