package generation

import (
	"iter"

	"server/internal/domain"
	"server/internal/providers/genai"
)

// ExtractCitations yields the web sources cited by a search-augmented reply,
// in the order the grounding metadata reports them. Chunks without a usable
// URI are dropped; duplicate URIs are kept because relative order may carry a
// relevance signal. The sequence is empty, never nil, when the response used
// no grounding.
func ExtractCitations(resp *genai.GenerateContentResponse) iter.Seq[domain.Citation] {
	return func(yield func(domain.Citation) bool) {
		if resp == nil || len(resp.Candidates) == 0 {
			return
		}
		meta := resp.Candidates[0].GroundingMetadata
		if meta == nil {
			return
		}
		for _, chunk := range meta.GroundingChunks {
			if chunk.Web == nil || chunk.Web.URI == "" {
				continue
			}
			if !yield(domain.Citation{Title: chunk.Web.Title, URI: chunk.Web.URI}) {
				return
			}
		}
	}
}

// collectCitations materializes the citation sequence into a non-nil slice.
func collectCitations(resp *genai.GenerateContentResponse) []domain.Citation {
	citations := []domain.Citation{}
	for c := range ExtractCitations(resp) {
		citations = append(citations, c)
	}
	return citations
}
