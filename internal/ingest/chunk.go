package ingest

import "strings"

const (
	defaultChunkSize    = 500
	defaultChunkOverlap = 50
)

// SplitText splits text into chunks of at most maxLen characters, preferring
// paragraph boundaries and carrying overlap characters of trailing context
// into the next chunk. Text at or under maxLen is returned as-is.
func SplitText(text string, maxLen, overlap int) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	if len(text) <= maxLen {
		return []string{text}
	}

	paragraphs := strings.Split(text, "\n\n")
	var chunks []string
	var current strings.Builder

	// seedLen marks how much of current is carried-over overlap; a chunk is
	// only flushed once it holds text beyond the seed.
	seedLen := 0
	flush := func() {
		chunk := strings.TrimSpace(current.String())
		if chunk != "" {
			chunks = append(chunks, chunk)
		}
		current.Reset()
		seedLen = 0
		// Seed the next chunk with the tail of this one for continuity.
		if overlap > 0 && len(chunk) > overlap {
			current.WriteString(chunk[len(chunk)-overlap:])
			current.WriteString("\n")
			seedLen = current.Len()
		}
	}

	for _, para := range paragraphs {
		// Hard-split paragraphs that alone exceed the limit, filling
		// whatever room the overlap seed leaves.
		for len(para) > maxLen {
			if current.Len() > seedLen {
				flush()
			}
			room := maxLen - current.Len()
			current.WriteString(para[:room])
			flush()
			para = para[room:]
		}
		if current.Len() > seedLen && current.Len()+len(para)+2 > maxLen {
			flush()
		}
		if current.Len()+len(para)+2 > maxLen {
			// The seed alone leaves no room for this paragraph.
			current.Reset()
			seedLen = 0
		}
		if current.Len() > 0 {
			current.WriteString("\n\n")
		}
		current.WriteString(para)
	}
	flush()

	return chunks
}
