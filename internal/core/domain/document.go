package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Candidate is a résumé submitted to a workspace for screening.
type Candidate struct {
	// ID is the stable candidate identifier supplied by the caller.
	ID string `json:"id"`

	// Name is the candidate's display name.
	Name string `json:"candidate,omitempty"`

	// Email is the candidate's contact address.
	Email string `json:"email,omitempty"`

	// Skills lists extracted skills.
	Skills []string `json:"skills,omitempty"`

	// Experience is a short experience summary.
	Experience string `json:"experience,omitempty"`

	// Rank is the screening rank assigned upstream.
	Rank int `json:"rank,omitempty"`

	// Text is the extracted résumé text.
	Text string `json:"text"`
}

// UnmarshalJSON accepts "resume_id" as an alias of "id", and skills either
// as a list or as a comma separated string.
func (c *Candidate) UnmarshalJSON(data []byte) error {
	type plain Candidate
	var aux struct {
		plain
		ResumeID string          `json:"resume_id"`
		Skills   json.RawMessage `json:"skills"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	*c = Candidate(aux.plain)
	if c.ID == "" {
		c.ID = aux.ResumeID
	}

	c.Skills = nil
	if len(aux.Skills) == 0 || string(aux.Skills) == "null" {
		return nil
	}
	if err := json.Unmarshal(aux.Skills, &c.Skills); err == nil {
		return nil
	}
	var flat string
	if err := json.Unmarshal(aux.Skills, &flat); err != nil {
		return fmt.Errorf("skills: %w", err)
	}
	for _, s := range strings.Split(flat, ",") {
		if s = strings.TrimSpace(s); s != "" {
			c.Skills = append(c.Skills, s)
		}
	}
	return nil
}

// Indexable reports whether the candidate carries enough data to be chunked.
func (c Candidate) Indexable() bool {
	return strings.TrimSpace(c.ID) != "" && strings.TrimSpace(c.Text) != ""
}

// ChunkMetadata is stored alongside every chunk of a candidate.
type ChunkMetadata struct {
	CandidateID       string `json:"resume_id"`
	CandidateName     string `json:"candidate"`
	Email             string `json:"email"`
	Skills            string `json:"skills"`
	ExperienceSummary string `json:"experience"`
	Rank              int    `json:"rank"`
	ChunkIndex        int    `json:"chunk_idx"`
}

// MetadataFor builds chunk metadata for a candidate.
// Skills are flattened to a comma separated string.
func MetadataFor(c Candidate, index int) ChunkMetadata {
	return ChunkMetadata{
		CandidateID:       c.ID,
		CandidateName:     c.Name,
		Email:             c.Email,
		Skills:            strings.Join(c.Skills, ", "),
		ExperienceSummary: c.Experience,
		Rank:              c.Rank,
		ChunkIndex:        index,
	}
}

// Chunk is a bounded substring of a résumé stored as the unit of retrieval.
// Chunks are immutable once written; re-ingestion overwrites by ID.
type Chunk struct {
	// ID is derived from the candidate ID and chunk index.
	ID string

	// WorkspaceID is the tenant the chunk belongs to.
	WorkspaceID string

	// CandidateID is the résumé the chunk was cut from.
	CandidateID string

	// Index is the position of the chunk among the candidate's kept chunks.
	Index int

	// Text is the chunk content.
	Text string

	// Offset is the rune offset of the chunk in the normalised source text.
	Offset int

	// Metadata is copied from the candidate record.
	Metadata ChunkMetadata

	// Embedding is the vector representation, set by the index writer.
	Embedding []float32
}

// ChunkID returns the deterministic identifier of a candidate's chunk.
func ChunkID(candidateID string, index int) string {
	return fmt.Sprintf("%s::c%d", candidateID, index)
}

// CollectionName returns the vector collection name for a workspace.
func CollectionName(workspaceID string) string {
	return "resumes_" + workspaceID
}

// WorkspaceStats summarises what a workspace collection holds.
type WorkspaceStats struct {
	WorkspaceID    string   `json:"workspace_id"`
	CandidateID    string   `json:"resume_id,omitempty"`
	ChunksCount    int      `json:"chunks_count"`
	SampleSnippets []string `json:"sample_snippets"`
}
