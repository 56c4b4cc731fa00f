package catalog

// Header carries the DAT-level metadata block shared by all dialects.
type Header struct {
	Name        string
	Description string
	RootDir     string
	Category    string
	Version     string
	Date        string
	Author      string
	Email       string
	Homepage    string
	URL         string
	Comment     string
	// Type is "superdat" for hierarchy-encoding DATs.
	Type string

	ForceMerging string
	ForceNodump  string
	ForcePacking string
}

// Merge folds other into the receiver with first-non-empty-wins
// semantics: once a field has been set from one source element, later
// elements never overwrite it.
func (h *Header) Merge(other Header) {
	fill(&h.Name, other.Name)
	fill(&h.Description, other.Description)
	fill(&h.RootDir, other.RootDir)
	fill(&h.Category, other.Category)
	fill(&h.Version, other.Version)
	fill(&h.Date, other.Date)
	fill(&h.Author, other.Author)
	fill(&h.Email, other.Email)
	fill(&h.Homepage, other.Homepage)
	fill(&h.URL, other.URL)
	fill(&h.Comment, other.Comment)
	fill(&h.Type, other.Type)
	fill(&h.ForceMerging, other.ForceMerging)
	fill(&h.ForceNodump, other.ForceNodump)
	fill(&h.ForcePacking, other.ForcePacking)
}

func fill(dst *string, src string) {
	if *dst == "" {
		*dst = src
	}
}
