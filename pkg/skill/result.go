package skill

import "strings"

// ExecutionResult is the outcome of running one skill tool. Expected
// failures (non-zero exit, timeout, rejected input) are reported here
// with Success=false; only infrastructure faults surface as errors.
type ExecutionResult struct {
	Success         bool    `json:"success"`
	Data            any     `json:"data,omitempty"`
	Error           string  `json:"error,omitempty"`
	Stdout          string  `json:"stdout,omitempty"`
	Stderr          string  `json:"stderr,omitempty"`
	ExitCode        int     `json:"exit_code"`
	ExecutionTimeMS float64 `json:"execution_time_ms"`
}

// SearchQuery filters skill metadata. Zero-valued fields don't
// constrain the search.
type SearchQuery struct {
	Query  string
	Tags   []string
	Type   Type
	Author string
}

// Matches reports whether md satisfies every populated filter: type and
// author by equality, tags by any-overlap, and Query as a
// case-insensitive substring of the name, description, or any tag.
func (q SearchQuery) Matches(md *Metadata) bool {
	if q.Type != "" && md.Type != q.Type {
		return false
	}

	if len(q.Tags) > 0 {
		found := false
		for _, want := range q.Tags {
			for _, have := range md.Tags {
				if want == have {
					found = true
					break
				}
			}
			if found {
				break
			}
		}
		if !found {
			return false
		}
	}

	if q.Author != "" && md.Author != q.Author {
		return false
	}

	if q.Query != "" {
		needle := strings.ToLower(q.Query)
		if !strings.Contains(strings.ToLower(md.Name), needle) &&
			!strings.Contains(strings.ToLower(md.Description), needle) &&
			!anyTagContains(md.Tags, needle) {
			return false
		}
	}

	return true
}

func anyTagContains(tags []string, needle string) bool {
	for _, tag := range tags {
		if strings.Contains(strings.ToLower(tag), needle) {
			return true
		}
	}
	return false
}
