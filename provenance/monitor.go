package provenance

import "github.com/traversaal-ai/lennyhub-rag/core"

// Monitor provides hooks to observe the resolution process.
// Implement this interface to track intermediate steps while passages are
// attributed to their sources.
type Monitor interface {
	Start(rawContext string, sections int)
	SectionMatched(passage core.Passage)
	SectionUnmatched(content string)
	Finish(passages []core.Passage)
}

// noopMonitor is a no-op implementation of Monitor
type noopMonitor struct{}

var _ Monitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string, _ int)          {}
func (n *noopMonitor) SectionMatched(_ core.Passage)  {}
func (n *noopMonitor) SectionUnmatched(_ string)      {}
func (n *noopMonitor) Finish(_ []core.Passage)        {}
