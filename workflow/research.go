package workflow

import (
	"context"
	"fmt"

	"github.com/ruslanmv/agenticai/agent"
	"github.com/ruslanmv/agenticai/core"
)

// Default agent identities the research pipeline dispatches to. Override via
// Options when registering agents under different names.
const (
	DefaultSearchAgentName    = "google-search-agent"
	DefaultWikipediaAgentName = "wikipedia-agent"
	DefaultCrafterAgentName   = "crafter-agent"
)

// Step identifiers used in the research WorkflowRun record.
const (
	StepWebSearch  = "web-search"
	StepWikiLookup = "wiki-lookup"
	StepSynthesis  = "synthesis"
)

// ResearchParams bounds the research pipeline's stages.
type ResearchParams struct {
	// NumSearchResults caps the web search hits. Defaults to 5.
	NumSearchResults int
	// WikiSentences caps the encyclopedia extract length. Defaults to 5.
	WikiSentences int
	// ReportMaxTokens is the synthesis output budget. Defaults to 1500.
	ReportMaxTokens int
}

func (p *ResearchParams) applyDefaults() {
	if p.NumSearchResults <= 0 {
		p.NumSearchResults = 5
	}
	if p.WikiSentences <= 0 {
		p.WikiSentences = 5
	}
	if p.ReportMaxTokens <= 0 {
		p.ReportMaxTokens = 1500
	}
}

// ExecuteResearchWorkflow runs the canonical three stage pipeline:
//
//  1. fan out the web search and encyclopedia agents in parallel (both
//     depend only on the query),
//  2. assemble their outputs into a source bundle,
//  3. invoke the synthesis agent once with the bundle and the token budget.
//
// The returned WorkflowRun always contains a result for all three stages.
// Whether synthesis tolerates a failed gathering stage is governed by the
// engine's RequireAllSources option; when both gathering stages fail the
// synthesis stage is always skipped.
func (e *Engine) ExecuteResearchWorkflow(ctx context.Context, query string, params ResearchParams) (*core.WorkflowRun, error) {
	params.applyDefaults()

	run := e.newRun("research")
	e.logger.Info("research workflow started", "run_id", run.ID, "query", query)

	gathered := e.coord.ExecuteParallel(ctx, []core.ExecutionRequest{
		{
			Agent:   e.searchAgent,
			Task:    query,
			Context: map[string]any{"num_results": params.NumSearchResults},
		},
		{
			Agent:   e.wikipediaAgent,
			Task:    query,
			Context: map[string]any{"sentences": params.WikiSentences},
		},
	})

	searchRes := gathered[e.searchAgent]
	wikiRes := gathered[e.wikipediaAgent]
	run.Steps[StepWebSearch] = searchRes
	run.Steps[StepWikiLookup] = wikiRes

	sources := prepareSourceData(searchRes, wikiRes)

	switch {
	case e.requireAllSources && (!searchRes.Succeeded() || !wikiRes.Succeeded()):
		run.Steps[StepSynthesis] = core.NewSkippedResult(e.crafterAgent,
			fmt.Errorf("a data gathering stage did not succeed and all sources are required"))
	case !searchRes.Succeeded() && !wikiRes.Succeeded():
		run.Steps[StepSynthesis] = core.NewSkippedResult(e.crafterAgent,
			fmt.Errorf("all data gathering stages failed"))
	default:
		res, err := e.coord.ExecuteAgent(ctx, e.crafterAgent, researchTask(query), map[string]any{
			"sources":    sources,
			"max_tokens": params.ReportMaxTokens,
		})
		if err != nil {
			res = core.NewFailureResult(e.crafterAgent, err, 0)
		}
		run.Steps[StepSynthesis] = res
		if res.Succeeded() {
			run.Output = res.Payload
		}
	}

	e.finalize(run)

	return run, nil
}

// researchTask builds the synthesis instruction for a research query.
func researchTask(query string) string {
	return fmt.Sprintf("Create a comprehensive research report about: %s\n\n"+
		"Requirements:\n"+
		"- Synthesize information from web search and encyclopedia sources\n"+
		"- Structure the report with clear sections\n"+
		"- Include key insights and findings\n"+
		"- Maintain academic rigor and cite sources\n"+
		"- Provide a conclusion with key takeaways", query)
}

// prepareSourceData normalizes the gathering stage payloads into the source
// bundle handed to synthesis. The encyclopedia extract, when present, leads.
func prepareSourceData(searchRes, wikiRes *core.ExecutionResult) []core.Source {
	var sources []core.Source

	if wikiRes.Succeeded() {
		if wiki, ok := wikiRes.Payload.(*agent.WikiPayload); ok && wiki.Found && wiki.Extract != "" {
			sources = append(sources, core.Source{
				Type:    "Wikipedia",
				Title:   wiki.Title,
				URL:     wiki.URL,
				Content: wiki.Extract,
			})
		}
	}

	if searchRes.Succeeded() {
		if search, ok := searchRes.Payload.(*agent.SearchPayload); ok {
			for _, hit := range search.Results {
				sources = append(sources, core.Source{
					Type:    "Web Search",
					Title:   hit.Title,
					URL:     hit.Link,
					Content: hit.Snippet,
				})
			}
		}
	}

	return sources
}
