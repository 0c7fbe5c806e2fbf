// Package agent contains the concrete agent implementations and the shared
// BaseAgent lifecycle machinery.
//
// Every agent wraps one external capability behind the core.Agent contract:
//
//   - GoogleSearchAgent maps a query to ranked web snippets (Google Custom
//     Search API)
//   - WikipediaAgent maps a topic to a bounded encyclopedic extract
//     (MediaWiki API)
//   - SynthesisAgent maps a bundle of upstream sources plus a token budget
//     to a generated report (any model.Model provider)
//
// Agents receive all configuration explicitly through their config structs;
// nothing in this package reads environment or global state.
package agent
