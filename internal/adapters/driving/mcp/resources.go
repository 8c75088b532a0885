package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/taxa-labs/taxa-cli/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for Taxa resources.
	uriScheme = "taxa://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	// Static resource for the full record list.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "records",
		Name:        "records",
		Description: "Every classification record in the corpus",
		MIMEType:    "application/json",
	}, s.handleRecordsResource)

	// Static resource for the domain counts.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "domains",
		Name:        "domains",
		Description: "Classified domains with record counts",
		MIMEType:    "application/json",
	}, s.handleDomainsResource)

	// Template for records under one domain.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "domains/{domain}/records",
		Name:        "domain-records",
		Description: "Classification records under a specific domain",
		MIMEType:    "application/json",
	}, s.handleDomainRecordsResource)
}

// handleRecordsResource returns every record in the corpus.
func (s *Server) handleRecordsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	records, err := s.ports.Library.AllRecords(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing records: %w", err)
	}
	return recordsResult(req.Params.URI, recordOutputs(records))
}

// handleDomainsResource returns per-domain record counts.
func (s *Server) handleDomainsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	counts, err := s.ports.Library.Domains(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing domains: %w", err)
	}

	infos := make([]DomainCountOutput, len(counts))
	for i, c := range counts {
		infos[i] = DomainCountOutput{
			DomainCN: c.DomainCN,
			DomainEN: c.DomainEN,
			Count:    c.Count,
		}
	}
	return recordsResult(req.Params.URI, infos)
}

// handleDomainRecordsResource returns records for a specific domain.
func (s *Server) handleDomainRecordsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	// Extract domain from URI: taxa://domains/{domain}/records
	label := extractDomain(req.Params.URI)
	if label == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	records, err := s.ports.Library.RecordsByDomain(ctx, label)
	if err != nil {
		return nil, fmt.Errorf("listing domain records: %w", err)
	}
	return recordsResult(req.Params.URI, recordOutputs(records))
}

// recordsResult marshals v as the single JSON content of a resource.
func recordsResult(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling resource: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// recordOutputs converts domain records to the wire shape shared with
// the query_domain tool.
func recordOutputs(records []domain.Record) []RecordOutput {
	infos := make([]RecordOutput, len(records))
	for i := range records {
		infos[i] = RecordOutput{
			FileName: records[i].FileName,
			FilePath: records[i].FilePath,
			DomainCN: records[i].DomainCN,
			DomainEN: records[i].DomainEN,
			Model:    records[i].Model,
		}
	}
	return infos
}

// extractDomain extracts the domain label from a URI like taxa://domains/{domain}/records.
func extractDomain(uri string) string {
	const prefix = uriScheme + "domains/"
	const suffix = "/records"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	uri = strings.TrimPrefix(uri, prefix)
	if !strings.HasSuffix(uri, suffix) {
		return ""
	}

	return strings.TrimSuffix(uri, suffix)
}
