package mcp

import (
	"context"
	"errors"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ErrClassificationUnavailable is reported by the classify tool when
// no scan service was wired (e.g. the model backend failed to start).
var ErrClassificationUnavailable = errors.New("classification is not available")

// ClassifyInput is the input schema for the classify_document tool.
type ClassifyInput struct {
	Path string `json:"path" jsonschema:"absolute path of the document to classify"`
}

// ClassifyOutput is the output schema for the classify_document tool.
type ClassifyOutput struct {
	Path     string `json:"path"`
	DomainCN string `json:"domain_cn"`
	DomainEN string `json:"domain_en"`
	Model    string `json:"model"`
}

// ListDomainsOutput is the output schema for the list_domains tool.
type ListDomainsOutput struct {
	Domains []DomainCountOutput `json:"domains"`
	Total   int                 `json:"total"`
}

// DomainCountOutput represents one domain with its record count.
type DomainCountOutput struct {
	DomainCN string `json:"domain_cn"`
	DomainEN string `json:"domain_en"`
	Count    int    `json:"count"`
}

// QueryDomainInput is the input schema for the query_domain tool.
type QueryDomainInput struct {
	Domain string `json:"domain" jsonschema:"the domain label to filter by (Chinese or English)"`
	Limit  int    `json:"limit,omitempty" jsonschema:"maximum number of records to return (default 50)"`
}

// QueryDomainOutput is the output schema for the query_domain tool.
type QueryDomainOutput struct {
	Records []RecordOutput `json:"records"`
	Count   int            `json:"count"`
}

// RecordOutput represents a single classification record.
type RecordOutput struct {
	FileName string `json:"file_name"`
	FilePath string `json:"file_path"`
	DomainCN string `json:"domain_cn"`
	DomainEN string `json:"domain_en"`
	Model    string `json:"model,omitempty"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "classify_document",
		Description: "Classify one document by academic domain and store the result",
	}, s.handleClassify)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_domains",
		Description: "List classified domains with record counts",
	}, s.handleListDomains)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "query_domain",
		Description: "List classification records under a domain label",
	}, s.handleQueryDomain)
}

// handleClassify handles the classify_document tool invocation.
func (s *Server) handleClassify(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ClassifyInput,
) (*mcp.CallToolResult, ClassifyOutput, error) {
	if s.ports.Scan == nil {
		return nil, ClassifyOutput{}, ErrClassificationUnavailable
	}

	rec, err := s.ports.Scan.ScanFile(ctx, input.Path)
	if err != nil {
		return nil, ClassifyOutput{}, err
	}

	return nil, ClassifyOutput{
		Path:     rec.FilePath,
		DomainCN: rec.DomainCN,
		DomainEN: rec.DomainEN,
		Model:    rec.Model,
	}, nil
}

// handleListDomains handles the list_domains tool invocation.
func (s *Server) handleListDomains(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ struct{},
) (*mcp.CallToolResult, ListDomainsOutput, error) {
	counts, err := s.ports.Library.Domains(ctx)
	if err != nil {
		return nil, ListDomainsOutput{}, err
	}

	output := ListDomainsOutput{
		Domains: make([]DomainCountOutput, len(counts)),
	}
	for i, c := range counts {
		output.Domains[i] = DomainCountOutput{
			DomainCN: c.DomainCN,
			DomainEN: c.DomainEN,
			Count:    c.Count,
		}
		output.Total += c.Count
	}

	return nil, output, nil
}

// handleQueryDomain handles the query_domain tool invocation.
func (s *Server) handleQueryDomain(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input QueryDomainInput,
) (*mcp.CallToolResult, QueryDomainOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = 50
	}

	records, err := s.ports.Library.RecordsByDomain(ctx, input.Domain)
	if err != nil {
		return nil, QueryDomainOutput{}, err
	}
	if len(records) > limit {
		records = records[:limit]
	}

	output := QueryDomainOutput{
		Records: make([]RecordOutput, len(records)),
		Count:   len(records),
	}
	for i := range records {
		output.Records[i] = RecordOutput{
			FileName: records[i].FileName,
			FilePath: records[i].FilePath,
			DomainCN: records[i].DomainCN,
			DomainEN: records[i].DomainEN,
			Model:    records[i].Model,
		}
	}

	return nil, output, nil
}
