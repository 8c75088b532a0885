package mcp

import (
	"context"
	"errors"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taxa-labs/taxa-cli/internal/core/domain"
)

func readRequest(uri string) *mcp.ReadResourceRequest {
	return &mcp.ReadResourceRequest{
		Params: &mcp.ReadResourceParams{URI: uri},
	}
}

func TestServer_handleRecordsResource(t *testing.T) {
	ctx := context.Background()

	t.Run("returns all records as JSON", func(t *testing.T) {
		mockLib := &mockLibraryService{
			records: []domain.Record{
				{FileName: "a.pdf", FilePath: "/papers/a.pdf", DomainCN: "病毒学", DomainEN: "Virology"},
			},
		}

		server, err := NewServer(&Ports{Library: mockLib})
		require.NoError(t, err)

		result, err := server.handleRecordsResource(ctx, readRequest("taxa://records"))

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Equal(t, "taxa://records", result.Contents[0].URI)
		assert.Equal(t, "application/json", result.Contents[0].MIMEType)
		assert.Contains(t, result.Contents[0].Text, `"file_name": "a.pdf"`)
		assert.Contains(t, result.Contents[0].Text, `"domain_cn": "病毒学"`)
	})

	t.Run("empty corpus yields empty array", func(t *testing.T) {
		server, err := NewServer(&Ports{Library: &mockLibraryService{}})
		require.NoError(t, err)

		result, err := server.handleRecordsResource(ctx, readRequest("taxa://records"))

		require.NoError(t, err)
		assert.Equal(t, "[]", result.Contents[0].Text)
	})

	t.Run("propagates store errors", func(t *testing.T) {
		server, err := NewServer(&Ports{Library: &mockLibraryService{err: errors.New("store closed")}})
		require.NoError(t, err)

		_, err = server.handleRecordsResource(ctx, readRequest("taxa://records"))

		assert.Error(t, err)
	})
}

func TestServer_handleDomainsResource(t *testing.T) {
	mockLib := &mockLibraryService{
		domains: []domain.DomainCount{
			{DomainCN: "免疫学", DomainEN: "Immunology", Count: 4},
		},
	}

	server, err := NewServer(&Ports{Library: mockLib})
	require.NoError(t, err)

	result, err := server.handleDomainsResource(context.Background(), readRequest("taxa://domains"))

	require.NoError(t, err)
	assert.Contains(t, result.Contents[0].Text, `"domain_cn": "免疫学"`)
	assert.Contains(t, result.Contents[0].Text, `"count": 4`)
}

func TestServer_handleDomainRecordsResource(t *testing.T) {
	ctx := context.Background()

	t.Run("returns records for the domain", func(t *testing.T) {
		mockLib := &mockLibraryService{
			records: []domain.Record{
				{FileName: "v.pdf", DomainCN: "病毒学"},
			},
		}

		server, err := NewServer(&Ports{Library: mockLib})
		require.NoError(t, err)

		uri := "taxa://domains/病毒学/records"
		result, err := server.handleDomainRecordsResource(ctx, readRequest(uri))

		require.NoError(t, err)
		assert.Contains(t, result.Contents[0].Text, `"file_name": "v.pdf"`)
	})

	t.Run("malformed URI is not found", func(t *testing.T) {
		server, err := NewServer(&Ports{Library: &mockLibraryService{}})
		require.NoError(t, err)

		_, err = server.handleDomainRecordsResource(ctx, readRequest("taxa://domains/"))

		assert.Error(t, err)
	})
}

func TestExtractDomain(t *testing.T) {
	tests := []struct {
		name string
		uri  string
		want string
	}{
		{
			name: "valid URI",
			uri:  "taxa://domains/Virology/records",
			want: "Virology",
		},
		{
			name: "Chinese label",
			uri:  "taxa://domains/病毒学/records",
			want: "病毒学",
		},
		{
			name: "missing suffix",
			uri:  "taxa://domains/Virology",
			want: "",
		},
		{
			name: "wrong scheme",
			uri:  "other://domains/Virology/records",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractDomain(tt.uri))
		})
	}
}
