package rest

import (
	"context"
	"net/http"
	"net/url"

	"github.com/songhaven/songbook/internal/domain"
	"github.com/songhaven/songbook/internal/ports"
)

// Documents implements ports.DocumentStore over the REST API.
//
// Endpoints:
//
//	POST /collections/{name}/documents            -> {"id": "..."}
//	PUT  /collections/{name}/documents/{id}       -> 204
//	GET  /collections/{name}/documents            -> {"documents": [...]}
type Documents struct {
	client *Client
}

// NewDocuments creates a document store backed by the REST client.
func NewDocuments(client *Client) *Documents {
	return &Documents{client: client}
}

type createResponse struct {
	ID string `json:"id"`
}

// listedDocument pairs a store key with its record. The id lives in the
// envelope, not the record body, so DocumentID is populated here.
type listedDocument struct {
	ID     string      `json:"id"`
	Record domain.Song `json:"record"`
}

type listResponse struct {
	Documents []listedDocument `json:"documents"`
}

// Create inserts a record and returns the generated document id.
func (d *Documents) Create(ctx context.Context, collection string, song domain.Song) (string, error) {
	var resp createResponse
	path := "/collections/" + url.PathEscape(collection) + "/documents"
	if err := d.client.do(ctx, http.MethodPost, path, song, &resp); err != nil {
		return "", err
	}
	return resp.ID, nil
}

// Replace writes a full replacement document at the given id.
func (d *Documents) Replace(ctx context.Context, collection, documentID string, song domain.Song) error {
	path := "/collections/" + url.PathEscape(collection) + "/documents/" + url.PathEscape(documentID)
	err := d.client.do(ctx, http.MethodPut, path, song, nil)
	if StatusCode(err) == http.StatusNotFound {
		return domain.ErrDocumentNotFound
	}
	return err
}

// ListAll fetches the whole collection in store order.
func (d *Documents) ListAll(ctx context.Context, collection string) ([]domain.Song, error) {
	var resp listResponse
	path := "/collections/" + url.PathEscape(collection) + "/documents"
	if err := d.client.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}

	songs := make([]domain.Song, 0, len(resp.Documents))
	for _, doc := range resp.Documents {
		song := doc.Record
		song.DocumentID = doc.ID
		songs = append(songs, song)
	}
	return songs, nil
}

// Verify that Documents implements the DocumentStore interface
var _ ports.DocumentStore = (*Documents)(nil)
