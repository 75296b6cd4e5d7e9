package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"toursync/pkg/utils"
)

func newTestOutlineClient(server *httptest.Server) *OutlineClient {
	return &OutlineClient{
		HTTP:     server.Client(),
		BaseURL:  server.URL,
		APIKey:   "ol_api_test",
		PageSize: 2,
	}
}

func TestOutlineClient_ListDocuments(t *testing.T) {
	var offsets []int

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer ol_api_test" {
			t.Errorf("Authorization = %q", got)
		}
		if r.URL.Path != "/documents.list" {
			t.Errorf("path = %q, want /documents.list", r.URL.Path)
		}

		var payload struct {
			ParentDocumentID string `json:"parentDocumentId"`
			Limit            int    `json:"limit"`
			Offset           int    `json:"offset"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("decode payload: %v", err)
		}
		if payload.ParentDocumentID != "folder-a" {
			t.Errorf("parentDocumentId = %q, want folder-a", payload.ParentDocumentID)
		}
		if payload.Limit != 2 {
			t.Errorf("limit = %d, want 2", payload.Limit)
		}
		offsets = append(offsets, payload.Offset)

		var docs []OutlineDocument
		if payload.Offset == 0 {
			docs = []OutlineDocument{
				{ID: "doc-1", Title: "WR4 - White Rim 4-Day"},
				{ID: "doc-2", Title: "KT3 - Kokopelli 3-Day"},
			}
		} else {
			docs = []OutlineDocument{
				{ID: "doc-3", Title: "PCS - Porcupine Shuttle"},
			}
		}
		json.NewEncoder(w).Encode(map[string]interface{}{"data": docs})
	}))
	defer server.Close()

	client := newTestOutlineClient(server)
	docs, err := client.ListDocuments(context.Background(), "folder-a")
	if err != nil {
		t.Fatalf("ListDocuments() error = %v", err)
	}

	if len(docs) != 3 {
		t.Fatalf("got %d documents, want 3 across two pages", len(docs))
	}
	if len(offsets) != 2 || offsets[0] != 0 || offsets[1] != 2 {
		t.Errorf("offsets = %v, want [0 2]", offsets)
	}
	if docs[2].ID != "doc-3" {
		t.Errorf("docs[2].ID = %q, want doc-3", docs[2].ID)
	}
}

func TestOutlineClient_GetDocument(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/documents.info" {
			t.Errorf("path = %q, want /documents.info", r.URL.Path)
		}

		var payload struct {
			ID string `json:"id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("decode payload: %v", err)
		}
		if payload.ID != "doc-1" {
			t.Errorf("id = %q, want doc-1", payload.ID)
		}

		json.NewEncoder(w).Encode(map[string]interface{}{
			"data": OutlineDocument{
				ID:        "doc-1",
				Title:     "WR4 - White Rim 4-Day",
				Text:      "> A classic.",
				UpdatedAt: "2026-05-01T12:00:00.000Z",
			},
		})
	}))
	defer server.Close()

	client := newTestOutlineClient(server)
	doc, err := client.GetDocument(context.Background(), "doc-1")
	if err != nil {
		t.Fatalf("GetDocument() error = %v", err)
	}
	if doc.Title != "WR4 - White Rim 4-Day" || doc.Text != "> A classic." {
		t.Errorf("doc = %+v", doc)
	}
}

func TestOutlineClient_NonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	}))
	defer server.Close()

	client := newTestOutlineClient(server)
	if _, err := client.ListDocuments(context.Background(), "folder-a"); !errors.Is(err, utils.ErrUpstreamError) {
		t.Errorf("ListDocuments err = %v, want ErrUpstreamError", err)
	}
	if _, err := client.GetDocument(context.Background(), "doc-1"); !errors.Is(err, utils.ErrUpstreamError) {
		t.Errorf("GetDocument err = %v, want ErrUpstreamError", err)
	}
}
