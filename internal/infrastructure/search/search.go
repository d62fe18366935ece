// Package search keeps a member projection in Elasticsearch.
package search

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"github.com/oksasatya/alc-backend/internal/domain/entity"
)

// NewESClient creates an Elasticsearch client with sane defaults and optional basic auth.
func NewESClient(addrs []string, username, password string) (*elasticsearch.Client, error) {
	cfg := elasticsearch.Config{
		Addresses: addrs,
		Username:  username,
		Password:  password,
		Transport: &http.Transport{
			MaxIdleConnsPerHost:   10,
			ResponseHeaderTimeout: 5 * time.Second,
			TLSClientConfig:       &tls.Config{MinVersion: tls.VersionTLS12},
			DialContext:           (&net.Dialer{Timeout: 5 * time.Second}).DialContext,
		},
	}
	return elasticsearch.NewClient(cfg)
}

// MemberIndex writes and queries the members index. Password and reset
// fields never leave the database.
type MemberIndex struct {
	es    *elasticsearch.Client
	index string
}

func NewMemberIndex(es *elasticsearch.Client, index string) *MemberIndex {
	return &MemberIndex{es: es, index: index}
}

// StatusError is a non-2xx answer from Elasticsearch.
type StatusError struct {
	Status int
	Body   string
}

func (e *StatusError) Error() string        { return fmt.Sprintf("elasticsearch: status %d", e.Status) }
func (e *StatusError) StatusCode() int      { return e.Status }
func (e *StatusError) ResponseBody() string { return e.Body }

func statusErr(res *esapi.Response) error {
	var buf bytes.Buffer
	_, _ = buf.ReadFrom(res.Body)
	return &StatusError{Status: res.StatusCode, Body: buf.String()}
}

func (m *MemberIndex) IndexUser(ctx context.Context, u *entity.User) error {
	doc := map[string]any{
		"id":                u.ID,
		"membership_id":     u.MembershipID,
		"email":             u.Email,
		"name":              u.Name,
		"occupation":        string(u.Occupation),
		"profile_image_url": u.ProfileImageURL,
		"created_at":        u.CreatedAt.Format(time.RFC3339Nano),
		"updated_at":        u.UpdatedAt.Format(time.RFC3339Nano),
	}
	b, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	req := esapi.IndexRequest{Index: m.index, DocumentID: u.ID, Body: bytes.NewReader(b), Refresh: "false"}
	res, err := req.Do(ctx, m.es)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return statusErr(res)
	}
	return nil
}

// SearchUsers runs a multi_match over membership id, email and name.
func (m *MemberIndex) SearchUsers(ctx context.Context, q string, size int) ([]map[string]any, error) {
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"membership_id^3", "email^2", "name"},
			},
		},
		"size": size,
	}
	b, err := json.Marshal(query)
	if err != nil {
		return nil, err
	}

	res, err := m.es.Search(
		m.es.Search.WithContext(ctx),
		m.es.Search.WithIndex(m.index),
		m.es.Search.WithBody(bytes.NewReader(b)),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return nil, statusErr(res)
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string         `json:"_id"`
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}
	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}
