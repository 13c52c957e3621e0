package qdrant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/buildeval/assessment-rag/internal/core/domain"
)

type Client struct {
	baseURL    string
	collection string
	httpClient *http.Client

	ensureMu          sync.Mutex
	ensuredCollection bool
	ensuredVectorSize int
}

func New(baseURL, collection string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		collection: collection,
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
}

func (c *Client) IndexChunks(ctx context.Context, doc *domain.Document, chunks []domain.EnrichedChunk, vectors [][]float32) error {
	if len(chunks) == 0 || len(vectors) == 0 {
		return nil
	}
	if len(chunks) != len(vectors) {
		return fmt.Errorf("chunks/vectors mismatch")
	}

	if err := c.ensureCollection(ctx, len(vectors[0])); err != nil {
		return err
	}

	type point struct {
		ID      string         `json:"id"`
		Vector  []float32      `json:"vector"`
		Payload map[string]any `json:"payload"`
	}

	points := make([]point, 0, len(chunks))
	for i, chunk := range chunks {
		points = append(points, point{
			ID:     uuid.NewString(),
			Vector: vectors[i],
			Payload: map[string]any{
				"doc_id":            doc.ID,
				"file_name":         doc.Filename,
				"category":          doc.Category,
				"document_type":     doc.DocumentType,
				"section_type":      chunk.Meta.SectionType,
				"technical_content": chunk.Meta.TechnicalContent,
				"contains_units":    chunk.Meta.ContainsUnits,
				"chunk_length":      chunk.Meta.ChunkLength,
				"chunk_index":       chunk.Meta.ChunkIndex,
				"total_chunks":      chunk.Meta.TotalChunks,
				"content":           chunk.Content,
			},
		})
	}

	url := fmt.Sprintf("%s/collections/%s/points?wait=true", c.baseURL, c.collection)
	var upsertResp json.RawMessage
	if err := c.doJSON(ctx, http.MethodPut, url, map[string]any{"points": points}, &upsertResp); err != nil {
		return fmt.Errorf("qdrant upsert: %w", err)
	}
	return nil
}

func (c *Client) Search(
	ctx context.Context,
	queryVector []float32,
	limit int,
	scoreThreshold float64,
	filter domain.SearchFilter,
) ([]domain.Candidate, error) {
	reqBody := map[string]any{
		"vector":       queryVector,
		"limit":        limit,
		"with_payload": true,
	}
	if scoreThreshold > 0 {
		reqBody["score_threshold"] = scoreThreshold
	}
	if conditions := filterConditions(filter); len(conditions) > 0 {
		reqBody["filter"] = map[string]any{"must": conditions}
	}

	url := fmt.Sprintf("%s/collections/%s/points/search", c.baseURL, c.collection)
	var searchResp struct {
		Result []struct {
			Score   float64        `json:"score"`
			Payload map[string]any `json:"payload"`
		} `json:"result"`
	}
	if err := c.doJSON(ctx, http.MethodPost, url, reqBody, &searchResp); err != nil {
		return nil, fmt.Errorf("qdrant search: %w", err)
	}

	out := make([]domain.Candidate, 0, len(searchResp.Result))
	for _, r := range searchResp.Result {
		out = append(out, candidateFromPayload(r.Payload, r.Score))
	}
	return out, nil
}

// Scroll pages through payloads without scoring. Used for category summaries
// and collection sampling.
func (c *Client) Scroll(ctx context.Context, filter domain.SearchFilter, limit int) ([]domain.Candidate, error) {
	reqBody := map[string]any{
		"limit":        limit,
		"with_payload": true,
	}
	if conditions := filterConditions(filter); len(conditions) > 0 {
		reqBody["filter"] = map[string]any{"must": conditions}
	}

	url := fmt.Sprintf("%s/collections/%s/points/scroll", c.baseURL, c.collection)
	var scrollResp struct {
		Result struct {
			Points []struct {
				Payload map[string]any `json:"payload"`
			} `json:"points"`
		} `json:"result"`
	}
	if err := c.doJSON(ctx, http.MethodPost, url, reqBody, &scrollResp); err != nil {
		return nil, fmt.Errorf("qdrant scroll: %w", err)
	}

	out := make([]domain.Candidate, 0, len(scrollResp.Result.Points))
	for _, p := range scrollResp.Result.Points {
		out = append(out, candidateFromPayload(p.Payload, 0))
	}
	return out, nil
}

func (c *Client) Status(ctx context.Context) (domain.CollectionStatus, error) {
	url := fmt.Sprintf("%s/collections/%s", c.baseURL, c.collection)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return domain.CollectionStatus{}, fmt.Errorf("create status request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.CollectionStatus{}, fmt.Errorf("qdrant status request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return domain.CollectionStatus{}, fmt.Errorf("qdrant status: %s", resp.Status)
	}

	var statusResp struct {
		Result struct {
			Status      string `json:"status"`
			PointsCount int    `json:"points_count"`
		} `json:"result"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&statusResp); err != nil {
		return domain.CollectionStatus{}, fmt.Errorf("decode status response: %w", err)
	}

	status := domain.CollectionStatus{
		Collection:  c.collection,
		Status:      statusResp.Result.Status,
		PointsCount: statusResp.Result.PointsCount,
	}

	// Sample payloads for the content distribution; sampling failures leave
	// the distribution empty rather than failing the status call.
	sample, err := c.Scroll(ctx, domain.SearchFilter{}, 1000)
	if err == nil && len(sample) > 0 {
		summarizeSample(&status, sample)
	}
	return status, nil
}

func summarizeSample(status *domain.CollectionStatus, sample []domain.Candidate) {
	status.SampleSize = len(sample)
	status.Categories = make(map[string]int)
	status.DocumentTypes = make(map[string]int)
	status.SectionTypes = make(map[string]int)

	technical := 0
	totalLength := 0
	for _, c := range sample {
		if c.Category != "" {
			status.Categories[c.Category]++
		}
		if c.DocumentType != "" {
			status.DocumentTypes[c.DocumentType]++
		}
		if c.SectionType != "" {
			status.SectionTypes[c.SectionType]++
		}
		if c.TechnicalContent {
			technical++
		}
		totalLength += c.ChunkLength
	}
	status.TechnicalRatio = float64(technical) / float64(len(sample))
	status.AvgChunkLength = float64(totalLength) / float64(len(sample))
}

func filterConditions(filter domain.SearchFilter) []map[string]any {
	var conditions []map[string]any

	match := func(key string, value any) map[string]any {
		return map[string]any{"key": key, "match": map[string]any{"value": value}}
	}
	matchAny := func(key string, values []string) map[string]any {
		return map[string]any{"key": key, "match": map[string]any{"any": values}}
	}

	if filter.Category != "" {
		conditions = append(conditions, match("category", filter.Category))
	}
	if filter.SectionType != "" {
		conditions = append(conditions, match("section_type", filter.SectionType))
	}
	if filter.TechnicalContent != nil {
		conditions = append(conditions, match("technical_content", *filter.TechnicalContent))
	}
	if len(filter.Categories) > 0 {
		conditions = append(conditions, matchAny("category", filter.Categories))
	}
	if len(filter.DocumentTypes) > 0 {
		conditions = append(conditions, matchAny("document_type", filter.DocumentTypes))
	}
	if len(filter.FileNames) > 0 {
		conditions = append(conditions, matchAny("file_name", filter.FileNames))
	}
	return conditions
}

func candidateFromPayload(payload map[string]any, score float64) domain.Candidate {
	return domain.Candidate{
		Content:          getStringPayload(payload, "content"),
		FileName:         stringPayloadOr(payload, "file_name", "Unknown"),
		Category:         stringPayloadOr(payload, "category", "Unknown"),
		DocumentType:     stringPayloadOr(payload, "document_type", "general"),
		SectionType:      stringPayloadOr(payload, "section_type", "content_section"),
		TechnicalContent: getBoolPayload(payload, "technical_content"),
		ContainsUnits:    getBoolPayload(payload, "contains_units"),
		ChunkLength:      getIntPayload(payload, "chunk_length"),
		BaseScore:        score,
		Metadata:         payload,
	}
}

func (c *Client) ensureCollection(ctx context.Context, vectorSize int) error {
	c.ensureMu.Lock()
	if c.ensuredCollection && c.ensuredVectorSize == vectorSize {
		c.ensureMu.Unlock()
		return nil
	}
	c.ensureMu.Unlock()

	reqBody := map[string]any{
		"vectors": map[string]any{
			"size":     vectorSize,
			"distance": "Cosine",
		},
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("marshal create collection body: %w", err)
	}

	url := fmt.Sprintf("%s/collections/%s", c.baseURL, c.collection)
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create collection request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("qdrant ensure collection request: %w", err)
	}
	defer resp.Body.Close()

	// 200/201 for create, 409 if already exists (depends on version/config).
	if resp.StatusCode == http.StatusConflict {
		c.markCollectionEnsured(vectorSize)
		return c.ensurePayloadIndex(ctx)
	}
	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		if msg := strings.TrimSpace(string(body)); msg != "" {
			return fmt.Errorf("qdrant ensure collection status: %s: %s", resp.Status, msg)
		}
		return fmt.Errorf("qdrant ensure collection status: %s", resp.Status)
	}
	c.markCollectionEnsured(vectorSize)
	return c.ensurePayloadIndex(ctx)
}

// ensurePayloadIndex keeps section_type filterable at scale. Qdrant answers
// 409 when the index already exists.
func (c *Client) ensurePayloadIndex(ctx context.Context) error {
	reqBody := map[string]any{
		"field_name":   "section_type",
		"field_schema": "keyword",
	}
	body, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("marshal payload index body: %w", err)
	}

	url := fmt.Sprintf("%s/collections/%s/index", c.baseURL, c.collection)
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create payload index request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("qdrant payload index request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 && resp.StatusCode != http.StatusConflict {
		return fmt.Errorf("qdrant payload index status: %s", resp.Status)
	}
	return nil
}

func (c *Client) markCollectionEnsured(vectorSize int) {
	c.ensureMu.Lock()
	defer c.ensureMu.Unlock()
	c.ensuredCollection = true
	c.ensuredVectorSize = vectorSize
}

func (c *Client) doJSON(ctx context.Context, method, url string, reqBody any, out any) error {
	body, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("marshal request body: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("status: %s", resp.Status)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func getStringPayload(payload map[string]any, key string) string {
	v, ok := payload[key]
	if !ok {
		return ""
	}
	s, ok := v.(string)
	if ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}

func stringPayloadOr(payload map[string]any, key, fallback string) string {
	if s := getStringPayload(payload, key); s != "" {
		return s
	}
	return fallback
}

func getBoolPayload(payload map[string]any, key string) bool {
	b, _ := payload[key].(bool)
	return b
}

func getIntPayload(payload map[string]any, key string) int {
	switch v := payload[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	}
	return 0
}
